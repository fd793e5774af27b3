package storefront

import "sync"

// Session tracks the current signed-in identity and fans out transitions to
// subscribers. The empty string means no identity (signed out). It is an
// explicit object passed to collaborators; there is no package-level session.
type Session struct {
	mu       sync.Mutex
	identity string
	subs     map[int]func(identity string)
	next     int
}

func NewSession() *Session {
	return &Session{subs: make(map[int]func(string))}
}

// Subscribe registers fn, invokes it once immediately with the current
// identity, and invokes it again on every subsequent transition in the order
// transitions are reported. The returned cancel func guarantees no further
// invocations once it returns. Callbacks run synchronously on the caller of
// Set and must not call back into the Session.
func (s *Session) Subscribe(fn func(identity string)) (cancel func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	fn(s.identity)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Set records a transition and delivers it to all subscribers. Transitions
// are delivered as reported, without deduplication or reordering.
func (s *Session) Set(identity string) {
	s.mu.Lock()
	s.identity = identity
	for _, fn := range s.subs {
		fn(identity)
	}
	s.mu.Unlock()
}

// Current returns the identity as of the last transition, or "" if absent.
func (s *Session) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}
