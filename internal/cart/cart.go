// Package cart holds the in-memory shopping cart: an ordered collection of
// lines keyed by item id, with quantity mutations and total computation.
// Persistence is not this package's job; the storefront sync adapter observes
// changes through the OnChange hook and owns all remote I/O.
package cart

import "sync"

// Item is the purchasable unit as captured at add time. Display fields are
// copied from the catalog and may go stale if the catalog changes later.
// Price is a pointer so an item without a price stays "absent" in storage
// rather than being coerced to 0; Total treats absent as 0.
type Item struct {
	ID      string   `json:"id"`
	Name    string   `json:"name,omitempty"`
	Teacher string   `json:"teacher,omitempty"`
	Date    string   `json:"date,omitempty"`
	Price   *float64 `json:"price,omitempty"`
}

// Line is one item with its quantity. Quantity is always >= 1; a line whose
// quantity would reach 0 is removed instead.
type Line struct {
	Item
	Quantity int `json:"quantity"`
}

// Store owns the cart lines for an application session. Item ids are unique
// across lines. User-facing mutations (Add, Increase, Decrease, Remove) fire
// the change hook when they change state; ReplaceAll and Clear never do, so
// the sync adapter can install loaded snapshots without echoing them back
// into saves.
type Store struct {
	mu       sync.Mutex
	lines    []Line
	onChange func()
}

func NewStore() *Store {
	return &Store{}
}

// OnChange registers fn to run after every state-changing user mutation.
// Only one hook is supported; the sync adapter installs it at construction.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Add appends a new line with quantity 1, or increments the quantity of the
// existing line with the same item id.
func (s *Store) Add(item Item) {
	s.mu.Lock()
	if i := s.index(item.ID); i >= 0 {
		s.lines[i].Quantity++
	} else {
		s.lines = append(s.lines, Line{Item: item, Quantity: 1})
	}
	s.notifyLocked()
}

// Increase increments the quantity of the matching line. Unknown ids are a
// no-op, not an error.
func (s *Store) Increase(itemID string) {
	s.mu.Lock()
	i := s.index(itemID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.lines[i].Quantity++
	s.notifyLocked()
}

// Decrease decrements the quantity of the matching line, removing the line
// entirely when the quantity would reach 0. Unknown ids are a no-op.
func (s *Store) Decrease(itemID string) {
	s.mu.Lock()
	i := s.index(itemID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	if s.lines[i].Quantity > 1 {
		s.lines[i].Quantity--
	} else {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}
	s.notifyLocked()
}

// Remove deletes the matching line unconditionally. Unknown ids are a no-op.
func (s *Store) Remove(itemID string) {
	s.mu.Lock()
	i := s.index(itemID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	s.notifyLocked()
}

// Total sums price*quantity over all lines in line order, treating an absent
// price as 0.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, l := range s.lines {
		if l.Price != nil {
			total += *l.Price * float64(l.Quantity)
		}
	}
	return total
}

// Lines returns a copy of the current lines in order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// ReplaceAll installs lines wholesale. Used by the sync adapter when a loaded
// snapshot arrives; does not fire the change hook.
func (s *Store) ReplaceAll(lines []Line) {
	cp := make([]Line, len(lines))
	copy(cp, lines)

	s.mu.Lock()
	s.lines = cp
	s.mu.Unlock()
}

// Clear empties the cart. Used on sign-out and after order placement; does
// not fire the change hook.
func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()
}

// index must be called with s.mu held.
func (s *Store) index(itemID string) int {
	for i := range s.lines {
		if s.lines[i].ID == itemID {
			return i
		}
	}
	return -1
}

// notifyLocked releases s.mu and then runs the change hook outside the lock,
// so the hook may call back into the store.
func (s *Store) notifyLocked() {
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}
