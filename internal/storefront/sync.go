package storefront

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"YogaStore/internal/cart"
)

// syncState is the per-session binding between the local cart and the remote
// cart document.
type syncState int

const (
	// stateUnbound: no identity reported yet.
	stateUnbound syncState = iota
	// stateLoading: an identity is known and its remote snapshot is being
	// fetched. Saves are deferred until the fetch resolves.
	stateLoading
	// stateBound: the remote snapshot for the identity has been installed;
	// every cart mutation now schedules a save.
	stateBound
	// stateSignedOut: no identity; the cart is cleared and nothing persists.
	stateSignedOut
)

const (
	loadTimeout = 5 * time.Second
	saveTimeout = 5 * time.Second

	saveQueueDepth = 64
)

// saveJob is one whole-snapshot write, captured at mutation time. epoch ties
// the job to the identity transition it was scheduled under; a job whose
// epoch is stale by execution time is dropped, never persisted.
type saveJob struct {
	epoch    int
	identity string
	lines    []cart.Line
	barrier  chan struct{} // Flush sentinel; nil for real saves
}

// Syncer keeps the cart Store and the remote per-user cart document
// consistent. It watches the Session for identity transitions, loads the
// remote snapshot on sign-in, and persists the full line collection after
// every mutation, in mutation order, through a single worker goroutine.
//
// The ordering invariant: no save for an identity is issued until that
// identity's load has resolved and installed its result. A freshly signed-in
// empty local cart can therefore never clobber a populated remote snapshot.
type Syncer struct {
	backend Backend
	store   *cart.Store
	log     *zap.Logger

	mu       sync.Mutex
	state    syncState
	identity string
	epoch    int
	deferred bool // a mutation arrived while loading; save after install

	sendMu sync.Mutex
	closed bool
	jobs   chan saveJob
	done   chan struct{}

	unsubscribe func()
}

// NewSyncer wires the adapter to the store's change hook and the session's
// identity stream, and starts the save worker. Call Close to stop it.
func NewSyncer(backend Backend, store *cart.Store, session *Session, log *zap.Logger) *Syncer {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Syncer{
		backend: backend,
		store:   store,
		log:     log,
		jobs:    make(chan saveJob, saveQueueDepth),
		done:    make(chan struct{}),
	}

	go s.worker()

	store.OnChange(s.onMutation)
	s.unsubscribe = session.Subscribe(s.onIdentity)

	return s
}

// onIdentity handles one identity transition from the session.
func (s *Syncer) onIdentity(identity string) {
	s.mu.Lock()

	if identity == "" {
		s.epoch++
		s.state = stateSignedOut
		s.identity = ""
		s.deferred = false
		s.mu.Unlock()

		s.store.Clear()
		return
	}

	// A repeated report of the identity we are already loading or bound to
	// would discard local mutations for no reason; ignore it.
	if identity == s.identity && (s.state == stateLoading || s.state == stateBound) {
		s.mu.Unlock()
		return
	}

	s.epoch++
	epoch := s.epoch
	s.state = stateLoading
	s.identity = identity
	s.deferred = false
	s.mu.Unlock()

	go s.load(epoch, identity)
}

// load fetches the remote snapshot for identity and installs it, unless a
// newer transition happened while the fetch was in flight.
func (s *Syncer) load(epoch int, identity string) {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	lines, err := s.backend.FetchCart(ctx, identity)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		lines = nil
	default:
		// Non-fatal: the user can still shop on an empty cart.
		s.log.Warn("cart load failed", zap.String("user_id", identity), zap.Error(err))
		lines = nil
	}

	s.mu.Lock()
	if epoch != s.epoch {
		// A newer identity took over while we were fetching. Discard.
		s.mu.Unlock()
		return
	}

	s.store.ReplaceAll(lines)
	s.state = stateBound

	flush := s.deferred
	s.deferred = false

	var job saveJob
	if flush {
		job = saveJob{epoch: epoch, identity: identity, lines: s.store.Lines()}
	}
	s.mu.Unlock()

	if flush {
		s.enqueue(job)
	}
}

// onMutation runs after every state-changing cart mutation.
func (s *Syncer) onMutation() {
	s.mu.Lock()

	switch s.state {
	case stateBound:
		job := saveJob{epoch: s.epoch, identity: s.identity, lines: s.store.Lines()}
		s.mu.Unlock()
		s.enqueue(job)

	case stateLoading:
		// Queued, not dropped: the save happens once the load installs.
		s.deferred = true
		s.mu.Unlock()

	default:
		// Unbound or signed out: never persist.
		s.mu.Unlock()
	}
}

// worker issues saves strictly in the order they were scheduled. A failed
// save is logged and not retried; the in-memory cart is never rolled back.
func (s *Syncer) worker() {
	defer close(s.done)

	for job := range s.jobs {
		if job.barrier != nil {
			close(job.barrier)
			continue
		}

		s.mu.Lock()
		stale := job.epoch != s.epoch
		s.mu.Unlock()
		if stale {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		err := s.backend.SaveCart(ctx, job.identity, job.lines)
		cancel()

		if err != nil {
			s.log.Warn("cart save failed",
				zap.String("user_id", job.identity),
				zap.Int("lines", len(job.lines)),
				zap.Error(err))
		}
	}
}

// enqueue hands a job to the worker unless the syncer is closed. The send
// mutex makes Close safe against concurrent schedulers.
func (s *Syncer) enqueue(job saveJob) bool {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	if s.closed {
		return false
	}
	s.jobs <- job
	return true
}

// Flush blocks until every save scheduled before the call has been issued.
func (s *Syncer) Flush() {
	barrier := make(chan struct{})
	if !s.enqueue(saveJob{barrier: barrier}) {
		return
	}
	<-barrier
}

// PlaceOrder records an order for the current cart, then empties the remote
// snapshot and the local cart, in that sequence. A failure creating the
// order leaves both intact so the user can retry. Customer fields are
// validated before anything touches the network.
func (s *Syncer) PlaceOrder(ctx context.Context, customer Customer) (string, error) {
	if err := validateCustomer(customer); err != nil {
		return "", err
	}

	s.mu.Lock()
	if s.state != stateBound {
		s.mu.Unlock()
		return "", ErrNotSignedIn
	}
	identity := s.identity
	epoch := s.epoch
	s.mu.Unlock()

	lines := s.store.Lines()
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}
	total := s.store.Total()

	orderID, err := s.backend.CreateOrder(ctx, identity, customer, lines, total)
	if err != nil {
		return "", fmt.Errorf("create order: %w", err)
	}

	s.mu.Lock()
	current := epoch == s.epoch
	s.mu.Unlock()
	if !current {
		// Identity moved on mid-checkout; the order stands, but the cart now
		// belongs to someone else and must not be touched.
		return orderID, nil
	}

	// The empty snapshot goes through the save queue so it lands after any
	// in-flight mutation saves for this identity.
	s.enqueue(saveJob{epoch: epoch, identity: identity, lines: nil})
	s.store.Clear()

	return orderID, nil
}

func validateCustomer(c Customer) error {
	var missing []string
	if strings.TrimSpace(c.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(c.PhoneNumber) == "" {
		missing = append(missing, "phone_number")
	}
	if strings.TrimSpace(c.Email) == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// Close detaches the adapter and stops the worker after draining queued
// saves.
func (s *Syncer) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.store.OnChange(nil)

	s.sendMu.Lock()
	if !s.closed {
		s.closed = true
		close(s.jobs)
	}
	s.sendMu.Unlock()

	<-s.done
}
