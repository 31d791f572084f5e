package memory

import (
	"sync"
	"time"

	"subcontrol-be/internal/apperror"
	"subcontrol-be/internal/entity"
)

// State is the full content of a memory store. It is also the on-disk format of the file backend.
type State struct {
	Customers     []*entity.Customer     `json:"customers"`
	Plans         []*entity.Plan         `json:"plans"`
	Subscriptions []*entity.Subscription `json:"subscriptions"`
	Payments      []*entity.Payment      `json:"payments"`
}

func (s *State) clone() *State {
	out := &State{
		Customers:     make([]*entity.Customer, len(s.Customers)),
		Plans:         make([]*entity.Plan, len(s.Plans)),
		Subscriptions: make([]*entity.Subscription, len(s.Subscriptions)),
		Payments:      make([]*entity.Payment, len(s.Payments)),
	}
	for i, c := range s.Customers {
		out.Customers[i] = cloneCustomer(c)
	}
	for i, p := range s.Plans {
		out.Plans[i] = clonePlan(p)
	}
	for i, sub := range s.Subscriptions {
		out.Subscriptions[i] = cloneSubscription(sub)
	}
	for i, p := range s.Payments {
		out.Payments[i] = clonePayment(p)
	}
	return out
}

func cloneCustomer(c *entity.Customer) *entity.Customer {
	cp := *c
	return &cp
}

func clonePlan(p *entity.Plan) *entity.Plan {
	cp := *p
	return &cp
}

func cloneSubscription(s *entity.Subscription) *entity.Subscription {
	cp := *s
	return &cp
}

func clonePayment(p *entity.Payment) *entity.Payment {
	cp := *p
	if p.IdempotencyKey != nil {
		key := *p.IdempotencyKey
		cp.IdempotencyKey = &key
	}
	return &cp
}

// Persister saves and restores a State. A nil Persister keeps the store purely in memory.
type Persister interface {
	Load() (*State, error)
	Save(state *State) error
}

// Store holds entity collections guarded by one mutex. Writes outside a unit of work are applied
// and persisted one at a time; inside a unit of work the lock is held until Commit or Rollback.
type Store struct {
	mu        sync.Mutex
	state     *State
	persister Persister
	now       func() time.Time
}

func NewStore(persister Persister) (*Store, error) {
	s := &Store{
		state:     &State{},
		persister: persister,
		now:       time.Now,
	}
	if persister != nil {
		st, err := persister.Load()
		if err != nil {
			return nil, apperror.Unavailable("load store", err)
		}
		if st != nil {
			s.state = st
		}
	}
	return s, nil
}

// Seed replaces the store content and persists it.
func (s *Store) Seed(state *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state.clone()
	return s.persist()
}

func (s *Store) persist() error {
	if s.persister == nil {
		return nil
	}
	if err := s.persister.Save(s.state); err != nil {
		return apperror.Unavailable("persist store", err)
	}
	return nil
}

// session scopes repository access to either a single locked operation or an open unit of work.
type session struct {
	store  *Store
	inTx   bool
	backup *State
}

func (s *session) read(fn func(st *State) error) error {
	if s.inTx {
		return fn(s.store.state)
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	return fn(s.store.state)
}

func (s *session) write(fn func(st *State) error) error {
	if s.inTx {
		return fn(s.store.state)
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	backup := s.store.state.clone()
	if err := fn(s.store.state); err != nil {
		s.store.state = backup
		return err
	}
	if err := s.store.persist(); err != nil {
		s.store.state = backup
		return err
	}
	return nil
}
