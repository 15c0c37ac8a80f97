// Package memory is a process-local implementation of the repository ports.
// All operations are serialised by one lock; a transaction holds that lock for
// its whole duration and restores a snapshot when it fails.
package memory

import (
	"context"
	"sync"
)

type txKey struct{}

// Store holds users and partners in maps.
type Store struct {
	mu       sync.Mutex
	users    map[string]*userRecord
	partners map[string]*partnerRecord
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]*userRecord),
		partners: make(map[string]*partnerRecord),
	}
}

// lock acquires the store lock unless ctx already runs inside a transaction.
func (s *Store) lock(ctx context.Context) func() {
	if ctx.Value(txKey{}) == s {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// WithinTransaction implements ports.Transactor.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) == s {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, partners := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.users, s.partners = users, partners
		return err
	}
	return nil
}

func (s *Store) snapshot() (map[string]*userRecord, map[string]*partnerRecord) {
	users := make(map[string]*userRecord, len(s.users))
	for id, r := range s.users {
		users[id] = r.clone()
	}
	partners := make(map[string]*partnerRecord, len(s.partners))
	for id, r := range s.partners {
		partners[id] = r.clone()
	}
	return users, partners
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Users returns the user repository view of the store.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Partners returns the partner repository view of the store.
func (s *Store) Partners() *PartnerRepository { return &PartnerRepository{s: s} }
