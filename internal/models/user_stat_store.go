package models

import (
	"sync"
	"time"
)

// UserStatStore keeps one UserStat document per user. All accessors work
// on copies: callers mutate their copy and write the whole document back
// with Put, which is the unit of mutation.
type UserStatStore struct {
	mu   sync.RWMutex
	data map[string]*UserStat
}

func NewUserStatStore() *UserStatStore {
	return &UserStatStore{
		data: make(map[string]*UserStat),
	}
}

func (s *UserStatStore) Get(userID string) (*UserStat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stat, ok := s.data[userID]
	if !ok {
		return nil, false
	}
	return stat.Clone(), true
}

// GetOrInit returns the stored record, or a fresh zero record when the
// user has none. The fresh record is not persisted until Put.
func (s *UserStatStore) GetOrInit(userID string) *UserStat {
	if stat, ok := s.Get(userID); ok {
		return stat
	}
	return NewUserStat(userID)
}

func (s *UserStatStore) Put(stat *UserStat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := stat.Clone()
	now := time.Now()
	if prev, ok := s.data[c.UserID]; ok {
		c.CreatedAt = prev.CreatedAt
	} else if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	s.data[c.UserID] = c
}

// ForEach streams every record to fn until fn returns false. Only the set
// of user ids is snapshotted up front; records are fetched one at a time
// so no lock is held while fn runs and the full table is never
// materialized. Records inserted after the snapshot are not visited.
func (s *UserStatStore) ForEach(fn func(*UserStat) bool) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	for _, id := range ids {
		stat, ok := s.Get(id)
		if !ok {
			continue
		}
		if !fn(stat) {
			return
		}
	}
}

func (s *UserStatStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Export dumps all records for the persistence snapshot.
func (s *UserStatStore) Export() map[string]*UserStat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*UserStat, len(s.data))
	for id, stat := range s.data {
		out[id] = stat.Clone()
	}
	return out
}

// Load replaces the store contents from a persistence snapshot.
func (s *UserStatStore) Load(data map[string]*UserStat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]*UserStat, len(data))
	for id, stat := range data {
		if stat == nil {
			continue
		}
		s.data[id] = stat.Clone()
	}
}
