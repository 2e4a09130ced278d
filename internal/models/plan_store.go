package models

import (
	"sort"
	"sync"
)

// PlanStore keeps Plan documents keyed by plan id. The Plan document is
// the unit of mutation: read a copy, flip an entry, Put the whole thing
// back. Concurrent writers to the same plan can lose a notified flag,
// which at worst repeats one notification; entries themselves are never
// partially written.
type PlanStore struct {
	mu   sync.RWMutex
	data map[string]*Plan
}

func NewPlanStore() *PlanStore {
	return &PlanStore{
		data: make(map[string]*Plan),
	}
}

func (s *PlanStore) Get(id string) (*Plan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plan, ok := s.data[id]
	if !ok {
		return nil, false
	}
	return plan.Clone(), true
}

func (s *PlanStore) Put(plan *Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[plan.ID] = plan.Clone()
}

func (s *PlanStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
}

// ListByUser returns all plans owned by a user regardless of state,
// oldest first.
func (s *PlanStore) ListByUser(userID string) []*Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Plan
	for _, plan := range s.data {
		if plan.UserID == userID {
			out = append(out, plan.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// ForEach streams every plan to fn until fn returns false, snapshotting
// ids only so fn may Put or Delete plans (including the visited one)
// without deadlocking. Visit order is store-defined.
func (s *PlanStore) ForEach(fn func(*Plan) bool) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	for _, id := range ids {
		plan, ok := s.Get(id)
		if !ok {
			continue
		}
		if !fn(plan) {
			return
		}
	}
}

func (s *PlanStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *PlanStore) Export() map[string]*Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*Plan, len(s.data))
	for id, plan := range s.data {
		out[id] = plan.Clone()
	}
	return out
}

func (s *PlanStore) Load(data map[string]*Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]*Plan, len(data))
	for id, plan := range data {
		if plan == nil {
			continue
		}
		s.data[id] = plan.Clone()
	}
}
