package models

import "sync"

// UserStore keeps the notification-relevant user profiles.
type UserStore struct {
	mu   sync.RWMutex
	data map[string]*User
}

func NewUserStore() *UserStore {
	return &UserStore{
		data: make(map[string]*User),
	}
}

func (s *UserStore) Get(id string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.data[id]
	if !ok {
		return nil, false
	}
	return user.Clone(), true
}

func (s *UserStore) Put(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[user.ID] = user.Clone()
}

func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *UserStore) Export() map[string]*User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*User, len(s.data))
	for id, user := range s.data {
		out[id] = user.Clone()
	}
	return out
}

func (s *UserStore) Load(data map[string]*User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]*User, len(data))
	for id, user := range data {
		if user == nil {
			continue
		}
		s.data[id] = user.Clone()
	}
}
