package models

import (
	"math/rand/v2"
	"sync"
)

// ContentStore keeps the content catalog projection. Reads dominate;
// writes only happen on ingest.
type ContentStore struct {
	mu   sync.RWMutex
	data map[string]*ContentItem
}

func NewContentStore() *ContentStore {
	return &ContentStore{
		data: make(map[string]*ContentItem),
	}
}

func (s *ContentStore) Get(id string) (*ContentItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.data[id]
	if !ok {
		return nil, false
	}
	return item.Clone(), true
}

func (s *ContentStore) Put(item *ContentItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[item.ID] = item.Clone()
}

// RandomSample returns up to n distinct items of the given type in random
// order. Only matching ids are collected under the lock; shuffling and
// copying happen on that id slice, so the sample never scans more than
// once. Callers must check the returned length, fewer than n items come
// back when the catalog is short.
func (s *ContentStore) RandomSample(contentType string, n int) []*ContentItem {
	if n <= 0 {
		return nil
	}

	s.mu.RLock()
	ids := make([]string, 0, len(s.data))
	for id, item := range s.data {
		if item.Type == contentType {
			ids = append(ids, id)
		}
	}
	s.mu.RUnlock()

	rand.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	if len(ids) > n {
		ids = ids[:n]
	}

	out := make([]*ContentItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := s.Get(id); ok {
			out = append(out, item)
		}
	}
	return out
}

func (s *ContentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *ContentStore) Export() map[string]*ContentItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*ContentItem, len(s.data))
	for id, item := range s.data {
		out[id] = item.Clone()
	}
	return out
}

func (s *ContentStore) Load(data map[string]*ContentItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]*ContentItem, len(data))
	for id, item := range data {
		if item == nil {
			continue
		}
		s.data[id] = item.Clone()
	}
}
