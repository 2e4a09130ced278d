package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(s *ContentStore, videos, audios int) {
	for i := 0; i < videos; i++ {
		id := fmt.Sprintf("v%d", i)
		s.Put(&ContentItem{ID: id, Title: "Video " + id, Type: ContentTypeVideo, DurationMin: 10})
	}
	for i := 0; i < audios; i++ {
		id := fmt.Sprintf("a%d", i)
		s.Put(&ContentItem{ID: id, Title: "Audio " + id, Type: ContentTypeAudio, DurationMin: 20})
	}
}

func TestContentStore_PutAndGet(t *testing.T) {
	s := NewContentStore()
	s.Put(&ContentItem{ID: "v1", Title: "Breathing basics", Type: ContentTypeVideo, DurationMin: 12})

	item, ok := s.Get("v1")
	require.True(t, ok)
	assert.Equal(t, "Breathing basics", item.Title)
	assert.Equal(t, 12, item.DurationMin)
}

func TestContentStore_RandomSampleExactCount(t *testing.T) {
	s := NewContentStore()
	seedCatalog(s, 10, 5)

	sample := s.RandomSample(ContentTypeVideo, 7)
	assert.Len(t, sample, 7)
}

func TestContentStore_RandomSampleDistinct(t *testing.T) {
	s := NewContentStore()
	seedCatalog(s, 10, 0)

	sample := s.RandomSample(ContentTypeVideo, 10)
	seen := map[string]bool{}
	for _, item := range sample {
		assert.False(t, seen[item.ID], "duplicate item %s in sample", item.ID)
		seen[item.ID] = true
	}
	assert.Len(t, seen, 10)
}

func TestContentStore_RandomSampleFiltersByType(t *testing.T) {
	s := NewContentStore()
	seedCatalog(s, 3, 10)

	sample := s.RandomSample(ContentTypeVideo, 13)
	assert.Len(t, sample, 3, "only videos may be sampled")
	for _, item := range sample {
		assert.Equal(t, ContentTypeVideo, item.Type)
	}
}

func TestContentStore_RandomSampleShortCatalog(t *testing.T) {
	s := NewContentStore()
	seedCatalog(s, 2, 0)

	sample := s.RandomSample(ContentTypeVideo, 10)
	assert.Len(t, sample, 2, "a short catalog returns what it has")
}

func TestContentStore_RandomSampleZeroOrNegative(t *testing.T) {
	s := NewContentStore()
	seedCatalog(s, 5, 0)

	assert.Nil(t, s.RandomSample(ContentTypeVideo, 0))
	assert.Nil(t, s.RandomSample(ContentTypeVideo, -1))
}

func TestContentStore_ExportLoadRoundtrip(t *testing.T) {
	s := NewContentStore()
	seedCatalog(s, 4, 2)

	restored := NewContentStore()
	restored.Load(s.Export())
	assert.Equal(t, 6, restored.Len())
}
