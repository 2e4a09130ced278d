package models

import "time"

const (
	ContentTypeVideo = "video"
	ContentTypeAudio = "audio"
)

// ContentItem is the read-side projection of the content catalog the
// scheduling engine needs: type filtering for plan creation and
// title/duration for notification substitutions.
type ContentItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	DurationMin int       `json:"durationMin"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (c *ContentItem) Clone() *ContentItem {
	cc := *c
	return &cc
}
