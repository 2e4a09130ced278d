package models

import (
	"fmt"
	"strings"
	"time"
)

// PlanLevel quantifies how many content items go into a plan.
type PlanLevel int

const (
	LevelEasy         PlanLevel = 3
	LevelIntermediate PlanLevel = 7
	LevelAdvanced     PlanLevel = 10
)

// EntryCount is the number of entries a plan of this level holds. The count
// is fixed at creation and never changes afterwards.
func (l PlanLevel) EntryCount() int {
	return int(l)
}

func (l PlanLevel) String() string {
	switch l {
	case LevelEasy:
		return "EASY"
	case LevelIntermediate:
		return "INTERMEDIATE"
	case LevelAdvanced:
		return "ADVANCED"
	default:
		return fmt.Sprintf("PlanLevel(%d)", int(l))
	}
}

func ParsePlanLevel(s string) (PlanLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "EASY":
		return LevelEasy, nil
	case "INTERMEDIATE":
		return LevelIntermediate, nil
	case "ADVANCED":
		return LevelAdvanced, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
}

// PlanEntry is one item inside a plan. Notified flips false→true exactly
// once, when the reminder for this entry has been dispatched.
type PlanEntry struct {
	ContentID string `json:"contentId"`
	Notified  bool   `json:"notified"`
}

// Plan is a fixed-size ordered list of content recommended to one user,
// delivered one entry per scheduled tick. A user may hold any number of
// plans at once, including several of the same level.
type Plan struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Level     PlanLevel   `json:"level"`
	ToWatch   []PlanEntry `json:"toWatch"`
	CreatedAt time.Time   `json:"createdAt"`
}

// NextUnnotified returns the index of the first entry still awaiting its
// reminder, or -1 when every entry has been notified.
func (p *Plan) NextUnnotified() int {
	for i := range p.ToWatch {
		if !p.ToWatch[i].Notified {
			return i
		}
	}
	return -1
}

// AllNotified reports whether the plan has no remaining work, i.e. it is
// ready for the reaper.
func (p *Plan) AllNotified() bool {
	return p.NextUnnotified() == -1
}

func (p *Plan) Clone() *Plan {
	c := *p
	c.ToWatch = make([]PlanEntry, len(p.ToWatch))
	copy(c.ToWatch, p.ToWatch)
	return &c
}
