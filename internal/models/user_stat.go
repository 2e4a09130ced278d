package models

import "time"

// UserStat holds the login-derived engagement counters for a single user.
// One record per user, keyed by UserID. An absent record means the user
// has never logged in (0/0/0/never).
type UserStat struct {
	UserID               string     `json:"userId"`
	CurrentStreak        int        `json:"currentStreak"`
	LongestStreak        int        `json:"longestStreak"`
	TotalLogins          int        `json:"totalLogins"`
	LastLoginDate        *time.Time `json:"lastLoginDate,omitempty"`
	LastMoodCheckoutDate *time.Time `json:"lastMoodCheckoutDate,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// NewUserStat returns the zero-value record for a user that has none yet.
func NewUserStat(userID string) *UserStat {
	return &UserStat{UserID: userID}
}

func (s *UserStat) Clone() *UserStat {
	c := *s
	if s.LastLoginDate != nil {
		t := *s.LastLoginDate
		c.LastLoginDate = &t
	}
	if s.LastMoodCheckoutDate != nil {
		t := *s.LastMoodCheckoutDate
		c.LastMoodCheckoutDate = &t
	}
	return &c
}
