package services

import (
	"fmt"
	"time"

	"mindd/internal/models"
	"mindd/internal/providers"
)

// day is the unit for streak arithmetic. Deltas are pure elapsed-time
// truncations: 23h59m apart is the same day even across midnight.
const day = 24 * time.Hour

type StatsServiceInterface interface {
	ApplyLogin(userID string, now time.Time) (*models.UserStat, error)
	RecordMoodCheckout(userID string, now time.Time) (*models.UserStat, error)
	GetStats(userID string) (*models.UserStat, error)
}

// StatsService owns the login-derived counters for one user at a time.
// Every mutating call persists the full record; there are no partial
// writes.
type StatsService struct {
	stores  *models.Stores
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewStatsService(stores *models.Stores, logger providers.Logger, metrics providers.MetricsProviderInterface) StatsServiceInterface {
	return &StatsService{
		stores:  stores,
		logger:  logger,
		metrics: metrics,
	}
}

// ApplyLogin runs the canonical three-step login update in fixed order:
// bump totalLogins, recompute the streak from the previous lastLoginDate,
// then overwrite lastLoginDate. The streak step must see the old date.
func (s *StatsService) ApplyLogin(userID string, now time.Time) (*models.UserStat, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user id", models.ErrInvalidArgument)
	}

	stat := s.stores.Stats.GetOrInit(userID)
	s.incrementLogins(stat)
	s.calculateStreak(stat, now)
	s.updateLastLogin(stat, now)
	s.stores.Stats.Put(stat)

	s.metrics.IncLogins()
	return stat, nil
}

func (s *StatsService) RecordMoodCheckout(userID string, now time.Time) (*models.UserStat, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user id", models.ErrInvalidArgument)
	}

	stat := s.stores.Stats.GetOrInit(userID)
	s.updateMoodCheckout(stat, now)
	s.stores.Stats.Put(stat)
	return stat, nil
}

// GetStats returns the stored record, or a zero record for a user that
// has never logged in. The zero record is not persisted by a read.
func (s *StatsService) GetStats(userID string) (*models.UserStat, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user id", models.ErrInvalidArgument)
	}
	return s.stores.Stats.GetOrInit(userID), nil
}

func (s *StatsService) incrementLogins(stat *models.UserStat) {
	mustHaveStat(stat)
	stat.TotalLogins++
}

// calculateStreak applies the day-delta policy:
//
//	no previous login  → 1/1
//	same day (delta 0) → 1/1, matching the first-login branch
//	delta 1            → current++, longest raised if passed
//	delta > 1          → current resets to 1, longest untouched
//	delta < 0          → treated as a broken streak, with a warning
func (s *StatsService) calculateStreak(stat *models.UserStat, now time.Time) {
	mustHaveStat(stat)

	if stat.LastLoginDate == nil {
		stat.CurrentStreak = 1
		stat.LongestStreak = 1
		return
	}

	delta := int(now.Sub(*stat.LastLoginDate) / day)
	switch {
	case delta < 0:
		s.logger.Warnf(providers.TypeApp,
			"Login for %s is %s before the recorded last login, resetting streak",
			stat.UserID, stat.LastLoginDate.Sub(now))
		stat.CurrentStreak = 1
	case delta == 0:
		stat.CurrentStreak = 1
		stat.LongestStreak = 1
	case delta == 1:
		stat.CurrentStreak++
		if stat.CurrentStreak > stat.LongestStreak {
			stat.LongestStreak = stat.CurrentStreak
		}
	default:
		stat.CurrentStreak = 1
	}
}

func (s *StatsService) updateLastLogin(stat *models.UserStat, now time.Time) {
	mustHaveStat(stat)
	t := now
	stat.LastLoginDate = &t
}

func (s *StatsService) updateMoodCheckout(stat *models.UserStat, now time.Time) {
	mustHaveStat(stat)
	t := now
	stat.LastMoodCheckoutDate = &t
}

// mustHaveStat enforces the programming contract on the low-level
// mutators: a nil record is a caller bug, not a runtime condition.
func mustHaveStat(stat *models.UserStat) {
	if stat == nil {
		panic("services: nil UserStat passed to mutator")
	}
}
