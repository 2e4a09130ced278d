package services

import (
	"strconv"
	"time"

	"mindd/internal/mailer"
	"mindd/internal/models"
	"mindd/internal/providers"
	"mindd/internal/structures"
)

type EngagementServiceInterface interface {
	ScanOnce(now time.Time)
}

// EngagementService sweeps the whole user-stat population once per tick
// and dispatches retention messages based on the last-login gap. One
// user's failure never stops the sweep.
type EngagementService struct {
	stores        *models.Stores
	notifier      mailer.Notifier
	logger        providers.Logger
	metrics       providers.MetricsProviderInterface
	inactiveAfter int
}

func NewEngagementService(conf *structures.Config, stores *models.Stores, notifier mailer.Notifier, logger providers.Logger, metrics providers.MetricsProviderInterface) EngagementServiceInterface {
	return &EngagementService{
		stores:        stores,
		notifier:      notifier,
		logger:        logger,
		metrics:       metrics,
		inactiveAfter: conf.Engagement.InactiveAfterDays,
	}
}

// ScanOnce visits every stat record. A gap of exactly one day gets the
// "don't lose your streak" reminder; a gap at or past the inactivity
// threshold gets the inactivity notice; everything else (same day, or a
// 2–6 day gap) is silent. Records with no login at all are skipped.
func (e *EngagementService) ScanOnce(now time.Time) {
	e.stores.Stats.ForEach(func(stat *models.UserStat) bool {
		if stat.LastLoginDate == nil {
			return true
		}
		days := int(now.Sub(*stat.LastLoginDate) / day)
		switch {
		case days == 1:
			e.dispatch(stat, mailer.KindStreak, map[string]string{
				mailer.ValueActualStreak:   strconv.Itoa(stat.CurrentStreak),
				mailer.ValueExtendedStreak: strconv.Itoa(stat.CurrentStreak + 1),
			})
		case days >= e.inactiveAfter:
			e.dispatch(stat, mailer.KindInactive, map[string]string{
				mailer.ValueDaysInactive:  strconv.Itoa(days),
				mailer.ValueLastLoginDate: stat.LastLoginDate.Format(time.RFC3339),
			})
		}
		return true
	})
}

func (e *EngagementService) dispatch(stat *models.UserStat, kind mailer.TemplateKind, values map[string]string) {
	user, ok := e.stores.Users.Get(stat.UserID)
	if !ok {
		e.metrics.IncNotifications(string(kind), false)
		e.logger.Errorf(providers.TypeApp, "Engagement scan: no user record for %s, skipping", stat.UserID)
		return
	}
	values[mailer.ValueUserName] = user.FirstName

	if err := e.notifier.Send(user.Email, kind, values); err != nil {
		e.metrics.IncNotifications(string(kind), false)
		e.logger.Errorf(providers.TypeApp, "Engagement scan: %s to %s failed: %s", kind, stat.UserID, err)
		return
	}
	e.metrics.IncNotifications(string(kind), true)
}
