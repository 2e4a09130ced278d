package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"mindd/internal/mailer"
	"mindd/internal/models"
	"mindd/internal/providers"
)

type PlanServiceInterface interface {
	Create(userID string, level models.PlanLevel, now time.Time) (*models.Plan, error)
	ListForUser(userID string) []*models.Plan
	NotifyDue()
	ReapCompleted()
}

// PlanService drives the plan lifecycle: created with a fixed entry
// count, advanced one entry per notification tick, deleted by the reaper
// once every entry has been notified. There is no status field; state is
// derived from the entries.
type PlanService struct {
	stores   *models.Stores
	notifier mailer.Notifier
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
}

func NewPlanService(stores *models.Stores, notifier mailer.Notifier, logger providers.Logger, metrics providers.MetricsProviderInterface) PlanServiceInterface {
	return &PlanService{
		stores:   stores,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
	}
}

// Create builds a plan from a random sample of video content. The sample
// must cover the level's full entry count; a short catalog fails the call
// and creates nothing.
func (ps *PlanService) Create(userID string, level models.PlanLevel, now time.Time) (*models.Plan, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user id", models.ErrInvalidArgument)
	}
	switch level {
	case models.LevelEasy, models.LevelIntermediate, models.LevelAdvanced:
	default:
		return nil, fmt.Errorf("%w: %d", models.ErrInvalidLevel, int(level))
	}

	count := level.EntryCount()
	sample := ps.stores.Content.RandomSample(models.ContentTypeVideo, count)
	if len(sample) < count {
		return nil, fmt.Errorf("%w: need %d videos, catalog has %d",
			models.ErrInsufficientContent, count, len(sample))
	}

	toWatch := make([]models.PlanEntry, 0, count)
	for _, item := range sample {
		toWatch = append(toWatch, models.PlanEntry{ContentID: item.ID})
	}

	plan := &models.Plan{
		ID:        uuid.NewString(),
		UserID:    userID,
		Level:     level,
		ToWatch:   toWatch,
		CreatedAt: now,
	}
	ps.stores.Plans.Put(plan)

	ps.metrics.IncPlansCreated(level.String())
	ps.logger.Infof(providers.TypeApp, "Created %s plan %s for user %s", level, plan.ID, userID)
	return plan, nil
}

// ListForUser returns every plan a user owns, regardless of progress.
func (ps *PlanService) ListForUser(userID string) []*models.Plan {
	return ps.stores.Plans.ListByUser(userID)
}

// NotifyDue advances each plan by at most one entry: the first entry still
// unnotified, in creation order. A plan whose dispatch fails is left
// untouched and the scan moves on; the next tick retries the same entry.
func (ps *PlanService) NotifyDue() {
	ps.stores.Plans.ForEach(func(plan *models.Plan) bool {
		idx := plan.NextUnnotified()
		if idx == -1 {
			// exhausted plan, the reaper's business
			return true
		}
		if err := ps.notifyEntry(plan, idx); err != nil {
			ps.metrics.IncNotifications(string(mailer.KindPlan), false)
			ps.logger.Errorf(providers.TypeApp, "Failed to notify plan %s: %s", plan.ID, err)
			return true
		}
		ps.metrics.IncNotifications(string(mailer.KindPlan), true)

		plan.ToWatch[idx].Notified = true
		ps.stores.Plans.Put(plan)
		return true
	})
}

func (ps *PlanService) notifyEntry(plan *models.Plan, idx int) error {
	entry := plan.ToWatch[idx]

	content, ok := ps.stores.Content.Get(entry.ContentID)
	if !ok {
		return fmt.Errorf("content %s: %w", entry.ContentID, models.ErrNotFound)
	}
	user, ok := ps.stores.Users.Get(plan.UserID)
	if !ok {
		return fmt.Errorf("user %s: %w", plan.UserID, models.ErrNotFound)
	}

	values := map[string]string{
		mailer.ValueUserName:      user.FirstName,
		mailer.ValueVideoTitle:    content.Title,
		mailer.ValueVideoDuration: strconv.Itoa(content.DurationMin),
	}
	return ps.notifier.Send(user.Email, mailer.KindPlan, values)
}

// ReapCompleted deletes every plan with no remaining work. Deletion is
// immediate; a plan with any unnotified entry survives.
func (ps *PlanService) ReapCompleted() {
	ps.stores.Plans.ForEach(func(plan *models.Plan) bool {
		if !plan.AllNotified() {
			return true
		}
		ps.stores.Plans.Delete(plan.ID)
		ps.metrics.IncPlansReaped()
		ps.logger.Infof(providers.TypeApp, "Reaped completed plan %s of user %s", plan.ID, plan.UserID)
		return true
	})
}
