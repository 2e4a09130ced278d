package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindd/internal/mailer"
	"mindd/internal/models"
	"mindd/internal/testutil"
)

type planFixture struct {
	svc      PlanServiceInterface
	stores   *models.Stores
	notifier *testutil.MockNotifier
	logger   *testutil.MockLogger
	metrics  *testutil.MockMetrics
}

func newPlanFixture() *planFixture {
	stores := models.NewStores()
	notifier := testutil.NewMockNotifier()
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	return &planFixture{
		svc:      NewPlanService(stores, notifier, logger, metrics),
		stores:   stores,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
	}
}

func (f *planFixture) seedVideos(n int) {
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("v%d", i)
		f.stores.Content.Put(&models.ContentItem{
			ID: id, Title: "Video " + id, Type: models.ContentTypeVideo, DurationMin: 10 + i,
		})
	}
}

func (f *planFixture) seedUser(id, name, email string) {
	f.stores.Users.Put(&models.User{ID: id, FirstName: name, Email: email})
}

func TestPlanCreate_HappyPath(t *testing.T) {
	f := newPlanFixture()
	f.seedVideos(5)
	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	plan, err := f.svc.Create("u1", models.LevelEasy, now)
	require.NoError(t, err)

	assert.NotEmpty(t, plan.ID)
	assert.Equal(t, "u1", plan.UserID)
	assert.Equal(t, models.LevelEasy, plan.Level)
	assert.Equal(t, now, plan.CreatedAt)
	require.Len(t, plan.ToWatch, 3)

	seen := map[string]bool{}
	for _, entry := range plan.ToWatch {
		assert.False(t, entry.Notified)
		assert.False(t, seen[entry.ContentID], "entry %s repeated", entry.ContentID)
		seen[entry.ContentID] = true
	}

	stored, ok := f.stores.Plans.Get(plan.ID)
	require.True(t, ok)
	assert.Len(t, stored.ToWatch, 3)
	assert.Equal(t, 1, f.metrics.PlansCreated["EASY"])
}

func TestPlanCreate_ShortCatalogFailsLoud(t *testing.T) {
	f := newPlanFixture()
	f.seedVideos(2)

	_, err := f.svc.Create("u1", models.LevelEasy, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInsufficientContent)
	assert.Equal(t, 0, f.stores.Plans.Len(), "a failed create must leave nothing behind")
}

func TestPlanCreate_IgnoresAudioContent(t *testing.T) {
	f := newPlanFixture()
	f.seedVideos(3)
	for i := 0; i < 10; i++ {
		f.stores.Content.Put(&models.ContentItem{
			ID: fmt.Sprintf("a%d", i), Title: "Audio", Type: models.ContentTypeAudio,
		})
	}

	plan, err := f.svc.Create("u1", models.LevelEasy, time.Now())
	require.NoError(t, err)
	for _, entry := range plan.ToWatch {
		item, ok := f.stores.Content.Get(entry.ContentID)
		require.True(t, ok)
		assert.Equal(t, models.ContentTypeVideo, item.Type)
	}

	// audio alone can never satisfy a bigger level
	_, err = f.svc.Create("u1", models.LevelIntermediate, time.Now())
	assert.ErrorIs(t, err, models.ErrInsufficientContent)
}

func TestPlanCreate_InvalidLevel(t *testing.T) {
	f := newPlanFixture()
	f.seedVideos(10)

	_, err := f.svc.Create("u1", models.PlanLevel(5), time.Now())
	assert.ErrorIs(t, err, models.ErrInvalidLevel)
}

func TestPlanCreate_EmptyUserID(t *testing.T) {
	f := newPlanFixture()
	f.seedVideos(10)

	_, err := f.svc.Create("", models.LevelEasy, time.Now())
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestPlanCreate_MultiplePlansPerUser(t *testing.T) {
	f := newPlanFixture()
	f.seedVideos(10)
	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	_, err := f.svc.Create("u1", models.LevelEasy, base)
	require.NoError(t, err)
	_, err = f.svc.Create("u1", models.LevelEasy, base.Add(time.Hour))
	require.NoError(t, err)

	plans := f.svc.ListForUser("u1")
	assert.Len(t, plans, 2, "a user may hold several plans of the same level")
}

func TestNotifyDue_AdvancesOneEntryPerTick(t *testing.T) {
	f := newPlanFixture()
	f.seedVideos(3)
	f.seedUser("u1", "Ada", "ada@example.com")

	plan, err := f.svc.Create("u1", models.LevelEasy, time.Now())
	require.NoError(t, err)

	f.svc.NotifyDue()

	stored, _ := f.stores.Plans.Get(plan.ID)
	assert.True(t, stored.ToWatch[0].Notified)
	assert.False(t, stored.ToWatch[1].Notified)
	assert.False(t, stored.ToWatch[2].Notified)

	require.Len(t, f.notifier.Sent, 1)
	msg := f.notifier.Sent[0]
	assert.Equal(t, "ada@example.com", msg.Recipient)
	assert.Equal(t, mailer.KindPlan, msg.Kind)
	assert.Equal(t, "Ada", msg.Values[mailer.ValueUserName])

	item, _ := f.stores.Content.Get(stored.ToWatch[0].ContentID)
	assert.Equal(t, item.Title, msg.Values[mailer.ValueVideoTitle])
}

func TestNotifyDue_EntriesNotifiedInOrder(t *testing.T) {
	f := newPlanFixture()
	f.seedVideos(3)
	f.seedUser("u1", "Ada", "ada@example.com")

	plan, err := f.svc.Create("u1", models.LevelEasy, time.Now())
	require.NoError(t, err)

	for tick := 0; tick < 3; tick++ {
		f.svc.NotifyDue()
		stored, _ := f.stores.Plans.Get(plan.ID)
		for i := range stored.ToWatch {
			assert.Equal(t, i <= tick, stored.ToWatch[i].Notified,
				"tick %d entry %d", tick, i)
		}
	}

	// a fourth tick has nothing left to send
	f.svc.NotifyDue()
	assert.Len(t, f.notifier.Sent, 3)
}

func TestNotifyDue_FailureLeavesEntryForRetry(t *testing.T) {
	f := newPlanFixture()
	f.seedVideos(3)
	f.seedUser("u1", "Ada", "ada@example.com")

	plan, err := f.svc.Create("u1", models.LevelEasy, time.Now())
	require.NoError(t, err)

	f.notifier.FailAll = errors.New("smtp down")
	f.svc.NotifyDue()

	stored, _ := f.stores.Plans.Get(plan.ID)
	assert.False(t, stored.ToWatch[0].Notified, "failed dispatch must not flip the flag")
	assert.Equal(t, 1, f.metrics.Notifications["PLAN:error"])
	assert.GreaterOrEqual(t, f.logger.CountByLevel("error"), 1)

	// transport recovers, the next tick retries the same entry
	f.notifier.FailAll = nil
	f.svc.NotifyDue()
	stored, _ = f.stores.Plans.Get(plan.ID)
	assert.True(t, stored.ToWatch[0].Notified)
	assert.False(t, stored.ToWatch[1].Notified)
}

func TestNotifyDue_FailureIsolatedPerPlan(t *testing.T) {
	f := newPlanFixture()
	f.seedVideos(3)
	f.seedUser("u1", "Ada", "ada@example.com")
	f.seedUser("u2", "Ben", "ben@example.com")

	p1, err := f.svc.Create("u1", models.LevelEasy, time.Now())
	require.NoError(t, err)
	p2, err := f.svc.Create("u2", models.LevelEasy, time.Now())
	require.NoError(t, err)

	f.notifier.FailFor["ada@example.com"] = errors.New("mailbox full")
	f.svc.NotifyDue()

	s1, _ := f.stores.Plans.Get(p1.ID)
	s2, _ := f.stores.Plans.Get(p2.ID)
	assert.False(t, s1.ToWatch[0].Notified)
	assert.True(t, s2.ToWatch[0].Notified, "one user's failure must not stop the sweep")
}

func TestNotifyDue_MissingContentIsFailure(t *testing.T) {
	f := newPlanFixture()
	f.seedUser("u1", "Ada", "ada@example.com")
	f.stores.Plans.Put(&models.Plan{
		ID: "p1", UserID: "u1", Level: models.LevelEasy,
		ToWatch: []models.PlanEntry{{ContentID: "gone"}},
	})

	f.svc.NotifyDue()

	stored, _ := f.stores.Plans.Get("p1")
	assert.False(t, stored.ToWatch[0].Notified)
	assert.Empty(t, f.notifier.Sent)
	assert.Equal(t, 1, f.metrics.Notifications["PLAN:error"])
}

func TestNotifyDue_MissingUserIsFailure(t *testing.T) {
	f := newPlanFixture()
	f.seedVideos(3)

	plan, err := f.svc.Create("ghost", models.LevelEasy, time.Now())
	require.NoError(t, err)

	f.svc.NotifyDue()

	stored, _ := f.stores.Plans.Get(plan.ID)
	assert.False(t, stored.ToWatch[0].Notified)
	assert.Empty(t, f.notifier.Sent)
}

func TestReapCompleted_DeletesOnlyExhaustedPlans(t *testing.T) {
	f := newPlanFixture()
	f.stores.Plans.Put(&models.Plan{
		ID: "done", UserID: "u1", Level: models.LevelEasy,
		ToWatch: []models.PlanEntry{
			{ContentID: "v1", Notified: true},
			{ContentID: "v2", Notified: true},
		},
	})
	f.stores.Plans.Put(&models.Plan{
		ID: "partial", UserID: "u1", Level: models.LevelEasy,
		ToWatch: []models.PlanEntry{
			{ContentID: "v1", Notified: true},
			{ContentID: "v2"},
		},
	})

	f.svc.ReapCompleted()

	_, ok := f.stores.Plans.Get("done")
	assert.False(t, ok)
	_, ok = f.stores.Plans.Get("partial")
	assert.True(t, ok, "a plan with pending work survives the reaper")
	assert.Equal(t, 1, f.metrics.PlansReaped)
}

func TestReapCompleted_Idempotent(t *testing.T) {
	f := newPlanFixture()
	f.stores.Plans.Put(&models.Plan{
		ID: "done", UserID: "u1", Level: models.LevelEasy,
		ToWatch: []models.PlanEntry{{ContentID: "v1", Notified: true}},
	})

	f.svc.ReapCompleted()
	f.svc.ReapCompleted()

	assert.Equal(t, 0, f.stores.Plans.Len())
	assert.Equal(t, 1, f.metrics.PlansReaped)
}
