// Package jobs owns the process-wide timer that fires the batch work on
// fixed daily schedules. The scheduler holds no business logic; each job
// is a plain callable over injected collaborators and an injected clock.
package jobs

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"
	"github.com/roylee0704/gron/xtime"
	"go.uber.org/atomic"

	"mindd/internal/persistence"
	"mindd/internal/providers"
	"mindd/internal/services"
	"mindd/internal/structures"
)

// Job names as they appear in logs and metrics labels.
const (
	JobPlanReap   = "plan-reap"
	JobPlanNotify = "plan-notify"
	JobEngagement = "engagement-scan"
	JobPersist    = "persist"
)

type SchedulerInterface interface {
	Init()
	Stop()
	Restore() error
	Persist() error
}

// Scheduler wires four recurring jobs: snapshot persistence on a short
// interval, plan reaping at one daily time and plan notification plus the
// engagement scan at another. Daily granularity makes overlap unlikely,
// but each job still carries its own busy flag so a slow run is skipped
// rather than doubled.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	clock       providers.Clock
	plans       services.PlanServiceInterface
	engagement  services.EngagementServiceInterface
	metrics     providers.MetricsProviderInterface
	fileManager *persistence.FileManager
	cron        *gron.Cron
	opsMu       sync.Mutex

	reapBusy    atomic.Bool
	notifyBusy  atomic.Bool
	engageBusy  atomic.Bool
	persistBusy atomic.Bool
}

func NewScheduler(config *structures.Config, logger providers.Logger, clock providers.Clock, plans services.PlanServiceInterface, engagement services.EngagementServiceInterface, fileManager *persistence.FileManager, metrics providers.MetricsProviderInterface) SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		clock:       clock,
		plans:       plans,
		engagement:  engagement,
		fileManager: fileManager,
		metrics:     metrics,
	}
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		s.run(JobPersist, &s.persistBusy, func() {
			if err := s.Persist(); err != nil {
				s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
			}
		})
	})

	s.cron.AddFunc(gron.Every(1*xtime.Day).At(s.config.Scheduler.ReapAt), func() {
		s.run(JobPlanReap, &s.reapBusy, s.plans.ReapCompleted)
	})

	// Notification runs before the engagement scan within the same tick;
	// both failures stay inside their own job.
	s.cron.AddFunc(gron.Every(1*xtime.Day).At(s.config.Scheduler.NotifyAt), func() {
		s.run(JobPlanNotify, &s.notifyBusy, s.plans.NotifyDue)
		s.run(JobEngagement, &s.engageBusy, func() {
			s.engagement.ScanOnce(s.clock.Now())
		})
	})

	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Scheduler started: reap at %s, notify at %s, save every %s",
		s.config.Scheduler.ReapAt, s.config.Scheduler.NotifyAt, s.config.Persistence.SaveInterval)
}

// run executes one job fire: skips if the previous fire of the same job
// is still going, contains panics to the job boundary, and records
// duration and outcome. A failed tick is retried by the next scheduled
// fire, never immediately.
func (s *Scheduler) run(name string, busy *atomic.Bool, fn func()) {
	if !busy.CompareAndSwap(false, true) {
		s.logger.Warnf(providers.TypeApp, "Job %s still running, skipping this fire", name)
		return
	}
	defer busy.Store(false)

	start := time.Now()
	ok := true
	func() {
		defer func() {
			if r := recover(); r != nil {
				ok = false
				s.logger.Errorf(providers.TypeApp, "Job %s panicked: %v", name, r)
			}
		}()
		fn()
	}()

	s.metrics.ObserveJobDuration(name, time.Since(start))
	s.metrics.IncJobRuns(name, ok)
	s.logger.Infof(providers.TypeApp, "Job %s finished in %s", name, time.Since(start))
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	start := time.Now()
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	if err != nil {
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	s.logger.Infof(providers.TypeApp, "Persisted data to file %s", s.config.Persistence.FilePath)
	return nil
}
