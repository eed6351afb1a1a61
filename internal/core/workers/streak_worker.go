package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/comitanigiacomo/momentum/internal/core/domain"
	"github.com/comitanigiacomo/momentum/internal/core/streaks"
	"github.com/comitanigiacomo/momentum/internal/logger"
)

// DefaultRefreshSpec runs five minutes past midnight (seconds field first).
const DefaultRefreshSpec = "0 5 0 * * *"

type StreakJob struct {
	Reason string
}

// StreakWorker keeps the cached streak fields of stored habits in step with
// the calendar. A current streak can drop to zero at midnight without any
// write, so the whole list is recomputed on a cron schedule and on demand.
type StreakWorker struct {
	repo  domain.HabitRepository
	clock domain.Clock
	cron  *cron.Cron
	spec  string
	jobs  chan StreakJob

	writeMu *sync.Mutex
}

// NewStreakWorker builds the worker. writeMu is the lock shared with the
// services writing to repo; nil gives the worker a private lock.
func NewStreakWorker(repo domain.HabitRepository, clock domain.Clock, loc *time.Location, spec string, writeMu *sync.Mutex) *StreakWorker {
	if loc == nil {
		loc = time.Local
	}
	if spec == "" {
		spec = DefaultRefreshSpec
	}
	if writeMu == nil {
		writeMu = &sync.Mutex{}
	}

	return &StreakWorker{
		repo:  repo,
		clock: clock,
		cron:  cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		spec:  spec,
		jobs:  make(chan StreakJob, 16),

		writeMu: writeMu,
	}
}

// Start registers the schedule and processes jobs until ctx is cancelled.
func (w *StreakWorker) Start(ctx context.Context) error {
	if _, err := w.cron.AddFunc(w.spec, func() { w.Enqueue("schedule") }); err != nil {
		return fmt.Errorf("invalid streak refresh schedule %q: %w", w.spec, err)
	}
	w.cron.Start()

	go func() {
		logger.Info("[WORKER] Streak worker started", "schedule", w.spec)
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				<-w.cron.Stop().Done()
				logger.Info("[WORKER] Streak worker shutting down")
				return
			}
		}
	}()

	return nil
}

func (w *StreakWorker) Enqueue(reason string) {
	select {
	case w.jobs <- StreakJob{Reason: reason}:
	default:
		logger.Warn("[WORKER] Queue full, dropping streak refresh", "reason", reason)
	}
}

func (w *StreakWorker) processJob(ctx context.Context, job StreakJob) {
	changed, err := w.RefreshNow(ctx)
	if err != nil {
		logger.Error("[WORKER] Streak refresh failed", "reason", job.Reason, "error", err)
		return
	}
	logger.Debug("[WORKER] Streak refresh done", "reason", job.Reason, "changed", changed)
}

// RefreshNow recomputes every habit and saves only when a cached value moved.
// It returns how many habits changed.
func (w *StreakWorker) RefreshNow(ctx context.Context) (int, error) {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	habits, err := w.repo.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load habits: %w", err)
	}

	changed := streaks.RecomputeAll(habits, w.clock.Now())
	if changed == 0 {
		return 0, nil
	}

	if err := w.repo.Save(ctx, habits); err != nil {
		return 0, fmt.Errorf("failed to save refreshed habits: %w", err)
	}

	logger.Info("[WORKER] Streaks refreshed", "changed", changed)
	return changed, nil
}
