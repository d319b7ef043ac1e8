package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	webstorage "github.com/taskmate/taskmate-web/internal/services/web/storage"
	"go.uber.org/zap"
)

// DefaultSweepSchedule runs the expired-session sweep every 15 minutes.
const DefaultSweepSchedule = "@every 15m"

// Sweeper periodically deletes expired sessions.
type Sweeper struct {
	cron   *cron.Cron
	store  webstorage.SessionStore
	logger *zap.Logger
	now    func() time.Time
}

// NewSweeper schedules the sweep on schedule (cron spec or @every
// descriptor). An empty schedule uses DefaultSweepSchedule.
func NewSweeper(store webstorage.SessionStore, schedule string, logger *zap.Logger) (*Sweeper, error) {
	if store == nil {
		return nil, fmt.Errorf("session sweeper: store is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	s := &Sweeper{
		cron:   cron.New(),
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
	if _, err := s.cron.AddFunc(schedule, func() { s.Sweep(context.Background()) }); err != nil {
		return nil, fmt.Errorf("session sweeper: schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start begins running scheduled sweeps in the background.
func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

// Sweep deletes expired sessions once and returns how many were removed.
func (s *Sweeper) Sweep(ctx context.Context) int64 {
	deleted, err := s.store.DeleteExpiredSessions(ctx, s.now())
	if err != nil {
		s.logger.Warn("sweep expired sessions", zap.Error(err))
		return 0
	}
	if deleted > 0 {
		s.logger.Info("swept expired sessions", zap.Int64("deleted", deleted))
	}
	return deleted
}
