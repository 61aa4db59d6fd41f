package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/R3E-Network/petstore/internal/logging"
)

// LimiterSweeper periodically drops rate limiter entries of clients that
// have been quiet for longer than maxIdle.
type LimiterSweeper struct {
	limiter  *RateLimiter
	maxIdle  time.Duration
	schedule string
	log      *logging.Logger

	mu   sync.Mutex
	cron *cron.Cron
}

// NewLimiterSweeper returns a sweeper running on a cron schedule such as
// "@every 1m".
func NewLimiterSweeper(limiter *RateLimiter, maxIdle time.Duration, schedule string, log *logging.Logger) *LimiterSweeper {
	if log == nil {
		log = logging.NewDefault("limiter-sweeper")
	}
	return &LimiterSweeper{limiter: limiter, maxIdle: maxIdle, schedule: schedule, log: log}
}

func (s *LimiterSweeper) Name() string { return "limiter-sweeper" }

// Start schedules the sweep.
func (s *LimiterSweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(s.schedule, s.sweep); err != nil {
		return fmt.Errorf("schedule limiter sweep %q: %w", s.schedule, err)
	}
	c.Start()
	s.cron = c
	return nil
}

// Stop halts the scheduler.
func (s *LimiterSweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()
	if c == nil {
		return nil
	}

	select {
	case <-c.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *LimiterSweeper) sweep() {
	if removed := s.limiter.Cleanup(s.maxIdle); removed > 0 {
		s.log.WithField("removed", removed).
			WithField("tracked", s.limiter.Len()).
			Debug("swept idle rate limiters")
	}
}
