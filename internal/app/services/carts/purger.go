package carts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/R3E-Network/petstore/internal/logging"
)

// Purger periodically drops carts that have been idle for longer than the
// configured TTL.
type Purger struct {
	service  *Service
	ttl      time.Duration
	schedule string
	log      *logging.Logger

	mu   sync.Mutex
	cron *cron.Cron
}

// NewPurger returns a purger running on a cron schedule such as "@every 10m".
func NewPurger(service *Service, ttl time.Duration, schedule string, log *logging.Logger) *Purger {
	if log == nil {
		log = logging.NewDefault("cart-purger")
	}
	return &Purger{service: service, ttl: ttl, schedule: schedule, log: log}
}

func (p *Purger) Name() string { return "cart-purger" }

// Start registers the purge job and starts the scheduler.
func (p *Purger) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cron != nil {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(p.schedule, p.run); err != nil {
		return fmt.Errorf("schedule cart purge %q: %w", p.schedule, err)
	}
	c.Start()
	p.cron = c

	p.log.WithField("schedule", p.schedule).
		WithField("ttl", p.ttl.String()).
		Info("cart purger started")
	return nil
}

// Stop halts the scheduler and waits for a running purge to finish, or for
// ctx to expire.
func (p *Purger) Stop(ctx context.Context) error {
	p.mu.Lock()
	c := p.cron
	p.cron = nil
	p.mu.Unlock()
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

func (p *Purger) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := p.service.PurgeIdle(ctx, p.ttl); err != nil {
		p.log.WithError(err).Warn("purge idle carts")
	}
}
