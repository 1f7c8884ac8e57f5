// Package poller keeps the room registry and the booking ledger fresh, and re-polls
// the upstream timer of every monitored booking.
package poller

import (
	"context"
	"fmt"
	"sync"

	"lodge/config"
	"lodge/infras/otel"
	bookingRepo "lodge/internal/domains/booking/repository"
	lifecycleService "lodge/internal/domains/lifecycle/service"
	roomRepo "lodge/internal/domains/room/repository"
	"lodge/shared/constant"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

type Poller struct {
	cron      *cron.Cron
	registry  roomRepo.Registry
	ledger    bookingRepo.Ledger
	lifecycle lifecycleService.Lifecycle
	cfg       *config.Config
	otel      otel.Otel

	mu      sync.Mutex
	started bool
}

func New(registry roomRepo.Registry, ledger bookingRepo.Ledger, lifecycle lifecycleService.Lifecycle, cfg *config.Config, otel otel.Otel) *Poller {
	return &Poller{
		cron:      cron.New(cron.WithSeconds()),
		registry:  registry,
		ledger:    ledger,
		lifecycle: lifecycle,
		cfg:       cfg,
		otel:      otel,
	}
}

// Start schedules the refresh job and returns immediately. The scheduler stops when ctx is done.
func (p *Poller) Start(ctx context.Context) error {
	if !p.cfg.Poller.Enable {
		log.Info().Msg("poller disabled")

		return nil
	}

	interval := p.cfg.Poller.IntervalSeconds
	if interval <= 0 {
		return fmt.Errorf("poller interval must be positive, got %d", interval)
	}

	spec := fmt.Sprintf("@every %ds", interval)

	_, err := p.cron.AddFunc(spec, func() {
		p.Run(context.WithoutCancel(ctx))
	})
	if err != nil {
		return fmt.Errorf("failed to schedule poller: %w", err)
	}

	p.mu.Lock()
	p.started = true
	p.mu.Unlock()

	p.cron.Start()

	log.Info().Str("schedule", spec).Msg("poller started")

	go func() {
		<-ctx.Done()
		p.Stop()
	}()

	return nil
}

// Stop waits for a running job to finish. Calling it more than once is harmless.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.started = false

	<-p.cron.Stop().Done()

	log.Info().Msg("poller stopped")
}

// Run performs one refresh cycle. Failures are logged and never stop later cycles.
func (p *Poller) Run(ctx context.Context) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelPollerScopeName, constant.OtelPollerScopeName+".Run")
	defer scope.End()

	if _, err := p.registry.Refresh(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refresh rooms")
	}

	if _, err := p.ledger.Refresh(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refresh bookings")
	}

	watched := p.lifecycle.Watched()
	scope.SetAttribute("poller.watched", len(watched))

	for _, code := range watched {
		if _, err := p.lifecycle.Monitor(ctx, code); err != nil {
			log.Warn().Err(err).Str("booking_code", code).Msg("failed to poll booking timer")
		}
	}
}
