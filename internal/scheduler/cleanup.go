// Package scheduler runs the periodic release of bookings whose slot is over.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"roombook/config"
	"roombook/infras/otel"
	"roombook/internal/domains/booking/model"
	"roombook/shared/constant"
	"roombook/shared/failure"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultInterval = time.Hour

// Releaser is the part of the booking engine the cleanup job needs.
type Releaser interface {
	GetExpired(ctx context.Context) ([]model.BookingDetail, error)
	ReleaseExpired(ctx context.Context, booking model.Booking) error
}

type Cleanup struct {
	bookings Releaser
	interval time.Duration
	otel     otel.Otel
}

func NewCleanup(bookings Releaser, cfg *config.Config, otel otel.Otel) *Cleanup {
	interval := time.Duration(cfg.Booking.CleanupIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = defaultInterval
	}

	return &Cleanup{
		bookings: bookings,
		interval: interval,
		otel:     otel,
	}
}

func (c *Cleanup) Interval() time.Duration {
	return c.interval
}

// RunOnce releases every expired booking and returns how many were released.
// A booking that fails to release is logged and skipped, one already gone is skipped silently.
func (c *Cleanup) RunOnce(ctx context.Context) (released int, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelSchedulerScopeName, constant.OtelSchedulerScopeName+".cleanup.RunOnce")
	defer scope.End()
	defer scope.TraceIfError(err)

	expired, err := c.bookings.GetExpired(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load expired bookings")

		return 0, fmt.Errorf("failed to load expired bookings: %w", err)
	}

	for _, detail := range expired {
		if ctx.Err() != nil {
			return released, ctx.Err()
		}

		err := c.bookings.ReleaseExpired(ctx, detail.Booking())
		if errors.Is(err, failure.ErrBookingNotFound) {
			continue
		}

		if err != nil {
			log.Error().Err(err).
				Str("booking_id", detail.ID).
				Str("room", detail.RoomName).
				Str("date", detail.BookingDate.String()).
				Msg("failed to release expired booking")

			continue
		}

		released++
	}

	if released > 0 {
		log.Info().Int("released", released).Int("expired", len(expired)).Msg("released expired bookings")
	}

	return released, nil
}

// Run performs one cycle right away and then one per interval until ctx is done.
func (c *Cleanup) Run(ctx context.Context) {
	log.Info().Dur("interval", c.interval).Msg("booking cleanup started")

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		if _, err := c.RunOnce(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("booking cleanup cycle failed")
		}

		select {
		case <-ctx.Done():
			log.Info().Msg("booking cleanup stopped")

			return
		case <-ticker.C:
		}
	}
}
