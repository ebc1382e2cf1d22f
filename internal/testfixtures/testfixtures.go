// Package testfixtures builds a throwaway SQLite database with the real schema for integration tests.
package testfixtures

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"roombook/helper"
	"roombook/infras/database"
	"roombook/infras/otel"
	"roombook/infras/otel/mocks"
	bookingRepo "roombook/internal/domains/booking/repository"
	roomRepo "roombook/internal/domains/room/repository"
	userModel "roombook/internal/domains/user/model"
	userRepo "roombook/internal/domains/user/repository"
	"roombook/shared/constant"
	gModel "roombook/shared/model"
	gRepo "roombook/shared/repository"
	"roombook/shared/timezone"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Clock is a settable time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = now
}

// At returns the instant of hour:minute on the given day in the application timezone.
func At(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, timezone.GetLocation())
}

type Env struct {
	DB         *database.Connection
	Otel       otel.Otel
	Transactor gRepo.Transactor
	Clock      *Clock

	Rooms          roomRepo.Room
	Slots          roomRepo.TimeSlot
	Bookings       bookingRepo.Booking
	BookingDetails bookingRepo.BookingDetail
	Users          userRepo.User
}

// New opens a fresh database in the test's temp dir and applies every migration.
func New(t testing.TB, now time.Time) *Env {
	t.Helper()

	conn, err := database.NewSQLite(filepath.Join(t.TempDir(), "roombook.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
	})

	require.NoError(t, helper.ApplySchema(context.Background(), conn.Write))

	otl := mocks.NewOtel()

	return &Env{
		DB:             conn,
		Otel:           otl,
		Transactor:     gRepo.NewTransactor(conn, otl),
		Clock:          NewClock(now),
		Rooms:          roomRepo.New(conn, otl),
		Slots:          roomRepo.NewTimeSlot(conn, otl),
		Bookings:       bookingRepo.New(conn, otl),
		BookingDetails: bookingRepo.NewDetail(conn, otl),
		Users:          userRepo.New(conn, otl),
	}
}

// NowFunc hands the env clock to services.
func (e *Env) NowFunc() timezone.NowFunc {
	return e.Clock.Now
}

// SeedUser inserts an active user with the given role.
func (e *Env) SeedUser(t testing.TB, email, role string) userModel.User {
	t.Helper()

	user := userModel.User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: "not-a-real-hash",
		FullName: email,
		Role:     role,
		Active:   true,
		Metadata: gModel.NewMetadata(constant.Empty),
	}

	require.NoError(t, e.Users.Insert(context.Background(), user))

	return user
}
