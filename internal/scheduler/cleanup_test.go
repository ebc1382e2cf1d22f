package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roombook/config"
	"roombook/infras/otel/mocks"
	"roombook/internal/domains/booking/model"
	bookingMocks "roombook/internal/domains/booking/service/mocks"
	"roombook/internal/scheduler"
	"roombook/shared/failure"
	gModel "roombook/shared/model"
)

func expiredBookings() []model.BookingDetail {
	return []model.BookingDetail{
		{ID: "b-1", TimeSlotID: "s-1", RoomName: "Lab", BookingDate: gModel.NewDate(2026, time.October, 12)},
		{ID: "b-2", TimeSlotID: "s-2", RoomName: "Lab", BookingDate: gModel.NewDate(2026, time.October, 13)},
		{ID: "b-3", TimeSlotID: "s-3", RoomName: "Hall", BookingDate: gModel.NewDate(2026, time.October, 14)},
	}
}

func TestCleanup_RunOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookings := bookingMocks.NewMockBooking(ctrl)

	cfg := &config.Config{}
	cfg.Booking.CleanupIntervalSeconds = 60

	cleanup := scheduler.NewCleanup(mockBookings, cfg, mocks.NewOtel())

	tests := []struct {
		name         string
		setupMock    func()
		wantReleased int
		wantErr      bool
	}{
		{
			name: "releases every expired booking",
			setupMock: func() {
				mockBookings.EXPECT().GetExpired(gomock.Any()).Return(expiredBookings(), nil)
				mockBookings.EXPECT().ReleaseExpired(gomock.Any(), gomock.Any()).Return(nil).Times(3)
			},
			wantReleased: 3,
		},
		{
			name: "skips bookings that fail to release",
			setupMock: func() {
				mockBookings.EXPECT().GetExpired(gomock.Any()).Return(expiredBookings(), nil)
				mockBookings.EXPECT().ReleaseExpired(gomock.Any(), model.Booking{ID: "b-1", TimeSlotID: "s-1", BookingDate: gModel.NewDate(2026, time.October, 12)}).Return(nil)
				mockBookings.EXPECT().ReleaseExpired(gomock.Any(), model.Booking{ID: "b-2", TimeSlotID: "s-2", BookingDate: gModel.NewDate(2026, time.October, 13)}).Return(errors.New("database error"))
				mockBookings.EXPECT().ReleaseExpired(gomock.Any(), model.Booking{ID: "b-3", TimeSlotID: "s-3", BookingDate: gModel.NewDate(2026, time.October, 14)}).Return(nil)
			},
			wantReleased: 2,
		},
		{
			name: "booking released by someone else is not counted",
			setupMock: func() {
				mockBookings.EXPECT().GetExpired(gomock.Any()).Return(expiredBookings(), nil)
				mockBookings.EXPECT().ReleaseExpired(gomock.Any(), model.Booking{ID: "b-1", TimeSlotID: "s-1", BookingDate: gModel.NewDate(2026, time.October, 12)}).Return(failure.ErrBookingNotFound)
				mockBookings.EXPECT().ReleaseExpired(gomock.Any(), gomock.Any()).Return(nil).Times(2)
			},
			wantReleased: 2,
		},
		{
			name: "nothing expired",
			setupMock: func() {
				mockBookings.EXPECT().GetExpired(gomock.Any()).Return([]model.BookingDetail{}, nil)
			},
			wantReleased: 0,
		},
		{
			name: "loading expired bookings fails",
			setupMock: func() {
				mockBookings.EXPECT().GetExpired(gomock.Any()).Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			released, err := cleanup.RunOnce(context.Background())

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantReleased, released)
		})
	}
}

func TestCleanup_Interval(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, time.Hour, scheduler.NewCleanup(nil, cfg, mocks.NewOtel()).Interval())

	cfg.Booking.CleanupIntervalSeconds = 30
	assert.Equal(t, 30*time.Second, scheduler.NewCleanup(nil, cfg, mocks.NewOtel()).Interval())
}

func TestCleanup_RunStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookings := bookingMocks.NewMockBooking(ctrl)

	cfg := &config.Config{}
	cfg.Booking.CleanupIntervalSeconds = 3600

	ctx, cancel := context.WithCancel(context.Background())

	ran := make(chan struct{})

	mockBookings.EXPECT().GetExpired(gomock.Any()).DoAndReturn(func(context.Context) ([]model.BookingDetail, error) {
		close(ran)

		return nil, errors.New("database error")
	}).Times(1)

	done := make(chan struct{})

	go func() {
		scheduler.NewCleanup(mockBookings, cfg, mocks.NewOtel()).Run(ctx)
		close(done)
	}()

	<-ran
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup did not stop after cancel")
	}
}
