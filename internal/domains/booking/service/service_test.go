package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"roombook/config"
	"roombook/infras/kafka"
	kafkaMocks "roombook/infras/kafka/mocks"
	"roombook/infras/otel/mocks"
	bookingMocks "roombook/internal/domains/booking/mocks"
	"roombook/internal/domains/booking/model"
	"roombook/internal/domains/booking/model/dto"
	"roombook/internal/domains/booking/service"
	roomMocks "roombook/internal/domains/room/mocks"
	roomModel "roombook/internal/domains/room/model"
	cacheMocks "roombook/shared/cache/mocks"
	"roombook/shared/constant"
	"roombook/shared/failure"
	"roombook/shared/identity"
	gModel "roombook/shared/model"
	gRepo "roombook/shared/repository"
	repoMocks "roombook/shared/repository/mocks"
	"roombook/shared/timezone"
	"roombook/shared/weekday"
)

type bookingMocksSet struct {
	repo       *bookingMocks.MockBooking
	detailRepo *bookingMocks.MockBookingDetail
	roomRepo   *roomMocks.MockRoom
	slotRepo   *roomMocks.MockTimeSlot
	transactor *repoMocks.MockTransactor
	cache      *cacheMocks.MockRedisCache
	kafka      *kafkaMocks.MockClient
}

var unitNow = time.Date(2026, time.October, 19, 8, 0, 0, 0, timezone.GetLocation())

func newUnitService(t *testing.T) (service.Booking, bookingMocksSet) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := bookingMocksSet{
		repo:       bookingMocks.NewMockBooking(ctrl),
		detailRepo: bookingMocks.NewMockBookingDetail(ctrl),
		roomRepo:   roomMocks.NewMockRoom(ctrl),
		slotRepo:   roomMocks.NewMockTimeSlot(ctrl),
		transactor: repoMocks.NewMockTransactor(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
		kafka:      kafkaMocks.NewMockClient(ctrl),
	}

	m.transactor.EXPECT().
		WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn gRepo.TxFunc) error {
			return fn(ctx, nil)
		}).
		AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Incr(gomock.Any(), constant.CacheKeyRoomsGeneration, gomock.Any()).Return(int64(1), nil).AnyTimes()
	m.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(m.repo, m.detailRepo, m.roomRepo, m.slotRepo, m.transactor, &config.Config{}, m.cache, m.kafka, mocks.NewOtel(), func() time.Time { return unitNow })

	return svc, m
}

func openRoom() roomModel.Room {
	return roomModel.Room{ID: "room-1", Name: "Lab", OpenDays: weekday.Weekdays}
}

func enabledSlot() roomModel.TimeSlot {
	return roomModel.TimeSlot{
		ID:        "slot-1",
		RoomID:    "room-1",
		StartTime: gModel.NewClock(10, 0),
		EndTime:   gModel.NewClock(11, 0),
		IsEnabled: true,
	}
}

func TestBookingService_Create(t *testing.T) {
	caller := identity.Caller{UserID: "user-1", Role: constant.RoleUser}
	req := dto.CreateBookingRequest{RoomID: "room-1", TimeSlotID: "slot-1", Date: "2026-10-20"}

	tests := []struct {
		name      string
		caller    identity.Caller
		req       dto.CreateBookingRequest
		setupMock func(m bookingMocksSet)
		wantErr   error
		wantCode  int
	}{
		{
			name:   "successful booking",
			caller: caller,
			req:    req,
			setupMock: func(m bookingMocksSet) {
				gomock.InOrder(
					m.roomRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(openRoom(), nil),
					m.slotRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(enabledSlot(), nil),
					m.slotRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), "slot-1").Return(nil),
					m.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil),
					m.repo.EXPECT().
						InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
							assert.Equal(t, "user-1", booking.UserID)
							assert.Equal(t, gModel.NewDate(2026, time.October, 20), booking.BookingDate)

							return nil
						}),
					m.repo.EXPECT().
						GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
						Return([]model.Booking{{ID: "booking-1", UserID: "user-1"}}, nil),
					m.slotRepo.EXPECT().
						UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, _ *sqlx.Tx, update map[string]any, _ any) error {
							assert.Equal(t, true, update[roomModel.FieldIsOccupied])
							assert.Equal(t, "user-1", update[roomModel.FieldBookedByUserID])

							return nil
						}),
				)
			},
		},
		{
			name:      "anonymous caller",
			caller:    identity.Caller{},
			req:       req,
			setupMock: func(bookingMocksSet) {},
			wantCode:  401,
		},
		{
			name:      "malformed date",
			caller:    caller,
			req:       dto.CreateBookingRequest{RoomID: "room-1", TimeSlotID: "slot-1", Date: "20/10/2026"},
			setupMock: func(bookingMocksSet) {},
			wantCode:  400,
		},
		{
			name:   "room missing",
			caller: caller,
			req:    req,
			setupMock: func(m bookingMocksSet) {
				m.roomRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
			},
			wantErr: failure.ErrRoomNotFound,
		},
		{
			name:   "slot of another room",
			caller: caller,
			req:    req,
			setupMock: func(m bookingMocksSet) {
				slot := enabledSlot()
				slot.RoomID = "room-2"

				m.roomRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(openRoom(), nil)
				m.slotRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(slot, nil)
			},
			wantErr: failure.ErrSlotNotFound,
		},
		{
			name:   "disabled slot wins over closed day",
			caller: caller,
			req:    dto.CreateBookingRequest{RoomID: "room-1", TimeSlotID: "slot-1", Date: "2026-10-25"},
			setupMock: func(m bookingMocksSet) {
				slot := enabledSlot()
				slot.IsEnabled = false

				m.roomRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(openRoom(), nil)
				m.slotRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(slot, nil)
			},
			wantErr: failure.ErrSlotDisabled,
		},
		{
			name:   "lost the race on the unique index",
			caller: caller,
			req:    req,
			setupMock: func(m bookingMocksSet) {
				m.roomRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(openRoom(), nil)
				m.slotRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(enabledSlot(), nil)
				m.slotRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), "slot-1").Return(nil)
				m.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				m.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(gRepo.ErrDuplicate)
			},
			wantErr: failure.ErrSlotAlreadyBooked,
		},
		{
			name:   "slot lock fails",
			caller: caller,
			req:    req,
			setupMock: func(m bookingMocksSet) {
				m.roomRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(openRoom(), nil)
				m.slotRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(enabledSlot(), nil)
				m.slotRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), "slot-1").Return(errors.New("lock timeout"))
			},
			wantCode: 500,
		},
		{
			name:   "insert error",
			caller: caller,
			req:    req,
			setupMock: func(m bookingMocksSet) {
				m.roomRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(openRoom(), nil)
				m.slotRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(enabledSlot(), nil)
				m.slotRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), "slot-1").Return(nil)
				m.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				m.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newUnitService(t)
			tt.setupMock(m)

			result, err := svc.Create(context.Background(), tt.caller, tt.req)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantCode != 0:
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			default:
				assert.NoError(t, err)
				assert.NotEmpty(t, result.ID)
				assert.Equal(t, "Lab", result.RoomName)
				assert.Equal(t, gModel.NewClock(10, 0), result.StartTime)
			}
		})
	}
}

func TestBookingService_CheckAvailable(t *testing.T) {
	tuesday := gModel.NewDate(2026, time.October, 20)

	tests := []struct {
		name      string
		setupMock func(m bookingMocksSet)
		want      bool
		wantErr   bool
	}{
		{
			name: "free slot",
			setupMock: func(m bookingMocksSet) {
				m.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openRoom(), nil)
				m.slotRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(enabledSlot(), nil)
				m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			want: true,
		},
		{
			name: "already booked",
			setupMock: func(m bookingMocksSet) {
				m.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openRoom(), nil)
				m.slotRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(enabledSlot(), nil)
				m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
		},
		{
			name: "unknown room is simply unavailable",
			setupMock: func(m bookingMocksSet) {
				m.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
			},
		},
		{
			name: "repository error surfaces",
			setupMock: func(m bookingMocksSet) {
				m.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newUnitService(t)
			tt.setupMock(m)

			available, err := svc.CheckAvailable(context.Background(), "room-1", "slot-1", tuesday)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.want, available)
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	owner := identity.Caller{UserID: "user-1", Role: constant.RoleUser}
	admin := identity.Caller{UserID: "admin-1", Role: constant.RoleAdmin}

	booking := model.Booking{
		ID:          "booking-1",
		BookingDate: gModel.NewDate(2026, time.October, 19),
		RoomID:      "room-1",
		TimeSlotID:  "slot-1",
		UserID:      "user-1",
	}

	tests := []struct {
		name      string
		caller    identity.Caller
		setupMock func(m bookingMocksSet)
		wantErr   error
	}{
		{
			name:   "owner cancels today's booking",
			caller: owner,
			setupMock: func(m bookingMocksSet) {
				gomock.InOrder(
					m.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil),
					m.slotRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), "slot-1").Return(nil),
					m.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil),
					m.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
					m.repo.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil),
					m.slotRepo.EXPECT().
						UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, _ *sqlx.Tx, update map[string]any, _ any) error {
							assert.Equal(t, false, update[roomModel.FieldIsOccupied])
							assert.Nil(t, update[roomModel.FieldBookedByUserID])

							return nil
						}),
				)
			},
		},
		{
			name:   "cancelled concurrently while waiting for the slot",
			caller: owner,
			setupMock: func(m bookingMocksSet) {
				m.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)
				m.slotRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), "slot-1").Return(nil)
				m.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: failure.ErrBookingNotFound,
		},
		{
			name:   "admin must use the admin path",
			caller: admin,
			setupMock: func(m bookingMocksSet) {
				m.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)
			},
			wantErr: failure.ErrNotOwner,
		},
		{
			name:   "yesterday",
			caller: owner,
			setupMock: func(m bookingMocksSet) {
				past := booking
				past.BookingDate = gModel.NewDate(2026, time.October, 18)

				m.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(past, nil)
			},
			wantErr: failure.ErrBookingInPast,
		},
		{
			name:   "missing",
			caller: owner,
			setupMock: func(m bookingMocksSet) {
				m.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantErr: failure.ErrBookingNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newUnitService(t)
			tt.setupMock(m)

			err := svc.Cancel(context.Background(), tt.caller, booking.ID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_ReleaseUserBookingsTx(t *testing.T) {
	t.Run("no bookings", func(t *testing.T) {
		svc, m := newUnitService(t)
		m.repo.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		released, err := svc.ReleaseUserBookingsTx(context.Background(), nil, "user-1")

		assert.NoError(t, err)
		assert.Zero(t, released)
	})

	t.Run("each slot is synced once", func(t *testing.T) {
		svc, m := newUnitService(t)

		bookings := []model.Booking{
			{ID: "b1", TimeSlotID: "slot-1", UserID: "user-1"},
			{ID: "b2", TimeSlotID: "slot-1", UserID: "user-1"},
			{ID: "b3", TimeSlotID: "slot-2", UserID: "user-1"},
		}

		gomock.InOrder(
			m.repo.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(bookings, nil),
			m.slotRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), "slot-1").Return(nil),
			m.slotRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), "slot-2").Return(nil),
			m.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		)
		m.repo.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
		m.slotRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

		released, err := svc.ReleaseUserBookingsTx(context.Background(), nil, "user-1")

		assert.NoError(t, err)
		assert.Equal(t, 3, released)
	})
}

func TestBookingService_GetExpired(t *testing.T) {
	svc, m := newUnitService(t)

	m.detailRepo.EXPECT().
		GetExpired(gomock.Any(), gModel.NewDate(2026, time.October, 19), gModel.NewClock(8, 0)).
		Return(nil, errors.New("db down"))

	_, err := svc.GetExpired(context.Background())
	assert.Error(t, err)
}

func TestBookingService_ReleaseExpired(t *testing.T) {
	booking := model.Booking{
		ID:          "booking-1",
		BookingDate: gModel.NewDate(2026, time.October, 18),
		RoomID:      "room-1",
		TimeSlotID:  "slot-1",
		UserID:      "user-1",
	}

	tests := []struct {
		name        string
		exists      bool
		wantErr     error
		wantPublish bool
	}{
		{
			name:        "released and announced",
			exists:      true,
			wantPublish: true,
		},
		{
			name:    "already gone is not announced",
			wantErr: failure.ErrBookingNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			m := bookingMocksSet{
				repo:       bookingMocks.NewMockBooking(ctrl),
				detailRepo: bookingMocks.NewMockBookingDetail(ctrl),
				roomRepo:   roomMocks.NewMockRoom(ctrl),
				slotRepo:   roomMocks.NewMockTimeSlot(ctrl),
				transactor: repoMocks.NewMockTransactor(ctrl),
				cache:      cacheMocks.NewMockRedisCache(ctrl),
				kafka:      kafkaMocks.NewMockClient(ctrl),
			}

			m.transactor.EXPECT().
				WithinTx(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, fn gRepo.TxFunc) error {
					return fn(ctx, nil)
				})
			m.slotRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), "slot-1").Return(nil)
			m.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.exists, nil)

			published := make(chan []kafka.Message, 1)

			if tt.exists {
				m.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				m.repo.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				m.slotRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				m.cache.EXPECT().Incr(gomock.Any(), constant.CacheKeyRoomsGeneration, gomock.Any()).Return(int64(2), nil)
				m.cache.EXPECT().Clear(gomock.Any(), "rooms*").Return(nil)
				m.kafka.EXPECT().
					SendMessages(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, messages ...kafka.Message) error {
						published <- messages

						return nil
					})
			}

			svc := service.New(m.repo, m.detailRepo, m.roomRepo, m.slotRepo, m.transactor, &config.Config{}, m.cache, m.kafka, mocks.NewOtel(), func() time.Time { return unitNow })

			err := svc.ReleaseExpired(context.Background(), booking)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			if !tt.wantPublish {
				return
			}

			select {
			case messages := <-published:
				assert.Len(t, messages, 1)
				assert.Equal(t, "slot-1", messages[0].Key)
			case <-time.After(time.Second):
				t.Fatal("release was not published")
			}
		})
	}
}
