package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roombook/config"
	"roombook/infras/kafka"
	"roombook/infras/otel/mocks"
	bookingDto "roombook/internal/domains/booking/model/dto"
	bookingService "roombook/internal/domains/booking/service"
	bookingServiceMocks "roombook/internal/domains/booking/service/mocks"
	roomDto "roombook/internal/domains/room/model/dto"
	roomService "roombook/internal/domains/room/service"
	userMocks "roombook/internal/domains/user/mocks"
	userModel "roombook/internal/domains/user/model"
	"roombook/internal/domains/user/service"
	"roombook/internal/testfixtures"
	"roombook/shared"
	"roombook/shared/cache"
	cacheMocks "roombook/shared/cache/mocks"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/failure"
	"roombook/shared/identity"
	gModel "roombook/shared/model"
	gRepo "roombook/shared/repository"
	repoMocks "roombook/shared/repository/mocks"
	"roombook/shared/timezone"
)

var admin = identity.Caller{UserID: "admin-1", Role: constant.RoleAdmin}

func TestUserService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, bookingServiceMocks.NewMockBooking(ctrl), repoMocks.NewMockTransactor(ctrl), &config.Config{}, mockCache, mocks.NewOtel(), timezone.NewNowFunc())

	users := []userModel.User{
		{ID: "u1", Email: "a@example.com", Role: constant.RoleAdmin, Active: true},
		{ID: "u2", Email: "b@example.com", Role: constant.RoleUser, Active: true},
	}

	tests := []struct {
		name      string
		caller    identity.Caller
		req       gDto.QueryParams
		setupMock func()
		wantLen   int
		wantErr   bool
	}{
		{
			name:   "sorted by email by default",
			caller: admin,
			req:    gDto.QueryParams{Page: 1, Limit: 10},
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]userModel.User, error) {
						assert.Equal(t, userModel.FieldEmail, params.SortBy)

						return users, nil
					})
				mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantLen: 2,
		},
		{
			name:      "non admin",
			caller:    identity.Caller{UserID: "u2", Role: constant.RoleUser},
			req:       gDto.QueryParams{Page: 1, Limit: 10},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name:   "count error",
			caller: admin,
			req:    gDto.QueryParams{Page: 1, Limit: 10},
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.GetAll(context.Background(), tt.caller, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, res.Users, tt.wantLen)
			}
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		caller    identity.Caller
		id        string
		setupMock func(repo *userMocks.MockUser, bookings *bookingServiceMocks.MockBooking)
		wantErr   error
		wantCode  int
		released  int
	}{
		{
			name:   "releases bookings and deletes",
			caller: admin,
			id:     "u2",
			setupMock: func(repo *userMocks.MockUser, bookings *bookingServiceMocks.MockBooking) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				bookings.EXPECT().ReleaseUserBookingsTx(gomock.Any(), gomock.Any(), "u2").Return(3, nil)
				repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			released: 3,
		},
		{
			name:      "self delete",
			caller:    admin,
			id:        admin.UserID,
			setupMock: func(*userMocks.MockUser, *bookingServiceMocks.MockBooking) {},
			wantCode:  400,
		},
		{
			name:      "non admin",
			caller:    identity.Caller{UserID: "u2", Role: constant.RoleUser},
			id:        "u3",
			setupMock: func(*userMocks.MockUser, *bookingServiceMocks.MockBooking) {},
			wantErr:   failure.ErrAdminRequired,
		},
		{
			name:   "missing user",
			caller: admin,
			id:     "u9",
			setupMock: func(repo *userMocks.MockUser, _ *bookingServiceMocks.MockBooking) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: failure.ErrUserNotFound,
		},
		{
			name:   "release failure keeps the user",
			caller: admin,
			id:     "u2",
			setupMock: func(repo *userMocks.MockUser, bookings *bookingServiceMocks.MockBooking) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				bookings.EXPECT().ReleaseUserBookingsTx(gomock.Any(), gomock.Any(), "u2").Return(0, errors.New("db down"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockRepo := userMocks.NewMockUser(ctrl)
			mockBookings := bookingServiceMocks.NewMockBooking(ctrl)
			mockTransactor := repoMocks.NewMockTransactor(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)

			mockTransactor.EXPECT().
				WithinTx(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, fn gRepo.TxFunc) error {
					return fn(ctx, nil)
				}).
				AnyTimes()
			mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			mockCache.EXPECT().Incr(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil).AnyTimes()

			tt.setupMock(mockRepo, mockBookings)

			svc := service.New(mockRepo, mockBookings, mockTransactor, &config.Config{}, mockCache, mocks.NewOtel(), timezone.NewNowFunc())

			res, err := svc.Delete(context.Background(), tt.caller, tt.id)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantCode != 0:
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			default:
				assert.NoError(t, err)
				assert.Equal(t, tt.id, res.ID)
				assert.Equal(t, tt.released, res.ReleasedBookings)
			}
		})
	}
}

func TestUserService_DeleteFreesSlots(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Incr(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil).AnyTimes()

	cfg := &config.Config{}
	env := testfixtures.New(t, testfixtures.At(2026, time.October, 19, 8, 0))
	ctx := context.Background()

	rooms := roomService.New(env.Rooms, env.Slots, env.Bookings, env.Transactor, cfg, mockCache, env.Otel, env.NowFunc())
	bookings := bookingService.New(env.Bookings, env.BookingDetails, env.Rooms, env.Slots, env.Transactor, cfg, mockCache, kafka.New(cfg), env.Otel, env.NowFunc())
	users := service.New(env.Users, bookings, env.Transactor, cfg, mockCache, env.Otel, env.NowFunc())

	adminUser := env.SeedUser(t, "admin@example.com", constant.RoleAdmin)
	leaving := env.SeedUser(t, "leaving@example.com", constant.RoleUser)

	caller := identity.Caller{UserID: adminUser.ID, Role: adminUser.Role}

	room, err := rooms.Create(ctx, caller, roomDto.CreateRoomRequest{Name: "Lab"})
	require.NoError(t, err)

	enabled := true
	slotID := room.Slots[2].ID
	require.NoError(t, rooms.SetSlotEnabled(ctx, caller, roomDto.SetSlotEnabledRequest{Enabled: &enabled}, slotID))

	for _, date := range []string{"2026-10-20", "2026-10-21"} {
		_, err = bookings.Create(ctx, identity.Caller{UserID: leaving.ID, Role: leaving.Role}, bookingDto.CreateBookingRequest{RoomID: room.ID, TimeSlotID: slotID, Date: date})
		require.NoError(t, err)
	}

	res, err := users.Delete(ctx, caller, leaving.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.ReleasedBookings)

	available, err := bookings.CheckAvailable(ctx, room.ID, slotID, gModel.NewDate(2026, time.October, 20))
	require.NoError(t, err)
	assert.True(t, available)

	exists, err := env.Users.Exist(ctx, shared.FilterByID(leaving.ID, userModel.FieldID, userModel.TableName))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserService_Promote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Incr(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil).AnyTimes()

	svc := service.New(mockRepo, bookingServiceMocks.NewMockBooking(ctrl), repoMocks.NewMockTransactor(ctrl), &config.Config{}, mockCache, mocks.NewOtel(), timezone.NewNowFunc())

	mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, update map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, constant.RoleAdmin, update[userModel.FieldRole])

			return nil
		})

	assert.NoError(t, svc.Promote(context.Background(), admin, "u2"))

	mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	assert.ErrorIs(t, svc.Promote(context.Background(), admin, "u9"), failure.ErrUserNotFound)
}

