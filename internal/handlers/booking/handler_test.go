package booking_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roombook/infras/otel/mocks"
	"roombook/internal/domains/booking/model/dto"
	serviceMocks "roombook/internal/domains/booking/service/mocks"
	"roombook/internal/handlers/booking"
	"roombook/shared/constant"
	"roombook/shared/failure"
	"roombook/shared/identity"
	gModel "roombook/shared/model"
)

var alice = identity.Caller{UserID: "u-1", Email: "alice@example.com", Role: constant.RoleUser}

func newRouter(t *testing.T, caller *identity.Caller) (http.Handler, *serviceMocks.MockBooking) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockService := serviceMocks.NewMockBooking(ctrl)

	handler := booking.New(mockService, mocks.NewOtel())

	router := chi.NewRouter()
	if caller != nil {
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(identity.WithCaller(r.Context(), *caller)))
			})
		})
	}

	handler.Router(router)

	return router, mockService
}

type errorBody struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

func TestHandler_CreateBooking(t *testing.T) {
	tests := []struct {
		name       string
		caller     *identity.Caller
		body       string
		setupMock  func(mockService *serviceMocks.MockBooking)
		wantStatus int
		wantReason string
	}{
		{
			name:   "created",
			caller: &alice,
			body:   `{"room_id":"r-1","time_slot_id":"s-1","date":"2026-10-20"}`,
			setupMock: func(mockService *serviceMocks.MockBooking) {
				mockService.EXPECT().
					Create(gomock.Any(), alice, dto.CreateBookingRequest{RoomID: "r-1", TimeSlotID: "s-1", Date: "2026-10-20"}).
					Return(dto.BookingResponse{ID: "b-1"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "anonymous",
			body:       `{"room_id":"r-1","time_slot_id":"s-1","date":"2026-10-20"}`,
			setupMock:  func(*serviceMocks.MockBooking) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "bad date",
			caller:     &alice,
			body:       `{"room_id":"r-1","time_slot_id":"s-1","date":"20/10/2026"}`,
			setupMock:  func(*serviceMocks.MockBooking) {},
			wantStatus: http.StatusBadRequest,
			wantReason: failure.ReasonInvalidArgument,
		},
		{
			name:   "already booked",
			caller: &alice,
			body:   `{"room_id":"r-1","time_slot_id":"s-1","date":"2026-10-20"}`,
			setupMock: func(mockService *serviceMocks.MockBooking) {
				mockService.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(dto.BookingResponse{}, failure.ErrSlotAlreadyBooked)
			},
			wantStatus: http.StatusConflict,
			wantReason: failure.ReasonSlotAlreadyBooked,
		},
		{
			name:   "slot in the past",
			caller: &alice,
			body:   `{"room_id":"r-1","time_slot_id":"s-1","date":"2026-10-20"}`,
			setupMock: func(mockService *serviceMocks.MockBooking) {
				mockService.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(dto.BookingResponse{}, failure.ErrSlotInPast)
			},
			wantStatus: failure.StatusTemporalViolation,
			wantReason: failure.ReasonSlotInPast,
		},
		{
			name:   "storage error stays generic",
			caller: &alice,
			body:   `{"room_id":"r-1","time_slot_id":"s-1","date":"2026-10-20"}`,
			setupMock: func(mockService *serviceMocks.MockBooking) {
				mockService.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(dto.BookingResponse{}, assert.AnError)
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockService := newRouter(t, tt.caller)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(tt.body))
			req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if rec.Code >= http.StatusBadRequest {
				var body errorBody
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantReason, body.Reason)

				if rec.Code == http.StatusInternalServerError {
					assert.Equal(t, constant.ResponseErrorInternal, body.Error)
				}
			}
		})
	}
}

func TestHandler_CheckAvailable(t *testing.T) {
	router, mockService := newRouter(t, nil)

	mockService.EXPECT().
		CheckAvailable(gomock.Any(), "r-1", "s-1", gModel.NewDate(2026, time.October, 20)).
		Return(true, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/check?room_id=r-1&time_slot_id=s-1&date=2026-10-20", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data dto.CheckAvailabilityResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Data.Available)
	assert.Equal(t, "2026-10-20", body.Data.Date.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/check?room_id=r-1&date=2026-10-20", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_AvailabilityRequiresDate(t *testing.T) {
	router, mockService := newRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms/availability", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	mockService.EXPECT().
		RoomsWithAvailability(gomock.Any(), gModel.NewDate(2026, time.October, 25)).
		Return(dto.GetRoomAvailabilityResponse{Date: gModel.NewDate(2026, time.October, 25)}, nil)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms/availability?date=2026-10-25", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_CancelAndAdminCancel(t *testing.T) {
	admin := identity.Caller{UserID: "a-1", Email: "root@example.com", Role: constant.RoleAdmin}

	router, mockService := newRouter(t, &admin)

	mockService.EXPECT().Cancel(gomock.Any(), admin, "b-1").Return(failure.ErrNotOwner)
	mockService.EXPECT().AdminCancel(gomock.Any(), admin, "s-1").Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/bookings/b-1", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/admin/slots/s-1/booking", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
