package booking

import (
	"net/http"
	"roombook/infras/otel"
	"roombook/internal/domains/booking/model/dto"
	"roombook/internal/domains/booking/service"
	"roombook/shared/constant"
	"roombook/shared/failure"
	"roombook/shared/identity"
	gModel "roombook/shared/model"
	"roombook/shared/validator"
	"roombook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/rooms/availability", handler.GetAvailability)

	router.Get("/bookings/check", handler.CheckAvailable)
	router.Post("/bookings", handler.CreateBooking)
	router.Get("/bookings/mybookings", handler.GetMyBookings)
	router.Delete("/bookings/{id}", handler.CancelBooking)

	router.Get("/admin/bookings", handler.GetBookingsForDate)
	router.Delete("/admin/slots/{id}/booking", handler.AdminCancel)
}

// dateParam reads the date query parameter as a calendar day.
func dateParam(request *http.Request) (gModel.Date, error) {
	value := request.URL.Query().Get(constant.RequestParamDate)

	if err := validator.ValidateVar(value, "required,isodate"); err != nil {
		return gModel.Date{}, err
	}

	date, err := gModel.ParseDate(value)
	if err != nil {
		return gModel.Date{}, failure.BadRequest(err)
	}

	return date, nil
}

// GetAvailability lists every room with the state of each slot on a date.
// @Summary Room availability for a date
// @Description List every room, whether it is open on the date, and which of its slots can still be booked.
// @Tags Booking
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetRoomAvailabilityResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/availability [get]
func (handler *Handler) GetAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	date, err := dateParam(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.RoomsWithAvailability(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CheckAvailable reports whether a slot can be booked on a date.
// @Summary Check slot availability
// @Description Check whether a room's time slot can be booked on the given date.
// @Tags Booking
// @Produce json
// @Param room_id query string true "Room ID"
// @Param time_slot_id query string true "Time slot ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.CheckAvailabilityResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/check [get]
func (handler *Handler) CheckAvailable(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailable")
	defer scope.End()

	query := request.URL.Query()
	req := dto.CheckAvailabilityRequest{
		RoomID:     query.Get(constant.RequestParamRoomID),
		TimeSlotID: query.Get(constant.RequestParamTimeSlotID),
		Date:       query.Get(constant.RequestParamDate),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	date, err := gModel.ParseDate(req.Date)
	if err != nil {
		err = failure.BadRequest(err)
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	available, err := handler.service.CheckAvailable(ctx, req.RoomID, req.TimeSlotID, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, dto.CheckAvailabilityResponse{
		RoomID:     req.RoomID,
		TimeSlotID: req.TimeSlotID,
		Date:       date,
		Available:  available,
	})
}

// CreateBooking books a slot for the authenticated user.
// @Summary Create a booking
// @Description Book a room's time slot on a date for the authenticated user.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, caller, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created successfully by user " + caller.UserID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetMyBookings lists the bookings of the authenticated user.
// @Summary My bookings
// @Description List the authenticated user's bookings ordered by date and start time.
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/mybookings [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.BookingsForUser(ctx, caller)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CancelBooking cancels one of the authenticated user's bookings.
// @Summary Cancel a booking
// @Description Cancel a booking owned by the authenticated user. Bookings on past dates cannot be cancelled.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) CancelBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Cancel(ctx, caller, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking cancelled by user " + caller.UserID)

	response.WithMessage(writer, http.StatusOK, "Booking cancelled successfully")
}

// GetBookingsForDate lists every booking on a date.
// @Summary Bookings on a date
// @Description List every booking on the date ordered by room name and start time.
// @Tags Booking
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookingsForDate(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingsForDate")
	defer scope.End()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	date, err := dateParam(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.BookingsForDate(ctx, caller, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings for date")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// AdminCancel releases the booking currently holding a slot.
// @Summary Release a slot
// @Description Cancel the booking that occupies the time slot, whoever owns it.
// @Tags Booking
// @Produce json
// @Param id path string true "Time slot ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/slots/{id}/booking [delete]
// @Security BearerAuth
func (handler *Handler) AdminCancel(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AdminCancel")
	defer scope.End()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	slotID := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.AdminCancel(ctx, caller, slotID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to release time slot")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Slot released by admin " + caller.UserID)

	response.WithMessage(writer, http.StatusOK, "Time slot released successfully")
}
