package room

import (
	"net/http"
	"roombook/infras/otel"
	"roombook/internal/domains/room/model/dto"
	"roombook/internal/domains/room/service"
	"roombook/shared/constant"
	"roombook/shared/identity"
	"roombook/shared/validator"
	"roombook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/rooms", handler.ListPublic)

	router.Get("/admin/rooms", handler.GetRooms)
	router.Post("/admin/rooms", handler.CreateRoom)
	router.Patch("/admin/rooms/{id}/open-days", handler.UpdateOpenDays)
	router.Delete("/admin/rooms/{id}", handler.DeleteRoom)
	router.Patch("/admin/slots/{id}", handler.SetSlotEnabled)
}

// ListPublic lists rooms with their bookable slots.
// @Summary List rooms
// @Description List every room with the slots that are enabled and not occupied.
// @Tags Room
// @Produce json
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) ListPublic(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListPublic")
	defer scope.End()

	res, err := handler.service.ListPublic(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list rooms")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetRooms lists every room with all of its slots.
// @Summary List rooms for administration
// @Description List every room with all slots, enabled or not, and their occupancy.
// @Tags Room
// @Produce json
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/rooms [get]
// @Security BearerAuth
func (handler *Handler) GetRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.GetAll(ctx, caller)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CreateRoom creates a room with its default slots.
// @Summary Create a room
// @Description Create a room with eight disabled hourly slots from 09:00 to 17:00. Open days default to Monday through Friday.
// @Tags Room
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomRequest true "Create Room Request"
// @Success 201 {object} response.Data[dto.RoomResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.CreateRoomRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, caller, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room created successfully by user " + caller.UserID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// UpdateOpenDays replaces the open days of a room.
// @Summary Update room open days
// @Description Replace the open days of a room. Codes run from 1 (Sunday) to 7 (Saturday).
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.UpdateOpenDaysRequest true "Update Open Days Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/rooms/{id}/open-days [patch]
// @Security BearerAuth
func (handler *Handler) UpdateOpenDays(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOpenDays")
	defer scope.End()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateOpenDaysRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.UpdateOpenDays(ctx, caller, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update open days")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Open days updated successfully")
}

// DeleteRoom deletes a room with its slots and bookings.
// @Summary Delete a room
// @Description Delete a room together with its slots and every booking made for it.
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, caller, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room deleted successfully by user " + caller.UserID)

	response.WithMessage(writer, http.StatusOK, "Room deleted successfully")
}

// SetSlotEnabled enables or disables a time slot.
// @Summary Enable or disable a slot
// @Description Toggle whether a time slot can be booked. Existing bookings are kept.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Time slot ID"
// @Param request body dto.SetSlotEnabledRequest true "Set Slot Enabled Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/slots/{id} [patch]
// @Security BearerAuth
func (handler *Handler) SetSlotEnabled(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetSlotEnabled")
	defer scope.End()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.SetSlotEnabledRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.SetSlotEnabled(ctx, caller, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update time slot")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Time slot updated successfully")
}
