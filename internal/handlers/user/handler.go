package user

import (
	"net/http"
	"roombook/infras/otel"
	"roombook/internal/domains/user/service"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/identity"
	"roombook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/admin/users", handler.GetUsers)
	router.Patch("/admin/users/{id}/promote", handler.PromoteUser)
	router.Delete("/admin/users/{id}", handler.DeleteUser)
}

// GetUsers lists users with pagination.
// @Summary List users
// @Description List users ordered by email unless another sort is given.
// @Tags User
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort_by query string false "Sort field"
// @Param sort_dir query string false "Sort direction"
// @Success 200 {object} response.Data[dto.GetUsersResponse]
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/users [get]
// @Security BearerAuth
func (handler *Handler) GetUsers(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsers")
	defer scope.End()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := gDto.QueryParams{}
	req.FromRequest(request, true)

	res, err := handler.service.GetAll(ctx, caller, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get users")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// PromoteUser grants the admin role to a user.
// @Summary Promote a user
// @Description Grant the admin role to a user. The new role applies from the user's next token.
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/users/{id}/promote [patch]
// @Security BearerAuth
func (handler *Handler) PromoteUser(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PromoteUser")
	defer scope.End()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Promote(ctx, caller, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to promote user")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("User " + id + " promoted by " + caller.UserID)

	response.WithMessage(writer, http.StatusOK, "User promoted successfully")
}

// DeleteUser deletes a user and releases the slots they held.
// @Summary Delete a user
// @Description Delete a user. Every booking they own is cancelled first.
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Data[dto.DeleteUserResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/users/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteUser(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteUser")
	defer scope.End()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Delete(ctx, caller, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete user")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("User " + id + " deleted by " + caller.UserID)

	response.WithJSON(writer, http.StatusOK, res)
}
