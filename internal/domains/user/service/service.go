package service

import (
	"context"
	"fmt"
	"roombook/config"
	"roombook/infras/otel"
	bookingService "roombook/internal/domains/booking/service"
	"roombook/internal/domains/user/model"
	"roombook/internal/domains/user/model/dto"
	"roombook/internal/domains/user/repository"
	"roombook/shared"
	"roombook/shared/cache"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/failure"
	"roombook/shared/identity"
	gRepo "roombook/shared/repository"
	"roombook/shared/timezone"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllUser = "user:gets"
)

type User interface {
	GetAll(ctx context.Context, caller identity.Caller, req gDto.QueryParams) (dto.GetUsersResponse, error)
	Promote(ctx context.Context, caller identity.Caller, id string) error
	Delete(ctx context.Context, caller identity.Caller, id string) (dto.DeleteUserResponse, error)
}

type serviceImpl struct {
	repo       repository.User
	bookings   bookingService.Booking
	transactor gRepo.Transactor
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	now        timezone.NowFunc
}

func New(
	repo repository.User,
	bookings bookingService.Booking,
	transactor gRepo.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	now timezone.NowFunc,
) User {
	return &serviceImpl{
		repo:       repo,
		bookings:   bookings,
		transactor: transactor,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		now:        now,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, caller identity.Caller, req gDto.QueryParams) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = caller.RequireAdmin(); err != nil {
		return res, err
	}

	if req.SortBy == constant.Empty {
		req.SortBy = model.FieldEmail
		req.SortDir = gDto.SortDirAsc
	}

	cacheKey := shared.BuildCacheKey(cacheGetAllUser, strconv.Itoa(req.Page), strconv.Itoa(req.Limit), req.SortBy, req.SortDir)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for users")

		return res, nil
	}

	total, err := s.repo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save users to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Promote(ctx context.Context, caller identity.Caller, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Promote")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = caller.RequireAdmin(); err != nil {
		return err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return failure.ErrUserNotFound
	}

	update := map[string]any{
		model.FieldRole:          constant.RoleAdmin,
		constant.FieldModifiedAt: s.now(),
		constant.FieldModifiedBy: caller.UserID,
	}

	if err = s.repo.Update(ctx, update, filter); err != nil {
		log.Error().Err(err).Msg("failed to promote user")

		return fmt.Errorf("failed to promote user: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

// Delete releases the user's bookings and removes the account in one transaction.
func (s *serviceImpl) Delete(ctx context.Context, caller identity.Caller, id string) (res dto.DeleteUserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = caller.RequireAdmin(); err != nil {
		return res, err
	}

	if caller.UserID == id {
		return res, failure.BadRequestFromString("administrators cannot delete their own account")
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return res, failure.ErrUserNotFound
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) (err error) {
		res.ReleasedBookings, err = s.bookings.ReleaseUserBookingsTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if err = s.repo.DeleteTx(ctx, tx, filter); err != nil {
			log.Error().Err(err).Msg("failed to delete user")

			return fmt.Errorf("failed to delete user: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	res.ID = id

	s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
		shared.InvalidateGeneration(c, s.cache, constant.CacheKeyRoomsGeneration, constant.CacheKeyRooms)
	}()
}
