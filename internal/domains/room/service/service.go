package service

import (
	"context"
	"fmt"
	"roombook/config"
	"roombook/infras/otel"
	bookingModel "roombook/internal/domains/booking/model"
	bookingRepo "roombook/internal/domains/booking/repository"
	"roombook/internal/domains/room/model"
	"roombook/internal/domains/room/model/dto"
	"roombook/internal/domains/room/repository"
	"roombook/shared"
	"roombook/shared/cache"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/failure"
	"roombook/shared/identity"
	gRepo "roombook/shared/repository"
	"roombook/shared/timezone"
	"roombook/shared/weekday"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheKeyPublic = "public"
)

type Room interface {
	Create(ctx context.Context, caller identity.Caller, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	UpdateOpenDays(ctx context.Context, caller identity.Caller, req dto.UpdateOpenDaysRequest, id string) error
	SetSlotEnabled(ctx context.Context, caller identity.Caller, req dto.SetSlotEnabledRequest, slotID string) error
	Delete(ctx context.Context, caller identity.Caller, id string) error
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	GetAll(ctx context.Context, caller identity.Caller) (dto.GetRoomsResponse, error)
	ListPublic(ctx context.Context) (dto.GetRoomsResponse, error)
}

type serviceImpl struct {
	repo        repository.Room
	slotRepo    repository.TimeSlot
	bookingRepo bookingRepo.Booking
	transactor  gRepo.Transactor
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	now         timezone.NowFunc
}

func New(
	repo repository.Room,
	slotRepo repository.TimeSlot,
	bookingRepo bookingRepo.Booking,
	transactor gRepo.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	now timezone.NowFunc,
) Room {
	return &serviceImpl{
		repo:        repo,
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		transactor:  transactor,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		now:         now,
	}
}

// Create stores the room and its default slots in one transaction. Empty open days mean Monday to Friday.
func (s *serviceImpl) Create(ctx context.Context, caller identity.Caller, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = caller.RequireAdmin(); err != nil {
		return res, err
	}

	openDays, err := weekday.FromInts(req.OpenDays)
	if err != nil {
		return res, failure.ErrInvalidOpenDays
	}

	room, slots := model.NewRoom(req.Name, req.Location, openDays, caller.UserID)

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, room); err != nil {
			log.Error().Err(err).Msg("failed to create room")

			return fmt.Errorf("failed to create room: %w", err)
		}

		if err := s.slotRepo.InsertBulkTx(ctx, tx, slots); err != nil {
			log.Error().Err(err).Msg("failed to create time slots")

			return fmt.Errorf("failed to create time slots: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	s.invalidate(ctx)

	res.FromModel(room, slots, nil)

	return res, nil
}

// UpdateOpenDays replaces the open days of a room. Existing bookings are left as they are.
func (s *serviceImpl) UpdateOpenDays(ctx context.Context, caller identity.Caller, req dto.UpdateOpenDaysRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateOpenDays")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = caller.RequireAdmin(); err != nil {
		return err
	}

	openDays, err := weekday.FromInts(req.OpenDays)
	if err != nil || openDays.Empty() {
		return failure.ErrInvalidOpenDays
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return failure.ErrRoomNotFound
	}

	update := map[string]any{
		model.FieldOpenDays:      openDays,
		constant.FieldModifiedAt: s.now(),
		constant.FieldModifiedBy: caller.UserID,
	}

	if err = s.repo.Update(ctx, update, filter); err != nil {
		log.Error().Err(err).Msg("failed to update open days")

		return fmt.Errorf("failed to update open days: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

// SetSlotEnabled flips the enabled flag only. Occupancy and bookings are untouched.
func (s *serviceImpl) SetSlotEnabled(ctx context.Context, caller identity.Caller, req dto.SetSlotEnabledRequest, slotID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetSlotEnabled")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = caller.RequireAdmin(); err != nil {
		return err
	}

	if req.Enabled == nil {
		return failure.BadRequestFromString("enabled is required")
	}

	filter := shared.FilterByID(slotID, model.FieldID, model.SlotTableName)

	exist, err := s.slotRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if time slot exists")

		return fmt.Errorf("failed to check if time slot exists: %w", err)
	}

	if !exist {
		return failure.ErrSlotNotFound
	}

	update := map[string]any{
		model.FieldIsEnabled:     *req.Enabled,
		constant.FieldModifiedAt: s.now(),
		constant.FieldModifiedBy: caller.UserID,
	}

	if err = s.slotRepo.Update(ctx, update, filter); err != nil {
		log.Error().Err(err).Msg("failed to update time slot")

		return fmt.Errorf("failed to update time slot: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

// Delete removes the room together with its bookings and slots.
func (s *serviceImpl) Delete(ctx context.Context, caller identity.Caller, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = caller.RequireAdmin(); err != nil {
		return err
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		room, err := s.repo.GetTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName), model.FieldID)
		if err != nil {
			log.Error().Err(err).Msg("failed to get room")

			return fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.ErrRoomNotFound
		}

		if err = s.bookingRepo.DeleteTx(ctx, tx, shared.FilterByID(id, bookingModel.FieldRoomID, bookingModel.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to delete room bookings")

			return fmt.Errorf("failed to delete room bookings: %w", err)
		}

		if err = s.slotRepo.DeleteTx(ctx, tx, shared.FilterByID(id, model.FieldRoomID, model.SlotTableName)); err != nil {
			log.Error().Err(err).Msg("failed to delete time slots")

			return fmt.Errorf("failed to delete time slots: %w", err)
		}

		if err = s.repo.DeleteTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to delete room")

			return fmt.Errorf("failed to delete room: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.ErrRoomNotFound
	}

	slots, err := s.slotRepo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldStartTime, SortDir: gDto.SortDirAsc}, shared.FilterByID(id, model.FieldRoomID, model.SlotTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slots")

		return res, fmt.Errorf("failed to get time slots: %w", err)
	}

	res.FromModel(room, slots, nil)

	return res, nil
}

// GetAll lists every room with all of its slots for administration.
func (s *serviceImpl) GetAll(ctx context.Context, caller identity.Caller) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = caller.RequireAdmin(); err != nil {
		return res, err
	}

	return s.list(ctx, nil)
}

// ListPublic lists rooms with the slots that are enabled and not occupied.
// The result is cached under the rooms generation read before the database, so a change committed meanwhile is never masked.
func (s *serviceImpl) ListPublic(ctx context.Context) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListPublic")
	defer scope.End()
	defer scope.TraceIfError(err)

	generation := shared.CacheGeneration(ctx, s.cache, constant.CacheKeyRoomsGeneration)
	cacheKey := shared.BuildCacheKey(constant.CacheKeyRooms, cacheKeyPublic, generation)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for public rooms")

		return res, nil
	}

	res, err = s.list(ctx, dto.PublicSlot)
	if err != nil {
		return res, err
	}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save public rooms to cache")
	}

	return res, nil
}

func (s *serviceImpl) list(ctx context.Context, keep func(model.TimeSlot) bool) (res dto.GetRoomsResponse, err error) {
	rooms, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldName, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	slots, err := s.slotRepo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldStartTime, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slots")

		return res, fmt.Errorf("failed to get time slots: %w", err)
	}

	res.FromModels(rooms, slots, keep)

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateGeneration(c, s.cache, constant.CacheKeyRoomsGeneration, constant.CacheKeyRooms)
	}()
}
