package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"roombook/config"
	"roombook/infras/kafka"
	"roombook/infras/otel"
	"roombook/internal/domains/booking/model"
	"roombook/internal/domains/booking/model/dto"
	"roombook/internal/domains/booking/repository"
	roomModel "roombook/internal/domains/room/model"
	roomRepo "roombook/internal/domains/room/repository"
	"roombook/shared"
	"roombook/shared/cache"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/failure"
	"roombook/shared/identity"
	gModel "roombook/shared/model"
	gRepo "roombook/shared/repository"
	"roombook/shared/timezone"
	"slices"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	sortByRoomAndStart = "rooms.name, time_slots.start_time"
	sortByDateAndStart = "bookings.booking_date, time_slots.start_time"
)

type Booking interface {
	CheckAvailable(ctx context.Context, roomID, slotID string, date gModel.Date) (bool, error)
	Create(ctx context.Context, caller identity.Caller, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Cancel(ctx context.Context, caller identity.Caller, bookingID string) error
	AdminCancel(ctx context.Context, caller identity.Caller, slotID string) error
	ReleaseExpired(ctx context.Context, booking model.Booking) error
	GetExpired(ctx context.Context) ([]model.BookingDetail, error)
	ReleaseUserBookingsTx(ctx context.Context, sqltx *sqlx.Tx, userID string) (int, error)
	BookingsForDate(ctx context.Context, caller identity.Caller, date gModel.Date) (dto.GetBookingsResponse, error)
	BookingsForUser(ctx context.Context, caller identity.Caller) (dto.GetBookingsResponse, error)
	RoomsWithAvailability(ctx context.Context, date gModel.Date) (dto.GetRoomAvailabilityResponse, error)
}

type serviceImpl struct {
	repo       repository.Booking
	detailRepo repository.BookingDetail
	roomRepo   roomRepo.Room
	slotRepo   roomRepo.TimeSlot
	transactor gRepo.Transactor
	cfg        *config.Config
	cache      cache.RedisCache
	kafka      kafka.Client
	otel       otel.Otel
	now        timezone.NowFunc
}

func New(
	repo repository.Booking,
	detailRepo repository.BookingDetail,
	roomRepo roomRepo.Room,
	slotRepo roomRepo.TimeSlot,
	transactor gRepo.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	kafka kafka.Client,
	otel otel.Otel,
	now timezone.NowFunc,
) Booking {
	return &serviceImpl{
		repo:       repo,
		detailRepo: detailRepo,
		roomRepo:   roomRepo,
		slotRepo:   slotRepo,
		transactor: transactor,
		cfg:        cfg,
		cache:      cache,
		kafka:      kafka,
		otel:       otel,
		now:        now,
	}
}

// CheckAvailable answers whether Create would currently succeed. Only infrastructure failures are errors.
func (s *serviceImpl) CheckAvailable(ctx context.Context, roomID, slotID string, date gModel.Date) (available bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return false, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return false, nil
	}

	slot, err := s.slotRepo.Get(ctx, shared.FilterByID(slotID, roomModel.FieldID, roomModel.SlotTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slot")

		return false, fmt.Errorf("failed to get time slot: %w", err)
	}

	if slot.ID == constant.Empty || slot.RoomID != room.ID {
		return false, nil
	}

	if checkBookable(room, slot, date, s.now()) != nil {
		return false, nil
	}

	booked, err := s.repo.Exist(ctx, filterBySlotAndDate(slot.ID, date))
	if err != nil {
		log.Error().Err(err).Msg("failed to check existing booking")

		return false, fmt.Errorf("failed to check existing booking: %w", err)
	}

	return !booked, nil
}

func (s *serviceImpl) Create(ctx context.Context, caller identity.Caller, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if caller.IsZero() {
		return res, failure.Unauthorized("authentication required")
	}

	date, err := gModel.ParseDate(req.Date)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	var (
		booking model.Booking
		room    roomModel.Room
		slot    roomModel.TimeSlot
	)

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) (err error) {
		room, slot, err = s.loadTarget(ctx, tx, req.RoomID, req.TimeSlotID)
		if err != nil {
			return err
		}

		if err = checkBookable(room, slot, date, s.now()); err != nil {
			return err
		}

		if err = s.lockSlot(ctx, tx, slot.ID); err != nil {
			return err
		}

		booked, err := s.repo.ExistTx(ctx, tx, filterBySlotAndDate(slot.ID, date))
		if err != nil {
			log.Error().Err(err).Msg("failed to check existing booking")

			return fmt.Errorf("failed to check existing booking: %w", err)
		}

		if booked {
			return failure.ErrSlotAlreadyBooked
		}

		booking = model.NewBooking(room.ID, slot.ID, caller.UserID, date)

		if err = s.repo.InsertTx(ctx, tx, booking); err != nil {
			if errors.Is(err, gRepo.ErrDuplicate) {
				log.Info().Str("slot_id", slot.ID).Str("date", date.String()).Msg("concurrent booking lost the race")

				return failure.ErrSlotAlreadyBooked
			}

			log.Error().Err(err).Msg("failed to create booking")

			return fmt.Errorf("failed to create booking: %w", err)
		}

		return s.syncSlot(ctx, tx, slot.ID)
	})
	if err != nil {
		return res, err
	}

	s.publish(ctx, constant.EventBookingCreated, caller.UserID, booking)

	res.FromModel(booking, room, slot)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, caller identity.Caller, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	var booking model.Booking

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) (err error) {
		booking, err = s.repo.GetTx(ctx, tx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get booking")

			return fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return failure.ErrBookingNotFound
		}

		if booking.UserID != caller.UserID {
			return failure.ErrNotOwner
		}

		if booking.BookingDate.Before(gModel.DateOf(s.now())) {
			return failure.ErrBookingInPast
		}

		return s.deleteBooking(ctx, tx, booking)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, constant.EventBookingCancelled, caller.UserID, booking)

	return nil
}

// AdminCancel removes today's booking of a slot regardless of its owner.
func (s *serviceImpl) AdminCancel(ctx context.Context, caller identity.Caller, slotID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AdminCancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = caller.RequireAdmin(); err != nil {
		return err
	}

	var booking model.Booking

	today := gModel.DateOf(s.now())

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) (err error) {
		booking, err = s.repo.GetTx(ctx, tx, filterBySlotAndDate(slotID, today))
		if err != nil {
			log.Error().Err(err).Msg("failed to get booking")

			return fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return failure.ErrBookingNotFound
		}

		return s.deleteBooking(ctx, tx, booking)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, constant.EventBookingCancelled, caller.UserID, booking)

	return nil
}

// ReleaseExpired deletes the booking without any ownership or time check.
func (s *serviceImpl) ReleaseExpired(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReleaseExpired")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		return s.deleteBooking(ctx, tx, booking)
	})
	if errors.Is(err, failure.ErrBookingNotFound) {
		log.Debug().Str("booking_id", booking.ID).Msg("expired booking already released")

		return err
	}

	if err != nil {
		return err
	}

	s.publish(ctx, constant.EventBookingReleased, identity.System.UserID, booking)

	return nil
}

func (s *serviceImpl) GetExpired(ctx context.Context) (res []model.BookingDetail, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetExpired")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := s.now()

	res, err = s.detailRepo.GetExpired(ctx, gModel.DateOf(now), gModel.ClockOf(now))
	if err != nil {
		log.Error().Err(err).Msg("failed to get expired bookings")

		return nil, fmt.Errorf("failed to get expired bookings: %w", err)
	}

	return res, nil
}

// ReleaseUserBookingsTx deletes every booking of a user and refreshes the affected slots within sqltx.
// Nothing is published since the caller owns the transaction.
func (s *serviceImpl) ReleaseUserBookingsTx(ctx context.Context, sqltx *sqlx.Tx, userID string) (released int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReleaseUserBookingsTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(userID, model.FieldUserID, model.TableName)

	bookings, err := s.repo.GetAllTx(ctx, sqltx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user bookings")

		return 0, fmt.Errorf("failed to get user bookings: %w", err)
	}

	if len(bookings) == 0 {
		return 0, nil
	}

	slotIDs := make([]string, 0, len(bookings))
	for _, booking := range bookings {
		slotIDs = append(slotIDs, booking.TimeSlotID)
	}

	// sorted so two transactions locking the same slots cannot deadlock
	slices.Sort(slotIDs)
	slotIDs = slices.Compact(slotIDs)

	for _, slotID := range slotIDs {
		if err = s.lockSlot(ctx, sqltx, slotID); err != nil {
			return 0, err
		}
	}

	if err = s.repo.DeleteTx(ctx, sqltx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete user bookings")

		return 0, fmt.Errorf("failed to delete user bookings: %w", err)
	}

	for _, slotID := range slotIDs {
		if err = s.syncSlot(ctx, sqltx, slotID); err != nil {
			return 0, err
		}
	}

	return len(bookings), nil
}

func (s *serviceImpl) BookingsForDate(ctx context.Context, caller identity.Caller, date gModel.Date) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BookingsForDate")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = caller.RequireAdmin(); err != nil {
		return res, err
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingDate,
				Table:    model.TableName,
				Operator: gDto.FilterOperatorEq,
				Value:    date,
			},
		},
	}

	details, err := s.detailRepo.GetAll(ctx, gDto.QueryParams{SortBy: sortByRoomAndStart, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for date")

		return res, fmt.Errorf("failed to get bookings for date: %w", err)
	}

	res.FromDetails(details)

	return res, nil
}

// BookingsForUser lists the caller's bookings from today onwards.
func (s *serviceImpl) BookingsForUser(ctx context.Context, caller identity.Caller) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BookingsForUser")
	defer scope.End()
	defer scope.TraceIfError(err)

	if caller.IsZero() {
		return res, failure.Unauthorized("authentication required")
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Table:    model.TableName,
				Operator: gDto.FilterOperatorEq,
				Value:    caller.UserID,
			},
			gDto.Filter{
				Field:    model.FieldBookingDate,
				Table:    model.TableName,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    gModel.DateOf(s.now()),
			},
		},
	}

	details, err := s.detailRepo.GetAll(ctx, gDto.QueryParams{SortBy: sortByDateAndStart, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user bookings")

		return res, fmt.Errorf("failed to get user bookings: %w", err)
	}

	res.FromDetails(details)

	return res, nil
}

// RoomsWithAvailability annotates every slot of every room with whether it can be booked on date.
func (s *serviceImpl) RoomsWithAvailability(ctx context.Context, date gModel.Date) (res dto.GetRoomAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RoomsWithAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{SortBy: roomModel.FieldName, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	slots, err := s.slotRepo.GetAll(ctx, gDto.QueryParams{SortBy: roomModel.FieldStartTime, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slots")

		return res, fmt.Errorf("failed to get time slots: %w", err)
	}

	dateFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingDate,
				Table:    model.TableName,
				Operator: gDto.FilterOperatorEq,
				Value:    date,
			},
		},
	}

	bookings, err := s.repo.GetAll(ctx, gDto.QueryParams{}, dateFilter, model.FieldTimeSlotID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for date")

		return res, fmt.Errorf("failed to get bookings for date: %w", err)
	}

	booked := make(map[string]bool, len(bookings))
	for _, booking := range bookings {
		booked[booking.TimeSlotID] = true
	}

	slotsByRoom := map[string][]roomModel.TimeSlot{}
	for _, slot := range slots {
		slotsByRoom[slot.RoomID] = append(slotsByRoom[slot.RoomID], slot)
	}

	now := s.now()

	res.Date = date
	res.Rooms = make([]dto.RoomAvailability, len(rooms))

	for i, room := range rooms {
		roomSlots := slotsByRoom[room.ID]

		res.Rooms[i] = dto.RoomAvailability{
			ID:         room.ID,
			Name:       room.Name,
			Location:   room.Location,
			OpenDays:   room.OpenDays,
			OpenOnDate: room.IsOpen(date),
			Slots:      make([]dto.SlotAvailability, len(roomSlots)),
		}

		for j, slot := range roomSlots {
			res.Rooms[i].Slots[j] = dto.SlotAvailability{
				ID:        slot.ID,
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
				IsEnabled: slot.IsEnabled,
				IsBooked:  booked[slot.ID],
				Available: !booked[slot.ID] && checkBookable(room, slot, date, now) == nil,
			}
		}
	}

	return res, nil
}

// loadTarget reads the room and its slot inside tx, failing with the matching not-found failure.
func (s *serviceImpl) loadTarget(ctx context.Context, tx *sqlx.Tx, roomID, slotID string) (room roomModel.Room, slot roomModel.TimeSlot, err error) {
	room, err = s.roomRepo.GetTx(ctx, tx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, slot, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, slot, failure.ErrRoomNotFound
	}

	slot, err = s.slotRepo.GetTx(ctx, tx, shared.FilterByID(slotID, roomModel.FieldID, roomModel.SlotTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slot")

		return room, slot, fmt.Errorf("failed to get time slot: %w", err)
	}

	if slot.ID == constant.Empty || slot.RoomID != room.ID {
		return room, slot, failure.ErrSlotNotFound
	}

	return room, slot, nil
}

// deleteBooking removes the booking under the slot lock and fails with ErrBookingNotFound
// when a concurrent transaction removed it first.
func (s *serviceImpl) deleteBooking(ctx context.Context, tx *sqlx.Tx, booking model.Booking) error {
	if err := s.lockSlot(ctx, tx, booking.TimeSlotID); err != nil {
		return err
	}

	filter := shared.FilterByID(booking.ID, model.FieldID, model.TableName)

	exist, err := s.repo.ExistTx(ctx, tx, filter)
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to check booking")

		return fmt.Errorf("failed to check booking: %w", err)
	}

	if !exist {
		return failure.ErrBookingNotFound
	}

	if err := s.repo.DeleteTx(ctx, tx, filter); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	return s.syncSlot(ctx, tx, booking.TimeSlotID)
}

// lockSlot must run before a transaction reads the bookings of a slot it is about to change.
func (s *serviceImpl) lockSlot(ctx context.Context, tx *sqlx.Tx, slotID string) error {
	if err := s.slotRepo.LockTx(ctx, tx, slotID); err != nil {
		log.Error().Err(err).Str("slot_id", slotID).Msg("failed to lock time slot")

		return fmt.Errorf("failed to lock time slot: %w", err)
	}

	return nil
}

// syncSlot recomputes the occupancy columns of a slot from its remaining bookings.
// The earliest dated booking decides who the slot shows as booked by.
func (s *serviceImpl) syncSlot(ctx context.Context, tx *sqlx.Tx, slotID string) error {
	params := gDto.QueryParams{
		Limit:   1,
		SortBy:  model.FieldBookingDate + ", " + constant.FieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}

	remaining, err := s.repo.GetAllTx(ctx, tx, params, shared.FilterByID(slotID, model.FieldTimeSlotID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("slot_id", slotID).Msg("failed to get slot bookings")

		return fmt.Errorf("failed to get slot bookings: %w", err)
	}

	update := map[string]any{
		roomModel.FieldIsOccupied:     false,
		roomModel.FieldBookedByUserID: nil,
		roomModel.FieldBookedAt:       nil,
		constant.FieldModifiedAt:      s.now(),
	}

	if len(remaining) > 0 {
		update[roomModel.FieldIsOccupied] = true
		update[roomModel.FieldBookedByUserID] = remaining[0].UserID
		update[roomModel.FieldBookedAt] = remaining[0].CreatedAt
	}

	if err = s.slotRepo.UpdateTx(ctx, tx, update, shared.FilterByID(slotID, roomModel.FieldID, roomModel.SlotTableName)); err != nil {
		log.Error().Err(err).Str("slot_id", slotID).Msg("failed to update slot occupancy")

		return fmt.Errorf("failed to update slot occupancy: %w", err)
	}

	return nil
}

// publish invalidates the room listing and emits one event per booking once the transaction committed.
func (s *serviceImpl) publish(ctx context.Context, eventType, actorID string, bookings ...model.Booking) {
	at := s.now()

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateGeneration(c, s.cache, constant.CacheKeyRoomsGeneration, constant.CacheKeyRooms)

		messages := make([]kafka.Message, len(bookings))
		for i, booking := range bookings {
			messages[i] = kafka.Message{
				Key:   booking.TimeSlotID,
				Value: dto.NewBookingEvent(eventType, booking, actorID, at),
			}
		}

		if err := s.kafka.SendMessages(c, messages...); err != nil {
			log.Error().Err(err).Str("event", eventType).Msg("failed to publish booking events")
		}
	}()
}

// checkBookable applies the room and slot rules in the order callers observe them.
func checkBookable(room roomModel.Room, slot roomModel.TimeSlot, date gModel.Date, now time.Time) error {
	if !slot.IsEnabled {
		return failure.ErrSlotDisabled
	}

	if !room.IsOpen(date) {
		return failure.ErrRoomClosedOnDate
	}

	if !slot.StartsOn(date).After(now) {
		return failure.ErrSlotInPast
	}

	return nil
}

func filterBySlotAndDate(slotID string, date gModel.Date) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTimeSlotID,
				Table:    model.TableName,
				Operator: gDto.FilterOperatorEq,
				Value:    slotID,
			},
			gDto.Filter{
				Field:    model.FieldBookingDate,
				Table:    model.TableName,
				Operator: gDto.FilterOperatorEq,
				Value:    date,
			},
		},
	}
}
