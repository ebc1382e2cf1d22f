package model

import (
	"roombook/shared/model"
	"roombook/shared/weekday"
	"time"

	"github.com/google/uuid"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID       = "id"
	FieldName     = "name"
	FieldLocation = "location"
	FieldOpenDays = "open_days"
)

const (
	SlotTableName  = "time_slots"
	SlotEntityName = "time_slot"

	FieldRoomID         = "room_id"
	FieldStartTime      = "start_time"
	FieldEndTime        = "end_time"
	FieldIsEnabled      = "is_enabled"
	FieldIsOccupied     = "is_occupied"
	FieldBookedByUserID = "booked_by_user_id"
	FieldBookedAt       = "booked_at"
)

// Every new room gets one-hour slots from OpeningHour until ClosingHour.
const (
	OpeningHour = 9
	ClosingHour = 17
)

type Room struct {
	ID       string      `db:"id"`
	Name     string      `db:"name"`
	Location string      `db:"location"`
	OpenDays weekday.Set `db:"open_days"`
	model.Metadata
}

// IsOpen reports whether the room takes bookings on date.
func (r Room) IsOpen(date model.Date) bool {
	return r.OpenDays.IsOpen(date)
}

type TimeSlot struct {
	ID             string      `db:"id"`
	RoomID         string      `db:"room_id"`
	StartTime      model.Clock `db:"start_time"`
	EndTime        model.Clock `db:"end_time"`
	IsEnabled      bool        `db:"is_enabled"`
	IsOccupied     bool        `db:"is_occupied"`
	BookedByUserID *string     `db:"booked_by_user_id"`
	BookedAt       *time.Time  `db:"booked_at"`
	model.Metadata
}

// StartsOn is the instant the slot begins on date.
func (t TimeSlot) StartsOn(date model.Date) time.Time {
	return date.At(t.StartTime)
}

// EndsOn is the instant the slot ends on date.
func (t TimeSlot) EndsOn(date model.Date) time.Time {
	return date.At(t.EndTime)
}

// NewRoom builds a room with its default slot grid. Slots start disabled.
func NewRoom(name, location string, openDays weekday.Set, actor string) (Room, []TimeSlot) {
	if openDays.Empty() {
		openDays = weekday.Weekdays
	}

	room := Room{
		ID:       uuid.NewString(),
		Name:     name,
		Location: location,
		OpenDays: openDays,
		Metadata: model.NewMetadata(actor),
	}

	slots := make([]TimeSlot, 0, ClosingHour-OpeningHour)
	for hour := OpeningHour; hour < ClosingHour; hour++ {
		slots = append(slots, TimeSlot{
			ID:        uuid.NewString(),
			RoomID:    room.ID,
			StartTime: model.NewClock(hour, 0),
			EndTime:   model.NewClock(hour+1, 0),
			Metadata:  model.NewMetadata(actor),
		})
	}

	return room, slots
}
