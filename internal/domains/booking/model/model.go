package model

import (
	"roombook/shared/model"

	"github.com/google/uuid"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldBookingDate = "booking_date"
	FieldRoomID      = "room_id"
	FieldTimeSlotID  = "time_slot_id"
	FieldUserID      = "user_id"
)

const (
	DetailEntityName = "booking_detail"

	joinRoomsTable = "rooms"
	joinSlotsTable = "time_slots"
	joinUsersTable = "users"
)

// Booking reserves one slot of one room on one calendar day.
type Booking struct {
	ID          string     `db:"id"`
	BookingDate model.Date `db:"booking_date"`
	RoomID      string     `db:"room_id"`
	TimeSlotID  string     `db:"time_slot_id"`
	UserID      string     `db:"user_id"`
	model.Metadata
}

func NewBooking(roomID, slotID, userID string, date model.Date) Booking {
	return Booking{
		ID:          uuid.NewString(),
		BookingDate: date,
		RoomID:      roomID,
		TimeSlotID:  slotID,
		UserID:      userID,
		Metadata:    model.NewMetadata(userID),
	}
}

// BookingDetail is a booking joined with its room, slot and owner.
type BookingDetail struct {
	ID           string      `db:"id"`
	BookingDate  model.Date  `db:"booking_date"`
	RoomID       string      `db:"room_id"`
	TimeSlotID   string      `db:"time_slot_id"`
	UserID       string      `db:"user_id"`
	RoomName     string      `db:"room_name"     table:"rooms"      column:"name"`
	RoomLocation string      `db:"room_location" table:"rooms"      column:"location"`
	StartTime    model.Clock `db:"start_time"    table:"time_slots" column:"start_time"`
	EndTime      model.Clock `db:"end_time"      table:"time_slots" column:"end_time"`
	UserEmail    string      `db:"user_email"    table:"users"      column:"email"`
	UserFullName string      `db:"user_full_name" table:"users"     column:"full_name"`
	model.Metadata
}

func (BookingDetail) GetJoinQuery() string {
	return "JOIN " + joinRoomsTable + " ON " + joinRoomsTable + ".id = " + TableName + "." + FieldRoomID +
		" JOIN " + joinSlotsTable + " ON " + joinSlotsTable + ".id = " + TableName + "." + FieldTimeSlotID +
		" JOIN " + joinUsersTable + " ON " + joinUsersTable + ".id = " + TableName + "." + FieldUserID
}

// Booking drops the joined columns.
func (d BookingDetail) Booking() Booking {
	return Booking{
		ID:          d.ID,
		BookingDate: d.BookingDate,
		RoomID:      d.RoomID,
		TimeSlotID:  d.TimeSlotID,
		UserID:      d.UserID,
		Metadata:    d.Metadata,
	}
}
