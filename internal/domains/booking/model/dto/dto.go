package dto

import (
	"roombook/internal/domains/booking/model"
	roomModel "roombook/internal/domains/room/model"
	gDto "roombook/shared/dto"
	gModel "roombook/shared/model"
	"roombook/shared/weekday"
	"time"
)

type CheckAvailabilityRequest struct {
	RoomID     string `json:"room_id"      validate:"required"`
	TimeSlotID string `json:"time_slot_id" validate:"required"`
	Date       string `json:"date"         validate:"required,isodate"`
}

type CheckAvailabilityResponse struct {
	RoomID     string      `json:"room_id"`
	TimeSlotID string      `json:"time_slot_id"`
	Date       gModel.Date `json:"date"`
	Available  bool        `json:"available"`
}

type CreateBookingRequest struct {
	RoomID     string `json:"room_id"      validate:"required"`
	TimeSlotID string `json:"time_slot_id" validate:"required"`
	Date       string `json:"date"         validate:"required,isodate"`
}

type BookingResponse struct {
	ID           string       `json:"id"`
	Date         gModel.Date  `json:"date"`
	RoomID       string       `json:"room_id"`
	RoomName     string       `json:"room_name,omitempty"`
	RoomLocation string       `json:"room_location,omitempty"`
	TimeSlotID   string       `json:"time_slot_id"`
	StartTime    gModel.Clock `json:"start_time"`
	EndTime      gModel.Clock `json:"end_time"`
	UserID       string       `json:"user_id"`
	UserEmail    string       `json:"user_email,omitempty"`
	UserFullName string       `json:"user_full_name,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromDetail(detail model.BookingDetail) {
	r.ID = detail.ID
	r.Date = detail.BookingDate
	r.RoomID = detail.RoomID
	r.RoomName = detail.RoomName
	r.RoomLocation = detail.RoomLocation
	r.TimeSlotID = detail.TimeSlotID
	r.StartTime = detail.StartTime
	r.EndTime = detail.EndTime
	r.UserID = detail.UserID
	r.UserEmail = detail.UserEmail
	r.UserFullName = detail.UserFullName
	r.Metadata.FromModel(detail.Metadata)
}

func (r *BookingResponse) FromModel(booking model.Booking, room roomModel.Room, slot roomModel.TimeSlot) {
	r.ID = booking.ID
	r.Date = booking.BookingDate
	r.RoomID = booking.RoomID
	r.RoomName = room.Name
	r.RoomLocation = room.Location
	r.TimeSlotID = booking.TimeSlotID
	r.StartTime = slot.StartTime
	r.EndTime = slot.EndTime
	r.UserID = booking.UserID
	r.Metadata.FromModel(booking.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromDetails(details []model.BookingDetail) {
	r.TotalData = len(details)

	r.Bookings = make([]BookingResponse, len(details))
	for i, detail := range details {
		r.Bookings[i].FromDetail(detail)
	}
}

type SlotAvailability struct {
	ID        string       `json:"id"`
	StartTime gModel.Clock `json:"start_time"`
	EndTime   gModel.Clock `json:"end_time"`
	IsEnabled bool         `json:"is_enabled"`
	IsBooked  bool         `json:"is_booked"`
	Available bool         `json:"available"`
}

type RoomAvailability struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Location   string             `json:"location"`
	OpenDays   weekday.Set        `json:"open_days"`
	OpenOnDate bool               `json:"open_on_date"`
	Slots      []SlotAvailability `json:"slots"`
}

type GetRoomAvailabilityResponse struct {
	Date  gModel.Date        `json:"date"`
	Rooms []RoomAvailability `json:"rooms"`
}

// BookingEvent is published whenever a booking is created, cancelled or released.
type BookingEvent struct {
	Type       string      `json:"type"`
	BookingID  string      `json:"booking_id"`
	RoomID     string      `json:"room_id"`
	TimeSlotID string      `json:"time_slot_id"`
	UserID     string      `json:"user_id"`
	Date       gModel.Date `json:"date"`
	ActorID    string      `json:"actor_id"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func NewBookingEvent(eventType string, booking model.Booking, actorID string, at time.Time) BookingEvent {
	return BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		RoomID:     booking.RoomID,
		TimeSlotID: booking.TimeSlotID,
		UserID:     booking.UserID,
		Date:       booking.BookingDate,
		ActorID:    actorID,
		OccurredAt: at,
	}
}
