package dto

import (
	"roombook/internal/domains/room/model"
	gDto "roombook/shared/dto"
	gModel "roombook/shared/model"
	"roombook/shared/weekday"
	"time"
)

type CreateRoomRequest struct {
	Name     string `json:"name"      validate:"required,max=100"`
	Location string `json:"location"  validate:"omitempty,max=100"`
	OpenDays []int  `json:"open_days" validate:"omitempty,daycodes"`
}

type UpdateOpenDaysRequest struct {
	OpenDays []int `json:"open_days" validate:"required,min=1,daycodes"`
}

type SetSlotEnabledRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type SlotResponse struct {
	ID             string       `json:"id"`
	RoomID         string       `json:"room_id"`
	StartTime      gModel.Clock `json:"start_time"`
	EndTime        gModel.Clock `json:"end_time"`
	IsEnabled      bool         `json:"is_enabled"`
	IsOccupied     bool         `json:"is_occupied"`
	BookedByUserID *string      `json:"booked_by_user_id,omitempty"`
	BookedAt       *time.Time   `json:"booked_at,omitempty"`
}

func (r *SlotResponse) FromModel(slot model.TimeSlot) {
	r.ID = slot.ID
	r.RoomID = slot.RoomID
	r.StartTime = slot.StartTime
	r.EndTime = slot.EndTime
	r.IsEnabled = slot.IsEnabled
	r.IsOccupied = slot.IsOccupied
	r.BookedByUserID = slot.BookedByUserID
	r.BookedAt = slot.BookedAt
}

type RoomResponse struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Location     string         `json:"location"`
	OpenDays     weekday.Set    `json:"open_days"`
	OpenDayNames []string       `json:"open_day_names"`
	Slots        []SlotResponse `json:"slots"`
	gDto.Metadata
}

// FromModel fills the room and the slots that pass keep. A nil keep takes every slot.
func (r *RoomResponse) FromModel(room model.Room, slots []model.TimeSlot, keep func(model.TimeSlot) bool) {
	r.ID = room.ID
	r.Name = room.Name
	r.Location = room.Location
	r.OpenDays = room.OpenDays
	r.OpenDayNames = room.OpenDays.Names()
	r.Metadata.FromModel(room.Metadata)

	r.Slots = []SlotResponse{}

	for _, slot := range slots {
		if keep != nil && !keep(slot) {
			continue
		}

		var res SlotResponse
		res.FromModel(slot)

		r.Slots = append(r.Slots, res)
	}
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(rooms []model.Room, slots []model.TimeSlot, keep func(model.TimeSlot) bool) {
	slotsByRoom := map[string][]model.TimeSlot{}
	for _, slot := range slots {
		slotsByRoom[slot.RoomID] = append(slotsByRoom[slot.RoomID], slot)
	}

	r.TotalData = len(rooms)

	r.Rooms = make([]RoomResponse, len(rooms))
	for i, room := range rooms {
		r.Rooms[i].FromModel(room, slotsByRoom[room.ID], keep)
	}
}

// PublicSlot keeps the slots a visitor can still pick.
func PublicSlot(slot model.TimeSlot) bool {
	return slot.IsEnabled && !slot.IsOccupied
}
