package validator_test

import (
	"net/http"
	"roombook/shared/failure"
	"roombook/shared/validator"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type bookingPayload struct {
	RoomID     string `json:"room_id"      validate:"required,uuid"`
	TimeSlotID string `json:"time_slot_id" validate:"required,uuid"`
	Date       string `json:"date"         validate:"required,isodate"`
}

type roomPayload struct {
	Name     string `json:"name"      validate:"required,max=100"`
	OpenDays []int  `json:"open_days" validate:"omitempty,daycodes"`
}

const (
	roomID = "7a1f0a52-1f4c-4a54-9a3c-7c1d7e2f5b10"
	slotID = "b3f1d6c2-8e57-4c1b-a1b6-0d5b1f0f6a21"
)

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *bookingPayload
		expectError bool
	}{
		{
			name:        "valid booking",
			data:        &bookingPayload{RoomID: roomID, TimeSlotID: slotID, Date: "2025-01-06"},
			expectError: false,
		},
		{
			name:        "missing room",
			data:        &bookingPayload{TimeSlotID: slotID, Date: "2025-01-06"},
			expectError: true,
		},
		{
			name:        "malformed id",
			data:        &bookingPayload{RoomID: "room-1", TimeSlotID: slotID, Date: "2025-01-06"},
			expectError: true,
		},
		{
			name:        "malformed date",
			data:        &bookingPayload{RoomID: roomID, TimeSlotID: slotID, Date: "06/01/2025"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDayCodes(t *testing.T) {
	assert.NoError(t, validator.ValidateStruct(&roomPayload{Name: "Lab", OpenDays: []int{2, 3, 4}}))
	assert.NoError(t, validator.ValidateStruct(&roomPayload{Name: "Lab"}))

	err := validator.ValidateStruct(&roomPayload{Name: "Lab", OpenDays: []int{0, 8}})
	assert.EqualError(t, err, "open_days must only contain day codes between 1 and 7")
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{name: "valid required string", field: "test", tag: "required"},
		{name: "empty required string", field: "", tag: "required", expectError: true},
		{name: "valid email", field: "test@example.com", tag: "email"},
		{name: "invalid email", field: "invalid-email", tag: "email", expectError: true},
		{name: "valid date", field: "2025-02-28", tag: "isodate"},
		{name: "invalid date", field: "2025-02-30", tag: "isodate", expectError: true},
		{name: "valid clock", field: "09:00", tag: "clock"},
		{name: "invalid clock", field: "9 o'clock", tag: "clock", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:     "valid JSON",
			jsonBody: `{"room_id":"` + roomID + `","time_slot_id":"` + slotID + `","date":"2025-01-06"}`,
		},
		{
			name:        "invalid field",
			jsonBody:    `{"room_id":"` + roomID + `","time_slot_id":"` + slotID + `","date":"tomorrow"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"room_id":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data bookingPayload
			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	err := validator.ValidateStruct(&bookingPayload{})
	if err == nil {
		t.Fatal("expected validation error for empty struct")
	}

	assert.Equal(t, "room_id is required", err.Error())
}
