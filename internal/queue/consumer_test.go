package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleMessage_WritesLogLine(t *testing.T) {
	t.Chdir(t.TempDir())

	ev := BookingEvent{
		Action:     BookingActionCreated,
		BookingID:  42,
		UserID:     7,
		RoomID:     5,
		RoomName:   "101",
		HotelID:    2,
		OccurredAt: "2026-08-30T12:00:00Z",
	}
	body, err := json.Marshal(ev)
	assert.NoError(t, err)

	assert.NoError(t, handleMessage(body))

	data, err := os.ReadFile(filepath.Join("logs", "booking.log"))
	assert.NoError(t, err)
	line := string(data)
	assert.Contains(t, line, "Booking created")
	assert.Contains(t, line, "booking_id=42")
	assert.Contains(t, line, "user_id=7")
	assert.Contains(t, line, `room="101"`)
}

func TestHandleMessage_AppendsAcrossMessages(t *testing.T) {
	t.Chdir(t.TempDir())

	for _, action := range []string{BookingActionCreated, BookingActionRoomChanged} {
		body, err := json.Marshal(BookingEvent{Action: action, BookingID: 1})
		assert.NoError(t, err)
		assert.NoError(t, handleMessage(body))
	}

	data, err := os.ReadFile(filepath.Join("logs", "booking.log"))
	assert.NoError(t, err)
	assert.Contains(t, string(data), "Booking created")
	assert.Contains(t, string(data), "Booking room_changed")
}

func TestHandleMessage_RejectsMalformedPayload(t *testing.T) {
	t.Chdir(t.TempDir())

	assert.Error(t, handleMessage([]byte("{not json")))
	_, err := os.Stat(filepath.Join("logs", "booking.log"))
	assert.True(t, os.IsNotExist(err))
}
