// Package queue defines message payloads exchanged over the message broker
// together with the publisher and the background log consumer.
package queue

// Actions carried by BookingEvent.
const (
	BookingActionCreated     = "created"
	BookingActionRoomChanged = "room_changed"
)

// BookingEvent is published when a booking is created or moved to a
// different room. It contains enough information for downstream
// consumers to log, notify, or trigger analytics without querying the
// primary database.
type BookingEvent struct {
	Action     string `json:"action"`
	BookingID  uint64 `json:"booking_id"`
	UserID     uint64 `json:"user_id"`
	RoomID     uint64 `json:"room_id"`
	RoomName   string `json:"room"`
	HotelID    uint64 `json:"hotel_id"`
	OccurredAt string `json:"occurred_at"`
}
