// Package queue defines the broker payloads and the background consumer for
// ticket purchase events.
package queue

// TicketBookedEvent is published when a ticket purchase is recorded. It
// carries enough context for downstream consumers (logging, notification,
// analytics) to act without querying the primary database.
type TicketBookedEvent struct {
	TicketID   uint64   `json:"ticket_id"`
	UserID     uint64   `json:"user_id"`
	Username   string   `json:"username"`
	ShowtimeID uint64   `json:"showtime_id"`
	MovieID    uint64   `json:"movie_id"`
	StartsAt   string   `json:"starts_at"`
	Seats      []string `json:"seats"`
	BookedAt   string   `json:"booked_at"`
}
