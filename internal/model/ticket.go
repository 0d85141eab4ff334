package model

import "time"

// Ticket mirrors the `tickets` table: one purchase of one or more seats for
// a showtime. Seats are stored JSON-encoded in a single column since nothing
// queries them individually.
type Ticket struct {
	ID         uint64    `json:"id"`
	UserID     uint64    `json:"-"`
	ShowtimeID uint64    `json:"-"`
	Seats      []string  `json:"seats"`
	CreatedAt  time.Time `json:"purchasedAt"`
}

// The view types below are what the ticket aggregation returns: each stored
// reference expanded into the referenced record. Every pointer may be nil
// when the referenced row has been deleted; the response stays well-formed
// and the hole is visible to the client as a JSON null.

// CinemaRef is a cinema projected to its name for ticket responses.
type CinemaRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// TheaterRef is a theater projected to its number plus its parent cinema.
type TheaterRef struct {
	ID     uint64     `json:"id"`
	Number int        `json:"number"`
	Cinema *CinemaRef `json:"cinema"`
}

// ShowtimeView is a showtime with its movie and theater references expanded.
type ShowtimeView struct {
	ID        uint64      `json:"id"`
	StartsAt  time.Time   `json:"showtime"`
	IsRelease bool        `json:"isRelease"`
	Movie     *Movie      `json:"movie"`
	Theater   *TheaterRef `json:"theater"`
}

// TicketView is a ticket with its showtime reference expanded.
type TicketView struct {
	ID        uint64        `json:"id"`
	Seats     []string      `json:"seats"`
	Purchased time.Time     `json:"purchasedAt"`
	Showtime  *ShowtimeView `json:"showtime"`
}

// TicketOwner is the projection returned by "get my tickets": the user
// restricted to identity plus expanded tickets.
type TicketOwner struct {
	ID      uint64       `json:"id"`
	Tickets []TicketView `json:"tickets"`
}

// UserWithTickets is the full user document with expanded tickets, used by
// the admin user listing. The embedded User keeps the password hash out of
// the JSON.
type UserWithTickets struct {
	User
	Tickets []TicketView `json:"tickets"`
}
