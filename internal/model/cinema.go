package model

import "time"

// Cinema is a venue containing numbered theaters. Rows in the `cinemas`
// table; name is unique.
type Cinema struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Theater is a single screen inside a cinema, identified by its number.
// Rows and Columns describe the seat plan used by the booking UI.
type Theater struct {
	ID        uint64    `json:"id"`
	CinemaID  uint64    `json:"cinema"`
	Number    int       `json:"number"`
	Rows      int       `json:"rows"`
	Columns   int       `json:"columns"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
