package model

import "time"

// Movie mirrors the `movies` table. Length is the running time in minutes
// and Img an external poster URL.
type Movie struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Length    int       `json:"length"`
	Img       string    `json:"img"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Showtime schedules a movie in a theater at a point in time. IsRelease
// marks whether tickets are on sale yet.
type Showtime struct {
	ID        uint64    `json:"id"`
	TheaterID uint64    `json:"theater"`
	MovieID   uint64    `json:"movie"`
	StartsAt  time.Time `json:"showtime"`
	IsRelease bool      `json:"isRelease"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
