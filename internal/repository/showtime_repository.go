package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hardikmakkar07/CineBooker/internal/model"
)

const showtimeColumns = "id, theater_id, movie_id, starts_at, is_release, created_at, updated_at"

// ShowtimeRepo owns the `showtimes` table.
type ShowtimeRepo struct{ DB *sql.DB }

func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo { return &ShowtimeRepo{DB: db} }

func (r *ShowtimeRepo) Create(ctx context.Context, s model.Showtime) (model.Showtime, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO showtimes (theater_id, movie_id, starts_at, is_release) VALUES (?,?,?,?)",
		s.TheaterID, s.MovieID, s.StartsAt, s.IsRelease)
	if err != nil {
		return model.Showtime{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Showtime{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

func (r *ShowtimeRepo) GetByID(ctx context.Context, id uint64) (model.Showtime, error) {
	var s model.Showtime
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+showtimeColumns+" FROM showtimes WHERE id=? LIMIT 1", id).
		Scan(&s.ID, &s.TheaterID, &s.MovieID, &s.StartsAt, &s.IsRelease, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Showtime{}, ErrNotFound
	}
	return s, err
}

// List returns showtimes, optionally filtered by movie or theater (0 = no
// filter). Only released showtimes are returned unless includeUnreleased.
func (r *ShowtimeRepo) List(ctx context.Context, movieID, theaterID uint64, includeUnreleased bool) ([]model.Showtime, error) {
	query := "SELECT " + showtimeColumns + " FROM showtimes WHERE 1=1"
	var args []any
	if movieID != 0 {
		query += " AND movie_id=?"
		args = append(args, movieID)
	}
	if theaterID != 0 {
		query += " AND theater_id=?"
		args = append(args, theaterID)
	}
	if !includeUnreleased {
		query += " AND is_release=1"
	}
	query += " ORDER BY starts_at"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Showtime{}
	for rows.Next() {
		var s model.Showtime
		if err := rows.Scan(&s.ID, &s.TheaterID, &s.MovieID, &s.StartsAt, &s.IsRelease, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ShowtimeRepo) Update(ctx context.Context, id uint64, s model.Showtime) (model.Showtime, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return model.Showtime{}, err
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE showtimes SET theater_id=?, movie_id=?, starts_at=?, is_release=? WHERE id=?",
		s.TheaterID, s.MovieID, s.StartsAt, s.IsRelease, id)
	if err != nil {
		return model.Showtime{}, err
	}
	return r.GetByID(ctx, id)
}

// DeleteByID removes the showtime. Tickets that reference it become
// dangling and show a null showtime in ticket history.
func (r *ShowtimeRepo) DeleteByID(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM showtimes WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
