package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hardikmakkar07/CineBooker/internal/model"
)

const theaterColumns = "id, cinema_id, number, seat_rows, seat_cols, created_at, updated_at"

// TheaterRepo owns the `theaters` table.
type TheaterRepo struct{ DB *sql.DB }

func NewTheaterRepo(db *sql.DB) *TheaterRepo { return &TheaterRepo{DB: db} }

func (r *TheaterRepo) Create(ctx context.Context, t model.Theater) (model.Theater, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO theaters (cinema_id, number, seat_rows, seat_cols) VALUES (?,?,?,?)",
		t.CinemaID, t.Number, t.Rows, t.Columns)
	if err != nil {
		return model.Theater{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Theater{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

func (r *TheaterRepo) GetByID(ctx context.Context, id uint64) (model.Theater, error) {
	var t model.Theater
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+theaterColumns+" FROM theaters WHERE id=? LIMIT 1", id).
		Scan(&t.ID, &t.CinemaID, &t.Number, &t.Rows, &t.Columns, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Theater{}, ErrNotFound
	}
	return t, err
}

// List returns all theaters, optionally filtered by cinema (0 = all).
func (r *TheaterRepo) List(ctx context.Context, cinemaID uint64) ([]model.Theater, error) {
	query := "SELECT " + theaterColumns + " FROM theaters ORDER BY id"
	var args []any
	if cinemaID != 0 {
		query = "SELECT " + theaterColumns + " FROM theaters WHERE cinema_id=? ORDER BY id"
		args = append(args, cinemaID)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Theater{}
	for rows.Next() {
		var t model.Theater
		if err := rows.Scan(&t.ID, &t.CinemaID, &t.Number, &t.Rows, &t.Columns, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TheaterRepo) Update(ctx context.Context, id uint64, t model.Theater) (model.Theater, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return model.Theater{}, err
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE theaters SET cinema_id=?, number=?, seat_rows=?, seat_cols=? WHERE id=?",
		t.CinemaID, t.Number, t.Rows, t.Columns, id)
	if err != nil {
		return model.Theater{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *TheaterRepo) DeleteByID(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM theaters WHERE id=?", id)
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
