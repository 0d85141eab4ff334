package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hardikmakkar07/CineBooker/internal/model"
)

const movieColumns = "id, name, length_min, img, created_at, updated_at"

// MovieRepo owns the `movies` table.
type MovieRepo struct{ DB *sql.DB }

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{DB: db} }

func (r *MovieRepo) Create(ctx context.Context, m model.Movie) (model.Movie, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO movies (name, length_min, img) VALUES (?,?,?)",
		m.Name, m.Length, m.Img)
	if err != nil {
		return model.Movie{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Movie{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (model.Movie, error) {
	var m model.Movie
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE id=? LIMIT 1", id).
		Scan(&m.ID, &m.Name, &m.Length, &m.Img, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Movie{}, ErrNotFound
	}
	return m, err
}

func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+movieColumns+" FROM movies ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Movie{}
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.Name, &m.Length, &m.Img, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MovieRepo) Update(ctx context.Context, id uint64, m model.Movie) (model.Movie, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return model.Movie{}, err
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE movies SET name=?, length_min=?, img=? WHERE id=?",
		m.Name, m.Length, m.Img, id)
	if err != nil {
		return model.Movie{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *MovieRepo) DeleteByID(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM movies WHERE id=?", id)
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
