package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hardikmakkar07/CineBooker/internal/model"
)

// CinemaRepo owns the `cinemas` table.
type CinemaRepo struct{ DB *sql.DB }

func NewCinemaRepo(db *sql.DB) *CinemaRepo { return &CinemaRepo{DB: db} }

func (r *CinemaRepo) Create(ctx context.Context, name string) (model.Cinema, error) {
	res, err := r.DB.ExecContext(ctx, "INSERT INTO cinemas (name) VALUES (?)", name)
	if err != nil {
		if dup, ok := asDuplicate(err); ok {
			return model.Cinema{}, dup
		}
		return model.Cinema{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Cinema{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

func (r *CinemaRepo) GetByID(ctx context.Context, id uint64) (model.Cinema, error) {
	var c model.Cinema
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM cinemas WHERE id=? LIMIT 1", id).
		Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Cinema{}, ErrNotFound
	}
	return c, err
}

func (r *CinemaRepo) List(ctx context.Context) ([]model.Cinema, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, created_at, updated_at FROM cinemas ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Cinema{}
	for rows.Next() {
		var c model.Cinema
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CinemaRepo) UpdateName(ctx context.Context, id uint64, name string) (model.Cinema, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return model.Cinema{}, err
	}
	if _, err := r.DB.ExecContext(ctx, "UPDATE cinemas SET name=? WHERE id=?", name, id); err != nil {
		if dup, ok := asDuplicate(err); ok {
			return model.Cinema{}, dup
		}
		return model.Cinema{}, err
	}
	return r.GetByID(ctx, id)
}

// DeleteByID removes the cinema only. Theaters that point at it keep their
// reference; reads degrade per the aggregation rules.
func (r *CinemaRepo) DeleteByID(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM cinemas WHERE id=?", id)
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
