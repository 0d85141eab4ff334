package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/hardikmakkar07/CineBooker/internal/model"
	"github.com/hardikmakkar07/CineBooker/internal/utils"
)

const userColumns = "id, username, email, password_hash, role, created_at, updated_at"

// UserRepo is the credential store: it owns the `users` table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// FindByUsernameOrEmail probes for an existing account matching either
// value in a single query. A nil user with nil error means no match; the
// caller decides which field collided.
func (r *UserRepo) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	u, err := r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? OR email=? LIMIT 1",
		username, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create hashes the password and inserts the user, returning its id.
// A unique-index loser (including one that slipped past the pre-check in a
// concurrent registration) comes back as a *DuplicateError naming the field.
func (r *UserRepo) Create(ctx context.Context, username, email, password, role string, cost int) (uint64, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, role) VALUES (?,?,?,?)",
		username, email, hash, role)
	if err != nil {
		if dup, ok := asDuplicate(err); ok {
			return 0, dup
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// FindByUsername fetches a user including the password hash, for login.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? LIMIT 1", username))
}

// FindByID fetches a user by id. Returns ErrNotFound when absent.
func (r *UserRepo) FindByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// All returns every user, ordered by id.
func (r *UserRepo) All(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UserUpdate carries the partial fields of an update; nil means unchanged.
type UserUpdate struct {
	Username *string
	Email    *string
	Password *string
	Role     *string
}

// UpdateByID applies the non-nil fields and returns the updated record.
// Returns ErrNotFound for an unknown id and *DuplicateError when the new
// username or email is taken.
func (r *UserRepo) UpdateByID(ctx context.Context, id uint64, upd UserUpdate, cost int) (model.User, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return model.User{}, err
	}

	var sets []string
	var args []any
	if upd.Username != nil {
		sets, args = append(sets, "username=?"), append(args, *upd.Username)
	}
	if upd.Email != nil {
		sets, args = append(sets, "email=?"), append(args, *upd.Email)
	}
	if upd.Password != nil {
		hash, err := utils.HashPassword(*upd.Password, cost)
		if err != nil {
			return model.User{}, err
		}
		sets, args = append(sets, "password_hash=?"), append(args, hash)
	}
	if upd.Role != nil {
		sets, args = append(sets, "role=?"), append(args, *upd.Role)
	}
	if len(sets) > 0 {
		args = append(args, id)
		_, err := r.DB.ExecContext(ctx,
			"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
		if err != nil {
			if dup, ok := asDuplicate(err); ok {
				return model.User{}, dup
			}
			return model.User{}, err
		}
	}
	return r.FindByID(ctx, id)
}

// DeleteByID removes the user row. Tickets referencing the user are left in
// place; see the schema notes on dangling references.
func (r *UserRepo) DeleteByID(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
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

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
