package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/hardikmakkar07/CineBooker/internal/model"
)

// TicketRepo owns the `tickets` table and the cross-collection expansion of
// ticket references (ticket -> showtime -> {movie, theater -> cinema}).
//
// The expansion is a batched pipeline: one query per collection with an
// IN-list of distinct ids, so the query count is constant regardless of how
// many tickets a user holds. Any reference whose row has been deleted
// resolves to a nil sub-object instead of failing the whole read.
type TicketRepo struct{ DB *sql.DB }

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{DB: db} }

// Create inserts a ticket for a user. Seats are stored JSON-encoded.
func (r *TicketRepo) Create(ctx context.Context, userID, showtimeID uint64, seats []string) (uint64, error) {
	encoded, err := json.Marshal(seats)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO tickets (user_id, showtime_id, seats) VALUES (?,?,?)",
		userID, showtimeID, string(encoded))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ExpandForUser resolves one user's tickets through the full reference
// chain. The result is never nil, so an empty history serializes as [].
func (r *TicketRepo) ExpandForUser(ctx context.Context, userID uint64) ([]model.TicketView, error) {
	byUser, err := r.ExpandForUsers(ctx, []uint64{userID})
	if err != nil {
		return nil, err
	}
	if views, ok := byUser[userID]; ok {
		return views, nil
	}
	return []model.TicketView{}, nil
}

// ExpandForUsers runs the batched expansion for a set of users at once and
// groups the resulting views by user id. Used by the admin user listing so
// the pipeline stays at four queries no matter how many users exist.
func (r *TicketRepo) ExpandForUsers(ctx context.Context, userIDs []uint64) (map[uint64][]model.TicketView, error) {
	out := make(map[uint64][]model.TicketView, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	tickets, err := r.ticketsByUsers(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	showtimes, err := r.showtimesByIDs(ctx, distinct(tickets, func(t ticketRow) uint64 { return t.ShowtimeID }))
	if err != nil {
		return nil, err
	}

	var movieIDs, theaterIDs []uint64
	for _, s := range showtimes {
		movieIDs = append(movieIDs, s.MovieID)
		theaterIDs = append(theaterIDs, s.TheaterID)
	}
	movies, err := r.moviesByIDs(ctx, dedupe(movieIDs))
	if err != nil {
		return nil, err
	}
	theaters, err := r.theatersByIDs(ctx, dedupe(theaterIDs))
	if err != nil {
		return nil, err
	}

	var cinemaIDs []uint64
	for _, t := range theaters {
		cinemaIDs = append(cinemaIDs, t.CinemaID)
	}
	cinemas, err := r.cinemaNamesByIDs(ctx, dedupe(cinemaIDs))
	if err != nil {
		return nil, err
	}

	for _, t := range tickets {
		out[t.UserID] = append(out[t.UserID], assembleTicket(t, showtimes, movies, theaters, cinemas))
	}
	return out, nil
}

// ticketRow is a ticket as stored, before reference expansion.
type ticketRow struct {
	ID         uint64
	UserID     uint64
	ShowtimeID uint64
	Seats      []string
	CreatedAt  time.Time
}

// assembleTicket stitches one stored ticket together with whatever linked
// rows the pipeline found. Missing links stay nil.
func assembleTicket(t ticketRow, showtimes map[uint64]model.Showtime, movies map[uint64]model.Movie,
	theaters map[uint64]model.Theater, cinemas map[uint64]model.CinemaRef) model.TicketView {

	view := model.TicketView{ID: t.ID, Seats: t.Seats, Purchased: t.CreatedAt}
	if view.Seats == nil {
		view.Seats = []string{}
	}

	st, ok := showtimes[t.ShowtimeID]
	if !ok {
		return view // showtime deleted: ticket survives with a null showtime
	}
	sv := &model.ShowtimeView{ID: st.ID, StartsAt: st.StartsAt, IsRelease: st.IsRelease}
	if m, ok := movies[st.MovieID]; ok {
		sv.Movie = &m
	}
	if th, ok := theaters[st.TheaterID]; ok {
		ref := &model.TheaterRef{ID: th.ID, Number: th.Number}
		if cin, ok := cinemas[th.CinemaID]; ok {
			ref.Cinema = &cin
		}
		sv.Theater = ref
	}
	view.Showtime = sv
	return view
}

func (r *TicketRepo) ticketsByUsers(ctx context.Context, userIDs []uint64) ([]ticketRow, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, showtime_id, seats, created_at FROM tickets WHERE user_id IN ("+
			placeholders(len(userIDs))+") ORDER BY id", toArgs(userIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ticketRow
	for rows.Next() {
		var t ticketRow
		var seats string
		if err := rows.Scan(&t.ID, &t.UserID, &t.ShowtimeID, &seats, &t.CreatedAt); err != nil {
			return nil, err
		}
		// A corrupt seats blob degrades to an empty list; the ticket itself
		// still shows up in the history.
		_ = json.Unmarshal([]byte(seats), &t.Seats)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TicketRepo) showtimesByIDs(ctx context.Context, ids []uint64) (map[uint64]model.Showtime, error) {
	out := make(map[uint64]model.Showtime, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, theater_id, movie_id, starts_at, is_release FROM showtimes WHERE id IN ("+
			placeholders(len(ids))+")", toArgs(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var s model.Showtime
		if err := rows.Scan(&s.ID, &s.TheaterID, &s.MovieID, &s.StartsAt, &s.IsRelease); err != nil {
			return nil, err
		}
		out[s.ID] = s
	}
	return out, rows.Err()
}

func (r *TicketRepo) moviesByIDs(ctx context.Context, ids []uint64) (map[uint64]model.Movie, error) {
	out := make(map[uint64]model.Movie, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, length_min, img, created_at, updated_at FROM movies WHERE id IN ("+
			placeholders(len(ids))+")", toArgs(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.Name, &m.Length, &m.Img, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out[m.ID] = m
	}
	return out, rows.Err()
}

func (r *TicketRepo) theatersByIDs(ctx context.Context, ids []uint64) (map[uint64]model.Theater, error) {
	out := make(map[uint64]model.Theater, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, cinema_id, number FROM theaters WHERE id IN ("+
			placeholders(len(ids))+")", toArgs(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var t model.Theater
		if err := rows.Scan(&t.ID, &t.CinemaID, &t.Number); err != nil {
			return nil, err
		}
		out[t.ID] = t
	}
	return out, rows.Err()
}

// cinemaNamesByIDs projects cinemas to id+name; the full record is not
// needed inside a ticket.
func (r *TicketRepo) cinemaNamesByIDs(ctx context.Context, ids []uint64) (map[uint64]model.CinemaRef, error) {
	out := make(map[uint64]model.CinemaRef, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name FROM cinemas WHERE id IN ("+placeholders(len(ids))+")", toArgs(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var c model.CinemaRef
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out[c.ID] = c
	}
	return out, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func toArgs(ids []uint64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

func distinct(tickets []ticketRow, key func(ticketRow) uint64) []uint64 {
	var ids []uint64
	for _, t := range tickets {
		ids = append(ids, key(t))
	}
	return dedupe(ids)
}

func dedupe(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	var out []uint64
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
