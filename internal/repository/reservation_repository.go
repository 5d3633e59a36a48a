package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/movie-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations.  A
// reservation ties one user to one opaque showing slot; the stored
// date_reservation is the normalized slot start in UTC.  The repo
// supports the two access paths the booking engine depends on: an
// inclusive per-user range scan and a point delete by (id, user_id).
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// Create inserts a reservation and populates the generated ID and
// created_at timestamp on the provided record.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations (seance_id, date_reservation, user_id) VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, res.SeanceID, res.DateReservation, res.UserID)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back the stored row so defaults such as created_at are populated.
	const sel = `SELECT id, seance_id, date_reservation, user_id, created_at FROM reservations WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, res.ID).Scan(
		&res.ID, &res.SeanceID, &res.DateReservation, &res.UserID, &res.CreatedAt,
	)
}

// FindInWindow returns the user's reservations whose normalized slot start
// falls inside [from, to].  BETWEEN is inclusive on both bounds, which is
// what the conflict rule requires.  Rows are ordered by slot start so the
// first match is deterministic.
func (r *ReservationRepo) FindInWindow(ctx context.Context, userID uint64, from, to time.Time) ([]model.Reservation, error) {
	const q = `SELECT id, seance_id, date_reservation, user_id, created_at
	           FROM reservations
	           WHERE user_id = ? AND date_reservation BETWEEN ? AND ?
	           ORDER BY date_reservation`
	rows, err := r.db.QueryContext(ctx, q, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

// ListByUser returns every reservation owned by the user in store-natural
// order.  At the expected scale (a handful of bookings per user) no
// pagination is needed.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	const q = `SELECT id, seance_id, date_reservation, user_id, created_at
	           FROM reservations WHERE user_id = ?`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

// DeleteByIDAndUser removes a reservation only when both the id and the
// owning user match.  A reservation owned by someone else is
// indistinguishable from a missing one: both report sql.ErrNoRows.
func (r *ReservationRepo) DeleteByIDAndUser(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM reservations WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanReservations(rows *sql.Rows) ([]model.Reservation, error) {
	out := []model.Reservation{}
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.SeanceID, &res.DateReservation, &res.UserID, &res.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
