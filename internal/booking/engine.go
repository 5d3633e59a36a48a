// Package booking implements the reservation admission decision: a user may
// not hold two reservations whose normalized slot starts fall within four
// hours of each other.
package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/movie-reservation/internal/model"
)

const (
	// slotShift is subtracted from the client-submitted timestamp before any
	// window math; the shifted value is what gets stored and compared.  The
	// shift is reproduced from the observed behavior of the booking flow and
	// must not be reinterpreted.
	slotShift = time.Hour
	// windowHalf is the half-width of the exclusion window around a stored
	// slot start.  No second reservation may land within ±windowHalf
	// (inclusive) of an existing one for the same user.
	windowHalf = 2 * time.Hour
	// slotLength is the nominal viewing duration used for the derived
	// display window returned to clients.
	slotLength = 2 * time.Hour
)

// hourLayout formats the derived display times (slot start and end).
const hourLayout = "15:04:05"

// ErrNotFound is returned by Cancel when no reservation matches the
// (id, user) pair.  A reservation owned by another user reports the same
// error so ownership cannot be probed.
var ErrNotFound = errors.New("reservation not found")

// ConflictError reports an admission rejection.  Start and End describe the
// colliding reservation's viewing window so the client can tell the user
// when they are already busy.
type ConflictError struct {
	Start time.Time
	End   time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("you already have an active reservation from %s to %s; please pick a showing when you are free",
		e.Start.Format(hourLayout), e.End.Format(hourLayout))
}

// Store is the persistence contract the engine needs.  The SQL
// implementation lives in the repository package; tests substitute an
// in-memory fake.
type Store interface {
	Create(ctx context.Context, r *model.Reservation) error
	FindInWindow(ctx context.Context, userID uint64, from, to time.Time) ([]model.Reservation, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error)
	DeleteByIDAndUser(ctx context.Context, id, userID uint64) error
}

// Booking is the response shape for a successful admission: the stored row
// plus the derived display window.  HeureDebut and HeureFin are computed on
// every response and never persisted.
type Booking struct {
	model.Reservation
	HeureDebut string `json:"heureDebut"`
	HeureFin   string `json:"heureFin"`
}

// Engine decides whether a booking request is admitted and drives the
// reservation store.  It holds no state of its own; the conflict check and
// the insert run as two separate statements, so two racing requests for the
// same user can both pass the check.  That matches the observed behavior
// and is acceptable at the expected per-user request rate.
type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	if store == nil {
		panic("nil store passed to NewEngine")
	}
	return &Engine{store: store}
}

// Book admits or rejects a reservation request.  The requested time is
// shifted back by slotShift, the user's existing reservations inside
// [slot-windowHalf, slot+windowHalf] are checked, and on a clean window the
// shifted slot is persisted.  On a collision the first reservation returned
// by the store describes the conflicting window in the returned error.
func (e *Engine) Book(ctx context.Context, userID uint64, seanceID int64, requested time.Time) (*Booking, error) {
	slot := requested.Add(-slotShift)

	existing, err := e.store.FindInWindow(ctx, userID, slot.Add(-windowHalf), slot.Add(windowHalf))
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		busy := existing[0]
		return nil, &ConflictError{
			Start: busy.DateReservation,
			End:   busy.DateReservation.Add(slotLength),
		}
	}

	res := &model.Reservation{
		SeanceID:        seanceID,
		DateReservation: slot,
		UserID:          userID,
	}
	if err := e.store.Create(ctx, res); err != nil {
		return nil, err
	}
	return &Booking{
		Reservation: *res,
		HeureDebut:  res.DateReservation.Format(hourLayout),
		HeureFin:    res.DateReservation.Add(slotLength).Format(hourLayout),
	}, nil
}

// List returns all reservations owned by the user in store order.
func (e *Engine) List(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	return e.store.ListByUser(ctx, userID)
}

// Cancel removes the reservation matching both id and owner.  Missing and
// not-owned rows both come back as ErrNotFound.
func (e *Engine) Cancel(ctx context.Context, id, userID uint64) error {
	err := e.store.DeleteByIDAndUser(ctx, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
