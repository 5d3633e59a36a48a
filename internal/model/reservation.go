package model

import "time"

// Reservation records a user's booking of one showing slot.  The
// seance identifier is an opaque integer supplied by the client and
// is not validated against any catalog.  DateReservation holds the
// normalized slot start (the requested time shifted back by one
// hour); all conflict-window math runs on this stored value.
//
// Fields:
//  ID              – primary key identifier.
//  SeanceID        – opaque showing identifier from the catalog client.
//  DateReservation – normalized slot start, stored in UTC.
//  UserID          – user who owns the reservation.
//  CreatedAt       – creation timestamp.
type Reservation struct {
    ID              uint64    `json:"id"`              // reservations.id
    SeanceID        int64     `json:"seanceId"`        // reservations.seance_id
    DateReservation time.Time `json:"dateReservation"` // reservations.date_reservation
    UserID          uint64    `json:"userId"`          // reservations.user_id
    CreatedAt       time.Time `json:"createdAt"`       // reservations.created_at
}
