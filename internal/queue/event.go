// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationCreatedEvent is published when a booking passes the conflict
// check and is persisted.  It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type ReservationCreatedEvent struct {
    ReservationID uint64 `json:"reservation_id"`
    UserID        uint64 `json:"user_id"`
    SeanceID      int64  `json:"seance_id"`
    StartsAt      string `json:"starts_at"`
    EndsAt        string `json:"ends_at"`
    CreatedAt     string `json:"created_at"`
}
