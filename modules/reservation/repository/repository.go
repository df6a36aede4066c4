package repository

import (
	"context"
	"errors"

	"roombook/modules/reservation/entity"
)

// ErrNotFound is returned by Update and Delete when no reservation with
// the addressed id exists. Any other repository error means the backing
// store is unavailable.
var ErrNotFound = errors.New("reservation not found")

// ReservationRepositoryInterface is the EventStore contract: a durable
// collection of reservations keyed by integer id. Both the atomic-file
// and the Postgres implementations satisfy it; every mutating operation
// persists durably before returning.
type ReservationRepositoryInterface interface {
	// Load returns the full snapshot ordered by (event_date, start_time).
	Load(ctx context.Context) ([]entity.Reservation, error)

	// Append assigns the next id, persists the reservation and returns
	// it. Ids are monotonic per store lifetime and never reused.
	Append(ctx context.Context, r *entity.Reservation) (*entity.Reservation, error)

	// Update replaces the date/time fields of the addressed reservation.
	Update(ctx context.Context, id int, eventDate, startTime, endTime string) error

	// Delete removes the addressed reservation.
	Delete(ctx context.Context, id int) error

	// QueryRange returns reservations with event_date in [startDate,
	// endDate), ordered by (event_date, start_time).
	QueryRange(ctx context.Context, startDate, endDate string) ([]entity.Reservation, error)
}
