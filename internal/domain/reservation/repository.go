package reservation

import (
	"context"
	"time"

	"staybook/internal/domain/shared/daterange"
)

// Repository is the durable store for reservations. Save is insert-or-update:
// an empty ID gets one assigned, and the stored Version must match the
// aggregate's for updates (optimistic concurrency).
//
// FindOverlapping and FindByPropertyAndMonth only consider active
// reservations (pending or confirmed). FindOverlapping uses the
// boundary-inclusive conflict test from daterange.Conflicts.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Reservation, error)
	FindAll(ctx context.Context) ([]*Reservation, error)
	Save(ctx context.Context, r *Reservation) error
	DeleteByID(ctx context.Context, id string) error

	FindByClient(ctx context.Context, clientID string) ([]*Reservation, error)
	FindByProperty(ctx context.Context, propertyID string) ([]*Reservation, error)
	FindByStatus(ctx context.Context, status Status) ([]*Reservation, error)
	FindByCreatedBetween(ctx context.Context, start, end time.Time) ([]*Reservation, error)

	// FindByCode returns (nil, nil) when no reservation carries the code.
	FindByCode(ctx context.Context, code string) (*Reservation, error)
	FindOverlapping(ctx context.Context, propertyID string, rng daterange.DateRange) ([]*Reservation, error)
	FindByPropertyAndMonth(ctx context.Context, propertyID string, month, year int) ([]*Reservation, error)
}
