package uow

import (
	"context"

	"staybook/internal/domain/property"
	"staybook/internal/domain/reservation"
)

// UnitOfWork coordinates repositories inside a transaction boundary. The
// availability check and the subsequent write in book/update run inside one
// unit, so two concurrent bookings for overlapping ranges cannot both commit.
type UnitOfWork interface {
	Reservations() reservation.Repository
	Properties() property.Catalog

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UoWFactory starts unit of work instances.
type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
