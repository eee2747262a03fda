package memory

import (
	"context"
	"errors"
	"sync"

	"staybook/internal/app/uow"
	"staybook/internal/domain/property"
	"staybook/internal/domain/reservation"
)

// ErrFactoryMisconfigured indicates missing repositories.
var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Factory wires in-memory repositories into a unit-of-work boundary.
// Writable units are serialized through a single mutex held from Begin to
// Commit/Rollback, so a check-then-write sequence observes a stable store.
// This is the in-memory equivalent of the transactional isolation the Mongo
// factory gets from sessions.
type Factory struct {
	ReservationRepo reservation.Repository
	PropertyCat     property.Catalog

	writeMu sync.Mutex
}

// Begin starts a lightweight transaction boundary.
func (f *Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.ReservationRepo == nil || f.PropertyCat == nil {
		return nil, ErrFactoryMisconfigured
	}
	unit := &Unit{
		reservations: f.ReservationRepo,
		properties:   f.PropertyCat,
	}
	if !opts.ReadOnly {
		f.writeMu.Lock()
		unit.release = f.writeMu.Unlock
	}
	return unit, nil
}

// Unit is a uow.UnitOfWork backed by in-memory stores. Writes are applied
// immediately; Commit/Rollback only manage the serialization lock, so a
// failed operation must not have written anything yet (the service checks
// every guard before its single Save).
type Unit struct {
	reservations reservation.Repository
	properties   property.Catalog
	release      func()
	done         bool
}

func (u *Unit) Reservations() reservation.Repository {
	return u.reservations
}

func (u *Unit) Properties() property.Catalog {
	return u.properties
}

func (u *Unit) Commit(ctx context.Context) error {
	u.finish()
	return nil
}

func (u *Unit) Rollback(ctx context.Context) error {
	u.finish()
	return nil
}

func (u *Unit) finish() {
	if u.done {
		return
	}
	u.done = true
	if u.release != nil {
		u.release()
	}
}

var _ uow.UoWFactory = (*Factory)(nil)
