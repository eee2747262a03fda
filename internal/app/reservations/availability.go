package reservations

import (
	"context"
	"time"

	"staybook/internal/app/uow"
	"staybook/internal/domain/reservation"
	"staybook/internal/domain/shared/daterange"
)

// IsAvailable reports whether the property is free for the requested dates.
// Pending and confirmed reservations block the calendar; cancelled and
// finalized ones do not. Ranges sharing only a turnover date count as
// conflicting. Read-only, no side effects.
func (s *Service) IsAvailable(ctx context.Context, propertyID string, checkIn, checkOut time.Time) (bool, error) {
	dr, err := daterange.New(checkIn, checkOut)
	if err != nil {
		return false, err
	}
	free := false
	err = s.withUnit(ctx, uow.TxOptions{ReadOnly: true}, func(ctx context.Context, unit uow.UnitOfWork) error {
		var err error
		free, err = availableFor(ctx, unit.Reservations(), propertyID, dr, "")
		return err
	})
	if err != nil {
		return false, err
	}
	return free, nil
}

// availableFor runs the overlap query, optionally ignoring one reservation
// (the one being updated).
func availableFor(ctx context.Context, repo reservation.Repository, propertyID string, dr daterange.DateRange, excludeID string) (bool, error) {
	overlapping, err := repo.FindOverlapping(ctx, propertyID, dr)
	if err != nil {
		return false, err
	}
	for _, other := range overlapping {
		if excludeID != "" && other.ID == excludeID {
			continue
		}
		return false, nil
	}
	return true, nil
}
