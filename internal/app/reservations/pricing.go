package reservations

import (
	"context"
	"time"

	"staybook/internal/app/uow"
	"staybook/internal/domain/shared/daterange"
)

// Quote computes the total price in cents for a stay: nights times the
// property's nightly rate. Nights are the whole-day difference between the
// dates; the checkout day is not charged.
func (s *Service) Quote(ctx context.Context, propertyID string, checkIn, checkOut time.Time) (int64, error) {
	var total int64
	err := s.withUnit(ctx, uow.TxOptions{ReadOnly: true}, func(ctx context.Context, unit uow.UnitOfWork) error {
		var err error
		total, err = quote(ctx, unit, propertyID, daterange.DateRange{
			CheckIn:  daterange.DayOf(checkIn),
			CheckOut: daterange.DayOf(checkOut),
		})
		return err
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func quote(ctx context.Context, unit uow.UnitOfWork, propertyID string, dr daterange.DateRange) (int64, error) {
	prop, err := unit.Properties().FindByID(ctx, propertyID)
	if err != nil {
		return 0, err
	}
	nights := dr.Nights()
	if nights <= 0 {
		return 0, daterange.ErrInvalidRange
	}
	return int64(nights) * prop.NightlyRateCents, nil
}
