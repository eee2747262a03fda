package reservations

import (
	"context"
	"sort"
	"time"

	"staybook/internal/app/uow"
	"staybook/internal/domain/reservation"
)

// OccupiedDays expands a property's active reservations into the distinct
// calendar dates they occupy within a month, sorted ascending. A stay
// spanning several months contributes only its in-month days; the checkout
// day counts as occupied.
func (s *Service) OccupiedDays(ctx context.Context, propertyID string, month, year int) ([]time.Time, error) {
	if month < 1 || month > 12 {
		return nil, reservation.ErrInvalidMonth
	}
	var days []time.Time
	err := s.withUnit(ctx, uow.TxOptions{ReadOnly: true}, func(ctx context.Context, unit uow.UnitOfWork) error {
		items, err := unit.Reservations().FindByPropertyAndMonth(ctx, propertyID, month, year)
		if err != nil {
			return err
		}
		seen := make(map[time.Time]struct{})
		for _, res := range items {
			for _, day := range res.Range.Days() {
				if int(day.Month()) != month || day.Year() != year {
					continue
				}
				if _, ok := seen[day]; ok {
					continue
				}
				seen[day] = struct{}{}
				days = append(days, day)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days, nil
}
