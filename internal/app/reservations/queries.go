package reservations

import (
	"context"
	"time"

	"staybook/internal/app/uow"
	"staybook/internal/domain/reservation"
	"staybook/internal/domain/shared/daterange"
)

func (s *Service) Get(ctx context.Context, id string) (*reservation.Reservation, error) {
	var res *reservation.Reservation
	err := s.readUnit(ctx, func(ctx context.Context, unit uow.UnitOfWork) error {
		var err error
		res, err = unit.Reservations().FindByID(ctx, id)
		return err
	})
	return res, err
}

func (s *Service) List(ctx context.Context) ([]*reservation.Reservation, error) {
	var items []*reservation.Reservation
	err := s.readUnit(ctx, func(ctx context.Context, unit uow.UnitOfWork) error {
		var err error
		items, err = unit.Reservations().FindAll(ctx)
		return err
	})
	return items, err
}

func (s *Service) ByClient(ctx context.Context, clientID string) ([]*reservation.Reservation, error) {
	var items []*reservation.Reservation
	err := s.readUnit(ctx, func(ctx context.Context, unit uow.UnitOfWork) error {
		var err error
		items, err = unit.Reservations().FindByClient(ctx, clientID)
		return err
	})
	return items, err
}

func (s *Service) ByProperty(ctx context.Context, propertyID string) ([]*reservation.Reservation, error) {
	var items []*reservation.Reservation
	err := s.readUnit(ctx, func(ctx context.Context, unit uow.UnitOfWork) error {
		var err error
		items, err = unit.Reservations().FindByProperty(ctx, propertyID)
		return err
	})
	return items, err
}

func (s *Service) ByStatus(ctx context.Context, raw string) ([]*reservation.Reservation, error) {
	status, err := reservation.ParseStatus(raw)
	if err != nil {
		return nil, err
	}
	var items []*reservation.Reservation
	err = s.readUnit(ctx, func(ctx context.Context, unit uow.UnitOfWork) error {
		var err error
		items, err = unit.Reservations().FindByStatus(ctx, status)
		return err
	})
	return items, err
}

func (s *Service) ByCode(ctx context.Context, code string) (*reservation.Reservation, error) {
	var res *reservation.Reservation
	err := s.readUnit(ctx, func(ctx context.Context, unit uow.UnitOfWork) error {
		var err error
		res, err = unit.Reservations().FindByCode(ctx, code)
		if err != nil {
			return err
		}
		if res == nil {
			return reservation.ErrNotFound
		}
		return nil
	})
	return res, err
}

// CreatedBetween lists reservations whose creation timestamp falls within
// the given dates, expanded to [start 00:00:00, end 23:59:59].
func (s *Service) CreatedBetween(ctx context.Context, start, end time.Time) ([]*reservation.Reservation, error) {
	from := daterange.DayOf(start)
	to := daterange.DayOf(end).Add(24*time.Hour - time.Second)
	var items []*reservation.Reservation
	err := s.readUnit(ctx, func(ctx context.Context, unit uow.UnitOfWork) error {
		var err error
		items, err = unit.Reservations().FindByCreatedBetween(ctx, from, to)
		return err
	})
	return items, err
}

func (s *Service) readUnit(ctx context.Context, fn func(ctx context.Context, unit uow.UnitOfWork) error) error {
	return s.withUnit(ctx, uow.TxOptions{ReadOnly: true}, fn)
}
