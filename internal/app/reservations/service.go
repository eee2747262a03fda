package reservations

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"staybook/internal/app/policies"
	"staybook/internal/app/uow"
	"staybook/internal/domain/reservation"
	"staybook/internal/domain/shared/daterange"
)

var ErrUnitOfWorkRequired = errors.New("reservations: unit of work required")

// sessionInjector is implemented by units whose store needs its session
// carried in context (the Mongo factory) for repositories to join the
// transaction.
type sessionInjector interface {
	InjectContext(ctx context.Context) context.Context
}

// Service owns the reservation lifecycle: it runs every state transition
// through the domain guards, consults availability and pricing inside the
// same unit of work as the write, and fires notifications after commit.
type Service struct {
	UoW      uow.UoWFactory
	Notifier policies.Notifier
	Logger   *slog.Logger
}

// withUnit runs fn inside a unit of work. An ambient unit from the context
// is reused as-is (the outer owner commits); otherwise a new unit is begun
// and committed on success, or rolled back. Read-only units always roll back.
func (s *Service) withUnit(ctx context.Context, opts uow.TxOptions, fn func(ctx context.Context, unit uow.UnitOfWork) error) error {
	if unit, ok := uow.FromContext(ctx); ok {
		return fn(ctx, unit)
	}
	if s.UoW == nil {
		return ErrUnitOfWorkRequired
	}
	unit, err := s.UoW.Begin(ctx, opts)
	if err != nil {
		return err
	}
	if injector, ok := unit.(sessionInjector); ok {
		ctx = injector.InjectContext(ctx)
	}
	ctx = uow.ContextWithUnitOfWork(ctx, unit)
	if err := fn(ctx, unit); err != nil {
		_ = unit.Rollback(ctx)
		return err
	}
	if opts.ReadOnly {
		return unit.Rollback(ctx)
	}
	return unit.Commit(ctx)
}

// BookParams carries the booking request. Optional fields follow the
// compute-if-absent rules: a nil PriceCents derives the price from the
// property's nightly rate, an empty Code gets a generated one, an empty
// Status starts the reservation pending and a zero CreatedAt means now.
type BookParams struct {
	PropertyID string
	ClientID   string
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
	Notes      string
	PriceCents *int64
	Status     reservation.Status
	Code       string
	CreatedAt  time.Time
}

func (s *Service) Book(ctx context.Context, p BookParams) (*reservation.Reservation, error) {
	dr, err := daterange.New(p.CheckIn, p.CheckOut)
	if err != nil {
		return nil, err
	}
	status := reservation.StatusPending
	if p.Status != "" {
		status, err = reservation.ParseStatus(string(p.Status))
		if err != nil {
			return nil, err
		}
	}

	var res *reservation.Reservation
	err = s.withUnit(ctx, uow.TxOptions{}, func(ctx context.Context, unit uow.UnitOfWork) error {
		free, err := availableFor(ctx, unit.Reservations(), p.PropertyID, dr, "")
		if err != nil {
			return err
		}
		if !free {
			return reservation.ErrUnavailable
		}

		code := p.Code
		if code == "" {
			code, err = generateCode(ctx, unit.Reservations())
			if err != nil {
				return err
			}
		}

		price := int64(0)
		if p.PriceCents != nil {
			price = *p.PriceCents
		} else {
			price, err = quote(ctx, unit, p.PropertyID, dr)
			if err != nil {
				return err
			}
		}

		createdAt := p.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}

		res, err = reservation.New(reservation.CreateParams{
			PropertyID: p.PropertyID,
			ClientID:   p.ClientID,
			Range:      dr,
			Guests:     p.Guests,
			PriceCents: price,
			Status:     status,
			Notes:      p.Notes,
			Code:       code,
			CreatedAt:  createdAt,
		})
		if err != nil {
			return err
		}
		return unit.Reservations().Save(ctx, res)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) Confirm(ctx context.Context, id string) (*reservation.Reservation, error) {
	res, err := s.transition(ctx, id, func(r *reservation.Reservation, now time.Time) error {
		return r.Confirm(now)
	})
	if err != nil {
		return nil, err
	}
	s.notifyConfirmation(ctx, res.ID)
	return res, nil
}

func (s *Service) Cancel(ctx context.Context, id string) (*reservation.Reservation, error) {
	return s.transition(ctx, id, func(r *reservation.Reservation, now time.Time) error {
		return r.Cancel(now)
	})
}

func (s *Service) CheckIn(ctx context.Context, id string) (*reservation.Reservation, error) {
	return s.transition(ctx, id, func(r *reservation.Reservation, now time.Time) error {
		return r.CheckIn(now)
	})
}

func (s *Service) CheckOut(ctx context.Context, id string) (*reservation.Reservation, error) {
	return s.transition(ctx, id, func(r *reservation.Reservation, now time.Time) error {
		return r.CheckOut(now)
	})
}

func (s *Service) transition(ctx context.Context, id string, apply func(*reservation.Reservation, time.Time) error) (*reservation.Reservation, error) {
	var res *reservation.Reservation
	err := s.withUnit(ctx, uow.TxOptions{}, func(ctx context.Context, unit uow.UnitOfWork) error {
		var err error
		res, err = unit.Reservations().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := apply(res, time.Now()); err != nil {
			return err
		}
		return unit.Reservations().Save(ctx, res)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// UpdateParams replaces the mutable fields of a reservation. Property,
// client, status and booking code are never touched.
type UpdateParams struct {
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
	Notes    string
}

func (s *Service) Update(ctx context.Context, id string, p UpdateParams) (*reservation.Reservation, error) {
	dr, err := daterange.New(p.CheckIn, p.CheckOut)
	if err != nil {
		return nil, err
	}
	var res *reservation.Reservation
	err = s.withUnit(ctx, uow.TxOptions{}, func(ctx context.Context, unit uow.UnitOfWork) error {
		var err error
		res, err = unit.Reservations().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := res.CanUpdate(); err != nil {
			return err
		}

		datesChanged := !dr.Equal(res.Range)
		if datesChanged {
			free, err := availableFor(ctx, unit.Reservations(), res.PropertyID, dr, res.ID)
			if err != nil {
				return err
			}
			if !free {
				return reservation.ErrUnavailable
			}
		}

		if err := res.ApplyUpdate(reservation.Update{Range: dr, Guests: p.Guests, Notes: p.Notes}, time.Now()); err != nil {
			return err
		}
		if datesChanged {
			price, err := quote(ctx, unit, res.PropertyID, dr)
			if err != nil {
				return err
			}
			res.PriceCents = price
		}
		return unit.Reservations().Save(ctx, res)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Save is the plain insert-or-update used by the administrative CRUD
// surface. It validates the record but bypasses lifecycle guards.
func (s *Service) Save(ctx context.Context, res *reservation.Reservation) (*reservation.Reservation, error) {
	if res.Guests < 1 {
		return nil, reservation.ErrInvalidGuests
	}
	if err := res.Range.Validate(); err != nil {
		return nil, err
	}
	err := s.withUnit(ctx, uow.TxOptions{}, func(ctx context.Context, unit uow.UnitOfWork) error {
		return unit.Reservations().Save(ctx, res)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Delete removes a reservation without consulting the state machine.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.withUnit(ctx, uow.TxOptions{}, func(ctx context.Context, unit uow.UnitOfWork) error {
		return unit.Reservations().DeleteByID(ctx, id)
	})
}

// SendConfirmation loads the reservation and fires a confirmation notice.
// Notifier failures are logged, never returned.
func (s *Service) SendConfirmation(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	s.notifyConfirmation(ctx, id)
	return nil
}

// SendReminder fires an upcoming-stay reminder with the number of days
// until check-in.
func (s *Service) SendReminder(ctx context.Context, id string) error {
	res, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	days := int(res.Range.CheckIn.Sub(daterange.DayOf(time.Now())).Hours() / 24)
	if s.Notifier == nil {
		return nil
	}
	if err := s.Notifier.SendReminder(ctx, id, days); err != nil {
		s.log().Warn("reservation reminder not delivered", "reservation_id", id, "error", err)
	}
	return nil
}

func (s *Service) notifyConfirmation(ctx context.Context, id string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendConfirmation(ctx, id); err != nil {
		s.log().Warn("reservation confirmation not delivered", "reservation_id", id, "error", err)
	}
}

func (s *Service) log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
