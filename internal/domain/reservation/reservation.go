package reservation

import (
	"errors"
	"strings"
	"time"

	"staybook/internal/domain/shared/daterange"
)

var (
	ErrNotFound          = errors.New("reservation: not found")
	ErrUnavailable       = errors.New("reservation: property not available for the requested dates")
	ErrInvalidGuests     = errors.New("reservation: guests count must be at least 1")
	ErrInvalidStatus     = errors.New("reservation: unknown status")
	ErrInvalidTransition = errors.New("reservation: invalid state transition")
	ErrAlreadyConfirmed  = errors.New("reservation: already confirmed")
	ErrAlreadyCancelled  = errors.New("reservation: already cancelled")
	ErrAlreadyFinalized  = errors.New("reservation: already finalized")
	ErrImmutableState    = errors.New("reservation: cancelled or finalized reservations cannot be updated")
	ErrTooEarly          = errors.New("reservation: check-in date not reached yet")
	ErrNoCheckIn         = errors.New("reservation: check-out requires a prior check-in")
	ErrInvalidMonth      = errors.New("reservation: month must be between 1 and 12")
	ErrClientRequired    = errors.New("reservation: client id required")
	ErrPropertyRequired  = errors.New("reservation: property id required")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusFinalized Status = "finalized"
)

// ParseStatus maps a wire value onto the status enum.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusPending:
		return StatusPending, nil
	case StatusConfirmed:
		return StatusConfirmed, nil
	case StatusCancelled:
		return StatusCancelled, nil
	case StatusFinalized:
		return StatusFinalized, nil
	default:
		return "", ErrInvalidStatus
	}
}

// ActiveStatuses are the statuses that occupy a property's calendar.
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed}
}

func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Reservation is the aggregate the lifecycle operations work on.
// CheckInAt/CheckOutAt stay nil until the corresponding event happens.
type Reservation struct {
	ID         string
	PropertyID string
	ClientID   string
	Range      daterange.DateRange
	Guests     int
	PriceCents int64
	Status     Status
	Notes      string
	Code       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	CheckInAt  *time.Time
	CheckOutAt *time.Time
	Version    int64
}

type CreateParams struct {
	PropertyID string
	ClientID   string
	Range      daterange.DateRange
	Guests     int
	PriceCents int64
	Status     Status
	Notes      string
	Code       string
	CreatedAt  time.Time
}

func New(params CreateParams) (*Reservation, error) {
	if params.PropertyID == "" {
		return nil, ErrPropertyRequired
	}
	if params.ClientID == "" {
		return nil, ErrClientRequired
	}
	if params.Guests < 1 {
		return nil, ErrInvalidGuests
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	now := params.CreatedAt.UTC()
	return &Reservation{
		PropertyID: params.PropertyID,
		ClientID:   params.ClientID,
		Range:      params.Range,
		Guests:     params.Guests,
		PriceCents: params.PriceCents,
		Status:     params.Status,
		Notes:      params.Notes,
		Code:       params.Code,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

type action string

const (
	actionConfirm action = "confirm"
	actionCancel  action = "cancel"
	actionUpdate  action = "update"
	actionCheckIn action = "check-in"
)

// transitions is the guard table for status-driven lifecycle actions.
// A nil entry allows the action from that status; a non-nil entry is the
// error the action fails with. Check-out is guarded separately because it
// also depends on the check-in timestamp.
var transitions = map[action]map[Status]error{
	actionConfirm: {
		StatusPending:   nil,
		StatusConfirmed: ErrAlreadyConfirmed,
		StatusCancelled: ErrInvalidTransition,
		StatusFinalized: ErrInvalidTransition,
	},
	actionCancel: {
		StatusPending:   nil,
		StatusConfirmed: nil,
		StatusCancelled: ErrAlreadyCancelled,
		StatusFinalized: ErrInvalidTransition,
	},
	actionUpdate: {
		StatusPending:   nil,
		StatusConfirmed: nil,
		StatusCancelled: ErrImmutableState,
		StatusFinalized: ErrImmutableState,
	},
	actionCheckIn: {
		StatusPending:   ErrInvalidTransition,
		StatusConfirmed: nil,
		StatusCancelled: ErrInvalidTransition,
		StatusFinalized: ErrInvalidTransition,
	},
}

func (r *Reservation) guard(a action) error {
	outcomes, ok := transitions[a]
	if !ok {
		return ErrInvalidTransition
	}
	outcome, ok := outcomes[r.Status]
	if !ok {
		return ErrInvalidTransition
	}
	return outcome
}

func (r *Reservation) Confirm(now time.Time) error {
	if err := r.guard(actionConfirm); err != nil {
		return err
	}
	r.Status = StatusConfirmed
	r.UpdatedAt = now.UTC()
	return nil
}

func (r *Reservation) Cancel(now time.Time) error {
	if err := r.guard(actionCancel); err != nil {
		return err
	}
	r.Status = StatusCancelled
	r.UpdatedAt = now.UTC()
	return nil
}

// CheckIn stamps the arrival time. The status stays confirmed; there is no
// dedicated in-progress state.
func (r *Reservation) CheckIn(now time.Time) error {
	if err := r.guard(actionCheckIn); err != nil {
		return err
	}
	if daterange.DayOf(now).Before(r.Range.CheckIn) {
		return ErrTooEarly
	}
	ts := now.UTC()
	r.CheckInAt = &ts
	r.UpdatedAt = ts
	return nil
}

func (r *Reservation) CheckOut(now time.Time) error {
	if r.CheckInAt == nil {
		return ErrNoCheckIn
	}
	if r.Status == StatusFinalized {
		return ErrAlreadyFinalized
	}
	ts := now.UTC()
	r.CheckOutAt = &ts
	r.Status = StatusFinalized
	r.UpdatedAt = ts
	return nil
}

// Update carries the mutable fields of a reservation. Property, client,
// status and code are never touched by an update.
type Update struct {
	Range  daterange.DateRange
	Guests int
	Notes  string
}

// CanUpdate reports whether the lifecycle state still admits field changes.
func (r *Reservation) CanUpdate() error {
	return r.guard(actionUpdate)
}

func (r *Reservation) ApplyUpdate(u Update, now time.Time) error {
	if err := r.guard(actionUpdate); err != nil {
		return err
	}
	if u.Guests < 1 {
		return ErrInvalidGuests
	}
	if err := u.Range.Validate(); err != nil {
		return err
	}
	r.Range = u.Range
	r.Guests = u.Guests
	r.Notes = u.Notes
	r.UpdatedAt = now.UTC()
	return nil
}
