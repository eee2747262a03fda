package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"staybook/internal/domain/reservation"
	"staybook/internal/domain/shared/daterange"
)

// ReservationRepository is an in-memory reservation store used for tests
// and as the dev fallback when no database is configured. Records are
// copied on the way in and out, so callers never share memory with the
// stored state.
type ReservationRepository struct {
	mu    sync.RWMutex
	items map[string]*reservation.Reservation
}

// NewReservationRepository builds an empty repository.
func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{items: make(map[string]*reservation.Reservation)}
}

// FindByID returns a reservation or reservation.ErrNotFound.
func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.items[id]
	if !ok {
		return nil, reservation.ErrNotFound
	}
	return clone(res), nil
}

// FindAll returns every stored reservation, newest first.
func (r *ReservationRepository) FindAll(ctx context.Context) ([]*reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(*reservation.Reservation) bool { return true }), nil
}

// Save stores the record, assigning an id on insert and bumping the
// version counter.
func (r *ReservationRepository) Save(ctx context.Context, res *reservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	res.Version++
	r.items[res.ID] = clone(res)
	return nil
}

// DeleteByID removes a reservation; unknown ids return ErrNotFound.
func (r *ReservationRepository) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return reservation.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *ReservationRepository) FindByClient(ctx context.Context, clientID string) ([]*reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(res *reservation.Reservation) bool {
		return res.ClientID == clientID
	}), nil
}

func (r *ReservationRepository) FindByProperty(ctx context.Context, propertyID string) ([]*reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(res *reservation.Reservation) bool {
		return res.PropertyID == propertyID
	}), nil
}

func (r *ReservationRepository) FindByStatus(ctx context.Context, status reservation.Status) ([]*reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(res *reservation.Reservation) bool {
		return res.Status == status
	}), nil
}

func (r *ReservationRepository) FindByCreatedBetween(ctx context.Context, start, end time.Time) ([]*reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(res *reservation.Reservation) bool {
		return !res.CreatedAt.Before(start) && !res.CreatedAt.After(end)
	}), nil
}

// FindByCode returns (nil, nil) when no reservation carries the code.
func (r *ReservationRepository) FindByCode(ctx context.Context, code string) (*reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, res := range r.items {
		if res.Code == code {
			return clone(res), nil
		}
	}
	return nil, nil
}

// FindOverlapping returns active reservations on the property whose ranges
// conflict with the given one, boundary dates included.
func (r *ReservationRepository) FindOverlapping(ctx context.Context, propertyID string, rng daterange.DateRange) ([]*reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(res *reservation.Reservation) bool {
		return res.PropertyID == propertyID && res.Status.Active() && res.Range.Conflicts(rng)
	}), nil
}

// FindByPropertyAndMonth returns active reservations whose check-in or
// check-out date falls within the month.
func (r *ReservationRepository) FindByPropertyAndMonth(ctx context.Context, propertyID string, month, year int) ([]*reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inMonth := func(t time.Time) bool {
		return int(t.Month()) == month && t.Year() == year
	}
	return r.collect(func(res *reservation.Reservation) bool {
		return res.PropertyID == propertyID && res.Status.Active() &&
			(inMonth(res.Range.CheckIn) || inMonth(res.Range.CheckOut))
	}), nil
}

func (r *ReservationRepository) collect(match func(*reservation.Reservation) bool) []*reservation.Reservation {
	matches := make([]*reservation.Reservation, 0)
	for _, res := range r.items {
		if match(res) {
			matches = append(matches, clone(res))
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return matches
}

func clone(res *reservation.Reservation) *reservation.Reservation {
	cp := *res
	if res.CheckInAt != nil {
		ts := *res.CheckInAt
		cp.CheckInAt = &ts
	}
	if res.CheckOutAt != nil {
		ts := *res.CheckOutAt
		cp.CheckOutAt = &ts
	}
	return &cp
}

var _ reservation.Repository = (*ReservationRepository)(nil)
