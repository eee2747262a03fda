package daterange

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("daterange: checkout must be after checkin")
)

// DateRange represents a stay as a pair of calendar dates. Both endpoints
// are normalized to UTC midnight.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func New(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: DayOf(checkIn), CheckOut: DayOf(checkOut)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.CheckIn.IsZero() || dr.CheckOut.IsZero() {
		return ErrInvalidRange
	}
	if !dr.CheckOut.After(dr.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

// Nights is the calendar-day difference; the checkout day is not counted.
func (dr DateRange) Nights() int {
	return int(dr.CheckOut.Sub(dr.CheckIn).Hours() / 24)
}

func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(dr.CheckOut)
}

// Conflicts is the boundary-inclusive test used for availability: two stays
// sharing only a turnover date (one checks out the day the other checks in)
// still conflict.
func (dr DateRange) Conflicts(other DateRange) bool {
	return !dr.CheckIn.After(other.CheckOut) && !dr.CheckOut.Before(other.CheckIn)
}

func (dr DateRange) ContainsDate(t time.Time) bool {
	d := DayOf(t)
	return !d.Before(dr.CheckIn) && !d.After(dr.CheckOut)
}

// Days enumerates every calendar date from check-in through checkout,
// both endpoints included.
func (dr DateRange) Days() []time.Time {
	var days []time.Time
	for d := dr.CheckIn; !d.After(dr.CheckOut); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (dr DateRange) Equal(other DateRange) bool {
	return dr.CheckIn.Equal(other.CheckIn) && dr.CheckOut.Equal(other.CheckOut)
}

// DayOf truncates a timestamp to its UTC calendar date.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
