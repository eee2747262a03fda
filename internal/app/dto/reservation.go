package dto

import (
	"time"

	"staybook/internal/domain/reservation"
)

// Dates travel over the wire as plain calendar dates (2006-01-02);
// timestamps stay RFC3339.

type Reservation struct {
	ID         string     `json:"id"`
	PropertyID string     `json:"property_id"`
	ClientID   string     `json:"client_id"`
	CheckIn    string     `json:"check_in"`
	CheckOut   string     `json:"check_out"`
	Guests     int        `json:"guests"`
	PriceCents int64      `json:"price_cents"`
	Status     string     `json:"status"`
	Notes      string     `json:"notes,omitempty"`
	Code       string     `json:"code"`
	CreatedAt  time.Time  `json:"created_at"`
	CheckInAt  *time.Time `json:"check_in_at,omitempty"`
	CheckOutAt *time.Time `json:"check_out_at,omitempty"`
}

type ReservationCollection struct {
	Items []Reservation `json:"items"`
}

type Availability struct {
	PropertyID string `json:"property_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Available  bool   `json:"available"`
}

type Quote struct {
	PropertyID string `json:"property_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	TotalCents int64  `json:"total_cents"`
}

type OccupiedDays struct {
	PropertyID string   `json:"property_id"`
	Month      int      `json:"month"`
	Year       int      `json:"year"`
	Days       []string `json:"days"`
}

func MapReservation(res *reservation.Reservation) Reservation {
	return Reservation{
		ID:         res.ID,
		PropertyID: res.PropertyID,
		ClientID:   res.ClientID,
		CheckIn:    res.Range.CheckIn.Format(time.DateOnly),
		CheckOut:   res.Range.CheckOut.Format(time.DateOnly),
		Guests:     res.Guests,
		PriceCents: res.PriceCents,
		Status:     string(res.Status),
		Notes:      res.Notes,
		Code:       res.Code,
		CreatedAt:  res.CreatedAt,
		CheckInAt:  res.CheckInAt,
		CheckOutAt: res.CheckOutAt,
	}
}

func MapReservations(items []*reservation.Reservation) ReservationCollection {
	out := make([]Reservation, 0, len(items))
	for _, res := range items {
		out = append(out, MapReservation(res))
	}
	return ReservationCollection{Items: out}
}

func MapOccupiedDays(propertyID string, month, year int, days []time.Time) OccupiedDays {
	out := make([]string, 0, len(days))
	for _, day := range days {
		out = append(out, day.Format(time.DateOnly))
	}
	return OccupiedDays{PropertyID: propertyID, Month: month, Year: year, Days: out}
}
