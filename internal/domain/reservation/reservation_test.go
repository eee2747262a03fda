package reservation

import (
	"errors"
	"testing"
	"time"

	"staybook/internal/domain/shared/daterange"
)

func stay(t *testing.T, checkIn, checkOut string) daterange.DateRange {
	t.Helper()
	in, err := time.Parse(time.DateOnly, checkIn)
	if err != nil {
		t.Fatal(err)
	}
	out, err := time.Parse(time.DateOnly, checkOut)
	if err != nil {
		t.Fatal(err)
	}
	dr, err := daterange.New(in, out)
	if err != nil {
		t.Fatal(err)
	}
	return dr
}

func sample(t *testing.T, status Status) *Reservation {
	t.Helper()
	res, err := New(CreateParams{
		PropertyID: "prop-1",
		ClientID:   "client-1",
		Range:      stay(t, "2025-03-05", "2025-03-10"),
		Guests:     2,
		PriceCents: 47500,
		Status:     status,
		Code:       "RES-TESTCODE",
		CreatedAt:  time.Date(2025, time.February, 1, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestNewValidation(t *testing.T) {
	valid := CreateParams{
		PropertyID: "prop-1",
		ClientID:   "client-1",
		Range:      stay(t, "2025-03-05", "2025-03-10"),
		Guests:     2,
		CreatedAt:  time.Now(),
	}

	cases := []struct {
		name   string
		mutate func(*CreateParams)
		want   error
	}{
		{"missing property", func(p *CreateParams) { p.PropertyID = "" }, ErrPropertyRequired},
		{"missing client", func(p *CreateParams) { p.ClientID = "" }, ErrClientRequired},
		{"zero guests", func(p *CreateParams) { p.Guests = 0 }, ErrInvalidGuests},
		{"negative guests", func(p *CreateParams) { p.Guests = -3 }, ErrInvalidGuests},
		{"empty range", func(p *CreateParams) { p.Range = daterange.DateRange{} }, daterange.ErrInvalidRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := valid
			tc.mutate(&params)
			if _, err := New(params); !errors.Is(err, tc.want) {
				t.Errorf("New() error = %v, want %v", err, tc.want)
			}
		})
	}

	if _, err := New(valid); err != nil {
		t.Errorf("New() with valid params: %v", err)
	}
}

func TestConfirmTransitions(t *testing.T) {
	cases := []struct {
		from Status
		want error
	}{
		{StatusPending, nil},
		{StatusConfirmed, ErrAlreadyConfirmed},
		{StatusCancelled, ErrInvalidTransition},
		{StatusFinalized, ErrInvalidTransition},
	}
	for _, tc := range cases {
		t.Run(string(tc.from), func(t *testing.T) {
			res := sample(t, tc.from)
			err := res.Confirm(time.Now())
			if !errors.Is(err, tc.want) {
				t.Fatalf("Confirm() from %s = %v, want %v", tc.from, err, tc.want)
			}
			if err == nil && res.Status != StatusConfirmed {
				t.Errorf("status after Confirm = %s, want confirmed", res.Status)
			}
			if err != nil && res.Status != tc.from {
				t.Errorf("failed Confirm changed status to %s", res.Status)
			}
		})
	}
}

func TestCancelTransitions(t *testing.T) {
	cases := []struct {
		from Status
		want error
	}{
		{StatusPending, nil},
		{StatusConfirmed, nil},
		{StatusCancelled, ErrAlreadyCancelled},
		{StatusFinalized, ErrInvalidTransition},
	}
	for _, tc := range cases {
		t.Run(string(tc.from), func(t *testing.T) {
			res := sample(t, tc.from)
			err := res.Cancel(time.Now())
			if !errors.Is(err, tc.want) {
				t.Fatalf("Cancel() from %s = %v, want %v", tc.from, err, tc.want)
			}
			if err == nil && res.Status != StatusCancelled {
				t.Errorf("status after Cancel = %s, want cancelled", res.Status)
			}
		})
	}
}

func TestCheckInRequiresConfirmedAndArrivalDate(t *testing.T) {
	onTime := time.Date(2025, time.March, 5, 14, 0, 0, 0, time.UTC)

	res := sample(t, StatusPending)
	if err := res.CheckIn(onTime); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("CheckIn from pending = %v, want ErrInvalidTransition", err)
	}

	res = sample(t, StatusConfirmed)
	early := time.Date(2025, time.March, 4, 23, 0, 0, 0, time.UTC)
	if err := res.CheckIn(early); !errors.Is(err, ErrTooEarly) {
		t.Errorf("CheckIn before arrival date = %v, want ErrTooEarly", err)
	}
	if res.CheckInAt != nil {
		t.Error("failed CheckIn must not stamp the arrival time")
	}

	if err := res.CheckIn(onTime); err != nil {
		t.Fatalf("CheckIn on arrival day: %v", err)
	}
	if res.CheckInAt == nil || !res.CheckInAt.Equal(onTime) {
		t.Errorf("CheckInAt = %v, want %v", res.CheckInAt, onTime)
	}
	if res.Status != StatusConfirmed {
		t.Errorf("status after CheckIn = %s, want confirmed", res.Status)
	}

	late := time.Date(2025, time.March, 7, 10, 0, 0, 0, time.UTC)
	restay := sample(t, StatusConfirmed)
	if err := restay.CheckIn(late); err != nil {
		t.Errorf("CheckIn after arrival date should still pass: %v", err)
	}
}

func TestCheckOutRequiresPriorCheckIn(t *testing.T) {
	res := sample(t, StatusConfirmed)
	now := time.Date(2025, time.March, 10, 11, 0, 0, 0, time.UTC)

	if err := res.CheckOut(now); !errors.Is(err, ErrNoCheckIn) {
		t.Fatalf("CheckOut without CheckIn = %v, want ErrNoCheckIn", err)
	}

	if err := res.CheckIn(time.Date(2025, time.March, 5, 14, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	if err := res.CheckOut(now); err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if res.Status != StatusFinalized {
		t.Errorf("status after CheckOut = %s, want finalized", res.Status)
	}
	if res.CheckOutAt == nil || !res.CheckOutAt.Equal(now) {
		t.Errorf("CheckOutAt = %v, want %v", res.CheckOutAt, now)
	}

	if err := res.CheckOut(now.Add(time.Hour)); !errors.Is(err, ErrAlreadyFinalized) {
		t.Errorf("second CheckOut = %v, want ErrAlreadyFinalized", err)
	}
}

func TestApplyUpdateGuards(t *testing.T) {
	now := time.Now()
	update := Update{Range: stay(t, "2025-03-06", "2025-03-09"), Guests: 3, Notes: "late arrival"}

	for _, status := range []Status{StatusCancelled, StatusFinalized} {
		res := sample(t, status)
		if err := res.ApplyUpdate(update, now); !errors.Is(err, ErrImmutableState) {
			t.Errorf("ApplyUpdate on %s = %v, want ErrImmutableState", status, err)
		}
	}

	res := sample(t, StatusConfirmed)
	if err := res.ApplyUpdate(Update{Range: update.Range, Guests: 0}, now); !errors.Is(err, ErrInvalidGuests) {
		t.Errorf("ApplyUpdate with zero guests = %v, want ErrInvalidGuests", err)
	}

	if err := res.ApplyUpdate(update, now); err != nil {
		t.Fatalf("ApplyUpdate: %v", err)
	}
	if !res.Range.Equal(update.Range) || res.Guests != 3 || res.Notes != "late arrival" {
		t.Errorf("ApplyUpdate did not apply fields: %+v", res)
	}
	if res.Status != StatusConfirmed || res.Code != "RES-TESTCODE" {
		t.Error("ApplyUpdate must not touch status or code")
	}
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want Status
		err  error
	}{
		{"pending", StatusPending, nil},
		{" Confirmed ", StatusConfirmed, nil},
		{"CANCELLED", StatusCancelled, nil},
		{"finalized", StatusFinalized, nil},
		{"checked-in", "", ErrInvalidStatus},
		{"", "", ErrInvalidStatus},
	}
	for _, tc := range cases {
		got, err := ParseStatus(tc.raw)
		if !errors.Is(err, tc.err) || got != tc.want {
			t.Errorf("ParseStatus(%q) = (%q, %v), want (%q, %v)", tc.raw, got, err, tc.want, tc.err)
		}
	}
}

func TestStatusActive(t *testing.T) {
	active := map[Status]bool{
		StatusPending:   true,
		StatusConfirmed: true,
		StatusCancelled: false,
		StatusFinalized: false,
	}
	for status, want := range active {
		if got := status.Active(); got != want {
			t.Errorf("%s.Active() = %v, want %v", status, got, want)
		}
	}
}
