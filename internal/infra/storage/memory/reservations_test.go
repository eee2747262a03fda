package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"staybook/internal/domain/reservation"
	"staybook/internal/domain/shared/daterange"
)

func seed(t *testing.T, repo *ReservationRepository, propertyID string, status reservation.Status, checkIn, checkOut string) *reservation.Reservation {
	t.Helper()
	in, _ := time.Parse(time.DateOnly, checkIn)
	out, _ := time.Parse(time.DateOnly, checkOut)
	dr, err := daterange.New(in, out)
	if err != nil {
		t.Fatal(err)
	}
	res := &reservation.Reservation{
		PropertyID: propertyID,
		ClientID:   "client-1",
		Range:      dr,
		Guests:     2,
		Status:     status,
		CreatedAt:  time.Now().UTC(),
	}
	if err := repo.Save(context.Background(), res); err != nil {
		t.Fatal(err)
	}
	return res
}

func TestSaveAssignsIDAndBumpsVersion(t *testing.T) {
	repo := NewReservationRepository()
	res := seed(t, repo, "prop-1", reservation.StatusPending, "2025-03-01", "2025-03-04")

	if res.ID == "" {
		t.Fatal("Save did not assign an id")
	}
	if res.Version != 1 {
		t.Errorf("version after insert = %d, want 1", res.Version)
	}

	if err := repo.Save(context.Background(), res); err != nil {
		t.Fatal(err)
	}
	if res.Version != 2 {
		t.Errorf("version after update = %d, want 2", res.Version)
	}
}

func TestReadsAreIsolatedFromCallerMutation(t *testing.T) {
	repo := NewReservationRepository()
	res := seed(t, repo, "prop-1", reservation.StatusPending, "2025-03-01", "2025-03-04")

	loaded, err := repo.FindByID(context.Background(), res.ID)
	if err != nil {
		t.Fatal(err)
	}
	loaded.Guests = 99
	loaded.Status = reservation.StatusCancelled

	again, err := repo.FindByID(context.Background(), res.ID)
	if err != nil {
		t.Fatal(err)
	}
	if again.Guests != 2 || again.Status != reservation.StatusPending {
		t.Errorf("stored record mutated through a read copy: %+v", again)
	}
}

func TestFindByIDUnknown(t *testing.T) {
	repo := NewReservationRepository()
	if _, err := repo.FindByID(context.Background(), "missing"); !errors.Is(err, reservation.ErrNotFound) {
		t.Errorf("FindByID = %v, want ErrNotFound", err)
	}
	if err := repo.DeleteByID(context.Background(), "missing"); !errors.Is(err, reservation.ErrNotFound) {
		t.Errorf("DeleteByID = %v, want ErrNotFound", err)
	}
}

func TestFindByCodeAbsentIsNilNil(t *testing.T) {
	repo := NewReservationRepository()
	res, err := repo.FindByCode(context.Background(), "RES-UNKNOWN1")
	if err != nil {
		t.Fatalf("FindByCode: %v", err)
	}
	if res != nil {
		t.Errorf("FindByCode = %+v, want nil", res)
	}
}

func TestFindOverlappingSkipsInactive(t *testing.T) {
	repo := NewReservationRepository()
	active := seed(t, repo, "prop-1", reservation.StatusConfirmed, "2025-03-05", "2025-03-10")
	seed(t, repo, "prop-1", reservation.StatusCancelled, "2025-03-05", "2025-03-10")
	seed(t, repo, "prop-1", reservation.StatusFinalized, "2025-03-05", "2025-03-10")
	seed(t, repo, "prop-2", reservation.StatusConfirmed, "2025-03-05", "2025-03-10")

	in, _ := time.Parse(time.DateOnly, "2025-03-08")
	out, _ := time.Parse(time.DateOnly, "2025-03-12")
	rng, _ := daterange.New(in, out)

	got, err := repo.FindOverlapping(context.Background(), "prop-1", rng)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != active.ID {
		t.Errorf("FindOverlapping returned %d records, want only the active one", len(got))
	}
}

func TestFindByPropertyAndMonth(t *testing.T) {
	repo := NewReservationRepository()
	spanning := seed(t, repo, "prop-1", reservation.StatusPending, "2025-03-30", "2025-04-02")
	seed(t, repo, "prop-1", reservation.StatusPending, "2025-05-10", "2025-05-12")
	seed(t, repo, "prop-1", reservation.StatusCancelled, "2025-03-01", "2025-03-03")

	for _, month := range []int{3, 4} {
		got, err := repo.FindByPropertyAndMonth(context.Background(), "prop-1", month, 2025)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].ID != spanning.ID {
			t.Errorf("month %d: got %d records, want the spanning stay only", month, len(got))
		}
	}
}
