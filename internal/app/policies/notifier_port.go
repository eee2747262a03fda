package policies

import "context"

// Notifier delivers guest-facing notices about a reservation. Calls are
// fire-and-forget: implementations log failures, callers never treat them
// as operation errors.
type Notifier interface {
	SendConfirmation(ctx context.Context, reservationID string) error
	SendReminder(ctx context.Context, reservationID string, daysUntilCheckIn int) error
}
