package ginserver

import (
	"errors"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/domain/property"
	"staybook/internal/domain/reservation"
	"staybook/internal/domain/shared/daterange"
)

// respondError maps the domain error taxonomy onto HTTP statuses:
// lookup failures are 404, lifecycle/availability conflicts are 409,
// malformed input is 400 and anything else (store failures included)
// surfaces as 500.
func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, reservation.ErrNotFound),
		errors.Is(err, property.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, reservation.ErrUnavailable),
		errors.Is(err, reservation.ErrInvalidTransition),
		errors.Is(err, reservation.ErrAlreadyConfirmed),
		errors.Is(err, reservation.ErrAlreadyCancelled),
		errors.Is(err, reservation.ErrAlreadyFinalized),
		errors.Is(err, reservation.ErrImmutableState),
		errors.Is(err, reservation.ErrTooEarly),
		errors.Is(err, reservation.ErrNoCheckIn):
		return http.StatusConflict
	case errors.Is(err, daterange.ErrInvalidRange),
		errors.Is(err, reservation.ErrInvalidGuests),
		errors.Is(err, reservation.ErrInvalidStatus),
		errors.Is(err, reservation.ErrInvalidMonth),
		errors.Is(err, reservation.ErrClientRequired),
		errors.Is(err, reservation.ErrPropertyRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse(time.DateOnly, raw)
}
