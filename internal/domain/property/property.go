package property

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("property: not found")

// Property is the catalog's view of a rental unit: enough to price a stay.
// The catalog is read-only to the reservation core.
type Property struct {
	ID               string
	Title            string
	NightlyRateCents int64
}

type Catalog interface {
	FindByID(ctx context.Context, id string) (*Property, error)
}
