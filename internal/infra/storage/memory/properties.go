package memory

import (
	"context"
	"sync"

	"staybook/internal/domain/property"
)

// PropertyCatalog is an in-memory catalog, seeded from fixtures at startup.
type PropertyCatalog struct {
	mu    sync.RWMutex
	items map[string]*property.Property
}

// NewPropertyCatalog builds an empty catalog.
func NewPropertyCatalog() *PropertyCatalog {
	return &PropertyCatalog{items: make(map[string]*property.Property)}
}

// FindByID returns a property or property.ErrNotFound.
func (c *PropertyCatalog) FindByID(ctx context.Context, id string) (*property.Property, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	prop, ok := c.items[id]
	if !ok {
		return nil, property.ErrNotFound
	}
	cp := *prop
	return &cp, nil
}

// Put stores or replaces a catalog entry.
func (c *PropertyCatalog) Put(ctx context.Context, prop *property.Property) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *prop
	c.items[prop.ID] = &cp
	return nil
}

var _ property.Catalog = (*PropertyCatalog)(nil)
