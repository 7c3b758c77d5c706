// Package store resolves storefront scopes from configuration.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/kilianp07/catalog/core/model"
)

// ErrStoreNotFound is returned for ids that are not configured.
var ErrStoreNotFound = errors.New("store not found")

// Resolver is an in-memory store resolver.
type Resolver struct {
	stores  map[int64]model.Store
	current int64
}

// New builds a Resolver. current must be one of stores.
func New(stores []model.Store, current int64) (*Resolver, error) {
	r := &Resolver{stores: make(map[int64]model.Store, len(stores)), current: current}
	for _, s := range stores {
		if _, dup := r.stores[s.ID]; dup {
			return nil, fmt.Errorf("duplicate store id %d", s.ID)
		}
		r.stores[s.ID] = s
	}
	if _, ok := r.stores[current]; !ok {
		return nil, fmt.Errorf("current store %d: %w", current, ErrStoreNotFound)
	}
	return r, nil
}

// Store returns the store with the given id.
func (r *Resolver) Store(_ context.Context, id int64) (model.Store, error) {
	s, ok := r.stores[id]
	if !ok {
		return model.Store{}, fmt.Errorf("store %d: %w", id, ErrStoreNotFound)
	}
	return s, nil
}

// CurrentStore returns the store requests are served from.
func (r *Resolver) CurrentStore(ctx context.Context) (model.Store, error) {
	return r.Store(ctx, r.current)
}

// Stores lists every store ordered by id.
func (r *Resolver) Stores() []model.Store {
	out := make([]model.Store, 0, len(r.stores))
	for _, s := range r.stores {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
