// Package rewrite describes stored URL rewrites: SEO request paths mapped to
// the canonical route of a catalog entity.
package rewrite

import "context"

// EntityProduct is the entity type of product rewrites.
const EntityProduct = "product"

// Rewrite is a stored request path for an entity in a store.
type Rewrite struct {
	ID           int64
	EntityType   string
	EntityID     int64
	RequestPath  string
	TargetPath   string
	RedirectType int
	StoreID      int64
	// CategoryID is the category metadata; 0 for the category-less rewrite.
	CategoryID int64
}

// Filter selects a single rewrite. A zero CategoryID matches only rewrites
// without category metadata.
type Filter struct {
	EntityType   string
	EntityID     int64
	StoreID      int64
	RedirectType int
	CategoryID   int64
}

// Finder looks up rewrites. FindOneByData returns nil and no error when
// nothing matches.
type Finder interface {
	FindOneByData(ctx context.Context, f Filter) (*Rewrite, error)
}
