package route

import "context"

// Generator turns a route path and its parameters into a URL for the store
// it is scoped to.
type Generator interface {
	SetScope(storeID int64)
	URL(ctx context.Context, routePath string, params Params) (string, error)
}

// GeneratorFactory hands out a fresh Generator per URL so scoping never
// leaks between calls.
type GeneratorFactory interface {
	Create() Generator
}
