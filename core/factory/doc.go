// Package factory provides the registered-constructor tables used to
// instantiate product-type handlers and price models by name. Each name maps
// to a constructor that receives the raw custom settings of the descriptor
// and returns a fresh instance.
//
// Example usage:
//
//	pool := factory.NewRegistry[producttype.Handler]()
//	pool.Register("simple", func(conf map[string]any) (producttype.Handler, error) {
//	    return plugins.NewSimple(), nil
//	})
//	h, err := pool.Create(factory.ModuleConfig{Type: "simple"})
package factory
