package plugins

import (
	"github.com/kilianp07/catalog/core/factory"
	"github.com/kilianp07/catalog/core/producttype"
)

var (
	// Handlers builds product type handlers by model name.
	Handlers = factory.NewRegistry[producttype.Handler]()
	// PriceModels builds price models by name.
	PriceModels = factory.NewRegistry[producttype.PriceModel]()
)

func RegisterHandler(name string, f factory.Factory[producttype.Handler]) error {
	return Handlers.Register(name, f)
}

func RegisterPriceModel(name string, f factory.Factory[producttype.PriceModel]) error {
	return PriceModels.Register(name, f)
}

// NamedPriceModels resolves configured price model aliases before falling
// back to the registered constructors.
type NamedPriceModels struct {
	Pool  *factory.Registry[producttype.PriceModel]
	Named map[string]factory.ModuleConfig
}

// Get implements producttype.PriceModelFactory.
func (n NamedPriceModels) Get(name string) (producttype.PriceModel, error) {
	if cfg, ok := n.Named[name]; ok {
		return n.Pool.Create(cfg)
	}
	return n.Pool.Get(name)
}
