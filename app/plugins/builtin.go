package plugins

import (
	"github.com/kilianp07/catalog/core/factory"
	"github.com/kilianp07/catalog/core/pricing"
	"github.com/kilianp07/catalog/core/producttype"
)

func init() {
	Handlers.MustRegister(producttype.TypeSimple, func(map[string]any) (producttype.Handler, error) {
		return &producttype.Simple{}, nil
	})
	Handlers.MustRegister(producttype.TypeVirtual, func(map[string]any) (producttype.Handler, error) {
		return &producttype.Virtual{}, nil
	})
	Handlers.MustRegister(producttype.TypeBundle, func(conf map[string]any) (producttype.Handler, error) {
		var b producttype.Bundle
		if err := factory.Decode(conf, &b); err != nil {
			return nil, err
		}
		return &b, nil
	})

	PriceModels.MustRegister(producttype.DefaultPriceModel, func(map[string]any) (producttype.PriceModel, error) {
		return pricing.Price{}, nil
	})
	PriceModels.MustRegister("tier_price", func(conf map[string]any) (producttype.PriceModel, error) {
		var t pricing.TierPrice
		if err := factory.Decode(conf, &t); err != nil {
			return nil, err
		}
		return t, nil
	})
}
