package plugins

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/catalog/core/factory"
	"github.com/kilianp07/catalog/core/pricing"
	"github.com/kilianp07/catalog/core/producttype"
)

func TestBuiltinHandlers(t *testing.T) {
	assert.Equal(t, []string{"bundle", "simple", "virtual"}, Handlers.Names())

	h, err := Handlers.Create(factory.ModuleConfig{Type: producttype.TypeVirtual})
	require.NoError(t, err)
	assert.True(t, h.IsVirtual())
	assert.False(t, h.HasWeight())

	h, err = Handlers.Create(factory.ModuleConfig{
		Type: producttype.TypeBundle,
		Conf: map[string]any{"dynamic_weight": "true"},
	})
	require.NoError(t, err)
	assert.False(t, h.HasWeight())

	_, err = Handlers.Create(factory.ModuleConfig{Type: "grouped"})
	var unknown *factory.UnknownTypeError
	assert.True(t, errors.As(err, &unknown))
}

func TestBuiltinPriceModels(t *testing.T) {
	m, err := PriceModels.Get(producttype.DefaultPriceModel)
	require.NoError(t, err)
	assert.Equal(t, pricing.Price{}, m)

	m, err = PriceModels.Create(factory.ModuleConfig{
		Type: "tier_price",
		Conf: map[string]any{"min_qty": 10, "discount_percent": 5},
	})
	require.NoError(t, err)
	assert.Equal(t, pricing.TierPrice{MinQty: 10, Discount: 5}, m)
}

func TestNamedPriceModels(t *testing.T) {
	n := NamedPriceModels{
		Pool: PriceModels,
		Named: map[string]factory.ModuleConfig{
			"wholesale": {Type: "tier_price", Conf: map[string]any{"min_qty": 100, "discount_percent": 20}},
		},
	}

	m, err := n.Get("wholesale")
	require.NoError(t, err)
	assert.Equal(t, pricing.TierPrice{MinQty: 100, Discount: 20}, m)

	m, err = n.Get(producttype.DefaultPriceModel)
	require.NoError(t, err)
	assert.Equal(t, pricing.Price{}, m)

	_, err = n.Get("missing")
	assert.Error(t, err)
}

func TestRegisterHandlerRejectsDuplicates(t *testing.T) {
	err := RegisterHandler(producttype.TypeSimple, func(map[string]any) (producttype.Handler, error) {
		return &producttype.Simple{}, nil
	})
	assert.Error(t, err)
}

type flatPrice float64

func (f flatPrice) FinalPrice(qty float64, _ producttype.Product) float64 { return float64(f) }

func TestRegisterPriceModel(t *testing.T) {
	require.NoError(t, RegisterPriceModel("flat_test", func(conf map[string]any) (producttype.PriceModel, error) {
		return flatPrice(9), nil
	}))
	m, err := PriceModels.Get("flat_test")
	require.NoError(t, err)
	assert.Equal(t, 9.0, m.FinalPrice(3, nil))
	assert.Error(t, RegisterPriceModel("flat_test", func(map[string]any) (producttype.PriceModel, error) {
		return flatPrice(1), nil
	}))
}
