// Package pricing provides the builtin price models and the price info
// factory used by the product type registry.
package pricing

import (
	"errors"

	"github.com/kilianp07/catalog/core/producttype"
)

// Price is the default price model: base price times quantity.
type Price struct{}

// FinalPrice implements producttype.PriceModel. Quantities below one are
// priced as one unit.
func (Price) FinalPrice(qty float64, p producttype.Product) float64 {
	if qty < 1 {
		qty = 1
	}
	return qty * p.Price()
}

// TierPrice applies a percentage discount once the quantity reaches MinQty.
type TierPrice struct {
	MinQty   float64 `json:"min_qty"`
	Discount float64 `json:"discount_percent"`
}

// FinalPrice implements producttype.PriceModel.
func (t TierPrice) FinalPrice(qty float64, p producttype.Product) float64 {
	total := Price{}.FinalPrice(qty, p)
	if t.MinQty > 0 && qty >= t.MinQty {
		total -= total * t.Discount / 100
	}
	return total
}

// Info is the price info of one product.
type Info struct {
	product producttype.Product
	model   producttype.PriceModel
}

// PriceModel implements producttype.PriceInfo.
func (i *Info) PriceModel() producttype.PriceModel { return i.model }

// FinalPrice implements producttype.PriceInfo.
func (i *Info) FinalPrice(qty float64) float64 {
	return i.model.FinalPrice(qty, i.product)
}

// InfoFactory builds Info values by resolving the price model of the
// product's type.
type InfoFactory struct{}

// Create implements producttype.PriceInfoFactory.
func (InfoFactory) Create(p producttype.Product, models producttype.PriceModelResolver) (producttype.PriceInfo, error) {
	if p == nil {
		return nil, errors.New("pricing: nil product")
	}
	m, err := models.PriceFactory(p.TypeID())
	if err != nil {
		return nil, err
	}
	return &Info{product: p, model: m}, nil
}
