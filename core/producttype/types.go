package producttype

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/kilianp07/catalog/core/factory"
)

// Builtin type ids and constructor names.
const (
	TypeSimple  = "simple"
	TypeVirtual = "virtual"
	TypeBundle  = "bundle"

	// DefaultType is used by Factory when a product carries no known type.
	DefaultType = TypeSimple
	// DefaultPriceModel is the price model of types that declare none.
	DefaultPriceModel = "price"
)

// Definition is a product type as written in configuration.
type Definition struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	// Model names the handler constructor. Empty means the type id.
	Model string `json:"model"`
	// Composite is evaluated for truthiness: any non-empty value other than
	// false, 0 or "false" marks a composite type.
	Composite     any            `json:"composite"`
	PriceModel    string         `json:"price_model"`
	IndexPriority int            `json:"index_priority"`
	IsQty         bool           `json:"is_qty"`
	Custom        map[string]any `json:"custom"`
}

// Descriptor is a loaded product type.
type Descriptor struct {
	ID            string         `json:"id"`
	Label         string         `json:"label"`
	Model         string         `json:"model,omitempty"`
	Composite     bool           `json:"composite"`
	PriceModel    string         `json:"price_model,omitempty"`
	IndexPriority int            `json:"index_priority"`
	IsQty         bool           `json:"is_qty"`
	Custom        map[string]any `json:"custom,omitempty"`
}

// ModelClass returns the handler constructor name.
func (d Descriptor) ModelClass() string {
	if d.Model != "" {
		return d.Model
	}
	return d.ID
}

// PriceModelClass returns the price model constructor name.
func (d Descriptor) PriceModelClass() string {
	if d.PriceModel != "" {
		return d.PriceModel
	}
	return DefaultPriceModel
}

// Option is a value/label pair for select inputs.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Source provides the raw type definitions in declaration order.
type Source interface {
	All() []Definition
}

// StaticSource serves a fixed slice of definitions.
type StaticSource []Definition

// All implements Source.
func (s StaticSource) All() []Definition { return s }

// Localizer translates labels. Unknown strings are returned unchanged.
type Localizer interface {
	Translate(s string) string
}

type identity struct{}

func (identity) Translate(s string) string { return s }

// Product is the part of a catalog product the registry reads.
type Product interface {
	TypeID() string
	Price() float64
}

// Handler is the per-type behaviour object built by Factory.
type Handler interface {
	SetConfig(d Descriptor)
	Config() Descriptor
	TypeID() string
	IsVirtual() bool
	IsComposite() bool
	HasWeight() bool
}

// PriceModel computes prices for products of one type.
type PriceModel interface {
	FinalPrice(qty float64, p Product) float64
}

// PriceInfo exposes the prices of one product.
type PriceInfo interface {
	PriceModel() PriceModel
	FinalPrice(qty float64) float64
}

// HandlerPool builds handlers by constructor name.
type HandlerPool interface {
	Create(cfg factory.ModuleConfig) (Handler, error)
}

// PriceModelFactory builds price models by constructor name.
type PriceModelFactory interface {
	Get(name string) (PriceModel, error)
}

// PriceModelResolver resolves the price model of a type id.
type PriceModelResolver interface {
	PriceFactory(typeID string) (PriceModel, error)
}

// PriceInfoFactory builds the price info of a product.
type PriceInfoFactory interface {
	Create(p Product, models PriceModelResolver) (PriceInfo, error)
}

// truthy mirrors how loosely typed configuration flags are read.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		s := strings.ToLower(strings.TrimSpace(x))
		return s != "" && s != "0" && s != "false"
	default:
		n, err := cast.ToFloat64E(v)
		if err != nil {
			return true
		}
		return n != 0
	}
}

func describe(def Definition, l Localizer) Descriptor {
	return Descriptor{
		ID:            def.ID,
		Label:         l.Translate(def.Label),
		Model:         def.Model,
		Composite:     truthy(def.Composite),
		PriceModel:    def.PriceModel,
		IndexPriority: def.IndexPriority,
		IsQty:         def.IsQty,
		Custom:        def.Custom,
	}
}
