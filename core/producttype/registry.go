package producttype

import (
	"errors"
	"sort"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/kilianp07/catalog/core/factory"
	"github.com/kilianp07/catalog/core/logger"
	"github.com/kilianp07/catalog/core/metrics"
)

// Deps are the collaborators of a Registry. Source, Handlers, PriceModels
// and PriceInfo are required.
type Deps struct {
	Source      Source
	Handlers    HandlerPool
	PriceModels PriceModelFactory
	PriceInfo   PriceInfoFactory
	Localizer   Localizer
	Logger      logger.Logger
	Metrics     metrics.Sink
}

// lazy holds a memoized value and whether it has been populated.
type lazy[T any] struct {
	value T
	ok    bool
}

func (l *lazy[T]) set(v T) T {
	l.value, l.ok = v, true
	return v
}

func (l *lazy[T]) reset() {
	var zero T
	l.value, l.ok = zero, false
}

// Registry serves product type definitions and builds per-type objects.
type Registry struct {
	source      Source
	handlers    HandlerPool
	priceModels PriceModelFactory
	priceInfo   PriceInfoFactory
	localizer   Localizer
	log         logger.Logger
	sink        metrics.Sink

	mu          sync.Mutex
	types       lazy[*orderedmap.OrderedMap[string, Descriptor]]
	composite   lazy[[]string]
	byPriority  lazy[*orderedmap.OrderedMap[string, Descriptor]]
	priceByType map[string]PriceModel
}

// New creates a Registry. Nothing is read from the source until a view is
// requested.
func New(d Deps) (*Registry, error) {
	switch {
	case d.Source == nil:
		return nil, errors.New("producttype: source is required")
	case d.Handlers == nil:
		return nil, errors.New("producttype: handler pool is required")
	case d.PriceModels == nil:
		return nil, errors.New("producttype: price model factory is required")
	case d.PriceInfo == nil:
		return nil, errors.New("producttype: price info factory is required")
	}
	r := &Registry{
		source:      d.Source,
		handlers:    d.Handlers,
		priceModels: d.PriceModels,
		priceInfo:   d.PriceInfo,
		localizer:   d.Localizer,
		log:         logger.OrNop(d.Logger),
		sink:        metrics.OrNop(d.Metrics),
		priceByType: make(map[string]PriceModel),
	}
	if r.localizer == nil {
		r.localizer = identity{}
	}
	return r, nil
}

// Loaded reports whether the type map has been populated.
func (r *Registry) Loaded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.types.ok
}

// Reset drops every cached view. The next call reads the source again.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types.reset()
	r.composite.reset()
	r.byPriority.reset()
	r.priceByType = make(map[string]PriceModel)
}

// Types returns every type keyed by id in declaration order. The source is
// queried on the first call only; later calls return the same map, which
// callers must not modify.
func (r *Registry) Types() *orderedmap.OrderedMap[string, Descriptor] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked()
}

func (r *Registry) loadLocked() *orderedmap.OrderedMap[string, Descriptor] {
	if r.types.ok {
		return r.types.value
	}
	defs := r.source.All()
	types := orderedmap.New[string, Descriptor](len(defs))
	for _, def := range defs {
		if def.ID == "" {
			r.log.Warnf("skipping product type without id (label %q)", def.Label)
			continue
		}
		if _, dup := types.Get(def.ID); dup {
			r.log.Warnf("skipping duplicate product type %s", def.ID)
			continue
		}
		types.Set(def.ID, describe(def, r.localizer))
	}
	r.log.Debugf("loaded %d product types", types.Len())
	if err := r.sink.RecordTypeLoad(types.Len()); err != nil {
		r.log.Warnf("metrics: %v", err)
	}
	return r.types.set(types)
}

// OptionArray maps type ids to their localized labels in declaration order.
func (r *Registry) OptionArray() *orderedmap.OrderedMap[string, string] {
	types := r.Types()
	out := orderedmap.New[string, string](types.Len())
	for pair := types.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value.Label)
	}
	return out
}

// Options lists the types as value/label pairs.
func (r *Registry) Options() []Option {
	types := r.Types()
	out := make([]Option, 0, types.Len())
	for pair := types.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Option{Value: pair.Key, Label: pair.Value.Label})
	}
	return out
}

// AllOptions is Options preceded by an empty choice.
func (r *Registry) AllOptions() []Option {
	return append([]Option{{}}, r.Options()...)
}

// AllOption is an alias of AllOptions kept for callers using the singular
// name.
func (r *Registry) AllOption() []Option {
	return r.AllOptions()
}

// OptionText returns the label of typeID. ok is false for unknown ids.
func (r *Registry) OptionText(typeID string) (label string, ok bool) {
	d, ok := r.Types().Get(typeID)
	if !ok {
		return "", false
	}
	return d.Label, true
}

// CompositeTypes lists the ids of composite types in declaration order.
func (r *Registry) CompositeTypes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.composite.ok {
		return r.composite.value
	}
	types := r.loadLocked()
	ids := []string{}
	for pair := types.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Composite {
			ids = append(ids, pair.Key)
		}
	}
	return r.composite.set(ids)
}

// IsComposite reports whether typeID is a composite type.
func (r *Registry) IsComposite(typeID string) bool {
	d, ok := r.Types().Get(typeID)
	return ok && d.Composite
}

// TypesByPriority returns the types reordered for indexing: simple first,
// then by ascending absolute index priority, ties kept in declaration order.
func (r *Registry) TypesByPriority() *orderedmap.OrderedMap[string, Descriptor] {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byPriority.ok {
		return r.byPriority.value
	}
	types := r.loadLocked()
	ordered := make([]Descriptor, 0, types.Len())
	for pair := types.Oldest(); pair != nil; pair = pair.Next() {
		ordered = append(ordered, pair.Value)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if (a.ID == TypeSimple) != (b.ID == TypeSimple) {
			return a.ID == TypeSimple
		}
		return abs(a.IndexPriority) < abs(b.IndexPriority)
	})
	out := orderedmap.New[string, Descriptor](len(ordered))
	for _, d := range ordered {
		out.Set(d.ID, d)
	}
	return r.byPriority.set(out)
}

// Factory builds the handler of p's type and hands it its descriptor. A
// product without a known type gets the default type's handler. Pool errors
// are returned as is.
func (r *Registry) Factory(p Product) (Handler, error) {
	types := r.Types()
	d, ok := types.Get(p.TypeID())
	if !ok {
		d, ok = types.Get(DefaultType)
		if !ok {
			d = Descriptor{ID: DefaultType}
		}
	}
	h, err := r.handlers.Create(factory.ModuleConfig{Type: d.ModelClass(), Conf: d.Custom})
	if err != nil {
		return nil, err
	}
	h.SetConfig(d)
	return h, nil
}

// PriceFactory returns the price model of typeID, creating it on first use.
// Models of configured types are kept; ids outside the type map get the
// default model and are not remembered.
func (r *Registry) PriceFactory(typeID string) (PriceModel, error) {
	r.mu.Lock()
	if m, ok := r.priceByType[typeID]; ok {
		r.mu.Unlock()
		return m, nil
	}
	name := DefaultPriceModel
	d, known := r.loadLocked().Get(typeID)
	if known {
		name = d.PriceModelClass()
	}
	r.mu.Unlock()

	m, err := r.priceModels.Get(name)
	if err != nil {
		return nil, err
	}
	if !known {
		return m, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.priceByType[typeID]; ok {
		return existing, nil
	}
	r.priceByType[typeID] = m
	return m, nil
}

// PriceInfo builds the price info of p. Every call goes to the factory.
func (r *Registry) PriceInfo(p Product) (PriceInfo, error) {
	return r.priceInfo.Create(p, r)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
