// Package producturl builds storefront URLs for catalog products. A product
// either already knows its SEO request path, gets one from the rewrite
// finder, or falls back to the canonical catalog/product/view route.
package producturl

import (
	"context"
	"errors"
	"fmt"

	"github.com/kilianp07/catalog/core/logger"
	"github.com/kilianp07/catalog/core/metrics"
	"github.com/kilianp07/catalog/core/model"
	"github.com/kilianp07/catalog/core/rewrite"
	"github.com/kilianp07/catalog/core/route"
)

// Product is the view of a catalog product the builder needs. The request
// path is the only thing it may change.
type Product interface {
	ID() int64
	StoreID() int64
	CategoryID() int64
	DoNotUseCategoryID() bool
	URLKey() string
	RequestPath() (path string, resolved bool)
	SetRequestPath(path string)
}

// StoreResolver resolves store scopes.
type StoreResolver interface {
	Store(ctx context.Context, id int64) (model.Store, error)
	CurrentStore(ctx context.Context) (model.Store, error)
}

// Transliterator turns free text into a URL-safe key.
type Transliterator interface {
	TranslitURL(s string) string
}

// Deps are the collaborators of a Builder. Rewrites may be nil, in which
// case products without a stored path always get the view route.
type Deps struct {
	URLs     route.GeneratorFactory
	Stores   StoreResolver
	Rewrites rewrite.Finder
	Filter   Transliterator
	// UseCategoryPath makes rewrite lookups include the product category.
	UseCategoryPath bool
	Logger          logger.Logger
	Metrics         metrics.Sink
}

// Builder builds product URLs.
type Builder struct {
	urls            route.GeneratorFactory
	stores          StoreResolver
	rewrites        rewrite.Finder
	filter          Transliterator
	useCategoryPath bool
	log             logger.Logger
	sink            metrics.Sink
}

// New creates a Builder.
func New(d Deps) (*Builder, error) {
	switch {
	case d.URLs == nil:
		return nil, errors.New("producturl: url generator factory is required")
	case d.Stores == nil:
		return nil, errors.New("producturl: store resolver is required")
	case d.Filter == nil:
		return nil, errors.New("producturl: transliteration filter is required")
	}
	return &Builder{
		urls:            d.URLs,
		stores:          d.Stores,
		rewrites:        d.Rewrites,
		filter:          d.Filter,
		useCategoryPath: d.UseCategoryPath,
		log:             logger.OrNop(d.Logger),
		sink:            metrics.OrNop(d.Metrics),
	}, nil
}

// URL returns the URL of p. A stored request path is used as a direct path;
// otherwise the product view route is built from the product id, url key and
// category. params are passed through to the generator; the caller's map is
// never modified.
func (b *Builder) URL(ctx context.Context, p Product, params route.Params) (string, error) {
	rp := params.Clone()
	routePath := ""
	storeID := p.StoreID()
	ignoreCategory := params.Has(route.IgnoreCategory)

	var categoryID int64
	if !ignoreCategory && p.CategoryID() != 0 && !p.DoNotUseCategoryID() {
		categoryID = p.CategoryID()
	}

	source := metrics.SourceStored
	requestPath, resolved := p.RequestPath()
	if ignoreCategory {
		// The stored path may embed a category.
		requestPath, resolved = "", false
	}
	if !resolved {
		path, err := b.lookup(ctx, p, storeID, categoryID)
		if err != nil {
			return "", err
		}
		if !ignoreCategory && p.ID() != 0 {
			p.SetRequestPath(path)
		}
		requestPath = path
		source = metrics.SourceRewrite
	}

	if rp.Has(route.Scope) {
		id, ok := rp.Int64(route.Scope)
		if !ok {
			return "", fmt.Errorf("producturl: invalid %s %v", route.Scope, rp[route.Scope])
		}
		st, err := b.stores.Store(ctx, id)
		if err != nil {
			return "", err
		}
		storeID = st.ID
	}
	current, err := b.stores.CurrentStore(ctx)
	if err != nil {
		return "", err
	}
	if storeID != current.ID {
		rp[route.ScopeToURL] = true
	}

	if requestPath != "" {
		rp[route.Direct] = requestPath
	} else {
		source = metrics.SourceRoute
		routePath = route.ProductView
		if override := rp.String(route.Route); override != "" {
			routePath = override
		}
		if id := p.ID(); id != 0 {
			rp[route.ID] = id
		}
		if key := p.URLKey(); key != "" {
			rp[route.URLKey] = key
		}
		if categoryID != 0 {
			rp[route.Category] = categoryID
		}
	}
	delete(rp, route.Route)

	// Never inherit query parameters of the current request.
	if !rp.Has(route.Query) {
		rp[route.Query] = map[string]string{}
	}

	gen := b.urls.Create()
	gen.SetScope(storeID)
	u, err := gen.URL(ctx, routePath, rp)
	if err != nil {
		return "", err
	}
	if err := b.sink.RecordURL(source); err != nil {
		b.log.Warnf("metrics: %v", err)
	}
	return u, nil
}

// URLInStore is URL with the store always made explicit in the result.
func (b *Builder) URLInStore(ctx context.Context, p Product, params route.Params) (string, error) {
	rp := params.Clone()
	rp[route.ScopeToURL] = true
	return b.URL(ctx, p, rp)
}

// ProductURL is URL without a session id in the result.
func (b *Builder) ProductURL(ctx context.Context, p Product, params route.Params) (string, error) {
	rp := params.Clone()
	rp[route.NoSID] = true
	return b.URL(ctx, p, rp)
}

// FormatURLKey transliterates s into a url key.
func (b *Builder) FormatURLKey(s string) string {
	return b.filter.TranslitURL(s)
}

// lookup returns the rewrite request path of p, or "" when there is none.
func (b *Builder) lookup(ctx context.Context, p Product, storeID, categoryID int64) (string, error) {
	if b.rewrites == nil || p.ID() == 0 {
		return "", nil
	}
	f := rewrite.Filter{
		EntityType: rewrite.EntityProduct,
		EntityID:   p.ID(),
		StoreID:    storeID,
	}
	if b.useCategoryPath {
		f.CategoryID = categoryID
	}
	rw, err := b.rewrites.FindOneByData(ctx, f)
	if err != nil {
		return "", err
	}
	if rw == nil {
		return "", nil
	}
	b.log.Debugw("rewrite hit", map[string]any{"product_id": p.ID(), "store_id": storeID, "path": rw.RequestPath})
	return rw.RequestPath, nil
}
