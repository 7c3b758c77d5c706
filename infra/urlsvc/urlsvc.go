// Package urlsvc is the generic storefront URL service. It knows nothing
// about products: it joins a store base URL with either a direct path or a
// route path plus its parameters.
package urlsvc

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"github.com/kilianp07/catalog/core/model"
	"github.com/kilianp07/catalog/core/route"
)

// StoreQueryParam carries the store code when it is not part of the path.
const StoreQueryParam = "___store"

// SIDQueryParam carries the session id.
const SIDQueryParam = "SID"

// Stores resolves the store a generator is scoped to.
type Stores interface {
	Store(ctx context.Context, id int64) (model.Store, error)
	CurrentStore(ctx context.Context) (model.Store, error)
}

// SessionResolver decides whether URLs carry the session id.
type SessionResolver interface {
	UseSessionInURL() bool
	SessionID() string
}

// Options tune URL shape.
type Options struct {
	// StoreCodeInURL prefixes paths with the store code.
	StoreCodeInURL bool `json:"store_code_in_url"`
}

// Factory creates Generators sharing the same stores and session resolver.
type Factory struct {
	stores   Stores
	sessions SessionResolver
	opts     Options
}

// NewFactory creates a Factory. sessions may be nil.
func NewFactory(stores Stores, sessions SessionResolver, opts Options) *Factory {
	return &Factory{stores: stores, sessions: sessions, opts: opts}
}

// Create implements route.GeneratorFactory.
func (f *Factory) Create() route.Generator {
	return &Generator{f: f}
}

// Generator builds URLs for one store. Without SetScope it uses the current
// store.
type Generator struct {
	f      *Factory
	scope  int64
	scoped bool
}

// SetScope implements route.Generator.
func (g *Generator) SetScope(storeID int64) {
	g.scope, g.scoped = storeID, true
}

func (g *Generator) store(ctx context.Context) (model.Store, error) {
	if g.scoped {
		return g.f.stores.Store(ctx, g.scope)
	}
	return g.f.stores.CurrentStore(ctx)
}

// URL implements route.Generator. A non-empty _direct wins over routePath;
// route URLs end with a slash and carry the non-reserved params as
// key/value segments in key order.
func (g *Generator) URL(ctx context.Context, routePath string, params route.Params) (string, error) {
	st, err := g.store(ctx)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(st.BaseURL)
	if err != nil {
		return "", err
	}

	segments := []string{strings.TrimSuffix(u.Path, "/")}
	if g.f.opts.StoreCodeInURL && st.Code != "" {
		segments = append(segments, st.Code)
	}
	trailing := false
	if direct := params.String(route.Direct); direct != "" {
		segments = append(segments, strings.TrimPrefix(direct, "/"))
	} else if routePath = strings.Trim(routePath, "/"); routePath != "" {
		segments = append(segments, routePath)
		keys := make([]string, 0, len(params))
		for k := range params {
			if !route.IsReserved(k) {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			segments = append(segments, k, cast.ToString(params[k]))
		}
		trailing = true
	}
	path := strings.Join(segments, "/")
	if trailing || path == "" {
		path += "/"
	}
	// Escaping happens in u.String.
	u.Path = path
	u.RawPath = ""

	q := url.Values{}
	for k, v := range params.QueryValues() {
		q.Set(k, v)
	}
	if params.Bool(route.ScopeToURL) && !g.f.opts.StoreCodeInURL && st.Code != "" {
		q.Set(StoreQueryParam, st.Code)
	}
	if !params.Bool(route.NoSID) && g.f.sessions != nil && g.f.sessions.UseSessionInURL() {
		q.Set(SIDQueryParam, g.f.sessions.SessionID())
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
