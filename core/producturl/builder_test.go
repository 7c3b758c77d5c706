package producturl

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/catalog/core/metrics"
	"github.com/kilianp07/catalog/core/model"
	"github.com/kilianp07/catalog/core/rewrite"
	"github.com/kilianp07/catalog/core/route"
)

type mockStores struct{ mock.Mock }

func (m *mockStores) Store(ctx context.Context, id int64) (model.Store, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Store), args.Error(1)
}

func (m *mockStores) CurrentStore(ctx context.Context) (model.Store, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.Store), args.Error(1)
}

type mockGenerator struct{ mock.Mock }

func (m *mockGenerator) SetScope(storeID int64) { m.Called(storeID) }

func (m *mockGenerator) URL(ctx context.Context, routePath string, params route.Params) (string, error) {
	args := m.Called(ctx, routePath, params)
	return args.String(0), args.Error(1)
}

type generatorFactory struct{ gen *mockGenerator }

func (f generatorFactory) Create() route.Generator { return f.gen }

type mockFinder struct{ mock.Mock }

func (m *mockFinder) FindOneByData(ctx context.Context, f rewrite.Filter) (*rewrite.Rewrite, error) {
	args := m.Called(ctx, f)
	rw, _ := args.Get(0).(*rewrite.Rewrite)
	return rw, args.Error(1)
}

type mockFilter struct{ mock.Mock }

func (m *mockFilter) TranslitURL(s string) string { return m.Called(s).String(0) }

type recordingSink struct {
	metrics.NopSink
	sources []string
}

func (r *recordingSink) RecordURL(source string) error {
	r.sources = append(r.sources, source)
	return nil
}

type harness struct {
	builder *Builder
	stores  *mockStores
	gen     *mockGenerator
	finder  *mockFinder
	filter  *mockFilter
	sink    *recordingSink
}

func newHarness(t *testing.T, useCategoryPath bool) harness {
	t.Helper()
	h := harness{
		stores: &mockStores{},
		gen:    &mockGenerator{},
		finder: &mockFinder{},
		filter: &mockFilter{},
		sink:   &recordingSink{},
	}
	h.stores.On("Store", mock.Anything, mock.Anything).Return(model.Store{ID: 1, Code: "default"}, nil).Maybe()
	h.stores.On("CurrentStore", mock.Anything).Return(model.Store{ID: 1, Code: "default"}, nil).Maybe()
	h.finder.On("FindOneByData", mock.Anything, mock.Anything).Return(nil, nil).Maybe()

	b, err := New(Deps{
		URLs:            generatorFactory{gen: h.gen},
		Stores:          h.stores,
		Rewrites:        h.finder,
		Filter:          h.filter,
		UseCategoryPath: useCategoryPath,
		Metrics:         h.sink,
	})
	require.NoError(t, err)
	h.builder = b
	return h
}

func withPath(p *model.Product, path string) *model.Product {
	p.SetRequestPath(path)
	return p
}

func TestNewRequiresCollaborators(t *testing.T) {
	_, err := New(Deps{})
	assert.Error(t, err)
	_, err = New(Deps{URLs: generatorFactory{}, Stores: &mockStores{}})
	assert.Error(t, err)
}

func TestFormatURLKey(t *testing.T) {
	h := newHarness(t, false)
	h.filter.On("TranslitURL", "Some string").Return("some").Once()

	assert.Equal(t, "some", h.builder.FormatURLKey("Some string"))
	h.filter.AssertExpectations(t)
}

func viaURL(b *Builder, p *model.Product, params route.Params) (string, error) {
	return b.URL(context.Background(), p, params)
}

func viaURLInStore(b *Builder, p *model.Product, params route.Params) (string, error) {
	return b.URLInStore(context.Background(), p, params)
}

func viaProductURL(b *Builder, p *model.Product, params route.Params) (string, error) {
	return b.ProductURL(context.Background(), p, params)
}

func TestGetURL(t *testing.T) {
	cases := []struct {
		name      string
		call      func(b *Builder, p *model.Product, params route.Params) (string, error)
		routePath string
		product   *model.Product
		params    route.Params
		want      route.Params
		result    string
	}{
		{
			name:      "stored path",
			call:      viaURL,
			routePath: "",
			product:   withPath(&model.Product{Store: 1, Category: 1}, "/product/url/path"),
			params:    route.Params{route.Scope: 1},
			want:      route.Params{route.Scope: 1, route.Direct: "/product/url/path", route.Query: map[string]string{}},
			result:    "/product/url/path",
		},
		{
			name:      "view route",
			call:      viaURL,
			routePath: route.ProductView,
			product:   withPath(&model.Product{EntityID: 1, Key: "urlKey", Store: 1, Category: 1}, ""),
			params:    route.Params{route.Scope: 1},
			want: route.Params{
				route.Scope:    1,
				route.Query:    map[string]string{},
				route.ID:       int64(1),
				route.URLKey:   "urlKey",
				route.Category: int64(1),
			},
			result: "/catalog/product/view/id/1/s/urlKey/category/1/",
		},
		{
			name:      "in store",
			call:      viaURLInStore,
			routePath: "",
			product:   withPath(&model.Product{Store: 1, Category: 1}, "/product/url/path"),
			params:    route.Params{route.Scope: 1},
			want: route.Params{
				route.Scope:      1,
				route.Direct:     "/product/url/path",
				route.Query:      map[string]string{},
				route.ScopeToURL: true,
			},
			result: "/product/url/path",
		},
		{
			name:      "in store without stored path",
			call:      viaURLInStore,
			routePath: route.ProductView,
			product:   withPath(&model.Product{EntityID: 1, Key: "urlKey", Store: 1, Category: 1}, ""),
			params:    route.Params{route.Scope: 1},
			want: route.Params{
				route.Scope:      1,
				route.Query:      map[string]string{},
				route.ScopeToURL: true,
				route.ID:         int64(1),
				route.URLKey:     "urlKey",
				route.Category:   int64(1),
			},
			result: "/catalog/product/view/id/1/s/urlKey/category/1/?___store=default",
		},
		{
			name:      "product url",
			call:      viaProductURL,
			routePath: "",
			product:   withPath(&model.Product{Store: 1, Category: 1}, "/product/url/path"),
			want:      route.Params{route.Direct: "/product/url/path", route.Query: map[string]string{}, route.NoSID: true},
			result:    "/product/url/path",
		},
		{
			name:      "product url keeps caller params",
			call:      viaProductURL,
			routePath: "",
			product:   withPath(&model.Product{Store: 1, Category: 1}, "/product/url/path"),
			params:    route.Params{route.Query: map[string]string{"ref": "mail"}},
			want: route.Params{
				route.Direct: "/product/url/path",
				route.Query:  map[string]string{"ref": "mail"},
				route.NoSID:  true,
			},
			result: "/product/url/path?ref=mail",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, false)
			h.gen.On("SetScope", int64(1)).Once()
			h.gen.On("URL", mock.Anything, tc.routePath, tc.want).Return(tc.result, nil).Once()

			got, err := tc.call(h.builder, tc.product, tc.params)
			require.NoError(t, err)
			assert.Equal(t, tc.result, got)
			h.gen.AssertExpectations(t)
			h.finder.AssertNotCalled(t, "FindOneByData", mock.Anything, mock.Anything)
		})
	}
}

func TestURL_DoesNotModifyCallerParams(t *testing.T) {
	h := newHarness(t, false)
	h.gen.On("SetScope", int64(1))
	h.gen.On("URL", mock.Anything, mock.Anything, mock.Anything).Return("u", nil)

	params := route.Params{route.Scope: 1}
	_, err := h.builder.URLInStore(context.Background(), withPath(&model.Product{Store: 1}, "p.html"), params)
	require.NoError(t, err)
	assert.Equal(t, route.Params{route.Scope: 1}, params)
}

func TestURL_RewriteLookup(t *testing.T) {
	h := newHarness(t, true)
	h.finder.ExpectedCalls = nil
	h.finder.On("FindOneByData", mock.Anything, rewrite.Filter{
		EntityType: rewrite.EntityProduct,
		EntityID:   7,
		StoreID:    1,
		CategoryID: 3,
	}).Return(&rewrite.Rewrite{RequestPath: "bags/messenger.html"}, nil).Once()

	var captured route.Params
	h.gen.On("SetScope", int64(1))
	h.gen.On("URL", mock.Anything, "", mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(2).(route.Params) }).
		Return("https://shop.test/bags/messenger.html", nil)

	p := &model.Product{EntityID: 7, Store: 1, Category: 3, Key: "messenger"}
	got, err := h.builder.URL(context.Background(), p, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://shop.test/bags/messenger.html", got)

	want := route.Params{route.Direct: "bags/messenger.html", route.Query: map[string]string{}}
	if diff := cmp.Diff(want, captured); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}

	path, resolved := p.RequestPath()
	assert.True(t, resolved)
	assert.Equal(t, "bags/messenger.html", path)

	// The stored path is reused without a second lookup.
	_, err = h.builder.URL(context.Background(), p, nil)
	require.NoError(t, err)
	h.finder.AssertExpectations(t)
	assert.Equal(t, []string{metrics.SourceRewrite, metrics.SourceStored}, h.sink.sources)
}

func TestURL_NoRewriteFallsBackToRoute(t *testing.T) {
	h := newHarness(t, false)
	var captured route.Params
	h.gen.On("SetScope", int64(1))
	h.gen.On("URL", mock.Anything, route.ProductView, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(2).(route.Params) }).
		Return("view", nil)

	p := &model.Product{EntityID: 7, Store: 1, Category: 3, Key: "messenger"}
	_, err := h.builder.URL(context.Background(), p, nil)
	require.NoError(t, err)

	// Category is only part of the lookup when category paths are enabled.
	h.finder.AssertCalled(t, "FindOneByData", mock.Anything, rewrite.Filter{
		EntityType: rewrite.EntityProduct,
		EntityID:   7,
		StoreID:    1,
	})
	want := route.Params{
		route.Query:    map[string]string{},
		route.ID:       int64(7),
		route.URLKey:   "messenger",
		route.Category: int64(3),
	}
	if diff := cmp.Diff(want, captured); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
	path, resolved := p.RequestPath()
	assert.True(t, resolved)
	assert.Empty(t, path)
	assert.Equal(t, []string{metrics.SourceRoute}, h.sink.sources)
}

func TestURL_MissingOptionalFieldsAreOmitted(t *testing.T) {
	h := newHarness(t, false)
	var captured route.Params
	h.gen.On("SetScope", int64(1))
	h.gen.On("URL", mock.Anything, route.ProductView, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(2).(route.Params) }).
		Return("view", nil)

	_, err := h.builder.URL(context.Background(), &model.Product{Store: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, route.Params{route.Query: map[string]string{}}, captured)
	// Without an entity id there is nothing to look up.
	h.finder.AssertNotCalled(t, "FindOneByData", mock.Anything, mock.Anything)
}

func TestURL_CategorySuppressed(t *testing.T) {
	h := newHarness(t, false)
	var captured route.Params
	h.gen.On("SetScope", int64(1))
	h.gen.On("URL", mock.Anything, route.ProductView, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(2).(route.Params) }).
		Return("view", nil)

	p := withPath(&model.Product{EntityID: 2, Store: 1, Category: 9, NoCategory: true}, "")
	_, err := h.builder.URL(context.Background(), p, nil)
	require.NoError(t, err)
	assert.NotContains(t, captured, route.Category)
}

func TestURL_IgnoreCategoryBypassesStoredPath(t *testing.T) {
	h := newHarness(t, true)
	h.finder.ExpectedCalls = nil
	h.finder.On("FindOneByData", mock.Anything, rewrite.Filter{
		EntityType: rewrite.EntityProduct,
		EntityID:   5,
		StoreID:    1,
	}).Return(&rewrite.Rewrite{RequestPath: "lamp.html"}, nil).Once()

	var captured route.Params
	h.gen.On("SetScope", int64(1))
	h.gen.On("URL", mock.Anything, "", mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(2).(route.Params) }).
		Return("lamp", nil)

	p := withPath(&model.Product{EntityID: 5, Store: 1, Category: 4}, "lighting/lamp.html")
	_, err := h.builder.URL(context.Background(), p, route.Params{route.IgnoreCategory: true})
	require.NoError(t, err)

	assert.Equal(t, "lamp.html", captured[route.Direct])
	path, _ := p.RequestPath()
	assert.Equal(t, "lighting/lamp.html", path, "category-less lookup must not replace the stored path")
	h.finder.AssertExpectations(t)
}

func TestURL_OtherStoreAddsScopeToURL(t *testing.T) {
	h := newHarness(t, false)
	h.stores.ExpectedCalls = nil
	h.stores.On("Store", mock.Anything, int64(2)).Return(model.Store{ID: 2, Code: "fr"}, nil)
	h.stores.On("CurrentStore", mock.Anything).Return(model.Store{ID: 1, Code: "default"}, nil)

	var captured route.Params
	h.gen.On("SetScope", int64(2)).Once()
	h.gen.On("URL", mock.Anything, "", mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(2).(route.Params) }).
		Return("fr", nil)

	p := withPath(&model.Product{Store: 1}, "sac.html")
	_, err := h.builder.URL(context.Background(), p, route.Params{route.Scope: "2"})
	require.NoError(t, err)
	assert.Equal(t, true, captured[route.ScopeToURL])
	h.gen.AssertExpectations(t)
}

func TestURL_RouteOverride(t *testing.T) {
	h := newHarness(t, false)
	var captured route.Params
	h.gen.On("SetScope", int64(1))
	h.gen.On("URL", mock.Anything, "review/product/list", mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(2).(route.Params) }).
		Return("reviews", nil)

	p := withPath(&model.Product{EntityID: 3, Store: 1}, "")
	got, err := h.builder.URL(context.Background(), p, route.Params{route.Route: "review/product/list"})
	require.NoError(t, err)
	assert.Equal(t, "reviews", got)
	assert.NotContains(t, captured, route.Route)
	assert.Equal(t, int64(3), captured[route.ID])
}

func TestURL_KeepsCallerQuery(t *testing.T) {
	h := newHarness(t, false)
	query := map[string]string{"utm_source": "feed"}
	h.gen.On("SetScope", int64(1))
	h.gen.On("URL", mock.Anything, "", route.Params{route.Direct: "p.html", route.Query: query}).Return("ok", nil).Once()

	_, err := h.builder.URL(context.Background(), withPath(&model.Product{Store: 1}, "p.html"), route.Params{route.Query: query})
	require.NoError(t, err)
	h.gen.AssertExpectations(t)
}

func TestURL_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")

	t.Run("finder", func(t *testing.T) {
		h := newHarness(t, false)
		h.finder.ExpectedCalls = nil
		h.finder.On("FindOneByData", mock.Anything, mock.Anything).Return(nil, boom)
		_, err := h.builder.URL(context.Background(), &model.Product{EntityID: 1, Store: 1}, nil)
		assert.Same(t, boom, err)
	})

	t.Run("store", func(t *testing.T) {
		h := newHarness(t, false)
		h.stores.ExpectedCalls = nil
		h.stores.On("CurrentStore", mock.Anything).Return(model.Store{}, boom)
		_, err := h.builder.URL(context.Background(), withPath(&model.Product{Store: 1}, "p.html"), nil)
		assert.Same(t, boom, err)
	})

	t.Run("generator", func(t *testing.T) {
		h := newHarness(t, false)
		h.gen.On("SetScope", int64(1))
		h.gen.On("URL", mock.Anything, mock.Anything, mock.Anything).Return("", boom)
		_, err := h.builder.URL(context.Background(), withPath(&model.Product{Store: 1}, "p.html"), nil)
		assert.Same(t, boom, err)
		assert.Empty(t, h.sink.sources)
	})

	t.Run("invalid scope", func(t *testing.T) {
		h := newHarness(t, false)
		_, err := h.builder.URL(context.Background(), withPath(&model.Product{Store: 1}, "p.html"), route.Params{route.Scope: "default"})
		assert.Error(t, err)
	})
}
