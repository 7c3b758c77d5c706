package model

// Product is the catalog entity seen by the type registry and the URL
// builder. Only the request path is mutable once built.
type Product struct {
	EntityID   int64
	Type       string
	Store      int64
	Category   int64
	Key        string
	BasePrice  float64
	NoCategory bool // do not use the category id in URLs

	requestPath string
	resolved    bool
}

// ID returns the entity id, 0 when the product is not persisted.
func (p *Product) ID() int64 { return p.EntityID }

// TypeID returns the product type tag, e.g. "simple".
func (p *Product) TypeID() string { return p.Type }

// StoreID returns the store the product was loaded for.
func (p *Product) StoreID() int64 { return p.Store }

// CategoryID returns the category the product is browsed in, 0 if none.
func (p *Product) CategoryID() int64 { return p.Category }

// DoNotUseCategoryID reports whether category ids are suppressed in URLs.
func (p *Product) DoNotUseCategoryID() bool { return p.NoCategory }

// URLKey returns the SEO url key.
func (p *Product) URLKey() string { return p.Key }

// Price returns the base price.
func (p *Product) Price() float64 { return p.BasePrice }

// RequestPath returns the stored request path. resolved is false while no
// lookup has happened yet; a resolved empty path means no rewrite exists.
func (p *Product) RequestPath() (path string, resolved bool) {
	return p.requestPath, p.resolved
}

// SetRequestPath stores a resolved request path. The empty string records
// that no rewrite exists.
func (p *Product) SetRequestPath(path string) {
	p.requestPath = path
	p.resolved = true
}

// UnsetRequestPath forgets any stored path so the next URL build looks it up
// again.
func (p *Product) UnsetRequestPath() {
	p.requestPath = ""
	p.resolved = false
}
