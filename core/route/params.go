// Package route holds the route parameter map exchanged between the product
// URL builder and the generic URL service, and the reserved keys it uses.
package route

import (
	"maps"
	"strings"

	"github.com/spf13/cast"
)

// Reserved keys. They steer URL generation and never become path segments.
const (
	Scope          = "_scope"
	Direct         = "_direct"
	Query          = "_query"
	ScopeToURL     = "_scope_to_url"
	NoSID          = "_nosid"
	IgnoreCategory = "_ignore_category"
	Route          = "_route"
)

// Synthetic keys added for the product view route.
const (
	ID       = "id"
	URLKey   = "s"
	Category = "category"
)

// ProductView is the canonical product page route.
const ProductView = "catalog/product/view"

// Params maps a route parameter name to its value.
type Params map[string]any

// Clone returns a shallow copy. A nil receiver yields an empty map.
func (p Params) Clone() Params {
	out := make(Params, len(p)+4)
	maps.Copy(out, p)
	return out
}

// Has reports whether key is present, whatever its value.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Bool reads key as a flag. Missing or unparsable values are false.
func (p Params) Bool(key string) bool {
	v, ok := p[key]
	if !ok {
		return false
	}
	b, err := cast.ToBoolE(v)
	return err == nil && b
}

// Int64 reads key as an integer.
func (p Params) Int64(key string) (int64, bool) {
	v, ok := p[key]
	if !ok || v == nil {
		return 0, false
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// String reads key as a string.
func (p Params) String(key string) string {
	return cast.ToString(p[key])
}

// QueryValues returns the _query entry as a string map.
func (p Params) QueryValues() map[string]string {
	v, ok := p[Query]
	if !ok || v == nil {
		return nil
	}
	return cast.ToStringMapString(v)
}

// IsReserved reports whether key is a control key rather than a path segment.
func IsReserved(key string) bool {
	return strings.HasPrefix(key, "_")
}
