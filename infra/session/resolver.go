// Package session decides whether session ids travel in generated URLs.
package session

import (
	"sync"

	"github.com/google/uuid"
)

// Resolver answers whether URLs carry the session id and hands out that id.
type Resolver struct {
	useSID bool

	once sync.Once
	id   string
}

// New creates a Resolver. useSID comes from configuration.
func New(useSID bool) *Resolver {
	return &Resolver{useSID: useSID}
}

// UseSessionInURL reports whether the session id is appended to URLs.
func (r *Resolver) UseSessionInURL() bool { return r.useSID }

// SessionID returns the session id, generated on first use.
func (r *Resolver) SessionID() string {
	r.once.Do(func() { r.id = uuid.NewString() })
	return r.id
}
