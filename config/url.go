package config

import "errors"

// URLConfig controls how product URLs are built.
type URLConfig struct {
	// CurrentStore is the store id URLs are built for by default.
	CurrentStore int64 `json:"current_store"`
	// UseCategoryPath includes the category in rewrite lookups.
	UseCategoryPath bool `json:"use_category_path"`
	// StoreCodeInURL prefixes paths with the store code.
	StoreCodeInURL bool `json:"store_code_in_url"`
	// UseSID appends the session id to URLs that allow it.
	UseSID bool `json:"use_sid"`
	// Convert extends the transliteration table used for URL keys.
	Convert map[string]string `json:"convert"`
}

// RewriteConfig locates the URL rewrite database.
type RewriteConfig struct {
	// Enabled turns rewrite lookups on. Without it every product URL is
	// synthesized from the view route.
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *RewriteConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "rewrites.db"
	}
}

// Validate checks mandatory fields.
func (c RewriteConfig) Validate() error {
	if c.Enabled && c.Path == "" {
		return errors.New("rewrite.path is required when rewrites are enabled")
	}
	return nil
}
