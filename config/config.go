package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/catalog/core/factory"
	"github.com/kilianp07/catalog/core/metrics"
	"github.com/kilianp07/catalog/core/model"
	"github.com/kilianp07/catalog/core/producttype"
	"github.com/kilianp07/catalog/infra/i18n"
)

// Config is the application configuration. PriceModels names configured
// price models that product types can reference through price_model.
type Config struct {
	ProductTypes []producttype.Definition        `json:"product_types"`
	PriceModels  map[string]factory.ModuleConfig `json:"price_models"`
	Stores       []model.Store                   `json:"stores"`
	URL          URLConfig                       `json:"url"`
	I18n         i18n.Config                     `json:"i18n"`
	Rewrite      RewriteConfig                   `json:"rewrite"`
	Metrics      metrics.Config                  `json:"metrics"`
	Logging      LoggingConfig                   `json:"logging"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultStore is used when no store is configured.
var DefaultStore = model.Store{ID: 1, Code: "default", BaseURL: "http://localhost/"}

// SetDefaults fills every section.
func (c *Config) SetDefaults() {
	if len(c.ProductTypes) == 0 {
		c.ProductTypes = []producttype.Definition{{ID: producttype.TypeSimple, Label: "Simple Product"}}
	}
	if len(c.Stores) == 0 {
		c.Stores = []model.Store{DefaultStore}
	}
	if c.URL.CurrentStore == 0 {
		c.URL.CurrentStore = c.Stores[0].ID
	}
	c.Rewrite.SetDefaults()
	c.Logging.SetDefaults()
}

// Validate checks cross-section consistency. Product type entries are not
// checked here; the registry skips blank and duplicate ids when it loads.
func (c Config) Validate() error {
	for name, m := range c.PriceModels {
		if m.Type == "" {
			return fmt.Errorf("price_models.%s: type is required", name)
		}
	}
	found := false
	for i, s := range c.Stores {
		if s.BaseURL == "" {
			return fmt.Errorf("stores[%d]: base_url is required", i)
		}
		if s.ID == c.URL.CurrentStore {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("url.current_store %d is not a configured store", c.URL.CurrentStore)
	}
	return errors.Join(c.Rewrite.Validate(), c.Logging.Validate())
}
