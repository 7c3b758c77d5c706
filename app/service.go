package app

import (
	"fmt"

	"github.com/kilianp07/catalog/app/plugins"
	"github.com/kilianp07/catalog/config"
	coremetrics "github.com/kilianp07/catalog/core/metrics"
	"github.com/kilianp07/catalog/core/pricing"
	"github.com/kilianp07/catalog/core/producttype"
	"github.com/kilianp07/catalog/core/producturl"
	"github.com/kilianp07/catalog/infra/i18n"
	"github.com/kilianp07/catalog/infra/logger"
	_ "github.com/kilianp07/catalog/infra/metrics" // registers the prometheus sink
	"github.com/kilianp07/catalog/infra/rewrite"
	"github.com/kilianp07/catalog/infra/session"
	"github.com/kilianp07/catalog/infra/store"
	"github.com/kilianp07/catalog/infra/translit"
	"github.com/kilianp07/catalog/infra/urlsvc"
)

// Service wires the product type registry and the product URL builder.
type Service struct {
	Types    *producttype.Registry
	URLs     *producturl.Builder
	Stores   *store.Resolver
	Rewrites *rewrite.SQLiteFinder // nil unless rewrites are enabled
	log      logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.NewWithFormat("service", cfg.Logging.Level, cfg.Logging.Format)

	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	loc, err := i18n.New(cfg.I18n)
	if err != nil {
		return nil, fmt.Errorf("localizer: %w", err)
	}
	types, err := producttype.New(producttype.Deps{
		Source:      producttype.StaticSource(cfg.ProductTypes),
		Handlers:    plugins.Handlers,
		PriceModels: plugins.NamedPriceModels{Pool: plugins.PriceModels, Named: cfg.PriceModels},
		PriceInfo:   pricing.InfoFactory{},
		Localizer:   loc,
		Logger:      logger.NewWithFormat("producttype", cfg.Logging.Level, cfg.Logging.Format),
		Metrics:     sink,
	})
	if err != nil {
		return nil, fmt.Errorf("type registry: %w", err)
	}

	stores, err := store.New(cfg.Stores, cfg.URL.CurrentStore)
	if err != nil {
		return nil, fmt.Errorf("stores: %w", err)
	}
	deps := producturl.Deps{
		URLs: urlsvc.NewFactory(stores, session.New(cfg.URL.UseSID), urlsvc.Options{
			StoreCodeInURL: cfg.URL.StoreCodeInURL,
		}),
		Stores:          stores,
		Filter:          translit.New(cfg.URL.Convert),
		UseCategoryPath: cfg.URL.UseCategoryPath,
		Logger:          logger.NewWithFormat("producturl", cfg.Logging.Level, cfg.Logging.Format),
		Metrics:         sink,
	}
	svc := &Service{Types: types, Stores: stores, log: logg}
	if cfg.Rewrite.Enabled {
		finder, err := rewrite.NewSQLiteFinder(cfg.Rewrite.Path)
		if err != nil {
			return nil, fmt.Errorf("rewrite store: %w", err)
		}
		svc.Rewrites = finder
		deps.Rewrites = finder
	}
	urls, err := producturl.New(deps)
	if err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("url builder: %w", err)
	}
	svc.URLs = urls
	logg.Infof("catalog ready: %d product types configured, %d stores", len(cfg.ProductTypes), len(cfg.Stores))
	return svc, nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.Rewrites == nil {
		return nil
	}
	return s.Rewrites.Close()
}
