package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/catalog/app"
	"github.com/kilianp07/catalog/config"
	"github.com/kilianp07/catalog/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:          "catalog",
	Short:        "Catalog product types and product URLs",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// withService loads the configuration, builds the service and hands it to fn.
func withService(fn func(cfg *config.Config, svc *app.Service) error) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return fn(cfg, svc)
}
