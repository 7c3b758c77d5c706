package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/catalog/app"
	"github.com/kilianp07/catalog/config"
	"github.com/kilianp07/catalog/core/model"
	"github.com/kilianp07/catalog/core/route"
)

var urlFlags struct {
	id             int64
	store          int64
	category       int64
	key            string
	requestPath    string
	noCategory     bool
	scope          int64
	inStore        bool
	ignoreCategory bool
}

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Build the URL of a product",
	RunE:  runURL,
}

var urlKeyCmd = &cobra.Command{
	Use:   "urlkey <text>",
	Short: "Format text as a product url key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(_ *config.Config, svc *app.Service) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), svc.URLs.FormatURLKey(args[0]))
			return err
		})
	},
}

func init() {
	f := urlCmd.Flags()
	f.Int64Var(&urlFlags.id, "id", 0, "product id")
	f.Int64Var(&urlFlags.store, "store", 0, "product store id (current store when 0)")
	f.Int64Var(&urlFlags.category, "category", 0, "category id")
	f.StringVar(&urlFlags.key, "key", "", "product url key")
	f.StringVar(&urlFlags.requestPath, "request-path", "", "known request path")
	f.BoolVar(&urlFlags.noCategory, "no-category", false, "do not use the category id")
	f.Int64Var(&urlFlags.scope, "scope", 0, "build the URL for another store")
	f.BoolVar(&urlFlags.inStore, "in-store", false, "always make the store explicit")
	f.BoolVar(&urlFlags.ignoreCategory, "ignore-category", false, "ignore category and stored path")
	rootCmd.AddCommand(urlCmd, urlKeyCmd)
}

func runURL(cmd *cobra.Command, args []string) error {
	return withService(func(cfg *config.Config, svc *app.Service) error {
		p := &model.Product{
			EntityID:   urlFlags.id,
			Store:      urlFlags.store,
			Category:   urlFlags.category,
			Key:        urlFlags.key,
			NoCategory: urlFlags.noCategory,
		}
		if p.Store == 0 {
			p.Store = cfg.URL.CurrentStore
		}
		if urlFlags.requestPath != "" {
			p.SetRequestPath(urlFlags.requestPath)
		}
		params := route.Params{route.NoSID: true}
		if urlFlags.scope != 0 {
			params[route.Scope] = urlFlags.scope
		}
		if urlFlags.ignoreCategory {
			params[route.IgnoreCategory] = true
		}
		build := svc.URLs.URL
		if urlFlags.inStore {
			build = svc.URLs.URLInStore
		}
		u, err := build(cmd.Context(), p, params)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), u)
		return err
	})
}
