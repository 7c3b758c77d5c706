package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/catalog/config"
	corerewrite "github.com/kilianp07/catalog/core/rewrite"
	"github.com/kilianp07/catalog/core/route"
	"github.com/kilianp07/catalog/infra/rewrite"
)

var rewriteAdd corerewrite.Rewrite

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "URL rewrite commands",
}

var rewriteAddCmd = &cobra.Command{
	Use:   "add <request-path>",
	Short: "Store a product URL rewrite",
	Args:  cobra.ExactArgs(1),
	RunE:  runRewriteAdd,
}

func init() {
	f := rewriteAddCmd.Flags()
	f.Int64Var(&rewriteAdd.EntityID, "id", 0, "product id")
	f.Int64Var(&rewriteAdd.StoreID, "store", 0, "store id (current store when 0)")
	f.Int64Var(&rewriteAdd.CategoryID, "category", 0, "category id")
	f.StringVar(&rewriteAdd.TargetPath, "target", "", "target path (product view route when empty)")
	f.IntVar(&rewriteAdd.RedirectType, "redirect", 0, "redirect type, 0 for none")
	_ = rewriteAddCmd.MarkFlagRequired("id")
	rewriteCmd.AddCommand(rewriteAddCmd)
	rootCmd.AddCommand(rewriteCmd)
}

func runRewriteAdd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	finder, err := rewrite.NewSQLiteFinder(cfg.Rewrite.Path)
	if err != nil {
		return fmt.Errorf("rewrite store: %w", err)
	}
	defer func() {
		if err := finder.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error while closing rewrite store: %v\n", err)
		}
	}()

	rw := rewriteAdd
	rw.EntityType = corerewrite.EntityProduct
	rw.RequestPath = args[0]
	if rw.StoreID == 0 {
		rw.StoreID = cfg.URL.CurrentStore
	}
	if rw.TargetPath == "" {
		rw.TargetPath = fmt.Sprintf("%s/id/%d", route.ProductView, rw.EntityID)
		if rw.CategoryID != 0 {
			rw.TargetPath += fmt.Sprintf("/category/%d", rw.CategoryID)
		}
	}
	saved, err := finder.Add(cmd.Context(), rw)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "rewrite %d: %s -> %s\n", saved.ID, saved.RequestPath, saved.TargetPath)
	return err
}
