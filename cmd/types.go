package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/catalog/app"
	"github.com/kilianp07/catalog/config"
	"github.com/kilianp07/catalog/core/producttype"
	"github.com/kilianp07/catalog/pkg/export"
)

var (
	typesView   string
	typesFormat string
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List product types",
	Long: `List the configured product types.

Views:
  options    id and label in declaration order (default)
  priority   indexing order, simple first
  composite  ids of composite types`,
	RunE: runTypes,
}

func init() {
	typesCmd.Flags().StringVar(&typesView, "view", "options", "options, priority or composite")
	typesCmd.Flags().StringVar(&typesFormat, "format", "text", "text, json or csv (json and csv list every descriptor)")
	rootCmd.AddCommand(typesCmd)
}

func runTypes(cmd *cobra.Command, args []string) error {
	return withService(func(_ *config.Config, svc *app.Service) error {
		out := cmd.OutOrStdout()
		switch strings.ToLower(typesFormat) {
		case "json", "csv":
			return exportTypes(out, svc, typesFormat)
		case "text":
		default:
			return fmt.Errorf("unknown format %q", typesFormat)
		}
		switch strings.ToLower(typesView) {
		case "options":
			for _, o := range svc.Types.Options() {
				fmt.Fprintf(out, "%s\t%s\n", o.Value, o.Label)
			}
		case "priority":
			for pair := svc.Types.TypesByPriority().Oldest(); pair != nil; pair = pair.Next() {
				fmt.Fprintf(out, "%s\t%d\n", pair.Key, pair.Value.IndexPriority)
			}
		case "composite":
			for _, id := range svc.Types.CompositeTypes() {
				fmt.Fprintln(out, id)
			}
		default:
			return fmt.Errorf("unknown view %q", typesView)
		}
		return nil
	})
}

// exportTypes writes the types in priority order when --view priority is
// set, declaration order otherwise.
func exportTypes(w io.Writer, svc *app.Service, format string) error {
	types := svc.Types.Types()
	if strings.EqualFold(typesView, "priority") {
		types = svc.Types.TypesByPriority()
	}
	list := make([]producttype.Descriptor, 0, types.Len())
	for pair := types.Oldest(); pair != nil; pair = pair.Next() {
		list = append(list, pair.Value)
	}
	if strings.EqualFold(format, "csv") {
		return export.WriteCSV(w, list)
	}
	return export.WriteJSON(w, list)
}
