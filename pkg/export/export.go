// Package export writes product type listings in machine readable formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/kilianp07/catalog/core/producttype"
)

// WriteJSON writes the descriptors to w as a JSON array.
func WriteJSON(w io.Writer, types []producttype.Descriptor) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(types)
}

// WriteCSV writes one row per descriptor with a header line.
func WriteCSV(w io.Writer, types []producttype.Descriptor) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "label", "model", "composite", "price_model", "index_priority"}); err != nil {
		return err
	}
	for _, d := range types {
		rec := []string{
			d.ID,
			d.Label,
			d.ModelClass(),
			strconv.FormatBool(d.Composite),
			d.PriceModelClass(),
			strconv.Itoa(d.IndexPriority),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
