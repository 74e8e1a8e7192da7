// Package vendors resolves vendor SKU / retail SKU identity from the
// vendor-mapping feed. The feed covers every vendor the storefront buys
// from; a run is always scoped to exactly one of them.
package vendors

import (
	"strings"

	"github.com/skuforge/skuforge/internal/tabular"
)

// Feed column names.
const (
	colVendorName  = "vendor_name"
	colVendorSKU   = "vendor_sku"
	colRetailerSKU = "retailer_sku"
)

// Mapping maps a vendor SKU to the retail SKU the storefront catalog uses.
// It is immutable after construction.
type Mapping map[string]string

// Resolve builds the mapping from vendor-mapping feed rows, restricted to
// rows whose vendor_name equals the given vendor. Rows with an empty SKU on
// either side are skipped silently. A vendor_sku appearing more than once
// keeps the last row's retailer_sku; the feed is assumed injective, and this
// overwrite behavior is deliberate rather than enforced.
func Resolve(rows []tabular.Row, vendor string) Mapping {
	mapping := make(Mapping)

	for _, row := range rows {
		if strings.TrimSpace(row.Get(colVendorName)) != vendor {
			continue
		}

		vendorSKU := strings.TrimSpace(row.Get(colVendorSKU))
		retailSKU := strings.TrimSpace(row.Get(colRetailerSKU))
		if vendorSKU == "" || retailSKU == "" {
			continue
		}

		mapping[vendorSKU] = retailSKU
	}

	return mapping
}

// Retail returns the retail SKU for a vendor SKU and whether it was mapped.
func (m Mapping) Retail(vendorSKU string) (string, bool) {
	retail, ok := m[vendorSKU]
	return retail, ok
}
