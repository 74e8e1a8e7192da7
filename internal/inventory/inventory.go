// Package inventory loads the vendor inventory feed into records keyed by
// vendor SKU, resolving retail identity through the vendor mapping,
// deduplicating conflicting UPCs, and merging duplicate SKU rows.
package inventory

import (
	"strconv"
	"strings"

	"github.com/skuforge/skuforge/internal/tabular"
	"github.com/skuforge/skuforge/internal/vendors"
)

// Feed column names.
const (
	colSKU      = "SKU"
	colCost     = "Cost"
	colPrice    = "Price"
	colQuantity = "Quantity"
	colQty1     = "Qty_1"
	colWeight   = "Weight"
	colLocation = "Location_1"
	colUPC      = "UPC"
)

// Record is one inventory item keyed by vendor SKU.
type Record struct {
	VendorSKU string
	RetailSKU string
	Cost      float64
	Price     float64
	Weight    float64
	Qty       int
	UPC       string
	Locations *Locations
}

// Table holds inventory records in feed order.
type Table struct {
	records map[string]*Record
	order   []string
}

// Get returns the record for a vendor SKU.
func (t *Table) Get(vendorSKU string) (*Record, bool) {
	rec, ok := t.records[vendorSKU]
	return rec, ok
}

// Has reports whether a vendor SKU is a known inventory key.
func (t *Table) Has(vendorSKU string) bool {
	_, ok := t.records[vendorSKU]
	return ok
}

// VendorSKUs returns the vendor SKUs in first-seen feed order.
func (t *Table) VendorSKUs() []string {
	return t.order
}

// Len returns the number of distinct inventory records.
func (t *Table) Len() int {
	return len(t.order)
}

// Report carries run-level counters for operator visibility. Nothing
// downstream consumes it; recoveries stay silent to the pipeline itself.
type Report struct {
	Rows            int      `json:"rows" yaml:"rows"`
	SkippedRows     int      `json:"skipped_rows" yaml:"skipped_rows"`
	DuplicateRows   int      `json:"duplicate_rows" yaml:"duplicate_rows"`
	DuplicateSKUs   []string `json:"duplicate_skus,omitempty" yaml:"duplicate_skus,omitempty"`
	UnmappedSKUs    []string `json:"unmapped_skus,omitempty" yaml:"unmapped_skus,omitempty"`
	ConflictingUPCs []string `json:"conflicting_upcs,omitempty" yaml:"conflicting_upcs,omitempty"`
}

// parsedRow is an inventory feed row after numeric coercion.
type parsedRow struct {
	vendorSKU string
	cost      float64
	price     float64
	weight    float64
	qty       int
	locQty    int
	location  string
	upc       string
}

// Load builds the inventory table from feed rows. Rows with an empty SKU are
// skipped. Numeric fields parse with a failure-means-zero policy and
// negative quantities clamp to zero. Rows sharing a vendor SKU merge: the
// top-level quantity is a running sum across all same-SKU rows while each
// location keeps the most recently seen per-location quantity.
func Load(rows []tabular.Row, mapping vendors.Mapping) (*Table, *Report) {
	report := &Report{Rows: len(rows)}

	parsed := make([]parsedRow, 0, len(rows))
	for _, row := range rows {
		sku := strings.TrimSpace(row.Get(colSKU))
		if sku == "" {
			report.SkippedRows++
			continue
		}
		parsed = append(parsed, parsedRow{
			vendorSKU: sku,
			cost:      parseFloat(row.Get(colCost)),
			price:     parseFloat(row.Get(colPrice)),
			weight:    parseFloat(row.Get(colWeight)),
			qty:       clampQty(parseInt(row.Get(colQuantity))),
			locQty:    clampQty(parseInt(row.Get(colQty1))),
			location:  strings.TrimSpace(row.Get(colLocation)),
			upc:       strings.TrimSpace(row.Get(colUPC)),
		})
	}

	rewriteConflictingUPCs(parsed, report)

	table := &Table{records: make(map[string]*Record)}
	unmapped := make(map[string]bool)
	duplicates := make(map[string]bool)

	for _, row := range parsed {
		if rec, seen := table.records[row.vendorSKU]; seen {
			report.DuplicateRows++
			if !duplicates[row.vendorSKU] {
				duplicates[row.vendorSKU] = true
				report.DuplicateSKUs = append(report.DuplicateSKUs, row.vendorSKU)
			}
			rec.Qty += row.qty
			if row.location != "" {
				rec.Locations.Set(row.location, row.locQty)
			}
			continue
		}

		retailSKU, ok := mapping.Retail(row.vendorSKU)
		if !ok {
			// Self-mapping fallback: the feed SKU serves as both identities.
			retailSKU = row.vendorSKU
			if !unmapped[row.vendorSKU] {
				unmapped[row.vendorSKU] = true
				report.UnmappedSKUs = append(report.UnmappedSKUs, row.vendorSKU)
			}
		}

		rec := &Record{
			VendorSKU: row.vendorSKU,
			RetailSKU: retailSKU,
			Cost:      row.cost,
			Price:     row.price,
			Weight:    row.weight,
			Qty:       row.qty,
			UPC:       row.upc,
			Locations: NewLocations(),
		}
		if row.location != "" {
			rec.Locations.Set(row.location, row.locQty)
		}

		table.records[row.vendorSKU] = rec
		table.order = append(table.order, row.vendorSKU)
	}

	return table, report
}

// rewriteConflictingUPCs makes UPCs unique across distinct vendor SKUs
// without dropping rows. The vendor SKU that claimed a UPC first keeps it;
// the Nth colliding occurrence in feed order is rewritten to "{upc}{N}"
// (N >= 2). A single ordered pre-pass records first-seen owners, so no
// re-scan per conflict is needed.
func rewriteConflictingUPCs(parsed []parsedRow, report *Report) {
	firstOwner := make(map[string]string)
	conflicting := make(map[string]bool)

	for _, row := range parsed {
		if row.upc == "" {
			continue
		}
		owner, seen := firstOwner[row.upc]
		if !seen {
			firstOwner[row.upc] = row.vendorSKU
			continue
		}
		if owner != row.vendorSKU && !conflicting[row.upc] {
			conflicting[row.upc] = true
			report.ConflictingUPCs = append(report.ConflictingUPCs, row.upc)
		}
	}

	occurrences := make(map[string]int)
	for i := range parsed {
		upc := parsed[i].upc
		if upc == "" || !conflicting[upc] {
			continue
		}
		if parsed[i].vendorSKU == firstOwner[upc] {
			continue
		}
		occurrences[upc]++
		parsed[i].upc = upc + strconv.Itoa(occurrences[upc]+1)
	}
}

// parseFloat coerces a feed value to a float with a parse-failure-means-zero
// policy.
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// parseInt coerces a feed value to an int, accepting decimal notation the
// way storefront exports write whole quantities ("3.0").
func parseInt(s string) int {
	return int(parseFloat(s))
}

func clampQty(qty int) int {
	if qty < 0 {
		return 0
	}
	return qty
}
