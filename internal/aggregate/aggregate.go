// Package aggregate groups catalog records by canonical identity, elects a
// representative single unit per group, folds pack quantities into it, and
// materializes inventory never touched by the catalog so nothing is
// silently dropped.
package aggregate

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/skuforge/skuforge/internal/catalog"
	"github.com/skuforge/skuforge/internal/inventory"
)

// DefaultMarkup is the price markup applied to orphaned inventory rows,
// which carry a cost but no storefront price.
const DefaultMarkup = 1.5

// Output is the final reconciled row set plus run counters.
type Output struct {
	// Records are the retained rows in emit order: catalog-derived rows in
	// input-derived order followed by synthesized orphans in inventory
	// load order.
	Records []*catalog.Record

	Groups      int
	Standalones int
	Orphans     int
	Dropped     int
}

// unit is one emit-ordered element: a canonical group or a standalone record.
type unit struct {
	members    []*catalog.Record
	standalone bool
}

// Aggregate runs grouping, representative election, quantity folding, the
// inventory-backing retention filter, and orphan materialization. markup
// prices orphaned rows from their cost; pass DefaultMarkup unless
// configured otherwise.
func Aggregate(c *catalog.Catalog, inv *inventory.Table, markup float64) *Output {
	out := &Output{}
	if markup <= 0 {
		markup = DefaultMarkup
	}

	// Units form in first-appearance order over the simples so output
	// order is derived from input order, never map iteration.
	var units []*unit
	groups := make(map[string]*unit)
	for _, r := range c.Simples {
		if r.CanonicalName == "" {
			units = append(units, &unit{members: []*catalog.Record{r}, standalone: true})
			continue
		}
		g, ok := groups[r.CanonicalName]
		if !ok {
			g = &unit{}
			groups[r.CanonicalName] = g
			units = append(units, g)
		}
		g.members = append(g.members, r)
	}

	for _, u := range units {
		if u.standalone {
			out.Standalones++
		} else {
			out.Groups++
			foldGroup(u.members, inv)
		}

		for _, r := range u.members {
			if retained(r, inv) {
				out.Records = append(out.Records, r)
			} else {
				out.Dropped++
			}
		}
	}

	out.materializeOrphans(c, inv, markup)
	return out
}

// foldGroup elects the representative single and folds the group's
// quantities into it. Preference: a single-pack member backed by inventory,
// then any single-pack member. Without one, the group keeps per-member
// quantities and multi-packs stay unlinked.
func foldGroup(members []*catalog.Record, inv *inventory.Table) {
	var rep *catalog.Record
	for _, m := range members {
		if m.PackSize == 1 && inv.Has(m.SKU) {
			rep = m
			break
		}
	}
	if rep == nil {
		for _, m := range members {
			if m.PackSize == 1 {
				rep = m
				break
			}
		}
	}
	if rep == nil {
		return
	}

	totalSingles := 0
	for _, m := range members {
		totalSingles += m.PackSize * m.OriginalQty
	}

	for _, m := range members {
		if m == rep {
			m.Qty = totalSingles
		} else {
			m.Qty = 0
		}
		if m.PackSize > 1 {
			m.SingleProductSKU = rep.SKU
		}
	}
}

// retained applies the inventory-backing rule: a row is emitted only when
// it is a known inventory SKU itself, or it is a multi-pack whose single
// resolves to one. Packaging variants with no real inventory behind them
// are dropped.
func retained(r *catalog.Record, inv *inventory.Table) bool {
	if inv.Has(r.SKU) {
		return true
	}
	return r.PackSize > 1 && r.SingleProductSKU != "" && inv.Has(r.SingleProductSKU)
}

// materializeOrphans synthesizes a minimal standalone row for every
// inventory record no catalog row touched, in inventory load order.
func (out *Output) materializeOrphans(c *catalog.Catalog, inv *inventory.Table, markup float64) {
	for _, vendorSKU := range inv.VendorSKUs() {
		if c.Processed[vendorSKU] {
			continue
		}
		rec, _ := inv.Get(vendorSKU)
		out.Records = append(out.Records, orphanRecord(rec, markup))
		out.Orphans++
	}
}

// orphanRecord builds the placeholder row for an untouched inventory record.
func orphanRecord(rec *inventory.Record, markup float64) *catalog.Record {
	return &catalog.Record{
		SKU:         rec.VendorSKU,
		RetailSKU:   rec.RetailSKU,
		ProductType: "simple",
		Name:        placeholderName(rec.VendorSKU),
		Cost:        formatFloat(rec.Cost),
		Price:       formatFloat(rec.Cost * markup),
		Weight:      formatFloat(rec.Weight),
		Qty:         rec.Qty,
		OriginalQty: rec.Qty,
		UPC:         rec.UPC,
		Locations:   rec.Locations,
		PackSize:    1,
	}
}

var titleCaser = cases.Title(language.English)

// placeholderName derives a readable product name from a vendor SKU.
func placeholderName(vendorSKU string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(vendorSKU)
	return titleCaser.String(strings.ToLower(words))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
