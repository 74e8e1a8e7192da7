// Package catalog splits storefront catalog rows into parent and simple
// product records, resolves each row's identity against the inventory
// table, inherits missing child attributes from parents, and derives the
// canonical identity used for pack-size grouping.
package catalog

import (
	"strconv"
	"strings"

	"github.com/skuforge/skuforge/internal/inventory"
	"github.com/skuforge/skuforge/internal/tabular"
)

// Catalog is the partitioned catalog for one pipeline run.
type Catalog struct {
	// Simples are sellable product records in feed order.
	Simples []*Record

	// Parents holds configurable (non-simple) records keyed by SKU. They
	// are fallback attribute sources only and are never emitted directly.
	Parents map[string]*Record

	// Processed tracks the inventory vendor SKUs touched by a catalog row,
	// so untouched inventory can be materialized as orphans later.
	Processed map[string]bool
}

// inheritedFields are child attributes filled from the parent when the
// child's value is empty after trimming. Applied once, not recursively.
var inheritedFields = []struct {
	get func(*Record) string
	set func(*Record, string)
}{
	{func(r *Record) string { return r.Category }, func(r *Record, v string) { r.Category = v }},
	{func(r *Record) string { return r.Flavor }, func(r *Record, v string) { r.Flavor = v }},
	{func(r *Record) string { return r.Volume }, func(r *Record, v string) { r.Volume = v }},
	{func(r *Record) string { return r.NicotineLevel }, func(r *Record, v string) { r.NicotineLevel = v }},
	{func(r *Record) string { return r.UnitPerPack }, func(r *Record, v string) { r.UnitPerPack = v }},
	{func(r *Record) string { return r.PuffCounts }, func(r *Record, v string) { r.PuffCounts = v }},
	{func(r *Record) string { return r.Resistance }, func(r *Record, v string) { r.Resistance = v }},
}

// Split partitions catalog feed rows into parents and simples, resolving
// each row against inventory first. A row matches inventory either directly
// by vendor SKU or through the first inventory record (in load order) whose
// retail SKU equals the row's SKU; on match the row adopts the record's
// cost, quantity, UPC, weight, retail SKU, and locations, and its SKU is
// rewritten to the vendor SKU identity. Unmatched rows carry zero quantity.
func Split(rows []tabular.Row, inv *inventory.Table) *Catalog {
	c := &Catalog{
		Parents:   make(map[string]*Record),
		Processed: make(map[string]bool),
	}

	// First inventory record per retail SKU, in load order. Later records
	// sharing a retail SKU are shadowed; this mirrors the resolver's
	// first-match-wins scan and is left ambiguous on purpose.
	byRetail := make(map[string]string)
	for _, vendorSKU := range inv.VendorSKUs() {
		rec, _ := inv.Get(vendorSKU)
		if rec.RetailSKU == "" {
			continue
		}
		if _, seen := byRetail[rec.RetailSKU]; !seen {
			byRetail[rec.RetailSKU] = vendorSKU
		}
	}

	for _, row := range rows {
		r := fromRow(row)

		rec, ok := inv.Get(r.SKU)
		if !ok {
			if vendorSKU, found := byRetail[r.SKU]; found {
				rec, ok = inv.Get(vendorSKU)
			}
		}

		if ok {
			r.adopt(rec)
			c.Processed[rec.VendorSKU] = true
		} else {
			r.Qty = 0
			r.Locations = inventory.NewLocations()
		}

		if r.IsSimple() {
			c.Simples = append(c.Simples, r)
		} else {
			c.Parents[r.SKU] = r
		}
	}

	c.inherit()
	return c
}

// adopt overwrites the record's joined fields from an inventory record and
// rewrites its SKU to the vendor SKU identity, the canonical key from here on.
func (r *Record) adopt(rec *inventory.Record) {
	r.SKU = rec.VendorSKU
	r.RetailSKU = rec.RetailSKU
	r.UPC = rec.UPC
	r.Qty = rec.Qty
	r.Cost = formatFloat(rec.Cost)
	r.Weight = formatFloat(rec.Weight)
	r.Locations = rec.Locations
}

// inherit copies parent attribute values into simple records whose own
// values are empty after trimming.
func (c *Catalog) inherit() {
	for _, r := range c.Simples {
		parent, ok := c.Parents[r.ParentSKU]
		if !ok {
			continue
		}
		for _, field := range inheritedFields {
			if strings.TrimSpace(field.get(r)) != "" {
				continue
			}
			if parentVal := strings.TrimSpace(field.get(parent)); parentVal != "" {
				field.set(r, parentVal)
			}
		}
	}
}

// Canonicalize derives pack size, original quantity, and the canonical
// identity key for every simple record.
func (c *Catalog) Canonicalize() {
	for _, r := range c.Simples {
		r.PackSize = ExtractPackSize(r.Name, r.UnitPerPack)
		r.OriginalQty = r.Qty

		base := r.ParentSKU
		if strings.TrimSpace(base) == "" {
			base = r.Name
		}
		r.CanonicalName = CanonicalName(r.Category, r.Brand, base,
			r.Volume, r.NicotineLevel, r.Flavor, r.Resistance)
	}
}

// formatFloat renders an inventory float the way the output file carries it.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
