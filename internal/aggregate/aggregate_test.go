package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skuforge/skuforge/internal/catalog"
	"github.com/skuforge/skuforge/internal/inventory"
	"github.com/skuforge/skuforge/internal/tabular"
	"github.com/skuforge/skuforge/internal/vendors"
)

func invTable(t *testing.T, skus ...string) *inventory.Table {
	t.Helper()
	rows := make([]tabular.Row, 0, len(skus))
	for _, sku := range skus {
		rows = append(rows, tabular.Row{
			"SKU": sku, "Cost": "2", "Price": "4", "Quantity": "1",
			"Qty_1": "1", "Weight": "0", "Location_1": "", "UPC": "",
		})
	}
	table, _ := inventory.Load(rows, vendors.Mapping{})
	return table
}

func simple(sku, canonical string, packSize, qty int) *catalog.Record {
	return &catalog.Record{
		SKU:           sku,
		ProductType:   "simple",
		CanonicalName: canonical,
		PackSize:      packSize,
		OriginalQty:   qty,
		Qty:           qty,
		Locations:     inventory.NewLocations(),
	}
}

func newCatalog(processed []string, simples ...*catalog.Record) *catalog.Catalog {
	c := &catalog.Catalog{
		Parents:   map[string]*catalog.Record{},
		Processed: map[string]bool{},
		Simples:   simples,
	}
	for _, sku := range processed {
		c.Processed[sku] = true
	}
	return c
}

func TestQuantityConservation(t *testing.T) {
	single := simple("S-1", "key", 1, 10)
	pack := simple("P-4", "key", 4, 3)
	inv := invTable(t, "S-1", "P-4")

	out := Aggregate(newCatalog([]string{"S-1", "P-4"}, single, pack), inv, DefaultMarkup)

	require.Len(t, out.Records, 2)
	assert.Equal(t, 22, single.Qty, "10*1 + 3*4 singles fold into the representative")
	assert.Equal(t, 0, pack.Qty)
	assert.Equal(t, "S-1", pack.SingleProductSKU)
	assert.Equal(t, "", single.SingleProductSKU, "representative carries no self reference")
	assert.Equal(t, 10, single.OriginalQty, "original quantity preserved")
	assert.Equal(t, 1, out.Groups)
}

func TestRepresentativePrefersInventoryBacked(t *testing.T) {
	ghost := simple("GHOST-1", "key", 1, 5)
	backed := simple("S-1", "key", 1, 2)
	pack := simple("P-2", "key", 2, 1)
	inv := invTable(t, "S-1", "P-2")

	Aggregate(newCatalog([]string{"S-1", "P-2"}, ghost, backed, pack), inv, DefaultMarkup)

	assert.Equal(t, 9, backed.Qty, "inventory-backed single elected over earlier ghost")
	assert.Equal(t, 0, ghost.Qty)
	assert.Equal(t, "S-1", pack.SingleProductSKU)
}

func TestRepresentativeFallsBackToAnySingle(t *testing.T) {
	ghost := simple("GHOST-1", "key", 1, 5)
	pack := simple("P-2", "key", 2, 1)
	inv := invTable(t, "P-2")

	out := Aggregate(newCatalog([]string{"P-2"}, ghost, pack), inv, DefaultMarkup)

	assert.Equal(t, 7, ghost.Qty, "unbacked single still elected when no backed one exists")
	assert.Equal(t, "GHOST-1", pack.SingleProductSKU)
	// Ghost itself is not inventory-backed, so only the pack survives.
	require.Len(t, out.Records, 1)
	assert.Equal(t, "P-2", out.Records[0].SKU)
	assert.Equal(t, 1, out.Dropped)
}

func TestGroupWithoutSingle(t *testing.T) {
	packA := simple("P-2", "key", 2, 3)
	packB := simple("P-4", "key", 4, 1)
	inv := invTable(t, "P-2")

	out := Aggregate(newCatalog([]string{"P-2"}, packA, packB), inv, DefaultMarkup)

	assert.Equal(t, "", packA.SingleProductSKU, "no representative, no reference")
	assert.Equal(t, 3, packA.Qty, "quantities stay per-member without a representative")
	require.Len(t, out.Records, 1, "unbacked pack without a single is dropped")
	assert.Equal(t, "P-2", out.Records[0].SKU)
}

func TestStandaloneRetention(t *testing.T) {
	backed := simple("S-1", "", 1, 4)
	ghost := simple("S-2", "", 1, 4)
	inv := invTable(t, "S-1")

	out := Aggregate(newCatalog([]string{"S-1"}, backed, ghost), inv, DefaultMarkup)

	require.Len(t, out.Records, 1)
	assert.Equal(t, "S-1", out.Records[0].SKU)
	assert.Equal(t, 4, out.Records[0].Qty, "standalone quantity untouched")
	assert.Equal(t, 2, out.Standalones)
	assert.Equal(t, 1, out.Dropped)
}

func TestOrphanMaterialization(t *testing.T) {
	rows := []tabular.Row{
		{"SKU": "acme-widget", "Cost": "2.5", "Price": "0", "Quantity": "6",
			"Qty_1": "6", "Weight": "0.1", "Location_1": "A1", "UPC": "111"},
	}
	inv, _ := inventory.Load(rows, vendors.Mapping{})

	out := Aggregate(newCatalog(nil), inv, 1.5)

	require.Len(t, out.Records, 1)
	orphan := out.Records[0]
	assert.Equal(t, "acme-widget", orphan.SKU)
	assert.Equal(t, "Acme Widget", orphan.Name)
	assert.Equal(t, "2.5", orphan.Cost)
	assert.Equal(t, "3.75", orphan.Price, "cost-derived price at configured markup")
	assert.Equal(t, 6, orphan.Qty)
	assert.Equal(t, 1, orphan.PackSize)
	assert.Equal(t, "", orphan.CanonicalName)
	assert.Equal(t, "A1:6", orphan.Locations.String())
	assert.Equal(t, 1, out.Orphans)
}

func TestEveryInventoryRecordAppearsExactlyOnce(t *testing.T) {
	touched := simple("V-1", "", 1, 2)
	inv := invTable(t, "V-1", "V-2", "V-3")

	out := Aggregate(newCatalog([]string{"V-1"}, touched), inv, DefaultMarkup)

	seen := map[string]int{}
	for _, r := range out.Records {
		seen[r.SKU]++
	}
	assert.Equal(t, map[string]int{"V-1": 1, "V-2": 1, "V-3": 1}, seen)
	assert.Equal(t, 2, out.Orphans)
}

func TestEmitOrderIsInputDerived(t *testing.T) {
	a1 := simple("A-1", "alpha", 1, 1)
	solo := simple("SOLO", "", 1, 1)
	b1 := simple("B-1", "beta", 1, 1)
	a2 := simple("A-2", "alpha", 2, 1)
	inv := invTable(t, "A-1", "SOLO", "B-1", "A-2")

	out := Aggregate(newCatalog([]string{"A-1", "SOLO", "B-1", "A-2"}, a1, solo, b1, a2), inv, DefaultMarkup)

	var order []string
	for _, r := range out.Records {
		order = append(order, r.SKU)
	}
	assert.Equal(t, []string{"A-1", "A-2", "SOLO", "B-1"}, order,
		"groups emit at first-appearance position, members in input order")
}
