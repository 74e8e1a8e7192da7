package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skuforge/skuforge/internal/tabular"
	"github.com/skuforge/skuforge/internal/vendors"
)

func feedRow(sku, cost, price, quantity, qty1, weight, location, upc string) tabular.Row {
	return tabular.Row{
		"SKU":        sku,
		"Cost":       cost,
		"Price":      price,
		"Quantity":   quantity,
		"Qty_1":      qty1,
		"Weight":     weight,
		"Location_1": location,
		"UPC":        upc,
	}
}

func TestLoadBasic(t *testing.T) {
	rows := []tabular.Row{
		feedRow("V-1", "2.50", "4.99", "10", "10", "0.2", "A1-01", "111"),
	}
	mapping := vendors.Mapping{"V-1": "R-1"}

	table, report := Load(rows, mapping)

	require.Equal(t, 1, table.Len())
	rec, ok := table.Get("V-1")
	require.True(t, ok)
	assert.Equal(t, "R-1", rec.RetailSKU)
	assert.Equal(t, 2.50, rec.Cost)
	assert.Equal(t, 4.99, rec.Price)
	assert.Equal(t, 10, rec.Qty)
	assert.Equal(t, 0.2, rec.Weight)
	assert.Equal(t, "111", rec.UPC)
	assert.Equal(t, "A1-01:10", rec.Locations.String())

	assert.Equal(t, 1, report.Rows)
	assert.Empty(t, report.UnmappedSKUs)
	assert.Empty(t, report.DuplicateSKUs)
}

func TestLoadUnmappedFallsBackToSelf(t *testing.T) {
	rows := []tabular.Row{
		feedRow("V-9", "1", "2", "5", "5", "0", "", ""),
	}

	table, report := Load(rows, vendors.Mapping{})

	rec, _ := table.Get("V-9")
	assert.Equal(t, "V-9", rec.RetailSKU)
	assert.Equal(t, []string{"V-9"}, report.UnmappedSKUs)
}

func TestLoadParsePolicy(t *testing.T) {
	rows := []tabular.Row{
		feedRow("V-1", "not-a-number", "", "-3", "2.0", "x", "A1", "111"),
	}

	table, _ := Load(rows, vendors.Mapping{})
	rec, _ := table.Get("V-1")

	assert.Equal(t, 0.0, rec.Cost, "parse failure coerces to zero")
	assert.Equal(t, 0.0, rec.Price)
	assert.Equal(t, 0.0, rec.Weight)
	assert.Equal(t, 0, rec.Qty, "negative quantity clamps to zero")
	qty, ok := rec.Locations.Get("A1")
	require.True(t, ok)
	assert.Equal(t, 2, qty, "decimal notation accepted for whole quantities")
}

func TestLoadSkipsEmptySKU(t *testing.T) {
	rows := []tabular.Row{
		feedRow("  ", "1", "1", "1", "1", "1", "A1", "111"),
		feedRow("V-1", "1", "1", "1", "1", "1", "A1", "222"),
	}

	table, report := Load(rows, vendors.Mapping{})

	assert.Equal(t, 1, table.Len())
	assert.Equal(t, 1, report.SkippedRows)
}

func TestLoadMergesDuplicateSKURows(t *testing.T) {
	rows := []tabular.Row{
		feedRow("V-1", "2", "4", "10", "10", "1", "A1", "111"),
		feedRow("V-1", "2", "4", "5", "5", "1", "B2", ""),
		feedRow("V-1", "2", "4", "3", "3", "1", "A1", ""),
	}

	table, report := Load(rows, vendors.Mapping{})

	require.Equal(t, 1, table.Len())
	rec, _ := table.Get("V-1")
	assert.Equal(t, 18, rec.Qty, "top-level qty is a running sum")

	qty, _ := rec.Locations.Get("A1")
	assert.Equal(t, 3, qty, "per-location qty is last write wins")
	assert.Equal(t, "A1:3;B2:5", rec.Locations.String())

	assert.Equal(t, 2, report.DuplicateRows)
	assert.Equal(t, []string{"V-1"}, report.DuplicateSKUs)
}

func TestUPCDedup(t *testing.T) {
	t.Run("three way conflict suffixes by occurrence", func(t *testing.T) {
		rows := []tabular.Row{
			feedRow("A", "1", "1", "1", "1", "1", "", "111"),
			feedRow("B", "1", "1", "1", "1", "1", "", "111"),
			feedRow("C", "1", "1", "1", "1", "1", "", "111"),
		}

		table, report := Load(rows, vendors.Mapping{})

		recA, _ := table.Get("A")
		recB, _ := table.Get("B")
		recC, _ := table.Get("C")
		assert.Equal(t, "111", recA.UPC)
		assert.Equal(t, "1112", recB.UPC)
		assert.Equal(t, "1113", recC.UPC)
		assert.Equal(t, []string{"111"}, report.ConflictingUPCs)
	})

	t.Run("first seen vendor keeps UPC across its duplicate rows", func(t *testing.T) {
		rows := []tabular.Row{
			feedRow("A", "1", "1", "1", "1", "", "L1", "111"),
			feedRow("A", "1", "1", "1", "1", "", "L2", "111"),
			feedRow("B", "1", "1", "1", "1", "", "", "111"),
		}

		table, _ := Load(rows, vendors.Mapping{})

		recA, _ := table.Get("A")
		recB, _ := table.Get("B")
		assert.Equal(t, "111", recA.UPC)
		assert.Equal(t, "1112", recB.UPC)
	})

	t.Run("distinct UPCs untouched", func(t *testing.T) {
		rows := []tabular.Row{
			feedRow("A", "1", "1", "1", "1", "", "", "111"),
			feedRow("B", "1", "1", "1", "1", "", "", "222"),
		}

		table, report := Load(rows, vendors.Mapping{})

		recB, _ := table.Get("B")
		assert.Equal(t, "222", recB.UPC)
		assert.Empty(t, report.ConflictingUPCs)
	})

	t.Run("empty UPCs never conflict", func(t *testing.T) {
		rows := []tabular.Row{
			feedRow("A", "1", "1", "1", "1", "", "", ""),
			feedRow("B", "1", "1", "1", "1", "", "", ""),
		}

		_, report := Load(rows, vendors.Mapping{})
		assert.Empty(t, report.ConflictingUPCs)
	})
}

func TestTableOrder(t *testing.T) {
	rows := []tabular.Row{
		feedRow("V-3", "1", "1", "1", "1", "", "", ""),
		feedRow("V-1", "1", "1", "1", "1", "", "", ""),
		feedRow("V-2", "1", "1", "1", "1", "", "", ""),
		feedRow("V-1", "1", "1", "1", "1", "", "", ""),
	}

	table, _ := Load(rows, vendors.Mapping{})

	assert.Equal(t, []string{"V-3", "V-1", "V-2"}, table.VendorSKUs(), "first-seen feed order")
}

func TestLocations(t *testing.T) {
	l := NewLocations()
	assert.Equal(t, "", l.String())

	l.Set("B2", 3)
	l.Set("A1", 5)
	l.Set("B2", 7) // replaces without reordering

	assert.Equal(t, []string{"B2", "A1"}, l.Codes())
	assert.Equal(t, "B2:7;A1:5", l.String())
	assert.Equal(t, 2, l.Len())
}
