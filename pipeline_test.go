package skuforge

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skuforge/skuforge/internal/tabular"
	"github.com/skuforge/skuforge/pkg/errors"
)

const (
	testVendorMap = `vendor_name,vendor_sku,retailer_sku
acme,V100,R100
acme,V300,R300
other,V100,X999
`

	testInventory = `SKU,Cost,Price,Quantity,Qty_1,Weight,Location_1,UPC
V100,2,5,10,10,0.1,A-1,111
V300,1,3,4,4,0.2,B-2,222
`

	testCatalog = `sku,attribute_set_code,unit_per_pack,product_type,name,weight,price,qty,parent_sku,brand,color,cost,flavor,manufacturer,nicotine_level,puff_counts,reg_category,volume,resistance
WIDGET,Disposables,,configurable,Widget,,,,,Acme,,,Mint,,,,,,
R100,Disposables,,simple,Widget Single,,9.99,,WIDGET,Acme,,,,,,,,,
PK3,Disposables,,simple,Widget 3 Pack,,24.99,,WIDGET,Acme,,,,,,,,,
`
)

// writeFeeds lays out the three input feeds in a fresh directory and
// returns their paths.
func writeFeeds(t *testing.T) (catalogPath, inventoryPath, vendorMapPath string) {
	t.Helper()

	dir := t.TempDir()
	feeds := map[string]string{
		"catalog.csv":    testCatalog,
		"inventory.csv":  testInventory,
		"vendor_map.csv": testVendorMap,
	}
	for name, content := range feeds {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return filepath.Join(dir, "catalog.csv"),
		filepath.Join(dir, "inventory.csv"),
		filepath.Join(dir, "vendor_map.csv")
}

func newTestPipeline(t *testing.T, outDir string) *Pipeline {
	t.Helper()

	catalogPath, inventoryPath, vendorMapPath := writeFeeds(t)
	p, err := New(
		WithCatalogFeed(catalogPath),
		WithInventoryFeed(inventoryPath),
		WithVendorMapFeed(vendorMapPath),
		WithVendor("acme"),
		WithOutputDir(outDir),
	)
	require.NoError(t, err)
	return p
}

// rowsBySKU indexes reconciled output rows by their sku column.
func rowsBySKU(t *testing.T, path string) map[string]tabular.Row {
	t.Helper()

	table, err := tabular.ReadFile(path)
	require.NoError(t, err)

	bySKU := make(map[string]tabular.Row, table.Len())
	for _, row := range table.Rows {
		bySKU[row.Get("sku")] = row
	}
	return bySKU
}

func TestPipelineRun(t *testing.T) {
	outDir := t.TempDir()
	p := newTestPipeline(t, outDir)

	result, err := p.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, "acme", result.Vendor)
	assert.Equal(t, 3, result.VendorRows)
	assert.Equal(t, 2, result.MappedSKUs)

	require.NotNil(t, result.Inventory)
	assert.Equal(t, 2, result.Inventory.Rows)
	assert.Empty(t, result.Inventory.UnmappedSKUs)

	assert.Equal(t, 3, result.CatalogRows)
	assert.Equal(t, 2, result.SimpleRecords)
	assert.Equal(t, 1, result.ParentRecords)

	assert.Equal(t, 1, result.Groups)
	assert.Equal(t, 0, result.Standalones)
	assert.Equal(t, 1, result.Orphans)
	assert.Equal(t, 0, result.Dropped)
	assert.Equal(t, 3, result.OutputRecords)

	require.Len(t, result.Files, 4)
	for _, path := range result.Files {
		_, err := os.Stat(path)
		assert.NoError(t, err, "output file %s should exist", path)
	}

	bySKU := rowsBySKU(t, filepath.Join(outDir, "reconciled.csv"))
	require.Len(t, bySKU, 3)

	// The matched single adopted the inventory identity and absorbed the
	// group's folded quantity (10 singles, the pack had none).
	single := bySKU["V100"]
	require.NotNil(t, single)
	assert.Equal(t, "R100", single.Get("retail_sku"))
	assert.Equal(t, "111", single.Get("upc"))
	assert.Equal(t, "10", single.Get("qty"))
	assert.Equal(t, "1", single.Get("pack_size"))
	assert.Equal(t, "A-1:10", single.Get("locations"))
	assert.Equal(t, "Mint", single.Get("flavor"), "flavor should inherit from parent")

	pack := bySKU["PK3"]
	require.NotNil(t, pack)
	assert.Equal(t, "3", pack.Get("pack_size"))
	assert.Equal(t, "0", pack.Get("qty"))
	assert.Equal(t, "V100", pack.Get("single_product_sku"))

	orphan := bySKU["V300"]
	require.NotNil(t, orphan)
	assert.Equal(t, "V300", orphan.Get("name"))
	assert.Equal(t, "4", orphan.Get("qty"))
	assert.Equal(t, "1.5", orphan.Get("price"), "orphan price is cost times markup")
	assert.Equal(t, "222", orphan.Get("upc"))
}

func TestPipelineRunWithoutERPFiles(t *testing.T) {
	outDir := t.TempDir()
	catalogPath, inventoryPath, vendorMapPath := writeFeeds(t)

	p, err := New(
		WithCatalogFeed(catalogPath),
		WithInventoryFeed(inventoryPath),
		WithVendorMapFeed(vendorMapPath),
		WithVendor("acme"),
		WithOutputDir(outDir),
		WithERPFiles(false),
	)
	require.NoError(t, err)

	result, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "reconciled.csv", filepath.Base(result.Files[0]))
}

// TestPipelineRunDeterministic reruns the pipeline over the same feeds and
// requires byte-identical output files.
func TestPipelineRunDeterministic(t *testing.T) {
	firstDir := t.TempDir()
	secondDir := t.TempDir()

	first, err := newTestPipeline(t, firstDir).Run(context.Background())
	require.NoError(t, err)
	second, err := newTestPipeline(t, secondDir).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, second.Files, len(first.Files))

	for i, firstPath := range first.Files {
		name := filepath.Base(firstPath)
		require.Equal(t, name, filepath.Base(second.Files[i]))

		want, err := os.ReadFile(firstPath)
		require.NoError(t, err)
		got, err := os.ReadFile(second.Files[i])
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got), "rerun changed %s", name)
	}
}

func TestPipelineRunCanceled(t *testing.T) {
	p := newTestPipeline(t, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx)
	require.ErrorIs(t, err, errors.ErrCanceled)
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{name: "missing catalog", opts: []Option{
			WithInventoryFeed("inv.csv"), WithVendorMapFeed("map.csv"), WithVendor("acme"),
		}},
		{name: "missing inventory", opts: []Option{
			WithCatalogFeed("cat.csv"), WithVendorMapFeed("map.csv"), WithVendor("acme"),
		}},
		{name: "missing vendor map", opts: []Option{
			WithCatalogFeed("cat.csv"), WithInventoryFeed("inv.csv"), WithVendor("acme"),
		}},
		{name: "missing vendor", opts: []Option{
			WithCatalogFeed("cat.csv"), WithInventoryFeed("inv.csv"), WithVendorMapFeed("map.csv"),
		}},
		{name: "chunk size negative", opts: []Option{
			WithCatalogFeed("cat.csv"), WithInventoryFeed("inv.csv"),
			WithVendorMapFeed("map.csv"), WithVendor("acme"), WithChunkSize(-1),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			require.Error(t, err)

			var verr *errors.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestPipelineRunMissingFeed(t *testing.T) {
	p, err := New(
		WithCatalogFeed(filepath.Join(t.TempDir(), "absent.csv")),
		WithInventoryFeed(filepath.Join(t.TempDir(), "absent.csv")),
		WithVendorMapFeed(filepath.Join(t.TempDir(), "absent.csv")),
		WithVendor("acme"),
	)
	require.NoError(t, err)

	_, err = p.Run(context.Background())
	require.Error(t, err)

	var ferr *errors.FeedError
	assert.ErrorAs(t, err, &ferr)
}
