package export

import (
	"strconv"
	"strings"

	"github.com/skuforge/skuforge/internal/catalog"
	"github.com/skuforge/skuforge/internal/tabular"
)

// ProductHeader is the ERP product import layout.
var ProductHeader = []string{
	"default_code", "name", "categ_id", "list_price", "standard_price",
	"type", "barcode", "x_puff_count", "x_flavor", "x_volume",
	"x_nicotine_level", "x_pack_size",
}

// InventoryHeader is the ERP inventory quantity import layout.
var InventoryHeader = []string{"product", "inventoried_quantity", "location"}

// BoMHeader is the ERP bill-of-materials import layout: each multi-pack is
// assembled from pack_size units of its single product.
var BoMHeader = []string{"product", "component", "component_quantity"}

// BarcodeHeader is the ERP barcode update layout.
var BarcodeHeader = []string{"id", "barcode"}

// DefaultLocationRoot prefixes derived warehouse location paths.
const DefaultLocationRoot = "WH/Stock"

// Products projects records into ERP product import rows. The canonical
// name is preferred as the ERP display name so packaging variants read as
// one product; undifferentiated records keep their own name.
func Products(records []*catalog.Record) []tabular.Row {
	rows := make([]tabular.Row, 0, len(records))
	for _, r := range records {
		name := r.CanonicalName
		if name == "" {
			name = r.Name
		}
		rows = append(rows, tabular.Row{
			"default_code":     r.SKU,
			"name":             name,
			"categ_id":         r.Category,
			"list_price":       r.Price,
			"standard_price":   r.Cost,
			"type":             "goods",
			"barcode":          r.UPC,
			"x_puff_count":     r.PuffCounts,
			"x_flavor":         r.Flavor,
			"x_volume":         r.Volume,
			"x_nicotine_level": r.NicotineLevel,
			"x_pack_size":      strconv.Itoa(r.PackSize),
		})
	}
	return rows
}

// Inventory projects records into ERP inventory quantity rows, one per
// warehouse location. Records without location detail emit a single row at
// the location root carrying the full quantity.
func Inventory(records []*catalog.Record, root string) []tabular.Row {
	if root == "" {
		root = DefaultLocationRoot
	}

	var rows []tabular.Row
	for _, r := range records {
		if r.Locations == nil || r.Locations.Len() == 0 {
			rows = append(rows, tabular.Row{
				"product":              r.SKU,
				"inventoried_quantity": strconv.Itoa(r.Qty),
				"location":             root,
			})
			continue
		}
		for _, code := range r.Locations.Codes() {
			qty, _ := r.Locations.Get(code)
			rows = append(rows, tabular.Row{
				"product":              r.SKU,
				"inventoried_quantity": strconv.Itoa(qty),
				"location":             LocationPath(root, code),
			})
		}
	}
	return rows
}

// BoM projects every multi-pack with a resolved single into a
// bill-of-materials row.
func BoM(records []*catalog.Record) []tabular.Row {
	var rows []tabular.Row
	for _, r := range records {
		if r.PackSize <= 1 || r.SingleProductSKU == "" {
			continue
		}
		rows = append(rows, tabular.Row{
			"product":            r.SKU,
			"component":          r.SingleProductSKU,
			"component_quantity": strconv.Itoa(r.PackSize),
		})
	}
	return rows
}

// BarcodeUpdates joins an ERP product export (id, default_code) against the
// reconciled records and emits one update row per product whose reconciled
// UPC is non-empty. Barcodes arriving in decimal notation from spreadsheet
// round-trips are normalized by dropping the fraction.
func BarcodeUpdates(erpExport []tabular.Row, records []*catalog.Record) []tabular.Row {
	barcodes := make(map[string]string, len(records))
	for _, r := range records {
		if upc := normalizeBarcode(r.UPC); upc != "" {
			barcodes[r.SKU] = upc
		}
	}
	return barcodeRows(erpExport, barcodes)
}

// BarcodeUpdatesFromRows is BarcodeUpdates over a previously written
// reconciled table instead of in-memory records.
func BarcodeUpdatesFromRows(erpExport, reconciled []tabular.Row) []tabular.Row {
	barcodes := make(map[string]string, len(reconciled))
	for _, row := range reconciled {
		sku := strings.TrimSpace(row.Get(catalog.ColSKU))
		if upc := normalizeBarcode(row.Get(ColUPC)); sku != "" && upc != "" {
			barcodes[sku] = upc
		}
	}
	return barcodeRows(erpExport, barcodes)
}

func barcodeRows(erpExport []tabular.Row, barcodes map[string]string) []tabular.Row {
	var rows []tabular.Row
	for _, row := range erpExport {
		sku := strings.TrimSpace(row.Get("default_code"))
		barcode, ok := barcodes[sku]
		if !ok {
			continue
		}
		rows = append(rows, tabular.Row{
			"id":      row.Get("id"),
			"barcode": barcode,
		})
	}
	return rows
}

// LocationPath derives a hierarchical warehouse path from a location code:
// segments separated by "-" become path levels under the root.
func LocationPath(root, code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return root
	}
	return root + "/" + strings.ReplaceAll(code, "-", "/")
}

// normalizeBarcode strips a trailing decimal fraction ("0123.0" -> "0123").
func normalizeBarcode(upc string) string {
	upc = strings.TrimSpace(upc)
	if i := strings.IndexByte(upc, '.'); i >= 0 {
		return upc[:i]
	}
	return upc
}
