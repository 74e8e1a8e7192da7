// Package export projects reconciled records into output files: the core
// reconciled table, ERP import files (products, inventory quantities, bills
// of materials, barcode updates), with optional chunked splitting for
// import-size limits.
package export

import (
	"strconv"

	"github.com/skuforge/skuforge/internal/catalog"
	"github.com/skuforge/skuforge/internal/tabular"
)

// Derived output column names.
const (
	ColPackSize         = "pack_size"
	ColCanonicalName    = "canonical_name"
	ColSingleProductSKU = "single_product_sku"
	ColOriginalQty      = "original_qty"
	ColUPC              = "upc"
	ColLocations        = "locations"
	ColRetailSKU        = "retail_sku"
)

// ReconciledHeader is the column order of the core output file: the
// retained catalog columns followed by the derived columns.
var ReconciledHeader = []string{
	catalog.ColSKU,
	catalog.ColCategory,
	catalog.ColUnitPerPack,
	catalog.ColProductType,
	catalog.ColName,
	catalog.ColWeight,
	catalog.ColPrice,
	catalog.ColQty,
	catalog.ColParentSKU,
	catalog.ColBrand,
	catalog.ColColor,
	catalog.ColCost,
	catalog.ColFlavor,
	catalog.ColManufacturer,
	catalog.ColNicotineLevel,
	catalog.ColPuffCounts,
	catalog.ColRegCategory,
	catalog.ColVolume,
	catalog.ColResistance,
	ColPackSize,
	ColCanonicalName,
	ColSingleProductSKU,
	ColOriginalQty,
	ColUPC,
	ColLocations,
	ColRetailSKU,
}

// Reconciled renders records as rows of the core output table.
func Reconciled(records []*catalog.Record) []tabular.Row {
	rows := make([]tabular.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, tabular.Row{
			catalog.ColSKU:           r.SKU,
			catalog.ColCategory:      r.Category,
			catalog.ColUnitPerPack:   r.UnitPerPack,
			catalog.ColProductType:   r.ProductType,
			catalog.ColName:          r.Name,
			catalog.ColWeight:        r.Weight,
			catalog.ColPrice:         r.Price,
			catalog.ColQty:           strconv.Itoa(r.Qty),
			catalog.ColParentSKU:     r.ParentSKU,
			catalog.ColBrand:         r.Brand,
			catalog.ColColor:         r.Color,
			catalog.ColCost:          r.Cost,
			catalog.ColFlavor:        r.Flavor,
			catalog.ColManufacturer:  r.Manufacturer,
			catalog.ColNicotineLevel: r.NicotineLevel,
			catalog.ColPuffCounts:    r.PuffCounts,
			catalog.ColRegCategory:   r.RegCategory,
			catalog.ColVolume:        r.Volume,
			catalog.ColResistance:    r.Resistance,
			ColPackSize:              strconv.Itoa(r.PackSize),
			ColCanonicalName:         r.CanonicalName,
			ColSingleProductSKU:      r.SingleProductSKU,
			ColOriginalQty:           strconv.Itoa(r.OriginalQty),
			ColUPC:                   r.UPC,
			ColLocations:             r.Locations.String(),
			ColRetailSKU:             r.RetailSKU,
		})
	}
	return rows
}
