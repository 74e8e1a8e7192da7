package catalog

import (
	"strings"

	"github.com/skuforge/skuforge/internal/inventory"
	"github.com/skuforge/skuforge/internal/tabular"
)

// Catalog feed column names.
const (
	ColSKU           = "sku"
	ColCategory      = "attribute_set_code"
	ColUnitPerPack   = "unit_per_pack"
	ColProductType   = "product_type"
	ColName          = "name"
	ColWeight        = "weight"
	ColPrice         = "price"
	ColQty           = "qty"
	ColParentSKU     = "parent_sku"
	ColBrand         = "brand"
	ColColor         = "color"
	ColCost          = "cost"
	ColFlavor        = "flavor"
	ColManufacturer  = "manufacturer"
	ColNicotineLevel = "nicotine_level"
	ColPuffCounts    = "puff_counts"
	ColRegCategory   = "reg_category"
	ColVolume        = "volume"
	ColResistance    = "resistance"
)

// Record is one catalog product row. Feed attributes stay strings the way
// the export carries them; joined and derived values live beside them.
// Records are mutated in place during resolution, inheritance, and
// aggregation — never deleted, only annotated.
type Record struct {
	SKU           string
	ParentSKU     string
	ProductType   string
	Name          string
	Category      string // attribute_set_code
	UnitPerPack   string
	Brand         string
	Color         string
	Manufacturer  string
	RegCategory   string
	Flavor        string
	Volume        string
	NicotineLevel string
	PuffCounts    string
	Resistance    string
	Price         string
	Cost          string
	Weight        string
	Qty           int

	// Joined from inventory during identity resolution.
	RetailSKU string
	UPC       string
	Locations *inventory.Locations

	// Derived during canonicalization and aggregation.
	PackSize         int
	CanonicalName    string
	SingleProductSKU string
	OriginalQty      int
}

// fromRow builds a Record from a catalog feed row.
func fromRow(row tabular.Row) *Record {
	return &Record{
		SKU:           strings.TrimSpace(row.Get(ColSKU)),
		ParentSKU:     strings.TrimSpace(row.Get(ColParentSKU)),
		ProductType:   strings.ToLower(strings.TrimSpace(row.Get(ColProductType))),
		Name:          row.Get(ColName),
		Category:      row.Get(ColCategory),
		UnitPerPack:   row.Get(ColUnitPerPack),
		Brand:         row.Get(ColBrand),
		Color:         row.Get(ColColor),
		Manufacturer:  row.Get(ColManufacturer),
		RegCategory:   row.Get(ColRegCategory),
		Flavor:        row.Get(ColFlavor),
		Volume:        row.Get(ColVolume),
		NicotineLevel: row.Get(ColNicotineLevel),
		PuffCounts:    row.Get(ColPuffCounts),
		Resistance:    row.Get(ColResistance),
		Price:         row.Get(ColPrice),
		Cost:          row.Get(ColCost),
		Weight:        row.Get(ColWeight),
		Locations:     inventory.NewLocations(),
	}
}

// IsSimple reports whether the record is a sellable simple product.
func (r *Record) IsSimple() bool {
	return r.ProductType == "simple"
}
