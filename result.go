package skuforge

import (
	"time"

	"github.com/skuforge/skuforge/internal/inventory"
)

// Result summarizes one pipeline run. Every row-level recovery the pipeline
// makes silently (parse fallbacks, self-mappings, UPC rewrites, dropped
// packaging variants) surfaces here for operator visibility.
type Result struct {
	RunID    string        `json:"run_id" yaml:"run_id"`
	Vendor   string        `json:"vendor" yaml:"vendor"`
	Started  time.Time     `json:"started" yaml:"started"`
	Duration time.Duration `json:"duration" yaml:"duration"`

	VendorRows int `json:"vendor_rows" yaml:"vendor_rows"`
	MappedSKUs int `json:"mapped_skus" yaml:"mapped_skus"`

	Inventory *inventory.Report `json:"inventory" yaml:"inventory"`

	CatalogRows   int `json:"catalog_rows" yaml:"catalog_rows"`
	SimpleRecords int `json:"simple_records" yaml:"simple_records"`
	ParentRecords int `json:"parent_records" yaml:"parent_records"`

	Groups        int `json:"groups" yaml:"groups"`
	Standalones   int `json:"standalones" yaml:"standalones"`
	Orphans       int `json:"orphans" yaml:"orphans"`
	Dropped       int `json:"dropped" yaml:"dropped"`
	OutputRecords int `json:"output_records" yaml:"output_records"`

	Files []string `json:"files" yaml:"files"`
}
