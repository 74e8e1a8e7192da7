package skuforge

import (
	"github.com/skuforge/skuforge/internal/aggregate"
	"github.com/skuforge/skuforge/internal/export"
	"github.com/skuforge/skuforge/pkg/errors"
)

// Option is a function that configures a Pipeline.
type Option func(*config) error

// config holds the resolved pipeline configuration.
type config struct {
	catalogPath   string
	inventoryPath string
	vendorMapPath string
	vendor        string
	outDir        string
	markup        float64
	chunkSize     int
	locationRoot  string
	erpFiles      bool
}

func newConfig() *config {
	return &config{
		outDir:       ".",
		markup:       aggregate.DefaultMarkup,
		locationRoot: export.DefaultLocationRoot,
		erpFiles:     true,
	}
}

func (c *config) validate() error {
	switch {
	case c.catalogPath == "":
		return errors.NewValidationError("catalog", "", "feed path is required")
	case c.inventoryPath == "":
		return errors.NewValidationError("inventory", "", "feed path is required")
	case c.vendorMapPath == "":
		return errors.NewValidationError("vendor-map", "", "feed path is required")
	case c.vendor == "":
		return errors.NewValidationError("vendor", "", "vendor identifier is required")
	case c.markup < 1:
		return errors.NewValidationError("markup", c.markup, "must be at least 1")
	case c.chunkSize < 0:
		return errors.NewValidationError("chunk-size", c.chunkSize, "must not be negative")
	}
	return nil
}

// WithCatalogFeed sets the storefront catalog export path.
func WithCatalogFeed(path string) Option {
	return func(c *config) error {
		c.catalogPath = path
		return nil
	}
}

// WithInventoryFeed sets the vendor inventory feed path.
func WithInventoryFeed(path string) Option {
	return func(c *config) error {
		c.inventoryPath = path
		return nil
	}
}

// WithVendorMapFeed sets the vendor-mapping feed path.
func WithVendorMapFeed(path string) Option {
	return func(c *config) error {
		c.vendorMapPath = path
		return nil
	}
}

// WithVendor scopes the run to one vendor identifier in the mapping feed.
func WithVendor(vendor string) Option {
	return func(c *config) error {
		c.vendor = vendor
		return nil
	}
}

// WithOutputDir sets the directory output files are written to.
func WithOutputDir(dir string) Option {
	return func(c *config) error {
		if dir != "" {
			c.outDir = dir
		}
		return nil
	}
}

// WithMarkup sets the price markup applied to orphaned inventory rows.
func WithMarkup(markup float64) Option {
	return func(c *config) error {
		if markup > 0 {
			c.markup = markup
		}
		return nil
	}
}

// WithChunkSize caps the number of data rows per output file; 0 disables
// splitting.
func WithChunkSize(size int) Option {
	return func(c *config) error {
		c.chunkSize = size
		return nil
	}
}

// WithLocationRoot sets the root of derived warehouse location paths.
func WithLocationRoot(root string) Option {
	return func(c *config) error {
		if root != "" {
			c.locationRoot = root
		}
		return nil
	}
}

// WithERPFiles toggles emission of the ERP import projections alongside the
// reconciled table.
func WithERPFiles(enabled bool) Option {
	return func(c *config) error {
		c.erpFiles = enabled
		return nil
	}
}
