// Package skuforge reconciles storefront product-catalog exports against
// inventory and vendor-mapping feeds and writes normalized ERP import
// files. The pipeline resolves vendor/retail SKU identity, deduplicates
// conflicting UPCs, inherits missing child attributes from parent records,
// derives a canonical identity for packaging variants, and folds pack
// quantities into one representative single unit per identity.
package skuforge

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/skuforge/skuforge/internal/aggregate"
	"github.com/skuforge/skuforge/internal/catalog"
	"github.com/skuforge/skuforge/internal/export"
	"github.com/skuforge/skuforge/internal/inventory"
	"github.com/skuforge/skuforge/internal/tabular"
	"github.com/skuforge/skuforge/internal/vendors"
	"github.com/skuforge/skuforge/pkg/errors"
	"github.com/skuforge/skuforge/pkg/logging"
)

// Pipeline is one configured reconciliation run. Construct with New; a
// Pipeline is single-use state-free and may be Run repeatedly — every run
// recomputes from the full input snapshot.
type Pipeline struct {
	config *config
}

// New creates a Pipeline from the given options.
func New(opts ...Option) (*Pipeline, error) {
	c := newConfig()
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &Pipeline{config: c}, nil
}

// Run executes the full reconciliation pass: all three feeds are read to
// completion before any cross-referencing begins, then catalog rows are
// resolved, inherited, canonicalized, aggregated, and written out.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	// Step 0: set context
	if ctx == nil {
		ctx = context.Background()
	}

	result := &Result{
		RunID:   uuid.NewString(),
		Vendor:  p.config.vendor,
		Started: time.Now().UTC(),
	}
	ctx = logging.WithRunID(ctx, result.RunID)
	log := logging.FromContext(ctx)

	// Step 1: vendor mapping feed
	vendorTable, err := tabular.ReadFile(p.config.vendorMapPath)
	if err != nil {
		return nil, errors.WrapFeed("vendor-map", p.config.vendorMapPath, err)
	}
	mapping := vendors.Resolve(vendorTable.Rows, p.config.vendor)
	result.VendorRows = vendorTable.Len()
	result.MappedSKUs = len(mapping)
	log.Info().
		Int("rows", vendorTable.Len()).
		Int("mapped", len(mapping)).
		Str("vendor", p.config.vendor).
		Msg("Vendor mapping resolved")

	if err := ctx.Err(); err != nil {
		return nil, errors.ErrCanceled
	}

	// Step 2: inventory feed
	inventoryTable, err := tabular.ReadFile(p.config.inventoryPath)
	if err != nil {
		return nil, errors.WrapFeed("inventory", p.config.inventoryPath, err)
	}
	inv, report := inventory.Load(inventoryTable.Rows, mapping)
	result.Inventory = report
	log.Info().
		Int("rows", report.Rows).
		Int("records", inv.Len()).
		Int("duplicate_rows", report.DuplicateRows).
		Int("unmapped", len(report.UnmappedSKUs)).
		Int("upc_conflicts", len(report.ConflictingUPCs)).
		Msg("Inventory loaded")

	if err := ctx.Err(); err != nil {
		return nil, errors.ErrCanceled
	}

	// Step 3: catalog feed
	catalogTable, err := tabular.ReadFile(p.config.catalogPath)
	if err != nil {
		return nil, errors.WrapFeed("catalog", p.config.catalogPath, err)
	}
	cat := catalog.Split(catalogTable.Rows, inv)
	cat.Canonicalize()
	result.CatalogRows = catalogTable.Len()
	result.SimpleRecords = len(cat.Simples)
	result.ParentRecords = len(cat.Parents)
	log.Info().
		Int("rows", catalogTable.Len()).
		Int("simples", len(cat.Simples)).
		Int("parents", len(cat.Parents)).
		Msg("Catalog split")

	if err := ctx.Err(); err != nil {
		return nil, errors.ErrCanceled
	}

	// Step 4: aggregate
	out := aggregate.Aggregate(cat, inv, p.config.markup)
	result.Groups = out.Groups
	result.Standalones = out.Standalones
	result.Orphans = out.Orphans
	result.Dropped = out.Dropped
	result.OutputRecords = len(out.Records)
	log.Info().
		Int("groups", out.Groups).
		Int("standalones", out.Standalones).
		Int("orphans", out.Orphans).
		Int("dropped", out.Dropped).
		Int("records", len(out.Records)).
		Msg("Aggregation complete")

	// Step 5: write outputs
	if err := p.write(out.Records, result); err != nil {
		return nil, err
	}

	result.Duration = time.Since(result.Started)
	log.Info().
		Dur("duration", result.Duration).
		Strs("files", result.Files).
		Msg("Run complete")

	return result, nil
}

// write emits the reconciled table and, when enabled, the ERP projections.
func (p *Pipeline) write(records []*catalog.Record, result *Result) error {
	reconciled := export.Reconciled(records)
	paths, err := export.WriteChunked(
		p.outPath("reconciled.csv"), export.ReconciledHeader, reconciled, p.config.chunkSize)
	if err != nil {
		return err
	}
	result.Files = append(result.Files, paths...)

	if !p.config.erpFiles {
		return nil
	}

	erpOutputs := []struct {
		name   string
		header []string
		rows   []tabular.Row
	}{
		{"erp_products.csv", export.ProductHeader, export.Products(records)},
		{"erp_inventory.csv", export.InventoryHeader, export.Inventory(records, p.config.locationRoot)},
		{"erp_bom.csv", export.BoMHeader, export.BoM(records)},
	}
	for _, o := range erpOutputs {
		paths, err := export.WriteChunked(p.outPath(o.name), o.header, o.rows, p.config.chunkSize)
		if err != nil {
			return err
		}
		result.Files = append(result.Files, paths...)
	}
	return nil
}

func (p *Pipeline) outPath(name string) string {
	return filepath.Join(p.config.outDir, name)
}
