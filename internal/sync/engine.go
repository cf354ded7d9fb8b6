// Package sync implements order snapshot reconciliation: re-projecting
// authoritative product and lookup data onto the denormalized snapshot
// columns of linked orders.
//
// The engine consolidates what used to be a pile of near-identical
// repair scripts into one parameterized job: mode (fill-blanks vs.
// force-overwrite) times scope (one product vs. all products).
package sync

import (
	"fmt"
	"log"

	"github.com/printomax/packtrackgo/internal/lookup"
	"github.com/printomax/packtrackgo/internal/models"
	"github.com/printomax/packtrackgo/internal/specs"
	"gorm.io/gorm"
)

// Mode selects the snapshot write policy for a reconciliation run.
type Mode string

const (
	// ModeFillBlanks writes a snapshot field only when the order's
	// current value is NULL, empty, or the literal string "null"
	// (leftovers from buggy historical writes). Repair default.
	ModeFillBlanks Mode = "fill_blanks"

	// ModeForceOverwrite unconditionally replaces every snapshot field
	// with the product's current resolved value. The product master is
	// trusted as ground truth; must be requested explicitly.
	ModeForceOverwrite Mode = "force_overwrite"
)

// ParseMode accepts the short and long spellings used by the CLI and API.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "fill", "fill_blanks", "":
		return ModeFillBlanks, nil
	case "force", "force_overwrite":
		return ModeForceOverwrite, nil
	}
	return "", fmt.Errorf("unknown sync mode %q (want fill or force)", s)
}

// Engine reconciles order snapshot columns against product master data.
type Engine struct {
	db   *gorm.DB
	maps lookup.Maps

	// ProgressEvery emits a progress line after every N processed
	// orders. Zero disables incremental output.
	ProgressEvery int
}

// NewEngine creates an engine over an already-resolved set of lookup maps.
func NewEngine(db *gorm.DB, maps lookup.Maps) *Engine {
	return &Engine{db: db, maps: maps}
}

// Projection is a product's fully resolved state: every value an order
// snapshot can receive, with lookup ids replaced by names and the
// special-effects field normalized.
type Projection struct {
	Product    models.Product
	Effects    specs.Effects
	FreshSpecs string

	CustomerName     string
	PaperTypeName    string
	GSMValue         string
	SizeName         string
	PastingType      string
	ConstructionType string
	Specification    string
	DeliveryAddress  string
}

// Project resolves a product through the lookup maps and normalizes
// its effects. A malformed effects value is returned alongside the
// projection: every other field still resolves, only the effects
// carry the raw value through as display fallback.
func (e *Engine) Project(p models.Product) (Projection, error) {
	effects, err := specs.NormalizeEffects(p.SpecialEffects, e.maps[models.TableSpecialEffects])

	pr := Projection{
		Product:          p,
		Effects:          effects,
		CustomerName:     e.maps.NameRef(models.TableCustomers, p.CustomerID),
		PaperTypeName:    e.maps.NameRef(models.TablePaperTypes, p.PaperTypeID),
		GSMValue:         e.maps.NameRef(models.TableGSM, p.GSMID),
		SizeName:         e.maps.NameRef(models.TableSizes, p.SizeID),
		PastingType:      e.maps.NameRef(models.TablePasting, p.PastingID),
		ConstructionType: e.maps.NameRef(models.TableConstructions, p.ConstructionID),
		Specification:    e.maps.NameRef(models.TableSpecifications, p.SpecificationID),
		DeliveryAddress:  e.maps.NameRef(models.TableDeliveryAddresses, p.DeliveryAddressID),
	}
	pr.FreshSpecs = specs.BuildSpecs(pr.SizeName, p.UPSValue(), p.Dimension, effects.Display)
	return pr, err
}

// Run reconciles every order in the database against its product.
func (e *Engine) Run(mode Mode) (*Report, error) {
	var products []models.Product
	if err := e.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return e.run(products, mode)
}

// RunProduct reconciles only the orders linked to one product.
func (e *Engine) RunProduct(productID string, mode Mode) (*Report, error) {
	var product models.Product
	if err := e.db.First(&product, "id = ?", productID).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch product %s: %w", productID, err)
	}
	return e.run([]models.Product{product}, mode)
}

func (e *Engine) run(products []models.Product, mode Mode) (*Report, error) {
	report := NewReport(mode)
	defer report.finish()

	productIDs := make([]string, 0, len(products))
	for _, p := range products {
		productIDs = append(productIDs, p.ID)
	}

	// Orders are fetched up front: a failure here means there is
	// nothing safe to reconcile against, so the run aborts before any
	// write. Per-order update failures later are tolerated.
	var orders []models.Order
	if err := e.db.Where("product_id IN ?", productIDs).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	byProduct := make(map[string][]models.Order, len(products))
	for _, o := range orders {
		if o.ProductID == nil {
			continue
		}
		byProduct[*o.ProductID] = append(byProduct[*o.ProductID], o)
	}

	for _, p := range products {
		report.ProductsProcessed++

		pr, err := e.Project(p)
		if err != nil {
			report.ParseFailures++
			report.addFailure("product", p.ID, p.ProductName, err)
			log.Printf("⚠️  Product %s (%s): %v", p.ProductName, p.ID, err)
		} else {
			e.writeBackProduct(&pr, report)
		}

		for _, o := range byProduct[p.ID] {
			e.syncOrder(&pr, &o, mode, report)
			if e.ProgressEvery > 0 && report.OrdersProcessed%e.ProgressEvery == 0 {
				log.Printf("   ... %d orders processed (%d updated)",
					report.OrdersProcessed, report.OrdersUpdated)
			}
		}
	}

	return report, nil
}

// writeBackProduct persists the canonical effects id-list and the
// recomputed specs onto the product when stale. Only the canonical
// id form is ever written here, never resolved names.
func (e *Engine) writeBackProduct(pr *Projection, report *Report) {
	updates := map[string]interface{}{}
	if pr.Effects.Canonical != pr.Product.SpecialEffects {
		updates["special_effects"] = pr.Effects.Canonical
	}
	if pr.FreshSpecs != pr.Product.Specs {
		updates["specs"] = pr.FreshSpecs
	}
	if len(updates) == 0 {
		return
	}

	if err := e.db.Model(&models.Product{}).Where("id = ?", pr.Product.ID).Updates(updates).Error; err != nil {
		report.addFailure("product", pr.Product.ID, pr.Product.ProductName, err)
		return
	}
	report.ProductsUpdated++
}

// syncOrder applies one product projection to one order. Each order is
// its own atomic update; a failure is captured and the run moves on.
func (e *Engine) syncOrder(pr *Projection, o *models.Order, mode Mode, report *Report) {
	report.OrdersProcessed++

	updates := buildUpdates(pr, o, mode)
	if len(updates) == 0 {
		report.OrdersSkipped++
		return
	}

	if err := e.db.Model(&models.Order{}).Where("id = ?", o.ID).Updates(updates).Error; err != nil {
		report.addFailure("order", o.ID, o.OrderID, err)
		return
	}
	report.OrdersUpdated++
}

// snapshotField maps one snapshot column to its product-resolved value
// and the order's current value. Fields outside this set (quantity,
// status, progress, printer, dates, value) are never written.
type snapshotField struct {
	column  string
	value   func(pr *Projection) interface{}
	current func(o *models.Order) interface{}
}

var snapshotFields = []snapshotField{
	{"product_name", func(pr *Projection) interface{} { return pr.Product.ProductName }, func(o *models.Order) interface{} { return o.ProductName }},
	{"customer_name", func(pr *Projection) interface{} { return pr.CustomerName }, func(o *models.Order) interface{} { return o.CustomerName }},
	{"paper_type_name", func(pr *Projection) interface{} { return pr.PaperTypeName }, func(o *models.Order) interface{} { return o.PaperTypeName }},
	{"gsm_value", func(pr *Projection) interface{} { return pr.GSMValue }, func(o *models.Order) interface{} { return o.GSMValue }},
	{"print_size", func(pr *Projection) interface{} { return pr.SizeName }, func(o *models.Order) interface{} { return o.PrintSize }},
	{"pasting_type", func(pr *Projection) interface{} { return pr.PastingType }, func(o *models.Order) interface{} { return o.PastingType }},
	{"construction_type", func(pr *Projection) interface{} { return pr.ConstructionType }, func(o *models.Order) interface{} { return o.ConstructionType }},
	{"specification", func(pr *Projection) interface{} { return pr.Specification }, func(o *models.Order) interface{} { return o.Specification }},
	{"delivery_address", func(pr *Projection) interface{} { return pr.DeliveryAddress }, func(o *models.Order) interface{} { return o.DeliveryAddress }},
	{"special_effects", func(pr *Projection) interface{} { return pr.Effects.Display }, func(o *models.Order) interface{} { return o.SpecialEffects }},
	{"dimension", func(pr *Projection) interface{} { return pr.Product.Dimension }, func(o *models.Order) interface{} { return o.Dimension }},
	{"ink", func(pr *Projection) interface{} { return pr.Product.Ink }, func(o *models.Order) interface{} { return o.Ink }},
	{"plate_no", func(pr *Projection) interface{} { return pr.Product.PlateNo }, func(o *models.Order) interface{} { return o.PlateNo }},
	{"coating", func(pr *Projection) interface{} { return pr.Product.Coating }, func(o *models.Order) interface{} { return o.Coating }},
	{"artwork_code", func(pr *Projection) interface{} { return pr.Product.ArtworkCode }, func(o *models.Order) interface{} { return o.ArtworkCode }},
	{"artwork_pdf", func(pr *Projection) interface{} { return pr.Product.ArtworkPDF }, func(o *models.Order) interface{} { return o.ArtworkPDF }},
	{"artwork_cdr", func(pr *Projection) interface{} { return pr.Product.ArtworkCDR }, func(o *models.Order) interface{} { return o.ArtworkCDR }},
	{"product_image", func(pr *Projection) interface{} { return pr.Product.ProductImage }, func(o *models.Order) interface{} { return o.ProductImage }},
	{"folding_dimension", func(pr *Projection) interface{} { return pr.Product.FoldingDim }, func(o *models.Order) interface{} { return o.FoldingDimension }},
	{"specs", func(pr *Projection) interface{} { return pr.FreshSpecs }, func(o *models.Order) interface{} { return o.Specs }},
	{"product_specs", func(pr *Projection) interface{} { return pr.FreshSpecs }, func(o *models.Order) interface{} { return o.ProductSpecs }},
	{"ups", func(pr *Projection) interface{} { return pr.Product.UPS }, func(o *models.Order) interface{} { return o.UPS }},
}

// buildUpdates computes the column set one order update will carry.
func buildUpdates(pr *Projection, o *models.Order, mode Mode) map[string]interface{} {
	updates := make(map[string]interface{}, len(snapshotFields))
	for _, f := range snapshotFields {
		value := f.value(pr)
		if mode == ModeFillBlanks {
			if !isBlank(f.current(o)) {
				continue
			}
			// Nothing to fill a blank with
			if isBlank(value) {
				continue
			}
		}
		updates[f.column] = value
	}
	return updates
}

// isBlank treats NULL, empty and the literal string "null" as unset.
func isBlank(v interface{}) bool {
	switch s := v.(type) {
	case nil:
		return true
	case string:
		return s == "" || s == "null"
	case *int:
		return s == nil
	}
	return false
}
