package sync

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/printomax/packtrackgo/internal/lookup"
	"github.com/printomax/packtrackgo/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "sync.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.SpecialEffect{}, &models.Size{}, &models.PaperType{},
		&models.GSM{}, &models.Pasting{}, &models.Construction{},
		&models.Specification{}, &models.DeliveryAddress{},
		&models.Customer{}, &models.Printer{}, &models.Paperwala{},
		&models.Category{}, &models.Product{}, &models.Order{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// seedLookups creates the reference rows every scenario resolves against
func seedLookups(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []interface{}{
		&models.SpecialEffect{ID: "4", Name: "Foil Stamping"},
		&models.SpecialEffect{ID: "7", Name: "Spot UV"},
		&models.Size{ID: "s1", Name: "20x30"},
		&models.PaperType{ID: "pt-art", Name: "Art Card"},
		&models.GSM{ID: "g1", Name: "300"},
		&models.Pasting{ID: "pa1", Name: "Side Pasting"},
		&models.Construction{ID: "co1", Name: "Reverse Tuck In"},
		&models.Specification{ID: "sp1", Name: "As per approved specimen"},
		&models.DeliveryAddress{ID: "da1", Name: "", Address: "Plot 14, MIDC, Pune"},
		&models.Customer{ID: "cu1", Name: "Acme Pharma"},
	}
	for _, r := range rows {
		if err := db.Create(r).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
}

// seedProduct creates the canonical test product with JSON-encoded
// legacy effects, linked to every lookup.
func seedProduct(t *testing.T, db *gorm.DB) models.Product {
	t.Helper()
	p := models.Product{
		ID:             "prod-1",
		ProductName:    "Livadrine Carton",
		ArtworkCode:    "LIV-001",
		Dimension:      "10x5x5",
		Ink:            "CMYK",
		PlateNo:        "PL-42",
		Coating:        "Aqueous",
		UPS:            intPtr(8),
		SpecialEffects: `["4", "7"]`,
		CustomerID:     strPtr("cu1"),
		PaperTypeID:    strPtr("pt-art"),
		GSMID:          strPtr("g1"),
		SizeID:         strPtr("s1"),
		PastingID:      strPtr("pa1"),
		ConstructionID: strPtr("co1"),
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	return p
}

func newEngine(t *testing.T, db *gorm.DB) *Engine {
	t.Helper()
	return NewEngine(db, lookup.Resolve(db, models.AllLookupTables...))
}

const freshLivadrineSpecs = "20x30 | UPS: 8 | 10x5x5 | Foil Stamping | Spot UV"

func TestRun_FillBlanksIsNonDestructive(t *testing.T) {
	db := newTestDB(t)
	seedLookups(t, db)
	seedProduct(t, db)

	order := models.Order{
		ID:            "ord-1",
		OrderID:       "ORD-20260801-0001",
		ProductID:     strPtr("prod-1"),
		PaperTypeName: "Kraft 200", // manually entered, must survive
		GSMValue:      "",          // blank, must be filled
		Dimension:     "null",      // buggy historical write, counts as blank
		Quantity:      5000,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatal(err)
	}

	engine := newEngine(t, db)
	report, err := engine.Run(ModeFillBlanks)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if report.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %+v", report.Failures)
	}

	var got models.Order
	db.First(&got, "id = ?", "ord-1")

	if got.PaperTypeName != "Kraft 200" {
		t.Errorf("fill-blanks overwrote populated field: %q", got.PaperTypeName)
	}
	if got.GSMValue != "300" {
		t.Errorf("blank gsm_value not filled: %q", got.GSMValue)
	}
	if got.Dimension != "10x5x5" {
		t.Errorf("literal \"null\" not treated as blank: %q", got.Dimension)
	}
	if got.SpecialEffects != "Foil Stamping | Spot UV" {
		t.Errorf("special_effects = %q", got.SpecialEffects)
	}
	if got.Quantity != 5000 {
		t.Errorf("operational field touched: quantity = %d", got.Quantity)
	}
}

func TestRun_ForceOverwrite(t *testing.T) {
	db := newTestDB(t)
	seedLookups(t, db)
	seedProduct(t, db)

	order := models.Order{
		ID:            "ord-1",
		OrderID:       "ORD-20260801-0001",
		ProductID:     strPtr("prod-1"),
		PaperTypeName: "Kraft 200",
		ProductName:   "Old Name",
		Quantity:      5000,
		Progress:      models.ProgressPrint,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatal(err)
	}

	engine := newEngine(t, db)
	report, err := engine.Run(ModeForceOverwrite)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if report.OrdersUpdated != 1 {
		t.Errorf("orders updated = %d, want 1", report.OrdersUpdated)
	}

	var got models.Order
	db.First(&got, "id = ?", "ord-1")

	if got.PaperTypeName != "Art Card" {
		t.Errorf("force mode should overwrite, got %q", got.PaperTypeName)
	}
	if got.ProductName != "Livadrine Carton" {
		t.Errorf("product_name = %q", got.ProductName)
	}
	if got.Specs != freshLivadrineSpecs {
		t.Errorf("specs = %q, want %q", got.Specs, freshLivadrineSpecs)
	}
	if got.UPS == nil || *got.UPS != 8 {
		t.Errorf("ups not propagated: %v", got.UPS)
	}
	// Operational fields stay the order's own
	if got.Quantity != 5000 || got.Progress != models.ProgressPrint {
		t.Errorf("operational fields touched: qty=%d progress=%s", got.Quantity, got.Progress)
	}
}

// Force-overwrite twice in a row with no product change must land on
// identical snapshot values.
func TestRun_ForceOverwriteIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	seedLookups(t, db)
	seedProduct(t, db)

	order := models.Order{
		ID:        "ord-1",
		OrderID:   "ORD-20260801-0001",
		ProductID: strPtr("prod-1"),
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatal(err)
	}

	engine := newEngine(t, db)
	if _, err := engine.Run(ModeForceOverwrite); err != nil {
		t.Fatal(err)
	}
	var first models.Order
	db.First(&first, "id = ?", "ord-1")

	if _, err := engine.Run(ModeForceOverwrite); err != nil {
		t.Fatal(err)
	}
	var second models.Order
	db.First(&second, "id = ?", "ord-1")

	if snapshotString(first) != snapshotString(second) {
		t.Errorf("second run changed snapshots:\nfirst:  %s\nsecond: %s",
			snapshotString(first), snapshotString(second))
	}
}

// snapshotString flattens the synced column set for comparison
func snapshotString(o models.Order) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s|%s|%s|%s|%s|%s|%s|%s|%s|%s|%v",
		o.ProductName, o.CustomerName, o.PaperTypeName, o.GSMValue,
		o.PrintSize, o.PastingType, o.ConstructionType, o.Specification,
		o.DeliveryAddress, o.SpecialEffects, o.Dimension, o.Ink,
		o.PlateNo, o.Coating, o.ArtworkCode, o.Specs, o.UPS)
}

// The normalizer run collapses the JSON-encoded effects into the
// canonical pipe form on the product itself; resolved names must never
// land on the product.
func TestRun_ProductWriteBackCanonicalOnly(t *testing.T) {
	db := newTestDB(t)
	seedLookups(t, db)
	seedProduct(t, db)

	engine := newEngine(t, db)
	report, err := engine.Run(ModeFillBlanks)
	if err != nil {
		t.Fatal(err)
	}
	if report.ProductsUpdated != 1 {
		t.Errorf("products updated = %d, want 1", report.ProductsUpdated)
	}

	var got models.Product
	db.First(&got, "id = ?", "prod-1")

	if got.SpecialEffects != "4|7" {
		t.Errorf("product special_effects = %q, want canonical \"4|7\"", got.SpecialEffects)
	}
	if got.Specs != freshLivadrineSpecs {
		t.Errorf("product specs = %q, want %q", got.Specs, freshLivadrineSpecs)
	}
}

// A malformed effects value leaves the product untouched and is
// reported as a parse failure; other fields still sync onto orders.
func TestRun_MalformedEffectsReported(t *testing.T) {
	db := newTestDB(t)
	seedLookups(t, db)

	p := models.Product{
		ID:             "prod-bad",
		ProductName:    "Fercarb Label",
		SpecialEffects: "[unreadable legacy value]",
		Dimension:      "5x5",
		GSMID:          strPtr("g1"),
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatal(err)
	}
	order := models.Order{ID: "ord-1", OrderID: "ORD-1", ProductID: strPtr("prod-bad")}
	if err := db.Create(&order).Error; err != nil {
		t.Fatal(err)
	}

	engine := newEngine(t, db)
	report, err := engine.Run(ModeFillBlanks)
	if err != nil {
		t.Fatal(err)
	}

	if report.ParseFailures != 1 {
		t.Errorf("parse failures = %d, want 1", report.ParseFailures)
	}

	var gotP models.Product
	db.First(&gotP, "id = ?", "prod-bad")
	if gotP.SpecialEffects != "[unreadable legacy value]" {
		t.Errorf("malformed product value should be preserved, got %q", gotP.SpecialEffects)
	}

	var gotO models.Order
	db.First(&gotO, "id = ?", "ord-1")
	if gotO.GSMValue != "300" || gotO.Dimension != "5x5" {
		t.Errorf("other fields should still sync: gsm=%q dim=%q", gotO.GSMValue, gotO.Dimension)
	}
	if gotO.SpecialEffects != "[unreadable legacy value]" {
		t.Errorf("raw value should carry to snapshot as display fallback, got %q", gotO.SpecialEffects)
	}
}

// One failing order must not stop the rest of the batch.
func TestRun_PartialFailureIsolation(t *testing.T) {
	db := newTestDB(t)
	seedLookups(t, db)

	p := seedProduct(t, db)
	// Pre-normalize so only order updates happen in this run
	db.Model(&models.Product{}).Where("id = ?", p.ID).
		Updates(map[string]interface{}{"special_effects": "4|7", "specs": freshLivadrineSpecs})

	for i := 1; i <= 10; i++ {
		o := models.Order{
			ID:        fmt.Sprintf("ord-%d", i),
			OrderID:   fmt.Sprintf("ORD-20260801-%04d", i),
			ProductID: strPtr("prod-1"),
		}
		if err := db.Create(&o).Error; err != nil {
			t.Fatal(err)
		}
	}

	// Force order #5 to fail its update
	err := db.Exec(`CREATE TRIGGER fail_ord_5 BEFORE UPDATE ON orders
		FOR EACH ROW WHEN NEW.id = 'ord-5'
		BEGIN SELECT RAISE(ABORT, 'forced update failure'); END`).Error
	if err != nil {
		t.Fatalf("failed to install trigger: %v", err)
	}

	engine := newEngine(t, db)
	report, err := engine.Run(ModeForceOverwrite)
	if err != nil {
		t.Fatalf("run should not abort on a record failure: %v", err)
	}

	if report.OrdersProcessed != 10 {
		t.Errorf("orders processed = %d, want 10", report.OrdersProcessed)
	}
	if report.OrdersUpdated != 9 {
		t.Errorf("orders updated = %d, want 9", report.OrdersUpdated)
	}
	if report.ErrorCount() != 1 {
		t.Fatalf("errors = %d, want 1 (%+v)", report.ErrorCount(), report.Failures)
	}
	if report.Failures[0].ID != "ord-5" {
		t.Errorf("failure should name ord-5, got %+v", report.Failures[0])
	}

	// Orders after the failing one were still written
	var got models.Order
	db.First(&got, "id = ?", "ord-10")
	if got.ProductName != "Livadrine Carton" {
		t.Errorf("order after failure not synced: %q", got.ProductName)
	}
}

// Long runs emit a progress line every ProgressEvery processed orders.
func TestRun_ProgressLines(t *testing.T) {
	db := newTestDB(t)
	seedLookups(t, db)
	p := seedProduct(t, db)
	db.Model(&models.Product{}).Where("id = ?", p.ID).
		Updates(map[string]interface{}{"special_effects": "4|7", "specs": freshLivadrineSpecs})

	for i := 1; i <= 5; i++ {
		o := models.Order{
			ID:        fmt.Sprintf("ord-%d", i),
			OrderID:   fmt.Sprintf("ORD-20260802-%04d", i),
			ProductID: strPtr("prod-1"),
		}
		if err := db.Create(&o).Error; err != nil {
			t.Fatal(err)
		}
	}

	engine := newEngine(t, db)
	engine.ProgressEvery = 2

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	if _, err := engine.Run(ModeForceOverwrite); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "... 2 orders processed") {
		t.Errorf("missing progress line at 2 orders:\n%s", out)
	}
	if !strings.Contains(out, "... 4 orders processed") {
		t.Errorf("missing progress line at 4 orders:\n%s", out)
	}
	if strings.Contains(out, "... 5 orders processed") {
		t.Errorf("progress should only fire on the interval:\n%s", out)
	}
}

// Reconciling a single product must not touch orders of other products.
func TestRunProduct_Scoped(t *testing.T) {
	db := newTestDB(t)
	seedLookups(t, db)
	seedProduct(t, db)

	other := models.Product{ID: "prod-2", ProductName: "Other Box"}
	if err := db.Create(&other).Error; err != nil {
		t.Fatal(err)
	}
	db.Create(&models.Order{ID: "ord-1", OrderID: "O-1", ProductID: strPtr("prod-1")})
	db.Create(&models.Order{ID: "ord-2", OrderID: "O-2", ProductID: strPtr("prod-2"), ProductName: "stale"})

	engine := newEngine(t, db)
	report, err := engine.RunProduct("prod-1", ModeForceOverwrite)
	if err != nil {
		t.Fatal(err)
	}
	if report.OrdersProcessed != 1 {
		t.Errorf("orders processed = %d, want 1", report.OrdersProcessed)
	}

	var untouched models.Order
	db.First(&untouched, "id = ?", "ord-2")
	if untouched.ProductName != "stale" {
		t.Errorf("out-of-scope order was modified: %q", untouched.ProductName)
	}
}

func TestParseMode(t *testing.T) {
	for input, want := range map[string]Mode{
		"fill": ModeFillBlanks, "fill_blanks": ModeFillBlanks, "": ModeFillBlanks,
		"force": ModeForceOverwrite, "force_overwrite": ModeForceOverwrite,
	} {
		got, err := ParseMode(input)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", input, got, err, want)
		}
	}
	if _, err := ParseMode("bogus"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
