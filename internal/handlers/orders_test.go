package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/printomax/packtrackgo/internal/config"
	"github.com/printomax/packtrackgo/internal/database"
	"github.com/printomax/packtrackgo/internal/models"
	"github.com/printomax/packtrackgo/internal/websocket"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "handlers.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = gdb.AutoMigrate(
		&models.SpecialEffect{}, &models.Size{},
		&models.Product{}, &models.Order{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	db := &database.DB{DB: gdb}
	return NewRouter(db, &config.Config{JWTSecret: "test-secret"}, websocket.NewHub())
}

func seedParentOrder(t *testing.T, r *Router) models.Order {
	t.Helper()
	parent := models.Order{
		ID:          "ord-parent",
		OrderID:     "ORD-20260803-0001",
		ProductName: "Livadrine Carton",
		Quantity:    100,
	}
	if err := r.db.Create(&parent).Error; err != nil {
		t.Fatalf("seed parent failed: %v", err)
	}
	return parent
}

func doSplit(r *Router, id string, quantity int) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]int{"quantity": quantity})
	req := httptest.NewRequest("POST", "/api/orders/"+id+"/split", bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": id})
	rec := httptest.NewRecorder()
	r.splitOrder(rec, req)
	return rec
}

func TestSplitOrder(t *testing.T) {
	r := newTestRouter(t)
	seedParentOrder(t, r)

	rec := doSplit(r, "ord-parent", 40)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var child models.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &child); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if child.Quantity != 40 {
		t.Errorf("child quantity = %d, want 40", child.Quantity)
	}
	if child.OrderID != "ORD-20260803-0001-P1" {
		t.Errorf("child order_id = %q, want parent number with -P1 suffix", child.OrderID)
	}
	if child.ParentID == nil || *child.ParentID != "ord-parent" {
		t.Errorf("child parent_id = %v, want ord-parent", child.ParentID)
	}
	if child.ProductName != "Livadrine Carton" {
		t.Errorf("snapshot columns should copy verbatim, got %q", child.ProductName)
	}

	var parent models.Order
	r.db.First(&parent, "id = ?", "ord-parent")
	if parent.Quantity != 60 {
		t.Errorf("parent quantity = %d, want 60", parent.Quantity)
	}
}

// A failed parent reduction must roll the child insert back too, so the
// lineage's total quantity never inflates.
func TestSplitOrder_RollsBackChildOnParentFailure(t *testing.T) {
	r := newTestRouter(t)
	seedParentOrder(t, r)

	err := r.db.Exec(`CREATE TRIGGER fail_parent_update BEFORE UPDATE ON orders
		FOR EACH ROW WHEN NEW.id = 'ord-parent'
		BEGIN SELECT RAISE(ABORT, 'forced update failure'); END`).Error
	if err != nil {
		t.Fatalf("failed to install trigger: %v", err)
	}

	rec := doSplit(r, "ord-parent", 40)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}

	var children int64
	r.db.Model(&models.Order{}).Where("parent_id = ?", "ord-parent").Count(&children)
	if children != 0 {
		t.Errorf("child order survived a failed split, count = %d", children)
	}

	var parent models.Order
	r.db.First(&parent, "id = ?", "ord-parent")
	if parent.Quantity != 100 {
		t.Errorf("parent quantity = %d, want 100 untouched", parent.Quantity)
	}

	var total int
	r.db.Model(&models.Order{}).Select("COALESCE(SUM(quantity), 0)").Scan(&total)
	if total != 100 {
		t.Errorf("total quantity across lineage = %d, want 100", total)
	}
}

func TestSplitOrder_RejectsBadQuantity(t *testing.T) {
	r := newTestRouter(t)
	seedParentOrder(t, r)

	for _, qty := range []int{0, -5, 100, 150} {
		rec := doSplit(r, "ord-parent", qty)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("quantity %d: status = %d, want %d", qty, rec.Code, http.StatusBadRequest)
		}
	}
}
