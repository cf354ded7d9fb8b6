package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/printomax/packtrackgo/internal/models"
)

func seedProductLookups(t *testing.T, r *Router) {
	t.Helper()
	rows := []interface{}{
		&models.SpecialEffect{ID: "4", Name: "Foil Stamping"},
		&models.Size{ID: "s1", Name: "20x30"},
	}
	for _, row := range rows {
		if err := r.db.Create(row).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
}

func doCreateProduct(r *Router, payload map[string]interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/products", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.createProduct(rec, req)
	return rec
}

func TestCreateProduct_NormalizesEffects(t *testing.T) {
	r := newTestRouter(t)
	seedProductLookups(t, r)

	rec := doCreateProduct(r, map[string]interface{}{
		"product_name":    "Livadrine Carton",
		"special_effects": `["4"]`,
		"dimension":       "10x5x5",
		"ups":             8,
		"size_id":         "s1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var got models.Product
	r.db.First(&got, "product_name = ?", "Livadrine Carton")
	if got.SpecialEffects != "4" {
		t.Errorf("special_effects = %q, want canonical \"4\"", got.SpecialEffects)
	}
	if want := "20x30 | UPS: 8 | 10x5x5 | Foil Stamping"; got.Specs != want {
		t.Errorf("specs = %q, want %q", got.Specs, want)
	}
}

// A malformed legacy effects value must leave the derived fields alone:
// the raw value is preserved and no garbage lands in specs.
func TestCreateProduct_MalformedEffectsLeftUntouched(t *testing.T) {
	r := newTestRouter(t)
	seedProductLookups(t, r)

	rec := doCreateProduct(r, map[string]interface{}{
		"product_name":    "Fercarb Label",
		"special_effects": "[unreadable legacy value]",
		"dimension":       "5x5",
		"size_id":         "s1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var got models.Product
	r.db.First(&got, "product_name = ?", "Fercarb Label")
	if got.SpecialEffects != "[unreadable legacy value]" {
		t.Errorf("raw value should be preserved, got %q", got.SpecialEffects)
	}
	if got.Specs != "" {
		t.Errorf("specs should not be rebuilt from a malformed value, got %q", got.Specs)
	}
}

func TestUpdateProduct_MalformedEffectsKeepsExistingSpecs(t *testing.T) {
	r := newTestRouter(t)
	seedProductLookups(t, r)

	p := models.Product{
		ID:             "prod-1",
		ProductName:    "Livadrine Carton",
		SpecialEffects: "4",
		Specs:          "20x30 | 10x5x5 | Foil Stamping",
	}
	if err := r.db.Create(&p).Error; err != nil {
		t.Fatal(err)
	}

	body, _ := json.Marshal(map[string]interface{}{
		"special_effects": "[unreadable legacy value]",
	})
	req := httptest.NewRequest("PUT", "/api/products/prod-1", bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": "prod-1"})
	rec := httptest.NewRecorder()
	r.updateProduct(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var got models.Product
	r.db.First(&got, "id = ?", "prod-1")
	if got.Specs != "20x30 | 10x5x5 | Foil Stamping" {
		t.Errorf("specs should survive a failed normalization, got %q", got.Specs)
	}
}
