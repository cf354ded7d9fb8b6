package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/printomax/packtrackgo/internal/lookup"
	"github.com/printomax/packtrackgo/internal/models"
	"github.com/printomax/packtrackgo/internal/specs"
)

// normalizeProduct collapses the effects field to its canonical form
// and rebuilds the derived specs string before the product is saved.
// A malformed legacy value is kept raw and logged, and the derived
// fields are left as they are: a product is never half-normalized.
func (r *Router) normalizeProduct(p *models.Product) {
	maps := lookup.Resolve(r.db.DB, models.TableSpecialEffects, models.TableSizes)

	effects, err := specs.NormalizeEffects(p.SpecialEffects, maps[models.TableSpecialEffects])
	if err != nil {
		log.Printf("⚠️  Product %s: %v", p.ProductName, err)
		return
	}

	p.SpecialEffects = effects.Canonical
	p.Specs = specs.BuildSpecs(
		maps.NameRef(models.TableSizes, p.SizeID),
		p.UPSValue(),
		p.Dimension,
		effects.Display,
	)
}

func (r *Router) listProducts(w http.ResponseWriter, req *http.Request) {
	var products []models.Product
	query := r.db.Order("product_name ASC")

	if customerID := req.URL.Query().Get("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if search := req.URL.Query().Get("q"); search != "" {
		query = query.Where("product_name LIKE ?", "%"+search+"%")
	}

	if err := query.Find(&products).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (r *Router) createProduct(w http.ResponseWriter, req *http.Request) {
	var product models.Product
	if err := json.NewDecoder(req.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if product.ProductName == "" {
		respondError(w, http.StatusBadRequest, "product_name is required")
		return
	}

	r.normalizeProduct(&product)

	if err := r.db.Create(&product).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (r *Router) getProduct(w http.ResponseWriter, req *http.Request) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", mux.Vars(req)["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (r *Router) updateProduct(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := json.NewDecoder(req.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	product.ID = id

	r.normalizeProduct(&product)

	if err := r.db.Save(&product).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (r *Router) deleteProduct(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	// Orders keep their snapshots; only the live link is cleared
	if err := r.db.Model(&models.Order{}).Where("product_id = ?", id).
		Update("product_id", nil).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to unlink orders")
		return
	}

	if err := r.db.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"deleted": id})
}
