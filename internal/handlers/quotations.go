package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/printomax/packtrackgo/internal/models"
	"github.com/printomax/packtrackgo/internal/services/quotation"
)

func (r *Router) listQuotations(w http.ResponseWriter, req *http.Request) {
	var quotations []models.Quotation
	query := r.db.Order("created_at DESC")

	if customerID := req.URL.Query().Get("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	if err := query.Find(&quotations).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch quotations")
		return
	}
	respondJSON(w, http.StatusOK, quotations)
}

func (r *Router) createQuotation(w http.ResponseWriter, req *http.Request) {
	var q models.Quotation
	if err := json.NewDecoder(req.Body).Decode(&q); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	quotation.Calculate(&q)

	if err := r.db.Create(&q).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create quotation")
		return
	}
	respondJSON(w, http.StatusCreated, q)
}

func (r *Router) getQuotation(w http.ResponseWriter, req *http.Request) {
	var q models.Quotation
	if err := r.db.First(&q, "id = ?", mux.Vars(req)["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "Quotation not found")
		return
	}
	respondJSON(w, http.StatusOK, q)
}

func (r *Router) updateQuotation(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var q models.Quotation
	if err := r.db.First(&q, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Quotation not found")
		return
	}

	if err := json.NewDecoder(req.Body).Decode(&q); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	q.ID = id

	// Amounts are always derived, never trusted from the client
	quotation.Calculate(&q)

	if err := r.db.Save(&q).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update quotation")
		return
	}
	respondJSON(w, http.StatusOK, q)
}
