package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/printomax/packtrackgo/internal/models"
	"github.com/printomax/packtrackgo/internal/services/printer"
)

func (r *Router) orderDocument(w http.ResponseWriter, req *http.Request,
	filename string, generate func(*models.Order) ([]byte, error)) {

	var order models.Order
	if err := r.db.First(&order, "id = ?", mux.Vars(req)["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "Order not found")
		return
	}

	data, err := generate(&order)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate document")
		return
	}
	respondPDF(w, order.OrderID+"-"+filename, data)
}

func (r *Router) orderCOA(w http.ResponseWriter, req *http.Request) {
	r.orderDocument(w, req, "coa.pdf", printer.GenerateCOA)
}

func (r *Router) orderDeliveryLabel(w http.ResponseWriter, req *http.Request) {
	r.orderDocument(w, req, "label.pdf", printer.GenerateDeliveryLabel)
}

func (r *Router) orderShadeCard(w http.ResponseWriter, req *http.Request) {
	r.orderDocument(w, req, "shadecard.pdf", printer.GenerateShadeCard)
}
