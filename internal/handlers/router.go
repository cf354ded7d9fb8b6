package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/printomax/packtrackgo/internal/config"
	"github.com/printomax/packtrackgo/internal/database"
	"github.com/printomax/packtrackgo/internal/middleware"
	"github.com/printomax/packtrackgo/internal/websocket"
)

// Router wraps the mux router with its collaborators
type Router struct {
	*mux.Router
	db  *database.DB
	cfg *config.Config
	hub *websocket.Hub
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config, hub *websocket.Hub) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		db:     db,
		cfg:    cfg,
		hub:    hub,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")
	auth.HandleFunc("/register", r.register).Methods("POST")

	// Realtime board updates
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		websocket.ServeWS(hub, w, req)
	})

	// API routes (protected)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(cfg.JWTSecret))

	api.HandleFunc("/status", r.getStatus).Methods("GET")

	// Product master
	api.HandleFunc("/products", r.listProducts).Methods("GET")
	api.HandleFunc("/products", r.createProduct).Methods("POST")
	api.HandleFunc("/products/{id}", r.getProduct).Methods("GET")
	api.HandleFunc("/products/{id}", r.updateProduct).Methods("PUT")
	api.HandleFunc("/products/{id}", r.deleteProduct).Methods("DELETE")

	// Orders
	api.HandleFunc("/orders", r.listOrders).Methods("GET")
	api.HandleFunc("/orders", r.createOrder).Methods("POST")
	api.HandleFunc("/orders/{id}", r.getOrder).Methods("GET")
	api.HandleFunc("/orders/{id}", r.updateOrder).Methods("PUT")
	api.HandleFunc("/orders/{id}", r.deleteOrder).Methods("DELETE")
	api.HandleFunc("/orders/{id}/progress", r.updateOrderProgress).Methods("PATCH")
	api.HandleFunc("/orders/{id}/split", r.splitOrder).Methods("POST")

	// Printable documents
	api.HandleFunc("/orders/{id}/coa.pdf", r.orderCOA).Methods("GET")
	api.HandleFunc("/orders/{id}/label.pdf", r.orderDeliveryLabel).Methods("GET")
	api.HandleFunc("/orders/{id}/shadecard.pdf", r.orderShadeCard).Methods("GET")

	// Lookup tables
	api.HandleFunc("/lookups/{table}", r.listLookup).Methods("GET")
	api.HandleFunc("/lookups/{table}", r.createLookup).Methods("POST")

	// Quotations
	api.HandleFunc("/quotations", r.listQuotations).Methods("GET")
	api.HandleFunc("/quotations", r.createQuotation).Methods("POST")
	api.HandleFunc("/quotations/{id}", r.getQuotation).Methods("GET")
	api.HandleFunc("/quotations/{id}", r.updateQuotation).Methods("PUT")

	// Reconciliation
	api.HandleFunc("/sync/run", r.runSync).Methods("POST")

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// getStatus returns the current status
func (r *Router) getStatus(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "running",
		"version": "1.0.0",
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondPDF streams a generated document
func respondPDF(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
