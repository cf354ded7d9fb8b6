package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/printomax/packtrackgo/internal/lookup"
	"github.com/printomax/packtrackgo/internal/models"
	"github.com/printomax/packtrackgo/internal/sync"
	"github.com/printomax/packtrackgo/internal/websocket"
	"gorm.io/gorm"
)

// applyProjection copies a product's resolved state onto an order's
// snapshot columns. Used at order entry and after splits; later drift
// is only corrected by explicit reconciliation runs.
func applyProjection(o *models.Order, pr *sync.Projection) {
	o.ProductName = pr.Product.ProductName
	o.CustomerName = pr.CustomerName
	o.PaperTypeName = pr.PaperTypeName
	o.GSMValue = pr.GSMValue
	o.PrintSize = pr.SizeName
	o.PastingType = pr.PastingType
	o.ConstructionType = pr.ConstructionType
	o.Specification = pr.Specification
	o.DeliveryAddress = pr.DeliveryAddress
	o.SpecialEffects = pr.Effects.Display
	o.Dimension = pr.Product.Dimension
	o.Ink = pr.Product.Ink
	o.PlateNo = pr.Product.PlateNo
	o.Coating = pr.Product.Coating
	o.ArtworkCode = pr.Product.ArtworkCode
	o.ArtworkPDF = pr.Product.ArtworkPDF
	o.ArtworkCDR = pr.Product.ArtworkCDR
	o.ProductImage = pr.Product.ProductImage
	o.FoldingDimension = pr.Product.FoldingDim
	o.Specs = pr.FreshSpecs
	o.ProductSpecs = pr.FreshSpecs
	o.UPS = pr.Product.UPS
}

func (r *Router) listOrders(w http.ResponseWriter, req *http.Request) {
	var orders []models.Order
	query := r.db.Order("created_at DESC")

	q := req.URL.Query()
	if status := q.Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if progress := q.Get("progress"); progress != "" {
		query = query.Where("progress = ?", progress)
	}
	if productID := q.Get("product_id"); productID != "" {
		query = query.Where("product_id = ?", productID)
	}
	if search := q.Get("q"); search != "" {
		query = query.Where("product_name LIKE ? OR customer_name LIKE ? OR order_id LIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Find(&orders).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// createOrder registers a new order, snapshotting the linked product's
// current resolved state onto it.
func (r *Router) createOrder(w http.ResponseWriter, req *http.Request) {
	var order models.Order
	if err := json.NewDecoder(req.Body).Decode(&order); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if order.ProductID != nil && *order.ProductID != "" {
		var product models.Product
		if err := r.db.First(&product, "id = ?", *order.ProductID).Error; err != nil {
			respondError(w, http.StatusBadRequest, "Linked product not found")
			return
		}

		maps := lookup.Resolve(r.db.DB, models.AllLookupTables...)
		engine := sync.NewEngine(r.db.DB, maps)
		pr, _ := engine.Project(product) // malformed effects carry raw display
		applyProjection(&order, &pr)
	}

	if err := r.db.Create(&order).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

func (r *Router) getOrder(w http.ResponseWriter, req *http.Request) {
	var order models.Order
	if err := r.db.First(&order, "id = ?", mux.Vars(req)["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "Order not found")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (r *Router) updateOrder(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var order models.Order
	if err := r.db.First(&order, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Order not found")
		return
	}

	if err := json.NewDecoder(req.Body).Decode(&order); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	order.ID = id

	if err := r.db.Save(&order).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (r *Router) deleteOrder(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]
	if err := r.db.Delete(&models.Order{}, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete order")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// updateOrderProgress moves an order across the production board
func (r *Router) updateOrderProgress(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var body struct {
		Progress models.OrderProgress `json:"progress"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !models.ValidProgress(body.Progress) {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown progress stage %q", body.Progress))
		return
	}

	var order models.Order
	if err := r.db.First(&order, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Order not found")
		return
	}

	if err := r.db.Model(&order).Update("progress", body.Progress).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update progress")
		return
	}

	r.hub.Broadcast(websocket.Event{Type: "ORDER_PROGRESS", Payload: map[string]string{
		"id":       order.ID,
		"order_id": order.OrderID,
		"progress": string(body.Progress),
	}})
	respondJSON(w, http.StatusOK, map[string]string{"id": id, "progress": string(body.Progress)})
}

// splitOrder clones a reduced-quantity copy of an order for partial
// dispatch. Snapshot columns are copied verbatim: a split preserves
// history, it does not re-resolve the product.
func (r *Router) splitOrder(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	var parent models.Order
	if err := r.db.First(&parent, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Order not found")
		return
	}

	if body.Quantity <= 0 || body.Quantity >= parent.Quantity {
		respondError(w, http.StatusBadRequest,
			fmt.Sprintf("split quantity must be between 1 and %d", parent.Quantity-1))
		return
	}

	var siblingCount int64
	r.db.Model(&models.Order{}).Where("parent_id = ?", parent.ID).Count(&siblingCount)

	child := parent
	child.ID = ""
	child.ParentID = &parent.ID
	child.OrderID = fmt.Sprintf("%s-P%d", parent.OrderID, siblingCount+1)
	child.Quantity = body.Quantity
	child.QtyDelivered = 0

	// Child insert and parent reduction commit together: a failure on
	// either side rolls both back, keeping the lineage's total quantity
	// intact.
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&child).Error; err != nil {
			return err
		}
		return tx.Model(&models.Order{}).Where("id = ?", parent.ID).
			Update("quantity", parent.Quantity-body.Quantity).Error
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to split order")
		return
	}

	r.hub.Broadcast(websocket.Event{Type: "ORDER_SPLIT", Payload: map[string]string{
		"parent_id": parent.ID,
		"child_id":  child.ID,
	}})
	respondJSON(w, http.StatusCreated, child)
}
