package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/printomax/packtrackgo/internal/lookup"
	"github.com/printomax/packtrackgo/internal/models"
	"github.com/printomax/packtrackgo/internal/sync"
	"github.com/printomax/packtrackgo/internal/websocket"
)

// SyncRequest triggers a reconciliation run over the API.
type SyncRequest struct {
	Mode      string `json:"mode"`                 // fill | force
	ProductID string `json:"product_id,omitempty"` // empty = all products
}

// runSync executes a reconciliation run and returns its report.
func (r *Router) runSync(w http.ResponseWriter, req *http.Request) {
	var syncReq SyncRequest
	if err := json.NewDecoder(req.Body).Decode(&syncReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	mode, err := sync.ParseMode(syncReq.Mode)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	maps := lookup.Resolve(r.db.DB, models.AllLookupTables...)
	engine := sync.NewEngine(r.db.DB, maps)
	engine.ProgressEvery = r.cfg.Sync.ProgressEvery

	var report *sync.Report
	if syncReq.ProductID != "" {
		report, err = engine.RunProduct(syncReq.ProductID, mode)
	} else {
		report, err = engine.Run(mode)
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("🔄 API sync run: %s", report.Summary())
	r.hub.Broadcast(websocket.Event{Type: "SYNC_COMPLETE", Payload: report})

	respondJSON(w, http.StatusOK, report)
}
