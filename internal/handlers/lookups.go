package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/printomax/packtrackgo/internal/models"
)

// lookupFactories maps URL table names to their models. Also acts as
// the whitelist that keeps arbitrary table names out of queries.
var lookupFactories = map[string]func() interface{}{
	models.TableSpecialEffects:    func() interface{} { return &models.SpecialEffect{} },
	models.TableSizes:             func() interface{} { return &models.Size{} },
	models.TablePaperTypes:        func() interface{} { return &models.PaperType{} },
	models.TableGSM:               func() interface{} { return &models.GSM{} },
	models.TablePasting:           func() interface{} { return &models.Pasting{} },
	models.TableConstructions:     func() interface{} { return &models.Construction{} },
	models.TableSpecifications:    func() interface{} { return &models.Specification{} },
	models.TableDeliveryAddresses: func() interface{} { return &models.DeliveryAddress{} },
	models.TableCustomers:         func() interface{} { return &models.Customer{} },
	models.TablePrinters:          func() interface{} { return &models.Printer{} },
	models.TablePaperwala:         func() interface{} { return &models.Paperwala{} },
	models.TableCategories:        func() interface{} { return &models.Category{} },
}

func (r *Router) listLookup(w http.ResponseWriter, req *http.Request) {
	table := mux.Vars(req)["table"]
	if _, ok := lookupFactories[table]; !ok {
		respondError(w, http.StatusNotFound, "Unknown lookup table")
		return
	}

	var rows []map[string]interface{}
	if err := r.db.Table(table).Order("name").Find(&rows).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch lookup rows")
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (r *Router) createLookup(w http.ResponseWriter, req *http.Request) {
	table := mux.Vars(req)["table"]
	factory, ok := lookupFactories[table]
	if !ok {
		respondError(w, http.StatusNotFound, "Unknown lookup table")
		return
	}

	row := factory()
	if err := json.NewDecoder(req.Body).Decode(row); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := r.db.Create(row).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create lookup row")
		return
	}
	respondJSON(w, http.StatusCreated, row)
}
