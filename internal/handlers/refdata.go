package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/middleware"
	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/models"
	"github.com/gorilla/mux"
)

// refResource describes one lookup table exposed as plain CRUD. These
// entities carry no behavior, so a single generic handler set covers them.
type refResource struct {
	newRecord func() interface{}
	newSlice  func() interface{}
}

var refResources = map[string]refResource{
	"companies": {
		newRecord: func() interface{} { return &models.Company{} },
		newSlice:  func() interface{} { return &[]models.Company{} },
	},
	"departments": {
		newRecord: func() interface{} { return &models.Department{} },
		newSlice:  func() interface{} { return &[]models.Department{} },
	},
	"locations": {
		newRecord: func() interface{} { return &models.Location{} },
		newSlice:  func() interface{} { return &[]models.Location{} },
	},
	"brands": {
		newRecord: func() interface{} { return &models.Brand{} },
		newSlice:  func() interface{} { return &[]models.Brand{} },
	},
	"models": {
		newRecord: func() interface{} { return &models.DeviceModel{} },
		newSlice:  func() interface{} { return &[]models.DeviceModel{} },
	},
}

// registerCRUD wires the generic list/get/create/update/delete routes for
// one lookup resource
func (r *Router) registerCRUD(api *mux.Router, resource string) {
	res, ok := refResources[resource]
	if !ok {
		return
	}

	api.HandleFunc("/"+resource, middleware.Require(middleware.PermViewAssets,
		func(w http.ResponseWriter, req *http.Request) { r.listRef(w, req, res) })).Methods("GET")
	api.HandleFunc("/"+resource, middleware.Require(middleware.PermManageCatalog,
		func(w http.ResponseWriter, req *http.Request) { r.createRef(w, req, res) })).Methods("POST")
	api.HandleFunc("/"+resource+"/{id}", middleware.Require(middleware.PermViewAssets,
		func(w http.ResponseWriter, req *http.Request) { r.getRef(w, req, res) })).Methods("GET")
	api.HandleFunc("/"+resource+"/{id}", middleware.Require(middleware.PermManageCatalog,
		func(w http.ResponseWriter, req *http.Request) { r.updateRef(w, req, res) })).Methods("PUT")
	api.HandleFunc("/"+resource+"/{id}", middleware.Require(middleware.PermManageCatalog,
		func(w http.ResponseWriter, req *http.Request) { r.deleteRef(w, req, res) })).Methods("DELETE")
}

func (r *Router) listRef(w http.ResponseWriter, req *http.Request, res refResource) {
	records := res.newSlice()
	if err := r.db.Find(records).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch records")
		return
	}
	respondJSON(w, http.StatusOK, records)
}

func (r *Router) getRef(w http.ResponseWriter, req *http.Request, res refResource) {
	id, err := pathID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	record := res.newRecord()
	if err := r.db.First(record, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Record not found")
		return
	}
	respondJSON(w, http.StatusOK, record)
}

func (r *Router) createRef(w http.ResponseWriter, req *http.Request, res refResource) {
	record := res.newRecord()
	if err := json.NewDecoder(req.Body).Decode(record); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.db.Create(record).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create record")
		return
	}
	respondJSON(w, http.StatusCreated, record)
}

func (r *Router) updateRef(w http.ResponseWriter, req *http.Request, res refResource) {
	id, err := pathID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	record := res.newRecord()
	if err := r.db.First(record, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Record not found")
		return
	}
	if err := json.NewDecoder(req.Body).Decode(record); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.db.Save(record).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update record")
		return
	}
	respondJSON(w, http.StatusOK, record)
}

func (r *Router) deleteRef(w http.ResponseWriter, req *http.Request, res refResource) {
	id, err := pathID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	record := res.newRecord()
	if err := r.db.First(record, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Record not found")
		return
	}
	if err := r.db.Delete(record).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete record")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Record deleted successfully",
	})
}

// pathID parses the {id} path variable
func pathID(req *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	return uint(id), err
}
