package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/lifecycle"
	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/middleware"
	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/models"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// equipmentPreloads attaches the relations every equipment response carries
func equipmentPreloads(db *gorm.DB) *gorm.DB {
	return db.Preload("Brand").Preload("Model").
		Preload("Employee").Preload("Department").Preload("Location")
}

// equipmentFilters applies the list query parameters. A legacy status value
// in the query is accepted and normalized; an unknown one is a validation
// error rather than a silently unfiltered list.
func equipmentFilters(db *gorm.DB, req *http.Request) (*gorm.DB, error) {
	q := req.URL.Query()
	if raw := q.Get("status"); raw != "" {
		status, ok := models.NormalizeStatus(raw)
		if !ok {
			return nil, fmt.Errorf("%w: unknown status %q", lifecycle.ErrValidation, raw)
		}
		db = db.Where("status = ?", status)
	}
	if v := q.Get("employeeId"); v != "" {
		db = db.Where("employee_id = ?", v)
	}
	if v := q.Get("departmentId"); v != "" {
		db = db.Where("department_id = ?", v)
	}
	if v := q.Get("locationId"); v != "" {
		db = db.Where("location_id = ?", v)
	}
	return db, nil
}

// listComputers returns computers, optionally filtered by status/assignment
func (r *Router) listComputers(w http.ResponseWriter, req *http.Request) {
	db, err := equipmentFilters(equipmentPreloads(r.db.DB), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var computers []models.Computer
	if err := db.Find(&computers).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch computers")
		return
	}
	respondJSON(w, http.StatusOK, computers)
}

// getComputer returns a single computer by ID
func (r *Router) getComputer(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid computer ID")
		return
	}

	var computer models.Computer
	if err := equipmentPreloads(r.db.DB).First(&computer, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Computer not found")
		return
	}
	respondJSON(w, http.StatusOK, computer)
}

// createComputer registers a new computer with its creation history entry
func (r *Router) createComputer(w http.ResponseWriter, req *http.Request) {
	var computer models.Computer
	if err := json.NewDecoder(req.Body).Decode(&computer); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := r.lifecycle.RegisterComputer(req.Context(), &computer); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, computer)
}

// updateComputer saves technical-field edits, logging each tracked change
func (r *Router) updateComputer(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid computer ID")
		return
	}

	var payload models.Computer
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updated, err := r.lifecycle.UpdateComputer(req.Context(), id, &payload, callerName(req))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// deleteComputer soft-deletes the row; history entries are kept
func (r *Router) deleteComputer(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid computer ID")
		return
	}

	if err := r.db.Delete(&models.Computer{}, id).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete computer")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Computer deleted successfully",
	})
}

// listDevices returns devices, optionally filtered
func (r *Router) listDevices(w http.ResponseWriter, req *http.Request) {
	db, err := equipmentFilters(equipmentPreloads(r.db.DB), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if v := req.URL.Query().Get("deviceType"); v != "" {
		db = db.Where("device_type = ?", v)
	}

	var devices []models.Device
	if err := db.Find(&devices).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch devices")
		return
	}
	respondJSON(w, http.StatusOK, devices)
}

// getDevice returns a single device by ID
func (r *Router) getDevice(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid device ID")
		return
	}

	var device models.Device
	if err := equipmentPreloads(r.db.DB).First(&device, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Device not found")
		return
	}
	respondJSON(w, http.StatusOK, device)
}

// createDevice registers a new device with its creation history entry
func (r *Router) createDevice(w http.ResponseWriter, req *http.Request) {
	var device models.Device
	if err := json.NewDecoder(req.Body).Decode(&device); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := r.lifecycle.RegisterDevice(req.Context(), &device); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, device)
}

// updateDevice saves technical-field edits, logging each tracked change
func (r *Router) updateDevice(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid device ID")
		return
	}

	var payload models.Device
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updated, err := r.lifecycle.UpdateDevice(req.Context(), id, &payload, callerName(req))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// deleteDevice soft-deletes the row; history entries are kept
func (r *Router) deleteDevice(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid device ID")
		return
	}

	if err := r.db.Delete(&models.Device{}, id).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete device")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Device deleted successfully",
	})
}

// changeStatus applies a lifecycle transition to one equipment item
func (r *Router) changeStatus(w http.ResponseWriter, req *http.Request) {
	kind := models.EquipmentKind(mux.Vars(req)["kind"])
	id, err := pathID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid equipment ID")
		return
	}

	var transition lifecycle.TransitionRequest
	if err := json.NewDecoder(req.Body).Decode(&transition); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := r.lifecycle.ChangeStatus(req.Context(), kind, id, transition); err != nil {
		respondServiceError(w, err)
		return
	}

	// Return the refreshed record so the client can swap its view in place
	if kind == models.KindComputer {
		var computer models.Computer
		if err := equipmentPreloads(r.db.DB).First(&computer, id).Error; err == nil {
			respondJSON(w, http.StatusOK, computer)
			return
		}
	} else {
		var device models.Device
		if err := equipmentPreloads(r.db.DB).First(&device, id).Error; err == nil {
			respondJSON(w, http.StatusOK, device)
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Status updated"})
}

// getHistory returns the merged newest-first timeline for one equipment item
func (r *Router) getHistory(w http.ResponseWriter, req *http.Request) {
	kind := models.EquipmentKind(mux.Vars(req)["kind"])
	id, err := pathID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid equipment ID")
		return
	}

	entries, err := r.lifecycle.Timeline(req.Context(), kind, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// createIntervention records a maintenance/inspection event
func (r *Router) createIntervention(w http.ResponseWriter, req *http.Request) {
	kind := models.EquipmentKind(mux.Vars(req)["kind"])
	id, err := pathID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid equipment ID")
		return
	}

	var intervention models.Intervention
	if err := json.NewDecoder(req.Body).Decode(&intervention); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	intervention.EquipmentKind = kind
	intervention.EquipmentID = id
	if intervention.PerformedBy == "" {
		intervention.PerformedBy = callerName(req)
	}

	if err := r.lifecycle.AddIntervention(req.Context(), &intervention); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, intervention)
}

// updateIntervention edits the notes/photos of an existing intervention
func (r *Router) updateIntervention(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid intervention ID")
		return
	}

	var payload struct {
		Notes  string   `json:"notes"`
		Photos []string `json:"photos"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updated, err := r.lifecycle.UpdateIntervention(req.Context(), id, payload.Notes, payload.Photos)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// callerName resolves the acting user's display name from the auth context
func callerName(req *http.Request) string {
	ac := middleware.FromRequest(req)
	if ac == nil {
		return ""
	}
	if ac.Name != "" {
		return ac.Name
	}
	return ac.Email
}
