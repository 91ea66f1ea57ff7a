package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/config"
	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/database"
	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/lifecycle"
	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/middleware"
	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/services/report"
	ws "github.com/chowanza/gestion-de-activos-imgc-sub000/internal/websocket"
	"github.com/gorilla/mux"
)

// Router wraps the mux router and the services handlers depend on
type Router struct {
	*mux.Router
	db        *database.DB
	cfg       *config.Config
	lifecycle *lifecycle.Service
	reports   *report.Service
	hub       *ws.Hub
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config, hub *ws.Hub) *Router {
	r := &Router{
		Router:    mux.NewRouter(),
		db:        db,
		cfg:       cfg,
		lifecycle: lifecycle.NewService(db.DB, hub),
		reports:   report.NewService(db.DB),
		hub:       hub,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")
	auth.HandleFunc("/register", r.register).Methods("POST")
	auth.HandleFunc("/logout", r.logout).Methods("POST")

	// Invalidation event feed
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		ws.ServeWs(hub, w, req)
	})

	// Evidence photos and other uploads are served statically
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// API routes (protected)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(cfg.JWTSecret))

	api.HandleFunc("/status", r.getStatus).Methods("GET")

	// Computers
	api.HandleFunc("/computers", middleware.Require(middleware.PermViewAssets, r.listComputers)).Methods("GET")
	api.HandleFunc("/computers", middleware.Require(middleware.PermEditAssets, r.createComputer)).Methods("POST")
	api.HandleFunc("/computers/{id}", middleware.Require(middleware.PermViewAssets, r.getComputer)).Methods("GET")
	api.HandleFunc("/computers/{id}", middleware.Require(middleware.PermEditAssets, r.updateComputer)).Methods("PUT")
	api.HandleFunc("/computers/{id}", middleware.Require(middleware.PermEditAssets, r.deleteComputer)).Methods("DELETE")

	// Devices
	api.HandleFunc("/devices", middleware.Require(middleware.PermViewAssets, r.listDevices)).Methods("GET")
	api.HandleFunc("/devices", middleware.Require(middleware.PermEditAssets, r.createDevice)).Methods("POST")
	api.HandleFunc("/devices/{id}", middleware.Require(middleware.PermViewAssets, r.getDevice)).Methods("GET")
	api.HandleFunc("/devices/{id}", middleware.Require(middleware.PermEditAssets, r.updateDevice)).Methods("PUT")
	api.HandleFunc("/devices/{id}", middleware.Require(middleware.PermEditAssets, r.deleteDevice)).Methods("DELETE")

	// Lifecycle (both kinds)
	api.HandleFunc("/equipment/{kind}/{id}/status", middleware.Require(middleware.PermManageStatus, r.changeStatus)).Methods("POST")
	api.HandleFunc("/equipment/{kind}/{id}/history", middleware.Require(middleware.PermViewAssets, r.getHistory)).Methods("GET")
	api.HandleFunc("/equipment/{kind}/{id}/interventions", middleware.Require(middleware.PermManageStatus, r.createIntervention)).Methods("POST")
	api.HandleFunc("/interventions/{id}", middleware.Require(middleware.PermManageStatus, r.updateIntervention)).Methods("PUT")

	// Employees
	api.HandleFunc("/employees", middleware.Require(middleware.PermViewAssets, r.listEmployees)).Methods("GET")
	api.HandleFunc("/employees", middleware.Require(middleware.PermManagePeople, r.createEmployee)).Methods("POST")
	api.HandleFunc("/employees/{id}", middleware.Require(middleware.PermViewAssets, r.getEmployee)).Methods("GET")
	api.HandleFunc("/employees/{id}", middleware.Require(middleware.PermManagePeople, r.updateEmployee)).Methods("PUT")
	api.HandleFunc("/employees/{id}", middleware.Require(middleware.PermManagePeople, r.deleteEmployee)).Methods("DELETE")

	// Reference data
	r.registerCRUD(api, "companies")
	r.registerCRUD(api, "departments")
	r.registerCRUD(api, "locations")
	r.registerCRUD(api, "brands")
	r.registerCRUD(api, "models")

	// Uploads, reports, labels
	api.HandleFunc("/uploads", middleware.Require(middleware.PermEditAssets, r.uploadFiles)).Methods("POST")
	api.HandleFunc("/reports/equipment", middleware.Require(middleware.PermViewReports, r.equipmentReport)).Methods("GET")
	api.HandleFunc("/print/labels", middleware.Require(middleware.PermViewAssets, r.printLabels)).Methods("POST")

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"server": "local",
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

// respondServiceError maps lifecycle errors onto HTTP statuses
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, lifecycle.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, lifecycle.ErrConflict):
		respondError(w, http.StatusConflict, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
