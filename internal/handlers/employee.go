package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/models"
)

// listEmployees returns all employees with their department
func (r *Router) listEmployees(w http.ResponseWriter, req *http.Request) {
	db := r.db.Preload("Department.Company")
	if v := req.URL.Query().Get("departmentId"); v != "" {
		db = db.Where("department_id = ?", v)
	}

	var employees []models.Employee
	if err := db.Find(&employees).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch employees")
		return
	}
	respondJSON(w, http.StatusOK, employees)
}

// getEmployee returns one employee with their assigned equipment
func (r *Router) getEmployee(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	var employee models.Employee
	if err := r.db.Preload("Department.Company").
		Preload("Computers").Preload("Devices").
		First(&employee, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Employee not found")
		return
	}
	respondJSON(w, http.StatusOK, employee)
}

// createEmployee registers a new employee
func (r *Router) createEmployee(w http.ResponseWriter, req *http.Request) {
	var employee models.Employee
	if err := json.NewDecoder(req.Body).Decode(&employee); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if employee.EmployeeNumber == "" || employee.FirstName == "" || employee.LastName == "" {
		respondError(w, http.StatusBadRequest, "employeeNumber, firstName and lastName are required")
		return
	}

	if err := r.db.Create(&employee).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create employee")
		return
	}
	respondJSON(w, http.StatusCreated, employee)
}

// updateEmployee updates an existing employee
func (r *Router) updateEmployee(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	var employee models.Employee
	if err := r.db.First(&employee, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Employee not found")
		return
	}
	if err := json.NewDecoder(req.Body).Decode(&employee); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := r.db.Save(&employee).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update employee")
		return
	}
	respondJSON(w, http.StatusOK, employee)
}

// deleteEmployee removes an employee; rejected with a conflict while any
// equipment is still assigned to them
func (r *Router) deleteEmployee(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	if err := r.lifecycle.DeleteEmployee(req.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Employee deleted successfully",
	})
}
