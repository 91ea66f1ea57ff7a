package lifecycle

import (
	"fmt"

	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/models"
)

// TransitionRequest carries the payload of a status-change operation
type TransitionRequest struct {
	NewStatus        string   `json:"newStatus"`
	Motive           string   `json:"motive"`
	Notes            string   `json:"notes"`
	TargetEmployeeID *uint    `json:"targetEmployeeId,omitempty"`
	LocationID       *uint    `json:"locationId,omitempty"`
	EvidencePhotos   []string `json:"evidencePhotos,omitempty"`
}

// equipmentState is the slice of an equipment row a transition can touch
type equipmentState struct {
	Status       models.EquipmentStatus
	EmployeeID   *uint
	DepartmentID *uint
	LocationID   *uint
}

// planTransition computes the state after applying req to cur, plus the
// action type to record. It is pure: no database access, no side effects.
//
// Assignment policy per target status:
//   - ASIGNADO: employee set to the target, department derived from the employee
//   - EN_MANTENIMIENTO: current employee link retained (the asset returns to
//     the same user after service)
//   - OPERATIVO: employee cleared, asset back in the available pool
//   - EN_RESGUARDO: employee cleared, storage location applied when provided
//   - DE_BAJA: employee and location cleared
//
// A location in the request always overrides the equipment location.
func planTransition(cur equipmentState, req TransitionRequest, target *models.Employee) (equipmentState, models.ActionType, error) {
	status, ok := models.NormalizeStatus(req.NewStatus)
	if !ok {
		return cur, "", fmt.Errorf("%w: unknown status %q", ErrValidation, req.NewStatus)
	}

	next := equipmentState{Status: status}

	switch status {
	case models.StatusAsignado:
		if req.TargetEmployeeID == nil {
			return cur, "", fmt.Errorf("%w: targetEmployeeId is required for status ASIGNADO", ErrValidation)
		}
		if target == nil {
			return cur, "", fmt.Errorf("%w: employee %d", ErrNotFound, *req.TargetEmployeeID)
		}
		id := target.ID
		next.EmployeeID = &id
		next.DepartmentID = target.DepartmentID
		next.LocationID = cur.LocationID
	case models.StatusEnMantenimiento:
		next.EmployeeID = cur.EmployeeID
		next.DepartmentID = cur.DepartmentID
		next.LocationID = cur.LocationID
	case models.StatusDeBaja:
		// Employee and location both cleared; nothing carried over.
	default: // OPERATIVO, EN_RESGUARDO
		next.LocationID = cur.LocationID
	}

	if req.LocationID != nil {
		next.LocationID = req.LocationID
	}

	return next, actionFor(cur.Status, status), nil
}

// actionFor derives the history action type from the status movement
func actionFor(from, to models.EquipmentStatus) models.ActionType {
	switch {
	case to == models.StatusAsignado:
		return models.ActionAsignacion
	case from == models.StatusAsignado:
		return models.ActionDevolucion
	default:
		return models.ActionCambioEstado
	}
}
