package models

import "strings"

// EquipmentStatus defines the lifecycle state of an equipment item
type EquipmentStatus string

const (
	StatusOperativo       EquipmentStatus = "OPERATIVO"        // In the available pool, unassigned
	StatusAsignado        EquipmentStatus = "ASIGNADO"         // Handed to an employee
	StatusEnMantenimiento EquipmentStatus = "EN_MANTENIMIENTO" // Under maintenance/repair
	StatusEnResguardo     EquipmentStatus = "EN_RESGUARDO"     // Kept in storage
	StatusDeBaja          EquipmentStatus = "DE_BAJA"          // Decommissioned
)

// AllStatuses lists every canonical status value
var AllStatuses = []EquipmentStatus{
	StatusOperativo,
	StatusAsignado,
	StatusEnMantenimiento,
	StatusEnResguardo,
	StatusDeBaja,
}

// legacyStatuses maps free-text variants found in older records to canonical values.
// Older exports wrote statuses as hand-typed Spanish labels.
var legacyStatuses = map[string]EquipmentStatus{
	"OPERATIVO":        StatusOperativo,
	"ASIGNADO":         StatusAsignado,
	"EN MANTENIMIENTO": StatusEnMantenimiento,
	"EN_MANTENIMIENTO": StatusEnMantenimiento,
	"MANTENIMIENTO":    StatusEnMantenimiento,
	"EN RESGUARDO":     StatusEnResguardo,
	"EN_RESGUARDO":     StatusEnResguardo,
	"RESGUARDO":        StatusEnResguardo,
	"DE BAJA":          StatusDeBaja,
	"DE_BAJA":          StatusDeBaja,
	"BAJA":             StatusDeBaja,
}

// NormalizeStatus maps a stored status string (canonical or legacy free-text)
// to its canonical value. The boolean is false when the input is not a known
// status in any form. All reads from older records pass through here so the
// rest of the system only ever sees canonical values.
func NormalizeStatus(raw string) (EquipmentStatus, bool) {
	key := strings.ToUpper(strings.TrimSpace(raw))
	status, ok := legacyStatuses[key]
	return status, ok
}

// IsValid reports whether s is one of the canonical status values
func (s EquipmentStatus) IsValid() bool {
	switch s {
	case StatusOperativo, StatusAsignado, StatusEnMantenimiento, StatusEnResguardo, StatusDeBaja:
		return true
	}
	return false
}
