package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActionType classifies an assignment-history entry
type ActionType string

const (
	ActionCreacion     ActionType = "creacion"      // Equipment registered in the system
	ActionAsignacion   ActionType = "asignacion"    // Handed to an employee
	ActionDevolucion   ActionType = "devolucion"    // Returned from an employee
	ActionCambioEstado ActionType = "cambio_estado" // Any other status change
)

// AssignmentHistory is the append-only record of one status transition or
// assignment event for one equipment item. Rows are only ever inserted;
// there is no soft delete so history survives removal of the equipment row.
// Equipment is referenced by (kind, id) rather than a foreign key for the
// same reason.
type AssignmentHistory struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	EquipmentKind  EquipmentKind   `gorm:"type:varchar(20);not null;index:idx_assignment_equipment" json:"equipmentKind"`
	EquipmentID    uint            `gorm:"not null;index:idx_assignment_equipment" json:"equipmentId"`
	ActionType     ActionType      `gorm:"type:varchar(30);not null" json:"actionType"`
	FromStatus     EquipmentStatus `gorm:"type:varchar(50)" json:"fromStatus"`
	ToStatus       EquipmentStatus `gorm:"type:varchar(50);not null" json:"toStatus"`
	Motive         string          `gorm:"type:text" json:"motive"`
	Notes          string          `gorm:"type:text" json:"notes"`
	EvidencePhotos datatypes.JSON  `json:"evidencePhotos"`
	EmployeeID     *uint           `gorm:"index" json:"employeeId,omitempty"`
	DepartmentID   *uint           `json:"departmentId,omitempty"`
	LocationID     *uint           `json:"locationId,omitempty"`
	CreatedAt      time.Time       `gorm:"index" json:"createdAt"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

// TableName specifies the table name for AssignmentHistory model
func (AssignmentHistory) TableName() string {
	return "assignment_history"
}

// FieldModification is the append-only record of a single tracked field edit
// (old value -> new value) on an equipment item, independent of status.
type FieldModification struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	EquipmentKind EquipmentKind `gorm:"type:varchar(20);not null;index:idx_modification_equipment" json:"equipmentKind"`
	EquipmentID   uint          `gorm:"not null;index:idx_modification_equipment" json:"equipmentId"`
	FieldName     string        `gorm:"type:varchar(100);not null" json:"fieldName"`
	OldValue      string        `gorm:"type:text" json:"oldValue"`
	NewValue      string        `gorm:"type:text" json:"newValue"`
	ChangedBy     string        `json:"changedBy"`
	CreatedAt     time.Time     `gorm:"index" json:"createdAt"`
}

// TableName specifies the table name for FieldModification model
func (FieldModification) TableName() string {
	return "field_modifications"
}

// Intervention records a maintenance or inspection event. Unlike the other
// history kinds it supports in-place edits of notes and photos after creation.
type Intervention struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	EquipmentKind    EquipmentKind  `gorm:"type:varchar(20);not null;index:idx_intervention_equipment" json:"equipmentKind"`
	EquipmentID      uint           `gorm:"not null;index:idx_intervention_equipment" json:"equipmentId"`
	InterventionType string         `gorm:"type:varchar(50);not null" json:"interventionType"` // preventivo | correctivo | inspeccion
	Notes            string         `gorm:"type:text" json:"notes"`
	Photos           datatypes.JSON `json:"photos"`
	PerformedBy      string         `json:"performedBy"`
	CreatedAt        time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// TableName specifies the table name for Intervention model
func (Intervention) TableName() string {
	return "interventions"
}
