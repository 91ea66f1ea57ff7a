package models

import (
	"time"

	"gorm.io/gorm"
)

// Employee represents a member of staff equipment can be assigned to
type Employee struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	EmployeeNumber string         `gorm:"unique;not null" json:"employeeNumber"`
	FirstName      string         `gorm:"not null" json:"firstName"`
	LastName       string         `gorm:"not null" json:"lastName"`
	Email          string         `gorm:"unique" json:"email"`
	Position       string         `json:"position"`
	DepartmentID   *uint          `gorm:"index" json:"departmentId,omitempty"`
	IsActive       bool           `gorm:"default:true" json:"isActive"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Computers  []Computer  `gorm:"foreignKey:EmployeeID" json:"computers,omitempty"`
	Devices    []Device    `gorm:"foreignKey:EmployeeID" json:"devices,omitempty"`
}

// TableName specifies the table name for Employee model
func (Employee) TableName() string {
	return "employees"
}

// FullName returns the display name used in history messages and reports
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
