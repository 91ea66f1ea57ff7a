package models

import (
	"time"

	"gorm.io/gorm"
)

// Company represents a legal entity owning departments and assets
type Company struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"unique;not null" json:"name"`
	RIF       string         `gorm:"unique" json:"rif"` // Tax registration number
	Address   string         `json:"address"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Departments []Department `gorm:"foreignKey:CompanyID" json:"departments,omitempty"`
}

// TableName specifies the table name for Company model
func (Company) TableName() string {
	return "companies"
}

// Department represents an organizational unit within a company
type Department struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;index" json:"name"`
	CompanyID *uint          `gorm:"index" json:"companyId,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Company   *Company   `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Employees []Employee `gorm:"foreignKey:DepartmentID" json:"employees,omitempty"`
}

// TableName specifies the table name for Department model
func (Department) TableName() string {
	return "departments"
}

// Location represents a physical site where equipment can sit
type Location struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;index" json:"name"`
	Address   string         `json:"address"`
	Floor     string         `json:"floor"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Location model
func (Location) TableName() string {
	return "locations"
}
