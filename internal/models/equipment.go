package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EquipmentKind distinguishes the two concrete equipment tables
type EquipmentKind string

const (
	KindComputer EquipmentKind = "computer"
	KindDevice   EquipmentKind = "device"
)

// IsValid reports whether k names a known equipment table
func (k EquipmentKind) IsValid() bool {
	return k == KindComputer || k == KindDevice
}

// Computer represents a computer asset (desktop, laptop, server)
// Convention: Go PascalCase -> DB snake_case (GORM auto) -> JSON camelCase
type Computer struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Serial       string          `gorm:"unique;not null" json:"serial"`
	InternalCode string          `gorm:"unique;not null" json:"internalCode"`
	BrandID      *uint           `gorm:"index" json:"brandId,omitempty"`
	ModelID      *uint           `gorm:"index" json:"modelId,omitempty"`
	Hostname     string          `json:"hostname"`
	Processor    string          `json:"processor"`
	RAM          string          `json:"ram"`
	Storage      string          `json:"storage"`
	OS           string          `json:"os"`
	MacAddresses datatypes.JSON  `json:"macAddresses"`
	Status       EquipmentStatus `gorm:"type:varchar(50);default:'OPERATIVO';index" json:"status"`
	EmployeeID   *uint           `gorm:"index" json:"employeeId,omitempty"`
	DepartmentID *uint           `gorm:"index" json:"departmentId,omitempty"`
	LocationID   *uint           `gorm:"index" json:"locationId,omitempty"`

	// Purchase information
	PurchaseDate  *time.Time `json:"purchaseDate,omitempty"`
	PurchaseCost  float64    `json:"purchaseCost"`
	Provider      string     `json:"provider"`
	InvoiceNumber string     `json:"invoiceNumber"`

	Photos    datatypes.JSON `json:"photos"`
	Notes     string         `gorm:"type:text" json:"notes"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Brand      *Brand       `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Model      *DeviceModel `gorm:"foreignKey:ModelID" json:"model,omitempty"`
	Employee   *Employee    `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Department *Department  `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Location   *Location    `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

// TableName specifies the table name for Computer model
func (Computer) TableName() string {
	return "computers"
}

// Device represents a non-computer asset (monitor, printer, phone, peripheral)
type Device struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Serial       string          `gorm:"unique;not null" json:"serial"`
	InternalCode string          `gorm:"unique;not null" json:"internalCode"`
	DeviceType   string          `gorm:"index" json:"deviceType"` // monitor | printer | phone | ...
	BrandID      *uint           `gorm:"index" json:"brandId,omitempty"`
	ModelID      *uint           `gorm:"index" json:"modelId,omitempty"`
	Status       EquipmentStatus `gorm:"type:varchar(50);default:'OPERATIVO';index" json:"status"`
	EmployeeID   *uint           `gorm:"index" json:"employeeId,omitempty"`
	DepartmentID *uint           `gorm:"index" json:"departmentId,omitempty"`
	LocationID   *uint           `gorm:"index" json:"locationId,omitempty"`

	// Purchase information
	PurchaseDate  *time.Time `json:"purchaseDate,omitempty"`
	PurchaseCost  float64    `json:"purchaseCost"`
	Provider      string     `json:"provider"`
	InvoiceNumber string     `json:"invoiceNumber"`

	Photos    datatypes.JSON `json:"photos"`
	Notes     string         `gorm:"type:text" json:"notes"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Brand      *Brand       `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Model      *DeviceModel `gorm:"foreignKey:ModelID" json:"model,omitempty"`
	Employee   *Employee    `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Department *Department  `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Location   *Location    `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

// TableName specifies the table name for Device model
func (Device) TableName() string {
	return "devices"
}
