package models

import (
	"time"

	"gorm.io/gorm"
)

// Brand is a manufacturer reference entry
type Brand struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"unique;not null" json:"name"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Models []DeviceModel `gorm:"foreignKey:BrandID" json:"models,omitempty"`
}

// TableName specifies the table name for Brand model
func (Brand) TableName() string {
	return "brands"
}

// DeviceModel is a brand-scoped hardware model reference entry
type DeviceModel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;index" json:"name"`
	BrandID   uint           `gorm:"not null;index" json:"brandId"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Brand *Brand `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
}

// TableName specifies the table name for DeviceModel model
func (DeviceModel) TableName() string {
	return "device_models"
}
