package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/models"
	"gorm.io/gorm"
)

// trackedComputerFields maps tracked field names to accessors. Editing any
// of these appends a FieldModification entry for the old -> new pair.
var trackedComputerFields = []struct {
	name string
	get  func(*models.Computer) string
}{
	{"hostname", func(c *models.Computer) string { return c.Hostname }},
	{"processor", func(c *models.Computer) string { return c.Processor }},
	{"ram", func(c *models.Computer) string { return c.RAM }},
	{"storage", func(c *models.Computer) string { return c.Storage }},
	{"os", func(c *models.Computer) string { return c.OS }},
	{"notes", func(c *models.Computer) string { return c.Notes }},
}

var trackedDeviceFields = []struct {
	name string
	get  func(*models.Device) string
}{
	{"deviceType", func(d *models.Device) string { return d.DeviceType }},
	{"notes", func(d *models.Device) string { return d.Notes }},
}

// diffComputer returns one FieldModification per tracked field that changed
func diffComputer(old, updated *models.Computer, changedBy string) []models.FieldModification {
	var mods []models.FieldModification
	for _, f := range trackedComputerFields {
		before, after := f.get(old), f.get(updated)
		if before != after {
			mods = append(mods, models.FieldModification{
				EquipmentKind: models.KindComputer,
				EquipmentID:   old.ID,
				FieldName:     f.name,
				OldValue:      before,
				NewValue:      after,
				ChangedBy:     changedBy,
			})
		}
	}
	return mods
}

// diffDevice returns one FieldModification per tracked field that changed
func diffDevice(old, updated *models.Device, changedBy string) []models.FieldModification {
	var mods []models.FieldModification
	for _, f := range trackedDeviceFields {
		before, after := f.get(old), f.get(updated)
		if before != after {
			mods = append(mods, models.FieldModification{
				EquipmentKind: models.KindDevice,
				EquipmentID:   old.ID,
				FieldName:     f.name,
				OldValue:      before,
				NewValue:      after,
				ChangedBy:     changedBy,
			})
		}
	}
	return mods
}

// UpdateComputer saves edits to a computer's technical attributes and logs a
// FieldModification for every tracked field that changed. Status, employee
// and location are owned by ChangeStatus and are not touched here.
func (s *Service) UpdateComputer(ctx context.Context, id uint, updated *models.Computer, changedBy string) (*models.Computer, error) {
	if updated.Serial == "" || updated.InternalCode == "" {
		return nil, fmt.Errorf("%w: serial and internalCode are required", ErrValidation)
	}

	var result models.Computer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var old models.Computer
		if err := tx.First(&old, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: computer %d", ErrNotFound, id)
			}
			return err
		}

		mods := diffComputer(&old, updated, changedBy)

		old.Serial = updated.Serial
		old.InternalCode = updated.InternalCode
		old.BrandID = updated.BrandID
		old.ModelID = updated.ModelID
		old.Hostname = updated.Hostname
		old.Processor = updated.Processor
		old.RAM = updated.RAM
		old.Storage = updated.Storage
		old.OS = updated.OS
		old.MacAddresses = updated.MacAddresses
		old.PurchaseDate = updated.PurchaseDate
		old.PurchaseCost = updated.PurchaseCost
		old.Provider = updated.Provider
		old.InvoiceNumber = updated.InvoiceNumber
		old.Photos = updated.Photos
		old.Notes = updated.Notes

		if err := tx.Save(&old).Error; err != nil {
			return err
		}
		if len(mods) > 0 {
			if err := tx.Create(&mods).Error; err != nil {
				return err
			}
		}
		result = old
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.EquipmentChanged(models.KindComputer, id)
	}
	return &result, nil
}

// UpdateDevice is the device counterpart of UpdateComputer
func (s *Service) UpdateDevice(ctx context.Context, id uint, updated *models.Device, changedBy string) (*models.Device, error) {
	if updated.Serial == "" || updated.InternalCode == "" {
		return nil, fmt.Errorf("%w: serial and internalCode are required", ErrValidation)
	}

	var result models.Device
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var old models.Device
		if err := tx.First(&old, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: device %d", ErrNotFound, id)
			}
			return err
		}

		mods := diffDevice(&old, updated, changedBy)

		old.Serial = updated.Serial
		old.InternalCode = updated.InternalCode
		old.DeviceType = updated.DeviceType
		old.BrandID = updated.BrandID
		old.ModelID = updated.ModelID
		old.PurchaseDate = updated.PurchaseDate
		old.PurchaseCost = updated.PurchaseCost
		old.Provider = updated.Provider
		old.InvoiceNumber = updated.InvoiceNumber
		old.Photos = updated.Photos
		old.Notes = updated.Notes

		if err := tx.Save(&old).Error; err != nil {
			return err
		}
		if len(mods) > 0 {
			if err := tx.Create(&mods).Error; err != nil {
				return err
			}
		}
		result = old
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.EquipmentChanged(models.KindDevice, id)
	}
	return &result, nil
}

// AddIntervention records a maintenance/inspection event for one equipment item
func (s *Service) AddIntervention(ctx context.Context, iv *models.Intervention) error {
	if !iv.EquipmentKind.IsValid() {
		return fmt.Errorf("%w: unknown equipment kind %q", ErrValidation, iv.EquipmentKind)
	}
	if iv.InterventionType == "" {
		return fmt.Errorf("%w: interventionType is required", ErrValidation)
	}
	if _, err := loadState(s.db.WithContext(ctx), iv.EquipmentKind, iv.EquipmentID); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Create(iv).Error; err != nil {
		return err
	}
	if s.notifier != nil {
		s.notifier.EquipmentChanged(iv.EquipmentKind, iv.EquipmentID)
	}
	return nil
}

// UpdateIntervention edits the notes and photos of an existing intervention.
// It is the only history-like record that supports in-place edits; nothing
// else about the equipment or its history is touched.
func (s *Service) UpdateIntervention(ctx context.Context, id uint, notes string, photos []string) (*models.Intervention, error) {
	var iv models.Intervention
	if err := s.db.WithContext(ctx).First(&iv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: intervention %d", ErrNotFound, id)
		}
		return nil, err
	}

	iv.Notes = notes
	iv.Photos = photosJSON(photos)
	if err := s.db.WithContext(ctx).Save(&iv).Error; err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.EquipmentChanged(iv.EquipmentKind, iv.EquipmentID)
	}
	return &iv, nil
}
