package lifecycle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notifier receives a signal after every successful mutation so read views
// can be invalidated immediately instead of waiting on a poll timer.
type Notifier interface {
	EquipmentChanged(kind models.EquipmentKind, id uint)
}

// Service implements the equipment lifecycle: status transitions, the
// append-only history log and the merged timeline.
type Service struct {
	db       *gorm.DB
	notifier Notifier
}

// NewService creates a lifecycle service. notifier may be nil.
func NewService(db *gorm.DB, notifier Notifier) *Service {
	return &Service{db: db, notifier: notifier}
}

// photosJSON converts a URL list to a JSON column value
func photosJSON(urls []string) datatypes.JSON {
	if len(urls) == 0 {
		return datatypes.JSON([]byte("[]"))
	}
	b, _ := json.Marshal(urls)
	return datatypes.JSON(b)
}

// ChangeStatus applies a status transition to one equipment item and appends
// the matching history entry. Both writes happen in a single transaction: if
// the history insert fails, the status change rolls back.
func (s *Service) ChangeStatus(ctx context.Context, kind models.EquipmentKind, id uint, req TransitionRequest) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: unknown equipment kind %q", ErrValidation, kind)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := loadState(tx, kind, id)
		if err != nil {
			return err
		}

		var target *models.Employee
		if req.TargetEmployeeID != nil {
			var emp models.Employee
			if err := tx.First(&emp, *req.TargetEmployeeID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: employee %d", ErrNotFound, *req.TargetEmployeeID)
				}
				return err
			}
			target = &emp
		}

		next, action, err := planTransition(cur, req, target)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"status":        next.Status,
			"employee_id":   next.EmployeeID,
			"department_id": next.DepartmentID,
			"location_id":   next.LocationID,
		}
		if err := tx.Table(tableFor(kind)).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		entry := models.AssignmentHistory{
			EquipmentKind:  kind,
			EquipmentID:    id,
			ActionType:     action,
			FromStatus:     cur.Status,
			ToStatus:       next.Status,
			Motive:         req.Motive,
			Notes:          req.Notes,
			EvidencePhotos: photosJSON(req.EvidencePhotos),
			EmployeeID:     next.EmployeeID,
			DepartmentID:   next.DepartmentID,
			LocationID:     next.LocationID,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.EquipmentChanged(kind, id)
	}
	return nil
}

// tableFor maps an equipment kind to its table name
func tableFor(kind models.EquipmentKind) string {
	if kind == models.KindComputer {
		return models.Computer{}.TableName()
	}
	return models.Device{}.TableName()
}

// loadState reads the transition-relevant columns of one equipment row
func loadState(tx *gorm.DB, kind models.EquipmentKind, id uint) (equipmentState, error) {
	switch kind {
	case models.KindComputer:
		var c models.Computer
		if err := tx.First(&c, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return equipmentState{}, fmt.Errorf("%w: computer %d", ErrNotFound, id)
			}
			return equipmentState{}, err
		}
		return equipmentState{Status: c.Status, EmployeeID: c.EmployeeID, DepartmentID: c.DepartmentID, LocationID: c.LocationID}, nil
	case models.KindDevice:
		var d models.Device
		if err := tx.First(&d, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return equipmentState{}, fmt.Errorf("%w: device %d", ErrNotFound, id)
			}
			return equipmentState{}, err
		}
		return equipmentState{Status: d.Status, EmployeeID: d.EmployeeID, DepartmentID: d.DepartmentID, LocationID: d.LocationID}, nil
	}
	return equipmentState{}, fmt.Errorf("%w: unknown equipment kind %q", ErrValidation, kind)
}

// RegisterComputer creates a computer together with its creation history
// entry, and an assignment entry when it starts out assigned.
func (s *Service) RegisterComputer(ctx context.Context, c *models.Computer) error {
	if c.Serial == "" || c.InternalCode == "" {
		return fmt.Errorf("%w: serial and internalCode are required", ErrValidation)
	}
	if c.Status == "" {
		c.Status = models.StatusOperativo
	}
	if status, ok := models.NormalizeStatus(string(c.Status)); ok {
		c.Status = status
	} else {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, c.Status)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return tx.Create(&models.AssignmentHistory{
			EquipmentKind: models.KindComputer,
			EquipmentID:   c.ID,
			ActionType:    models.ActionCreacion,
			ToStatus:      c.Status,
			Motive:        "Registro inicial del equipo",
			EmployeeID:    c.EmployeeID,
			DepartmentID:  c.DepartmentID,
			LocationID:    c.LocationID,
		}).Error
	})
	if err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.EquipmentChanged(models.KindComputer, c.ID)
	}
	return nil
}

// RegisterDevice creates a device together with its creation history entry
func (s *Service) RegisterDevice(ctx context.Context, d *models.Device) error {
	if d.Serial == "" || d.InternalCode == "" {
		return fmt.Errorf("%w: serial and internalCode are required", ErrValidation)
	}
	if d.Status == "" {
		d.Status = models.StatusOperativo
	}
	if status, ok := models.NormalizeStatus(string(d.Status)); ok {
		d.Status = status
	} else {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, d.Status)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(d).Error; err != nil {
			return err
		}
		return tx.Create(&models.AssignmentHistory{
			EquipmentKind: models.KindDevice,
			EquipmentID:   d.ID,
			ActionType:    models.ActionCreacion,
			ToStatus:      d.Status,
			Motive:        "Registro inicial del equipo",
			EmployeeID:    d.EmployeeID,
			DepartmentID:  d.DepartmentID,
			LocationID:    d.LocationID,
		}).Error
	})
	if err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.EquipmentChanged(models.KindDevice, d.ID)
	}
	return nil
}

// DeleteEmployee removes an employee unless equipment is still assigned to
// them, in which case it fails with a conflict naming the blocking items.
func (s *Service) DeleteEmployee(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var emp models.Employee
		if err := tx.First(&emp, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: employee %d", ErrNotFound, id)
			}
			return err
		}

		var blocking []string
		var computers []models.Computer
		if err := tx.Where("employee_id = ?", id).Find(&computers).Error; err != nil {
			return err
		}
		for _, c := range computers {
			blocking = append(blocking, c.InternalCode)
		}
		var devices []models.Device
		if err := tx.Where("employee_id = ?", id).Find(&devices).Error; err != nil {
			return err
		}
		for _, d := range devices {
			blocking = append(blocking, d.InternalCode)
		}

		if len(blocking) > 0 {
			return fmt.Errorf("%w: employee has assigned equipment: %v", ErrConflict, blocking)
		}

		return tx.Delete(&emp).Error
	})
}
