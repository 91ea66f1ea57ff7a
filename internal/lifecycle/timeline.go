package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/models"
	"gorm.io/gorm"
)

// Timeline assembles the merged, newest-first history feed for one equipment
// item: assignment entries, field modifications and interventions in a single
// chronological list of display-ready rows.
func (s *Service) Timeline(ctx context.Context, kind models.EquipmentKind, id uint) ([]TimelineEntry, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown equipment kind %q", ErrValidation, kind)
	}

	db := s.db.WithContext(ctx)

	info, err := loadCreationInfo(db, kind, id)
	if err != nil {
		return nil, err
	}

	var assignments []models.AssignmentHistory
	if err := db.
		Preload("Employee").
		Preload("Location").
		Where("equipment_kind = ? AND equipment_id = ?", kind, id).
		Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("could not load history: %w", err)
	}

	var mods []models.FieldModification
	if err := db.
		Where("equipment_kind = ? AND equipment_id = ?", kind, id).
		Find(&mods).Error; err != nil {
		return nil, fmt.Errorf("could not load history: %w", err)
	}

	var interventions []models.Intervention
	if err := db.
		Where("equipment_kind = ? AND equipment_id = ?", kind, id).
		Find(&interventions).Error; err != nil {
		return nil, fmt.Errorf("could not load history: %w", err)
	}

	entries := make([]TimelineEntry, 0, len(assignments)+len(mods)+len(interventions)+1)
	hasCreation := false
	for _, a := range assignments {
		if a.ActionType == models.ActionCreacion {
			hasCreation = true
		}
		entries = append(entries, displayForAssignment(a))
	}
	for _, m := range mods {
		entries = append(entries, displayForModification(m))
	}
	for _, iv := range interventions {
		entries = append(entries, displayForIntervention(iv))
	}

	// Older records predate the creation log entry; synthesize one from the
	// equipment's own stored attributes so every feed starts with a registration.
	if !hasCreation {
		entries = append(entries, syntheticCreation(info))
	}

	return mergeEntries(entries), nil
}

// mergeEntries sorts timeline entries newest first. Entries with identical
// timestamps keep a fixed order: assignment, then modification, then
// intervention.
func mergeEntries(entries []TimelineEntry) []TimelineEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].Timestamp.After(entries[j].Timestamp)
		}
		return entries[i].rank < entries[j].rank
	})
	return entries
}

// loadCreationInfo reads the attributes a synthetic creation entry needs,
// which doubles as the existence check for the equipment row. The lookup is
// unscoped: history outlives the equipment, so the timeline of a soft-deleted
// item stays readable.
func loadCreationInfo(db *gorm.DB, kind models.EquipmentKind, id uint) (creationInfo, error) {
	switch kind {
	case models.KindComputer:
		var c models.Computer
		if err := db.Unscoped().First(&c, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return creationInfo{}, fmt.Errorf("%w: computer %d", ErrNotFound, id)
			}
			return creationInfo{}, err
		}
		return creationInfo{Serial: c.Serial, InternalCode: c.InternalCode, PurchaseDate: c.PurchaseDate, Provider: c.Provider, CreatedAt: c.CreatedAt}, nil
	default:
		var d models.Device
		if err := db.Unscoped().First(&d, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return creationInfo{}, fmt.Errorf("%w: device %d", ErrNotFound, id)
			}
			return creationInfo{}, err
		}
		return creationInfo{Serial: d.Serial, InternalCode: d.InternalCode, PurchaseDate: d.PurchaseDate, Provider: d.Provider, CreatedAt: d.CreatedAt}, nil
	}
}
