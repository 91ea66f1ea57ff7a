package lifecycle

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/config"
	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/database"
	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/models"
)

var testDB *database.DB

// TestMain stands up one embedded PostgreSQL instance for the whole package.
// Localhost with an empty password selects the embedded mode in Connect.
func TestMain(m *testing.M) {
	db, err := database.Connect(config.DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		Username: "postgres",
		Database: "activos_test",
	})
	if err != nil {
		log.Printf("⚠️  Embedded database unavailable, skipping database tests: %v", err)
	} else {
		if err := db.AutoMigrate(
			&models.Company{},
			&models.Department{},
			&models.Location{},
			&models.Employee{},
			&models.Brand{},
			&models.DeviceModel{},
			&models.Computer{},
			&models.Device{},
			&models.AssignmentHistory{},
			&models.FieldModification{},
			&models.Intervention{},
		); err != nil {
			log.Printf("⚠️  Migration failed, skipping database tests: %v", err)
			db.Close()
		} else {
			testDB = db
		}
	}

	code := m.Run()

	if testDB != nil {
		testDB.Close()
		os.RemoveAll("./db_data")
	}
	os.Exit(code)
}

// testService skips the test when no database could be started
func testService(t *testing.T) *Service {
	t.Helper()
	if testDB == nil {
		t.Skip("embedded database unavailable")
	}
	return NewService(testDB.DB, nil)
}

// seedEmployee creates a department and an employee in it, unique per test
func seedEmployee(t *testing.T) *models.Employee {
	t.Helper()
	dept := models.Department{Name: "Depto " + t.Name()}
	if err := testDB.Create(&dept).Error; err != nil {
		t.Fatalf("Failed to create department: %v", err)
	}
	emp := models.Employee{
		EmployeeNumber: "EMP-" + t.Name(),
		FirstName:      "Carla",
		LastName:       "Mendoza",
		Email:          t.Name() + "@example.com",
		DepartmentID:   &dept.ID,
	}
	if err := testDB.Create(&emp).Error; err != nil {
		t.Fatalf("Failed to create employee: %v", err)
	}
	return &emp
}

func historyFor(t *testing.T, kind models.EquipmentKind, id uint) []models.AssignmentHistory {
	t.Helper()
	var entries []models.AssignmentHistory
	if err := testDB.
		Where("equipment_kind = ? AND equipment_id = ?", kind, id).
		Order("created_at asc, id asc").
		Find(&entries).Error; err != nil {
		t.Fatalf("Failed to load history: %v", err)
	}
	return entries
}

func TestChangeStatusAppendsHistory(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()
	emp := seedEmployee(t)

	c := models.Computer{Serial: "SN-" + t.Name(), InternalCode: "IC-" + t.Name()}
	if err := svc.RegisterComputer(ctx, &c); err != nil {
		t.Fatalf("Failed to register computer: %v", err)
	}

	err := svc.ChangeStatus(ctx, models.KindComputer, c.ID, TransitionRequest{
		NewStatus:        "ASIGNADO",
		Motive:           "Nuevo puesto de trabajo",
		TargetEmployeeID: &emp.ID,
	})
	if err != nil {
		t.Fatalf("Failed to change status: %v", err)
	}

	var got models.Computer
	if err := testDB.First(&got, c.ID).Error; err != nil {
		t.Fatalf("Failed to reload computer: %v", err)
	}
	if got.Status != models.StatusAsignado {
		t.Errorf("Status: got %q, want ASIGNADO", got.Status)
	}
	if got.EmployeeID == nil || *got.EmployeeID != emp.ID {
		t.Errorf("EmployeeID: got %v, want %d", got.EmployeeID, emp.ID)
	}
	if got.DepartmentID == nil || *got.DepartmentID != *emp.DepartmentID {
		t.Errorf("DepartmentID should derive from the employee, got %v", got.DepartmentID)
	}

	entries := historyFor(t, models.KindComputer, c.ID)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 history entries (creation + assignment), got %d", len(entries))
	}
	if entries[0].ActionType != models.ActionCreacion {
		t.Errorf("First entry: got %q, want creacion", entries[0].ActionType)
	}
	if entries[1].ActionType != models.ActionAsignacion {
		t.Errorf("Second entry: got %q, want asignacion", entries[1].ActionType)
	}
	if entries[1].ToStatus != models.StatusAsignado {
		t.Errorf("ToStatus: got %q", entries[1].ToStatus)
	}
	if entries[1].CreatedAt.Before(entries[0].CreatedAt) {
		t.Error("History timestamps should be non-decreasing")
	}
}

func TestChangeStatusValidationLeavesNoPartialWrite(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	c := models.Computer{Serial: "SN-" + t.Name(), InternalCode: "IC-" + t.Name()}
	if err := svc.RegisterComputer(ctx, &c); err != nil {
		t.Fatalf("Failed to register computer: %v", err)
	}

	// ASIGNADO without a target employee must fail before anything is written
	err := svc.ChangeStatus(ctx, models.KindComputer, c.ID, TransitionRequest{NewStatus: "ASIGNADO"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected validation error, got %v", err)
	}

	var got models.Computer
	if err := testDB.First(&got, c.ID).Error; err != nil {
		t.Fatalf("Failed to reload computer: %v", err)
	}
	if got.Status != models.StatusOperativo {
		t.Errorf("Status should be unchanged, got %q", got.Status)
	}
	if entries := historyFor(t, models.KindComputer, c.ID); len(entries) != 1 {
		t.Errorf("Expected only the creation entry, got %d entries", len(entries))
	}
}

func TestChangeStatusMissingEmployeeRollsBack(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	c := models.Computer{Serial: "SN-" + t.Name(), InternalCode: "IC-" + t.Name()}
	if err := svc.RegisterComputer(ctx, &c); err != nil {
		t.Fatalf("Failed to register computer: %v", err)
	}

	ghost := uint(999999)
	err := svc.ChangeStatus(ctx, models.KindComputer, c.ID, TransitionRequest{
		NewStatus:        "ASIGNADO",
		TargetEmployeeID: &ghost,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected not-found error, got %v", err)
	}

	var got models.Computer
	testDB.First(&got, c.ID)
	if got.Status != models.StatusOperativo {
		t.Errorf("Status should be unchanged, got %q", got.Status)
	}
	if entries := historyFor(t, models.KindComputer, c.ID); len(entries) != 1 {
		t.Errorf("Expected only the creation entry, got %d entries", len(entries))
	}
}

func TestDeleteEmployeeConflictLeavesStateUnchanged(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()
	emp := seedEmployee(t)

	c := models.Computer{Serial: "SN-" + t.Name(), InternalCode: "IC-" + t.Name()}
	if err := svc.RegisterComputer(ctx, &c); err != nil {
		t.Fatalf("Failed to register computer: %v", err)
	}
	err := svc.ChangeStatus(ctx, models.KindComputer, c.ID, TransitionRequest{
		NewStatus:        "ASIGNADO",
		TargetEmployeeID: &emp.ID,
	})
	if err != nil {
		t.Fatalf("Failed to assign: %v", err)
	}

	err = svc.DeleteEmployee(ctx, emp.ID)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("Expected conflict error, got %v", err)
	}
	if !strings.Contains(err.Error(), c.InternalCode) {
		t.Errorf("Conflict should name the blocking equipment: %v", err)
	}

	var gotEmp models.Employee
	if err := testDB.First(&gotEmp, emp.ID).Error; err != nil {
		t.Errorf("Employee should still exist: %v", err)
	}
	var gotC models.Computer
	testDB.First(&gotC, c.ID)
	if gotC.EmployeeID == nil || *gotC.EmployeeID != emp.ID {
		t.Errorf("Assignment should be unchanged, got %v", gotC.EmployeeID)
	}
}

func TestUpdateInterventionTouchesOnlyThatEntry(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	d := models.Device{Serial: "SN-" + t.Name(), InternalCode: "IC-" + t.Name(), DeviceType: "printer"}
	if err := svc.RegisterDevice(ctx, &d); err != nil {
		t.Fatalf("Failed to register device: %v", err)
	}

	first := models.Intervention{EquipmentKind: models.KindDevice, EquipmentID: d.ID, InterventionType: "preventivo", Notes: "Limpieza general"}
	second := models.Intervention{EquipmentKind: models.KindDevice, EquipmentID: d.ID, InterventionType: "correctivo", Notes: "Cambio de rodillo"}
	if err := svc.AddIntervention(ctx, &first); err != nil {
		t.Fatalf("Failed to add intervention: %v", err)
	}
	if err := svc.AddIntervention(ctx, &second); err != nil {
		t.Fatalf("Failed to add intervention: %v", err)
	}

	updated, err := svc.UpdateIntervention(ctx, first.ID, "Limpieza y lubricación", []string{"/uploads/evidencia.jpg"})
	if err != nil {
		t.Fatalf("Failed to update intervention: %v", err)
	}
	if updated.Notes != "Limpieza y lubricación" {
		t.Errorf("Notes: got %q", updated.Notes)
	}

	var gotSecond models.Intervention
	if err := testDB.First(&gotSecond, second.ID).Error; err != nil {
		t.Fatalf("Failed to reload second intervention: %v", err)
	}
	if gotSecond.Notes != "Cambio de rodillo" {
		t.Errorf("Other intervention should be untouched, got %q", gotSecond.Notes)
	}

	var gotDevice models.Device
	testDB.First(&gotDevice, d.ID)
	if gotDevice.Status != models.StatusOperativo {
		t.Errorf("Device should be untouched, got status %q", gotDevice.Status)
	}
}

func TestTimelineSurvivesEquipmentDeletion(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	c := models.Computer{Serial: "SN-" + t.Name(), InternalCode: "IC-" + t.Name()}
	if err := svc.RegisterComputer(ctx, &c); err != nil {
		t.Fatalf("Failed to register computer: %v", err)
	}
	err := svc.ChangeStatus(ctx, models.KindComputer, c.ID, TransitionRequest{
		NewStatus: "DE_BAJA",
		Motive:    "Equipo obsoleto",
	})
	if err != nil {
		t.Fatalf("Failed to decommission: %v", err)
	}

	// Soft delete hides the row from normal queries; its history stays
	if err := testDB.Delete(&models.Computer{}, c.ID).Error; err != nil {
		t.Fatalf("Failed to delete computer: %v", err)
	}

	entries, err := svc.Timeline(ctx, models.KindComputer, c.ID)
	if err != nil {
		t.Fatalf("Timeline of deleted equipment should stay readable: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 timeline entries, got %d", len(entries))
	}
	if entries[0].Kind != "asignacion" || entries[1].Kind != "creacion" {
		t.Errorf("Timeline order: got %q then %q", entries[0].Kind, entries[1].Kind)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Timestamp.After(entries[i-1].Timestamp) {
			t.Errorf("Timeline out of order at position %d", i)
		}
	}
}
