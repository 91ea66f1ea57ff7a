package lifecycle

import (
	"testing"
	"time"

	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/models"
	"gorm.io/datatypes"
)

func TestMergeEntriesNewestFirst(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	entries := []TimelineEntry{
		{Kind: "asignacion", Timestamp: base},
		{Kind: "intervencion", Timestamp: base.Add(2 * time.Hour)},
		{Kind: "creacion", Timestamp: base.Add(-24 * time.Hour)},
		{Kind: "modificacion", Timestamp: base.Add(time.Hour)},
	}

	merged := mergeEntries(entries)

	want := []string{"intervencion", "modificacion", "asignacion", "creacion"}
	for i, kind := range want {
		if merged[i].Kind != kind {
			t.Errorf("Position %d: got %q, want %q", i, merged[i].Kind, kind)
		}
	}
	for i := 1; i < len(merged); i++ {
		if merged[i].Timestamp.After(merged[i-1].Timestamp) {
			t.Errorf("Entries out of order at position %d", i)
		}
	}
}

func TestMergeEntriesTieBreak(t *testing.T) {
	ts := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	// Same timestamp: assignment entries come before modifications, which
	// come before interventions.
	entries := []TimelineEntry{
		{Kind: "intervencion", Timestamp: ts, rank: 2},
		{Kind: "modificacion", Timestamp: ts, rank: 1},
		{Kind: "asignacion", Timestamp: ts, rank: 0},
	}

	merged := mergeEntries(entries)

	want := []string{"asignacion", "modificacion", "intervencion"}
	for i, kind := range want {
		if merged[i].Kind != kind {
			t.Errorf("Position %d: got %q, want %q", i, merged[i].Kind, kind)
		}
	}
}

func TestDisplayForAssignmentDeterministic(t *testing.T) {
	entry := models.AssignmentHistory{
		ActionType: models.ActionAsignacion,
		FromStatus: models.StatusOperativo,
		ToStatus:   models.StatusAsignado,
		Motive:     "Nuevo ingreso",
		Employee:   &models.Employee{FirstName: "Ana", LastName: "Pérez"},
		Location:   &models.Location{Name: "Sede Principal"},
		CreatedAt:  time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}

	first := displayForAssignment(entry)
	second := displayForAssignment(entry)

	if first.Message != second.Message || first.Icon != second.Icon {
		t.Error("Display derivation should be deterministic")
	}
	if first.Title != "Asignación" {
		t.Errorf("Title: got %q", first.Title)
	}
	if first.Icon != "user-plus" {
		t.Errorf("Icon: got %q", first.Icon)
	}
	if first.Message != "Equipo asignado a Ana Pérez" {
		t.Errorf("Message: got %q", first.Message)
	}
	if len(first.Details) != 2 {
		t.Fatalf("Details: got %v", first.Details)
	}
	if first.Details[0] != "Motivo: Nuevo ingreso" {
		t.Errorf("Detail: got %q", first.Details[0])
	}
	if first.Details[1] != "Ubicación: Sede Principal" {
		t.Errorf("Detail: got %q", first.Details[1])
	}
}

func TestDisplayForAssignmentEvidenceCount(t *testing.T) {
	entry := models.AssignmentHistory{
		ActionType:     models.ActionCambioEstado,
		FromStatus:     models.StatusOperativo,
		ToStatus:       models.StatusEnMantenimiento,
		EvidencePhotos: datatypes.JSON([]byte(`["/uploads/a.jpg","/uploads/b.jpg"]`)),
	}

	got := displayForAssignment(entry)

	if got.Message != "Estado cambiado de OPERATIVO a EN_MANTENIMIENTO" {
		t.Errorf("Message: got %q", got.Message)
	}
	found := false
	for _, d := range got.Details {
		if d == "Evidencias: 2 foto(s)" {
			found = true
		}
	}
	if !found {
		t.Errorf("Evidence count missing from details: %v", got.Details)
	}
}

func TestDisplayForModification(t *testing.T) {
	mod := models.FieldModification{
		FieldName: "ram",
		OldValue:  "8GB",
		NewValue:  "16GB",
		ChangedBy: "admin@example.com",
	}

	got := displayForModification(mod)

	if got.Kind != "modificacion" {
		t.Errorf("Kind: got %q", got.Kind)
	}
	if got.Message != "Campo Memoria RAM actualizado" {
		t.Errorf("Message: got %q", got.Message)
	}
	wantDetails := []string{"Antes: 8GB", "Después: 16GB", "Modificado por: admin@example.com"}
	if len(got.Details) != len(wantDetails) {
		t.Fatalf("Details: got %v", got.Details)
	}
	for i, d := range wantDetails {
		if got.Details[i] != d {
			t.Errorf("Detail %d: got %q, want %q", i, got.Details[i], d)
		}
	}
}

func TestDisplayForModificationEmptyValues(t *testing.T) {
	mod := models.FieldModification{FieldName: "notes", OldValue: "", NewValue: "Pantalla reemplazada"}

	got := displayForModification(mod)

	if got.Details[0] != "Antes: -" {
		t.Errorf("Empty old value should show a dash, got %q", got.Details[0])
	}
}

func TestDisplayForIntervention(t *testing.T) {
	iv := models.Intervention{
		InterventionType: "correctivo",
		Notes:            "Cambio de disco",
		PerformedBy:      "Soporte Externo CA",
	}

	got := displayForIntervention(iv)

	if got.Title != "Mantenimiento correctivo" {
		t.Errorf("Title: got %q", got.Title)
	}
	if got.Icon != "wrench" {
		t.Errorf("Icon: got %q", got.Icon)
	}

	// Unknown types fall back to a generic title instead of failing
	got = displayForIntervention(models.Intervention{InterventionType: "otro"})
	if got.Title != "Intervención" {
		t.Errorf("Fallback title: got %q", got.Title)
	}
}

func TestSyntheticCreation(t *testing.T) {
	purchase := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)

	got := syntheticCreation(creationInfo{
		Serial:       "SN-001",
		InternalCode: "IMGC-PC-0001",
		PurchaseDate: &purchase,
		Provider:     "Distribuidora Tecno CA",
		CreatedAt:    created,
	})

	if got.Kind != "creacion" {
		t.Errorf("Kind: got %q", got.Kind)
	}
	if !got.Timestamp.Equal(created) {
		t.Errorf("Timestamp: got %v, want %v", got.Timestamp, created)
	}
	wantDetails := []string{
		"Serial: SN-001",
		"Código interno: IMGC-PC-0001",
		"Fecha de compra: 2024-03-15",
		"Proveedor: Distribuidora Tecno CA",
	}
	if len(got.Details) != len(wantDetails) {
		t.Fatalf("Details: got %v", got.Details)
	}
	for i, d := range wantDetails {
		if got.Details[i] != d {
			t.Errorf("Detail %d: got %q, want %q", i, got.Details[i], d)
		}
	}
}

func TestPhotoURLs(t *testing.T) {
	if got := photoURLs(nil); got != nil {
		t.Errorf("Nil input: got %v", got)
	}
	if got := photoURLs([]byte(`not-json`)); got != nil {
		t.Errorf("Invalid JSON: got %v", got)
	}
	got := photoURLs([]byte(`["/uploads/a.jpg"]`))
	if len(got) != 1 || got[0] != "/uploads/a.jpg" {
		t.Errorf("Decoded URLs: got %v", got)
	}
}
