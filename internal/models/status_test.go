package models

import "testing"

func TestNormalizeStatusCanonical(t *testing.T) {
	for _, s := range AllStatuses {
		got, ok := NormalizeStatus(string(s))
		if !ok {
			t.Errorf("Canonical status %q should normalize", s)
		}
		if got != s {
			t.Errorf("Canonical status %q changed to %q", s, got)
		}
	}
}

func TestNormalizeStatusLegacy(t *testing.T) {
	cases := map[string]EquipmentStatus{
		"operativo":        StatusOperativo,
		"  ASIGNADO  ":     StatusAsignado,
		"EN MANTENIMIENTO": StatusEnMantenimiento,
		"mantenimiento":    StatusEnMantenimiento,
		"Resguardo":        StatusEnResguardo,
		"en resguardo":     StatusEnResguardo,
		"DE BAJA":          StatusDeBaja,
		"baja":             StatusDeBaja,
	}

	for raw, want := range cases {
		got, ok := NormalizeStatus(raw)
		if !ok {
			t.Errorf("Legacy value %q should normalize", raw)
			continue
		}
		if got != want {
			t.Errorf("Legacy value %q: got %q, want %q", raw, got, want)
		}
	}
}

func TestNormalizeStatusUnknown(t *testing.T) {
	for _, raw := range []string{"", "DESCONOCIDO", "ACTIVE", "EN_TRANSITO"} {
		if got, ok := NormalizeStatus(raw); ok {
			t.Errorf("Value %q should not normalize, got %q", raw, got)
		}
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range AllStatuses {
		if !s.IsValid() {
			t.Errorf("Status %q should be valid", s)
		}
	}
	if EquipmentStatus("RESGUARDO").IsValid() {
		t.Error("Legacy spelling should not count as canonical")
	}
	if EquipmentStatus("").IsValid() {
		t.Error("Empty status should not be valid")
	}
}

func TestEquipmentKindIsValid(t *testing.T) {
	if !KindComputer.IsValid() || !KindDevice.IsValid() {
		t.Error("Known kinds should be valid")
	}
	if EquipmentKind("printer").IsValid() {
		t.Error("Unknown kind should not be valid")
	}
}
