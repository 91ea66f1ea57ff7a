package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/models"
	"github.com/xuri/excelize/v2"
)

func sampleRows() []Row {
	purchase := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	return []Row{
		{
			Kind:         "computer",
			InternalCode: "IMGC-PC-0001",
			Serial:       "SN-DL-1001",
			Description:  "Dell Latitude 5440",
			Status:       "ASIGNADO",
			Employee:     "Ana Pérez",
			Department:   "Tecnología",
			Company:      "IMGC Principal",
			Location:     "Sede Principal",
			PurchaseDate: &purchase,
			PurchaseCost: 1150,
		},
		{
			Kind:         "device",
			InternalCode: "IMGC-DV-0001",
			Serial:       "SN-HP-2001",
			Description:  "HP LaserJet Pro M404 printer",
			Status:       "EN_RESGUARDO",
			Location:     "Depósito",
		},
	}
}

func TestRowCells(t *testing.T) {
	cells := sampleRows()[0].cells()

	if len(cells) != len(exportColumns) {
		t.Fatalf("Expected %d cells, got %d", len(exportColumns), len(cells))
	}
	if cells[1] != "IMGC-PC-0001" {
		t.Errorf("Internal code: got %q", cells[1])
	}
	if cells[9] != "2024-03-15" {
		t.Errorf("Purchase date: got %q", cells[9])
	}
	if cells[10] != "1150.00" {
		t.Errorf("Cost: got %q", cells[10])
	}

	// Missing purchase date renders empty, not a zero time
	cells = sampleRows()[1].cells()
	if cells[9] != "" {
		t.Errorf("Empty purchase date: got %q", cells[9])
	}
}

func TestToXLSX(t *testing.T) {
	out, err := ToXLSX(sampleRows())
	if err != nil {
		t.Fatalf("Failed to build workbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("Output is not a readable workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Inventario", "A1")
	if err != nil {
		t.Fatalf("Failed to read cell: %v", err)
	}
	if got != "Tipo" {
		t.Errorf("Header A1: got %q", got)
	}

	got, _ = f.GetCellValue("Inventario", "B2")
	if got != "IMGC-PC-0001" {
		t.Errorf("Cell B2: got %q", got)
	}
}

func TestToPDF(t *testing.T) {
	out, err := ToPDF(sampleRows())
	if err != nil {
		t.Fatalf("Failed to build PDF: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("Output should be a PDF document")
	}
}

func TestMatchesCompany(t *testing.T) {
	companyID := uint(4)
	dept := &models.Department{Name: "Ventas", CompanyID: &companyID}

	if !matchesCompany(Filter{}, dept) {
		t.Error("Empty filter should match every department")
	}
	if !matchesCompany(Filter{CompanyIDs: []uint{4}}, dept) {
		t.Error("Matching company should pass")
	}
	if matchesCompany(Filter{CompanyIDs: []uint{9}}, dept) {
		t.Error("Different company should not pass")
	}
	if matchesCompany(Filter{CompanyIDs: []uint{4}}, nil) {
		t.Error("Missing department cannot match a company filter")
	}
}

func TestDescribe(t *testing.T) {
	brand := &models.Brand{Name: "HP"}
	model := &models.DeviceModel{Name: "LaserJet Pro M404"}

	if got := describe(brand, model, "printer"); got != "HP LaserJet Pro M404 printer" {
		t.Errorf("Description: got %q", got)
	}
	if got := describe(nil, nil, ""); got != "" {
		t.Errorf("Empty description: got %q", got)
	}
	if got := describe(brand, nil, ""); got != "HP" {
		t.Errorf("Brand only: got %q", got)
	}
}
