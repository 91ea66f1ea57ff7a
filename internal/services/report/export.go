package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

var exportColumns = []string{
	"Tipo", "Código interno", "Serial", "Descripción", "Estado",
	"Empleado", "Departamento", "Empresa", "Ubicación", "Fecha compra", "Costo",
}

// cells flattens a row in export column order
func (r Row) cells() []string {
	purchase := ""
	if r.PurchaseDate != nil {
		purchase = r.PurchaseDate.Format("2006-01-02")
	}
	return []string{
		r.Kind, r.InternalCode, r.Serial, r.Description, r.Status,
		r.Employee, r.Department, r.Company, r.Location, purchase,
		fmt.Sprintf("%.2f", r.PurchaseCost),
	}
}

// ToXLSX renders the report as an Excel workbook
func ToXLSX(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Inventario"
	f.SetSheetName("Sheet1", sheet)

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, err
		}
	}

	for rowIdx, row := range rows {
		for colIdx, value := range row.cells() {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToPDF renders the report as a landscape A4 table
func ToPDF(rows []Row) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 8)
	pdf.AddPage()

	// Landscape A4 is 297mm wide; keep 10mm margins
	colW := (297.0 - 20.0) / float64(len(exportColumns))

	pdf.SetFillColor(230, 230, 230)
	for _, col := range exportColumns {
		pdf.CellFormat(colW, 7, col, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 7)
	for _, row := range rows {
		if pdf.GetY() > 190 {
			pdf.AddPage()
		}
		for _, value := range row.cells() {
			pdf.CellFormat(colW, 6, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
