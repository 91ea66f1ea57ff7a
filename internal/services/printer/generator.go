package printer

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
)

// AssetTag is one printable label: the QR encodes the internal code so a
// phone scan opens the equipment record.
type AssetTag struct {
	InternalCode string `json:"internalCode"`
	Serial       string `json:"serial"`
	Kind         string `json:"kind"` // computer | device
}

// TagLayout holds the grid configuration for a label sheet
type TagLayout struct {
	Cols       int     `json:"cols"`
	Rows       int     `json:"rows"`
	MarginTop  float64 `json:"marginTop"`
	MarginLeft float64 `json:"marginLeft"`
	GapX       float64 `json:"gapX"`
	GapY       float64 `json:"gapY"`
}

// DefaultLayout is a 3x7 sheet matching common adhesive label paper
func DefaultLayout() TagLayout {
	return TagLayout{Cols: 3, Rows: 7, MarginTop: 10, MarginLeft: 7, GapX: 2, GapY: 2}
}

// GenerateAssetTagsPDF renders an A4 sheet of QR asset tags
func GenerateAssetTagsPDF(tags []AssetTag, layout TagLayout) ([]byte, error) {
	if len(tags) == 0 {
		return nil, fmt.Errorf("no tags to print")
	}
	if layout.Cols <= 0 || layout.Rows <= 0 {
		layout = DefaultLayout()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Arial", "B", 10)

	// A4 dimensions
	pageWidth, pageHeight := 210.0, 297.0

	totalGapX := float64(layout.Cols-1) * layout.GapX
	totalGapY := float64(layout.Rows-1) * layout.GapY

	availW := pageWidth - (layout.MarginLeft * 2)
	availH := pageHeight - (layout.MarginTop * 2)

	labelW := (availW - totalGapX) / float64(layout.Cols)
	labelH := (availH - totalGapY) / float64(layout.Rows)

	labelsPerPage := layout.Cols * layout.Rows

	for i, tag := range tags {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		indexOnPage := i % labelsPerPage
		col := indexOnPage % layout.Cols
		row := indexOnPage / layout.Cols

		x := layout.MarginLeft + float64(col)*(labelW+layout.GapX)
		y := layout.MarginTop + float64(row)*(labelH+layout.GapY)

		// Scanner protocol: INV/{internal code}
		qrContent := fmt.Sprintf("INV/%s", tag.InternalCode)

		qrPng, err := qrcode.Encode(qrContent, qrcode.Low, 256)
		if err != nil {
			return nil, err
		}

		imgName := fmt.Sprintf("qr_%d", i)
		imgOptions := gofpdf.ImageOptions{
			ImageType: "PNG",
			ReadDpi:   true,
		}
		reader := bytes.NewReader(qrPng)
		_ = pdf.RegisterImageOptionsReader(imgName, imgOptions, reader)

		// QR centered, 70% of label height
		qrSize := labelH * 0.7
		if qrSize > labelW {
			qrSize = labelW * 0.9
		}

		qrX := x + (labelW-qrSize)/2
		qrY := y + (labelH-qrSize)/2 - 2

		pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, imgOptions, 0, "")

		// Internal code below the QR, serial above it
		pdf.SetXY(x, y+labelH-6)
		pdf.SetFontSize(8)
		pdf.CellFormat(labelW, 5, tag.InternalCode, "", 0, "C", false, 0, "")

		pdf.SetXY(x, y+1)
		pdf.SetFontSize(6)
		pdf.CellFormat(labelW, 3, tag.Serial, "", 0, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
