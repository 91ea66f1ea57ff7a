package printer

import (
	"bytes"
	"testing"
)

func TestGenerateAssetTagsPDF(t *testing.T) {
	tags := []AssetTag{
		{InternalCode: "IMGC-PC-0001", Serial: "SN-DL-1001", Kind: "computer"},
		{InternalCode: "IMGC-DV-0001", Serial: "SN-HP-2001", Kind: "device"},
	}

	pdf, err := GenerateAssetTagsPDF(tags, DefaultLayout())
	if err != nil {
		t.Fatalf("Failed to generate PDF: %v", err)
	}

	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("Output should be a PDF document")
	}
	t.Logf("Generated %d-byte PDF for %d tags", len(pdf), len(tags))
}

func TestGenerateAssetTagsPDFMultiPage(t *testing.T) {
	layout := DefaultLayout()
	perPage := layout.Cols * layout.Rows

	var tags []AssetTag
	for i := 0; i < perPage+1; i++ {
		tags = append(tags, AssetTag{InternalCode: "IMGC-PC-0001", Serial: "SN-001"})
	}

	pdf, err := GenerateAssetTagsPDF(tags, layout)
	if err != nil {
		t.Fatalf("Failed to generate PDF: %v", err)
	}
	if len(pdf) == 0 {
		t.Error("PDF should not be empty")
	}
}

func TestGenerateAssetTagsPDFEmpty(t *testing.T) {
	if _, err := GenerateAssetTagsPDF(nil, DefaultLayout()); err == nil {
		t.Error("Empty tag list should fail")
	}
}

func TestGenerateAssetTagsPDFBadLayout(t *testing.T) {
	// Zero-sized grids fall back to the default layout
	pdf, err := GenerateAssetTagsPDF([]AssetTag{{InternalCode: "IMGC-PC-0001"}}, TagLayout{})
	if err != nil {
		t.Fatalf("Fallback layout should succeed: %v", err)
	}
	if len(pdf) == 0 {
		t.Error("PDF should not be empty")
	}
}
