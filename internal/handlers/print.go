package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/models"
	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/services/printer"
)

// printLabelsRequest selects the equipment to print tags for
type printLabelsRequest struct {
	ComputerIDs []uint            `json:"computerIds"`
	DeviceIDs   []uint            `json:"deviceIds"`
	Layout      printer.TagLayout `json:"layout"`
}

// printLabels renders a QR asset-tag PDF sheet for the selected equipment
func (r *Router) printLabels(w http.ResponseWriter, req *http.Request) {
	var request printLabelsRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	var tags []printer.AssetTag

	if len(request.ComputerIDs) > 0 {
		var computers []models.Computer
		if err := r.db.Where("id IN ?", request.ComputerIDs).Find(&computers).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to fetch computers")
			return
		}
		for _, c := range computers {
			tags = append(tags, printer.AssetTag{
				InternalCode: c.InternalCode,
				Serial:       c.Serial,
				Kind:         string(models.KindComputer),
			})
		}
	}

	if len(request.DeviceIDs) > 0 {
		var devices []models.Device
		if err := r.db.Where("id IN ?", request.DeviceIDs).Find(&devices).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to fetch devices")
			return
		}
		for _, d := range devices {
			tags = append(tags, printer.AssetTag{
				InternalCode: d.InternalCode,
				Serial:       d.Serial,
				Kind:         string(models.KindDevice),
			})
		}
	}

	if len(tags) == 0 {
		respondError(w, http.StatusBadRequest, "No equipment selected")
		return
	}

	pdfBytes, err := printer.GenerateAssetTagsPDF(tags, request.Layout)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate PDF: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"etiquetas_%d.pdf\"", len(tags)))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.Write(pdfBytes)
}
