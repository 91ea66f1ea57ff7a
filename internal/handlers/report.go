package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/lifecycle"
	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/models"
	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/services/report"
)

// equipmentReport returns the filtered inventory report as JSON, XLSX or PDF
func (r *Router) equipmentReport(w http.ResponseWriter, req *http.Request) {
	filter, err := parseReportFilter(req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	rows, err := r.reports.Equipment(req.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build report")
		return
	}

	switch strings.ToLower(req.URL.Query().Get("format")) {
	case "xlsx":
		data, err := report.ToXLSX(rows)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to render XLSX")
			return
		}
		sendAttachment(w, data,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			reportFilename("xlsx"))
	case "pdf":
		data, err := report.ToPDF(rows)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to render PDF")
			return
		}
		sendAttachment(w, data, "application/pdf", reportFilename("pdf"))
	default:
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"total": len(rows),
			"rows":  rows,
		})
	}
}

// parseReportFilter reads the report query parameters. An unknown status
// value is a validation error, never a silently widened report.
func parseReportFilter(req *http.Request) (report.Filter, error) {
	q := req.URL.Query()
	filter := report.Filter{
		CompanyIDs:    parseIDList(q.Get("companyIds")),
		DepartmentIDs: parseIDList(q.Get("departmentIds")),
		EmployeeIDs:   parseIDList(q.Get("employeeIds")),
	}

	if v := q.Get("kind"); v != "" {
		kind := models.EquipmentKind(v)
		if kind.IsValid() {
			filter.Kind = kind
		}
	}
	if v := q.Get("status"); v != "" {
		status, ok := models.NormalizeStatus(v)
		if !ok {
			return report.Filter{}, fmt.Errorf("%w: unknown status %q", lifecycle.ErrValidation, v)
		}
		filter.Status = status
	}
	if v := q.Get("dateFrom"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.DateFrom = &t
		}
	}
	if v := q.Get("dateTo"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.DateTo = &t
		}
	}
	return filter, nil
}

// parseIDList parses a comma-separated id list query parameter
func parseIDList(raw string) []uint {
	if raw == "" {
		return nil
	}
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		if id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32); err == nil {
			ids = append(ids, uint(id))
		}
	}
	return ids
}

// sendAttachment writes a downloadable binary response
func sendAttachment(w http.ResponseWriter, data []byte, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

// reportFilename builds a dated download name
func reportFilename(ext string) string {
	return fmt.Sprintf("inventario_%s.%s", time.Now().Format("2006-01-02"), ext)
}
