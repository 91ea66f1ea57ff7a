package lifecycle

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/models"
)

// TimelineEntry is one display-ready row of the merged history feed
type TimelineEntry struct {
	Kind      string    `json:"kind"` // creacion | asignacion | modificacion | intervencion
	Timestamp time.Time `json:"timestamp"`
	Icon      string    `json:"icon"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Details   []string  `json:"details,omitempty"`

	rank int // tie-break for equal timestamps
}

// fieldLabels maps tracked field names to their display labels
var fieldLabels = map[string]string{
	"hostname":   "Nombre de equipo",
	"processor":  "Procesador",
	"ram":        "Memoria RAM",
	"storage":    "Almacenamiento",
	"os":         "Sistema operativo",
	"notes":      "Notas",
	"deviceType": "Tipo de dispositivo",
}

// interventionLabels maps intervention types to their display titles
var interventionLabels = map[string]string{
	"preventivo": "Mantenimiento preventivo",
	"correctivo": "Mantenimiento correctivo",
	"inspeccion": "Inspección",
}

// actionDisplay holds the fixed icon/title pair for an assignment action
var actionDisplay = map[models.ActionType]struct {
	icon  string
	title string
}{
	models.ActionCreacion:     {"plus-circle", "Registro"},
	models.ActionAsignacion:   {"user-plus", "Asignación"},
	models.ActionDevolucion:   {"user-minus", "Devolución"},
	models.ActionCambioEstado: {"refresh-cw", "Cambio de estado"},
}

// displayForAssignment derives the display payload of one assignment entry.
// Pure: the same entry always yields the same payload.
func displayForAssignment(e models.AssignmentHistory) TimelineEntry {
	d, ok := actionDisplay[e.ActionType]
	if !ok {
		d = actionDisplay[models.ActionCambioEstado]
	}

	var message string
	switch e.ActionType {
	case models.ActionCreacion:
		message = fmt.Sprintf("Equipo registrado con estado %s", e.ToStatus)
	case models.ActionAsignacion:
		if e.Employee != nil {
			message = fmt.Sprintf("Equipo asignado a %s", e.Employee.FullName())
		} else {
			message = "Equipo asignado"
		}
	case models.ActionDevolucion:
		message = fmt.Sprintf("Equipo devuelto, nuevo estado %s", e.ToStatus)
	default:
		message = fmt.Sprintf("Estado cambiado de %s a %s", e.FromStatus, e.ToStatus)
	}

	var details []string
	if e.Motive != "" {
		details = append(details, "Motivo: "+e.Motive)
	}
	if e.Notes != "" {
		details = append(details, "Notas: "+e.Notes)
	}
	if e.Location != nil {
		details = append(details, "Ubicación: "+e.Location.Name)
	}
	if n := len(photoURLs(e.EvidencePhotos)); n > 0 {
		details = append(details, fmt.Sprintf("Evidencias: %d foto(s)", n))
	}

	kind := "asignacion"
	if e.ActionType == models.ActionCreacion {
		kind = "creacion"
	}

	return TimelineEntry{
		Kind:      kind,
		Timestamp: e.CreatedAt,
		Icon:      d.icon,
		Title:     d.title,
		Message:   message,
		Details:   details,
		rank:      0,
	}
}

// displayForModification derives the display payload of one field edit
func displayForModification(m models.FieldModification) TimelineEntry {
	label, ok := fieldLabels[m.FieldName]
	if !ok {
		label = m.FieldName
	}

	details := []string{
		"Antes: " + emptyDash(m.OldValue),
		"Después: " + emptyDash(m.NewValue),
	}
	if m.ChangedBy != "" {
		details = append(details, "Modificado por: "+m.ChangedBy)
	}

	return TimelineEntry{
		Kind:      "modificacion",
		Timestamp: m.CreatedAt,
		Icon:      "pencil",
		Title:     "Modificación",
		Message:   fmt.Sprintf("Campo %s actualizado", label),
		Details:   details,
		rank:      1,
	}
}

// displayForIntervention derives the display payload of one intervention
func displayForIntervention(iv models.Intervention) TimelineEntry {
	title, ok := interventionLabels[iv.InterventionType]
	if !ok {
		title = "Intervención"
	}

	var details []string
	if iv.Notes != "" {
		details = append(details, "Notas: "+iv.Notes)
	}
	if iv.PerformedBy != "" {
		details = append(details, "Realizado por: "+iv.PerformedBy)
	}
	if n := len(photoURLs(iv.Photos)); n > 0 {
		details = append(details, fmt.Sprintf("Evidencias: %d foto(s)", n))
	}

	return TimelineEntry{
		Kind:      "intervencion",
		Timestamp: iv.CreatedAt,
		Icon:      "wrench",
		Title:     title,
		Message:   "Intervención técnica registrada",
		Details:   details,
		rank:      2,
	}
}

// creationInfo holds the equipment attributes a synthetic creation entry shows
type creationInfo struct {
	Serial       string
	InternalCode string
	PurchaseDate *time.Time
	Provider     string
	CreatedAt    time.Time
}

// syntheticCreation builds the creation entry shown when no explicit creacion
// record exists, sourced from the equipment's own stored attributes.
func syntheticCreation(info creationInfo) TimelineEntry {
	details := []string{
		"Serial: " + info.Serial,
		"Código interno: " + info.InternalCode,
	}
	if info.PurchaseDate != nil {
		details = append(details, "Fecha de compra: "+info.PurchaseDate.Format("2006-01-02"))
	}
	if info.Provider != "" {
		details = append(details, "Proveedor: "+info.Provider)
	}

	return TimelineEntry{
		Kind:      "creacion",
		Timestamp: info.CreatedAt,
		Icon:      "plus-circle",
		Title:     "Registro",
		Message:   "Equipo registrado en el sistema",
		Details:   details,
		rank:      0,
	}
}

// photoURLs decodes a JSON photo column into its URL list
func photoURLs(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var urls []string
	if err := json.Unmarshal(raw, &urls); err != nil {
		return nil
	}
	return urls
}

// emptyDash substitutes a dash for empty values in before/after details
func emptyDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
