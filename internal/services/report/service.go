package report

import (
	"context"
	"time"

	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/models"
	"gorm.io/gorm"
)

// Filter narrows the equipment report
type Filter struct {
	DateFrom      *time.Time
	DateTo        *time.Time
	CompanyIDs    []uint
	DepartmentIDs []uint
	EmployeeIDs   []uint
	Kind          models.EquipmentKind // empty = both
	Status        models.EquipmentStatus
}

// Row is one flattened line of the equipment report
type Row struct {
	Kind         string     `json:"kind"`
	InternalCode string     `json:"internalCode"`
	Serial       string     `json:"serial"`
	Description  string     `json:"description"` // brand + model, or device type
	Status       string     `json:"status"`
	Employee     string     `json:"employee"`
	Department   string     `json:"department"`
	Company      string     `json:"company"`
	Location     string     `json:"location"`
	PurchaseDate *time.Time `json:"purchaseDate,omitempty"`
	PurchaseCost float64    `json:"purchaseCost"`
	RegisteredAt time.Time  `json:"registeredAt"`
}

// Service builds tabular equipment reports
type Service struct {
	db *gorm.DB
}

// NewService creates a report service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Equipment returns the filtered, flattened report rows
func (s *Service) Equipment(ctx context.Context, f Filter) ([]Row, error) {
	var rows []Row

	if f.Kind == "" || f.Kind == models.KindComputer {
		var computers []models.Computer
		if err := s.scope(ctx, f).Preload("Brand").Preload("Model").
			Preload("Employee").Preload("Department.Company").Preload("Location").
			Find(&computers).Error; err != nil {
			return nil, err
		}
		for _, c := range computers {
			row := Row{
				Kind:         string(models.KindComputer),
				InternalCode: c.InternalCode,
				Serial:       c.Serial,
				Description:  describe(c.Brand, c.Model, ""),
				Status:       string(c.Status),
				PurchaseDate: c.PurchaseDate,
				PurchaseCost: c.PurchaseCost,
				RegisteredAt: c.CreatedAt,
			}
			fillRelations(&row, c.Employee, c.Department, c.Location)
			if matchesCompany(f, c.Department) {
				rows = append(rows, row)
			}
		}
	}

	if f.Kind == "" || f.Kind == models.KindDevice {
		var devices []models.Device
		if err := s.scope(ctx, f).Preload("Brand").Preload("Model").
			Preload("Employee").Preload("Department.Company").Preload("Location").
			Find(&devices).Error; err != nil {
			return nil, err
		}
		for _, d := range devices {
			row := Row{
				Kind:         string(models.KindDevice),
				InternalCode: d.InternalCode,
				Serial:       d.Serial,
				Description:  describe(d.Brand, d.Model, d.DeviceType),
				Status:       string(d.Status),
				PurchaseDate: d.PurchaseDate,
				PurchaseCost: d.PurchaseCost,
				RegisteredAt: d.CreatedAt,
			}
			fillRelations(&row, d.Employee, d.Department, d.Location)
			if matchesCompany(f, d.Department) {
				rows = append(rows, row)
			}
		}
	}

	return rows, nil
}

// scope applies the SQL-expressible filters
func (s *Service) scope(ctx context.Context, f Filter) *gorm.DB {
	q := s.db.WithContext(ctx)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if len(f.EmployeeIDs) > 0 {
		q = q.Where("employee_id IN ?", f.EmployeeIDs)
	}
	if len(f.DepartmentIDs) > 0 {
		q = q.Where("department_id IN ?", f.DepartmentIDs)
	}
	if f.DateFrom != nil {
		q = q.Where("created_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("created_at <= ?", *f.DateTo)
	}
	return q
}

// matchesCompany applies the company filter, which crosses the department
// relation and is cheaper to resolve on the preloaded rows
func matchesCompany(f Filter, dept *models.Department) bool {
	if len(f.CompanyIDs) == 0 {
		return true
	}
	if dept == nil || dept.CompanyID == nil {
		return false
	}
	for _, id := range f.CompanyIDs {
		if *dept.CompanyID == id {
			return true
		}
	}
	return false
}

// describe builds the brand/model description column
func describe(brand *models.Brand, model *models.DeviceModel, deviceType string) string {
	var parts []string
	if brand != nil {
		parts = append(parts, brand.Name)
	}
	if model != nil {
		parts = append(parts, model.Name)
	}
	if deviceType != "" {
		parts = append(parts, deviceType)
	}
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " "
		}
		out += p
	}
	return out
}

// fillRelations flattens the assignment relations into display columns
func fillRelations(row *Row, emp *models.Employee, dept *models.Department, loc *models.Location) {
	if emp != nil {
		row.Employee = emp.FullName()
	}
	if dept != nil {
		row.Department = dept.Name
		if dept.Company != nil {
			row.Company = dept.Company.Name
		}
	}
	if loc != nil {
		row.Location = loc.Name
	}
}
