package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/config"
	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/database"
	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/lifecycle"
	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/models"
	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/utils"
)

func main() {
	fmt.Println("🌱 Inventory Demo Data Seeder")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")

	fmt.Println("🔨 Running database migrations...")
	err = db.AutoMigrate(
		&models.UserAuth{},
		&models.Company{},
		&models.Department{},
		&models.Location{},
		&models.Employee{},
		&models.Brand{},
		&models.DeviceModel{},
		&models.Computer{},
		&models.Device{},
		&models.AssignmentHistory{},
		&models.FieldModification{},
		&models.Intervention{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	fmt.Println("✅ Migrations complete")

	var companyCount int64
	db.Model(&models.Company{}).Count(&companyCount)
	if companyCount > 0 {
		fmt.Printf("⚠️  Database already has %d companies. Aborting, nothing modified.\n", companyCount)
		return
	}

	ctx := context.Background()

	// Admin account
	hash, err := utils.HashPassword("admin12345")
	if err != nil {
		log.Fatalf("❌ Failed to hash admin password: %v", err)
	}
	admin := models.UserAuth{
		Username: "admin",
		Password: hash,
		Email:    "admin@example.com",
		Name:     "Administrador",
		Role:     "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("❌ Failed to create admin user: %v", err)
	}

	// Organization
	company := models.Company{Name: "IMGC Principal", RIF: "J-00000000-1", Address: "Caracas"}
	db.Create(&company)

	itDept := models.Department{Name: "Tecnología", CompanyID: &company.ID}
	salesDept := models.Department{Name: "Ventas", CompanyID: &company.ID}
	db.Create(&itDept)
	db.Create(&salesDept)

	mainOffice := models.Location{Name: "Sede Principal", Address: "Av. Principal", Floor: "3"}
	storage := models.Location{Name: "Depósito", Address: "Av. Principal", Floor: "S1"}
	db.Create(&mainOffice)
	db.Create(&storage)

	// Catalog
	dell := models.Brand{Name: "Dell"}
	hp := models.Brand{Name: "HP"}
	db.Create(&dell)
	db.Create(&hp)

	latitude := models.DeviceModel{Name: "Latitude 5440", BrandID: dell.ID}
	laser := models.DeviceModel{Name: "LaserJet Pro M404", BrandID: hp.ID}
	db.Create(&latitude)
	db.Create(&laser)

	// Employees
	ana := models.Employee{EmployeeNumber: "EMP-001", FirstName: "Ana", LastName: "Pérez", Email: "ana.perez@example.com", Position: "Analista", DepartmentID: &itDept.ID}
	luis := models.Employee{EmployeeNumber: "EMP-002", FirstName: "Luis", LastName: "García", Email: "luis.garcia@example.com", Position: "Vendedor", DepartmentID: &salesDept.ID}
	db.Create(&ana)
	db.Create(&luis)

	// Equipment, registered through the lifecycle service so every item gets
	// its creation history entry
	svc := lifecycle.NewService(db.DB, nil)

	purchase := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	laptop := models.Computer{
		Serial:       "SN-DL-1001",
		InternalCode: "IMGC-PC-0001",
		BrandID:      &dell.ID,
		ModelID:      &latitude.ID,
		Hostname:     "imgc-pc-0001",
		Processor:    "Intel Core i5-1345U",
		RAM:          "16GB",
		Storage:      "512GB SSD",
		OS:           "Windows 11 Pro",
		PurchaseDate: &purchase,
		PurchaseCost: 1150,
		Provider:     "Distribuidora Tecno CA",
		LocationID:   &mainOffice.ID,
	}
	if err := svc.RegisterComputer(ctx, &laptop); err != nil {
		log.Fatalf("❌ Failed to seed computer: %v", err)
	}

	printer := models.Device{
		Serial:       "SN-HP-2001",
		InternalCode: "IMGC-DV-0001",
		DeviceType:   "printer",
		BrandID:      &hp.ID,
		ModelID:      &laser.ID,
		LocationID:   &storage.ID,
		Status:       models.StatusEnResguardo,
	}
	if err := svc.RegisterDevice(ctx, &printer); err != nil {
		log.Fatalf("❌ Failed to seed device: %v", err)
	}

	// Assign the laptop so the demo timeline shows a real transition
	err = svc.ChangeStatus(ctx, models.KindComputer, laptop.ID, lifecycle.TransitionRequest{
		NewStatus:        string(models.StatusAsignado),
		Motive:           "Asignación inicial de puesto",
		TargetEmployeeID: &ana.ID,
	})
	if err != nil {
		log.Fatalf("❌ Failed to seed assignment: %v", err)
	}

	fmt.Println("✅ Demo data created:")
	fmt.Println("   - admin@example.com / admin12345")
	fmt.Printf("   - %s assigned to %s\n", laptop.InternalCode, ana.FullName())
	fmt.Printf("   - %s stored at %s\n", printer.InternalCode, storage.Name)
}
