package service

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/remitrack/internal/config"
	"github.com/remitrack/internal/constants"
	"github.com/remitrack/internal/models"
	"github.com/remitrack/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupReportServiceTest(t *testing.T) (*ReportService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:report_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Remision{},
		&models.PiezaEmbarcada{},
		&models.PreembarqueInfo{},
		&models.RemisionImage{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.Report.CompanyName = "Estructuras de Acero SA"
	cfg.Upload.Dir = t.TempDir()

	svc := NewReportService(
		cfg,
		repository.NewRemisionRepository(db),
		repository.NewPreembarqueInfoRepository(db),
		repository.NewImageRepository(db),
		NewUploadService(cfg),
	)
	return svc, db
}

func TestBuildReportFilename(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	got := BuildReportFilename(" REM-2025-001 ", now)
	want := "preembarque-REM-2025-001-2025-03-14.pdf"
	if got != want {
		t.Fatalf("filename = %q, want %q", got, want)
	}
}

func TestGeneratePreembarqueReport(t *testing.T) {
	svc, db := setupReportServiceTest(t)

	folio := "101"
	remision := models.Remision{
		NumeroRemision: "REM-2025-001",
		Cliente:        "Constructora del Norte",
		Estado:         constants.RemisionStatusPendiente,
		Observaciones:  "Entrega urgente",
		FechaCreacion:  time.Now(),
		TotalPiezas:    11,
	}
	if err := db.Create(&remision).Error; err != nil {
		t.Fatalf("seed remision failed: %v", err)
	}
	piezas := []models.PiezaEmbarcada{
		{RemisionID: remision.ID, Marca: "VIG-200", Cantidad: 1, Folio: &folio, TimestampRegistro: time.Now().Add(-time.Hour)},
		{RemisionID: remision.ID, Marca: "COL-300X300", Cantidad: 10, TimestampRegistro: time.Now()},
	}
	for i := range piezas {
		if err := db.Create(&piezas[i]).Error; err != nil {
			t.Fatalf("seed pieza failed: %v", err)
		}
	}
	info := models.PreembarqueInfo{
		RemisionID:     remision.ID,
		SupervisorObra: "Ing. Mendoza",
		Transportista:  "Transportes Águila",
	}
	if err := db.Create(&info).Error; err != nil {
		t.Fatalf("seed info failed: %v", err)
	}

	pdfBytes, filename, err := svc.GeneratePreembarqueReport(remision.ID)
	if err != nil {
		t.Fatalf("generate report failed: %v", err)
	}
	if len(pdfBytes) == 0 {
		t.Fatalf("empty pdf")
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Fatalf("output is not a pdf, starts with %q", pdfBytes[:4])
	}
	want := BuildReportFilename("REM-2025-001", time.Now())
	if filename != want {
		t.Fatalf("filename = %q, want %q", filename, want)
	}
}

func TestGenerateReportMissingRemision(t *testing.T) {
	svc, _ := setupReportServiceTest(t)
	if _, _, err := svc.GeneratePreembarqueReport(9999); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// A photo whose file is missing on disk must not fail the report.
func TestGenerateReportWithMissingImageFile(t *testing.T) {
	svc, db := setupReportServiceTest(t)

	remision := models.Remision{
		NumeroRemision: "REM-2025-002",
		Cliente:        "Grupo Pacífico",
		Estado:         constants.RemisionStatusEmbarcada,
		FechaCreacion:  time.Now(),
	}
	if err := db.Create(&remision).Error; err != nil {
		t.Fatalf("seed remision failed: %v", err)
	}
	image := models.RemisionImage{
		RemisionID: remision.ID,
		ImageURL:   fmt.Sprintf("/uploads/%d/desaparecida.jpg", remision.ID),
		ImageName:  "desaparecida.jpg",
	}
	if err := db.Create(&image).Error; err != nil {
		t.Fatalf("seed image failed: %v", err)
	}

	pdfBytes, _, err := svc.GeneratePreembarqueReport(remision.ID)
	if err != nil {
		t.Fatalf("report with missing image file failed: %v", err)
	}
	if len(pdfBytes) == 0 {
		t.Fatalf("empty pdf")
	}
}
