package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/remitrack/internal/constants"
	"github.com/remitrack/internal/models"
	"github.com/remitrack/internal/queue"
	"github.com/remitrack/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPiezaServiceTest(t *testing.T) (*PiezaService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:pieza_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Remision{},
		&models.PiezaEmbarcada{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	// A disabled queue client makes total recounts run inline.
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	svc := NewPiezaService(
		repository.NewPiezaRepository(db),
		repository.NewRemisionRepository(db),
		queueClient,
	)
	return svc, db
}

func seedRemision(t *testing.T, db *gorm.DB, numero string) *models.Remision {
	t.Helper()
	remision := models.Remision{
		NumeroRemision: numero,
		Cliente:        "Cliente de prueba",
		Estado:         constants.RemisionStatusPendiente,
		FechaCreacion:  time.Now(),
	}
	if err := db.Create(&remision).Error; err != nil {
		t.Fatalf("create remision failed: %v", err)
	}
	return &remision
}

func loadTotalPiezas(t *testing.T, db *gorm.DB, remisionID uint) int {
	t.Helper()
	var remision models.Remision
	if err := db.First(&remision, remisionID).Error; err != nil {
		t.Fatalf("load remision failed: %v", err)
	}
	return remision.TotalPiezas
}

func strPtr(s string) *string { return &s }

func TestRegisterPiezaAndRecount(t *testing.T) {
	svc, db := setupPiezaServiceTest(t)
	remision := seedRemision(t, db, "REM-001")

	pieza, err := svc.RegisterPieza(remision.ID, RegisterPiezaInput{Marca: " VIG-200 ", Folio: strPtr("101")})
	if err != nil {
		t.Fatalf("register pieza failed: %v", err)
	}
	if pieza.Marca != "VIG-200" {
		t.Fatalf("marca not trimmed: %q", pieza.Marca)
	}
	if pieza.Cantidad != 1 {
		t.Fatalf("expected cantidad=1, got %d", pieza.Cantidad)
	}
	if got := loadTotalPiezas(t, db, remision.ID); got != 1 {
		t.Fatalf("expected total_piezas=1, got %d", got)
	}
}

func TestRegisterPiezaDuplicateFolio(t *testing.T) {
	svc, db := setupPiezaServiceTest(t)
	remision := seedRemision(t, db, "REM-001")

	if _, err := svc.RegisterPieza(remision.ID, RegisterPiezaInput{Marca: "VIG-200", Folio: strPtr("101")}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.RegisterPieza(remision.ID, RegisterPiezaInput{Marca: "VIG-200", Folio: strPtr("101")})
	var dup *DuplicatePiezaError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicatePiezaError, got %v", err)
	}
	if dup.Marca != "VIG-200" || dup.Folio != "101" {
		t.Fatalf("error should carry marca and folio: %+v", dup)
	}

	// The same folio under another marca is fine.
	if _, err := svc.RegisterPieza(remision.ID, RegisterPiezaInput{Marca: "COL-300", Folio: strPtr("101")}); err != nil {
		t.Fatalf("different marca should not conflict: %v", err)
	}
}

func TestRegisterPiezaWithoutFolioNeverConflicts(t *testing.T) {
	svc, db := setupPiezaServiceTest(t)
	remision := seedRemision(t, db, "REM-001")

	for i := 0; i < 3; i++ {
		if _, err := svc.RegisterPieza(remision.ID, RegisterPiezaInput{Marca: "COL-300"}); err != nil {
			t.Fatalf("register %d without folio failed: %v", i, err)
		}
	}
	if got := loadTotalPiezas(t, db, remision.ID); got != 3 {
		t.Fatalf("expected total_piezas=3, got %d", got)
	}
}

func TestRegisterPiezaSameFolioOtherRemision(t *testing.T) {
	svc, db := setupPiezaServiceTest(t)
	first := seedRemision(t, db, "REM-001")
	second := seedRemision(t, db, "REM-002")

	if _, err := svc.RegisterPieza(first.ID, RegisterPiezaInput{Marca: "VIG-200", Folio: strPtr("101")}); err != nil {
		t.Fatalf("register on first remision failed: %v", err)
	}
	if _, err := svc.RegisterPieza(second.ID, RegisterPiezaInput{Marca: "VIG-200", Folio: strPtr("101")}); err != nil {
		t.Fatalf("duplicate scope must be per remision: %v", err)
	}
}

func TestRegisterPiezaMissingRemision(t *testing.T) {
	svc, _ := setupPiezaServiceTest(t)
	if _, err := svc.RegisterPieza(9999, RegisterPiezaInput{Marca: "VIG-200"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRegisterLote(t *testing.T) {
	svc, db := setupPiezaServiceTest(t)
	remision := seedRemision(t, db, "REM-001")

	lote, err := svc.RegisterLote(remision.ID, RegisterLoteInput{Marca: "VIG-200", FolioInicio: 10, FolioFin: 19})
	if err != nil {
		t.Fatalf("register lote failed: %v", err)
	}
	if lote.Cantidad != 10 {
		t.Fatalf("expected cantidad=10, got %d", lote.Cantidad)
	}
	if lote.Folio == nil || *lote.Folio != "10-19" {
		t.Fatalf("expected folio token 10-19, got %v", lote.Folio)
	}
	if got := loadTotalPiezas(t, db, remision.ID); got != 10 {
		t.Fatalf("expected total_piezas=10, got %d", got)
	}
}

func TestRegisterLoteDegenerateRange(t *testing.T) {
	svc, db := setupPiezaServiceTest(t)
	remision := seedRemision(t, db, "REM-001")

	lote, err := svc.RegisterLote(remision.ID, RegisterLoteInput{Marca: "VIG-200", FolioInicio: 10, FolioFin: 10})
	if err != nil {
		t.Fatalf("degenerate range failed: %v", err)
	}
	if lote.Cantidad != 1 {
		t.Fatalf("expected cantidad=1, got %d", lote.Cantidad)
	}
	if lote.Folio == nil || *lote.Folio != "10-10" {
		t.Fatalf("expected folio token 10-10, got %v", lote.Folio)
	}
}

func TestRegisterLoteDuplicateRange(t *testing.T) {
	svc, db := setupPiezaServiceTest(t)
	remision := seedRemision(t, db, "REM-001")

	if _, err := svc.RegisterLote(remision.ID, RegisterLoteInput{Marca: "VIG-200", FolioInicio: 10, FolioFin: 19}); err != nil {
		t.Fatalf("first lote failed: %v", err)
	}

	_, err := svc.RegisterLote(remision.ID, RegisterLoteInput{Marca: "VIG-200", FolioInicio: 10, FolioFin: 19})
	var dup *DuplicateLoteError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateLoteError, got %v", err)
	}
	if dup.Rango != "10-19" {
		t.Fatalf("error should carry the range token: %+v", dup)
	}
}

func TestRegisterLoteConflictsWithIndividual(t *testing.T) {
	svc, db := setupPiezaServiceTest(t)
	remision := seedRemision(t, db, "REM-001")

	if _, err := svc.RegisterPieza(remision.ID, RegisterPiezaInput{Marca: "VIG-200", Folio: strPtr("15")}); err != nil {
		t.Fatalf("individual register failed: %v", err)
	}

	_, err := svc.RegisterLote(remision.ID, RegisterLoteInput{Marca: "VIG-200", FolioInicio: 10, FolioFin: 19})
	var conflict *FolioConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected FolioConflictError, got %v", err)
	}
	if conflict.Folio != "15" {
		t.Fatalf("conflict should name the colliding folio: %+v", conflict)
	}

	// The aborted batch must not have written anything.
	if got := loadTotalPiezas(t, db, remision.ID); got != 1 {
		t.Fatalf("expected total_piezas=1 after aborted lote, got %d", got)
	}
}

func TestRegisterLoteReportsFirstConflictAscending(t *testing.T) {
	svc, db := setupPiezaServiceTest(t)
	remision := seedRemision(t, db, "REM-001")

	for _, f := range []string{"17", "12"} {
		if _, err := svc.RegisterPieza(remision.ID, RegisterPiezaInput{Marca: "VIG-200", Folio: strPtr(f)}); err != nil {
			t.Fatalf("individual register %s failed: %v", f, err)
		}
	}

	_, err := svc.RegisterLote(remision.ID, RegisterLoteInput{Marca: "VIG-200", FolioInicio: 10, FolioFin: 19})
	var conflict *FolioConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected FolioConflictError, got %v", err)
	}
	if conflict.Folio != "12" {
		t.Fatalf("expected lowest folio 12 reported first, got %q", conflict.Folio)
	}
}

func TestRegisterPiezaDoesNotCollideWithRangeToken(t *testing.T) {
	svc, db := setupPiezaServiceTest(t)
	remision := seedRemision(t, db, "REM-001")

	if _, err := svc.RegisterLote(remision.ID, RegisterLoteInput{Marca: "VIG-200", FolioInicio: 10, FolioFin: 19}); err != nil {
		t.Fatalf("lote failed: %v", err)
	}

	// Checks are exact token matches: an individual folio inside the
	// range is not detected against the "10-19" token.
	if _, err := svc.RegisterPieza(remision.ID, RegisterPiezaInput{Marca: "VIG-200", Folio: strPtr("15")}); err != nil {
		t.Fatalf("individual inside registered range should pass the exact-token check: %v", err)
	}
}

func TestUpdatePiezaSelfExclusion(t *testing.T) {
	svc, db := setupPiezaServiceTest(t)
	remision := seedRemision(t, db, "REM-001")

	pieza, err := svc.RegisterPieza(remision.ID, RegisterPiezaInput{Marca: "VIG-200", Folio: strPtr("101")})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Re-saving the same marca/folio on itself is not a conflict.
	updated, err := svc.UpdatePieza(pieza.ID, UpdatePiezaInput{Marca: "VIG-200", Cantidad: 2, Folio: strPtr("101")})
	if err != nil {
		t.Fatalf("self update failed: %v", err)
	}
	if updated.Cantidad != 2 {
		t.Fatalf("expected cantidad=2, got %d", updated.Cantidad)
	}
	if got := loadTotalPiezas(t, db, remision.ID); got != 2 {
		t.Fatalf("expected total_piezas=2 after edit, got %d", got)
	}
}

func TestUpdatePiezaConflictsWithOther(t *testing.T) {
	svc, db := setupPiezaServiceTest(t)
	remision := seedRemision(t, db, "REM-001")

	if _, err := svc.RegisterPieza(remision.ID, RegisterPiezaInput{Marca: "VIG-200", Folio: strPtr("101")}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	second, err := svc.RegisterPieza(remision.ID, RegisterPiezaInput{Marca: "VIG-200", Folio: strPtr("102")})
	if err != nil {
		t.Fatalf("second register failed: %v", err)
	}

	_, err = svc.UpdatePieza(second.ID, UpdatePiezaInput{Marca: "VIG-200", Cantidad: 1, Folio: strPtr("101")})
	var dup *DuplicatePiezaError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicatePiezaError, got %v", err)
	}
}

func TestUpdatePiezaQuantityNotRederived(t *testing.T) {
	svc, db := setupPiezaServiceTest(t)
	remision := seedRemision(t, db, "REM-001")

	lote, err := svc.RegisterLote(remision.ID, RegisterLoteInput{Marca: "VIG-200", FolioInicio: 10, FolioFin: 19})
	if err != nil {
		t.Fatalf("lote failed: %v", err)
	}

	// The quantity is taken as given even when the folio token still
	// looks like a range.
	updated, err := svc.UpdatePieza(lote.ID, UpdatePiezaInput{Marca: "VIG-200", Cantidad: 3, Folio: strPtr("10-19")})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Cantidad != 3 {
		t.Fatalf("expected cantidad=3, got %d", updated.Cantidad)
	}
}

func TestDeletePieza(t *testing.T) {
	svc, db := setupPiezaServiceTest(t)
	remision := seedRemision(t, db, "REM-001")

	pieza, err := svc.RegisterPieza(remision.ID, RegisterPiezaInput{Marca: "VIG-200", Folio: strPtr("101")})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.DeletePieza(pieza.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got := loadTotalPiezas(t, db, remision.ID); got != 0 {
		t.Fatalf("expected total_piezas=0 after delete, got %d", got)
	}

	if err := svc.DeletePieza(pieza.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListByRemisionScanOrder(t *testing.T) {
	svc, db := setupPiezaServiceTest(t)
	remision := seedRemision(t, db, "REM-001")

	older := models.PiezaEmbarcada{
		RemisionID:        remision.ID,
		Marca:             "B",
		Cantidad:          1,
		TimestampRegistro: time.Now().Add(-time.Hour),
	}
	newer := models.PiezaEmbarcada{
		RemisionID:        remision.ID,
		Marca:             "A",
		Cantidad:          1,
		TimestampRegistro: time.Now(),
	}
	if err := db.Create(&newer).Error; err != nil {
		t.Fatalf("seed newer failed: %v", err)
	}
	if err := db.Create(&older).Error; err != nil {
		t.Fatalf("seed older failed: %v", err)
	}

	piezas, err := svc.ListByRemision(remision.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(piezas) != 2 || piezas[0].Marca != "B" || piezas[1].Marca != "A" {
		t.Fatalf("expected scan order B then A, got %+v", piezas)
	}
}
