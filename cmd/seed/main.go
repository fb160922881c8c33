// Seed loads a small demo dataset: two remisiones with pieces, one
// with pre-staging info, so a fresh install has something to show.
package main

import (
	"fmt"
	"time"

	"github.com/remitrack/internal/config"
	"github.com/remitrack/internal/constants"
	"github.com/remitrack/internal/logger"
	"github.com/remitrack/internal/models"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	remisiones := []models.Remision{
		{
			NumeroRemision: "REM-2025-001",
			Cliente:        "Constructora del Norte",
			Estado:         constants.RemisionStatusPendiente,
			Observaciones:  "Entrega programada para la obra Torre Centro",
			FechaCreacion:  time.Now().AddDate(0, 0, -3),
		},
		{
			NumeroRemision: "REM-2025-002",
			Cliente:        "Grupo Industrial Pacífico",
			Estado:         constants.RemisionStatusEmbarcada,
			FechaCreacion:  time.Now().AddDate(0, 0, -1),
		},
	}

	for i := range remisiones {
		var existing models.Remision
		err := models.DB.Where("numero_remision = ?", remisiones[i].NumeroRemision).First(&existing).Error
		if err == nil {
			stdLog.Printf("Remision already exists: %s", remisiones[i].NumeroRemision)
			remisiones[i] = existing
			continue
		}
		if err := models.DB.Create(&remisiones[i]).Error; err != nil {
			stdLog.Fatalf("Failed to create remision %s: %v", remisiones[i].NumeroRemision, err)
		}
		stdLog.Printf("Created remision: %s", remisiones[i].NumeroRemision)
	}

	folio := func(s string) *string { return &s }
	piezas := []models.PiezaEmbarcada{
		{RemisionID: remisiones[0].ID, Marca: "VIG-200", Cantidad: 1, Folio: folio("101"), TimestampRegistro: time.Now().Add(-2 * time.Hour)},
		{RemisionID: remisiones[0].ID, Marca: "VIG-200", Cantidad: 10, Folio: folio("110-119"), TimestampRegistro: time.Now().Add(-90 * time.Minute)},
		{RemisionID: remisiones[0].ID, Marca: "COL-300X300", Cantidad: 1, TimestampRegistro: time.Now().Add(-time.Hour)},
		{RemisionID: remisiones[1].ID, Marca: "PLACA-A36", Cantidad: 1, Folio: folio("7"), TimestampRegistro: time.Now().Add(-30 * time.Minute)},
	}

	for _, pieza := range piezas {
		query := models.DB.Where("remision_id = ? AND marca = ?", pieza.RemisionID, pieza.Marca)
		if pieza.Folio != nil {
			query = query.Where("folio = ?", *pieza.Folio)
		} else {
			query = query.Where("folio IS NULL")
		}
		var existing models.PiezaEmbarcada
		if err := query.First(&existing).Error; err == nil {
			continue
		}
		if err := models.DB.Create(&pieza).Error; err != nil {
			stdLog.Printf("Failed to create pieza %s: %v", pieza.Marca, err)
		}
	}

	for _, remision := range remisiones {
		var total int64
		models.DB.Model(&models.PiezaEmbarcada{}).
			Where("remision_id = ?", remision.ID).
			Select("COALESCE(SUM(cantidad), 0)").
			Scan(&total)
		models.DB.Model(&models.Remision{}).
			Where("id = ?", remision.ID).
			Update("total_piezas", total)
	}

	info := models.PreembarqueInfo{
		RemisionID:     remisiones[1].ID,
		SupervisorObra: "Ing. Laura Mendoza",
		Operador:       "Carlos Rivas",
		Telefono:       "555-0142",
		PlacasCamion:   "XK-48-219",
		Transportista:  "Transportes Águila",
		Barrotes:       "4",
	}
	var existingInfo models.PreembarqueInfo
	if err := models.DB.Where("remision_id = ?", info.RemisionID).First(&existingInfo).Error; err != nil {
		if err := models.DB.Create(&info).Error; err != nil {
			stdLog.Printf("Failed to create preembarque info: %v", err)
		}
	}

	fmt.Println("Seed completed.")
}
