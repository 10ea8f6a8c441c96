// Command seedstock loads demo raw-material receipts into the database for
// local development.
//
// Usage:
//
//	DATABASE_URL=postgres://... go run ./cmd/seedstock
package main

import (
	"time"

	"github.com/HIMS4RA/CocoPro/internal/config"
	"github.com/HIMS4RA/CocoPro/internal/infra"
	"github.com/HIMS4RA/CocoPro/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	now := time.Now()
	receipts := []model.StockItem{
		{
			ID:                uuid.New(),
			Name:              "Coconut husks",
			Unit:              "kg",
			ReceivedQuantity:  decimal.NewFromInt(500),
			AvailableQuantity: decimal.NewFromInt(500),
			Threshold:         decimal.NewFromInt(100),
			ReceivedAt:        now.AddDate(0, 0, -7),
		},
		{
			ID:                uuid.New(),
			Name:              "Coconut husks",
			Unit:              "kg",
			ReceivedQuantity:  decimal.NewFromInt(300),
			AvailableQuantity: decimal.NewFromInt(300),
			Threshold:         decimal.NewFromInt(100),
			ReceivedAt:        now.AddDate(0, 0, -3),
		},
		{
			ID:                uuid.New(),
			Name:              "Coir fiber",
			Unit:              "kg",
			ReceivedQuantity:  decimal.NewFromInt(120),
			AvailableQuantity: decimal.NewFromInt(120),
			Threshold:         decimal.NewFromInt(50),
			ReceivedAt:        now.AddDate(0, 0, -1),
		},
	}

	for i := range receipts {
		if err := db.Create(&receipts[i]).Error; err != nil {
			log.Fatal().Err(err).Str("name", receipts[i].Name).Msg("failed to seed receipt")
		}
		log.Info().
			Str("name", receipts[i].Name).
			Str("quantity", receipts[i].ReceivedQuantity.String()).
			Msg("seeded receipt")
	}

	log.Info().Int("count", len(receipts)).Msg("seed complete")
}
