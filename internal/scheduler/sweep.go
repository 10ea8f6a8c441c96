// Package scheduler runs periodic background jobs on cron schedules.
package scheduler

import (
	"context"
	"time"

	"github.com/HIMS4RA/CocoPro/internal/ledger"
	"github.com/HIMS4RA/CocoPro/internal/repository"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler owns the cron runner. Jobs are registered at startup and
// stopped together on shutdown.
type Scheduler struct {
	cron *cron.Cron
}

func New() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// RegisterLowStockSweep re-checks every item below threshold on the given
// cron spec. Alerts fire at mutation time too; the sweep catches items that
// were already low before a threshold change or that never got delivered.
func (s *Scheduler) RegisterLowStockSweep(spec string, items repository.StockItemRepository, sink ledger.AlertSink) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		low, err := items.FindLowStock(ctx)
		if err != nil {
			log.Error().Err(err).Msg("low stock sweep failed")
			return
		}
		for i := range low {
			if alert := ledger.CheckReorder(&low[i]); alert != nil {
				sink.Publish(ctx, *alert)
			}
		}
		log.Info().Int("items_below_threshold", len(low)).Msg("low stock sweep completed")
	})
	return err
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("scheduler stopped")
}
