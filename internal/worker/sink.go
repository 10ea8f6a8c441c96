package worker

import (
	"context"

	"github.com/HIMS4RA/CocoPro/internal/ledger"

	"github.com/rs/zerolog/log"
)

// QueueSink publishes reorder alerts onto the Redis queue for the worker
// pool to deliver. Enqueue failures are logged, never propagated: alert
// delivery must not fail a stock mutation that already committed.
type QueueSink struct {
	dispatcher *Dispatcher
}

func NewQueueSink(dispatcher *Dispatcher) *QueueSink {
	return &QueueSink{dispatcher: dispatcher}
}

func (s *QueueSink) Publish(ctx context.Context, alert ledger.ReorderAlert) {
	if err := s.dispatcher.EnqueueAlert(ctx, alert); err != nil {
		log.Error().Err(err).Str("item_id", alert.ItemID.String()).Msg("failed to enqueue reorder alert")
	}
}

var _ ledger.AlertSink = (*QueueSink)(nil)
