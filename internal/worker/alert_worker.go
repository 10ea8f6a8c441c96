package worker

// alert_worker.go
// Processes reorder alert jobs from QueueAlerts: structured log always,
// email to the configured purchasing address when SMTP is set up.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/HIMS4RA/CocoPro/internal/infra"
	"github.com/HIMS4RA/CocoPro/internal/ledger"

	"github.com/rs/zerolog/log"
)

// AlertWorker delivers reorder alerts produced by the threshold monitor.
type AlertWorker struct {
	mailer     *infra.Mailer
	cb         *infra.CircuitBreaker
	alertEmail string
}

// NewAlertWorker creates an AlertWorker. alertEmail may be empty, in which
// case alerts are logged only.
func NewAlertWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, alertEmail string) *AlertWorker {
	return &AlertWorker{mailer: mailer, cb: cb, alertEmail: alertEmail}
}

// Process delivers one alert. Email failures are returned so the pool can
// DLQ the job; a tripped circuit breaker is not an error worth retrying.
func (w *AlertWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var alert ledger.ReorderAlert
	if err := json.Unmarshal(raw, &alert); err != nil {
		log.Error().Err(err).Msg("alert_worker: invalid payload")
		return nil
	}

	log.Warn().
		Str("item_id", alert.ItemID.String()).
		Str("name", alert.Name).
		Str("available", alert.AvailableQuantity.String()).
		Str("threshold", alert.Threshold.String()).
		Msg("reorder alert")

	if w.alertEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("Reorder alert: %s", alert.Name)
	err := w.cb.Execute(func() error {
		return w.mailer.Send(w.alertEmail, subject, alert.Message, "")
	})
	if errors.Is(err, infra.ErrCircuitOpen) {
		log.Warn().Str("item_id", alert.ItemID.String()).Msg("alert_worker: smtp circuit open, alert logged only")
		return nil
	}
	if err != nil {
		return fmt.Errorf("alert_worker: send email: %w", err)
	}
	return nil
}
