package ledger

import (
	"context"
	"fmt"

	"github.com/HIMS4RA/CocoPro/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReorderAlert describes a stock item whose balance dropped below its
// reorder threshold. Alerts are produced, not stored; delivery is the
// sink's problem.
type ReorderAlert struct {
	ItemID            uuid.UUID       `json:"item_id"`
	Name              string          `json:"name"`
	Unit              string          `json:"unit"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	Threshold         decimal.Decimal `json:"threshold"`
	Message           string          `json:"message"`
}

// AlertSink receives reorder alerts as they are produced. Implementations
// must be safe for concurrent use and should not block the caller for long;
// the engine treats delivery as fire-and-forget.
type AlertSink interface {
	Publish(ctx context.Context, alert ReorderAlert)
}

// CheckReorder compares an item's post-mutation balance against its
// threshold. Pure function of the item state, no deduplication: every
// mutation that leaves the item below threshold produces a fresh alert.
// Comparison is exact decimal, no epsilon.
func CheckReorder(item *model.StockItem) *ReorderAlert {
	if item.AvailableQuantity.GreaterThanOrEqual(item.Threshold) {
		return nil
	}
	return &ReorderAlert{
		ItemID:            item.ID,
		Name:              item.Name,
		Unit:              item.Unit,
		AvailableQuantity: item.AvailableQuantity,
		Threshold:         item.Threshold,
		Message: fmt.Sprintf("Reorder alert: %s is below threshold (available %s %s, threshold %s %s)",
			item.Name, item.AvailableQuantity, item.Unit, item.Threshold, item.Unit),
	}
}
