package ledger

import "errors"

var (
	// ErrInsufficientStock: aggregate available stock cannot cover the
	// requested total. No record is mutated when it occurs.
	ErrInsufficientStock = errors.New("insufficient raw material stock")

	// ErrInvalidQuantity: caller contract violation (non-positive receive
	// amount, negative consume/threshold). Rejected before touching storage.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrConflict: the storage layer kept reporting transaction conflicts
	// after the bounded retries were exhausted. Callers may retry.
	ErrConflict = errors.New("stock transaction conflict")
)
