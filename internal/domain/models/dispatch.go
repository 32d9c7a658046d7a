package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DispatchStatusSent   = "sent"
	DispatchStatusFailed = "failed"
)

// Dispatch records one attempt to email a receipt. The document itself is not kept.
type Dispatch struct {
	ID           string              `db:"id"`
	Reference    string              `db:"reference"`
	Recipient    string              `db:"recipient"`
	Status       string              `db:"status"`
	MessageID    string              `db:"message_id"`
	ErrorMessage string              `db:"error_message"`
	Amount       decimal.NullDecimal `db:"amount"`
	Duration     time.Duration       `db:"duration_ms"`
	SentAt       time.Time           `db:"sent_at"`
}
