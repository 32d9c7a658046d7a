package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a fee payment.
type Status string

const (
	StatusPending    Status = "pending"
	StatusSuccessful Status = "successful"
	StatusFailed     Status = "failed"
)

// statusAliases maps spellings used by the list views onto canonical statuses.
var statusAliases = map[string]Status{
	"success": StatusSuccessful,
}

var ValidStatuses = map[Status]struct{}{
	StatusPending:    {},
	StatusSuccessful: {},
	StatusFailed:     {},
}

// ParseStatus lower-cases and trims s and resolves aliases. Unknown values are
// returned normalised but otherwise untouched.
func ParseStatus(s string) Status {
	normalised := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := statusAliases[normalised]; ok {
		return alias
	}
	return Status(normalised)
}

// IsAlias reports whether s is a non-canonical spelling of a known status.
func IsAlias(s string) bool {
	_, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

func (s Status) IsValid() bool {
	_, ok := ValidStatuses[s]
	return ok
}

func (s Status) IsSuccessful() bool {
	return s == StatusSuccessful
}

// Transaction is one student fee payment as returned by the EasyPay backend.
// The receipt pipeline treats it as a read-only snapshot.
type Transaction struct {
	ID            string
	Reference     string
	Status        Status
	FullName      string
	Email         string
	PhoneNumber   string
	MatricNumber  string
	College       string
	Department    string
	StudentType   string
	Level         string
	Amount        decimal.NullDecimal
	DueType       string
	PaymentMethod string
	ReceiptName   string
	Hostel        string
	RoomNumber    string
	ProofURL      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasAccommodation reports whether any accommodation detail is present.
func (t Transaction) HasAccommodation() bool {
	return strings.TrimSpace(t.Hostel) != "" || strings.TrimSpace(t.RoomNumber) != ""
}
