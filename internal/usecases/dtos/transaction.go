package dtos

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mufasadev/easypay-receipts/internal/domain/models"
)

// TransactionDTO is a payment record as the EasyPay backend and dashboard send it.
type TransactionDTO struct {
	ID            Text      `json:"_id,omitempty"`
	Reference     Text      `json:"reference"`
	Status        Text      `json:"status"`
	FullName      Text      `json:"fullName,omitempty"`
	Email         Text      `json:"email"`
	PhoneNumber   Text      `json:"phoneNumber,omitempty"`
	MatricNumber  Text      `json:"matricNumber,omitempty"`
	College       Text      `json:"college,omitempty"`
	Department    Text      `json:"department,omitempty"`
	StudentType   Text      `json:"studentType,omitempty"`
	Level         Text      `json:"level,omitempty"`
	Amount        Amount    `json:"amount"`
	DueType       Text      `json:"dueType,omitempty"`
	PaymentMethod Text      `json:"paymentMethod,omitempty"`
	ReceiptName   Text      `json:"receiptName,omitempty"`
	Hostel        Text      `json:"hostel,omitempty"`
	RoomNumber    Text      `json:"roomNumber,omitempty"`
	ProofURL      Text      `json:"proofUrl,omitempty"`
	CreatedAt     Timestamp `json:"createdAt"`
	UpdatedAt     Timestamp `json:"updatedAt"`
}

func (d TransactionDTO) ToModel() models.Transaction {
	return models.Transaction{
		ID:            string(d.ID),
		Reference:     strings.TrimSpace(string(d.Reference)),
		Status:        models.ParseStatus(string(d.Status)),
		FullName:      string(d.FullName),
		Email:         strings.TrimSpace(string(d.Email)),
		PhoneNumber:   string(d.PhoneNumber),
		MatricNumber:  string(d.MatricNumber),
		College:       string(d.College),
		Department:    string(d.Department),
		StudentType:   string(d.StudentType),
		Level:         string(d.Level),
		Amount:        decimal.NullDecimal(d.Amount),
		DueType:       string(d.DueType),
		PaymentMethod: string(d.PaymentMethod),
		ReceiptName:   string(d.ReceiptName),
		Hostel:        string(d.Hostel),
		RoomNumber:    string(d.RoomNumber),
		ProofURL:      string(d.ProofURL),
		CreatedAt:     time.Time(d.CreatedAt),
		UpdatedAt:     time.Time(d.UpdatedAt),
	}
}

func TransactionFromModel(tx models.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:            Text(tx.ID),
		Reference:     Text(tx.Reference),
		Status:        Text(tx.Status),
		FullName:      Text(tx.FullName),
		Email:         Text(tx.Email),
		PhoneNumber:   Text(tx.PhoneNumber),
		MatricNumber:  Text(tx.MatricNumber),
		College:       Text(tx.College),
		Department:    Text(tx.Department),
		StudentType:   Text(tx.StudentType),
		Level:         Text(tx.Level),
		Amount:        Amount(tx.Amount),
		DueType:       Text(tx.DueType),
		PaymentMethod: Text(tx.PaymentMethod),
		ReceiptName:   Text(tx.ReceiptName),
		Hostel:        Text(tx.Hostel),
		RoomNumber:    Text(tx.RoomNumber),
		ProofURL:      Text(tx.ProofURL),
		CreatedAt:     Timestamp(tx.CreatedAt),
		UpdatedAt:     Timestamp(tx.UpdatedAt),
	}
}

// Text accepts a JSON string, number or null. Numbers keep their literal form,
// so a level sent as 300 reads "300".
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

// Amount is a money value sent as a JSON number or numeric string. Null, ""
// and blank strings mean the amount is not available.
type Amount decimal.NullDecimal

func (a *Amount) UnmarshalJSON(data []byte) error {
	var raw Text
	if err := raw.UnmarshalJSON(data); err != nil {
		return err
	}
	s := strings.TrimSpace(string(raw))
	if s == "" {
		*a = Amount{}
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("amount %q: %w", s, err)
	}
	*a = Amount{Decimal: d, Valid: true}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return decimal.NullDecimal(a).MarshalJSON()
}

// Timestamp is an RFC 3339 time where null or "" mean unknown.
type Timestamp time.Time

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil || strings.TrimSpace(*s) == "" {
		*ts = Timestamp{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(*s))
	if err != nil {
		return err
	}
	*ts = Timestamp(parsed)
	return nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	t := time.Time(ts)
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

type StatusUpdateDTO struct {
	Status string `json:"status"`
}

type SendReceiptResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
}

// ReceiptOutcome reports whether a status change produced a receipt email.
type ReceiptOutcome struct {
	Sent      bool   `json:"sent"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

type StatusUpdateResponse struct {
	Success bool            `json:"success"`
	Data    *TransactionDTO `json:"data"`
	Receipt ReceiptOutcome  `json:"receipt"`
}

type ResendReceiptResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
	Reference string `json:"reference"`
}

// Envelope is the EasyPay backend response wrapper.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// DispatchDTO is one recorded receipt send attempt.
type DispatchDTO struct {
	ID         string              `json:"id"`
	Reference  string              `json:"reference"`
	Recipient  string              `json:"recipient"`
	Status     string              `json:"status"`
	MessageID  string              `json:"messageId,omitempty"`
	Error      string              `json:"error,omitempty"`
	Amount     decimal.NullDecimal `json:"amount"`
	DurationMS int64               `json:"durationMs"`
	SentAt     time.Time           `json:"sentAt"`
}

func DispatchesFromModels(dispatches []models.Dispatch) []DispatchDTO {
	out := make([]DispatchDTO, 0, len(dispatches))
	for _, d := range dispatches {
		out = append(out, DispatchDTO{
			ID:         d.ID,
			Reference:  d.Reference,
			Recipient:  d.Recipient,
			Status:     d.Status,
			MessageID:  d.MessageID,
			Error:      d.ErrorMessage,
			Amount:     d.Amount,
			DurationMS: d.Duration.Milliseconds(),
			SentAt:     d.SentAt,
		})
	}
	return out
}

type DispatchHistoryResponse struct {
	Success bool          `json:"success"`
	Data    []DispatchDTO `json:"data"`
}
