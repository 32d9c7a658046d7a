package dtos

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mufasadev/easypay-receipts/internal/domain/models"
)

func TestTransactionDTOToModel(t *testing.T) {
	body := `{
		"_id": "665f1c",
		"reference": " TXN-001 ",
		"status": "success",
		"email": "a@b.com",
		"level": 300,
		"amount": 5000,
		"hostel": null,
		"paymentMethod": "bank_transfer",
		"createdAt": "2026-10-01T14:05:00.000Z",
		"updatedAt": ""
	}`

	var dto TransactionDTO
	require.NoError(t, json.Unmarshal([]byte(body), &dto))
	tx := dto.ToModel()

	assert.Equal(t, "665f1c", tx.ID)
	assert.Equal(t, "TXN-001", tx.Reference)
	assert.Equal(t, models.StatusSuccessful, tx.Status)
	assert.Equal(t, "300", tx.Level)
	assert.Equal(t, "", tx.Hostel)
	require.True(t, tx.Amount.Valid)
	assert.Equal(t, "5000", tx.Amount.Decimal.String())
	assert.Equal(t, time.Date(2026, time.October, 1, 14, 5, 0, 0, time.UTC), tx.CreatedAt)
	assert.True(t, tx.UpdatedAt.IsZero())
}

func TestTransactionDTOAbsentAmount(t *testing.T) {
	var dto TransactionDTO
	require.NoError(t, json.Unmarshal([]byte(`{"reference":"TXN-002","email":"a@b.com"}`), &dto))
	assert.False(t, dto.ToModel().Amount.Valid)

	for _, raw := range []string{`null`, `""`, `"  "`} {
		t.Run(raw, func(t *testing.T) {
			var dto TransactionDTO
			require.NoError(t, json.Unmarshal([]byte(`{"amount":`+raw+`}`), &dto))
			assert.False(t, dto.ToModel().Amount.Valid)
		})
	}
}

func TestTransactionDTONumericStringAmount(t *testing.T) {
	var dto TransactionDTO
	require.NoError(t, json.Unmarshal([]byte(`{"amount":" 12345.50 "}`), &dto))

	amount := dto.ToModel().Amount
	require.True(t, amount.Valid)
	assert.Equal(t, "12345.5", amount.Decimal.String())
}

func TestTransactionDTORejectsMalformedFields(t *testing.T) {
	var dto TransactionDTO
	assert.Error(t, json.Unmarshal([]byte(`{"createdAt":"yesterday"}`), &dto))
	assert.Error(t, json.Unmarshal([]byte(`{"level":true}`), &dto))
	assert.Error(t, json.Unmarshal([]byte(`{"amount":"lots"}`), &dto))
}

func TestTransactionFromModelRoundTrip(t *testing.T) {
	tx := models.Transaction{
		ID:        "665f1c",
		Reference: "TXN-001",
		Status:    models.StatusPending,
		Email:     "a@b.com",
		CreatedAt: time.Date(2026, time.October, 1, 14, 5, 0, 0, time.UTC),
	}

	data, err := json.Marshal(TransactionFromModel(tx))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"_id":"665f1c"`)
	assert.Contains(t, string(data), `"createdAt":"2026-10-01T14:05:00Z"`)
	assert.Contains(t, string(data), `"updatedAt":null`)
	assert.Contains(t, string(data), `"amount":null`)

	var back TransactionDTO
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, tx, back.ToModel())
}
