package interactor

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mufasadev/easypay-receipts/internal/domain/models"
	"github.com/mufasadev/easypay-receipts/internal/receipt"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, tx models.Transaction) (receipt.Delivery, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(receipt.Delivery), args.Error(1)
}

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) Render(tx models.Transaction) ([]byte, error) {
	args := m.Called(tx)
	pdf, _ := args.Get(0).([]byte)
	return pdf, args.Error(1)
}

type mockDispatchRepository struct {
	mock.Mock
}

func (m *mockDispatchRepository) Insert(ctx context.Context, d *models.Dispatch) error {
	return m.Called(ctx, d).Error(0)
}

func (m *mockDispatchRepository) ListByReference(ctx context.Context, reference string) ([]models.Dispatch, error) {
	args := m.Called(ctx, reference)
	dispatches, _ := args.Get(0).([]models.Dispatch)
	return dispatches, args.Error(1)
}

func (m *mockDispatchRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type mockTransactionRepository struct {
	mock.Mock
}

func (m *mockTransactionRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(*models.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionRepository) UpdateStatus(ctx context.Context, id string, status models.Status) (*models.Transaction, error) {
	args := m.Called(ctx, id, status)
	tx, _ := args.Get(0).(*models.Transaction)
	return tx, args.Error(1)
}
