package interactor

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mufasadev/easypay-receipts/internal/domain/models"
	"github.com/mufasadev/easypay-receipts/internal/domain/repositories"
	apperrors "github.com/mufasadev/easypay-receipts/internal/errors"
	"github.com/mufasadev/easypay-receipts/internal/receipt"
	"github.com/mufasadev/easypay-receipts/internal/usecases/dtos"
	"github.com/mufasadev/easypay-receipts/pkg/log"
)

type TransactionInteractor struct {
	transactionRepository repositories.TransactionRepository
	receipts              ReceiptSender
	logger                *zerolog.Logger
}

func NewTransactionInteractor(transactionRepository repositories.TransactionRepository, receipts ReceiptSender) *TransactionInteractor {
	l := log.GetLogger()
	return &TransactionInteractor{
		transactionRepository: transactionRepository,
		receipts:              receipts,
		logger:                &l,
	}
}

// UpdateStatus changes the status on the backend. A receipt goes out only when
// the record moves into successful from any other status; setting successful
// on an already successful record sends nothing.
//
// A failed receipt does not undo the status change. It is reported in the
// returned outcome and can be retried with Resend.
func (i *TransactionInteractor) UpdateStatus(ctx context.Context, id string, rawStatus string) (*models.Transaction, dtos.ReceiptOutcome, error) {
	var outcome dtos.ReceiptOutcome

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, outcome, apperrors.NewBadRequestError(apperrors.ErrTransactionIDRequired)
	}
	if strings.TrimSpace(rawStatus) == "" {
		return nil, outcome, apperrors.NewBadRequestError(apperrors.ErrStatusRequired)
	}
	status := models.ParseStatus(rawStatus)
	if !status.IsValid() {
		return nil, outcome, apperrors.NewBadRequestError(apperrors.ErrInvalidStatus)
	}
	if models.IsAlias(rawStatus) {
		i.logger.Debug().Str("raw", rawStatus).Str("status", string(status)).Msg("Normalised status alias")
	}

	previous, err := i.transactionRepository.GetByID(ctx, id)
	if err != nil {
		i.logger.Error().Err(err).Str("transaction_id", id).Msg("Failed to get transaction")
		return nil, outcome, err
	}

	updated, err := i.transactionRepository.UpdateStatus(ctx, id, status)
	if err != nil {
		i.logger.Error().Err(err).Str("transaction_id", id).Msg(apperrors.ErrFailedUpdateStatus)
		return nil, outcome, err
	}

	i.logger.Info().
		Str("transaction_id", id).
		Str("reference", updated.Reference).
		Str("from", string(previous.Status)).
		Str("to", string(updated.Status)).
		Msg("transaction status updated")

	if previous.Status.IsSuccessful() || !updated.Status.IsSuccessful() {
		return updated, outcome, nil
	}

	delivery, err := i.receipts.Send(ctx, *updated)
	if err != nil {
		outcome.Error = sendFailureMessage(err)
		return updated, outcome, nil
	}

	outcome.Sent = true
	outcome.MessageID = delivery.MessageID
	return updated, outcome, nil
}

// Resend emails the receipt of an already successful transaction again.
// Every call sends a new email.
func (i *TransactionInteractor) Resend(ctx context.Context, id string) (receipt.Delivery, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return receipt.Delivery{}, apperrors.NewBadRequestError(apperrors.ErrTransactionIDRequired)
	}

	tx, err := i.transactionRepository.GetByID(ctx, id)
	if err != nil {
		i.logger.Error().Err(err).Str("transaction_id", id).Msg("Failed to get transaction")
		return receipt.Delivery{}, err
	}
	if !tx.Status.IsSuccessful() {
		return receipt.Delivery{}, apperrors.NewConflictError(apperrors.ErrReceiptRequiresSuccess)
	}

	return i.receipts.Send(ctx, *tx)
}

func sendFailureMessage(err error) string {
	var badRequest *apperrors.BadRequestError
	if apperrors.As(err, &badRequest) {
		return badRequest.Message
	}
	return apperrors.ErrFailedSendReceipt
}
