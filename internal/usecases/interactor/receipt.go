package interactor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/mufasadev/easypay-receipts/internal/domain/models"
	"github.com/mufasadev/easypay-receipts/internal/domain/repositories"
	apperrors "github.com/mufasadev/easypay-receipts/internal/errors"
	"github.com/mufasadev/easypay-receipts/internal/receipt"
	"github.com/mufasadev/easypay-receipts/pkg/log"
)

const (
	outcomeSent     = "sent"
	outcomeFailed   = "failed"
	outcomeRejected = "rejected"

	auditTimeout = 5 * time.Second
)

// Metrics
var (
	receiptsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "receipts_dispatched_total",
			Help: "Receipt send attempts by outcome",
		},
		[]string{"status"},
	)

	dispatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "receipt_dispatch_duration_seconds",
			Help:    "Time to render and deliver a receipt email",
			Buckets: []float64{.1, .25, .5, 1, 2, 5, 10, 30},
		},
	)
)

// ReceiptSender renders and emails one receipt.
type ReceiptSender interface {
	Send(ctx context.Context, tx models.Transaction) (receipt.Delivery, error)
}

// DocumentRenderer produces receipt PDF bytes.
type DocumentRenderer interface {
	Render(tx models.Transaction) ([]byte, error)
}

type ReceiptInteractor struct {
	sender     ReceiptSender
	renderer   DocumentRenderer
	dispatches repositories.DispatchRepository
	timeout    time.Duration
	audits     sync.WaitGroup
	logger     *zerolog.Logger
}

func NewReceiptInteractor(sender ReceiptSender, renderer DocumentRenderer, dispatches repositories.DispatchRepository, timeout time.Duration) *ReceiptInteractor {
	l := log.GetLogger()
	return &ReceiptInteractor{
		sender:     sender,
		renderer:   renderer,
		dispatches: dispatches,
		timeout:    timeout,
		logger:     &l,
	}
}

// Send emails the receipt for tx and records the attempt. Invalid records are
// rejected before anything is rendered and are not recorded.
func (i *ReceiptInteractor) Send(ctx context.Context, tx models.Transaction) (receipt.Delivery, error) {
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	start := time.Now()
	delivery, err := i.sender.Send(ctx, tx)
	elapsed := time.Since(start)

	var badRequest *apperrors.BadRequestError
	if apperrors.As(err, &badRequest) {
		receiptsDispatched.WithLabelValues(outcomeRejected).Inc()
		return receipt.Delivery{}, err
	}
	dispatchDuration.Observe(elapsed.Seconds())

	d := &models.Dispatch{
		ID:        uuid.NewString(),
		Reference: tx.Reference,
		Recipient: tx.Email,
		Amount:    tx.Amount,
		Duration:  elapsed,
		SentAt:    start.UTC(),
	}
	if err != nil {
		receiptsDispatched.WithLabelValues(outcomeFailed).Inc()
		d.Status = models.DispatchStatusFailed
		d.ErrorMessage = err.Error()
	} else {
		receiptsDispatched.WithLabelValues(outcomeSent).Inc()
		d.Status = models.DispatchStatusSent
		d.MessageID = delivery.MessageID
		if delivery.Recipient != "" {
			d.Recipient = delivery.Recipient
		}
	}
	i.record(d)

	return delivery, err
}

// Preview renders the receipt PDF without sending anything.
func (i *ReceiptInteractor) Preview(tx models.Transaction) ([]byte, error) {
	return i.renderer.Render(tx)
}

// History lists recorded send attempts for a reference, newest first.
func (i *ReceiptInteractor) History(ctx context.Context, reference string) ([]models.Dispatch, error) {
	if reference == "" {
		return nil, apperrors.NewBadRequestError(apperrors.ErrReferenceRequired)
	}
	return i.dispatches.ListByReference(ctx, reference)
}

// Wait blocks until pending audit writes finish.
func (i *ReceiptInteractor) Wait() {
	i.audits.Wait()
}

// record writes the audit row in the background; a slow or failing database
// never delays or fails the send itself.
func (i *ReceiptInteractor) record(d *models.Dispatch) {
	i.audits.Add(1)
	go func() {
		defer i.audits.Done()

		ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
		defer cancel()

		if err := i.dispatches.Insert(ctx, d); err != nil {
			i.logger.Error().Err(err).
				Str("dispatch_id", d.ID).
				Str("reference", d.Reference).
				Msg(apperrors.ErrFailedLogDispatch)
		}
	}()
}
