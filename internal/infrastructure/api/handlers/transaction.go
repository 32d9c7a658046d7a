package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/mufasadev/easypay-receipts/internal/errors"
	http2 "github.com/mufasadev/easypay-receipts/internal/infrastructure/api/http"
	"github.com/mufasadev/easypay-receipts/internal/infrastructure/backend"
	"github.com/mufasadev/easypay-receipts/internal/usecases/dtos"
	"github.com/mufasadev/easypay-receipts/internal/usecases/interactor"
	"github.com/mufasadev/easypay-receipts/pkg/log"
)

type TransactionHandler struct {
	interactor *interactor.TransactionInteractor
	logger     *zerolog.Logger
}

func NewTransactionHandler(interactor *interactor.TransactionInteractor) *TransactionHandler {
	logger := log.GetLogger()
	return &TransactionHandler{interactor: interactor, logger: &logger}
}

// UpdateStatus sets a transaction's status on the backend and sends the
// receipt when the transaction has just become successful.
func (h *TransactionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var dto dtos.StatusUpdateDTO
	if err := decodeJSON(w, r, &dto); err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedDecodeRequestBody)
		errors.HandleHTTPError(w, err)
		return
	}

	id := chi.URLParam(r, http2.TransactionIDParam)
	session := backend.SessionFromRequest(r)
	ctx := backend.WithSession(r.Context(), session)

	updated, outcome, err := h.interactor.UpdateStatus(ctx, id, dto.Status)
	forwardCookies(w, session)
	if err != nil {
		h.logger.Error().Err(err).Str("transaction_id", id).Msg(errors.ErrFailedUpdateStatus)
		errors.HandleHTTPError(w, err)
		return
	}

	data := dtos.TransactionFromModel(*updated)
	writeJSON(w, http.StatusOK, dtos.StatusUpdateResponse{Success: true, Data: &data, Receipt: outcome})
}

// ResendReceipt emails the receipt of a successful transaction again.
func (h *TransactionHandler) ResendReceipt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, http2.TransactionIDParam)
	session := backend.SessionFromRequest(r)
	ctx := backend.WithSession(r.Context(), session)

	delivery, err := h.interactor.Resend(ctx, id)
	forwardCookies(w, session)
	if err != nil {
		h.logger.Error().Err(err).Str("transaction_id", id).Msg(errors.ErrFailedSendReceipt)
		errors.HandleHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dtos.ResendReceiptResponse{
		Success:   true,
		MessageID: delivery.MessageID,
		Reference: delivery.Reference,
	})
}

// forwardCookies hands tokens the backend rotated during the call back to the browser.
func forwardCookies(w http.ResponseWriter, session *backend.Session) {
	for _, c := range session.Refreshed() {
		http.SetCookie(w, c)
	}
}
