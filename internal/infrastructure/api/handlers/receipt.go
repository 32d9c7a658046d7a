package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/mufasadev/easypay-receipts/internal/errors"
	http2 "github.com/mufasadev/easypay-receipts/internal/infrastructure/api/http"
	"github.com/mufasadev/easypay-receipts/internal/receipt"
	"github.com/mufasadev/easypay-receipts/internal/usecases/dtos"
	"github.com/mufasadev/easypay-receipts/internal/usecases/interactor"
	"github.com/mufasadev/easypay-receipts/pkg/log"
)

type ReceiptHandler struct {
	interactor *interactor.ReceiptInteractor
	logger     *zerolog.Logger
}

func NewReceiptHandler(interactor *interactor.ReceiptInteractor) *ReceiptHandler {
	logger := log.GetLogger()
	return &ReceiptHandler{interactor: interactor, logger: &logger}
}

// SendReceipt renders the posted transaction and emails it to the payer.
func (h *ReceiptHandler) SendReceipt(w http.ResponseWriter, r *http.Request) {
	var dto dtos.TransactionDTO
	if err := decodeJSON(w, r, &dto); err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedDecodeRequestBody)
		errors.HandleHTTPError(w, err)
		return
	}

	delivery, err := h.interactor.Send(r.Context(), dto.ToModel())
	if err != nil {
		h.logger.Error().Err(err).Str("reference", string(dto.Reference)).Msg(errors.ErrFailedSendReceipt)
		errors.HandleHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dtos.SendReceiptResponse{Success: true, MessageID: delivery.MessageID})
}

// Preview returns the receipt PDF for the posted transaction without sending it.
func (h *ReceiptHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var dto dtos.TransactionDTO
	if err := decodeJSON(w, r, &dto); err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedDecodeRequestBody)
		errors.HandleHTTPError(w, err)
		return
	}

	tx := dto.ToModel()
	pdf, err := h.interactor.Preview(tx)
	if err != nil {
		h.logger.Error().Err(err).Str("reference", tx.Reference).Msg(errors.ErrFailedRenderReceipt)
		errors.HandleHTTPError(w, err)
		return
	}

	w.Header().Set("Content-Type", receipt.ContentTypePDF)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", receipt.AttachmentName(receipt.Sanitize(tx.Reference))))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// History lists the recorded send attempts for a reference.
func (h *ReceiptHandler) History(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, http2.ReferenceParam)

	dispatches, err := h.interactor.History(r.Context(), reference)
	if err != nil {
		h.logger.Error().Err(err).Str("reference", reference).Msg("failed to list dispatches")
		errors.HandleHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dtos.DispatchHistoryResponse{Success: true, Data: dtos.DispatchesFromModels(dispatches)})
}
