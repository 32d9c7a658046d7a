package middlewares

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mufasadev/easypay-receipts/internal/errors"
	http2 "github.com/mufasadev/easypay-receipts/internal/infrastructure/api/http"
	"github.com/mufasadev/easypay-receipts/pkg/log"
)

// backend ids are Mongo ObjectIDs today; anything URL-safe and short is accepted
var transactionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// TransactionIDValidationMiddleware validates the transaction id path parameter.
func TransactionIDValidationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.GetLogger()
		id := strings.TrimSpace(chi.URLParam(r, http2.TransactionIDParam))
		if id == "" {
			logger.Error().Msg(errors.ErrTransactionIDRequired)
			errors.HandleHTTPError(w, errors.NewBadRequestError(errors.ErrTransactionIDRequired))
			return
		}

		if !transactionIDPattern.MatchString(id) {
			logger.Error().Str("transaction_id", id).Msg(errors.ErrInvalidTransactionID)
			errors.HandleHTTPError(w, errors.NewBadRequestError(errors.ErrInvalidTransactionID))
			return
		}

		rctx := chi.RouteContext(r.Context())
		rctx.URLParams.Add(http2.TransactionIDParam, id)
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
		next.ServeHTTP(w, r)
	})
}
