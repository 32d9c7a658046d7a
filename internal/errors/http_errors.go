package errors

import (
	"encoding/json"
	"errors"
	"net/http"
)

// HTTPError is the failure envelope the dashboard expects.
type HTTPError struct {
	Code    int    `json:"-"`
	Success bool   `json:"success"`
	Message string `json:"error"`
}

// HandleHTTPError handles http errors
func HandleHTTPError(w http.ResponseWriter, err error) {
	httpErr := toHTTPError(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.Code)
	json.NewEncoder(w).Encode(httpErr)
}

func toHTTPError(err error) *HTTPError {
	var (
		badRequest *BadRequestError
		notFound   *NotFoundError
		conflict   *ConflictError
		upstream   *UpstreamError
	)

	switch {
	case errors.As(err, &badRequest):
		return &HTTPError{Code: http.StatusBadRequest, Message: badRequest.Message}
	case errors.As(err, &notFound):
		return &HTTPError{Code: http.StatusNotFound, Message: notFound.Error()}
	case errors.As(err, &conflict):
		return &HTTPError{Code: http.StatusConflict, Message: conflict.Error()}
	case IsDeliveryFailure(err):
		return &HTTPError{Code: http.StatusInternalServerError, Message: ErrFailedSendReceipt}
	case errors.As(err, &upstream):
		code := http.StatusBadGateway
		if upstream.StatusCode == http.StatusUnauthorized || upstream.StatusCode == http.StatusForbidden {
			code = upstream.StatusCode
		}
		return &HTTPError{Code: code, Message: upstream.Error()}
	default:
		return &HTTPError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	}
}
