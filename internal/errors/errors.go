package errors

import (
	"errors"
	"fmt"
)

const (
	ErrorFailedToConnectToTheDatabase = "Failed to connect to the database"
	ErrorFailedToRunTheServer         = "Failed to run the server"
	ErrorFailedToShutdownTheServer    = "Failed to shutdown the server"
	ErrorFailedToCreateTransport      = "Failed to create the mail transport"
	ErrFailedDecodeRequestBody        = "Failed to decode request body"
	ErrInvalidRequestBody             = "Invalid request body"
	ErrFailedSendReceipt              = "Failed to send email"
	ErrFailedRenderReceipt            = "Failed to render receipt"
	ErrFailedLogDispatch              = "Failed to record receipt dispatch"
	ErrFailedUpdateStatus             = "Failed to update transaction status"
	ErrReferenceRequired              = "Transaction reference is required"
	ErrEmailRequired                  = "Transaction email is required"
	ErrStatusRequired                 = "Status is required"
	ErrInvalidStatus                  = "Invalid status"
	ErrTransactionIDRequired          = "Transaction ID is required"
	ErrInvalidTransactionID           = "Invalid Transaction ID"
	ErrUnsupportedContentType         = "Content-Type must be application/json"
	ErrReceiptRequiresSuccess         = "Receipts are only sent for successful transactions"
)

type BadRequestError struct {
	Message string
}

func NewBadRequestError(message string) *BadRequestError {
	return &BadRequestError{Message: message}
}

func (e *BadRequestError) Error() string {
	return fmt.Sprintf("Bad request: %s", e.Message)
}

type NotFoundError struct {
	Resource string
}

func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ConflictError reports an action that the resource's current state forbids.
type ConflictError struct {
	Message string
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func (e *ConflictError) Error() string {
	return e.Message
}

// RenderError is a failure to build the receipt document. No partial document survives it.
type RenderError struct {
	Stage string
	Err   error
}

func NewRenderError(stage string, err error) *RenderError {
	return &RenderError{Stage: stage, Err: err}
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render receipt: %s: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// TransportError is a failure reported by the mail transport: auth, network or recipient rejection.
type TransportError struct {
	Recipient string
	Err       error
}

func NewTransportError(recipient string, err error) *TransportError {
	return &TransportError{Recipient: recipient, Err: err}
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("deliver receipt to %s: %v", e.Recipient, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UpstreamError is a non-success answer from the EasyPay backend.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func NewUpstreamError(statusCode int, message string) *UpstreamError {
	return &UpstreamError{StatusCode: statusCode, Message: message}
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend responded with status %d: %s", e.StatusCode, e.Message)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// IsDeliveryFailure reports whether err came from rendering or the transport.
func IsDeliveryFailure(err error) bool {
	var renderErr *RenderError
	var transportErr *TransportError
	return errors.As(err, &renderErr) || errors.As(err, &transportErr)
}
