package http

// URL parameter names shared by the router, middlewares and handlers.
const (
	TransactionIDParam = "transactionID"
	ReferenceParam     = "reference"
)
