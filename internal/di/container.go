package di

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mufasadev/easypay-receipts/internal/config"
	"github.com/mufasadev/easypay-receipts/internal/domain/repositories"
	"github.com/mufasadev/easypay-receipts/internal/infrastructure/api/handlers"
	"github.com/mufasadev/easypay-receipts/internal/infrastructure/backend"
	dbrepositories "github.com/mufasadev/easypay-receipts/internal/infrastructure/database/repositories"
	"github.com/mufasadev/easypay-receipts/internal/receipt"
	"github.com/mufasadev/easypay-receipts/internal/usecases/interactor"
)

type Container struct {
	ReceiptHandler            *handlers.ReceiptHandler
	TransactionHandler        *handlers.TransactionHandler
	ReceiptInteractor         *interactor.ReceiptInteractor
	PurgeDispatchesInteractor *interactor.PurgeDispatchesInteractor
}

// NewContainer creates a new Container instance. A nil db keeps the dispatch
// log disabled.
func NewContainer(cfg *config.Config, db *pgxpool.Pool, transport receipt.Transport) *Container {
	var dispatchRepository repositories.DispatchRepository = dbrepositories.NopDispatchRepository{}
	if db != nil {
		dispatchRepository = dbrepositories.NewDispatchRepositoryImpl(db)
	}

	renderer := receipt.NewRenderer(
		receipt.WithBrand(cfg.Receipt.Brand, cfg.Receipt.SupportEmail),
		receipt.WithLocation(cfg.Receipt.Location()),
	)
	dispatcher := receipt.NewDispatcher(renderer, transport)

	receiptInteractor := interactor.NewReceiptInteractor(dispatcher, renderer, dispatchRepository, cfg.Receipt.Timeout())
	receiptHandler := handlers.NewReceiptHandler(receiptInteractor)

	transactionRepository := backend.NewClient(cfg.Backend)
	transactionInteractor := interactor.NewTransactionInteractor(transactionRepository, receiptInteractor)
	transactionHandler := handlers.NewTransactionHandler(transactionInteractor)

	purgeDispatchesInteractor := interactor.NewPurgeDispatchesInteractor(dispatchRepository, cfg.Retention.Window())

	return &Container{
		ReceiptHandler:            receiptHandler,
		TransactionHandler:        transactionHandler,
		ReceiptInteractor:         receiptInteractor,
		PurgeDispatchesInteractor: purgeDispatchesInteractor,
	}
}
