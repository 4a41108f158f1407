package warehousing

import (
	"context"

	"github.com/stockcraft/backend/internal/domain/warehousing"
)

// TransactionScope provides transactional access to warehousing repositories.
// Implementations wrap the function call in a database transaction so that
// stock levels, lots, reservations, moves and sheets commit or roll back
// together.
type TransactionScope interface {
	// Execute runs the given function within a transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to repositories within a transaction
type TransactionalRepositories interface {
	// WarehouseRepo returns the warehouse repository bound to this transaction
	WarehouseRepo() warehousing.WarehouseRepository

	// LevelRepo returns the stock level repository bound to this transaction
	LevelRepo() warehousing.StockLevelRepository

	// LotRepo returns the stock lot repository bound to this transaction
	LotRepo() warehousing.StockLotRepository

	// ReservationRepo returns the reservation repository bound to this transaction
	ReservationRepo() warehousing.StockReservationRepository

	// MoveRepo returns the stock move repository bound to this transaction
	MoveRepo() warehousing.StockMoveRepository

	// SheetRepo returns the inventory sheet repository bound to this transaction
	SheetRepo() warehousing.InventorySheetRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// Useful for testing or when repositories already handle their own consistency.
type NoOpTransactionScope struct {
	warehouseRepo   warehousing.WarehouseRepository
	levelRepo       warehousing.StockLevelRepository
	lotRepo         warehousing.StockLotRepository
	reservationRepo warehousing.StockReservationRepository
	moveRepo        warehousing.StockMoveRepository
	sheetRepo       warehousing.InventorySheetRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	warehouseRepo warehousing.WarehouseRepository,
	levelRepo warehousing.StockLevelRepository,
	lotRepo warehousing.StockLotRepository,
	reservationRepo warehousing.StockReservationRepository,
	moveRepo warehousing.StockMoveRepository,
	sheetRepo warehousing.InventorySheetRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		warehouseRepo:   warehouseRepo,
		levelRepo:       levelRepo,
		lotRepo:         lotRepo,
		reservationRepo: reservationRepo,
		moveRepo:        moveRepo,
		sheetRepo:       sheetRepo,
	}
}

// Execute runs the function without transaction support
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// WarehouseRepo returns the warehouse repository
func (s *NoOpTransactionScope) WarehouseRepo() warehousing.WarehouseRepository {
	return s.warehouseRepo
}

// LevelRepo returns the stock level repository
func (s *NoOpTransactionScope) LevelRepo() warehousing.StockLevelRepository {
	return s.levelRepo
}

// LotRepo returns the stock lot repository
func (s *NoOpTransactionScope) LotRepo() warehousing.StockLotRepository {
	return s.lotRepo
}

// ReservationRepo returns the reservation repository
func (s *NoOpTransactionScope) ReservationRepo() warehousing.StockReservationRepository {
	return s.reservationRepo
}

// MoveRepo returns the stock move repository
func (s *NoOpTransactionScope) MoveRepo() warehousing.StockMoveRepository {
	return s.moveRepo
}

// SheetRepo returns the inventory sheet repository
func (s *NoOpTransactionScope) SheetRepo() warehousing.InventorySheetRepository {
	return s.sheetRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
