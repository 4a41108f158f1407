package persistence

import (
	"context"

	appwar "github.com/stockcraft/backend/internal/application/warehousing"
	"github.com/stockcraft/backend/internal/domain/warehousing"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appwar.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// WarehouseRepo returns the warehouse repository scoped to the current transaction.
func (r *gormTransactionalRepositories) WarehouseRepo() warehousing.WarehouseRepository {
	return NewGormWarehouseRepository(r.tx)
}

// LevelRepo returns the stock level repository scoped to the current transaction.
func (r *gormTransactionalRepositories) LevelRepo() warehousing.StockLevelRepository {
	return NewGormStockLevelRepository(r.tx)
}

// LotRepo returns the stock lot repository scoped to the current transaction.
func (r *gormTransactionalRepositories) LotRepo() warehousing.StockLotRepository {
	return NewGormStockLotRepository(r.tx)
}

// ReservationRepo returns the reservation repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ReservationRepo() warehousing.StockReservationRepository {
	return NewGormStockReservationRepository(r.tx)
}

// MoveRepo returns the stock move repository scoped to the current transaction.
func (r *gormTransactionalRepositories) MoveRepo() warehousing.StockMoveRepository {
	return NewGormStockMoveRepository(r.tx)
}

// SheetRepo returns the inventory sheet repository scoped to the current transaction.
func (r *gormTransactionalRepositories) SheetRepo() warehousing.InventorySheetRepository {
	return NewGormInventorySheetRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appwar.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appwar.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
