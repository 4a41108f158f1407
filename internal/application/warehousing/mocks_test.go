package warehousing

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockcraft/backend/internal/domain/shared"
	"github.com/stockcraft/backend/internal/domain/warehousing"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{
		events: make([]shared.DomainEvent, 0),
	}
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockEventPublisher) GetEvents() []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]shared.DomainEvent, len(m.events))
	copy(result, m.events)
	return result
}

func (m *MockEventPublisher) GetEventsByType(eventType string) []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]shared.DomainEvent, 0)
	for _, e := range m.events {
		if e.EventType() == eventType {
			result = append(result, e)
		}
	}
	return result
}

// MockWarehouseRepository is a mock implementation of WarehouseRepository
type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehousing.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehousing.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindByCode(ctx context.Context, code string) (*warehousing.Warehouse, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehousing.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]warehousing.Warehouse, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]warehousing.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) Save(ctx context.Context, warehouse *warehousing.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWarehouseRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// MockStockLevelRepository is a mock implementation of StockLevelRepository
type MockStockLevelRepository struct {
	mock.Mock
}

func (m *MockStockLevelRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehousing.StockLevel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehousing.StockLevel), args.Error(1)
}

func (m *MockStockLevelRepository) FindByKey(ctx context.Context, itemID, warehouseID uuid.UUID, locationID *uuid.UUID) (*warehousing.StockLevel, error) {
	args := m.Called(ctx, itemID, warehouseID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehousing.StockLevel), args.Error(1)
}

func (m *MockStockLevelRepository) FindByItemAndWarehouse(ctx context.Context, itemID, warehouseID uuid.UUID) ([]warehousing.StockLevel, error) {
	args := m.Called(ctx, itemID, warehouseID)
	return args.Get(0).([]warehousing.StockLevel), args.Error(1)
}

func (m *MockStockLevelRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]warehousing.StockLevel, error) {
	args := m.Called(ctx, warehouseID, filter)
	return args.Get(0).([]warehousing.StockLevel), args.Error(1)
}

func (m *MockStockLevelRepository) FindBelowMinimum(ctx context.Context, filter shared.Filter) ([]warehousing.StockLevel, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]warehousing.StockLevel), args.Error(1)
}

func (m *MockStockLevelRepository) Save(ctx context.Context, level *warehousing.StockLevel) error {
	args := m.Called(ctx, level)
	return args.Error(0)
}

func (m *MockStockLevelRepository) SaveWithLock(ctx context.Context, level *warehousing.StockLevel) error {
	args := m.Called(ctx, level)
	return args.Error(0)
}

func (m *MockStockLevelRepository) GetOrCreate(ctx context.Context, itemID, warehouseID uuid.UUID, locationID *uuid.UUID) (*warehousing.StockLevel, error) {
	args := m.Called(ctx, itemID, warehouseID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehousing.StockLevel), args.Error(1)
}

func (m *MockStockLevelRepository) SumOnHandByItem(ctx context.Context, itemID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockStockLevelRepository) CountByWarehouse(ctx context.Context, warehouseID uuid.UUID) (int64, error) {
	args := m.Called(ctx, warehouseID)
	return args.Get(0).(int64), args.Error(1)
}

// MockStockLotRepository is a mock implementation of StockLotRepository
type MockStockLotRepository struct {
	mock.Mock
}

func (m *MockStockLotRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehousing.StockLot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehousing.StockLot), args.Error(1)
}

func (m *MockStockLotRepository) FindOpenByItemAndWarehouse(ctx context.Context, itemID, warehouseID uuid.UUID) ([]warehousing.StockLot, error) {
	args := m.Called(ctx, itemID, warehouseID)
	return args.Get(0).([]warehousing.StockLot), args.Error(1)
}

func (m *MockStockLotRepository) FindByItemAndWarehouse(ctx context.Context, itemID, warehouseID uuid.UUID, filter shared.Filter) ([]warehousing.StockLot, error) {
	args := m.Called(ctx, itemID, warehouseID, filter)
	return args.Get(0).([]warehousing.StockLot), args.Error(1)
}

func (m *MockStockLotRepository) FindRecentByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]warehousing.StockLot, error) {
	args := m.Called(ctx, itemID, limit)
	return args.Get(0).([]warehousing.StockLot), args.Error(1)
}

func (m *MockStockLotRepository) Create(ctx context.Context, lot *warehousing.StockLot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *MockStockLotRepository) Save(ctx context.Context, lot *warehousing.StockLot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *MockStockLotRepository) SaveAll(ctx context.Context, lots []*warehousing.StockLot) error {
	args := m.Called(ctx, lots)
	return args.Error(0)
}

func (m *MockStockLotRepository) SumRemainingByItemAndWarehouse(ctx context.Context, itemID, warehouseID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, itemID, warehouseID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockStockReservationRepository is a mock implementation of StockReservationRepository
type MockStockReservationRepository struct {
	mock.Mock
}

func (m *MockStockReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehousing.StockReservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehousing.StockReservation), args.Error(1)
}

func (m *MockStockReservationRepository) FindActiveByItemAndWarehouse(ctx context.Context, itemID, warehouseID uuid.UUID) ([]warehousing.StockReservation, error) {
	args := m.Called(ctx, itemID, warehouseID)
	return args.Get(0).([]warehousing.StockReservation), args.Error(1)
}

func (m *MockStockReservationRepository) FindByReference(ctx context.Context, kind warehousing.ReferenceKind, refID uuid.UUID) ([]warehousing.StockReservation, error) {
	args := m.Called(ctx, kind, refID)
	return args.Get(0).([]warehousing.StockReservation), args.Error(1)
}

func (m *MockStockReservationRepository) FindAll(ctx context.Context, filter warehousing.ReservationFilter) ([]warehousing.StockReservation, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]warehousing.StockReservation), args.Error(1)
}

func (m *MockStockReservationRepository) Save(ctx context.Context, reservation *warehousing.StockReservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockStockReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStockReservationRepository) Count(ctx context.Context, filter warehousing.ReservationFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockStockMoveRepository is a mock implementation of StockMoveRepository
type MockStockMoveRepository struct {
	mock.Mock
}

func (m *MockStockMoveRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehousing.StockMove, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehousing.StockMove), args.Error(1)
}

func (m *MockStockMoveRepository) FindAll(ctx context.Context, filter warehousing.MoveFilter) ([]warehousing.StockMove, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]warehousing.StockMove), args.Error(1)
}

func (m *MockStockMoveRepository) FindByReference(ctx context.Context, kind warehousing.ReferenceKind, refID uuid.UUID) ([]warehousing.StockMove, error) {
	args := m.Called(ctx, kind, refID)
	return args.Get(0).([]warehousing.StockMove), args.Error(1)
}

func (m *MockStockMoveRepository) Create(ctx context.Context, move *warehousing.StockMove) error {
	args := m.Called(ctx, move)
	return args.Error(0)
}

func (m *MockStockMoveRepository) CreateBatch(ctx context.Context, moves []*warehousing.StockMove) error {
	args := m.Called(ctx, moves)
	return args.Error(0)
}

func (m *MockStockMoveRepository) Count(ctx context.Context, filter warehousing.MoveFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockInventorySheetRepository is a mock implementation of InventorySheetRepository
type MockInventorySheetRepository struct {
	mock.Mock
}

func (m *MockInventorySheetRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehousing.InventorySheet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehousing.InventorySheet), args.Error(1)
}

func (m *MockInventorySheetRepository) FindBySheetNumber(ctx context.Context, sheetNumber string) (*warehousing.InventorySheet, error) {
	args := m.Called(ctx, sheetNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehousing.InventorySheet), args.Error(1)
}

func (m *MockInventorySheetRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]warehousing.InventorySheet, error) {
	args := m.Called(ctx, warehouseID, filter)
	return args.Get(0).([]warehousing.InventorySheet), args.Error(1)
}

func (m *MockInventorySheetRepository) FindByStatus(ctx context.Context, status warehousing.SheetStatus, filter shared.Filter) ([]warehousing.InventorySheet, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]warehousing.InventorySheet), args.Error(1)
}

func (m *MockInventorySheetRepository) FindAll(ctx context.Context, filter shared.Filter) ([]warehousing.InventorySheet, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]warehousing.InventorySheet), args.Error(1)
}

func (m *MockInventorySheetRepository) Save(ctx context.Context, sheet *warehousing.InventorySheet) error {
	args := m.Called(ctx, sheet)
	return args.Error(0)
}

func (m *MockInventorySheetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInventorySheetRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventorySheetRepository) ExistsBySheetNumber(ctx context.Context, sheetNumber string) (bool, error) {
	args := m.Called(ctx, sheetNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockInventorySheetRepository) GenerateSheetNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// testRepos bundles the repository mocks behind a NoOpTransactionScope
type testRepos struct {
	warehouseRepo   *MockWarehouseRepository
	levelRepo       *MockStockLevelRepository
	lotRepo         *MockStockLotRepository
	reservationRepo *MockStockReservationRepository
	moveRepo        *MockStockMoveRepository
	sheetRepo       *MockInventorySheetRepository
	txScope         *NoOpTransactionScope
}

func newTestRepos() *testRepos {
	r := &testRepos{
		warehouseRepo:   new(MockWarehouseRepository),
		levelRepo:       new(MockStockLevelRepository),
		lotRepo:         new(MockStockLotRepository),
		reservationRepo: new(MockStockReservationRepository),
		moveRepo:        new(MockStockMoveRepository),
		sheetRepo:       new(MockInventorySheetRepository),
	}
	r.txScope = NewNoOpTransactionScope(
		r.warehouseRepo, r.levelRepo, r.lotRepo,
		r.reservationRepo, r.moveRepo, r.sheetRepo,
	)
	return r
}
