package warehousing

import (
	"context"
	"fmt"

	"github.com/stockcraft/backend/internal/domain/shared"
	"github.com/stockcraft/backend/internal/domain/warehousing"
	"go.uber.org/zap"
)

// StockBelowThresholdHandler reacts to StockBelowThreshold events and
// pushes replenishment alerts through the configured notifier
type StockBelowThresholdHandler struct {
	logger   *zap.Logger
	notifier StockAlertNotifier
}

// StockAlertNotifier is the interface for sending stock alerts
// Implementations can support different channels (in-app, email, SMS, etc.)
type StockAlertNotifier interface {
	// SendAlert sends a stock alert notification
	SendAlert(ctx context.Context, alert StockAlert) error
}

// StockAlert represents a stock level alert
type StockAlert struct {
	StockLevelID string `json:"stock_level_id"`
	ItemID       string `json:"item_id"`
	WarehouseID  string `json:"warehouse_id"`
	OnHand       string `json:"on_hand"`
	MinQuantity  string `json:"min_quantity"`
	AlertType    string `json:"alert_type"` // "low_stock", "out_of_stock"
}

// NewStockBelowThresholdHandler creates a new handler for stock below threshold events
func NewStockBelowThresholdHandler(logger *zap.Logger) *StockBelowThresholdHandler {
	return &StockBelowThresholdHandler{
		logger: logger,
	}
}

// WithNotifier sets the notifier for sending alerts
func (h *StockBelowThresholdHandler) WithNotifier(notifier StockAlertNotifier) *StockBelowThresholdHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *StockBelowThresholdHandler) EventTypes() []string {
	return []string{warehousing.EventTypeStockBelowThreshold}
}

// Handle processes a StockBelowThresholdEvent
func (h *StockBelowThresholdHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	thresholdEvent, ok := event.(*warehousing.StockBelowThresholdEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", warehousing.EventTypeStockBelowThreshold),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			warehousing.EventTypeStockBelowThreshold, event.EventType())
	}

	h.logger.Warn("stock below threshold detected",
		zap.String("stock_level_id", thresholdEvent.StockLevelID.String()),
		zap.String("item_id", thresholdEvent.ItemID.String()),
		zap.String("warehouse_id", thresholdEvent.WarehouseID.String()),
		zap.String("on_hand", thresholdEvent.OnHand.String()),
		zap.String("min_quantity", thresholdEvent.MinQuantity.String()),
	)

	alertType := "low_stock"
	if thresholdEvent.OnHand.IsZero() {
		alertType = "out_of_stock"
	}

	if h.notifier == nil {
		return nil
	}

	alert := StockAlert{
		StockLevelID: thresholdEvent.StockLevelID.String(),
		ItemID:       thresholdEvent.ItemID.String(),
		WarehouseID:  thresholdEvent.WarehouseID.String(),
		OnHand:       thresholdEvent.OnHand.String(),
		MinQuantity:  thresholdEvent.MinQuantity.String(),
		AlertType:    alertType,
	}

	if err := h.notifier.SendAlert(ctx, alert); err != nil {
		// Notification failure must not fail the event handling
		h.logger.Error("failed to send stock alert notification",
			zap.String("item_id", alert.ItemID),
			zap.Error(err),
		)
	}

	return nil
}

// Ensure StockBelowThresholdHandler implements shared.EventHandler
var _ shared.EventHandler = (*StockBelowThresholdHandler)(nil)

// LoggingStockAlertNotifier is a simple notifier that logs alerts.
// Useful for development and testing.
type LoggingStockAlertNotifier struct {
	logger *zap.Logger
}

// NewLoggingStockAlertNotifier creates a new logging notifier
func NewLoggingStockAlertNotifier(logger *zap.Logger) *LoggingStockAlertNotifier {
	return &LoggingStockAlertNotifier{
		logger: logger,
	}
}

// SendAlert logs the stock alert
func (n *LoggingStockAlertNotifier) SendAlert(ctx context.Context, alert StockAlert) error {
	n.logger.Warn("STOCK ALERT",
		zap.String("type", alert.AlertType),
		zap.String("item_id", alert.ItemID),
		zap.String("warehouse_id", alert.WarehouseID),
		zap.String("on_hand", alert.OnHand),
		zap.String("min_quantity", alert.MinQuantity),
	)
	return nil
}

// Ensure LoggingStockAlertNotifier implements StockAlertNotifier
var _ StockAlertNotifier = (*LoggingStockAlertNotifier)(nil)
