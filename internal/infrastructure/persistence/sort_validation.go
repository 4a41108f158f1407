package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// Per-table whitelists keep user-supplied order fields out of the SQL.

// WarehouseSortFields contains allowed sort fields for warehouses
var WarehouseSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"status":     true,
}

// StockLevelSortFields contains allowed sort fields for stock levels
var StockLevelSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"item_id":      true,
	"warehouse_id": true,
	"on_hand":      true,
	"reserved":     true,
	"min_quantity": true,
	"max_quantity": true,
}

// StockLotSortFields contains allowed sort fields for stock lots
var StockLotSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"item_id":      true,
	"warehouse_id": true,
	"acquired_at":  true,
	"unit_cost":    true,
	"remaining":    true,
}

// StockMoveSortFields contains allowed sort fields for stock moves
var StockMoveSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"moved_at":   true,
	"move_type":  true,
	"quantity":   true,
	"unit_cost":  true,
}

// StockReservationSortFields contains allowed sort fields for stock reservations
var StockReservationSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"quantity":   true,
	"state":      true,
	"closed_at":  true,
}

// InventorySheetSortFields contains allowed sort fields for inventory sheets
var InventorySheetSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"sheet_number": true,
	"status":       true,
	"started_at":   true,
	"completed_at": true,
	"approved_at":  true,
}
