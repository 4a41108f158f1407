package warehousing

import (
	"fmt"

	"github.com/stockcraft/backend/internal/domain/shared"
)

func newInvalidMethodError(raw string) *shared.DomainError {
	return shared.NewDomainError("INVALID_METHOD", fmt.Sprintf("Unknown valuation method: %s", raw))
}

func newInvalidTransitionError(from, to string) *shared.DomainError {
	return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot transition from %s to %s", from, to))
}

func newInsufficientStockError(requested, available fmt.Stringer) *shared.DomainError {
	return shared.NewDomainError("INSUFFICIENT_STOCK",
		fmt.Sprintf("Insufficient stock: requested %s, on hand %s", requested.String(), available.String()))
}

func newInsufficientAvailableStockError(requested, available fmt.Stringer) *shared.DomainError {
	return shared.NewDomainError("INSUFFICIENT_AVAILABLE_STOCK",
		fmt.Sprintf("Insufficient available stock: requested %s, available %s", requested.String(), available.String()))
}
