package warehousing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSheet(t *testing.T) *InventorySheet {
	t.Helper()
	sheet, err := NewInventorySheet(uuid.New(), "CNT-2024-001", "")
	require.NoError(t, err)
	return sheet
}

func createSheetWithItem(t *testing.T, bookQty float64) (*InventorySheet, uuid.UUID) {
	t.Helper()
	sheet := createTestSheet(t)
	itemID := uuid.New()
	require.NoError(t, sheet.AddSnapshotItem(itemID, nil, decimal.NewFromFloat(bookQty)))
	return sheet, itemID
}

func TestSheetStatusTransitions(t *testing.T) {
	t.Run("Happy path transitions", func(t *testing.T) {
		assert.True(t, SheetStatusOpen.CanTransitionTo(SheetStatusInProgress))
		assert.True(t, SheetStatusInProgress.CanTransitionTo(SheetStatusCompleted))
		assert.True(t, SheetStatusCompleted.CanTransitionTo(SheetStatusApproved))
		assert.True(t, SheetStatusApproved.CanTransitionTo(SheetStatusClosed))
	})

	t.Run("Approval can be reverted", func(t *testing.T) {
		assert.True(t, SheetStatusApproved.CanTransitionTo(SheetStatusCompleted))
	})

	t.Run("Closed is terminal", func(t *testing.T) {
		for _, target := range []SheetStatus{SheetStatusOpen, SheetStatusInProgress, SheetStatusCompleted, SheetStatusApproved} {
			assert.False(t, SheetStatusClosed.CanTransitionTo(target))
		}
	})

	t.Run("No skipping states", func(t *testing.T) {
		assert.False(t, SheetStatusOpen.CanTransitionTo(SheetStatusCompleted))
		assert.False(t, SheetStatusOpen.CanTransitionTo(SheetStatusApproved))
		assert.False(t, SheetStatusInProgress.CanTransitionTo(SheetStatusApproved))
		assert.False(t, SheetStatusCompleted.CanTransitionTo(SheetStatusClosed))
	})
}

func TestNewInventorySheet(t *testing.T) {
	t.Run("Creates an open sheet", func(t *testing.T) {
		sheet := createTestSheet(t)
		assert.Equal(t, SheetStatusOpen, sheet.Status)
		assert.Zero(t, sheet.TotalItems)
	})

	t.Run("Rejects empty warehouse", func(t *testing.T) {
		_, err := NewInventorySheet(uuid.Nil, "CNT-1", "")
		assert.Error(t, err)
	})

	t.Run("Rejects empty sheet number", func(t *testing.T) {
		_, err := NewInventorySheet(uuid.New(), "", "")
		assert.Error(t, err)
	})
}

func TestSheetSnapshotItems(t *testing.T) {
	t.Run("Snapshots the book quantity", func(t *testing.T) {
		sheet, _ := createSheetWithItem(t, 100)
		assert.Equal(t, 1, sheet.TotalItems)
		assert.True(t, sheet.Items[0].BookQuantity.Equal(decimal.NewFromInt(100)))
		assert.False(t, sheet.Items[0].Counted)
		assert.Nil(t, sheet.Items[0].CountedQuantity)
	})

	t.Run("Rejects duplicate item-location rows", func(t *testing.T) {
		sheet := createTestSheet(t)
		itemID := uuid.New()
		require.NoError(t, sheet.AddSnapshotItem(itemID, nil, decimal.NewFromInt(1)))
		assert.Error(t, sheet.AddSnapshotItem(itemID, nil, decimal.NewFromInt(2)))
	})

	t.Run("Same item at a different location is allowed", func(t *testing.T) {
		sheet := createTestSheet(t)
		itemID := uuid.New()
		locA := uuid.New()
		locB := uuid.New()
		require.NoError(t, sheet.AddSnapshotItem(itemID, &locA, decimal.NewFromInt(1)))
		require.NoError(t, sheet.AddSnapshotItem(itemID, &locB, decimal.NewFromInt(2)))
		assert.Equal(t, 2, sheet.TotalItems)
	})

	t.Run("Rejects rows once counting started", func(t *testing.T) {
		sheet, itemID := createSheetWithItem(t, 100)
		require.NoError(t, sheet.RecordItemCount(itemID, nil,decimal.NewFromInt(95), ""))
		assert.Error(t, sheet.AddSnapshotItem(uuid.New(), nil, decimal.NewFromInt(1)))
	})
}

func TestSheetRecordItemCount(t *testing.T) {
	t.Run("First count moves the sheet to IN_PROGRESS", func(t *testing.T) {
		sheet, itemID := createSheetWithItem(t, 100)
		require.NoError(t, sheet.RecordItemCount(itemID, nil,decimal.NewFromInt(95), "shelf damage"))
		assert.Equal(t, SheetStatusInProgress, sheet.Status)
		assert.NotNil(t, sheet.StartedAt)
		assert.Equal(t, 1, sheet.CountedItems)
	})

	t.Run("Difference is counted minus book", func(t *testing.T) {
		sheet, itemID := createSheetWithItem(t, 100)
		require.NoError(t, sheet.RecordItemCount(itemID, nil,decimal.NewFromInt(95), ""))
		assert.True(t, sheet.Items[0].Difference.Equal(decimal.NewFromInt(-5)))
		assert.True(t, sheet.Items[0].HasDifference())
	})

	t.Run("Recounting a row does not double count", func(t *testing.T) {
		sheet, itemID := createSheetWithItem(t, 100)
		require.NoError(t, sheet.RecordItemCount(itemID, nil,decimal.NewFromInt(95), ""))
		require.NoError(t, sheet.RecordItemCount(itemID, nil,decimal.NewFromInt(97), ""))
		assert.Equal(t, 1, sheet.CountedItems)
		assert.True(t, sheet.Items[0].Difference.Equal(decimal.NewFromInt(-3)))
	})

	t.Run("Counts are keyed by item and location", func(t *testing.T) {
		sheet := createTestSheet(t)
		itemID := uuid.New()
		locA := uuid.New()
		locB := uuid.New()
		require.NoError(t, sheet.AddSnapshotItem(itemID, &locA, decimal.NewFromInt(10)))
		require.NoError(t, sheet.AddSnapshotItem(itemID, &locB, decimal.NewFromInt(20)))

		require.NoError(t, sheet.RecordItemCount(itemID, &locB, decimal.NewFromInt(18), ""))
		assert.False(t, sheet.Items[0].Counted)
		assert.True(t, sheet.Items[1].Counted)
		assert.True(t, sheet.Items[1].Difference.Equal(decimal.NewFromInt(-2)))

		err := sheet.RecordItemCount(itemID, nil, decimal.NewFromInt(5), "")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", requireDomainError(t, err).Code)
	})

	t.Run("Rejects a negative count", func(t *testing.T) {
		sheet, itemID := createSheetWithItem(t, 100)
		assert.Error(t, sheet.RecordItemCount(itemID, nil,decimal.NewFromInt(-1), ""))
	})

	t.Run("Rejects an unknown item", func(t *testing.T) {
		sheet, _ := createSheetWithItem(t, 100)
		err := sheet.RecordItemCount(uuid.New(), nil, decimal.NewFromInt(5), "")
		require.Error(t, err)
		domainErr := requireDomainError(t, err)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("Rejects counts after completion", func(t *testing.T) {
		sheet, itemID := createSheetWithItem(t, 100)
		require.NoError(t, sheet.RecordItemCount(itemID, nil,decimal.NewFromInt(95), ""))
		require.NoError(t, sheet.Complete())
		assert.Error(t, sheet.RecordItemCount(itemID, nil,decimal.NewFromInt(96), ""))
	})
}

func TestSheetLifecycle(t *testing.T) {
	t.Run("Complete requires IN_PROGRESS", func(t *testing.T) {
		sheet, _ := createSheetWithItem(t, 100)
		err := sheet.Complete()
		require.Error(t, err)
		domainErr := requireDomainError(t, err)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	})

	t.Run("Uncounted rows do not block completion", func(t *testing.T) {
		sheet := createTestSheet(t)
		require.NoError(t, sheet.AddSnapshotItem(uuid.New(), nil, decimal.NewFromInt(10)))
		require.NoError(t, sheet.AddSnapshotItem(uuid.New(), nil, decimal.NewFromInt(20)))
		require.NoError(t, sheet.RecordItemCount(sheet.Items[0].ItemID, nil,decimal.NewFromInt(9), ""))

		require.NoError(t, sheet.Complete())
		assert.Equal(t, SheetStatusCompleted, sheet.Status)
		assert.Len(t, sheet.UncountedItems(), 1)
	})

	t.Run("Approve records the approver", func(t *testing.T) {
		sheet, itemID := createSheetWithItem(t, 100)
		require.NoError(t, sheet.RecordItemCount(itemID, nil,decimal.NewFromInt(95), ""))
		require.NoError(t, sheet.Complete())

		approver := uuid.New()
		require.NoError(t, sheet.Approve(approver))
		assert.Equal(t, SheetStatusApproved, sheet.Status)
		require.NotNil(t, sheet.ApprovedByID)
		assert.Equal(t, approver, *sheet.ApprovedByID)
		assert.NotNil(t, sheet.ApprovedAt)
	})

	t.Run("Approve requires COMPLETED", func(t *testing.T) {
		sheet, itemID := createSheetWithItem(t, 100)
		require.NoError(t, sheet.RecordItemCount(itemID, nil,decimal.NewFromInt(95), ""))
		assert.Error(t, sheet.Approve(uuid.New()))
	})

	t.Run("Approve rejects a nil approver", func(t *testing.T) {
		sheet, itemID := createSheetWithItem(t, 100)
		require.NoError(t, sheet.RecordItemCount(itemID, nil,decimal.NewFromInt(95), ""))
		require.NoError(t, sheet.Complete())
		assert.Error(t, sheet.Approve(uuid.Nil))
	})

	t.Run("RevertApproval returns to COMPLETED and clears the approver", func(t *testing.T) {
		sheet, itemID := createSheetWithItem(t, 100)
		require.NoError(t, sheet.RecordItemCount(itemID, nil,decimal.NewFromInt(95), ""))
		require.NoError(t, sheet.Complete())
		require.NoError(t, sheet.Approve(uuid.New()))

		require.NoError(t, sheet.RevertApproval())
		assert.Equal(t, SheetStatusCompleted, sheet.Status)
		assert.Nil(t, sheet.ApprovedByID)
		assert.Nil(t, sheet.ApprovedAt)
	})

	t.Run("RevertApproval requires APPROVED", func(t *testing.T) {
		sheet, itemID := createSheetWithItem(t, 100)
		require.NoError(t, sheet.RecordItemCount(itemID, nil,decimal.NewFromInt(95), ""))
		require.NoError(t, sheet.Complete())
		assert.Error(t, sheet.RevertApproval())
	})

	t.Run("Close freezes the sheet", func(t *testing.T) {
		sheet, itemID := createSheetWithItem(t, 100)
		require.NoError(t, sheet.RecordItemCount(itemID, nil,decimal.NewFromInt(95), ""))
		require.NoError(t, sheet.Complete())
		require.NoError(t, sheet.Approve(uuid.New()))
		require.NoError(t, sheet.Close())

		assert.Equal(t, SheetStatusClosed, sheet.Status)
		assert.Error(t, sheet.RevertApproval())
	})

	t.Run("Close requires APPROVED", func(t *testing.T) {
		sheet, itemID := createSheetWithItem(t, 100)
		require.NoError(t, sheet.RecordItemCount(itemID, nil,decimal.NewFromInt(95), ""))
		require.NoError(t, sheet.Complete())
		assert.Error(t, sheet.Close())
	})
}

func TestSheetCountedDifferences(t *testing.T) {
	t.Run("Returns only counted rows with a difference", func(t *testing.T) {
		sheet := createTestSheet(t)
		require.NoError(t, sheet.AddSnapshotItem(uuid.New(), nil, decimal.NewFromInt(10)))
		require.NoError(t, sheet.AddSnapshotItem(uuid.New(), nil, decimal.NewFromInt(20)))
		require.NoError(t, sheet.AddSnapshotItem(uuid.New(), nil, decimal.NewFromInt(30)))

		require.NoError(t, sheet.RecordItemCount(sheet.Items[0].ItemID, nil,decimal.NewFromInt(8), ""))
		require.NoError(t, sheet.RecordItemCount(sheet.Items[1].ItemID, nil,decimal.NewFromInt(20), ""))

		diffs := sheet.CountedDifferences()
		require.Len(t, diffs, 1)
		assert.True(t, diffs[0].Difference.Equal(decimal.NewFromInt(-2)))
	})
}
