// Package models contains GORM-specific persistence models for aggregates
// whose storage shape differs from their domain shape. Most warehousing
// aggregates are persisted directly; the inventory sheet goes through a
// model here because its count rows live in a child table and must be
// loaded and saved together with the sheet.
//
// Structure:
// - base.go: Base persistence models (BaseModel, AggregateModel)
// - warehousing.go: Inventory sheet and sheet item models with mappers
package models
