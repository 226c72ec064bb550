// Package models holds the GORM row types that back the domain entities.
// Keeping them here, apart from the domain packages, keeps ORM tags and
// table mappings out of the domain layer.
//
// Files:
//   - base.go: shared columns (BaseModel, OrgAggregateModel)
//   - ledger.go: cash ledger rows (CashTransaction)
//   - inventory.go: vehicle lifecycle rows (Vehicle, CostEvent, Disposal)
//   - directory.go: directory rows (Organization, Actor)
package models
