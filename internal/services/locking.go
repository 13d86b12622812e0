// internal/services/locking.go
package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate adds a FOR UPDATE row lock to the querying transaction. sqlite
// has no row locks (a write transaction locks the whole database) and the
// clause is a syntax error there, so it is skipped for that dialect.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
