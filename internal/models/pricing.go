// internal/models/pricing.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductPricing is one immutable price record. Records are never updated in
// place: a new price for the same (product, price type) pair deactivates the
// previous active record and inserts a fresh row, so the table doubles as the
// price history. ValidFrom/ValidTo are advisory windows checked at resolution
// time only; a nil bound means open-ended on that side.
type ProductPricing struct {
	BaseModel
	ProductID     uuid.UUID        `json:"product_id" gorm:"type:uuid;not null;index"`
	BasePrice     decimal.Decimal  `json:"base_price" gorm:"type:decimal(10,2);not null"`
	Currency      string           `json:"currency" gorm:"size:3;default:'CZK'"`
	CostPrice     *decimal.Decimal `json:"cost_price,omitempty" gorm:"type:decimal(10,2)"`
	MarginPercent *decimal.Decimal `json:"margin_percent,omitempty" gorm:"type:decimal(5,2)"`
	SalePrice     *decimal.Decimal `json:"sale_price,omitempty" gorm:"type:decimal(10,2)"`
	ValidFrom     *time.Time       `json:"valid_from,omitempty"`
	ValidTo       *time.Time       `json:"valid_to,omitempty"`
	PriceType     PriceType        `json:"price_type" gorm:"size:50;default:'regular';index"`

	// No column default on the active flag: GORM drops zero-valued fields
	// that carry a default tag from the INSERT, so a false value would be
	// stored as true.
	IsActive bool `json:"is_active" gorm:"index"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// WindowContains reports whether the record's validity window covers t.
// Three shapes qualify: a closed interval, both bounds absent (always
// valid), and an open-ended interval with only ValidFrom set. A record with
// only ValidTo set never qualifies.
func (p *ProductPricing) WindowContains(t time.Time) bool {
	switch {
	case p.ValidFrom == nil && p.ValidTo == nil:
		return true
	case p.ValidFrom != nil && p.ValidTo == nil:
		return !p.ValidFrom.After(t)
	case p.ValidFrom != nil && p.ValidTo != nil:
		return !p.ValidFrom.After(t) && !p.ValidTo.Before(t)
	}
	return false
}
