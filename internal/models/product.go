// internal/models/product.go
package models

import (
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product is the single source of truth for catalog data; every sales
// channel references this record by SKU or id.
type Product struct {
	BaseModel
	SKU          string           `json:"sku" gorm:"size:100;uniqueIndex;not null"`
	Title        string           `json:"title" gorm:"size:500;not null"`
	Description  string           `json:"description" gorm:"type:text"`
	Brand        string           `json:"brand" gorm:"size:200;index"`
	Manufacturer string           `json:"manufacturer" gorm:"size:200"`
	EAN          string           `json:"ean" gorm:"size:50"`
	WeightKg     *decimal.Decimal `json:"weight_kg,omitempty" gorm:"type:decimal(10,3)"`
	DimensionsCm JSONB            `json:"dimensions_cm,omitempty" gorm:"type:jsonb"`
	IsActive     bool             `json:"is_active" gorm:"default:true;index"`
	SeoData      JSONB            `json:"seo_data,omitempty" gorm:"type:jsonb"`
	Tags         pq.StringArray   `json:"tags" gorm:"type:text[]"`

	// Relationships
	Categories []Category         `json:"categories,omitempty" gorm:"many2many:product_categories"`
	Attributes []ProductAttribute `json:"attributes,omitempty" gorm:"foreignKey:ProductID"`
	Media      []Media            `json:"media,omitempty" gorm:"foreignKey:ProductID"`
	Pricing    []ProductPricing   `json:"pricing,omitempty" gorm:"foreignKey:ProductID"`
}
