// internal/models/attribute.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Attribute is a reusable attribute definition (text, number, select, ...).
type Attribute struct {
	BaseModel
	Name          string         `json:"name" gorm:"size:200;not null"`
	Code          string         `json:"code" gorm:"size:200;uniqueIndex;not null"`
	Type          AttributeType  `json:"type" gorm:"size:50;not null"`
	Unit          string         `json:"unit" gorm:"size:50"`
	AllowedValues pq.StringArray `json:"allowed_values,omitempty" gorm:"type:text[]"`
	SortOrder     int            `json:"sort_order" gorm:"default:0"`

	// No column defaults on the flags: GORM drops zero-valued fields that
	// carry a default tag from the INSERT, so an explicit false would be
	// stored as the column default.
	IsRequired   bool `json:"is_required"`
	IsFilterable bool `json:"is_filterable"`
	IsSearchable bool `json:"is_searchable"`
	IsActive     bool `json:"is_active"`

	ProductAttributes []ProductAttribute `json:"product_attributes,omitempty" gorm:"foreignKey:AttributeID"`
}

// ProductAttribute holds one product's value for an attribute definition.
// The value is stored as text; interpretation follows the attribute type.
type ProductAttribute struct {
	BaseModel
	ProductID   uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_product_attribute"`
	AttributeID uuid.UUID `json:"attribute_id" gorm:"type:uuid;not null;uniqueIndex:idx_product_attribute"`
	Value       string    `json:"value" gorm:"type:text;not null"`

	Product   *Product   `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Attribute *Attribute `json:"attribute,omitempty" gorm:"foreignKey:AttributeID"`
}
