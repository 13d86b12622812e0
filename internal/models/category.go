// internal/models/category.go
package models

import (
	"github.com/google/uuid"
)

// Category is a node in the hierarchical category tree. The full ancestor
// chain is materialized into Path (e.g. /electronics/phones) so subtree
// queries are plain prefix matches; Level is the depth, 0 for roots.
type Category struct {
	BaseModel
	Name        string     `json:"name" gorm:"size:200;not null"`
	Slug        string     `json:"slug" gorm:"size:200;uniqueIndex;not null"`
	Description string     `json:"description" gorm:"type:text"`
	ParentID    *uuid.UUID `json:"parent_id" gorm:"type:uuid;index"`
	Path        string     `json:"path" gorm:"size:1000;index"`
	Level       int        `json:"level" gorm:"default:0"`
	SortOrder   int        `json:"sort_order" gorm:"default:0"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	SeoData     JSONB      `json:"seo_data,omitempty" gorm:"type:jsonb"`

	// Relationships
	Parent   *Category  `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Children []Category `json:"children,omitempty" gorm:"foreignKey:ParentID"`
	Products []Product  `json:"products,omitempty" gorm:"many2many:product_categories"`
}

// IsRoot reports whether the category sits at the top of the tree.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}
