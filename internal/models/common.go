// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates the ID in the application so the schema works on
// backends without a uuid function (the sqlite test backend, for example).
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
//
// The type columns are open sets: unknown values round-trip through the
// database untouched, but only the known constants participate in behavior
// (price resolution priority, attribute value checking). Callers that mint a
// new type must add a constant here for it to gain any semantics.

type PriceType string

const (
	PriceTypeRegular   PriceType = "regular"
	PriceTypeRetail    PriceType = "retail"
	PriceTypeWholesale PriceType = "wholesale"
	PriceTypeSale      PriceType = "sale"
)

// Priority orders price types for current-price resolution when several
// active records are in-window at once: sale > wholesale > retail > regular.
// Unknown types resolve last.
func (p PriceType) Priority() int {
	switch p {
	case PriceTypeSale:
		return 4
	case PriceTypeWholesale:
		return 3
	case PriceTypeRetail:
		return 2
	case PriceTypeRegular:
		return 1
	default:
		return 0
	}
}

func (p PriceType) Known() bool {
	return p.Priority() > 0
}

type AttributeType string

const (
	AttributeTypeText        AttributeType = "text"
	AttributeTypeNumber      AttributeType = "number"
	AttributeTypeSelect      AttributeType = "select"
	AttributeTypeMultiselect AttributeType = "multiselect"
	AttributeTypeBoolean     AttributeType = "boolean"
	AttributeTypeDate        AttributeType = "date"
)

func (a AttributeType) Known() bool {
	switch a {
	case AttributeTypeText, AttributeTypeNumber, AttributeTypeSelect,
		AttributeTypeMultiselect, AttributeTypeBoolean, AttributeTypeDate:
		return true
	}
	return false
}

type MediaType string

const (
	MediaTypeImage    MediaType = "image"
	MediaTypeVideo    MediaType = "video"
	MediaTypeDocument MediaType = "document"
)

func (m MediaType) Known() bool {
	switch m {
	case MediaTypeImage, MediaTypeVideo, MediaTypeDocument:
		return true
	}
	return false
}
