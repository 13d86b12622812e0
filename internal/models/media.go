// internal/models/media.go
package models

import (
	"github.com/google/uuid"
)

// Media is an image, video or document attached to a product. URLs are
// opaque; this service does not manage the underlying blobs.
type Media struct {
	BaseModel
	ProductID    uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Type         MediaType `json:"type" gorm:"size:50;not null"`
	URL          string    `json:"url" gorm:"size:1000;not null"`
	ThumbnailURL string    `json:"thumbnail_url" gorm:"size:1000"`
	AltText      string    `json:"alt_text" gorm:"size:500"`
	Title        string    `json:"title" gorm:"size:200"`
	Position     int       `json:"position" gorm:"default:0"`
	IsPrimary    bool      `json:"is_primary" gorm:"default:false"`
	Metadata     JSONB     `json:"metadata,omitempty" gorm:"type:jsonb"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (Media) TableName() string {
	return "media"
}
