// internal/services/media_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/veloxcommerce/catalog-backend/internal/models"
	"github.com/veloxcommerce/catalog-backend/internal/utils"
)

// MediaService manages media records attached to products. It only stores
// URLs and metadata; the blobs themselves live elsewhere.
type MediaService struct {
	db *gorm.DB
}

type CreateMediaRequest struct {
	ProductID    uuid.UUID              `json:"product_id" validate:"required"`
	Type         models.MediaType       `json:"type" validate:"required"`
	URL          string                 `json:"url" validate:"required,max=1000"`
	ThumbnailURL string                 `json:"thumbnail_url,omitempty" validate:"omitempty,max=1000"`
	AltText      string                 `json:"alt_text,omitempty" validate:"omitempty,max=500"`
	Title        string                 `json:"title,omitempty" validate:"omitempty,max=200"`
	Position     int                    `json:"position"`
	IsPrimary    bool                   `json:"is_primary"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

type UpdateMediaRequest struct {
	URL          *string                `json:"url,omitempty" validate:"omitempty,max=1000"`
	ThumbnailURL *string                `json:"thumbnail_url,omitempty"`
	AltText      *string                `json:"alt_text,omitempty"`
	Title        *string                `json:"title,omitempty"`
	Position     *int                   `json:"position,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

func NewMediaService(db *gorm.DB) *MediaService {
	return &MediaService{db: db}
}

func (s *MediaService) FindByProduct(productID uuid.UUID) ([]models.Media, error) {
	var media []models.Media
	if err := s.db.Where("product_id = ?", productID).
		Order("position ASC").
		Find(&media).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch media: %w", err)
	}
	return media, nil
}

func (s *MediaService) Create(req *CreateMediaRequest) (*models.Media, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationErr("invalid media: %v", err)
	}
	if !req.Type.Known() {
		return nil, validationErr("unknown media type %q", req.Type)
	}

	logrus.WithField("product_id", req.ProductID).Info("Creating media")

	media := &models.Media{
		ProductID:    req.ProductID,
		Type:         req.Type,
		URL:          req.URL,
		ThumbnailURL: req.ThumbnailURL,
		AltText:      req.AltText,
		Title:        req.Title,
		Position:     req.Position,
		IsPrimary:    req.IsPrimary,
		Metadata:     models.JSONB(req.Metadata),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsPrimary {
			if err := tx.Model(&models.Media{}).
				Where("product_id = ?", req.ProductID).
				Update("is_primary", false).Error; err != nil {
				return fmt.Errorf("failed to unset primary media: %w", err)
			}
		}
		return tx.Create(media).Error
	})
	if err != nil {
		return nil, err
	}

	return media, nil
}

func (s *MediaService) Update(id uuid.UUID, req *UpdateMediaRequest) (*models.Media, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationErr("invalid media update: %v", err)
	}

	var media models.Media
	if err := s.db.First(&media, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("media", id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.URL != nil {
		updates["url"] = *req.URL
	}
	if req.ThumbnailURL != nil {
		updates["thumbnail_url"] = *req.ThumbnailURL
	}
	if req.AltText != nil {
		updates["alt_text"] = *req.AltText
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.Metadata != nil {
		updates["metadata"] = models.JSONB(req.Metadata)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&media).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update media: %w", err)
		}
	}

	return &media, nil
}

func (s *MediaService) Remove(id uuid.UUID) error {
	logrus.WithField("media_id", id).Info("Deleting media")

	result := s.db.Delete(&models.Media{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete media: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFoundErr("media", id)
	}
	return nil
}

// SetPrimary flips the gallery's primary flag to the given record: siblings
// are unset and the target set inside one transaction.
func (s *MediaService) SetPrimary(id uuid.UUID) (*models.Media, error) {
	var media models.Media
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).
			First(&media, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("media", id)
			}
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Model(&models.Media{}).
			Where("product_id = ?", media.ProductID).
			Update("is_primary", false).Error; err != nil {
			return fmt.Errorf("failed to unset primary media: %w", err)
		}

		media.IsPrimary = true
		return tx.Model(&media).Update("is_primary", true).Error
	})
	if err != nil {
		return nil, err
	}

	return &media, nil
}
