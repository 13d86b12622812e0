// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/veloxcommerce/catalog-backend/internal/models"
	"github.com/veloxcommerce/catalog-backend/internal/utils"
)

// ProductService is CRUD orchestration over the central product catalog.
type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	SKU          string                 `json:"sku" validate:"required,min=1,max=100"`
	Title        string                 `json:"title" validate:"required,min=1,max=500"`
	Description  string                 `json:"description,omitempty"`
	Brand        string                 `json:"brand,omitempty" validate:"omitempty,max=200"`
	Manufacturer string                 `json:"manufacturer,omitempty" validate:"omitempty,max=200"`
	EAN          string                 `json:"ean,omitempty" validate:"omitempty,max=50"`
	WeightKg     *decimal.Decimal       `json:"weight_kg,omitempty"`
	DimensionsCm map[string]interface{} `json:"dimensions_cm,omitempty"`
	SeoData      map[string]interface{} `json:"seo_data,omitempty"`
	Tags         []string               `json:"tags,omitempty"`
	CategoryIDs  []uuid.UUID            `json:"category_ids,omitempty"`
}

type UpdateProductRequest struct {
	Title        string                 `json:"title,omitempty" validate:"omitempty,min=1,max=500"`
	Description  *string                `json:"description,omitempty"`
	Brand        *string                `json:"brand,omitempty"`
	Manufacturer *string                `json:"manufacturer,omitempty"`
	EAN          *string                `json:"ean,omitempty"`
	WeightKg     *decimal.Decimal       `json:"weight_kg,omitempty"`
	DimensionsCm map[string]interface{} `json:"dimensions_cm,omitempty"`
	IsActive     *bool                  `json:"is_active,omitempty"`
	SeoData      map[string]interface{} `json:"seo_data,omitempty"`
	Tags         []string               `json:"tags,omitempty"`
	CategoryIDs  []uuid.UUID            `json:"category_ids,omitempty"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	IsActive   *bool      `json:"is_active,omitempty"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) Create(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationErr("invalid product: %v", err)
	}

	logrus.WithField("sku", req.SKU).Info("Creating product")

	product := &models.Product{
		SKU:          req.SKU,
		Title:        req.Title,
		Description:  req.Description,
		Brand:        req.Brand,
		Manufacturer: req.Manufacturer,
		EAN:          req.EAN,
		WeightKg:     req.WeightKg,
		DimensionsCm: models.JSONB(req.DimensionsCm),
		IsActive:     true,
		SeoData:      models.JSONB(req.SeoData),
		Tags:         req.Tags,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).Where("sku = ?", req.SKU).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check SKU: %w", err)
		}
		if count > 0 {
			return conflictErr("product SKU %q already exists", req.SKU)
		}

		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		if len(req.CategoryIDs) > 0 {
			return s.assignCategories(tx, product, req.CategoryIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.FindOne(product.ID)
}

// Search lists products with pagination, free-text search over title, SKU
// and brand, and optional active/category filters.
func (s *ProductService) Search(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(brand) LIKE ?",
			searchTerm, searchTerm, searchTerm)
	}

	if params.IsActive != nil {
		query = query.Where("is_active = ?", *params.IsActive)
	}

	if params.CategoryID != nil {
		query = query.Joins("JOIN product_categories pc ON pc.product_id = products.id").
			Where("pc.category_id = ?", *params.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "title", "sku"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Preload("Categories").Preload("Media").Preload("Pricing").
		Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) FindOne(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Categories").Preload("Attributes").
		Preload("Attributes.Attribute").Preload("Media").Preload("Pricing").
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("product", id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) FindBySKU(sku string) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Categories").Preload("Media").Preload("Pricing").
		First(&product, "sku = ?", sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("product", sku)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) Update(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationErr("invalid product update: %v", err)
	}

	logrus.WithField("product_id", id).Info("Updating product")

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("product", id)
			}
			return fmt.Errorf("database error: %w", err)
		}

		updates := make(map[string]interface{})
		if req.Title != "" {
			updates["title"] = req.Title
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Brand != nil {
			updates["brand"] = *req.Brand
		}
		if req.Manufacturer != nil {
			updates["manufacturer"] = *req.Manufacturer
		}
		if req.EAN != nil {
			updates["ean"] = *req.EAN
		}
		if req.WeightKg != nil {
			updates["weight_kg"] = *req.WeightKg
		}
		if req.DimensionsCm != nil {
			updates["dimensions_cm"] = models.JSONB(req.DimensionsCm)
		}
		if req.IsActive != nil {
			updates["is_active"] = *req.IsActive
		}
		if req.SeoData != nil {
			updates["seo_data"] = models.JSONB(req.SeoData)
		}
		if req.Tags != nil {
			updates["tags"] = pq.StringArray(req.Tags)
		}

		if len(updates) > 0 {
			if err := tx.Model(&product).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update product: %w", err)
			}
		}

		if req.CategoryIDs != nil {
			return s.assignCategories(tx, &product, req.CategoryIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.FindOne(id)
}

// SoftDelete deactivates a product without touching its history.
func (s *ProductService) SoftDelete(id uuid.UUID) error {
	logrus.WithField("product_id", id).Info("Deactivating product")

	result := s.db.Model(&models.Product{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFoundErr("product", id)
	}
	return nil
}

// HardDelete removes the product row permanently.
func (s *ProductService) HardDelete(id uuid.UUID) error {
	logrus.WithField("product_id", id).Warn("Hard deleting product")

	result := s.db.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFoundErr("product", id)
	}
	return nil
}

// assignCategories replaces the product's category set. Every referenced
// category must exist; inactive categories are allowed on assignment so an
// admin can stage a catalog before activating the tree.
func (s *ProductService) assignCategories(tx *gorm.DB, product *models.Product, categoryIDs []uuid.UUID) error {
	var categories []models.Category
	if err := tx.Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
		return fmt.Errorf("failed to fetch categories: %w", err)
	}
	if len(categories) != len(categoryIDs) {
		return notFoundErr("category", categoryIDs)
	}

	if err := tx.Model(product).Association("Categories").Replace(categories); err != nil {
		return fmt.Errorf("failed to assign categories: %w", err)
	}
	return nil
}
