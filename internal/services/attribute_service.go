// internal/services/attribute_service.go
package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/veloxcommerce/catalog-backend/internal/models"
	"github.com/veloxcommerce/catalog-backend/internal/utils"
)

// AttributeService manages attribute definitions and per-product values.
// Values are stored as text and checked against the attribute type on write.
type AttributeService struct {
	db *gorm.DB
}

type CreateAttributeRequest struct {
	Name          string               `json:"name" validate:"required,min=1,max=200"`
	Code          string               `json:"code" validate:"required,slug,max=200"`
	Type          models.AttributeType `json:"type" validate:"required"`
	Unit          string               `json:"unit,omitempty" validate:"omitempty,max=50"`
	AllowedValues []string             `json:"allowed_values,omitempty"`
	IsRequired    bool                 `json:"is_required"`
	IsFilterable  *bool                `json:"is_filterable,omitempty"`
	IsSearchable  *bool                `json:"is_searchable,omitempty"`
	SortOrder     int                  `json:"sort_order"`
}

type UpdateAttributeRequest struct {
	Name          string   `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Unit          *string  `json:"unit,omitempty"`
	AllowedValues []string `json:"allowed_values,omitempty"`
	IsRequired    *bool    `json:"is_required,omitempty"`
	IsFilterable  *bool    `json:"is_filterable,omitempty"`
	IsSearchable  *bool    `json:"is_searchable,omitempty"`
	SortOrder     *int     `json:"sort_order,omitempty"`
	IsActive      *bool    `json:"is_active,omitempty"`
}

func NewAttributeService(db *gorm.DB) *AttributeService {
	return &AttributeService{db: db}
}

func (s *AttributeService) FindAll() ([]models.Attribute, error) {
	var attributes []models.Attribute
	if err := s.db.Where("is_active = ?", true).
		Order("sort_order ASC").
		Find(&attributes).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch attributes: %w", err)
	}
	return attributes, nil
}

func (s *AttributeService) FindOne(id uuid.UUID) (*models.Attribute, error) {
	var attribute models.Attribute
	if err := s.db.First(&attribute, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("attribute", id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &attribute, nil
}

func (s *AttributeService) Create(req *CreateAttributeRequest) (*models.Attribute, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationErr("invalid attribute: %v", err)
	}
	if !req.Type.Known() {
		return nil, validationErr("unknown attribute type %q", req.Type)
	}
	if (req.Type == models.AttributeTypeSelect || req.Type == models.AttributeTypeMultiselect) &&
		len(req.AllowedValues) == 0 {
		return nil, validationErr("attribute type %q requires allowed values", req.Type)
	}

	logrus.WithField("code", req.Code).Info("Creating attribute")

	filterable := true
	if req.IsFilterable != nil {
		filterable = *req.IsFilterable
	}
	searchable := true
	if req.IsSearchable != nil {
		searchable = *req.IsSearchable
	}

	attribute := &models.Attribute{
		Name:          req.Name,
		Code:          req.Code,
		Type:          req.Type,
		Unit:          req.Unit,
		AllowedValues: req.AllowedValues,
		IsRequired:    req.IsRequired,
		IsFilterable:  filterable,
		IsSearchable:  searchable,
		SortOrder:     req.SortOrder,
		IsActive:      true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Attribute{}).Where("code = ?", req.Code).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check attribute code: %w", err)
		}
		if count > 0 {
			return conflictErr("attribute code %q already exists", req.Code)
		}
		return tx.Create(attribute).Error
	})
	if err != nil {
		return nil, err
	}

	return attribute, nil
}

func (s *AttributeService) Update(id uuid.UUID, req *UpdateAttributeRequest) (*models.Attribute, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationErr("invalid attribute update: %v", err)
	}

	attribute, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.AllowedValues != nil {
		updates["allowed_values"] = pq.StringArray(req.AllowedValues)
	}
	if req.IsRequired != nil {
		updates["is_required"] = *req.IsRequired
	}
	if req.IsFilterable != nil {
		updates["is_filterable"] = *req.IsFilterable
	}
	if req.IsSearchable != nil {
		updates["is_searchable"] = *req.IsSearchable
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(attribute).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update attribute: %w", err)
		}
	}

	return s.FindOne(id)
}

// SetProductValue upserts one product's value for an attribute: a value
// already present for the (product, attribute) pair is overwritten, a new
// pair is inserted. The value must parse under the attribute's type.
func (s *AttributeService) SetProductValue(productID, attributeID uuid.UUID, value string) (*models.ProductAttribute, error) {
	attribute, err := s.FindOne(attributeID)
	if err != nil {
		return nil, err
	}

	if err := validateAttributeValue(attribute, value); err != nil {
		return nil, err
	}

	var pa models.ProductAttribute
	err = s.db.Transaction(func(tx *gorm.DB) error {
		findErr := tx.Where("product_id = ? AND attribute_id = ?", productID, attributeID).
			First(&pa).Error
		switch {
		case findErr == nil:
			return tx.Model(&pa).Update("value", value).Error
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			pa = models.ProductAttribute{
				ProductID:   productID,
				AttributeID: attributeID,
				Value:       value,
			}
			return tx.Create(&pa).Error
		default:
			return fmt.Errorf("database error: %w", findErr)
		}
	})
	if err != nil {
		return nil, err
	}

	pa.Attribute = attribute
	return &pa, nil
}

func (s *AttributeService) GetProductValues(productID uuid.UUID) ([]models.ProductAttribute, error) {
	var values []models.ProductAttribute
	if err := s.db.Where("product_id = ?", productID).
		Preload("Attribute").
		Find(&values).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch product attributes: %w", err)
	}
	return values, nil
}

func validateAttributeValue(attribute *models.Attribute, value string) error {
	switch attribute.Type {
	case models.AttributeTypeNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return validationErr("value %q is not numeric for attribute %s", value, attribute.Code)
		}
	case models.AttributeTypeBoolean:
		if _, err := strconv.ParseBool(value); err != nil {
			return validationErr("value %q is not boolean for attribute %s", value, attribute.Code)
		}
	case models.AttributeTypeDate:
		if _, err := time.Parse(time.RFC3339, value); err != nil {
			if _, err := time.Parse("2006-01-02", value); err != nil {
				return validationErr("value %q is not a date for attribute %s", value, attribute.Code)
			}
		}
	case models.AttributeTypeSelect:
		if !containsValue(attribute.AllowedValues, value) {
			return validationErr("value %q is not allowed for attribute %s", value, attribute.Code)
		}
	case models.AttributeTypeMultiselect:
		for _, v := range strings.Split(value, ",") {
			if !containsValue(attribute.AllowedValues, strings.TrimSpace(v)) {
				return validationErr("value %q is not allowed for attribute %s", v, attribute.Code)
			}
		}
	}
	return nil
}

func containsValue(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
