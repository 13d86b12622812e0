// internal/services/pricing_service.go
package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/veloxcommerce/catalog-backend/internal/models"
	"github.com/veloxcommerce/catalog-backend/internal/utils"
)

// PricingService maintains price records and answers "what price applies
// right now". Records cycle between active and inactive only: an upsert of
// an active record first deactivates the previous active record of the same
// (product, price type) pair inside one transaction, then inserts a fresh
// row, so at most one record per pair is active at any moment and the full
// history is preserved.
type PricingService struct {
	db *gorm.DB
}

type UpsertPricingRequest struct {
	ProductID     uuid.UUID        `json:"product_id" validate:"required"`
	BasePrice     decimal.Decimal  `json:"base_price"`
	Currency      string           `json:"currency" validate:"omitempty,iso4217"`
	CostPrice     *decimal.Decimal `json:"cost_price,omitempty"`
	MarginPercent *decimal.Decimal `json:"margin_percent,omitempty"`
	SalePrice     *decimal.Decimal `json:"sale_price,omitempty"`
	ValidFrom     *time.Time       `json:"valid_from,omitempty"`
	ValidTo       *time.Time       `json:"valid_to,omitempty"`
	IsActive      bool             `json:"is_active"`
	PriceType     models.PriceType `json:"price_type"`
}

func NewPricingService(db *gorm.DB) *PricingService {
	return &PricingService{db: db}
}

// Upsert inserts a new price record. Existing rows are never modified apart
// from the active-flag flip on the superseded record; history stays intact.
func (s *PricingService) Upsert(req *UpsertPricingRequest) (*models.ProductPricing, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationErr("invalid pricing: %v", err)
	}
	if !req.BasePrice.IsPositive() {
		return nil, validationErr("base price must be positive, got %s", req.BasePrice)
	}
	if req.ValidFrom != nil && req.ValidTo != nil && req.ValidFrom.After(*req.ValidTo) {
		return nil, validationErr("valid_from %s is after valid_to %s", req.ValidFrom, req.ValidTo)
	}

	priceType := req.PriceType
	if priceType == "" {
		priceType = models.PriceTypeRegular
	}

	currency := req.Currency
	if currency == "" {
		currency = "CZK"
	}

	logrus.WithFields(logrus.Fields{
		"product_id": req.ProductID,
		"price_type": priceType,
	}).Info("Upserting pricing")

	pricing := &models.ProductPricing{
		ProductID:     req.ProductID,
		BasePrice:     req.BasePrice,
		Currency:      currency,
		CostPrice:     req.CostPrice,
		MarginPercent: req.MarginPercent,
		SalePrice:     req.SalePrice,
		ValidFrom:     req.ValidFrom,
		ValidTo:       req.ValidTo,
		IsActive:      req.IsActive,
		PriceType:     priceType,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Lock and deactivate the prior active record of the same pair
		// before the insert; both sides commit or neither does.
		if req.IsActive {
			var current []models.ProductPricing
			if err := forUpdate(tx).
				Where("product_id = ? AND price_type = ? AND is_active = ?",
					req.ProductID, priceType, true).
				Find(&current).Error; err != nil {
				return fmt.Errorf("failed to lock current pricing: %w", err)
			}
			for i := range current {
				if err := tx.Model(&current[i]).Update("is_active", false).Error; err != nil {
					return fmt.Errorf("failed to deactivate previous pricing: %w", err)
				}
			}
		}

		return tx.Create(pricing).Error
	})
	if err != nil {
		return nil, err
	}

	return pricing, nil
}

// ResolveCurrentPrice returns the single price record applicable at asOf, or
// nil when no active record's validity window contains it. When several
// types qualify at once the explicit type priority decides (sale >
// wholesale > retail > regular, unknown types last); remaining ties go to
// the record with the most recent validity start, then the newest row.
func (s *PricingService) ResolveCurrentPrice(productID uuid.UUID, asOf time.Time) (*models.ProductPricing, error) {
	var records []models.ProductPricing
	if err := s.db.Where("product_id = ? AND is_active = ?", productID, true).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch pricing: %w", err)
	}

	candidates := records[:0]
	for i := range records {
		if records[i].WindowContains(asOf) {
			candidates = append(candidates, records[i])
		}
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		pi, pj := candidates[i].PriceType.Priority(), candidates[j].PriceType.Priority()
		if pi != pj {
			return pi > pj
		}
		fi, fj := validFromOrEpoch(&candidates[i]), validFromOrEpoch(&candidates[j])
		if !fi.Equal(fj) {
			return fi.After(fj)
		}
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})

	return &candidates[0], nil
}

// ListHistory returns every price record for a product, newest validity
// start first. Records with no validity start are open from the beginning of
// time and sort last.
func (s *PricingService) ListHistory(productID uuid.UUID) ([]models.ProductPricing, error) {
	var records []models.ProductPricing
	if err := s.db.Where("product_id = ?", productID).
		Order("valid_from IS NULL, valid_from DESC").
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch pricing history: %w", err)
	}
	return records, nil
}

// Remove hard-deletes a single historical record.
func (s *PricingService) Remove(id uuid.UUID) error {
	logrus.WithField("pricing_id", id).Info("Deleting pricing record")

	result := s.db.Delete(&models.ProductPricing{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete pricing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFoundErr("pricing", id)
	}
	return nil
}

func validFromOrEpoch(p *models.ProductPricing) time.Time {
	if p.ValidFrom == nil {
		return time.Time{}
	}
	return *p.ValidFrom
}
