// internal/services/pricing_service_test.go
package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/veloxcommerce/catalog-backend/internal/models"
)

type PricingServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *PricingService
}

func (suite *PricingServiceTestSuite) SetupSuite() {
	db, err := gorm.Open(sqlite.Open("file:pricing_service_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(db.AutoMigrate(&models.ProductPricing{}))

	suite.db = db
	suite.service = NewPricingService(db)
}

func (suite *PricingServiceTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("DELETE FROM product_pricings").Error)
}

func (suite *PricingServiceTestSuite) mustUpsert(req *UpsertPricingRequest) *models.ProductPricing {
	record, err := suite.service.Upsert(req)
	suite.Require().NoError(err)
	return record
}

func (suite *PricingServiceTestSuite) TestUpsertKeepsSingleActivePerType() {
	productID := uuid.New()

	first := suite.mustUpsert(&UpsertPricingRequest{
		ProductID: productID,
		BasePrice: decimal.NewFromInt(100),
		IsActive:  true,
		PriceType: models.PriceTypeRegular,
	})
	second := suite.mustUpsert(&UpsertPricingRequest{
		ProductID: productID,
		BasePrice: decimal.NewFromInt(120),
		IsActive:  true,
		PriceType: models.PriceTypeRegular,
	})

	var active []models.ProductPricing
	suite.Require().NoError(suite.db.
		Where("product_id = ? AND price_type = ? AND is_active = ?", productID, models.PriceTypeRegular, true).
		Find(&active).Error)
	suite.Require().Len(active, 1)
	suite.Equal(second.ID, active[0].ID)
	suite.True(active[0].BasePrice.Equal(decimal.NewFromInt(120)))

	// the superseded record survives as history
	var old models.ProductPricing
	suite.Require().NoError(suite.db.First(&old, "id = ?", first.ID).Error)
	suite.False(old.IsActive)
	suite.True(old.BasePrice.Equal(decimal.NewFromInt(100)))
}

func (suite *PricingServiceTestSuite) TestUpsertStoresInactiveRecordAsInactive() {
	productID := uuid.New()

	active := suite.mustUpsert(&UpsertPricingRequest{
		ProductID: productID,
		BasePrice: decimal.NewFromInt(100),
		IsActive:  true,
		PriceType: models.PriceTypeRegular,
	})
	draft := suite.mustUpsert(&UpsertPricingRequest{
		ProductID: productID,
		BasePrice: decimal.NewFromInt(120),
		IsActive:  false,
		PriceType: models.PriceTypeRegular,
	})

	// the draft must land inactive in the database, not be flipped by a
	// column default
	var stored models.ProductPricing
	suite.Require().NoError(suite.db.First(&stored, "id = ?", draft.ID).Error)
	suite.False(stored.IsActive)

	var activeCount int64
	suite.Require().NoError(suite.db.Model(&models.ProductPricing{}).
		Where("product_id = ? AND price_type = ? AND is_active = ?", productID, models.PriceTypeRegular, true).
		Count(&activeCount).Error)
	suite.Equal(int64(1), activeCount)

	resolved, err := suite.service.ResolveCurrentPrice(productID, time.Now())
	suite.Require().NoError(err)
	suite.Require().NotNil(resolved)
	suite.Equal(active.ID, resolved.ID)
}

func (suite *PricingServiceTestSuite) TestUpsertDifferentTypesCoexist() {
	productID := uuid.New()

	suite.mustUpsert(&UpsertPricingRequest{
		ProductID: productID,
		BasePrice: decimal.NewFromInt(100),
		IsActive:  true,
		PriceType: models.PriceTypeRegular,
	})
	suite.mustUpsert(&UpsertPricingRequest{
		ProductID: productID,
		BasePrice: decimal.NewFromInt(90),
		IsActive:  true,
		PriceType: models.PriceTypeSale,
	})

	var count int64
	suite.Require().NoError(suite.db.Model(&models.ProductPricing{}).
		Where("product_id = ? AND is_active = ?", productID, true).
		Count(&count).Error)
	suite.Equal(int64(2), count)
}

func (suite *PricingServiceTestSuite) TestUpsertRejectsNonPositivePrice() {
	_, err := suite.service.Upsert(&UpsertPricingRequest{
		ProductID: uuid.New(),
		BasePrice: decimal.Zero,
		IsActive:  true,
	})
	suite.True(errors.Is(err, ErrValidation))
}

func (suite *PricingServiceTestSuite) TestUpsertRejectsInvertedWindow() {
	from := time.Now()
	to := from.Add(-time.Hour)
	_, err := suite.service.Upsert(&UpsertPricingRequest{
		ProductID: uuid.New(),
		BasePrice: decimal.NewFromInt(10),
		ValidFrom: &from,
		ValidTo:   &to,
	})
	suite.True(errors.Is(err, ErrValidation))
}

func (suite *PricingServiceTestSuite) TestResolveReturnsNilWithoutCandidates() {
	productID := uuid.New()

	resolved, err := suite.service.ResolveCurrentPrice(productID, time.Now())
	suite.Require().NoError(err)
	suite.Nil(resolved)

	// an active record outside its window does not qualify
	from := time.Now().Add(time.Hour)
	suite.mustUpsert(&UpsertPricingRequest{
		ProductID: productID,
		BasePrice: decimal.NewFromInt(50),
		ValidFrom: &from,
		IsActive:  true,
	})

	resolved, err = suite.service.ResolveCurrentPrice(productID, time.Now())
	suite.Require().NoError(err)
	suite.Nil(resolved)
}

func (suite *PricingServiceTestSuite) TestResolveWindowShapes() {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	// closed interval
	closed := suite.mustUpsert(&UpsertPricingRequest{
		ProductID: uuid.New(),
		BasePrice: decimal.NewFromInt(10),
		ValidFrom: &past,
		ValidTo:   &future,
		IsActive:  true,
	})
	resolved, err := suite.service.ResolveCurrentPrice(closed.ProductID, now)
	suite.Require().NoError(err)
	suite.Require().NotNil(resolved)
	suite.Equal(closed.ID, resolved.ID)

	// both bounds absent: always valid
	open := suite.mustUpsert(&UpsertPricingRequest{
		ProductID: uuid.New(),
		BasePrice: decimal.NewFromInt(20),
		IsActive:  true,
	})
	resolved, err = suite.service.ResolveCurrentPrice(open.ProductID, now)
	suite.Require().NoError(err)
	suite.Require().NotNil(resolved)
	suite.Equal(open.ID, resolved.ID)

	// open-ended from the start bound
	halfOpen := suite.mustUpsert(&UpsertPricingRequest{
		ProductID: uuid.New(),
		BasePrice: decimal.NewFromInt(30),
		ValidFrom: &past,
		IsActive:  true,
	})
	resolved, err = suite.service.ResolveCurrentPrice(halfOpen.ProductID, now)
	suite.Require().NoError(err)
	suite.Require().NotNil(resolved)
	suite.Equal(halfOpen.ID, resolved.ID)

	// inactive records never qualify
	inactive := suite.mustUpsert(&UpsertPricingRequest{
		ProductID: uuid.New(),
		BasePrice: decimal.NewFromInt(40),
		IsActive:  false,
	})
	resolved, err = suite.service.ResolveCurrentPrice(inactive.ProductID, now)
	suite.Require().NoError(err)
	suite.Nil(resolved)
}

func (suite *PricingServiceTestSuite) TestResolvePrefersSaleOverRegular() {
	productID := uuid.New()
	now := time.Now()
	from := now.Add(-time.Hour)
	to := now.Add(time.Hour)

	suite.mustUpsert(&UpsertPricingRequest{
		ProductID: productID,
		BasePrice: decimal.NewFromInt(1000),
		Currency:  "CZK",
		IsActive:  true,
		PriceType: models.PriceTypeRegular,
	})
	salePrice := decimal.NewFromInt(800)
	sale := suite.mustUpsert(&UpsertPricingRequest{
		ProductID: productID,
		BasePrice: decimal.NewFromInt(1000),
		SalePrice: &salePrice,
		Currency:  "CZK",
		ValidFrom: &from,
		ValidTo:   &to,
		IsActive:  true,
		PriceType: models.PriceTypeSale,
	})

	resolved, err := suite.service.ResolveCurrentPrice(productID, now)
	suite.Require().NoError(err)
	suite.Require().NotNil(resolved)
	suite.Equal(sale.ID, resolved.ID)
	suite.Equal(models.PriceTypeSale, resolved.PriceType)
}

func (suite *PricingServiceTestSuite) TestResolvePriorityOrder() {
	productID := uuid.New()
	now := time.Now()

	for _, priceType := range []models.PriceType{
		models.PriceTypeRegular,
		models.PriceTypeRetail,
		models.PriceTypeWholesale,
	} {
		suite.mustUpsert(&UpsertPricingRequest{
			ProductID: productID,
			BasePrice: decimal.NewFromInt(100),
			IsActive:  true,
			PriceType: priceType,
		})
	}

	resolved, err := suite.service.ResolveCurrentPrice(productID, now)
	suite.Require().NoError(err)
	suite.Require().NotNil(resolved)
	suite.Equal(models.PriceTypeWholesale, resolved.PriceType)
}

func (suite *PricingServiceTestSuite) TestListHistoryOrdersOpenStartLast() {
	productID := uuid.New()
	older := time.Now().Add(-48 * time.Hour)
	newer := time.Now().Add(-time.Hour)

	noStart := suite.mustUpsert(&UpsertPricingRequest{
		ProductID: productID,
		BasePrice: decimal.NewFromInt(10),
		IsActive:  true,
		PriceType: models.PriceTypeRegular,
	})
	first := suite.mustUpsert(&UpsertPricingRequest{
		ProductID: productID,
		BasePrice: decimal.NewFromInt(20),
		ValidFrom: &older,
		IsActive:  true,
		PriceType: models.PriceTypeSale,
	})
	second := suite.mustUpsert(&UpsertPricingRequest{
		ProductID: productID,
		BasePrice: decimal.NewFromInt(30),
		ValidFrom: &newer,
		IsActive:  true,
		PriceType: models.PriceTypeWholesale,
	})

	history, err := suite.service.ListHistory(productID)
	suite.Require().NoError(err)
	suite.Require().Len(history, 3)
	suite.Equal(second.ID, history[0].ID)
	suite.Equal(first.ID, history[1].ID)
	suite.Equal(noStart.ID, history[2].ID)
}

func (suite *PricingServiceTestSuite) TestRemove() {
	record := suite.mustUpsert(&UpsertPricingRequest{
		ProductID: uuid.New(),
		BasePrice: decimal.NewFromInt(10),
		IsActive:  true,
	})

	suite.Require().NoError(suite.service.Remove(record.ID))

	err := suite.service.Remove(record.ID)
	suite.True(errors.Is(err, ErrNotFound))
}

func TestPricingServiceSuite(t *testing.T) {
	suite.Run(t, new(PricingServiceTestSuite))
}
