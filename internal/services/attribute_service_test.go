// internal/services/attribute_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/veloxcommerce/catalog-backend/internal/models"
)

func TestValidateAttributeValue(t *testing.T) {
	number := &models.Attribute{Code: "weight", Type: models.AttributeTypeNumber}
	assert.NoError(t, validateAttributeValue(number, "12.5"))
	assert.True(t, errors.Is(validateAttributeValue(number, "heavy"), ErrValidation))

	boolean := &models.Attribute{Code: "fragile", Type: models.AttributeTypeBoolean}
	assert.NoError(t, validateAttributeValue(boolean, "true"))
	assert.True(t, errors.Is(validateAttributeValue(boolean, "maybe"), ErrValidation))

	date := &models.Attribute{Code: "released", Type: models.AttributeTypeDate}
	assert.NoError(t, validateAttributeValue(date, "2024-06-01"))
	assert.NoError(t, validateAttributeValue(date, "2024-06-01T12:00:00Z"))
	assert.True(t, errors.Is(validateAttributeValue(date, "soon"), ErrValidation))

	sel := &models.Attribute{
		Code:          "color",
		Type:          models.AttributeTypeSelect,
		AllowedValues: []string{"red", "blue"},
	}
	assert.NoError(t, validateAttributeValue(sel, "red"))
	assert.True(t, errors.Is(validateAttributeValue(sel, "green"), ErrValidation))

	multi := &models.Attribute{
		Code:          "sizes",
		Type:          models.AttributeTypeMultiselect,
		AllowedValues: []string{"s", "m", "l"},
	}
	assert.NoError(t, validateAttributeValue(multi, "s, m"))
	assert.True(t, errors.Is(validateAttributeValue(multi, "s, xl"), ErrValidation))

	// free text accepts anything
	text := &models.Attribute{Code: "notes", Type: models.AttributeTypeText}
	assert.NoError(t, validateAttributeValue(text, "anything goes"))
}

type AttributeServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AttributeService
}

func (suite *AttributeServiceTestSuite) SetupSuite() {
	db, err := gorm.Open(sqlite.Open("file:attribute_service_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(db.AutoMigrate(&models.Attribute{}, &models.ProductAttribute{}))

	suite.db = db
	suite.service = NewAttributeService(db)
}

func (suite *AttributeServiceTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("DELETE FROM product_attributes").Error)
	suite.Require().NoError(suite.db.Exec("DELETE FROM attributes").Error)
}

func (suite *AttributeServiceTestSuite) TestCreateDefaultsFlags() {
	attribute, err := suite.service.Create(&CreateAttributeRequest{
		Name: "Brand color",
		Code: "brand-color",
		Type: models.AttributeTypeText,
	})
	suite.Require().NoError(err)
	suite.True(attribute.IsFilterable)
	suite.True(attribute.IsSearchable)
	suite.True(attribute.IsActive)
}

func (suite *AttributeServiceTestSuite) TestCreateHonorsExplicitFalseFlags() {
	off := false
	created, err := suite.service.Create(&CreateAttributeRequest{
		Name:         "Internal note",
		Code:         "internal-note",
		Type:         models.AttributeTypeText,
		IsFilterable: &off,
		IsSearchable: &off,
	})
	suite.Require().NoError(err)

	// the stored row must keep the explicit false, not revert to a column
	// default
	var stored models.Attribute
	suite.Require().NoError(suite.db.First(&stored, "id = ?", created.ID).Error)
	suite.False(stored.IsFilterable)
	suite.False(stored.IsSearchable)
}

func (suite *AttributeServiceTestSuite) TestCreateDuplicateCodeConflicts() {
	_, err := suite.service.Create(&CreateAttributeRequest{
		Name: "Weight", Code: "weight", Type: models.AttributeTypeNumber,
	})
	suite.Require().NoError(err)

	_, err = suite.service.Create(&CreateAttributeRequest{
		Name: "Weight again", Code: "weight", Type: models.AttributeTypeNumber,
	})
	suite.True(errors.Is(err, ErrConflict))
}

func (suite *AttributeServiceTestSuite) TestCreateSelectRequiresAllowedValues() {
	_, err := suite.service.Create(&CreateAttributeRequest{
		Name: "Color", Code: "color", Type: models.AttributeTypeSelect,
	})
	suite.True(errors.Is(err, ErrValidation))
}

func (suite *AttributeServiceTestSuite) TestSetProductValueUpsertsByPair() {
	attribute, err := suite.service.Create(&CreateAttributeRequest{
		Name: "Weight", Code: "weight", Type: models.AttributeTypeNumber,
	})
	suite.Require().NoError(err)

	productID := uuid.New()
	first, err := suite.service.SetProductValue(productID, attribute.ID, "10")
	suite.Require().NoError(err)

	second, err := suite.service.SetProductValue(productID, attribute.ID, "20")
	suite.Require().NoError(err)
	suite.Equal(first.ID, second.ID)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.ProductAttribute{}).
		Where("product_id = ? AND attribute_id = ?", productID, attribute.ID).
		Count(&count).Error)
	suite.Equal(int64(1), count)

	values, err := suite.service.GetProductValues(productID)
	suite.Require().NoError(err)
	suite.Require().Len(values, 1)
	suite.Equal("20", values[0].Value)

	_, err = suite.service.SetProductValue(productID, attribute.ID, "heavy")
	suite.True(errors.Is(err, ErrValidation))
}

func TestAttributeServiceSuite(t *testing.T) {
	suite.Run(t, new(AttributeServiceTestSuite))
}
