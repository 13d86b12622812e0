// internal/services/media_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/veloxcommerce/catalog-backend/internal/models"
)

type MediaServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *MediaService
}

func (suite *MediaServiceTestSuite) SetupSuite() {
	db, err := gorm.Open(sqlite.Open("file:media_service_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(db.AutoMigrate(&models.Media{}))

	suite.db = db
	suite.service = NewMediaService(db)
}

func (suite *MediaServiceTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("DELETE FROM media").Error)
}

func (suite *MediaServiceTestSuite) mustCreate(req *CreateMediaRequest) *models.Media {
	media, err := suite.service.Create(req)
	suite.Require().NoError(err)
	return media
}

func (suite *MediaServiceTestSuite) TestFindByProductOrdersByPosition() {
	productID := uuid.New()
	suite.mustCreate(&CreateMediaRequest{
		ProductID: productID,
		Type:      models.MediaTypeImage,
		URL:       "https://cdn.example.com/b.jpg",
		Position:  2,
	})
	suite.mustCreate(&CreateMediaRequest{
		ProductID: productID,
		Type:      models.MediaTypeImage,
		URL:       "https://cdn.example.com/a.jpg",
		Position:  1,
	})
	suite.mustCreate(&CreateMediaRequest{
		ProductID: uuid.New(),
		Type:      models.MediaTypeImage,
		URL:       "https://cdn.example.com/other.jpg",
		Position:  0,
	})

	media, err := suite.service.FindByProduct(productID)
	suite.Require().NoError(err)
	suite.Require().Len(media, 2)
	suite.Equal("https://cdn.example.com/a.jpg", media[0].URL)
	suite.Equal("https://cdn.example.com/b.jpg", media[1].URL)
}

func (suite *MediaServiceTestSuite) TestCreatePrimaryUnsetsSiblings() {
	productID := uuid.New()
	first := suite.mustCreate(&CreateMediaRequest{
		ProductID: productID,
		Type:      models.MediaTypeImage,
		URL:       "https://cdn.example.com/1.jpg",
		IsPrimary: true,
	})
	second := suite.mustCreate(&CreateMediaRequest{
		ProductID: productID,
		Type:      models.MediaTypeImage,
		URL:       "https://cdn.example.com/2.jpg",
		IsPrimary: true,
	})

	var reloaded models.Media
	suite.Require().NoError(suite.db.First(&reloaded, "id = ?", first.ID).Error)
	suite.False(reloaded.IsPrimary)
	suite.True(second.IsPrimary)
}

func (suite *MediaServiceTestSuite) TestCreateRejectsUnknownType() {
	_, err := suite.service.Create(&CreateMediaRequest{
		ProductID: uuid.New(),
		Type:      models.MediaType("hologram"),
		URL:       "https://cdn.example.com/x.bin",
	})
	suite.True(errors.Is(err, ErrValidation))
}

func (suite *MediaServiceTestSuite) TestSetPrimaryFlipsFlagWithinGallery() {
	productID := uuid.New()
	first := suite.mustCreate(&CreateMediaRequest{
		ProductID: productID,
		Type:      models.MediaTypeImage,
		URL:       "https://cdn.example.com/1.jpg",
		IsPrimary: true,
	})
	second := suite.mustCreate(&CreateMediaRequest{
		ProductID: productID,
		Type:      models.MediaTypeVideo,
		URL:       "https://cdn.example.com/clip.mp4",
	})

	promoted, err := suite.service.SetPrimary(second.ID)
	suite.Require().NoError(err)
	suite.True(promoted.IsPrimary)

	var reloaded models.Media
	suite.Require().NoError(suite.db.First(&reloaded, "id = ?", first.ID).Error)
	suite.False(reloaded.IsPrimary)
}

func (suite *MediaServiceTestSuite) TestSetPrimaryMissingRecord() {
	_, err := suite.service.SetPrimary(uuid.New())
	suite.True(errors.Is(err, ErrNotFound))
}

func (suite *MediaServiceTestSuite) TestUpdateAppliesPartialFields() {
	media := suite.mustCreate(&CreateMediaRequest{
		ProductID: uuid.New(),
		Type:      models.MediaTypeImage,
		URL:       "https://cdn.example.com/old.jpg",
		AltText:   "old",
	})

	newURL := "https://cdn.example.com/new.jpg"
	position := 5
	updated, err := suite.service.Update(media.ID, &UpdateMediaRequest{
		URL:      &newURL,
		Position: &position,
	})
	suite.Require().NoError(err)
	suite.Equal(newURL, updated.URL)
	suite.Equal(5, updated.Position)
	suite.Equal("old", updated.AltText)
}

func (suite *MediaServiceTestSuite) TestRemove() {
	media := suite.mustCreate(&CreateMediaRequest{
		ProductID: uuid.New(),
		Type:      models.MediaTypeDocument,
		URL:       "https://cdn.example.com/manual.pdf",
	})

	suite.Require().NoError(suite.service.Remove(media.ID))

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Media{}).Where("id = ?", media.ID).Count(&count).Error)
	suite.Equal(int64(0), count)

	err := suite.service.Remove(media.ID)
	suite.True(errors.Is(err, ErrNotFound))
}

func TestMediaServiceSuite(t *testing.T) {
	suite.Run(t, new(MediaServiceTestSuite))
}
