package models_test

import (
	"strings"

	"github.com/habitat-fund/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestHabitatSelf() {
	assert.Equal(suite.T(), "Habitat", models.Habitat{}.Self())
}

func (suite *TestSuiteStandard) TestHabitatTrimWhitespace() {
	name := "\t Forest  "
	description := "  Lots of trees "

	habitat := suite.createTestHabitat(models.Habitat{
		Name:        name,
		Description: description,
	})

	assert.Equal(suite.T(), strings.TrimSpace(name), habitat.Name)
	assert.Equal(suite.T(), strings.TrimSpace(description), habitat.Description)
}

func (suite *TestSuiteStandard) TestHabitatNameNotUnique() {
	_ = suite.createTestHabitat(models.Habitat{Name: "Desert"})

	err := models.DB.Create(&models.Habitat{Name: "Desert"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrHabitatNameNotUnique)
}

func (suite *TestSuiteStandard) TestHabitatNameEmpty() {
	err := models.DB.Create(&models.Habitat{Name: "   "}).Error
	assert.ErrorIs(suite.T(), err, models.ErrHabitatNameEmpty)
}

func (suite *TestSuiteStandard) TestHabitatAfterSave() {
	tests := []struct {
		name       string
		foodSupply decimal.NullDecimal
		err        error
	}{
		{"Absent", decimal.NullDecimal{}, nil},
		{"Zero", decimal.NewNullDecimal(decimal.Zero), nil},
		{"Positive", decimal.NewNullDecimal(decimal.NewFromFloat(17.5)), nil},
		{"Negative", decimal.NewNullDecimal(decimal.NewFromFloat(-0.01)), models.ErrHabitatFoodSupplyNegative},
	}

	for _, tt := range tests {
		h := models.Habitat{FoodSupply: tt.foodSupply}
		assert.Equal(suite.T(), tt.err, h.AfterSave(&gorm.DB{}), tt.name)
	}
}

func (suite *TestSuiteStandard) TestHabitatFeed() {
	tests := []struct {
		name     string
		initial  decimal.NullDecimal
		share    decimal.Decimal
		expected decimal.Decimal
	}{
		{"Absent counts as zero", decimal.NullDecimal{}, decimal.NewFromInt(50), decimal.NewFromInt(50)},
		{"Zero", decimal.NewNullDecimal(decimal.Zero), decimal.NewFromInt(50), decimal.NewFromInt(50)},
		{"Existing supply", decimal.NewNullDecimal(decimal.NewFromInt(30)), decimal.NewFromFloat(12.25), decimal.NewFromFloat(42.25)},
	}

	for _, tt := range tests {
		h := models.Habitat{FoodSupply: tt.initial}
		h.Feed(tt.share)

		assert.True(suite.T(), h.FoodSupply.Valid, tt.name)
		assert.True(suite.T(), tt.expected.Equal(h.FoodSupply.Decimal), "%s: expected %s, got %s", tt.name, tt.expected, h.FoodSupply.Decimal)
	}
}

func (suite *TestSuiteStandard) TestHabitatFoodSupplyPersistsAbsent() {
	habitat := suite.createTestHabitat(models.Habitat{})

	var loaded models.Habitat
	err := models.DB.First(&loaded, "id = ?", habitat.ID).Error
	assert.Nil(suite.T(), err)
	assert.False(suite.T(), loaded.FoodSupply.Valid, "An absent food supply must not be read back as zero")
}

func (suite *TestSuiteStandard) TestHabitatNotFound() {
	err := models.DB.First(&models.Habitat{}, "name = ?", "Atlantis").Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Equal(suite.T(), "there is no habitat matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestHabitatExport() {
	_ = suite.createTestHabitat(models.Habitat{Name: "Jungle"})

	raw, err := models.Habitat{}.Export()
	assert.Nil(suite.T(), err)
	assert.Contains(suite.T(), string(raw), "Jungle")
}
