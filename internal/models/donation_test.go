package models_test

import (
	"github.com/google/uuid"
	"github.com/habitat-fund/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestDonationSelf() {
	assert.Equal(suite.T(), "Donation", models.Donation{}.Self())
	assert.Equal(suite.T(), "Allocation", models.Allocation{}.Self())
}

func (suite *TestSuiteStandard) TestDonationAfterSave() {
	tests := []struct {
		amount decimal.Decimal
		err    error
	}{
		{decimal.NewFromFloat(-10), models.ErrDonationAmountNotPositive},
		{decimal.Zero, models.ErrDonationAmountNotPositive},
		{decimal.NewFromFloat(0.01), nil},
	}

	for _, tt := range tests {
		d := models.Donation{Amount: tt.amount}
		assert.Equal(suite.T(), tt.err, d.AfterSave(&gorm.DB{}))
	}
}

func (suite *TestSuiteStandard) TestAllocationAfterSave() {
	tests := []struct {
		amount decimal.Decimal
		err    error
	}{
		{decimal.NewFromFloat(-0.5), models.ErrAllocationAmountNegative},
		{decimal.Zero, nil},
		{decimal.NewFromFloat(33.33333333), nil},
	}

	for _, tt := range tests {
		a := models.Allocation{Amount: tt.amount}
		assert.Equal(suite.T(), tt.err, a.AfterSave(&gorm.DB{}))
	}
}

func (suite *TestSuiteStandard) TestDonationAllocationFor() {
	forest := uuid.New()
	desert := uuid.New()

	donation := models.Donation{
		Allocations: []*models.Allocation{
			{HabitatID: forest, Amount: decimal.NewFromInt(50)},
		},
	}

	assert.Same(suite.T(), donation.Allocations[0], donation.AllocationFor(forest))
	assert.Nil(suite.T(), donation.AllocationFor(desert))
}

func (suite *TestSuiteStandard) TestDonationAllocated() {
	donation := models.Donation{
		Allocations: []*models.Allocation{
			{Amount: decimal.NewFromInt(50)},
			{Amount: decimal.NewFromFloat(12.5)},
		},
	}

	assert.True(suite.T(), decimal.NewFromFloat(62.5).Equal(donation.Allocated()))
	assert.True(suite.T(), decimal.Zero.Equal((&models.Donation{}).Allocated()))
}

func (suite *TestSuiteStandard) TestDonationAnonymous() {
	donation := models.Donation{Category: " FOOD ", Amount: decimal.NewFromInt(10)}
	err := models.DB.Create(&donation).Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), "FOOD", donation.Category)

	var loaded models.Donation
	err = models.DB.Preload("Client").First(&loaded, "id = ?", donation.ID).Error
	assert.Nil(suite.T(), err)
	assert.Nil(suite.T(), loaded.ClientID)
	assert.Nil(suite.T(), loaded.Client)
}

func (suite *TestSuiteStandard) TestAllocationUniquePerDonationAndHabitat() {
	habitat := suite.createTestHabitat(models.Habitat{})
	donation := models.Donation{Category: "FOOD", Amount: decimal.NewFromInt(10)}
	assert.Nil(suite.T(), models.DB.Create(&donation).Error)

	first := models.Allocation{DonationID: donation.ID, HabitatID: habitat.ID, Amount: decimal.NewFromInt(10)}
	assert.Nil(suite.T(), models.DB.Create(&first).Error)

	duplicate := models.Allocation{DonationID: donation.ID, HabitatID: habitat.ID, Amount: decimal.NewFromInt(10)}
	err := models.DB.Create(&duplicate).Error
	assert.ErrorIs(suite.T(), err, models.ErrGeneral, "A second allocation for the same donation and habitat must be rejected by the database")
}

func (suite *TestSuiteStandard) TestDatabaseClosed() {
	suite.CloseDB()

	err := models.DB.First(&models.Habitat{}).Error
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}
