package donations_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/habitat-fund/backend/internal/donations"
	"github.com/habitat-fund/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestRecordDonationSplitsAcrossDistinctHabitats() {
	_ = suite.createTestHabitat("Forest", ptr(50.0))
	_ = suite.createTestHabitat("Desert", ptr(30.0))
	alice := suite.createTestClient("alice")

	id, err := suite.engine.RecordDonation(ctx, donations.Request{
		DonorName:    ptr("alice"),
		Category:     "FOOD",
		Amount:       decimal.NewFromInt(100),
		HabitatNames: []string{"Forest", "Desert", "Forest"},
	})
	require.Nil(suite.T(), err)

	allocations := suite.allocations(id)
	require.Len(suite.T(), allocations, 2)
	for _, a := range allocations {
		assert.True(suite.T(), decimal.NewFromInt(50).Equal(a.Amount), "Allocation for %s is %s", a.Habitat.Name, a.Amount)
	}

	assert.True(suite.T(), decimal.NewFromInt(100).Equal(suite.habitat("Forest").FoodSupply.Decimal))
	assert.True(suite.T(), decimal.NewFromInt(80).Equal(suite.habitat("Desert").FoodSupply.Decimal))

	var donation models.Donation
	require.Nil(suite.T(), models.DB.First(&donation, "id = ?", id).Error)
	assert.Equal(suite.T(), alice.ID, *donation.ClientID)
	assert.Equal(suite.T(), "FOOD", donation.Category)
	assert.True(suite.T(), decimal.NewFromInt(100).Equal(donation.Amount))
}

func (suite *TestSuiteStandard) TestRecordDonationRepeatedHabitat() {
	_ = suite.createTestHabitat("Habitat1", ptr(50.0))

	id, err := suite.engine.RecordDonation(ctx, donations.Request{
		Category:     "FOOD",
		Amount:       decimal.NewFromInt(100),
		HabitatNames: []string{"Habitat1", "Habitat1"},
	})
	require.Nil(suite.T(), err)

	allocations := suite.allocations(id)
	require.Len(suite.T(), allocations, 1)
	assert.True(suite.T(), decimal.NewFromInt(100).Equal(allocations[0].Amount))
	assert.True(suite.T(), decimal.NewFromInt(150).Equal(suite.habitat("Habitat1").FoodSupply.Decimal))
}

func (suite *TestSuiteStandard) TestRecordDonationAbsentFoodSupply() {
	_ = suite.createTestHabitat("Savanna", nil)

	_, err := suite.engine.RecordDonation(ctx, donations.Request{
		Category:     "FOOD",
		Amount:       decimal.NewFromFloat(12.5),
		HabitatNames: []string{"Savanna"},
	})
	require.Nil(suite.T(), err)

	savanna := suite.habitat("Savanna")
	assert.True(suite.T(), savanna.FoodSupply.Valid)
	assert.True(suite.T(), decimal.NewFromFloat(12.5).Equal(savanna.FoodSupply.Decimal))
	assert.Equal(suite.T(), uint(1), savanna.Version)
}

func (suite *TestSuiteStandard) TestRecordDonationUnevenSplit() {
	for _, name := range []string{"A", "B", "C"} {
		_ = suite.createTestHabitat(name, nil)
	}

	id, err := suite.engine.RecordDonation(ctx, donations.Request{
		Category:     "FOOD",
		Amount:       decimal.NewFromInt(100),
		HabitatNames: []string{"A", "B", "C"},
	})
	require.Nil(suite.T(), err)

	share := decimal.RequireFromString("33.33333333")
	for _, a := range suite.allocations(id) {
		assert.True(suite.T(), share.Equal(a.Amount), "Allocation for %s is %s", a.Habitat.Name, a.Amount)
		assert.True(suite.T(), share.Equal(suite.habitat(a.Habitat.Name).FoodSupply.Decimal))
	}
}

func (suite *TestSuiteStandard) TestRecordDonationAnonymous() {
	_ = suite.createTestHabitat("Forest", nil)

	id, err := suite.engine.RecordDonation(ctx, donations.Request{
		Category:     "TOYS",
		Amount:       decimal.NewFromInt(20),
		HabitatNames: []string{"Forest"},
	})
	require.Nil(suite.T(), err)

	var donation models.Donation
	require.Nil(suite.T(), models.DB.First(&donation, "id = ?", id).Error)
	assert.Nil(suite.T(), donation.ClientID)
}

func (suite *TestSuiteStandard) TestRecordDonationFailures() {
	_ = suite.createTestHabitat("Forest", ptr(50.0))
	_ = suite.createTestHabitat("Desert", ptr(30.0))
	_ = suite.createTestClient("alice")

	tests := []struct {
		name    string
		request donations.Request
		err     error
	}{
		{"No habitats", donations.Request{Category: "FOOD", Amount: decimal.NewFromInt(100), HabitatNames: []string{}}, donations.ErrInvalidRequest},
		{"Nil habitats", donations.Request{Category: "FOOD", Amount: decimal.NewFromInt(100)}, donations.ErrInvalidRequest},
		{"Unknown habitat", donations.Request{Category: "FOOD", Amount: decimal.NewFromInt(100), HabitatNames: []string{"Forest", "Atlantis", "Desert"}}, models.ErrResourceNotFound},
		{"Unknown donor", donations.Request{DonorName: ptr("mallory"), Category: "FOOD", Amount: decimal.NewFromInt(100), HabitatNames: []string{"Forest"}}, models.ErrResourceNotFound},
		{"Zero amount", donations.Request{Category: "FOOD", Amount: decimal.Zero, HabitatNames: []string{"Forest"}}, donations.ErrInvalidRequest},
		{"Negative amount", donations.Request{Category: "FOOD", Amount: decimal.NewFromInt(-5), HabitatNames: []string{"Forest"}}, donations.ErrInvalidRequest},
	}

	for _, tt := range tests {
		id, err := suite.engine.RecordDonation(ctx, tt.request)
		assert.ErrorIs(suite.T(), err, tt.err, tt.name)
		assert.Equal(suite.T(), uuid.Nil, id, tt.name)

		assert.Equal(suite.T(), int64(0), suite.count(&models.Donation{}), "%s: a donation was persisted", tt.name)
		assert.Equal(suite.T(), int64(0), suite.count(&models.Allocation{}), "%s: an allocation was persisted", tt.name)
		assert.True(suite.T(), decimal.NewFromInt(50).Equal(suite.habitat("Forest").FoodSupply.Decimal), "%s: Forest was modified", tt.name)
		assert.True(suite.T(), decimal.NewFromInt(30).Equal(suite.habitat("Desert").FoodSupply.Decimal), "%s: Desert was modified", tt.name)
	}
}

func (suite *TestSuiteStandard) TestRecordDonationErrorNamesHabitat() {
	_, err := suite.engine.RecordDonation(ctx, donations.Request{
		Category:     "FOOD",
		Amount:       decimal.NewFromInt(1),
		HabitatNames: []string{"Atlantis"},
	})

	assert.Equal(suite.T(), `there is no habitat with name "Atlantis"`, err.Error())
}

func (suite *TestSuiteStandard) TestApportionMergesExistingAllocation() {
	_ = suite.createTestHabitat("Forest", ptr(50.0))
	_ = suite.createTestHabitat("Desert", ptr(30.0))

	id, err := suite.engine.RecordDonation(ctx, donations.Request{
		Category:     "FOOD",
		Amount:       decimal.NewFromInt(100),
		HabitatNames: []string{"Forest"},
	})
	require.Nil(suite.T(), err)

	err = suite.engine.Apportion(ctx, id, decimal.NewFromInt(40), []string{"Forest", "Desert"})
	require.Nil(suite.T(), err)

	allocations := suite.allocations(id)
	require.Len(suite.T(), allocations, 2, "The existing allocation must be merged, not duplicated")

	amounts := map[string]decimal.Decimal{}
	sum := decimal.Zero
	for _, a := range allocations {
		amounts[a.Habitat.Name] = a.Amount
		sum = sum.Add(a.Amount)
	}

	assert.True(suite.T(), decimal.NewFromInt(120).Equal(amounts["Forest"]))
	assert.True(suite.T(), decimal.NewFromInt(20).Equal(amounts["Desert"]))
	assert.True(suite.T(), decimal.NewFromInt(140).Equal(sum), "Allocations must sum up to all apportioned amounts")

	assert.True(suite.T(), decimal.NewFromInt(170).Equal(suite.habitat("Forest").FoodSupply.Decimal))
	assert.True(suite.T(), decimal.NewFromInt(50).Equal(suite.habitat("Desert").FoodSupply.Decimal))

	var donation models.Donation
	require.Nil(suite.T(), models.DB.First(&donation, "id = ?", id).Error)
	assert.True(suite.T(), decimal.NewFromInt(100).Equal(donation.Amount), "The donation header must not change")
}

func (suite *TestSuiteStandard) TestApportionMergesRepeatedly() {
	_ = suite.createTestHabitat("Forest", nil)

	id, err := suite.engine.RecordDonation(ctx, donations.Request{
		Category:     "FOOD",
		Amount:       decimal.NewFromInt(10),
		HabitatNames: []string{"Forest"},
	})
	require.Nil(suite.T(), err)

	for i := 0; i < 3; i++ {
		require.Nil(suite.T(), suite.engine.Apportion(ctx, id, decimal.NewFromInt(5), []string{"Forest"}), "Apportion %d failed", i)
	}

	allocations := suite.allocations(id)
	require.Len(suite.T(), allocations, 1)
	assert.True(suite.T(), decimal.NewFromInt(25).Equal(allocations[0].Amount), "Allocation is %s", allocations[0].Amount)
	assert.True(suite.T(), decimal.NewFromInt(25).Equal(suite.habitat("Forest").FoodSupply.Decimal))

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.Donation{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(1), count, "Merging must not create donations")
}

func (suite *TestSuiteStandard) TestApportionFailures() {
	_ = suite.createTestHabitat("Forest", ptr(50.0))

	id, err := suite.engine.RecordDonation(ctx, donations.Request{
		Category:     "FOOD",
		Amount:       decimal.NewFromInt(10),
		HabitatNames: []string{"Forest"},
	})
	require.Nil(suite.T(), err)

	tests := []struct {
		name   string
		id     uuid.UUID
		amount decimal.Decimal
		names  []string
		err    error
	}{
		{"Unknown donation", uuid.New(), decimal.NewFromInt(10), []string{"Forest"}, models.ErrResourceNotFound},
		{"Unknown habitat", id, decimal.NewFromInt(10), []string{"Forest", "Atlantis"}, models.ErrResourceNotFound},
		{"No habitats", id, decimal.NewFromInt(10), nil, donations.ErrInvalidRequest},
		{"Negative amount", id, decimal.NewFromInt(-10), []string{"Forest"}, donations.ErrInvalidRequest},
	}

	for _, tt := range tests {
		err := suite.engine.Apportion(ctx, tt.id, tt.amount, tt.names)
		assert.ErrorIs(suite.T(), err, tt.err, tt.name)
	}

	assert.True(suite.T(), decimal.NewFromInt(60).Equal(suite.habitat("Forest").FoodSupply.Decimal))
	assert.Len(suite.T(), suite.allocations(id), 1)
}

// racingHabitats simulates another donation updating every habitat right
// after it has been read.
type racingHabitats struct {
	donations.HabitatStore
	tx *gorm.DB
}

func (r racingHabitats) FindByName(ctx context.Context, name string) (*models.Habitat, error) {
	habitat, err := r.HabitatStore.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	err = r.tx.Model(&models.Habitat{}).Where("id = ?", habitat.ID).Update("version", gorm.Expr("version + 1")).Error
	return habitat, err
}

type racingUnitOfWork struct{}

func (racingUnitOfWork) Do(ctx context.Context, fn func(donations.Stores) error) error {
	return models.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stores := donations.GormStores(tx)
		stores.Habitats = racingHabitats{HabitatStore: stores.Habitats, tx: tx}
		return fn(stores)
	})
}

func (suite *TestSuiteStandard) TestRecordDonationConcurrentUpdate() {
	_ = suite.createTestHabitat("Forest", ptr(50.0))

	engine := donations.NewEngine(racingUnitOfWork{})
	_, err := engine.RecordDonation(ctx, donations.Request{
		Category:     "FOOD",
		Amount:       decimal.NewFromInt(10),
		HabitatNames: []string{"Forest"},
	})
	assert.ErrorIs(suite.T(), err, donations.ErrConcurrentUpdate)

	forest := suite.habitat("Forest")
	assert.True(suite.T(), decimal.NewFromInt(50).Equal(forest.FoodSupply.Decimal))
	assert.Equal(suite.T(), uint(0), forest.Version, "The conflicting update must be rolled back with the donation")
	assert.Equal(suite.T(), int64(0), suite.count(&models.Donation{}))
}

func (suite *TestSuiteStandard) TestRecordDonationDBClosed() {
	_ = suite.createTestHabitat("Forest", nil)
	suite.CloseDB()

	_, err := suite.engine.RecordDonation(ctx, donations.Request{
		Category:     "FOOD",
		Amount:       decimal.NewFromInt(10),
		HabitatNames: []string{"Forest"},
	})
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestRecordDonationCanceledContext() {
	_ = suite.createTestHabitat("Forest", nil)

	canceled, cancel := context.WithCancel(ctx)
	cancel()

	_, err := suite.engine.RecordDonation(canceled, donations.Request{
		Category:     "FOOD",
		Amount:       decimal.NewFromInt(10),
		HabitatNames: []string{"Forest"},
	})
	assert.NotNil(suite.T(), err)
	assert.Equal(suite.T(), int64(0), suite.count(&models.Donation{}))
}
