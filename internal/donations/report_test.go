package donations_test

import (
	"github.com/google/uuid"
	"github.com/habitat-fund/backend/internal/donations"
	"github.com/habitat-fund/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) record(donor *string, category string, amount int64, habitats ...string) uuid.UUID {
	id, err := suite.engine.RecordDonation(ctx, donations.Request{
		DonorName:    donor,
		Category:     category,
		Amount:       decimal.NewFromInt(amount),
		HabitatNames: habitats,
	})
	if err != nil {
		suite.Assert().FailNowf("Donation could not be recorded", "Error: %s", err)
	}

	return id
}

func (suite *TestSuiteStandard) TestReportGet() {
	_ = suite.createTestHabitat("Forest", nil)
	_ = suite.createTestHabitat("Desert", nil)
	_ = suite.createTestClient("alice")

	id := suite.record(ptr("alice"), "FOOD", 100, "Forest", "Desert")

	report, err := suite.reports.Get(ctx, id)
	suite.Require().Nil(err)

	suite.Assert().Equal(id, report.ID)
	suite.Assert().Equal("FOOD", report.Category)
	suite.Assert().True(decimal.NewFromInt(100).Equal(report.Amount))
	suite.Require().NotNil(report.DonorName)
	suite.Assert().Equal("alice", *report.DonorName)
	suite.Assert().Equal([]string{"Desert", "Forest"}, report.HabitatNames, "Habitat names must be sorted")
	suite.Assert().False(report.CreatedAt.IsZero())
}

func (suite *TestSuiteStandard) TestReportGetAnonymous() {
	_ = suite.createTestHabitat("Cave", nil)
	id := suite.record(nil, "TOYS", 5, "Cave")

	report, err := suite.reports.Get(ctx, id)
	suite.Require().Nil(err)
	suite.Assert().Nil(report.DonorName)
	suite.Assert().Equal([]string{"Cave"}, report.HabitatNames)
}

func (suite *TestSuiteStandard) TestReportGetNotFound() {
	_, err := suite.reports.Get(ctx, uuid.New())
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Contains(err.Error(), "there is no donation with id")
}

func (suite *TestSuiteStandard) TestReportAfterApportion() {
	_ = suite.createTestHabitat("Forest", nil)
	_ = suite.createTestHabitat("Desert", nil)
	_ = suite.createTestHabitat("Tundra", nil)

	id := suite.record(nil, "FOOD", 100, "Forest")
	suite.Require().Nil(suite.engine.Apportion(ctx, id, decimal.NewFromInt(20), []string{"Tundra", "Forest", "Desert"}))

	report, err := suite.reports.Get(ctx, id)
	suite.Require().Nil(err)
	suite.Assert().Equal([]string{"Desert", "Forest", "Tundra"}, report.HabitatNames, "Each habitat must be listed once")
	suite.Assert().True(decimal.NewFromInt(100).Equal(report.Amount), "The donation amount is not changed by apportioning")
}

func (suite *TestSuiteStandard) TestReportDeletedResourcesAreProjected() {
	forest := suite.createTestHabitat("Forest", nil)
	alice := suite.createTestClient("alice")

	id := suite.record(ptr("alice"), "FOOD", 10, "Forest")

	suite.Require().Nil(models.DB.Delete(&alice).Error)
	suite.Require().Nil(models.DB.Delete(&forest).Error)

	report, err := suite.reports.Get(ctx, id)
	suite.Require().Nil(err)
	suite.Require().NotNil(report.DonorName)
	suite.Assert().Equal("alice", *report.DonorName)
	suite.Assert().Equal([]string{"Forest"}, report.HabitatNames)
}

func (suite *TestSuiteStandard) TestReportList() {
	_ = suite.createTestHabitat("Forest", nil)
	_ = suite.createTestClient("alice")
	_ = suite.createTestClient("bob")

	first := suite.record(ptr("alice"), "FOOD", 10, "Forest")
	_ = suite.record(ptr("bob"), "FOOD", 20, "Forest")
	_ = suite.record(nil, "TOYS", 30, "Forest")
	_ = suite.record(ptr("alice"), "TOYS", 40, "Forest")

	tests := []struct {
		name   string
		filter donations.Filter
		len    int
		total  int64
	}{
		{"All", donations.Filter{}, 4, 4},
		{"Donor", donations.Filter{DonorName: "alice"}, 2, 2},
		{"Unknown donor", donations.Filter{DonorName: "mallory"}, 0, 0},
		{"Anonymous", donations.Filter{Anonymous: true}, 1, 1},
		{"Anonymous takes precedence", donations.Filter{Anonymous: true, DonorName: "alice"}, 1, 1},
		{"Category", donations.Filter{Category: "TOYS"}, 2, 2},
		{"Donor and category", donations.Filter{DonorName: "alice", Category: "TOYS"}, 1, 1},
		{"Limit", donations.Filter{Limit: 3}, 3, 4},
		{"Offset", donations.Filter{Offset: 3, Limit: -1}, 1, 4},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			reports, total, err := suite.reports.List(ctx, tt.filter)
			suite.Require().Nil(err)
			suite.Assert().Len(reports, tt.len)
			suite.Assert().Equal(tt.total, total)
		})
	}

	reports, _, err := suite.reports.List(ctx, donations.Filter{Limit: 1})
	suite.Require().Nil(err)
	suite.Assert().Equal(first, reports[0].ID, "Donations must be ordered oldest first")
}

func (suite *TestSuiteStandard) TestReportListDBClosed() {
	suite.CloseDB()

	_, _, err := suite.reports.List(ctx, donations.Filter{})
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestProjectDanglingReferences() {
	clientID := uuid.New()

	_, err := donations.Project(models.Donation{ClientID: &clientID})
	suite.Assert().ErrorIs(err, models.ErrGeneral)
	suite.Assert().ErrorIs(err, donations.ErrDanglingDonor)

	_, err = donations.Project(models.Donation{Allocations: []*models.Allocation{{HabitatID: uuid.New()}}})
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
