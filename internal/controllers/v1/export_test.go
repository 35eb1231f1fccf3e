package v1_test

import (
	"encoding/json"
	"net/http"

	v1 "github.com/habitat-fund/backend/internal/controllers/v1"
	"github.com/habitat-fund/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestExport() {
	habitat := createTestHabitat(suite.T(), v1.HabitatEditable{Name: "Exported"})
	_ = createTestAnimal(suite.T(), v1.AnimalEditable{HabitatID: &habitat.Data.ID})
	_ = createTestClient(suite.T(), v1.ClientEditable{})
	_ = createTestDonation(suite.T(), v1.DonationEditable{HabitatNames: []string{"Exported"}})

	// Deleted resources are exported, too
	deleted := createTestHabitat(suite.T(), v1.HabitatEditable{})
	r := test.Request(suite.T(), http.MethodDelete, deleted.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var export v1.ExportResponse
	test.DecodeResponse(suite.T(), &r, &export)

	assert.Equal(suite.T(), "GNU Terry Pratchett", export.Clacks)

	counts := map[string]int{
		"Allocation": 1,
		"Animal":     1,
		"Client":     1,
		"Donation":   1,
		"Habitat":    2,
	}

	for resource, count := range counts {
		var rows []any
		suite.Require().Nil(json.Unmarshal(export.Data[resource], &rows), "Export of %s is not a list", resource)
		assert.Len(suite.T(), rows, count, "Wrong number of %s resources", resource)
	}
}

func (suite *TestSuiteStandard) TestExportDBError() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
