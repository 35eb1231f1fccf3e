package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/habitat-fund/backend/internal/controllers/v1"
	"github.com/habitat-fund/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCleanup() {
	habitat := createTestHabitat(suite.T(), v1.HabitatEditable{})
	client := createTestClient(suite.T(), v1.ClientEditable{})
	animal := createTestAnimal(suite.T(), v1.AnimalEditable{HabitatID: &habitat.Data.ID})
	_ = createTestDonation(suite.T(), v1.DonationEditable{DonorName: &client.Data.Username, HabitatNames: []string{habitat.Data.Name}})

	r := test.Request(suite.T(), http.MethodPost, client.Data.Links.Favorites, []uuid.UUID{animal.Data.ID})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	tests := []string{
		"http://example.com/v1/animals",
		"http://example.com/v1/clients",
		"http://example.com/v1/donations",
		"http://example.com/v1/habitats",
	}

	// Delete
	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// Verify
	for _, tt := range tests {
		suite.T().Run(tt, func(t *testing.T) {
			recorder := test.Request(suite.T(), http.MethodGet, tt, "")
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

			var response struct {
				Data []any `json:"data"`
			}

			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, 0, "There are resources left for type %s", tt)
		})
	}

	// Names of deleted resources can be used again
	_ = createTestHabitat(suite.T(), v1.HabitatEditable{Name: habitat.Data.Name})
	_ = createTestClient(suite.T(), v1.ClientEditable{Username: client.Data.Username})
}

func (suite *TestSuiteStandard) TestCleanupFails() {
	tests := []struct {
		name string
		path string
	}{
		{"Invalid path", "confirm=2"},
		{"Confirmation wrong", "confirm=invalid-confirmation"},
		{"Confirmation missing", ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1?%s", tt.path), "")
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupDBError() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
}
