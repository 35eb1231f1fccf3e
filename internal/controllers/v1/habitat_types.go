package v1

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/habitat-fund/backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// HabitatEditable represents all user configurable parameters
type HabitatEditable struct {
	Name        string `json:"name" example:"Rainforest"`                            // Name of the habitat
	Description string `json:"description" example:"Humid, warm and full of plants"` // Description of the habitat
}

func (editable HabitatEditable) model() models.Habitat {
	return models.Habitat{
		Name:        strings.TrimSpace(editable.Name),
		Description: strings.TrimSpace(editable.Description),
	}
}

// HabitatCreate is the payload to add a habitat. The food supply can only
// be set here, afterwards it changes through donations.
type HabitatCreate struct {
	HabitatEditable
	FoodSupply decimal.NullDecimal `json:"foodSupply" example:"50" swaggertype:"string"` // Initial food supply. Must not be negative, null if not set
}

func (create HabitatCreate) model() models.Habitat {
	habitat := create.HabitatEditable.model()
	habitat.FoodSupply = create.FoodSupply
	return habitat
}

type HabitatLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/habitats/1a3d7c79-4d4d-4e33-91b3-e35bc1e1a0d8"`            // The habitat itself
	Details   string `json:"details" example:"https://example.com/api/v1/habitats/by-name/Rainforest"`                           // Details for the habitat
	Animals   string `json:"animals" example:"https://example.com/api/v1/habitats/1a3d7c79-4d4d-4e33-91b3-e35bc1e1a0d8/animals"` // Assign animals to the habitat
	Donations string `json:"donations" example:"https://example.com/api/v1/donations"`                                           // Donations
}

type Habitat struct {
	models.DefaultModel
	HabitatEditable
	Links HabitatLinks `json:"links"`

	// These fields are computed
	FoodSupply decimal.NullDecimal `json:"foodSupply" example:"120.5" swaggertype:"string"` // Sum of all allocations to this habitat, null if it never received any
}

func newHabitat(c *gin.Context, model models.Habitat) Habitat {
	url := c.GetString(string(models.DBContextURL))

	return Habitat{
		DefaultModel: model.DefaultModel,
		HabitatEditable: HabitatEditable{
			Name:        model.Name,
			Description: model.Description,
		},
		FoodSupply: model.FoodSupply,
		Links: HabitatLinks{
			Self:      fmt.Sprintf("%s/v1/habitats/%s", url, model.ID),
			Details:   fmt.Sprintf("%s/v1/habitats/by-name/%s", url, model.Name),
			Animals:   fmt.Sprintf("%s/v1/habitats/%s/animals", url, model.ID),
			Donations: fmt.Sprintf("%s/v1/donations", url),
		},
	}
}

type HabitatDetails struct {
	Habitat
	AnimalNames []string `json:"animalNames" example:"Leo,Zara"` // Names of all animals living in the habitat, sorted
	DonorNames  []string `json:"donorNames" example:"alice,bob"` // Usernames of all donors who funded the habitat, sorted. Anonymous donations are not listed
}

func newHabitatDetails(c *gin.Context, db *gorm.DB, model models.Habitat) (HabitatDetails, error) {
	details := HabitatDetails{
		Habitat:     newHabitat(c, model),
		AnimalNames: make([]string, 0),
		DonorNames:  make([]string, 0),
	}

	err := db.Model(&models.Animal{}).
		Where("habitat_id = ?", model.ID).
		Order("name ASC").
		Pluck("name", &details.AnimalNames).Error
	if err != nil {
		return HabitatDetails{}, err
	}

	err = db.Model(&models.Client{}).
		Joins("JOIN donations ON donations.client_id = clients.id").
		Joins("JOIN allocations ON allocations.donation_id = donations.id").
		Where("allocations.habitat_id = ?", model.ID).
		Order("clients.username ASC").
		Distinct().
		Pluck("clients.username", &details.DonorNames).Error
	if err != nil {
		return HabitatDetails{}, err
	}

	return details, nil
}

type HabitatListResponse struct {
	Data       []Habitat   `json:"data"`                                                          // List of habitats
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type HabitatCreateResponse struct {
	Data  []HabitatResponse `json:"data"`                                                          // List of the created habitats or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *HabitatCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, HabitatResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type HabitatResponse struct {
	Data  *Habitat `json:"data"`                                                          // Data for the habitat
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type HabitatDetailsResponse struct {
	Data  *HabitatDetails `json:"data"`                                                    // Details for the habitat
	Error *string         `json:"error" example:"there is no habitat matching your query"` // The error, if any occurred
}

type HabitatQueryFilter struct {
	Name        string `form:"name" filterField:"false"`        // By name
	Description string `form:"description" filterField:"false"` // By description
	Search      string `form:"search" filterField:"false"`      // By string in name or description
	Offset      uint   `form:"offset" filterField:"false"`      // The offset of the first habitat returned. Defaults to 0.
	Limit       int    `form:"limit" filterField:"false"`       // Maximum number of habitats to return. Defaults to 50.
}
