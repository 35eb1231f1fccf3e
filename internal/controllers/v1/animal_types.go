package v1

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/habitat-fund/backend/internal/models"
	"github.com/ryanuber/go-glob"
	"golang.org/x/text/cases"
)

// animalPageSize is the number of animals returned per page.
const animalPageSize = 10

// AnimalEditable represents all user configurable parameters
type AnimalEditable struct {
	Name      string     `json:"name" example:"Leo"`                                       // Name of the animal
	Species   string     `json:"species" example:"Lion"`                                   // Species of the animal
	Age       int        `json:"age" example:"7"`                                          // Age in years
	Weight    int        `json:"weight" example:"190"`                                     // Weight in kilograms
	Height    int        `json:"height" example:"120"`                                     // Height in centimeters
	HabitatID *uuid.UUID `json:"habitatId" example:"1a3d7c79-4d4d-4e33-91b3-e35bc1e1a0d8"` // ID of the habitat the animal lives in
}

func (editable AnimalEditable) model() models.Animal {
	return models.Animal{
		Name:      strings.TrimSpace(editable.Name),
		Species:   strings.TrimSpace(editable.Species),
		Age:       editable.Age,
		Weight:    editable.Weight,
		Height:    editable.Height,
		HabitatID: editable.HabitatID,
	}
}

type AnimalLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/animals/5e0f8a62-2d0a-4d7e-bb4b-9c3cfd2e8f30"` // The animal itself
}

type Animal struct {
	models.DefaultModel
	AnimalEditable
	Links AnimalLinks `json:"links"`
}

func newAnimal(c *gin.Context, model models.Animal) Animal {
	url := c.GetString(string(models.DBContextURL))

	return Animal{
		DefaultModel: model.DefaultModel,
		AnimalEditable: AnimalEditable{
			Name:      model.Name,
			Species:   model.Species,
			Age:       model.Age,
			Weight:    model.Weight,
			Height:    model.Height,
			HabitatID: model.HabitatID,
		},
		Links: AnimalLinks{
			Self: fmt.Sprintf("%s/v1/animals/%s", url, model.ID),
		},
	}
}

type AnimalListResponse struct {
	Data       []Animal    `json:"data"`                                                          // List of animals
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type AnimalCreateResponse struct {
	Data  []AnimalResponse `json:"data"`                                                          // List of the created animals or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *AnimalCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, AnimalResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AnimalResponse struct {
	Data  *Animal `json:"data"`                                                          // Data for the animal
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AnimalCount struct {
	Count int `json:"count" example:"3"` // Number of animals matching the query
}

type AnimalCountResponse struct {
	Data  *AnimalCount `json:"data"`                                                                          // The count
	Error *string      `json:"error" example:"the type query parameter must be one of NAME, SPECIES or GLOB"` // The error, if any occurred
}

type AnimalPageQuery struct {
	Page *uint `form:"page"` // Page to return, starting at 0
}

type AnimalSearchQuery struct {
	Type string `form:"type"` // One of NAME, SPECIES or GLOB
	Term string `form:"term"` // The search term
}

// matcher returns the function that decides if an animal matches the
// search. All comparisons are case insensitive.
func (q AnimalSearchQuery) matcher() (func(models.Animal) bool, error) {
	if strings.TrimSpace(q.Term) == "" {
		return nil, errSearchTermMissing
	}

	fold := cases.Fold()
	term := fold.String(q.Term)

	switch strings.ToUpper(q.Type) {
	case "NAME":
		return func(a models.Animal) bool {
			return strings.Contains(fold.String(a.Name), term)
		}, nil
	case "SPECIES":
		return func(a models.Animal) bool {
			return fold.String(a.Species) == term
		}, nil
	case "GLOB":
		return func(a models.Animal) bool {
			return glob.Glob(term, fold.String(a.Name))
		}, nil
	}

	return nil, errSearchTypeInvalid
}

// page returns the animals on the page.
func page(animals []models.Animal, p uint) []models.Animal {
	start := int(p) * animalPageSize
	if start >= len(animals) {
		return []models.Animal{}
	}

	end := min(start+animalPageSize, len(animals))
	return animals[start:end]
}
