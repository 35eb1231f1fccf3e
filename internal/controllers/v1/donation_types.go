package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/habitat-fund/backend/internal/donations"
	"github.com/habitat-fund/backend/internal/models"
	"github.com/shopspring/decimal"
)

// DonationEditable is the request to make a donation
type DonationEditable struct {
	DonorName    *string         `json:"donorName" example:"alice"`                 // Username of the donor. Omit or set to null for an anonymous donation
	Category     string          `json:"category" example:"FOOD"`                   // Category of the donation
	Amount       decimal.Decimal `json:"amount" example:"100" swaggertype:"string"` // Amount of the donation. Must be positive
	HabitatNames []string        `json:"habitatNames" example:"Forest,Desert"`      // Names of the habitats the donation is split between
}

func (editable DonationEditable) request() donations.Request {
	return donations.Request{
		DonorName:    editable.DonorName,
		Category:     editable.Category,
		Amount:       editable.Amount,
		HabitatNames: editable.HabitatNames,
	}
}

// AllocationEditable is the request to apportion an additional amount of an
// existing donation
type AllocationEditable struct {
	Amount       decimal.Decimal `json:"amount" example:"20" swaggertype:"string"` // Amount to apportion. Must be positive
	HabitatNames []string        `json:"habitatNames" example:"Forest,Tundra"`     // Names of the habitats the amount is split between
}

type DonationLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/donations/4e6b6ef4-1a1c-4b53-9f4b-5d2f6ad3a6d5"`                    // The donation itself
	Allocations string `json:"allocations" example:"https://example.com/api/v1/donations/4e6b6ef4-1a1c-4b53-9f4b-5d2f6ad3a6d5/allocations"` // Apportion additional amounts
}

type Donation struct {
	donations.Report
	Links DonationLinks `json:"links"`
}

func newDonation(c *gin.Context, report donations.Report) Donation {
	url := c.GetString(string(models.DBContextURL))

	return Donation{
		Report: report,
		Links: DonationLinks{
			Self:        fmt.Sprintf("%s/v1/donations/%s", url, report.ID),
			Allocations: fmt.Sprintf("%s/v1/donations/%s/allocations", url, report.ID),
		},
	}
}

type DonationListResponse struct {
	Data       []Donation  `json:"data"`                                                          // List of donations
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type DonationResponse struct {
	Data  *Donation `json:"data"`                                                       // Data for the donation
	Error *string   `json:"error" example:"there is no habitat with name \"Atlantis\""` // The error, if any occurred
}

type DonationQueryFilter struct {
	Donor     string `form:"donor"`     // By username of the donor
	Anonymous bool   `form:"anonymous"` // Only anonymous donations
	Category  string `form:"category"`  // By category
	Offset    uint   `form:"offset"`    // The offset of the first donation returned. Defaults to 0.
	Limit     int    `form:"limit"`     // Maximum number of donations to return. Defaults to 50.
}

func (f DonationQueryFilter) filter(limit int) donations.Filter {
	return donations.Filter{
		DonorName: f.Donor,
		Anonymous: f.Anonymous,
		Category:  f.Category,
		Offset:    int(f.Offset),
		Limit:     limit,
	}
}
