package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/habitat-fund/backend/internal/httputil"
	"github.com/habitat-fund/backend/internal/models"
)

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Animals   string `json:"animals" example:"https://example.com/api/v1/animals"`     // URL of animal list endpoint
	Clients   string `json:"clients" example:"https://example.com/api/v1/clients"`     // URL of client list endpoint
	Donations string `json:"donations" example:"https://example.com/api/v1/donations"` // URL of donation list endpoint
	Export    string `json:"export" example:"https://example.com/api/v1/export"`       // URL of the export endpoint
	Habitats  string `json:"habitats" example:"https://example.com/api/v1/habitats"`   // URL of habitat list endpoint
}

// RegisterRoutes registers all v1 routes with the RouterGroup that is
// passed. The donationLimiter is applied to donation routes.
func RegisterRoutes(r *gin.RouterGroup, version string, donationLimiter gin.HandlerFunc) {
	{
		r.GET("", Get)
		r.DELETE("", Cleanup)
		r.OPTIONS("", Options)
	}

	RegisterExportRoutes(r.Group("/export"), version)
	RegisterHabitatRoutes(r.Group("/habitats"))
	RegisterClientRoutes(r.Group("/clients"))
	RegisterAnimalRoutes(r.Group("/animals"))
	RegisterDonationRoutes(r.Group("/donations", donationLimiter))
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	Response
// @Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Animals:   url + "/v1/animals",
			Clients:   url + "/v1/clients",
			Donations: url + "/v1/donations",
			Export:    url + "/v1/export",
			Habitats:  url + "/v1/habitats",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}
