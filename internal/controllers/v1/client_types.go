package v1

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/habitat-fund/backend/internal/models"
)

// ClientEditable represents all user configurable parameters
type ClientEditable struct {
	Username string `json:"username" example:"alice"` // Username of the client. Must be unique
}

func (editable ClientEditable) model() models.Client {
	return models.Client{
		Username: strings.TrimSpace(editable.Username),
	}
}

type ClientLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/clients/c0a3e1a5-8ad3-4d30-9d4d-37c1a0a1f25b"`                // The client itself
	Favorites string `json:"favorites" example:"https://example.com/api/v1/clients/c0a3e1a5-8ad3-4d30-9d4d-37c1a0a1f25b/favorites"` // Add favorite animals
	Donations string `json:"donations" example:"https://example.com/api/v1/donations?donor=alice"`                                  // Donations of the client
}

type Client struct {
	models.DefaultModel
	ClientEditable
	Links ClientLinks `json:"links"`

	// These fields are computed
	Favorites []Animal `json:"favorites"` // Animals the client has marked as favorites
}

// newClient creates the API resource for a client. The favorites of the
// client must be loaded.
func newClient(c *gin.Context, model models.Client) Client {
	u := c.GetString(string(models.DBContextURL))

	client := Client{
		DefaultModel: model.DefaultModel,
		ClientEditable: ClientEditable{
			Username: model.Username,
		},
		Links: ClientLinks{
			Self:      fmt.Sprintf("%s/v1/clients/%s", u, model.ID),
			Favorites: fmt.Sprintf("%s/v1/clients/%s/favorites", u, model.ID),
			Donations: fmt.Sprintf("%s/v1/donations?donor=%s", u, url.QueryEscape(model.Username)),
		},
		Favorites: make([]Animal, 0, len(model.Favorites)),
	}

	for _, animal := range model.Favorites {
		client.Favorites = append(client.Favorites, newAnimal(c, *animal))
	}

	return client
}

type ClientListResponse struct {
	Data       []Client    `json:"data"`                                                          // List of clients
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ClientCreateResponse struct {
	Data  []ClientResponse `json:"data"`                                                          // List of the created clients or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *ClientCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, ClientResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ClientResponse struct {
	Data  *Client `json:"data"`                                                          // Data for the client
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ClientQueryFilter struct {
	Username string `form:"username" filterField:"false"` // By username
	Offset   uint   `form:"offset" filterField:"false"`   // The offset of the first client returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`    // Maximum number of clients to return. Defaults to 50.
}
