package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/habitat-fund/backend/internal/httperrors"
	"github.com/habitat-fund/backend/internal/httputil"
	"github.com/habitat-fund/backend/internal/models"
	"gorm.io/gorm"
)

// RegisterClientRoutes registers the routes for clients with
// the RouterGroup that is passed.
func RegisterClientRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsClientList)
		r.GET("", GetClients)
		r.POST("", CreateClients)
	}

	// Client with ID
	{
		r.OPTIONS("/:id", OptionsClientDetail)
		r.GET("/:id", GetClient)
		r.DELETE("/:id", DeleteClient)
	}

	// Favorites
	{
		r.OPTIONS("/:id/favorites", OptionsFavorites)
		r.POST("/:id/favorites", AddFavorites)
		r.OPTIONS("/:id/favorites/:animalId", OptionsFavorite)
		r.DELETE("/:id/favorites/:animalId", RemoveFavorite)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Clients
// @Success		204
// @Router			/v1/clients [options]
func OptionsClientList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Clients
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/clients/{id} [options]
func OptionsClientDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httperrors.New(err))
		return
	}

	err = models.DB.First(&models.Client{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httperrors.New(err))
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Clients
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/clients/{id}/favorites [options]
func OptionsFavorites(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Clients
// @Success		204
// @Param			id			path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			animalId	path	string	true	"ID of the animal"
// @Router			/v1/clients/{id}/favorites/{animalId} [options]
func OptionsFavorite(c *gin.Context) {
	httputil.OptionsDelete(c)
}

// @Summary		Create clients
// @Description	Registers new clients
// @Tags			Clients
// @Produce		json
// @Success		201		{object}	ClientCreateResponse
// @Failure		400		{object}	ClientCreateResponse
// @Failure		500		{object}	ClientCreateResponse
// @Param			clients	body		[]ClientEditable	true	"Clients"
// @Router			/v1/clients [post]
func CreateClients(c *gin.Context) {
	var editables []ClientEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ClientCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ClientCreateResponse{}

	for _, editable := range editables {
		client := editable.model()

		err = models.DB.Create(&client).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newClient(c, client)
		r.Data = append(r.Data, ClientResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get clients
// @Description	Returns a list of clients
// @Tags			Clients
// @Produce		json
// @Success		200			{object}	ClientListResponse
// @Failure		400			{object}	ClientListResponse
// @Failure		500			{object}	ClientListResponse
// @Router			/v1/clients [get]
// @Param			username	query	string	false	"Filter by username"
// @Param			offset		query	uint	false	"The offset of the first client returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of clients to return. Defaults to 50."
func GetClients(c *gin.Context) {
	var filter ClientQueryFilter
	err := c.ShouldBind(&filter)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ClientListResponse{
			Error: &s,
		})
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.Model(&models.Client{}).Order("username ASC")
	if filter.Username != "" {
		q = q.Where("username LIKE ?", fmt.Sprintf("%%%s%%", filter.Username))
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	limit := limit(setFields, filter.Limit)
	q = q.Limit(limit)

	var clients []models.Client
	err = q.Session(&gorm.Session{}).Preload("Favorites", favoritesByName).Find(&clients).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Client, 0, len(clients))
	for _, client := range clients {
		data = append(data, newClient(c, client))
	}

	c.JSON(http.StatusOK, ClientListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get client
// @Description	Returns a specific client with the favorite animals
// @Tags			Clients
// @Produce		json
// @Success		200	{object}	ClientResponse
// @Failure		400	{object}	ClientResponse
// @Failure		404	{object}	ClientResponse
// @Failure		500	{object}	ClientResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/clients/{id} [get]
func GetClient(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	client, err := loadClient(uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	data := newClient(c, client)
	c.JSON(http.StatusOK, ClientResponse{Data: &data})
}

// @Summary		Delete client
// @Description	Deletes a client. Donations of the client keep referencing it.
// @Tags			Clients
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/clients/{id} [delete]
func DeleteClient(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httperrors.New(err))
		return
	}

	client, err := loadClient(uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httperrors.New(err))
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&client).Association("Favorites").Clear()
		if err != nil {
			return err
		}

		return tx.Delete(&client).Error
	})
	if err != nil {
		c.JSON(status(err), httperrors.New(err))
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Add favorites
// @Description	Adds animals to the favorites of a client. Animals that already are favorites are ignored.
// @Tags			Clients
// @Accept			json
// @Produce		json
// @Success		200		{object}	ClientResponse
// @Failure		400		{object}	ClientResponse
// @Failure		404		{object}	ClientResponse
// @Failure		500		{object}	ClientResponse
// @Param			id		path		URIID		true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			animals	body		[]string	true	"IDs of the animals"
// @Router			/v1/clients/{id}/favorites [post]
func AddFavorites(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	client, err := loadClient(uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	var ids []uuid.UUID
	err = httputil.BindData(c, &ids)
	if err == nil && len(ids) == 0 {
		err = errNoAnimalIDs
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	animals := make([]*models.Animal, 0, len(ids))
	for _, id := range ids {
		var animal models.Animal
		err := models.DB.First(&animal, id).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ClientResponse{
				Error: &s,
			})
			return
		}
		animals = append(animals, &animal)
	}

	err = models.DB.Model(&client).Omit("Favorites.*").Association("Favorites").Append(animals)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	client, err = loadClient(client.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	data := newClient(c, client)
	c.JSON(http.StatusOK, ClientResponse{Data: &data})
}

// @Summary		Remove favorite
// @Description	Removes an animal from the favorites of a client
// @Tags			Clients
// @Produce		json
// @Success		200			{object}	ClientResponse
// @Failure		400			{object}	ClientResponse
// @Failure		404			{object}	ClientResponse
// @Failure		500			{object}	ClientResponse
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			animalId	path		string	true	"ID of the animal"
// @Router			/v1/clients/{id}/favorites/{animalId} [delete]
func RemoveFavorite(c *gin.Context) {
	var uri URIFavorite
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	client, err := loadClient(uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	var animal models.Animal
	err = models.DB.First(&animal, uri.AnimalID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&client).Association("Favorites").Delete(&animal)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	client, err = loadClient(client.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	data := newClient(c, client)
	c.JSON(http.StatusOK, ClientResponse{Data: &data})
}

// loadClient loads a client with its favorites, sorted by name.
func loadClient(id uuid.UUID) (models.Client, error) {
	var client models.Client
	err := models.DB.Preload("Favorites", favoritesByName).First(&client, id).Error

	return client, err
}

func favoritesByName(db *gorm.DB) *gorm.DB {
	return db.Order("animals.name ASC")
}
