package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/habitat-fund/backend/internal/httperrors"
	"github.com/habitat-fund/backend/internal/httputil"
	"github.com/habitat-fund/backend/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterHabitatRoutes registers the routes for habitats with
// the RouterGroup that is passed.
func RegisterHabitatRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsHabitatList)
		r.GET("", GetHabitats)
		r.POST("", CreateHabitats)
	}

	// Habitat with ID
	{
		r.OPTIONS("/:id", OptionsHabitatDetail)
		r.GET("/:id", GetHabitat)
		r.PATCH("/:id", UpdateHabitat)
		r.DELETE("/:id", DeleteHabitat)
		r.OPTIONS("/:id/animals", OptionsHabitatAnimals)
		r.POST("/:id/animals", AssignAnimals)
	}

	// Habitat by name
	{
		r.GET("/by-name/:name", GetHabitatDetails)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Habitats
// @Success		204
// @Router			/v1/habitats [options]
func OptionsHabitatList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Habitats
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/habitats/{id} [options]
func OptionsHabitatDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httperrors.New(err))
		return
	}

	err = models.DB.First(&models.Habitat{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httperrors.New(err))
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Habitats
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/habitats/{id}/animals [options]
func OptionsHabitatAnimals(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Create habitats
// @Description	Creates new habitats
// @Tags			Habitats
// @Produce		json
// @Success		201			{object}	HabitatCreateResponse
// @Failure		400			{object}	HabitatCreateResponse
// @Failure		500			{object}	HabitatCreateResponse
// @Param			habitats	body		[]HabitatCreate	true	"Habitats"
// @Router			/v1/habitats [post]
func CreateHabitats(c *gin.Context) {
	var editables []HabitatCreate

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), HabitatCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := HabitatCreateResponse{}

	for _, editable := range editables {
		habitat := editable.model()

		err = models.DB.Create(&habitat).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newHabitat(c, habitat)
		r.Data = append(r.Data, HabitatResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get habitats
// @Description	Returns a list of habitats
// @Tags			Habitats
// @Produce		json
// @Success		200			{object}	HabitatListResponse
// @Failure		400			{object}	HabitatListResponse
// @Failure		500			{object}	HabitatListResponse
// @Router			/v1/habitats [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			description	query	string	false	"Filter by description"
// @Param			search		query	string	false	"Search for this text in name and description"
// @Param			offset		query	uint	false	"The offset of the first habitat returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of habitats to return. Defaults to 50."
func GetHabitats(c *gin.Context) {
	var filter HabitatQueryFilter
	err := c.ShouldBind(&filter)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, HabitatListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields that we are filtering for
	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.Order("name ASC")
	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Description, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	limit := limit(setFields, filter.Limit)
	q = q.Limit(limit)

	var habitats []models.Habitat
	err = q.Find(&habitats).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HabitatListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HabitatListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Habitat, 0, len(habitats))
	for _, habitat := range habitats {
		data = append(data, newHabitat(c, habitat))
	}

	c.JSON(http.StatusOK, HabitatListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get habitat
// @Description	Returns a specific habitat
// @Tags			Habitats
// @Produce		json
// @Success		200	{object}	HabitatResponse
// @Failure		400	{object}	HabitatResponse
// @Failure		404	{object}	HabitatResponse
// @Failure		500	{object}	HabitatResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/habitats/{id} [get]
func GetHabitat(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HabitatResponse{
			Error: &s,
		})
		return
	}

	var habitat models.Habitat
	err = models.DB.First(&habitat, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HabitatResponse{
			Error: &s,
		})
		return
	}

	data := newHabitat(c, habitat)
	c.JSON(http.StatusOK, HabitatResponse{Data: &data})
}

// @Summary		Get habitat details
// @Description	Returns a habitat with the names of its animals and donors
// @Tags			Habitats
// @Produce		json
// @Success		200		{object}	HabitatDetailsResponse
// @Failure		404		{object}	HabitatDetailsResponse
// @Failure		500		{object}	HabitatDetailsResponse
// @Param			name	path		string	true	"Name of the habitat"
// @Router			/v1/habitats/by-name/{name} [get]
func GetHabitatDetails(c *gin.Context) {
	var uri URIName
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HabitatDetailsResponse{
			Error: &s,
		})
		return
	}

	var habitat models.Habitat
	err = models.DB.Where("name = ?", uri.Name).First(&habitat).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HabitatDetailsResponse{
			Error: &s,
		})
		return
	}

	data, err := newHabitatDetails(c, models.DB, habitat)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HabitatDetailsResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, HabitatDetailsResponse{Data: &data})
}

// @Summary		Update habitat
// @Description	Update the name or description of an existing habitat. Only values to be updated need to be specified.
// @Tags			Habitats
// @Accept			json
// @Produce		json
// @Success		200		{object}	HabitatResponse
// @Failure		400		{object}	HabitatResponse
// @Failure		404		{object}	HabitatResponse
// @Failure		500		{object}	HabitatResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			habitat	body		HabitatEditable	true	"Habitat"
// @Router			/v1/habitats/{id} [patch]
func UpdateHabitat(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HabitatResponse{
			Error: &s,
		})
		return
	}

	var habitat models.Habitat
	err = models.DB.First(&habitat, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HabitatResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, HabitatEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HabitatResponse{
			Error: &s,
		})
		return
	}

	var data HabitatEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HabitatResponse{
			Error: &s,
		})
		return
	}

	// Hooks only validate on create
	if slices.Contains(updateFields, any("Name")) && data.model().Name == "" {
		s := models.ErrHabitatNameEmpty.Error()
		c.JSON(http.StatusBadRequest, HabitatResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&habitat).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HabitatResponse{
			Error: &s,
		})
		return
	}

	r := newHabitat(c, habitat)
	c.JSON(http.StatusOK, HabitatResponse{Data: &r})
}

// @Summary		Delete habitat
// @Description	Deletes a habitat. Donations to the habitat keep referencing it.
// @Tags			Habitats
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/habitats/{id} [delete]
func DeleteHabitat(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httperrors.New(err))
		return
	}

	var habitat models.Habitat
	err = models.DB.First(&habitat, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httperrors.New(err))
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		// Animals are moved out of the habitat
		err := tx.Model(&models.Animal{}).Where("habitat_id = ?", habitat.ID).Update("habitat_id", nil).Error
		if err != nil {
			return err
		}

		return tx.Delete(&habitat).Error
	})
	if err != nil {
		c.JSON(status(err), httperrors.New(err))
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Assign animals
// @Description	Moves animals into the habitat
// @Tags			Habitats
// @Accept			json
// @Produce		json
// @Success		200		{object}	HabitatDetailsResponse
// @Failure		400		{object}	HabitatDetailsResponse
// @Failure		404		{object}	HabitatDetailsResponse
// @Failure		500		{object}	HabitatDetailsResponse
// @Param			id		path		URIID		true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			animals	body		[]string	true	"IDs of the animals"
// @Router			/v1/habitats/{id}/animals [post]
func AssignAnimals(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HabitatDetailsResponse{
			Error: &s,
		})
		return
	}

	var habitat models.Habitat
	err = models.DB.First(&habitat, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HabitatDetailsResponse{
			Error: &s,
		})
		return
	}

	var ids []uuid.UUID
	err = httputil.BindData(c, &ids)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HabitatDetailsResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			var animal models.Animal
			err := tx.First(&animal, id).Error
			if err != nil {
				return err
			}

			err = tx.Model(&animal).Update("habitat_id", habitat.ID).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HabitatDetailsResponse{
			Error: &s,
		})
		return
	}

	data, err := newHabitatDetails(c, models.DB, habitat)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HabitatDetailsResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, HabitatDetailsResponse{Data: &data})
}
