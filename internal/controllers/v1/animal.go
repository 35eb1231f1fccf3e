package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/habitat-fund/backend/internal/httperrors"
	"github.com/habitat-fund/backend/internal/httputil"
	"github.com/habitat-fund/backend/internal/models"
)

// RegisterAnimalRoutes registers the routes for animals with
// the RouterGroup that is passed.
func RegisterAnimalRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsAnimalList)
		r.GET("", GetAnimals)
		r.POST("", CreateAnimals)
	}

	// Search
	{
		r.GET("/search", SearchAnimals)
		r.GET("/count", CountAnimals)
	}

	// Animal with ID
	{
		r.OPTIONS("/:id", OptionsAnimalDetail)
		r.GET("/:id", GetAnimal)
		r.DELETE("/:id", DeleteAnimal)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Animals
// @Success		204
// @Router			/v1/animals [options]
func OptionsAnimalList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Animals
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/animals/{id} [options]
func OptionsAnimalDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httperrors.New(err))
		return
	}

	err = models.DB.First(&models.Animal{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httperrors.New(err))
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Create animals
// @Description	Creates new animals
// @Tags			Animals
// @Produce		json
// @Success		201		{object}	AnimalCreateResponse
// @Failure		400		{object}	AnimalCreateResponse
// @Failure		404		{object}	AnimalCreateResponse
// @Failure		500		{object}	AnimalCreateResponse
// @Param			animals	body		[]AnimalEditable	true	"Animals"
// @Router			/v1/animals [post]
func CreateAnimals(c *gin.Context) {
	var editables []AnimalEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AnimalCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := AnimalCreateResponse{}

	for _, editable := range editables {
		animal := editable.model()

		if animal.HabitatID != nil {
			err = models.DB.First(&models.Habitat{}, *animal.HabitatID).Error
			if err != nil {
				status = r.appendError(err, status)
				continue
			}
		}

		err = models.DB.Create(&animal).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newAnimal(c, animal)
		r.Data = append(r.Data, AnimalResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get animals
// @Description	Returns a page of animals, ordered by name
// @Tags			Animals
// @Produce		json
// @Success		200		{object}	AnimalListResponse
// @Failure		400		{object}	AnimalListResponse
// @Failure		500		{object}	AnimalListResponse
// @Param			page	query		uint	false	"The page to return, starting at 0. Pages have 10 animals."
// @Router			/v1/animals [get]
func GetAnimals(c *gin.Context) {
	var query AnimalPageQuery
	err := c.ShouldBindQuery(&query)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, AnimalListResponse{
			Error: &s,
		})
		return
	}

	var p uint
	if query.Page != nil {
		p = *query.Page
	}

	animals, err := allAnimals()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AnimalListResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, animalPage(c, animals, p))
}

// @Summary		Search animals
// @Description	Returns a page of animals matching the search, ordered by name.
// @Description	NAME matches names containing the term, SPECIES matches the species exactly, GLOB matches names against a pattern with * wildcards.
// @Description	All searches are case insensitive.
// @Tags			Animals
// @Produce		json
// @Success		200		{object}	AnimalListResponse
// @Failure		400		{object}	AnimalListResponse
// @Failure		500		{object}	AnimalListResponse
// @Param			type	query		string	true	"NAME, SPECIES or GLOB"
// @Param			term	query		string	true	"The search term"
// @Param			page	query		uint	true	"The page to return, starting at 0. Pages have 10 animals."
// @Router			/v1/animals/search [get]
func SearchAnimals(c *gin.Context) {
	var query struct {
		AnimalSearchQuery
		AnimalPageQuery
	}
	err := c.ShouldBindQuery(&query)
	if err == nil && query.Page == nil {
		err = errPageMissing
	}
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, AnimalListResponse{
			Error: &s,
		})
		return
	}

	matches, err := query.matcher()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AnimalListResponse{
			Error: &s,
		})
		return
	}

	animals, err := allAnimals()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AnimalListResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, animalPage(c, filterAnimals(animals, matches), *query.Page))
}

// @Summary		Count animals
// @Description	Returns the number of animals matching the search. See the search endpoint for the search types.
// @Tags			Animals
// @Produce		json
// @Success		200		{object}	AnimalCountResponse
// @Failure		400		{object}	AnimalCountResponse
// @Failure		500		{object}	AnimalCountResponse
// @Param			type	query		string	true	"NAME, SPECIES or GLOB"
// @Param			term	query		string	true	"The search term"
// @Router			/v1/animals/count [get]
func CountAnimals(c *gin.Context) {
	var query AnimalSearchQuery
	err := c.ShouldBindQuery(&query)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, AnimalCountResponse{
			Error: &s,
		})
		return
	}

	matches, err := query.matcher()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AnimalCountResponse{
			Error: &s,
		})
		return
	}

	animals, err := allAnimals()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AnimalCountResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, AnimalCountResponse{
		Data: &AnimalCount{Count: len(filterAnimals(animals, matches))},
	})
}

// @Summary		Get animal
// @Description	Returns a specific animal
// @Tags			Animals
// @Produce		json
// @Success		200	{object}	AnimalResponse
// @Failure		400	{object}	AnimalResponse
// @Failure		404	{object}	AnimalResponse
// @Failure		500	{object}	AnimalResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/animals/{id} [get]
func GetAnimal(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AnimalResponse{
			Error: &s,
		})
		return
	}

	var animal models.Animal
	err = models.DB.First(&animal, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AnimalResponse{
			Error: &s,
		})
		return
	}

	data := newAnimal(c, animal)
	c.JSON(http.StatusOK, AnimalResponse{Data: &data})
}

// @Summary		Delete animal
// @Description	Deletes an animal. It is removed from the favorites of all clients.
// @Tags			Animals
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/animals/{id} [delete]
func DeleteAnimal(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httperrors.New(err))
		return
	}

	var animal models.Animal
	err = models.DB.First(&animal, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httperrors.New(err))
		return
	}

	err = models.DB.Model(&animal).Association("FavoritedBy").Clear()
	if err != nil {
		c.JSON(status(err), httperrors.New(err))
		return
	}

	err = models.DB.Delete(&animal).Error
	if err != nil {
		c.JSON(status(err), httperrors.New(err))
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// allAnimals returns all animals ordered by name.
func allAnimals() ([]models.Animal, error) {
	var animals []models.Animal
	err := models.DB.Order("name ASC").Order("id ASC").Find(&animals).Error
	return animals, err
}

func filterAnimals(animals []models.Animal, matches func(models.Animal) bool) []models.Animal {
	filtered := make([]models.Animal, 0)
	for _, a := range animals {
		if matches(a) {
			filtered = append(filtered, a)
		}
	}

	return filtered
}

func animalPage(c *gin.Context, animals []models.Animal, p uint) AnimalListResponse {
	selected := page(animals, p)

	data := make([]Animal, 0, len(selected))
	for _, animal := range selected {
		data = append(data, newAnimal(c, animal))
	}

	return AnimalListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  int64(len(animals)),
			Offset: p * animalPageSize,
			Limit:  animalPageSize,
		},
	}
}
