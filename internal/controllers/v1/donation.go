package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/habitat-fund/backend/internal/donations"
	"github.com/habitat-fund/backend/internal/httperrors"
	"github.com/habitat-fund/backend/internal/httputil"
	"github.com/habitat-fund/backend/internal/metrics"
	"github.com/habitat-fund/backend/internal/models"
)

// RegisterDonationRoutes registers the routes for donations with
// the RouterGroup that is passed.
func RegisterDonationRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsDonationList)
		r.GET("", GetDonations)
		r.POST("", CreateDonation)
	}

	// Donation with ID
	{
		r.OPTIONS("/:id", OptionsDonationDetail)
		r.GET("/:id", GetDonation)
		r.OPTIONS("/:id/allocations", OptionsDonationAllocations)
		r.POST("/:id/allocations", CreateAllocations)
	}
}

func engine() *donations.Engine {
	return donations.NewEngine(donations.NewGormUnitOfWork(models.DB))
}

func reports() donations.Reports {
	return donations.NewReports(models.DB)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Donations
// @Success		204
// @Router			/v1/donations [options]
func OptionsDonationList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Donations
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/donations/{id} [options]
func OptionsDonationDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httperrors.New(err))
		return
	}

	err = models.DB.First(&models.Donation{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httperrors.New(err))
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Donations
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/donations/{id}/allocations [options]
func OptionsDonationAllocations(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Make donation
// @Description	Records a donation and splits its amount evenly between the named habitats.
// @Description	Every habitat is funded once, even if it is named multiple times.
// @Tags			Donations
// @Accept			json
// @Produce		json
// @Success		201			{object}	DonationResponse
// @Failure		400			{object}	DonationResponse
// @Failure		404			{object}	DonationResponse
// @Failure		409			{object}	DonationResponse
// @Failure		429			{object}	httperrors.HTTPError
// @Failure		500			{object}	DonationResponse
// @Param			donation	body		DonationEditable	true	"Donation"
// @Router			/v1/donations [post]
func CreateDonation(c *gin.Context) {
	var editable DonationEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DonationResponse{
			Error: &s,
		})
		return
	}

	id, err := engine().RecordDonation(c.Request.Context(), editable.request())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DonationResponse{
			Error: &s,
		})
		return
	}

	metrics.RecordDonation(editable.Category, editable.Amount)

	report, err := reports().Get(c.Request.Context(), id)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DonationResponse{
			Error: &s,
		})
		return
	}

	data := newDonation(c, report)
	c.JSON(http.StatusCreated, DonationResponse{Data: &data})
}

// @Summary		Apportion to donation
// @Description	Splits an additional amount of an existing donation evenly between the named habitats.
// @Description	Amounts for habitats the donation already funds are added to the existing allocation. The donation amount is not changed.
// @Tags			Donations
// @Accept			json
// @Produce		json
// @Success		200			{object}	DonationResponse
// @Failure		400			{object}	DonationResponse
// @Failure		404			{object}	DonationResponse
// @Failure		409			{object}	DonationResponse
// @Failure		429			{object}	httperrors.HTTPError
// @Failure		500			{object}	DonationResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			allocation	body		AllocationEditable	true	"Allocation"
// @Router			/v1/donations/{id}/allocations [post]
func CreateAllocations(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DonationResponse{
			Error: &s,
		})
		return
	}

	var editable AllocationEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DonationResponse{
			Error: &s,
		})
		return
	}

	err = engine().Apportion(c.Request.Context(), uri.ID.UUID, editable.Amount, editable.HabitatNames)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DonationResponse{
			Error: &s,
		})
		return
	}

	report, err := reports().Get(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DonationResponse{
			Error: &s,
		})
		return
	}

	data := newDonation(c, report)
	c.JSON(http.StatusOK, DonationResponse{Data: &data})
}

// @Summary		Get donations
// @Description	Returns a list of donations, oldest first
// @Tags			Donations
// @Produce		json
// @Success		200			{object}	DonationListResponse
// @Failure		400			{object}	DonationListResponse
// @Failure		500			{object}	DonationListResponse
// @Router			/v1/donations [get]
// @Param			donor		query	string	false	"Filter by username of the donor"
// @Param			anonymous	query	bool	false	"Only anonymous donations"
// @Param			category	query	string	false	"Filter by category"
// @Param			offset		query	uint	false	"The offset of the first donation returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of donations to return. Defaults to 50."
func GetDonations(c *gin.Context) {
	var filter DonationQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, DonationListResponse{
			Error: &s,
		})
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)
	limit := limit(setFields, filter.Limit)

	list, total, err := reports().List(c.Request.Context(), filter.filter(limit))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DonationListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Donation, 0, len(list))
	for _, report := range list {
		data = append(data, newDonation(c, report))
	}

	c.JSON(http.StatusOK, DonationListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  total,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get donation
// @Description	Returns a specific donation
// @Tags			Donations
// @Produce		json
// @Success		200	{object}	DonationResponse
// @Failure		400	{object}	DonationResponse
// @Failure		404	{object}	DonationResponse
// @Failure		500	{object}	DonationResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/donations/{id} [get]
func GetDonation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DonationResponse{
			Error: &s,
		})
		return
	}

	report, err := reports().Get(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DonationResponse{
			Error: &s,
		})
		return
	}

	data := newDonation(c, report)
	c.JSON(http.StatusOK, DonationResponse{Data: &data})
}
