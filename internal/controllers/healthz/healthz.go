package healthz

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/habitat-fund/backend/internal/httperrors"
	"github.com/habitat-fund/backend/internal/httputil"
	"github.com/habitat-fund/backend/internal/models"
	"github.com/rs/zerolog/log"
)

var errDatabaseUnavailable = errors.New("the database is not reachable")

func RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", Options)
	r.GET("", Get)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/healthz [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get health
// @Description	Returns the application health and, if not healthy, an error
// @Tags			General
// @Produce		json
// @Success		200
// @Failure		503	{object}	httperrors.HTTPError
// @Router			/healthz [get]
func Get(c *gin.Context) {
	sqlDB, err := models.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}

	if err != nil {
		log.Error().Str("health", "database").Msg(err.Error())
		c.JSON(http.StatusServiceUnavailable, httperrors.New(errDatabaseUnavailable))
		return
	}

	c.Status(http.StatusOK)
}
