package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/habitat-fund/backend/internal/httperrors"
	"github.com/habitat-fund/backend/internal/models"
)

// @Summary		Delete everything
// @Description	Permanently deletes all resources
// @Tags			v1
// @Success		204
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			confirm	query		string	false	"Confirmation to delete all resources. Must have the value 'yes-please-delete-everything'"
// @Router			/v1 [delete]
func Cleanup(c *gin.Context) {
	var params struct {
		Confirm string `form:"confirm"`
	}

	err := c.Bind(&params)
	if err != nil || params.Confirm != "yes-please-delete-everything" {
		c.JSON(http.StatusBadRequest, httperrors.New(errCleanupConfirmation))
		return
	}

	// Use a transaction so that we can roll back if errors happen
	tx := models.DB.Begin()

	// The join table has no model, favorites are removed first
	err = tx.Exec("DELETE FROM client_favorites").Error
	if err != nil {
		tx.Rollback()
		c.JSON(status(err), httperrors.New(err))
		return
	}

	// models.Registry is ordered so that foreign keys are never violated
	for _, model := range models.Registry {
		err := tx.Unscoped().Where("true").Delete(&model).Error
		if err != nil {
			tx.Rollback()
			c.JSON(status(err), httperrors.New(err))
			return
		}
	}

	err = tx.Commit().Error
	if err != nil {
		c.JSON(status(err), httperrors.New(err))
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
