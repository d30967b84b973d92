package v1

import (
	"net/http"

	"github.com/financegenie/backend/internal/httputil"
	"github.com/financegenie/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterHealthzRoutes registers the healthz route with the
// RouterGroup that is passed.
func RegisterHealthzRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetHealthz)
}

// @Summary		Get health
// @Description	Returns the application health and, if not healthy, an error
// @Tags			General
// @Produce		json
// @Success		204
// @Failure		500	{object}	httpError
// @Router			/healthz [get]
func GetHealthz(c *gin.Context) {
	sqlDB, err := models.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
