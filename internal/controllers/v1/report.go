package v1

import (
	"net/http"
	"time"

	"github.com/financegenie/backend/internal/httputil"
	"github.com/financegenie/backend/internal/models"
	"github.com/financegenie/backend/internal/reports"
	"github.com/gin-gonic/gin"
)

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetDashboard)
}

type DashboardResponse struct {
	Data  *reports.Dashboard `json:"data"`
	Error *string            `json:"error"`
}

// @Summary		Get dashboard
// @Description	Returns the current year's aggregated stats and chart buckets for the logged in user
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	DashboardResponse
// @Failure		401	{object}	DashboardResponse
// @Failure		500	{object}	DashboardResponse
// @Router			/v1/dashboard [get]
func GetDashboard(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		e := errNotAuthenticated.Error()
		c.JSON(http.StatusUnauthorized, DashboardResponse{Error: &e})
		return
	}

	var transactions []models.Transaction
	err := models.DB.Where("user_id = ?", session.UserID).Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DashboardResponse{Error: &e})
		return
	}

	dashboard := reports.BuildDashboard(transactions, time.Now().UTC())
	c.JSON(http.StatusOK, DashboardResponse{Data: &dashboard})
}
