package v1

import (
	"net/http"
	"time"

	"github.com/financegenie/backend/internal/httputil"
	"github.com/financegenie/backend/internal/scheduler"
	"github.com/gin-gonic/gin"
)

// RegisterSchedulerRoutes registers the manual scan trigger with the
// RouterGroup that is passed. Only wired up in debug mode.
func RegisterSchedulerRoutes(r *gin.RouterGroup, sched *scheduler.Scheduler) {
	r.OPTIONS("/scan", httputil.OptionsPost)
	r.POST("/scan", TriggerScan(sched))
}

// @Summary		Trigger bill scan
// @Description	Runs a bill notification scan immediately instead of waiting for the next scheduled pass
// @Tags			Scheduler
// @Success		202
// @Router			/v1/scheduler/scan [post]
func TriggerScan(sched *scheduler.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		sched.RunScan(time.Now())
		c.JSON(http.StatusAccepted, nil)
	}
}
