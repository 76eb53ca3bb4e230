package aggregation

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httperr "github.com/playground-analytics/aggview/internal/core/errors"
)

// RegisterRoutes exposes the manual "run once" trigger.
func (j *Job) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/aggregation/run", j.HandleRun)
}

// HandleRun handles POST /v1/aggregation/run.
// Concurrent requests in the same process share one run.
func (j *Job) HandleRun(c *gin.Context) {
	res, shared, err := j.Trigger(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpAggregationFailedError,
			Message:   "Aggregation run failed",
			Details: gin.H{
				"error":  err.Error(),
				"result": res,
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": res,
		"shared": shared,
	})
}
