package projection

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	httperr "github.com/playground-analytics/aggview/internal/core/errors"
)

// RegisterRoutes registers all projection API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/aggregates", s.HandleQueryAggregates)
	r.GET("/v1/aggregates/values/:field", s.HandleDistinctValues)
}

// HandleQueryAggregates handles GET /v1/aggregates
// Query parameters: start, end, metric, facet, plaything_name, filter_by, filter_value
func (s *Service) HandleQueryAggregates(c *gin.Context) {
	var req AggregateQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	resp, err := s.QueryAggregates(c.Request.Context(), req)
	if err != nil {
		writeQueryError(c, err, "Failed to query aggregates")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandleDistinctValues handles GET /v1/aggregates/values/:field[?plaything_name=]
func (s *Service) HandleDistinctValues(c *gin.Context) {
	field := c.Param("field")
	playthingName := c.Query("plaything_name")

	values, err := s.DistinctValues(c.Request.Context(), field, playthingName)
	if err != nil {
		writeQueryError(c, err, "Failed to query field values")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"field":  field,
		"values": values,
	})
}

func writeQueryError(c *gin.Context, err error, internalMsg string) {
	if errors.Is(err, ErrInvalidQuery) {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid aggregate query",
			Details:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
		ErrorType: httperr.HttpInternalError,
		Message:   internalMsg,
		Details:   err.Error(),
	})
}
