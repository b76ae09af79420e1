package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecommendationRoutes handles the /recommendations endpoint
type RecommendationRoutes struct {
	service RecommendationService
	logger  *zap.Logger
}

// CityID is a pointer so that city_id=0 counts as present and goes through
// the normal lookup; only a missing parameter is a binding failure.
type recommendationQuery struct {
	CityID *int `form:"city_id" binding:"required"`
	K      int  `form:"k" binding:"omitempty,min=1,max=20"`
}

// Get handles GET /recommendations?city_id=&k=
func (r *RecommendationRoutes) Get(c *gin.Context) {
	var q recommendationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if q.K == 0 {
		q.K = 5
	}

	result, err := r.service.GetRecommendations(c.Request.Context(), *q.CityID, q.K)
	if err != nil {
		fail(c, r.logger, "Failed to fetch recommendations", err)
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "City not found"})
		return
	}

	c.JSON(http.StatusOK, result)
}
