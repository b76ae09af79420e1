package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"smartcity-explorer/backend/internal/schema"
)

// ReviewRoutes handles the /cities/:id/reviews endpoints
type ReviewRoutes struct {
	service ReviewService
	logger  *zap.Logger
}

type reviewListQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=50"`
}

// List handles GET /cities/:id/reviews
func (r *ReviewRoutes) List(c *gin.Context) {
	cityID, ok := cityIDParam(c)
	if !ok {
		return
	}

	var q reviewListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = 10
	}

	result, err := r.service.GetReviews(c.Request.Context(), cityID, q.Page, q.PageSize)
	if err != nil {
		fail(c, r.logger, "Failed to fetch reviews", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Create handles POST /cities/:id/reviews. Malformed bodies (rating outside
// 1-5) are rejected here, before any service is touched.
func (r *ReviewRoutes) Create(c *gin.Context) {
	cityID, ok := cityIDParam(c)
	if !ok {
		return
	}

	var input schema.ReviewCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := r.service.CreateReview(c.Request.Context(), cityID, input)
	if err != nil {
		fail(c, r.logger, "Failed to create review", err)
		return
	}

	c.JSON(http.StatusCreated, review)
}
