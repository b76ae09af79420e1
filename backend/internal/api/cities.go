package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"smartcity-explorer/backend/internal/postgres"
)

// CityRoutes handles the /cities endpoints
type CityRoutes struct {
	service CityService
	logger  *zap.Logger
}

type cityListQuery struct {
	Search        string `form:"search"`
	Region        string `form:"region"`
	Department    string `form:"department"`
	MinPopulation *int   `form:"min_population" binding:"omitempty,min=0"`
	SortBy        string `form:"sort_by"`
	SortOrder     string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	Page          int    `form:"page" binding:"omitempty,min=1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// List handles GET /cities
func (r *CityRoutes) List(c *gin.Context) {
	var q cityListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = 20
	}
	if q.SortBy == "" {
		q.SortBy = "overall_score"
	}
	if q.SortOrder == "" {
		q.SortOrder = "desc"
	}

	result, err := r.service.SearchCities(c.Request.Context(), postgres.SearchFilters{
		Search:        q.Search,
		Region:        q.Region,
		Department:    q.Department,
		MinPopulation: q.MinPopulation,
		SortBy:        q.SortBy,
		SortOrder:     q.SortOrder,
		Page:          q.Page,
		PageSize:      q.PageSize,
	})
	if err != nil {
		fail(c, r.logger, "Failed to search cities", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Detail handles GET /cities/:id
func (r *CityRoutes) Detail(c *gin.Context) {
	cityID, ok := cityIDParam(c)
	if !ok {
		return
	}

	detail, err := r.service.GetCityDetail(c.Request.Context(), cityID)
	if err != nil {
		fail(c, r.logger, "Failed to fetch city detail", err)
		return
	}
	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "City not found"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Scores handles GET /cities/:id/scores
func (r *CityRoutes) Scores(c *gin.Context) {
	cityID, ok := cityIDParam(c)
	if !ok {
		return
	}

	scores, err := r.service.GetCityScores(c.Request.Context(), cityID)
	if err != nil {
		fail(c, r.logger, "Failed to fetch city scores", err)
		return
	}
	if scores == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "City not found"})
		return
	}

	c.JSON(http.StatusOK, scores)
}

// cityIDParam parses the :id path parameter, writing a 400 on failure
func cityIDParam(c *gin.Context) (int, bool) {
	cityID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid city id"})
		return 0, false
	}
	return cityID, true
}
