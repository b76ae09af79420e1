// Package schema defines the request/response records shared between the
// API and its callers.
package schema

import "time"

// HealthResponse is the fixed liveness probe payload
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ScoreCategory is a single per-category score for a city
type ScoreCategory struct {
	Category string  `json:"category"`
	Label    string  `json:"label"`
	Score    float64 `json:"score"`
}

// CityScores carries a city's per-category scores plus its stored overall
// score. The overall value is read as stored, never recomputed from the
// category rows.
type CityScores struct {
	CityID  int             `json:"city_id"`
	Scores  []ScoreCategory `json:"scores"`
	Overall float64         `json:"overall"`
}

// City is the summary record used in lists and search results
type City struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Department   string  `json:"department"`
	Region       string  `json:"region"`
	Population   int     `json:"population"`
	OverallScore float64 `json:"overall_score"`
}

// CityDetail is the full city record assembled at request time from two
// independent lookups; it is never persisted as a joined object.
type CityDetail struct {
	City
	Description string          `json:"description"`
	Latitude    float64         `json:"latitude"`
	Longitude   float64         `json:"longitude"`
	Scores      []ScoreCategory `json:"scores"`
}

// CityListResponse is one page of city summaries with the total match count
type CityListResponse struct {
	Cities   []City `json:"cities"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// Review is a user review as exposed by the API. The id is the document
// store's identifier rendered as a plain string.
type Review struct {
	ID        string    `json:"id"`
	CityID    int       `json:"city_id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewCreate is the validated input for submitting a review
type ReviewCreate struct {
	Author  string   `json:"author" binding:"max=100"`
	Rating  int      `json:"rating" binding:"required,min=1,max=5"`
	Comment string   `json:"comment" binding:"max=2000"`
	Tags    []string `json:"tags"`
}

// ReviewsResponse is one page of reviews with the total match count
type ReviewsResponse struct {
	Reviews []Review `json:"reviews"`
	Total   int      `json:"total"`
}

// RecommendationItem pairs a similar city with its similarity score and the
// criteria both cities are strong in
type RecommendationItem struct {
	City            City     `json:"city"`
	SimilarityScore float64  `json:"similarity_score"`
	CommonStrengths []string `json:"common_strengths"`
}

// RecommendationsResponse pairs the source city's name with the ranked
// recommendation list
type RecommendationsResponse struct {
	SourceCity      string               `json:"source_city"`
	Recommendations []RecommendationItem `json:"recommendations"`
}
