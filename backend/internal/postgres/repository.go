// Package postgres implements the relational repository for cities and
// their per-category scores.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"smartcity-explorer/backend/pkg/apperrors"
	"smartcity-explorer/backend/pkg/logger"
)

// allowedSortColumns restricts dynamic ORDER BY to known columns to prevent
// arbitrary-column injection. Disallowed values fall back to the default.
var allowedSortColumns = map[string]bool{
	"overall_score": true,
	"population":    true,
	"name":          true,
	"department":    true,
	"region":        true,
}

const defaultSortColumn = "overall_score"

// CityRow is the raw row shape returned by this repository. Services convert
// it into typed records at the boundary.
type CityRow struct {
	ID           int
	Name         string
	Department   string
	Region       string
	Population   int
	Description  string
	Latitude     float64
	Longitude    float64
	OverallScore float64
}

// ScoreRow is one per-category score row for a city
type ScoreRow struct {
	Category string
	Label    string
	Score    float64
}

// SearchFilters are the supported search parameters for SearchCities
type SearchFilters struct {
	Search        string
	Region        string
	Department    string
	MinPopulation *int
	SortBy        string
	SortOrder     string
	Page          int
	PageSize      int
}

// CityRepository runs read-only queries against the cities/scores schema
type CityRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewCityRepository creates a new relational repository
func NewCityRepository(pool *pgxpool.Pool) *CityRepository {
	return &CityRepository{
		pool:   pool,
		logger: logger.Get(),
	}
}

// SearchCities returns one page of matching cities plus the total match
// count. The total comes from a separate COUNT over the same predicate,
// independent of the page window.
func (r *CityRepository) SearchCities(ctx context.Context, filters SearchFilters) ([]CityRow, int, error) {
	where, args := buildSearchPredicate(filters)

	countSQL := "SELECT COUNT(*) FROM cities" + where
	var total int
	if err := r.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewStoreUnavailable(apperrors.ErrorTypePostgres, "count cities", err)
	}

	orderBy := sortColumn(filters.SortBy)
	direction := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		direction = "ASC"
	}

	offset := (filters.Page - 1) * filters.PageSize
	dataSQL := fmt.Sprintf(
		"SELECT id, name, department, region, population, overall_score "+
			"FROM cities%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		where, orderBy, direction, len(args)+1, len(args)+2,
	)
	args = append(args, filters.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, apperrors.NewStoreUnavailable(apperrors.ErrorTypePostgres, "search cities", err)
	}
	defer rows.Close()

	cities := make([]CityRow, 0, filters.PageSize)
	for rows.Next() {
		var c CityRow
		if err := rows.Scan(&c.ID, &c.Name, &c.Department, &c.Region, &c.Population, &c.OverallScore); err != nil {
			return nil, 0, apperrors.NewStoreUnavailable(apperrors.ErrorTypePostgres, "scan city row", err)
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewStoreUnavailable(apperrors.ErrorTypePostgres, "iterate city rows", err)
	}

	return cities, total, nil
}

// GetCityByID returns all detail columns for one city, or nil when no row
// matches. Absence is a normal outcome, not an error.
func (r *CityRepository) GetCityByID(ctx context.Context, cityID int) (*CityRow, error) {
	sql := "SELECT id, name, department, region, population, " +
		"COALESCE(description, ''), COALESCE(latitude, 0), COALESCE(longitude, 0), overall_score " +
		"FROM cities WHERE id = $1"

	var c CityRow
	err := r.pool.QueryRow(ctx, sql, cityID).Scan(
		&c.ID, &c.Name, &c.Department, &c.Region, &c.Population,
		&c.Description, &c.Latitude, &c.Longitude, &c.OverallScore,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(apperrors.ErrorTypePostgres, fmt.Sprintf("get city %d", cityID), err)
	}
	return &c, nil
}

// GetCityScores returns all score rows for a city ordered by category name.
// An empty slice means the city has no scores; it is not an error.
func (r *CityRepository) GetCityScores(ctx context.Context, cityID int) ([]ScoreRow, error) {
	sql := "SELECT category, COALESCE(label, ''), score FROM scores " +
		"WHERE city_id = $1 ORDER BY category"

	rows, err := r.pool.Query(ctx, sql, cityID)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(apperrors.ErrorTypePostgres, fmt.Sprintf("get scores for city %d", cityID), err)
	}
	defer rows.Close()

	scores := make([]ScoreRow, 0)
	for rows.Next() {
		var s ScoreRow
		if err := rows.Scan(&s.Category, &s.Label, &s.Score); err != nil {
			return nil, apperrors.NewStoreUnavailable(apperrors.ErrorTypePostgres, "scan score row", err)
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreUnavailable(apperrors.ErrorTypePostgres, "iterate score rows", err)
	}

	return scores, nil
}

// buildSearchPredicate assembles the WHERE clause and positional args shared
// by the count and data queries.
func buildSearchPredicate(filters SearchFilters) (string, []interface{}) {
	conditions := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filters.Region != "" {
		args = append(args, filters.Region)
		conditions = append(conditions, fmt.Sprintf("region = $%d", len(args)))
	}
	if filters.Department != "" {
		args = append(args, filters.Department)
		conditions = append(conditions, fmt.Sprintf("department = $%d", len(args)))
	}
	if filters.MinPopulation != nil {
		args = append(args, *filters.MinPopulation)
		conditions = append(conditions, fmt.Sprintf("population >= $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// sortColumn normalizes the requested sort column against the allow-list.
// Unknown columns silently fall back to the default rather than failing.
func sortColumn(requested string) string {
	if allowedSortColumns[requested] {
		return requested
	}
	return defaultSortColumn
}
