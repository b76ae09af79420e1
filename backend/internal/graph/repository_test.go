package graph

import (
	"context"
	"os"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartcity-explorer/backend/pkg/apperrors"
)

// Integration tests require a running Neo4j instance.
// Set TEST_NEO4J_URI (and optionally TEST_NEO4J_USER / TEST_NEO4J_PASSWORD)
// to enable them.
func createTestDriver(t *testing.T) neo4j.DriverWithContext {
	t.Helper()
	uri := os.Getenv("TEST_NEO4J_URI")
	if uri == "" {
		t.Skip("TEST_NEO4J_URI not set, skipping integration test")
	}
	user := os.Getenv("TEST_NEO4J_USER")
	if user == "" {
		user = "neo4j"
	}
	password := os.Getenv("TEST_NEO4J_PASSWORD")
	if password == "" {
		password = "password"
	}

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	require.NoError(t, err)
	t.Cleanup(func() { _ = driver.Close(context.Background()) })
	return driver
}

func seedTestGraph(t *testing.T, driver neo4j.DriverWithContext) {
	t.Helper()
	ctx := context.Background()
	loader := NewLoader(driver)

	require.NoError(t, loader.Reset(ctx))
	require.NoError(t, loader.MergeCriteria(ctx, []string{"Transport", "Culture", "Environnement"}))

	cities := []CityNode{
		{CityID: 1, Name: "Lyon", Department: "Rhône", Region: "Auvergne-Rhône-Alpes", Population: 516092, OverallScore: 8.1},
		{CityID: 2, Name: "Marseille", Department: "Bouches-du-Rhône", Region: "PACA", Population: 870731, OverallScore: 7.2},
		{CityID: 3, Name: "Brest", Department: "Finistère", Region: "Bretagne", Population: 139456, OverallScore: 6.5},
	}
	for _, c := range cities {
		require.NoError(t, loader.MergeCity(ctx, c))
	}

	edges := []StrongIn{
		{CityID: 1, Criterion: "Transport"},
		{CityID: 1, Criterion: "Culture"},
		{CityID: 2, Criterion: "Transport"},
		{CityID: 2, Criterion: "Culture"},
		{CityID: 3, Criterion: "Environnement"},
	}
	for _, e := range edges {
		require.NoError(t, loader.CreateStrongIn(ctx, e))
	}

	require.NoError(t, loader.CreateSimilarEdges(ctx, []SimilarityEdge{
		{SourceID: 1, TargetID: 2, Score: 0.7},
		{SourceID: 2, TargetID: 1, Score: 0.7},
	}))
}

func TestGetSimilarCities(t *testing.T) {
	driver := createTestDriver(t)
	seedTestGraph(t, driver)

	repo := NewRepository(driver)
	ctx := context.Background()

	similar, err := repo.GetSimilarCities(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, similar, 1)

	assert.Equal(t, 2, similar[0].CityID)
	assert.Equal(t, "Marseille", similar[0].Name)
	assert.InDelta(t, 0.7, similar[0].SimilarityScore, 1e-9)
	assert.ElementsMatch(t, []string{"Transport", "Culture"}, similar[0].CommonStrengths)
}

func TestGetSimilarCities_MissingNodeYieldsEmpty(t *testing.T) {
	driver := createTestDriver(t)
	seedTestGraph(t, driver)

	repo := NewRepository(driver)
	similar, err := repo.GetSimilarCities(context.Background(), 9999, 5)
	require.NoError(t, err)
	assert.Empty(t, similar)
}

func TestGetCityStrengths(t *testing.T) {
	driver := createTestDriver(t)
	seedTestGraph(t, driver)

	repo := NewRepository(driver)
	ctx := context.Background()

	strengths, err := repo.GetCityStrengths(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Transport", "Culture"}, strengths)

	none, err := repo.GetCityStrengths(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLoaderReset_IsFullReplace(t *testing.T) {
	driver := createTestDriver(t)
	seedTestGraph(t, driver)
	// Seeding twice must leave the graph identical to seeding once
	seedTestGraph(t, driver)

	repo := NewRepository(driver)
	similar, err := repo.GetSimilarCities(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Len(t, similar, 1)
}

func TestGetSimilarCities_ClosedDriverYieldsGraphError(t *testing.T) {
	driver, err := neo4j.NewDriverWithContext("bolt://localhost:7687", neo4j.BasicAuth("neo4j", "password", ""))
	require.NoError(t, err)
	require.NoError(t, driver.Close(context.Background()))

	repo := NewRepository(driver)
	_, err = repo.GetSimilarCities(context.Background(), 1, 5)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeGraph),
		"store failures must carry the graph category")
}
