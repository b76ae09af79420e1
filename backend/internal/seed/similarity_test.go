package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartcity-explorer/backend/internal/graph"
)

func TestStrongInEdges_ThresholdIsInclusive(t *testing.T) {
	scores := []ScoreRecord{
		{CityID: 1, Category: "transport", Label: "Transport", Score: 7.0},
		{CityID: 1, Category: "culture", Label: "Culture", Score: 6.9},
		{CityID: 2, Category: "transport", Label: "Transport", Score: 9.5},
	}

	edges := StrongInEdges(scores)

	assert.Equal(t, []graph.StrongIn{
		{CityID: 1, Criterion: "Transport"},
		{CityID: 2, Criterion: "Transport"},
	}, edges, "6.9 must not produce an edge; 7.0 must")
}

func TestStrongInEdges_FallsBackToCategoryKey(t *testing.T) {
	scores := []ScoreRecord{
		{CityID: 1, Category: "environnement", Label: "", Score: 8.0},
	}
	edges := StrongInEdges(scores)
	require.Len(t, edges, 1)
	assert.Equal(t, "environnement", edges[0].Criterion)
}

func TestDeriveSimilarities_WeightFormula(t *testing.T) {
	strongIn := []graph.StrongIn{
		{CityID: 1, Criterion: "Transport"},
		{CityID: 1, Criterion: "Culture"},
		{CityID: 2, Criterion: "Transport"},
		{CityID: 2, Criterion: "Culture"},
		{CityID: 3, Criterion: "Environnement"},
	}

	edges := DeriveSimilarities(strongIn)

	// Cities 1 and 2 share two criteria; city 3 shares none with anyone
	require.Len(t, edges, 2, "one unordered pair, edges in both directions")
	assert.Equal(t, 1, edges[0].SourceID)
	assert.Equal(t, 2, edges[0].TargetID)
	assert.InDelta(t, 0.7, edges[0].Score, 1e-9)
	assert.Equal(t, 2, edges[1].SourceID)
	assert.Equal(t, 1, edges[1].TargetID)
	assert.InDelta(t, 0.7, edges[1].Score, 1e-9)
}

func TestDeriveSimilarities_WeightIsUncapped(t *testing.T) {
	criteria := []string{"a", "b", "c", "d", "e", "f"}
	strongIn := make([]graph.StrongIn, 0, 12)
	for _, c := range criteria {
		strongIn = append(strongIn,
			graph.StrongIn{CityID: 1, Criterion: c},
			graph.StrongIn{CityID: 2, Criterion: c},
		)
	}

	edges := DeriveSimilarities(strongIn)
	require.Len(t, edges, 2)
	// 0.5 + 0.1 * 6 = 1.1; the documented formula, deliberately not clamped
	assert.InDelta(t, 1.1, edges[0].Score, 1e-9)
}

func TestDeriveSimilarities_NoSharedCriteria(t *testing.T) {
	strongIn := []graph.StrongIn{
		{CityID: 1, Criterion: "Transport"},
		{CityID: 2, Criterion: "Culture"},
	}
	assert.Empty(t, DeriveSimilarities(strongIn))
}
