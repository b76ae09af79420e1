package seed

import (
	"sort"

	"smartcity-explorer/backend/internal/graph"
)

// StrongThreshold is the score at or above which a city is considered strong
// in a criterion. Fixed business rule, not configurable at request time.
const StrongThreshold = 7.0

// CriterionName picks the graph node name for a score row: the display label
// when present, otherwise the category key.
func CriterionName(score ScoreRecord) string {
	if score.Label != "" {
		return score.Label
	}
	return score.Category
}

// StrongInEdges derives the STRONG_IN edges from score rows: one edge per
// (city, criterion) pair whose score meets the threshold.
func StrongInEdges(scores []ScoreRecord) []graph.StrongIn {
	seen := make(map[graph.StrongIn]bool)
	edges := make([]graph.StrongIn, 0)
	for _, score := range scores {
		if score.Score < StrongThreshold {
			continue
		}
		edge := graph.StrongIn{CityID: score.CityID, Criterion: CriterionName(score)}
		if seen[edge] {
			continue
		}
		seen[edge] = true
		edges = append(edges, edge)
	}
	return edges
}

// DeriveSimilarities computes the SIMILAR_TO edges from the STRONG_IN set:
// for every unordered pair of cities sharing at least one criterion, two
// directed edges with weight 0.5 + 0.1 x shared count. The weight is left
// uncapped, matching the documented seeding formula.
func DeriveSimilarities(strongIn []graph.StrongIn) []graph.SimilarityEdge {
	criteriaByCity := make(map[int]map[string]bool)
	for _, edge := range strongIn {
		if criteriaByCity[edge.CityID] == nil {
			criteriaByCity[edge.CityID] = make(map[string]bool)
		}
		criteriaByCity[edge.CityID][edge.Criterion] = true
	}

	cityIDs := make([]int, 0, len(criteriaByCity))
	for id := range criteriaByCity {
		cityIDs = append(cityIDs, id)
	}
	sort.Ints(cityIDs)

	edges := make([]graph.SimilarityEdge, 0)
	for i := 0; i < len(cityIDs); i++ {
		for j := i + 1; j < len(cityIDs); j++ {
			a, b := cityIDs[i], cityIDs[j]
			shared := 0
			for criterion := range criteriaByCity[a] {
				if criteriaByCity[b][criterion] {
					shared++
				}
			}
			if shared == 0 {
				continue
			}
			score := 0.5 + 0.1*float64(shared)
			edges = append(edges,
				graph.SimilarityEdge{SourceID: a, TargetID: b, Score: score},
				graph.SimilarityEdge{SourceID: b, TargetID: a, Score: score},
			)
		}
	}
	return edges
}
