package schedule

import (
	"slices"
	"strings"

	"github.com/dsp-hub/workforce-manager/backend/internal/domain"
)

// Scorecard tiers order the roster: best drivers first, unknown tiers last.
var scoreCardPriority = map[domain.ScoreCard]int{
	domain.ScoreCardFantastic: 1,
	domain.ScoreCardGreat:     2,
	domain.ScoreCardFair:      3,
	domain.ScoreCardPoor:      4,
	domain.ScoreCardNewDA:     5,
}

const unknownScoreCardPriority = 6

func scoreCardRank(sc domain.ScoreCard) int {
	if p, ok := scoreCardPriority[sc]; ok {
		return p
	}
	return unknownScoreCardPriority
}

// SortEmployees returns a copy of employees ordered by scorecard priority.
// The sort is stable, so employees within the same tier keep their fetch
// order.
func SortEmployees(employees []*domain.Employee) []*domain.Employee {
	sorted := slices.Clone(employees)
	slices.SortStableFunc(sorted, func(a, b *domain.Employee) int {
		return scoreCardRank(a.ScoreCard) - scoreCardRank(b.ScoreCard)
	})
	return sorted
}

// FilterEmployees keeps employees whose "name familyName" contains query,
// case-insensitively, then re-sorts by scorecard priority. An empty query
// keeps everyone.
func FilterEmployees(employees []*domain.Employee, query string) []*domain.Employee {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return SortEmployees(employees)
	}

	matched := make([]*domain.Employee, 0, len(employees))
	for _, e := range employees {
		fullName := strings.ToLower(e.Name + " " + e.FamilyName)
		if strings.Contains(fullName, query) {
			matched = append(matched, e)
		}
	}
	return SortEmployees(matched)
}
