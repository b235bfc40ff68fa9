package service

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/reel/internal/domain"
)

// rankTitles reorders server search results by how closely their names
// match query. Ties keep the server order.
func rankTitles(titles []domain.Title, query string) []domain.Title {
	if len(titles) == 0 {
		return titles
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return titles
	}

	type scored struct {
		title domain.Title
		score int
	}

	scoredItems := make([]scored, len(titles))
	for i, t := range titles {
		scoredItems[i] = scored{title: t, score: matchScore(strings.ToLower(t.Name), query)}
	}

	sort.SliceStable(scoredItems, func(i, j int) bool {
		return scoredItems[i].score < scoredItems[j].score
	})

	results := make([]domain.Title, len(scoredItems))
	for i, s := range scoredItems {
		results[i] = s.title
	}
	return results
}

// matchScore ranks a lowercase name against a lowercase query.
// Lower score = better match
func matchScore(name, query string) int {
	if name == query {
		return 0
	}
	if strings.HasPrefix(name, query) {
		return 10
	}
	if strings.Contains(name, query) {
		return 50
	}
	return 100 + fuzzy.LevenshteinDistance(query, name)
}
