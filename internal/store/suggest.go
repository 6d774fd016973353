package store

import (
	"context"
	"sort"
	"strings"

	"github.com/qoder-labs/devmemory/internal/model"
)

// Ranker caps: up to 5 pattern lines and 3 mistake lines, 8 lines total.
const (
	maxPatternSuggestions = 5
	maxMistakeSuggestions = 3
	maxSuggestions        = 8
)

// Suggestions returns ranked, human-readable suggestion strings for the given
// context. The output is deterministic for identical stored state and params;
// an empty store yields an empty slice.
func (s *SQLiteStore) Suggestions(ctx context.Context, p SuggestParams) ([]string, error) {
	patterns, err := s.Patterns(ctx)
	if err != nil {
		return nil, err
	}
	mistakes, err := s.Query(ctx, QueryParams{
		Language: p.Language,
		FilePath: p.FilePath,
		Kinds:    []model.Kind{model.KindMistake},
		Limit:    maxMistakeSuggestions,
	})
	if err != nil {
		return nil, err
	}
	return buildSuggestions(patterns, mistakes, p.Language), nil
}

// buildSuggestions applies the fixed ranking rules over already-fetched
// state. Shared by both backends so ranking cannot drift between them.
//
// A pattern is a candidate when its key mentions the language, or when it is
// both frequent (>2) and effective (>6). Candidates are ordered by
// frequency*effectiveness; mistakes keep the entry-query order.
func buildSuggestions(patterns []model.LearningPattern, mistakes []model.MemoryEntry, language string) []string {
	lang := strings.ToLower(strings.TrimSpace(language))

	var candidates []model.LearningPattern
	for _, p := range patterns {
		byLanguage := lang != "" && strings.Contains(p.PatternKey, lang)
		byStrength := p.Frequency > 2 && p.Effectiveness > 6
		if byLanguage || byStrength {
			candidates = append(candidates, p)
		}
	}

	// Stable sort keeps the deterministic base order on score ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Frequency*candidates[i].Effectiveness >
			candidates[j].Frequency*candidates[j].Effectiveness
	})
	if len(candidates) > maxPatternSuggestions {
		candidates = candidates[:maxPatternSuggestions]
	}

	suggestions := []string{}
	for _, p := range candidates {
		suggestions = append(suggestions, "Based on your coding patterns: "+p.Description)
	}
	for _, m := range mistakes {
		suggestions = append(suggestions, "Remember: "+m.Content)
	}
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
