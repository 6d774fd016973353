// Package pattern derives learning-pattern observations from entry content.
package pattern

import (
	"strings"

	"github.com/qoder-labs/devmemory/internal/model"
)

// Observation is a single derived pattern: a stable key plus the description
// used if the pattern is being seen for the first time.
type Observation struct {
	Key         string
	Description string
}

// mistakeCategories maps content keywords to a mistake category. Checked in
// order; the first match wins.
var mistakeCategories = []struct {
	keyword  string
	category string
}{
	{"syntax", "syntax"},
	{"type", "typing"},
	{"import", "imports"},
	{"async", "async"},
	{"promise", "async"},
}

// Extract runs the heuristic rules over one entry and returns the derived
// observations. All matching is case-insensitive. Rules fire independently,
// so one entry can produce several observations; no match returns an empty
// slice. Extract never touches storage and never fails.
func Extract(content string, kind model.Kind, language string) []Observation {
	text := strings.ToLower(strings.TrimSpace(content))
	if text == "" {
		return nil
	}
	lang := strings.ToLower(strings.TrimSpace(language))

	var obs []Observation

	if lang != "" && strings.Contains(text, "async") && strings.Contains(text, "await") {
		obs = append(obs, Observation{
			Key:         "async_await_" + lang,
			Description: "frequently uses async/await in " + lang,
		})
	}

	if lang == "typescript" && strings.Contains(text, "interface") {
		obs = append(obs, Observation{
			Key:         "typescript_interfaces",
			Description: "frequently uses TypeScript interfaces",
		})
	}

	if kind == model.KindMistake {
		category := "general"
		for _, mc := range mistakeCategories {
			if strings.Contains(text, mc.keyword) {
				category = mc.category
				break
			}
		}
		obs = append(obs, Observation{
			Key:         "mistake_" + category,
			Description: "often makes " + category + " errors",
		})
	}

	if strings.Contains(text, "prefer") || strings.Contains(text, "like") {
		obs = append(obs, Observation{
			Key:         "preference_expression",
			Description: "has specific coding style preferences",
		})
	}

	return obs
}
