package pattern

import (
	"strings"
	"testing"

	"github.com/qoder-labs/devmemory/internal/model"
)

func keys(obs []Observation) []string {
	var ks []string
	for _, o := range obs {
		ks = append(ks, o.Key)
	}
	return ks
}

func hasKey(obs []Observation, key string) bool {
	for _, o := range obs {
		if o.Key == key {
			return true
		}
	}
	return false
}

func TestExtract_EmptyContent(t *testing.T) {
	if obs := Extract("", model.KindInteraction, "go"); obs != nil {
		t.Errorf("expected nil, got %v", obs)
	}
	if obs := Extract("   \n", model.KindInteraction, "go"); obs != nil {
		t.Errorf("expected nil for whitespace, got %v", obs)
	}
}

func TestExtract_NoMatch(t *testing.T) {
	obs := Extract("refactored the parser", model.KindInteraction, "go")
	if len(obs) != 0 {
		t.Errorf("expected no observations, got %v", keys(obs))
	}
}

func TestExtract_AsyncAwait(t *testing.T) {
	obs := Extract("converted the handler to async and added await", model.KindInteraction, "typescript")
	if !hasKey(obs, "async_await_typescript") {
		t.Fatalf("expected async_await_typescript, got %v", keys(obs))
	}
	for _, o := range obs {
		if o.Key == "async_await_typescript" {
			want := "frequently uses async/await in typescript"
			if o.Description != want {
				t.Errorf("description = %q, want %q", o.Description, want)
			}
		}
	}
}

func TestExtract_AsyncAwaitNeedsLanguage(t *testing.T) {
	obs := Extract("async and await everywhere", model.KindInteraction, "")
	if hasKey(obs, "async_await_") {
		t.Errorf("rule must not fire without a language, got %v", keys(obs))
	}
	for _, o := range obs {
		if strings.HasPrefix(o.Key, "async_await") {
			t.Errorf("rule must not fire without a language, got %v", keys(obs))
		}
	}
}

func TestExtract_AsyncAwaitNeedsBothKeywords(t *testing.T) {
	obs := Extract("made it async", model.KindInteraction, "python")
	if hasKey(obs, "async_await_python") {
		t.Errorf("rule needs both async and await, got %v", keys(obs))
	}
}

func TestExtract_CaseInsensitive(t *testing.T) {
	obs := Extract("Async function with AWAIT", model.KindInteraction, "TypeScript")
	if !hasKey(obs, "async_await_typescript") {
		t.Errorf("matching should be case-insensitive, got %v", keys(obs))
	}
}

func TestExtract_TypeScriptInterfaces(t *testing.T) {
	obs := Extract("added an interface for the config", model.KindInteraction, "typescript")
	if !hasKey(obs, "typescript_interfaces") {
		t.Fatalf("expected typescript_interfaces, got %v", keys(obs))
	}

	// Same content in another language must not fire the rule.
	obs = Extract("added an interface for the config", model.KindInteraction, "go")
	if hasKey(obs, "typescript_interfaces") {
		t.Errorf("rule is typescript-only, got %v", keys(obs))
	}
}

func TestExtract_MistakeCategories(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"syntax error on line 3", "mistake_syntax"},
		{"wrong type passed to the handler", "mistake_typing"},
		{"circular import broke the build", "mistake_imports"},
		{"forgot to resolve the promise", "mistake_async"},
		{"unhandled async rejection", "mistake_async"},
		{"off by one in the loop", "mistake_general"},
	}

	for _, tt := range tests {
		obs := Extract(tt.content, model.KindMistake, "")
		if !hasKey(obs, tt.want) {
			t.Errorf("Extract(%q) = %v, want key %s", tt.content, keys(obs), tt.want)
		}
	}
}

func TestExtract_MistakeFirstKeywordWins(t *testing.T) {
	// Contains both "syntax" and "type"; the syntax check runs first.
	obs := Extract("syntax error in the type annotation", model.KindMistake, "")
	if !hasKey(obs, "mistake_syntax") {
		t.Fatalf("expected mistake_syntax, got %v", keys(obs))
	}
	if hasKey(obs, "mistake_typing") {
		t.Errorf("only one mistake category per entry, got %v", keys(obs))
	}
}

func TestExtract_MistakeKindOnly(t *testing.T) {
	obs := Extract("syntax highlighting works now", model.KindSuccess, "")
	if hasKey(obs, "mistake_syntax") {
		t.Errorf("mistake rule must only fire for mistake entries, got %v", keys(obs))
	}
}

func TestExtract_Preference(t *testing.T) {
	for _, content := range []string{"I prefer tabs", "I like early returns"} {
		obs := Extract(content, model.KindPreference, "")
		if !hasKey(obs, "preference_expression") {
			t.Errorf("Extract(%q) = %v, want preference_expression", content, keys(obs))
		}
	}
}

func TestExtract_MultipleRulesFire(t *testing.T) {
	// A mistake mentioning async/await and a preference in typescript hits
	// three rules at once.
	obs := Extract("I prefer await over callbacks but keep forgetting async", model.KindMistake, "typescript")
	for _, want := range []string{"async_await_typescript", "mistake_async", "preference_expression"} {
		if !hasKey(obs, want) {
			t.Errorf("missing %s in %v", want, keys(obs))
		}
	}
}

func TestExtract_Deterministic(t *testing.T) {
	a := Extract("I prefer async/await in typescript", model.KindPreference, "typescript")
	b := Extract("I prefer async/await in typescript", model.KindPreference, "typescript")
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("observation %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}
