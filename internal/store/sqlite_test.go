package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/qoder-labs/devmemory/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	e, err := s.Insert(ctx, InsertParams{
		Kind:      model.KindInteraction,
		Content:   "refactored the auth middleware",
		FilePath:  "src/auth.ts",
		Language:  "typescript",
		Workspace: "webapp",
		Tags:      []string{"auth", "refactor"},
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if e.ID == "" {
		t.Error("expected non-empty ID")
	}
	if e.Importance != model.DefaultImportance {
		t.Errorf("expected default importance %d, got %d", model.DefaultImportance, e.Importance)
	}
	if e.Context.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	got, err := s.Query(ctx, QueryParams{Language: "typescript", FilePath: "src/auth.ts"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if got[0].ID != e.ID {
		t.Errorf("expected id %s, got %s", e.ID, got[0].ID)
	}
	if got[0].Content != "refactored the auth middleware" {
		t.Errorf("unexpected content %q", got[0].Content)
	}
	if got[0].Context.WorkspaceFolder != "webapp" {
		t.Errorf("unexpected workspace %q", got[0].Context.WorkspaceFolder)
	}
	if len(got[0].Tags) != 2 || got[0].Tags[0] != "auth" {
		t.Errorf("unexpected tags %v", got[0].Tags)
	}
	if !got[0].Context.Timestamp.Equal(e.Context.Timestamp) {
		t.Errorf("timestamp changed: stored %v, got %v", e.Context.Timestamp, got[0].Context.Timestamp)
	}
}

func TestInsertDefaultsKind(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	e, err := s.Insert(ctx, InsertParams{Content: "just a note"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if e.Kind != model.KindInteraction {
		t.Errorf("expected kind interaction, got %s", e.Kind)
	}
}

func TestInsertRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tests := []struct {
		name string
		p    InsertParams
	}{
		{"empty content", InsertParams{Kind: model.KindInteraction, Content: ""}},
		{"whitespace content", InsertParams{Kind: model.KindInteraction, Content: "   \n"}},
		{"importance too high", InsertParams{Content: "x", Importance: 11}},
		{"importance negative", InsertParams{Content: "x", Importance: -1}},
		{"unknown kind", InsertParams{Kind: "banana", Content: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Insert(ctx, tt.p)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}

	// A rejected insert must leave no trace: no entry row, no pattern.
	entries, err := s.Recent(ctx, 100)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries after rejections, got %d", len(entries))
	}
	patterns, err := s.Patterns(ctx)
	if err != nil {
		t.Fatalf("patterns: %v", err)
	}
	if len(patterns) != 0 {
		t.Errorf("expected no patterns after rejections, got %d", len(patterns))
	}
}

func TestInsertKeepsExplicitImportance(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, imp := range []int{1, 10} {
		e, err := s.Insert(ctx, InsertParams{Content: fmt.Sprintf("importance %d", imp), Importance: imp})
		if err != nil {
			t.Fatalf("insert importance %d: %v", imp, err)
		}
		if e.Importance != imp {
			t.Errorf("expected importance %d, got %d", imp, e.Importance)
		}
	}
}

func TestQueryFilters(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Insert(ctx, InsertParams{Kind: model.KindInteraction, Content: "ts one", Language: "typescript", FilePath: "a.ts"})
	s.Insert(ctx, InsertParams{Kind: model.KindMistake, Content: "ts two", Language: "typescript", FilePath: "a.ts"})
	s.Insert(ctx, InsertParams{Kind: model.KindSuccess, Content: "ts three", Language: "typescript", FilePath: "b.ts"})
	s.Insert(ctx, InsertParams{Kind: model.KindInteraction, Content: "go one", Language: "go", FilePath: "main.go"})

	byLang, _ := s.Query(ctx, QueryParams{Language: "typescript"})
	if len(byLang) != 3 {
		t.Errorf("language filter: expected 3, got %d", len(byLang))
	}

	byFile, _ := s.Query(ctx, QueryParams{Language: "typescript", FilePath: "a.ts"})
	if len(byFile) != 2 {
		t.Errorf("language+file filter: expected 2, got %d", len(byFile))
	}

	byKind, _ := s.Query(ctx, QueryParams{Kinds: []model.Kind{model.KindMistake, model.KindSuccess}})
	if len(byKind) != 2 {
		t.Errorf("kind filter: expected 2, got %d", len(byKind))
	}

	all, _ := s.Query(ctx, QueryParams{})
	if len(all) != 4 {
		t.Errorf("no filter: expected 4, got %d", len(all))
	}
}

func TestQueryOrdering(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Insert(ctx, InsertParams{Content: "low old", Importance: 3})
	time.Sleep(2 * time.Millisecond)
	s.Insert(ctx, InsertParams{Content: "high old", Importance: 9})
	time.Sleep(2 * time.Millisecond)
	s.Insert(ctx, InsertParams{Content: "high new", Importance: 9})

	got, err := s.Query(ctx, QueryParams{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3, got %d", len(got))
	}
	want := []string{"high new", "high old", "low old"}
	for i, w := range want {
		if got[i].Content != w {
			t.Errorf("position %d: expected %q, got %q", i, w, got[i].Content)
		}
	}
}

func TestQueryLimit(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for i := 0; i < 25; i++ {
		s.Insert(ctx, InsertParams{Content: fmt.Sprintf("entry %02d", i)})
	}

	got, _ := s.Query(ctx, QueryParams{})
	if len(got) != DefaultQueryLimit {
		t.Errorf("expected default cap %d, got %d", DefaultQueryLimit, len(got))
	}

	five, _ := s.Query(ctx, QueryParams{Limit: 5})
	if len(five) != 5 {
		t.Errorf("expected 5, got %d", len(five))
	}
}

func TestQueryEmptyResult(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	got, err := s.Query(ctx, QueryParams{Language: "cobol"})
	if err != nil {
		t.Fatalf("empty query must not error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d", len(got))
	}
}

func TestRecent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Insert(ctx, InsertParams{Content: "first", Importance: 10})
	time.Sleep(2 * time.Millisecond)
	s.Insert(ctx, InsertParams{Content: "second", Importance: 1})
	time.Sleep(2 * time.Millisecond)
	s.Insert(ctx, InsertParams{Content: "third", Importance: 1})

	got, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2, got %d", len(got))
	}
	// Newest first, importance ignored.
	if got[0].Content != "third" || got[1].Content != "second" {
		t.Errorf("unexpected order: %q, %q", got[0].Content, got[1].Content)
	}
}

func TestCloseIdempotent(t *testing.T) {
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second close must not error: %v", err)
	}
}

func TestMalformedTagsDegrade(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Insert(ctx, InsertParams{Content: "good entry", Tags: []string{"ok"}})

	// Corrupt row written behind the store's back.
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (id, kind, content, importance, timestamp, tags)
		 VALUES ('01BADROW', 'interaction', 'bad tags entry', 5, ?, '{not json')`,
		time.Now().UTC().Format(timeFormat))
	if err != nil {
		t.Fatalf("seed bad row: %v", err)
	}

	got, err := s.Query(ctx, QueryParams{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	for _, e := range got {
		if e.Content == "bad tags entry" && e.Tags != nil {
			t.Errorf("malformed tags should degrade to empty, got %v", e.Tags)
		}
	}
}
