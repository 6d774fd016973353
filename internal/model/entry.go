// Package model defines the core memory data types.
package model

import "time"

// Kind classifies a memory entry.
type Kind string

// Allowed entry kinds.
const (
	KindInteraction Kind = "interaction"
	KindMistake     Kind = "mistake"
	KindPattern     Kind = "pattern"
	KindPreference  Kind = "preference"
	KindSuccess     Kind = "success"
)

// ValidKinds are the allowed entry kinds.
var ValidKinds = map[Kind]bool{
	KindInteraction: true,
	KindMistake:     true,
	KindPattern:     true,
	KindPreference:  true,
	KindSuccess:     true,
}

// Importance bounds. A zero importance on input means "use the default".
const (
	MinImportance     = 1
	MaxImportance     = 10
	DefaultImportance = 5
)

// MaxPatternExamples caps the example snippets kept per learning pattern.
// The oldest snippet is evicted first.
const MaxPatternExamples = 10

// DefaultEffectiveness is the placeholder effectiveness score assigned to
// every new pattern. Nothing adjusts it automatically yet.
const DefaultEffectiveness = 5

// EntryContext captures where an entry was recorded.
type EntryContext struct {
	FilePath        string    `json:"file_path,omitempty"`
	Language        string    `json:"language,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
	WorkspaceFolder string    `json:"workspace_folder,omitempty"`
}

// MemoryEntry is one recorded interaction. Entries are append-only: once
// stored they are never modified.
type MemoryEntry struct {
	ID         string       `json:"id"`
	Kind       Kind         `json:"kind"`
	Content    string       `json:"content"`
	Context    EntryContext `json:"context"`
	Importance int          `json:"importance"`
	Tags       []string     `json:"tags,omitempty"`
}

// LearningPattern is a behavioral pattern derived from entries. Patterns are
// identified by PatternKey; re-observing a key bumps Frequency and LastUsed
// but never rewrites the Description.
type LearningPattern struct {
	ID            string    `json:"id"`
	PatternKey    string    `json:"pattern_key"`
	Description   string    `json:"description"`
	Examples      []string  `json:"examples,omitempty"`
	Frequency     int       `json:"frequency"`
	LastUsed      time.Time `json:"last_used"`
	Effectiveness int       `json:"effectiveness"`
}
