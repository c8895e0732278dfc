// ABOUTME: Core data models for diary entries.
// ABOUTME: Defines the Entry capability plus plain-text and sectioned journal entries.
package models

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is anything that carries journal text.
type Entry interface {
	Content() string
}

// TextEntry is a plain text journal record.
type TextEntry struct {
	content string
}

// NewTextEntry wraps content as an Entry.
func NewTextEntry(content string) TextEntry {
	return TextEntry{content: content}
}

// Content returns the entry text.
func (e TextEntry) Content() string {
	return e.content
}

// JournalEntry represents a sectioned journal entry, as served by a remote journal.
type JournalEntry struct {
	ID        uuid.UUID
	Sections  map[string]string // feelings, project_notes, user_context, technical_insights, world_knowledge
	CreatedAt time.Time
	Type      string // EntryTypeRemote for entries fetched over HTTP
}

// EntryTypeRemote marks entries read from the remote journal API.
const EntryTypeRemote = "remote"

// ValidSections lists the known journal section names in display order.
var ValidSections = []string{
	"feelings",
	"project_notes",
	"user_context",
	"technical_insights",
	"world_knowledge",
}

// IsValidSection returns true if the given section name is valid.
func IsValidSection(name string) bool {
	for _, s := range ValidSections {
		if s == name {
			return true
		}
	}
	return false
}

// NewJournalEntry creates a journal entry with generated UUID and timestamp.
// The sections map is copied.
func NewJournalEntry(sections map[string]string, entryType string) *JournalEntry {
	copied := make(map[string]string, len(sections))
	for name, text := range sections {
		copied[name] = text
	}
	return &JournalEntry{
		ID:        uuid.New(),
		Sections:  copied,
		CreatedAt: time.Now(),
		Type:      entryType,
	}
}

// Content joins the non-empty sections, known sections first in ValidSections
// order and any others sorted by name, separated by a blank line.
func (e *JournalEntry) Content() string {
	var parts []string
	for _, name := range ValidSections {
		if text := e.Sections[name]; text != "" {
			parts = append(parts, text)
		}
	}

	var extra []string
	for name, text := range e.Sections {
		if !IsValidSection(name) && text != "" {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		parts = append(parts, e.Sections[name])
	}

	return strings.Join(parts, "\n\n")
}
