// ABOUTME: Phone number extraction across journal entries.
// ABOUTME: Scans entry text for 07 + 9 digit numbers and deduplicates in first-seen order.
package extract

import (
	"regexp"

	"github.com/2389-research/diary/internal/models"
)

// numberPattern matches "07" followed by exactly nine ASCII digits.
var numberPattern = regexp.MustCompile(`07[0-9]{9}`)

// Source supplies entries in a stable order.
type Source interface {
	Entries() []models.Entry
}

// Occurrence is a distinct number and the indices of the entries containing it.
type Occurrence struct {
	Number  string `json:"number" yaml:"number"`
	Entries []int  `json:"entries" yaml:"entries"`
}

// NumberExtractor reads a Source and never modifies it.
type NumberExtractor struct {
	source Source
}

// NewNumberExtractor creates an extractor over src.
func NewNumberExtractor(src Source) *NumberExtractor {
	return &NumberExtractor{source: src}
}

// FindNumbers returns every non-overlapping match in text, left to right.
func FindNumbers(text string) []string {
	return numberPattern.FindAllString(text, -1)
}

// ExtractNumbers returns the distinct numbers across all entries, ordered by
// first occurrence. The result is never nil.
func (x *NumberExtractor) ExtractNumbers() []string {
	numbers := []string{}
	seen := make(map[string]struct{})

	for _, entry := range x.source.Entries() {
		for _, n := range FindNumbers(entry.Content()) {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			numbers = append(numbers, n)
		}
	}
	return numbers
}

// Occurrences returns the same numbers as ExtractNumbers, each with the
// ascending indices of the entries it appeared in.
func (x *NumberExtractor) Occurrences() []Occurrence {
	occurrences := []Occurrence{}
	index := make(map[string]int)

	for i, entry := range x.source.Entries() {
		for _, n := range FindNumbers(entry.Content()) {
			pos, ok := index[n]
			if !ok {
				index[n] = len(occurrences)
				occurrences = append(occurrences, Occurrence{Number: n, Entries: []int{i}})
				continue
			}
			seenIn := occurrences[pos].Entries
			if seenIn[len(seenIn)-1] != i {
				occurrences[pos].Entries = append(seenIn, i)
			}
		}
	}
	return occurrences
}
