// ABOUTME: CLI commands for building a journal and extracting phone numbers from it.
// ABOUTME: Provides extract and entries subcommands with shared entry-ingestion flags.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/2389-research/diary/internal/extract"
	"github.com/2389-research/diary/internal/journal"
	"github.com/2389-research/diary/internal/storage"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file ...]",
	Short: "Extract phone numbers from journal entries",
	Long: `Build a journal from --entry flags, files ("-" for stdin), and optionally the
remote journal, then print each distinct phone number in first-seen order.`,
	RunE: runExtract,
}

var entriesCmd = &cobra.Command{
	Use:   "entries [file ...]",
	Short: "List the journal entries that extract would scan",
	Long:  "Build a journal with the same inputs as extract and print each entry with its index.",
	RunE:  runEntries,
}

// Flags
var (
	entryTexts    []string
	splitLines    bool
	includeRemote bool
	remoteLimit   int
	outputFormat  string
	showSources   bool
)

func init() {
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(entriesCmd)

	for _, cmd := range []*cobra.Command{extractCmd, entriesCmd} {
		cmd.Flags().StringArrayVarP(&entryTexts, "entry", "e", nil, "Entry text (repeatable)")
		cmd.Flags().BoolVar(&splitLines, "split-lines", false, "Treat each non-empty line of a file as its own entry")
		cmd.Flags().BoolVar(&includeRemote, "remote", false, "Append entries from the configured remote journal")
		cmd.Flags().IntVar(&remoteLimit, "remote-limit", 0, "Maximum number of remote entries to fetch (0 = server default)")
	}

	extractCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text, json, or yaml")
	extractCmd.Flags().BoolVar(&showSources, "sources", false, "Show the indices of the entries each number appears in")
}

func runExtract(cmd *cobra.Command, args []string) error {
	j, err := buildJournal(cmd, args)
	if err != nil {
		return err
	}

	extractor := extract.NewNumberExtractor(j)
	var result interface{}
	var count int
	if showSources {
		occurrences := extractor.Occurrences()
		result, count = occurrences, len(occurrences)
	} else {
		numbers := extractor.ExtractNumbers()
		result, count = numbers, len(numbers)
	}

	globalLogger.Info("numbers extracted", "session", j.ID.String(), "entries", j.Len(), "numbers", count)
	return renderNumbers(cmd.OutOrStdout(), outputFormat, result)
}

func runEntries(cmd *cobra.Command, args []string) error {
	j, err := buildJournal(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if j.Len() == 0 {
		_, err := fmt.Fprintln(out, "No entries found.")
		return err
	}
	for i, entry := range j.Entries() {
		if _, err := fmt.Fprintf(out, "[%d] %s\n", i, entry.Content()); err != nil {
			return err
		}
	}
	return nil
}

// buildJournal appends entries in a fixed order: --entry values, then each
// file argument, then remote entries.
func buildJournal(cmd *cobra.Command, args []string) (*journal.Journal, error) {
	j := journal.New()
	log := globalLogger.With("session", j.ID.String())

	for _, text := range entryTexts {
		j.AddText(text)
	}

	for _, path := range args {
		texts, err := readEntryFile(cmd.InOrStdin(), path, splitLines)
		if err != nil {
			return nil, err
		}
		for _, text := range texts {
			j.AddText(text)
		}
		log.Debug("entries read", "source", path, "count", len(texts))
	}

	if includeRemote {
		if !globalConfig.HasRemote() {
			return nil, fmt.Errorf("remote journal not configured (set remote.api_url, remote.api_key, remote.team_id)")
		}
		remote := storage.NewRemoteClient(globalConfig.Remote.APIURL, globalConfig.Remote.APIKey, globalConfig.Remote.TeamID)
		remoteEntries, err := remote.ReadJournalEntries(cmd.Context(), remoteLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch remote entries: %w", err)
		}
		for _, entry := range remoteEntries {
			j.Add(entry)
		}
		log.Debug("entries read", "source", "remote", "count", len(remoteEntries))
	}

	return j, nil
}

// readEntryFile reads path ("-" means stdin) as one entry, or as one entry per
// non-blank line when split is set.
func readEntryFile(stdin io.Reader, path string, split bool) ([]string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if !split {
		return []string{string(data)}, nil
	}
	return splitEntries(string(data)), nil
}

// splitEntries returns each non-blank line, with any trailing \r removed.
func splitEntries(text string) []string {
	var entries []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, line)
	}
	return entries
}

// renderNumbers writes either []string or []extract.Occurrence in the given format.
func renderNumbers(w io.Writer, format string, result interface{}) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case "text", "":
	default:
		return fmt.Errorf("unknown format %q (want text, json, or yaml)", format)
	}

	var lines []string
	switch v := result.(type) {
	case []string:
		lines = v
	case []extract.Occurrence:
		for _, o := range v {
			indices := make([]string, len(o.Entries))
			for i, idx := range o.Entries {
				indices[i] = fmt.Sprintf("%d", idx)
			}
			lines = append(lines, fmt.Sprintf("%s\tentries: %s", o.Number, strings.Join(indices, ",")))
		}
	default:
		return fmt.Errorf("unsupported result type %T", result)
	}

	if len(lines) == 0 {
		_, err := fmt.Fprintln(w, "No numbers found.")
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
