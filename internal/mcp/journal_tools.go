// ABOUTME: MCP tool implementations for the session journal.
// ABOUTME: Registers add_entry, list_entries, extract_numbers, import_remote_entries.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/diary/internal/extract"
)

func (s *Server) registerJournalTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "add_entry",
		Description: "Append a text entry to the session journal. Entries are kept in insertion order and never modified.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"content": {"type": "string", "description": "Entry text. May be empty."}
			},
			"required": ["content"]
		}`),
	}, s.handleAddEntry)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_entries",
		Description: "List every entry in the session journal with its index.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListEntries)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "extract_numbers",
		Description: "Extract distinct phone numbers (07 followed by 9 digits) from all entries, in order of first appearance.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"sources": {"type": "boolean", "description": "Include the indices of the entries each number appears in (default: false)"}
			}
		}`),
	}, s.handleExtractNumbers)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "import_remote_entries",
		Description: "Fetch entries from the configured remote journal and append them to the session journal.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"limit": {"type": "number", "description": "Maximum number of remote entries to fetch (default: server decides)"}
			}
		}`),
	}, s.handleImportRemoteEntries)
}

func (s *Server) handleAddEntry(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Content *string `json:"content"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.Content == nil {
		return toolError("content is required"), nil
	}

	s.mu.Lock()
	s.journal.AddText(*args.Content)
	index := s.journal.Len() - 1
	s.mu.Unlock()

	s.log.Debug("entry added", "index", index)
	return textResult(fmt.Sprintf("Entry %d added.", index)), nil
}

func (s *Server) handleListEntries(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	s.mu.RLock()
	entries := s.journal.Entries()
	s.mu.RUnlock()

	if len(entries) == 0 {
		return textResult("No entries yet."), nil
	}

	var sb strings.Builder
	for i, entry := range entries {
		sb.WriteString(fmt.Sprintf("[%d] %s\n", i, entry.Content()))
	}
	return textResult(sb.String()), nil
}

func (s *Server) handleExtractNumbers(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Sources bool `json:"sources"`
	}
	if len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
			return toolError("invalid arguments: %v", err), nil
		}
	}

	s.mu.RLock()
	snapshot := s.journal.Snapshot()
	s.mu.RUnlock()

	extractor := extract.NewNumberExtractor(snapshot)

	var sb strings.Builder
	if args.Sources {
		occurrences := extractor.Occurrences()
		for _, o := range occurrences {
			sb.WriteString(fmt.Sprintf("%s (entries: %s)\n", o.Number, joinInts(o.Entries)))
		}
		s.log.Info("numbers extracted", "entries", len(snapshot), "numbers", len(occurrences))
	} else {
		numbers := extractor.ExtractNumbers()
		for _, n := range numbers {
			sb.WriteString(n)
			sb.WriteString("\n")
		}
		s.log.Info("numbers extracted", "entries", len(snapshot), "numbers", len(numbers))
	}

	if sb.Len() == 0 {
		return textResult("No phone numbers found."), nil
	}
	return textResult(sb.String()), nil
}

func (s *Server) handleImportRemoteEntries(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	if s.remote == nil {
		return toolError("no remote journal configured"), nil
	}

	var args struct {
		Limit int `json:"limit"`
	}
	if len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
			return toolError("invalid arguments: %v", err), nil
		}
	}

	remoteEntries, err := s.remote.ReadJournalEntries(ctx, args.Limit)
	if err != nil {
		s.log.Warn("remote import failed", "error", err)
		return toolError("failed to fetch remote entries: %v", err), nil
	}

	s.mu.Lock()
	for _, entry := range remoteEntries {
		s.journal.Add(entry)
	}
	total := s.journal.Len()
	s.mu.Unlock()

	s.log.Info("remote entries imported", "count", len(remoteEntries))
	return textResult(fmt.Sprintf("Imported %d remote entries (%d total).", len(remoteEntries), total)), nil
}

// joinInts formats entry indices as a comma-separated list.
func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}

func textResult(text string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: text}},
	}
}

// toolError creates an error result for MCP tool responses.
func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
