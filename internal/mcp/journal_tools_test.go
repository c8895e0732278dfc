// ABOUTME: Tests for journal MCP tool handlers.
// ABOUTME: Covers add_entry, list_entries, extract_numbers, import_remote_entries.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/diary/internal/journal"
	"github.com/2389-research/diary/internal/storage"
)

func makeJournalServer(t *testing.T, opts ...ServerOption) *Server {
	t.Helper()
	server, err := NewServer(journal.New(), "test", opts...)
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	return server
}

func callTool(t *testing.T, s *Server, name string, args interface{}) *gomcp.CallToolResult {
	t.Helper()
	argsJSON, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("failed to marshal args: %v", err)
	}

	req := &gomcp.CallToolRequest{
		Params: &gomcp.CallToolParamsRaw{
			Name:      name,
			Arguments: argsJSON,
		},
	}

	// Call the handler methods directly based on tool name
	ctx := context.Background()

	var result *gomcp.CallToolResult
	switch name {
	case "add_entry":
		result, err = s.handleAddEntry(ctx, req)
	case "list_entries":
		result, err = s.handleListEntries(ctx, req)
	case "extract_numbers":
		result, err = s.handleExtractNumbers(ctx, req)
	case "import_remote_entries":
		result, err = s.handleImportRemoteEntries(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return result
}

func getTextContent(result *gomcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	if tc, ok := result.Content[0].(*gomcp.TextContent); ok {
		return tc.Text
	}
	return ""
}

func TestAddEntry(t *testing.T) {
	s := makeJournalServer(t)

	result := callTool(t, s, "add_entry", map[string]string{"content": "call me at 07123456789 please"})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}
	if text := getTextContent(result); !strings.Contains(text, "Entry 0 added") {
		t.Errorf("expected index 0 in response, got: %s", text)
	}

	result = callTool(t, s, "add_entry", map[string]string{"content": ""})
	if result.IsError {
		t.Fatalf("expected empty content to be accepted, got: %s", getTextContent(result))
	}
	if text := getTextContent(result); !strings.Contains(text, "Entry 1 added") {
		t.Errorf("expected index 1 in response, got: %s", text)
	}
	if s.journal.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", s.journal.Len())
	}
}

func TestAddEntryRequiresContent(t *testing.T) {
	s := makeJournalServer(t)

	result := callTool(t, s, "add_entry", map[string]string{})
	if !result.IsError {
		t.Error("expected error when content is missing")
	}
	if !strings.Contains(getTextContent(result), "content is required") {
		t.Errorf("expected 'content is required', got: %s", getTextContent(result))
	}
}

func TestAddEntryInvalidArguments(t *testing.T) {
	s := makeJournalServer(t)

	result := callTool(t, s, "add_entry", map[string]int{"content": 7})
	if !result.IsError {
		t.Error("expected error for non-string content")
	}
}

func TestListEntries(t *testing.T) {
	s := makeJournalServer(t)

	result := callTool(t, s, "list_entries", map[string]string{})
	if text := getTextContent(result); !strings.Contains(text, "No entries yet") {
		t.Errorf("expected 'No entries yet', got: %s", text)
	}

	callTool(t, s, "add_entry", map[string]string{"content": "first"})
	callTool(t, s, "add_entry", map[string]string{"content": "second"})

	text := getTextContent(callTool(t, s, "list_entries", map[string]string{}))
	if !strings.Contains(text, "[0] first") || !strings.Contains(text, "[1] second") {
		t.Errorf("expected indexed entries, got: %s", text)
	}
	if strings.Index(text, "first") > strings.Index(text, "second") {
		t.Errorf("expected insertion order, got: %s", text)
	}
}

func TestExtractNumbers(t *testing.T) {
	s := makeJournalServer(t)
	callTool(t, s, "add_entry", map[string]string{"content": "a 07111111111 b"})
	callTool(t, s, "add_entry", map[string]string{"content": "c 07222222222 d 07111111111"})

	result := callTool(t, s, "extract_numbers", map[string]interface{}{})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}
	if text := getTextContent(result); text != "07111111111\n07222222222\n" {
		t.Errorf("unexpected numbers: %q", text)
	}
}

func TestExtractNumbersWithSources(t *testing.T) {
	s := makeJournalServer(t)
	callTool(t, s, "add_entry", map[string]string{"content": "07111111111"})
	callTool(t, s, "add_entry", map[string]string{"content": "nothing here"})
	callTool(t, s, "add_entry", map[string]string{"content": "07111111111 07222222222"})

	text := getTextContent(callTool(t, s, "extract_numbers", map[string]bool{"sources": true}))
	want := "07111111111 (entries: 0, 2)\n07222222222 (entries: 2)\n"
	if text != want {
		t.Errorf("got %q, want %q", text, want)
	}
}

func TestExtractNumbersNone(t *testing.T) {
	s := makeJournalServer(t)
	callTool(t, s, "add_entry", map[string]string{"content": "short 0712345"})

	text := getTextContent(callTool(t, s, "extract_numbers", map[string]interface{}{}))
	if !strings.Contains(text, "No phone numbers found") {
		t.Errorf("expected 'No phone numbers found', got: %s", text)
	}
}

func TestExtractNumbersConcurrentWithAdds(t *testing.T) {
	s := makeJournalServer(t)

	request := func(args string) *gomcp.CallToolRequest {
		return &gomcp.CallToolRequest{Params: &gomcp.CallToolParamsRaw{Arguments: json.RawMessage(args)}}
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, _ = s.handleAddEntry(context.Background(), request(fmt.Sprintf(`{"content":"07%09d"}`, i)))
		}(i)
		go func() {
			defer wg.Done()
			_, _ = s.handleExtractNumbers(context.Background(), request(`{}`))
		}()
	}
	wg.Wait()

	text := getTextContent(callTool(t, s, "extract_numbers", map[string]interface{}{}))
	if got := strings.Count(text, "\n"); got != 20 {
		t.Errorf("expected 20 numbers, got %d:\n%s", got, text)
	}
}

func TestImportRemoteEntriesNotConfigured(t *testing.T) {
	s := makeJournalServer(t)

	result := callTool(t, s, "import_remote_entries", map[string]interface{}{})
	if !result.IsError {
		t.Error("expected error when no remote is configured")
	}
}

func TestImportRemoteEntries(t *testing.T) {
	var receivedQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"entries":[
			{"id":"remote-1","timestamp":1717243845123,"sections":{"feelings":"rang 07333333333"}},
			{"id":"remote-2","timestamp":1717243900000,"sections":{"user_context":"no numbers"}}
		]}`))
	}))
	defer server.Close()

	s := makeJournalServer(t, WithRemoteClient(storage.NewRemoteClient(server.URL, "key", "team")))
	callTool(t, s, "add_entry", map[string]string{"content": "local 07111111111"})

	result := callTool(t, s, "import_remote_entries", map[string]int{"limit": 2})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}
	if text := getTextContent(result); !strings.Contains(text, "Imported 2 remote entries (3 total)") {
		t.Errorf("unexpected import response: %s", text)
	}
	if !strings.Contains(receivedQuery, "limit=2") {
		t.Errorf("expected limit=2 in query, got %q", receivedQuery)
	}

	text := getTextContent(callTool(t, s, "extract_numbers", map[string]interface{}{}))
	if text != "07111111111\n07333333333\n" {
		t.Errorf("unexpected numbers after import: %q", text)
	}
}

func TestImportRemoteEntriesFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("bad key"))
	}))
	defer server.Close()

	s := makeJournalServer(t, WithRemoteClient(storage.NewRemoteClient(server.URL, "key", "team")))

	result := callTool(t, s, "import_remote_entries", map[string]interface{}{})
	if !result.IsError {
		t.Fatal("expected error result for 401 response")
	}
	if !strings.Contains(getTextContent(result), "401") {
		t.Errorf("expected status in error, got: %s", getTextContent(result))
	}
	if s.journal.Len() != 0 {
		t.Errorf("expected journal untouched, got %d entries", s.journal.Len())
	}
}
