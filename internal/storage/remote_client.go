// ABOUTME: HTTP client that reads journal entries from a remote journal API.
// ABOUTME: Fetched entries are sectioned models.JournalEntry values ready for extraction.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/2389-research/diary/internal/models"
)

// RemoteClient reads journal entries from a remote API.
type RemoteClient struct {
	apiURL string
	apiKey string
	teamID string
	client *http.Client
}

// NewRemoteClient creates a remote client with the given credentials.
func NewRemoteClient(apiURL, apiKey, teamID string) *RemoteClient {
	apiURL = strings.TrimRight(apiURL, "/")
	apiURL = strings.TrimSuffix(apiURL, "/v1")
	return &RemoteClient{
		apiURL: apiURL,
		apiKey: apiKey,
		teamID: teamID,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// remoteJournalEntryResponse maps a single journal entry from the remote API response.
type remoteJournalEntryResponse struct {
	ID        string            `json:"id"`
	TeamID    string            `json:"team_id"`
	Timestamp int64             `json:"timestamp"`
	CreatedAt string            `json:"created_at"`
	Sections  map[string]string `json:"sections"`
}

// remoteJournalListResponse is the top-level response envelope from GET /teams/{teamID}/journal/entries.
type remoteJournalListResponse struct {
	Entries    []remoteJournalEntryResponse `json:"entries"`
	TotalCount int                          `json:"total_count"`
	HasMore    bool                         `json:"has_more"`
	NextCursor string                       `json:"next_cursor"`
}

// ReadJournalEntries fetches journal entries from the remote API, in the
// order the API returns them. limit <= 0 leaves the page size to the server.
func (r *RemoteClient) ReadJournalEntries(ctx context.Context, limit int) ([]*models.JournalEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.apiURL+"/teams/"+r.teamID+"/journal/entries", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-api-key", r.apiKey)

	q := req.URL.Query()
	if limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", limit))
	}
	req.URL.RawQuery = q.Encode()

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote API request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("remote API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var listResp remoteJournalListResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	entries := make([]*models.JournalEntry, 0, len(listResp.Entries))
	for _, re := range listResp.Entries {
		entry := models.NewJournalEntry(re.Sections, models.EntryTypeRemote)
		// Keep the server's identity when it is a UUID; otherwise the generated one stands.
		if id, err := uuid.Parse(re.ID); err == nil {
			entry.ID = id
		}
		// Timestamp is Unix milliseconds; zero keeps the fetch time.
		if re.Timestamp > 0 {
			entry.CreatedAt = time.UnixMilli(re.Timestamp)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
