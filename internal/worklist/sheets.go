package worklist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultSheetsBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

// SheetClient reads cell ranges through the Sheets values API using a
// pre-issued API key.
type SheetClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewSheetClient builds a client; baseURL may be empty to use the public API.
func NewSheetClient(baseURL, apiKey string, httpClient *http.Client) *SheetClient {
	if baseURL == "" {
		baseURL = defaultSheetsBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &SheetClient{baseURL: baseURL, apiKey: apiKey, httpClient: httpClient}
}

type valuesResponse struct {
	Values [][]string `json:"values"`
}

// Fetch returns the cell contents of the given range, row-major.
func (c *SheetClient) Fetch(ctx context.Context, sheetID, rangeSpec string) ([][]string, error) {
	endpoint := fmt.Sprintf("%s/%s/values/%s", c.baseURL, url.PathEscape(sheetID), url.PathEscape(rangeSpec))
	if c.apiKey != "" {
		endpoint += "?key=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching sheet range: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("sheet fetch status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var vr valuesResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, fmt.Errorf("decoding sheet values: %w", err)
	}
	return vr.Values, nil
}
