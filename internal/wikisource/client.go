// Package wikisource talks to a MediaWiki-compatible wiki carrying proofread
// page extensions: bot login, index page resolution, and page saves.
package wikisource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// Client is an authenticated API client for one wiki.
type Client struct {
	apiURL     string
	httpClient *http.Client
	log        *slog.Logger
	cache      *IndexCache
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithIndexCache enables on-disk caching of index page resolutions.
func WithIndexCache(cache *IndexCache) Option {
	return func(c *Client) { c.cache = cache }
}

// NewClient creates a client for the given api.php endpoint. Cookies are kept
// across calls so a single login covers the whole batch.
func NewClient(apiURL string, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tokenResponse struct {
	Query struct {
		Tokens map[string]string `json:"tokens"`
	} `json:"query"`
}

type loginResponse struct {
	Login struct {
		Result string `json:"result"`
		Reason string `json:"reason"`
	} `json:"login"`
}

type indexPagesResponse struct {
	Query struct {
		ProofreadPagesInIndex []struct {
			Title   string `json:"title"`
			PageNum int    `json:"pagenum"`
		} `json:"proofreadpagesinindex"`
	} `json:"query"`
}

type editResponse struct {
	Edit struct {
		Result string `json:"result"`
	} `json:"edit"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api error %s: %s", e.Code, e.Info)
}

// Login performs a bot-password login and keeps the session cookie.
func (c *Client) Login(ctx context.Context, username, password string) error {
	token, err := c.fetchToken(ctx, "login")
	if err != nil {
		return fmt.Errorf("fetching login token: %w", err)
	}

	form := url.Values{
		"action":     {"login"},
		"format":     {"json"},
		"lgname":     {username},
		"lgpassword": {password},
		"lgtoken":    {token},
	}
	var resp loginResponse
	if err := c.post(ctx, form, &resp); err != nil {
		return fmt.Errorf("logging in: %w", err)
	}
	if resp.Login.Result != "Success" {
		return fmt.Errorf("login rejected: %s %s", resp.Login.Result, resp.Login.Reason)
	}
	c.log.Info("logged in", "user", username)
	return nil
}

// IndexPages resolves an index title into a page-number → page-title map.
// Resolutions are served from the on-disk cache when one is configured.
func (c *Client) IndexPages(ctx context.Context, indexTitle string) (map[string]string, error) {
	if c.cache != nil {
		if pages, ok := c.cache.Get(indexTitle); ok {
			return pages, nil
		}
	}

	params := url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"list":        {"proofreadpagesinindex"},
		"prppiititle": {indexTitle},
		"prppiilimit": {"max"},
	}
	var resp indexPagesResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("resolving index %s: %w", indexTitle, err)
	}
	if len(resp.Query.ProofreadPagesInIndex) == 0 {
		return nil, fmt.Errorf("index %s has no pages or does not exist", indexTitle)
	}

	pages := make(map[string]string, len(resp.Query.ProofreadPagesInIndex))
	for _, p := range resp.Query.ProofreadPagesInIndex {
		pages[fmt.Sprint(p.PageNum)] = p.Title
	}

	if c.cache != nil {
		if err := c.cache.Put(indexTitle, pages); err != nil {
			c.log.Warn("caching index pages failed", "index", indexTitle, "error", err)
		}
	}
	return pages, nil
}

// SavePage writes page text with an edit summary.
func (c *Client) SavePage(ctx context.Context, title, text, summary string) error {
	token, err := c.fetchToken(ctx, "csrf")
	if err != nil {
		return fmt.Errorf("fetching csrf token: %w", err)
	}

	form := url.Values{
		"action":  {"edit"},
		"format":  {"json"},
		"title":   {title},
		"text":    {text},
		"summary": {summary},
		"bot":     {"1"},
		"token":   {token},
	}
	var resp editResponse
	if err := c.post(ctx, form, &resp); err != nil {
		return fmt.Errorf("saving %s: %w", title, err)
	}
	if resp.Error != nil {
		return fmt.Errorf("saving %s: %w", title, resp.Error)
	}
	if resp.Edit.Result != "Success" {
		return fmt.Errorf("saving %s: edit result %s", title, resp.Edit.Result)
	}
	return nil
}

func (c *Client) fetchToken(ctx context.Context, kind string) (string, error) {
	params := url.Values{
		"action": {"query"},
		"format": {"json"},
		"meta":   {"tokens"},
		"type":   {kind},
	}
	var resp tokenResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return "", err
	}
	token := resp.Query.Tokens[kind+"token"]
	if token == "" {
		return "", fmt.Errorf("no %s token in response", kind)
	}
	return token, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
