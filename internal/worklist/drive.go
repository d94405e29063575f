package worklist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	defaultDriveBaseURL  = "https://www.googleapis.com/drive/v3/files"
	defaultDocsExportURL = "https://docs.google.com/document/d/%s/export?format=txt"
)

var (
	driveFileRe      = regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`)
	docURLRe         = regexp.MustCompile(`docs\.google\.com/document/d/([a-zA-Z0-9_-]+)`)
	wikiIndexRe      = regexp.MustCompile(`/wiki/([^?#]+)`)
	unsafeFileNameRe = regexp.MustCompile(`[<>:"/\\|?*]`)
)

// DriveFileID extracts the file ID from a drive file URL, or "" if absent.
func DriveFileID(link string) string {
	if m := driveFileRe.FindStringSubmatch(link); m != nil {
		return m[1]
	}
	return ""
}

// DocID extracts the document ID from a docs URL, or "" if absent.
func DocID(link string) string {
	if m := docURLRe.FindStringSubmatch(link); m != nil {
		return m[1]
	}
	return ""
}

// IndexTitleFromURL extracts the wikisource index title from a wiki page URL,
// or "" if the URL carries none.
func IndexTitleFromURL(link string) string {
	if m := wikiIndexRe.FindStringSubmatch(link); m != nil {
		return m[1]
	}
	return ""
}

// SanitizeFileName makes a downloaded name safe for the local filesystem.
func SanitizeFileName(name string) string {
	name = unsafeFileNameRe.ReplaceAllString(name, "_")
	name = strings.Trim(name, " .")
	if len(name) > 255 {
		name = name[:255]
	}
	return name
}

// DriveClient downloads files and exported documents with a pre-issued API key.
type DriveClient struct {
	baseURL       string
	docsExportURL string
	apiKey        string
	httpClient    *http.Client
}

// NewDriveClient builds a client; empty URLs select the public endpoints.
func NewDriveClient(baseURL, docsExportURL, apiKey string, httpClient *http.Client) *DriveClient {
	if baseURL == "" {
		baseURL = defaultDriveBaseURL
	}
	if docsExportURL == "" {
		docsExportURL = defaultDocsExportURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &DriveClient{baseURL: baseURL, docsExportURL: docsExportURL, apiKey: apiKey, httpClient: httpClient}
}

// fileName asks the drive API for the original name of a file.
func (c *DriveClient) fileName(ctx context.Context, fileID string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s?fields=name", c.baseURL, url.PathEscape(fileID))
	if c.apiKey != "" {
		endpoint += "&key=" + url.QueryEscape(c.apiKey)
	}
	var meta struct {
		Name string `json:"name"`
	}
	if err := c.getJSON(ctx, endpoint, &meta); err != nil {
		return "", fmt.Errorf("fetching file name for %s: %w", fileID, err)
	}
	if meta.Name == "" {
		return "", fmt.Errorf("file %s has no name", fileID)
	}
	return SanitizeFileName(meta.Name), nil
}

// DownloadFile fetches a drive file's content and saves it under its original
// name in dir. It returns the saved filename.
func (c *DriveClient) DownloadFile(ctx context.Context, fileID, dir string) (string, error) {
	name, err := c.fileName(ctx, fileID)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/%s?alt=media", c.baseURL, url.PathEscape(fileID))
	if c.apiKey != "" {
		endpoint += "&key=" + url.QueryEscape(c.apiKey)
	}
	if err := c.download(ctx, endpoint, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("downloading %s: %w", fileID, err)
	}
	return name, nil
}

// DownloadDocAsText exports a document as plain text and saves it under its
// original name with a .txt suffix. It returns the saved filename.
func (c *DriveClient) DownloadDocAsText(ctx context.Context, docID, dir string) (string, error) {
	name, err := c.fileName(ctx, docID)
	if err != nil {
		return "", err
	}
	name += ".txt"

	if err := c.download(ctx, fmt.Sprintf(c.docsExportURL, docID), filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("exporting doc %s: %w", docID, err)
	}
	return name, nil
}

func (c *DriveClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *DriveClient) download(ctx context.Context, endpoint, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return err
	}
	return nil
}
