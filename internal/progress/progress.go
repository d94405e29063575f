// Package progress records batch outcomes: an append-only CSV result log and
// JSON helpers for auxiliary state files.
package progress

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Result statuses recorded in the upload log.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Result is one page-level outcome.
type Result struct {
	IndexTitle string
	PageNumber string
	PageTitle  string
	Status     string
	Message    string
}

var logHeader = []string{"timestamp", "run_id", "index_title", "page_number", "page_title", "status", "error_message"}

// Log appends results to a CSV file, writing the header once when the file is
// created. Every log carries a run ID so rows from different batches can be
// told apart.
type Log struct {
	path  string
	runID string
	now   func() time.Time
}

// NewLog creates a result log writing to path.
func NewLog(path string) *Log {
	return &Log{
		path:  path,
		runID: uuid.New().String(),
		now:   time.Now,
	}
}

// RunID returns the identifier attached to this batch's rows.
func (l *Log) RunID() string {
	return l.runID
}

// Record appends one result row.
func (l *Log) Record(r Result) error {
	_, statErr := os.Stat(l.path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening result log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(logHeader); err != nil {
			return err
		}
	}
	row := []string{
		l.now().Format(time.RFC3339),
		l.runID,
		r.IndexTitle,
		r.PageNumber,
		r.PageTitle,
		r.Status,
		r.Message,
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// WriteJSON writes v to path as indented UTF-8 JSON without HTML escaping.
func WriteJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ReadJSON reads path into v.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return json.Unmarshal(data, v)
}
