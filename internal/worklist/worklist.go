// Package worklist builds the Index-to-text worklist that drives uploads:
// it reads document links from a spreadsheet range, downloads the linked
// files, and records which text file belongs to which wikisource index.
package worklist

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
)

// Entry pairs a wikisource index title with the local text filename holding
// its pages.
type Entry struct {
	Index string
	Text  string
}

// Builder turns spreadsheet rows into downloaded files plus a worklist.
type Builder struct {
	sheets *SheetClient
	drive  *DriveClient
	log    *slog.Logger
}

// NewBuilder wires the sheet and drive clients.
func NewBuilder(sheets *SheetClient, drive *DriveClient, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.Default()
	}
	return &Builder{sheets: sheets, drive: drive, log: log}
}

// Build fetches the given sheet range, downloads each row's document into
// downloadDir, and returns the worklist entries. Rows with missing or
// unrecognized links are logged and skipped; they do not fail the build.
// Each row is expected to carry the document link in its first column and the
// wikisource index link in its last.
func (b *Builder) Build(ctx context.Context, sheetID, rangeSpec, downloadDir string) ([]Entry, error) {
	rows, err := b.sheets.Fetch(ctx, sheetID, rangeSpec)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(downloadDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating download directory: %w", err)
	}

	var entries []Entry
	for i, row := range rows {
		if len(row) < 2 {
			b.log.Warn("row too short", "row", i)
			continue
		}
		docLink := row[0]
		indexLink := row[len(row)-1]

		indexTitle := IndexTitleFromURL(indexLink)
		if indexTitle == "" {
			b.log.Warn("invalid wikisource link", "row", i, "link", indexLink)
			continue
		}

		var fileName string
		switch {
		case DriveFileID(docLink) != "":
			fileName, err = b.drive.DownloadFile(ctx, DriveFileID(docLink), downloadDir)
		case DocID(docLink) != "":
			fileName, err = b.drive.DownloadDocAsText(ctx, DocID(docLink), downloadDir)
		default:
			b.log.Warn("unknown document link", "row", i, "link", docLink)
			continue
		}
		if err != nil {
			b.log.Warn("download failed", "row", i, "link", docLink, "error", err)
			continue
		}

		entries = append(entries, Entry{Index: indexTitle, Text: fileName})
	}
	return entries, nil
}

// WriteCSV writes the worklist with its Index,text header.
func WriteCSV(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating worklist %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Index", "text"}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := w.Write([]string{e.Index, e.Text}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadCSV loads a worklist written by WriteCSV.
func ReadCSV(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening worklist %s: %w", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing worklist %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var entries []Entry
	for _, row := range rows[1:] {
		if len(row) < 2 || row[0] == "" || row[1] == "" {
			continue
		}
		entries = append(entries, Entry{Index: row[0], Text: row[1]})
	}
	return entries, nil
}
