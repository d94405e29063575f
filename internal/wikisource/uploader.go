package wikisource

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/OpenPecha/wikisource-automation/internal/etext"
	"github.com/OpenPecha/wikisource-automation/internal/progress"
)

const editSummary = "Bot: Adding OCR/provided text and marking as proofread."

// Uploader pushes etext pages onto their proofread wiki pages.
type Uploader struct {
	client  *Client
	log     *slog.Logger
	results *progress.Log
	format  etext.FormatOptions
}

// NewUploader wires a client, a structured logger, and a result log.
func NewUploader(client *Client, log *slog.Logger, results *progress.Log) *Uploader {
	return &Uploader{
		client:  client,
		log:     log,
		results: results,
		format:  etext.FormatOptions{Quality: 3, User: "OpenPechaBot"},
	}
}

// record appends to the result log; a failed write is reported but does not
// interrupt the batch.
func (u *Uploader) record(r progress.Result) {
	if err := u.results.Record(r); err != nil {
		u.log.Warn("writing result log failed", "index", r.IndexTitle, "page", r.PageNumber, "error", err)
	}
}

// UploadStats counts page outcomes for one index.
type UploadStats struct {
	Uploaded int
	Failed   int
	Skipped  int
}

// UploadFile parses a page-labelled text file and uploads each page to the
// matching page of the given index. A failing page is recorded and skipped;
// it does not stop the remaining pages.
func (u *Uploader) UploadFile(ctx context.Context, indexTitle, path string) (UploadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return UploadStats{}, fmt.Errorf("opening etext %s: %w", path, err)
	}
	defer f.Close()

	pages, err := etext.Parse(f)
	if err != nil {
		return UploadStats{}, err
	}
	if len(pages) == 0 {
		return UploadStats{}, fmt.Errorf("no pages found in %s", path)
	}

	titles, err := u.client.IndexPages(ctx, indexTitle)
	if err != nil {
		return UploadStats{}, err
	}

	var stats UploadStats
	for _, page := range pages {
		title, ok := titles[page.Number]
		if !ok {
			u.log.Warn("page number not found in index", "index", indexTitle, "page", page.Number)
			u.record(progress.Result{
				IndexTitle: indexTitle,
				PageNumber: page.Number,
				Status:     progress.StatusFailure,
				Message:    "page number not found in index",
			})
			stats.Skipped++
			continue
		}

		u.log.Info("uploading page", "title", title)
		text := etext.FormatProofread(page.Text, u.format)
		if err := u.client.SavePage(ctx, title, text, editSummary); err != nil {
			u.log.Error("upload failed", "title", title, "error", err)
			u.record(progress.Result{
				IndexTitle: indexTitle,
				PageNumber: page.Number,
				PageTitle:  title,
				Status:     progress.StatusFailure,
				Message:    err.Error(),
			})
			stats.Failed++
			continue
		}

		u.record(progress.Result{
			IndexTitle: indexTitle,
			PageNumber: page.Number,
			PageTitle:  title,
			Status:     progress.StatusSuccess,
		})
		stats.Uploaded++
	}
	return stats, nil
}
