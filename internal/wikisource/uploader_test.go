package wikisource

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenPecha/wikisource-automation/internal/progress"
)

func TestUploadFile(t *testing.T) {
	c, wiki := newTestClient(t)

	dir := t.TempDir()
	etextPath := filepath.Join(dir, "foo.txt")
	content := strings.Join([]string{
		"Page: 1",
		"ཀ ཁ ག",
		"Page: 2",
		"ང",
		"Page: 9",
		"orphan page",
	}, "\n")
	if err := os.WriteFile(etextPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	logPath := filepath.Join(dir, "upload_log.csv")
	u := NewUploader(c, slog.New(slog.NewTextHandler(io.Discard, nil)), progress.NewLog(logPath))

	stats, err := u.UploadFile(context.Background(), "Index:Foo.pdf", etextPath)
	if err != nil {
		t.Fatal(err)
	}

	// Page 2 is protected in the fake wiki, page 9 is not in the index.
	if stats.Uploaded != 1 || stats.Failed != 1 || stats.Skipped != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if len(wiki.edits) != 2 {
		t.Errorf("edit attempts = %d, want 2", len(wiki.edits))
	}
	if got := wiki.edits[0].Get("text"); !strings.Contains(got, "pagequality") || !strings.Contains(got, "ཀ ཁ ག") {
		t.Errorf("uploaded text = %q", got)
	}

	f, err := os.Open(logPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	// Header plus one row per page.
	if len(rows) != 4 {
		t.Errorf("log rows = %d, want 4", len(rows))
	}
}

func TestUploadFileBrokenResultLogWarnsAndContinues(t *testing.T) {
	c, wiki := newTestClient(t)

	dir := t.TempDir()
	etextPath := filepath.Join(dir, "foo.txt")
	if err := os.WriteFile(etextPath, []byte("Page: 1\nཀ ཁ ག"), 0o644); err != nil {
		t.Fatal(err)
	}

	var logged bytes.Buffer
	// Pointing the result log at a directory makes every Record fail.
	u := NewUploader(c, slog.New(slog.NewTextHandler(&logged, nil)), progress.NewLog(dir))

	stats, err := u.UploadFile(context.Background(), "Index:Foo.pdf", etextPath)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Uploaded != 1 {
		t.Errorf("stats = %+v, want the upload to proceed", stats)
	}
	if len(wiki.edits) != 1 {
		t.Errorf("edit attempts = %d, want 1", len(wiki.edits))
	}
	if !strings.Contains(logged.String(), "writing result log failed") {
		t.Errorf("expected a warning about the result log, got %q", logged.String())
	}
}

func TestUploadFileMissingEtext(t *testing.T) {
	c, _ := newTestClient(t)
	u := NewUploader(c, slog.New(slog.NewTextHandler(io.Discard, nil)), progress.NewLog(filepath.Join(t.TempDir(), "log.csv")))

	if _, err := u.UploadFile(context.Background(), "Index:Foo.pdf", filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error for missing etext file")
	}
}
