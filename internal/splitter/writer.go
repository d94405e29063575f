package splitter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer persists flushed sections as text files in a single output directory.
type Writer struct {
	dir string
}

// NewWriter creates the output directory if needed and returns a writer for it.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	return &Writer{dir: dir}, nil
}

// FileName computes the output name for a section of the document with the
// given base name. UNKNOWN and BASE sections keep the base name; named
// sections append "_<id>".
func FileName(baseName string, sectionID string) string {
	if sectionID == SectionUnknown || sectionID == SectionBase {
		return baseName + ".txt"
	}
	return baseName + "_" + sectionID + ".txt"
}

// WriteSection writes one section as newline-joined UTF-8 text, overwriting
// any existing file of the same name. It returns the written path.
func (w *Writer) WriteSection(baseName string, sec Section) (string, error) {
	path := filepath.Join(w.dir, FileName(baseName, sec.ID))
	content := strings.Join(sec.Lines, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing section %s: %w", sec.ID, err)
	}
	return path, nil
}
