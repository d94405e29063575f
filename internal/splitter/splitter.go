// Package splitter segments Kagyur text exports into one file per section.
//
// Input files are line-oriented UTF-8 text carrying embedded markup: section
// starters like {D1} or {D1a}, dash tokens like {D1-1}, dotted page markers
// like [1a.1], bare page markers like [1a], and inline text variants like
// {A,B} where B is the canonical reading. The splitter cleans each line,
// opens a new output buffer at every section token, renumbers bare page
// markers sequentially per section, and writes one file per section.
package splitter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Options configures a batch run.
type Options struct {
	InputDir  string
	OutputDir string
	// Threshold is the minimum count of meaningful lines before the first
	// section token that splits the lead-in into its own BASE file.
	Threshold int
	// Output receives human-readable progress; defaults to os.Stdout.
	Output io.Writer
}

// FileResult describes the outcome for one input file.
type FileResult struct {
	Input   string
	Outputs []string
	Err     error
}

// Summary aggregates a batch run.
type Summary struct {
	Files   int
	Outputs int
	Failed  int
	Results []FileResult
}

// Processor runs the segmentation over a directory of .txt files.
type Processor struct {
	engine *Engine
	writer *Writer
	opts   Options
}

// New validates the input directory, prepares the output directory, and
// returns a ready processor.
func New(opts Options) (*Processor, error) {
	info, err := os.Stat(opts.InputDir)
	if err != nil {
		return nil, fmt.Errorf("input directory %s: %w", opts.InputDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path %s is not a directory", opts.InputDir)
	}

	writer, err := NewWriter(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Processor{
		engine: NewEngine(NewPatterns(), opts.Threshold),
		writer: writer,
		opts:   opts,
	}, nil
}

// ProcessFile segments one input file and returns the written output paths.
func (p *Processor) ProcessFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	sections := p.engine.Split(splitLines(string(content)))

	var outputs []string
	for _, sec := range sections {
		out, err := p.writer.WriteSection(base, sec)
		if err != nil {
			return outputs, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// Run processes every .txt file in the input directory, in name order. A
// failing file is reported and skipped; it does not abort the batch.
func (p *Processor) Run() (Summary, error) {
	files, err := listTextFiles(p.opts.InputDir)
	if err != nil {
		return Summary{}, err
	}

	printHeader(p.opts.Output, p.opts.InputDir, len(files))
	if len(files) == 0 {
		return Summary{}, nil
	}

	var sum Summary
	sum.Files = len(files)
	for _, f := range files {
		outputs, err := p.ProcessFile(f)
		res := FileResult{Input: f, Outputs: outputs, Err: err}
		sum.Results = append(sum.Results, res)
		if err != nil {
			sum.Failed++
		}
		sum.Outputs += len(outputs)
		printFileResult(p.opts.Output, res)
	}

	printSummary(p.opts.Output, sum, p.opts.OutputDir)
	return sum, nil
}

// listTextFiles returns the .txt files directly inside dir, sorted by name.
func listTextFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// splitLines splits document content on newlines without keeping a trailing
// empty element for a final newline.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}
