package splitter

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
)

var (
	// headerStyle for the batch banner
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// okStyle for successful file lines
	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	// failStyle for failed file lines
	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// summaryBoxStyle for the final summary
	summaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("208")).
			Padding(0, 1)
)

func printHeader(w io.Writer, inputDir string, files int) {
	fmt.Fprintln(w, headerStyle.Render("kagyur splitter"))
	if files == 0 {
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("no .txt files found in %s", inputDir)))
		return
	}
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("found %d input file(s) in %s", files, inputDir)))
}

func printFileResult(w io.Writer, res FileResult) {
	name := filepath.Base(res.Input)
	if res.Err != nil {
		fmt.Fprintf(w, "%s %s: %v\n", failStyle.Render("✗"), name, res.Err)
		return
	}
	fmt.Fprintf(w, "%s %s -> %d section file(s)\n", okStyle.Render("✓"), name, len(res.Outputs))
}

func printSummary(w io.Writer, sum Summary, outputDir string) {
	body := fmt.Sprintf("processed %d file(s), wrote %d output(s) to %s", sum.Files, sum.Outputs, outputDir)
	if sum.Failed > 0 {
		body += failStyle.Render(fmt.Sprintf("\n%d file(s) failed", sum.Failed))
	}
	fmt.Fprintln(w, summaryBoxStyle.Render(body))
}
