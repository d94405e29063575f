// Package etext parses page-labelled text files and formats their pages for
// upload to a proofread wiki.
package etext

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	// Page headers written by the splitter ("Page: 12") and by older OCR
	// exports ("Page no: 12") both open a new page.
	pageHeaderRe = regexp.MustCompile(`^\s*Page(?: no)?:\s*(\S+)\s*$`)
	// Parenthesised asides are editorial and dropped from page content.
	parenRe = regexp.MustCompile(`\([^)]*\)`)
	// Stray HTML tags in OCR output are stripped before formatting.
	htmlTagRe = regexp.MustCompile(`<[^>]+>`)
)

// Page is one labelled page of an etext file.
type Page struct {
	Number string
	Text   string
}

// Parse reads a page-labelled text file into its pages, in file order. Lines
// before the first page header are ignored; parenthesised asides are removed
// from content lines.
func Parse(r io.Reader) ([]Page, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var pages []Page
	current := -1

	for scanner.Scan() {
		line := scanner.Text()
		if m := pageHeaderRe.FindStringSubmatch(line); m != nil {
			pages = append(pages, Page{Number: m[1]})
			current = len(pages) - 1
			continue
		}
		if current < 0 {
			continue
		}
		cleaned := parenRe.ReplaceAllString(line, "")
		if pages[current].Text != "" {
			pages[current].Text += "\n"
		}
		pages[current].Text += cleaned
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading etext: %w", err)
	}

	for i := range pages {
		pages[i].Text = strings.TrimSpace(pages[i].Text)
	}
	return pages, nil
}

// FormatOptions controls proofread page rendering.
type FormatOptions struct {
	// Quality is the proofread quality level stamped on the page.
	Quality int
	// User is the reviewer credited in the pagequality tag.
	User string
}

// FormatProofread renders page text in the wiki's proofread page layout:
// a pagequality header, the cleaned text inside a margin div, and a trailing
// noinclude footer. Empty pages render a non-breaking space so the page
// still exists.
func FormatProofread(text string, opts FormatOptions) string {
	clean := strings.TrimSpace(htmlTagRe.ReplaceAllString(text, ""))
	if clean == "" {
		clean = "&nbsp;"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<noinclude><pagequality level=%q user=%q /></noinclude>\n", fmt.Sprint(opts.Quality), opts.User)
	b.WriteString(`<div style="margin-left: 3em; margin-right: 3em;">`)
	b.WriteString(clean)
	b.WriteString("</div>")
	b.WriteString("<noinclude></noinclude>")
	return b.String()
}
