package splitter

import (
	"regexp"
	"strconv"
	"strings"
)

// Patterns holds the compiled markup recognizers for Kagyur text files.
// Build one with NewPatterns and share it across documents; all methods
// are read-only and safe for concurrent use.
type Patterns struct {
	// Text variants like {བཅྭ་,བཅོ་} - the right side is the canonical reading.
	textVariant *regexp.Regexp
	// Dotted page markers like [1a.1], [2b.4] - removed entirely.
	dottedMarker *regexp.Regexp
	// Dash tokens like {D1-1}, {D4-3} - stripped entirely.
	dashToken *regexp.Regexp
	// Section starters like {D1}, {D1a}, {D4}.
	sectionToken *regexp.Regexp
	// Bare page markers like [1a] - replaced with "Page: N" during segmentation.
	pageMarker *regexp.Regexp
}

// NewPatterns compiles the recognizer set.
func NewPatterns() *Patterns {
	return &Patterns{
		textVariant:  regexp.MustCompile(`\{([^,}]+),([^}]+)\}`),
		dottedMarker: regexp.MustCompile(`\[\d+[a-z]\.\d+\]`),
		dashToken:    regexp.MustCompile(`\{D\d+-\d+\}`),
		sectionToken: regexp.MustCompile(`\{D(\d+)([a-z])?\}`),
		pageMarker:   regexp.MustCompile(`\[\d+[a-z]\]`),
	}
}

// ProcessLine applies the recognizers to one raw line, in precedence order:
// text-variant collapse, dotted-marker deletion, dash-token deletion, section
// token extraction, bare page-marker detection. It returns the cleaned line,
// the canonical section identifier (e.g. "D1", "D1a") or "" if the line opens
// no section, and whether the line carries a bare page marker. Bare markers
// are detected but left in place; the segmentation engine numbers them.
func (p *Patterns) ProcessLine(line string) (string, string, bool) {
	line = p.textVariant.ReplaceAllString(line, "$2")
	line = p.dottedMarker.ReplaceAllString(line, "")
	line = p.dashToken.ReplaceAllString(line, "")

	var section string
	if m := p.sectionToken.FindStringSubmatch(line); m != nil {
		section = "D" + m[1] + m[2]
		line = p.sectionToken.ReplaceAllString(line, "")
	}

	hasPageMarker := p.pageMarker.MatchString(line)

	return line, section, hasPageMarker
}

// IsMeaningfulLine reports whether a line carries substantive content once
// page markers and surrounding whitespace are stripped. Lines consisting only
// of markers or whitespace are not meaningful.
func (p *Patterns) IsMeaningfulLine(line string) bool {
	cleaned := strings.TrimSpace(p.pageMarker.ReplaceAllString(line, ""))
	cleaned = strings.TrimSpace(p.dottedMarker.ReplaceAllString(cleaned, ""))
	return len(cleaned) > 0
}

// ReplacePageMarkers substitutes every bare page marker on the line with a
// sequential "Page: N" label, starting at counter. It returns the rendered
// line and the counter after the last substitution.
func (p *Patterns) ReplacePageMarkers(line string, counter int) (string, int) {
	processed := p.pageMarker.ReplaceAllStringFunc(line, func(string) string {
		label := "Page: " + strconv.Itoa(counter)
		counter++
		return label
	})
	return processed, counter
}

// HasSectionToken reports whether the raw, unprocessed line contains a
// section token. Used by the pre-scan, which must not alter lines.
func (p *Patterns) HasSectionToken(line string) bool {
	return p.sectionToken.MatchString(line)
}

func (p *Patterns) hasBareMarker(line string) bool {
	return p.pageMarker.MatchString(line)
}

func (p *Patterns) relocateMarker(line string) string {
	return p.pageMarker.ReplaceAllString(line, "Page: 1")
}
