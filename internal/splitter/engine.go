package splitter

// Sentinel section identifiers. UNKNOWN is the state before any section token
// has been seen; BASE names lead-in content split off before the first section
// when the content threshold heuristic fires.
const (
	SectionUnknown = "UNKNOWN"
	SectionBase    = "BASE"
)

// DefaultContentThreshold is the minimum number of meaningful lines before the
// first section token that triggers a separate BASE file for the lead-in.
const DefaultContentThreshold = 50

// Section is one flushed segment of a document: the section identifier it was
// accumulated under and its processed lines.
type Section struct {
	ID    string
	Lines []string
}

// engineState is the per-document scan state. It is created fresh for every
// document and mutated only by Engine.Split.
type engineState struct {
	// section is the identifier the open buffer will be flushed under.
	section string
	// pageCounter numbers bare page markers within the open buffer.
	pageCounter int
	// sectionCounter counts section tokens opened within the buffer's
	// lifetime; it gates both the threshold heuristic and page numbering.
	sectionCounter int
	// pendingMarker is the buffer index of the most recent line still holding
	// an unconsumed bare marker, or -1. At most one relocation candidate is
	// pending at any time.
	pendingMarker int
}

// Engine performs the stateful line-by-line segmentation scan.
type Engine struct {
	pats      *Patterns
	threshold int
}

// NewEngine returns an engine using the given pattern set and meaningful-line
// threshold. A threshold <= 0 falls back to DefaultContentThreshold.
func NewEngine(pats *Patterns, threshold int) *Engine {
	if threshold <= 0 {
		threshold = DefaultContentThreshold
	}
	return &Engine{pats: pats, threshold: threshold}
}

// preScan counts meaningful lines before the first section-bearing line and
// returns that count together with the index of the first such line (-1 if
// the document has none). The scan is read-only.
func (e *Engine) preScan(lines []string) (int, int) {
	meaningful := 0
	firstSection := -1
	for i, line := range lines {
		if e.pats.HasSectionToken(line) {
			firstSection = i
			break
		}
		if e.pats.IsMeaningfulLine(line) {
			meaningful++
		}
	}
	return meaningful, firstSection
}

// Split scans the document once and returns its sections in emission order.
// Every line of the input ends up in exactly one section; a trailing
// page-marker line that straddles a boundary moves into the following section
// as "Page: 1".
func (e *Engine) Split(lines []string) []Section {
	meaningful, firstSection := e.preScan(lines)
	splitBeforeFirst := meaningful >= e.threshold && firstSection > 0

	var sections []Section
	var buf []string
	st := engineState{section: SectionUnknown, pageCounter: 1, pendingMarker: -1}

	// flush closes the open buffer under the given id and re-homes a pending
	// trailing marker line into the next buffer, numbering it "Page: 1".
	flush := func(id string) (relocated string, ok bool) {
		if st.pendingMarker >= 0 && st.pendingMarker < len(buf) && e.pats.hasBareMarker(buf[st.pendingMarker]) {
			relocated = e.pats.relocateMarker(buf[st.pendingMarker])
			buf = append(buf[:st.pendingMarker], buf[st.pendingMarker+1:]...)
			ok = true
		}
		flushed := make([]string, len(buf))
		copy(flushed, buf)
		sections = append(sections, Section{ID: id, Lines: flushed})
		buf = buf[:0]
		st.pendingMarker = -1
		return relocated, ok
	}

	openBuffer := func(id string, relocated string, hasRelocated bool) {
		st.section = id
		st.pageCounter = 1
		if hasRelocated {
			buf = append(buf, relocated)
			st.pageCounter = 2
		}
	}

	for _, raw := range lines {
		text, token, hasMarker := e.pats.ProcessLine(raw)

		if token != "" {
			if st.sectionCounter == 0 {
				if splitBeforeFirst {
					relocated, ok := flush(SectionBase)
					openBuffer(token, relocated, ok)
					st.sectionCounter++
					// The heuristic is consumed; later tokens in this
					// document take the ordinary boundary path.
					splitBeforeFirst = false
				} else {
					// First token after UNKNOWN adopts the buffer in place.
					// Any raw marker line in the adopted lead-in belongs to
					// this section for good, so it stops being a relocation
					// candidate.
					st.section = token
					st.sectionCounter++
					st.pendingMarker = -1
				}
			} else {
				relocated, ok := flush(st.section)
				openBuffer(token, relocated, ok)
				st.sectionCounter = 1
			}
		}

		if hasMarker {
			if st.sectionCounter > 0 {
				// Once a section is open, markers are consumed in place.
				text, st.pageCounter = e.pats.ReplacePageMarkers(text, st.pageCounter)
			}
			// Remember the newest marker line; it only qualifies for
			// relocation at a boundary while its marker is still unconsumed.
			st.pendingMarker = len(buf)
		}

		buf = append(buf, text)
	}

	flush(st.section)
	return sections
}
