package splitter

import "testing"

func TestProcessLine(t *testing.T) {
	pats := NewPatterns()

	tests := []struct {
		name        string
		input       string
		wantLine    string
		wantSection string
		wantMarker  bool
	}{
		{
			name:     "text variant keeps right side",
			input:    "སྦྱང་བ་{བཅྭ་,བཅོ་}བརྒྱད་པོ་དག",
			wantLine: "སྦྱང་བ་བཅོ་བརྒྱད་པོ་དག",
		},
		{
			name:     "dotted marker removed",
			input:    "[1a.1]ཐུན་མོང་མ་ཡིན་པ་གང་ཞེ་ན།",
			wantLine: "ཐུན་མོང་མ་ཡིན་པ་གང་ཞེ་ན།",
		},
		{
			name:        "section token extracted and removed",
			input:       "{D1}དགེ་སློང་དག་སྔོན་བྱུང་བ་བཱ་རཱ་ཎ་སཱིའི་གྲོང་ཁྱེར་དུ།",
			wantLine:    "དགེ་སློང་དག་སྔོན་བྱུང་བ་བཱ་རཱ་ཎ་སཱིའི་གྲོང་ཁྱེར་དུ།",
			wantSection: "D1",
		},
		{
			name:       "bare page marker detected but kept",
			input:      "[1a]རྒྱལ་པོ་ཚངས་སྦྱིན་ཞེས་བྱ་བ་རྒྱལ་སྲིད་བྱེད་དུ།",
			wantLine:   "[1a]རྒྱལ་པོ་ཚངས་སྦྱིན་ཞེས་བྱ་བ་རྒྱལ་སྲིད་བྱེད་དུ།",
			wantMarker: true,
		},
		{
			name:        "all patterns stacked on one line",
			input:       "[1b.4]{D1}{D1-1}༄༅༅། །རྒྱ་གར་སྐད་དུ། བི་ན་ཡ་བསྟུ། བོད་སྐད་དུ། འདུལ་བ་གཞི། བམ་པོ་དང་པོ།",
			wantLine:    "༄༅༅། །རྒྱ་གར་སྐད་དུ། བི་ན་ཡ་བསྟུ། བོད་སྐད་དུ། འདུལ་བ་གཞི། བམ་པོ་དང་པོ།",
			wantSection: "D1",
		},
		{
			name:       "variant plus page marker",
			input:      "[2a]བྱང་ཆུབ་{བཅྭ་,བཅོ་}སེམས་དཔའ་དགའ་ལྡན་གྱི་གནས་ན་བཞུགས་པ་ན།",
			wantLine:   "[2a]བྱང་ཆུབ་བཅོ་སེམས་དཔའ་དགའ་ལྡན་གྱི་གནས་ན་བཞུགས་པ་ན།",
			wantMarker: true,
		},
		{
			name:        "dotted marker, section and variant together",
			input:       "[3a.2]{D2}གཞན་{ཚོས་,ཚོང་}དུས་དང་། །བཞི་མདོ་དང་། སུམ་མདོ་རྣམས་སུ།",
			wantLine:    "གཞན་ཚོང་དུས་དང་། །བཞི་མདོ་དང་། སུམ་མདོ་རྣམས་སུ།",
			wantSection: "D2",
		},
		{
			name:        "section token with letter suffix",
			input:       "{D1a}རྒྱལ་པོ་པད་མ་ཆེན་པོ་ལ་ལྷ་ཨང་གའི་རྒྱལ་པོས།",
			wantLine:    "རྒྱལ་པོ་པད་མ་ཆེན་པོ་ལ་ལྷ་ཨང་གའི་རྒྱལ་པོས།",
			wantSection: "D1a",
		},
		{
			name:     "dash token is not a section",
			input:    "{D1-1}",
			wantLine: "",
		},
		{
			name:     "multiple text variants collapse independently",
			input:    "ཁང་{བཟངས་ཀྱི་,བཟང་གི་}གཞིར་གཏོགས་པ་ན་བློན་པོའི་{ཚོས་,ཚོང་}ཀྱིས།",
			wantLine: "ཁང་བཟང་གི་གཞིར་གཏོགས་པ་ན་བློན་པོའི་ཚོང་ཀྱིས།",
		},
		{
			name:     "plain line passes through",
			input:    "no markup here",
			wantLine: "no markup here",
		},
		{
			name:     "empty line",
			input:    "",
			wantLine: "",
		},
		{
			name:     "whitespace preserved",
			input:    "   ",
			wantLine: "   ",
		},
		{
			name:     "only dotted markers vanish",
			input:    "[1a.1][2b.3]",
			wantLine: "",
		},
		{
			name:       "only bare markers stay",
			input:      "[1a][2b]",
			wantLine:   "[1a][2b]",
			wantMarker: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, section, marker := pats.ProcessLine(tt.input)
			if line != tt.wantLine {
				t.Errorf("line = %q, want %q", line, tt.wantLine)
			}
			if section != tt.wantSection {
				t.Errorf("section = %q, want %q", section, tt.wantSection)
			}
			if marker != tt.wantMarker {
				t.Errorf("marker = %v, want %v", marker, tt.wantMarker)
			}
		})
	}
}

func TestProcessLineIdempotentOnVariants(t *testing.T) {
	pats := NewPatterns()
	line, _, _ := pats.ProcessLine("a {x,y} b")
	if line != "a y b" {
		t.Fatalf("first pass = %q, want %q", line, "a y b")
	}
	again, _, _ := pats.ProcessLine(line)
	if again != line {
		t.Errorf("second pass changed the line: %q", again)
	}
}

func TestReplacePageMarkers(t *testing.T) {
	pats := NewPatterns()

	tests := []struct {
		name        string
		input       string
		counter     int
		want        string
		wantCounter int
	}{
		{
			name:        "single marker",
			input:       "[1a]",
			counter:     1,
			want:        "Page: 1",
			wantCounter: 2,
		},
		{
			name:        "two markers on one line",
			input:       "[1a] ཐུན་མོང་མ་ཡིན་པ། [1b] དགེ་སློང་དག་སྔོན་བྱུང་བ།",
			counter:     1,
			want:        "Page: 1 ཐུན་མོང་མ་ཡིན་པ། Page: 2 དགེ་སློང་དག་སྔོན་བྱུང་བ།",
			wantCounter: 3,
		},
		{
			name:        "counter continues from start value",
			input:       "[2a]ཀ [2b]ཁ [3a]ག",
			counter:     5,
			want:        "Page: 5ཀ Page: 6ཁ Page: 7ག",
			wantCounter: 8,
		},
		{
			name:        "no markers leaves counter alone",
			input:       "no page markers here",
			counter:     1,
			want:        "no page markers here",
			wantCounter: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, counter := pats.ReplacePageMarkers(tt.input, tt.counter)
			if got != tt.want {
				t.Errorf("line = %q, want %q", got, tt.want)
			}
			if counter != tt.wantCounter {
				t.Errorf("counter = %d, want %d", counter, tt.wantCounter)
			}
		})
	}
}

func TestIsMeaningfulLine(t *testing.T) {
	pats := NewPatterns()

	tests := []struct {
		input string
		want  bool
	}{
		{"༄༅༅། །རྒྱ་གར་སྐད་དུ། བི་ན་ཡ་བསྟུ།", true},
		{"[1a]", false},
		{"[1a.1]", false},
		{"[2b.4]", false},
		{"", false},
		{"   ", false},
		{"\t", false},
		{"[1a] ཀ", true},
		{"[1a.1] ཁ", true},
		{"   [2b]   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := pats.IsMeaningfulLine(tt.input); got != tt.want {
				t.Errorf("IsMeaningfulLine(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
