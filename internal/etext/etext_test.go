package etext

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"ignored preamble",
		"Page: 1",
		"ཀ ཁ ག",
		"second line (editor note)",
		"Page no: 2",
		"ང",
		"",
		"Page: 3",
	}, "\n")

	pages, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	if pages[0].Number != "1" || pages[1].Number != "2" || pages[2].Number != "3" {
		t.Errorf("page numbers = %v", pages)
	}
	if pages[0].Text != "ཀ ཁ ག\nsecond line" {
		t.Errorf("page 1 text = %q", pages[0].Text)
	}
	if pages[1].Text != "ང" {
		t.Errorf("page 2 text = %q", pages[1].Text)
	}
	if pages[2].Text != "" {
		t.Errorf("page 3 should be empty, got %q", pages[2].Text)
	}
}

func TestParseEmptyInput(t *testing.T) {
	pages, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 0 {
		t.Errorf("expected no pages, got %v", pages)
	}
}

func TestFormatProofread(t *testing.T) {
	got := FormatProofread("ཀ <b>ཁ</b> ", FormatOptions{Quality: 3, User: "Bot"})

	for _, want := range []string{
		`<pagequality level="3" user="Bot" />`,
		`<div style="margin-left: 3em; margin-right: 3em;">ཀ ཁ</div>`,
		"<noinclude></noinclude>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("formatted page missing %q:\n%s", want, got)
		}
	}
}

func TestFormatProofreadEmptyPage(t *testing.T) {
	got := FormatProofread("   ", FormatOptions{Quality: 3, User: "Bot"})
	if !strings.Contains(got, ">&nbsp;</div>") {
		t.Errorf("empty page should render &nbsp;, got:\n%s", got)
	}
}
