package markdown

import (
	"testing"
)

func TestSummarizeTitleAndDescription(t *testing.T) {
	body := "# Building a *Portfolio* in Go\n\n" +
		"This post walks through\nthe `content` layer.\n\n" +
		"Second paragraph is ignored.\n"

	s := Summarize(body)
	if s.Title != "Building a Portfolio in Go" {
		t.Errorf("Title = %q, want %q", s.Title, "Building a Portfolio in Go")
	}
	if s.Description != "This post walks through the content layer." {
		t.Errorf("Description = %q", s.Description)
	}
}

func TestSummarizeHeadings(t *testing.T) {
	body := "# Title\n\nIntro.\n\n## Getting Started\n\nText.\n\n### Install\n\n#### Deep\n\n## Usage\n"

	s := Summarize(body)
	want := []Heading{
		{Level: 2, ID: "getting-started", Text: "Getting Started"},
		{Level: 3, ID: "install", Text: "Install"},
		{Level: 2, ID: "usage", Text: "Usage"},
	}
	if len(s.Headings) != len(want) {
		t.Fatalf("Headings = %+v, want %+v", s.Headings, want)
	}
	for i := range want {
		if s.Headings[i] != want[i] {
			t.Errorf("Headings[%d] = %+v, want %+v", i, s.Headings[i], want[i])
		}
	}
}

func TestSummarizeOnlyFirstTitle(t *testing.T) {
	s := Summarize("# One\n\n# Two\n")
	if s.Title != "One" {
		t.Errorf("Title = %q, want %q", s.Title, "One")
	}
	if s.Description != "" {
		t.Errorf("Description = %q, want empty", s.Description)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	tests := []string{"", "   \n\n"}
	for _, body := range tests {
		s := Summarize(body)
		if s.Title != "" || s.Description != "" || s.Headings != nil {
			t.Errorf("Summarize(%q) = %+v, want zero", body, s)
		}
	}
}
