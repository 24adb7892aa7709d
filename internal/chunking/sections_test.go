package chunking

import (
	"reflect"
	"testing"
)

func TestSplitSections(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Section
	}{
		{
			name: "single heading with body",
			text: "# Title\n\nBody text.",
			want: []Section{{Title: "Title", Body: "Body text."}},
		},
		{
			name: "no headings",
			text: "plain text",
			want: []Section{{Title: "", Body: "plain text"}},
		},
		{
			name: "no headings trims surrounding whitespace",
			text: "\n\n  plain text  \n",
			want: []Section{{Body: "plain text"}},
		},
		{
			name: "empty document",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only document",
			text: " \n\t\n ",
			want: nil,
		},
		{
			name: "content before first heading has no title",
			text: "Intro paragraph.\n\n# First\n\nFirst body.",
			want: []Section{
				{Title: "", Body: "Intro paragraph."},
				{Title: "First", Body: "First body."},
			},
		},
		{
			name: "consecutive headings produce no empty section",
			text: "# Chapter\n## Topic\n\nTopic body.",
			want: []Section{{Title: "Topic", Body: "Topic body."}},
		},
		{
			name: "heading depth is discarded",
			text: "###### Deep heading\n\nDeep body.\n\n# Shallow\n\nShallow body.",
			want: []Section{
				{Title: "Deep heading", Body: "Deep body."},
				{Title: "Shallow", Body: "Shallow body."},
			},
		},
		{
			name: "heading text is trimmed",
			text: "##   Spaced title   \nBody",
			want: []Section{{Title: "Spaced title", Body: "Body"}},
		},
		{
			name: "seven hashes is not a heading",
			text: "####### Not a heading",
			want: []Section{{Body: "####### Not a heading"}},
		},
		{
			name: "hash without space is not a heading",
			text: "#hashtag line\n\nMore text",
			want: []Section{{Body: "#hashtag line\n\nMore text"}},
		},
		{
			name: "headings only falls back to full text",
			text: "# Only heading\n",
			want: []Section{{Body: "# Only heading"}},
		},
		{
			name: "trailing content belongs to last heading",
			text: "# A\n\nalpha\n\n# B\n\nbeta\n\ngamma\n",
			want: []Section{
				{Title: "A", Body: "alpha"},
				{Title: "B", Body: "beta\n\ngamma"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSections(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSections() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestSplitSections_DocumentOrder(t *testing.T) {
	text := "# One\n\n1\n\n# Two\n\n2\n\n# Three\n\n3"
	sections := SplitSections(text)

	wantTitles := []string{"One", "Two", "Three"}
	if len(sections) != len(wantTitles) {
		t.Fatalf("SplitSections() returned %d sections, want %d", len(sections), len(wantTitles))
	}
	for i, title := range wantTitles {
		if sections[i].Title != title {
			t.Errorf("sections[%d].Title = %q, want %q", i, sections[i].Title, title)
		}
	}
}
