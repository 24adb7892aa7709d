package chunking

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func mustChunker(t *testing.T, size, overlap int) *Chunker {
	t.Helper()
	c, err := NewChunker(size, overlap)
	if err != nil {
		t.Fatalf("NewChunker(%d, %d) error = %v", size, overlap, err)
	}
	return c
}

func TestNewChunker(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		wantErr error
	}{
		{name: "defaults", size: DefaultChunkSize, overlap: DefaultChunkOverlap},
		{name: "zero overlap", size: 10, overlap: 0},
		{name: "overlap just below size", size: 10, overlap: 9},
		{name: "zero size", size: 0, overlap: 0, wantErr: ErrInvalidChunkSize},
		{name: "negative size", size: -5, overlap: 0, wantErr: ErrInvalidChunkSize},
		{name: "negative overlap", size: 10, overlap: -1, wantErr: ErrInvalidOverlap},
		{name: "overlap equal to size", size: 10, overlap: 10, wantErr: ErrInvalidOverlap},
		{name: "overlap larger than size", size: 10, overlap: 20, wantErr: ErrInvalidOverlap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewChunker(tt.size, tt.overlap)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewChunker() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewChunker() unexpected error = %v", err)
			}
			if c.Size() != tt.size || c.Overlap() != tt.overlap {
				t.Errorf("NewChunker() = (%d, %d), want (%d, %d)", c.Size(), c.Overlap(), tt.size, tt.overlap)
			}
		})
	}
}

func TestChunker_Split(t *testing.T) {
	s1 := "First sentence here."
	s2 := "Second sentence here."
	s3 := "Third one."

	tests := []struct {
		name    string
		size    int
		overlap int
		text    string
		want    []string
	}{
		{
			name: "short text is a single chunk",
			size: 100, overlap: 10,
			text: "short",
			want: []string{"short"},
		},
		{
			name: "empty text",
			size: 100, overlap: 10,
			text: "",
			want: nil,
		},
		{
			name: "whitespace only text",
			size: 100, overlap: 10,
			text: "  \n\n\t ",
			want: nil,
		},
		{
			name: "text exactly at size is kept whole",
			size: 5, overlap: 1,
			text: "abcde",
			want: []string{"abcde"},
		},
		{
			name: "paragraphs accumulate until overflow",
			size: 20, overlap: 0,
			text: "aaaa\n\nbbbb\n\ncccccccccccc",
			want: []string{"aaaa\n\nbbbb", "cccccccccccc"},
		},
		{
			name: "multiple blank lines collapse to one paragraph break",
			size: 20, overlap: 0,
			text: "aaaa\n\n\n\nbbbb\n\n\ncccccccccccc",
			want: []string{"aaaa\n\nbbbb", "cccccccccccc"},
		},
		{
			name: "overlap prefixes previous tail",
			size: 20, overlap: 3,
			text: "aaaa\n\nbbbb\n\ncccccccccccc",
			want: []string{"aaaa\n\nbbbb", "bbb cccccccccccc"},
		},
		{
			name: "oversized paragraph splits on sentences",
			size: 30, overlap: 0,
			text: s1 + " " + s2 + " " + s3,
			want: []string{s1, s2, s3},
		},
		{
			name: "sentence buffer carries into next paragraph",
			size: 30, overlap: 0,
			text: s1 + " " + s2 + "\n\nTail.",
			want: []string{s1, s2 + "\n\nTail."},
		},
		{
			name: "question and exclamation marks end sentences",
			size: 12, overlap: 0,
			text: "Is it ok? Yes it is! Fine.",
			want: []string{"Is it ok?", "Yes it is!", "Fine."},
		},
		{
			name: "oversized sentence is hard split",
			size: 10, overlap: 0,
			text: "abcdefghijklmnopqrstuvwxy",
			want: []string{"abcdefghij", "klmnopqrst", "uvwxy"},
		},
		{
			name: "hard split windows overlap and then get prefixed",
			size: 10, overlap: 3,
			text: "abcdefghijklmnopqrstuvwxy",
			want: []string{
				"abcdefghij",
				"hij hijklmnopq",
				"opq opqrstuvwx",
				"vwx vwxy",
			},
		},
		{
			name: "sizes are counted in characters",
			size: 5, overlap: 0,
			text: "ééééééé",
			want: []string{"ééééé", "éé"},
		},
		{
			name: "short predecessor is carried whole",
			size: 12, overlap: 8,
			text: "tiny\n\nabcdefghijk",
			want: []string{"tiny", "tiny abcdefghijk"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustChunker(t, tt.size, tt.overlap)
			got := c.Split(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split() = %q, want %q", got, tt.want)
			}
		})
	}
}

// lorem builds paragraphs of short sentences that never need a hard split.
func lorem(paragraphs, sentences int) string {
	var paras []string
	for p := 0; p < paragraphs; p++ {
		var sents []string
		for s := 0; s < sentences; s++ {
			sents = append(sents, fmt.Sprintf("Sentence %d-%d has some words.", p, s))
		}
		paras = append(paras, strings.Join(sents, " "))
	}
	return strings.Join(paras, "\n\n")
}

func TestChunker_Split_SizeBound(t *testing.T) {
	c := mustChunker(t, 50, 0)
	text := lorem(6, 4)

	chunks := c.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("Split() returned %d chunks, want several", len(chunks))
	}
	for i, chunk := range chunks {
		if n := utf8.RuneCountInString(chunk); n > 50 {
			t.Errorf("chunk %d has %d characters, want <= 50", i, n)
		}
	}
}

func TestChunker_Split_HardSplitPieceLengths(t *testing.T) {
	c := mustChunker(t, 8, 0)
	chunks := c.Split(strings.Repeat("x", 30))

	for i, chunk := range chunks {
		n := utf8.RuneCountInString(chunk)
		if i < len(chunks)-1 && n != 8 {
			t.Errorf("piece %d has length %d, want 8", i, n)
		}
		if i == len(chunks)-1 && n > 8 {
			t.Errorf("last piece has length %d, want <= 8", n)
		}
	}
}

func TestChunker_Split_Coverage(t *testing.T) {
	c := mustChunker(t, 50, 0)
	text := lorem(5, 5)

	chunks := c.Split(text)
	got := strings.Fields(strings.Join(chunks, " "))
	want := strings.Fields(text)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokens after chunking differ from input tokens\ngot:  %v\nwant: %v", got, want)
	}
}

func TestChunker_Split_OverlapIsSinglePass(t *testing.T) {
	text := lorem(4, 4)
	raw := mustChunker(t, 60, 0).Split(text)
	overlapped := mustChunker(t, 60, 15).Split(text)

	if len(raw) != len(overlapped) {
		t.Fatalf("overlap changed chunk count: %d vs %d", len(raw), len(overlapped))
	}
	if overlapped[0] != raw[0] {
		t.Errorf("first chunk was modified: %q", overlapped[0])
	}
	for i := 1; i < len(raw); i++ {
		want := tail(raw[i-1], 15) + " " + raw[i]
		if overlapped[i] != want {
			t.Errorf("chunk %d = %q, want %q", i, overlapped[i], want)
		}
	}
}

func TestChunker_Split_Idempotent(t *testing.T) {
	c := mustChunker(t, 40, 10)
	text := lorem(3, 6)

	first := c.Split(text)
	second := c.Split(text)
	if !reflect.DeepEqual(first, second) {
		t.Error("Split() is not deterministic for identical input")
	}
}
