package chunking

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultChunkSize is the default character budget per chunk.
	DefaultChunkSize = 1500
	// DefaultChunkOverlap is the default number of characters carried over from the previous chunk.
	DefaultChunkOverlap = 200
)

var (
	// ErrInvalidChunkSize is returned when the chunk size is not positive.
	ErrInvalidChunkSize = errors.New("chunk size must be greater than 0")
	// ErrInvalidOverlap is returned when the overlap is negative or not smaller than the chunk size.
	ErrInvalidOverlap = errors.New("chunk overlap must be >= 0 and smaller than chunk size")
)

var (
	paragraphBreak = regexp.MustCompile(`\n\n+`)
	sentenceBreak  = regexp.MustCompile(`[.!?]\s+`)
)

// Chunker splits text into bounded, overlapping chunks.
// Sizes are counted in characters (runes), not bytes.
// A Chunker is immutable and safe for concurrent use.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker creates a chunker with the given size and overlap budgets.
func NewChunker(chunkSize, chunkOverlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidChunkSize, chunkSize)
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("%w: got overlap %d for size %d", ErrInvalidOverlap, chunkOverlap, chunkSize)
	}
	return &Chunker{size: chunkSize, overlap: chunkOverlap}, nil
}

// Size returns the chunk size budget.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the overlap budget.
func (c *Chunker) Overlap() int { return c.overlap }

// Split partitions text into chunks.
//
// Boundaries prefer blank-line paragraph breaks, then sentence breaks, then hard
// character cuts. Every chunk after the first is prefixed with the tail of the
// previous (pre-overlap) chunk and a single space.
func (c *Chunker) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if utf8.RuneCountInString(text) <= c.size {
		return []string{text}
	}

	var chunks []string
	cur, curLen := "", 0

	flush := func() {
		if cur != "" {
			chunks = append(chunks, cur)
		}
		cur, curLen = "", 0
	}

	for _, para := range paragraphBreak.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		paraLen := utf8.RuneCountInString(para)

		if curLen+paraLen+2 <= c.size {
			if cur == "" {
				cur, curLen = para, paraLen
			} else {
				cur += "\n\n" + para
				curLen += 2 + paraLen
			}
			continue
		}

		flush()
		if paraLen <= c.size {
			cur, curLen = para, paraLen
			continue
		}

		// Oversized paragraph: accumulate sentences instead.
		for _, sent := range splitSentences(para) {
			sentLen := utf8.RuneCountInString(sent)
			if curLen+sentLen+1 <= c.size {
				if cur == "" {
					cur, curLen = sent, sentLen
				} else {
					cur += " " + sent
					curLen += 1 + sentLen
				}
				continue
			}

			flush()
			if sentLen > c.size {
				chunks = append(chunks, c.hardSplit(sent)...)
			} else {
				cur, curLen = sent, sentLen
			}
		}
	}
	flush()

	return c.addOverlap(chunks)
}

// splitSentences splits a paragraph after every '.', '!' or '?' that is followed by whitespace.
func splitSentences(para string) []string {
	var sentences []string
	start := 0
	for _, loc := range sentenceBreak.FindAllStringIndex(para, -1) {
		sentences = append(sentences, para[start:loc[0]+1])
		start = loc[1]
	}
	if start < len(para) {
		sentences = append(sentences, para[start:])
	}
	return sentences
}

// hardSplit cuts s into windows of c.size runes advanced by c.size-c.overlap runes.
func (c *Chunker) hardSplit(s string) []string {
	runes := []rune(s)
	step := c.size - c.overlap

	var pieces []string
	for i := 0; i < len(runes); i += step {
		end := min(i+c.size, len(runes))
		pieces = append(pieces, string(runes[i:end]))
	}
	return pieces
}

// addOverlap prefixes every chunk but the first with the tail of its predecessor.
func (c *Chunker) addOverlap(chunks []string) []string {
	if c.overlap == 0 || len(chunks) < 2 {
		return chunks
	}

	out := make([]string, len(chunks))
	out[0] = chunks[0]
	for i := 1; i < len(chunks); i++ {
		out[i] = tail(chunks[i-1], c.overlap) + " " + chunks[i]
	}
	return out
}

// tail returns the last n runes of s, or s itself when it is not longer than n.
func tail(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[len(runes)-n:])
}
