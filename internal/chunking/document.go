package chunking

import "fmt"

// Chunk is a retrieval unit produced from one source document.
type Chunk struct {
	ID      string // "{source}:{index}"
	Source  string // Path relative to the indexing root, forward slashes
	Title   string // Section heading, empty when the section has none
	Content string
	Index   int // Zero-based, sequential across all sections of the source
}

// ChunkID returns the identifier of the chunk at index within source.
func ChunkID(source string, index int) string {
	return fmt.Sprintf("%s:%d", source, index)
}

// ChunkDocument splits a document into sections and chunks every section body.
// Indices run across sections of the document and are never restarted.
// source must already be relative to the indexing root and use forward slashes.
func (c *Chunker) ChunkDocument(source, text string) []Chunk {
	var chunks []Chunk
	index := 0
	for _, section := range SplitSections(text) {
		for _, content := range c.Split(section.Body) {
			chunks = append(chunks, Chunk{
				ID:      ChunkID(source, index),
				Source:  source,
				Title:   section.Title,
				Content: content,
				Index:   index,
			})
			index++
		}
	}
	return chunks
}
