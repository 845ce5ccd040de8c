// Package chunker splits extracted text into overlapping passages
// suitable for embedding.
package chunker

import "strings"

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultOverlap is the default overlap between chunks in characters.
const DefaultOverlap = 200

// overlapCharsPerWord approximates the average word length used to
// convert the character overlap into a trailing word count.
const overlapCharsPerWord = 5

// Chunker splits text into sentence-aligned overlapping chunks.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a new chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap doesn't exceed chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Split segments text into sentence-like units on '.', '!' and '?'
// boundaries and greedily accumulates them into chunks of at most
// chunkSize characters. When a chunk closes, the next one is seeded
// with its trailing overlap/5 words - an approximation of the overlap
// in characters, measured in words. A single sentence longer than
// chunkSize is emitted as its own chunk rather than truncated.
//
// Empty or whitespace-only input yields no chunks.
func (c *Chunker) Split(text string) []string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	var current string

	for _, sentence := range sentences {
		if len(current)+len(sentence) > c.chunkSize && current != "" {
			chunks = append(chunks, strings.TrimSpace(current))

			words := strings.Split(current, " ")
			overlapWords := words
			if n := c.overlap / overlapCharsPerWord; n < len(words) {
				overlapWords = words[len(words)-n:]
			}
			current = strings.Join(overlapWords, " ") + " " + sentence
		} else {
			if current != "" {
				current += " "
			}
			current += sentence
		}
	}

	if last := strings.TrimSpace(current); last != "" {
		chunks = append(chunks, last)
	}

	return chunks
}

// splitSentences cuts text on sentence terminators, discarding empty
// units.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			flush()
			continue
		}
		current.WriteRune(r)
	}
	flush()

	return sentences
}
