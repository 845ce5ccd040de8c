package domain

// SearchResult is a ranked chunk returned by semantic retrieval.
type SearchResult struct {
	// DocumentID is the owning document.
	DocumentID string `json:"document_id"`

	// Filename is the owning document's filename.
	Filename string `json:"filename"`

	// Content is the chunk text.
	Content string `json:"content"`

	// Similarity is the cosine similarity to the query, in [-1, 1].
	Similarity float64 `json:"similarity"`

	// ChunkIndex is the chunk's position within its document.
	ChunkIndex int `json:"chunk_index"`
}

// Answer is a generated response to a question, grounded in
// retrieved document chunks.
type Answer struct {
	// Response is the generated text.
	Response string `json:"response"`

	// Model is the LLM model that produced the response.
	Model string `json:"model"`

	// Sources are the chunks the answer was grounded in, ranked by
	// similarity.
	Sources []SearchResult `json:"sources"`
}
