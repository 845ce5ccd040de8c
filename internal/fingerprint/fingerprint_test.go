package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum_Deterministic(t *testing.T) {
	data := []byte("the quick brown fox")

	assert.Equal(t, Sum(data), Sum(data))
}

func TestSum_DistinguishesContent(t *testing.T) {
	assert.NotEqual(t, Sum([]byte("version one")), Sum([]byte("version two")))
}

func TestSum_HexEncoded(t *testing.T) {
	hash := Sum([]byte("data"))

	// SHA-256 is 32 bytes, 64 hex characters.
	assert.Len(t, hash, 64)
	assert.Regexp(t, "^[0-9a-f]+$", hash)
}

func TestSum_EmptyInput(t *testing.T) {
	// Hash of empty input is well-defined, not an error.
	assert.Len(t, Sum(nil), 64)
	assert.Equal(t, Sum(nil), Sum([]byte{}))
}

func TestDocumentID(t *testing.T) {
	hash := Sum([]byte("report contents"))

	id := DocumentID(hash)

	assert.Len(t, id, 32)
	assert.Equal(t, hash[:32], id)

	// Stable for the same hash.
	assert.Equal(t, id, DocumentID(hash))
}

func TestDocumentID_ShortHash(t *testing.T) {
	assert.Equal(t, "abc", DocumentID("abc"))
}
