package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.DocumentStore = (*DocumentStore)(nil)
}

func TestUpsertAndLookups(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc := &domain.Document{
		ID:       "d1",
		Filename: "report.pdf",
		Hash:     "h1",
		Type:     domain.FileTypePDF,
	}
	chunks := []domain.Chunk{
		{ID: domain.ChunkID("d1", 0), DocumentID: "d1", Index: 0, Content: "first"},
		{ID: domain.ChunkID("d1", 1), DocumentID: "d1", Index: 1, Content: "second"},
	}
	require.NoError(t, store.UpsertDocument(ctx, doc, chunks))

	byID, err := store.GetByID(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", byID.Filename)

	byHash, err := store.GetByHash(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "d1", byHash.ID)

	byName, err := store.GetByName(ctx, "report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "d1", byName.ID)

	got, err := store.GetChunks(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Content)
}

func TestUpsert_ReplacesByFilename(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.UpsertDocument(ctx,
		&domain.Document{ID: "old", Filename: "report.pdf", Hash: "h-old"},
		[]domain.Chunk{{ID: "old_chunk_0", DocumentID: "old", Index: 0}}))

	require.NoError(t, store.UpsertDocument(ctx,
		&domain.Document{ID: "new", Filename: "report.pdf", Hash: "h-new"},
		[]domain.Chunk{{ID: "new_chunk_0", DocumentID: "new", Index: 0}}))

	_, err := store.GetByID(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	docs, _ := store.CountDocuments(ctx)
	assert.Equal(t, 1, docs)
	chunks, _ := store.CountChunks(ctx)
	assert.Equal(t, 1, chunks)
}

func TestList_OrderAndFilter(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, store.UpsertDocument(ctx,
		&domain.Document{ID: "d1", Filename: "a.pdf", Hash: "h1", Type: domain.FileTypePDF, CreatedAt: base}, nil))
	require.NoError(t, store.UpsertDocument(ctx,
		&domain.Document{ID: "d2", Filename: "b.docx", Hash: "h2", Type: domain.FileTypeDOCX, CreatedAt: base.Add(time.Minute)}, nil))

	docs, total, err := store.List(ctx, 1, 10, "")
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "d2", docs[0].ID)

	docs, total, err = store.List(ctx, 1, 10, domain.FileTypePDF)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "d1", docs[0].ID)

	docs, total, err = store.List(ctx, 5, 10, "")
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Empty(t, docs)
}

func TestDeleteAndAllChunks(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.UpsertDocument(ctx,
		&domain.Document{ID: "d1", Filename: "a.pdf", Hash: "h1"},
		[]domain.Chunk{{ID: "d1_chunk_0", DocumentID: "d1", Index: 0}}))

	refs, err := store.AllChunks(ctx)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "a.pdf", refs[0].Filename)

	require.NoError(t, store.Delete(ctx, "d1"))
	require.NoError(t, store.Delete(ctx, "d1"))

	refs, err = store.AllChunks(ctx)
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestAllChunks_DeterministicOrder(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	created := time.Now().UTC()
	for _, id := range []string{"d3", "d1", "d4", "d2"} {
		require.NoError(t, store.UpsertDocument(ctx,
			&domain.Document{ID: id, Filename: id + ".pdf", Hash: "h-" + id, CreatedAt: created},
			[]domain.Chunk{
				{ID: id + "_chunk_0", DocumentID: id, Index: 0},
				{ID: id + "_chunk_1", DocumentID: id, Index: 1},
			}))
	}

	first, err := store.AllChunks(ctx)
	require.NoError(t, err)
	require.Len(t, first, 8)

	// Equal creation times fall back to document ID, then chunk index.
	assert.Equal(t, "d1_chunk_0", first[0].ID)
	assert.Equal(t, "d1_chunk_1", first[1].ID)
	assert.Equal(t, "d4_chunk_1", first[7].ID)

	// Map iteration is randomized; the order must not be.
	for i := 0; i < 20; i++ {
		again, err := store.AllChunks(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEvictStale(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	now := time.Now().UTC()
	old := now.Add(-60 * 24 * time.Hour)

	require.NoError(t, store.UpsertDocument(ctx,
		&domain.Document{ID: "old", Filename: "old.pdf", Hash: "h1", CreatedAt: old},
		[]domain.Chunk{{ID: "old_chunk_0", DocumentID: "old", Index: 0, CreatedAt: old}}))

	require.NoError(t, store.UpsertDocument(ctx,
		&domain.Document{ID: "spared", Filename: "spared.pdf", Hash: "h2", CreatedAt: old},
		[]domain.Chunk{{ID: "spared_chunk_0", DocumentID: "spared", Index: 0, CreatedAt: now}}))

	deleted, err := store.EvictStale(ctx, 30*24*time.Hour, 7*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = store.GetByID(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.GetByID(ctx, "spared")
	assert.NoError(t, err)
}
