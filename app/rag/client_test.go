package rag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"GoScribeAI/app/state"
)

type fakeStore struct {
	ensured bool
	docs    []VectorDoc
}

func (f *fakeStore) EnsureCollection(context.Context, int) error { f.ensured = true; return nil }
func (f *fakeStore) UpsertBatch(_ context.Context, docs []VectorDoc) error {
	f.docs = append(f.docs, docs...)
	return nil
}
func (f *fakeStore) Query(_ context.Context, _ []float32, k int) ([]VectorDoc, error) {
	if k > len(f.docs) {
		k = len(f.docs)
	}
	return f.docs[:k], nil
}
func (f *fakeStore) Close() error { return nil }

type fakeEmbedder struct{ calls int }

func (f *fakeEmbedder) EmbedText(context.Context, string) ([]float32, error) {
	f.calls++
	return []float32{0.1, 0.2}, nil
}

func TestIndexBookAndSearch(t *testing.T) {
	store := &fakeStore{}
	embedder := &fakeEmbedder{}
	c := &Client{vectors: store, embedder: embedder}

	b := &state.Book{Title: "The Hollow Crown"}
	b.SetWorldBible(state.WorldBible{
		Locations:   []state.Location{{Name: "Valdrath", Description: "A drowned citadel."}},
		Lore:        []state.LoreEntry{{Topic: "History", Details: "The crown sank with the king."}},
		MagicSystem: "Blood-bound sorcery.",
	})
	b.AddCharacters([]state.Character{{Name: "Maelis", Archetype: "Shadow"}})

	require.NoError(t, c.IndexBook(context.Background(), b))
	require.True(t, store.ensured)
	require.Len(t, store.docs, 4)
	require.Equal(t, 4, embedder.calls)
	require.Equal(t, "location", store.docs[0].Metadata["kind"])
	require.NotEmpty(t, store.docs[0].ID)

	excerpts, err := c.Search(context.Background(), "the citadel", 2)
	require.NoError(t, err)
	require.Len(t, excerpts, 2)
	require.Contains(t, excerpts[0], "Valdrath")
}
