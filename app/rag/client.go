package rag

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"GoScribeAI/app/models"
	"GoScribeAI/app/state"
)

const (
	vectorSize     = 2560
	collectionName = "world_bible"
)

type Client struct {
	vectors  vectorStore
	embedder models.Embedder
}

var _ Interface = &Client{}

func NewClient(embedder models.Embedder) (*Client, error) {
	vectors, err := NewQdrantStore(collectionName)
	if err != nil {
		return nil, err
	}
	return &Client{embedder: embedder, vectors: vectors}, nil
}

// IndexBook embeds every location, lore entry and character profile as its
// own document. Safe to call again after a resume; documents carry stable
// content so re-upserts are idempotent for unchanged sections.
func (c *Client) IndexBook(ctx context.Context, b *state.Book) error {
	if err := c.vectors.EnsureCollection(ctx, vectorSize); err != nil {
		return err
	}

	var docs []VectorDoc
	if b.WorldBible != nil {
		for _, loc := range b.WorldBible.Locations {
			docs = append(docs, VectorDoc{
				Content:  fmt.Sprintf("Location %s: %s %s", loc.Name, loc.Description, loc.Significance),
				Metadata: map[string]any{"kind": "location", "name": loc.Name},
			})
		}
		for _, entry := range b.WorldBible.Lore {
			docs = append(docs, VectorDoc{
				Content:  fmt.Sprintf("Lore (%s): %s", entry.Topic, entry.Details),
				Metadata: map[string]any{"kind": "lore", "topic": entry.Topic},
			})
		}
		if b.WorldBible.MagicSystem != "" {
			docs = append(docs, VectorDoc{
				Content:  "Magic system: " + b.WorldBible.MagicSystem,
				Metadata: map[string]any{"kind": "magic_system"},
			})
		}
	}
	for _, ch := range b.Characters {
		docs = append(docs, VectorDoc{
			Content: fmt.Sprintf("Character %s (%s): motivation %s; flaw %s; %s",
				ch.Name, ch.Archetype, ch.Motivation, ch.Flaw, ch.Description),
			Metadata: map[string]any{"kind": "character", "name": ch.Name},
		})
	}

	for i := range docs {
		vec, err := c.embedder.EmbedText(ctx, docs[i].Content)
		if err != nil {
			return err
		}
		docs[i].ID = uuid.New().String()
		docs[i].Vector = vec
	}

	return c.vectors.UpsertBatch(ctx, docs)
}

func (c *Client) Search(ctx context.Context, text string, k int) ([]string, error) {
	vec, err := c.embedder.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}
	docs, err := c.vectors.Query(ctx, vec, k)
	if err != nil {
		return nil, err
	}
	excerpts := make([]string, 0, len(docs))
	for _, d := range docs {
		excerpts = append(excerpts, d.Content)
	}
	return excerpts, nil
}
