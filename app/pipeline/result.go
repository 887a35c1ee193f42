// Package pipeline drives the stage tables: it owns state mutation, durable
// persistence, pause/resume and the final compile step.
package pipeline

import (
	"context"

	"GoScribeAI/app/state"
)

type Status string

const (
	StatusComplete Status = "COMPLETE"
	StatusPaused   Status = "PAUSED"
	StatusError    Status = "ERROR"
)

// BookResult is a novel run's outcome. State is always populated, including on
// error, so the caller keeps whatever sections were generated before the fault.
type BookResult struct {
	Status       Status
	State        *state.Book
	CompiledText string
	PausedAfter  string
	Err          error
}

type LoreResult struct {
	Status       Status
	State        *state.Lore
	CompiledText string
	PausedAfter  string
	Err          error
}

// Notice is sent to registered notifiers on pause, completion and error.
type Notice struct {
	Pipeline string
	RunID    string
	Status   Status
	Stage    string
	Detail   string
}

type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// Indexer feeds generated world material into the retrieval layer before
// drafting starts.
type Indexer interface {
	IndexBook(ctx context.Context, b *state.Book) error
}
