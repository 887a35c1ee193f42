package storage

import (
	"context"
	"time"
)

type Interface interface {
	SaveStageRun(ctx context.Context, run StageRun) error
	GetRunHistory(ctx context.Context, runID string) ([]StageRun, error)
}

// StageRun is one executed stage of a pipeline run, recorded for auditing
// which sections were generated, resumed or degraded.
type StageRun struct {
	ID        int64     `json:"id" db:"id"`
	RunID     string    `json:"run_id" db:"run_id"`
	Pipeline  string    `json:"pipeline" db:"pipeline"`
	Stage     string    `json:"stage" db:"stage"`
	Degraded  bool      `json:"degraded" db:"degraded"`
	Detail    string    `json:"detail" db:"detail"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
