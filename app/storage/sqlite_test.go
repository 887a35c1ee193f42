package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSQLiteStageRunHistory(t *testing.T) {
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.SaveStageRun(ctx, StageRun{RunID: "run-1", Pipeline: "book", Stage: "concept", Detail: "logline: ..."}))
	require.NoError(t, s.SaveStageRun(ctx, StageRun{RunID: "run-1", Pipeline: "book", Stage: "world_building", Degraded: true}))
	require.NoError(t, s.SaveStageRun(ctx, StageRun{RunID: "run-2", Pipeline: "lore", Stage: "eras"}))

	history, err := s.GetRunHistory(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, int64(1), history[0].ID)
	require.Equal(t, "concept", history[0].Stage)
	require.True(t, history[1].Degraded)

	history, err = s.GetRunHistory(ctx, "run-2")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "eras", history[0].Stage)
}
