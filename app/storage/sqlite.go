package storage

import (
	"context"
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStorage struct {
	db *sql.DB
}

var _ Interface = &SQLiteStorage{}

// DefaultDBPath resolves DB_PATH, falling back to ./data/database.db.
func DefaultDBPath() string {
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		return dbPath
	}
	projectDir, err := os.Getwd()
	if err != nil {
		log.Fatalf("❌ Error getting project directory: %v", err)
	}
	defaultPath := filepath.Join(projectDir, "data", "database.db")
	if err := os.MkdirAll(filepath.Dir(defaultPath), os.ModePerm); err != nil {
		log.Fatalf("❌ Error creating data directory: %v", err)
	}
	return defaultPath
}

func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS stage_runs (
            id INTEGER NOT NULL,
            run_id TEXT NOT NULL,
            pipeline TEXT NOT NULL,
            stage TEXT NOT NULL,
            degraded INTEGER NOT NULL DEFAULT 0,
            detail TEXT NULL,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
            PRIMARY KEY (run_id, id)
        );
        CREATE INDEX IF NOT EXISTS idx_run_id ON stage_runs (run_id);
    `)
	if err != nil {
		return nil, err
	}

	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) SaveStageRun(ctx context.Context, run StageRun) error {
	var lastID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(id), 0) FROM stage_runs WHERE run_id = ?`, run.RunID,
	).Scan(&lastID)
	if err != nil && err != sql.ErrNoRows {
		log.Printf("⚠️ Error retrieving last ID for run %s: %v", run.RunID, err)
		return err
	}

	run.ID = lastID + 1
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO stage_runs (id, run_id, pipeline, stage, degraded, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, datetime(?))`,
		run.ID, run.RunID, run.Pipeline, run.Stage, run.Degraded, run.Detail, run.CreatedAt.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		log.Printf("⚠️ Error saving stage run for %s: %v", run.RunID, err)
		return err
	}
	return nil
}

func (s *SQLiteStorage) GetRunHistory(ctx context.Context, runID string) ([]StageRun, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, pipeline, stage, degraded, detail, created_at
		 FROM stage_runs
		 WHERE run_id = ?
		 ORDER BY id ASC`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []StageRun
	for rows.Next() {
		var run StageRun
		var createdAt string
		if err = rows.Scan(&run.ID, &run.RunID, &run.Pipeline, &run.Stage, &run.Degraded, &run.Detail, &createdAt); err != nil {
			log.Printf("⚠️ Error scanning row for run %s: %v", runID, err)
			continue
		}
		run.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdAt)
		history = append(history, run)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}
