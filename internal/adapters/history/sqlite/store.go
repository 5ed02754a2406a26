// Package sqlite keeps a local history of assignment runs.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/seatwise/seatplan/internal/domain"
	"github.com/seatwise/seatplan/internal/ports"
)

type Store struct {
	db *sql.DB
}

var _ ports.RunHistory = (*Store)(nil)

func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func ensureSchema(db *sql.DB) error {
	createRuns := `
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  roster_path TEXT,
  seed INTEGER,
  placed INTEGER,
  unplaced INTEGER,
  prevented INTEGER,
  ran_at TEXT
);`
	if _, err := db.Exec(createRuns); err != nil {
		return fmt.Errorf("create runs table: %w", err)
	}

	createCohorts := `
CREATE TABLE IF NOT EXISTS run_cohorts (
  run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
  name TEXT,
  placed INTEGER,
  unplaced INTEGER
);`
	if _, err := db.Exec(createCohorts); err != nil {
		return fmt.Errorf("create run_cohorts table: %w", err)
	}

	if _, err := db.Exec("CREATE INDEX IF NOT EXISTS idx_run_cohorts_run ON run_cohorts(run_id);"); err != nil {
		return fmt.Errorf("create run_cohorts index: %w", err)
	}

	return nil
}

func (s *Store) Append(ctx context.Context, record domain.RunRecord) (domain.RunRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.RunRecord{}, fmt.Errorf("begin history tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (roster_path, seed, placed, unplaced, prevented, ran_at) VALUES (?, ?, ?, ?, ?, ?);`,
		record.RosterPath,
		record.Seed,
		record.Placed,
		record.Unplaced,
		record.Prevented,
		record.RanAt.Format(time.RFC3339),
	)
	if err != nil {
		return domain.RunRecord{}, fmt.Errorf("insert run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.RunRecord{}, fmt.Errorf("run id: %w", err)
	}

	for _, cohort := range record.Cohorts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_cohorts (run_id, name, placed, unplaced) VALUES (?, ?, ?, ?);`,
			id, cohort.Name, cohort.Placed, cohort.Unplaced,
		); err != nil {
			return domain.RunRecord{}, fmt.Errorf("insert run cohort %s: %w", cohort.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.RunRecord{}, fmt.Errorf("commit history tx: %w", err)
	}

	record.ID = id
	return record, nil
}

func (s *Store) List(ctx context.Context) ([]domain.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, roster_path, seed, placed, unplaced, prevented, ran_at FROM runs ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	records := []domain.RunRecord{}
	byID := map[int64]int{}
	for rows.Next() {
		var record domain.RunRecord
		var ranAt string
		if err := rows.Scan(&record.ID, &record.RosterPath, &record.Seed, &record.Placed, &record.Unplaced, &record.Prevented, &ranAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339, ranAt); err == nil {
			record.RanAt = parsed
		}
		byID[record.ID] = len(records)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	cohortRows, err := s.db.QueryContext(ctx,
		`SELECT run_id, name, placed, unplaced FROM run_cohorts ORDER BY rowid;`)
	if err != nil {
		return nil, fmt.Errorf("list run cohorts: %w", err)
	}
	defer cohortRows.Close()

	for cohortRows.Next() {
		var runID int64
		var count domain.CohortCount
		if err := cohortRows.Scan(&runID, &count.Name, &count.Placed, &count.Unplaced); err != nil {
			return nil, fmt.Errorf("scan run cohort: %w", err)
		}
		if i, ok := byID[runID]; ok {
			records[i].Cohorts = append(records[i].Cohorts, count)
		}
	}
	if err := cohortRows.Err(); err != nil {
		return nil, fmt.Errorf("list run cohorts: %w", err)
	}

	return records, nil
}

func (s *Store) Clear(ctx context.Context) (int64, error) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM run_cohorts;`); err != nil {
		return 0, fmt.Errorf("clear run cohorts: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM runs;`)
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}

	return removed, nil
}
