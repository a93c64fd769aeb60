package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLite persists the memory engine's state to a single SQLite table as
// JSON buckets. Every successful commit snapshots the affected state
// before it becomes visible, so a failed write aborts the commit.
type SQLite struct {
	*Memory
	db   *sql.DB
	path string
}

func NewSQLite(path string) (*SQLite, error) {
	if path == "" {
		path = "compass.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create state table: %w", err)
	}
	s := &SQLite{Memory: NewMemory(), db: db, path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	s.Memory.afterCommit = s.persist
	return s, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

type bucketRef struct {
	name string
	data any
}

func snapshotBuckets(sn *Snapshot) []bucketRef {
	return []bucketRef{
		{"outcomes", &sn.Outcomes},
		{"opportunities", &sn.Opportunities},
		{"solutions", &sn.Solutions},
		{"assumptions", &sn.Assumptions},
		{"outcome_opportunities", &sn.OutcomeOpportunities},
		{"opportunity_solutions", &sn.OpportunitySolutions},
		{"solution_assumptions", &sn.SolutionAssumptions},
		{"hypotheses", &sn.Hypotheses},
		{"experiments", &sn.Experiments},
		{"insights", &sn.Insights},
	}
}

func (s *SQLite) load() error {
	rows, err := s.db.Query(`SELECT bucket, payload FROM state`)
	if err != nil {
		return fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	payloads := map[string][]byte{}
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return fmt.Errorf("scan state: %w", err)
		}
		payloads[bucket] = payload
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate state: %w", err)
	}
	if len(payloads) == 0 {
		return nil
	}

	sn := Snapshot{}
	for _, b := range snapshotBuckets(&sn) {
		payload, ok := payloads[b.name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(payload, b.data); err != nil {
			return fmt.Errorf("decode %s: %w", b.name, err)
		}
	}
	s.ImportState(sn)
	return nil
}

func (s *SQLite) persist(sn *Snapshot) (retErr error) {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, b := range snapshotBuckets(sn) {
		payload, err := json.Marshal(b.data)
		if err != nil {
			retErr = fmt.Errorf("encode %s: %w", b.name, err)
			return retErr
		}
		if _, err := tx.Exec(
			`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`,
			b.name, payload,
		); err != nil {
			retErr = fmt.Errorf("upsert %s: %w", b.name, err)
			return retErr
		}
	}
	return tx.Commit()
}
