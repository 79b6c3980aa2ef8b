// Package db persists batch analysis runs in DuckDB and reads profile lists
// through its CSV reader.
package db

import (
	"bufio"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/strrl/fakeprofile/internal/detector"
)

var (
	dbInstance *sql.DB
	dbOnce     sync.Once
	dbErr      error
)

// GetDB returns the process-wide DuckDB handle. The database file path comes
// from FAKEPROFILE_DB; empty means an in-memory database.
func GetDB() (*sql.DB, error) {
	dbOnce.Do(func() {
		dbInstance, dbErr = initializeDuckDB(os.Getenv("FAKEPROFILE_DB"))
	})
	return dbInstance, dbErr
}

func initializeDuckDB(path string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("INSTALL json"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to install JSON extension: %w", err)
	}

	if _, err := db.Exec("LOAD json"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load JSON extension: %w", err)
	}

	return db, nil
}

// BatchEntry is one profile's outcome within a batch run. Result and Err are
// mutually exclusive.
type BatchEntry struct {
	Username string
	Platform string
	Result   *detector.Result
	Err      error
}

// Store wraps the shared handle with the batch-run schema.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// OpenStore is the common path: shared handle plus schema.
func OpenStore() (*Store, error) {
	db, err := GetDB()
	if err != nil {
		return nil, err
	}
	s := NewStore(db)
	if err := s.Init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS analysis_results (
			run_id          VARCHAR NOT NULL,
			username        VARCHAR NOT NULL,
			platform        VARCHAR NOT NULL,
			is_fake         BOOLEAN,
			probability     DOUBLE,
			indicator_count INTEGER,
			top_indicator   VARCHAR,
			url             VARCHAR,
			error           VARCHAR,
			created_at      TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create analysis_results table: %w", err)
	}
	return nil
}

// SaveResults persists every entry of a run, failures included.
func (s *Store) SaveResults(runID string, entries []BatchEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO analysis_results
			(run_id, username, platform, is_fake, probability, indicator_count, top_indicator, url, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, e := range entries {
		var (
			isFake      bool
			probability float64
			indicators  int
			topInd      string
			url         string
			errText     string
		)
		if e.Result != nil {
			isFake = e.Result.IsFake
			probability = e.Result.Probability
			indicators = len(e.Result.Indicators)
			if indicators > 0 {
				topInd = e.Result.Indicators[0].Name
			}
			if e.Result.Profile != nil {
				url = e.Result.Profile.URL
			}
		}
		if e.Err != nil {
			errText = e.Err.Error()
		}

		if _, err := stmt.Exec(runID, e.Username, e.Platform, isFake, probability, indicators, topInd, url, errText, now); err != nil {
			return fmt.Errorf("failed to insert result for %s: %w", e.Username, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// RunSummary aggregates one stored run.
type RunSummary struct {
	RunID     string
	Total     int
	FakeCount int
	Failed    int
}

func (s *Store) SummarizeRun(runID string) (RunSummary, error) {
	row := s.db.QueryRow(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_fake AND error = ''),
			COUNT(*) FILTER (WHERE error <> '')
		FROM analysis_results WHERE run_id = ?
	`, runID)

	summary := RunSummary{RunID: runID}
	if err := row.Scan(&summary.Total, &summary.FakeCount, &summary.Failed); err != nil {
		return RunSummary{}, fmt.Errorf("failed to summarize run %s: %w", runID, err)
	}
	return summary, nil
}

// ReadProfileList loads usernames or profile URLs from a file. CSV files go
// through DuckDB's reader, first column only; anything else is read line by
// line. Blank lines and # comments are skipped.
func (s *Store) ReadProfileList(path string) ([]string, error) {
	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		return s.readCSVList(path)
	}
	return readLineList(path)
}

func (s *Store) readCSVList(path string) ([]string, error) {
	quoted := strings.ReplaceAll(path, "'", "''")
	rows, err := s.db.Query(fmt.Sprintf(
		"SELECT column0 FROM read_csv('%s', header=false, all_varchar=true)", quoted,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV %s: %w", path, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan CSV row: %w", err)
		}
		name = strings.TrimSpace(name)
		if name == "" || strings.HasPrefix(name, "#") || strings.EqualFold(name, "username") {
			continue
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func readLineList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return names, nil
}
