package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	mdwerrors "github.com/msto63/numerik/foundation/core/errors"
	"github.com/msto63/numerik/foundation/utils/filex"
)

// migrations are applied in order; PRAGMA user_version records how many ran
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		source TEXT NOT NULL,
		request_id TEXT,
		program TEXT NOT NULL,
		value TEXT NOT NULL,
		scale INTEGER NOT NULL,
		rounding_mode TEXT NOT NULL,
		log TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);`,
	`CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source, created_at DESC);`,
}

// SQLiteStore implements Store using SQLite in WAL mode
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	Path string
}

// OpenSQLite opens or creates the journal database and migrates its schema
func OpenSQLite(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path != ":memory:" {
		if err := filex.EnsureParentDir(cfg.Path); err != nil {
			return nil, mdwerrors.JournalStorage("open", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, mdwerrors.JournalStorage("open", err)
	}
	if cfg.Path == ":memory:" {
		// every connection would see its own empty database
		db.SetMaxOpenConns(1)
	}

	store := &SQLiteStore{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, mdwerrors.JournalStorage("migrate", err)
	}
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	var version int
	if err := s.db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return err
	}
	for i := version; i < len(migrations); i++ {
		if _, err := s.db.Exec(migrations[i]); err != nil {
			return err
		}
		// PRAGMA does not take bind parameters
		if _, err := s.db.Exec(`PRAGMA user_version = ` + strconv.Itoa(i+1)); err != nil {
			return err
		}
	}
	return nil
}

// Save inserts entry, assigning ID and CreatedAt when empty
func (s *SQLiteStore) Save(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}
	logJSON, err := json.Marshal(entry.Log)
	if err != nil {
		return mdwerrors.JournalStorage("save", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, source, request_id, program, value, scale, rounding_mode, log)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.CreatedAt, entry.Source, entry.RequestID, entry.Program, entry.Value,
		entry.Scale, entry.RoundingMode, string(logJSON))
	if err != nil {
		return mdwerrors.JournalStorage("save", err)
	}
	return nil
}

const selectRuns = `SELECT id, created_at, source, request_id, program, value, scale, rounding_mode, log FROM runs`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var (
		entry     Entry
		requestID sql.NullString
		logJSON   string
	)
	if err := row.Scan(&entry.ID, &entry.CreatedAt, &entry.Source, &requestID, &entry.Program,
		&entry.Value, &entry.Scale, &entry.RoundingMode, &logJSON); err != nil {
		return nil, err
	}
	entry.RequestID = requestID.String
	if err := json.Unmarshal([]byte(logJSON), &entry.Log); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Get returns the entry with id or a JOURNAL_NOT_FOUND error
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, err := scanEntry(s.db.QueryRowContext(ctx, selectRuns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, mdwerrors.JournalNotFound(id)
	}
	if err != nil {
		return nil, mdwerrors.JournalStorage("get", err)
	}
	return entry, nil
}

// List returns entries matching opts, newest first
func (s *SQLiteStore) List(ctx context.Context, opts ListOptions) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := selectRuns + ` WHERE 1=1`
	var args []interface{}

	if opts.Source != "" {
		query += " AND source = ?"
		args = append(args, opts.Source)
	}
	if !opts.Since.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, opts.Since.UTC())
	}

	query += " ORDER BY created_at DESC, id"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mdwerrors.JournalStorage("list", err)
	}
	defer rows.Close()

	entries := []*Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, mdwerrors.JournalStorage("list", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, mdwerrors.JournalStorage("list", err)
	}
	return entries, nil
}

// Delete removes the entry with id or returns JOURNAL_NOT_FOUND
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return mdwerrors.JournalStorage("delete", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return mdwerrors.JournalNotFound(id)
	}
	return nil
}

// Prune removes entries older than olderThan and returns how many went
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().UTC().Add(-olderThan)
	result, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, mdwerrors.JournalStorage("prune", err)
	}
	deleted, _ := result.RowsAffected()
	return deleted, nil
}

// Ping checks the database connection
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return mdwerrors.JournalStorage("ping", err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
