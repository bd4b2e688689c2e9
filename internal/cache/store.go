package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"coursegen/internal/analysis"
	"coursegen/internal/playlist"
)

// ErrNotFound reports a cache miss.
var ErrNotFound = errors.New("cache entry not found")

// Store persists analysis results keyed by content identity, backed by
// SQLite. A missing or broken store never affects pipeline correctness; the
// orchestrator treats every failure here as a miss.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS analysis_cache (
    content_key TEXT PRIMARY KEY,
    playlist_id TEXT NOT NULL,
    model       TEXT NOT NULL,
    result      TEXT NOT NULL,
    created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analysis_cache_playlist ON analysis_cache(playlist_id);
`

// Open initializes or connects to the cache database at path.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("cache path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply cache schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path reports the database file location.
func (s *Store) Path() string {
	return s.path
}

// KeyOptions are the generation settings that shape an analysis and
// therefore partition the cache alongside the content itself.
type KeyOptions struct {
	Model        string
	TargetLevel  string
	Organization string
}

// ContentKey derives the cache key from the item sequence and the settings
// that would analyze it. Any change to item identity, ordering, availability,
// the analyzed text, or a generation option produces a different key.
func ContentKey(items []playlist.Item, opts KeyOptions) string {
	hasher := sha256.New()
	fmt.Fprintf(hasher, "model=%s\nlevel=%s\norganization=%s\n",
		opts.Model, opts.TargetLevel, opts.Organization)
	for _, item := range items {
		fmt.Fprintf(hasher, "%s|%d|%s|%s|%s|%s\n",
			item.ID, item.Position, item.Availability, item.Title, item.Description, item.Transcript)
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

// Get returns the cached analysis result for key, or ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) (*analysis.Result, error) {
	var encoded string
	err := s.db.QueryRowContext(ctx,
		`SELECT result FROM analysis_cache WHERE content_key = ?`, key,
	).Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query cache: %w", err)
	}
	var result analysis.Result
	if err := json.Unmarshal([]byte(encoded), &result); err != nil {
		return nil, fmt.Errorf("decode cached result: %w", err)
	}
	result.Fill()
	return &result, nil
}

// Put stores an analysis result under key, replacing any previous entry.
func (s *Store) Put(ctx context.Context, key, playlistID, model string, result *analysis.Result) error {
	if result == nil {
		return errors.New("result required")
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analysis_cache (content_key, playlist_id, model, result, created_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(content_key) DO UPDATE SET
             playlist_id = excluded.playlist_id,
             model = excluded.model,
             result = excluded.result,
             created_at = excluded.created_at`,
		key, playlistID, model, string(encoded), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store cache entry: %w", err)
	}
	return nil
}

// Entry summarizes one cache row for listings.
type Entry struct {
	ContentKey string
	PlaylistID string
	Model      string
	CreatedAt  time.Time
}

// List returns all entries, newest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT content_key, playlist_id, model, created_at
         FROM analysis_cache ORDER BY created_at DESC, content_key`)
	if err != nil {
		return nil, fmt.Errorf("list cache: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var createdAt string
		if err := rows.Scan(&entry.ContentKey, &entry.PlaylistID, &entry.Model, &createdAt); err != nil {
			return nil, fmt.Errorf("scan cache row: %w", err)
		}
		if parsed, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			entry.CreatedAt = parsed
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Clear removes every entry and reports how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analysis_cache`)
	if err != nil {
		return 0, fmt.Errorf("clear cache: %w", err)
	}
	return res.RowsAffected()
}

// Stats reports entry count and the age of the newest entry.
type Stats struct {
	Entries int
	Newest  time.Time
}

// Stats summarizes the cache contents.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	var newest sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), MAX(created_at) FROM analysis_cache`,
	).Scan(&stats.Entries, &newest)
	if err != nil {
		return Stats{}, fmt.Errorf("cache stats: %w", err)
	}
	if newest.Valid {
		if parsed, parseErr := time.Parse(time.RFC3339Nano, newest.String); parseErr == nil {
			stats.Newest = parsed
		}
	}
	return stats, nil
}

// CheckHealth verifies the database answers queries.
func (s *Store) CheckHealth(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("cache store not open")
	}
	return s.db.PingContext(ctx)
}
