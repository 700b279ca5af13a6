// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive keeps cleaned articles and render runs in a SQLite
// database so aggregates can be queried across runs.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/pdiddy/research-charts/internal/dataset"
	"github.com/pdiddy/research-charts/pkg/types"
)

const (
	dbFile = "research.db"

	defaultMaxResults = 20
)

// ErrNoSource is returned when a dataset has no source file to key it by.
var ErrNoSource = errors.New("dataset has no source file")

// Store manages the archive SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
	log        *zap.Logger
}

// Open opens or creates the archive database at cfg.Dir/research.db and
// creates the schema if it does not exist.
func Open(cfg types.ArchiveConfig, log *zap.Logger) (*Store, error) {
	if cfg.Dir == "" {
		return nil, errors.New("archive directory is empty")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if log == nil {
		log = zap.NewNop()
	}

	s := &Store{
		db:         db,
		dir:        cfg.Dir,
		maxResults: maxResults,
		log:        log.Named("archive"),
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	s.log.Debug("archive opened", zap.String("path", dbPath))

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the archive directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sources (
			path TEXT PRIMARY KEY,
			file_mod_time TEXT NOT NULL,
			rows INTEGER NOT NULL,
			kept INTEGER NOT NULL,
			ingested_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS articles (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL REFERENCES sources(path) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			year INTEGER NOT NULL,
			research_area TEXT NOT NULL,
			keywords TEXT,
			authors TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_source ON articles(source)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_area ON articles(research_area)`,
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			source TEXT,
			output_dir TEXT,
			rendered INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_charts (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			chart TEXT NOT NULL,
			status TEXT NOT NULL,
			files TEXT,
			reason TEXT,
			PRIMARY KEY (run_id, chart)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestResult reports what Ingest did with one source.
type IngestResult struct {
	Source   string
	Articles int
	Updated  bool
	Skipped  bool
}

// Ingest stores the articles of ds keyed by its source file. A source whose
// modification time matches the stored one is skipped; a changed source
// replaces its previous articles.
func (s *Store) Ingest(ctx context.Context, ds *dataset.Dataset, w io.Writer) (IngestResult, error) {
	source := ds.Source()
	if source == "" {
		return IngestResult{}, ErrNoSource
	}
	result := IngestResult{Source: source}

	info, err := os.Stat(source)
	if err != nil {
		return result, fmt.Errorf("reading source %s: %w", source, err)
	}
	modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

	var storedModTime string
	err = s.db.QueryRowContext(ctx,
		`SELECT file_mod_time FROM sources WHERE path = ?`, source,
	).Scan(&storedModTime)
	switch {
	case err == nil && storedModTime == modTime:
		fmt.Fprintf(w, "skipped %s (unchanged)\n", source)
		result.Skipped = true
		return result, nil
	case err == nil:
		result.Updated = true
	case !errors.Is(err, sql.ErrNoRows):
		return result, fmt.Errorf("checking source status: %w", err)
	}

	if err := s.ingestArticles(ctx, ds, modTime); err != nil {
		return result, err
	}
	result.Articles = ds.Len()

	if result.Updated {
		fmt.Fprintf(w, "updated %s (%d articles)\n", source, result.Articles)
	} else {
		fmt.Fprintf(w, "stored %s (%d articles)\n", source, result.Articles)
	}
	s.log.Info("source ingested",
		zap.String("source", source),
		zap.Int("articles", result.Articles),
		zap.Bool("updated", result.Updated))
	return result, nil
}

func (s *Store) ingestArticles(ctx context.Context, ds *dataset.Dataset, modTime string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	source := ds.Source()
	if _, err := tx.ExecContext(ctx, `DELETE FROM articles WHERE source = ?`, source); err != nil {
		return fmt.Errorf("deleting old articles: %w", err)
	}

	stats := ds.Stats()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO sources (path, file_mod_time, rows, kept, ingested_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			file_mod_time=excluded.file_mod_time, rows=excluded.rows,
			kept=excluded.kept, ingested_at=excluded.ingested_at`,
		source, modTime, stats.Rows, stats.Kept, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upserting source: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO articles (source, position, year, research_area, keywords, authors)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, a := range ds.Articles() {
		_, err := stmt.ExecContext(ctx,
			source, i, a.Year, a.ResearchArea,
			nullable(a.Keywords, a.HasKeywords), nullable(a.Authors, a.HasAuthors),
		)
		if err != nil {
			return fmt.Errorf("inserting article %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func nullable(v string, ok bool) sql.NullString {
	return sql.NullString{String: v, Valid: ok}
}

// AreaCounts returns the number of stored articles per research area for
// source, most frequent first. Ties keep the order areas were first stored.
// An empty source counts every stored article.
func (s *Store) AreaCounts(ctx context.Context, source string) ([]types.Count, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT research_area, count(*) AS n
		 FROM articles
		 WHERE ? = '' OR source = ?
		 GROUP BY research_area
		 ORDER BY n DESC, min(rowid) ASC`,
		source, source)
	if err != nil {
		return nil, fmt.Errorf("querying area counts: %w", err)
	}
	defer rows.Close()

	var counts []types.Count
	for rows.Next() {
		var c types.Count
		if err := rows.Scan(&c.Label, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning area count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Sources lists the ingested source files, most recent first.
func (s *Store) Sources(ctx context.Context) ([]Source, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, rows, kept, ingested_at FROM sources ORDER BY ingested_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var out []Source
	for rows.Next() {
		var (
			src Source
			ts  string
		)
		if err := rows.Scan(&src.Path, &src.Rows, &src.Kept, &ts); err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}
		src.IngestedAt, _ = time.Parse(time.RFC3339Nano, ts)
		out = append(out, src)
	}
	return out, rows.Err()
}

// Source is one ingested article table.
type Source struct {
	Path       string    `json:"path" yaml:"path"`
	Rows       int       `json:"rows" yaml:"rows"`
	Kept       int       `json:"kept" yaml:"kept"`
	IngestedAt time.Time `json:"ingested_at" yaml:"ingested_at"`
}
