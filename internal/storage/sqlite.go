// Package storage provides an optional SQLite archive of crawl results
// so that pages and the link graph can be queried with SQL after a run.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/seokumo/seokumo/internal/crawler"
	// SQLite database driver (CGO-free)
	_ "modernc.org/sqlite"
)

// SQLiteStorage implements the crawler.Storage interface using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens (or creates) the archive database at dbPath
// and initializes its schema.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection avoids SQLite lock conflicts.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)

	s := &SQLiteStorage{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStorage) initSchema() error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 30000",
	}
	for _, pragma := range pragmas {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute pragma %s: %w", pragma, err)
		}
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SavePage stores one page record, replacing any previous row for the
// same URL.
func (s *SQLiteStorage) SavePage(rec *crawler.PageRecord) error {
	var title, metaDesc, canonical, h1 string
	var wordCount, contentLength int
	if rec.Metadata != nil {
		title = rec.Metadata.Title.Content
		metaDesc = rec.Metadata.MetaDescription.Content
		canonical = rec.Metadata.Canonical
		h1 = rec.Metadata.H1.Content
	}
	if rec.Content != nil {
		wordCount = rec.Content.WordCount
		contentLength = rec.Content.ContentLength
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO pages
		(url, status_code, title, meta_description, canonical_url, h1,
		 word_count, content_length, internal_links_count, error, crawled_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.URL, rec.StatusCode, title, metaDesc, canonical, h1,
		wordCount, contentLength, rec.InternalLinksCount, rec.Error,
		time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save page %s: %w", rec.URL, err)
	}
	return nil
}

// SaveLinks stores the outgoing edges of one page. Repeated edges are
// ignored.
func (s *SQLiteStorage) SaveLinks(sourceURL string, targetURLs []string) error {
	if len(targetURLs) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO links (source_url, target_url, crawled_at)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC()
	for _, target := range targetURLs {
		if _, err := stmt.Exec(sourceURL, target, now); err != nil {
			return fmt.Errorf("failed to insert link %s -> %s: %w", sourceURL, target, err)
		}
	}
	return tx.Commit()
}

// SetMeta stores a run-level metadata value.
func (s *SQLiteStorage) SetMeta(key, value string) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO crawl_meta (key, value) VALUES (?, ?)
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set meta %s: %w", key, err)
	}
	return nil
}

// GetMeta returns a run-level metadata value, or "" when absent.
func (s *SQLiteStorage) GetMeta(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM crawl_meta WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get meta %s: %w", key, err)
	}
	return value, nil
}
