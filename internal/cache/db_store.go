package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/wiktwords/schemas"
)

// cacheEntry is a row of the cache_entries table.
type cacheEntry struct {
	Key     string `db:"cache_key"`
	Content []byte `db:"content"`
}

// DBStore keeps cache entries in a SQL table. It works with both the MySQL
// and the SQLite drivers.
type DBStore struct {
	db *sqlx.DB
}

func NewDBStore(db *sqlx.DB) *DBStore {
	return &DBStore{db: db}
}

// Migrate applies the embedded schema files in lexical order.
func (s *DBStore) Migrate(ctx context.Context) error {
	files, err := fs.Glob(schemas.Migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("fs.Glob > %w", err)
	}
	sort.Strings(files)
	for _, file := range files {
		statement, err := fs.ReadFile(schemas.Migrations, file)
		if err != nil {
			return fmt.Errorf("fs.ReadFile(%s) > %w", file, err)
		}
		if _, err := s.db.ExecContext(ctx, string(statement)); err != nil {
			return fmt.Errorf("db.ExecContext(%s) > %w", file, err)
		}
	}
	return nil
}

func (s *DBStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry cacheEntry
	err := s.db.GetContext(ctx, &entry, "SELECT cache_key, content FROM cache_entries WHERE cache_key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(cache_entry) > %w", err)
	}
	return entry.Content, nil
}

// Put inserts a new entry. An existing key makes the insert fail, so the
// first stored content stays authoritative.
func (s *DBStore) Put(ctx context.Context, key string, content []byte) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO cache_entries (cache_key, content) VALUES (?, ?)",
		key, content)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert cache_entry) > %w", err)
	}
	return nil
}
