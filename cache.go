package picores

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Cache stores compiled fragments keyed by the SHA-1 of their source and
// any options that affect the output. As compilation is deterministic a hit
// is byte for byte what compiling again would produce.
type Cache struct {
	db *sql.DB
}

// NewCache opens or creates the cache database in file.
func NewCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS fragment (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL, sha1 TEXT NOT NULL, options TEXT NOT NULL, fragment BLOB NOT NULL, UNIQUE(name, sha1, options))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Find returns the fragment previously stored for name, or nil if there
// isn't one.
func (c *Cache) Find(name, sha, options string) ([]byte, error) {
	var fragment []byte
	switch err := c.db.QueryRow("SELECT fragment FROM fragment WHERE name = ? AND sha1 = ? AND options = ?", name, sha, options).Scan(&fragment); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return fragment, nil
	default:
		return nil, err
	}
}

// Store records the fragment compiled for name, replacing any older
// fragment for the same name as its source is presumably out of date.
func (c *Cache) Store(name, sha, options string, fragment []byte) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}

	if _, err = tx.Exec("DELETE FROM fragment WHERE name = ?", name); err != nil {
		tx.Rollback()
		return err
	}

	if _, err = tx.Exec("INSERT INTO fragment (name, sha1, options, fragment) VALUES (?, ?, ?, ?)", name, sha, options, fragment); err != nil {
		tx.Rollback()
		return fmt.Errorf("cache: %w", err)
	}

	return tx.Commit()
}
