// ABOUTME: SQLite-based store implementation for persistent key-value data
// ABOUTME: Provides a file-based store that survives application restarts

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"time"

	_ "github.com/mattn/go-sqlite3"

	coreerrors "shoplist-api/core/errors"
	"shoplist-api/core/interfaces"
)

const tableName = "kv_store"

// Client implements the Store interface using SQLite
type Client struct {
	db       *sql.DB
	filePath string
	queries  *StoreQueryBuilder
	logger   Logger
}

// NewSQLiteStore creates a new SQLite store client
func NewSQLiteStore(filePath string, logger Logger) (*Client, error) {
	if filePath == "" {
		filePath = "shoplist.db"
	}

	db, err := sql.Open("sqlite3", filePath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	client := &Client{
		db:       db,
		filePath: filePath,
		queries:  NewStoreQueryBuilder(tableName),
		logger:   logger,
	}

	if err := client.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return client, nil
}

// initSchema creates the store table if it doesn't exist
func (c *Client) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS ` + tableName + ` (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`

	_, err := c.db.Exec(query)
	return err
}

// Get retrieves a value from the store
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key, c.logger); err != nil {
		return nil, err
	}

	var value []byte
	query, params := c.queries.GetQuery(key)
	err := c.db.QueryRowContext(ctx, query, params...).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, coreerrors.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get value: %w", err)
	}

	return value, nil
}

// Set stores a value, replacing any existing one
func (c *Client) Set(ctx context.Context, key string, value []byte) error {
	if err := ValidateKey(key, c.logger); err != nil {
		return err
	}
	if err := ValidateValue(value); err != nil {
		return err
	}

	query, params := c.queries.SetQuery(key, value, time.Now().Unix())
	if _, err := c.db.ExecContext(ctx, query, params...); err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}

	return nil
}

// SetIfAbsent stores a value only when the key is free
func (c *Client) SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	if err := ValidateKey(key, c.logger); err != nil {
		return false, err
	}
	if err := ValidateValue(value); err != nil {
		return false, err
	}

	query, params := c.queries.SetIfAbsentQuery(key, value, time.Now().Unix())
	result, err := c.db.ExecContext(ctx, query, params...)
	if err != nil {
		return false, fmt.Errorf("failed to insert value: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}

	return affected == 1, nil
}

// Delete removes a key from the store
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key, c.logger); err != nil {
		return err
	}

	query, params := c.queries.DeleteQuery(key)
	if _, err := c.db.ExecContext(ctx, query, params...); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}

	return nil
}

// Scan yields entries under prefix. Rows are read up front so callers may
// write to the database while ranging over the results.
func (c *Client) Scan(ctx context.Context, prefix string) iter.Seq2[interfaces.Entry, error] {
	return func(yield func(interfaces.Entry, error) bool) {
		entries, err := c.scanAll(ctx, prefix)
		if err != nil {
			yield(interfaces.Entry{}, err)
			return
		}

		for _, entry := range entries {
			if !yield(entry, nil) {
				return
			}
		}
	}
}

func (c *Client) scanAll(ctx context.Context, prefix string) ([]interfaces.Entry, error) {
	query, params := c.queries.ScanQuery(prefix)
	rows, err := c.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to scan prefix: %w", err)
	}
	defer rows.Close()

	var entries []interfaces.Entry
	for rows.Next() {
		var entry interfaces.Entry
		if err := rows.Scan(&entry.Key, &entry.Value); err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Close closes the database connection
func (c *Client) Close() error {
	return c.db.Close()
}

// Stats returns store statistics
func (c *Client) Stats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var count int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM " + tableName).Scan(&count); err != nil {
		return nil, err
	}
	stats["total_entries"] = count

	var pageCount, pageSize int
	err := c.db.QueryRow("PRAGMA page_count").Scan(&pageCount)
	if err == nil {
		err = c.db.QueryRow("PRAGMA page_size").Scan(&pageSize)
		if err == nil {
			stats["db_size_bytes"] = pageCount * pageSize
		}
	}

	stats["file_path"] = c.filePath

	return stats, nil
}
