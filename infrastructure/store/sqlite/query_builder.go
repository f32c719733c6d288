// ABOUTME: Safe SQL query builder for SQLite store operations
// ABOUTME: Enforces parameterization and prevents SQL injection attacks

package sqlite

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Logger interface - minimal interface to avoid circular dependencies
type Logger interface {
	Warn(msg string, fields map[string]interface{})
}

// QueryBuilder provides a safe way to build SQL queries with automatic parameterization
type QueryBuilder struct {
	query  string
	params []interface{}
}

// Table and column name validation - only alphanumeric, underscore allowed
var (
	safeNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	// Maximum lengths to prevent DoS
	maxKeyLength = 255
	// Well above the 1MB API request limit plus the share entry envelope
	maxValueLength = 8 * 1024 * 1024
)

// NewQueryBuilder creates a new query builder instance
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{
		params: make([]interface{}, 0),
	}
}

// validateName validates table/column names to prevent SQL injection
func (qb *QueryBuilder) validateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}

	if !safeNamePattern.MatchString(name) {
		return fmt.Errorf("invalid name: %s (only alphanumeric and underscore allowed)", name)
	}

	if len(name) > 64 {
		return fmt.Errorf("name too long: %s (max 64 characters)", name)
	}

	return nil
}

// Select builds a SELECT query
func (qb *QueryBuilder) Select(columns ...string) *QueryBuilder {
	for _, col := range columns {
		if err := qb.validateName(col); err != nil {
			// Invalid column names fall back to *
			qb.query = "SELECT * "
			return qb
		}
	}

	if len(columns) == 0 {
		qb.query = "SELECT * "
	} else {
		qb.query = "SELECT " + strings.Join(columns, ", ") + " "
	}

	return qb
}

// From adds FROM clause
func (qb *QueryBuilder) From(table string) *QueryBuilder {
	if err := qb.validateName(table); err != nil {
		return qb
	}

	qb.query += "FROM " + table + " "
	return qb
}

// Where adds WHERE clause with parameterized conditions
func (qb *QueryBuilder) Where(column string, operator string, value interface{}) *QueryBuilder {
	if err := qb.validateName(column); err != nil {
		return qb
	}

	allowedOperators := map[string]bool{
		"=":  true,
		"!=": true,
		">":  true,
		"<":  true,
		">=": true,
		"<=": true,
	}

	if !allowedOperators[operator] {
		operator = "="
	}

	if strings.Contains(qb.query, "WHERE") {
		qb.query += "AND "
	} else {
		qb.query += "WHERE "
	}

	qb.query += column + " " + operator + " ? "
	qb.params = append(qb.params, value)

	return qb
}

// InsertOrReplace builds an INSERT OR REPLACE query
func (qb *QueryBuilder) InsertOrReplace(table string) *QueryBuilder {
	if err := qb.validateName(table); err != nil {
		return qb
	}

	qb.query = "INSERT OR REPLACE INTO " + table + " "
	return qb
}

// InsertOrIgnore builds an INSERT OR IGNORE query
func (qb *QueryBuilder) InsertOrIgnore(table string) *QueryBuilder {
	if err := qb.validateName(table); err != nil {
		return qb
	}

	qb.query = "INSERT OR IGNORE INTO " + table + " "
	return qb
}

// Values adds VALUES clause
func (qb *QueryBuilder) Values(columns []string, values []interface{}) *QueryBuilder {
	if len(columns) != len(values) {
		return qb
	}

	validColumns := make([]string, 0, len(columns))
	validValues := make([]interface{}, 0, len(values))

	for i, col := range columns {
		if err := qb.validateName(col); err == nil {
			validColumns = append(validColumns, col)
			validValues = append(validValues, values[i])
		}
	}

	if len(validColumns) == 0 {
		return qb
	}

	placeholders := make([]string, len(validColumns))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	qb.query += "(" + strings.Join(validColumns, ", ") + ") VALUES (" + strings.Join(placeholders, ", ") + ")"
	qb.params = append(qb.params, validValues...)

	return qb
}

// Delete builds a DELETE query
func (qb *QueryBuilder) Delete(table string) *QueryBuilder {
	if err := qb.validateName(table); err != nil {
		return qb
	}

	qb.query = "DELETE FROM " + table + " "
	return qb
}

// Build returns the built query and parameters
func (qb *QueryBuilder) Build() (string, []interface{}) {
	return strings.TrimSpace(qb.query), qb.params
}

// ValidateKey validates a store key to prevent injection and other issues
func ValidateKey(key string, logger Logger) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	if len(key) > maxKeyLength {
		return fmt.Errorf("key too long: max %d characters", maxKeyLength)
	}

	if strings.Contains(key, "\x00") {
		return errors.New("key cannot contain null bytes")
	}

	// Parameterization handles these; they are only worth a warning
	suspiciousPatterns := []string{"--", "/*", "*/", ";", "'", "\"", "\\", "\n", "\r", "\t"}

	for _, pattern := range suspiciousPatterns {
		if strings.Contains(key, pattern) {
			if logger != nil {
				logger.Warn("Suspicious pattern detected in store key", map[string]interface{}{
					"pattern":     pattern,
					"key_length":  len(key),
					"key_preview": truncateKey(key),
				})
			}
		}
	}

	return nil
}

// truncateKey returns a safe preview of the key for logging
func truncateKey(key string) string {
	const maxPreview = 50
	if len(key) <= maxPreview {
		return key
	}
	return key[:maxPreview] + "..."
}

// ValidateValue validates a store value
func ValidateValue(value []byte) error {
	if len(value) == 0 {
		return errors.New("value cannot be empty")
	}

	if len(value) > maxValueLength {
		return fmt.Errorf("value too large: max %d bytes", maxValueLength)
	}

	return nil
}

// prefixUpperBound returns the smallest string greater than every string
// starting with prefix, or "" when no such bound exists.
func prefixUpperBound(prefix string) string {
	b := []byte(prefix)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < 0xFF {
			b[i]++
			return string(b[:i+1])
		}
	}
	return ""
}

// StoreQueryBuilder provides pre-built queries for store operations
type StoreQueryBuilder struct {
	table string
}

// NewStoreQueryBuilder creates a store-specific query builder
func NewStoreQueryBuilder(table string) *StoreQueryBuilder {
	return &StoreQueryBuilder{table: table}
}

// GetQuery builds a parameterized GET query
func (sq *StoreQueryBuilder) GetQuery(key string) (string, []interface{}) {
	return NewQueryBuilder().
		Select("value").
		From(sq.table).
		Where("key", "=", key).
		Build()
}

// SetQuery builds a parameterized SET query
func (sq *StoreQueryBuilder) SetQuery(key string, value []byte, updatedAt int64) (string, []interface{}) {
	return NewQueryBuilder().
		InsertOrReplace(sq.table).
		Values([]string{"key", "value", "updated_at"}, []interface{}{key, value, updatedAt}).
		Build()
}

// SetIfAbsentQuery builds a parameterized insert that leaves existing keys untouched
func (sq *StoreQueryBuilder) SetIfAbsentQuery(key string, value []byte, updatedAt int64) (string, []interface{}) {
	return NewQueryBuilder().
		InsertOrIgnore(sq.table).
		Values([]string{"key", "value", "updated_at"}, []interface{}{key, value, updatedAt}).
		Build()
}

// DeleteQuery builds a parameterized DELETE query
func (sq *StoreQueryBuilder) DeleteQuery(key string) (string, []interface{}) {
	return NewQueryBuilder().
		Delete(sq.table).
		Where("key", "=", key).
		Build()
}

// ScanQuery builds a range query over every key starting with prefix
func (sq *StoreQueryBuilder) ScanQuery(prefix string) (string, []interface{}) {
	qb := NewQueryBuilder().
		Select("key", "value").
		From(sq.table).
		Where("key", ">=", prefix)

	if upper := prefixUpperBound(prefix); upper != "" {
		qb.Where("key", "<", upper)
	}

	return qb.Build()
}
