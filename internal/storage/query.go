package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/museum-pulse/internal/common"
	"github.com/mattn/go-sqlite3"
)

// Result is the tabular output of a query.
type Result struct {
	Columns []string `json:"columns" yaml:"columns"`
	Rows    [][]any  `json:"rows" yaml:"rows"`
}

// Query runs one read-only statement. Only SELECT and WITH statements are
// accepted, and the connection is switched to query_only while it runs so
// that a data-modifying CTE is refused by SQLite itself.
func (s *SQLiteStorage) Query(ctx context.Context, statement string) (*Result, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	statement = strings.TrimSuffix(strings.TrimSpace(statement), ";")
	if !isReadOnly(statement) {
		return nil, fmt.Errorf("%w: %q", common.ErrReadOnlyQuery, firstWord(statement))
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if _, err := conn.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable query_only: %w", err)
	}
	defer func() { _, _ = conn.ExecContext(context.Background(), "PRAGMA query_only = OFF") }()

	rows, err := conn.QueryContext(ctx, statement)
	if err != nil {
		return nil, wrapQueryError(err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	result := &Result{Columns: columns, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryError(err)
	}
	return result, nil
}

func isReadOnly(statement string) bool {
	switch strings.ToUpper(firstWord(statement)) {
	case "SELECT", "WITH":
		return true
	}
	return false
}

func firstWord(statement string) string {
	fields := strings.Fields(statement)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimLeft(fields[0], "(")
}

func wrapQueryError(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrReadonly {
		return fmt.Errorf("%w: %w", common.ErrReadOnlyQuery, err)
	}
	return fmt.Errorf("query failed: %w", err)
}
