package postgres

import (
	"database/sql"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

// maxRowsPerInsert keeps multi-row inserts well below the 65535 bind
// parameter limit of the postgres protocol.
const maxRowsPerInsert = 500

func isNotFound(err error) bool {
	return crerr.Is(err, sql.ErrNoRows)
}

// isForeignKeyViolation reports a 23503 error, raised when a child row
// references a parent the sync has not written yet.
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if !crerr.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23503"
}

// requireAffected turns a patch that matched no row into an assertion
// failure. Those are never retried by the job runner.
func requireAffected(result sql.Result, entity string, id any) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows for %s %v: %w", entity, id, err)
	}
	if affected == 0 {
		return crerr.AssertionFailedf("%s %v does not exist", entity, id)
	}
	return nil
}

func chunks[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	out := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}

func toAnySlice[T ~string](ids []T) []any {
	out := make([]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}

func nullableString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func stringFromNull(value sql.NullString) string {
	if !value.Valid {
		return ""
	}
	return value.String
}

// lastByKey drops earlier duplicates. Postgres rejects an INSERT ... ON
// CONFLICT DO UPDATE that touches the same row twice in one statement.
func lastByKey[T any, K comparable](items []T, key func(T) K) []T {
	index := make(map[K]int, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if i, ok := index[k]; ok {
			out[i] = item
			continue
		}
		index[k] = len(out)
		out = append(out, item)
	}
	return out
}
