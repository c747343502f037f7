package db

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
)

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// collect executes query and scans every row. An empty result is an empty,
// non-nil slice.
func collect[T any](ctx context.Context, q querier, query squirrel.Sqlizer, scan func(rows *sql.Rows) (T, error)) ([]T, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "can't build sql query")
	}
	log.Trace().Str("sql", sqlStr).Interface("args", args).Msg("Query")

	rows, err := q.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	return result, rows.Err()
}

// execBuilder executes a write statement and returns the number of affected rows
func execBuilder(ctx context.Context, ex execer, builder squirrel.Sqlizer) (int64, error) {
	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "can't build sql query")
	}
	log.Trace().Str("sql", sqlStr).Interface("args", args).Msg("Exec")

	res, err := ex.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// list runs a read-only query under the client's connection
func list[T any](ctx context.Context, s *Store, operation string, build func(d Dialect) squirrel.Sqlizer, scan func(rows *sql.Rows) (T, error)) ([]T, error) {
	var result []T
	err := s.client.with(operation, func(conn *sql.Conn, d Dialect) error {
		var err error
		result, err = collect(ctx, conn, build(d), scan)
		return dbError(err, "%s failed", operation)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
