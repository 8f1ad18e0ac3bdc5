package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Row is one result row from the clinical database: column name to a
// loosely-typed, possibly nil scalar. Rows are produced once, consumed once
// by the response shaper, and never mutated.
type Row map[string]any

// Datasource runs parameterized read-only queries against the hospital
// information system. Handlers depend on this seam rather than the pool so
// tests can count and stub calls. Arguments are always bind parameters,
// never interpolated into the SQL text.
type Datasource interface {
	// QueryRows runs the query and materializes every row.
	QueryRows(ctx context.Context, sql string, args ...any) ([]Row, error)

	// QueryFirst runs the query and returns the first row, or nil when the
	// result set is empty.
	QueryFirst(ctx context.Context, sql string, args ...any) (Row, error)
}

// PoolDatasource implements Datasource on a pgx connection pool. Connections
// are acquired per query and released on every exit path; cancelling the
// request context aborts the in-flight query.
type PoolDatasource struct {
	pool *pgxpool.Pool
}

func NewPoolDatasource(pool *pgxpool.Pool) *PoolDatasource {
	return &PoolDatasource{pool: pool}
}

func (d *PoolDatasource) QueryRows(ctx context.Context, sql string, args ...any) ([]Row, error) {
	rows, err := d.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRows(rows)
}

func (d *PoolDatasource) QueryFirst(ctx context.Context, sql string, args ...any) (Row, error) {
	rows, err := d.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	row, err := rowToMap(rows)
	if err != nil {
		return nil, err
	}
	return row, rows.Err()
}

func collectRows(rows pgx.Rows) ([]Row, error) {
	out := []Row{}
	for rows.Next() {
		row, err := rowToMap(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func rowToMap(rows pgx.Rows) (Row, error) {
	values, err := rows.Values()
	if err != nil {
		return nil, err
	}
	fields := rows.FieldDescriptions()
	row := make(Row, len(fields))
	for i, fd := range fields {
		row[fd.Name] = values[i]
	}
	return row, nil
}
