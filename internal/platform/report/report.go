// Package report implements the one endpoint pattern every reporting
// handler shares: run a primary query, apply the not-found rule, then gather
// declared sub-resource lists scoped by keys from the request.
package report

import (
	"context"

	"github.com/hie/agent/internal/platform/db"
	"github.com/hie/agent/internal/platform/shape"
)

// Sub declares one dependent query: the payload key it shapes into, the SQL,
// the field plan, and the bind arguments resolved from the request.
type Sub struct {
	Name string
	SQL  string
	Plan shape.Plan
	Args []any
}

// FetchSingle runs the primary single-entity query. When the primary result
// is empty it returns (nil, nil) and issues no sub-resource queries at all.
// Otherwise it shapes the first row and attaches every sub-resource list in
// declaration order; an empty sub-resource shapes to an empty sequence.
func FetchSingle(ctx context.Context, ds db.Datasource, sql string, args []any, plan shape.Plan, subs []Sub) (map[string]any, error) {
	row, err := ds.QueryFirst(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}

	payload := shape.Map(row, plan)
	for _, sub := range subs {
		rows, err := ds.QueryRows(ctx, sub.SQL, sub.Args...)
		if err != nil {
			return nil, err
		}
		payload[sub.Name] = mapRows(rows, sub.Plan)
	}
	return payload, nil
}

// FetchList runs a listing query where the whole result set is the primary:
// the caller maps an empty list to the not-found envelope.
func FetchList(ctx context.Context, ds db.Datasource, sql string, args []any, plan shape.Plan) ([]map[string]any, error) {
	rows, err := ds.QueryRows(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return mapRows(rows, plan), nil
}

func mapRows(rows []db.Row, plan shape.Plan) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, shape.Map(row, plan))
	}
	return out
}
