package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/mamadbah2/flockbook/internal/domain/apperrors"
	"github.com/mamadbah2/flockbook/internal/metrics"
)

// Table describes how a record type maps onto a table. Columns lists the
// editable columns in bind order and Values must return them in the same order.
// Record structs carry a `db` tag for "id" and for every column.
type Table[T any] struct {
	Name    string
	Columns []string
	OrderBy string
	Values  func(rec *T) []any
}

// Resource implements list/create/update/delete for one table.
type Resource[T any] struct {
	db     Querier
	table  Table[T]
	logger *zap.Logger

	listSQL   string
	insertSQL string
	updateSQL string
	deleteSQL string
}

// NewResource prepares the statements for a table descriptor.
func NewResource[T any](db Querier, table Table[T], logger *zap.Logger) *Resource[T] {
	if logger == nil {
		logger = zap.NewNop()
	}

	ident := pgx.Identifier{table.Name}.Sanitize()
	returning := "id, " + strings.Join(table.Columns, ", ")

	placeholders := make([]string, len(table.Columns))
	assignments := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		assignments[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}

	return &Resource[T]{
		db:     db,
		table:  table,
		logger: logger.With(zap.String("table", table.Name)),
		listSQL: fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
			returning, ident, table.OrderBy),
		insertSQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
			ident, strings.Join(table.Columns, ", "), strings.Join(placeholders, ", "), returning),
		updateSQL: fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
			ident, strings.Join(assignments, ", "), len(table.Columns)+1, returning),
		deleteSQL: fmt.Sprintf("DELETE FROM %s WHERE id = $1", ident),
	}
}

// List returns every row in the table's configured order.
func (r *Resource[T]) List(ctx context.Context) (out []*T, err error) {
	defer observe("list", r.table.Name, time.Now(), &err)

	rows, err := r.db.Query(ctx, r.listSQL)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table.Name, err)
	}

	out, err = pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", r.table.Name, err)
	}
	if out == nil {
		out = []*T{}
	}
	return out, nil
}

// Create inserts one row and returns it with its generated id.
func (r *Resource[T]) Create(ctx context.Context, rec *T) (out *T, err error) {
	defer observe("create", r.table.Name, time.Now(), &err)

	rows, err := r.db.Query(ctx, r.insertSQL, r.table.Values(rec)...)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", r.table.Name, err)
	}

	out, err = pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", r.table.Name, err)
	}

	r.logger.Debug("row created")
	return out, nil
}

// Update overwrites every editable column of the row with the given id.
// It returns apperrors.ErrNotFound when no row matches.
func (r *Resource[T]) Update(ctx context.Context, id int64, rec *T) (out *T, err error) {
	defer observe("update", r.table.Name, time.Now(), &err)

	args := append(r.table.Values(rec), id)
	rows, err := r.db.Query(ctx, r.updateSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("update %s %d: %w", r.table.Name, id, err)
	}

	out, err = pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("update %s %d: %w", r.table.Name, id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update %s %d: %w", r.table.Name, id, err)
	}

	r.logger.Debug("row updated", zap.Int64("id", id))
	return out, nil
}

// Delete removes the row with the given id. It returns apperrors.ErrNotFound when no row matches.
func (r *Resource[T]) Delete(ctx context.Context, id int64) (err error) {
	defer observe("delete", r.table.Name, time.Now(), &err)

	result, err := r.db.Exec(ctx, r.deleteSQL, id)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", r.table.Name, id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete %s %d: %w", r.table.Name, id, apperrors.ErrNotFound)
	}

	r.logger.Debug("row deleted", zap.Int64("id", id))
	return nil
}

func observe(operation, table string, start time.Time, errp *error) {
	err := *errp
	if errors.Is(err, apperrors.ErrNotFound) {
		err = nil
	}
	metrics.ObserveQuery(operation, table, start, err)
}
