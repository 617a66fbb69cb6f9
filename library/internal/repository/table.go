package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Astemirdum/library-booking/library/internal/errs"
	"github.com/Astemirdum/library-booking/library/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// querier is implemented by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// table is a single-table data access helper. T must carry db tags for every column.
type table[T any] struct {
	name    string
	columns []string
	log     *zap.Logger
}

func (t table[T]) insert(ctx context.Context, q querier, values map[string]any) (T, error) {
	var zero T
	query, args, err := qb.Insert(t.name).
		SetMap(values).
		Suffix("returning " + strings.Join(t.columns, ", ")).
		ToSql()
	if err != nil {
		return zero, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return zero, err
	}
	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		t.log.Error("insert", zap.String("table", t.name), zap.String("q", query), zap.Error(err))
		return zero, err
	}
	return item, nil
}

func (t table[T]) findByID(ctx context.Context, q querier, id int, forUpdate bool) (T, error) {
	sb := qb.Select(t.columns...).
		From(t.name).
		Where(sq.Eq{"id": id}).
		Limit(1)
	if forUpdate {
		sb = sb.Suffix("for update")
	}
	return t.findOne(ctx, q, sb)
}

func (t table[T]) findOne(ctx context.Context, q querier, sb sq.SelectBuilder) (T, error) {
	var zero T
	query, args, err := sb.ToSql()
	if err != nil {
		return zero, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return zero, err
	}
	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, errs.ErrNotFound
		}
		return zero, err
	}
	return item, nil
}

// selectWhere returns rows matching pred (all rows when pred is nil) ordered by id.
func (t table[T]) selectWhere(ctx context.Context, q querier, pred sq.Sqlizer) ([]T, error) {
	sb := qb.Select(t.columns...).From(t.name).OrderBy("id")
	if pred != nil {
		sb = sb.Where(pred)
	}
	query, args, err := sb.ToSql()
	if err != nil {
		return nil, err
	}
	t.log.Debug("select", zap.String("query", query), zap.Any("args", args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("pgx.CollectRows: %w", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// update overwrites the given columns of row id. When nothing was touched the row is
// looked up again to tell a vanished row from a conflicting one.
func (t table[T]) update(ctx context.Context, q querier, id int, values map[string]any) (model.WriteResult, error) {
	query, args, err := qb.Update(t.name).
		SetMap(values).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.WriteInvalid, err
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if isInvalidData(err) {
			t.log.Warn("update rejected", zap.String("table", t.name), zap.Int("id", id), zap.Error(err))
			return model.WriteInvalid, nil
		}
		return model.WriteConflict, err
	}
	if tag.RowsAffected() == 0 {
		return t.missing(ctx, q, id)
	}
	return model.WriteOK, nil
}

func (t table[T]) delete(ctx context.Context, q querier, id int) (model.WriteResult, error) {
	query, args, err := qb.Delete(t.name).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.WriteInvalid, err
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return model.WriteConflict, err
	}
	if tag.RowsAffected() == 0 {
		return model.WriteNotFound, nil
	}
	return model.WriteOK, nil
}

func (t table[T]) missing(ctx context.Context, q querier, id int) (model.WriteResult, error) {
	ok, err := t.exists(ctx, q, id)
	if err != nil {
		return model.WriteConflict, err
	}
	if !ok {
		return model.WriteNotFound, nil
	}
	return model.WriteConflict, nil
}

func (t table[T]) exists(ctx context.Context, q querier, id int) (bool, error) {
	query := fmt.Sprintf(`select exists(select 1 from %s where id = $1)`, t.name)
	var ok bool
	if err := q.QueryRow(ctx, query, id).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrCode(err) == pgerrcode.UniqueViolation
}

func isInvalidData(err error) bool {
	switch pgErrCode(err) {
	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation, pgerrcode.InvalidTextRepresentation:
		return true
	}
	return false
}
