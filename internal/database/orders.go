package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/TemirB/kitchen-board/internal/config"
	"github.com/TemirB/kitchen-board/internal/domain"
)

const orderColumns = `order_uid, number, status, board_column, payload, updated_at`

type OrderRepo struct {
	db     DB
	tables config.Tables
}

func NewOrderRepo(db DB, t config.Tables) *OrderRepo {
	return &OrderRepo{db: db, tables: t}
}

func (r *OrderRepo) orders() string     { return qt(r.tables.Schema, r.tables.Order) }
func (r *OrderRepo) categories() string { return qt(r.tables.Schema, r.tables.Category) }

func (r *OrderRepo) GetByUID(ctx context.Context, uid string) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM %s WHERE order_uid=$1
	`, orderColumns, r.orders()), uid)

	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// ListActive returns non-terminal orders, oldest display number first.
func (r *OrderRepo) ListActive(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE status NOT IN ($1, $2)
		ORDER BY number ASC
	`, orderColumns, r.orders()), domain.StatusEntregue, domain.StatusCancelado)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *OrderRepo) RecentOrderUIDs(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT order_uid FROM %s
		ORDER BY updated_at DESC
		LIMIT $1
	`, r.orders()), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var uids []string
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, err
		}
		uids = append(uids, uid)
	}
	return uids, rows.Err()
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, uid string, status domain.Status) error {
	tag, err := r.db.Exec(ctx, fmt.Sprintf(`
		UPDATE %s SET status=$2, updated_at=now() WHERE order_uid=$1
	`, r.orders()), uid, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) UpdateBoardColumn(ctx context.Context, uid string, column domain.BoardColumn) error {
	tag, err := r.db.Exec(ctx, fmt.Sprintf(`
		UPDATE %s SET board_column=NULLIF($2, ''), updated_at=now() WHERE order_uid=$1
	`, r.orders()), uid, column)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ApplyConfirmation overwrites the projection with the store's view. A nil
// BoardColumn leaves the column as it is.
func (r *OrderRepo) ApplyConfirmation(ctx context.Context, c domain.Confirmation) (*domain.Order, error) {
	setColumn := c.BoardColumn != nil
	var column string
	if setColumn {
		column = string(*c.BoardColumn)
	}

	row := r.db.QueryRow(ctx, fmt.Sprintf(`
		UPDATE %s SET
			status=$2,
			board_column=CASE WHEN $3 THEN NULLIF($4, '') ELSE board_column END,
			updated_at=$5
		WHERE order_uid=$1
		RETURNING %s
	`, r.orders(), orderColumns), c.OrderUID, c.Status, setColumn, column, c.ConfirmedAt)

	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`SELECT name FROM %s`, r.categories()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o      domain.Order
		column *string
	)
	if err := row.Scan(&o.OrderUID, &o.Number, &o.Status, &column, &o.Payload, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.BoardColumn = normalizeColumn(column)
	return &o, nil
}

// normalizeColumn drops malformed stored columns so the projection never
// carries a half-formed identifier.
func normalizeColumn(raw *string) domain.BoardColumn {
	if raw == nil {
		return ""
	}
	c := domain.BoardColumn(*raw)
	if _, ok := c.Index(); !ok {
		return ""
	}
	return c
}
