package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/TemirB/kitchen-board/internal/config"
)

// OrderingStorage persists orderings as JSON values in a key/value table.
type OrderingStorage struct {
	db     DB
	tables config.Tables
}

func NewOrderingStorage(db DB, t config.Tables) *OrderingStorage {
	return &OrderingStorage{db: db, tables: t}
}

func (s *OrderingStorage) table() string { return qt(s.tables.Schema, s.tables.Ordering) }

func (s *OrderingStorage) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRow(ctx, fmt.Sprintf(`SELECT value FROM %s WHERE key=$1`, s.table()), key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *OrderingStorage) Save(ctx context.Context, key string, data []byte) error {
	_, err := s.db.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			value=EXCLUDED.value,
			updated_at=EXCLUDED.updated_at
	`, s.table()), key, string(data))
	return err
}
