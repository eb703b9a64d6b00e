package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/manualtls/manualtls/pkg/cert_provider/storage"
)

func (s *_Storage) GetHubOffset(ctx context.Context, tx storage.Tx, hubID string) (int64, error) {
	const query string = `SELECT consumed_offset FROM hub_offset WHERE hub_id = $1`
	row := tx.QueryRow(ctx, query, hubID)
	var offset int64
	if err := row.Scan(&offset); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, sql.ErrNoRows
		}
		return 0, err
	}
	return offset, nil
}

func (s *_Storage) UpdateHubOffset(ctx context.Context, tx storage.Tx, hubID string, offset int64) error {
	const query string = `
INSERT INTO hub_offset (hub_id, consumed_offset, updated_at) VALUES ($1, $2, EXTRACT(EPOCH FROM NOW()))
ON CONFLICT (hub_id) DO UPDATE SET
	consumed_offset = EXCLUDED.consumed_offset,
	updated_at = EXCLUDED.updated_at
`
	_, err := tx.Exec(ctx, query, hubID, offset)
	if err != nil {
		return err
	}
	return nil
}
