package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/manualtls/manualtls/pkg/cert_provider/model"
	"github.com/manualtls/manualtls/pkg/cert_provider/storage"
)

func (s *_Storage) AddHubOutboxMsg(ctx context.Context, tx storage.Tx, ts int64, key string, kind int, payload []byte) error {
	const query string = `INSERT INTO hub_outbox (key, kind, payload, created_at) VALUES ($1, $2, $3, $4)`
	_, err := tx.Exec(ctx, query, key, kind, payload, ts)
	if err != nil {
		return err
	}
	return nil
}

func (s *_Storage) GetHubOutboxMsg(ctx context.Context, tx storage.Tx, batchSize int) ([]storage.OutboxMsg, error) {
	const query string = `SELECT rec_id, key, kind, payload FROM hub_outbox ORDER BY rec_id ASC LIMIT $1`
	rows, err := tx.Query(ctx, query, batchSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]storage.OutboxMsg, 0, batchSize)
	for rows.Next() {
		var recID int64
		var key string
		var kind int
		var payload []byte
		if err := rows.Scan(&recID, &key, &kind, &payload); err != nil {
			return nil, err
		}
		record := storage.OutboxMsg{
			RecID: recID,
			Key:   key,
			Kind:  kind,
			Msg:   payload,
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (s *_Storage) DeleteHubOutboxMsg(ctx context.Context, tx storage.Tx, recIDs ...int64) error {
	if len(recIDs) == 0 {
		return nil
	}

	const query string = `DELETE FROM hub_outbox WHERE rec_id = ANY($1)`
	_, err := tx.Exec(ctx, query, recIDs)
	if err != nil {
		return err
	}
	return nil
}

func (s *_Storage) AddWebhookEvent(ctx context.Context, tx storage.Tx, ts int64, key string, event *model.WebhookEvent) error {
	if event == nil {
		return nil
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	const query string = `INSERT INTO webhook_outbox (created_at, key, event) VALUES ($1, $2, $3)`
	_, err = tx.Exec(
		ctx,
		query,
		ts,
		key,
		data,
	)
	if err != nil {
		return err
	}

	return nil
}

func (s *_Storage) GetWebhookEvent(ctx context.Context, tx storage.Tx, batchSize int) ([]storage.OutboxMsg, error) {
	const query string = `SELECT rec_id, key, event FROM webhook_outbox ORDER BY rec_id ASC LIMIT $1`
	rows, err := tx.Query(ctx, query, batchSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]storage.OutboxMsg, 0, batchSize)
	for rows.Next() {
		var recID sql.NullInt64
		var key sql.NullString
		data := make([]byte, 0)
		if err := rows.Scan(&recID, &key, &data); err != nil {
			return nil, err
		}
		record := storage.OutboxMsg{
			RecID: recID.Int64,
			Key:   key.String,
			Msg:   data,
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (s *_Storage) DeleteWebhookEvent(ctx context.Context, tx storage.Tx, recIDs ...int64) error {
	if len(recIDs) == 0 {
		return nil
	}

	const query string = `DELETE FROM webhook_outbox WHERE rec_id = ANY($1)`
	_, err := tx.Exec(ctx, query, recIDs)
	if err != nil {
		return err
	}
	return nil
}
