package postgres

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/manualtls/manualtls/pkg/relay/server/storage"
	"github.com/manualtls/manualtls/pkg/util"
)

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool"`
}

func NewDBPool(config DatabaseConfig) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s&pool_max_conns=%d",
		url.PathEscape(config.User),
		url.PathEscape(config.Password),
		url.PathEscape(config.Host),
		config.Port,
		url.PathEscape(config.Database),
		url.QueryEscape(config.SSLMode),
		config.PoolSize,
	)

	dbPool, err := pgxpool.New(
		context.Background(),
		connString,
	)

	if err != nil {
		return nil, fmt.Errorf("open connection to database: %w", err)
	}

	err = dbPool.Ping(context.Background())
	if err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return dbPool, nil
}

// EventStorage implements HubDataStore interface.
type EventStorage struct {
	dbPool *pgxpool.Pool
}

func NewEventStorage(dbPool *pgxpool.Pool) *EventStorage {
	return &EventStorage{
		dbPool: dbPool,
	}
}

func NewEventStorageWithConfig(config DatabaseConfig) (*EventStorage, error) {
	dbPool, err := NewDBPool(config)
	if err != nil {
		return nil, err
	}
	return NewEventStorage(dbPool), nil
}

func (s *EventStorage) GetIdentity(ctx context.Context) (string, error) {
	txOption := pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	}
	tx, err := s.dbPool.BeginTx(ctx, txOption)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insertQuery := `INSERT INTO hub_identity (singleton, id, created_at) VALUES (TRUE, $1, $2) ON CONFLICT (singleton) DO NOTHING`
	if _, err := tx.Exec(ctx, insertQuery, util.NewUUID(), time.Now().Unix()); err != nil {
		return "", fmt.Errorf("store identity: %w", err)
	}

	var identity string
	row := tx.QueryRow(ctx, `SELECT id FROM hub_identity WHERE singleton = TRUE`)
	if err := row.Scan(&identity); err != nil {
		return "", fmt.Errorf("scan identity: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit transaction: %w", err)
	}

	return identity, nil
}

func (s *EventStorage) StoreEventWithOffsetInfo(
	ctx context.Context,
	ts int64,
	eventID string,
	eventType int,
	event []byte,
	offset int64,
	peerId string,
) (int64, error) {
	txOption := pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	}
	tx, err := s.dbPool.BeginTx(ctx, txOption)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var assignedOffset int64
	query := `INSERT INTO "event" (id, "type", created_at, "event") VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING RETURNING "offset"`
	row := tx.QueryRow(ctx, query, eventID, eventType, ts, event)
	if err := row.Scan(&assignedOffset); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, storage.ErrDuplicateEvent
		}
		return 0, fmt.Errorf("scan offset: %w", err)
	}

	if peerId != "" {
		if err := storeOffset(ctx, tx, ts, peerId, offset); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return assignedOffset, nil
}

func (s *EventStorage) ListEvents(ctx context.Context, request storage.ListEventRequest) (storage.ListEventResult, error) {
	txOption := pgx.TxOptions{
		AccessMode: pgx.ReadOnly,
	}
	tx, err := s.dbPool.BeginTx(ctx, txOption)
	if err != nil {
		return storage.ListEventResult{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
	SELECT
		id,
		created_at,
		"offset",
		"type",
		"event"
	FROM "event"
	WHERE
		($2 = 0 OR "offset" > $2) AND
		($3 = 0 OR "type" = $3)
	ORDER BY "offset" ASC
	LIMIT $1`

	rows, err := tx.Query(ctx, query, request.Limit, request.Offset, request.EventType)
	if err != nil {
		return storage.ListEventResult{}, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var result storage.ListEventResult
	for rows.Next() {
		event := storage.Event{}
		if err := rows.Scan(
			&event.ID,
			&event.Timestamp,
			&event.Offset,
			&event.Type,
			&event.Data,
		); err != nil {
			return storage.ListEventResult{}, fmt.Errorf("scan: %w", err)
		}
		result.Events = append(result.Events, event)
		if result.MaxOffset < event.Offset {
			result.MaxOffset = event.Offset
		}
	}

	if err := rows.Err(); err != nil {
		return storage.ListEventResult{}, fmt.Errorf("rows: %w", err)
	}

	return result, nil
}

func (s *EventStorage) StoreOffset(ctx context.Context, ts int64, peerId string, offset int64) error {
	txOption := pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	}
	tx, err := s.dbPool.BeginTx(ctx, txOption)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := storeOffset(ctx, tx, ts, peerId, offset); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (s *EventStorage) GetOffset(ctx context.Context, peerId string) (int64, error) {
	txOption := pgx.TxOptions{
		AccessMode: pgx.ReadOnly,
	}
	tx, err := s.dbPool.BeginTx(ctx, txOption)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var offset int64
	row := tx.QueryRow(ctx, `SELECT consumed_offset FROM hub_peer_offset WHERE peer_id = $1`, peerId)
	if err := row.Scan(&offset); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("scan offset: %w", err)
	}

	return offset, nil
}

func (s *EventStorage) Close() error {
	s.dbPool.Close()
	return nil
}

func storeOffset(ctx context.Context, tx pgx.Tx, ts int64, peerId string, offset int64) error {
	query := `
INSERT INTO hub_peer_offset (peer_id, consumed_offset, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (peer_id) DO UPDATE SET
	consumed_offset = EXCLUDED.consumed_offset,
	updated_at = EXCLUDED.updated_at
`
	if _, err := tx.Exec(ctx, query, peerId, offset, ts); err != nil {
		return fmt.Errorf("store offset: %w", err)
	}
	return nil
}
