package storage

import (
	"context"
	"database/sql"

	"github.com/manualtls/manualtls/pkg/cert_provider/model"
)

type StorageContextKey string

const (
	TRANSACTION StorageContextKey = "transaction"
)

type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (Result, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

type Rows interface {
	Close()
	Err() error
	Next() bool
	Scan(dest ...any) error
}

type Row interface {
	Scan(dest ...any) error
}

type Result interface {
	// RowsAffected returns the number of rows affected by an
	// update, insert, or delete. Not every database or database
	// driver may support this.
	RowsAffected() (int64, error)
}

type CreateTxOption func(*sql.TxOptions)

type TransactionInterface interface {
	CreateTx(ctx context.Context, options ...CreateTxOption) (Tx, context.Context, error)
}

func TxOptionWithWrite(write bool) CreateTxOption {
	return func(option *sql.TxOptions) {
		option.ReadOnly = !write
	}
}

func TxOptionWithIsolationLevel(level sql.IsolationLevel) CreateTxOption {
	return func(option *sql.TxOptions) {
		option.Isolation = level
	}
}

// ListCertificateRequestsRequest is the request to list certificate requests.
type ListCertificateRequestsRequest struct {
	Offset int `json:"offset"` // Offset of the certificate requests to be listed.
	Limit  int `json:"limit"`  // Limit of the certificate requests to be listed.

	// Filters
	Fingerprints []string              `json:"fingerprints"` // Fingerprints of the certificate signing requests.
	Statuses     []model.RequestStatus `json:"statuses"`     // Statuses of the certificate requests.
	RelationIDs  []string              `json:"relation_ids"` // Relations whose requirer units announced the requests.
	Applications []string              `json:"applications"` // Applications whose units announced the requests.
}

// ListCertificateRequestsResult is the result of listing certificate requests.
type ListCertificateRequestsResult struct {
	Total   int64                      `json:"total"`   // Total number of certificate requests.
	Records []model.CertificateRequest `json:"records"` // Records of certificate requests.
}

// ListRelationsRequest is the request to list relations.
type ListRelationsRequest struct {
	Offset int `json:"offset"` // Offset of the relations to be listed.
	Limit  int `json:"limit"`  // Limit of the relations to be listed.

	// Filters
	IDs          []string `json:"ids"`          // The IDs of the relations.
	Applications []string `json:"applications"` // The requirer applications of the relations.
}

// ListRelationsResult is the result of listing relations.
type ListRelationsResult struct {
	Total   int64            `json:"total"`   // Total number of relations.
	Records []model.Relation `json:"records"` // Records of relations.
}

type OutboxMsg struct {
	RecID int64
	Key   string
	Kind  int
	Msg   []byte
}

type CertificateRequestStorage interface {
	CreateTx(ctx context.Context, options ...CreateTxOption) (Tx, context.Context, error)
	AddCertificateRequest(ctx context.Context, tx Tx, request model.CertificateRequest) error
	ListCertificateRequests(ctx context.Context, tx Tx, req ListCertificateRequestsRequest) (ListCertificateRequestsResult, error)
	DeleteCertificateRequests(ctx context.Context, tx Tx, fingerprints ...string) error

	UpsertRelation(ctx context.Context, tx Tx, relation model.Relation) error
	ListRelations(ctx context.Context, tx Tx, req ListRelationsRequest) (ListRelationsResult, error)
	DeleteRelation(ctx context.Context, tx Tx, relationID string) error

	AddHubOutboxMsg(ctx context.Context, tx Tx, ts int64, key string, kind int, payload []byte) error
	AddWebhookEvent(ctx context.Context, tx Tx, ts int64, key string, event *model.WebhookEvent) error
}

type HubOutboxStorage interface {
	CreateTx(ctx context.Context, options ...CreateTxOption) (Tx, context.Context, error)
	AddHubOutboxMsg(ctx context.Context, tx Tx, ts int64, key string, kind int, payload []byte) error
	GetHubOutboxMsg(ctx context.Context, tx Tx, batchSize int) ([]OutboxMsg, error)
	DeleteHubOutboxMsg(ctx context.Context, tx Tx, recIDs ...int64) error
}

type HubInboxStorage interface {
	CreateTx(ctx context.Context, options ...CreateTxOption) (Tx, context.Context, error)
	GetHubOffset(ctx context.Context, tx Tx, hubID string) (int64, error)
	UpdateHubOffset(ctx context.Context, tx Tx, hubID string, offset int64) error
}

type WebhookStorage interface {
	CreateTx(ctx context.Context, options ...CreateTxOption) (Tx, context.Context, error)
	AddWebhookEvent(ctx context.Context, tx Tx, ts int64, key string, event *model.WebhookEvent) error
	GetWebhookEvent(ctx context.Context, tx Tx, batchSize int) ([]OutboxMsg, error)
	DeleteWebhookEvent(ctx context.Context, tx Tx, recIDs ...int64) error
}
