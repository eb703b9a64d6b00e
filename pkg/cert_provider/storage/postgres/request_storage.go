package postgres

import (
	"context"

	"github.com/manualtls/manualtls/pkg/cert_provider/model"
	"github.com/manualtls/manualtls/pkg/cert_provider/storage"
)

func (s *_Storage) AddCertificateRequest(ctx context.Context, tx storage.Tx, request model.CertificateRequest) error {
	query := `
WITH ins AS (
	INSERT INTO cert_request (fingerprint, version, status, created_at, updated_at, request)
	VALUES ($1, $2, $3, $4, $4, $5)
	ON CONFLICT (fingerprint) DO UPDATE SET
		version = excluded.version,
		status = excluded.status,
		updated_at = excluded.updated_at,
		request = excluded.request
	RETURNING fingerprint, version, updated_at, request
)
INSERT INTO cert_request_history (fingerprint, version, created_at, request)
SELECT * FROM ins
`
	_, err := tx.Exec(
		ctx,
		query,
		request.Fingerprint,
		request.Version,
		request.Status,
		max(request.CreatedAt, request.FulfilledAt),
		request,
	)
	if err != nil {
		return err
	}
	return nil
}

func (s *_Storage) ListCertificateRequests(ctx context.Context, tx storage.Tx, req storage.ListCertificateRequestsRequest) (storage.ListCertificateRequestsResult, error) {
	query := `
WITH filtered AS (
	SELECT rec_id, "request" FROM cert_request
	WHERE
		(COALESCE(ARRAY_LENGTH($3::TEXT[], 1), 0) = 0 OR fingerprint = ANY($3)) AND
		(COALESCE(ARRAY_LENGTH($4::TEXT[], 1), 0) = 0 OR status = ANY($4)) AND
		(COALESCE(ARRAY_LENGTH($5::TEXT[], 1), 0) = 0 OR EXISTS (
			SELECT 1 FROM JSONB_ARRAY_ELEMENTS("request"->'requirers') AS requirer
			WHERE requirer->>'relation_id' = ANY($5)
		)) AND
		(COALESCE(ARRAY_LENGTH($6::TEXT[], 1), 0) = 0 OR EXISTS (
			SELECT 1 FROM JSONB_ARRAY_ELEMENTS("request"->'requirers') AS requirer
			WHERE requirer->>'application' = ANY($6)
		))
)
, paged AS (
	SELECT "request" FROM filtered
	ORDER BY rec_id ASC
	OFFSET $1 LIMIT $2
)
, total AS (
	SELECT COUNT(*) AS total FROM filtered
)
SELECT total, "request" FROM paged FULL JOIN total ON FALSE
`
	rows, err := tx.Query(
		ctx,
		query,
		req.Offset,
		req.Limit,
		req.Fingerprints,
		req.Statuses,
		req.RelationIDs,
		req.Applications,
	)
	if err != nil {
		return storage.ListCertificateRequestsResult{}, err
	}
	defer rows.Close()

	result := storage.ListCertificateRequestsResult{}
	for rows.Next() {
		var total *int64
		var request *model.CertificateRequest
		if err := rows.Scan(&total, &request); err != nil {
			return storage.ListCertificateRequestsResult{}, err
		}
		if total != nil {
			result.Total = *total
		}
		if request != nil {
			result.Records = append(result.Records, *request)
		}
	}
	if err := rows.Err(); err != nil {
		return storage.ListCertificateRequestsResult{}, err
	}

	return result, nil
}

func (s *_Storage) DeleteCertificateRequests(ctx context.Context, tx storage.Tx, fingerprints ...string) error {
	if len(fingerprints) == 0 {
		return nil
	}

	const query string = `DELETE FROM cert_request WHERE fingerprint = ANY($1)`
	_, err := tx.Exec(ctx, query, fingerprints)
	if err != nil {
		return err
	}
	return nil
}
