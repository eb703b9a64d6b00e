package postgres

import (
	"context"

	"github.com/manualtls/manualtls/pkg/cert_provider/model"
	"github.com/manualtls/manualtls/pkg/cert_provider/storage"
)

func (s *_Storage) UpsertRelation(ctx context.Context, tx storage.Tx, relation model.Relation) error {
	query := `
INSERT INTO relation (id, application, version, created_at, updated_at, relation)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
	application = excluded.application,
	version = excluded.version,
	updated_at = excluded.updated_at,
	relation = excluded.relation
`
	_, err := tx.Exec(
		ctx,
		query,
		relation.ID,
		relation.Application,
		relation.Version,
		relation.CreatedAt,
		relation.UpdatedAt,
		relation,
	)
	if err != nil {
		return err
	}
	return nil
}

func (s *_Storage) ListRelations(ctx context.Context, tx storage.Tx, req storage.ListRelationsRequest) (storage.ListRelationsResult, error) {
	query := `
WITH filtered AS (
	SELECT rec_id, "relation" FROM relation
	WHERE
		(COALESCE(ARRAY_LENGTH($3::TEXT[], 1), 0) = 0 OR id = ANY($3)) AND
		(COALESCE(ARRAY_LENGTH($4::TEXT[], 1), 0) = 0 OR application = ANY($4))
)
, paged AS (
	SELECT "relation" FROM filtered
	ORDER BY rec_id ASC
	OFFSET $1 LIMIT $2
)
, total AS (
	SELECT COUNT(*) AS total FROM filtered
)
SELECT total, "relation" FROM paged FULL JOIN total ON FALSE
`
	rows, err := tx.Query(
		ctx,
		query,
		req.Offset,
		req.Limit,
		req.IDs,
		req.Applications,
	)
	if err != nil {
		return storage.ListRelationsResult{}, err
	}
	defer rows.Close()

	result := storage.ListRelationsResult{}
	for rows.Next() {
		var total *int64
		var relation *model.Relation
		if err := rows.Scan(&total, &relation); err != nil {
			return storage.ListRelationsResult{}, err
		}
		if total != nil {
			result.Total = *total
		}
		if relation != nil {
			result.Records = append(result.Records, *relation)
		}
	}
	if err := rows.Err(); err != nil {
		return storage.ListRelationsResult{}, err
	}

	return result, nil
}

func (s *_Storage) DeleteRelation(ctx context.Context, tx storage.Tx, relationID string) error {
	const query string = `DELETE FROM relation WHERE id = $1`
	_, err := tx.Exec(ctx, query, relationID)
	if err != nil {
		return err
	}
	return nil
}
