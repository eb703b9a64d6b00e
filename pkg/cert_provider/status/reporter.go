package status

import (
	"context"
	"fmt"

	"github.com/manualtls/manualtls/pkg/cert_provider/leader"
	"github.com/manualtls/manualtls/pkg/cert_provider/model"
	"github.com/manualtls/manualtls/pkg/cert_provider/storage"
)

// Reporter derives the unit status shown by the orchestration runtime.
type Reporter interface {
	Report(ctx context.Context) model.UnitStatus
}

type _Reporter struct {
	certStorage storage.CertificateRequestStorage
	elector     leader.Elector
	unitName    string
}

func NewReporter(certStorage storage.CertificateRequestStorage, elector leader.Elector, unitName string) Reporter {
	return &_Reporter{
		certStorage: certStorage,
		elector:     elector,
		unitName:    unitName,
	}
}

// Report is structural health. A unit with a certificates relation is active
// even while requests remain outstanding, and it does not regress when some
// requests are never fulfilled.
func (r *_Reporter) Report(ctx context.Context) model.UnitStatus {
	tx, ctx, err := r.certStorage.CreateTx(ctx)
	if err != nil {
		return model.UnitStatus{
			Status:  model.UnitStateError,
			Message: fmt.Sprintf("storage unavailable: %v", err),
		}
	}
	defer tx.Rollback(ctx)

	relations, err := r.certStorage.ListRelations(ctx, tx, storage.ListRelationsRequest{Limit: 1})
	if err != nil {
		return model.UnitStatus{
			Status:  model.UnitStateError,
			Message: fmt.Sprintf("storage unavailable: %v", err),
		}
	}
	if relations.Total == 0 {
		return model.UnitStatus{
			Status:  model.UnitStateWaiting,
			Message: "no certificates relation",
		}
	}

	role := "standby"
	if r.elector.IsLeader(ctx) {
		role = "leader"
	}
	return model.UnitStatus{
		Status:  model.UnitStateActive,
		Message: fmt.Sprintf("%d certificates relation(s), %s unit %s", relations.Total, role, r.unitName),
	}
}
