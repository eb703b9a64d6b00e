package provision

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/manualtls/manualtls/pkg/cert_provider/leader"
	"github.com/manualtls/manualtls/pkg/cert_provider/model"
	"github.com/manualtls/manualtls/pkg/cert_provider/storage"
	mtlspkix "github.com/manualtls/manualtls/pkg/pkix"
	"github.com/manualtls/manualtls/pkg/relay"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

type CertProvider interface {
	ListCertificateRequests(ctx context.Context, req storage.ListCertificateRequestsRequest) (storage.ListCertificateRequestsResult, error)
	ListRelations(ctx context.Context, req storage.ListRelationsRequest) (storage.ListRelationsResult, error)

	// GetRelationCertificates renders the certificates list currently visible
	// to the requirer application of one relation.
	GetRelationCertificates(ctx context.Context, relationID string) (model.ProviderDatabagEvent, error)

	// ProvideCertificate binds operator supplied certificate material to the
	// outstanding request matching the given CSR. Re-providing for a
	// fulfilled request replaces the whole bundle and re-notifies every
	// interested requirer.
	ProvideCertificate(ctx context.Context, ts int64, req ProvideCertificateRequest) (model.CertificateRequest, error)

	// CreateRelation records a new certificates relation.
	CreateRelation(ctx context.Context, ts int64, req CreateRelationRequest) (model.Relation, error)

	// SyncRelation reconciles the announced CSR list of one requirer unit.
	// Entries not seen before are inserted as outstanding. Entries the unit
	// no longer announces are withdrawn.
	SyncRelation(ctx context.Context, ts int64, req SyncRelationRequest) (SyncRelationResult, error)

	// BreakRelation removes a relation and purges the certificate requests
	// announced only through it.
	BreakRelation(ctx context.Context, ts int64, req BreakRelationRequest) (BreakRelationResult, error)
}

type ProvideCertificateRequest struct {
	Requester string `json:"requester"` // Operator who provides the certificate.

	CertificateSigningRequest string `json:"certificate_signing_request"` // PEM encoded CSR identifying the request to fulfill.
	Certificate               string `json:"certificate"`                 // PEM encoded leaf certificate.
	CACertificate             string `json:"ca_certificate"`              // PEM encoded certificate of the signing CA.
	CAChain                   string `json:"ca_chain"`                    // PEM encoded CA chain. May contain multiple certificates.
}

type CreateRelationRequest struct {
	Requester   string `json:"requester"`   // Who reports the relation.
	RelationID  string `json:"relation_id"` // Relation ID assigned by the orchestrator.
	Application string `json:"application"` // Requirer application name.
}

type SyncRelationRequest struct {
	RelationID  string `json:"relation_id"` // ID of the certificates relation.
	Application string `json:"application"` // Requirer application name.
	Unit        string `json:"unit"`        // Requirer unit announcing the list. Format is <application>/<ordinal>.

	// The full announced list. Entries absent from the list are withdrawn.
	CertificateSigningRequests []model.CertificateSigningRequestEntry `json:"certificate_signing_requests"`
}

type BreakRelationRequest struct {
	Requester  string `json:"requester"`   // Who reports the teardown.
	RelationID string `json:"relation_id"` // ID of the relation being removed.
}

// RejectedEntry reports one announced entry whose CSR could not be parsed.
type RejectedEntry struct {
	CertificateSigningRequest string `json:"certificate_signing_request"` // The announced content.
	Reason                    string `json:"reason"`
}

type SyncRelationResult struct {
	Relation  model.Relation  `json:"relation"`
	Announced []string        `json:"announced"` // Fingerprints newly attached to the unit by this sync.
	Withdrawn []string        `json:"withdrawn"` // Fingerprints the unit no longer announces.
	Rejected  []RejectedEntry `json:"rejected"`  // Announced entries rejected without insertion.
}

type BreakRelationResult struct {
	Relation model.Relation `json:"relation"` // The removed relation.
	Purged   []string       `json:"purged"`   // Fingerprints of requests deleted with the relation.
}

type _CertProvider struct {
	certStorage storage.CertificateRequestStorage
	elector     leader.Elector
	unitName    string
	webhookURLs []string
}

func NewCertProvider(certStorage storage.CertificateRequestStorage, elector leader.Elector, unitName string, webhookURLs []string) *_CertProvider {
	return &_CertProvider{
		certStorage: certStorage,
		elector:     elector,
		unitName:    unitName,
		webhookURLs: webhookURLs,
	}
}

func (cp *_CertProvider) ListCertificateRequests(ctx context.Context, req storage.ListCertificateRequestsRequest) (storage.ListCertificateRequestsResult, error) {
	if err := ValidateListCertificateRequestsRequest(req); err != nil {
		return storage.ListCertificateRequestsResult{}, err
	}

	tx, ctx, err := cp.certStorage.CreateTx(ctx)
	if err != nil {
		return storage.ListCertificateRequestsResult{}, err
	}
	defer tx.Rollback(ctx)

	return cp.certStorage.ListCertificateRequests(ctx, tx, req)
}

func (cp *_CertProvider) ListRelations(ctx context.Context, req storage.ListRelationsRequest) (storage.ListRelationsResult, error) {
	if err := ValidateListRelationsRequest(req); err != nil {
		return storage.ListRelationsResult{}, err
	}

	tx, ctx, err := cp.certStorage.CreateTx(ctx)
	if err != nil {
		return storage.ListRelationsResult{}, err
	}
	defer tx.Rollback(ctx)

	return cp.certStorage.ListRelations(ctx, tx, req)
}

func (cp *_CertProvider) GetRelationCertificates(ctx context.Context, relationID string) (model.ProviderDatabagEvent, error) {
	if relationID == "" {
		return model.ProviderDatabagEvent{}, fmt.Errorf("relation_id is required %w", model.ErrInvalidParameter)
	}

	tx, ctx, err := cp.certStorage.CreateTx(ctx)
	if err != nil {
		return model.ProviderDatabagEvent{}, err
	}
	defer tx.Rollback(ctx)

	relation, err := cp.getRelation(ctx, tx, relationID)
	if err != nil {
		return model.ProviderDatabagEvent{}, err
	}
	return cp.renderProviderDatabag(ctx, tx, relation)
}

func (cp *_CertProvider) ProvideCertificate(ctx context.Context, ts int64, req ProvideCertificateRequest) (model.CertificateRequest, error) {
	if err := ValidateProvideCertificateRequest(req); err != nil {
		return model.CertificateRequest{}, err
	}

	csr, err := mtlspkix.ParseCertificateRequest([]byte(req.CertificateSigningRequest))
	if err != nil {
		return model.CertificateRequest{}, fmt.Errorf("failed to parse certificate signing request: %s%w", err.Error(), model.ErrInvalidParameter)
	}
	fingerprint := mtlspkix.GetFingerprint(csr)

	if !cp.elector.IsLeader(ctx) {
		return model.CertificateRequest{}, fmt.Errorf("unit %s is not the leader %w", cp.unitName, model.ErrNotLeader)
	}

	tx, ctx, err := cp.certStorage.CreateTx(ctx, storage.TxOptionWithWrite(true), storage.TxOptionWithIsolationLevel(sql.LevelSerializable))
	if err != nil {
		return model.CertificateRequest{}, err
	}
	defer tx.Rollback(ctx)

	oldRequest, err := cp.getCertificateRequest(ctx, tx, fingerprint)
	if err != nil {
		return model.CertificateRequest{}, err
	}

	certs, err := mtlspkix.ParseCertificates([]byte(req.Certificate))
	if err != nil {
		return model.CertificateRequest{}, fmt.Errorf("failed to parse certificate: %s%w", err.Error(), model.ErrInvalidChain)
	}
	if !mtlspkix.IsPublicKeyOf(certs[0], csr) {
		return model.CertificateRequest{}, fmt.Errorf("certificate does not match the certificate signing request %w", model.ErrMismatch)
	}
	if _, err := mtlspkix.ParseCertificates([]byte(req.CACertificate)); err != nil {
		return model.CertificateRequest{}, fmt.Errorf("failed to parse CA certificate: %s%w", err.Error(), model.ErrInvalidChain)
	}
	chainCerts, err := mtlspkix.ParseCertificates([]byte(req.CAChain))
	if err != nil {
		return model.CertificateRequest{}, fmt.Errorf("failed to parse CA chain: %s%w", err.Error(), model.ErrInvalidChain)
	}

	chain := make([]string, 0, len(chainCerts))
	for _, chainCert := range chainCerts {
		chainPEM, err := mtlspkix.MarshalCertificates(chainCert)
		if err != nil {
			return model.CertificateRequest{}, err
		}
		chain = append(chain, string(chainPEM))
	}

	newRequest := oldRequest
	newRequest.Version += 1
	newRequest.Status = model.RequestStatusFulfilled
	newRequest.Bundle = &model.CertificateBundle{
		Certificate:   req.Certificate,
		CACertificate: req.CACertificate,
		CAChain:       chain,
	}
	newRequest.FulfilledAt = ts
	newRequest.FulfilledBy = req.Requester

	if err := cp.certStorage.AddCertificateRequest(ctx, tx, newRequest); err != nil {
		return model.CertificateRequest{}, err
	}

	relationIDs := lo.Uniq(lo.Map(newRequest.Requirers, func(ref model.RequirerRef, _ int) string { return ref.RelationID }))
	for _, relationID := range relationIDs {
		relation, err := cp.getRelation(ctx, tx, relationID)
		if err != nil {
			return model.CertificateRequest{}, err
		}
		if err := cp.publishProviderDatabag(ctx, tx, ts, relation); err != nil {
			return model.CertificateRequest{}, err
		}
	}

	event := model.WebhookEvent{
		ID:          fingerprint,
		Type:        model.WebhookEventCertificateAvailable,
		Fingerprint: fingerprint,
		CreatedAt:   ts,
	}
	if err := cp.addWebhookEvents(ctx, tx, ts, fingerprint, event); err != nil {
		return model.CertificateRequest{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return model.CertificateRequest{}, err
	}
	return newRequest, nil
}

func (cp *_CertProvider) CreateRelation(ctx context.Context, ts int64, req CreateRelationRequest) (model.Relation, error) {
	if err := ValidateCreateRelationRequest(req); err != nil {
		return model.Relation{}, err
	}
	if !cp.elector.IsLeader(ctx) {
		return model.Relation{}, fmt.Errorf("unit %s is not the leader %w", cp.unitName, model.ErrNotLeader)
	}

	tx, ctx, err := cp.certStorage.CreateTx(ctx, storage.TxOptionWithWrite(true), storage.TxOptionWithIsolationLevel(sql.LevelSerializable))
	if err != nil {
		return model.Relation{}, err
	}
	defer tx.Rollback(ctx)

	relation, err := cp.getRelation(ctx, tx, req.RelationID)
	if err == nil {
		if relation.Application != req.Application {
			return model.Relation{}, fmt.Errorf("relation %s belongs to application %s %w", relation.ID, relation.Application, model.ErrInvalidParameter)
		}
		return relation, nil
	}
	if !errors.Is(err, model.ErrRelationNotFound) {
		return model.Relation{}, err
	}

	relation = model.Relation{
		ID:          req.RelationID,
		Application: req.Application,
		Version:     1,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := cp.certStorage.UpsertRelation(ctx, tx, relation); err != nil {
		return model.Relation{}, err
	}

	// Announce the provider side of the new relation, even when it has no
	// certificates yet.
	if err := cp.publishProviderDatabag(ctx, tx, ts, relation); err != nil {
		return model.Relation{}, err
	}

	event := model.WebhookEvent{
		ID:         relation.ID,
		Type:       model.WebhookEventRelationCreated,
		RelationID: relation.ID,
		CreatedAt:  ts,
	}
	if err := cp.addWebhookEvents(ctx, tx, ts, relation.ID, event); err != nil {
		return model.Relation{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Relation{}, err
	}
	return relation, nil
}

func (cp *_CertProvider) SyncRelation(ctx context.Context, ts int64, req SyncRelationRequest) (SyncRelationResult, error) {
	if err := ValidateSyncRelationRequest(req); err != nil {
		return SyncRelationResult{}, err
	}
	if !cp.elector.IsLeader(ctx) {
		return SyncRelationResult{}, fmt.Errorf("unit %s is not the leader %w", cp.unitName, model.ErrNotLeader)
	}

	tx, ctx, err := cp.certStorage.CreateTx(ctx, storage.TxOptionWithWrite(true), storage.TxOptionWithIsolationLevel(sql.LevelSerializable))
	if err != nil {
		return SyncRelationResult{}, err
	}
	defer tx.Rollback(ctx)

	relation, err := cp.syncRelationRecord(ctx, tx, ts, req)
	if err != nil {
		return SyncRelationResult{}, err
	}

	ref := model.RequirerRef{RelationID: req.RelationID, Application: req.Application, Unit: req.Unit}
	result := SyncRelationResult{Relation: relation}

	// Parse the announced list first. A malformed entry is rejected without
	// insertion and does not block its valid siblings.
	announced := make(map[string]model.CertificateSigningRequestEntry, len(req.CertificateSigningRequests))
	announcedOrder := make([]string, 0, len(req.CertificateSigningRequests))
	for _, entry := range req.CertificateSigningRequests {
		csr, err := mtlspkix.ParseCertificateRequest([]byte(entry.CertificateSigningRequest))
		if err != nil {
			logrus.Warnf("SyncRelation: rejected certificate signing request from %s: %v", req.Unit, err)
			result.Rejected = append(result.Rejected, RejectedEntry{
				CertificateSigningRequest: entry.CertificateSigningRequest,
				Reason:                    err.Error(),
			})
			continue
		}
		fingerprint := mtlspkix.GetFingerprint(csr)
		if _, ok := announced[fingerprint]; !ok {
			announcedOrder = append(announcedOrder, fingerprint)
		}
		announced[fingerprint] = entry
	}

	databagChanged := false
	for _, fingerprint := range announcedOrder {
		entry := announced[fingerprint]
		request, err := cp.getCertificateRequest(ctx, tx, fingerprint)
		if errors.Is(err, model.ErrCertificateRequestNotFound) {
			request = model.CertificateRequest{
				Fingerprint:               fingerprint,
				Version:                   1,
				Status:                    model.RequestStatusOutstanding,
				CertificateSigningRequest: entry.CertificateSigningRequest,
				IsCA:                      entry.CA,
				Requirers:                 []model.RequirerRef{ref},
				CreatedAt:                 ts,
				CreatedBy:                 req.Unit,
			}
			if err := cp.certStorage.AddCertificateRequest(ctx, tx, request); err != nil {
				return SyncRelationResult{}, err
			}
			event := model.WebhookEvent{
				ID:          fingerprint,
				Type:        model.WebhookEventCertificateRequested,
				RelationID:  req.RelationID,
				Fingerprint: fingerprint,
				CreatedAt:   ts,
			}
			if err := cp.addWebhookEvents(ctx, tx, ts, fingerprint, event); err != nil {
				return SyncRelationResult{}, err
			}
			result.Announced = append(result.Announced, fingerprint)
			continue
		} else if err != nil {
			return SyncRelationResult{}, err
		}

		if !request.AddRequirer(ref) {
			continue
		}
		request.Version += 1
		if err := cp.certStorage.AddCertificateRequest(ctx, tx, request); err != nil {
			return SyncRelationResult{}, err
		}
		result.Announced = append(result.Announced, fingerprint)
		if request.Status == model.RequestStatusFulfilled {
			databagChanged = true
		}
	}

	current, err := cp.listRelationRequests(ctx, tx, req.RelationID)
	if err != nil {
		return SyncRelationResult{}, err
	}
	for _, request := range current {
		if !request.HasRequirer(ref) {
			continue
		}
		if _, ok := announced[request.Fingerprint]; ok {
			continue
		}

		request.RemoveRequirer(ref)
		if request.Status == model.RequestStatusFulfilled {
			databagChanged = true
		}
		if len(request.Requirers) == 0 {
			if err := cp.certStorage.DeleteCertificateRequests(ctx, tx, request.Fingerprint); err != nil {
				return SyncRelationResult{}, err
			}
			event := model.WebhookEvent{
				ID:          request.Fingerprint,
				Type:        model.WebhookEventCertificateWithdrawn,
				RelationID:  req.RelationID,
				Fingerprint: request.Fingerprint,
				CreatedAt:   ts,
			}
			if err := cp.addWebhookEvents(ctx, tx, ts, request.Fingerprint, event); err != nil {
				return SyncRelationResult{}, err
			}
		} else {
			request.Version += 1
			if err := cp.certStorage.AddCertificateRequest(ctx, tx, request); err != nil {
				return SyncRelationResult{}, err
			}
		}
		result.Withdrawn = append(result.Withdrawn, request.Fingerprint)
	}

	if databagChanged {
		if err := cp.publishProviderDatabag(ctx, tx, ts, relation); err != nil {
			return SyncRelationResult{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return SyncRelationResult{}, err
	}
	return result, nil
}

func (cp *_CertProvider) BreakRelation(ctx context.Context, ts int64, req BreakRelationRequest) (BreakRelationResult, error) {
	if err := ValidateBreakRelationRequest(req); err != nil {
		return BreakRelationResult{}, err
	}
	if !cp.elector.IsLeader(ctx) {
		return BreakRelationResult{}, fmt.Errorf("unit %s is not the leader %w", cp.unitName, model.ErrNotLeader)
	}

	tx, ctx, err := cp.certStorage.CreateTx(ctx, storage.TxOptionWithWrite(true), storage.TxOptionWithIsolationLevel(sql.LevelSerializable))
	if err != nil {
		return BreakRelationResult{}, err
	}
	defer tx.Rollback(ctx)

	relation, err := cp.getRelation(ctx, tx, req.RelationID)
	if err != nil {
		return BreakRelationResult{}, err
	}

	requests, err := cp.listRelationRequests(ctx, tx, req.RelationID)
	if err != nil {
		return BreakRelationResult{}, err
	}

	result := BreakRelationResult{Relation: relation}
	for _, request := range requests {
		if !request.RemoveRelation(req.RelationID) {
			continue
		}
		if len(request.Requirers) == 0 {
			if err := cp.certStorage.DeleteCertificateRequests(ctx, tx, request.Fingerprint); err != nil {
				return BreakRelationResult{}, err
			}
			result.Purged = append(result.Purged, request.Fingerprint)
		} else {
			request.Version += 1
			if err := cp.certStorage.AddCertificateRequest(ctx, tx, request); err != nil {
				return BreakRelationResult{}, err
			}
		}
	}

	if err := cp.certStorage.DeleteRelation(ctx, tx, req.RelationID); err != nil {
		return BreakRelationResult{}, err
	}

	payload, err := json.Marshal(model.RelationLifecycleEvent{RelationID: relation.ID, Application: relation.Application})
	if err != nil {
		return BreakRelationResult{}, err
	}
	if err := cp.certStorage.AddHubOutboxMsg(ctx, tx, ts, relation.ID, int(relay.RelationBroken), payload); err != nil {
		return BreakRelationResult{}, err
	}

	event := model.WebhookEvent{
		ID:         relation.ID,
		Type:       model.WebhookEventRelationBroken,
		RelationID: relation.ID,
		CreatedAt:  ts,
	}
	if err := cp.addWebhookEvents(ctx, tx, ts, relation.ID, event); err != nil {
		return BreakRelationResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return BreakRelationResult{}, err
	}
	return result, nil
}

// syncRelationRecord upserts the relation row for a databag announcement and
// returns the current record.
func (cp *_CertProvider) syncRelationRecord(ctx context.Context, tx storage.Tx, ts int64, req SyncRelationRequest) (model.Relation, error) {
	relation, err := cp.getRelation(ctx, tx, req.RelationID)
	if errors.Is(err, model.ErrRelationNotFound) {
		relation = model.Relation{
			ID:          req.RelationID,
			Application: req.Application,
			Units:       []string{req.Unit},
			Version:     1,
			CreatedAt:   ts,
			UpdatedAt:   ts,
		}
		if err := cp.certStorage.UpsertRelation(ctx, tx, relation); err != nil {
			return model.Relation{}, err
		}
		return relation, nil
	} else if err != nil {
		return model.Relation{}, err
	}

	if relation.Application != req.Application {
		return model.Relation{}, fmt.Errorf("relation %s belongs to application %s %w", relation.ID, relation.Application, model.ErrInvalidParameter)
	}
	if relation.HasUnit(req.Unit) {
		return relation, nil
	}

	relation.Units = append(relation.Units, req.Unit)
	relation.Version += 1
	relation.UpdatedAt = ts
	if err := cp.certStorage.UpsertRelation(ctx, tx, relation); err != nil {
		return model.Relation{}, err
	}
	return relation, nil
}

func (cp *_CertProvider) getCertificateRequest(ctx context.Context, tx storage.Tx, fingerprint string) (model.CertificateRequest, error) {
	req := storage.ListCertificateRequestsRequest{
		Fingerprints: []string{fingerprint},
		Limit:        1,
	}

	result, err := cp.certStorage.ListCertificateRequests(ctx, tx, req)
	if err != nil {
		return model.CertificateRequest{}, err
	}
	if len(result.Records) == 0 {
		return model.CertificateRequest{}, model.ErrCertificateRequestNotFound
	}
	return result.Records[0], nil
}

func (cp *_CertProvider) getRelation(ctx context.Context, tx storage.Tx, relationID string) (model.Relation, error) {
	req := storage.ListRelationsRequest{
		IDs:   []string{relationID},
		Limit: 1,
	}

	result, err := cp.certStorage.ListRelations(ctx, tx, req)
	if err != nil {
		return model.Relation{}, err
	}
	if len(result.Records) == 0 {
		return model.Relation{}, model.ErrRelationNotFound
	}
	return result.Records[0], nil
}

// listRelationRequests pages through every certificate request referencing
// the relation.
func (cp *_CertProvider) listRelationRequests(ctx context.Context, tx storage.Tx, relationID string, statuses ...model.RequestStatus) ([]model.CertificateRequest, error) {
	req := storage.ListCertificateRequestsRequest{
		RelationIDs: []string{relationID},
		Statuses:    statuses,
		Limit:       100,
	}

	requests := make([]model.CertificateRequest, 0, 100)
	for {
		result, err := cp.certStorage.ListCertificateRequests(ctx, tx, req)
		if err != nil {
			return nil, err
		}
		if len(result.Records) == 0 {
			break
		}

		requests = append(requests, result.Records...)
		req.Offset += len(result.Records)
		if req.Offset >= int(result.Total) {
			break
		}
	}
	return requests, nil
}

func (cp *_CertProvider) renderProviderDatabag(ctx context.Context, tx storage.Tx, relation model.Relation) (model.ProviderDatabagEvent, error) {
	fulfilled, err := cp.listRelationRequests(ctx, tx, relation.ID, model.RequestStatusFulfilled)
	if err != nil {
		return model.ProviderDatabagEvent{}, err
	}

	databag := model.ProviderDatabagEvent{
		RelationID:   relation.ID,
		Application:  relation.Application,
		Certificates: make([]model.ProviderCertificateEntry, 0, len(fulfilled)),
	}
	for _, request := range fulfilled {
		if request.Bundle == nil {
			continue
		}
		entry := model.ProviderCertificateEntry{
			Certificate:               trimPEM(request.Bundle.Certificate),
			CertificateSigningRequest: trimPEM(request.CertificateSigningRequest),
			CA:                        trimPEM(request.Bundle.CACertificate),
			Chain:                     make([]string, 0, len(request.Bundle.CAChain)),
		}
		for _, chainCert := range request.Bundle.CAChain {
			entry.Chain = append(entry.Chain, trimPEM(chainCert))
		}
		databag.Certificates = append(databag.Certificates, entry)
	}
	return databag, nil
}

// publishProviderDatabag renders the certificates list of the relation and
// queues it for the hub.
func (cp *_CertProvider) publishProviderDatabag(ctx context.Context, tx storage.Tx, ts int64, relation model.Relation) error {
	databag, err := cp.renderProviderDatabag(ctx, tx, relation)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(databag)
	if err != nil {
		return err
	}
	return cp.certStorage.AddHubOutboxMsg(ctx, tx, ts, relation.ID, int(relay.ProviderDatabag), payload)
}

// addWebhookEvents queues the event once per configured endpoint.
func (cp *_CertProvider) addWebhookEvents(ctx context.Context, tx storage.Tx, ts int64, key string, event model.WebhookEvent) error {
	for _, url := range cp.webhookURLs {
		event.Url = url
		if err := cp.certStorage.AddWebhookEvent(ctx, tx, ts, key, &event); err != nil {
			return err
		}
	}
	return nil
}

func trimPEM(pemData string) string {
	return strings.TrimRight(pemData, "\n")
}
