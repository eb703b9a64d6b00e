package provision_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang/mock/gomock"
	"github.com/manualtls/manualtls/pkg/cert_provider/model"
	"github.com/manualtls/manualtls/pkg/cert_provider/provision"
	"github.com/manualtls/manualtls/pkg/cert_provider/storage"
	mtlspkix "github.com/manualtls/manualtls/pkg/pkix"
	"github.com/manualtls/manualtls/pkg/relay"
	mock_leader "github.com/manualtls/manualtls/test/mock/cert_provider/leader"
	mock_storage "github.com/manualtls/manualtls/test/mock/cert_provider/storage"
	"github.com/stretchr/testify/suite"
)

const (
	testUnitName   = "manual-tls-certificates/0"
	testRelationID = "certificates:3"
	testApp        = "example-app"
	testWebhookURL = "http://localhost:9200/webhook"
)

type CertProviderTestSuite struct {
	suite.Suite

	ctrl     *gomock.Controller
	ctx      context.Context
	storage  *mock_storage.MockCertificateRequestStorage
	tx       *mock_storage.MockTx
	elector  *mock_leader.MockElector
	provider provision.CertProvider

	leafCSR     string
	leafCert    string
	otherCSR    string
	otherCert   string
	caCert      string
	rootCert    string
	caChain     string
	fingerprint string
	otherFP     string
}

func TestCertProviderTestSuite(t *testing.T) {
	suite.Run(t, new(CertProviderTestSuite))
}

func (s *CertProviderTestSuite) SetupSuite() {
	readFixture := func(name string) string {
		raw, err := os.ReadFile("../../../testdata/cert_provider/provision/" + name)
		s.Require().NoError(err)
		return string(raw)
	}

	s.leafCSR = readFixture("leaf.csr")
	s.leafCert = readFixture("leaf.crt")
	s.otherCSR = readFixture("other.csr")
	s.otherCert = readFixture("other.crt")
	s.caCert = readFixture("ca.crt")
	s.rootCert = readFixture("root.crt")
	s.caChain = readFixture("chain.crt")

	csr, err := mtlspkix.ParseCertificateRequest([]byte(s.leafCSR))
	s.Require().NoError(err)
	s.fingerprint = mtlspkix.GetFingerprint(csr)

	otherCSR, err := mtlspkix.ParseCertificateRequest([]byte(s.otherCSR))
	s.Require().NoError(err)
	s.otherFP = mtlspkix.GetFingerprint(otherCSR)
}

func (s *CertProviderTestSuite) SetupTest() {
	// Initialize the context
	s.ctx = context.Background()

	// Initialize the mock controller
	s.ctrl = gomock.NewController(s.T())

	// Create mock instances of the storage and the elector
	s.storage = mock_storage.NewMockCertificateRequestStorage(s.ctrl)
	s.tx = mock_storage.NewMockTx(s.ctrl)
	s.elector = mock_leader.NewMockElector(s.ctrl)

	// Create a new instance of the CertProvider implementation
	s.provider = provision.NewCertProvider(s.storage, s.elector, testUnitName, []string{testWebhookURL})
}

func (s *CertProviderTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CertProviderTestSuite) requirerRef(unit string) model.RequirerRef {
	return model.RequirerRef{
		RelationID:  testRelationID,
		Application: testApp,
		Unit:        unit,
	}
}

func (s *CertProviderTestSuite) TestListCertificateRequests() {
	request := model.CertificateRequest{
		Fingerprint:               s.fingerprint,
		Version:                   1,
		Status:                    model.RequestStatusOutstanding,
		CertificateSigningRequest: s.leafCSR,
		Requirers:                 []model.RequirerRef{s.requirerRef(testApp + "/0")},
		CreatedAt:                 time.Now().Unix(),
		CreatedBy:                 testApp + "/0",
	}

	req := storage.ListCertificateRequestsRequest{
		Offset:   0,
		Limit:    10,
		Statuses: []model.RequestStatus{model.RequestStatusOutstanding},
	}

	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(0)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().ListCertificateRequests(gomock.Any(), s.tx, req).Return(
			storage.ListCertificateRequestsResult{
				Total:   1,
				Records: []model.CertificateRequest{request},
			},
			nil,
		),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	result, err := s.provider.ListCertificateRequests(s.ctx, req)
	s.Require().NoError(err)
	s.Require().Len(result.Records, 1)
	s.Assert().Equal(request, result.Records[0])
}

func (s *CertProviderTestSuite) TestListCertificateRequestsWithInvalidRequest() {
	req := storage.ListCertificateRequestsRequest{
		Offset: -1,
		Limit:  10,
	}

	_, err := s.provider.ListCertificateRequests(s.ctx, req)
	s.Require().ErrorIs(err, model.ErrInvalidParameter)
}

func (s *CertProviderTestSuite) TestCreateRelation() {
	ts := time.Now().Unix()
	req := provision.CreateRelationRequest{
		Requester:   testUnitName,
		RelationID:  testRelationID,
		Application: testApp,
	}

	expectedRelation := model.Relation{
		ID:          testRelationID,
		Application: testApp,
		Version:     1,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	expectedEvent := model.WebhookEvent{
		ID:         testRelationID,
		Url:        testWebhookURL,
		Type:       model.WebhookEventRelationCreated,
		RelationID: testRelationID,
		CreatedAt:  ts,
	}

	var databagPayload []byte
	gomock.InOrder(
		s.elector.EXPECT().IsLeader(gomock.Any()).Return(true),
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().ListRelations(
			gomock.Any(),
			s.tx,
			storage.ListRelationsRequest{Limit: 1, IDs: []string{testRelationID}},
		).Return(storage.ListRelationsResult{Total: 0}, nil),
		s.storage.EXPECT().UpsertRelation(gomock.Any(), s.tx, expectedRelation).Return(nil),
		s.storage.EXPECT().ListCertificateRequests(
			gomock.Any(),
			s.tx,
			storage.ListCertificateRequestsRequest{
				Limit:       100,
				RelationIDs: []string{testRelationID},
				Statuses:    []model.RequestStatus{model.RequestStatusFulfilled},
			},
		).Return(storage.ListCertificateRequestsResult{Total: 0}, nil),
		s.storage.EXPECT().AddHubOutboxMsg(gomock.Any(), s.tx, ts, testRelationID, int(relay.ProviderDatabag), gomock.Any()).DoAndReturn(
			func(ctx context.Context, tx storage.Tx, ts int64, key string, kind int, payload []byte) error {
				databagPayload = payload
				return nil
			},
		),
		s.storage.EXPECT().AddWebhookEvent(gomock.Any(), s.tx, ts, testRelationID, &expectedEvent).Return(nil),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	relation, err := s.provider.CreateRelation(s.ctx, ts, req)
	s.Require().NoError(err)
	s.Assert().Equal(expectedRelation, relation)

	databag := model.ProviderDatabagEvent{}
	s.Require().NoError(json.Unmarshal(databagPayload, &databag))
	s.Assert().Equal(testRelationID, databag.RelationID)
	s.Assert().Equal(testApp, databag.Application)
	s.Assert().Empty(databag.Certificates)
}

func (s *CertProviderTestSuite) TestCreateRelationAgain() {
	ts := time.Now().Unix()
	req := provision.CreateRelationRequest{
		Requester:   testUnitName,
		RelationID:  testRelationID,
		Application: testApp,
	}

	existingRelation := model.Relation{
		ID:          testRelationID,
		Application: testApp,
		Units:       []string{testApp + "/0"},
		Version:     3,
		CreatedAt:   ts - 1000,
		UpdatedAt:   ts - 500,
	}

	gomock.InOrder(
		s.elector.EXPECT().IsLeader(gomock.Any()).Return(true),
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().ListRelations(
			gomock.Any(),
			s.tx,
			storage.ListRelationsRequest{Limit: 1, IDs: []string{testRelationID}},
		).Return(storage.ListRelationsResult{Total: 1, Records: []model.Relation{existingRelation}}, nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	relation, err := s.provider.CreateRelation(s.ctx, ts, req)
	s.Require().NoError(err)
	s.Assert().Equal(existingRelation, relation)
}

func (s *CertProviderTestSuite) TestCreateRelationWithConflictingApplication() {
	ts := time.Now().Unix()
	req := provision.CreateRelationRequest{
		Requester:   testUnitName,
		RelationID:  testRelationID,
		Application: "another-app",
	}

	existingRelation := model.Relation{
		ID:          testRelationID,
		Application: testApp,
		Version:     1,
		CreatedAt:   ts - 1000,
		UpdatedAt:   ts - 1000,
	}

	gomock.InOrder(
		s.elector.EXPECT().IsLeader(gomock.Any()).Return(true),
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().ListRelations(
			gomock.Any(),
			s.tx,
			storage.ListRelationsRequest{Limit: 1, IDs: []string{testRelationID}},
		).Return(storage.ListRelationsResult{Total: 1, Records: []model.Relation{existingRelation}}, nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	_, err := s.provider.CreateRelation(s.ctx, ts, req)
	s.Require().ErrorIs(err, model.ErrInvalidParameter)
}

func (s *CertProviderTestSuite) TestCreateRelationOnStandbyUnit() {
	ts := time.Now().Unix()
	req := provision.CreateRelationRequest{
		Requester:   testUnitName,
		RelationID:  testRelationID,
		Application: testApp,
	}

	s.elector.EXPECT().IsLeader(gomock.Any()).Return(false)

	_, err := s.provider.CreateRelation(s.ctx, ts, req)
	s.Require().ErrorIs(err, model.ErrNotLeader)
}

func (s *CertProviderTestSuite) TestSyncRelation() {
	ts := time.Now().Unix()
	unit := testApp + "/0"
	req := provision.SyncRelationRequest{
		RelationID:  testRelationID,
		Application: testApp,
		Unit:        unit,
		CertificateSigningRequests: []model.CertificateSigningRequestEntry{
			{CertificateSigningRequest: s.leafCSR},
			{CertificateSigningRequest: "not a certificate signing request"},
		},
	}

	expectedRelation := model.Relation{
		ID:          testRelationID,
		Application: testApp,
		Units:       []string{unit},
		Version:     1,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	expectedRequest := model.CertificateRequest{
		Fingerprint:               s.fingerprint,
		Version:                   1,
		Status:                    model.RequestStatusOutstanding,
		CertificateSigningRequest: s.leafCSR,
		Requirers:                 []model.RequirerRef{s.requirerRef(unit)},
		CreatedAt:                 ts,
		CreatedBy:                 unit,
	}
	expectedEvent := model.WebhookEvent{
		ID:          s.fingerprint,
		Url:         testWebhookURL,
		Type:        model.WebhookEventCertificateRequested,
		RelationID:  testRelationID,
		Fingerprint: s.fingerprint,
		CreatedAt:   ts,
	}

	gomock.InOrder(
		s.elector.EXPECT().IsLeader(gomock.Any()).Return(true),
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().ListRelations(
			gomock.Any(),
			s.tx,
			storage.ListRelationsRequest{Limit: 1, IDs: []string{testRelationID}},
		).Return(storage.ListRelationsResult{Total: 0}, nil),
		s.storage.EXPECT().UpsertRelation(gomock.Any(), s.tx, expectedRelation).Return(nil),
		s.storage.EXPECT().ListCertificateRequests(
			gomock.Any(),
			s.tx,
			storage.ListCertificateRequestsRequest{Limit: 1, Fingerprints: []string{s.fingerprint}},
		).Return(storage.ListCertificateRequestsResult{Total: 0}, nil),
		s.storage.EXPECT().AddCertificateRequest(gomock.Any(), s.tx, expectedRequest).Return(nil),
		s.storage.EXPECT().AddWebhookEvent(gomock.Any(), s.tx, ts, s.fingerprint, &expectedEvent).Return(nil),
		s.storage.EXPECT().ListCertificateRequests(
			gomock.Any(),
			s.tx,
			storage.ListCertificateRequestsRequest{Limit: 100, RelationIDs: []string{testRelationID}},
		).Return(storage.ListCertificateRequestsResult{Total: 1, Records: []model.CertificateRequest{expectedRequest}}, nil),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	result, err := s.provider.SyncRelation(s.ctx, ts, req)
	s.Require().NoError(err)
	s.Assert().Equal(expectedRelation, result.Relation)
	s.Assert().Equal([]string{s.fingerprint}, result.Announced)
	s.Assert().Empty(result.Withdrawn)
	s.Require().Len(result.Rejected, 1)
	s.Assert().Equal("not a certificate signing request", result.Rejected[0].CertificateSigningRequest)
}

func (s *CertProviderTestSuite) TestSyncRelationAgain() {
	ts := time.Now().Unix()
	unit := testApp + "/0"
	req := provision.SyncRelationRequest{
		RelationID:  testRelationID,
		Application: testApp,
		Unit:        unit,
		CertificateSigningRequests: []model.CertificateSigningRequestEntry{
			{CertificateSigningRequest: s.leafCSR},
		},
	}

	relation := model.Relation{
		ID:          testRelationID,
		Application: testApp,
		Units:       []string{unit},
		Version:     1,
		CreatedAt:   ts - 1000,
		UpdatedAt:   ts - 1000,
	}
	request := model.CertificateRequest{
		Fingerprint:               s.fingerprint,
		Version:                   1,
		Status:                    model.RequestStatusOutstanding,
		CertificateSigningRequest: s.leafCSR,
		Requirers:                 []model.RequirerRef{s.requirerRef(unit)},
		CreatedAt:                 ts - 1000,
		CreatedBy:                 unit,
	}

	gomock.InOrder(
		s.elector.EXPECT().IsLeader(gomock.Any()).Return(true),
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().ListRelations(
			gomock.Any(),
			s.tx,
			storage.ListRelationsRequest{Limit: 1, IDs: []string{testRelationID}},
		).Return(storage.ListRelationsResult{Total: 1, Records: []model.Relation{relation}}, nil),
		s.storage.EXPECT().ListCertificateRequests(
			gomock.Any(),
			s.tx,
			storage.ListCertificateRequestsRequest{Limit: 1, Fingerprints: []string{s.fingerprint}},
		).Return(storage.ListCertificateRequestsResult{Total: 1, Records: []model.CertificateRequest{request}}, nil),
		s.storage.EXPECT().ListCertificateRequests(
			gomock.Any(),
			s.tx,
			storage.ListCertificateRequestsRequest{Limit: 100, RelationIDs: []string{testRelationID}},
		).Return(storage.ListCertificateRequestsResult{Total: 1, Records: []model.CertificateRequest{request}}, nil),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	result, err := s.provider.SyncRelation(s.ctx, ts, req)
	s.Require().NoError(err)
	s.Assert().Equal(relation, result.Relation)
	s.Assert().Empty(result.Announced)
	s.Assert().Empty(result.Withdrawn)
	s.Assert().Empty(result.Rejected)
}

func (s *CertProviderTestSuite) TestSyncRelationWithSecondUnit() {
	ts := time.Now().Unix()
	firstUnit := testApp + "/0"
	secondUnit := testApp + "/1"
	req := provision.SyncRelationRequest{
		RelationID:  testRelationID,
		Application: testApp,
		Unit:        secondUnit,
		CertificateSigningRequests: []model.CertificateSigningRequestEntry{
			{CertificateSigningRequest: s.leafCSR},
		},
	}

	relation := model.Relation{
		ID:          testRelationID,
		Application: testApp,
		Units:       []string{firstUnit},
		Version:     1,
		CreatedAt:   ts - 1000,
		UpdatedAt:   ts - 1000,
	}
	expectedRelation := relation
	expectedRelation.Units = []string{firstUnit, secondUnit}
	expectedRelation.Version = 2
	expectedRelation.UpdatedAt = ts

	request := model.CertificateRequest{
		Fingerprint:               s.fingerprint,
		Version:                   1,
		Status:                    model.RequestStatusOutstanding,
		CertificateSigningRequest: s.leafCSR,
		Requirers:                 []model.RequirerRef{s.requirerRef(firstUnit)},
		CreatedAt:                 ts - 1000,
		CreatedBy:                 firstUnit,
	}
	expectedRequest := request
	expectedRequest.Requirers = []model.RequirerRef{s.requirerRef(firstUnit), s.requirerRef(secondUnit)}
	expectedRequest.Version = 2

	gomock.InOrder(
		s.elector.EXPECT().IsLeader(gomock.Any()).Return(true),
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().ListRelations(
			gomock.Any(),
			s.tx,
			storage.ListRelationsRequest{Limit: 1, IDs: []string{testRelationID}},
		).Return(storage.ListRelationsResult{Total: 1, Records: []model.Relation{relation}}, nil),
		s.storage.EXPECT().UpsertRelation(gomock.Any(), s.tx, expectedRelation).Return(nil),
		s.storage.EXPECT().ListCertificateRequests(
			gomock.Any(),
			s.tx,
			storage.ListCertificateRequestsRequest{Limit: 1, Fingerprints: []string{s.fingerprint}},
		).Return(storage.ListCertificateRequestsResult{Total: 1, Records: []model.CertificateRequest{request}}, nil),
		s.storage.EXPECT().AddCertificateRequest(gomock.Any(), s.tx, expectedRequest).Return(nil),
		s.storage.EXPECT().ListCertificateRequests(
			gomock.Any(),
			s.tx,
			storage.ListCertificateRequestsRequest{Limit: 100, RelationIDs: []string{testRelationID}},
		).Return(storage.ListCertificateRequestsResult{Total: 1, Records: []model.CertificateRequest{expectedRequest}}, nil),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	result, err := s.provider.SyncRelation(s.ctx, ts, req)
	s.Require().NoError(err)
	s.Assert().Equal(expectedRelation, result.Relation)
	s.Assert().Equal([]string{s.fingerprint}, result.Announced)
	s.Assert().Empty(result.Withdrawn)
}

func (s *CertProviderTestSuite) TestSyncRelationWithdrawsMissingEntries() {
	ts := time.Now().Unix()
	unit := testApp + "/0"
	req := provision.SyncRelationRequest{
		RelationID:  testRelationID,
		Application: testApp,
		Unit:        unit,
	}

	relation := model.Relation{
		ID:          testRelationID,
		Application: testApp,
		Units:       []string{unit},
		Version:     1,
		CreatedAt:   ts - 1000,
		UpdatedAt:   ts - 1000,
	}
	fulfilled := model.CertificateRequest{
		Fingerprint:               s.fingerprint,
		Version:                   2,
		Status:                    model.RequestStatusFulfilled,
		CertificateSigningRequest: s.leafCSR,
		Requirers:                 []model.RequirerRef{s.requirerRef(unit)},
		Bundle: &model.CertificateBundle{
			Certificate:   s.leafCert,
			CACertificate: s.caCert,
			CAChain:       []string{s.caCert, s.rootCert},
		},
		CreatedAt:   ts - 1000,
		CreatedBy:   unit,
		FulfilledAt: ts - 500,
		FulfilledBy: "operator",
	}
	expectedEvent := model.WebhookEvent{
		ID:          s.fingerprint,
		Url:         testWebhookURL,
		Type:        model.WebhookEventCertificateWithdrawn,
		RelationID:  testRelationID,
		Fingerprint: s.fingerprint,
		CreatedAt:   ts,
	}

	var databagPayload []byte
	gomock.InOrder(
		s.elector.EXPECT().IsLeader(gomock.Any()).Return(true),
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().ListRelations(
			gomock.Any(),
			s.tx,
			storage.ListRelationsRequest{Limit: 1, IDs: []string{testRelationID}},
		).Return(storage.ListRelationsResult{Total: 1, Records: []model.Relation{relation}}, nil),
		s.storage.EXPECT().ListCertificateRequests(
			gomock.Any(),
			s.tx,
			storage.ListCertificateRequestsRequest{Limit: 100, RelationIDs: []string{testRelationID}},
		).Return(storage.ListCertificateRequestsResult{Total: 1, Records: []model.CertificateRequest{fulfilled}}, nil),
		s.storage.EXPECT().DeleteCertificateRequests(gomock.Any(), s.tx, s.fingerprint).Return(nil),
		s.storage.EXPECT().AddWebhookEvent(gomock.Any(), s.tx, ts, s.fingerprint, &expectedEvent).Return(nil),
		s.storage.EXPECT().ListCertificateRequests(
			gomock.Any(),
			s.tx,
			storage.ListCertificateRequestsRequest{
				Limit:       100,
				RelationIDs: []string{testRelationID},
				Statuses:    []model.RequestStatus{model.RequestStatusFulfilled},
			},
		).Return(storage.ListCertificateRequestsResult{Total: 0}, nil),
		s.storage.EXPECT().AddHubOutboxMsg(gomock.Any(), s.tx, ts, testRelationID, int(relay.ProviderDatabag), gomock.Any()).DoAndReturn(
			func(ctx context.Context, tx storage.Tx, ts int64, key string, kind int, payload []byte) error {
				databagPayload = payload
				return nil
			},
		),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	result, err := s.provider.SyncRelation(s.ctx, ts, req)
	s.Require().NoError(err)
	s.Assert().Empty(result.Announced)
	s.Assert().Equal([]string{s.fingerprint}, result.Withdrawn)

	databag := model.ProviderDatabagEvent{}
	s.Require().NoError(json.Unmarshal(databagPayload, &databag))
	s.Assert().Empty(databag.Certificates)
}

func (s *CertProviderTestSuite) TestSyncRelationOnStandbyUnit() {
	ts := time.Now().Unix()
	req := provision.SyncRelationRequest{
		RelationID:  testRelationID,
		Application: testApp,
		Unit:        testApp + "/0",
	}

	s.elector.EXPECT().IsLeader(gomock.Any()).Return(false)

	_, err := s.provider.SyncRelation(s.ctx, ts, req)
	s.Require().ErrorIs(err, model.ErrNotLeader)
}

func (s *CertProviderTestSuite) TestSyncRelationWithInvalidUnitName() {
	ts := time.Now().Unix()
	req := provision.SyncRelationRequest{
		RelationID:  testRelationID,
		Application: testApp,
		Unit:        "not-a-unit-name",
	}

	_, err := s.provider.SyncRelation(s.ctx, ts, req)
	s.Require().ErrorIs(err, model.ErrInvalidParameter)
}

func (s *CertProviderTestSuite) TestProvideCertificate() {
	ts := time.Now().Unix()
	unit := testApp + "/0"
	req := provision.ProvideCertificateRequest{
		Requester:                 "operator",
		CertificateSigningRequest: s.leafCSR,
		Certificate:               s.leafCert,
		CACertificate:             s.caCert,
		CAChain:                   s.caChain,
	}

	outstanding := model.CertificateRequest{
		Fingerprint:               s.fingerprint,
		Version:                   1,
		Status:                    model.RequestStatusOutstanding,
		CertificateSigningRequest: s.leafCSR,
		Requirers:                 []model.RequirerRef{s.requirerRef(unit)},
		CreatedAt:                 ts - 1000,
		CreatedBy:                 unit,
	}
	relation := model.Relation{
		ID:          testRelationID,
		Application: testApp,
		Units:       []string{unit},
		Version:     1,
		CreatedAt:   ts - 1000,
		UpdatedAt:   ts - 1000,
	}

	expectedRequest := outstanding
	expectedRequest.Version = 2
	expectedRequest.Status = model.RequestStatusFulfilled
	expectedRequest.Bundle = &model.CertificateBundle{
		Certificate:   s.leafCert,
		CACertificate: s.caCert,
		CAChain:       []string{s.caCert, s.rootCert},
	}
	expectedRequest.FulfilledAt = ts
	expectedRequest.FulfilledBy = "operator"

	expectedEvent := model.WebhookEvent{
		ID:          s.fingerprint,
		Url:         testWebhookURL,
		Type:        model.WebhookEventCertificateAvailable,
		Fingerprint: s.fingerprint,
		CreatedAt:   ts,
	}

	var databagPayload []byte
	gomock.InOrder(
		s.elector.EXPECT().IsLeader(gomock.Any()).Return(true),
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().ListCertificateRequests(
			gomock.Any(),
			s.tx,
			storage.ListCertificateRequestsRequest{Limit: 1, Fingerprints: []string{s.fingerprint}},
		).Return(storage.ListCertificateRequestsResult{Total: 1, Records: []model.CertificateRequest{outstanding}}, nil),
		s.storage.EXPECT().AddCertificateRequest(gomock.Any(), s.tx, expectedRequest).Return(nil),
		s.storage.EXPECT().ListRelations(
			gomock.Any(),
			s.tx,
			storage.ListRelationsRequest{Limit: 1, IDs: []string{testRelationID}},
		).Return(storage.ListRelationsResult{Total: 1, Records: []model.Relation{relation}}, nil),
		s.storage.EXPECT().ListCertificateRequests(
			gomock.Any(),
			s.tx,
			storage.ListCertificateRequestsRequest{
				Limit:       100,
				RelationIDs: []string{testRelationID},
				Statuses:    []model.RequestStatus{model.RequestStatusFulfilled},
			},
		).Return(storage.ListCertificateRequestsResult{Total: 1, Records: []model.CertificateRequest{expectedRequest}}, nil),
		s.storage.EXPECT().AddHubOutboxMsg(gomock.Any(), s.tx, ts, testRelationID, int(relay.ProviderDatabag), gomock.Any()).DoAndReturn(
			func(ctx context.Context, tx storage.Tx, ts int64, key string, kind int, payload []byte) error {
				databagPayload = payload
				return nil
			},
		),
		s.storage.EXPECT().AddWebhookEvent(gomock.Any(), s.tx, ts, s.fingerprint, &expectedEvent).Return(nil),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	request, err := s.provider.ProvideCertificate(s.ctx, ts, req)
	s.Require().NoError(err)
	s.Assert().Equal(expectedRequest, request)

	databag := model.ProviderDatabagEvent{}
	s.Require().NoError(json.Unmarshal(databagPayload, &databag))
	s.Require().Len(databag.Certificates, 1)

	// Databag entries carry PEM without trailing newline.
	entry := databag.Certificates[0]
	s.Assert().Equal(strings.TrimRight(s.leafCert, "\n"), entry.Certificate)
	s.Assert().Equal(strings.TrimRight(s.leafCSR, "\n"), entry.CertificateSigningRequest)
	s.Assert().Equal(strings.TrimRight(s.caCert, "\n"), entry.CA)
	s.Assert().Equal([]string{strings.TrimRight(s.caCert, "\n"), strings.TrimRight(s.rootCert, "\n")}, entry.Chain)
}

func (s *CertProviderTestSuite) TestProvideCertificateAgain() {
	ts := time.Now().Unix()
	unit := testApp + "/0"
	req := provision.ProvideCertificateRequest{
		Requester:                 "another-operator",
		CertificateSigningRequest: s.leafCSR,
		Certificate:               s.leafCert,
		CACertificate:             s.caCert,
		CAChain:                   s.caChain,
	}

	fulfilled := model.CertificateRequest{
		Fingerprint:               s.fingerprint,
		Version:                   2,
		Status:                    model.RequestStatusFulfilled,
		CertificateSigningRequest: s.leafCSR,
		Requirers:                 []model.RequirerRef{s.requirerRef(unit)},
		Bundle: &model.CertificateBundle{
			Certificate:   s.leafCert,
			CACertificate: s.caCert,
			CAChain:       []string{s.caCert, s.rootCert},
		},
		CreatedAt:   ts - 1000,
		CreatedBy:   unit,
		FulfilledAt: ts - 500,
		FulfilledBy: "operator",
	}
	relation := model.Relation{
		ID:          testRelationID,
		Application: testApp,
		Units:       []string{unit},
		Version:     1,
		CreatedAt:   ts - 1000,
		UpdatedAt:   ts - 1000,
	}

	expectedRequest := fulfilled
	expectedRequest.Version = 3
	expectedRequest.Bundle = &model.CertificateBundle{
		Certificate:   s.leafCert,
		CACertificate: s.caCert,
		CAChain:       []string{s.caCert, s.rootCert},
	}
	expectedRequest.FulfilledAt = ts
	expectedRequest.FulfilledBy = "another-operator"

	expectedEvent := model.WebhookEvent{
		ID:          s.fingerprint,
		Url:         testWebhookURL,
		Type:        model.WebhookEventCertificateAvailable,
		Fingerprint: s.fingerprint,
		CreatedAt:   ts,
	}

	gomock.InOrder(
		s.elector.EXPECT().IsLeader(gomock.Any()).Return(true),
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().ListCertificateRequests(
			gomock.Any(),
			s.tx,
			storage.ListCertificateRequestsRequest{Limit: 1, Fingerprints: []string{s.fingerprint}},
		).Return(storage.ListCertificateRequestsResult{Total: 1, Records: []model.CertificateRequest{fulfilled}}, nil),
		s.storage.EXPECT().AddCertificateRequest(gomock.Any(), s.tx, expectedRequest).Return(nil),
		s.storage.EXPECT().ListRelations(
			gomock.Any(),
			s.tx,
			storage.ListRelationsRequest{Limit: 1, IDs: []string{testRelationID}},
		).Return(storage.ListRelationsResult{Total: 1, Records: []model.Relation{relation}}, nil),
		s.storage.EXPECT().ListCertificateRequests(
			gomock.Any(),
			s.tx,
			storage.ListCertificateRequestsRequest{
				Limit:       100,
				RelationIDs: []string{testRelationID},
				Statuses:    []model.RequestStatus{model.RequestStatusFulfilled},
			},
		).Return(storage.ListCertificateRequestsResult{Total: 1, Records: []model.CertificateRequest{expectedRequest}}, nil),
		s.storage.EXPECT().AddHubOutboxMsg(gomock.Any(), s.tx, ts, testRelationID, int(relay.ProviderDatabag), gomock.Any()).Return(nil),
		s.storage.EXPECT().AddWebhookEvent(gomock.Any(), s.tx, ts, s.fingerprint, &expectedEvent).Return(nil),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	request, err := s.provider.ProvideCertificate(s.ctx, ts, req)
	s.Require().NoError(err)
	s.Assert().Equal(expectedRequest, request)
}

func (s *CertProviderTestSuite) TestProvideCertificateWithUnknownRequest() {
	ts := time.Now().Unix()
	req := provision.ProvideCertificateRequest{
		Requester:                 "operator",
		CertificateSigningRequest: s.leafCSR,
		Certificate:               s.leafCert,
		CACertificate:             s.caCert,
		CAChain:                   s.caChain,
	}

	gomock.InOrder(
		s.elector.EXPECT().IsLeader(gomock.Any()).Return(true),
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().ListCertificateRequests(
			gomock.Any(),
			s.tx,
			storage.ListCertificateRequestsRequest{Limit: 1, Fingerprints: []string{s.fingerprint}},
		).Return(storage.ListCertificateRequestsResult{Total: 0}, nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	_, err := s.provider.ProvideCertificate(s.ctx, ts, req)
	s.Require().ErrorIs(err, model.ErrDataNotFound)
}

func (s *CertProviderTestSuite) TestProvideCertificateWithMismatchedCertificate() {
	ts := time.Now().Unix()
	unit := testApp + "/0"
	req := provision.ProvideCertificateRequest{
		Requester:                 "operator",
		CertificateSigningRequest: s.leafCSR,
		Certificate:               s.otherCert,
		CACertificate:             s.caCert,
		CAChain:                   s.caChain,
	}

	outstanding := model.CertificateRequest{
		Fingerprint:               s.fingerprint,
		Version:                   1,
		Status:                    model.RequestStatusOutstanding,
		CertificateSigningRequest: s.leafCSR,
		Requirers:                 []model.RequirerRef{s.requirerRef(unit)},
		CreatedAt:                 ts - 1000,
		CreatedBy:                 unit,
	}

	gomock.InOrder(
		s.elector.EXPECT().IsLeader(gomock.Any()).Return(true),
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().ListCertificateRequests(
			gomock.Any(),
			s.tx,
			storage.ListCertificateRequestsRequest{Limit: 1, Fingerprints: []string{s.fingerprint}},
		).Return(storage.ListCertificateRequestsResult{Total: 1, Records: []model.CertificateRequest{outstanding}}, nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	_, err := s.provider.ProvideCertificate(s.ctx, ts, req)
	s.Require().ErrorIs(err, model.ErrMismatch)
}

func (s *CertProviderTestSuite) TestProvideCertificateWithInvalidChain() {
	ts := time.Now().Unix()
	unit := testApp + "/0"
	req := provision.ProvideCertificateRequest{
		Requester:                 "operator",
		CertificateSigningRequest: s.leafCSR,
		Certificate:               s.leafCert,
		CACertificate:             s.caCert,
		CAChain:                   "not a certificate bundle",
	}

	outstanding := model.CertificateRequest{
		Fingerprint:               s.fingerprint,
		Version:                   1,
		Status:                    model.RequestStatusOutstanding,
		CertificateSigningRequest: s.leafCSR,
		Requirers:                 []model.RequirerRef{s.requirerRef(unit)},
		CreatedAt:                 ts - 1000,
		CreatedBy:                 unit,
	}

	gomock.InOrder(
		s.elector.EXPECT().IsLeader(gomock.Any()).Return(true),
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().ListCertificateRequests(
			gomock.Any(),
			s.tx,
			storage.ListCertificateRequestsRequest{Limit: 1, Fingerprints: []string{s.fingerprint}},
		).Return(storage.ListCertificateRequestsResult{Total: 1, Records: []model.CertificateRequest{outstanding}}, nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	_, err := s.provider.ProvideCertificate(s.ctx, ts, req)
	s.Require().ErrorIs(err, model.ErrInvalidChain)
}

func (s *CertProviderTestSuite) TestProvideCertificateWithInvalidCSR() {
	ts := time.Now().Unix()
	req := provision.ProvideCertificateRequest{
		Requester:                 "operator",
		CertificateSigningRequest: "not a certificate signing request",
		Certificate:               s.leafCert,
		CACertificate:             s.caCert,
		CAChain:                   s.caChain,
	}

	_, err := s.provider.ProvideCertificate(s.ctx, ts, req)
	s.Require().ErrorIs(err, model.ErrInvalidParameter)
}

func (s *CertProviderTestSuite) TestProvideCertificateOnStandbyUnit() {
	ts := time.Now().Unix()
	req := provision.ProvideCertificateRequest{
		Requester:                 "operator",
		CertificateSigningRequest: s.leafCSR,
		Certificate:               s.leafCert,
		CACertificate:             s.caCert,
		CAChain:                   s.caChain,
	}

	s.elector.EXPECT().IsLeader(gomock.Any()).Return(false)

	_, err := s.provider.ProvideCertificate(s.ctx, ts, req)
	s.Require().ErrorIs(err, model.ErrNotLeader)
}

func (s *CertProviderTestSuite) TestBreakRelation() {
	ts := time.Now().Unix()
	unit := testApp + "/0"
	otherRelationRef := model.RequirerRef{
		RelationID:  "certificates:9",
		Application: "another-app",
		Unit:        "another-app/0",
	}
	req := provision.BreakRelationRequest{
		Requester:  testUnitName,
		RelationID: testRelationID,
	}

	relation := model.Relation{
		ID:          testRelationID,
		Application: testApp,
		Units:       []string{unit},
		Version:     1,
		CreatedAt:   ts - 1000,
		UpdatedAt:   ts - 1000,
	}
	// Announced only through the broken relation. Purged with it.
	soleRequest := model.CertificateRequest{
		Fingerprint:               s.fingerprint,
		Version:                   1,
		Status:                    model.RequestStatusOutstanding,
		CertificateSigningRequest: s.leafCSR,
		Requirers:                 []model.RequirerRef{s.requirerRef(unit)},
		CreatedAt:                 ts - 1000,
		CreatedBy:                 unit,
	}
	// Shared with another relation. Survives with the ref removed.
	sharedRequest := model.CertificateRequest{
		Fingerprint:               s.otherFP,
		Version:                   1,
		Status:                    model.RequestStatusOutstanding,
		CertificateSigningRequest: s.otherCSR,
		Requirers:                 []model.RequirerRef{s.requirerRef(unit), otherRelationRef},
		CreatedAt:                 ts - 1000,
		CreatedBy:                 unit,
	}
	expectedShared := sharedRequest
	expectedShared.Requirers = []model.RequirerRef{otherRelationRef}
	expectedShared.Version = 2

	expectedEvent := model.WebhookEvent{
		ID:         testRelationID,
		Url:        testWebhookURL,
		Type:       model.WebhookEventRelationBroken,
		RelationID: testRelationID,
		CreatedAt:  ts,
	}

	var brokenPayload []byte
	gomock.InOrder(
		s.elector.EXPECT().IsLeader(gomock.Any()).Return(true),
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().ListRelations(
			gomock.Any(),
			s.tx,
			storage.ListRelationsRequest{Limit: 1, IDs: []string{testRelationID}},
		).Return(storage.ListRelationsResult{Total: 1, Records: []model.Relation{relation}}, nil),
		s.storage.EXPECT().ListCertificateRequests(
			gomock.Any(),
			s.tx,
			storage.ListCertificateRequestsRequest{Limit: 100, RelationIDs: []string{testRelationID}},
		).Return(storage.ListCertificateRequestsResult{
			Total:   2,
			Records: []model.CertificateRequest{soleRequest, sharedRequest},
		}, nil),
		s.storage.EXPECT().DeleteCertificateRequests(gomock.Any(), s.tx, s.fingerprint).Return(nil),
		s.storage.EXPECT().AddCertificateRequest(gomock.Any(), s.tx, expectedShared).Return(nil),
		s.storage.EXPECT().DeleteRelation(gomock.Any(), s.tx, testRelationID).Return(nil),
		s.storage.EXPECT().AddHubOutboxMsg(gomock.Any(), s.tx, ts, testRelationID, int(relay.RelationBroken), gomock.Any()).DoAndReturn(
			func(ctx context.Context, tx storage.Tx, ts int64, key string, kind int, payload []byte) error {
				brokenPayload = payload
				return nil
			},
		),
		s.storage.EXPECT().AddWebhookEvent(gomock.Any(), s.tx, ts, testRelationID, &expectedEvent).Return(nil),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	result, err := s.provider.BreakRelation(s.ctx, ts, req)
	s.Require().NoError(err)
	s.Assert().Equal(relation, result.Relation)
	s.Assert().Equal([]string{s.fingerprint}, result.Purged)

	lifecycle := model.RelationLifecycleEvent{}
	s.Require().NoError(json.Unmarshal(brokenPayload, &lifecycle))
	s.Assert().Equal(testRelationID, lifecycle.RelationID)
	s.Assert().Equal(testApp, lifecycle.Application)
}

func (s *CertProviderTestSuite) TestBreakRelationWithUnknownRelation() {
	ts := time.Now().Unix()
	req := provision.BreakRelationRequest{
		Requester:  testUnitName,
		RelationID: testRelationID,
	}

	gomock.InOrder(
		s.elector.EXPECT().IsLeader(gomock.Any()).Return(true),
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().ListRelations(
			gomock.Any(),
			s.tx,
			storage.ListRelationsRequest{Limit: 1, IDs: []string{testRelationID}},
		).Return(storage.ListRelationsResult{Total: 0}, nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	_, err := s.provider.BreakRelation(s.ctx, ts, req)
	s.Require().ErrorIs(err, model.ErrDataNotFound)
}

func (s *CertProviderTestSuite) TestGetRelationCertificates() {
	unit := testApp + "/0"
	relation := model.Relation{
		ID:          testRelationID,
		Application: testApp,
		Units:       []string{unit},
		Version:     1,
		CreatedAt:   1700000000,
		UpdatedAt:   1700000000,
	}
	fulfilled := model.CertificateRequest{
		Fingerprint:               s.fingerprint,
		Version:                   2,
		Status:                    model.RequestStatusFulfilled,
		CertificateSigningRequest: s.leafCSR,
		Requirers:                 []model.RequirerRef{s.requirerRef(unit)},
		Bundle: &model.CertificateBundle{
			Certificate:   s.leafCert,
			CACertificate: s.caCert,
			CAChain:       []string{s.caCert, s.rootCert},
		},
		CreatedAt:   1700000000,
		CreatedBy:   unit,
		FulfilledAt: 1700000100,
		FulfilledBy: "operator",
	}

	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(0)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().ListRelations(
			gomock.Any(),
			s.tx,
			storage.ListRelationsRequest{Limit: 1, IDs: []string{testRelationID}},
		).Return(storage.ListRelationsResult{Total: 1, Records: []model.Relation{relation}}, nil),
		s.storage.EXPECT().ListCertificateRequests(
			gomock.Any(),
			s.tx,
			storage.ListCertificateRequestsRequest{
				Limit:       100,
				RelationIDs: []string{testRelationID},
				Statuses:    []model.RequestStatus{model.RequestStatusFulfilled},
			},
		).Return(storage.ListCertificateRequestsResult{Total: 1, Records: []model.CertificateRequest{fulfilled}}, nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	databag, err := s.provider.GetRelationCertificates(s.ctx, testRelationID)
	s.Require().NoError(err)
	s.Assert().Equal(testRelationID, databag.RelationID)
	s.Assert().Equal(testApp, databag.Application)
	s.Require().Len(databag.Certificates, 1)
	s.Assert().Equal(strings.TrimRight(s.leafCert, "\n"), databag.Certificates[0].Certificate)
}

func (s *CertProviderTestSuite) TestGetRelationCertificatesWithEmptyRelationID() {
	_, err := s.provider.GetRelationCertificates(s.ctx, "")
	s.Require().ErrorIs(err, model.ErrInvalidParameter)
}
