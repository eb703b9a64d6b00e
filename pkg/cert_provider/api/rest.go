package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/manualtls/manualtls/pkg/cert_provider/leader"
	"github.com/manualtls/manualtls/pkg/cert_provider/model"
	"github.com/manualtls/manualtls/pkg/cert_provider/notifier"
	"github.com/manualtls/manualtls/pkg/cert_provider/provision"
	"github.com/manualtls/manualtls/pkg/cert_provider/publisher"
	"github.com/manualtls/manualtls/pkg/cert_provider/relation"
	"github.com/manualtls/manualtls/pkg/cert_provider/status"
	"github.com/manualtls/manualtls/pkg/cert_provider/storage"
	"github.com/manualtls/manualtls/pkg/cert_provider/storage/postgres"
	"github.com/manualtls/manualtls/pkg/util"
	"github.com/sirupsen/logrus"
)

type ContextKey string

const (
	REQUESTER_HEADER      = "X-Requester"
	REQUESTER_CONTEXT_KEY = ContextKey("requester")
)

// Leadership designation values for RestServerConfig.Leader. An empty value
// elects through the Postgres advisory lock.
const (
	LeaderModeElected string = ""
	LeaderModeStatic  string = "static"
	LeaderModeStandby string = "standby"
)

type RestServerConfig struct {
	Database             util.PostgresDatabaseConfig `yaml:"database"`
	ServerAddress        string                      `yaml:"server_address"`
	HubAddress           string                      `yaml:"hub_address"`
	UnitName             string                      `yaml:"unit_name"`
	Leader               string                      `yaml:"leader"`
	ActionTimeoutSeconds int                         `yaml:"action_timeout_seconds"`
	WebhookEndpoints     []string                    `yaml:"webhook_endpoints"`
	Notifier             notifier.Config             `yaml:"notifier"`
}

type RestServer struct {
	certProvider  provision.CertProvider
	reporter      status.Reporter
	pub           *publisher.Publisher
	adapter       *relation.Adapter
	notif         *notifier.Notifier
	elector       leader.Elector
	actionTimeout time.Duration

	httpServer    *http.Server
	cancelWorkers context.CancelFunc
}

func ExtractRequester(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requester := r.Header.Get(REQUESTER_HEADER)
		ctx = context.WithValue(ctx, REQUESTER_CONTEXT_KEY, requester)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func NewRestServerWithConfig(config RestServerConfig) (*RestServer, error) {
	dbPool, err := util.NewPostgresDBPool(config.Database)
	if err != nil {
		return nil, err
	}
	certStorage := postgres.NewStorageWithPool(dbPool)

	var elector leader.Elector
	switch config.Leader {
	case LeaderModeElected:
		elector = leader.NewAdvisoryLockElector(dbPool)
	case LeaderModeStatic:
		elector = leader.NewStaticElector(true)
	case LeaderModeStandby:
		elector = leader.NewStaticElector(false)
	default:
		return nil, fmt.Errorf("unknown leader designation %q", config.Leader)
	}

	certProvider := provision.NewCertProvider(certStorage, elector, config.UnitName, config.WebhookEndpoints)
	reporter := status.NewReporter(certStorage, elector, config.UnitName)

	var adapter *relation.Adapter
	var pub *publisher.Publisher
	if config.HubAddress != "" {
		adapter = relation.NewAdapter(
			relation.AdapterWithHubAddress(config.HubAddress),
			relation.AdapterWithUnitName(config.UnitName),
			relation.AdapterWithCertProvider(certProvider),
			relation.AdapterWithElector(elector),
			relation.AdapterWithInboxStorage(certStorage),
		)
		pub = publisher.NewPublisher(
			publisher.PublisherWithOutboxStorage(certStorage),
			publisher.PublisherWithRelayClient(adapter.Client()),
		)
	}

	var notif *notifier.Notifier
	if len(config.WebhookEndpoints) > 0 {
		notifierCfg := config.Notifier
		if notifierCfg.CheckInterval == 0 {
			notifierCfg.CheckInterval = 5
		}
		if notifierCfg.BatchSize == 0 {
			notifierCfg.BatchSize = 10
		}
		if notifierCfg.Timeout == 0 {
			notifierCfg.Timeout = 10
		}
		if notifierCfg.MaxRetry == 0 {
			notifierCfg.MaxRetry = 3
		}
		notif, err = notifier.NewNotifierWithConfig(notifierCfg, notifier.WithStorage(certStorage))
		if err != nil {
			return nil, err
		}
	}

	actionTimeout := time.Duration(config.ActionTimeoutSeconds) * time.Second
	if actionTimeout == 0 {
		actionTimeout = 240 * time.Second
	}

	return NewRestServerWithController(certProvider, reporter, pub, adapter, notif, elector, config.ServerAddress, actionTimeout), nil
}

func NewRestServerWithController(
	certProvider provision.CertProvider,
	reporter status.Reporter,
	pub *publisher.Publisher,
	adapter *relation.Adapter,
	notif *notifier.Notifier,
	elector leader.Elector,
	serverAddress string,
	actionTimeout time.Duration,
) *RestServer {
	restServer := &RestServer{
		certProvider:  certProvider,
		reporter:      reporter,
		pub:           pub,
		adapter:       adapter,
		notif:         notif,
		elector:       elector,
		actionTimeout: actionTimeout,
	}

	router := mux.NewRouter()
	router.Use(Log, ExtractRequester)
	router.HandleFunc("/actions/get-outstanding-certificate-requests", restServer.getOutstandingCertificateRequests).Methods(http.MethodGet)
	router.HandleFunc("/actions/provide-certificate", restServer.provideCertificate).Methods(http.MethodPost)
	router.HandleFunc("/certificate_requests", restServer.listCertificateRequests).Methods(http.MethodGet)
	router.HandleFunc("/relations", restServer.listRelations).Methods(http.MethodGet)
	router.HandleFunc("/relations/{id}/certificates", restServer.getRelationCertificates).Methods(http.MethodGet)
	router.HandleFunc("/status", restServer.getStatus).Methods(http.MethodGet)

	if serverAddress != "" {
		restServer.httpServer = &http.Server{
			Addr:    serverAddress,
			Handler: router,
		}
	}

	return restServer
}

func (s *RestServer) Run() error {
	if s.httpServer == nil {
		return errors.New("no server to run")
	}

	workerCtx, cancel := context.WithCancel(context.Background())
	s.cancelWorkers = cancel

	if s.pub != nil {
		s.pub.Start()
	}
	if s.adapter != nil {
		go func() {
			if err := s.adapter.Run(workerCtx); err != nil {
				logrus.Errorf("relation adapter stopped: %v", err)
			}
		}()
	}
	if s.notif != nil {
		go s.notif.Run(workerCtx)
	}

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *RestServer) Close(ctx context.Context) error {
	var serverErr error
	if s.httpServer != nil {
		s.httpServer.SetKeepAlivesEnabled(false)
		serverErr = s.httpServer.Shutdown(ctx)
	}

	if s.pub != nil {
		s.pub.Stop()
	}
	if s.cancelWorkers != nil {
		s.cancelWorkers()
	}
	if s.adapter != nil {
		_ = s.adapter.Close()
	}
	if s.elector != nil {
		_ = s.elector.Close()
	}
	return serverErr
}

// OutstandingCertificateRequest is one entry of the
// get-outstanding-certificate-requests action result, one per announcing
// requirer unit.
type OutstandingCertificateRequest struct {
	CSR         string `json:"csr"`
	RelationID  string `json:"relation_id"`
	Application string `json:"application"`
	Unit        string `json:"unit"`
	IsCA        bool   `json:"is_ca"`
}

type GetOutstandingCertificateRequestsResponse struct {
	Result string `json:"result"`
}

type ProvideCertificateActionRequest struct {
	Certificate               string `json:"certificate"`
	CACertificate             string `json:"ca-certificate"`
	CAChain                   string `json:"ca-chain"`
	CertificateSigningRequest string `json:"certificate-signing-request"`
}

func (s *RestServer) getOutstandingCertificateRequests(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.actionTimeout)
	defer cancel()

	req := storage.ListCertificateRequestsRequest{
		Limit:    100,
		Statuses: []model.RequestStatus{model.RequestStatusOutstanding},
	}
	if relationID := r.URL.Query().Get("relation_id"); relationID != "" {
		req.RelationIDs = []string{relationID}
	}

	entries := make([]OutstandingCertificateRequest, 0)
	for {
		result, err := s.certProvider.ListCertificateRequests(ctx, req)
		if err != nil {
			err = mapActionTimeout(ctx, err)
			http.Error(w, fmt.Sprintf("Failed to list outstanding certificate requests: %s", err.Error()), model.ErrToHttpStatus(err))
			return
		}
		for _, record := range result.Records {
			for _, ref := range record.Requirers {
				entries = append(entries, OutstandingCertificateRequest{
					CSR:         record.CertificateSigningRequest,
					RelationID:  ref.RelationID,
					Application: ref.Application,
					Unit:        ref.Unit,
					IsCA:        record.IsCA,
				})
			}
		}
		req.Offset += len(result.Records)
		if len(result.Records) == 0 || req.Offset >= int(result.Total) {
			break
		}
	}

	// The action result is a JSON encoded string, not a nested array.
	encoded, err := json.Marshal(entries)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to encode outstanding certificate requests: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(GetOutstandingCertificateRequestsResponse{Result: string(encoded)})
}

func (s *RestServer) provideCertificate(w http.ResponseWriter, r *http.Request) {
	ts := time.Now().Unix()
	ctx, cancel := context.WithTimeout(r.Context(), s.actionTimeout)
	defer cancel()
	requester := ctx.Value(REQUESTER_CONTEXT_KEY).(string)

	actionReq := ProvideCertificateActionRequest{}
	if err := json.NewDecoder(r.Body).Decode(&actionReq); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %s", err.Error()), http.StatusBadRequest)
		return
	}

	req := provision.ProvideCertificateRequest{Requester: requester}
	fields := []struct {
		name    string
		encoded string
		target  *string
	}{
		{"certificate", actionReq.Certificate, &req.Certificate},
		{"ca-certificate", actionReq.CACertificate, &req.CACertificate},
		{"ca-chain", actionReq.CAChain, &req.CAChain},
		{"certificate-signing-request", actionReq.CertificateSigningRequest, &req.CertificateSigningRequest},
	}
	for _, field := range fields {
		decoded, err := base64.StdEncoding.DecodeString(field.encoded)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid request: %s is not valid base64: %s", field.name, err.Error()), http.StatusBadRequest)
			return
		}
		*field.target = string(decoded)
	}

	record, err := s.certProvider.ProvideCertificate(ctx, ts, req)
	if err != nil {
		err = mapActionTimeout(ctx, err)
		http.Error(w, fmt.Sprintf("Failed to provide certificate: %s", err.Error()), model.ErrToHttpStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(record)
}

func (s *RestServer) listCertificateRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit == 0 {
		limit = 10
	}
	req := storage.ListCertificateRequestsRequest{
		Offset: offset,
		Limit:  limit,
	}
	if statusFilter := r.URL.Query().Get("status"); statusFilter != "" {
		req.Statuses = []model.RequestStatus{model.RequestStatus(statusFilter)}
	}
	if relationID := r.URL.Query().Get("relation_id"); relationID != "" {
		req.RelationIDs = []string{relationID}
	}

	result, err := s.certProvider.ListCertificateRequests(ctx, req)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list certificate requests: %s", err.Error()), model.ErrToHttpStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

func (s *RestServer) listRelations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit == 0 {
		limit = 10
	}
	req := storage.ListRelationsRequest{
		Offset: offset,
		Limit:  limit,
	}
	if application := r.URL.Query().Get("application"); application != "" {
		req.Applications = []string{application}
	}

	result, err := s.certProvider.ListRelations(ctx, req)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list relations: %s", err.Error()), model.ErrToHttpStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

func (s *RestServer) getRelationCertificates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	relationID := mux.Vars(r)["id"]

	databag, err := s.certProvider.GetRelationCertificates(ctx, relationID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get relation certificates: %s", err.Error()), model.ErrToHttpStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(databag)
}

func (s *RestServer) getStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	unitStatus := s.reporter.Report(ctx)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(unitStatus)
}

// mapActionTimeout turns a deadline expiry into the timeout sentinel so the
// action fails with 504 instead of a generic 500.
func mapActionTimeout(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("action did not complete in time %w", model.ErrTimeout)
	}
	return err
}
