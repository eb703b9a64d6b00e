package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/manualtls/manualtls/pkg/cert_provider/api"
	"github.com/manualtls/manualtls/pkg/cert_provider/model"
	"github.com/manualtls/manualtls/pkg/cert_provider/storage"
	"github.com/manualtls/manualtls/pkg/util"
)

type RestClient struct {
	requester string
	server    string // http://server/
}

func NewRestClient(server, requester string) *RestClient {
	return &RestClient{
		requester: requester,
		server:    server,
	}
}

func (r *RestClient) GetOutstandingCertificateRequests(relationID string) ([]api.OutstandingCertificateRequest, error) {
	path := "/actions/get-outstanding-certificate-requests"
	if relationID != "" {
		path += "?relation_id=" + url.QueryEscape(relationID)
	}

	response := api.GetOutstandingCertificateRequestsResponse{}
	if err := r.execute(http.MethodGet, path, nil, &response); err != nil {
		return nil, err
	}

	entries := make([]api.OutstandingCertificateRequest, 0)
	if err := json.Unmarshal([]byte(response.Result), &entries); err != nil {
		return nil, fmt.Errorf("malformed action result: %w", err)
	}
	return entries, nil
}

func (r *RestClient) ProvideCertificate(req api.ProvideCertificateActionRequest) (model.CertificateRequest, error) {
	path := "/actions/provide-certificate"
	record := model.CertificateRequest{}
	if err := r.execute(http.MethodPost, path, util.StructToJSONReader(req), &record); err != nil {
		return model.CertificateRequest{}, err
	}
	return record, nil
}

func (r *RestClient) ListCertificateRequests(offset, limit int, status string) (storage.ListCertificateRequestsResult, error) {
	path := fmt.Sprintf("/certificate_requests?offset=%d&limit=%d", offset, limit)
	if status != "" {
		path += "&status=" + url.QueryEscape(status)
	}

	result := storage.ListCertificateRequestsResult{}
	if err := r.execute(http.MethodGet, path, nil, &result); err != nil {
		return storage.ListCertificateRequestsResult{}, err
	}
	return result, nil
}

func (r *RestClient) ListRelations(offset, limit int) (storage.ListRelationsResult, error) {
	path := fmt.Sprintf("/relations?offset=%d&limit=%d", offset, limit)
	result := storage.ListRelationsResult{}
	if err := r.execute(http.MethodGet, path, nil, &result); err != nil {
		return storage.ListRelationsResult{}, err
	}
	return result, nil
}

func (r *RestClient) GetRelationCertificates(relationID string) (model.ProviderDatabagEvent, error) {
	path := fmt.Sprintf("/relations/%s/certificates", url.PathEscape(relationID))
	databag := model.ProviderDatabagEvent{}
	if err := r.execute(http.MethodGet, path, nil, &databag); err != nil {
		return model.ProviderDatabagEvent{}, err
	}
	return databag, nil
}

func (r *RestClient) GetStatus() (model.UnitStatus, error) {
	path := "/status"
	unitStatus := model.UnitStatus{}
	if err := r.execute(http.MethodGet, path, nil, &unitStatus); err != nil {
		return model.UnitStatus{}, err
	}
	return unitStatus, nil
}

func (r *RestClient) execute(method, path string, body io.Reader, result any) error {
	endPoint := r.server + path
	req, err := http.NewRequest(method, endPoint, body)
	if err != nil {
		return err
	}
	req.Header.Set(api.REQUESTER_HEADER, r.requester)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	status := resp.StatusCode
	if status/100 != 2 {
		message, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request failed with status %d, message: %s", status, string(message))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return err
	}
	return nil
}
