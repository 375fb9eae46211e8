package gateway

import (
	"context"
	"net/url"

	"ClinicDesk/models"
)

// PatientClient implements PatientGateway against the upstream REST API.
type PatientClient struct {
	api *Client
}

func NewPatientClient(api *Client) *PatientClient {
	return &PatientClient{api: api}
}

func (g *PatientClient) List(ctx context.Context, filters models.PatientFilters) ([]models.Patient, error) {
	params := url.Values{}
	if filters.Status != "" {
		params.Set("status", filters.Status)
	}
	if filters.Doctor != "" {
		params.Set("doctor", filters.Doctor)
	}
	if filters.Search != "" {
		params.Set("search", filters.Search)
	}

	endpoint := "/api/patients"
	if query := params.Encode(); query != "" {
		endpoint += "?" + query
	}

	var patients []models.Patient
	if err := g.api.get(ctx, endpoint, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

func (g *PatientClient) Get(ctx context.Context, id string) (*models.Patient, error) {
	var patient models.Patient
	if err := g.api.get(ctx, "/api/patients/"+url.PathEscape(id), &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (g *PatientClient) Create(ctx context.Context, patient models.Patient) (*models.Registration, error) {
	var registration models.Registration
	if err := g.api.post(ctx, "/api/patients", patient, &registration); err != nil {
		return nil, err
	}
	return &registration, nil
}

func (g *PatientClient) Update(ctx context.Context, id string, patch models.PatientPatch) (*models.Patient, error) {
	var patient models.Patient
	if err := g.api.patch(ctx, "/api/patients/"+url.PathEscape(id), patch, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (g *PatientClient) UpdateStatus(ctx context.Context, id, status string) (*models.Patient, error) {
	body := map[string]string{"status": status}
	var patient models.Patient
	if err := g.api.patch(ctx, "/api/patients/"+url.PathEscape(id)+"/status", body, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (g *PatientClient) Delete(ctx context.Context, id string) error {
	return g.api.delete(ctx, "/api/patients/"+url.PathEscape(id))
}

func (g *PatientClient) Queue(ctx context.Context) ([]models.Patient, error) {
	var patients []models.Patient
	if err := g.api.get(ctx, "/api/patients/queue", &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

func (g *PatientClient) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	if err := g.api.get(ctx, "/api/dashboard/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
