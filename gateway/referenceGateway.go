package gateway

import (
	"context"

	"ClinicDesk/models"
)

// ReferenceClient implements ReferenceGateway against the upstream REST API.
type ReferenceClient struct {
	api *Client
}

func NewReferenceClient(api *Client) *ReferenceClient {
	return &ReferenceClient{api: api}
}

func (g *ReferenceClient) Doctors(ctx context.Context) ([]string, error) {
	var doctors []string
	if err := g.api.get(ctx, "/api/doctors", &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (g *ReferenceClient) Services(ctx context.Context) ([]models.BillingService, error) {
	var services []models.BillingService
	if err := g.api.get(ctx, "/api/services", &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (g *ReferenceClient) PaymentMethods(ctx context.Context) ([]string, error) {
	var methods []string
	if err := g.api.get(ctx, "/api/payment-methods", &methods); err != nil {
		return nil, err
	}
	return methods, nil
}
