package gateway

import (
	"context"
	"net/url"

	"ClinicDesk/models"
)

// BillingClient implements BillingGateway against the upstream REST API.
type BillingClient struct {
	api *Client
}

func NewBillingClient(api *Client) *BillingClient {
	return &BillingClient{api: api}
}

func (g *BillingClient) List(ctx context.Context, filters models.InvoiceFilters) ([]models.Invoice, error) {
	params := url.Values{}
	if filters.Status != "" {
		params.Set("status", filters.Status)
	}
	if filters.Search != "" {
		params.Set("search", filters.Search)
	}

	endpoint := "/api/invoices"
	if query := params.Encode(); query != "" {
		endpoint += "?" + query
	}

	var invoices []models.Invoice
	if err := g.api.get(ctx, endpoint, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (g *BillingClient) Get(ctx context.Context, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := g.api.get(ctx, "/api/invoices/"+url.PathEscape(id), &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (g *BillingClient) Create(ctx context.Context, draft models.InvoiceDraft) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := g.api.post(ctx, "/api/invoices", draft, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (g *BillingClient) MarkPaid(ctx context.Context, id, paymentMethod string) (*models.Invoice, error) {
	body := map[string]string{
		"status":         models.InvoicePaid,
		"payment_method": paymentMethod,
	}
	var invoice models.Invoice
	if err := g.api.patch(ctx, "/api/invoices/"+url.PathEscape(id), body, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}
