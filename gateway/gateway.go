package gateway

import (
	"context"
	"errors"
	"fmt"

	"ClinicDesk/models"
)

// ErrNotFound is returned when the upstream does not know the requested entity.
var ErrNotFound = errors.New("entity not found")

// APIError is a non-success response from the upstream API, carrying the
// human-readable message from its error envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// PatientGateway is the remote source of truth for patient records.
// Create performs the registration cascade server-side and returns the
// patient together with the consultation invoice it issued.
type PatientGateway interface {
	List(ctx context.Context, filters models.PatientFilters) ([]models.Patient, error)
	Get(ctx context.Context, id string) (*models.Patient, error)
	Create(ctx context.Context, patient models.Patient) (*models.Registration, error)
	Update(ctx context.Context, id string, patch models.PatientPatch) (*models.Patient, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Patient, error)
	Delete(ctx context.Context, id string) error
	Queue(ctx context.Context) ([]models.Patient, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

// BillingGateway is the remote source of truth for invoices.
type BillingGateway interface {
	List(ctx context.Context, filters models.InvoiceFilters) ([]models.Invoice, error)
	Get(ctx context.Context, id string) (*models.Invoice, error)
	Create(ctx context.Context, draft models.InvoiceDraft) (*models.Invoice, error)
	MarkPaid(ctx context.Context, id, paymentMethod string) (*models.Invoice, error)
}

// ReferenceGateway serves slow-moving reference data for form dropdowns.
type ReferenceGateway interface {
	Doctors(ctx context.Context) ([]string, error)
	Services(ctx context.Context) ([]models.BillingService, error)
	PaymentMethods(ctx context.Context) ([]string, error)
}
