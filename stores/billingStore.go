package stores

import (
	"context"
	"fmt"
	"log"
	"sync"

	"ClinicDesk/gateway"
	"ClinicDesk/models"
)

// BillingStore owns the client-side cache of invoices with the same
// synchronize-then-commit discipline as PatientStore. Invoices are never
// removed from the cache; payment is the only transition the store performs
// and a paid invoice is never demoted.
type BillingStore struct {
	mu        sync.Mutex
	gateway   gateway.BillingGateway
	invoices  []models.Invoice
	observers Observable[models.Invoice]
}

func NewBillingStore(gw gateway.BillingGateway) *BillingStore {
	return &BillingStore{gateway: gw}
}

// Subscribe registers listener for cache-change notifications and returns
// its unsubscribe function.
func (s *BillingStore) Subscribe(listener Listener[models.Invoice]) func() {
	return s.observers.Subscribe(listener)
}

// Invoices returns a copy of the current cache, most recent first.
func (s *BillingStore) Invoices() []models.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Invoice(nil), s.invoices...)
}

// GetInvoices fetches invoices matching filters, replaces the cache and
// notifies. A fetch failure is logged and the previous cache returned
// unchanged with no notification.
func (s *BillingStore) GetInvoices(ctx context.Context, filters models.InvoiceFilters) []models.Invoice {
	invoices, err := s.gateway.List(ctx, filters)
	if err != nil {
		log.Printf("Failed to fetch invoices: %v", err)
		return s.Invoices()
	}

	s.mu.Lock()
	s.invoices = invoices
	s.mu.Unlock()
	s.observers.Notify(invoices)
	return append([]models.Invoice(nil), invoices...)
}

// AddInvoice creates an invoice upstream and upserts it into the cache: an
// entry with the same ID is updated in place, otherwise the invoice is
// prepended. The upsert keeps the cache duplicate-free when the registration
// cascade already recorded the same invoice.
func (s *BillingStore) AddInvoice(ctx context.Context, draft models.InvoiceDraft) (*models.Invoice, error) {
	invoice, err := s.gateway.Create(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("failed to add invoice: %w", err)
	}
	s.upsert(*invoice)
	return invoice, nil
}

// UpdateInvoice marks an invoice as paid with the given payment method. On
// success the cache entry is replaced and subscribers notified; on failure
// the error is propagated so a payment confirmation failure is never
// swallowed.
func (s *BillingStore) UpdateInvoice(ctx context.Context, id, paymentMethod string) (*models.Invoice, error) {
	invoice, err := s.gateway.MarkPaid(ctx, id, paymentMethod)
	if err != nil {
		return nil, fmt.Errorf("failed to mark invoice paid: %w", err)
	}

	s.mu.Lock()
	for i := range s.invoices {
		if s.invoices[i].ID == invoice.ID {
			invoices := append([]models.Invoice(nil), s.invoices...)
			invoices[i] = *invoice
			s.invoices = invoices
			s.mu.Unlock()
			s.observers.Notify(invoices)
			return invoice, nil
		}
	}
	s.mu.Unlock()
	return invoice, nil
}

// recordCascade upserts an invoice issued by the registration cascade. The
// gateway already persisted it, so no remote call is made.
func (s *BillingStore) recordCascade(invoice models.Invoice) {
	s.upsert(invoice)
}

// upsert rebuilds the cache rather than writing in place so slices handed to
// earlier notifications are never rewritten under a subscriber.
func (s *BillingStore) upsert(invoice models.Invoice) {
	s.mu.Lock()
	for i := range s.invoices {
		if s.invoices[i].ID == invoice.ID {
			invoices := append([]models.Invoice(nil), s.invoices...)
			invoices[i] = invoice
			s.invoices = invoices
			s.mu.Unlock()
			s.observers.Notify(invoices)
			return
		}
	}
	s.invoices = append([]models.Invoice{invoice}, s.invoices...)
	invoices := s.invoices
	s.mu.Unlock()
	s.observers.Notify(invoices)
}
