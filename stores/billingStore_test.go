package stores

import (
	"context"
	"errors"
	"testing"
	"time"

	"ClinicDesk/gateway"
	"ClinicDesk/models"
)

// stubBillingGateway returns canned responses, which lets tests control the
// IDs the upstream hands back.
type stubBillingGateway struct {
	invoice *models.Invoice
	err     error
}

func (s *stubBillingGateway) List(ctx context.Context, filters models.InvoiceFilters) ([]models.Invoice, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []models.Invoice{*s.invoice}, nil
}

func (s *stubBillingGateway) Get(ctx context.Context, id string) (*models.Invoice, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.invoice, nil
}

func (s *stubBillingGateway) Create(ctx context.Context, draft models.InvoiceDraft) (*models.Invoice, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.invoice, nil
}

func (s *stubBillingGateway) MarkPaid(ctx context.Context, id, paymentMethod string) (*models.Invoice, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.invoice, nil
}

func TestBillingStore_UpsertIdempotence(t *testing.T) {
	invoice := models.Invoice{
		ID:          "INV-001",
		PatientID:   "P-1",
		PatientName: "Ana Cruz",
		Items:       []models.LineItem{{Description: "Consultation Fee", Quantity: 1, UnitPrice: 150}},
		Status:      models.InvoicePending,
	}
	invoice.ComputeTotals()
	store := NewBillingStore(&stubBillingGateway{invoice: &invoice})

	draft := models.InvoiceDraft{PatientID: "P-1", PatientName: "Ana Cruz"}
	if _, err := store.AddInvoice(context.Background(), draft); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := store.AddInvoice(context.Background(), draft); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	invoices := store.Invoices()
	if len(invoices) != 1 {
		t.Fatalf("same-ID add must update in place: expected 1 cached invoice, got %d", len(invoices))
	}
	if invoices[0].ID != "INV-001" {
		t.Errorf("unexpected cached invoice %q", invoices[0].ID)
	}
}

func TestBillingStore_CascadeRecordThenAddDoesNotDuplicate(t *testing.T) {
	invoice := models.Invoice{ID: "INV-007", PatientID: "P-7", Status: models.InvoicePending}
	store := NewBillingStore(&stubBillingGateway{invoice: &invoice})

	store.recordCascade(invoice)
	if _, err := store.AddInvoice(context.Background(), models.InvoiceDraft{PatientID: "P-7"}); err != nil {
		t.Fatalf("add after cascade failed: %v", err)
	}

	if got := len(store.Invoices()); got != 1 {
		t.Fatalf("expected 1 cached invoice after cascade plus add, got %d", got)
	}
}

func TestBillingStore_MarkPaid(t *testing.T) {
	gw := gateway.NewMemoryGateway()
	store := NewBillingStore(gw.Billing())

	created, err := store.AddInvoice(context.Background(), models.InvoiceDraft{
		PatientID:   "P-1",
		PatientName: "Ana Cruz",
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if created.Status != models.InvoicePending {
		t.Fatalf("fresh invoice should be pending, got %q", created.Status)
	}

	// Snapshot held by a caller before payment must not be aliased by the
	// later cache mutation.
	before := store.Invoices()

	notifications := 0
	store.Subscribe(func([]models.Invoice) { notifications++ })

	paid, err := store.UpdateInvoice(context.Background(), created.ID, "Cash")
	if err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}

	if paid.Status != models.InvoicePaid {
		t.Errorf("expected status paid, got %q", paid.Status)
	}
	if paid.PaymentMethod != "Cash" {
		t.Errorf("expected payment method Cash, got %q", paid.PaymentMethod)
	}
	if paid.PaidDate == nil || time.Since(*paid.PaidDate) > time.Minute {
		t.Errorf("expected a fresh paid date, got %v", paid.PaidDate)
	}
	if notifications != 1 {
		t.Errorf("expected one notification, got %d", notifications)
	}

	cached := store.Invoices()
	if cached[0].Status != models.InvoicePaid {
		t.Errorf("cache entry not replaced, status %q", cached[0].Status)
	}
	if before[0].Status != models.InvoicePending {
		t.Errorf("caller snapshot was mutated in place: status %q", before[0].Status)
	}
}

func TestBillingStore_NotifiedSnapshotsStayFrozen(t *testing.T) {
	gw := gateway.NewMemoryGateway()
	store := NewBillingStore(gw.Billing())

	created, err := store.AddInvoice(context.Background(), models.InvoiceDraft{
		PatientID:   "P-1",
		PatientName: "Ana Cruz",
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	var snapshots [][]models.Invoice
	store.Subscribe(func(invoices []models.Invoice) {
		snapshots = append(snapshots, invoices)
	})

	store.recordCascade(*created)
	if _, err := store.UpdateInvoice(context.Background(), created.ID, "Cash"); err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}

	if len(snapshots) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(snapshots))
	}
	if snapshots[0][0].Status != models.InvoicePending {
		t.Errorf("pre-payment snapshot rewritten: status %q", snapshots[0][0].Status)
	}
	if snapshots[1][0].Status != models.InvoicePaid {
		t.Errorf("expected paid invoice in the final snapshot, got %q", snapshots[1][0].Status)
	}
}

func TestBillingStore_MarkPaidFailurePropagates(t *testing.T) {
	gw := gateway.NewMemoryGateway()
	store := NewBillingStore(gw.Billing())

	created, err := store.AddInvoice(context.Background(), models.InvoiceDraft{PatientID: "P-1"})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	notifications := 0
	store.Subscribe(func([]models.Invoice) { notifications++ })

	gw.FailWith(errors.New("payment processor down"))
	if _, err := store.UpdateInvoice(context.Background(), created.ID, "Cash"); err == nil {
		t.Fatal("payment confirmation failure must be propagated")
	}
	if notifications != 0 {
		t.Errorf("failed payment notified %d times, expected 0", notifications)
	}
	if store.Invoices()[0].Status != models.InvoicePending {
		t.Errorf("failed payment mutated the cache")
	}
}

func TestBillingStore_GetInvoicesFailurePreservesCache(t *testing.T) {
	gw := gateway.NewMemoryGateway()
	store := NewBillingStore(gw.Billing())

	created, err := store.AddInvoice(context.Background(), models.InvoiceDraft{PatientID: "P-1"})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	gw.FailWith(errors.New("upstream timeout"))
	cached := store.GetInvoices(context.Background(), models.InvoiceFilters{})
	if len(cached) != 1 || cached[0].ID != created.ID {
		t.Errorf("expected previous cache to survive the failed fetch, got %+v", cached)
	}
}
