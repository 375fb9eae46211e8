package gateway

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ClinicDesk/models"
)

// MemoryGateway is an in-process implementation of all three gateway
// interfaces, used as the collaborator fixture in tests and for local
// development without an upstream API. It mirrors the upstream contract:
// IDs are issued here (uuid for patients, a monotonic sequence for
// invoices), and patient creation performs the billing cascade atomically.
type MemoryGateway struct {
	mu          sync.Mutex
	patients    []models.Patient
	invoices    []models.Invoice
	invoiceSeq  int
	failure     error
	skipCascade bool
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{}
}

// FailWith makes every subsequent call fail with err until reset with nil.
func (g *MemoryGateway) FailWith(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failure = err
}

// SkipCascade makes Create return a registration without an invoice,
// simulating an upstream whose billing step failed after the patient step.
func (g *MemoryGateway) SkipCascade(skip bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.skipCascade = skip
}

func (g *MemoryGateway) List(ctx context.Context, filters models.PatientFilters) ([]models.Patient, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failure != nil {
		return nil, g.failure
	}

	matched := make([]models.Patient, 0, len(g.patients))
	for _, p := range g.patients {
		if filters.Status != "" && p.Status != filters.Status {
			continue
		}
		if filters.Doctor != "" && p.AssignedDoctor != filters.Doctor {
			continue
		}
		if filters.Search != "" && !strings.Contains(strings.ToLower(p.FullName()), strings.ToLower(filters.Search)) {
			continue
		}
		matched = append(matched, p)
	}
	return matched, nil
}

func (g *MemoryGateway) Get(ctx context.Context, id string) (*models.Patient, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failure != nil {
		return nil, g.failure
	}
	for _, p := range g.patients {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (g *MemoryGateway) Create(ctx context.Context, patient models.Patient) (*models.Registration, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failure != nil {
		return nil, g.failure
	}

	patient.ID = "P-" + uuid.New().String()
	patient.RegisteredAt = time.Now()
	patient.IsNew = true
	if patient.Status == "" {
		patient.Status = models.PatientWaiting
	}
	if !models.ValidPatientStatus(patient.Status) {
		return nil, &APIError{StatusCode: 400, Message: fmt.Sprintf("invalid patient status %q", patient.Status)}
	}
	g.patients = append([]models.Patient{patient}, g.patients...)

	registration := models.Registration{Patient: patient}
	if !g.skipCascade {
		invoice := g.issueInvoice(models.InvoiceDraft{
			PatientID:   patient.ID,
			PatientName: patient.FullName(),
		}, patient.AssignedDoctor)
		registration.Invoice = &invoice
	}
	return &registration, nil
}

func (g *MemoryGateway) Update(ctx context.Context, id string, patch models.PatientPatch) (*models.Patient, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failure != nil {
		return nil, g.failure
	}
	for i := range g.patients {
		if g.patients[i].ID != id {
			continue
		}
		p := &g.patients[i]
		if patch.FirstName != nil {
			p.FirstName = *patch.FirstName
		}
		if patch.LastName != nil {
			p.LastName = *patch.LastName
		}
		if patch.DateOfBirth != nil {
			p.DateOfBirth = *patch.DateOfBirth
		}
		if patch.Age != nil {
			p.Age = *patch.Age
		}
		if patch.Sex != nil {
			p.Sex = *patch.Sex
		}
		if patch.GenderIdentity != nil {
			p.GenderIdentity = *patch.GenderIdentity
		}
		if patch.Phone != nil {
			p.Phone = *patch.Phone
		}
		if patch.Email != nil {
			p.Email = *patch.Email
		}
		if patch.Address != nil {
			p.Address = *patch.Address
		}
		if patch.AssignedDoctor != nil {
			p.AssignedDoctor = *patch.AssignedDoctor
		}
		if patch.FollowUpDate != nil {
			p.FollowUpDate = *patch.FollowUpDate
		}
		if patch.MedicalNotes != nil {
			p.MedicalNotes = *patch.MedicalNotes
		}
		if patch.Contact != nil {
			p.EmergencyContact = *patch.Contact
		}
		updated := *p
		return &updated, nil
	}
	return nil, ErrNotFound
}

func (g *MemoryGateway) UpdateStatus(ctx context.Context, id, status string) (*models.Patient, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failure != nil {
		return nil, g.failure
	}
	if !models.ValidPatientStatus(status) {
		return nil, &APIError{StatusCode: 400, Message: fmt.Sprintf("invalid patient status %q", status)}
	}
	for i := range g.patients {
		if g.patients[i].ID == id {
			g.patients[i].Status = status
			updated := g.patients[i]
			return &updated, nil
		}
	}
	return nil, ErrNotFound
}

func (g *MemoryGateway) Delete(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failure != nil {
		return g.failure
	}
	for i := range g.patients {
		if g.patients[i].ID == id {
			g.patients = append(g.patients[:i], g.patients[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (g *MemoryGateway) Queue(ctx context.Context) ([]models.Patient, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failure != nil {
		return nil, g.failure
	}
	queue := make([]models.Patient, 0)
	for _, p := range g.patients {
		if p.InQueue() {
			queue = append(queue, p)
		}
	}
	return queue, nil
}

func (g *MemoryGateway) Stats(ctx context.Context) (*models.Stats, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failure != nil {
		return nil, g.failure
	}
	stats := models.Stats{Total: len(g.patients)}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, p := range g.patients {
		switch p.Status {
		case models.PatientCheckedIn:
			stats.CheckedIn++
		case models.PatientWaiting:
			stats.Waiting++
		case models.PatientCompleted:
			stats.Completed++
		}
		if !p.RegisteredAt.Before(today) {
			stats.NewToday++
		}
	}
	return &stats, nil
}

func (g *MemoryGateway) ListInvoices(ctx context.Context, filters models.InvoiceFilters) ([]models.Invoice, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failure != nil {
		return nil, g.failure
	}
	matched := make([]models.Invoice, 0, len(g.invoices))
	for _, inv := range g.invoices {
		if filters.Status != "" && inv.Status != filters.Status {
			continue
		}
		if filters.Search != "" && !strings.Contains(strings.ToLower(inv.PatientName), strings.ToLower(filters.Search)) {
			continue
		}
		matched = append(matched, inv)
	}
	return matched, nil
}

func (g *MemoryGateway) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failure != nil {
		return nil, g.failure
	}
	for _, inv := range g.invoices {
		if inv.ID == id {
			found := inv
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (g *MemoryGateway) CreateInvoice(ctx context.Context, draft models.InvoiceDraft) (*models.Invoice, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failure != nil {
		return nil, g.failure
	}
	invoice := g.issueInvoice(draft, "")
	return &invoice, nil
}

func (g *MemoryGateway) MarkInvoicePaid(ctx context.Context, id, paymentMethod string) (*models.Invoice, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failure != nil {
		return nil, g.failure
	}
	if !models.ValidPaymentMethod(paymentMethod) {
		return nil, &APIError{StatusCode: 400, Message: fmt.Sprintf("unknown payment method %q", paymentMethod)}
	}
	for i := range g.invoices {
		if g.invoices[i].ID != id {
			continue
		}
		inv := &g.invoices[i]
		if inv.Status != models.InvoicePaid {
			now := time.Now()
			inv.Status = models.InvoicePaid
			inv.PaymentMethod = paymentMethod
			inv.PaidDate = &now
		}
		updated := *inv
		return &updated, nil
	}
	return nil, ErrNotFound
}

// issueInvoice assigns the next sequential invoice ID, fills defaults and
// prepends the invoice. Callers must hold g.mu.
func (g *MemoryGateway) issueInvoice(draft models.InvoiceDraft, doctor string) models.Invoice {
	g.invoiceSeq++
	invoice := models.Invoice{
		ID:             fmt.Sprintf("INV-%03d", g.invoiceSeq),
		PatientID:      draft.PatientID,
		PatientName:    draft.PatientName,
		AssignedDoctor: doctor,
		Date:           time.Now(),
		Items:          draft.Items,
		Status:         models.InvoicePending,
	}
	if len(invoice.Items) == 0 {
		invoice.Items = []models.LineItem{{
			Description: models.ConsultationFee.Name,
			Quantity:    1,
			UnitPrice:   models.ConsultationFee.Price,
		}}
	}
	invoice.ComputeTotals()
	g.invoices = append([]models.Invoice{invoice}, g.invoices...)
	return invoice
}

func (g *MemoryGateway) Doctors(ctx context.Context) ([]string, error) {
	if err := g.currentFailure(); err != nil {
		return nil, err
	}
	return append([]string(nil), models.Doctors...), nil
}

func (g *MemoryGateway) Services(ctx context.Context) ([]models.BillingService, error) {
	if err := g.currentFailure(); err != nil {
		return nil, err
	}
	return append([]models.BillingService(nil), models.BillingServices...), nil
}

func (g *MemoryGateway) PaymentMethods(ctx context.Context) ([]string, error) {
	if err := g.currentFailure(); err != nil {
		return nil, err
	}
	return append([]string(nil), models.PaymentMethods...), nil
}

func (g *MemoryGateway) currentFailure() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.failure
}

// Billing returns a BillingGateway view of the fixture; MemoryGateway itself
// satisfies PatientGateway and ReferenceGateway directly.
func (g *MemoryGateway) Billing() BillingGateway {
	return memoryBilling{g}
}

type memoryBilling struct {
	g *MemoryGateway
}

func (b memoryBilling) List(ctx context.Context, filters models.InvoiceFilters) ([]models.Invoice, error) {
	return b.g.ListInvoices(ctx, filters)
}

func (b memoryBilling) Get(ctx context.Context, id string) (*models.Invoice, error) {
	return b.g.GetInvoice(ctx, id)
}

func (b memoryBilling) Create(ctx context.Context, draft models.InvoiceDraft) (*models.Invoice, error) {
	return b.g.CreateInvoice(ctx, draft)
}

func (b memoryBilling) MarkPaid(ctx context.Context, id, paymentMethod string) (*models.Invoice, error) {
	return b.g.MarkInvoicePaid(ctx, id, paymentMethod)
}
