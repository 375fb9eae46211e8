package models

import (
	"math"
	"time"
)

// Invoice status values. Paid is terminal: the stores never demote a paid
// invoice back to pending. Overdue is assigned externally (time based).
const (
	InvoicePending = "pending"
	InvoicePaid    = "paid"
	InvoiceOverdue = "overdue"
)

// TaxRate is applied to every invoice subtotal.
const TaxRate = 0.10

// LineItem is one billed service on an invoice.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Invoice model. Derived amounts are kept denormalized on the record so the
// dashboard never recomputes them from line items.
type Invoice struct {
	ID             string     `json:"id"`
	PatientID      string     `json:"patient_id"`
	PatientName    string     `json:"patient_name"`
	AssignedDoctor string     `json:"assigned_doctor,omitempty"`
	Date           time.Time  `json:"date"`
	Items          []LineItem `json:"items"`
	Subtotal       float64    `json:"subtotal"`
	Tax            float64    `json:"tax"`
	Total          float64    `json:"total"`
	Status         string     `json:"status"`
	PaymentMethod  string     `json:"payment_method,omitempty"`
	PaidDate       *time.Time `json:"paid_date,omitempty"`
}

// InvoiceFilters narrows a gateway invoice list request.
type InvoiceFilters struct {
	Status string
	Search string
}

// InvoiceDraft is the caller-supplied input for creating an invoice. An empty
// Items slice means the default consultation fee line is used.
type InvoiceDraft struct {
	PatientID   string     `json:"patient_id"`
	PatientName string     `json:"patient_name"`
	Items       []LineItem `json:"items"`
}

// RoundCurrency rounds an amount to two-decimal currency precision.
func RoundCurrency(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// ComputeTotals recalculates subtotal, tax and total from the line items.
// Total always equals round(subtotal * 1.10, 2).
func (inv *Invoice) ComputeTotals() {
	var subtotal float64
	for _, item := range inv.Items {
		subtotal += float64(item.Quantity) * item.UnitPrice
	}
	inv.Subtotal = RoundCurrency(subtotal)
	inv.Tax = RoundCurrency(subtotal * TaxRate)
	inv.Total = RoundCurrency(subtotal * (1 + TaxRate))
}

// BillingService is one entry of the clinic's service price list.
type BillingService struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ConsultationFee is the default service billed on registration.
var ConsultationFee = BillingService{ID: "consultation", Name: "Consultation Fee", Price: 150}

// BillingServices is the clinic price list, also the fallback for the
// reference endpoint.
var BillingServices = []BillingService{
	ConsultationFee,
	{ID: "followup", Name: "Follow-up Visit", Price: 100},
	{ID: "emergency", Name: "Emergency Visit", Price: 300},
	{ID: "bloodtest", Name: "Blood Test", Price: 75},
	{ID: "xray", Name: "X-Ray", Price: 120},
	{ID: "ecg", Name: "ECG", Price: 200},
	{ID: "ultrasound", Name: "Ultrasound", Price: 250},
	{ID: "mri", Name: "MRI Scan", Price: 800},
	{ID: "ctscan", Name: "CT Scan", Price: 600},
	{ID: "injection", Name: "Injection", Price: 30},
	{ID: "dressing", Name: "Wound Dressing", Price: 50},
	{ID: "prescription", Name: "Prescription", Price: 25},
}

// PaymentMethods lists the accepted payment methods.
var PaymentMethods = []string{
	"Cash",
	"Credit Card",
	"Debit Card",
	"Insurance",
	"Bank Transfer",
}

// ValidPaymentMethod reports whether method is one of the accepted values.
func ValidPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}
