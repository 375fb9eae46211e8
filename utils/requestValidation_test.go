package utils

import (
	"testing"

	"ClinicDesk/models"
)

func TestValidateRegistration(t *testing.T) {
	valid := models.Patient{FirstName: "Ana", LastName: "Cruz", Email: "ana@example.com"}
	if err := ValidateRegistration(valid); err != nil {
		t.Errorf("valid registration rejected: %v", err)
	}

	if err := ValidateRegistration(models.Patient{LastName: "Cruz"}); err == nil {
		t.Error("missing first name accepted")
	}
	if err := ValidateRegistration(models.Patient{FirstName: "Ana", LastName: "Cruz", Email: "not-an-email"}); err == nil {
		t.Error("malformed email accepted")
	}
	if err := ValidateRegistration(models.Patient{FirstName: "Ana", LastName: "Cruz", Status: "discharged"}); err == nil {
		t.Error("unknown status accepted")
	}
}

func TestValidateStatusChange(t *testing.T) {
	for _, status := range models.PatientStatuses {
		if err := ValidateStatusChange(status); err != nil {
			t.Errorf("valid status %q rejected: %v", status, err)
		}
	}
	if err := ValidateStatusChange(""); err == nil {
		t.Error("blank status accepted")
	}
	if err := ValidateStatusChange("archived"); err == nil {
		t.Error("unknown status accepted")
	}
}

func TestValidateInvoiceDraft(t *testing.T) {
	valid := models.InvoiceDraft{
		PatientID: "P-1",
		Items:     []models.LineItem{{Description: "X-Ray", Quantity: 1, UnitPrice: 120}},
	}
	if err := ValidateInvoiceDraft(valid); err != nil {
		t.Errorf("valid draft rejected: %v", err)
	}

	// Empty items are fine; the gateway bills the default consultation fee.
	if err := ValidateInvoiceDraft(models.InvoiceDraft{PatientID: "P-1"}); err != nil {
		t.Errorf("empty item list rejected: %v", err)
	}

	if err := ValidateInvoiceDraft(models.InvoiceDraft{}); err == nil {
		t.Error("missing patient ID accepted")
	}
	bad := models.InvoiceDraft{
		PatientID: "P-1",
		Items:     []models.LineItem{{Description: "", Quantity: 0, UnitPrice: -5}},
	}
	if err := ValidateInvoiceDraft(bad); err == nil {
		t.Error("invalid line item accepted")
	}
}

func TestValidateMarkPaid(t *testing.T) {
	for _, method := range models.PaymentMethods {
		if err := ValidateMarkPaid(method); err != nil {
			t.Errorf("valid method %q rejected: %v", method, err)
		}
	}
	if err := ValidateMarkPaid("IOU"); err == nil {
		t.Error("unknown payment method accepted")
	}
	if err := ValidateMarkPaid(""); err == nil {
		t.Error("blank payment method accepted")
	}
}
