package utils

import (
	"log"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"ClinicDesk/models"
)

// Request validation lives at the HTTP boundary: the stores accept whatever
// they are given and the upstream gateway has the final word.

// ValidateRegistration validates a patient registration payload.
func ValidateRegistration(patient models.Patient) error {
	err := validation.ValidateStruct(&patient,
		validation.Field(&patient.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&patient.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&patient.Email, is.Email),
		validation.Field(&patient.Status, validation.In(statusValues()...)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateStatusChange validates a queue status transition request.
func ValidateStatusChange(status string) error {
	err := validation.Validate(status,
		validation.Required.Error("status cannot be blank"),
		validation.In(statusValues()...),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateInvoiceDraft validates a manual invoice creation payload. An empty
// item list is allowed; the gateway fills in the default consultation fee.
func ValidateInvoiceDraft(draft models.InvoiceDraft) error {
	err := validation.ValidateStruct(&draft,
		validation.Field(&draft.PatientID, validation.Required),
		validation.Field(&draft.Items, validation.Each(validation.By(validateLineItem))),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateMarkPaid validates a payment confirmation request.
func ValidateMarkPaid(paymentMethod string) error {
	err := validation.Validate(paymentMethod,
		validation.Required.Error("payment method cannot be blank"),
		validation.In(paymentMethodValues()...).Error("unknown payment method"),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

func validateLineItem(value interface{}) error {
	item, _ := value.(models.LineItem)
	return validation.Errors{
		"description": validation.Validate(item.Description, validation.Required),
		"quantity":    validation.Validate(item.Quantity, validation.Required, validation.Min(1)),
		"unit_price":  validation.Validate(item.UnitPrice, validation.Min(0.0)),
	}.Filter()
}

func statusValues() []interface{} {
	values := make([]interface{}, len(models.PatientStatuses))
	for i, s := range models.PatientStatuses {
		values[i] = s
	}
	return values
}

func paymentMethodValues() []interface{} {
	values := make([]interface{}, len(models.PaymentMethods))
	for i, m := range models.PaymentMethods {
		values[i] = m
	}
	return values
}
