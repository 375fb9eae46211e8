package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"ClinicDesk/models"
)

func TestClient_SendsAuthAndCorrelationHeaders(t *testing.T) {
	var gotAuth, gotRequestID, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode([]models.Patient{}); err != nil {
			t.Errorf("encode: %v", err)
		}
	}))
	defer server.Close()

	client := NewPatientClient(NewClient(server.URL, "secret-token", server.Client()))
	if _, err := client.List(context.Background(), models.PatientFilters{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization = %q, expected bearer token", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("expected an X-Request-ID header")
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
}

func TestClient_FilterQueryString(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := NewPatientClient(NewClient(server.URL, "", server.Client()))
	if _, err := client.List(context.Background(), models.PatientFilters{
		Status: models.PatientWaiting,
		Doctor: "Dr. David",
		Search: "ana",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := url.ParseQuery(gotQuery)
	if err != nil {
		t.Fatalf("bad query %q: %v", gotQuery, err)
	}
	if parsed.Get("status") != "waiting" || parsed.Get("doctor") != "Dr. David" || parsed.Get("search") != "ana" {
		t.Errorf("unexpected query %q", gotQuery)
	}
}

func TestClient_ErrorEnvelopeBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error": "cannot delete: has billing history"}`))
	}))
	defer server.Close()

	client := NewPatientClient(NewClient(server.URL, "", server.Client()))
	err := client.Delete(context.Background(), "P-1")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if apiErr.Message != "cannot delete: has billing history" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestClient_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewPatientClient(NewClient(server.URL, "", server.Client()))
	if _, err := client.Get(context.Background(), "P-missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_RejectsNonJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>maintenance</html>"))
	}))
	defer server.Close()

	client := NewPatientClient(NewClient(server.URL, "", server.Client()))
	if _, err := client.Get(context.Background(), "P-1"); err == nil {
		t.Error("expected an error for a non-JSON body")
	}
}

func TestClient_CreateDecodesRegistration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/patients" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var patient models.Patient
		if err := json.NewDecoder(r.Body).Decode(&patient); err != nil {
			t.Errorf("decode: %v", err)
		}
		patient.ID = "P-42"
		invoice := models.Invoice{ID: "INV-001", PatientID: "P-42", Status: models.InvoicePending}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Registration{Patient: patient, Invoice: &invoice})
	}))
	defer server.Close()

	client := NewPatientClient(NewClient(server.URL, "", server.Client()))
	registration, err := client.Create(context.Background(), models.Patient{FirstName: "Ana", LastName: "Cruz"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if registration.Patient.ID != "P-42" {
		t.Errorf("patient ID = %q", registration.Patient.ID)
	}
	if registration.Invoice == nil || registration.Invoice.PatientID != "P-42" {
		t.Errorf("cascade invoice missing or wrong: %+v", registration.Invoice)
	}
}
