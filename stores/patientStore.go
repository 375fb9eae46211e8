package stores

import (
	"context"
	"fmt"
	"log"
	"sync"

	"ClinicDesk/gateway"
	"ClinicDesk/models"
)

// CascadeError reports a registration whose patient step succeeded upstream
// but whose invoice was not issued. Callers must treat it as partial
// success: the patient exists and is cached, billing needs manual follow-up.
type CascadeError struct {
	PatientID string
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("patient %s registered but no invoice was issued", e.PatientID)
}

// PatientStore owns the client-side cache of patient records and keeps it
// consistent with the remote gateway: every mutation synchronizes upstream
// first and commits to the cache only on success, then notifies subscribers.
//
// Concurrent mutations of the same patient are not serialized: whichever
// gateway response settles last wins the cache entry, and a notification
// fires for each. Subscribers must read notifications as "cache changed",
// not as completion of a particular call.
type PatientStore struct {
	mu        sync.Mutex
	gateway   gateway.PatientGateway
	billing   *BillingStore
	patients  []models.Patient
	observers Observable[models.Patient]
}

// NewPatientStore creates a patient store. billing may be nil; when set, the
// invoice issued by the registration cascade is recorded there.
func NewPatientStore(gw gateway.PatientGateway, billing *BillingStore) *PatientStore {
	return &PatientStore{gateway: gw, billing: billing}
}

// Subscribe registers listener for cache-change notifications and returns
// its unsubscribe function.
func (s *PatientStore) Subscribe(listener Listener[models.Patient]) func() {
	return s.observers.Subscribe(listener)
}

// Patients returns a copy of the current cache, most recent first.
func (s *PatientStore) Patients() []models.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Patient(nil), s.patients...)
}

// GetPatients fetches all patients matching filters, replaces the cache and
// notifies. A fetch failure is logged and the previous cache is returned
// unchanged with no notification, so a transient outage never blanks views.
func (s *PatientStore) GetPatients(ctx context.Context, filters models.PatientFilters) []models.Patient {
	patients, err := s.gateway.List(ctx, filters)
	if err != nil {
		log.Printf("Failed to fetch patients: %v", err)
		return s.Patients()
	}

	s.mu.Lock()
	s.patients = patients
	s.mu.Unlock()
	s.observers.Notify(patients)
	return append([]models.Patient(nil), patients...)
}

// GetPatientById is a best-effort passthrough lookup. It does not touch the
// cache and returns nil on any failure.
func (s *PatientStore) GetPatientById(ctx context.Context, id string) *models.Patient {
	patient, err := s.gateway.Get(ctx, id)
	if err != nil {
		log.Printf("Failed to fetch patient %s: %v", id, err)
		return nil
	}
	return patient
}

// GetQueuePatients returns the cached patients whose status keeps them in
// the check-in queue. Pure cache read, no gateway call.
func (s *PatientStore) GetQueuePatients() []models.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	queue := make([]models.Patient, 0)
	for _, p := range s.patients {
		if p.InQueue() {
			queue = append(queue, p)
		}
	}
	return queue
}

// GetStats fetches today's dashboard aggregate. Stats are advisory UI
// content, so a failure is logged and a zeroed struct returned.
func (s *PatientStore) GetStats(ctx context.Context) models.Stats {
	stats, err := s.gateway.Stats(ctx)
	if err != nil {
		log.Printf("Failed to fetch stats: %v", err)
		return models.Stats{}
	}
	return *stats
}

// AddPatient registers a new patient. On success the patient is prepended to
// the cache and subscribers are notified; the cascade invoice is recorded in
// the billing store. If the gateway registered the patient without issuing
// an invoice, the registration is returned together with a *CascadeError.
// On gateway failure the cache is untouched and no notification fires.
func (s *PatientStore) AddPatient(ctx context.Context, patient models.Patient) (*models.Registration, error) {
	registration, err := s.gateway.Create(ctx, patient)
	if err != nil {
		return nil, fmt.Errorf("failed to add patient: %w", err)
	}

	s.mu.Lock()
	s.patients = append([]models.Patient{registration.Patient}, s.patients...)
	patients := s.patients
	s.mu.Unlock()
	s.observers.Notify(patients)

	if registration.Invoice == nil {
		return registration, &CascadeError{PatientID: registration.Patient.ID}
	}
	if s.billing != nil {
		s.billing.recordCascade(*registration.Invoice)
	}
	return registration, nil
}

// UpdatePatientStatus transitions a patient's status upstream, then commits
// the returned record to the cache. When the patient is absent locally the
// remote change stands but no notification fires.
func (s *PatientStore) UpdatePatientStatus(ctx context.Context, id, status string) (*models.Patient, error) {
	updated, err := s.gateway.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update patient status: %w", err)
	}
	s.replace(*updated)
	return updated, nil
}

// UpdatePatient applies arbitrary field changes with the same
// synchronize-then-commit discipline as UpdatePatientStatus.
func (s *PatientStore) UpdatePatient(ctx context.Context, id string, patch models.PatientPatch) (*models.Patient, error) {
	updated, err := s.gateway.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	s.replace(*updated)
	return updated, nil
}

// DeletePatient removes a patient upstream, then from the cache. The removed
// entity is returned, or nil when it was not cached.
func (s *PatientStore) DeletePatient(ctx context.Context, id string) (*models.Patient, error) {
	if err := s.gateway.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete patient: %w", err)
	}

	s.mu.Lock()
	for i := range s.patients {
		if s.patients[i].ID == id {
			removed := s.patients[i]
			patients := make([]models.Patient, 0, len(s.patients)-1)
			patients = append(patients, s.patients[:i]...)
			patients = append(patients, s.patients[i+1:]...)
			s.patients = patients
			s.mu.Unlock()
			s.observers.Notify(patients)
			return &removed, nil
		}
	}
	s.mu.Unlock()
	return nil, nil
}

// replace swaps the cache entry with the same ID and notifies. No-op without
// notification when the entity is not cached (stale-cache case). The cache is
// rebuilt rather than written in place so slices handed to earlier
// notifications are never rewritten under a subscriber.
func (s *PatientStore) replace(patient models.Patient) {
	s.mu.Lock()
	for i := range s.patients {
		if s.patients[i].ID == patient.ID {
			patients := append([]models.Patient(nil), s.patients...)
			patients[i] = patient
			s.patients = patients
			s.mu.Unlock()
			s.observers.Notify(patients)
			return
		}
	}
	s.mu.Unlock()
}
