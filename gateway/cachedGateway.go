package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"ClinicDesk/cache"
	"ClinicDesk/models"
)

const (
	PatientCacheExpiry = 5 * time.Minute
	InvoiceCacheExpiry = 5 * time.Minute

	patientsCacheKey = "patients_cache"
	invoicesCacheKey = "invoices_cache"
)

// CachedPatientGateway wraps a PatientGateway with a Redis read-through cache:
// unfiltered reads are served from Redis when present, every mutation
// invalidates the affected keys before returning. Filtered lists bypass the
// cache so stale filter combinations never accumulate.
type CachedPatientGateway struct {
	inner PatientGateway
	cache *cache.Cache
}

func NewCachedPatientGateway(inner PatientGateway, cache *cache.Cache) *CachedPatientGateway {
	return &CachedPatientGateway{inner: inner, cache: cache}
}

func (g *CachedPatientGateway) List(ctx context.Context, filters models.PatientFilters) ([]models.Patient, error) {
	if filters != (models.PatientFilters{}) {
		return g.inner.List(ctx, filters)
	}

	cached, err := g.cache.Get(ctx, patientsCacheKey)
	if err != nil {
		log.Printf("Failed to get patients from cache: %v", err)
	} else if cached != "" {
		var patients []models.Patient
		if err := json.Unmarshal([]byte(cached), &patients); err == nil {
			return patients, nil
		}
	}

	patients, err := g.inner.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	g.store(ctx, patientsCacheKey, patients, PatientCacheExpiry)
	return patients, nil
}

func (g *CachedPatientGateway) Get(ctx context.Context, id string) (*models.Patient, error) {
	cacheKey := patientCacheKey(id)
	cached, err := g.cache.Get(ctx, cacheKey)
	if err != nil {
		log.Printf("Failed to get patient from cache: %v", err)
	} else if cached != "" {
		var patient models.Patient
		if err := json.Unmarshal([]byte(cached), &patient); err == nil {
			return &patient, nil
		}
	}

	patient, err := g.inner.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	g.store(ctx, cacheKey, patient, PatientCacheExpiry)
	return patient, nil
}

func (g *CachedPatientGateway) Create(ctx context.Context, patient models.Patient) (*models.Registration, error) {
	registration, err := g.inner.Create(ctx, patient)
	if err != nil {
		return nil, err
	}
	// Registration issues an invoice server-side, so both collections change.
	g.invalidate(ctx, patientsCacheKey, invoicesCacheKey)
	return registration, nil
}

func (g *CachedPatientGateway) Update(ctx context.Context, id string, patch models.PatientPatch) (*models.Patient, error) {
	patient, err := g.inner.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	g.invalidate(ctx, patientCacheKey(id), patientsCacheKey)
	return patient, nil
}

func (g *CachedPatientGateway) UpdateStatus(ctx context.Context, id, status string) (*models.Patient, error) {
	patient, err := g.inner.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	g.invalidate(ctx, patientCacheKey(id), patientsCacheKey)
	return patient, nil
}

func (g *CachedPatientGateway) Delete(ctx context.Context, id string) error {
	if err := g.inner.Delete(ctx, id); err != nil {
		return err
	}
	g.invalidate(ctx, patientCacheKey(id), patientsCacheKey)
	return nil
}

func (g *CachedPatientGateway) Queue(ctx context.Context) ([]models.Patient, error) {
	// Queue membership changes on every status transition; always fresh.
	return g.inner.Queue(ctx)
}

func (g *CachedPatientGateway) Stats(ctx context.Context) (*models.Stats, error) {
	return g.inner.Stats(ctx)
}

func (g *CachedPatientGateway) store(ctx context.Context, key string, value interface{}, expiry time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		log.Printf("Failed to marshal %s: %v", key, err)
		return
	}
	if err := g.cache.Set(ctx, key, payload, expiry); err != nil {
		log.Printf("Failed to set %s in cache: %v", key, err)
	}
}

func (g *CachedPatientGateway) invalidate(ctx context.Context, keys ...string) {
	if err := g.cache.DeleteBatch(ctx, keys...); err != nil {
		log.Printf("Failed to invalidate cache keys %v: %v", keys, err)
	}
}

func patientCacheKey(id string) string {
	return fmt.Sprintf("patient_cache:%s", id)
}

// CachedBillingGateway applies the same read-through discipline to invoices.
type CachedBillingGateway struct {
	inner BillingGateway
	cache *cache.Cache
}

func NewCachedBillingGateway(inner BillingGateway, cache *cache.Cache) *CachedBillingGateway {
	return &CachedBillingGateway{inner: inner, cache: cache}
}

func (g *CachedBillingGateway) List(ctx context.Context, filters models.InvoiceFilters) ([]models.Invoice, error) {
	if filters != (models.InvoiceFilters{}) {
		return g.inner.List(ctx, filters)
	}

	cached, err := g.cache.Get(ctx, invoicesCacheKey)
	if err != nil {
		log.Printf("Failed to get invoices from cache: %v", err)
	} else if cached != "" {
		var invoices []models.Invoice
		if err := json.Unmarshal([]byte(cached), &invoices); err == nil {
			return invoices, nil
		}
	}

	invoices, err := g.inner.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(invoices)
	if err != nil {
		log.Printf("Failed to marshal invoices: %v", err)
		return invoices, nil
	}
	if err := g.cache.Set(ctx, invoicesCacheKey, payload, InvoiceCacheExpiry); err != nil {
		log.Printf("Failed to set invoices in cache: %v", err)
	}
	return invoices, nil
}

func (g *CachedBillingGateway) Get(ctx context.Context, id string) (*models.Invoice, error) {
	return g.inner.Get(ctx, id)
}

func (g *CachedBillingGateway) Create(ctx context.Context, draft models.InvoiceDraft) (*models.Invoice, error) {
	invoice, err := g.inner.Create(ctx, draft)
	if err != nil {
		return nil, err
	}
	if err := g.cache.Delete(ctx, invoicesCacheKey); err != nil {
		log.Printf("Failed to invalidate invoices cache: %v", err)
	}
	return invoice, nil
}

func (g *CachedBillingGateway) MarkPaid(ctx context.Context, id, paymentMethod string) (*models.Invoice, error) {
	invoice, err := g.inner.MarkPaid(ctx, id, paymentMethod)
	if err != nil {
		return nil, err
	}
	if err := g.cache.Delete(ctx, invoicesCacheKey); err != nil {
		log.Printf("Failed to invalidate invoices cache: %v", err)
	}
	return invoice, nil
}
