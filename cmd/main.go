package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ClinicDesk/cache"
	"ClinicDesk/config"
	"ClinicDesk/database"
	"ClinicDesk/gateway"
	"ClinicDesk/models"
	"ClinicDesk/routes"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	api := gateway.NewClient(cfg.UpstreamURL, cfg.UpstreamToken, &http.Client{Timeout: 30 * time.Second})
	var patientGW gateway.PatientGateway = gateway.NewPatientClient(api)
	var billingGW gateway.BillingGateway = gateway.NewBillingClient(api)
	var referenceGW gateway.ReferenceGateway = gateway.NewReferenceClient(api)

	// The Redis response cache is optional; without it every read goes
	// straight upstream.
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(database.LoadRedisConfig(cfg.RedisURL))
		if err != nil {
			log.Fatalf("failed to initialize Redis client: %v", err)
		}
		responseCache, err := cache.NewCache(redisClient)
		if err != nil {
			log.Fatalf("failed to initialize cache: %v", err)
		}
		patientGW = gateway.NewCachedPatientGateway(patientGW, responseCache)
		billingGW = gateway.NewCachedBillingGateway(billingGW, responseCache)
	}

	handler, patientStore, billingStore := routes.SetupRoutes(cfg, patientGW, billingGW, referenceGW)

	// Audit subscribers: every cache change is logged with the collection size.
	patientStore.Subscribe(func(patients []models.Patient) {
		log.Printf("Patient cache changed: %d records", len(patients))
	})
	billingStore.Subscribe(func(invoices []models.Invoice) {
		log.Printf("Invoice cache changed: %d records", len(invoices))
	})

	srv := &http.Server{
		Addr:           cfg.ListenAddr,
		Handler:        handler,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
		IdleTimeout:    30 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		log.Printf("Starting server on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown handling
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	log.Println("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown failed: %+v", err)
	}

	wg.Wait()
	log.Println("Server exited gracefully")
}

// loadConfig loads configuration from environment variables.
func loadConfig() (*config.AppConfig, error) {
	upstreamURL := os.Getenv("UPSTREAM_URL")
	if upstreamURL == "" {
		return nil, errors.New("missing UPSTREAM_URL environment variable")
	}

	bearerToken := os.Getenv("BEARER_TOKEN")
	if bearerToken == "" {
		return nil, errors.New("missing BEARER_TOKEN environment variable")
	}

	listenAddr := os.Getenv("LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":8930"
	}

	return &config.AppConfig{
		ListenAddr:    listenAddr,
		UpstreamURL:   upstreamURL,
		UpstreamToken: os.Getenv("UPSTREAM_TOKEN"),
		BearerToken:   bearerToken,
		RedisURL:      os.Getenv("REDIS_URL"),
	}, nil
}
