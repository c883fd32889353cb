package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/vigil-labs/vigil/internal/alerts"
	"github.com/vigil-labs/vigil/internal/api"
	"github.com/vigil-labs/vigil/internal/blocklist"
	"github.com/vigil-labs/vigil/internal/config"
	"github.com/vigil-labs/vigil/internal/hub"
	"github.com/vigil-labs/vigil/internal/oracle"
	"github.com/vigil-labs/vigil/internal/sweeper"
	"github.com/vigil-labs/vigil/internal/verdict"
	"github.com/vigil-labs/vigil/internal/ws"
)

func main() {
	// Optional .env for local development; real deployments set env vars.
	godotenv.Load() //nolint:errcheck

	cfg := config.Load()

	// Static fake-domain denylist
	deny, err := verdict.LoadDenylist(cfg.FakeDomainsFile)
	if err != nil {
		log.Printf("WARNING: %v (continuing without denylist)", err)
		deny, _ = verdict.LoadDenylist("")
	}
	if deny.Len() > 0 {
		log.Printf("Loaded %d fake-domain denylist entries", deny.Len())
	}

	// Shared block list
	list := blocklist.New()

	// Alert broker, producer, and observer hub
	broker, err := alerts.NewBroker(cfg)
	if err != nil {
		log.Fatalf("Alert broker setup failed: %v", err)
	}
	defer broker.Close() //nolint:errcheck // best-effort cleanup on shutdown

	producer := alerts.NewProducer(broker)

	h := hub.New()
	go h.Run()
	if err := hub.Bridge(broker, h); err != nil {
		log.Fatalf("Hub bridge setup failed: %v", err)
	}

	// Reputation oracles. Missing credentials disable an oracle; requests of
	// that kind then resolve as missing_credential instead of silently
	// passing.
	httpClient := oracle.NewHTTPClient(cfg.OracleTimeout)

	var emailOracle, urlOracle, phoneOracle oracle.Oracle
	if cfg.LeakCheckAPIKey != "" {
		emailOracle = oracle.NewLeakCheck(cfg.LeakCheckEndpoint, cfg.LeakCheckAPIKey, httpClient)
	} else {
		log.Println("WARNING: LEAKCHECK_API_KEY not set, email reputation checks disabled")
	}
	if cfg.SafeBrowsingAPIKey != "" {
		urlOracle = oracle.NewSafeBrowsing(cfg.SafeBrowsingEndpoint, cfg.SafeBrowsingAPIKey, httpClient)
	} else {
		log.Println("WARNING: SAFE_BROWSING_API_KEY not set, URL reputation checks disabled")
	}
	if cfg.SpamDirectoryEndpoint != "" {
		phoneOracle = oracle.NewSpamDirectory(cfg.SpamDirectoryEndpoint, httpClient)
	} else {
		log.Println("WARNING: SPAM_DIRECTORY_ENDPOINT not set, phone reputation checks disabled")
	}

	// Verdict engine
	engine := verdict.NewEngine(verdict.EngineConfig{
		Format: verdict.FormatPolicy{
			RequireHTTPS: cfg.RequireHTTPS,
			PhonePolicy:  phonePolicy(cfg.PhoneLengthPolicy),
		},
		BlockScope:  blockScope(cfg.BlockScope),
		Denylist:    deny,
		EmailOracle: emailOracle,
		URLOracle:   urlOracle,
		PhoneOracle: phoneOracle,
		BlockList:   list,
		Alerts:      producer,
	})

	// Background sweeper
	sw := sweeper.New(list, producer, cfg.SweepInterval)
	sw.Start()
	defer sw.Stop()

	// Router
	r := mux.NewRouter()
	api.NewHandlers(engine, list).RegisterRoutes(r)
	ws.NewHandler(h).RegisterRoutes(r)

	// CORS wraps the entire router so OPTIONS preflight
	// requests are handled before mux routing (which would 404 on OPTIONS).
	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        api.CORSMiddleware()(r),
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Fatalf("Server shutdown failed: %v", err)
		}
	}()

	log.Printf("Starting server on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed to start: %v", err)
	}

	log.Println("Server stopped")
}

func phonePolicy(s string) verdict.PhonePolicy {
	switch verdict.PhonePolicy(s) {
	case verdict.PhoneStrict10, verdict.PhoneRange10to15:
		return verdict.PhonePolicy(s)
	default:
		log.Printf("WARNING: unknown PHONE_LENGTH_POLICY %q, using strict10", s)
		return verdict.PhoneStrict10
	}
}

func blockScope(s string) verdict.BlockScope {
	switch verdict.BlockScope(s) {
	case verdict.BlockAllRejections, verdict.BlockOracleOnly:
		return verdict.BlockScope(s)
	default:
		log.Printf("WARNING: unknown BLOCK_SCOPE %q, using all", s)
		return verdict.BlockAllRejections
	}
}
