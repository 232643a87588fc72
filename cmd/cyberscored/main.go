// Command cyberscored is the CyberScore platform service.
// It serves the findings intake, scoring, benchmark, and vendor risk
// management API, plus a health check.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/cyberscore/cyberscore/internal/api"
	"github.com/cyberscore/cyberscore/internal/platform"
	"github.com/cyberscore/cyberscore/internal/scan"
	"github.com/cyberscore/cyberscore/internal/vendor"
	"github.com/cyberscore/cyberscore/internal/vrm"
	"github.com/cyberscore/cyberscore/pkg/config"
	"github.com/cyberscore/cyberscore/pkg/scoring"
)

type daemonConfig struct {
	Port        string
	DatabaseURL string
	APIKey      string
	ConfigFile  string
}

func loadDaemonConfig() daemonConfig {
	return daemonConfig{
		Port:        envOrDefault("PORT", "8080"),
		DatabaseURL: envOrDefault("DATABASE_URL", "postgres://localhost:5432/cyberscore?sslmode=disable"),
		APIKey:      os.Getenv("API_KEY"),
		ConfigFile:  os.Getenv("CONFIG_FILE"),
	}
}

func main() {
	dcfg := loadDaemonConfig()

	cfgPath := dcfg.ConfigFile
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			cfgPath = config.FindConfigFile(wd)
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	scoringCfg, err := cfg.ScoringConfig()
	if err != nil {
		log.Fatalf("scoring config: %v", err)
	}
	engine, err := scoring.NewEngine(scoringCfg)
	if err != nil {
		log.Fatalf("create engine: %v", err)
	}

	db, err := sql.Open("postgres", dcfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	if err := platform.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	archive, err := newArchive(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("init archive storage: %v", err)
	}

	// Initialize services
	vendorSvc := vendor.NewService(db)
	scanSvc := scan.NewService(db, engine, archive)
	vrmSvc := vrm.NewService(db, cfg.VRM.SLABusinessHours)

	handler := api.NewHandler(db, vendorSvc, scanSvc, vrmSvc, nil)

	apiMux := http.NewServeMux()
	handler.RegisterRoutes(apiMux)

	// Health stays outside the API key check for load balancer probes.
	mux := http.NewServeMux()
	mux.Handle("/api/", api.APIKeyAuth(dcfg.APIKey)(apiMux))
	mux.HandleFunc("GET /healthz", healthHandler(db))

	srv := &http.Server{
		Addr:    ":" + dcfg.Port,
		Handler: api.CORS(mux),
	}

	go func() {
		log.Printf("starting cyberscored on :%s", dcfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func newArchive(ctx context.Context, cfg config.StorageConfig) (scan.ArchiveClient, error) {
	switch cfg.Backend {
	case "s3":
		return scan.NewS3Archive(ctx, scan.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		})
	case "gcs":
		return scan.NewGCSArchive(ctx, cfg.GCSBucket)
	default:
		return scan.NewLocalArchive(envOrDefault("LOCAL_STORAGE_PATH", cfg.LocalDir)), nil
	}
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
