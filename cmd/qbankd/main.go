package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/mind-engage/qbank/internal/api/http"
	auth "github.com/mind-engage/qbank/internal/auth/middleware"
	"github.com/mind-engage/qbank/internal/bank"
	"github.com/mind-engage/qbank/internal/config"
	"github.com/mind-engage/qbank/internal/db"
	"github.com/mind-engage/qbank/internal/extract"
	"github.com/mind-engage/qbank/internal/importlog"
	"github.com/mind-engage/qbank/internal/ingest"
	"github.com/mind-engage/qbank/internal/pdftext"
	"github.com/mind-engage/qbank/internal/rbac"
	"github.com/mind-engage/qbank/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := bank.NewSQLStore(dbh, cfg.DBDriver)

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	logRepo := importlog.NewRepo(dbh)
	svc := &ingest.Service{
		Store:     store,
		Blobs:     bs,
		Extractor: pdftext.New(nil),
		Log:       logRepo,
		Policy: extract.Policy{
			UniqueNumbers:    cfg.ValidateUniqueNumbers,
			AscendingNumbers: cfg.ValidateAscendingNumbers,
		},
		Logger: log.Default(),
	}

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthHMACSecret)
	loginCfg := auth.LoginConfig{AdminUser: cfg.AdminUser, AdminPassHash: cfg.AdminPassHash}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute)) // imports fetch and parse whole PDFs

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh, loginCfg))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("bank:create")).
			Post("/banks/import", api.ImportBankHandler(svc, cfg.MaxUploadBytes, cfg.AllowLocalSources))

		pr.With(rbac.Require("bank:view")).
			Get("/banks", api.ListBanksHandler(store))
		pr.With(rbac.Require("bank:view")).
			Get("/banks/{setID}", api.GetBankHandler(store))
		pr.With(rbac.Require("bank:export")).
			Get("/banks/{setID}/export", api.ExportBankHandler(store))
		pr.With(rbac.Require("bank:view")).
			Get("/banks/{setID}/source", api.BankSourceHandler(bs))
		pr.With(rbac.Require("bank:delete")).
			Delete("/banks/{setID}", api.DeleteBankHandler(store))

		pr.With(rbac.Require("imports:view")).
			Get("/imports", api.RecentImportsHandler(logRepo))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
