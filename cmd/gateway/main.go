package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/Santhosh-Billionaire/quizplatform/internal/api/http"
	"github.com/Santhosh-Billionaire/quizplatform/internal/config"
	"github.com/Santhosh-Billionaire/quizplatform/internal/db"
	"github.com/Santhosh-Billionaire/quizplatform/internal/extract"
	"github.com/Santhosh-Billionaire/quizplatform/internal/genai"
	"github.com/Santhosh-Billionaire/quizplatform/internal/logger"
	"github.com/Santhosh-Billionaire/quizplatform/internal/quiz"
	"github.com/Santhosh-Billionaire/quizplatform/internal/report"
	"github.com/Santhosh-Billionaire/quizplatform/internal/storage"
	syncx "github.com/Santhosh-Billionaire/quizplatform/internal/sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	zl, err := logger.New(string(cfg.Mode))
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		zl.Fatal("db open failed", "error", err)
	}
	store := quiz.NewSQLStore(dbh)

	// --- Blob store ---
	var bs storage.BlobStore
	switch cfg.BlobDriver {
	case "gcs":
		bs, err = storage.NewGCSStore(ctx, cfg.BlobBucket, cfg.BlobBaseURL)
	default:
		bs, err = storage.NewFSStore(cfg.BlobBasePath, cfg.BlobBaseURL)
	}
	if err != nil {
		zl.Fatal("blob store", "driver", cfg.BlobDriver, "error", err)
	}

	// --- Text extraction ---
	var extractor quiz.TextExtractor
	switch cfg.Extractor {
	case "docai":
		extractor, err = extract.NewDocAI(ctx, zl, extract.DocAIConfig{
			ProjectID:   cfg.DocAIProjectID,
			Location:    cfg.DocAILocation,
			ProcessorID: cfg.DocAIProcessorID,
		})
		if err != nil {
			zl.Fatal("docai extractor", "error", err)
		}
	default:
		extractor = extract.NewPlainText()
	}

	// --- Generative client ---
	gen, err := genai.NewClient(zl, genai.Config{
		BaseURL:    cfg.AIBaseURL,
		Model:      cfg.AIModel,
		APIKey:     cfg.AIAPIKey,
		CharBudget: cfg.PromptCharBudget,
	})
	if err != nil {
		zl.Fatal("genai client", "error", err)
	}

	events := syncx.NewEventRepo(dbh, string(cfg.Mode))
	svc := quiz.NewService(store, bs, extractor, gen, zl,
		quiz.WithDefaultCount(cfg.DefaultQuestionCount),
		quiz.WithEvents(events),
	)

	// Report rendering is optional; it needs a TTF on disk.
	var rend *report.Renderer
	if cfg.ReportFont != "" {
		rend, err = report.NewRenderer(cfg.ReportFont)
		if err != nil {
			zl.Fatal("report renderer", "font", cfg.ReportFont, "error", err)
		}
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute)) // ingestion waits on the AI service

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(ar chi.Router) {
		ar.Post("/books", api.UploadBookHandler(svc, zl))
		ar.Get("/books/{bookID}", api.GetBookHandler(svc, zl))
		ar.Get("/books/{bookID}/topics", api.ListTopicsHandler(svc, zl))
		ar.Post("/books/{bookID}/questions", api.BookQuestionsHandler(svc, zl))

		ar.Get("/questions", api.ListQuestionsHandler(svc, zl))
		ar.Post("/questions/generate", api.GenerateQuestionsHandler(svc, zl))

		ar.Post("/quiz", api.CreateQuizHandler(svc, zl))
		ar.Get("/quiz/{quizID}", api.GetQuizHandler(svc, zl))
		ar.Post("/quiz/response", api.SubmitResponseHandler(svc, zl))
		ar.Get("/quiz/{quizID}/results", api.QuizResultsHandler(svc, zl))

		ar.Get("/results", api.UserResultsHandler(svc, zl))
		ar.Get("/results/report", api.ReportCardHandler(svc, rend, zl))

		if cfg.BlobDriver == "fs" {
			ar.Route("/files", func(fr chi.Router) {
				api.MountFiles(fr, bs)
			})
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbh.PingContext(r.Context()); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
	})

	zl.Info("listening", "addr", cfg.HTTPAddr, "mode", cfg.Mode, "db", cfg.DBDriver)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		zl.Fatal("server exited", "error", err)
	}
}
