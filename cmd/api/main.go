package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/yasmineajailia/ATS-AGENT/internal/config"
	"github.com/yasmineajailia/ATS-AGENT/internal/handlers"
	"github.com/yasmineajailia/ATS-AGENT/internal/repositories"
	"github.com/yasmineajailia/ATS-AGENT/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	matchProfile, err := config.LoadMatchProfile(cfg.Matching.ProfileFile)
	if err != nil {
		log.Fatalf("❌ Failed to load match profile: %v", err)
	}

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	docRepo := repositories.NewDocumentRepository(db)
	userRepo := repositories.NewUserRepository(db)
	employerRepo := repositories.NewEmployerRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.MaxFileSize)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	log.Println("✅ Services initialized successfully")

	ctx := context.Background()

	// Gemini is only needed for the semantic matcher and LLM extraction.
	var geminiService services.GeminiService
	if cfg.Matching.UseSemantic || cfg.Matching.UseLLM {
		geminiService, err = services.NewGeminiService(
			cfg.Gemini.APIKey,
			cfg.Gemini.ChatModel,
			cfg.Gemini.EmbedModel,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		log.Println("✅ Gemini AI initialized successfully")
	}

	// Keyword extraction strategies
	dictionary := services.NewSkillsDictionary()

	var linguistic services.LinguisticExtractor
	if cfg.Matching.UseLinguistic {
		linguistic = services.NewLinguisticExtractor()
	}

	var semantic services.SemanticMatcherService
	if cfg.Matching.UseSemantic {
		semantic, err = buildSemanticMatcher(ctx, cfg, geminiService)
		if err != nil {
			log.Fatalf("❌ Failed to initialize semantic matcher: %v", err)
		}
		log.Println("✅ Semantic matcher initialized successfully")
	}

	extractor := services.NewKeywordExtractorService(
		dictionary,
		linguistic,
		semantic,
		cfg.Matching.TopKeywords,
	)

	var profiler services.ProfileExtractorService
	if cfg.Matching.UseLLM {
		profiler = services.NewProfileExtractorService(geminiService, cfg.Worker.RetryMaxAttempts)
	}

	formatAnalyzer := services.NewFormatAnalyzerService()

	// Two pipelines over the same extractor: ad-hoc analysis weighs
	// tiers evenly, application scoring weighs skill coverage.
	analysisPipeline := services.NewPipelineService(
		pdfParser,
		extractor,
		services.NewSimilarityService(matchProfile.Weights(config.PresetPipeline), matchProfile.Levels),
		formatAnalyzer,
		profiler,
	)
	platformPipeline := services.NewPipelineService(
		pdfParser,
		extractor,
		services.NewSimilarityService(matchProfile.Weights(config.PresetPlatform), matchProfile.Levels),
		formatAnalyzer,
		profiler,
	)

	matchingService := services.NewMatchingService(
		appRepo,
		jobRepo,
		userRepo,
		docRepo,
		pdfParser,
		formatAnalyzer,
		platformPipeline,
	)
	log.Println("✅ Matching service initialized")

	// Initialize worker
	worker := services.NewWorker(
		appRepo,
		matchingService,
		cfg.Worker.Concurrency,
		cfg.Worker.PollInterval,
	)
	log.Println("✅ Worker initialized successfully")

	// Start worker
	worker.Start(ctx)

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(docRepo, storageService, cfg.Storage.MaxFileSize)
	userHandler := handlers.NewUserHandler(userRepo, appRepo)
	employerHandler := handlers.NewEmployerHandler(employerRepo, jobRepo)
	jobHandler := handlers.NewJobHandler(jobRepo, employerRepo)
	applicationHandler := handlers.NewApplicationHandler(appRepo, matchingService, worker)
	resultHandler := handlers.NewResultHandler(appRepo)
	candidateHandler := handlers.NewCandidateHandler(matchingService)
	analyzeHandler := handlers.NewAnalyzeHandler(docRepo, analysisPipeline)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ATS Agent API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Documents
	api.Post("/upload", uploadHandler.HandleUpload)

	// Candidates
	api.Post("/users", userHandler.HandleRegister)
	api.Get("/users/:id", userHandler.HandleGetUser)
	api.Get("/users/:id/applications", userHandler.HandleUserApplications)

	// Employers
	api.Post("/employers", employerHandler.HandleRegister)
	api.Get("/employers/:id", employerHandler.HandleGetEmployer)
	api.Get("/employers/:id/jobs", employerHandler.HandleEmployerJobs)

	// Jobs
	api.Post("/jobs", jobHandler.HandleCreateJob)
	api.Get("/jobs", jobHandler.HandleListActiveJobs)
	api.Get("/jobs/:id", jobHandler.HandleGetJob)
	api.Patch("/jobs/:id/status", jobHandler.HandleUpdateJobStatus)
	api.Get("/jobs/:id/candidates", candidateHandler.HandleRankedCandidates)
	api.Get("/jobs/:id/candidates/top", candidateHandler.HandleTopCandidates)
	api.Get("/jobs/:id/statistics", candidateHandler.HandleJobStatistics)

	// Applications
	api.Post("/applications", applicationHandler.HandleApply)
	api.Post("/applications/batch", applicationHandler.HandleBatchApply)
	api.Get("/applications/:id/result", resultHandler.HandleGetResult)
	api.Patch("/applications/:id/status", applicationHandler.HandleUpdateStatus)

	// Ad-hoc analysis
	api.Post("/analyze", analyzeHandler.HandleAnalyze)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "ATS Agent API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/upload",
				"POST /api/v1/users",
				"GET /api/v1/users/:id/applications",
				"POST /api/v1/employers",
				"GET /api/v1/employers/:id/jobs",
				"POST /api/v1/jobs",
				"GET /api/v1/jobs",
				"GET /api/v1/jobs/:id/candidates",
				"GET /api/v1/jobs/:id/candidates/top",
				"GET /api/v1/jobs/:id/statistics",
				"POST /api/v1/applications",
				"POST /api/v1/applications/batch",
				"GET /api/v1/applications/:id/result",
				"PATCH /api/v1/applications/:id/status",
				"POST /api/v1/analyze",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 API Documentation: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}

}

// buildSemanticMatcher loads the skills corpus and stands up the
// configured vector index behind a semantic matcher.
func buildSemanticMatcher(ctx context.Context, cfg *config.Config, embedder services.GeminiService) (services.SemanticMatcherService, error) {
	corpus, err := services.LoadSkillsCorpus(cfg.Matching.SkillsFile, cfg.Matching.MaxSkills)
	if err != nil {
		return nil, fmt.Errorf("failed to load skills corpus: %w", err)
	}
	log.Printf("📦 Loaded %d skills from %s", len(corpus), cfg.Matching.SkillsFile)

	var index services.SkillIndex
	if cfg.Matching.VectorBackend == "qdrant" {
		qdrantService, err := services.NewQdrantService(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Qdrant: %w", err)
		}
		if err := qdrantService.InitCollection(); err != nil {
			return nil, fmt.Errorf("failed to initialize Qdrant collection: %w", err)
		}
		index = services.NewQdrantSkillIndex(qdrantService, len(corpus))
	} else {
		index, err = services.NewLocalSkillIndex(
			ctx,
			embedder,
			corpus,
			cfg.Matching.CacheDir,
			cfg.Matching.MaxSkills,
			cfg.Gemini.EmbedModel,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to build local skill index: %w", err)
		}
	}

	return services.NewSemanticMatcherService(
		embedder,
		index,
		services.NewTextSegmenter(0),
		cfg.Matching.SimilarityThreshold,
		cfg.Matching.TopK,
	), nil
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
