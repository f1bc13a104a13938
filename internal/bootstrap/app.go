package bootstrap

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/atsopt"
	"resumeforge/internal/documents"
	"resumeforge/internal/export"
	"resumeforge/internal/generation"
	"resumeforge/internal/interview"
	"resumeforge/internal/keywords"
	"resumeforge/internal/llm"
	openai "resumeforge/internal/llm/openai"
	"resumeforge/internal/orchestrator"
	"resumeforge/internal/parsing"
	"resumeforge/internal/polish"
	"resumeforge/internal/resumes"
	"resumeforge/internal/revamp"
	"resumeforge/internal/shared/config"
	"resumeforge/internal/shared/server"
	"resumeforge/internal/shared/storage/db"
	"resumeforge/internal/shared/storage/object"
	localstore "resumeforge/internal/shared/storage/object/local"
	s3store "resumeforge/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	Gateway llm.Gateway

	DocumentsRepo documents.DocumentsRepo
	ResumesRepo   resumes.ResumesRepo

	DocumentsService *documents.Service
	ParsingService   *parsing.Service
	InterviewService *interview.Service
	GenerateService  *generation.Service
	RevampService    *revamp.Service
	OptimizeService  *atsopt.Service
	PolishService    *polish.Service
	ResumesService   *resumes.Service
	SessionService   *orchestrator.Service
	PDFExporter      *export.PDFExporter
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		ParseHandler:     parsing.NewHandler(app.ParsingService, app.DocumentsService),
		KeywordsHandler:  keywords.NewHandler(),
		InterviewHandler: interview.NewHandler(app.InterviewService),
		PolishHandler:    polish.NewHandler(app.PolishService),
		SessionHandler:   orchestrator.NewHandler(app.SessionService, app.PDFExporter),
		ResumesHandler:   resumes.NewHandler(app.ResumesService),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var docRepo documents.DocumentsRepo
	var resumeRepo resumes.ResumesRepo

	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		resumeRepo = &resumes.PGRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
		resumeRepo = resumes.NewMemoryRepo()
	}

	gateway := llm.Gateway(placeholderGateway{})
	if app.Config.LLMProvider == "openai" {
		client, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), app.Config.LLMModel)
		if err != nil {
			return err
		}
		gateway = client
	}

	app.Gateway = gateway
	app.DocumentsRepo = docRepo
	app.ResumesRepo = resumeRepo
	app.DocumentsService = &documents.Service{Store: app.Store, Repo: docRepo}
	app.ParsingService = &parsing.Service{Gateway: gateway}
	app.InterviewService = &interview.Service{Gateway: gateway}
	app.GenerateService = &generation.Service{Gateway: gateway}
	app.RevampService = &revamp.Service{Gateway: gateway}
	app.OptimizeService = &atsopt.Service{Gateway: gateway}
	app.PolishService = &polish.Service{Gateway: gateway}
	app.ResumesService = &resumes.Service{Repo: resumeRepo}
	app.SessionService = &orchestrator.Service{
		Sessions:   orchestrator.NewSessionStore(),
		Interview:  app.InterviewService,
		Generation: app.GenerateService,
		Revamp:     app.RevampService,
		Optimize:   app.OptimizeService,
		Resumes:    app.ResumesService,
	}
	app.PDFExporter = &export.PDFExporter{ChromiumPath: app.Config.ChromiumPath}

	return nil
}

// placeholderGateway rejects all calls; it stands in when no LLM provider is
// configured so the service can still boot for local work on non-AI routes.
type placeholderGateway struct{}

func (placeholderGateway) Generate(ctx context.Context, req llm.Request) (json.RawMessage, error) {
	return nil, errors.New("llm gateway not configured")
}

func (placeholderGateway) Complete(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("llm gateway not configured")
}
