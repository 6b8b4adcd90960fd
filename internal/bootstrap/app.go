// Package bootstrap wires configuration, storage, services, and routes into a
// runnable application.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-ats/internal/engine"
	"resume-ats/internal/llm"
	"resume-ats/internal/resumes"
	"resume-ats/internal/sections"
	"resume-ats/internal/shared/config"
	"resume-ats/internal/shared/server"
	"resume-ats/internal/shared/storage/db"
	"resume-ats/internal/shared/storage/object"
	localstore "resume-ats/internal/shared/storage/object/local"
	"resume-ats/internal/suggestions"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.Store

	ResumesRepo     resumes.Repo
	SectionsRepo    sections.Repo
	SuggestionsRepo suggestions.Repo

	ResumesService     *resumes.Service
	SuggestionsService *suggestions.Service

	ResumesHandler     *resumes.Handler
	SuggestionsHandler *suggestions.Handler
}

// Build prepares shared dependencies and mounts routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := localstore.New(cfg.LocalStoreDir)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: object store: %w", err)
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             app.Config,
		ResumesHandler:     app.ResumesHandler,
		SuggestionsHandler: app.SuggestionsHandler,
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

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.DefaultOptions())
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.Migrate(sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildServices(app *App) {
	var resumesRepo resumes.Repo
	var sectionsRepo sections.Repo
	var suggestionsRepo suggestions.Repo

	if app.DB != nil {
		resumesRepo = &resumes.PGRepo{DB: app.DB}
		sectionsRepo = &sections.PGRepo{DB: app.DB}
		suggestionsRepo = &suggestions.PGRepo{DB: app.DB}
	} else {
		resumesRepo = resumes.NewMemoryRepo()
		sectionsRepo = sections.NewMemoryRepo()
		suggestionsRepo = suggestions.NewMemoryRepo()
	}

	resumesSvc := &resumes.Service{
		Repo:        resumesRepo,
		Sections:    sectionsRepo,
		Suggestions: suggestionsRepo,
		Store:       app.Store,
		LLM:         llm.New(app.Config.LLMProvider),
		Engine:      engine.DefaultConfig(),
	}

	suggestionsSvc := &suggestions.Service{
		Repo:     suggestionsRepo,
		Sections: sectionsRepo,
		Resumes:  resumeAdapter{repo: resumesRepo},
	}

	resumesHandler := resumes.NewHandler(resumesSvc)
	if app.Config.MaxUploadBytes > 0 {
		resumesHandler.MaxUploadBytes = app.Config.MaxUploadBytes
	}

	app.ResumesRepo = resumesRepo
	app.SectionsRepo = sectionsRepo
	app.SuggestionsRepo = suggestionsRepo
	app.ResumesService = resumesSvc
	app.SuggestionsService = suggestionsSvc
	app.ResumesHandler = resumesHandler
	app.SuggestionsHandler = suggestions.NewHandler(suggestionsSvc)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

// resumeAdapter narrows the resumes repo to what the suggestions service needs.
type resumeAdapter struct {
	repo resumes.Repo
}

func (a resumeAdapter) OwnerOf(ctx context.Context, resumeID string) (string, error) {
	owner, err := a.repo.OwnerOf(ctx, resumeID)
	if err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			return "", suggestions.ErrNotFound
		}
		return "", err
	}
	return owner, nil
}

func (a resumeAdapter) UpdateOverallScore(ctx context.Context, resumeID string, score int) error {
	return a.repo.UpdateOverallScore(ctx, resumeID, score, time.Now().UTC())
}
