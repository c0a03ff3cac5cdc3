// Package bootstrap wires the service from configuration. It is shared by
// the HTTP server and the CLI.
package bootstrap

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	repo "resumetuner/internal/adapter/repository"
	"resumetuner/internal/infrastructure/migration"
	"resumetuner/internal/usecase"
	"resumetuner/pkg/ai"
	"resumetuner/pkg/ai/prompts"
	"resumetuner/pkg/config"
	infra "resumetuner/pkg/infrastructure"
	"resumetuner/pkg/jobpage"
	"resumetuner/pkg/logging"
	"resumetuner/pkg/pdfmd"
)

// App holds the wired service and what must be released on shutdown.
type App struct {
	Service *usecase.Service
	Store   usecase.FileStore
	pool    *pgxpool.Pool
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// Build constructs the generator, the file store and the service. When ctx
// is cancelled the background sweeper stops.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	set, err := prompts.Load(cfg.AI.PromptsFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load prompts")
	}

	gen, err := ai.New(ctx, cfg.AI)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create text generator")
	}
	proc := usecase.NewProcessor(gen, set, cfg.AI.Timeout, logging.Component("processor"))

	app := &App{}
	storeLog := logging.Component("file_store")
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := infra.NewFilesPool(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := migration.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, errors.Wrap(err, "failed to migrate files database")
		}
		pg := repo.NewPostgresFileStore(pool, cfg.Store.TTL)
		go repo.RunSweeper(ctx, pg, cfg.Store.SweepInterval, storeLog)
		app.Store, app.pool = pg, pool
	default:
		mem := repo.NewMemoryFileStore(cfg.Store.TTL, cfg.Store.MaxEntries, storeLog)
		go repo.RunSweeper(ctx, mem, cfg.Store.SweepInterval, storeLog)
		app.Store = mem
	}

	app.Service = usecase.NewService(
		proc,
		app.Store,
		jobpage.NewFetcher(cfg.JobPage),
		pdfmd.Converter{},
		infra.NewChromedpRenderer(cfg.Render),
		logging.Component("service"),
	)

	logrus.WithFields(logrus.Fields{
		"provider": cfg.AI.Provider,
		"model":    cfg.AI.Model,
		"store":    cfg.Store.Driver,
	}).Info("service wired")
	return app, nil
}
