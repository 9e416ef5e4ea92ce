// cmd/outreach/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"

	"github-outreach/internal/api"
	"github-outreach/internal/config"
	"github-outreach/internal/github"
	"github-outreach/internal/llm"
	"github-outreach/internal/model"
	"github-outreach/internal/narrative"
	"github-outreach/internal/pipeline"
	"github-outreach/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Initialize structured logger
	logLevel := new(slog.LevelVar)
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// 2. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	setLogLevel(cfg.LogLevel, logLevel)

	// 3. Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app := newApp(cfg, logger)
	return app.RunContext(ctx, os.Args)
}

// newApp creates the CLI application with all commands.
func newApp(cfg *config.Config, logger *slog.Logger) *cli.App {
	return &cli.App{
		Name:  "outreach",
		Usage: "GitHub activity scraping and outreach email pipeline",
		Commands: []*cli.Command{
			seedCmd(cfg, logger),
			scrapeCmd(cfg, logger),
			generateCmd(cfg, logger),
			enrichCmd(cfg, logger),
			runCmd(cfg, logger),
			serveCmd(cfg, logger),
		},
	}
}

// seedCmd inserts a company record for the pipeline to operate on.
func seedCmd(cfg *config.Config, logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "seed",
		Usage:     "Insert a company record",
		ArgsUsage: "<company-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Required: true, Usage: "Company display name"},
			&cli.StringFlag{Name: "website", Required: true, Usage: "Company profile URL"},
			&cli.StringFlag{Name: "manager", Usage: "Manager name"},
		},
		Action: func(c *cli.Context) error {
			id, err := companyIDArg(c)
			if err != nil {
				return err
			}
			pool, err := connectDB(c.Context, cfg, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			company := &model.CompanyProfile{
				ID:      id,
				Name:    c.String("name"),
				Website: c.String("website"),
			}
			if m := c.String("manager"); m != "" {
				company.ManagerName = &m
			}
			if err := store.New(pool).CreateCompany(c.Context, company); err != nil {
				return fmt.Errorf("failed to seed company %d: %w", id, err)
			}
			logger.Info("Company seeded", "company_id", id)
			return nil
		},
	}
}

// scrapeCmd runs the fetch-and-persist stage for one company.
func scrapeCmd(cfg *config.Config, logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "scrape",
		Usage:     "Fetch repository samples and persist them",
		ArgsUsage: "<company-id>",
		Action:    stageAction(cfg, logger, stageScrape),
	}
}

// generateCmd runs the narrative stage for one company.
func generateCmd(cfg *config.Config, logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Generate the outreach email from persisted samples",
		ArgsUsage: "<company-id>",
		Action:    stageAction(cfg, logger, stageGenerate),
	}
}

// enrichCmd runs the enrichment stage for one company.
func enrichCmd(cfg *config.Config, logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "enrich",
		Usage:     "Enrich persisted samples with contributors and summaries",
		ArgsUsage: "<company-id>",
		Action:    stageAction(cfg, logger, stageEnrich),
	}
}

// runCmd invokes all three stages in fixed order, aborting on the first
// failure.
func runCmd(cfg *config.Config, logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run scrape, generate and enrich in order",
		ArgsUsage: "<company-id>",
		Action: stageAction(cfg, logger, func(ctx context.Context, p *pipeline.Pipeline, id int64) error {
			if err := stageScrape(ctx, p, id); err != nil {
				return err
			}
			if err := stageGenerate(ctx, p, id); err != nil {
				return err
			}
			return stageEnrich(ctx, p, id)
		}),
	}
}

// serveCmd exposes the read-only API over stored records.
func serveCmd(cfg *config.Config, logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the read-only company API",
		Action: func(c *cli.Context) error {
			pool, err := connectDB(c.Context, cfg, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			srv := &http.Server{
				Addr:    cfg.HTTPAddr,
				Handler: api.NewRouter(store.New(pool), logger),
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case <-c.Context.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			case err := <-errCh:
				return err
			}
		},
	}
}

type stageFunc func(ctx context.Context, p *pipeline.Pipeline, companyID int64) error

func stageScrape(ctx context.Context, p *pipeline.Pipeline, id int64) error {
	_, err := p.Scrape(ctx, id)
	return err
}

func stageGenerate(ctx context.Context, p *pipeline.Pipeline, id int64) error {
	_, err := p.Generate(ctx, id)
	return err
}

func stageEnrich(ctx context.Context, p *pipeline.Pipeline, id int64) error {
	_, err := p.Enrich(ctx, id)
	return err
}

// stageAction wires a stage function into a CLI action: positional id,
// credential checks before any network activity, collaborator construction,
// teardown.
func stageAction(cfg *config.Config, logger *slog.Logger, fn stageFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		id, err := companyIDArg(c)
		if err != nil {
			return err
		}

		needsGithub := c.Command.Name == "scrape" || c.Command.Name == "enrich" || c.Command.Name == "run"
		needsGemini := c.Command.Name == "generate" || c.Command.Name == "enrich" || c.Command.Name == "run"
		if needsGithub {
			if err := cfg.RequireGithub(); err != nil {
				return err
			}
		}
		if needsGemini {
			if err := cfg.RequireGemini(); err != nil {
				return err
			}
		}

		pool, err := connectDB(c.Context, cfg, logger)
		if err != nil {
			return err
		}
		defer pool.Close()

		var gh pipeline.RepoService
		if needsGithub {
			gh = github.NewClient(cfg.GithubToken, logger)
		}
		var gen *narrative.Generator
		if needsGemini {
			completer, err := llm.NewGeminiClient(c.Context, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
			if err != nil {
				return fmt.Errorf("failed to create completion client: %w", err)
			}
			gen = narrative.New(completer, logger)
		}

		p := pipeline.New(store.New(pool), gh, gen, cfg, logger)
		return fn(c.Context, p, id)
	}
}

// companyIDArg parses the single positional company id argument.
func companyIDArg(c *cli.Context) (int64, error) {
	if c.NArg() != 1 {
		return 0, fmt.Errorf("expected exactly one argument: <company-id>")
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("company id must be an integer, got %q", c.Args().First())
	}
	return id, nil
}

// connectDB opens the pool and applies pending migrations.
func connectDB(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.DBURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := runMigrations(cfg.DBURL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	logger.Debug("Database connection established")
	return pool, nil
}

func runMigrations(dbURL string) error {
	m, err := migrate.New("file://migrations", dbURL)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func setLogLevel(level string, v *slog.LevelVar) {
	switch level {
	case "debug":
		v.Set(slog.LevelDebug)
	case "warn":
		v.Set(slog.LevelWarn)
	case "error":
		v.Set(slog.LevelError)
	default:
		v.Set(slog.LevelInfo)
	}
}
