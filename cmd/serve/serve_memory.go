package serve

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"golang.org/x/sync/errgroup"

	"github.com/smartransfer/routes/advisor"
	"github.com/smartransfer/routes/catalog"
	"github.com/smartransfer/routes/cmd/env"
	"github.com/smartransfer/routes/ingest"
	"github.com/smartransfer/routes/server"
	"github.com/smartransfer/routes/server/config"
	"github.com/smartransfer/routes/storage/memory"
)

type serveMemoryCfg struct {
	rootCfg *serveCfg
}

// newServeMemoryCmd creates the serve memory command.
func newServeMemoryCmd(rootCfg *serveCfg) *ffcli.Command {
	cfg := &serveMemoryCfg{
		rootCfg: rootCfg,
	}

	fs := flag.NewFlagSet("memory", flag.ExitOnError)
	cfg.rootCfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "memory",
		ShortUsage: "serve memory [flags]",
		LongHelp:   "Serves the routes backend, using an in-memory datastore",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *serveMemoryCfg) exec(ctx context.Context, _ []string) error {
	// Read the server configuration, if any
	if c.rootCfg.configPath != "" {
		serverCfg, err := config.Read(c.rootCfg.configPath)
		if err != nil {
			return fmt.Errorf("unable to read server config, %w", err)
		}

		c.rootCfg.config = serverCfg
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load .env
	if err := godotenv.Load(); err != nil {
		logger.Warn("unable to load .env file")
	}

	// Create an in-memory store
	store := memory.NewStorage()

	// Create the ingestion service
	orchestrator := ingest.New(store, ingest.WithLogger(logger))
	for _, provider := range defaultProviders() {
		if err := orchestrator.Register(provider); err != nil {
			return fmt.Errorf("unable to register provider: %w", err)
		}
	}

	opts, err := serverOptions(c.rootCfg, logger)
	if err != nil {
		return err
	}

	s, err := server.New(store, opts...)
	if err != nil {
		return fmt.Errorf("unable to create server, %w", err)
	}

	runCtx, cancelFn := signal.NotifyContext(
		ctx,
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancelFn()

	group, gCtx := errgroup.WithContext(runCtx)

	// Start the HTTP server
	group.Go(func() error {
		return s.Serve(gCtx)
	})

	// Start the ingestion service
	group.Go(func() error {
		return orchestrator.Start(gCtx)
	})

	return group.Wait()
}

// serverOptions assembles the shared server options: logger, config,
// an optional provider catalog override, and an optional route advisor
func serverOptions(rootCfg *serveCfg, logger *slog.Logger) ([]server.Option, error) {
	opts := []server.Option{
		server.WithLogger(logger),
		server.WithConfig(rootCfg.config),
	}

	// Load the provider catalog override, if any
	if rootCfg.config.CatalogPath != "" {
		providers, err := catalog.Load(rootCfg.config.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("unable to load provider catalog, %w", err)
		}

		opts = append(opts, server.WithCatalog(providers))
	}

	// Wire up the route advisor, if a key is set
	if key := os.Getenv(env.Prefix + env.GeminiKeySuffix); key != "" {
		opts = append(
			opts,
			server.WithAdvisor(advisor.New(key, time.Second*30)),
		)
	} else {
		logger.Warn("no Gemini API key set, route reviews disabled")
	}

	return opts, nil
}
