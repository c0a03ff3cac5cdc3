package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpadapter "resumetuner/internal/adapter/http"
	"resumetuner/internal/bootstrap"
	"resumetuner/pkg/config"
	"resumetuner/pkg/logging"
)

func main() {
	if err := newRootCmd(serve).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd parses the server flags and hands the loaded configuration to
// run.
func newRootCmd(run func(ctx context.Context, cfg config.Config) error) *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:          "server",
		Short:        "Serve the resume tailoring HTTP API",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			if _, err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&configFile, "config", os.Getenv("CONFIG_FILE"), "path to a YAML config file")
	return cmd
}

func serve(parent context.Context, cfg config.Config) error {
	log := logging.Component("server")

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := httpadapter.NewApp(httpadapter.NewHandler(app.Service), httpadapter.Options{
		AllowedOrigins: cfg.Server.Origins(),
		BodyLimit:      cfg.Server.BodyLimitMB * 1024 * 1024,
		Log:            logging.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Server.Port).Info("listening")
		errCh <- srv.Listen(":" + cfg.Server.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.ShutdownWithContext(shutdownCtx)
	}
}
