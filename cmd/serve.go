package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/edugenius/internal/intake"
	"github.com/abhisek/edugenius/internal/llm"
	"github.com/abhisek/edugenius/internal/logger"
	"github.com/abhisek/edugenius/internal/modulegen"
	"github.com/abhisek/edugenius/internal/studio"
	"github.com/abhisek/edugenius/internal/web"
)

const (
	shutdownTimeout = 5 * time.Second
	sweepInterval   = time.Minute
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web form and the JSON API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return err
	}
	defer log.Sync()

	if cfg.LogMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	secret := cfg.SessionSecret
	if secret == "" {
		secret = uuid.NewString() + uuid.NewString()
		log.Warn("no session secret configured, sessions will not survive a restart")
	}

	provider := llm.NewProviderFromEnv(log)
	if err := llm.ResolveConfig().Validate(); err != nil {
		log.Warn("LLM provider not configured, generation will fail until it is", "error", err.Error())
	}
	gen := modulegen.New(provider, cfg.GeneratorConfig())
	in := intake.New(cfg.MaxAttachmentBytes)
	registry := studio.NewRegistry(func() *studio.Workspace {
		return studio.New(gen, log)
	}, cfg.WorkspaceTTL)

	srv := web.New(web.Options{
		Generator:     gen,
		Intake:        in,
		Registry:      registry,
		Log:           log,
		SessionSecret: []byte(secret),
		SessionTTL:    cfg.WorkspaceTTL,
		CORSOrigins:   cfg.CORSOrigins,
		Model:         provider.ModelID,
	})

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", "addr", cfg.Addr, "model", provider.ModelID())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return registry.Run(gctx, sweepInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
