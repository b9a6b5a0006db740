package bootstrap

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/kirillkom/notelm-client/internal/api"
	"github.com/kirillkom/notelm-client/internal/config"
	"github.com/kirillkom/notelm-client/internal/infrastructure/resilience"
	"github.com/kirillkom/notelm-client/internal/observability/metrics"
	"github.com/kirillkom/notelm-client/internal/session"
	"github.com/kirillkom/notelm-client/internal/ui"
)

type App struct {
	Config  config.Config
	Session *session.Session
	Client  *api.Client
	Shell   *ui.Shell

	closeFn func()
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	sess, err := session.Open(cfg.TokenPath)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	m := metrics.NewAPIClientMetrics("notelm-client")
	shell := ui.NewShell(cfg, sess, logger, m)

	client := api.New(api.Config{
		BaseURL:         cfg.APIBaseURL,
		Timeout:         cfg.RequestTimeout,
		MaxUploadBytes:  cfg.MaxUploadBytes,
		RateLimitPerSec: cfg.RateLimitPerSec,
		RateLimitBurst:  cfg.RateLimitBurst,
		Resilience: resilience.Config{
			RetryMaxAttempts:    cfg.RetryMaxAttempts,
			RetryInitialBackoff: cfg.RetryInitialBackoff,
			RetryMaxBackoff:     cfg.RetryMaxBackoff,
			BreakerEnabled:      cfg.BreakerEnabled,
		},
		Metrics:       m,
		Logger:        logger,
		OnAuthExpired: shell.NotifyAuthExpired,
	}, sess)
	shell.Bind(client)

	closeFn := func() {}
	if cfg.MetricsPort != "" {
		ln, err := net.Listen("tcp", "127.0.0.1:"+cfg.MetricsPort)
		if err != nil {
			return nil, fmt.Errorf("metrics listener: %w", err)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		srv := &http.Server{Handler: mux}
		go func() {
			if serveErr := srv.Serve(ln); serveErr != http.ErrServerClosed {
				logger.Error("metrics server stopped", "error", serveErr)
			}
		}()
		closeFn = func() { _ = srv.Close() }
	}

	return &App{
		Config:  cfg,
		Session: sess,
		Client:  client,
		Shell:   shell,
		closeFn: closeFn,
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
