// Package api is the typed client for the ParseNoteLM REST backend. Every
// call round-trips; nothing is cached client-side. The session object and
// the auth-expired callback are injected so the transport never reaches
// for global state or navigates the UI on its own.
package api

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/kirillkom/notelm-client/internal/infrastructure/resilience"
	"github.com/kirillkom/notelm-client/internal/observability/metrics"
	"github.com/kirillkom/notelm-client/internal/session"
)

const serviceName = "notelm-client"

type Client struct {
	baseURL    string
	httpClient *http.Client
	sess       *session.Session
	exec       *resilience.Executor
	limiter    *rate.Limiter
	metrics    *metrics.APIClientMetrics
	logger     *slog.Logger

	maxUploadBytes int64

	authMu        sync.Mutex
	onAuthExpired func()
}

type Config struct {
	BaseURL        string
	Timeout        time.Duration
	MaxUploadBytes int64

	RateLimitPerSec float64
	RateLimitBurst  int

	Resilience resilience.Config

	Metrics *metrics.APIClientMetrics
	Logger  *slog.Logger

	// OnAuthExpired fires after any 401 response has cleared the session.
	// The host application subscribes here to switch to its auth entry
	// point; the transport itself never navigates.
	OnAuthExpired func()
}

func New(cfg Config, sess *session.Session) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	perSec := cfg.RateLimitPerSec
	if perSec <= 0 {
		perSec = 5
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = 5
	}

	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:     &http.Client{Timeout: timeout},
		sess:           sess,
		exec:           resilience.NewExecutor(cfg.Resilience, logger),
		limiter:        rate.NewLimiter(rate.Limit(perSec), burst),
		metrics:        cfg.Metrics,
		logger:         logger,
		maxUploadBytes: maxUpload,
		onAuthExpired:  cfg.OnAuthExpired,
	}
}

func (c *Client) Session() *session.Session {
	return c.sess
}

func (c *Client) IsAuthenticated() bool {
	return c.sess.IsAuthenticated()
}

// handleAuthExpired clears the session and notifies the host exactly once
// per failing response.
func (c *Client) handleAuthExpired(operation string) {
	c.sess.Clear()
	if c.metrics != nil {
		c.metrics.RecordAuthExpired()
	}
	c.logger.Warn("auth_expired", "operation", operation)

	c.authMu.Lock()
	fire := c.onAuthExpired
	c.authMu.Unlock()
	if fire != nil {
		fire()
	}
}
