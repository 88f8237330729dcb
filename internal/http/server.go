package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"laporan/internal/cache"
	"laporan/internal/core"
	"laporan/internal/ledger"
	"laporan/internal/log"
	"laporan/internal/middleware/ratelimit"
	appweb "laporan/web"
)

// snapshotKey is the single cache entry holding the whole ledger.
const snapshotKey = "ledger"

// fetchTimeout bounds one ledger read.
const fetchTimeout = 7 * time.Second

// Options configures the report server.
type Options struct {
	Addr   string
	Reader ledger.TransactionReader
	// Snapshot caches ledger reads; a fresh one is created when nil.
	Snapshot *cache.Snapshot[[]core.Transaction]
	// Ready reports backend readiness for /readyz; nil means always ready.
	Ready func(ctx context.Context) error
	// ExportRequestsPerMinute limits workbook and chart renders per client.
	// Zero uses the limiter default.
	ExportRequestsPerMinute int
	Logger                  *log.Logger
}

type Server struct {
	http.Server
	templates *template.Template
	reader    ledger.TransactionReader
	snapshot  *cache.Snapshot[[]core.Transaction]
	ready     func(ctx context.Context) error
	logger    *log.Logger
	requests  *log.StructuredLogger
	metrics   *securityMetrics
	limiter   *ratelimit.Limiter
	started   time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(opts Options) (*Server, error) {
	if opts.Reader == nil {
		return nil, fmt.Errorf("ledger reader is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentHTTP)
	snapshot := opts.Snapshot
	if snapshot == nil {
		snapshot = cache.NewSnapshot[[]core.Transaction](1, 5*time.Minute)
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	limiter := ratelimit.NewLimiter(ratelimit.Config{
		Requests: opts.ExportRequestsPerMinute,
		Period:   time.Minute,
	})

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:              opts.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		templates: t,
		reader:    opts.Reader,
		snapshot:  snapshot,
		ready:     opts.Ready,
		logger:    logger,
		requests:  log.NewStructuredLogger(logger),
		metrics:   &securityMetrics{},
		limiter:   limiter,
		started:   time.Now(),
	}

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600")
			static.ServeHTTP(w, r)
		}))
	} else {
		logger.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleRoot))
	mux.HandleFunc("/report", s.withSecurityHeaders(getOnly(s.handleReport)))
	mux.HandleFunc("/report.xlsx", s.withSecurityHeaders(getOnly(s.limiter.Wrap(extractClientIP, s.handleReportXLSX))))
	mux.HandleFunc("/report/chart.png", s.withSecurityHeaders(getOnly(s.limiter.Wrap(extractClientIP, s.handleChart))))
	mux.HandleFunc("/api/report", s.withSecurityHeaders(getOnly(s.handleAPIReport)))
	mux.HandleFunc("/healthz", getOnly(s.handleHealth))
	mux.HandleFunc("/readyz", getOnly(s.handleReady))

	return s, nil
}

// Shutdown stops the rate limiter and the HTTP server once.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// transactions returns the ledger through the snapshot cache.
func (s *Server) transactions(ctx context.Context) ([]core.Transaction, bool, error) {
	return s.snapshot.Get(ctx, snapshotKey, func(ctx context.Context) ([]core.Transaction, error) {
		cctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		txs, err := s.reader.ListTransactions(cctx)
		if err != nil {
			return nil, fmt.Errorf("list transactions: %w", err)
		}
		return txs, nil
	})
}

// withSecurityHeaders adds security headers, a request-scoped logger and
// request logging.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		reqLogger := s.logger.With(log.FieldRequestID, requestID)
		ctx := log.WithLogger(r.Context(), reqLogger)
		r = r.WithContext(ctx)

		if detectSuspiciousRequest(r, s.metrics) {
			reqLogger.WarnContext(ctx, "Suspicious request",
				log.FieldClientIP, clientIP,
				log.FieldPath, r.URL.Path,
				log.FieldUserAgent, r.Header.Get("User-Agent"))
		}

		w.Header().Set("X-Request-ID", requestID)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self'; img-src 'self' data:")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.requests.LogHTTPEnd(ctx, r, rw.statusCode, time.Since(start).Milliseconds(), clientIP, requestID)
	}
}

// getOnly rejects every method except GET and HEAD.
func getOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}
