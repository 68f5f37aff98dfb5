// Package http is the JSON API surface over the contribution engine: group
// management, manual entry, SMS field extraction, batch statement import and
// report rendering.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"changia/internal/cache"
	"changia/internal/core"
	"changia/internal/export"
	"changia/internal/ledger"
	applog "changia/internal/log"
	"changia/internal/statement"
)

// ContributionCreator persists a manual contribution and triggers its export
// sync. Satisfied by services.ContributionService.
type ContributionCreator interface {
	CreateContribution(ctx context.Context, c core.Contribution) (string, error)
}

// StatementImporter runs the batch pipeline on pasted statement text.
// Satisfied by services.ImportService.
type StatementImporter interface {
	ImportText(ctx context.Context, group core.Group, text string) (statement.Result, error)
}

// Deps are the collaborators the API surfaces. Tables may be nil when no
// spreadsheet backend is configured; the export endpoint then reports 503.
type Deps struct {
	Groups   ledger.GroupStore
	Lister   ledger.ContributionLister
	Creator  ContributionCreator
	Importer StatementImporter
	Tables   export.TableWriter
}

type Server struct {
	http.Server

	groups   ledger.GroupStore
	lister   ledger.ContributionLister
	creator  ContributionCreator
	importer StatementImporter
	tables   export.TableWriter

	rateLimiter *rateLimiter
	metrics     *securityMetrics

	// Tallies and rendered reports are cheap to rebuild but hot during a
	// harambee; short TTLs keep them fresh without hammering storage.
	totalCache  *cache.LRUCache[float64]
	reportCache *cache.LRUCache[string]
	cacheMgr    *cache.Manager

	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		groups:      deps.Groups,
		lister:      deps.Lister,
		creator:     deps.Creator,
		importer:    deps.Importer,
		tables:      deps.Tables,
		rateLimiter: newRateLimiter(),
		metrics:     &securityMetrics{},
		totalCache:  cache.NewLRUCache[float64](200, time.Minute),
		reportCache: cache.NewLRUCache[string](100, time.Minute),
		cacheMgr:    cache.NewManager(),
	}

	s.cacheMgr.Register(s.totalCache)
	s.cacheMgr.Register(s.reportCache)
	s.cacheMgr.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)

	mux.HandleFunc("POST /api/groups", s.withMiddleware(s.handleCreateGroup))
	mux.HandleFunc("GET /api/groups", s.withMiddleware(s.handleListGroups))
	mux.HandleFunc("POST /api/contributions", s.withMiddleware(s.handleCreateContribution))
	mux.HandleFunc("POST /api/contributions/parse-sms", s.withMiddleware(s.handleParseSMS))
	mux.HandleFunc("POST /api/contributions/import", s.withMiddleware(s.handleImport))
	mux.HandleFunc("GET /api/groups/{name}/contributions", s.withMiddleware(s.handleListContributions))
	mux.HandleFunc("GET /api/groups/{name}/total", s.withMiddleware(s.handleTotal))
	mux.HandleFunc("GET /api/groups/{name}/report", s.withMiddleware(s.handleReport))
	mux.HandleFunc("POST /api/groups/{name}/export", s.withMiddleware(s.handleExport))

	return s
}

// withMiddleware adds request IDs, logging, rate limiting and security headers.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := extractClientIP(r)
		requestID := newRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		logger := applog.FromContext(ctx).With(
			applog.FieldRequestID, requestID,
			applog.FieldClientIP, clientIP)

		logger.InfoContext(ctx, "Request started",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldUserAgent, r.Header.Get("User-Agent"))

		// Writes are rate limited per client; reads are not.
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP, s.metrics) {
			logger.WarnContext(ctx, "Rate limit exceeded", applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		logger.InfoContext(ctx, "Request completed",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatus, rw.statusCode,
			applog.FieldDuration, time.Since(start).Milliseconds())
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Shutdown stops the server plus its cache and rate-limiter goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheMgr.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) invalidateGroup(name string) {
	s.totalCache.Delete(name)
	s.reportCache.Delete(name)
}
