package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"sync"
	"time"

	"expensecast/internal/analysis"
	"expensecast/internal/cache"
	"expensecast/internal/core"
	"expensecast/internal/ingest"
	applog "expensecast/internal/log"
	"expensecast/internal/report"
	appweb "expensecast/web"
)

// Options configures a Server.
type Options struct {
	Addr   string
	Title  string
	Source ingest.TransactionSource
	Logger *applog.Logger

	PDFFontPath     string
	PDFFontName     string
	MaxUploadBytes  int64
	ForecastPeriods int
	CacheTTL        time.Duration
}

// Server is the dashboard HTTP server. It holds the loaded dataset in
// memory; uploads replace it wholesale.
type Server struct {
	http.Server
	templates *template.Template
	logger    *applog.StructuredLogger

	source ingest.TransactionSource
	title  string

	// mu guards groups and gen together. gen increments on every dataset
	// swap so stale cache entries are never served after an upload; it
	// must be read in the same critical section as the dataset it tags.
	mu     sync.RWMutex
	groups *core.Groups
	gen    int64

	resultCache *cache.LRUCache[analysis.Result]
	cacheMgr    *cache.Manager

	rateLimiter *rateLimiter
	metrics     *securityMetrics

	pdf             report.PDFWriter
	maxUploadBytes  int64
	forecastPeriods int

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run
// server. Call LoadDataset before serving traffic.
func NewServer(opts Options) *Server {
	mux := http.NewServeMux()

	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	periods := opts.ForecastPeriods
	if periods < 1 {
		periods = analysis.DefaultForecastPeriods
	}
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}
	title := opts.Title
	if title == "" {
		title = "Expensecast"
	}

	s := &Server{
		Server: http.Server{
			Addr:    opts.Addr,
			Handler: mux,
		},
		logger:          applog.NewStructuredLogger(logger.WithComponent(applog.ComponentHTTP)),
		source:          opts.Source,
		title:           title,
		resultCache:     cache.NewLRUCache[analysis.Result](200, ttl),
		cacheMgr:        cache.NewManager(),
		rateLimiter:     newRateLimiter(),
		metrics:         &securityMetrics{},
		pdf:             report.PDFWriter{FontPath: opts.PDFFontPath, FontName: opts.PDFFontName},
		maxUploadBytes:  maxUpload,
		forecastPeriods: periods,
	}
	s.cacheMgr.Register(s.resultCache)
	s.cacheMgr.StartCleanup(10 * time.Minute)

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("failed parsing templates", "error", err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		logger.Warn("failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.secured(s.handleDashboard))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/upload", s.secured(s.handleUpload))
	mux.HandleFunc("/api/categories", s.secured(s.handleCategories))
	mux.HandleFunc("/api/summary", s.secured(s.handleSummary))
	mux.HandleFunc("/api/trend", s.secured(s.handleTrend))
	mux.HandleFunc("/api/forecast", s.secured(s.handleForecast))
	mux.HandleFunc("/api/insights", s.secured(s.handleInsights))
	mux.HandleFunc("/reports/pdf", s.secured(s.handleReportPDF))
	mux.HandleFunc("/export/csv", s.secured(s.handleExportCSV))
	mux.HandleFunc("/export/xlsx", s.secured(s.handleExportXLSX))

	return s
}

// LoadDataset pulls the full dataset from the configured source and
// installs it. The server stays in the not-ready state until this
// succeeds at least once.
func (s *Server) LoadDataset(ctx context.Context) error {
	if s.source == nil {
		return fmt.Errorf("no transaction source configured")
	}
	m, err := s.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}
	g := core.NewGroups(m)
	s.setDataset(g)
	s.logger.LogDatasetLoaded(ctx, "source", "", len(g.Names()), g.Len())
	return nil
}

func (s *Server) dataset() *core.Groups {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groups
}

// snapshot returns the current dataset together with the generation that
// tags it, in one critical section.
func (s *Server) snapshot() (*core.Groups, int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groups, s.gen
}

func (s *Server) setDataset(g *core.Groups) {
	s.mu.Lock()
	s.groups = g
	s.gen++
	s.mu.Unlock()
}

// analyzeCached runs the analysis pipeline for one category, serving
// repeated requests from the LRU cache.
func (s *Server) analyzeCached(category string, periods int) (analysis.Result, error) {
	g, gen := s.snapshot()
	if g == nil {
		return analysis.Result{}, core.ErrNoTransactions
	}

	key := strconv.FormatInt(gen, 10) + "|" + category + "|" + strconv.Itoa(periods)
	if res, ok := s.resultCache.Get(key); ok {
		return res, nil
	}

	txs, err := g.Transactions(category)
	if err != nil {
		return analysis.Result{}, err
	}
	var shares []core.CategoryShare
	if category == core.CombinedCategory {
		shares = g.Shares()
	} else {
		shares, _ = g.HeadShares(category)
	}
	res := analysis.Analyze(category, txs, shares, periods)
	s.resultCache.Set(key, res)
	return res, nil
}

// Shutdown stops the background cleanup goroutines and then the HTTP
// server itself.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheMgr.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// secured adds security headers, rate limiting and request logging.
func (s *Server) secured(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), applog.RequestIDContextKey, requestID)
		r = r.WithContext(ctx)

		s.logger.LogHTTPStart(ctx, r, clientIP)

		if detectSuspiciousRequest(r, s.metrics) {
			s.logger.LogError(ctx, "suspicious request", nil, applog.ComponentSecurity, applog.OpValidate,
				applog.NewFields().WithClientIP(clientIP).WithRequestID(requestID))
		}

		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP, s.metrics) {
			w.Header().Set("Retry-After", "60")
			errorJSON(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://cdn.jsdelivr.net; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.logger.LogHTTPEnd(ctx, r, rw.statusCode, time.Since(start).Milliseconds(), clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.dataset() == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("loading"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
