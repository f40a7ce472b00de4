package http

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"upilens/internal/advisor"
	"upilens/internal/cache"
	"upilens/internal/charts"
	"upilens/internal/core"
	"upilens/internal/export"
	applog "upilens/internal/log"
)

const (
	defaultCacheSize   = 100
	defaultCacheTTL    = 5 * time.Minute
	defaultRatePerMin  = 60
	cacheCleanupPeriod = 10 * time.Minute
)

// Options configures a Server. Records are the full ledger, loaded once at
// startup and never mutated afterwards.
type Options struct {
	Addr     string
	Records  []core.Transaction
	Defaults core.Params

	CacheSize     int
	CacheTTL      time.Duration
	RatePerMinute int

	Advisor  *advisor.Service
	Renderer *charts.Renderer
	Exporter *export.Service
	Logger   *applog.Logger
}

type Server struct {
	http.Server

	records       []core.Transaction
	ledgerStart   core.Date
	ledgerEnd     core.Date
	allCategories []string
	defaults      core.Params

	advisorSvc *advisor.Service
	renderer   *charts.Renderer
	exporter   *export.Service
	logger     *applog.Logger

	rateLimiter *rateLimiter

	// Summaries and rendered charts are memoized per filter; the ledger is
	// immutable so entries only ever expire, never invalidate.
	summaryCache *cache.LRUCache[core.Summary]
	chartCache   *cache.LRUCache[[]byte]
	adviceCache  *cache.LRUCache[string]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and caches, returning a ready-to-run server.
func NewServer(opts Options) *Server {
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	if opts.RatePerMinute <= 0 {
		opts.RatePerMinute = defaultRatePerMin
	}
	if opts.Logger == nil {
		opts.Logger = applog.New(applog.DefaultConfig())
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    opts.Addr,
			Handler: mux,
		},
		records:          opts.Records,
		defaults:         opts.Defaults,
		advisorSvc:       opts.Advisor,
		renderer:         opts.Renderer,
		exporter:         opts.Exporter,
		logger:           opts.Logger.WithComponent("http"),
		rateLimiter:      newRateLimiter(opts.RatePerMinute),
		summaryCache:     cache.NewLRUCache[core.Summary](opts.CacheSize, opts.CacheTTL),
		chartCache:       cache.NewLRUCache[[]byte](opts.CacheSize, opts.CacheTTL),
		adviceCache:      cache.NewLRUCache[string](opts.CacheSize, opts.CacheTTL),
		stopCacheCleanup: make(chan struct{}),
	}
	s.scanLedger()

	go s.startCacheCleanup()

	mux.HandleFunc("/summary", s.withSecurityHeaders(s.handleSummary))
	mux.HandleFunc("/categories", s.withSecurityHeaders(s.handleCategories))
	mux.HandleFunc("/charts/", s.withSecurityHeaders(s.handleChart))
	mux.HandleFunc("/advice", s.withSecurityHeaders(s.handleAdvice))
	mux.HandleFunc("/export", s.withSecurityHeaders(s.handleExport))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	return s
}

// scanLedger records the full date range and category set of the ledger,
// which back the filter defaults when a request omits them.
func (s *Server) scanLedger() {
	seen := make(map[string]bool)
	for i, t := range s.records {
		if i == 0 || t.Date.Before(s.ledgerStart.Time) {
			s.ledgerStart = t.Date
		}
		if i == 0 || t.Date.After(s.ledgerEnd.Time) {
			s.ledgerEnd = t.Date
		}
		if !seen[t.Category] {
			seen[t.Category] = true
			s.allCategories = append(s.allCategories, t.Category)
		}
	}
	sort.Strings(s.allCategories)
}

// paramsFor resolves a parsed filter against the ledger-wide defaults.
func (s *Server) paramsFor(f filterQuery) core.Params {
	p := s.defaults
	p.Start = s.ledgerStart
	p.End = s.ledgerEnd
	p.Categories = s.allCategories
	if f.HasStart {
		p.Start = f.Start
	}
	if f.HasEnd {
		p.End = f.End
	}
	if f.HasCategories {
		p.Categories = f.Categories
	}
	return p
}

func paramsKey(p core.Params) string {
	cats := make([]string, len(p.Categories))
	copy(cats, p.Categories)
	sort.Strings(cats)
	return p.Start.Format("2006-01-02") + "|" + p.End.Format("2006-01-02") + "|" + strings.Join(cats, ",")
}

// getSummary memoizes aggregation per resolved filter.
func (s *Server) getSummary(ctx context.Context, p core.Params) core.Summary {
	key := paramsKey(p)
	if sum, found := s.summaryCache.Get(key); found {
		s.logger.DebugContext(ctx, "summary cache hit", "key", key)
		return sum
	}
	sum := core.Aggregate(s.records, p)
	s.summaryCache.Set(key, sum)
	s.logger.DebugContext(ctx, "summary cached", "key", key, "categories", len(sum.CategoryTotals))
	return sum
}

// startCacheCleanup runs periodic cleanup for the response caches.
func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(cacheCleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			summaries := s.summaryCache.CleanExpired()
			chartImages := s.chartCache.CleanExpired()
			adviceTexts := s.adviceCache.CleanExpired()
			if summaries > 0 || chartImages > 0 || adviceTexts > 0 {
				s.logger.Debug("cache cleanup completed",
					"summary_entries_removed", summaries,
					"chart_entries_removed", chartImages,
					"advice_entries_removed", adviceTexts)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request
// logging to responses.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		s.logger.InfoContext(ctx, "request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		// Rate limiting applies to POST requests, which trigger PDF builds.
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			s.logger.WarnContext(ctx, "rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; img-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		s.logger.InfoContext(ctx, "request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if len(s.records) == 0 {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("no ledger loaded"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
