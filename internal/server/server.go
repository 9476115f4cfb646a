// file: internal/server/server.go
// version: 1.3.0
// guid: 542e2ca2-4f0c-45c3-8622-edef37ed7e22

// Package server exposes the HTTP API: import list management, download
// request workflow, catalog search and runtime settings.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jdfalk/bookwatch/internal/cache"
	"github.com/jdfalk/bookwatch/internal/checker"
	"github.com/jdfalk/bookwatch/internal/database"
	"github.com/jdfalk/bookwatch/internal/fetcher"
	"github.com/jdfalk/bookwatch/internal/importer"
	"github.com/jdfalk/bookwatch/internal/metrics"
	"github.com/jdfalk/bookwatch/internal/requests"
	"github.com/jdfalk/bookwatch/internal/server/middleware"
	"github.com/jdfalk/bookwatch/internal/settings"
)

// Server wires the HTTP layer onto the services.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server

	store          database.Store
	registry       *fetcher.Registry
	importer       *importer.Importer
	listChecker    *checker.ListChecker
	requestChecker *checker.RequestChecker
	requests       *requests.Service
	settings       *settings.Service

	// shelfCache holds remote shelf enumerations so the UI can poll the
	// sources endpoint without re-scraping.
	shelfCache *cache.Cache[[]fetcher.AvailableList]

	// onSettingsChanged fires after a successful settings write so the
	// schedulers can pick up new intervals.
	onSettingsChanged func()
}

// Options carry the service dependencies of the server.
type Options struct {
	Store             database.Store
	Registry          *fetcher.Registry
	Importer          *importer.Importer
	ListChecker       *checker.ListChecker
	RequestChecker    *checker.RequestChecker
	Requests          *requests.Service
	Settings          *settings.Service
	OnSettingsChanged func()
	RateLimitPerMin   int
	RateLimitBurst    int
}

// ServerConfig holds the listener settings.
type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// NewServer creates a server instance with all routes registered.
func NewServer(opts Options) *Server {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	if opts.RateLimitPerMin > 0 {
		limiter := middleware.NewIPRateLimiter(opts.RateLimitPerMin, opts.RateLimitBurst)
		router.Use(limiter.Middleware())
	}

	// Register metrics (idempotent)
	metrics.Register()

	s := &Server{
		router:            router,
		store:             opts.Store,
		registry:          opts.Registry,
		importer:          opts.Importer,
		listChecker:       opts.ListChecker,
		requestChecker:    opts.RequestChecker,
		requests:          opts.Requests,
		settings:          opts.Settings,
		shelfCache:        cache.New[[]fetcher.AvailableList](10 * time.Minute),
		onSettingsChanged: opts.OnSettingsChanged,
	}
	s.setupRoutes()
	return s
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully.
func (s *Server) Start(cfg ServerConfig) error {
	s.httpServer = &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:        s.router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	go func() {
		log.Printf("[INFO] Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Println("Server exited")
	return nil
}

// setupRoutes configures all the routes.
func (s *Server) setupRoutes() {
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.GET("/api/health", s.healthCheck)
	s.router.GET("/api/v1/health", s.healthCheck)

	v1 := s.router.Group("/api/v1")
	{
		lists := v1.Group("/lists")
		{
			lists.GET("", s.getLists)
			lists.POST("", s.createList)
			lists.GET("/stats", s.getListStats)
			lists.GET("/sources", s.getListSources)
			lists.GET("/sources/:source/lists", s.getAvailableLists)
			lists.POST("/validate", s.validateListConfig)
			lists.POST("/parse-url", s.parseProfileURL)
			lists.POST("/check-now", s.triggerListCheck)
			lists.GET("/check-status", s.getListCheckStatus)
			lists.GET("/:id", s.getList)
			lists.PUT("/:id", s.updateList)
			lists.DELETE("/:id", s.deleteList)
			lists.POST("/:id/refresh", s.refreshList)
		}

		reqs := v1.Group("/requests")
		{
			reqs.GET("", s.getRequests)
			reqs.POST("", s.createRequest)
			reqs.GET("/counts", s.getRequestCounts)
			reqs.POST("/check-now", s.triggerRequestCheck)
			reqs.GET("/check-status", s.getRequestCheckStatus)
			reqs.GET("/:id", s.getRequest)
			reqs.POST("/:id/approve", s.approveRequest)
			reqs.POST("/:id/reject", s.rejectRequest)
			reqs.POST("/:id/cancel", s.cancelRequest)
			reqs.POST("/:id/reactivate", s.reactivateRequest)
		}

		books := v1.Group("/books")
		{
			books.GET("", s.getBooks)
			books.GET("/:md5", s.getBook)
		}

		settingsGroup := v1.Group("/settings")
		{
			settingsGroup.GET("", s.getSettings)
			settingsGroup.PUT("/:key", s.putSetting)
		}
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	status := "ok"
	bookCount := 0
	if count, err := s.store.CountBooks(); err == nil {
		bookCount = count
		metrics.SetCatalogBooks(count)
	} else {
		status = "degraded"
	}
	counts, err := s.store.CountRequestsByStatus()
	if err != nil {
		status = "degraded"
		counts = map[string]int{}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"books":    bookCount,
		"requests": counts,
		"time":     time.Now().UTC(),
	})
}
