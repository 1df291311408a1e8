package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/lunareth/FarfinderBot_Go/internal/database"
	"github.com/lunareth/FarfinderBot_Go/internal/handler"
	"github.com/lunareth/FarfinderBot_Go/internal/logger"
	"github.com/lunareth/FarfinderBot_Go/internal/metrics"
	"github.com/lunareth/FarfinderBot_Go/internal/registry"
	"github.com/lunareth/FarfinderBot_Go/internal/shop"
	"github.com/lunareth/FarfinderBot_Go/internal/transfer"
)

type Server struct {
	httpServer      *http.Server
	dbPool          database.Pool
	registryService registry.Service
	transferService transfer.Service
	shopService     shop.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, dbPool database.Pool, registryService registry.Service, transferService transfer.Service, shopService shop.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(AuthMiddleware(apiKey))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/character", func(r chi.Router) {
			r.Post("/register", handler.HandleRegisterCharacter(registryService))
			r.Post("/switch", handler.HandleSwitchCharacter(registryService))
			r.Get("/profile", handler.HandleCharacterProfile(registryService))
			r.Get("/list", handler.HandleCharacterList(registryService))
			r.Post("/attribute", handler.HandleSetAttribute(registryService))
			r.Post("/status", handler.HandleSetStatus(registryService))
		})

		r.Get("/inventory", handler.HandleGetInventory(registryService)) // Handle /inventory exactly
		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", handler.HandleGetInventory(registryService))
			r.Post("/adjust", handler.HandleAdjustInventory(registryService))
		})

		r.Route("/transfer", func(r chi.Router) {
			r.Post("/deposit", handler.HandleDeposit(transferService))
			r.Post("/take", handler.HandleTake(transferService))
		})
		r.Get("/farfinder", handler.HandleGetPool(transferService))

		r.Get("/shop", handler.HandleShopList(shopService)) // Handle /shop exactly
		r.Route("/shop", func(r chi.Router) {
			r.Get("/", handler.HandleShopList(shopService))
			r.Post("/buy", handler.HandleShopBuy(shopService))
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:          dbPool,
		registryService: registryService,
		transferService: transferService,
		shopService:     shopService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info("Request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info("Server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
