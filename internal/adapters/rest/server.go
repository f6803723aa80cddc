package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	core_port "github.com/amggit2025/amg-realestate-sub000/internal/core/port"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Wizard    *WizardHandler
	Listings  *ListingHandler
	Uploads   *UploadHandler
	Content   *ContentHandler
	Portfolio *PortfolioHandler
	Store     *StoreHandler
	Chat      *ChatHandler
	Auth      *AuthHandler
	Events    *EventsHandler

	ValidateToken usecases_port.ValidateTokenUseCase
}

// RouterOptions carries the HTTP settings that are not handlers.
type RouterOptions struct {
	AllowedOrigins []string
}

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// NewRouter builds the full route tree. It is separate from NewServer so
// tests can drive it with httptest.
func NewRouter(h Handlers, opts RouterOptions, baseLogger core_port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer, MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, messageResponse{Success: true})
	})
	r.Handle("/metrics", promhttp.Handler())

	auth := AuthMiddleware(h.ValidateToken)
	optionalAuth := OptionalAuthMiddleware(h.ValidateToken)
	adminOnly := RequireRole(domain.RoleAdmin)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", Catalog)
		r.Post("/ai/chat", h.Chat.Chat)
		r.Post("/properties/submit", h.Listings.SubmitProperty)

		r.Route("/wizard/drafts", func(r chi.Router) {
			r.Post("/", h.Wizard.CreateDraft)
			r.Route("/{draftID}", func(r chi.Router) {
				r.Get("/", h.Wizard.GetDraft)
				r.Patch("/", h.Wizard.UpdateDraft)
				r.Post("/navigate", h.Wizard.NavigateDraft)
				r.Post("/images", h.Wizard.AddImages)
				r.Delete("/images/{imageID}", h.Wizard.RemoveImage)
				r.Post("/submit", h.Wizard.SubmitDraft)
			})
		})

		r.Post("/upload", h.Uploads.Upload)
		r.With(optionalAuth).Delete("/upload/manage", h.Uploads.Delete)
		r.With(optionalAuth).Delete("/delete-image", h.Uploads.Delete)

		for _, section := range domain.ContentSections {
			path := "/" + string(section)
			r.Get(path, h.Content.Get(section))
			r.With(auth, adminOnly).Put(path, h.Content.Update(section))
		}

		r.Get("/portfolio", h.Portfolio.List)
		r.Get("/portfolio/{itemID}", h.Portfolio.Get)

		r.Get("/products", h.Store.ListProducts)
		r.Get("/products/{productID}", h.Store.GetProduct)
		r.Post("/products/{productID}/orders", h.Store.PlaceOrder)

		r.Post("/auth/login", h.Auth.Login)
		r.With(auth).Get("/auth/me", h.Auth.Me)

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth, adminOnly)

			r.Get("/properties", h.Listings.ListRequests)
			r.Get("/properties/{requestID}", h.Listings.GetRequest)
			r.Put("/properties/{requestID}/status", h.Listings.UpdateStatus)
			r.Get("/events", h.Events.Subscribe)

			r.Get("/portfolio", h.Portfolio.List)
			r.Post("/portfolio", h.Portfolio.Create)
			r.Get("/portfolio/{itemID}", h.Portfolio.Get)
			r.Put("/portfolio/{itemID}", h.Portfolio.Update)
			r.Delete("/portfolio/{itemID}", h.Portfolio.Delete)
			r.Post("/portfolio-images", h.Portfolio.AddImage)
			r.Put("/portfolio-images", h.Portfolio.ReorderImages)
			r.Delete("/portfolio-images", h.Portfolio.DeleteImage)

			r.Get("/products", h.Store.ListAllProducts)
			r.Post("/products", h.Store.CreateProduct)
			r.Put("/products/{productID}", h.Store.UpdateProduct)
			r.Delete("/products/{productID}", h.Store.DeleteProduct)
			r.Get("/orders", h.Store.ListOrders)
		})
	})

	return r
}

func NewServer(port string, h Handlers, opts RouterOptions, baseLogger core_port.LoggerPort) *Server {
	// no WriteTimeout: the admin feed is a long-lived stream
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           NewRouter(h, opts, baseLogger),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return &Server{
		httpServer: srv,
		logger:     baseLogger.WithFields(core_port.Fields{"component": "rest_server"}),
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
