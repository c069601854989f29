package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/teran1416/InventarioApp/internal/auth"
	"github.com/teran1416/InventarioApp/internal/http/handlers"
)

func NewRouter(s *handlers.Server, tokens *auth.TokenManager, log *logrus.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/health", s.HealthHandler)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", s.RegisterHandler)
		r.Post("/login", s.LoginHandler)
		r.With(AuthMiddleware(tokens)).Get("/profile", s.ProfileHandler)
	})

	r.Route("/products", func(r chi.Router) {
		r.Use(AuthMiddleware(tokens))
		r.Get("/", s.GetProductsHandler)
		r.Post("/", s.CreateProductHandler)
		r.Get("/low-stock", s.GetLowStockProductsHandler)
		r.Get("/summary", s.GetSummaryHandler)
		r.Get("/{id}", s.GetProductByIDHandler)
		r.Put("/{id}", s.UpdateProductHandler)
		r.Delete("/{id}", s.DeleteProductHandler)
		r.Put("/{id}/stock", s.AdjustStockHandler)
	})

	return r
}
