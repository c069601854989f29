package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/teran1416/InventarioApp/internal/auth"
	"github.com/teran1416/InventarioApp/internal/service"
)

// Server holds the dependencies shared by every handler.
type Server struct {
	products *service.ProductService
	auth     *auth.Service
	log      *logrus.Logger
	validate *validator.Validate
}

func NewServer(products *service.ProductService, authService *auth.Service, log *logrus.Logger) *Server {
	return &Server{
		products: products,
		auth:     authService,
		log:      log,
		validate: newValidator(),
	}
}
