package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/teran1416/InventarioApp/internal/repo"
	"github.com/teran1416/InventarioApp/internal/service"
)

const productNotFound = "Product not found"

// GetProductsHandler godoc
// @Summary List the caller's products
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Product
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products [get]
func (s *Server) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.ownerOrUnauthorized(w, r)
	if !ok {
		return
	}

	products, err := s.products.List(r.Context(), owner)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, products)
}

// GetLowStockProductsHandler godoc
// @Summary List products at or below their minimum stock threshold
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Product
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/low-stock [get]
func (s *Server) GetLowStockProductsHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.ownerOrUnauthorized(w, r)
	if !ok {
		return
	}

	products, err := s.products.ListLowStock(r.Context(), owner)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, products)
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{id} [get]
func (s *Server) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.ownerOrUnauthorized(w, r)
	if !ok {
		return
	}

	product, err := s.products.Get(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			s.respondMessage(w, http.StatusNotFound, productNotFound)
			return
		}
		s.serverError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, product)
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product owned by the caller. A missing or zero threshold defaults to 5.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body CreateProductRequest true "Product to add"
// @Success 201 {object} models.Product
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products [post]
func (s *Server) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.ownerOrUnauthorized(w, r)
	if !ok {
		return
	}

	var req CreateProductRequest
	if err := readJSON(w, r, &req); err != nil {
		s.respondMessage(w, http.StatusBadRequest, "invalid input")
		return
	}
	req.Name = strings.TrimSpace(req.Name)

	if errs := s.validateRequest(req); len(errs) > 0 {
		s.invalidInput(w, errs)
		return
	}

	created, err := s.products.Create(r.Context(), owner, service.CreateProductInput{
		Name:              req.Name,
		Description:       req.Description,
		Quantity:          req.Quantity,
		Price:             req.Price,
		MinStockThreshold: req.MinStockThreshold,
	})
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.respond(w, http.StatusCreated, created)
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Applies only the provided fields. Quantity may be set to 0; other fields ignore zero values.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param product body UpdateProductRequest true "Fields to change"
// @Success 200 {object} models.Product
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{id} [put]
func (s *Server) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.ownerOrUnauthorized(w, r)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := readJSON(w, r, &req); err != nil {
		s.respondMessage(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}

	if errs := s.validateRequest(req); len(errs) > 0 {
		s.invalidInput(w, errs)
		return
	}

	updated, err := s.products.Update(r.Context(), owner, chi.URLParam(r, "id"), service.UpdateProductInput{
		Name:              req.Name,
		Description:       req.Description,
		Quantity:          req.Quantity,
		Price:             req.Price,
		MinStockThreshold: req.MinStockThreshold,
	})
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			s.respondMessage(w, http.StatusNotFound, productNotFound)
			return
		}
		s.serverError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, updated)
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{id} [delete]
func (s *Server) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.ownerOrUnauthorized(w, r)
	if !ok {
		return
	}

	if err := s.products.Delete(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			s.respondMessage(w, http.StatusNotFound, productNotFound)
			return
		}
		s.serverError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, MessageResponse{Message: "Product removed"})
}
