package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teran1416/InventarioApp/internal/repo"
	"github.com/teran1416/InventarioApp/internal/service"
)

// AdjustStockHandler godoc
// @Summary Add or remove stock
// @Description Adds quantity when isAddition is true, otherwise removes it. Removing more than is in stock fails.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param adjustment body StockRequest true "Stock adjustment"
// @Success 200 {object} StockResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{id}/stock [put]
func (s *Server) AdjustStockHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.ownerOrUnauthorized(w, r)
	if !ok {
		return
	}

	var req StockRequest
	if err := readJSON(w, r, &req); err != nil {
		s.respondMessage(w, http.StatusBadRequest, "invalid input")
		return
	}

	if errs := s.validateRequest(req); len(errs) > 0 {
		s.invalidInput(w, errs)
		return
	}

	result, err := s.products.AdjustStock(r.Context(), owner, chi.URLParam(r, "id"), service.StockAdjustment{
		Quantity:   *req.Quantity,
		IsAddition: req.IsAddition,
	})
	switch {
	case err == nil:
	case errors.Is(err, repo.ErrProductNotFound):
		s.respondMessage(w, http.StatusNotFound, productNotFound)
		return
	case errors.Is(err, service.ErrInsufficientStock):
		s.respondMessage(w, http.StatusBadRequest, "Not enough stock available")
		return
	case errors.Is(err, service.ErrInvalidQuantity):
		s.respondMessage(w, http.StatusBadRequest, "Quantity is out of range")
		return
	default:
		s.serverError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, StockResponse{
		Product:    result.Product,
		IsLowStock: result.IsLowStock,
		Message:    result.Message,
	})
}
