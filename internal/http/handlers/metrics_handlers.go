package handlers

import (
	"net/http"
)

// GetSummaryHandler godoc
// @Summary Inventory totals for the caller
// @Tags metrics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SummaryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/summary [get]
func (s *Server) GetSummaryHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.ownerOrUnauthorized(w, r)
	if !ok {
		return
	}

	summary, err := s.products.Summary(r.Context(), owner)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	value, _ := summary.TotalInventoryValue.Float64()
	s.respond(w, http.StatusOK, SummaryResponse{
		TotalProducts:       summary.TotalProducts,
		TotalInventoryValue: value,
		LowStockCount:       summary.LowStockCount,
	})
}

// HealthHandler godoc
// @Summary Liveness probe
// @Tags metrics
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}
