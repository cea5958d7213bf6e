package handler

import (
	"log/slog"
	"net/http"

	"risk-dashboard/internal/api/handler/dto"
	"risk-dashboard/internal/domain/customer"
)

type DashboardHandler struct {
	service customer.CustomerService
	logger  *slog.Logger
}

func NewDashboardHandler(s customer.CustomerService, l *slog.Logger) *DashboardHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &DashboardHandler{
		service: s,
		logger:  l.With("component", "DashboardHandler"),
	}
}

// Summary handles GET /api/dashboard/summary
// @Summary Portfolio summary
// @Description Headline statistics, risk distribution and income against expenses.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.SummaryResponse "Portfolio summary"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewSummaryResponse(summary))
}
