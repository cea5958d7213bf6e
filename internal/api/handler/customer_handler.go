package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"risk-dashboard/internal/api/handler/dto"
	"risk-dashboard/internal/domain/customer"

	"github.com/go-chi/chi/v5"
)

const customerIDParam = "customerId"

type CustomerHandler struct {
	service customer.CustomerService
	logger  *slog.Logger
}

func NewCustomerHandler(s customer.CustomerService, l *slog.Logger) *CustomerHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		service: s,
		logger:  l.With("component", "CustomerHandler"),
	}
}

func (h *CustomerHandler) logServiceError(r *http.Request, msg string, err error) {
	level := slog.LevelWarn
	if !errors.Is(err, customer.ErrNotFound) && !errors.Is(err, customer.ErrInvalidStatus) {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, msg, slog.Any("error", err))
}

// ListCustomers handles GET /api/customers
// @Summary List customers
// @Description Returns every customer in the portfolio in load order.
// @Tags Customers
// @Produce json
// @Success 200 {array} dto.CustomerResponse "All customers"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		h.logServiceError(r, "Service failed to list customers", err)
		respondError(w, h.logger, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerListResponse(customers))
}

// GetCustomer handles GET /api/customers/{customerId}
// @Summary Retrieve customer details
// @Tags Customers
// @Produce json
// @Param customerId path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse "Customer details retrieved"
// @Failure 400 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerId} [get]
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, customerIDParam)

	cust, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		h.logServiceError(r, "Service failed to get customer", err)
		respondError(w, h.logger, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(cust))
}

// UpdateStatus handles PUT /api/customers/{customerId}
// @Summary Update customer status
// @Description Sets the review status of one customer. A risk score above 70 raises a high risk alert.
// @Tags Customers
// @Accept json
// @Produce json
// @Param customerId path string true "Customer ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} dto.CustomerResponse "Updated customer"
// @Failure 400 {object} dto.ErrorResponse "Customer not found, invalid status or malformed body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerId} [put]
func (h *CustomerHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, customerIDParam)
	logCtx := h.logger.With(slog.String("customerID", customerID))

	var req dto.UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		logCtx.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, h.logger, r, err)
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), customerID, req.Status)
	if err != nil {
		h.logServiceError(r, "Service failed to update customer status", err)
		respondError(w, h.logger, r, err)
		return
	}

	logCtx.InfoContext(r.Context(), "Customer status updated", slog.String("status", string(updated.Status)))
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(updated))
}

// GetRisk handles GET /api/customers/{customerId}/risk
// @Summary Customer risk assessment
// @Tags Customers
// @Produce json
// @Param customerId path string true "Customer ID"
// @Success 200 {object} dto.RiskAssessmentResponse "Risk score and band"
// @Failure 400 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerId}/risk [get]
func (h *CustomerHandler) GetRisk(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, customerIDParam)

	assessment, err := h.service.AssessRisk(r.Context(), customerID)
	if err != nil {
		h.logServiceError(r, "Service failed to assess risk", err)
		respondError(w, h.logger, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewRiskAssessmentResponse(assessment))
}
