package handlers

import (
	"net/http"
	"strings"

	"github.com/hlemaitre/invoice-dashboard/httpx"
	"github.com/hlemaitre/invoice-dashboard/internal/services"
)

type CustomerHandler struct {
	Svc *services.CustomerService
}

func NewCustomerHandler(svc *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{Svc: svc}
}

// List: GET /dashboard/customers?query=
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	customers, err := h.Svc.FilteredCustomers(r.Context(), query)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_customers", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": customers, "query": query})
}
