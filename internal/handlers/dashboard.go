package handlers

import (
	"net/http"

	"github.com/hlemaitre/invoice-dashboard/httpx"
	"github.com/hlemaitre/invoice-dashboard/internal/services"
)

// DashboardHandler serves the overview page data: summary cards and the
// latest invoices. The overview is always computed fresh; only the invoice
// listing participates in path caching.
type DashboardHandler struct {
	Svc      *services.DashboardService
	Invoices *services.InvoiceService
}

func NewDashboardHandler(svc *services.DashboardService, invoices *services.InvoiceService) *DashboardHandler {
	return &DashboardHandler{Svc: svc, Invoices: invoices}
}

// Overview: GET /dashboard
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	cards, err := h.Svc.Cards(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_dashboard", nil)
		return
	}
	latest, err := h.Invoices.LatestInvoices(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_dashboard", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"cards": cards, "latest_invoices": latest})
}
