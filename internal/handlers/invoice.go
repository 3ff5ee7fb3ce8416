package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hlemaitre/invoice-dashboard/httpx"
	"github.com/hlemaitre/invoice-dashboard/internal/actions"
	"github.com/hlemaitre/invoice-dashboard/internal/cache"
	"github.com/hlemaitre/invoice-dashboard/internal/services"
)

// InvoiceHandler is the form/JSON boundary in front of the mutation
// pipeline and the listing queries.
type InvoiceHandler struct {
	Actions   *actions.InvoiceActions
	Svc       *services.InvoiceService
	Customers *services.CustomerService
	Cache     *cache.PathCache
}

func NewInvoiceHandler(a *actions.InvoiceActions, svc *services.InvoiceService, customers *services.CustomerService, c *cache.PathCache) *InvoiceHandler {
	return &InvoiceHandler{Actions: a, Svc: svc, Customers: customers, Cache: c}
}

// cacheKey is the full request path including the query string, so each
// search/pagination variant caches independently while mutations invalidate
// them all by route.
func cacheKey(r *http.Request) string {
	if r.URL.RawQuery == "" {
		return r.URL.Path
	}
	return r.URL.Path + "?" + r.URL.RawQuery
}

// List: GET /dashboard/invoices?query=&page=
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	key := cacheKey(r)
	if payload, ok := h.Cache.Get(key); ok {
		httpx.JSON(w, http.StatusOK, payload)
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			page = n
		}
	}
	invs, err := h.Svc.FilteredInvoices(r.Context(), query, page)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	pages, err := h.Svc.FilteredPages(r.Context(), query)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	payload := map[string]any{"items": invs, "total_pages": pages, "query": query, "page": page}
	h.Cache.Put(key, payload)
	httpx.JSON(w, http.StatusOK, payload)
}

// writeResult maps a pipeline Result onto the HTTP response: redirect on
// success, the State re-rendered as the form body otherwise.
func writeResult(w http.ResponseWriter, r *http.Request, res actions.Result) {
	switch res.Kind {
	case actions.ResultRedirect:
		http.Redirect(w, r, res.Location, http.StatusSeeOther)
	case actions.ResultOK:
		httpx.NoContent(w)
	default:
		status := http.StatusInternalServerError
		if len(res.State.Errors) > 0 {
			status = http.StatusBadRequest
		}
		httpx.JSON(w, status, res.State)
	}
}

// Create: POST /dashboard/invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	writeResult(w, r, h.Actions.CreateInvoice(r.Context(), actions.State{}, r.PostForm))
}

// Update: POST /dashboard/invoices/update?id=...
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := invoiceID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	writeResult(w, r, h.Actions.UpdateInvoice(r.Context(), id, actions.State{}, r.PostForm))
}

// Delete: POST /dashboard/invoices/delete?id=...
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := invoiceID(w, r)
	if !ok {
		return
	}
	writeResult(w, r, h.Actions.DeleteInvoice(r.Context(), id))
}

// New: GET /dashboard/invoices/create – data backing the create form.
func (h *InvoiceHandler) New(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Customers.Customers(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_customers", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"customers": customers})
}

// Edit: GET /dashboard/invoices/edit?id=... – data backing the edit form.
func (h *InvoiceHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := invoiceID(w, r)
	if !ok {
		return
	}
	inv, err := h.Svc.GetInvoice(r.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		return
	}
	customers, err := h.Customers.Customers(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_customers", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoice": inv, "customers": customers})
}

func invoiceID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return uuid.Nil, false
	}
	return id, true
}
