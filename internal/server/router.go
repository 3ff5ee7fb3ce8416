package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hlemaitre/invoice-dashboard/auth"
	"github.com/hlemaitre/invoice-dashboard/httpx"
	"github.com/hlemaitre/invoice-dashboard/internal/actions"
	"github.com/hlemaitre/invoice-dashboard/internal/cache"
	"github.com/hlemaitre/invoice-dashboard/internal/handlers"
	"github.com/hlemaitre/invoice-dashboard/internal/models"
	"github.com/hlemaitre/invoice-dashboard/internal/policy"
	"github.com/hlemaitre/invoice-dashboard/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares
// applied. Chain, outermost first: recover, request log, session parsing,
// authorization gate, mux.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// RequireAuth-style staleness check: sessions for deleted users are
	// treated as absent.
	auth.SetUserVerifier(func(_ context.Context, uid uuid.UUID) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	pageCache := cache.New()
	invSvc := services.NewInvoiceService(db)
	custSvc := services.NewCustomerService(db)
	dashSvc := services.NewDashboardService(db)
	act := actions.NewInvoiceActions(invSvc, pageCache)

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth endpoints
	handlers.NewAuthHandler(db).Register(mux)

	// Dashboard overview
	dh := handlers.NewDashboardHandler(dashSvc, invSvc)
	mux.HandleFunc("/dashboard", dh.Overview)

	// Customers
	ch := handlers.NewCustomerHandler(custSvc)
	mux.HandleFunc("/dashboard/customers", ch.List)

	// Invoices: listing + mutations
	ih := handlers.NewInvoiceHandler(act, invSvc, custSvc, pageCache)
	mux.HandleFunc("/dashboard/invoices", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ih.List(w, r)
		case http.MethodPost:
			ih.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/dashboard/invoices/create", onlyMethod(http.MethodGet, ih.New))
	mux.HandleFunc("/dashboard/invoices/edit", onlyMethod(http.MethodGet, ih.Edit))
	mux.HandleFunc("/dashboard/invoices/update", onlyMethod(http.MethodPost, ih.Update))
	mux.HandleFunc("/dashboard/invoices/delete", onlyMethod(http.MethodPost, ih.Delete))

	// Landing page placeholder
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Invoice Dashboard - sign in at /login"))
	})

	// Gate skips: probes stay reachable and logout must work for signed-in
	// users outside the dashboard area.
	gated := policy.Middleware(mux, "/health", "/healthz", "/logout")
	return withRecover(withLogging(auth.Middleware(gated)))
}

// onlyMethod rejects every verb but the given one. Mutations stay POST-only
// so crawlers and link prefetchers never reach them.
func onlyMethod(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		h(w, r)
	}
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
