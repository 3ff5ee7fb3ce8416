// Package policy decides request disposition before any handler runs:
// dashboard pages require a session, and signed-in users are steered away
// from public pages back to the dashboard.
package policy

import (
	"net/http"
	"strings"

	"github.com/hlemaitre/invoice-dashboard/auth"
)

const (
	// DashboardPath is the protected area's landing page; everything under
	// it requires a session.
	DashboardPath = "/dashboard"
	// SignInPath is where denied requests are sent.
	SignInPath = "/login"
)

// Verdict is the gate's disposition for a request.
type Verdict int

const (
	Allow Verdict = iota
	Deny
	Redirect
)

// Decision pairs a Verdict with a redirect target when Verdict is Redirect.
type Decision struct {
	Verdict  Verdict
	Location string
}

// Authorized evaluates the gate for one request. It is pure: session
// presence and path are supplied by the caller, nothing ambient is read.
//
// Dashboard paths allow signed-in users and deny everyone else (the serving
// layer turns Deny into a redirect to SignInPath). On public paths a
// signed-in user is redirected to the dashboard; anonymous users pass.
func Authorized(loggedIn bool, path string) Decision {
	if onDashboard(path) {
		if loggedIn {
			return Decision{Verdict: Allow}
		}
		return Decision{Verdict: Deny}
	}
	if loggedIn {
		return Decision{Verdict: Redirect, Location: DashboardPath}
	}
	return Decision{Verdict: Allow}
}

func onDashboard(path string) bool {
	return path == DashboardPath || strings.HasPrefix(path, DashboardPath+"/")
}

// Middleware runs the gate ahead of every route. Paths listed in skip bypass
// the gate entirely (health probes, logout). Session presence comes from the
// auth middleware's request context, so Middleware must sit inside
// auth.Middleware in the chain.
func Middleware(next http.Handler, skip ...string) http.Handler {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := skipped[r.URL.Path]; ok {
			next.ServeHTTP(w, r)
			return
		}
		_, loggedIn := auth.UserIDFromContext(r.Context())
		switch d := Authorized(loggedIn, r.URL.Path); d.Verdict {
		case Deny:
			http.Redirect(w, r, SignInPath, http.StatusSeeOther)
		case Redirect:
			http.Redirect(w, r, d.Location, http.StatusSeeOther)
		default:
			next.ServeHTTP(w, r)
		}
	})
}
