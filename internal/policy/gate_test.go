package policy

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/hlemaitre/invoice-dashboard/auth"
)

func TestAuthorized(t *testing.T) {
	cases := []struct {
		name     string
		loggedIn bool
		path     string
		want     Decision
	}{
		{"anonymous dashboard denied", false, "/dashboard/invoices", Decision{Verdict: Deny}},
		{"anonymous dashboard root denied", false, "/dashboard", Decision{Verdict: Deny}},
		{"session dashboard allowed", true, "/dashboard", Decision{Verdict: Allow}},
		{"session nested dashboard allowed", true, "/dashboard/invoices/create", Decision{Verdict: Allow}},
		{"session login redirected", true, "/login", Decision{Verdict: Redirect, Location: "/dashboard"}},
		{"session root redirected", true, "/", Decision{Verdict: Redirect, Location: "/dashboard"}},
		{"anonymous login allowed", false, "/login", Decision{Verdict: Allow}},
		{"anonymous root allowed", false, "/", Decision{Verdict: Allow}},
		{"prefix lookalike is public", false, "/dashboards", Decision{Verdict: Allow}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Authorized(tc.loggedIn, tc.path))
		})
	}
}

func gateServe(t *testing.T, path string, loggedIn bool) *httptest.ResponseRecorder {
	t.Helper()
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), "/healthz")
	r := httptest.NewRequest(http.MethodGet, path, nil)
	if loggedIn {
		r = r.WithContext(auth.WithUserID(r.Context(), uuid.New()))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestMiddlewareDenyRedirectsToSignIn(t *testing.T) {
	w := gateServe(t, "/dashboard/invoices", false)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
}

func TestMiddlewareRedirectsSignedInToDashboard(t *testing.T) {
	w := gateServe(t, "/login", true)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestMiddlewarePassesAllowed(t *testing.T) {
	require.Equal(t, http.StatusOK, gateServe(t, "/dashboard", true).Code)
	require.Equal(t, http.StatusOK, gateServe(t, "/login", false).Code)
}

func TestMiddlewareSkipsListedPaths(t *testing.T) {
	// /healthz is skipped, so even a signed-in user is not redirected
	require.Equal(t, http.StatusOK, gateServe(t, "/healthz", true).Code)
}
