package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/esports-sync/internal/platform/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestShouldTraceRequest(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"/healthz":             false,
		" /HEALTHZ ":           false,
		"/livez":               false,
		"/readyz":              false,
		"/v1/leagues":          true,
		"/v1/player-game-data": true,
		"/v1/internal/jobs":    true,
		"/":                    true,
	}
	for path, want := range cases {
		if got := shouldTraceRequest(path); got != want {
			t.Fatalf("unexpected trace decision for %q: got=%v want=%v", path, got, want)
		}
	}
}

func TestCORS(t *testing.T) {
	t.Parallel()

	const origin = "https://ops.esports-sync.example.com"
	cases := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantStatus int
		wantAllow  string
	}{
		{"configured origin", []string{origin}, http.MethodGet, origin, http.StatusOK, origin},
		{"wildcard preflight", []string{"*"}, http.MethodOptions, origin, http.StatusNoContent, "*"},
		{"unknown origin", []string{"https://allowed.example.com"}, http.MethodGet, origin, http.StatusOK, ""},
		{"no origin header", []string{"*"}, http.MethodGet, "", http.StatusOK, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tc.method, "/v1/leagues", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rec := httptest.NewRecorder()
			CORS(tc.allowed, okHandler).ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, tc.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tc.wantAllow {
				t.Fatalf("unexpected allow origin: got=%q want=%q", got, tc.wantAllow)
			}
		})
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		configured string
		provided   string
		want       int
	}{
		{"unset token closes the surface", "", "anything", http.StatusServiceUnavailable},
		{"missing header", "secret", "", http.StatusUnauthorized},
		{"wrong token", "secret", "secrex", http.StatusUnauthorized},
		{"matching token", "secret", " secret ", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/v1/internal/jobs", nil)
			if tc.provided != "" {
				req.Header.Set(internalJobTokenHeader, tc.provided)
			}
			rec := httptest.NewRecorder()
			RequireInternalJobToken(tc.configured, okHandler).ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, tc.want)
			}
		})
	}
}

func TestRequestLogging_SkipsProbesAndRecordsStatus(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	handler := RequestLogging(logging.FromZap(zap.New(core)), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/leagues", nil))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("unexpected entry count: got=%d want=1", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("unexpected level for 5xx: got=%s", entries[0].Level)
	}
	if got := entries[0].ContextMap()["status"]; got != int64(http.StatusBadGateway) {
		t.Fatalf("unexpected status field: %v", got)
	}
}

func TestRecoverPanic_WritesInternalError(t *testing.T) {
	t.Parallel()

	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil league")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leagues", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusInternalServerError)
	}
}
