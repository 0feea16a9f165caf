package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/riskibarqy/esports-sync/internal/config"
	"github.com/riskibarqy/esports-sync/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "esports-sync",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitUptrace_EnabledWithoutDSNIsNoop(t *testing.T) {
	cfg := config.Config{UptraceEnabled: true, ServiceName: "esports-sync"}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestProfilers_Disabled(t *testing.T) {
	cfg := config.Config{ServiceName: "esports-sync"}

	stop, err := InitPyroscope(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
	if srv := StartPprofServer(cfg, logging.NewNop()); srv != nil {
		t.Fatalf("expected no pprof server when disabled")
	}
	if err := StopPprofServer(context.Background(), nil); err != nil {
		t.Fatalf("stop nil pprof server: %v", err)
	}
}

func TestProfileJob_SetsJobLabel(t *testing.T) {
	t.Parallel()

	var got string
	ProfileJob(context.Background(), "fetch_schedule", func(ctx context.Context) {
		got, _ = pprof.Label(ctx, "job_id")
	})
	if got != "fetch_schedule" {
		t.Fatalf("unexpected job label: got=%q want=%q", got, "fetch_schedule")
	}
}

func TestPprofMux_ServesIndex(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	pprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
}
