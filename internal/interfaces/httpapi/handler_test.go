package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/esports-sync/internal/domain/gamedata"
	"github.com/riskibarqy/esports-sync/internal/domain/jobscheduler"
	"github.com/riskibarqy/esports-sync/internal/domain/league"
	"github.com/riskibarqy/esports-sync/internal/domain/tournament"
	"github.com/riskibarqy/esports-sync/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/esports-sync/internal/platform/logging"
	"github.com/riskibarqy/esports-sync/internal/platform/resilience"
	"github.com/riskibarqy/esports-sync/internal/platform/scheduler"
	"github.com/riskibarqy/esports-sync/internal/usecase"
	"github.com/stretchr/testify/require"
)

const testJobToken = "secret-token"

type fakeScheduler struct {
	mu        sync.Mutex
	triggered []string
	entries   []scheduler.Entry
}

func (f *fakeScheduler) Trigger(jobID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggered = append(f.triggered, jobID)
	return nil
}

func (f *fakeScheduler) Entries() []scheduler.Entry {
	return f.entries
}

type routerFixture struct {
	store   *memory.Store
	runner  *usecase.JobRunnerService
	handler http.Handler
}

func newRouterFixture(t *testing.T, jobs JobScheduler) routerFixture {
	t.Helper()

	store := memory.NewStore()
	leagueRepo := memory.NewLeagueRepository(store)
	tournamentRepo := memory.NewTournamentRepository(store)
	ctx := context.Background()

	require.NoError(t, leagueRepo.UpsertMany(ctx, []league.League{
		{ID: "98767991299243165", Slug: "lcs", Name: "LCS", Region: "NORTH AMERICA", Priority: 2},
		{ID: "98767991302996019", Slug: "lec", Name: "LEC", Region: "EMEA", Priority: 1},
	}))
	require.NoError(t, tournamentRepo.UpsertMany(ctx, []tournament.Tournament{{
		ID:        "t-1",
		Slug:      "lec_spring_2026",
		LeagueID:  "98767991302996019",
		StartDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
	}}))
	gameDataRepo := memory.NewGameDataRepository(store)
	require.NoError(t, gameDataRepo.UpsertMetadata(ctx, []gamedata.Metadata{
		{GameID: "g-1", ParticipantID: 1, PlayerID: "p-1", Side: gamedata.SideBlue},
		{GameID: "g-1", ParticipantID: 6, PlayerID: "p-6", Side: gamedata.SideRed},
	}))
	require.NoError(t, gameDataRepo.UpsertStats(ctx, []gamedata.Stats{
		{GameID: "g-1", ParticipantID: 1, Kills: 3},
		{GameID: "g-1", ParticipantID: 6, Kills: 1},
	}))

	runner := usecase.NewJobRunnerService(
		memory.NewJobDispatchRepository(store),
		nil,
		resilience.RetryPolicy{MaxAttempts: 1},
		logging.NewNop(),
	)

	handler := NewHandler(
		usecase.NewLeagueService(leagueRepo, tournamentRepo),
		usecase.NewPlayerGameDataService(gameDataRepo),
		runner,
		jobs,
		logging.NewNop(),
	)

	return routerFixture{
		store:   store,
		runner:  runner,
		handler: NewRouter(handler, logging.NewNop(), []string{"*"}, testJobToken),
	}
}

func (f routerFixture) do(t *testing.T, method, path, body string, internal bool) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if internal {
		req.Header.Set("X-Internal-Job-Token", testJobToken)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	var envelope map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestRouter_ListLeaguesOrderedByPriority(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t, nil)
	rec, body := f.do(t, http.MethodGet, "/v1/leagues", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}

	items, _ := body["data"].([]any)
	if len(items) != 2 {
		t.Fatalf("unexpected league count: got=%d want=%d", len(items), 2)
	}
	first, _ := items[0].(map[string]any)
	if first["slug"] != "lec" {
		t.Fatalf("expected lec first, got %v", first["slug"])
	}
	if first["fantasy_available"] != false {
		t.Fatalf("expected fantasy_available=false, got %v", first["fantasy_available"])
	}
}

func TestRouter_ListTournamentsByLeague(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t, nil)
	rec, body := f.do(t, http.MethodGet, "/v1/leagues/98767991302996019/tournaments", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	items, _ := body["data"].([]any)
	if len(items) != 1 {
		t.Fatalf("unexpected tournament count: got=%d want=%d", len(items), 1)
	}
	item, _ := items[0].(map[string]any)
	if item["start_date"] != "2026-01-10" || item["end_date"] != "2026-03-20" {
		t.Fatalf("unexpected dates: %v %v", item["start_date"], item["end_date"])
	}
	if item["status"] == "" {
		t.Fatalf("expected derived status")
	}

	rec, _ = f.do(t, http.MethodGet, "/v1/leagues/unknown/tournaments", "", false)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status for unknown league: got=%d want=%d", rec.Code, http.StatusNotFound)
	}
}

func TestRouter_ListPlayerGameData(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t, nil)
	rec, body := f.do(t, http.MethodGet, "/v1/player-game-data?game_id=g-1&limit=1", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	data, _ := body["data"].(map[string]any)
	items, _ := data["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("unexpected item count: got=%d want=%d", len(items), 1)
	}
	if limit, _ := data["limit"].(float64); limit != 1 {
		t.Fatalf("unexpected limit: got=%v want=1", data["limit"])
	}

	rec, _ = f.do(t, http.MethodGet, "/v1/player-game-data?limit=abc", "", false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status for bad limit: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
	rec, _ = f.do(t, http.MethodGet, "/v1/player-game-data?offset=-1", "", false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status for negative offset: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
}

func TestRouter_InternalRoutesRequireToken(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t, &fakeScheduler{})
	rec, body := f.do(t, http.MethodGet, "/v1/internal/jobs", "", false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusUnauthorized)
	}
	errObj, _ := body["error"].(map[string]any)
	if errObj["status"] != "UNAUTHENTICATED" {
		t.Fatalf("unexpected error status: %v", errObj["status"])
	}
}

func TestRouter_TriggerJobGoesThroughScheduler(t *testing.T) {
	t.Parallel()

	jobs := &fakeScheduler{}
	f := newRouterFixture(t, jobs)
	require.NoError(t, f.runner.Register(usecase.JobFetchLeagues, func(context.Context) (any, error) {
		return nil, nil
	}))

	rec, body := f.do(t, http.MethodPost, "/v1/internal/jobs/fetch_leagues/trigger", "", true)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusAccepted)
	}
	data, _ := body["data"].(map[string]any)
	if data["mode"] != "scheduler" {
		t.Fatalf("unexpected mode: %v", data["mode"])
	}
	if len(jobs.triggered) != 1 || jobs.triggered[0] != usecase.JobFetchLeagues {
		t.Fatalf("unexpected triggered jobs: %v", jobs.triggered)
	}

	rec, _ = f.do(t, http.MethodPost, "/v1/internal/jobs/not_a_job/trigger", "", true)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status for unknown job: got=%d want=%d", rec.Code, http.StatusNotFound)
	}
}

func TestRouter_TriggerJobRunsDetachedWithoutScheduler(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t, nil)
	done := make(chan struct{})
	require.NoError(t, f.runner.Register(usecase.JobFetchSchedule, func(context.Context) (any, error) {
		close(done)
		return map[string]int{"pages": 1}, nil
	}))

	rec, body := f.do(t, http.MethodPost, "/v1/internal/jobs/fetch_schedule/trigger", "", true)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusAccepted)
	}
	data, _ := body["data"].(map[string]any)
	if data["mode"] != "detached" {
		t.Fatalf("unexpected mode: %v", data["mode"])
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("manual job did not run")
	}
}

func TestRouter_ListJobsMergesSchedulerAndLatestRuns(t *testing.T) {
	t.Parallel()

	next := time.Date(2026, 10, 16, 0, 5, 0, 0, time.UTC)
	jobs := &fakeScheduler{entries: []scheduler.Entry{
		{JobID: usecase.JobFetchLeagues, Trigger: "cron(0 5 0 * * *)", NextRun: next},
	}}
	f := newRouterFixture(t, jobs)
	require.NoError(t, f.runner.Register(usecase.JobFetchLeagues, func(context.Context) (any, error) {
		return nil, nil
	}))
	require.NoError(t, f.runner.Run(context.Background(), usecase.JobFetchLeagues, jobscheduler.SourceManual))

	rec, body := f.do(t, http.MethodGet, "/v1/internal/jobs", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	items, _ := body["data"].([]any)
	if len(items) != 1 {
		t.Fatalf("unexpected job count: got=%d want=%d", len(items), 1)
	}
	item, _ := items[0].(map[string]any)
	if item["next_run"] != "2026-10-16T00:05:00Z" {
		t.Fatalf("unexpected next_run: %v", item["next_run"])
	}
	lastRun, _ := item["last_run"].(map[string]any)
	if lastRun["status"] != string(jobscheduler.StatusCompleted) || lastRun["source"] != string(jobscheduler.SourceManual) {
		t.Fatalf("unexpected last run: %v", lastRun)
	}
}

func TestRouter_SetFantasyAvailable(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t, nil)
	path := "/v1/internal/leagues/98767991299243165/fantasy-available"

	rec, body := f.do(t, http.MethodPut, path, `{"available":true}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	data, _ := body["data"].(map[string]any)
	if data["fantasy_available"] != true {
		t.Fatalf("expected fantasy_available=true, got %v", data["fantasy_available"])
	}

	stored, _, err := memory.NewLeagueRepository(f.store).GetByID(context.Background(), "98767991299243165")
	require.NoError(t, err)
	if !stored.FantasyAvailable {
		t.Fatalf("expected stored flag to be set")
	}

	for _, payload := range []string{`{}`, `{"available":true,"extra":1}`, `not json`} {
		rec, _ = f.do(t, http.MethodPut, path, payload, true)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("unexpected status for %q: got=%d want=%d", payload, rec.Code, http.StatusBadRequest)
		}
	}

	rec, _ = f.do(t, http.MethodPut, "/v1/internal/leagues/unknown/fantasy-available", `{"available":false}`, true)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status for unknown league: got=%d want=%d", rec.Code, http.StatusNotFound)
	}
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t, nil)
	rec, _ := f.do(t, http.MethodGet, "/healthz", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
}
