package lolesports

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/esports-sync/internal/domain/game"
	"github.com/riskibarqy/esports-sync/internal/platform/resilience"
	"github.com/riskibarqy/esports-sync/internal/usecase"
)

func newTestClient(t *testing.T, mux *http.ServeMux, breaker resilience.CircuitBreakerConfig) *Client {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return NewClient(ClientConfig{
		HTTPClient:       srv.Client(),
		BaseURL:          srv.URL + "/gw",
		LiveStatsBaseURL: srv.URL + "/live",
		APIKey:           "test-key",
		CircuitBreaker:   breaker,
	})
}

func TestClient_GetLeaguesSendsProviderHeaders(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /gw/getLeagues", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("unexpected api key header: %q", got)
		}
		if got := r.Header.Get("Origin"); got != defaultOrigin {
			t.Errorf("unexpected origin header: %q", got)
		}
		if got := r.Header.Get("Referer"); got != defaultOrigin+"/" {
			t.Errorf("unexpected referer header: %q", got)
		}
		if got := r.URL.Query().Get("hl"); got != "en-US" {
			t.Errorf("unexpected locale: %q", got)
		}
		fmt.Fprint(w, `{"data":{"leagues":[{"id":"98767991302996019","slug":"lec","name":"LEC","region":"EMEA","image":"lec.png","priority":3}]}}`)
	})
	client := newTestClient(t, mux, resilience.CircuitBreakerConfig{})

	leagues, err := client.GetLeagues(context.Background())
	if err != nil {
		t.Fatalf("get leagues: %v", err)
	}
	if len(leagues) != 1 {
		t.Fatalf("unexpected league count: got=%d want=1", len(leagues))
	}
	if leagues[0].Slug != "lec" || leagues[0].Priority != 3 || leagues[0].FantasyAvailable {
		t.Fatalf("unexpected league: %+v", leagues[0])
	}
}

func TestClient_UnexpectedStatusCarriesExpectedActualAndURL(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /gw/getLeagues", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /gw/getTeams", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})
	client := newTestClient(t, mux, resilience.CircuitBreakerConfig{})

	_, err := client.GetLeagues(context.Background())
	statusErr, ok := IsUnexpectedStatus(err)
	if !ok {
		t.Fatalf("expected unexpected status error for 204 on leagues, got %v", err)
	}
	if statusErr.Actual != http.StatusNoContent || len(statusErr.Expected) != 1 || statusErr.Expected[0] != http.StatusOK {
		t.Fatalf("unexpected status error: %+v", statusErr)
	}
	if !strings.Contains(statusErr.URL, "/gw/getLeagues") {
		t.Fatalf("unexpected url: %s", statusErr.URL)
	}

	_, err = client.GetTeams(context.Background())
	statusErr, ok = IsUnexpectedStatus(err)
	if !ok || statusErr.Actual != http.StatusBadGateway || !statusErr.Transient() {
		t.Fatalf("expected transient 502 status error, got %v", err)
	}
	if !strings.Contains(statusErr.Body, "upstream exploded") {
		t.Fatalf("expected abbreviated body, got %q", statusErr.Body)
	}
}

func TestClient_EventDetailsAcceptsNoContent(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /gw/getEventDetails", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") == "bye" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		fmt.Fprint(w, `{"data":{"event":{"id":"m-1","tournament":{"id":"t-9"},"match":{"games":[
			{"id":"g-1","number":1,"state":"completed"},
			{"id":"g-2","number":2,"state":"inProgress"},
			{"id":"g-3","number":3,"state":"mystery"}
		]}}}}`)
	})
	client := newTestClient(t, mux, resilience.CircuitBreakerConfig{})

	games, err := client.GetGamesFromEventDetails(context.Background(), "bye")
	if err != nil {
		t.Fatalf("get games for bye: %v", err)
	}
	if len(games) != 0 {
		t.Fatalf("expected no games for bye, got %d", len(games))
	}

	games, err = client.GetGamesFromEventDetails(context.Background(), "m-1")
	if err != nil {
		t.Fatalf("get games: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("unexpected game count: got=%d want=2", len(games))
	}
	if games[1].State != game.StateInProgress || games[1].MatchID != "m-1" || !games[1].HasGameData {
		t.Fatalf("unexpected game: %+v", games[1])
	}

	tournamentID, err := client.GetTournamentIDForMatch(context.Background(), "m-1")
	if err != nil {
		t.Fatalf("get tournament id: %v", err)
	}
	if tournamentID != "t-9" {
		t.Fatalf("unexpected tournament id: %s", tournamentID)
	}
}

func TestClient_GetScheduleKeepsOnlyMatchEvents(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /gw/getSchedule", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("pageToken"); got != "b2xkZXI=" {
			t.Errorf("unexpected page token: %q", got)
		}
		fmt.Fprint(w, `{"data":{"schedule":{"pages":{"older":"b2xkZXIy","newer":null},"events":[
			{"startTime":"2026-03-01T17:00:00Z","type":"match","blockName":"Week 1","league":{"slug":"lec"},
			 "match":{"id":"m-1","strategy":{"type":"bestOf","count":3},"teams":[{"name":"G2 Esports"},{"name":"Fnatic"}]}},
			{"startTime":"2026-03-01T19:00:00Z","type":"show","blockName":"Week 1","league":{"slug":"lec"}}
		]}}}`)
	})
	client := newTestClient(t, mux, resilience.CircuitBreakerConfig{})

	page, err := client.GetSchedule(context.Background(), "b2xkZXI=")
	if err != nil {
		t.Fatalf("get schedule: %v", err)
	}
	if page.OlderToken != "b2xkZXIy" || page.NewerToken != "" {
		t.Fatalf("unexpected tokens: %+v", page)
	}
	if len(page.Matches) != 1 {
		t.Fatalf("unexpected match count: got=%d want=1", len(page.Matches))
	}
	m := page.Matches[0]
	if m.Team1Name != "G2 Esports" || m.Team2Name != "Fnatic" || m.StrategyCount != 3 || !m.HasGames {
		t.Fatalf("unexpected match: %+v", m)
	}
	if !m.StartTime.Equal(time.Date(2026, 3, 1, 17, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start time: %s", m.StartTime)
	}
}

func TestClient_GetGamesChunksIDs(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /gw/getGames", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		ids := strings.Split(r.URL.Query().Get("id"), ",")
		parts := make([]string, 0, len(ids))
		for _, id := range ids {
			parts = append(parts, fmt.Sprintf(`{"id":%q,"state":"completed"}`, id))
		}
		fmt.Fprintf(w, `{"data":{"games":[%s]}}`, strings.Join(parts, ","))
	})
	client := newTestClient(t, mux, resilience.CircuitBreakerConfig{})

	ids := make([]game.ID, 0, 120)
	for i := 0; i < 120; i++ {
		ids = append(ids, game.ID(fmt.Sprintf("g-%d", i)))
	}

	states, err := client.GetGames(context.Background(), ids)
	if err != nil {
		t.Fatalf("get games: %v", err)
	}
	if len(states) != 120 {
		t.Fatalf("unexpected state count: got=%d want=120", len(states))
	}
	if got := requests.Load(); got != 3 {
		t.Fatalf("unexpected request count: got=%d want=3", got)
	}
}

func TestClient_CircuitBreakerOpensOnUpstreamFailures(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /gw/getLeagues", func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	client := newTestClient(t, mux, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
	})

	if _, err := client.GetLeagues(context.Background()); err == nil {
		t.Fatalf("expected first call to fail")
	}
	_, err := client.GetLeagues(context.Background())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable, got %v", err)
	}
	if got := requests.Load(); got != 1 {
		t.Fatalf("unexpected request count: got=%d want=1", got)
	}
}

func TestClient_MalformedPayloadIsClassified(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /gw/getLeagues", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data":{"leagues":[{"id":`)
	})
	client := newTestClient(t, mux, resilience.CircuitBreakerConfig{})

	_, err := client.GetLeagues(context.Background())
	if !errors.Is(err, usecase.ErrMalformedPayload) {
		t.Fatalf("expected malformed payload error, got %v", err)
	}
	if _, ok := IsUnexpectedStatus(err); ok {
		t.Fatalf("decode failure must not look like a status error")
	}
}
