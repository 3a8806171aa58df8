package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hlcomp/hanabi-competitions/internal/domain/game"
	"github.com/hlcomp/hanabi-competitions/internal/domain/result"
	"github.com/hlcomp/hanabi-competitions/internal/domain/series"
	"github.com/hlcomp/hanabi-competitions/internal/domain/standings"
	"github.com/hlcomp/hanabi-competitions/internal/domain/variant"
	competitionmock "github.com/hlcomp/hanabi-competitions/internal/mocks/domain/competition"
	gamemock "github.com/hlcomp/hanabi-competitions/internal/mocks/domain/game"
	resultmock "github.com/hlcomp/hanabi-competitions/internal/mocks/domain/result"
	seriesmock "github.com/hlcomp/hanabi-competitions/internal/mocks/domain/series"
	standingsmock "github.com/hlcomp/hanabi-competitions/internal/mocks/domain/standings"
	variantmock "github.com/hlcomp/hanabi-competitions/internal/mocks/domain/variant"
	"github.com/hlcomp/hanabi-competitions/internal/platform/logging"
	"github.com/hlcomp/hanabi-competitions/internal/platform/resilience"
	"github.com/hlcomp/hanabi-competitions/internal/usecase"
	"github.com/stretchr/testify/mock"
)

type routerFixture struct {
	competitions *competitionmock.Repository
	source       *standingsmock.Source
	games        *gamemock.Repository
	variants     *variantmock.Repository
	series       *seriesmock.Repository
	results      *resultmock.Repository
	router       http.Handler
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	f := &routerFixture{
		competitions: competitionmock.NewRepository(t),
		source:       standingsmock.NewSource(t),
		games:        gamemock.NewRepository(t),
		variants:     variantmock.NewRepository(t),
		series:       seriesmock.NewRepository(t),
		results:      resultmock.NewRepository(t),
	}

	standingsService := usecase.NewStandingsService(f.competitions, f.source)
	competitionService := usecase.NewCompetitionService(f.competitions)
	handler := NewHandler(
		standingsService,
		competitionService,
		usecase.NewGameService(f.games),
		usecase.NewVariantService(f.variants),
		usecase.NewSeriesService(f.series, standingsService, 2, 8),
		usecase.NewResultService(f.results),
		usecase.NewIndexService(competitionService),
		logging.NewNop(),
	)
	f.router = NewRouter(handler, RouterConfig{
		Admin:        testCredentials(t),
		Logger:       logging.NewNop(),
		BodyMaxBytes: 1 << 20,
	})
	return f
}

func (f *routerFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func adminRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", basicAuth("referee", "s3cret"))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func twoPlayerRows() []standings.FlatResult {
	return []standings.FlatResult{
		{PlayerName: "bob", BaseSeedName: "s1", SiteGameID: 100, Score: 25, Turns: 60, SeedMatchpoints: 2, SumMP: 2, FractionalMP: 1, FinalRank: 1, ReplayURL: "https://hanab.live/replay/100"},
		{PlayerName: "alice", BaseSeedName: "s1", SiteGameID: 100, Score: 25, Turns: 60, SeedMatchpoints: 2, SumMP: 2, FractionalMP: 1, FinalRank: 1, ReplayURL: "https://hanab.live/replay/100"},
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestGetCompetitionStandings_RawJSON(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	f.competitions.On("TeamSize", mock.Anything, "comp-a").Return(2, true, nil).Once()
	f.source.On("ListByCompetition", mock.Anything, "comp-a").Return(twoPlayerRows(), nil).Once()

	rec := f.do(httptest.NewRequest(http.MethodGet, "/competitions/comp-a?raw=true", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body["data"])
	}
	for _, key := range []string{"base_seed_names", "team_size", "team_results"} {
		if _, ok := data[key]; !ok {
			t.Fatalf("expected %q in payload: %v", key, data)
		}
	}
	teams, _ := data["team_results"].([]any)
	if len(teams) != 1 {
		t.Fatalf("expected one team, got %v", data["team_results"])
	}
	team, _ := teams[0].(map[string]any)
	for _, key := range []string{"players", "final_rank", "fractional_mp", "sum_mp", "game_results"} {
		if _, ok := team[key]; !ok {
			t.Fatalf("expected %q in team: %v", key, team)
		}
	}
	players, _ := team["players"].([]any)
	if len(players) != 2 || players[0] != "alice" || players[1] != "bob" {
		t.Fatalf("unexpected players: %v", team["players"])
	}
}

func TestGetCompetitionStandings_HTMLByDefault(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	f.competitions.On("TeamSize", mock.Anything, "comp-a").Return(2, true, nil).Once()
	f.source.On("ListByCompetition", mock.Anything, "comp-a").Return(twoPlayerRows(), nil).Once()

	rec := f.do(httptest.NewRequest(http.MethodGet, "/competitions/comp-a", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<table>") || !strings.Contains(rec.Body.String(), "alice") {
		t.Fatalf("expected html table, got %s", rec.Body.String())
	}
}

func TestGetCompetitionStandings_UnknownIsBadRequest(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	f.competitions.On("TeamSize", mock.Anything, "nope").Return(0, false, nil).Once()

	rec := f.do(httptest.NewRequest(http.MethodGet, "/competitions/nope?raw=true", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestGetCompetitionStandings_CircuitOpenIsUnavailable(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	f.competitions.On("TeamSize", mock.Anything, "busy").Return(0, false, resilience.ErrCircuitOpen).Once()

	rec := f.do(httptest.NewRequest(http.MethodGet, "/competitions/busy?raw=true", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
	if got := errorStatus(t, decodeEnvelope(t, rec)); got != "UNAVAILABLE" {
		t.Fatalf("unexpected error status %q", got)
	}
}

func TestGetCompetitionStandings_RosterTooLarge(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	f.competitions.On("TeamSize", mock.Anything, "solo").Return(1, true, nil).Once()
	f.source.On("ListByCompetition", mock.Anything, "solo").Return(twoPlayerRows(), nil).Once()

	rec := f.do(httptest.NewRequest(http.MethodGet, "/competitions/solo?raw=1", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if got := errorStatus(t, decodeEnvelope(t, rec)); got != "INVALID_ARGUMENT" {
		t.Fatalf("unexpected error status %q", got)
	}
}

func TestListResults_StructuredFilters(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	f.results.On("List", mock.Anything, result.Filter{
		PlayerName:  "alice",
		VariantName: "No Variant",
		Limit:       10,
	}).Return([]result.CombinedResult{{CompetitionName: "comp-a", PlayerName: "alice", SiteGameID: 100}}, nil).Once()

	rec := f.do(httptest.NewRequest(http.MethodGet, "/results?raw=true&player_name=alice&variant=No+Variant&limit=10", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data, _ := decodeEnvelope(t, rec)["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("expected one row, got %v", data)
	}
}

func TestListResults_BadLimit(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/competitions/results/flat?limit=many", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestGetSeriesLeaderboard(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	f.series.On("GetByName", mock.Anything, "summer").Return(series.Series{Name: "summer"}, true, nil).Once()
	f.series.On("ListCompetitionNames", mock.Anything, "summer").Return([]string{"comp-a"}, nil).Once()
	f.competitions.On("TeamSize", mock.Anything, "comp-a").Return(2, true, nil).Once()
	f.source.On("ListByCompetition", mock.Anything, "comp-a").Return(twoPlayerRows(), nil).Once()

	rec := f.do(httptest.NewRequest(http.MethodGet, "/series/summer?raw=true&max_num_comps=3", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	rows, _ := data["rows"].([]any)
	if len(rows) != 2 {
		t.Fatalf("expected two player rows, got %v", data["rows"])
	}
}

func TestGetSeriesLeaderboard_BadMaxComps(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/series/summer?max_num_comps=0", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestCreateVariants(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	f.variants.On("CreateBatch", mock.Anything, []variant.Variant{{ID: 0, Name: "No Variant"}}).Return(nil).Once()

	rec := f.do(adminRequest(http.MethodPost, "/variants", `[{"id":0,"name":"No Variant"}]`))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateVariants_RequiresAuth(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/variants", strings.NewReader(`[{"id":0,"name":"x"}]`))
	if rec := f.do(req); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 without credentials, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/variants", strings.NewReader(`[{"id":0,"name":"x"}]`))
	req.Header.Set("Authorization", basicAuth("referee", "wrong"))
	if rec := f.do(req); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 with wrong password, got %d", rec.Code)
	}
}

func TestCreateVariants_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	rec := f.do(adminRequest(http.MethodPost, "/variants", `[{"id":1,"name":"x","colour":"red"}]`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestCreateCompetitions_Validation(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	rec := f.do(adminRequest(http.MethodPost, "/competitions", `[{"num_players":7,"variant":"No Variant"}]`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestCreateCompetitions(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	f.competitions.On("CreateBatch", mock.Anything, mock.Anything).Return(nil).Once()

	rec := f.do(adminRequest(http.MethodPost, "/competitions", `[{"num_players":2,"variant":"No Variant","series_names":["summer"]}]`))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

const gamesPayload = `[{
	"num_players": 2,
	"variant_id": 0,
	"seeds_games": [{
		"base_seed_name": "hl-comp-2024-06-17-1",
		"games": [{
			"players": %s,
			"game_id": 100,
			"score": 25,
			"turns": 60,
			"datetime_started": "2024-06-10T10:00:00Z",
			"datetime_ended": "2024-06-10T10:20:00Z"
		}]
	}]
}]`

func TestIngestGames(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	f.games.On("StoreBatch", mock.Anything, mock.MatchedBy(func(batches []game.CompetitionGames) bool {
		return len(batches) == 1 && batches[0].Count() == 1 && batches[0].SeedsGames[0].Games[0].SiteGameID == 100
	})).Return(nil).Once()

	body := strings.Replace(gamesPayload, "%s", `["alice","bob"]`, 1)
	rec := f.do(adminRequest(http.MethodPost, "/games", body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestIngestGames_PlayerCountMismatchStoresNothing(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	body := strings.Replace(gamesPayload, "%s", `["alice","bob","carol"]`, 1)
	rec := f.do(adminRequest(http.MethodPost, "/games", body))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if got := errorStatus(t, decodeEnvelope(t, rec)); got != "FAILED_PRECONDITION" {
		t.Fatalf("unexpected error status %q", got)
	}
	f.games.AssertNotCalled(t, "StoreBatch", mock.Anything, mock.Anything)
}

func TestCreateSeries(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	f.series.On("CreateBatch", mock.Anything, []series.Series{{Name: "summer", FirstN: 8, TopN: 5}}).Return(nil).Once()

	rec := f.do(adminRequest(http.MethodPost, "/series", `[{"name":"summer","first_n":8,"top_n":5}]`))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestIndex_RawJSON(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	f.competitions.On("ListNames", mock.Anything).Return([]string{"comp-b", "comp-a"}, nil).Once()
	f.competitions.On("ListActive", mock.Anything, mock.Anything).Return(nil, nil).Once()

	rec := f.do(httptest.NewRequest(http.MethodGet, "/?raw=true", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	names, _ := data["competition_names"].([]any)
	if len(names) != 2 || names[0] != "comp-b" {
		t.Fatalf("unexpected names: %v", data["competition_names"])
	}
}
