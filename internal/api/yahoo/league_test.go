package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/omarshaarawi/fantasydash/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFixtureServer serves testdata files keyed by request path.
func newFixtureServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fixture, ok := routes[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		data, err := os.ReadFile(filepath.Join("testdata", fixture))
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/xml")
		if fixture == "error.xml" {
			w.WriteHeader(http.StatusBadRequest)
		}
		w.Write(data)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestAPI(server *httptest.Server) *API {
	return NewAPI(NewClient(server.Client(), server.URL))
}

func TestGameID(t *testing.T) {
	server := newFixtureServer(t, map[string]string{"/game/nfl": "game.xml"})

	gameID, err := newTestAPI(server).GameID(context.Background(), "nfl")
	require.NoError(t, err)
	assert.Equal(t, "449", gameID)
}

func TestGetLeagueSettings(t *testing.T) {
	server := newFixtureServer(t, map[string]string{"/league/449.l.160889/settings": "settings.xml"})

	settings, err := newTestAPI(server).GetLeagueSettings(context.Background(), "449.l.160889")
	require.NoError(t, err)

	assert.Equal(t, models.Settings{
		LeagueKey:   "449.l.160889",
		LeagueID:    "160889",
		Name:        "Sunday Funday",
		URL:         "https://football.fantasysports.yahoo.com/f1/160889",
		Season:      "2024",
		ScoringType: "head",
		NumTeams:    4,
		CurrentWeek: 5,
		StartWeek:   1,
		EndWeek:     17,
	}, settings)
}

func TestGetStandings(t *testing.T) {
	server := newFixtureServer(t, map[string]string{"/league/449.l.160889/standings": "standings.xml"})

	standings, err := newTestAPI(server).GetStandings(context.Background(), "449.l.160889")
	require.NoError(t, err)
	require.Len(t, standings, 4)

	assert.Equal(t, models.TeamStanding{
		Rank:          1,
		TeamKey:       "449.l.160889.t.3",
		TeamName:      "Stairway to Evans",
		Wins:          4,
		WinPercentage: 1,
		PointsFor:     512.38,
		PointsAgainst: 401.10,
	}, standings[0])

	assert.Equal(t, "UGF Pandas", standings[2].TeamName)
	assert.Equal(t, 1, standings[2].Ties)
	assert.Equal(t, 83.5, standings[2].PointsFor)
	assert.Equal(t, 0.375, standings[2].WinPercentage)
	assert.NoError(t, models.ValidateRanks(standings))
}

func TestGetStandings_PreseasonRanksFollowLeagueOrder(t *testing.T) {
	server := newFixtureServer(t, map[string]string{"/league/449.l.160889/standings": "standings_preseason.xml"})

	standings, err := newTestAPI(server).GetStandings(context.Background(), "449.l.160889")
	require.NoError(t, err)
	require.Len(t, standings, 2)

	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, "Coach Dad", standings[0].TeamName)
	assert.Equal(t, 2, standings[1].Rank)
	assert.NoError(t, models.ValidateRanks(standings))
}

func TestGetScoreboard(t *testing.T) {
	server := newFixtureServer(t, map[string]string{"/league/449.l.160889/scoreboard;week=5": "scoreboard.xml"})

	scoreboard, err := newTestAPI(server).GetScoreboard(context.Background(), "449.l.160889", 5)
	require.NoError(t, err)

	assert.Equal(t, 5, scoreboard.Week)
	require.Len(t, scoreboard.Matchups, 2)

	first := scoreboard.Matchups[0]
	assert.Equal(t, "postevent", first.Status)
	assert.False(t, first.IsTied)
	assert.Equal(t, "449.l.160889.t.3", first.WinnerTeamKey)
	assert.Equal(t, models.TeamScore{
		TeamKey:         "449.l.160889.t.3",
		TeamName:        "Stairway to Evans",
		Points:          121.4,
		ProjectedPoints: 110.25,
	}, first.Teams[0])
	assert.Equal(t, "Coach Dad", first.Teams[1].TeamName)
	assert.Equal(t, 98.76, first.Teams[1].Points)

	second := scoreboard.Matchups[1]
	assert.True(t, second.IsTied)
	assert.Equal(t, 83.5, second.Teams[0].Points)
	assert.Equal(t, 83.5, second.Teams[1].Points)
}

func TestGetScoreboard_RejectsMatchupWithoutTwoTeams(t *testing.T) {
	server := newFixtureServer(t, map[string]string{"/league/449.l.160889/scoreboard;week=5": "scoreboard_bye.xml"})

	_, err := newTestAPI(server).GetScoreboard(context.Background(), "449.l.160889", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2")
}

func TestGetLeague_ErrorDescription(t *testing.T) {
	server := newFixtureServer(t, map[string]string{"/league/449.l.999/settings": "error.xml"})

	_, err := newTestAPI(server).GetLeagueSettings(context.Background(), "449.l.999")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "League key 449.l.999 does not exist.", apiErr.Description)
}

func TestGetStandings_WrongResource(t *testing.T) {
	server := newFixtureServer(t, map[string]string{"/league/449.l.160889/standings": "settings.xml"})

	_, err := newTestAPI(server).GetStandings(context.Background(), "449.l.160889")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no standings")
}
