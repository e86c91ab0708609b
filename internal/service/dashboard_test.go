package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/omarshaarawi/fantasydash/internal/api/fantasy"
	"github.com/omarshaarawi/fantasydash/internal/auth"
	"github.com/omarshaarawi/fantasydash/internal/failure"
	"github.com/omarshaarawi/fantasydash/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakeAuth struct {
	err   error
	calls int
}

func (f *fakeAuth) Authenticate(ctx context.Context) (*auth.Session, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	tok := &oauth2.Token{AccessToken: "access", Expiry: time.Now().Add(time.Hour)}
	return auth.NewSession(http.DefaultClient, tok, "GUID"), nil
}

type fakeConnector struct {
	league fantasy.League
	err    error
	calls  int
}

func (f *fakeConnector) GetLeague(ctx context.Context, session *auth.Session, gameCode, leagueID string) (fantasy.League, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.league, nil
}

type fakeLeague struct {
	settings      models.Settings
	settingsErr   error
	standings     []models.TeamStanding
	standingsErr  error
	scoreboard    models.Scoreboard
	scoreboardErr error
	weeks         []int
}

func (f *fakeLeague) Key() string { return "449.l.160889" }

func (f *fakeLeague) Settings(ctx context.Context) (models.Settings, error) {
	return f.settings, f.settingsErr
}

func (f *fakeLeague) CurrentWeek(ctx context.Context) (int, error) {
	return f.settings.CurrentWeek, f.settingsErr
}

func (f *fakeLeague) Standings(ctx context.Context) ([]models.TeamStanding, error) {
	return f.standings, f.standingsErr
}

func (f *fakeLeague) Scoreboard(ctx context.Context, week int) (models.Scoreboard, error) {
	f.weeks = append(f.weeks, week)
	return f.scoreboard, f.scoreboardErr
}

func sampleStandings() []models.TeamStanding {
	return []models.TeamStanding{
		{Rank: 1, TeamKey: "449.l.160889.t.3", TeamName: "Stairway to Evans", Wins: 4, PointsFor: 512.38},
		{Rank: 2, TeamKey: "449.l.160889.t.1", TeamName: "Coach Dad", Wins: 3, Losses: 1, PointsFor: 470.02},
		{Rank: 3, TeamKey: "449.l.160889.t.4", TeamName: "UGF Pandas", Wins: 1, Losses: 2, Ties: 1, PointsFor: 83.5},
	}
}

func sampleScoreboard() models.Scoreboard {
	return models.Scoreboard{
		Week: 5,
		Matchups: []models.Matchup{
			{Week: 5, Teams: [2]models.TeamScore{
				{TeamKey: "449.l.160889.t.3", TeamName: "Stairway to Evans", Points: 121.4},
				{TeamKey: "449.l.160889.t.1", TeamName: "Coach Dad", Points: 98.76},
			}},
		},
	}
}

func healthyLeague() *fakeLeague {
	return &fakeLeague{
		settings:   models.Settings{Name: "Sunday Funday", CurrentWeek: 5},
		standings:  sampleStandings(),
		scoreboard: sampleScoreboard(),
	}
}

func newTestService(a Authenticator, c LeagueConnector, opts Options) (*DashboardService, *bytes.Buffer) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	return NewDashboardService(a, c, opts, logger), &logs
}

func errorCount(logs *bytes.Buffer) int {
	return strings.Count(logs.String(), "level=ERROR")
}

func TestLoad_Success(t *testing.T) {
	league := healthyLeague()
	svc, logs := newTestService(&fakeAuth{}, &fakeConnector{league: league}, Options{GameCode: "nfl", LeagueID: "160889"})

	d := svc.Load(context.Background())

	assert.True(t, d.Connected())
	assert.Empty(t, d.Notices)
	assert.Equal(t, "Sunday Funday", d.LeagueName)
	assert.Equal(t, 5, d.Week)
	assert.Len(t, d.Standings, 3)
	require.NotNil(t, d.Scoreboard)
	assert.Len(t, d.Scoreboard.Matchups, 1)
	assert.Equal(t, []int{5}, league.weeks)
	assert.Equal(t, 0, errorCount(logs))
}

func TestLoad_AuthFailureStopsPipeline(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"missing credentials", failure.New(failure.KindCredentialsMissing, "authenticate", errors.New("no such file"))},
		{"rejected refresh", failure.New(failure.KindAuthFailure, "authenticate", errors.New("invalid_grant"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			connector := &fakeConnector{league: healthyLeague()}
			svc, _ := newTestService(&fakeAuth{err: tt.err}, connector, Options{})

			d := svc.Load(context.Background())

			assert.False(t, d.Connected())
			assert.Equal(t, 0, connector.calls)
			assert.Equal(t, DefaultLeagueName, d.LeagueName)
			require.Len(t, d.Notices, 1)
			assert.Equal(t, "danger", d.Notices[0].Level)
			assert.Equal(t, authFailedMessage, d.Notices[0].Message)
			assert.Nil(t, d.Settings)
			assert.Nil(t, d.Scoreboard)
		})
	}
}

func TestLoad_ConnectFailure(t *testing.T) {
	connector := &fakeConnector{err: failure.New(failure.KindConnectFailure, "get league", errors.New("league not found"))}
	svc, _ := newTestService(&fakeAuth{}, connector, Options{})

	d := svc.Load(context.Background())

	assert.False(t, d.Connected())
	assert.Equal(t, failure.KindConnectFailure, failure.KindOf(d.Err))
	require.Len(t, d.Notices, 1)
	assert.Equal(t, "warning", d.Notices[0].Level)
	assert.Equal(t, connectFailedMessage, d.Notices[0].Message)
}

func TestLoad_ScoreboardFailureKeepsStandings(t *testing.T) {
	league := healthyLeague()
	league.scoreboardErr = errors.New("503 service unavailable")
	svc, logs := newTestService(&fakeAuth{}, &fakeConnector{league: league}, Options{})

	d := svc.Load(context.Background())

	assert.True(t, d.Connected())
	assert.Nil(t, d.Scoreboard)
	assert.Len(t, d.Standings, 3)
	assert.Equal(t, "Sunday Funday", d.LeagueName)
	require.Len(t, d.Notices, 1)
	assert.Equal(t, "warning", d.Notices[0].Level)
	assert.Equal(t, scoreboardFailedMessage, d.Notices[0].Message)
	assert.Equal(t, 1, errorCount(logs))
}

func TestLoad_EmptyScoreboardIsNotAFailure(t *testing.T) {
	league := healthyLeague()
	league.scoreboard = models.Scoreboard{Week: 5}
	svc, _ := newTestService(&fakeAuth{}, &fakeConnector{league: league}, Options{})

	d := svc.Load(context.Background())

	require.NotNil(t, d.Scoreboard)
	assert.Empty(t, d.Scoreboard.Matchups)
	assert.Empty(t, d.Notices)
}

func TestLoad_SettingsFailureFallsBack(t *testing.T) {
	league := healthyLeague()
	league.settingsErr = errors.New("timeout")
	svc, logs := newTestService(&fakeAuth{}, &fakeConnector{league: league}, Options{Week: 3})

	d := svc.Load(context.Background())

	assert.Nil(t, d.Settings)
	assert.Equal(t, DefaultLeagueName, d.LeagueName)
	assert.Equal(t, 3, d.Week)
	assert.Equal(t, []int{3}, league.weeks)
	assert.Equal(t, 1, errorCount(logs))
}

func TestLoad_NoWeekSkipsScoreboard(t *testing.T) {
	league := healthyLeague()
	league.settingsErr = errors.New("timeout")
	svc, _ := newTestService(&fakeAuth{}, &fakeConnector{league: league}, Options{})

	d := svc.Load(context.Background())

	assert.Equal(t, 0, d.Week)
	assert.Empty(t, league.weeks)
	assert.Nil(t, d.Scoreboard)
	assert.Len(t, d.Standings, 3)
}

func TestLoad_WeekOverride(t *testing.T) {
	league := healthyLeague()
	svc, _ := newTestService(&fakeAuth{}, &fakeConnector{league: league}, Options{Week: 2})

	d := svc.Load(context.Background())

	assert.Equal(t, 2, d.Week)
	assert.Equal(t, []int{2}, league.weeks)
}

func TestLoad_HighlightsMyTeam(t *testing.T) {
	svc, _ := newTestService(&fakeAuth{}, &fakeConnector{league: healthyLeague()}, Options{MyTeam: "coach dad"})

	d := svc.Load(context.Background())

	assert.Equal(t, "449.l.160889.t.1", d.HighlightTeamKey)
}

func TestGetStandings(t *testing.T) {
	tests := []struct {
		name      string
		league    *fakeLeague
		wantLen   int
		wantError int
	}{
		{"returns standings", &fakeLeague{standings: sampleStandings()}, 3, 0},
		{"fetch error degrades to empty", &fakeLeague{standingsErr: errors.New("boom")}, 0, 1},
		{"broken ranks degrade to empty", &fakeLeague{standings: []models.TeamStanding{{Rank: 1}, {Rank: 1}}}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, logs := newTestService(&fakeAuth{}, &fakeConnector{}, Options{})

			standings := svc.GetStandings(context.Background(), tt.league)

			assert.NotNil(t, standings)
			assert.Len(t, standings, tt.wantLen)
			assert.Equal(t, tt.wantError, errorCount(logs))
		})
	}
}

func TestGetScoreboard(t *testing.T) {
	t.Run("returns scoreboard", func(t *testing.T) {
		svc, logs := newTestService(&fakeAuth{}, &fakeConnector{}, Options{})

		scoreboard := svc.GetScoreboard(context.Background(), &fakeLeague{scoreboard: sampleScoreboard()}, 5)

		require.NotNil(t, scoreboard)
		assert.Equal(t, 5, scoreboard.Week)
		assert.Equal(t, 0, errorCount(logs))
	})

	t.Run("failure is absent", func(t *testing.T) {
		svc, logs := newTestService(&fakeAuth{}, &fakeConnector{}, Options{})

		scoreboard := svc.GetScoreboard(context.Background(), &fakeLeague{scoreboardErr: errors.New("boom")}, 5)

		assert.Nil(t, scoreboard)
		assert.Equal(t, 1, errorCount(logs))
	})
}

func TestGetSettings(t *testing.T) {
	svc, logs := newTestService(&fakeAuth{}, &fakeConnector{}, Options{})

	settings := svc.GetSettings(context.Background(), &fakeLeague{settings: models.Settings{Name: "Sunday Funday"}})
	require.NotNil(t, settings)
	assert.Equal(t, "Sunday Funday", settings.Name)

	assert.Nil(t, svc.GetSettings(context.Background(), &fakeLeague{settingsErr: errors.New("boom")}))
	assert.Equal(t, 1, errorCount(logs))
}
