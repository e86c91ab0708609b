package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/omarshaarawi/fantasydash/internal/api/fantasy"
	"github.com/omarshaarawi/fantasydash/internal/auth"
	"github.com/omarshaarawi/fantasydash/internal/failure"
	"github.com/omarshaarawi/fantasydash/internal/models"
	"github.com/omarshaarawi/fantasydash/internal/observability"
)

const DefaultLeagueName = "Fantasy Football Dashboard"

const (
	authFailedMessage       = "Authentication with Yahoo failed. Please ensure your credentials are set up correctly and try again."
	connectFailedMessage    = "Successfully authenticated, but could not connect to the league. Please verify your LEAGUE_ID."
	scoreboardFailedMessage = "Successfully authenticated, pull scoreboard data failed. Please try again later."
)

type Authenticator interface {
	Authenticate(ctx context.Context) (*auth.Session, error)
}

type LeagueConnector interface {
	GetLeague(ctx context.Context, session *auth.Session, gameCode, leagueID string) (fantasy.League, error)
}

type Options struct {
	GameCode string
	LeagueID string
	// Week overrides the league's current week when non-zero.
	Week   int
	MyTeam string
}

type Notice struct {
	Level   string
	Message string
}

// Dashboard is everything one pipeline run produced. Settings and
// Scoreboard are nil when absent; an empty Scoreboard is a week without
// matchups.
type Dashboard struct {
	LeagueName       string
	Settings         *models.Settings
	Standings        []models.TeamStanding
	Scoreboard       *models.Scoreboard
	Week             int
	HighlightTeamKey string
	Notices          []Notice
	// Err is the auth or connect failure that stopped the run.
	Err error
}

func (d Dashboard) Connected() bool {
	return d.Err == nil
}

type DashboardService struct {
	auth      Authenticator
	connector LeagueConnector
	opts      Options
	logger    *slog.Logger
}

func NewDashboardService(authenticator Authenticator, connector LeagueConnector, opts Options, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		auth:      authenticator,
		connector: connector,
		opts:      opts,
		logger:    logger,
	}
}

// Load runs authenticate, connect and the three fetches in sequence. It
// never fails: every problem ends up in the returned Dashboard.
func (s *DashboardService) Load(ctx context.Context) Dashboard {
	d := Dashboard{LeagueName: DefaultLeagueName}

	session, err := s.auth.Authenticate(ctx)
	observability.RecordStage("authenticate", err == nil)
	if err != nil {
		d.Err = err
		d.Notices = append(d.Notices, Notice{Level: failure.KindOf(err).Severity(), Message: authFailedMessage})
		return d
	}

	league, err := s.connector.GetLeague(ctx, session, s.opts.GameCode, s.opts.LeagueID)
	observability.RecordStage("connect", err == nil)
	if err != nil {
		d.Err = err
		d.Notices = append(d.Notices, Notice{Level: failure.KindConnectFailure.Severity(), Message: connectFailedMessage})
		return d
	}

	d.Settings = s.GetSettings(ctx, league)
	if d.Settings != nil && d.Settings.Name != "" {
		d.LeagueName = d.Settings.Name
	}

	d.Week = s.resolveWeek(ctx, league, d.Settings)
	s.logger.Info("Fetching league data", "league", d.LeagueName, "week", d.Week)

	d.Standings = s.GetStandings(ctx, league)
	if d.Week > 0 {
		d.Scoreboard = s.GetScoreboard(ctx, league, d.Week)
	}

	if d.Scoreboard == nil {
		d.Notices = append(d.Notices, Notice{Level: failure.KindFetchFailure.Severity(), Message: scoreboardFailedMessage})
	} else {
		s.logger.Info("Standings and scoreboard fetched", "teams", len(d.Standings), "matchups", len(d.Scoreboard.Matchups), "week", d.Week)
	}

	if s.opts.MyTeam != "" {
		if team, ok := FindTeam(d.Standings, s.opts.MyTeam); ok {
			d.HighlightTeamKey = team.TeamKey
		}
	}

	return d
}

// GetStandings returns an empty slice when the fetch fails or the ranks
// are not a permutation of 1..N.
func (s *DashboardService) GetStandings(ctx context.Context, league fantasy.League) []models.TeamStanding {
	s.logger.Info("Fetching standings")

	start := time.Now()
	standings, err := league.Standings(ctx)
	if err == nil {
		err = models.ValidateRanks(standings)
	}
	s.observe("standings", start, err)

	if err != nil {
		s.logger.Error("Could not fetch standings", "error", err)
		return []models.TeamStanding{}
	}
	return standings
}

// GetScoreboard returns nil when the fetch fails, so callers can tell a
// failure from a week without matchups.
func (s *DashboardService) GetScoreboard(ctx context.Context, league fantasy.League, week int) *models.Scoreboard {
	s.logger.Info("Fetching scoreboard", "week", week)

	start := time.Now()
	scoreboard, err := league.Scoreboard(ctx, week)
	s.observe("scoreboard", start, err)

	if err != nil {
		s.logger.Error("Could not fetch scoreboard", "week", week, "error", err)
		return nil
	}
	return &scoreboard
}

func (s *DashboardService) GetSettings(ctx context.Context, league fantasy.League) *models.Settings {
	start := time.Now()
	settings, err := league.Settings(ctx)
	s.observe("settings", start, err)

	if err != nil {
		s.logger.Error("Could not fetch league settings", "error", err)
		return nil
	}
	return &settings
}

func (s *DashboardService) resolveWeek(ctx context.Context, league fantasy.League, settings *models.Settings) int {
	if s.opts.Week > 0 {
		return s.opts.Week
	}
	if settings != nil && settings.CurrentWeek > 0 {
		return settings.CurrentWeek
	}

	week, err := league.CurrentWeek(ctx)
	if err != nil {
		s.logger.Error("Could not determine current week", "error", err)
		return 0
	}
	return week
}

func (s *DashboardService) observe(kind string, start time.Time, err error) {
	observability.FetchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	observability.RecordStage(kind, err == nil)
}
