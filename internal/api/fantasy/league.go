package fantasy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/omarshaarawi/fantasydash/internal/api/yahoo"
	"github.com/omarshaarawi/fantasydash/internal/auth"
	"github.com/omarshaarawi/fantasydash/internal/failure"
	"github.com/omarshaarawi/fantasydash/internal/models"
)

// League is a handle on one league. Every call goes to the remote API;
// nothing is cached.
type League interface {
	Key() string
	Settings(ctx context.Context) (models.Settings, error)
	CurrentWeek(ctx context.Context) (int, error)
	Standings(ctx context.Context) ([]models.TeamStanding, error)
	Scoreboard(ctx context.Context, week int) (models.Scoreboard, error)
}

type Connector struct {
	baseURL string
	logger  *slog.Logger
}

func NewConnector(baseURL string, logger *slog.Logger) *Connector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Connector{baseURL: baseURL, logger: logger}
}

func LeagueKey(gameID, leagueID string) string {
	return fmt.Sprintf("%s.l.%s", gameID, leagueID)
}

// GetLeague resolves the game code to this season's game id and returns a
// handle on the league. A missing or invalid session fails without any
// remote call.
func (c *Connector) GetLeague(ctx context.Context, session *auth.Session, gameCode, leagueID string) (League, error) {
	const op = "get league"

	if !session.Valid() {
		return nil, failure.New(failure.KindConnectFailure, op, errors.New("no valid session"))
	}

	api := yahoo.NewAPI(yahoo.NewClient(session.HTTPClient(), c.baseURL))

	gameID, err := api.GameID(ctx, gameCode)
	if err != nil {
		c.logger.Error("Failed to get league", "league_id", leagueID, "error", err)
		return nil, failure.New(failure.KindConnectFailure, op, err)
	}

	l := &league{api: api, key: LeagueKey(gameID, leagueID)}

	settings, err := l.Settings(ctx)
	if err != nil {
		c.logger.Error("Failed to get league. Please ensure LEAGUE_ID is correct", "league_key", l.key, "error", err)
		return nil, failure.New(failure.KindConnectFailure, op, err)
	}

	c.logger.Info("Successfully connected to league", "league", settings.Name, "league_key", l.key)
	return l, nil
}

type league struct {
	api *yahoo.API
	key string
}

func (l *league) Key() string {
	return l.key
}

func (l *league) Settings(ctx context.Context) (models.Settings, error) {
	return l.api.GetLeagueSettings(ctx, l.key)
}

func (l *league) CurrentWeek(ctx context.Context) (int, error) {
	settings, err := l.api.GetLeagueSettings(ctx, l.key)
	if err != nil {
		return 0, fmt.Errorf("fetching current week: %w", err)
	}
	return settings.CurrentWeek, nil
}

func (l *league) Standings(ctx context.Context) ([]models.TeamStanding, error) {
	return l.api.GetStandings(ctx, l.key)
}

func (l *league) Scoreboard(ctx context.Context, week int) (models.Scoreboard, error) {
	return l.api.GetScoreboard(ctx, l.key, week)
}
