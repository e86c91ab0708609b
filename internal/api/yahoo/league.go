package yahoo

import (
	"context"
	"fmt"

	"github.com/omarshaarawi/fantasydash/internal/models"
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

// GameID resolves a game code such as "nfl" to the numeric id of its
// current season.
func (a *API) GameID(ctx context.Context, gameCode string) (string, error) {
	var content models.FantasyContent
	if err := a.client.Get(ctx, "game/"+gameCode, &content); err != nil {
		return "", fmt.Errorf("fetching game %s: %w", gameCode, err)
	}

	if content.Game == nil || content.Game.GameID == "" {
		return "", fmt.Errorf("fetching game %s: response has no game id", gameCode)
	}
	return content.Game.GameID, nil
}

func (a *API) GetLeagueSettings(ctx context.Context, leagueKey string) (models.Settings, error) {
	league, err := a.getLeague(ctx, fmt.Sprintf("league/%s/settings", leagueKey))
	if err != nil {
		return models.Settings{}, fmt.Errorf("fetching league settings: %w", err)
	}

	return models.Settings{
		LeagueKey:   league.LeagueKey,
		LeagueID:    league.LeagueID,
		Name:        league.Name,
		URL:         league.URL,
		Season:      league.Season,
		ScoringType: league.ScoringType,
		NumTeams:    league.NumTeams,
		CurrentWeek: league.CurrentWeek,
		StartWeek:   league.StartWeek,
		EndWeek:     league.EndWeek,
	}, nil
}

func (a *API) GetStandings(ctx context.Context, leagueKey string) ([]models.TeamStanding, error) {
	league, err := a.getLeague(ctx, fmt.Sprintf("league/%s/standings", leagueKey))
	if err != nil {
		return nil, fmt.Errorf("fetching standings: %w", err)
	}
	if league.Standings == nil {
		return nil, fmt.Errorf("fetching standings: response has no standings")
	}

	standings := make([]models.TeamStanding, len(league.Standings.Teams))
	for i, team := range league.Standings.Teams {
		rank := team.TeamStandings.Rank
		// Preseason standings come back unranked, in league order.
		if rank == 0 {
			rank = i + 1
		}

		standings[i] = models.TeamStanding{
			Rank:          rank,
			TeamKey:       team.TeamKey,
			TeamName:      team.Name,
			Wins:          team.TeamStandings.OutcomeTotals.Wins,
			Losses:        team.TeamStandings.OutcomeTotals.Losses,
			Ties:          team.TeamStandings.OutcomeTotals.Ties,
			WinPercentage: team.TeamStandings.OutcomeTotals.Percentage,
			PointsFor:     team.TeamStandings.PointsFor,
			PointsAgainst: team.TeamStandings.PointsAgainst,
		}
	}

	return standings, nil
}

func (a *API) GetScoreboard(ctx context.Context, leagueKey string, week int) (models.Scoreboard, error) {
	league, err := a.getLeague(ctx, fmt.Sprintf("league/%s/scoreboard;week=%d", leagueKey, week))
	if err != nil {
		return models.Scoreboard{}, fmt.Errorf("fetching scoreboard for week %d: %w", week, err)
	}
	if league.Scoreboard == nil {
		return models.Scoreboard{}, fmt.Errorf("fetching scoreboard for week %d: response has no scoreboard", week)
	}

	scoreboard := models.Scoreboard{
		Week:     league.Scoreboard.Week,
		Matchups: make([]models.Matchup, 0, len(league.Scoreboard.Matchups)),
	}
	if scoreboard.Week == 0 {
		scoreboard.Week = week
	}

	for i, match := range league.Scoreboard.Matchups {
		if len(match.Teams) != 2 {
			return models.Scoreboard{}, fmt.Errorf("matchup %d in week %d has %d teams, expected 2", i+1, week, len(match.Teams))
		}

		matchup := models.Matchup{
			Week:          match.Week,
			Status:        match.Status,
			IsTied:        match.IsTied == 1,
			WinnerTeamKey: match.WinnerTeamKey,
		}
		for j, team := range match.Teams {
			matchup.Teams[j] = models.TeamScore{
				TeamKey:         team.TeamKey,
				TeamName:        team.Name,
				Points:          team.TeamPoints.Total,
				ProjectedPoints: team.TeamProjectedPoints.Total,
			}
		}

		scoreboard.Matchups = append(scoreboard.Matchups, matchup)
	}

	return scoreboard, nil
}

func (a *API) getLeague(ctx context.Context, resource string) (*models.LeagueResponse, error) {
	var content models.FantasyContent
	if err := a.client.Get(ctx, resource, &content); err != nil {
		return nil, err
	}
	if content.League == nil {
		return nil, fmt.Errorf("response has no league")
	}
	return content.League, nil
}
