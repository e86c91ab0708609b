package models

import "encoding/xml"

type FantasyContent struct {
	XMLName xml.Name        `xml:"fantasy_content"`
	Game    *GameResponse   `xml:"game"`
	League  *LeagueResponse `xml:"league"`
}

type GameResponse struct {
	GameKey string `xml:"game_key"`
	GameID  string `xml:"game_id"`
	Name    string `xml:"name"`
	Code    string `xml:"code"`
	Season  string `xml:"season"`
}

type LeagueResponse struct {
	LeagueKey   string              `xml:"league_key"`
	LeagueID    string              `xml:"league_id"`
	Name        string              `xml:"name"`
	URL         string              `xml:"url"`
	NumTeams    int                 `xml:"num_teams"`
	ScoringType string              `xml:"scoring_type"`
	CurrentWeek int                 `xml:"current_week"`
	StartWeek   int                 `xml:"start_week"`
	EndWeek     int                 `xml:"end_week"`
	Season      string              `xml:"season"`
	Standings   *StandingsResponse  `xml:"standings"`
	Scoreboard  *ScoreboardResponse `xml:"scoreboard"`
}

type StandingsResponse struct {
	Teams []Team `xml:"teams>team"`
}

type ScoreboardResponse struct {
	Week     int            `xml:"week"`
	Matchups []MatchupScore `xml:"matchups>matchup"`
}

type MatchupScore struct {
	Week          int    `xml:"week"`
	Status        string `xml:"status"`
	IsTied        int    `xml:"is_tied"`
	WinnerTeamKey string `xml:"winner_team_key"`
	Teams         []Team `xml:"teams>team"`
}

type Team struct {
	TeamKey             string        `xml:"team_key"`
	TeamID              string        `xml:"team_id"`
	Name                string        `xml:"name"`
	TeamPoints          TeamPoints    `xml:"team_points"`
	TeamProjectedPoints TeamPoints    `xml:"team_projected_points"`
	TeamStandings       TeamStandings `xml:"team_standings"`
}

type TeamPoints struct {
	CoverageType string  `xml:"coverage_type"`
	Week         int     `xml:"week"`
	Total        float64 `xml:"total"`
}

// Rank is zero when Yahoo sends an empty element before the first week.
type TeamStandings struct {
	Rank          int           `xml:"rank"`
	OutcomeTotals OutcomeTotals `xml:"outcome_totals"`
	PointsFor     float64       `xml:"points_for"`
	PointsAgainst float64       `xml:"points_against"`
}

type OutcomeTotals struct {
	Wins       int     `xml:"wins"`
	Losses     int     `xml:"losses"`
	Ties       int     `xml:"ties"`
	Percentage float64 `xml:"percentage"`
}

type ErrorResponse struct {
	XMLName     xml.Name `xml:"error"`
	Description string   `xml:"description"`
}
