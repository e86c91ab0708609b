package models

import (
	"fmt"
	"sort"
)

type Settings struct {
	LeagueKey   string
	LeagueID    string
	Name        string
	URL         string
	Season      string
	ScoringType string
	NumTeams    int
	CurrentWeek int
	StartWeek   int
	EndWeek     int
}

type TeamStanding struct {
	Rank          int
	TeamKey       string
	TeamName      string
	Wins          int
	Losses        int
	Ties          int
	WinPercentage float64
	PointsFor     float64
	PointsAgainst float64
}

type TeamScore struct {
	TeamKey         string
	TeamName        string
	Points          float64
	ProjectedPoints float64
}

type Matchup struct {
	Week          int
	Status        string
	IsTied        bool
	WinnerTeamKey string
	Teams         [2]TeamScore
}

type Scoreboard struct {
	Week     int
	Matchups []Matchup
}

// ValidateRanks checks that the ranks of one standings fetch are a
// permutation of 1..N.
func ValidateRanks(standings []TeamStanding) error {
	ranks := make([]int, len(standings))
	for i, team := range standings {
		ranks[i] = team.Rank
	}
	sort.Ints(ranks)

	for i, rank := range ranks {
		if rank != i+1 {
			return fmt.Errorf("invalid standings ranks: expected %d, got %d", i+1, rank)
		}
	}
	return nil
}
