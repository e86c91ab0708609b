package service

import (
	"fmt"
	"strings"

	"github.com/omarshaarawi/fantasydash/internal/models"
)

const StandingsHeader = "--- Current League Standings ---"

func ScoreboardHeader(week int) string {
	return fmt.Sprintf("--- Scoreboard for Week %d ---", week)
}

func StandingLine(team models.TeamStanding) string {
	return fmt.Sprintf("%d. %s (%d-%d-%d) - Points For: %.2f",
		team.Rank, team.TeamName, team.Wins, team.Losses, team.Ties, team.PointsFor)
}

func MatchupLine(m models.Matchup) string {
	return fmt.Sprintf("%s (%.2f) vs. %s (%.2f)",
		m.Teams[0].TeamName, m.Teams[0].Points, m.Teams[1].TeamName, m.Teams[1].Points)
}

// FormatStandings returns the standings section, or "" when there is none.
func FormatStandings(standings []models.TeamStanding) string {
	if len(standings) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(StandingsHeader + "\n")
	for _, team := range standings {
		sb.WriteString(StandingLine(team) + "\n")
	}
	return sb.String()
}

// FormatScoreboard returns the scoreboard section, or "" when it is absent.
func FormatScoreboard(scoreboard *models.Scoreboard) string {
	if scoreboard == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(ScoreboardHeader(scoreboard.Week) + "\n")
	for _, m := range scoreboard.Matchups {
		sb.WriteString(MatchupLine(m) + "\n")
	}
	return sb.String()
}

// Summary is the plain text form of a dashboard used for chat messages.
func Summary(d Dashboard) string {
	var sb strings.Builder
	sb.WriteString(d.LeagueName + "\n")

	for _, notice := range d.Notices {
		sb.WriteString(fmt.Sprintf("[%s] %s\n", notice.Level, notice.Message))
	}

	for _, section := range []string{FormatStandings(d.Standings), FormatScoreboard(d.Scoreboard)} {
		if section != "" {
			sb.WriteString("\n" + section)
		}
	}

	return sb.String()
}
