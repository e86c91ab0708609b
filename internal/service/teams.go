package service

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/fantasydash/internal/models"
)

const teamMatchThreshold = 0.6

// FindTeam returns the standings entry whose name is most similar to name.
func FindTeam(standings []models.TeamStanding, name string) (models.TeamStanding, bool) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return models.TeamStanding{}, false
	}

	bestIndex := -1
	bestScore := 0.0

	for i, team := range standings {
		teamName := strings.ToLower(team.TeamName)
		if teamName == query {
			return team, true
		}

		distance := fuzzy.LevenshteinDistance(query, teamName)
		maxLen := float64(max(len(query), len(teamName)))
		similarity := 1 - float64(distance)/maxLen

		if similarity > teamMatchThreshold && similarity > bestScore {
			bestScore = similarity
			bestIndex = i
		}
	}

	if bestIndex == -1 {
		return models.TeamStanding{}, false
	}
	return standings[bestIndex], true
}
