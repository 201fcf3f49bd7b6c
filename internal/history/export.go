// internal/history/export.go
//
// Builds the exportable game-history document: the full game list plus a
// computed statistics summary. The document is what GET /history/export
// serves and what a client downloads as JSON.

package history

import (
	"time"

	"github.com/nikosalonen/moelkky-sub000/internal/game"
)

// Summary is the computed statistics block of an export.
type Summary struct {
	TotalGames             int            `json:"totalGames"`
	TotalPenalties         int            `json:"totalPenalties"`
	AverageDurationMinutes float64        `json:"averageDurationMinutes"`
	PlayerWins             map[string]int `json:"playerWins"`
	MostPenalizedPlayer    string         `json:"mostPenalizedPlayer"`
}

// Document is the full export payload.
type Document struct {
	ExportedAt time.Time   `json:"exportedAt"`
	TotalGames int         `json:"totalGames"`
	Games      []game.Game `json:"games"`
	Summary    Summary     `json:"summary"`
}

// Export assembles the document for a list of completed games.
// Wins are counted by winner name; in team mode the winning team's name
// carries the win. Average duration only counts games with an end time.
func Export(games []game.Game, now time.Time) Document {
	doc := Document{
		ExportedAt: now,
		TotalGames: len(games),
		Games:      games,
		Summary: Summary{
			TotalGames: len(games),
			PlayerWins: map[string]int{},
		},
	}
	if games == nil {
		doc.Games = []game.Game{}
	}

	var totalDuration time.Duration
	var timed int
	penaltiesBy := map[string]int{}
	var penaltyOrder []string // first-seen order for the tie-break

	for _, g := range games {
		doc.Summary.TotalPenalties += len(g.Penalties)
		for _, rec := range g.Penalties {
			if penaltiesBy[rec.PlayerName] == 0 {
				penaltyOrder = append(penaltyOrder, rec.PlayerName)
			}
			penaltiesBy[rec.PlayerName]++
		}
		if g.Winner != nil {
			doc.Summary.PlayerWins[g.Winner.Name]++
		} else if g.WinningTeam != nil {
			doc.Summary.PlayerWins[g.WinningTeam.Name]++
		}
		if g.EndedAt != nil {
			totalDuration += g.EndedAt.Sub(g.StartedAt)
			timed++
		}
	}

	if timed > 0 {
		doc.Summary.AverageDurationMinutes = totalDuration.Minutes() / float64(timed)
	}

	most, count := "", 0
	for _, name := range penaltyOrder {
		if penaltiesBy[name] > count {
			most, count = name, penaltiesBy[name]
		}
	}
	doc.Summary.MostPenalizedPlayer = most
	return doc
}
