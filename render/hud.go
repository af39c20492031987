package render

import (
	"fmt"

	"github.com/zucenko/fogmaze/model"
)

// HUD returns the overlay text for a snapshot. action names the start
// control of the front end, e.g. "ENTER".
func HUD(snap *model.Snapshot, action string) []string {
	switch snap.Status {
	case model.PLAYING:
		return []string{StatsLine(snap.Stats)}
	case model.WON:
		return []string{
			"ESCAPED",
			fmt.Sprintf("%.1fs in %d moves", snap.Stats.Elapsed, snap.Stats.Moves),
			fmt.Sprintf("press %s to play again", action),
		}
	default:
		return []string{
			"FIND THE EXIT",
			fmt.Sprintf("press %s to start", action),
		}
	}
}

func StatsLine(s model.Stats) string {
	return fmt.Sprintf("TIME %5.1fs  MOVES %d", s.Elapsed, s.Moves)
}
