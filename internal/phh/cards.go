package phh

import (
	"strings"

	"github.com/lox/pokerstats/internal/cards"
)

// parseCards reads a PHH card run. Runs containing unknown cards ("????")
// yield nil without error.
func parseCards(run string) ([]cards.Card, error) {
	run = strings.TrimSpace(run)
	if run == "" || strings.Contains(run, "?") {
		return nil, nil
	}
	return cards.ParseRun(run)
}
