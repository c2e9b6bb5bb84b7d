// Package analysis holds the per-hand analysis record shared by the engine
// and the aggregator.
package analysis

import (
	"github.com/lox/pokerstats/internal/classify"
	"github.com/lox/pokerstats/internal/hand"
	"github.com/lox/pokerstats/internal/showdown"
)

// Record is the immutable analysis of one hand.
type Record struct {
	Hand     *hand.Reconstructed
	Events   []classify.Event
	Showdown showdown.Result
	// ShowdownErr is set when the showdown could not be ranked; showdown
	// statistics for the hand are then unavailable.
	ShowdownErr error
}

// ID returns the hand identifier.
func (r *Record) ID() string {
	return r.Hand.ID
}

// NetBB returns the player's result in big blinds. ok is false when the
// result is unknown or the hand has no big blind.
func (r *Record) NetBB(player string) (float64, bool) {
	p, found := r.Hand.Player(player)
	if !found || !r.Showdown.Available || r.Hand.Stakes.BigBlind <= 0 {
		return 0, false
	}
	return float64(r.Showdown.Net(p)) / float64(r.Hand.Stakes.BigBlind), true
}
