// Package stats aggregates analyzed hands into per-player counters and
// derives percentages from them.
package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/pokerstats/internal/analysis"
	"github.com/lox/pokerstats/internal/hand"
)

// DuplicateHandError rejects a hand identifier that was already merged.
type DuplicateHandError struct {
	HandID string
}

func (e *DuplicateHandError) Error() string {
	return fmt.Sprintf("hand %s already aggregated", e.HandID)
}

// Cell is the position and stack depth a player had in a hand.
type Cell struct {
	Position hand.Position
	Depth    Depth
}

// Filter selects cells. Zero fields match everything.
type Filter struct {
	Position hand.Position
	Depth    Depth
}

// Match reports whether the cell passes the filter.
func (f Filter) Match(c Cell) bool {
	return (f.Position == hand.PositionUnknown || f.Position == c.Position) &&
		(f.Depth == DepthAny || f.Depth == c.Depth)
}

// PlayerAccumulator holds one player's counters split by cell.
type PlayerAccumulator struct {
	Name  string
	cells map[Cell]*Counters
}

func newPlayerAccumulator(name string) *PlayerAccumulator {
	return &PlayerAccumulator{Name: name, cells: make(map[Cell]*Counters)}
}

// Total sums the counters of every cell matching f.
func (p *PlayerAccumulator) Total(f Filter) Counters {
	var out Counters
	for cell, c := range p.cells {
		if f.Match(cell) {
			out.Add(*c)
		}
	}
	return out
}

// Cells returns the populated cells in position then depth order.
func (p *PlayerAccumulator) Cells() []Cell {
	out := make([]Cell, 0, len(p.cells))
	for cell := range p.cells {
		out = append(out, cell)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Depth < out[j].Depth
	})
	return out
}

func (p *PlayerAccumulator) add(cell Cell, c Counters) {
	dst, ok := p.cells[cell]
	if !ok {
		dst = &Counters{}
		p.cells[cell] = dst
	}
	dst.Add(c)
}

// Aggregator folds analysis records into player accumulators. It is not safe
// for concurrent use; give each worker its own and combine with MergeFrom.
type Aggregator struct {
	buckets DepthBuckets
	players map[string]*PlayerAccumulator
	seen    map[string]struct{}
}

// NewAggregator returns an empty aggregator.
func NewAggregator(buckets DepthBuckets) *Aggregator {
	return &Aggregator{
		buckets: buckets,
		players: make(map[string]*PlayerAccumulator),
		seen:    make(map[string]struct{}),
	}
}

// Buckets returns the stack-depth boundaries in use.
func (a *Aggregator) Buckets() DepthBuckets {
	return a.buckets
}

// Seen reports whether a hand was already merged.
func (a *Aggregator) Seen(handID string) bool {
	_, ok := a.seen[handID]
	return ok
}

// HandCount returns the number of merged hands.
func (a *Aggregator) HandCount() int {
	return len(a.seen)
}

// Players returns player names in sorted order.
func (a *Aggregator) Players() []string {
	out := make([]string, 0, len(a.players))
	for name := range a.players {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Player returns one player's accumulator.
func (a *Aggregator) Player(name string) (*PlayerAccumulator, bool) {
	p, ok := a.players[name]
	return p, ok
}

// Reset discards every counter and seen hand.
func (a *Aggregator) Reset() {
	a.players = make(map[string]*PlayerAccumulator)
	a.seen = make(map[string]struct{})
}

type delta struct {
	cell     Cell
	counters Counters
}

// Merge folds one record. The whole hand is applied or, on error, nothing.
func (a *Aggregator) Merge(rec *analysis.Record) error {
	if rec == nil || rec.Hand == nil {
		return fmt.Errorf("merge: empty record")
	}
	h := rec.Hand
	if a.Seen(h.ID) {
		return &DuplicateHandError{HandID: h.ID}
	}

	deltas := make(map[string]*delta, len(h.Players))
	for _, p := range h.Players {
		deltas[p.Name] = &delta{
			cell:     Cell{Position: p.Position, Depth: a.buckets.Classify(p.EffectiveStackBB)},
			counters: Counters{HandsDealt: 1},
		}
	}

	for _, e := range rec.Events {
		d, ok := deltas[e.Player]
		if !ok {
			return fmt.Errorf("merge hand %s: event %s for unknown player %q", h.ID, e.Kind, e.Player)
		}
		if !d.counters.Record(e.Kind, e.Street) {
			return fmt.Errorf("merge hand %s: unhandled event kind %d", h.ID, e.Kind)
		}
	}

	sd := rec.Showdown
	for _, name := range sd.Participants {
		d := deltas[name]
		if d == nil {
			return fmt.Errorf("merge hand %s: showdown participant %q not dealt in", h.ID, name)
		}
		if !sd.Available {
			d.counters.ShowdownUnavailable++
			continue
		}
		d.counters.WTSD++
		d.counters.WSDDollars += sd.WSDAmount[name]
		if sd.IsShowdown {
			d.counters.Showdowns++
			if sd.WSDAmount[name] > 0 {
				d.counters.ShowdownWins++
			}
		}
	}

	if sd.Available {
		for _, p := range h.Players {
			d := deltas[p.Name]
			net := sd.Net(p)
			d.counters.NetWon += net
			if bb := h.Stakes.BigBlind; bb > 0 {
				centi := int64(math.Round(float64(net) * 100 / float64(bb)))
				d.counters.NetHands++
				d.counters.NetCentiBB += centi
				d.counters.NetCentiBBSq += centi * centi
			}
		}
	}

	a.seen[h.ID] = struct{}{}
	for name, d := range deltas {
		a.player(name).add(d.cell, d.counters)
	}
	return nil
}

// MergeFrom folds another aggregator's counters into a. It fails without
// changing a if the two share a hand identifier.
func (a *Aggregator) MergeFrom(other *Aggregator) error {
	for id := range other.seen {
		if a.Seen(id) {
			return &DuplicateHandError{HandID: id}
		}
	}
	for id := range other.seen {
		a.seen[id] = struct{}{}
	}
	for name, src := range other.players {
		dst := a.player(name)
		for cell, c := range src.cells {
			dst.add(cell, *c)
		}
	}
	return nil
}

func (a *Aggregator) player(name string) *PlayerAccumulator {
	p, ok := a.players[name]
	if !ok {
		p = newPlayerAccumulator(name)
		a.players[name] = p
	}
	return p
}

// CellCounters is one exported cell of a player's accumulator.
type CellCounters struct {
	Player   string
	Cell     Cell
	Counters Counters
}

// Snapshot exports the merged hand identifiers and every populated cell.
func (a *Aggregator) Snapshot() (handIDs []string, cells []CellCounters) {
	handIDs = make([]string, 0, len(a.seen))
	for id := range a.seen {
		handIDs = append(handIDs, id)
	}
	sort.Strings(handIDs)
	for _, name := range a.Players() {
		p := a.players[name]
		for _, cell := range p.Cells() {
			cells = append(cells, CellCounters{Player: name, Cell: cell, Counters: *p.cells[cell]})
		}
	}
	return handIDs, cells
}

// Restore rebuilds an aggregator from a snapshot.
func Restore(buckets DepthBuckets, handIDs []string, cells []CellCounters) *Aggregator {
	a := NewAggregator(buckets)
	for _, id := range handIDs {
		a.seen[id] = struct{}{}
	}
	for _, c := range cells {
		a.player(c.Player).add(c.Cell, c.Counters)
	}
	return a
}
