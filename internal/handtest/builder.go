// Package handtest builds hand inputs for tests.
package handtest

import (
	"github.com/lox/pokerstats/internal/cards"
	"github.com/lox/pokerstats/internal/hand"
)

// Builder assembles a hand.Input fluently.
type Builder struct {
	in hand.Input
}

// New starts a Hold'em hand at 1/2 stakes.
func New(id string) *Builder {
	return &Builder{in: hand.Input{
		ID:     id,
		Site:   "test",
		Game:   hand.Holdem,
		Stakes: hand.Stakes{SmallBlind: 1, BigBlind: 2},
	}}
}

// SixMax seats SB, BB, UTG, MP, CO and BTN in seats 1-6 with the button on
// seat 6, each with the same stack.
func SixMax(id string, stack int64) *Builder {
	b := New(id).Button(6)
	for i, name := range []string{"SB", "BB", "UTG", "MP", "CO", "BTN"} {
		b.Seat(i+1, name, stack)
	}
	return b
}

// HeadsUp seats BTN in seat 1 (the button) and BB in seat 2.
func HeadsUp(id string, stack int64) *Builder {
	return New(id).Button(1).Seat(1, "BTN", stack).Seat(2, "BB", stack)
}

func (b *Builder) Game(g hand.Game) *Builder {
	b.in.Game = g
	return b
}

func (b *Builder) Stakes(sb, bb int64) *Builder {
	b.in.Stakes.SmallBlind = sb
	b.in.Stakes.BigBlind = bb
	return b
}

func (b *Builder) Button(seat int) *Builder {
	b.in.Button = seat
	return b
}

func (b *Builder) Seat(seat int, name string, stack int64) *Builder {
	b.in.Seats = append(b.in.Seats, hand.PlayerSeat{Name: name, Seat: seat, StartingStack: stack})
	return b
}

// Stack overrides a seated player's starting stack.
func (b *Builder) Stack(name string, stack int64) *Builder {
	for i := range b.in.Seats {
		if b.in.Seats[i].Name == name {
			b.in.Seats[i].StartingStack = stack
		}
	}
	return b
}

// Show reveals a player's hole cards.
func (b *Builder) Show(name, run string) *Builder {
	for i := range b.in.Seats {
		if b.in.Seats[i].Name == name {
			b.in.Seats[i].HoleCards = cards.MustParseRun(run)
		}
	}
	return b
}

// Blinds posts the small and big blind for the named players.
func (b *Builder) Blinds(sb, bb string) *Builder {
	b.Post(sb, hand.PostSmallBlind, b.in.Stakes.SmallBlind)
	return b.Post(bb, hand.PostBigBlind, b.in.Stakes.BigBlind)
}

func (b *Builder) Post(name string, kind hand.ActionKind, amount int64) *Builder {
	return b.Act(hand.Preflop, name, kind, amount)
}

func (b *Builder) Act(street hand.Street, name string, kind hand.ActionKind, amount int64) *Builder {
	b.in.Actions = append(b.in.Actions, hand.RawAction{Player: name, Street: street, Kind: kind, Amount: amount})
	return b
}

// Pre, Flop, Turn and River record a voluntary action on that street.
func (b *Builder) Pre(name string, kind hand.ActionKind, amount int64) *Builder {
	return b.Act(hand.Preflop, name, kind, amount)
}

func (b *Builder) Flop(name string, kind hand.ActionKind, amount int64) *Builder {
	return b.Act(hand.Flop, name, kind, amount)
}

func (b *Builder) Turn(name string, kind hand.ActionKind, amount int64) *Builder {
	return b.Act(hand.Turn, name, kind, amount)
}

func (b *Builder) River(name string, kind hand.ActionKind, amount int64) *Builder {
	return b.Act(hand.River, name, kind, amount)
}

// Board deals up to five community cards in order.
func (b *Builder) Board(run string) *Builder {
	cs := cards.MustParseRun(run)
	var board hand.Board
	for i, c := range cs {
		switch {
		case i < 3:
			board.Flop = append(board.Flop, c)
		case i == 3:
			board.Turn = c
		case i == 4:
			board.River = c
		}
	}
	b.in.Board = board
	return b
}

func (b *Builder) Rake(amount int64) *Builder {
	b.in.Rake = amount
	return b
}

func (b *Builder) TotalPot(amount int64) *Builder {
	b.in.TotalPot = amount
	return b
}

func (b *Builder) Collected(name string, amount int64) *Builder {
	b.in.Collected = append(b.in.Collected, hand.Collection{Player: name, Amount: amount})
	return b
}

// Input returns the assembled hand.
func (b *Builder) Input() hand.Input {
	return b.in
}

// Reconstruct replays the hand with 6-max defaults and panics on failure.
func (b *Builder) Reconstruct() *hand.Reconstructed {
	h, err := hand.Reconstruct(b.in, hand.DefaultOptions())
	if err != nil {
		panic(err)
	}
	return h
}
