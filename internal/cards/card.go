package cards

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCard is returned when a card token cannot be parsed.
var ErrInvalidCard = errors.New("invalid card")

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the single-letter suit used in hand histories
func (s Suit) String() string {
	switch s {
	case Spades:
		return "s"
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	default:
		return "?"
	}
}

// Symbol returns the unicode suit glyph
func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. The zero Rank marks an absent card.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const rankChars = "23456789TJQKA"

// String returns the string representation of a rank
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return rankChars[r-Two : r-Two+1]
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// New creates a new card
func New(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// IsZero reports whether c is the absent card.
func (c Card) IsZero() bool {
	return c.Rank == 0
}

// String returns hand-history notation, e.g. "As" or "Td"
func (c Card) String() string {
	if c.IsZero() {
		return ""
	}
	return c.Rank.String() + c.Suit.String()
}

// Pretty returns the card with a suit glyph (e.g., "A♠")
func (c Card) Pretty() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit.Symbol())
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

var rankTokens = map[string]Rank{
	"a": Ace, "k": King, "q": Queen, "j": Jack, "t": Ten, "10": Ten,
	"9": Nine, "8": Eight, "7": Seven, "6": Six, "5": Five, "4": Four,
	"3": Three, "2": Two,
}

var suitTokens = map[byte]Suit{'s': Spades, 'h': Hearts, 'd': Diamonds, 'c': Clubs}

// Parse reads a single card token. Ranks and suits are case-insensitive and
// "10" is accepted for ten.
func Parse(token string) (Card, error) {
	lowered := strings.ToLower(strings.TrimSpace(token))
	if len(lowered) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, token)
	}
	suit, ok := suitTokens[lowered[len(lowered)-1]]
	if !ok {
		return Card{}, fmt.Errorf("%w: %q: bad suit", ErrInvalidCard, token)
	}
	rank, ok := rankTokens[lowered[:len(lowered)-1]]
	if !ok {
		return Card{}, fmt.Errorf("%w: %q: bad rank", ErrInvalidCard, token)
	}
	return Card{Suit: suit, Rank: rank}, nil
}

// ParseRun parses a run of cards such as "AsKd7c", "As Kd 7c" or "10h,9h".
func ParseRun(run string) ([]Card, error) {
	run = strings.NewReplacer(",", " ", "[", " ", "]", " ").Replace(run)
	var out []Card
	for _, field := range strings.Fields(run) {
		for len(field) > 0 {
			n := 2
			if strings.HasPrefix(field, "10") {
				n = 3
			}
			if len(field) < n {
				return nil, fmt.Errorf("%w: %q", ErrInvalidCard, field)
			}
			card, err := Parse(field[:n])
			if err != nil {
				return nil, err
			}
			out = append(out, card)
			field = field[n:]
		}
	}
	return out, nil
}

// MustParseRun is ParseRun for fixtures; it panics on malformed input.
func MustParseRun(run string) []Card {
	out, err := ParseRun(run)
	if err != nil {
		panic(err)
	}
	return out
}

// Join renders cards in hand-history notation separated by spaces.
func Join(cs []Card) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// HasDuplicates reports whether any card appears more than once.
func HasDuplicates(cs ...[]Card) bool {
	seen := make(map[Card]struct{})
	for _, group := range cs {
		for _, c := range group {
			if _, ok := seen[c]; ok {
				return true
			}
			seen[c] = struct{}{}
		}
	}
	return false
}

// Combo returns the starting-hand class of two hole cards (e.g. "AKs", "72o", "TT").
func Combo(hole []Card) string {
	if len(hole) != 2 {
		return ""
	}
	hi, lo := hole[0], hole[1]
	if lo.Rank > hi.Rank {
		hi, lo = lo, hi
	}
	if hi.Rank == lo.Rank {
		return hi.Rank.String() + lo.Rank.String()
	}
	suffix := "o"
	if hi.Suit == lo.Suit {
		suffix = "s"
	}
	return hi.Rank.String() + lo.Rank.String() + suffix
}
