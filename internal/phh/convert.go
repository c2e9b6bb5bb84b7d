package phh

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lox/pokerstats/internal/cards"
	"github.com/lox/pokerstats/internal/hand"
)

// ErrUnsupported marks PHH content that has no hand.Input equivalent.
var ErrUnsupported = errors.New("phh: unsupported")

// metadata is the free-form [metadata] table. Sites write numbers either
// bare or quoted.
type metadata map[string]any

func (m metadata) Int(key string) int64 {
	switch v := m[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	}
	return 0
}

func (m metadata) Text(key string) string {
	s, _ := m[key].(string)
	return s
}

// ToInput converts a decoded PHH hand. Players are listed from the first seat
// left of the button, so the last player holds the button; heads-up the first
// player does. A button_seat metadata entry overrides either rule.
func ToInput(h HandHistory) (hand.Input, error) {
	game, err := variantGame(h.Variant)
	if err != nil {
		return hand.Input{}, fmt.Errorf("hand %s: %w", h.HandID, err)
	}
	n := len(h.Players)
	if n < 2 {
		return hand.Input{}, fmt.Errorf("hand %s: need at least two players, got %d", h.HandID, n)
	}
	if len(h.StartingStacks) != n {
		return hand.Input{}, fmt.Errorf("hand %s: %d starting stacks for %d players", h.HandID, len(h.StartingStacks), n)
	}

	meta := metadata(h.Metadata)
	in := hand.Input{
		ID:       h.HandID,
		Site:     meta.Text("site"),
		Game:     game,
		Rake:     meta.Int("rake"),
		TotalPot: meta.Int("total_pot"),
	}
	if in.Site == "" {
		in.Site = "phh"
	}

	for i, name := range h.Players {
		seat := i + 1
		if i < len(h.Seats) && h.Seats[i] > 0 {
			seat = h.Seats[i]
		}
		in.Seats = append(in.Seats, hand.PlayerSeat{
			Name:          name,
			Seat:          seat,
			StartingStack: int64(h.StartingStacks[i]),
		})
	}
	switch {
	case meta.Int("button_seat") > 0:
		in.Button = int(meta.Int("button_seat"))
	case n == 2:
		in.Button = in.Seats[0].Seat
	default:
		in.Button = in.Seats[n-1].Seat
	}

	c := &converter{
		h:         h,
		in:        &in,
		remaining: make([]int64, n),
		streetBet: make([]int64, n),
	}
	for i, s := range in.Seats {
		c.remaining[i] = s.StartingStack
	}
	c.stakes()
	c.posts()
	for i, raw := range h.Actions {
		if err := c.action(raw); err != nil {
			return hand.Input{}, fmt.Errorf("hand %s: action %d %q: %w", h.HandID, i+1, raw, err)
		}
	}

	for i, amount := range h.Winnings {
		if i < n && amount > 0 {
			in.Collected = append(in.Collected, hand.Collection{Player: h.Players[i], Amount: int64(amount)})
		}
	}
	return in, nil
}

func variantGame(variant string) (hand.Game, error) {
	switch strings.ToUpper(strings.TrimSpace(variant)) {
	case "NT", "FT", "":
		return hand.Holdem, nil
	case "PO", "FO":
		return hand.Omaha, nil
	default:
		return "", fmt.Errorf("%w variant %q", ErrUnsupported, variant)
	}
}

type converter struct {
	h         HandHistory
	in        *hand.Input
	street    hand.Street
	board     []cards.Card
	remaining []int64
	streetBet []int64
	maxBet    int64
}

// stakes reads the blind sizes: the smallest blind is the small blind and the
// next is the big blind.
func (c *converter) stakes() {
	var blinds []int64
	for _, b := range c.h.BlindsOrStraddles {
		if b > 0 {
			blinds = append(blinds, int64(b))
		}
	}
	sort.Slice(blinds, func(i, j int) bool { return blinds[i] < blinds[j] })
	switch len(blinds) {
	case 0:
		c.in.Stakes.BigBlind = int64(c.h.MinBet)
	case 1:
		c.in.Stakes.BigBlind = blinds[0]
	default:
		c.in.Stakes.SmallBlind = blinds[0]
		c.in.Stakes.BigBlind = blinds[1]
	}
	for _, a := range c.h.Antes {
		c.in.Stakes.Ante = max(c.in.Stakes.Ante, int64(a))
	}
	c.in.Stakes.Currency = c.h.Currency
}

type post struct {
	player int
	amount int64
}

// posts emits antes, then blinds and straddles in ascending size.
func (c *converter) posts() {
	for i, a := range c.h.Antes {
		if i < len(c.h.Players) && a > 0 {
			c.emit(i, hand.PostAnte, min(int64(a), c.remaining[i]))
		}
	}

	var blinds []post
	for i, b := range c.h.BlindsOrStraddles {
		if i < len(c.h.Players) && b > 0 {
			blinds = append(blinds, post{player: i, amount: int64(b)})
		}
	}
	sort.SliceStable(blinds, func(i, j int) bool { return blinds[i].amount < blinds[j].amount })

	for i, b := range blinds {
		kind := hand.PostStraddle
		switch {
		case len(blinds) == 1 || (i == 1 && len(blinds) >= 2):
			kind = hand.PostBigBlind
		case i == 0:
			kind = hand.PostSmallBlind
		}
		amount := min(b.amount, c.remaining[b.player])
		if amount > 0 {
			c.emit(b.player, kind, amount)
		}
	}
}

func (c *converter) emit(player int, kind hand.ActionKind, amount int64) {
	c.remaining[player] -= amount
	if kind != hand.PostAnte {
		c.streetBet[player] += amount
		c.maxBet = max(c.maxBet, c.streetBet[player])
	}
	c.in.Actions = append(c.in.Actions, hand.RawAction{
		Player: c.h.Players[player],
		Street: c.street,
		Kind:   kind,
		Amount: amount,
	})
}

func (c *converter) action(raw string) error {
	if i := strings.Index(raw, "#"); i >= 0 {
		raw = raw[:i]
	}
	parts := strings.Fields(raw)
	if len(parts) == 0 {
		return nil
	}

	if parts[0] == "d" {
		return c.deal(parts[1:])
	}

	player := parsePlayer(parts[0], len(c.h.Players))
	if player < 0 {
		return fmt.Errorf("unknown actor %q", parts[0])
	}
	if len(parts) < 2 {
		return fmt.Errorf("missing action code")
	}

	switch parts[1] {
	case "f":
		c.emit(player, hand.Fold, 0)
	case "cc":
		toCall := min(c.maxBet-c.streetBet[player], c.remaining[player])
		if toCall <= 0 {
			c.emit(player, hand.Check, 0)
		} else {
			c.emit(player, hand.Call, toCall)
		}
	case "cbr":
		if len(parts) < 3 {
			return fmt.Errorf("missing amount")
		}
		total, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", parts[2])
		}
		amount := total - c.streetBet[player]
		if amount <= 0 || amount > c.remaining[player] {
			return fmt.Errorf("bet to %d with %d in and %d behind", total, c.streetBet[player], c.remaining[player])
		}
		kind := hand.Raise
		switch {
		case amount == c.remaining[player]:
			kind = hand.AllIn
		case c.maxBet == 0:
			kind = hand.Bet
		}
		c.emit(player, kind, amount)
	case "sm":
		if len(parts) < 3 {
			return nil
		}
		hole, err := parseCards(parts[2])
		if err != nil {
			return err
		}
		if hole != nil {
			c.in.Seats[player].HoleCards = hole
		}
	case "sd":
		// stand pat / discard: draw games only
		return fmt.Errorf("%w action code %q", ErrUnsupported, parts[1])
	default:
		return fmt.Errorf("unknown action code %q", parts[1])
	}
	return nil
}

func (c *converter) deal(parts []string) error {
	if len(parts) == 0 {
		return fmt.Errorf("empty deal")
	}
	switch parts[0] {
	case "dh":
		if len(parts) < 3 {
			return fmt.Errorf("hole deal needs a player and cards")
		}
		player := parsePlayer(parts[1], len(c.h.Players))
		if player < 0 {
			return fmt.Errorf("unknown player %q", parts[1])
		}
		hole, err := parseCards(parts[2])
		if err != nil {
			return err
		}
		if hole != nil {
			c.in.Seats[player].HoleCards = hole
		}
	case "db":
		if len(parts) < 2 {
			return fmt.Errorf("board deal without cards")
		}
		dealt, err := cards.ParseRun(strings.Join(parts[1:], ""))
		if err != nil {
			return err
		}
		if len(c.board) > 0 && len(dealt) > len(c.board) {
			// legacy entries repeat the whole board
			c.board = dealt
		} else {
			c.board = append(c.board, dealt...)
		}
		if err := c.advance(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown deal %q", parts[0])
	}
	return nil
}

func (c *converter) advance() error {
	var street hand.Street
	switch len(c.board) {
	case 3:
		street = hand.Flop
		c.in.Board.Flop = c.board[:3:3]
	case 4:
		street = hand.Turn
		c.in.Board.Turn = c.board[3]
	case 5:
		street = hand.River
		c.in.Board.River = c.board[4]
	default:
		return fmt.Errorf("board of %d cards", len(c.board))
	}
	if street <= c.street {
		return fmt.Errorf("board dealt twice for %s", street)
	}
	c.street = street
	clear(c.streetBet)
	c.maxBet = 0
	return nil
}

func parsePlayer(token string, n int) int {
	if !strings.HasPrefix(token, "p") {
		return -1
	}
	v, err := strconv.Atoi(token[1:])
	if err != nil || v < 1 || v > n {
		return -1
	}
	return v - 1
}
