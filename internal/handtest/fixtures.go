package handtest

import "github.com/lox/pokerstats/internal/hand"

// HeroThreeBet is a blind-free hand: UTG opens to 3, Hero three-bets to 9,
// the rest fold and UTG calls all-in for 3 more. Hero's AA beats UTG's KQ,
// winning the 12 chip main pot; the uncalled 3 is returned.
func HeroThreeBet(id string) *Builder {
	return New(id).
		Button(5).
		Seat(1, "SB", 100).
		Seat(2, "BB", 100).
		Seat(3, "UTG", 6).
		Seat(4, "Hero", 100).
		Seat(5, "BTN", 100).
		Pre("UTG", hand.Raise, 3).
		Pre("Hero", hand.Raise, 9).
		Pre("BTN", hand.Fold, 0).
		Pre("SB", hand.Fold, 0).
		Pre("BB", hand.Fold, 0).
		Pre("UTG", hand.Call, 3).
		Board("2c 7d 9h Js 3s").
		Show("UTG", "KcQd").
		Show("Hero", "AsAd")
}

// SingleRaised is a 6-max pot opened by UTG and called by the big blind, with
// a flop c-bet that the big blind folds to.
func SingleRaised(id string) *Builder {
	return SixMax(id, 200).
		Blinds("SB", "BB").
		Pre("UTG", hand.Raise, 6).
		Pre("MP", hand.Fold, 0).
		Pre("CO", hand.Fold, 0).
		Pre("BTN", hand.Fold, 0).
		Pre("SB", hand.Fold, 0).
		Pre("BB", hand.Call, 4).
		Flop("BB", hand.Check, 0).
		Flop("UTG", hand.Bet, 6).
		Flop("BB", hand.Fold, 0).
		Board("Ah7d2c")
}

// CheckedDown is a heads-up limped pot checked to the river where BB's pair
// beats the button.
func CheckedDown(id string) *Builder {
	return HeadsUp(id, 100).
		Blinds("BTN", "BB").
		Pre("BTN", hand.Call, 1).
		Pre("BB", hand.Check, 0).
		Flop("BB", hand.Check, 0).
		Flop("BTN", hand.Check, 0).
		Turn("BB", hand.Check, 0).
		Turn("BTN", hand.Check, 0).
		River("BB", hand.Check, 0).
		River("BTN", hand.Check, 0).
		Board("2c 7d 9h Js 3s").
		Show("BTN", "KcQd").
		Show("BB", "9c8c")
}
