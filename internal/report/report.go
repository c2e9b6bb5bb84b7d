// Package report renders statistics, leaks and hand timelines for the
// terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/pokerstats/internal/analysis"
	"github.com/lox/pokerstats/internal/cards"
	"github.com/lox/pokerstats/internal/engine"
	"github.com/lox/pokerstats/internal/hand"
	"github.com/lox/pokerstats/internal/leaks"
	"github.com/lox/pokerstats/internal/stats"
)

var metricLabels = map[stats.Metric]string{
	stats.MetricVPIP:           "VPIP",
	stats.MetricPFR:            "PFR",
	stats.MetricVPIPPFRGap:     "VPIP-PFR",
	stats.MetricPFRVPIPRatio:   "PFR/VPIP",
	stats.MetricThreeBet:       "3Bet",
	stats.MetricFourBet:        "4Bet",
	stats.MetricSqueeze:        "Squeeze",
	stats.MetricSteal:          "Steal",
	stats.MetricFoldToThreeBet: "Fold to 3Bet",
	stats.MetricOpenRaise:      "RFI",
	stats.MetricLimp:           "Limp",
	stats.MetricCBet:           "CBet",
	stats.MetricCBetFlop:       "CBet flop",
	stats.MetricCBetTurn:       "CBet turn",
	stats.MetricCBetRiver:      "CBet river",
	stats.MetricFoldToCBet:     "Fold to CBet",
	stats.MetricDonk:           "Donk",
	stats.MetricCheckRaise:     "Check-raise",
	stats.MetricAF:             "AF",
	stats.MetricAFq:            "AFq",
	stats.MetricWTSD:           "WTSD",
	stats.MetricWSD:            "WSD%",
	stats.MetricWSDDollars:     "W$SD",
	stats.MetricNetWon:         "Net won",
	stats.MetricBBPer100:       "bb/100",
}

// Label returns the display name of a metric.
func Label(m stats.Metric) string {
	if l, ok := metricLabels[m]; ok {
		return l
	}
	return string(m)
}

// FormatValue renders a metric value in its unit, or "-" when undefined.
func FormatValue(m stats.Metric, v stats.Value) string {
	if !v.Defined {
		return "-"
	}
	switch m {
	case stats.MetricPFRVPIPRatio, stats.MetricAF:
		return fmt.Sprintf("%.2f", v.Value)
	case stats.MetricVPIPPFRGap:
		return fmt.Sprintf("%.1fpp", v.Value)
	case stats.MetricWSDDollars, stats.MetricNetWon:
		return fmt.Sprintf("%.0f", v.Value)
	case stats.MetricBBPer100:
		return fmt.Sprintf("%+.1f", v.Value)
	default:
		return fmt.Sprintf("%.1f%%", v.Value)
	}
}

func formatInterval(v stats.Value) string {
	if !v.Defined || !v.HasInterval {
		return ""
	}
	return fmt.Sprintf("[%.1f, %.1f]", v.Low, v.High)
}

// Stats writes one player's metrics.
func Stats(w io.Writer, s stats.Statistics) {
	title := s.Player
	if desc := describeFilter(s.Filter); desc != "" {
		title += " (" + desc + ")"
	}
	fmt.Fprintln(w, HeaderStyle.Render(title))
	fmt.Fprintf(w, "%s %s\n", LabelStyle.Render("Hands:"), ValueStyle.Render(fmt.Sprint(s.Hands())))

	label := lipgloss.NewStyle().Width(14)
	value := lipgloss.NewStyle().Width(10).Align(lipgloss.Right)
	for _, m := range stats.Metrics() {
		v := s.Get(m)
		row := label.Render(Label(m)) + value.Render(FormatValue(m, v))
		if iv := formatInterval(v); iv != "" {
			row += "  " + DimStyle.Render(iv)
		}
		if v.Defined {
			row += "  " + DimStyle.Render(fmt.Sprintf("n=%d", v.Sample))
		}
		fmt.Fprintln(w, row)
	}

	var bets []string
	for i, l := range stats.BetSizeLabels {
		if v := s.BetSizeShare(i); v.Defined {
			bets = append(bets, fmt.Sprintf("%s %.0f%%", l, v.Value))
		}
	}
	if len(bets) > 0 {
		fmt.Fprintf(w, "%s %s\n", LabelStyle.Render("Bet sizes:"), strings.Join(bets, ", "))
	}
}

func describeFilter(f stats.Filter) string {
	var parts []string
	if f.Position != hand.PositionUnknown {
		parts = append(parts, f.Position.String())
	}
	if f.Depth != stats.DepthAny {
		parts = append(parts, f.Depth.String())
	}
	return strings.Join(parts, ", ")
}

var breakdownMetrics = []stats.Metric{stats.MetricVPIP, stats.MetricPFR, stats.MetricThreeBet, stats.MetricCBet, stats.MetricAF, stats.MetricBBPer100}

// Breakdown writes a player's key metrics per position and per stack depth.
func Breakdown(w io.Writer, acc *stats.PlayerAccumulator) {
	col := lipgloss.NewStyle().Width(9).Align(lipgloss.Right)
	head := lipgloss.NewStyle().Width(8)

	header := head.Render("") + col.Render("hands")
	for _, m := range breakdownMetrics {
		header += col.Render(Label(m))
	}

	row := func(name string, f stats.Filter) {
		s := stats.Derive(acc, f)
		if s.Hands() == 0 {
			return
		}
		line := head.Render(name) + col.Render(fmt.Sprint(s.Hands()))
		for _, m := range breakdownMetrics {
			line += col.Render(FormatValue(m, s.Get(m)))
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintln(w, SectionStyle.Render("By position"))
	fmt.Fprintln(w, DimStyle.Render(header))
	for _, p := range hand.Positions() {
		row(p.String(), stats.Filter{Position: p})
	}

	fmt.Fprintln(w, SectionStyle.Render("By stack depth"))
	fmt.Fprintln(w, DimStyle.Render(header))
	for _, d := range stats.Depths() {
		row(d.String(), stats.Filter{Depth: d})
	}
}

// Leaks writes a player's leak findings.
func Leaks(w io.Writer, player string, findings []leaks.Finding) {
	if len(findings) == 0 {
		fmt.Fprintf(w, "%s %s\n", SectionStyle.Render(player+":"), DimStyle.Render("no leaks flagged"))
		return
	}
	fmt.Fprintln(w, SectionStyle.Render(player+":"))
	for _, f := range findings {
		fmt.Fprintf(w, "  %s %s %s\n",
			WarningStyle.Render(Label(f.Metric)),
			ValueStyle.Render(FormatValue(f.Metric, stats.Value{Value: f.Observed, Defined: true})),
			DimStyle.Render(fmt.Sprintf("%s %s", f.Direction, FormatValue(f.Metric, stats.Value{Value: f.Threshold, Defined: true}))))
	}
}

// Errors writes the hands a batch skipped.
func Errors(w io.Writer, errs []engine.HandError) {
	if len(errs) == 0 {
		return
	}
	fmt.Fprintln(w, ErrorStyle.Render(fmt.Sprintf("Skipped %d hands", len(errs))))
	for _, e := range errs {
		id := e.HandID
		if id == "" {
			id = "(no id)"
		}
		fmt.Fprintf(w, "  %s %s %v\n", LabelStyle.Render(id), DimStyle.Render(e.Reason), e.Err)
	}
}

// FormatCards renders cards with suit symbols, red suits highlighted.
func FormatCards(cs []cards.Card) string {
	if len(cs) == 0 {
		return DimStyle.Render("--")
	}
	out := make([]string, len(cs))
	for i, c := range cs {
		style := BlackCardStyle
		if c.IsRed() {
			style = RedCardStyle
		}
		out[i] = style.Render(c.Pretty())
	}
	return strings.Join(out, " ")
}

// Timeline writes one analyzed hand street by street with the running pot.
func Timeline(w io.Writer, rec *analysis.Record) {
	h := rec.Hand
	fmt.Fprintln(w, HeaderStyle.Render(fmt.Sprintf("Hand %s", h.ID)))
	fmt.Fprintf(w, "%s %s %d/%d  %s seat %d\n",
		LabelStyle.Render(h.Site), h.Game, h.Stakes.SmallBlind, h.Stakes.BigBlind,
		DimStyle.Render("button"), h.Button)

	name := lipgloss.NewStyle().Width(12)
	for _, p := range h.Players {
		line := fmt.Sprintf("  %-4s %s %6d  %.0fbb", p.Position, name.Render(p.Name), p.StartingStack, p.EffectiveStackBB)
		if p.Revealed() {
			line += "  " + FormatCards(p.HoleCards)
			if combo := cards.Combo(p.HoleCards); combo != "" {
				line += " " + DimStyle.Render(combo)
			}
		}
		fmt.Fprintln(w, line)
	}

	board := h.Board.Cards()
	for s := hand.Preflop; s <= h.LastStreet(); s++ {
		fmt.Fprintln(w, SectionStyle.Render(streetHeader(s, board)))
		for _, a := range h.ActionsOn(s) {
			line := fmt.Sprintf("  %s %s", name.Render(a.Player), a.Kind)
			if a.Amount > 0 {
				line += " " + ValueStyle.Render(fmt.Sprint(a.Amount))
			}
			line += "  " + DimStyle.Render(fmt.Sprintf("pot %d", a.PotAfter))
			fmt.Fprintln(w, line)
		}
	}
	// run-out dealt after the action ended
	for s := h.LastStreet() + 1; s <= hand.River && streetCards(s) <= len(board); s++ {
		fmt.Fprintln(w, SectionStyle.Render(streetHeader(s, board)))
	}

	sd := rec.Showdown
	if !sd.Available {
		fmt.Fprintf(w, "%s %v\n", ErrorStyle.Render("Showdown unavailable:"), rec.ShowdownErr)
		return
	}
	fmt.Fprintln(w, SectionStyle.Render("Result"))
	for i, pot := range sd.Pots {
		kind := "pot"
		switch {
		case pot.Returned:
			kind = "returned"
		case i > 0:
			kind = "side pot"
		}
		fmt.Fprintf(w, "  %s %d to %s\n", kind, pot.Amount, strings.Join(pot.Winners, ", "))
	}
	if h.Rake > 0 {
		fmt.Fprintf(w, "  %s %d\n", DimStyle.Render("rake"), h.Rake)
	}
	for _, p := range h.Players {
		net, class := sd.Net(p), sd.Hands[p.Name]
		if net == 0 && class == "" {
			continue
		}
		line := fmt.Sprintf("  %s %+d", name.Render(p.Name), net)
		if bb, ok := rec.NetBB(p.Name); ok {
			line += " " + DimStyle.Render(fmt.Sprintf("(%+.1fbb)", bb))
		}
		if class != "" {
			line += "  " + class
		}
		fmt.Fprintln(w, line)
	}
}

func streetCards(s hand.Street) int {
	switch s {
	case hand.Flop:
		return 3
	case hand.Turn:
		return 4
	case hand.River:
		return 5
	default:
		return 0
	}
}

func streetHeader(s hand.Street, board []cards.Card) string {
	n := streetCards(s)
	if n == 0 || len(board) < n {
		return strings.ToUpper(s.String())
	}
	return fmt.Sprintf("%s %s", strings.ToUpper(s.String()), FormatCards(board[:n]))
}
