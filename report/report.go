// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package report renders the round-by-round history of a runoff as a
// terminal table.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/danielhkuo/quickly-tally/runoff"
)

var (
	headerStyle     = lipgloss.NewStyle().Bold(true)
	eliminatedStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	winnerStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

const columnGap = 2

func padToWidth(s string, width int) string {
	current := runewidth.StringWidth(s)
	if current >= width {
		return s
	}
	return s + strings.Repeat(" ", width-current)
}

// Render writes one row per candidate and one column per round. A cell is
// empty once the candidate has been eliminated.
func Render(w io.Writer, names []string, out runoff.Outcome) error {
	nameWidth := runewidth.StringWidth("Candidate")
	for _, name := range names {
		if width := runewidth.StringWidth(name); width > nameWidth {
			nameWidth = width
		}
	}
	colWidth := len(humanize.Ordinal(len(out.Rounds))) + columnGap
	for _, round := range out.Rounds {
		for _, v := range round.Votes {
			if width := len(humanize.Comma(int64(v))) + columnGap; width > colWidth {
				colWidth = width
			}
		}
	}

	header := padToWidth("Candidate", nameWidth+columnGap)
	for _, round := range out.Rounds {
		header += padToWidth(humanize.Ordinal(round.Number), colWidth)
	}
	lines := []string{headerStyle.Render(strings.TrimRight(header, " "))}

	for i, name := range names {
		row := padToWidth(name, nameWidth+columnGap)
		outAt := eliminatedIn(out, name)
		for _, round := range out.Rounds {
			cell := ""
			if outAt == 0 || round.Number <= outAt {
				cell = humanize.Comma(int64(round.Votes[i]))
			}
			row += padToWidth(cell, colWidth)
		}
		row = strings.TrimRight(row, " ")

		switch {
		case contains(out.Winners, name):
			row = winnerStyle.Render(row)
		case outAt > 0:
			row = eliminatedStyle.Render(row)
		}
		lines = append(lines, row)
	}

	summary := fmt.Sprintf("%s after %s: %s", out.State, pluralRounds(len(out.Rounds)), strings.Join(out.Winners, ", "))
	lines = append(lines, "", summary)

	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, lines...))
	return err
}

// eliminatedIn returns the round that eliminated name, or 0
func eliminatedIn(out runoff.Outcome, name string) int {
	for _, round := range out.Rounds {
		if contains(round.Eliminated, name) {
			return round.Number
		}
	}
	return 0
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func pluralRounds(n int) string {
	if n == 1 {
		return "1 round"
	}
	return humanize.Comma(int64(n)) + " rounds"
}
