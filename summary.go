// This file is part of VideoOut.
//
// VideoOut is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// VideoOut is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with VideoOut.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jetsetilly/videoout/performance"
)

// summary writes a table describing the sessions. Colour is only used if
// the output is a terminal.
func summary(output io.Writer, sessions []*session, withDigest bool) {
	re := lipgloss.NewRenderer(output)
	header := re.NewStyle().Bold(true).Padding(0, 1)
	cell := re.NewStyle().Padding(0, 1)
	faint := cell.Faint(true)

	headers := []string{"trace", "samples", "rate", "frames", "saved", "last image"}
	if withDigest {
		headers = append(headers, "digest")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(re.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col >= 5:
				return faint
			}
			return cell
		})

	for _, s := range sessions {
		last := "-"
		if s.img != nil && s.img.Last() != "" {
			last = s.img.Last()
		}
		r := []string{
			s.trace,
			fmt.Sprintf("%d", s.samples),
			performance.FormatRate(performance.Rate(s.samples, s.elapsed)),
			fmt.Sprintf("%d", s.eng.Frames()),
			fmt.Sprintf("%d", s.eng.Sequence()),
			last,
		}
		if withDigest {
			r = append(r, s.dig.Hash())
		}
		t.Row(r...)
	}

	fmt.Fprintln(output, t.Render())
}
