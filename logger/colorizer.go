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

package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Colorizer writes the first line of a log entry normally and any following
// lines in a dim red. Log entries themselves are single lines but the output
// of Tail() and Write() can be passed through a Colorizer to highlight
// multiline detail from other sources.
type Colorizer struct {
	out   io.Writer
	style lipgloss.Style
}

// NewColorizer is the preferred method if initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{
		out:   out,
		style: lipgloss.NewRenderer(out).NewStyle().Faint(true).Foreground(lipgloss.Color("1")),
	}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (int, error) {
	l := strings.Split(strings.TrimSpace(string(p)), "\n")

	s := strings.Builder{}
	s.WriteString(l[0])
	s.WriteString("\n")
	for _, t := range l[1:] {
		s.WriteString(c.style.Render(t))
		s.WriteString("\n")
	}

	if _, err := io.WriteString(c.out, s.String()); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Terminal returns a writer suitable for echoing log entries to the file. If
// the file is a terminal the writer is a Colorizer.
func Terminal(f *os.File) io.Writer {
	if term.IsTerminal(int(f.Fd())) {
		return NewColorizer(f)
	}
	return f
}
