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

package capture

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/videoout/capture/colourconv"
	"github.com/jetsetilly/videoout/capture/scan"
	"github.com/jetsetilly/videoout/capture/signal"
)

// DefaultDebounce is the number of clocks that must have passed since the
// previous horizontal sync edge for an edge to count as a new scanline.
const DefaultDebounce = 4

// Config describes the bus being captured. The engine takes a copy of the
// Config when it is created.
type Config struct {
	// number of significant bits in each channel. values outside the range
	// 1 to 8 are treated as 8
	Depth int

	HSyncPolarity signal.Polarity
	VSyncPolarity signal.Polarity

	// the active area. offsets are only used by the Sync discipline
	Window scan.Window

	Debounce int

	// log sync and persist events
	Debug bool

	// frames are not persisted if the base name is empty
	Basename string
}

// NewConfig returns a Config with default values. The window is empty and
// must be set before the engine will produce pixels.
func NewConfig() Config {
	return Config{
		Depth:         colourconv.MaxDepth,
		HSyncPolarity: signal.ActiveHigh,
		VSyncPolarity: signal.ActiveHigh,
		Debounce:      DefaultDebounce,
	}
}

func (cfg Config) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("depth %d; ", colourconv.NewDepth(cfg.Depth).Bits()))
	s.WriteString(fmt.Sprintf("hsync %s; vsync %s; ", cfg.HSyncPolarity, cfg.VSyncPolarity))
	s.WriteString(fmt.Sprintf("window %s; ", cfg.Window))
	s.WriteString(fmt.Sprintf("debounce %d", cfg.Debounce))
	if cfg.Basename != "" {
		s.WriteString(fmt.Sprintf("; basename %s", cfg.Basename))
	}
	if cfg.Debug {
		s.WriteString("; debug")
	}
	return s.String()
}
