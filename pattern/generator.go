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

package pattern

import (
	"fmt"
	"image/color"

	"github.com/jetsetilly/videoout/capture"
	"github.com/jetsetilly/videoout/capture/colourconv"
	"github.com/jetsetilly/videoout/capture/signal"
	"github.com/jetsetilly/videoout/curated"
)

// Generator produces the samples of a colour bar pattern.
type Generator struct {
	timing     Timing
	colorspace capture.Colorspace
	discipline capture.Discipline

	depth colourconv.Depth

	HSyncPolarity signal.Polarity
	VSyncPolarity signal.Polarity

	frames int
}

// NewGenerator is the preferred method of initialisation for the Generator
// type. Sync polarities are active high by default and can be changed before
// the first frame is generated.
func NewGenerator(timing Timing, colorspace capture.Colorspace, discipline capture.Discipline, depth int) (*Generator, error) {
	if err := timing.Validate(); err != nil {
		return nil, err
	}

	// the engine decides which pairings are possible
	if _, err := capture.NewEngine(capture.NewConfig(), colorspace, discipline); err != nil {
		return nil, curated.Errorf(UnsupportedFormat, err)
	}

	return &Generator{
		timing:        timing,
		colorspace:    colorspace,
		discipline:    discipline,
		depth:         colourconv.NewDepth(depth),
		HSyncPolarity: signal.ActiveHigh,
		VSyncPolarity: signal.ActiveHigh,
	}, nil
}

func (g *Generator) String() string {
	return fmt.Sprintf("%s/%s depth %d %s", g.colorspace, g.discipline, g.depth.Bits(), g.timing)
}

// Config returns the capture configuration for the generated bus.
func (g *Generator) Config() capture.Config {
	cfg := capture.NewConfig()
	cfg.Depth = g.depth.Bits()
	cfg.HSyncPolarity = g.HSyncPolarity
	cfg.VSyncPolarity = g.VSyncPolarity
	cfg.Window = g.timing.Window(g.discipline)
	return cfg
}

// Colorspace returns the colorspace of the generated bus.
func (g *Generator) Colorspace() capture.Colorspace {
	return g.colorspace
}

// Discipline returns the discipline of the generated bus.
func (g *Generator) Discipline() capture.Discipline {
	return g.discipline
}

// Frames returns the number of frames generated so far.
func (g *Generator) Frames() int {
	return g.frames
}

// quantise an eight bit value to the depth of the generator
func (g *Generator) quantise(v uint8) uint16 {
	return uint16(v) >> (colourconv.MaxDepth - g.depth.Bits())
}

// ycbcr returns the luma and chroma of the bar at column x
func (g *Generator) ycbcr(x int) (uint16, uint16, uint16) {
	c := Bar(x, g.timing.HActive)
	y, cb, cr := color.RGBToYCbCr(c.R, c.G, c.B)
	return g.quantise(y), g.quantise(cb), g.quantise(cr)
}

// Channels returns the channel values of the active pixel at (x, y). For the
// YUV422 and YUV420 colorspaces, the chroma channel carries Cb for even
// columns and Cr for odd columns, taken from the even column of the pair.
func (g *Generator) Channels(x int, y int) [signal.NumChannels]uint16 {
	var ch [signal.NumChannels]uint16

	switch g.colorspace {
	case capture.RGB444:
		c := Bar(x, g.timing.HActive)
		ch[signal.Red] = g.quantise(c.R)
		ch[signal.Green] = g.quantise(c.G)
		ch[signal.Blue] = g.quantise(c.B)
	case capture.YUV444:
		ch[signal.Luma], ch[signal.Cb], ch[signal.Cr] = g.ycbcr(x)
	case capture.YUV422, capture.YUV420:
		ch[signal.Luma], _, _ = g.ycbcr(x)
		_, cb, cr := g.ycbcr(x &^ 1)
		if x&1 == 0 {
			ch[signal.Chroma] = cb
		} else {
			ch[signal.Chroma] = cr
		}
	}

	return ch
}

// Expected returns the colour that a capture of the pixel at (x, y) should
// produce.
func (g *Generator) Expected(x int, y int) color.RGBA {
	switch g.colorspace {
	case capture.RGB444:
		ch := g.Channels(x, y)
		return g.depth.RGB(ch[signal.Red], ch[signal.Green], ch[signal.Blue])
	case capture.YUV444:
		ch := g.Channels(x, y)
		return g.depth.YUV(ch[signal.Luma], ch[signal.Cb], ch[signal.Cr])
	}

	luma, _, _ := g.ycbcr(x)
	_, cb, cr := g.ycbcr(x &^ 1)
	return g.depth.YUV(luma, cb, cr)
}

// Frame generates one frame. The emit function is called twice for every
// clock, once with the clock low and once with the clock high.
func (g *Generator) Frame(emit func(signal.Sample) error) error {
	t := g.timing

	for line := range t.FrameLines() {
		vsync := line < t.VSync
		y := line - t.VSync - t.VBack
		activeLine := y >= 0 && y < t.VActive

		for clk := range t.LineClocks() {
			x := clk - t.HSync - t.HBack

			s := signal.Sample{
				HSync: g.HSyncPolarity.Level(clk < t.HSync),
				VSync: g.VSyncPolarity.Level(vsync),
			}

			if activeLine && x >= 0 && x < t.HActive {
				s.DataEnable = true
				s.ChromaEnable = g.colorspace == capture.YUV420 && y&1 == 1
				s.Channels = g.Channels(x, y)
			}

			if err := g.clock(s, emit); err != nil {
				return err
			}
		}
	}

	g.frames++

	return nil
}

// Tail generates the first line of the next frame. For the Sync discipline
// the vertical sync edge at the start of the line completes the previous
// frame.
func (g *Generator) Tail(emit func(signal.Sample) error) error {
	for clk := range g.timing.LineClocks() {
		s := signal.Sample{
			HSync: g.HSyncPolarity.Level(clk < g.timing.HSync),
			VSync: g.VSyncPolarity.Level(g.timing.VSync > 0),
		}
		if err := g.clock(s, emit); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) clock(s signal.Sample, emit func(signal.Sample) error) error {
	s.Clock = false
	if err := emit(s); err != nil {
		return err
	}
	s.Clock = true
	return emit(s)
}
