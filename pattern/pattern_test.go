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

package pattern_test

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/videoout/capture"
	"github.com/jetsetilly/videoout/capture/signal"
	"github.com/jetsetilly/videoout/digest"
	"github.com/jetsetilly/videoout/pattern"
	"github.com/jetsetilly/videoout/renderers"
	"github.com/jetsetilly/videoout/test"
)

type result struct {
	img        *renderers.ImageFile
	dig        *digest.Video
	boundaries int
	seq        int
}

// capture the output of the generator. the number of frames is followed by
// the tail
func run(t *testing.T, g *pattern.Generator, frames int) result {
	t.Helper()

	cfg := g.Config()
	cfg.Basename = filepath.Join(t.TempDir(), "bars")

	eng, err := capture.NewEngine(cfg, g.Colorspace(), g.Discipline())
	test.DemandSuccess(t, err)

	img, err := renderers.NewImageFile(cfg.Basename, cfg.Window.HActive, cfg.Window.VActive, renderers.PNG, 1)
	test.DemandSuccess(t, err)
	dig := digest.NewVideo(cfg.Window.HActive, cfg.Window.VActive)

	eng.AddFrameSink(img)
	eng.AddFrameSink(dig)
	eng.AddFrameTrigger(dig)

	var res result
	var cycle uint64

	emit := func(s signal.Sample) error {
		cycle++
		b, err := eng.Evaluate(cycle, s)
		if b {
			res.boundaries++
		}
		return err
	}

	for range frames {
		test.DemandSuccess(t, g.Frame(emit))
	}
	test.DemandSuccess(t, g.Tail(emit))

	res.img = img
	res.dig = dig
	res.seq = eng.Sequence()
	return res
}

// compare the last persisted image with the expected output of the generator
func compare(t *testing.T, g *pattern.Generator, res result, tag string) {
	t.Helper()

	f, err := os.Open(res.img.Last())
	test.DemandSuccess(t, err, tag)
	defer f.Close()

	m, err := png.Decode(f)
	test.DemandSuccess(t, err, tag)

	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			want := g.Expected(x, y)
			r, gr, bl, _ := m.At(x, y).RGBA()
			if !test.ExpectEquality(t, [3]uint8{uint8(r >> 8), uint8(gr >> 8), uint8(bl >> 8)}, [3]uint8{want.R, want.G, want.B}, tag, x, y) {
				return
			}
		}
	}
}

func TestTiming(t *testing.T) {
	for _, n := range pattern.TimingNames() {
		tm, err := pattern.LookupTiming(n)
		test.ExpectSuccess(t, err, n)
		test.ExpectSuccess(t, tm.Validate(), n)
		test.ExpectEquality(t, tm.LineClocks(), tm.HSync+tm.HBack+tm.HActive+tm.HFront, n)
		test.ExpectEquality(t, tm.FrameLines(), tm.VSync+tm.VBack+tm.VActive+tm.VFront, n)
	}

	_, err := pattern.LookupTiming("ntsc-j")
	test.ExpectFailure(t, err)

	tm := pattern.Timings["small"]
	tm.HActive = 0
	test.ExpectFailure(t, tm.Validate())

	tm = pattern.Timings["small"]
	tm.VFront = -1
	test.ExpectFailure(t, tm.Validate())

	// line too short for the sync edge to be counted
	tm = pattern.Timing{HActive: 2, HSync: 1, HBack: 1, VActive: 2, VSync: 1}
	test.ExpectFailure(t, tm.Validate())

	tm = pattern.Timings["vga"]
	w := tm.Window(capture.Sync)
	test.ExpectEquality(t, w.HOffset, 143)
	test.ExpectEquality(t, w.HActive, 640)
	test.ExpectEquality(t, w.VOffset, 35)
	test.ExpectEquality(t, w.VActive, 480)

	w = tm.Window(capture.Enable)
	test.ExpectEquality(t, w.HOffset, 0)
	test.ExpectEquality(t, w.VOffset, 0)
	test.ExpectEquality(t, w.HActive, 640)
}

func TestBars(t *testing.T) {
	const width = 28
	img := pattern.Bars(width, 2)
	test.ExpectEquality(t, img.Bounds().Dx(), width)

	// bars are an even number of pixels wide
	for x := 0; x < width; x += 2 {
		test.ExpectEquality(t, pattern.Bar(x, width), pattern.Bar(x+1, width), x)
	}

	test.ExpectInequality(t, pattern.Bar(0, width), pattern.Bar(width-1, width))

	c := img.NRGBAAt(width-1, 1)
	b := pattern.Bar(width-1, width)
	test.ExpectEquality(t, [3]uint8{c.R, c.G, c.B}, [3]uint8{b.R, b.G, b.B})

	// narrow patterns still have bars two pixels wide
	test.ExpectEquality(t, pattern.Bar(0, 4), pattern.Bar(1, 4))
	test.ExpectInequality(t, pattern.Bar(1, 4), pattern.Bar(2, 4))
}

func TestUnsupportedGenerator(t *testing.T) {
	_, err := pattern.NewGenerator(pattern.Timings["small"], capture.YUV420, capture.Sync, 8)
	test.ExpectFailure(t, err)

	_, err = pattern.NewGenerator(pattern.Timing{}, capture.RGB444, capture.Sync, 8)
	test.ExpectFailure(t, err)
}

func TestCapture(t *testing.T) {
	const frames = 3

	for _, cs := range []capture.Colorspace{capture.RGB444, capture.YUV444, capture.YUV422, capture.YUV420} {
		for _, disc := range []capture.Discipline{capture.Sync, capture.Enable} {
			g, err := pattern.NewGenerator(pattern.Timings["small"], cs, disc, 8)
			if cs == capture.YUV420 && disc == capture.Sync {
				test.ExpectFailure(t, err)
				continue
			}
			test.DemandSuccess(t, err)

			tag := g.String()
			res := run(t, g, frames)

			test.ExpectEquality(t, g.Frames(), frames, tag)

			if disc == capture.Sync {
				// every frame begins with a boundary and the tail completes
				// the last frame
				test.ExpectEquality(t, res.boundaries, frames+1, tag)
				test.ExpectEquality(t, res.seq, frames, tag)
			} else {
				// the boundary comes at the end of the active area. the
				// first boundary only arms the engine
				test.ExpectEquality(t, res.boundaries, frames, tag)
				test.ExpectEquality(t, res.seq, frames-1, tag)
			}

			test.ExpectEquality(t, res.dig.Frames(), res.boundaries, tag)
			compare(t, g, res, tag)

			// the captured bars are close to the source colours
			img := res.img.Image()
			for x := range 28 {
				got := img.NRGBAAt(x, 7)
				want := pattern.Bar(x, 28)
				if cs == capture.RGB444 {
					test.ExpectEquality(t, [3]uint8{got.R, got.G, got.B}, [3]uint8{want.R, want.G, want.B}, tag, x)
				} else {
					test.ExpectWithin(t, got.R, want.R, 3, tag, x)
					test.ExpectWithin(t, got.G, want.G, 3, tag, x)
					test.ExpectWithin(t, got.B, want.B, 3, tag, x)
				}
			}
		}
	}
}

func TestReducedDepth(t *testing.T) {
	g, err := pattern.NewGenerator(pattern.Timings["small"], capture.RGB444, capture.Sync, 5)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, g.Config().Depth, 5)

	res := run(t, g, 2)
	test.ExpectEquality(t, res.seq, 2)
	compare(t, g, res, g.String())

	// the channels of the bus never exceed the depth
	for x := range 28 {
		for _, v := range g.Channels(x, 0) {
			test.ExpectSuccess(t, v < 1<<5, x)
		}
	}
}

func TestNegativePolarity(t *testing.T) {
	g, err := pattern.NewGenerator(pattern.Timings["small"], capture.RGB444, capture.Sync, 8)
	test.DemandSuccess(t, err)
	g.HSyncPolarity = signal.ActiveLow
	g.VSyncPolarity = signal.ActiveLow

	cfg := g.Config()
	test.ExpectEquality(t, cfg.HSyncPolarity, signal.ActiveLow)
	test.ExpectEquality(t, cfg.VSyncPolarity, signal.ActiveLow)

	// the bus starts with both sync signals at the active level so the
	// start of the first frame is not seen
	res := run(t, g, 3)
	test.ExpectEquality(t, res.boundaries, 3)
	test.ExpectEquality(t, res.seq, 2)
	compare(t, g, res, g.String())
}

func TestDeterministicDigest(t *testing.T) {
	hash := func() string {
		g, err := pattern.NewGenerator(pattern.Timings["small"], capture.YUV422, capture.Sync, 8)
		test.DemandSuccess(t, err)
		return run(t, g, 2).dig.Hash()
	}
	test.ExpectEquality(t, hash(), hash())
}
