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

package capture_test

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
	"testing"

	"github.com/jetsetilly/videoout/capture"
	"github.com/jetsetilly/videoout/capture/colourconv"
	"github.com/jetsetilly/videoout/capture/scan"
	"github.com/jetsetilly/videoout/capture/signal"
	"github.com/jetsetilly/videoout/curated"
	"github.com/jetsetilly/videoout/logger"
	"github.com/jetsetilly/videoout/test"
)

type write struct {
	x, y int
	col  color.RGBA
}

// recorder implements both the FrameSink and FrameTrigger interfaces
type recorder struct {
	width  int
	height int

	writes []write

	// index into writes of the start of the current frame
	start int

	// sequence numbers and content of persisted frames
	persisted []int
	snapshots [][]write

	// frame numbers passed to NewFrame()
	triggers []int

	failPersist error

	// returned by the next call to SetPixel() only
	failPixel error
}

func (r *recorder) SetPixel(x, y int, red, green, blue uint8) error {
	if r.failPixel != nil {
		err := r.failPixel
		r.failPixel = nil
		return err
	}
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return fmt.Errorf("pixel out of range (%d, %d)", x, y)
	}
	r.writes = append(r.writes, write{x: x, y: y, col: color.RGBA{R: red, G: green, B: blue, A: 255}})
	return nil
}

func (r *recorder) Persist(seq int) error {
	if r.failPersist != nil {
		return r.failPersist
	}
	r.persisted = append(r.persisted, seq)
	r.snapshots = append(r.snapshots, append([]write{}, r.writes[r.start:]...))
	return nil
}

func (r *recorder) NewFrame(frameNum int) error {
	r.triggers = append(r.triggers, frameNum)
	r.start = len(r.writes)
	return nil
}

// driver clocks samples into an engine, one low and one high phase for each
// sample
type driver struct {
	t          *testing.T
	eng        *capture.Engine
	cycle      uint64
	boundaries int
}

func (d *driver) clock(s signal.Sample) {
	d.t.Helper()

	s.Clock = false
	_, err := d.eng.Evaluate(d.cycle, s)
	test.DemandSuccess(d.t, err)
	d.cycle++

	s.Clock = true
	boundary, err := d.eng.Evaluate(d.cycle, s)
	test.DemandSuccess(d.t, err)
	d.cycle++

	if boundary {
		d.boundaries++
	}
}

func (d *driver) blank(n int) {
	d.t.Helper()
	for range n {
		d.clock(signal.Sample{})
	}
}

func (d *driver) hsync() {
	d.t.Helper()
	d.clock(signal.Sample{HSync: true})
}

func (d *driver) vsync() {
	d.t.Helper()
	d.clock(signal.Sample{VSync: true})
}

func rgb(r, g, b uint16) signal.Sample {
	return signal.Sample{Channels: [signal.NumChannels]uint16{r, g, b}}
}

func grey(v int) color.RGBA {
	return color.RGBA{R: uint8(v), G: uint8(v), B: uint8(v), A: 255}
}

func newEngine(t *testing.T, cfg capture.Config, cs capture.Colorspace, disc capture.Discipline) (*driver, *recorder) {
	t.Helper()
	eng, err := capture.NewEngine(cfg, cs, disc)
	test.DemandSuccess(t, err)
	rec := &recorder{width: cfg.Window.HActive, height: cfg.Window.VActive}
	eng.AddFrameSink(rec)
	eng.AddFrameTrigger(rec)
	return &driver{t: t, eng: eng}, rec
}

func TestConcreteScenario(t *testing.T) {
	cfg := capture.NewConfig()
	cfg.Window = scan.Window{HActive: 4, VActive: 2}
	cfg.Basename = "snap"
	d, rec := newEngine(t, cfg, capture.RGB444, capture.Sync)

	var fed []color.RGBA
	for y := range 2 {
		for x := range 4 {
			v := uint16(y*4 + x)
			d.clock(rgb(v*10, v*20, v*30))
			fed = append(fed, color.RGBA{R: uint8(v * 10), G: uint8(v * 20), B: uint8(v * 30), A: 255})
		}

		// the hsync edge must come more than four clocks after the start of
		// the line
		d.blank(2)
		d.hsync()
	}
	d.vsync()

	test.ExpectEquality(t, len(rec.writes), 8)
	for i, w := range rec.writes {
		test.ExpectEquality(t, w.x, i%4)
		test.ExpectEquality(t, w.y, i/4)
		test.ExpectEquality(t, w.col, fed[i])
	}

	test.ExpectEquality(t, d.boundaries, 1)
	test.ExpectEquality(t, len(rec.persisted), 0)
	test.DemandEquality(t, len(rec.triggers), 1)
	test.ExpectEquality(t, rec.triggers[0], 1)
	test.ExpectSuccess(t, d.eng.Armed())
	test.ExpectEquality(t, d.eng.State(), capture.StateInFrame)
}

// syncFrame feeds a frame of the given number of lines. each line has width
// pixels, three blank clocks and an hsync. the vsync is not sent
func syncFrame(d *driver, lines int, width int, value func(x, y int) uint16) {
	d.t.Helper()
	for y := range lines {
		for x := range width {
			v := value(x, y)
			d.clock(rgb(v, v, v))
		}
		d.blank(3)
		d.hsync()
	}
}

func TestSyncWindow(t *testing.T) {
	cfg := capture.NewConfig()
	cfg.Window = scan.Window{HOffset: 2, HActive: 5, VOffset: 1, VActive: 3}
	d, rec := newEngine(t, cfg, capture.RGB444, capture.Sync)

	// the first frame is partial. the lines counted from the vsync edge are
	// all complete
	d.vsync()
	syncFrame(d, 6, 10, func(x, y int) uint16 { return uint16(y*16 + x) })
	d.vsync()

	test.ExpectEquality(t, d.boundaries, 2)
	test.ExpectEquality(t, len(rec.writes), 15)
	for _, w := range rec.writes {
		// the clock after the vsync is hcount 1 so only the first line of the
		// frame is shifted. the first line is outside the window
		want := uint8((w.y+1)*16 + w.x + 2)
		test.ExpectEquality(t, w.col.R, want, fmt.Sprintf("pixel %d, %d", w.x, w.y))
	}
}

func TestPersistLatency(t *testing.T) {
	cfg := capture.NewConfig()
	cfg.Window = scan.Window{HActive: 3, VActive: 2}
	cfg.Basename = "latency"
	d, rec := newEngine(t, cfg, capture.RGB444, capture.Sync)

	// partial frame
	syncFrame(d, 1, 3, func(_, _ int) uint16 { return 0xff })
	d.vsync()
	test.ExpectEquality(t, len(rec.persisted), 0)

	for f := range 3 {
		// the vsync clock counts as the first clock of the frame so the first
		// line is shifted one column to the right and its last pixel falls
		// outside the window
		syncFrame(d, 2, 3, func(x, y int) uint16 { return uint16(f*16 + y*4 + x) })
		d.vsync()

		test.DemandEquality(t, len(rec.persisted), f+1)
		test.ExpectEquality(t, rec.persisted[f], f)
		test.ExpectEquality(t, d.eng.Sequence(), f+1)

		snap := rec.snapshots[f]
		test.DemandEquality(t, len(snap), 5)
		test.ExpectEquality(t, snap[0], write{x: 1, y: 0, col: grey(f * 16)})
		test.ExpectEquality(t, snap[1], write{x: 2, y: 0, col: grey(f*16 + 1)})
		test.ExpectEquality(t, snap[2], write{x: 0, y: 1, col: grey(f*16 + 4)})
		test.ExpectEquality(t, snap[4], write{x: 2, y: 1, col: grey(f*16 + 6)})
	}

	test.ExpectEquality(t, d.boundaries, 4)
	test.ExpectEquality(t, len(rec.triggers), 4)
	test.ExpectEquality(t, d.eng.Frames(), 4)
}

func TestNoBasename(t *testing.T) {
	cfg := capture.NewConfig()
	cfg.Window = scan.Window{HActive: 2, VActive: 2}
	d, rec := newEngine(t, cfg, capture.RGB444, capture.Enable)

	for range 5 * 4 {
		d.clock(signal.Sample{DataEnable: true})
	}

	test.ExpectEquality(t, d.boundaries, 5)
	test.ExpectEquality(t, len(rec.persisted), 0)
	test.ExpectEquality(t, len(rec.triggers), 5)
	test.ExpectFailure(t, d.eng.Armed())
}

func TestEnableRasterOrder(t *testing.T) {
	const width = 5
	const height = 3

	cfg := capture.NewConfig()
	cfg.Window = scan.Window{HOffset: 100, HActive: width, VOffset: 100, VActive: height}
	cfg.Basename = "de"
	d, rec := newEngine(t, cfg, capture.RGB444, capture.Enable)

	for f := range 3 {
		for y := range height {
			for x := range width {
				s := rgb(uint16(x), uint16(y), uint16(f))
				s.DataEnable = true
				d.clock(s)
			}

			// blanking between lines is ignored, including sync signals
			d.blank(3)
			d.hsync()
			d.vsync()
		}
	}

	test.ExpectEquality(t, d.boundaries, 3)
	test.ExpectEquality(t, len(rec.persisted), 2)

	for f, snap := range rec.snapshots {
		test.DemandEquality(t, len(snap), width*height)
		for i, w := range snap {
			test.ExpectEquality(t, w.x, i%width)
			test.ExpectEquality(t, w.y, i/width)
			test.ExpectEquality(t, w.col, color.RGBA{R: uint8(w.x), G: uint8(w.y), B: uint8(f + 1), A: 255})
		}
	}
}

func TestClockEdges(t *testing.T) {
	cfg := capture.NewConfig()
	cfg.Window = scan.Window{HActive: 4, VActive: 4}
	eng, err := capture.NewEngine(cfg, capture.RGB444, capture.Enable)
	test.DemandSuccess(t, err)
	rec := &recorder{width: 4, height: 4}
	eng.AddFrameSink(rec)

	s := signal.Sample{Clock: true, DataEnable: true}

	// a clock held high is only one edge
	for range 3 {
		_, err := eng.Evaluate(0, s)
		test.ExpectSuccess(t, err)
	}
	test.ExpectEquality(t, len(rec.writes), 1)

	// the falling edge does nothing
	s.Clock = false
	_, err = eng.Evaluate(0, s)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(rec.writes), 1)

	h, v := eng.Position()
	test.ExpectEquality(t, h, 1)
	test.ExpectEquality(t, v, 0)
}

func TestYUV444(t *testing.T) {
	cfg := capture.NewConfig()
	cfg.Window = scan.Window{HActive: 3, VActive: 1}
	cfg.Depth = 6
	d, rec := newEngine(t, cfg, capture.YUV444, capture.Enable)

	depth := colourconv.NewDepth(6)
	for x := range 3 {
		d.clock(signal.Sample{
			DataEnable: true,
			Channels:   [signal.NumChannels]uint16{uint16(x * 20), 10, 50},
		})
	}

	test.DemandEquality(t, len(rec.writes), 3)
	for x, w := range rec.writes {
		test.ExpectEquality(t, w.col, depth.YUV(uint16(x*20), 10, 50))
	}
}

func TestYUV422(t *testing.T) {
	// an odd horizontal offset. chroma parity is measured from the start of
	// the active area
	cfg := capture.NewConfig()
	cfg.Window = scan.Window{HOffset: 3, HActive: 6, VOffset: 0, VActive: 1}

	for _, disc := range []capture.Discipline{capture.Sync, capture.Enable} {
		d, rec := newEngine(t, cfg, capture.YUV422, disc)

		if disc == capture.Sync {
			d.blank(3)
		}
		for x := range 6 {
			s := signal.Sample{DataEnable: true}
			s.Channels[signal.Luma] = uint16(40 * x)
			if x%2 == 0 {
				s.Channels[signal.Chroma] = uint16(100 + x)
			} else {
				s.Channels[signal.Chroma] = uint16(150 + x)
			}
			d.clock(s)
		}

		test.DemandEquality(t, len(rec.writes), 6, disc)
		depth := colourconv.NewDepth(8)
		for i, w := range rec.writes {
			bx := w.x &^ 1
			test.ExpectEquality(t, w.x, i, disc)
			test.ExpectEquality(t, w.col, depth.YUV(uint16(40*w.x), uint16(100+bx), uint16(150+bx+1)), disc)
		}
	}
}

func TestYUV420(t *testing.T) {
	const width = 4
	const height = 4

	cfg := capture.NewConfig()
	cfg.Window = scan.Window{HActive: width, VActive: height}
	cfg.Basename = "yuv420"
	d, rec := newEngine(t, cfg, capture.YUV420, capture.Enable)

	for range 2 {
		for y := range height {
			for x := range width {
				s := signal.Sample{DataEnable: true, ChromaEnable: y%2 == 1}
				s.Channels[signal.Luma] = uint16((x + y) % 2 * 255)
				s.Channels[signal.Chroma] = 128
				d.clock(s)
			}
		}
	}

	test.ExpectEquality(t, d.boundaries, 2)
	test.DemandEquality(t, len(rec.snapshots), 1)
	test.ExpectEquality(t, len(rec.snapshots[0]), width*height)

	// pixels arrive in 2x2 blocks
	snap := rec.snapshots[0]
	test.ExpectEquality(t, snap[0].x, 0)
	test.ExpectEquality(t, snap[0].y, 0)
	test.ExpectEquality(t, snap[2].x, 0)
	test.ExpectEquality(t, snap[2].y, 1)
	test.ExpectEquality(t, snap[4].x, 2)
	test.ExpectEquality(t, snap[4].y, 0)

	black := colourconv.NewDepth(8).YUV(0, 128, 128)
	white := colourconv.NewDepth(8).YUV(255, 128, 128)
	for _, w := range snap {
		if (w.x+w.y)%2 == 0 {
			test.ExpectEquality(t, w.col, black)
		} else {
			test.ExpectEquality(t, w.col, white)
		}
	}
}

func TestUnsupported(t *testing.T) {
	cfg := capture.NewConfig()
	_, err := capture.NewEngine(cfg, capture.YUV420, capture.Sync)
	test.ExpectSuccess(t, curated.Is(err, capture.UnsupportedPairing))

	_, err = capture.NewEngine(cfg, capture.Colorspace(99), capture.Sync)
	test.ExpectSuccess(t, curated.Is(err, capture.UnknownColorspace))

	_, err = capture.NewEngine(cfg, capture.RGB444, capture.Discipline(99))
	test.ExpectSuccess(t, curated.Is(err, capture.UnknownDiscipline))

	_, err = capture.NewEngine(cfg, capture.YUV420, capture.Enable)
	test.ExpectSuccess(t, err)
}

func TestEmptyWindow(t *testing.T) {
	cfg := capture.NewConfig()
	cfg.Basename = "empty"

	for _, cs := range []capture.Colorspace{capture.RGB444, capture.YUV420} {
		d, rec := newEngine(t, cfg, cs, capture.Enable)
		for range 100 {
			d.clock(signal.Sample{DataEnable: true, ChromaEnable: true})
		}
		test.ExpectEquality(t, len(rec.writes), 0, cs)
		test.ExpectEquality(t, d.boundaries, 0, cs)
	}
}

func TestSinkErrors(t *testing.T) {
	cfg := capture.NewConfig()
	cfg.Window = scan.Window{HActive: 1, VActive: 1}
	cfg.Basename = "fail"

	eng, err := capture.NewEngine(cfg, capture.RGB444, capture.Enable)
	test.DemandSuccess(t, err)

	failure := errors.New("disk full")
	rec := &recorder{width: 1, height: 1, failPersist: failure}
	eng.AddFrameSink(rec)

	s := signal.Sample{DataEnable: true}
	var cycle uint64
	evaluate := func() error {
		var err error
		for _, clk := range []bool{false, true} {
			s.Clock = clk
			_, err = eng.Evaluate(cycle, s)
			cycle++
		}
		return err
	}

	// first boundary arms
	test.ExpectSuccess(t, evaluate())

	err = evaluate()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, capture.SinkError))
	test.ExpectSuccess(t, errors.Is(err, failure))
	test.ExpectEquality(t, eng.Sequence(), 0)

	// the engine is usable after the error
	rec.failPersist = nil
	test.ExpectSuccess(t, evaluate())
	test.DemandEquality(t, len(rec.persisted), 1)
	test.ExpectEquality(t, rec.persisted[0], 0)
	test.ExpectEquality(t, eng.Sequence(), 1)
}

func TestDebugLogging(t *testing.T) {
	cfg := capture.NewConfig()
	cfg.Window = scan.Window{HActive: 2, VActive: 2}
	cfg.Basename = "debug"

	run := func(debug bool) []write {
		cfg.Debug = debug
		d, rec := newEngine(t, cfg, capture.RGB444, capture.Sync)
		for range 3 {
			syncFrame(d, 3, 4, func(x, y int) uint16 { return uint16(x + y) })
			d.vsync()
		}
		return rec.writes
	}

	logger.Clear()
	quiet := run(false)
	w := &strings.Builder{}
	logger.Write(w)
	test.ExpectEquality(t, w.String(), "")

	loud := run(true)
	logger.Write(w)
	test.ExpectSuccess(t, strings.Contains(w.String(), "capture: rising edge on VS @ cycle #"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "capture: rising edge on HS @ cycle #"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "capture: save snapshot 0000 @ cycle #"))

	// debug output does not change what is captured
	test.DemandEquality(t, len(loud), len(quiet))
	for i := range loud {
		test.ExpectEquality(t, loud[i], quiet[i])
	}
}

func TestParse(t *testing.T) {
	for i, n := range capture.Colorspaces {
		cs, err := capture.ParseColorspace(strings.ToLower(n))
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, cs, capture.Colorspace(i))
		test.ExpectEquality(t, cs.String(), n)
	}
	_, err := capture.ParseColorspace("YUV411")
	test.ExpectSuccess(t, curated.Is(err, capture.UnknownColorspace))

	disc, err := capture.ParseDiscipline("de")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, disc, capture.Enable)
	disc, err = capture.ParseDiscipline("HV")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, disc, capture.Sync)
	_, err = capture.ParseDiscipline("VH")
	test.ExpectSuccess(t, curated.Is(err, capture.UnknownDiscipline))
}

func TestPixelErrorOnBoundary(t *testing.T) {
	cfg := capture.NewConfig()
	cfg.Window = scan.Window{HActive: 4, VActive: 2}
	cfg.Basename = "fail"

	eng, err := capture.NewEngine(cfg, capture.RGB444, capture.Sync)
	test.DemandSuccess(t, err)

	failure := errors.New("transient")
	rec := &recorder{width: 4, height: 2, failPixel: failure}
	eng.AddFrameSink(rec)
	eng.AddFrameTrigger(rec)

	// the sample at the top-left of the window coincides with the vsync edge
	s := signal.Sample{VSync: true}
	_, err = eng.Evaluate(0, s)
	test.DemandSuccess(t, err)

	s.Clock = true
	boundary, err := eng.Evaluate(1, s)
	test.ExpectSuccess(t, curated.Is(err, capture.SinkError))
	test.ExpectSuccess(t, errors.Is(err, failure))

	// the boundary is not lost to the error
	test.ExpectSuccess(t, boundary)
	test.ExpectEquality(t, eng.Frames(), 1)
	test.ExpectSuccess(t, eng.Armed())
	test.ExpectEquality(t, eng.State(), capture.StateInFrame)
	test.DemandEquality(t, len(rec.triggers), 1)
	test.ExpectEquality(t, rec.triggers[0], 1)

	h, v := eng.Position()
	test.ExpectEquality(t, h, 1)
	test.ExpectEquality(t, v, 0)
}

func TestPixelAndPersistErrors(t *testing.T) {
	cfg := capture.NewConfig()
	cfg.Window = scan.Window{HActive: 1, VActive: 1}
	cfg.Basename = "fail"

	eng, err := capture.NewEngine(cfg, capture.RGB444, capture.Enable)
	test.DemandSuccess(t, err)

	rec := &recorder{width: 1, height: 1}
	eng.AddFrameSink(rec)

	s := signal.Sample{DataEnable: true}
	evaluate := func(cycle uint64) (bool, error) {
		s.Clock = false
		_, err := eng.Evaluate(cycle, s)
		test.DemandSuccess(t, err)
		s.Clock = true
		return eng.Evaluate(cycle+1, s)
	}

	// first boundary arms
	_, err = evaluate(0)
	test.DemandSuccess(t, err)

	pixel := errors.New("pixel")
	persist := errors.New("persist")
	rec.failPixel = pixel
	rec.failPersist = persist

	boundary, err := evaluate(2)
	test.ExpectSuccess(t, boundary)
	test.ExpectSuccess(t, errors.Is(err, pixel))
	test.ExpectSuccess(t, errors.Is(err, persist))
	test.ExpectSuccess(t, curated.Has(err, capture.SinkError))
	test.ExpectEquality(t, eng.Sequence(), 0)
}

func TestDebugLoggingOrder(t *testing.T) {
	cfg := capture.NewConfig()
	cfg.Window = scan.Window{HActive: 2, VActive: 1}
	cfg.Debug = true

	// the end of the last line of a frame is logged before the frame boundary
	logger.Clear()
	d, _ := newEngine(t, cfg, capture.RGB444, capture.Enable)
	d.clock(signal.Sample{DataEnable: true})
	d.clock(signal.Sample{DataEnable: true})
	test.ExpectEquality(t, d.boundaries, 1)

	w := &strings.Builder{}
	logger.Write(w)
	hs := strings.Index(w.String(), "rising edge on HS")
	vs := strings.Index(w.String(), "rising edge on VS")
	test.DemandSuccess(t, hs >= 0 && vs >= 0, w.String())
	test.ExpectSuccess(t, hs < vs, w.String())

	// with sync signals the vertical sync is seen first
	logger.Clear()
	d, _ = newEngine(t, cfg, capture.RGB444, capture.Sync)
	d.clock(signal.Sample{HSync: true, VSync: true})

	w.Reset()
	logger.Write(w)
	hs = strings.Index(w.String(), "rising edge on HS")
	vs = strings.Index(w.String(), "rising edge on VS")
	test.DemandSuccess(t, hs >= 0 && vs >= 0, w.String())
	test.ExpectSuccess(t, vs < hs, w.String())

	logger.Clear()
}
