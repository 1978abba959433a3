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
	"errors"
	"fmt"
	"image/color"

	"github.com/jetsetilly/videoout/capture/chroma"
	"github.com/jetsetilly/videoout/capture/colourconv"
	"github.com/jetsetilly/videoout/capture/scan"
	"github.com/jetsetilly/videoout/capture/signal"
	"github.com/jetsetilly/videoout/curated"
	"github.com/jetsetilly/videoout/logger"
)

// State of the engine.
type State int

// List of valid State values.
const (
	// no frame boundary has been seen yet
	StateWaitVSync State = iota

	// at least one frame boundary has been seen
	StateInFrame
)

func (s State) String() string {
	switch s {
	case StateWaitVSync:
		return "waiting for vsync"
	case StateInFrame:
		return "in frame"
	}
	return "unknown"
}

// Engine decodes a clocked video bus and forwards the pixels to the
// registered sinks.
type Engine struct {
	cfg        Config
	colorspace Colorspace
	discipline Discipline
	depth      colourconv.Depth

	// debug logging is controlled by the debug flag of the configuration
	debug logger.Permission

	// either a tracker or a reconstructor is used depending on the
	// colorspace
	tracker scan.Tracker
	recon   *chroma.Reconstructor

	// even half of a YUV422 pair
	pair chroma.Pair

	sinks    []FrameSink
	triggers []FrameTrigger

	// clock level at the previous call to Evaluate()
	prevClock bool

	state    State
	armed    bool
	seq      int
	frameNum int
}

// NewEngine is the preferred method of initialisation for the Engine type.
// The YUV420 colorspace can only be used with the Enable discipline.
func NewEngine(cfg Config, colorspace Colorspace, discipline Discipline) (*Engine, error) {
	if colorspace < RGB444 || colorspace > YUV420 {
		return nil, curated.Errorf(UnknownColorspace, colorspace)
	}

	e := &Engine{
		cfg:        cfg,
		colorspace: colorspace,
		discipline: discipline,
		depth:      colourconv.NewDepth(cfg.Depth),
		debug:      logger.Flag(cfg.Debug),
		state:      StateWaitVSync,
	}

	switch discipline {
	case Sync:
		if colorspace == YUV420 {
			return nil, curated.Errorf(UnsupportedPairing, colorspace, discipline)
		}
		e.tracker = scan.NewSync(cfg.Window, cfg.HSyncPolarity, cfg.VSyncPolarity, cfg.Debounce)
	case Enable:
		if colorspace == YUV420 {
			e.recon = chroma.NewReconstructor(e.depth, cfg.Window.HActive, cfg.Window.VActive)
		} else {
			e.tracker = scan.NewEnable(cfg.Window)
		}
	default:
		return nil, curated.Errorf(UnknownDiscipline, discipline)
	}

	return e, nil
}

func (e *Engine) String() string {
	return fmt.Sprintf("%s/%s %s", e.colorspace, e.discipline, e.cfg.Window)
}

// AddFrameSink registers an (additional) implementation of FrameSink.
func (e *Engine) AddFrameSink(s FrameSink) {
	e.sinks = append(e.sinks, s)
}

// AddFrameTrigger registers an (additional) implementation of FrameTrigger.
func (e *Engine) AddFrameTrigger(t FrameTrigger) {
	e.triggers = append(e.triggers, t)
}

// Config returns a copy of the configuration used by the engine.
func (e *Engine) Config() Config {
	return e.cfg
}

// Colorspace returns the colorspace the engine was created with.
func (e *Engine) Colorspace() Colorspace {
	return e.colorspace
}

// Discipline returns the discipline the engine was created with.
func (e *Engine) Discipline() Discipline {
	return e.discipline
}

// Position returns the current horizontal and vertical counts. For the
// YUV420 colorspace the horizontal count is always zero and the vertical
// count is the next output line.
func (e *Engine) Position() (int, int) {
	if e.recon != nil {
		v, _, _ := e.recon.Position()
		return 0, v
	}
	return e.tracker.Position()
}

// State returns the current state of the engine.
func (e *Engine) State() State {
	return e.state
}

// Armed returns true if the next frame boundary will persist a frame.
func (e *Engine) Armed() bool {
	return e.armed
}

// Sequence returns the sequence number that will be given to the next
// persisted frame. It is also the number of frames persisted so far.
func (e *Engine) Sequence() int {
	return e.seq
}

// Frames returns the number of frame boundaries seen.
func (e *Engine) Frames() int {
	return e.frameNum
}

// Evaluate should be called once for every change in the bus signals. The
// cycle argument is used only for logging. Work is only done on a rising
// edge of the clock.
//
// Returns true if a frame boundary was reached. Errors from the sinks are
// returned after the sample has been fully processed, so a frame boundary is
// never lost to an error. The engine remains usable after an error.
func (e *Engine) Evaluate(cycle uint64, s signal.Sample) (bool, error) {
	defer func() {
		e.prevClock = s.Clock
	}()

	if !signal.Rising(e.prevClock, s.Clock) {
		return false, nil
	}

	if e.recon != nil {
		ev, err := e.recon.Sample(s, e.plot)
		if ev.Emitted {
			logger.Logf(e.debug, "capture", "lines %d and %d @ cycle #%d", ev.Line, ev.Line+1, cycle)
		}
		if ev.Overwritten {
			logger.Logf(logger.Allow, "capture", "lines %d and %d overwritten before output @ cycle #%d", ev.Line, ev.Line+1, cycle)
		}
		if !ev.Boundary {
			return false, err
		}
		return true, joinErrors(err, e.boundary(cycle))
	}

	st := e.tracker.Step(s)

	// a failed pixel does not prevent the end of line or the frame boundary
	// being handled. the tracker has already moved on
	var err error
	if st.Active {
		err = e.pixel(st.X, st.Y, s.Channels)
	}

	// the sync discipline sees the vertical sync before the horizontal sync.
	// the enable discipline ends the line before it ends the frame
	var berr error
	if st.Boundary && e.discipline == Sync {
		berr = e.vsync(cycle)
	}

	if st.EndOfLine {
		logger.Logf(e.debug, "capture", "rising edge on HS @ cycle #%d (vcount = %d)", cycle, st.Line)
	}

	if st.Boundary && e.discipline != Sync {
		berr = e.vsync(cycle)
	}

	return st.Boundary, joinErrors(err, berr)
}

// joinErrors returns the pixel error and the boundary error. a single error
// is returned unchanged so that it can be tested with curated.Is()
func joinErrors(pixel error, boundary error) error {
	switch {
	case boundary == nil:
		return pixel
	case pixel == nil:
		return boundary
	}
	return errors.Join(pixel, boundary)
}

func (e *Engine) vsync(cycle uint64) error {
	logger.Logf(e.debug, "capture", "rising edge on VS @ cycle #%d", cycle)
	return e.boundary(cycle)
}

// pixel decodes the channels of a sample according to the colorspace
func (e *Engine) pixel(x int, y int, ch [signal.NumChannels]uint16) error {
	switch e.colorspace {
	case RGB444:
		return e.plot(x, y, e.depth.RGB(ch[signal.Red], ch[signal.Green], ch[signal.Blue]))
	case YUV444:
		return e.plot(x, y, e.depth.YUV(ch[signal.Luma], ch[signal.Cb], ch[signal.Cr]))
	case YUV422:
		if x&1 == 0 {
			e.pair.Even(ch[signal.Luma], ch[signal.Chroma])
			return nil
		}
		even, odd := e.pair.Odd(e.depth, ch[signal.Luma], ch[signal.Chroma])
		if err := e.plot(x-1, y, even); err != nil {
			return err
		}
		return e.plot(x, y, odd)
	}
	return nil
}

// plot sends a pixel to every sink. pixels outside the active area are
// dropped
func (e *Engine) plot(x int, y int, col color.RGBA) error {
	if x < 0 || x >= e.cfg.Window.HActive || y < 0 || y >= e.cfg.Window.VActive {
		return nil
	}
	for _, s := range e.sinks {
		if err := s.SetPixel(x, y, col.R, col.G, col.B); err != nil {
			return curated.Errorf(SinkError, err)
		}
	}
	return nil
}

// boundary persists the completed frame if the engine is armed and notifies
// the frame triggers
func (e *Engine) boundary(cycle uint64) error {
	e.state = StateInFrame

	if e.armed {
		logger.Logf(e.debug, "capture", "save snapshot %04d @ cycle #%d", e.seq, cycle)
		for _, s := range e.sinks {
			if err := s.Persist(e.seq); err != nil {
				return curated.Errorf(SinkError, err)
			}
		}
		e.seq++
	}

	if e.cfg.Basename != "" {
		e.armed = true
	}

	e.frameNum++
	for _, t := range e.triggers {
		if err := t.NewFrame(e.frameNum); err != nil {
			return curated.Errorf(SinkError, err)
		}
	}

	return nil
}
