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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jetsetilly/videoout/capture"
	"github.com/jetsetilly/videoout/digest"
	"github.com/jetsetilly/videoout/logger"
	"github.com/jetsetilly/videoout/renderers"
	"github.com/jetsetilly/videoout/trace"
)

// how often, in samples, a running session checks for cancellation
const cancelInterval = 1 << 16

// session captures a single trace file with its own engine and sinks.
// Sessions share nothing and can be run concurrently.
type session struct {
	trace string

	eng *capture.Engine
	img *renderers.ImageFile
	dig *digest.Video

	// stop after this many frames. persisted frames are counted if there
	// is an image sink, otherwise completed frames. zero for no limit
	maxFrames int

	samples int
	elapsed time.Duration
}

type sessionOptions struct {
	image renderers.Format
	scale int

	maxFrames int
}

// newSession prepares a session for the trace file. Images are only saved if
// the configuration has a base name and the active area is not empty.
func newSession(trace string, cfg capture.Config, cs capture.Colorspace, disc capture.Discipline, opts sessionOptions) (*session, error) {
	eng, err := capture.NewEngine(cfg, cs, disc)
	if err != nil {
		return nil, err
	}

	s := &session{
		trace:     trace,
		eng:       eng,
		dig:       digest.NewVideo(cfg.Window.HActive, cfg.Window.VActive),
		maxFrames: opts.maxFrames,
	}

	if cs.Subsampled() && cfg.Window.HActive%2 == 1 {
		logger.Logf(logger.Allow, "videoout", "%s: active width of %d is odd. the last column of %s is not captured", trace, cfg.Window.HActive, cs)
	}

	eng.AddFrameSink(s.dig)
	eng.AddFrameTrigger(s.dig)

	if cfg.Basename != "" {
		if cfg.Window.Empty() {
			logger.Logf(logger.Allow, "videoout", "%s: active area is empty. no images will be saved", trace)
		} else {
			s.img, err = renderers.NewImageFile(cfg.Basename, cfg.Window.HActive, cfg.Window.VActive, opts.image, opts.scale)
			if err != nil {
				return nil, err
			}
			eng.AddFrameSink(s.img)
		}
	}

	return s, nil
}

func (s *session) String() string {
	return fmt.Sprintf("%s: %s", s.trace, s.eng)
}

// done returns true if the frame limit has been reached
func (s *session) done() bool {
	if s.maxFrames <= 0 {
		return false
	}
	if s.img != nil {
		return s.eng.Sequence() >= s.maxFrames
	}
	return s.eng.Frames() >= s.maxFrames
}

// run the session until the end of the trace, the frame limit or the
// cancellation of the context.
func (s *session) run(ctx context.Context) error {
	f, err := os.Open(s.trace)
	if err != nil {
		return err
	}
	defer f.Close()

	return s.read(ctx, bufio.NewReader(f))
}

func (s *session) read(ctx context.Context, r io.Reader) error {
	start := time.Now()
	defer func() {
		s.elapsed = time.Since(start)
	}()

	rd := trace.NewReader(r)

	for {
		if s.samples%cancelInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		smp, err := rd.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("%s: %w", s.trace, err)
		}
		s.samples++

		boundary, err := s.eng.Evaluate(uint64(s.samples), smp)
		if err != nil {
			return fmt.Errorf("%s: %w", s.trace, err)
		}

		if boundary && s.done() {
			return nil
		}
	}
}
