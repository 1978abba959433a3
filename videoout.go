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
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"golang.org/x/sync/errgroup"

	"github.com/jetsetilly/videoout/capture"
	"github.com/jetsetilly/videoout/logger"
	"github.com/jetsetilly/videoout/modalflag"
	"github.com/jetsetilly/videoout/performance"
	"github.com/jetsetilly/videoout/renderers"
	"github.com/jetsetilly/videoout/statsview"
	"github.com/jetsetilly/videoout/version"
)

// exit statuses
const (
	exitParse = 10
	exitMode  = 20
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	exitVal := launch(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(exitVal)
}

// launch parses the top level of the command line and runs the selected
// mode. Returns the exit status of the program.
func launch(ctx context.Context, args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.AddSubModes("CAPTURE", "PATTERN", "REGRESS", "INFO", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParse
	}

	switch md.Mode() {
	case "CAPTURE":
		err = captureMode(ctx, md, output)

	case "PATTERN":
		err = patternMode(md, output)

	case "REGRESS":
		err = regressMode(ctx, md, output)

	case "INFO":
		err = infoMode(md, output)

	case "VERSION":
		fmt.Fprintln(output, version.String())
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md, err)
		return exitMode
	}

	return 0
}

// echo the log to stderr if requested
func setLogEcho(echo bool) {
	if echo {
		logger.SetEcho(logger.Terminal(os.Stderr), false)
	} else {
		logger.SetEcho(nil, false)
	}
}

// basename for the numbered trace. the first trace uses the basename
// unchanged
func basename(base string, n int) string {
	if base == "" || n == 0 {
		return base
	}
	return fmt.Sprintf("%s_%d", base, n)
}

func captureMode(ctx context.Context, md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	bus := addBusFlags(md)
	out := md.AddString("out", "frame", "basename of saved images. empty to save nothing")
	image := md.AddString("image", renderers.PNG.String(), fmt.Sprintf("image format: %v", renderers.Formats))
	scale := md.AddInt("scale", 1, "integer scaling of saved images")
	frames := md.AddInt("frames", 0, "stop after this many frames have been saved. zero for no limit")
	withDigest := md.AddBool("digest", false, "print video digest of each trace")
	debug := md.AddBool("debug", false, "log sync and snapshot events")
	log := md.AddBool("log", false, "echo log to stderr")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server on %s", statsview.DefaultAddress))
	mem := md.AddString("memviz", "", "write graphviz file of engine state after capture")
	jobs := md.AddInt("j", runtime.NumCPU(), "number of traces captured concurrently")
	cpuProfile := md.AddString("cpuprofile", "", "write cpu profile to file")
	memProfile := md.AddString("memprofile", "", "write memory profile to file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setLogEcho(*log)

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("trace file required for %s mode", md)
	}

	prf, err := bus.resolve(md)
	if err != nil {
		return err
	}
	cfg, cs, disc, err := prf.Config()
	if err != nil {
		return err
	}
	cfg.Debug = *debug

	format, err := renderers.ParseFormat(*image)
	if err != nil {
		return err
	}

	opts := sessionOptions{
		image:     format,
		scale:     *scale,
		maxFrames: *frames,
	}

	var sessions []*session
	for i, t := range md.RemainingArgs() {
		c := cfg
		c.Basename = basename(*out, i)
		s, err := newSession(t, c, cs, disc, opts)
		if err != nil {
			return err
		}
		sessions = append(sessions, s)
	}

	if *stats {
		stop := statsview.Launch(output, "")
		defer stop()
	}

	err = performance.RunProfiler(*cpuProfile, *memProfile, func() error {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(max(1, *jobs))
		for _, s := range sessions {
			g.Go(func() error {
				logger.Logf(logger.Allow, "videoout", "capturing %s", s)
				return s.run(gctx)
			})
		}
		return g.Wait()
	})

	summary(output, sessions, *withDigest)

	if *mem != "" {
		if merr := memvizDump(*mem, sessions); merr != nil && err == nil {
			err = merr
		}
	}

	return err
}

// engineState is the part of a session that is written by the -memviz flag
type engineState struct {
	Trace      string
	Config     capture.Config
	Colorspace capture.Colorspace
	Discipline capture.Discipline
	State      capture.State
	Armed      bool
	Sequence   int
	Frames     int
	HCount     int
	VCount     int
}

func memvizDump(filename string, sessions []*session) error {
	states := make([]*engineState, 0, len(sessions))
	for _, s := range sessions {
		h, v := s.eng.Position()
		states = append(states, &engineState{
			Trace:      s.trace,
			Config:     s.eng.Config(),
			Colorspace: s.eng.Colorspace(),
			Discipline: s.eng.Discipline(),
			State:      s.eng.State(),
			Armed:      s.eng.Armed(),
			Sequence:   s.eng.Sequence(),
			Frames:     s.eng.Frames(),
			HCount:     h,
			VCount:     v,
		})
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	memviz.Map(f, &states)
	return f.Close()
}

func regressMode(ctx context.Context, md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	bus := addBusFlags(md)
	expect := md.AddString("expect", "", "expected video digest")
	frames := md.AddInt("frames", 0, "stop after this many frames. zero for no limit")
	log := md.AddBool("log", false, "echo log to stderr")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setLogEcho(*log)

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("trace file required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	prf, err := bus.resolve(md)
	if err != nil {
		return err
	}
	cfg, cs, disc, err := prf.Config()
	if err != nil {
		return err
	}

	s, err := newSession(md.GetArg(0), cfg, cs, disc, sessionOptions{maxFrames: *frames})
	if err != nil {
		return err
	}

	if err := s.run(ctx); err != nil {
		return err
	}

	hash := s.dig.Hash()
	if *expect == "" {
		fmt.Fprintf(output, "%s (%d frames)\n", hash, s.eng.Frames())
		return nil
	}

	if !strings.EqualFold(strings.TrimSpace(*expect), hash) {
		return fmt.Errorf("digest mismatch: %s after %d frames", hash, s.eng.Frames())
	}

	fmt.Fprintf(output, "ok (%d frames)\n", s.eng.Frames())

	return nil
}

func infoMode(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	bus := addBusFlags(md)
	save := md.AddString("save", "", "save the resolved profile to file")
	md.AdditionalHelp("prints the capture configuration resolved from the profile and flags")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prf, err := bus.resolve(md)
	if err != nil {
		return err
	}
	cfg, cs, disc, err := prf.Config()
	if err != nil {
		return err
	}

	// check that the engine accepts the configuration
	eng, err := capture.NewEngine(cfg, cs, disc)
	if err != nil {
		return err
	}

	fmt.Fprintln(output, eng)
	if err := prf.Write(output); err != nil {
		return err
	}

	if *save != "" {
		f, err := os.Create(*save)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := prf.Write(f); err != nil {
			return err
		}
		return f.Close()
	}

	return nil
}
