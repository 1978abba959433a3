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
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/videoout/capture"
	"github.com/jetsetilly/videoout/capture/signal"
	"github.com/jetsetilly/videoout/modalflag"
	"github.com/jetsetilly/videoout/paths"
	"github.com/jetsetilly/videoout/pattern"
	"github.com/jetsetilly/videoout/trace"
)

func patternMode(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	timing := md.AddString("timing", "vga", fmt.Sprintf("timing of pattern: %v", pattern.TimingNames()))
	format := md.AddString("format", capture.RGB444.String(), fmt.Sprintf("colorspace of bus: %v", capture.Colorspaces))
	sync := md.AddString("sync", capture.Sync.String(), fmt.Sprintf("synchronisation discipline: %v", capture.Disciplines))
	depth := md.AddInt("depth", capture.NewConfig().Depth, "significant bits per channel")
	hpol := md.AddString("hpol", "POS", "polarity of horizontal sync: POS, NEG")
	vpol := md.AddString("vpol", "POS", "polarity of vertical sync: POS, NEG")
	frames := md.AddInt("frames", 2, "number of frames")
	md.AdditionalHelp("a profile for capturing the pattern is written alongside the trace")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	var fn string
	switch len(md.RemainingArgs()) {
	case 0:
		fn = paths.UniqueFilename("pattern", *timing) + ".trace"
	case 1:
		fn = md.GetArg(0)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	tm, err := pattern.LookupTiming(*timing)
	if err != nil {
		return err
	}
	cs, err := capture.ParseColorspace(*format)
	if err != nil {
		return err
	}
	disc, err := capture.ParseDiscipline(*sync)
	if err != nil {
		return err
	}

	g, err := pattern.NewGenerator(tm, cs, disc, *depth)
	if err != nil {
		return err
	}
	if g.HSyncPolarity, err = signal.ParsePolarity(*hpol); err != nil {
		return err
	}
	if g.VSyncPolarity, err = signal.ParsePolarity(*vpol); err != nil {
		return err
	}

	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := writePattern(f, g, *frames); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	prfName := strings.TrimSuffix(fn, filepath.Ext(fn)) + ".prefs"
	if err := writeProfile(prfName, g); err != nil {
		return err
	}

	fmt.Fprintf(output, "%s written to %s\n", g, fn)
	fmt.Fprintf(output, "profile written to %s\n", prfName)

	return nil
}

// writePattern writes the frames of the generator, followed by the tail, to
// the io.Writer as a trace.
func writePattern(w io.Writer, g *pattern.Generator, frames int) error {
	tw := trace.NewWriter(w)
	if err := tw.Comment(fmt.Sprintf("colour bars: %s", g)); err != nil {
		return err
	}
	for range frames {
		if err := g.Frame(tw.Write); err != nil {
			return err
		}
	}
	if err := g.Tail(tw.Write); err != nil {
		return err
	}
	return tw.Flush()
}

// writeProfile saves a profile matching the bus of the generator
func writeProfile(filename string, g *pattern.Generator) error {
	prf, err := capture.NewProfile(filename)
	if err != nil {
		return err
	}

	cfg := g.Config()
	settings := fmt.Sprintf("capture.format::%s; capture.sync::%s; capture.depth::%d; "+
		"capture.hsync::%s; capture.vsync::%s; "+
		"capture.hoffset::%d; capture.hactive::%d; capture.voffset::%d; capture.vactive::%d",
		g.Colorspace(), g.Discipline(), cfg.Depth,
		cfg.HSyncPolarity, cfg.VSyncPolarity,
		cfg.Window.HOffset, cfg.Window.HActive, cfg.Window.VOffset, cfg.Window.VActive)
	if err := prf.SetCommandLine(settings); err != nil {
		return err
	}

	return prf.Save()
}
