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

	"github.com/jetsetilly/videoout/capture"
	"github.com/jetsetilly/videoout/modalflag"
	"github.com/jetsetilly/videoout/paths"
	"github.com/jetsetilly/videoout/prefs"
)

// busFlags are the flags that describe the bus being captured. They are
// shared by the CAPTURE, REGRESS and INFO modes.
type busFlags struct {
	profile *string
	prefs   *string

	format *string
	sync   *string
	depth  *int
	hpol   *string
	vpol   *string

	hoffset  *int
	hactive  *int
	voffset  *int
	vactive  *int
	debounce *int
}

func addBusFlags(md *modalflag.Modes) *busFlags {
	cfg := capture.NewConfig()
	return &busFlags{
		profile:  md.AddString("profile", "", "device profile (name or file)"),
		prefs:    md.AddString("prefs", "", "profile values (eg. 'capture.depth::6; capture.sync::DE')"),
		format:   md.AddString("format", capture.RGB444.String(), fmt.Sprintf("colorspace of bus: %v", capture.Colorspaces)),
		sync:     md.AddString("sync", capture.Sync.String(), fmt.Sprintf("synchronisation discipline: %v", capture.Disciplines)),
		depth:    md.AddInt("depth", cfg.Depth, "significant bits per channel"),
		hpol:     md.AddString("hpol", cfg.HSyncPolarity.String(), "polarity of horizontal sync: POS, NEG"),
		vpol:     md.AddString("vpol", cfg.VSyncPolarity.String(), "polarity of vertical sync: POS, NEG"),
		hoffset:  md.AddInt("hoffset", 0, "first active column after horizontal sync"),
		hactive:  md.AddInt("hactive", 0, "width of active area"),
		voffset:  md.AddInt("voffset", 0, "first active line after vertical sync"),
		vactive:  md.AddInt("vactive", 0, "height of active area"),
		debounce: md.AddInt("debounce", cfg.Debounce, "minimum clocks between counted horizontal syncs"),
	}
}

// resolve builds the capture profile. Values are taken from the profile
// file, then the preferences string and finally from any flags that were
// set explicitly.
func (f *busFlags) resolve(md *modalflag.Modes) (*capture.Profile, error) {
	var pth string
	if *f.profile != "" {
		pth = paths.ProfilePath(*f.profile)
	}

	prf, err := capture.NewProfile(pth)
	if err != nil {
		return nil, err
	}

	if pth != "" {
		if err := prf.Load(); err != nil {
			return nil, err
		}
	}

	if *f.prefs != "" {
		if err := prf.SetCommandLine(*f.prefs); err != nil {
			return nil, err
		}
	}

	for _, o := range []struct {
		flag  string
		pref  interface{ Set(prefs.Value) error }
		value any
	}{
		{"format", &prf.Format, *f.format},
		{"sync", &prf.Sync, *f.sync},
		{"depth", &prf.Depth, *f.depth},
		{"hpol", &prf.HSync, *f.hpol},
		{"vpol", &prf.VSync, *f.vpol},
		{"hoffset", &prf.HOffset, *f.hoffset},
		{"hactive", &prf.HActive, *f.hactive},
		{"voffset", &prf.VOffset, *f.voffset},
		{"vactive", &prf.VActive, *f.vactive},
		{"debounce", &prf.Debounce, *f.debounce},
	} {
		if !md.Visited(o.flag) {
			continue
		}
		if err := o.pref.Set(o.value); err != nil {
			return nil, fmt.Errorf("-%s: %w", o.flag, err)
		}
	}

	return prf, nil
}
