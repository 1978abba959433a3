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
	"io"

	"github.com/jetsetilly/videoout/capture/scan"
	"github.com/jetsetilly/videoout/capture/signal"
	"github.com/jetsetilly/videoout/prefs"
)

// Profile is a description of a video bus that can be stored in a file and
// adjusted from the command line. See the prefs package for the file format.
type Profile struct {
	dsk *prefs.Disk

	Format   prefs.String
	Sync     prefs.String
	Depth    prefs.Int
	HSync    prefs.String
	VSync    prefs.String
	HOffset  prefs.Int
	HActive  prefs.Int
	VOffset  prefs.Int
	VActive  prefs.Int
	Debounce prefs.Int
}

func (p *Profile) String() string {
	return p.dsk.String()
}

// NewProfile is the preferred method of initialisation for the Profile type.
// The path is the file used by Load() and Save() and can be empty if the
// profile is never loaded or saved.
func NewProfile(path string) (*Profile, error) {
	p := &Profile{}

	validate := func(parse func(string) error) func(prefs.Value) error {
		return func(v prefs.Value) error {
			return parse(v.(string))
		}
	}
	p.Format.SetHookPre(validate(func(s string) error {
		_, err := ParseColorspace(s)
		return err
	}))
	p.Sync.SetHookPre(validate(func(s string) error {
		_, err := ParseDiscipline(s)
		return err
	}))
	polarity := validate(func(s string) error {
		_, err := signal.ParsePolarity(s)
		return err
	})
	p.HSync.SetHookPre(polarity)
	p.VSync.SetHookPre(polarity)

	p.SetDefaults()

	p.dsk = prefs.NewDisk(path)
	for _, e := range []struct {
		key string
		p   interface {
			String() string
			Set(prefs.Value) error
			Get() prefs.Value
			Reset() error
		}
	}{
		{"capture.format", &p.Format},
		{"capture.sync", &p.Sync},
		{"capture.depth", &p.Depth},
		{"capture.hsync", &p.HSync},
		{"capture.vsync", &p.VSync},
		{"capture.hoffset", &p.HOffset},
		{"capture.hactive", &p.HActive},
		{"capture.voffset", &p.VOffset},
		{"capture.vactive", &p.VActive},
		{"capture.debounce", &p.Debounce},
	} {
		if err := p.dsk.Add(e.key, e.p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all settings to default values. The default window is
// empty.
func (p *Profile) SetDefaults() {
	cfg := NewConfig()
	p.Format.Set(RGB444.String())
	p.Sync.Set(Sync.String())
	p.Depth.Set(cfg.Depth)
	p.HSync.Set(cfg.HSyncPolarity.String())
	p.VSync.Set(cfg.VSyncPolarity.String())
	p.HOffset.Set(0)
	p.HActive.Set(0)
	p.VOffset.Set(0)
	p.VActive.Set(0)
	p.Debounce.Set(cfg.Debounce)
}

// Load the profile from its file.
func (p *Profile) Load() error {
	return p.dsk.Load()
}

// Save the profile to its file.
func (p *Profile) Save() error {
	return p.dsk.Save()
}

// Write the profile in the file format to an io.Writer.
func (p *Profile) Write(w io.Writer) error {
	return p.dsk.Write(w)
}

// SetCommandLine changes the profile with a preferences string of the form
// "capture.depth::6; capture.sync::DE". Unknown keys are an error.
func (p *Profile) SetCommandLine(s string) error {
	return p.dsk.SetCommandLine(s)
}

// Config returns the capture configuration, colorspace and discipline
// described by the profile.
func (p *Profile) Config() (Config, Colorspace, Discipline, error) {
	cfg := NewConfig()

	cs, err := ParseColorspace(p.Format.String())
	if err != nil {
		return cfg, cs, Sync, err
	}
	disc, err := ParseDiscipline(p.Sync.String())
	if err != nil {
		return cfg, cs, disc, err
	}
	cfg.HSyncPolarity, err = signal.ParsePolarity(p.HSync.String())
	if err != nil {
		return cfg, cs, disc, err
	}
	cfg.VSyncPolarity, err = signal.ParsePolarity(p.VSync.String())
	if err != nil {
		return cfg, cs, disc, err
	}

	cfg.Depth = p.Depth.Get().(int)
	cfg.Debounce = p.Debounce.Get().(int)
	cfg.Window = scan.Window{
		HOffset: p.HOffset.Get().(int),
		HActive: p.HActive.Get().(int),
		VOffset: p.VOffset.Get().(int),
		VActive: p.VActive.Get().(int),
	}

	return cfg, cs, disc, nil
}
