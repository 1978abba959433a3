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

package prefs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/jetsetilly/videoout/curated"
)

// Sentinal error patterns for the prefs package.
const (
	DuplicateKey  = "prefs: duplicate key (%s)"
	InvalidKey    = "prefs: invalid key (%s)"
	UnknownKey    = "prefs: line %d: unknown key (%s)"
	MalformedLine = "prefs: line %d: malformed entry (%s)"
	InvalidValue  = "prefs: line %d: %v"
	UnusedPrefs   = "prefs: unknown preferences (%s)"
	DiskError     = "prefs: %v"
)

// Boilerplate is written at the head of every file saved by a Disk.
const Boilerplate = "# videoout preferences. lines are of the form 'key :: value'"

// separator between key and value in a file
const separator = " :: "

// Disk is a collection of preference values that can be saved to and loaded
// from a file. Each line of the file is a key/value pair:
//
//	key :: value
//
// Blank lines and lines beginning with # are ignored. Keys in the file that
// have not been added to the Disk are an error.
type Disk struct {
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) *Disk {
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}
}

// Path returns the filename used by Load() and Save().
func (dsk *Disk) Path() string {
	return dsk.path
}

// Add a preference value to the disk. Keys must be unique and contain no
// whitespace.
func (dsk *Disk) Add(key string, p pref) error {
	if key == "" || strings.ContainsAny(key, " \t\n;:") {
		return curated.Errorf(InvalidKey, key)
	}
	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf(DuplicateKey, key)
	}
	dsk.entries[key] = p
	return nil
}

func (dsk *Disk) String() string {
	s := strings.Builder{}
	for _, k := range dsk.Keys() {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, separator, dsk.entries[k]))
	}
	return s.String()
}

// Keys returns the sorted list of keys that have been added to the disk.
func (dsk *Disk) Keys() []string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Reset all preference values to their zero value.
func (dsk *Disk) Reset() error {
	for _, k := range dsk.Keys() {
		if err := dsk.entries[k].Reset(); err != nil {
			return curated.Errorf(DiskError, err)
		}
	}
	return nil
}

// Load preference values from the disk's file.
func (dsk *Disk) Load() error {
	f, err := os.Open(dsk.path)
	if err != nil {
		return curated.Errorf(DiskError, err)
	}
	defer f.Close()
	return dsk.Read(f)
}

// Read preference values from an io.Reader. Values that are not mentioned
// are left unchanged.
func (dsk *Disk) Read(r io.Reader) error {
	scanner := bufio.NewScanner(r)

	var lineNum int
	for scanner.Scan() {
		lineNum++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "::")
		if !ok {
			return curated.Errorf(MalformedLine, lineNum, line)
		}
		key = strings.TrimSpace(key)

		p, ok := dsk.entries[key]
		if !ok {
			return curated.Errorf(UnknownKey, lineNum, key)
		}
		if err := p.Set(strings.TrimSpace(value)); err != nil {
			return curated.Errorf(InvalidValue, lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return curated.Errorf(DiskError, err)
	}

	return nil
}

// Save preference values to the disk's file. The file is replaced.
func (dsk *Disk) Save() error {
	f, err := os.Create(dsk.path)
	if err != nil {
		return curated.Errorf(DiskError, err)
	}

	err = dsk.Write(f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = curated.Errorf(DiskError, cerr)
	}
	return err
}

// Write preference values to an io.Writer in the same format used by Save().
func (dsk *Disk) Write(w io.Writer) error {
	if _, err := io.WriteString(w, fmt.Sprintf("%s\n%s", Boilerplate, dsk)); err != nil {
		return curated.Errorf(DiskError, err)
	}
	return nil
}

// SetCommandLine sets preference values from a command line preferences
// string. See PushCommandLineStack() for the format. Keys in the string that
// have not been added to the disk are an error.
func (dsk *Disk) SetCommandLine(prefs string) error {
	PushCommandLineStack(prefs)

	for _, k := range dsk.Keys() {
		if ok, v := GetCommandLinePref(k); ok {
			if err := dsk.entries[k].Set(v); err != nil {
				PopCommandLineStack()
				return curated.Errorf(DiskError, err)
			}
		}
	}

	if unused := PopCommandLineStack(); unused != "" {
		return curated.Errorf(UnusedPrefs, unused)
	}

	return nil
}
