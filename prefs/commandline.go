// This file is part of IECserial.
//
// IECserial is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// IECserial is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with IECserial.  If not, see <https://www.gnu.org/licenses/>.

package prefs

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jetsetilly/iecserial/curated"
)

// MalformedCommandLine is returned by PushCommandLineStack() when one or more
// entries in the preferences string are not of the form "key::value".
const MalformedCommandLine = "prefs: malformed command line entry: %s"

// the separator between key and value on the command line. the disk format
// uses KeySep, which is the same token padded with spaces.
const cmdLineSep = "::"

// the separator between entries on the command line.
const cmdLineEntrySep = ";"

// a group of preferences given on the command line. values are removed from
// the group as they are used.
type cmdLineGroup map[string]string

func (g cmdLineGroup) String() string {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := make([]string, len(keys))
	for i, k := range keys {
		s[i] = fmt.Sprintf("%s%s%s", k, cmdLineSep, g[k])
	}
	return strings.Join(s, fmt.Sprintf("%s ", cmdLineEntrySep))
}

var cmdLine struct {
	crit  sync.Mutex
	stack []cmdLineGroup
}

// SizeCommandLineStack returns the number of groups that have been added with
// PushCommandLineStack().
func SizeCommandLineStack() int {
	cmdLine.crit.Lock()
	defer cmdLine.crit.Unlock()
	return len(cmdLine.stack)
}

// PopCommandLineStack forgets the most recent group added by
// PushCommandLineStack().
//
// Returns the entries of the group that were never used, in the command line
// format and sorted by key. An empty string means every entry was used.
func PopCommandLineStack() string {
	cmdLine.crit.Lock()
	defer cmdLine.crit.Unlock()

	if len(cmdLine.stack) == 0 {
		return ""
	}

	top := cmdLine.stack[len(cmdLine.stack)-1]
	cmdLine.stack = cmdLine.stack[:len(cmdLine.stack)-1]

	return top.String()
}

// PushCommandLineStack parses a preferences string of the form
// "key::value; key::value" and adds it as a new group. Entries that are
// malformed are skipped and reported in the returned error. The group is
// pushed even if an error is returned.
func PushCommandLineStack(prefs string) error {
	g := make(cmdLineGroup)
	var malformed []string

	for _, e := range strings.Split(prefs, cmdLineEntrySep) {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}

		kv := strings.Split(e, cmdLineSep)
		if len(kv) != 2 || strings.TrimSpace(kv[0]) == "" {
			malformed = append(malformed, e)
			continue
		}

		g[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}

	cmdLine.crit.Lock()
	cmdLine.stack = append(cmdLine.stack, g)
	cmdLine.crit.Unlock()

	if len(malformed) > 0 {
		return curated.Errorf(MalformedCommandLine, strings.Join(malformed, ", "))
	}
	return nil
}

// GetCommandLinePref returns the value for the key from the most recent
// group. The entry is removed from the group when it is returned.
func GetCommandLinePref(key string) (bool, Value) {
	cmdLine.crit.Lock()
	defer cmdLine.crit.Unlock()

	if len(cmdLine.stack) == 0 {
		return false, nil
	}

	g := cmdLine.stack[len(cmdLine.stack)-1]
	if v, ok := g[key]; ok {
		delete(g, key)
		return true, v
	}

	return false, nil
}
