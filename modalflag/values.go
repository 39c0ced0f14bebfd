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

package modalflag

import (
	"fmt"
	"strconv"
	"strings"
)

// choice is a flag.Value that only accepts one of a list of strings. Values
// are case insensitive and stored in upper case.
type choice struct {
	value   string
	choices []string
}

func (c *choice) String() string {
	return c.value
}

func (c *choice) Set(s string) error {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, o := range c.choices {
		if s == o {
			c.value = s
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(c.choices, ", "))
}

// AddChoice flag for next call to Parse(). The flag only accepts a value from
// the choices list. The usage string is extended with the list of choices.
func (md *Modes) AddChoice(name string, value string, choices []string, usage string) *string {
	c := &choice{value: strings.ToUpper(value)}
	for _, o := range choices {
		c.choices = append(c.choices, strings.ToUpper(o))
	}
	md.flags.Var(c, name, fmt.Sprintf("%s: %s", usage, strings.Join(c.choices, ", ")))
	return &c.value
}

// intRange is a flag.Value that only accepts integers in a range.
type intRange struct {
	value int
	min   int
	max   int
}

func (r *intRange) String() string {
	return strconv.Itoa(r.value)
}

func (r *intRange) Set(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if v < r.min || v > r.max {
		return fmt.Errorf("must be between %d and %d", r.min, r.max)
	}
	r.value = v
	return nil
}

// AddIntRange flag for next call to Parse(). The flag only accepts values
// between min and max inclusive. The default value is not checked and so can
// be used to mean that the flag was not given.
func (md *Modes) AddIntRange(name string, value int, min int, max int, usage string) *int {
	r := &intRange{value: value, min: min, max: max}
	md.flags.Var(r, name, usage)
	return &r.value
}
