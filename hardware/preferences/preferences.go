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

// Package preferences collates the preference values for the bus hardware:
// how the bus lines are wired to the GPIO pins, where the GPIO device is, and
// the default device and serial settings for the command line tools.
package preferences

import (
	"github.com/jetsetilly/iecserial/hardware/gpiomem"
	"github.com/jetsetilly/iecserial/iec"
	"github.com/jetsetilly/iecserial/paths"
	"github.com/jetsetilly/iecserial/prefs"
	"github.com/jetsetilly/iecserial/session"
	"github.com/jetsetilly/iecserial/transport"
)

// Preferences defines and collates all the preference values used by the
// bus hardware.
type Preferences struct {
	dsk *prefs.Disk

	// path to the GPIO memory device
	GPIOMem prefs.String

	// BCM pin number for each line. a negative number means the line is not
	// connected
	PinATN  prefs.Int
	PinCLK  prefs.Int
	PinDATA prefs.Int
	PinSRQ  prefs.Int
	PinRST  prefs.Int

	// default device address. a secondary address of -1 means no secondary
	// address is sent
	Device    prefs.Int
	Secondary prefs.Int

	// speed of the serial port when the input is a serial device
	Baud prefs.Int
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from the preferences file in the
// resource directory.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return newPreferences(pth)
}

func newPreferences(pth string) (*Preferences, error) {
	p := &Preferences{}

	p.PinATN.SetRange(-1, gpiomem.MaxPin)
	p.PinCLK.SetRange(-1, gpiomem.MaxPin)
	p.PinDATA.SetRange(-1, gpiomem.MaxPin)
	p.PinSRQ.SetRange(-1, gpiomem.MaxPin)
	p.PinRST.SetRange(-1, gpiomem.MaxPin)
	p.Device.SetRange(0, iec.MaxPrimary)
	p.Secondary.SetRange(session.NoSecondary, iec.MaxSecondary)
	p.Baud.SetRange(1, 4000000)

	p.SetDefaults()

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	for _, e := range []struct {
		key string
		v   interface {
			Set(prefs.Value) error
			Get() prefs.Value
			Reset() error
			String() string
		}
	}{
		{key: "iec.gpiomem", v: &p.GPIOMem},
		{key: "iec.pin.atn", v: &p.PinATN},
		{key: "iec.pin.clk", v: &p.PinCLK},
		{key: "iec.pin.data", v: &p.PinDATA},
		{key: "iec.pin.srq", v: &p.PinSRQ},
		{key: "iec.pin.rst", v: &p.PinRST},
		{key: "iec.device", v: &p.Device},
		{key: "iec.secondary", v: &p.Secondary},
		{key: "transport.baud", v: &p.Baud},
	} {
		if err := p.dsk.Add(e.key, e.v); err != nil {
			return nil, err
		}
	}

	if err := p.dsk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	p.GPIOMem.Set(gpiomem.DefaultPath)
	p.PinATN.Set(gpiomem.DefaultPins.ATN)
	p.PinCLK.Set(gpiomem.DefaultPins.CLK)
	p.PinDATA.Set(gpiomem.DefaultPins.DATA)
	p.PinSRQ.Set(gpiomem.DefaultPins.SRQ)
	p.PinRST.Set(gpiomem.DefaultPins.RST)
	p.Device.Set(4)
	p.Secondary.Set(session.NoSecondary)
	p.Baud.Set(transport.DefaultBaud)
}

// Pins returns the pin preferences in the form required by the gpiomem
// package.
func (p *Preferences) Pins() gpiomem.Pins {
	return gpiomem.Pins{
		ATN:  p.PinATN.Get().(int),
		CLK:  p.PinCLK.Get().(int),
		DATA: p.PinDATA.Get().(int),
		SRQ:  p.PinSRQ.Get().(int),
		RST:  p.PinRST.Get().(int),
	}
}

// Target returns the default device address.
func (p *Preferences) Target() session.Target {
	return session.Target{
		Device:    uint8(p.Device.Get().(int)),
		Secondary: p.Secondary.Get().(int),
	}
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
