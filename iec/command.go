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

package iec

import (
	"github.com/jetsetilly/iecserial/curated"
	"github.com/jetsetilly/iecserial/logger"
)

// Command bytes. The address of the device is ORed into the Listen, Talk and
// Secondary commands.
const (
	CmdListen    = 0x20
	CmdTalk      = 0x40
	CmdSecondary = 0x60
	CmdUnlisten  = 0x3f
	CmdUntalk    = 0x5f
)

// Valid address ranges. Primary address 31 is reserved because it would form
// the Unlisten and Untalk commands.
const (
	MaxPrimary   = 30
	MaxSecondary = 31
)

func checkPrimary(pad uint8) error {
	if pad > MaxPrimary {
		return curated.Errorf(InvalidAddress, "primary", pad)
	}
	return nil
}

func checkSecondary(sad uint8) error {
	if sad > MaxSecondary {
		return curated.Errorf(InvalidAddress, "secondary", sad)
	}
	return nil
}

// Command sends one or more command bytes to the bus under ATN. Devices
// respond to ATN by asserting DATA and if no device does so the lines are
// released and the NoDevice error is returned.
//
// An empty command is rejected without touching the bus.
func (b *Bus) Command(cmds ...uint8) error {
	if len(cmds) == 0 {
		return curated.Errorf(EmptyCommand)
	}

	b.crit.Lock()
	defer b.crit.Unlock()
	return b.command(cmds...)
}

func (b *Bus) command(cmds ...uint8) error {
	b.status = StatusOk

	b.lines.Release(DATA)
	b.lines.Assert(ATN)
	b.lines.Assert(CLK)

	if b.waitAssertionOrTimeout(DATA, TimeAttentionResponse) {
		b.status = StatusNoDevice
		b.releaseAll()
		logger.Logf(logger.Allow, "iec", "no response to command 0x%02x", cmds[0])
		return curated.Errorf(NoDevice)
	}

	err := b.sendBytes(cmds, false)

	b.clk.Delay(TimeReleaseATN)
	b.lines.Release(ATN)
	b.clk.Delay(TimeTalkRelease)

	if err != nil {
		logger.Log(logger.Allow, "iec", err)
	}
	return err
}

// Listen commands the device at the primary address to listen.
func (b *Bus) Listen(pad uint8) error {
	if err := checkPrimary(pad); err != nil {
		return err
	}

	b.crit.Lock()
	defer b.crit.Unlock()
	return b.command(CmdListen | pad)
}

// ListenSecondary commands the device at the primary address to listen on
// the secondary address. Both command bytes are sent in the same attention
// sequence.
func (b *Bus) ListenSecondary(pad uint8, sad uint8) error {
	if err := checkPrimary(pad); err != nil {
		return err
	}
	if err := checkSecondary(sad); err != nil {
		return err
	}

	b.crit.Lock()
	defer b.crit.Unlock()
	return b.command(CmdListen|pad, CmdSecondary|sad)
}

// Talk commands the device at the primary address to talk. After the
// command the controller hands the CLK line to the device and becomes the
// listener.
func (b *Bus) Talk(pad uint8) error {
	if err := checkPrimary(pad); err != nil {
		return err
	}

	b.crit.Lock()
	defer b.crit.Unlock()

	if err := b.command(CmdTalk | pad); err != nil {
		return err
	}
	return b.turnaround()
}

// TalkSecondary is the same as Talk but with a secondary address.
func (b *Bus) TalkSecondary(pad uint8, sad uint8) error {
	if err := checkPrimary(pad); err != nil {
		return err
	}
	if err := checkSecondary(sad); err != nil {
		return err
	}

	b.crit.Lock()
	defer b.crit.Unlock()

	if err := b.command(CmdTalk|pad, CmdSecondary|sad); err != nil {
		return err
	}
	return b.turnaround()
}

// Untalk commands all talkers to stop talking. The lines are released
// whatever the outcome of the command.
func (b *Bus) Untalk() error {
	b.crit.Lock()
	defer b.crit.Unlock()

	err := b.command(CmdUntalk)
	b.releaseAll()
	return err
}

// Unlisten commands all listeners to stop listening. The lines are released
// whatever the outcome of the command.
func (b *Bus) Unlisten() error {
	b.crit.Lock()
	defer b.crit.Unlock()

	err := b.command(CmdUnlisten)
	b.releaseAll()
	return err
}
