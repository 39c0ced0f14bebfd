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

//go:build linux

package gpiomem

import (
	"os"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/jetsetilly/iecserial/curated"
	"github.com/jetsetilly/iecserial/iec"
	"github.com/jetsetilly/iecserial/logger"
)

type fsel struct {
	reg   int
	shift uint
	mask  uint32
}

// GPIO is the memory mapped GPIO block.
//
// GPIO implements the iec.Lines interface.
type GPIO struct {
	f    *os.File
	mem  []byte
	regs []uint32

	pins  Pins
	masks pinMasks
	fsel  [5]fsel

	// the function select registers are read-modify-write. Release() can be
	// called from another goroutine to leave the bus safe on interrupt
	crit sync.Mutex
}

// Open the GPIO device at path and map the register block. Every connected
// line is released.
func Open(path string, pins Pins) (*GPIO, error) {
	if err := pins.Validate(); err != nil {
		return nil, err
	}

	masks, err := pins.masks()
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, curated.Errorf("gpiomem: %v", err)
	}

	mem, err := unix.Mmap(int(f.Fd()), 0, blockSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, curated.Errorf("gpiomem: %v", err)
	}

	g := &GPIO{
		f:     f,
		mem:   mem,
		regs:  unsafe.Slice((*uint32)(unsafe.Pointer(&mem[0])), len(mem)/4),
		pins:  pins,
		masks: masks,
	}

	for i, l := range lineOrder {
		n := pins.Pin(l)
		if n < 0 {
			continue
		}
		reg, shift, mask := functionSelect(n)
		g.fsel[i] = fsel{reg: reg, shift: shift, mask: mask}
	}

	g.Release(iec.AllLines)

	logger.Logf(logger.Allow, "gpiomem", "opened %s (%v)", path, pins)

	return g, nil
}

// Close releases every line and unmaps the register block.
func (g *GPIO) Close() error {
	g.Release(iec.AllLines)

	err := unix.Munmap(g.mem)
	g.mem = nil
	g.regs = nil

	if ferr := g.f.Close(); err == nil {
		err = ferr
	}
	if err != nil {
		return curated.Errorf("gpiomem: %v", err)
	}
	return nil
}

func (g *GPIO) setFunction(s iec.LineSet, fs uint32) {
	g.crit.Lock()
	defer g.crit.Unlock()

	for i, l := range lineOrder {
		if s&l != l || g.masks[i] == 0 {
			continue
		}
		f := g.fsel[i]
		v := atomic.LoadUint32(&g.regs[f.reg])
		v = (v &^ f.mask) | (fs << f.shift)
		atomic.StoreUint32(&g.regs[f.reg], v)
	}
}

// Assert implements the iec.Lines interface. The output latch is set low
// before the pin is switched to output so that the line is never driven high.
func (g *GPIO) Assert(s iec.LineSet) {
	atomic.StoreUint32(&g.regs[regClear], g.masks.combined(s))
	g.setFunction(s, fsOutput)
}

// Release implements the iec.Lines interface.
func (g *GPIO) Release(s iec.LineSet) {
	g.setFunction(s, fsInput)
}

// Sense implements the iec.Lines interface.
func (g *GPIO) Sense(s iec.LineSet) iec.LineSet {
	return g.masks.released(atomic.LoadUint32(&g.regs[regLevel]), s)
}
