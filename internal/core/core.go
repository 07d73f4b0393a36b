// Package core assembles the cartridge, bus, PPU, timer, serial port and
// CPU into a runnable machine and drives them forward in lockstep.
package core

import (
	"fmt"

	"github.com/pxlforge/dmgcore/internal/bus"
	"github.com/pxlforge/dmgcore/internal/cart"
	"github.com/pxlforge/dmgcore/internal/cpu"
	"github.com/pxlforge/dmgcore/internal/debug"
	"github.com/pxlforge/dmgcore/internal/irq"
	"github.com/pxlforge/dmgcore/internal/ppu"
	"github.com/pxlforge/dmgcore/internal/render"
	"github.com/pxlforge/dmgcore/internal/serial"
	"github.com/pxlforge/dmgcore/internal/timer"
)

// Config carries the options Machine needs at construction. Beyond this
// point tracing, scaling and windowing belong to the caller (cmd/gbemu).
type Config struct {
	// FixedSerialTiming makes the serial port wait out its real transfer
	// duration rather than completing writes immediately; blargg's test
	// ROMs run under either, but fixed timing matches hardware generally.
	FixedSerialTiming bool
}

// Machine wires one Game Boy together: cartridge, bus, PPU, timer, serial
// port, interrupt controller and CPU, advanced one machine cycle at a time.
type Machine struct {
	Cart       *cart.Cartridge
	Bus        *bus.Bus
	PPU        *ppu.PPU
	Timer      *timer.Timer
	Serial     *serial.Sink
	Controller *irq.Controller
	CPU        *cpu.CPU
}

// New builds a Machine from ROM bytes and a renderer. It returns an error
// only if the ROM fails the header/size checks cart.NewCartridge enforces.
func New(rom []byte, r render.Renderer, cfg Config) (*Machine, error) {
	c, err := cart.NewCartridge(rom)
	if err != nil {
		return nil, fmt.Errorf("core: load cartridge: %w", err)
	}

	ic := &irq.Controller{}
	p := ppu.New(ic, r)
	t := timer.New(ic)

	var opts []serial.Option
	if cfg.FixedSerialTiming {
		opts = append(opts, serial.WithFixedTiming())
	}
	s := serial.New(ic, opts...)

	b := bus.New(c, ic, p, t, s)
	cp := cpu.New(b, ic)

	m := &Machine{
		Cart: c, Bus: b, PPU: p, Timer: t, Serial: s, Controller: ic, CPU: cp,
	}
	m.Reset()
	return m, nil
}

// SetObserver installs a memory-access observer for debugging tools.
func (m *Machine) SetObserver(o debug.Observer) { m.Bus.SetObserver(o) }

// Reset restores every component to its documented post-boot-ROM state,
// per the reset ordering in §3: hardware blocks first, CPU last so its
// registers are the final, authoritative state a caller observes.
func (m *Machine) Reset() {
	m.Controller.Reset()
	m.PPU.Reset()
	m.Timer.Reset()
	m.Serial.Reset()
	m.CPU.Reset()
}

// Tick advances every component by exactly one machine cycle, in the fixed
// order the bus's DMA stepping and the PPU's dot clock depend on: timer and
// PPU each take four dot-clock ticks per machine cycle, DMA (if active)
// copies one byte, and the CPU executes last so it observes the interrupt
// and memory state those updates just produced.
func (m *Machine) Tick() {
	for i := 0; i < 4; i++ {
		m.Timer.Tick()
		m.PPU.Tick()
	}
	m.Serial.Tick(4)
	m.Bus.StepDMA()
	m.CPU.Tick()
}

// StepInstruction advances the machine until the CPU has retired one
// instruction (or serviced one interrupt), returning the number of machine
// cycles consumed. Useful for tracing and for tests that want
// instruction-granularity control without hand-counting cycles.
func (m *Machine) StepInstruction() int {
	cycles := 0
	m.Tick()
	cycles++
	for m.CPU.Busy() {
		m.Tick()
		cycles++
	}
	return cycles
}

// StepFrame advances the machine until the PPU has finished one full frame.
func (m *Machine) StepFrame() {
	start := m.PPU.FrameCount()
	for m.PPU.FrameCount() == start {
		m.Tick()
	}
}
