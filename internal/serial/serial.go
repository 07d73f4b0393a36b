// Package serial implements the link-cable registers (SB/SC at
// 0xFF01/0xFF02) as a logging sink: the core has no link partner, so every
// transfer is satisfied locally and its byte is retained for callers
// (notably the blargg test harness) that need to inspect the transcript.
// Bytes are also collected into lines, and each completed line (ended by a
// newline, carriage return or zero byte) is logged.
package serial

import (
	"log/slog"

	"github.com/pxlforge/dmgcore/internal/irq"
)

const (
	regSB uint16 = 0xFF01
	regSC uint16 = 0xFF02
)

// Sink is a dummy serial device: it accepts transfers, raises the Serial
// interrupt on completion like a real shift register would after talking to
// a partner, and never blocks on one.
type Sink struct {
	sb, sc         byte
	transferActive bool
	countdown      int
	immediate      bool
	logger         *slog.Logger

	output []byte
	line   []byte

	Controller *irq.Controller
}

// Option configures a Sink at construction time.
type Option func(*Sink)

// WithFixedTiming makes transfers complete after the ~4096 T-cycles a real
// byte takes at the default DMG clock, instead of instantly.
func WithFixedTiming() Option { return func(s *Sink) { s.immediate = false } }

// WithLogger overrides the default slog logger.
func WithLogger(l *slog.Logger) Option { return func(s *Sink) { s.logger = l } }

// New returns a Sink wired to the interrupt controller it raises Serial on.
func New(c *irq.Controller, opts ...Option) *Sink {
	s := &Sink{Controller: c, immediate: true, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Read returns SB or SC; both are readable per the memory map.
func (s *Sink) Read(addr uint16) byte {
	switch addr {
	case regSB:
		return s.sb
	case regSC:
		return 0x7E | s.sc // bits 6..1 unused, read as 1
	default:
		return 0xFF
	}
}

// Write stores SB, or arms a transfer on SC.
func (s *Sink) Write(addr uint16, v byte) {
	switch addr {
	case regSB:
		s.sb = v
	case regSC:
		s.sc = v
		s.maybeStart()
	}
}

// Tick advances a pending fixed-timing transfer by the given T-cycles.
func (s *Sink) Tick(cycles int) {
	if s.immediate || !s.transferActive {
		return
	}
	s.countdown -= cycles
	if s.countdown <= 0 {
		s.complete()
	}
}

// Output returns every byte transferred so far, decoded as text.
func (s *Sink) Output() string { return string(s.output) }

func (s *Sink) maybeStart() {
	if s.transferActive {
		return
	}
	const startBit, internalClockBit = 1 << 7, 1 << 0
	if s.sc&startBit == 0 || s.sc&internalClockBit == 0 {
		return
	}

	b := s.sb
	s.output = append(s.output, b)
	if b == 0 || b == '\n' || b == '\r' {
		if len(s.line) > 0 {
			s.logger.Info("serial", "line", string(s.line))
			s.line = s.line[:0]
		}
	} else {
		s.line = append(s.line, b)
	}

	if s.immediate {
		s.complete()
		return
	}
	s.transferActive = true
	s.countdown = 4096
}

func (s *Sink) complete() {
	s.sb = 0xFF
	s.sc &^= 1 << 7
	s.transferActive = false
	s.countdown = 0
	s.Controller.Request(irq.Serial)
}

// Reset restores the post-boot-ROM state.
func (s *Sink) Reset() {
	s.sb = 0
	s.sc = 0
	s.transferActive = false
	s.countdown = 0
	s.line = s.line[:0]
}
