package serial

import (
	"testing"

	"github.com/pxlforge/dmgcore/internal/irq"
)

func TestImmediateTransfer_CapturesOutputAndRaisesInterrupt(t *testing.T) {
	var ic irq.Controller
	ic.WriteIE(1 << uint(irq.Serial))
	s := New(&ic)

	for _, b := range []byte("Passed") {
		s.Write(regSB, b)
		s.Write(regSC, 0x81)
	}

	if got := s.Output(); got != "Passed" {
		t.Fatalf("Output() = %q, want %q", got, "Passed")
	}
	if ic.Pending()&(1<<uint(irq.Serial)) == 0 {
		t.Fatalf("expected Serial interrupt pending after transfer")
	}
}

func TestFixedTiming_DeferredUntilCountdownExpires(t *testing.T) {
	var ic irq.Controller
	ic.WriteIE(1 << uint(irq.Serial))
	s := New(&ic, WithFixedTiming())

	s.Write(regSB, 'A')
	s.Write(regSC, 0x81)
	if ic.Pending() != 0 {
		t.Fatalf("interrupt should not fire before the countdown elapses")
	}
	s.Tick(4096)
	if ic.Pending()&(1<<uint(irq.Serial)) == 0 {
		t.Fatalf("expected Serial interrupt once countdown elapses")
	}
}
