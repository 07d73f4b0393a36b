package timer

import (
	"testing"

	"github.com/pxlforge/dmgcore/internal/irq"
)

// 2^20 T-cycles at one bit-9 falling edge per 1024 cycles is 1024 TIMA
// increments, so TIMA (starting at 0, TMA 0) overflows four times.
func TestTick_FourOverflowsPerMillionTicks(t *testing.T) {
	var ic irq.Controller
	ic.WriteIE(1 << uint(irq.Timer))
	tm := New(&ic)
	tm.WriteTAC(0x04) // enabled, bit 9 -> 4096 Hz

	count := 0
	for i := 0; i < 1<<20; i++ {
		before := ic.ReadIF() & (1 << uint(irq.Timer))
		tm.Tick()
		after := ic.ReadIF() & (1 << uint(irq.Timer))
		if after != 0 && before == 0 {
			count++
			ic.Clear(irq.Timer)
		}
	}
	if count != 4 {
		t.Fatalf("TIMER interrupts latched = %d, want 4", count)
	}
}

func TestWriteDIV_ResetsCounter(t *testing.T) {
	var ic irq.Controller
	tm := New(&ic)
	for i := 0; i < 300; i++ {
		tm.Tick()
	}
	if tm.ReadDIV() == 0 {
		t.Fatalf("DIV should have advanced")
	}
	tm.WriteDIV(0xFF)
	if tm.ReadDIV() != 0 {
		t.Fatalf("DIV write should reset counter to 0, got %#x", tm.ReadDIV())
	}
}

func TestDIVWriteFallingEdge_IncrementsTIMA(t *testing.T) {
	var ic irq.Controller
	tm := New(&ic)
	tm.WriteTAC(0x04) // bit 9 selected
	for i := 0; i < (1 << 9); i++ {
		tm.Tick()
	}
	if !tm.lastInput {
		t.Fatalf("expected timer input high before DIV reset")
	}
	tm.WriteDIV(0)
	if tm.ReadTIMA() != 1 {
		t.Fatalf("TIMA = %d after DIV-write falling edge, want 1", tm.ReadTIMA())
	}
}

func TestTIMAOverflow_ReloadsFromTMA(t *testing.T) {
	var ic irq.Controller
	ic.WriteIE(1 << uint(irq.Timer))
	tm := New(&ic)
	tm.WriteTMA(0x7C)
	tm.WriteTIMA(0xFF)
	tm.WriteTAC(0x05) // enabled, bit 3 -> fastest rate

	for i := 0; i < 16 && ic.Pending() == 0; i++ {
		tm.Tick()
	}
	if ic.Pending()&(1<<uint(irq.Timer)) == 0 {
		t.Fatalf("expected TIMER interrupt on overflow")
	}
	if tm.ReadTIMA() != 0x7C {
		t.Fatalf("TIMA = %#x after overflow, want TMA value 0x7C", tm.ReadTIMA())
	}
}

func TestReadTAC_UnusedBitsSetHigh(t *testing.T) {
	var ic irq.Controller
	tm := New(&ic)
	tm.WriteTAC(0x02)
	if got := tm.ReadTAC(); got != 0xFA {
		t.Fatalf("ReadTAC() = %#x, want 0xFA", got)
	}
}
