package cpu

import (
	"testing"

	"github.com/pxlforge/dmgcore/internal/irq"
)

type flatMem [0x10000]byte

func (m *flatMem) Read(addr uint16) byte     { return m[addr] }
func (m *flatMem) Write(addr uint16, v byte) { m[addr] = v }

func newTestCPU() (*CPU, *flatMem) {
	mem := &flatMem{}
	ic := &irq.Controller{}
	c := New(mem, ic)
	return c, mem
}

// run advances the CPU exactly n machine cycles.
func run(c *CPU, n int) {
	for i := 0; i < n; i++ {
		c.Tick()
	}
}

func TestReset_MatchesDocumentedPostBootState(t *testing.T) {
	c, _ := newTestCPU()
	c.Reset()
	if got := c.AF(); got != 0x01B0 {
		t.Errorf("AF = 0x%04X, want 0x01B0", got)
	}
	if got := c.BC(); got != 0x0013 {
		t.Errorf("BC = 0x%04X, want 0x0013", got)
	}
	if got := c.DE(); got != 0x00D8 {
		t.Errorf("DE = 0x%04X, want 0x00D8", got)
	}
	if got := c.HL(); got != 0x014D {
		t.Errorf("HL = 0x%04X, want 0x014D", got)
	}
	if c.SP != 0xFFFE {
		t.Errorf("SP = 0x%04X, want 0xFFFE", c.SP)
	}
	if c.PC != 0x0100 {
		t.Errorf("PC = 0x%04X, want 0x0100", c.PC)
	}
}

func TestADD_SetsCarryAndHalfCarry(t *testing.T) {
	c, mem := newTestCPU()
	c.PC = 0x0100
	c.A = 0xFF
	c.B = 0x01
	mem[0x0100] = 0x80 // ADD A,B
	run(c, cycles(decode(0x80), false))
	if c.A != 0x00 {
		t.Fatalf("A = 0x%02X, want 0x00", c.A)
	}
	if !c.Z() || c.N() || !c.H() || !c.C() {
		t.Fatalf("flags ZNHC = %v%v%v%v, want 1011", c.Z(), c.N(), c.H(), c.C())
	}
}

func TestDAA_AfterADDCorrectsToBCD(t *testing.T) {
	c, mem := newTestCPU()
	c.PC = 0x0100
	// A freshly zeroed CPU (not post-Reset) establishes H=0,C=0 so that the
	// documented DAA outcome for 0x3E is reproducible independent of
	// whatever flags a prior sequence happened to leave set.
	c.A = 0x3E
	mem[0x0100] = 0x27 // DAA
	run(c, cycles(decode(0x27), false))
	if c.A != 0x44 {
		t.Fatalf("A = 0x%02X, want 0x44", c.A)
	}
	if c.H() {
		t.Fatalf("H should be cleared by DAA")
	}
}

func TestADDHL_HLHL_DoublesAndSetsCarry(t *testing.T) {
	c, mem := newTestCPU()
	c.PC = 0x0100
	c.SetHL(0x8000)
	mem[0x0100] = 0x29 // ADD HL,HL
	run(c, cycles(decode(0x29), false))
	if c.HL() != 0x0000 {
		t.Fatalf("HL = 0x%04X, want 0x0000", c.HL())
	}
	if !c.C() {
		t.Fatalf("C should be set (bit 15 carry out)")
	}
	if c.N() {
		t.Fatalf("N should be cleared")
	}
}

func TestBIT_ZeroFlagReflectsTestedBit(t *testing.T) {
	c, mem := newTestCPU()
	c.PC = 0x0100
	c.B = 0x00
	mem[0x0100] = 0xCB
	mem[0x0101] = 0x40 // BIT 0,B
	run(c, cbCycles(decodeCB(0x40)))
	if !c.Z() {
		t.Fatalf("Z should be set: bit 0 of 0x00 is clear")
	}
	if !c.H() {
		t.Fatalf("H should always be set by BIT")
	}
	if c.N() {
		t.Fatalf("N should always be cleared by BIT")
	}
}

func TestPushPop_RoundTrips(t *testing.T) {
	c, mem := newTestCPU()
	c.Reset()
	c.SetBC(0x1234)
	pc := c.PC
	mem[pc] = 0xC5   // PUSH BC
	mem[pc+1] = 0xE1 // POP HL
	run(c, cycles(decode(0xC5), false))
	run(c, cycles(decode(0xE1), false))
	if c.HL() != 0x1234 {
		t.Fatalf("HL = 0x%04X, want 0x1234 (round-tripped through the stack)", c.HL())
	}
}

func TestInterruptDispatch_PushesPCAndJumpsToVector(t *testing.T) {
	c, mem := newTestCPU()
	c.Reset()
	c.IME = true
	c.SP = 0xFFFE
	c.PC = 0x0150
	c.Controller.WriteIE(0x1F)
	c.Controller.Request(irq.Timer)
	mem[0x0150] = 0x00 // NOP, should not execute before the interrupt fires
	run(c, 5)
	if c.PC != irq.Timer.Vector() {
		t.Fatalf("PC = 0x%04X, want timer vector 0x%04X", c.PC, irq.Timer.Vector())
	}
	if c.IME {
		t.Fatalf("IME should be cleared on dispatch")
	}
	if c.Controller.Pending()&(1<<uint(irq.Timer)) != 0 {
		t.Fatalf("timer IF bit should be cleared on dispatch")
	}
	lo := mem[c.SP]
	hi := mem[c.SP+1]
	if uint16(hi)<<8|uint16(lo) != 0x0150 {
		t.Fatalf("pushed return address = 0x%04X, want 0x0150", uint16(hi)<<8|uint16(lo))
	}
}

func TestEI_TakesEffectAfterFollowingInstruction(t *testing.T) {
	c, mem := newTestCPU()
	c.Reset()
	c.PC = 0x0100
	c.IME = false
	c.Controller.WriteIE(0x1F)
	mem[0x0100] = 0xFB // EI
	mem[0x0101] = 0x00 // NOP
	run(c, cycles(decode(0xFB), false))
	if c.IME {
		t.Fatalf("IME should not be enabled until after the instruction following EI")
	}
	c.Controller.Request(irq.VBlank)
	run(c, cycles(decode(0x00), false))
	if !c.IME {
		t.Fatalf("IME should be enabled once the instruction after EI has run")
	}
}

func TestHalt_WakesOnPendingInterruptWithoutServicingWhenIMEClear(t *testing.T) {
	c, mem := newTestCPU()
	c.Reset()
	c.PC = 0x0100
	c.IME = false
	c.Controller.WriteIE(0x1F)
	mem[0x0100] = 0x76 // HALT
	run(c, 1)
	if !c.halted {
		t.Fatalf("CPU should be halted (no interrupt pending yet)")
	}
	c.Controller.Request(irq.VBlank)
	run(c, 1)
	if c.halted {
		t.Fatalf("CPU should wake once an interrupt becomes pending")
	}
	if c.IME {
		t.Fatalf("IME was already clear and HALT must not change it")
	}
}

func TestHaltBug_RepeatsNextOpcodeFetch(t *testing.T) {
	c, mem := newTestCPU()
	c.Reset()
	c.PC = 0x0100
	c.IME = false
	c.Controller.WriteIE(0x1F)
	c.Controller.Request(irq.VBlank) // already pending with IME=0 at HALT time
	mem[0x0100] = 0x76               // HALT
	mem[0x0101] = 0x3C               // INC A
	run(c, cycles(decode(0x76), false))
	if c.halted {
		t.Fatalf("HALT bug: CPU must not actually halt when IME=0 and an interrupt is already pending")
	}
	if c.PC != 0x0101 {
		t.Fatalf("PC = 0x%04X, want 0x0101 after HALT", c.PC)
	}
	startA := c.A
	run(c, cycles(decode(0x3C), false))
	if c.A != startA+1 {
		t.Fatalf("first execution of INC A should have run")
	}
	if c.PC != 0x0101 {
		t.Fatalf("PC = 0x%04X, want 0x0101: the opcode byte should be re-read, not advanced past", c.PC)
	}
	run(c, cycles(decode(0x3C), false))
	if c.A != startA+2 {
		t.Fatalf("INC A should execute a second time due to the HALT bug")
	}
}

func TestIllegalOpcode_HaltsExecution(t *testing.T) {
	c, mem := newTestCPU()
	c.Reset()
	c.PC = 0x0100
	mem[0x0100] = 0xD3 // illegal
	run(c, 1)
	if !c.halted {
		t.Fatalf("executing an illegal opcode should halt the CPU")
	}
}
