// Command cpurunner drives a ROM headlessly and watches the serial port for
// a blargg-style "Passed"/"Failed N tests" marker, exiting 0/1/2 so it can
// be used from a test harness.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/pxlforge/dmgcore/internal/core"
	"github.com/pxlforge/dmgcore/internal/hostui"
)

func main() {
	romPath := flag.String("rom", "", "path to ROM (.gb)")
	instructions := flag.Int("instructions", 50_000_000, "max instructions to retire")
	trace := flag.Bool("trace", false, "print PC/opcode per instruction")
	auto := flag.Bool("auto", true, "detect 'Passed' or 'Failed N tests' in serial output and exit 0/1")
	fixedTiming := flag.Bool("fixedTiming", false, "use real-duration serial transfers instead of instant completion")
	timeout := flag.Duration("timeout", 0, "optional wall-clock timeout (e.g. 30s); 0 disables")
	flag.Parse()

	if *romPath == "" {
		log.Fatal("-rom is required")
	}
	rom, err := os.ReadFile(*romPath)
	if err != nil {
		log.Fatalf("read rom: %v", err)
	}

	m, err := core.New(rom, hostui.NewFramebufferRenderer(), core.Config{FixedSerialTiming: *fixedTiming})
	if err != nil {
		log.Fatalf("load cartridge: %v", err)
	}

	start := time.Now()
	var deadline time.Time
	if *timeout > 0 {
		deadline = start.Add(*timeout)
	}

	failRe := regexp.MustCompile(`(?i)failed\s+(\d+)\s+tests?`)
	lastLen := 0

	var cycles int
	for i := 0; i < *instructions; i++ {
		pc := m.CPU.PC
		var op byte
		if *trace {
			op = m.Bus.Read(pc)
		}
		cycles += m.StepInstruction()
		if *trace {
			fmt.Printf("PC=%04X OP=%02X A=%02X F=%02X B=%02X C=%02X D=%02X E=%02X H=%02X L=%02X SP=%04X IME=%t\n",
				pc, op, m.CPU.A, m.CPU.F, m.CPU.B, m.CPU.C, m.CPU.D, m.CPU.E, m.CPU.H, m.CPU.L, m.CPU.SP, m.CPU.IME)
		}

		out := m.Serial.Output()
		if len(out) > lastLen {
			fmt.Print(out[lastLen:])
			lastLen = len(out)
		}

		if *auto {
			if strings.Contains(strings.ToLower(out), "passed") {
				fmt.Printf("\nDetected PASS. instructions=%d cycles~=%d elapsed=%s\n",
					i+1, cycles, time.Since(start).Truncate(time.Millisecond))
				os.Exit(0)
			}
			if m := failRe.FindStringSubmatch(out); m != nil {
				fmt.Printf("\nDetected %s. instructions=%d cycles~=%d elapsed=%s\n",
					m[0], i+1, cycles, time.Since(start).Truncate(time.Millisecond))
				os.Exit(1)
			}
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			fmt.Printf("\nTimeout after %s.\n", time.Since(start).Truncate(time.Millisecond))
			os.Exit(2)
		}
	}
	fmt.Printf("\nDone: instructions=%d cycles~=%d elapsed=%s\n",
		*instructions, cycles, time.Since(start).Truncate(time.Millisecond))
}
