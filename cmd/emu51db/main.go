// Command emu51db is an interactive step-debugger for the emu51 package. It
// loads a program image, presents a bubbletea TUI, and lets the user single
// step through execution while watching PMEM, the SFR file, and the current
// opcode table entry.
package main

import (
	"flag"
	"fmt"
	"os"

	"emu51"
)

func main() {
	offset := flag.Uint("offset", 0, "PMEM offset to load the program at")
	pmemSize := flag.Uint("pmem", 4096, "program memory size in bytes (power of two, 1024-65536)")
	withUpper := flag.Bool("8052", false, "attach the 8052 upper-128-byte IRAM extension")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: emu51db [flags] <program-file>")
		os.Exit(2)
	}

	raw, err := LoadBinary(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	pmem := make([]byte, *pmemSize)
	if int(*offset)+len(raw) > len(pmem) {
		fmt.Fprintf(os.Stderr, "emu51db: program (%d bytes at offset %#x) does not fit in %d bytes of pmem\n", len(raw), *offset, len(pmem))
		os.Exit(1)
	}
	copy(pmem[*offset:], raw)

	cfg := emu51.Config{
		PMEM:      pmem,
		IRAMLower: make([]byte, 128),
		SFR:       make([]byte, 128),
	}
	if *withUpper {
		cfg.IRAMUpper = make([]byte, 128)
	}

	state, err := emu51.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	state.Reset()
	state.PC = uint16(*offset)

	if err := Debug(state); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
