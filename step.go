package emu51

import "fmt"

// Step executes a single instruction: it range-checks PC, resolves the
// opcode's table entry, advances PC by the instruction's length, invokes
// the handler, and returns the cycle count.
//
// On any error, PC is left exactly where it was before Step was called, so
// a failed Step leaves PC pointing at the offending instruction.
func (s *State) Step() (cycles int, err error) {
	if int(s.PC) >= len(s.PMEM) {
		return 0, fmt.Errorf("emu51: pc %#04x: %w", s.PC, ErrPMEMOutOfRange)
	}

	opcode := s.PMEM[s.PC]
	entry := instrTable[opcode]

	if entry.Length == 0 {
		return 0, fmt.Errorf("emu51: opcode %#02x at pc %#04x: %w", opcode, s.PC, ErrUnimplementedOpcode)
	}

	if int(s.PC)+int(entry.Length) > len(s.PMEM) {
		return 0, fmt.Errorf("emu51: pc %#04x: %w", s.PC, ErrPMEMOutOfRange)
	}

	code := s.PMEM[s.PC : int(s.PC)+int(entry.Length)]

	oldPC := s.PC
	s.PC += uint16(entry.Length)

	if err := entry.Handler(s, code); err != nil {
		s.PC = oldPC
		return 0, err
	}

	return int(entry.Cycles), nil
}
