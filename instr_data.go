package emu51

import (
	"fmt"

	"emu51/bitfield"
)

// MOVC A,@A+DPTR: load ACC from PMEM[DPTR+ACC].
func movcDPTRHandler(s *State, code []byte) error {
	dptr := bitfield.Word(s.SFR[sfrDPH], s.SFR[sfrDPL])
	addr := uint16(s.SFR[sfrACC]) + dptr
	return s.movcLoad(addr)
}

// MOVC A,@A+PC: load ACC from PMEM[PC+ACC]. PC here is the post-increment
// PC already set by Step before this handler runs.
func movcPCHandler(s *State, code []byte) error {
	addr := uint16(s.SFR[sfrACC]) + s.PC
	return s.movcLoad(addr)
}

func (s *State) movcLoad(addr uint16) error {
	if int(addr) >= len(s.PMEM) {
		return fmt.Errorf("emu51: movc address %#04x: %w", addr, ErrPMEMOutOfRange)
	}
	s.SFR[sfrACC] = s.PMEM[addr]
	s.emitSFRUpdate(sfrACC)
	return nil
}
