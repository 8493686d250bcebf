package emu51

// Named indices into the 128-byte SFR buffer. The 8051 SFR space is
// memory-mapped at addresses 0x80-0xff but the emu51 sfr buffer is indexed
// 0-127 (address minus sfrBaseAddr).
const (
	sfrBaseAddr = 0x80

	sfrP0   = 0x00
	sfrSP   = 0x01
	sfrDPL  = 0x02
	sfrDPH  = 0x03
	sfrPCON = 0x07
	sfrTCON = 0x08
	sfrTMOD = 0x09
	sfrTL0  = 0x0A
	sfrTH0  = 0x0C
	sfrTL1  = 0x0B
	sfrTH1  = 0x0D
	sfrP1   = 0x10
	sfrSCON = 0x18
	sfrSBUF = 0x19
	sfrP2   = 0x20
	sfrIE   = 0x28
	sfrP3   = 0x30
	sfrIP   = 0x38
	sfrPSW  = 0x50
	sfrACC  = 0x60
	sfrB    = 0x70
)

// PSW bitmasks.
const (
	pswP   = 0x01 // parity
	pswUD  = 0x02 // user-defined
	pswOV  = 0x04 // overflow
	pswRS0 = 0x08 // register bank select, low bit
	pswRS1 = 0x10 // register bank select, high bit
	pswF0  = 0x20 // flag 0, general software use
	pswAC  = 0x40 // auxiliary carry
	pswC   = 0x80 // carry
)

// portForSFRIndex reports whether sfrIndex addresses one of P0-P3, and if
// so, which port number (0-3).
func portForSFRIndex(sfrIndex uint8) (port uint8, ok bool) {
	switch sfrIndex {
	case sfrP0:
		return 0, true
	case sfrP1:
		return 1, true
	case sfrP2:
		return 2, true
	case sfrP3:
		return 3, true
	default:
		return 0, false
	}
}

// bankBaseAddr returns the IRAM_lower base address of the currently
// selected register bank (R0-R7), derived from PSW.RS1:RS0.
func (s *State) bankBaseAddr() uint8 {
	return s.SFR[sfrPSW] & (pswRS1 | pswRS0)
}

// reg reads register Rn (n: 0-7) of the currently selected bank.
func (s *State) reg(n uint8) uint8 {
	return s.IRAMLower[s.bankBaseAddr()+(n&0x07)]
}

// setReg writes register Rn (n: 0-7) of the currently selected bank,
// through direct_write so the usual imem_update callback fires.
func (s *State) setReg(n uint8, value uint8) {
	s.directWrite(s.bankBaseAddr()+(n&0x07), value)
}
