package emu51

// bitAddrBase is the IRAM_lower byte offset where the 128-bit
// bit-addressable region begins (bit address 0 lives in byte 0x20, bit 0).
const bitAddrBase = 0x20

// directRead reads a direct address: addr < 0x80 refers to IRAM_lower,
// addr >= 0x80 refers to the SFR buffer. Never fails. A read of a port SFR
// (P0-P3) invokes IORead before the value is returned.
func (s *State) directRead(addr uint8) uint8 {
	if addr < 0x80 {
		return s.IRAMLower[addr]
	}
	idx := addr - sfrBaseAddr
	value := s.SFR[idx]
	if port, ok := portForSFRIndex(idx); ok {
		s.emitIORead(port, 0xFF, &value)
	}
	return value
}

// directWrite writes a direct address, mirroring directRead. Emits
// sfr_update (plus io_write for a port) or imem_update as appropriate.
func (s *State) directWrite(addr uint8, value uint8) {
	if addr < 0x80 {
		s.IRAMLower[addr] = value
		s.emitIRAMUpdate(addr)
		return
	}
	idx := addr - sfrBaseAddr
	s.SFR[idx] = value
	s.emitSFRUpdate(idx)
	if port, ok := portForSFRIndex(idx); ok {
		s.emitIOWrite(port, 0xFF, value)
	}
}

// indirectRead dereferences ptrAddr (a direct address) and reads the
// resulting address from IRAM only; it never reaches SFR space. Fails with
// ErrIRAMOutOfRange if the effective address is >= 0x80 and IRAMUpper is
// absent.
func (s *State) indirectRead(ptrAddr uint8) (uint8, error) {
	eff := s.directRead(ptrAddr)
	if eff < 0x80 {
		return s.IRAMLower[eff], nil
	}
	if s.IRAMUpper == nil {
		return 0, ErrIRAMOutOfRange
	}
	return s.IRAMUpper[eff-0x80], nil
}

// indirectWrite is the write counterpart of indirectRead. On success it
// emits imem_update for the effective address.
func (s *State) indirectWrite(ptrAddr uint8, value uint8) error {
	eff := s.directRead(ptrAddr)
	if eff < 0x80 {
		s.IRAMLower[eff] = value
		s.emitIRAMUpdate(eff)
		return nil
	}
	if s.IRAMUpper == nil {
		return ErrIRAMOutOfRange
	}
	s.IRAMUpper[eff-0x80] = value
	s.emitIRAMUpdate(eff)
	return nil
}

// bitRead reads bit bitAddr (0-127) from the bit-addressable region
// (IRAM_lower bytes 0x20-0x2f). Bit addresses >= 128 fail with
// ErrBitOutOfRange: only lower-IRAM bit addressing is implemented, matching
// the reference emulator this package is grounded on.
func (s *State) bitRead(bitAddr uint8) (uint8, error) {
	if bitAddr >= 128 {
		return 0, ErrBitOutOfRange
	}
	byteOff := bitAddr / 8
	bitIdx := bitAddr % 8
	b := s.IRAMLower[bitAddrBase+byteOff]
	return (b >> bitIdx) & 1, nil
}

// bitWrite sets or clears bit bitAddr, emitting imem_update on the target
// byte. See bitRead for the valid range.
func (s *State) bitWrite(bitAddr uint8, value uint8) error {
	if bitAddr >= 128 {
		return ErrBitOutOfRange
	}
	byteOff := bitAddr / 8
	bitIdx := bitAddr % 8
	addr := uint8(bitAddrBase + byteOff)
	if value != 0 {
		s.IRAMLower[addr] |= 1 << bitIdx
	} else {
		s.IRAMLower[addr] &^= 1 << bitIdx
	}
	s.emitIRAMUpdate(addr)
	return nil
}

// stackPush pre-increments SP in the SFR buffer, then writes value to the
// new top-of-stack slot. SP is incremented unconditionally, even when the
// subsequent write fails (matching the reference implementation this
// emulator is grounded on) — callers that chain multiple pushes (ACALL,
// LCALL) are responsible for propagating the error. The step driver restores
// only PC on error: after a failed push SP stays incremented, and a byte
// written by an earlier successful push of the same instruction stays in
// IRAM.
//
// stackPush does not emit any callback itself: multi-push handlers batch
// their own emission in spec order, sfr_update(SP) once followed by
// imem_update for each pushed address, so it returns the effective address
// written for the caller to do so. See acallHandler/lcallHandler.
func (s *State) stackPush(value uint8) (addr uint8, err error) {
	s.SFR[sfrSP]++
	eff := s.SFR[sfrSP]
	if eff < 0x80 {
		s.IRAMLower[eff] = value
		return eff, nil
	}
	if s.IRAMUpper == nil {
		return eff, ErrIRAMOutOfRange
	}
	s.IRAMUpper[eff-0x80] = value
	return eff, nil
}

// relativeJump adds a signed 8-bit offset to PC, wrapping modulo 2^16.
func (s *State) relativeJump(offset int8) {
	s.PC = uint16(int32(s.PC) + int32(offset))
}
