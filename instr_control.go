package emu51

import "emu51/bitfield"

// Handler signatures follow the teacher's per-opcode-family split
// (cpu/instructions.go groups handlers by what they operate on, not by
// opcode value). code holds the instruction's own bytes: code[0] is the
// opcode, code[1] and code[2] are operands when present. PC has already
// been advanced past the instruction by Step before the handler runs.

// NOP (0x00): no state change.
func nopHandler(s *State, code []byte) error {
	return nil
}

// AJMP page,addr8 (opcodes 0x*1, high 3 bits = page number).
func ajmpHandler(s *State, code []byte) error {
	page := (code[0] >> 5) & 0x7
	s.PC = (s.PC & 0xF800) | uint16(page)<<8 | uint16(code[1])
	return nil
}

// LJMP addr16.
func ljmpHandler(s *State, code []byte) error {
	s.PC = bitfield.Word(code[1], code[2])
	return nil
}

// SJMP rel.
func sjmpHandler(s *State, code []byte) error {
	s.relativeJump(int8(code[1]))
	return nil
}

// JMP @A+DPTR.
func jmpIndirectHandler(s *State, code []byte) error {
	dptr := bitfield.Word(s.SFR[sfrDPH], s.SFR[sfrDPL])
	s.PC = dptr + uint16(s.SFR[sfrACC])
	return nil
}

// JC rel: branch if PSW.C is set.
func jcHandler(s *State, code []byte) error {
	if s.SFR[sfrPSW]&pswC != 0 {
		s.relativeJump(int8(code[1]))
	}
	return nil
}

// JNC rel: branch if PSW.C is clear.
func jncHandler(s *State, code []byte) error {
	if s.SFR[sfrPSW]&pswC == 0 {
		s.relativeJump(int8(code[1]))
	}
	return nil
}

// JZ rel: branch if ACC == 0.
func jzHandler(s *State, code []byte) error {
	if s.SFR[sfrACC] == 0 {
		s.relativeJump(int8(code[1]))
	}
	return nil
}

// JNZ rel: branch if ACC != 0.
func jnzHandler(s *State, code []byte) error {
	if s.SFR[sfrACC] != 0 {
		s.relativeJump(int8(code[1]))
	}
	return nil
}

// jumpIfBitHandler implements JB bit,rel (0x20), JBC bit,rel (0x10) and
// JNB bit,rel (0x30). JBC additionally clears the bit on branch.
func jumpIfBitHandler(s *State, code []byte) error {
	bitAddr := code[1]
	reladdr := int8(code[2])

	jumpValue := uint8(1)
	if code[0] == 0x30 { // JNB branches when the bit is clear
		jumpValue = 0
	}

	bit, err := s.bitRead(bitAddr)
	if err != nil {
		return err
	}

	if bit == jumpValue {
		if code[0] == 0x10 { // JBC clears the bit before branching
			if err := s.bitWrite(bitAddr, 0); err != nil {
				return err
			}
		}
		s.relativeJump(reladdr)
	}
	return nil
}

// acallHandler implements ACALL page,addr8: push PC low, push PC high, then
// set PC as per AJMP. Callbacks fire in the order the reference
// implementation's acall_handler uses: sfr_update(SP) once both pushes have
// succeeded, then imem_update for the low-byte address, then the high-byte
// address.
func acallHandler(s *State, code []byte) error {
	pcLow := uint8(s.PC & 0xFF)
	pcHigh := uint8(s.PC >> 8)

	lowAddr, err := s.stackPush(pcLow)
	if err != nil {
		return err
	}
	highAddr, err := s.stackPush(pcHigh)
	if err != nil {
		return err
	}

	page := (code[0] >> 5) & 0x7
	s.PC = (s.PC & 0xF800) | uint16(page)<<8 | uint16(code[1])

	s.emitSFRUpdate(sfrSP)
	s.emitIRAMUpdate(lowAddr)
	s.emitIRAMUpdate(highAddr)
	return nil
}

// lcallHandler implements LCALL addr16: push PC low, push PC high, then
// PC <- addr16. Callback order matches acallHandler.
func lcallHandler(s *State, code []byte) error {
	pcLow := uint8(s.PC & 0xFF)
	pcHigh := uint8(s.PC >> 8)

	lowAddr, err := s.stackPush(pcLow)
	if err != nil {
		return err
	}
	highAddr, err := s.stackPush(pcHigh)
	if err != nil {
		return err
	}

	s.PC = bitfield.Word(code[1], code[2])

	s.emitSFRUpdate(sfrSP)
	s.emitIRAMUpdate(lowAddr)
	s.emitIRAMUpdate(highAddr)
	return nil
}

// generalCJNE compares left and right, sets PSW.C iff left < right
// (unsigned), and branches by reladdr iff left != right. Always fires
// sfr_update(PSW).
func (s *State) generalCJNE(left, right uint8, reladdr int8) error {
	if left < right {
		s.SFR[sfrPSW] |= pswC
	} else {
		s.SFR[sfrPSW] &^= pswC
	}

	if left != right {
		s.relativeJump(reladdr)
	}

	s.emitSFRUpdate(sfrPSW)
	return nil
}

// CJNE A,#data,rel.
func cjneADataHandler(s *State, code []byte) error {
	return s.generalCJNE(s.SFR[sfrACC], code[1], int8(code[2]))
}

// CJNE A,iram-addr,rel.
func cjneAAddrHandler(s *State, code []byte) error {
	operand := s.directRead(code[1])
	return s.generalCJNE(s.SFR[sfrACC], operand, int8(code[2]))
}

// CJNE @R0/@R1,#data,rel. The low bit of the opcode selects R0 or R1.
func cjneDerefRDataHandler(s *State, code []byte) error {
	ptr := s.bankBaseAddr() + (code[0] & 0x01)
	value, err := s.indirectRead(ptr)
	if err != nil {
		return err
	}
	return s.generalCJNE(value, code[1], int8(code[2]))
}

// CJNE Rn,#data,rel. The low 3 bits of the opcode select Rn.
func cjneRDataHandler(s *State, code []byte) error {
	n := code[0] & 0x07
	return s.generalCJNE(s.reg(n), code[1], int8(code[2]))
}

// DJNZ iram-addr,rel: decrement the addressed byte (8-bit wrap), branch if
// the result is nonzero.
func djnzDirectHandler(s *State, code []byte) error {
	addr := code[1]
	reladdr := int8(code[2])

	newValue := s.directRead(addr) - 1
	s.directWrite(addr, newValue)

	if newValue != 0 {
		s.relativeJump(reladdr)
	}
	return nil
}

// DJNZ Rn,rel: decrement Rn (8-bit wrap), branch if the result is nonzero.
func djnzRHandler(s *State, code []byte) error {
	n := code[0] & 0x07
	reladdr := int8(code[1])

	newValue := s.reg(n) - 1
	s.setReg(n, newValue)

	if newValue != 0 {
		s.relativeJump(reladdr)
	}
	return nil
}
