package emu51

// InstrEntry describes one opcode: its encoded length in bytes, its machine
// cycle count, a mnemonic for display purposes only, and the handler that
// executes it. An entry with Length == 0 denotes an unimplemented opcode;
// Step treats such entries as a fatal decode error rather than invoking the
// nil Handler.
type InstrEntry struct {
	Length   uint8
	Cycles   uint8
	Mnemonic string
	Handler  func(s *State, code []byte) error
}

// instrTable is the immutable 256-entry opcode dispatch table, built once at
// package init and never mutated thereafter. Zero-value entries (Length ==
// 0, Handler == nil) are opcodes outside the implemented subset.
var instrTable [256]InstrEntry

// Table returns the instruction-table entry for opcode. It is a read-only view onto
// the package's immutable dispatch table, useful for debuggers and
// disassembly tools.
func Table(opcode uint8) InstrEntry {
	return instrTable[opcode]
}

func init() {
	instrTable[0x00] = InstrEntry{1, 1, "NOP", nopHandler}
	instrTable[0x01] = InstrEntry{2, 2, "AJMP", ajmpHandler}
	instrTable[0x02] = InstrEntry{3, 2, "LJMP", ljmpHandler}

	instrTable[0x10] = InstrEntry{3, 2, "JBC", jumpIfBitHandler}
	instrTable[0x11] = InstrEntry{2, 2, "ACALL", acallHandler}
	instrTable[0x12] = InstrEntry{3, 2, "LCALL", lcallHandler}

	instrTable[0x20] = InstrEntry{3, 2, "JB", jumpIfBitHandler}
	instrTable[0x21] = InstrEntry{2, 2, "AJMP", ajmpHandler}

	for op := uint8(0x24); op <= 0x2F; op++ {
		length := uint8(1)
		if op == 0x24 || op == 0x25 {
			length = 2
		}
		instrTable[op] = InstrEntry{length, 1, "ADD", addHandler}
	}

	instrTable[0x30] = InstrEntry{3, 2, "JNB", jumpIfBitHandler}
	instrTable[0x31] = InstrEntry{2, 2, "ACALL", acallHandler}

	for op := uint8(0x34); op <= 0x3F; op++ {
		length := uint8(1)
		if op == 0x34 || op == 0x35 {
			length = 2
		}
		instrTable[op] = InstrEntry{length, 1, "ADDC", addHandler}
	}

	instrTable[0x40] = InstrEntry{2, 2, "JC", jcHandler}
	instrTable[0x41] = InstrEntry{2, 2, "AJMP", ajmpHandler}

	instrTable[0x50] = InstrEntry{2, 2, "JNC", jncHandler}
	instrTable[0x51] = InstrEntry{2, 2, "ACALL", acallHandler}

	instrTable[0x60] = InstrEntry{2, 2, "JZ", jzHandler}
	instrTable[0x61] = InstrEntry{2, 2, "AJMP", ajmpHandler}

	instrTable[0x70] = InstrEntry{2, 2, "JNZ", jnzHandler}
	instrTable[0x71] = InstrEntry{2, 2, "ACALL", acallHandler}
	instrTable[0x73] = InstrEntry{1, 2, "JMP", jmpIndirectHandler}

	instrTable[0x80] = InstrEntry{2, 2, "SJMP", sjmpHandler}
	instrTable[0x81] = InstrEntry{2, 2, "AJMP", ajmpHandler}
	instrTable[0x83] = InstrEntry{1, 1, "MOVC", movcPCHandler}

	instrTable[0x91] = InstrEntry{2, 2, "ACALL", acallHandler}
	instrTable[0x93] = InstrEntry{1, 2, "MOVC", movcDPTRHandler}

	instrTable[0xA1] = InstrEntry{2, 2, "AJMP", ajmpHandler}

	instrTable[0xB1] = InstrEntry{2, 2, "ACALL", acallHandler}
	instrTable[0xB4] = InstrEntry{3, 2, "CJNE", cjneADataHandler}
	instrTable[0xB5] = InstrEntry{3, 2, "CJNE", cjneAAddrHandler}
	instrTable[0xB6] = InstrEntry{3, 2, "CJNE", cjneDerefRDataHandler}
	instrTable[0xB7] = InstrEntry{3, 2, "CJNE", cjneDerefRDataHandler}
	for op := uint8(0xB8); op <= 0xBF; op++ {
		instrTable[op] = InstrEntry{3, 2, "CJNE", cjneRDataHandler}
	}

	instrTable[0xC1] = InstrEntry{2, 2, "AJMP", ajmpHandler}

	instrTable[0xD1] = InstrEntry{2, 2, "ACALL", acallHandler}
	instrTable[0xD5] = InstrEntry{3, 2, "DJNZ", djnzDirectHandler}
	for op := uint8(0xD8); op <= 0xDF; op++ {
		instrTable[op] = InstrEntry{2, 2, "DJNZ", djnzRHandler}
	}

	instrTable[0xE1] = InstrEntry{2, 2, "AJMP", ajmpHandler}

	instrTable[0xF1] = InstrEntry{2, 2, "ACALL", acallHandler}
}
