package emu51

import "errors"

// Sentinel errors returned by Step and the memory substrate. Wrap these with
// fmt.Errorf("...: %w", ...) at call sites so errors.Is keeps working.
var (
	// ErrPMEMOutOfRange is returned when the program counter, or an
	// instruction's operand bytes, fall outside the program memory buffer.
	ErrPMEMOutOfRange = errors.New("emu51: program memory access out of range")

	// ErrIRAMOutOfRange is returned when an indirect or stack access
	// resolves to an upper-internal-memory address but no iram_upper
	// buffer was attached.
	ErrIRAMOutOfRange = errors.New("emu51: internal memory access out of range")

	// ErrBitOutOfRange is returned by bit_read/bit_write for bit addresses
	// outside the supported bit-addressable region (0-127).
	ErrBitOutOfRange = errors.New("emu51: bit address out of range")

	// ErrUnimplementedOpcode is returned by Step when the opcode table
	// entry has a zero instruction length (an opcode outside the
	// published, implemented subset).
	ErrUnimplementedOpcode = errors.New("emu51: unimplemented opcode")
)
