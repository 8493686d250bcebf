package emu51

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepNOP(t *testing.T) {
	s := newTestState(t, 0x00, 0x00, 0x00)

	cycles, err := s.Step()

	assert.NoError(t, err)
	assert.Equal(t, 1, cycles)
	assert.Equal(t, uint16(1), s.PC)
}

func TestStepUnimplementedOpcode(t *testing.T) {
	s := newTestState(t, 0x03) // RR A, not in the implemented subset

	cycles, err := s.Step()

	assert.ErrorIs(t, err, ErrUnimplementedOpcode)
	assert.Equal(t, 0, cycles)
	assert.Equal(t, uint16(0), s.PC) // PC unmoved on error
}

func TestStepPCOutOfRange(t *testing.T) {
	s := newTestState(t)
	s.PC = uint16(len(s.PMEM))

	_, err := s.Step()

	assert.ErrorIs(t, err, ErrPMEMOutOfRange)
}

func TestStepMultiByteInstructionPastEndOfPMEM(t *testing.T) {
	pmem := make([]byte, 1024)
	pmem[1023] = 0x02 // LJMP, needs 3 bytes total
	s, _ := New(Config{
		PMEM:      pmem,
		IRAMLower: make([]byte, 128),
		SFR:       make([]byte, 128),
	})
	s.Reset()
	s.PC = 1023

	_, err := s.Step()

	assert.ErrorIs(t, err, ErrPMEMOutOfRange)
	assert.Equal(t, uint16(1023), s.PC)
}

func TestStepLJMP(t *testing.T) {
	s := newTestState(t, 0x02, 0x12, 0x34)

	cycles, err := s.Step()

	assert.NoError(t, err)
	assert.Equal(t, 2, cycles)
	assert.Equal(t, uint16(0x1234), s.PC)
}

func TestStepAJMPPage(t *testing.T) {
	// AJMP opcode 0xA1: page = (0xA1 >> 5) & 0x7 = 5
	s := newTestState(t)
	s.PC = 0x0700
	copy(s.PMEM[s.PC:], []byte{0xA1, 0x20})

	_, err := s.Step()

	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0500|0x20), s.PC)
}

func TestStepHandlerErrorRestoresPC(t *testing.T) {
	pmem := make([]byte, 4096)
	pmem[0x10] = 0xB6 // CJNE @R0,#data,rel
	pmem[0x11] = 0x00
	pmem[0x12] = 0x00
	s, err := New(Config{
		PMEM:      pmem,
		IRAMLower: make([]byte, 128),
		SFR:       make([]byte, 128), // no iram_upper
	})
	assert.NoError(t, err)
	s.Reset()
	s.PC = 0x10
	s.SFR[sfrPSW] = pswRS1 | pswRS0 // bank 3, R0 -> iram_lower[0x18]
	s.IRAMLower[0x18] = 0x80        // @R0 -> address 0x80, upper iram absent

	_, err = s.Step()

	assert.Error(t, err)
	assert.Equal(t, uint16(0x10), s.PC)
}
