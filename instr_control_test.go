package emu51

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSJMP(t *testing.T) {
	s := newTestState(t)
	s.PC = 0x0010
	copy(s.PMEM[s.PC:], []byte{0x80, 0xFB}) // SJMP -5

	_, err := s.Step()

	assert.NoError(t, err)
	// PC advances by 2 to 0x12 before the relative offset is applied.
	assert.Equal(t, uint16(0x0012-5), s.PC)
}

func TestJCBranchesOnCarrySet(t *testing.T) {
	s := newTestState(t, 0x40, 0x02) // JC +2
	s.SFR[sfrPSW] = pswC

	_, err := s.Step()

	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0002+2), s.PC)
}

func TestJCDoesNotBranchOnCarryClear(t *testing.T) {
	s := newTestState(t, 0x40, 0x02)

	_, err := s.Step()

	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0002), s.PC)
}

func TestJZJNZ(t *testing.T) {
	s := newTestState(t, 0x60, 0x02) // JZ +2
	s.SFR[sfrACC] = 0

	_, err := s.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0002+2), s.PC)

	s2 := newTestState(t, 0x70, 0x02) // JNZ +2
	s2.SFR[sfrACC] = 1

	_, err = s2.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0002+2), s2.PC)
}

func TestJBBranchesAndDoesNotClearBit(t *testing.T) {
	s := newTestState(t, 0x20, 0x00, 0x05) // JB bit0,+5
	s.IRAMLower[bitAddrBase] = 0x01        // bit 0 set

	_, err := s.Step()

	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0003+5), s.PC)
	assert.Equal(t, uint8(0x01), s.IRAMLower[bitAddrBase])
}

func TestJBCBranchesAndClearsBit(t *testing.T) {
	s := newTestState(t, 0x10, 0x00, 0x05) // JBC bit0,+5
	s.IRAMLower[bitAddrBase] = 0x01

	_, err := s.Step()

	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0003+5), s.PC)
	assert.Equal(t, uint8(0x00), s.IRAMLower[bitAddrBase])
}

func TestJNBBranchesWhenBitClear(t *testing.T) {
	s := newTestState(t, 0x30, 0x00, 0x05) // JNB bit0,+5

	_, err := s.Step()

	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0003+5), s.PC)
}

func TestACALLPushesPCAndFiresOneSPUpdate(t *testing.T) {
	s := newTestState(t)
	s.PC = 0x0100
	copy(s.PMEM[s.PC:], []byte{0x11, 0x20}) // ACALL page0,0x20

	sfrUpdates := 0
	var order []string
	s.Callbacks.SFRUpdate = func(index uint8) {
		if index == sfrSP {
			sfrUpdates++
			order = append(order, "sfr_update(SP)")
		}
	}
	s.Callbacks.IRAMUpdate = func(addr uint8) {
		order = append(order, fmt.Sprintf("imem_update(%#02x)", addr))
	}

	_, err := s.Step()

	assert.NoError(t, err)
	// PC advances to 0x0102 before the call, then pushes 0x02 (low) and
	// 0x01 (high).
	assert.Equal(t, uint8(0x02), s.IRAMLower[0x08])
	assert.Equal(t, uint8(0x01), s.IRAMLower[0x09])
	assert.Equal(t, uint8(0x09), s.SFR[sfrSP])
	assert.Equal(t, 1, sfrUpdates)
	// sfr_update(SP) must fire before either imem_update, per spec §4.2 and
	// the reference acall_handler.
	assert.Equal(t, []string{"sfr_update(SP)", "imem_update(0x08)", "imem_update(0x09)"}, order)
}

func TestLCALLPushesPCAndJumps(t *testing.T) {
	s := newTestState(t)
	s.PC = 0x0200
	copy(s.PMEM[s.PC:], []byte{0x12, 0x30, 0x00}) // LCALL 0x3000

	var order []string
	s.Callbacks.SFRUpdate = func(index uint8) {
		if index == sfrSP {
			order = append(order, "sfr_update(SP)")
		}
	}
	s.Callbacks.IRAMUpdate = func(addr uint8) {
		order = append(order, fmt.Sprintf("imem_update(%#02x)", addr))
	}

	_, err := s.Step()

	assert.NoError(t, err)
	assert.Equal(t, uint16(0x3000), s.PC)
	assert.Equal(t, uint8(0x03), s.IRAMLower[0x08]) // low byte of 0x0203
	assert.Equal(t, uint8(0x02), s.IRAMLower[0x09]) // high byte
	assert.Equal(t, []string{"sfr_update(SP)", "imem_update(0x08)", "imem_update(0x09)"}, order)
}

func TestCJNEBranchesAndSetsCarry(t *testing.T) {
	s := newTestState(t, 0xB4, 0x05, 0x03) // CJNE A,#5,+3
	s.SFR[sfrACC] = 0x02                   // ACC < operand

	_, err := s.Step()

	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0003+3), s.PC)
	assert.NotZero(t, s.SFR[sfrPSW]&pswC)
}

func TestCJNEEqualDoesNotBranch(t *testing.T) {
	s := newTestState(t, 0xB4, 0x05, 0x03)
	s.SFR[sfrACC] = 0x05

	_, err := s.Step()

	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0003), s.PC)
	assert.Zero(t, s.SFR[sfrPSW]&pswC)
}

func TestCJNERn(t *testing.T) {
	s := newTestState(t, 0xB8, 0x05, 0x03) // CJNE R0,#5,+3
	s.IRAMLower[0] = 0x10                  // R0 (bank 0) > operand

	_, err := s.Step()

	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0003+3), s.PC)
	assert.Zero(t, s.SFR[sfrPSW]&pswC)
}

func TestDJNZDirectBranchesUntilZero(t *testing.T) {
	s := newTestState(t, 0xD5, 0x20, 0xFD) // DJNZ 0x20,-3
	s.IRAMLower[0x20] = 2

	_, err := s.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint8(1), s.IRAMLower[0x20])
	assert.Equal(t, uint16(0x0003-3), s.PC)

	s.PC = 0
	_, err = s.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint8(0), s.IRAMLower[0x20])
	assert.Equal(t, uint16(0x0003), s.PC) // zero reached, no branch
}

func TestDJNZRn(t *testing.T) {
	s := newTestState(t, 0xD8, 0xFE) // DJNZ R0,-2
	s.IRAMLower[0] = 1

	_, err := s.Step()

	assert.NoError(t, err)
	assert.Equal(t, uint8(0), s.IRAMLower[0])
	assert.Equal(t, uint16(0x0002), s.PC) // hit zero, no branch
}
