package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"emu51"
	"emu51/bitfield"
)

type model struct {
	state *emu51.State

	prevPC uint16
	cycles int
	err    error
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m model) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case " ", "j":
			m.prevPC = m.state.PC
			cycles, err := m.state.Step()
			if err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.cycles += cycles
		}
	}
	return m, nil
}

// renderPage renders a single 16-byte page of PMEM as a line. The current PC
// is highlighted.
func (m model) renderPage(start uint16) string {
	if int(start)+16 > len(m.state.PMEM) {
		return ""
	}
	s := fmt.Sprintf("%04x | ", start)
	for i, b := range m.state.PMEM[start : start+16] {
		if start+uint16(i) == m.state.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) status() string {
	var flags string
	bits := []bitfield.Index{bitfield.I1, bitfield.I2, bitfield.I3, bitfield.I4, bitfield.I5, bitfield.I6, bitfield.I7, bitfield.I8}
	pswByte := m.pswByte()
	for _, b := range bits {
		if bitfield.IsSet(pswByte, b) {
			flags += "/ "
		} else {
			flags += "  "
		}
	}

	return fmt.Sprintf(`
PC: %#04x (%#04x)
ACC: %#02x
 B: %#02x
SP: %#02x
DPTR: %#02x%02x
CY AC F0 RS1 RS0 OV UD P
`,
		m.state.PC, m.prevPC,
		m.accByte(),
		m.bByte(),
		m.spByte(),
		m.dphByte(), m.dplByte(),
	) + flags + fmt.Sprintf("\ncycles so far: %d", m.cycles)
}

func (m model) pswByte() uint8 { return m.sfr(0x50) }
func (m model) accByte() uint8 { return m.sfr(0x60) }
func (m model) bByte() uint8   { return m.sfr(0x70) }
func (m model) spByte() uint8  { return m.sfr(0x01) }
func (m model) dphByte() uint8 { return m.sfr(0x03) }
func (m model) dplByte() uint8 { return m.sfr(0x02) }

func (m model) sfr(index uint8) uint8 { return m.state.SFR[index] }

func (m model) pageTable() string {
	header := "addr | "
	for b := range 16 {
		header += fmt.Sprintf("  %01x  ", b)
	}

	pages := []string{header}

	base := m.state.PC &^ 0xF
	offsets := []int{0, 16, 32}
	for _, off := range offsets {
		if page := m.renderPage(base + uint16(off)); page != "" {
			pages = append(pages, page)
		}
	}
	return strings.Join(pages, "\n")
}

// View renders the debugger's UI as a single string, re-rendered after every
// Update.
func (m model) View() string {
	opcode := uint8(0)
	if int(m.state.PC) < len(m.state.PMEM) {
		opcode = m.state.PMEM[m.state.PC]
	}

	body := lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		spew.Sdump(emu51.Table(opcode)),
	)

	if m.err != nil {
		body += "\nerror: " + m.err.Error()
	}
	return body
}

// Debug starts an interactive step-debugger TUI over state.
func Debug(state *emu51.State) error {
	p := tea.NewProgram(model{state: state})
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(model); ok && m.err != nil {
		return m.err
	}
	return nil
}
