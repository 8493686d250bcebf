package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadHex parses a whitespace-separated hex byte listing ("00 01 8E ...")
// into a byte slice, the format produced by disassemblers and pasted
// straight from documentation listings.
func LoadHex(text []byte) ([]byte, error) {
	fields := strings.Fields(string(text))
	out := make([]byte, len(fields))
	for i, s := range fields {
		b, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("emu51db: byte %d (%q): %w", i, s, err)
		}
		out[i] = byte(b)
	}
	return out, nil
}

// LoadBinary reads a program image from path. A file whose contents decode
// as hex text (after removing whitespace) is treated as hex; otherwise it is
// loaded as-is as a flat binary. Intel HEX records are not parsed.
func LoadBinary(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("emu51db: reading %s: %w", path, err)
	}

	trimmed := strings.TrimSpace(string(raw))
	if decoded, err := hex.DecodeString(strings.Join(strings.Fields(trimmed), "")); err == nil && len(trimmed) > 0 {
		return decoded, nil
	}

	return raw, nil
}
