package sysex

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Split14 splits a 14-bit value into its MSB (bits 7-13) and LSB (bits 0-6),
// both masked to 7 bits.
func Split14(v int) (msb, lsb byte) {
	return byte((v >> 7) & 0x7F), byte(v & 0x7F)
}

// Join14 is the inverse of Split14.
func Join14(msb, lsb byte) int {
	return int(msb&0x7F)<<7 | int(lsb&0x7F)
}

// Int14 returns the two wire bytes of v.
func Int14(v int) []byte {
	msb, lsb := Split14(v)
	return []byte{msb, lsb}
}

// Bool returns 1 for true, 0 for false.
func Bool(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// PackName renders s as a fixed 13 byte field: UTF-8, at most 12 bytes of
// text (never splitting a rune) followed by null padding.
func PackName(s string) []byte {
	s = norm.NFC.String(s)
	out := make([]byte, NameLength)
	n := 0
	for len(s) > 0 {
		_, size := utf8.DecodeRuneInString(s)
		if n+size > NameLength-1 {
			break
		}
		copy(out[n:], s[:size])
		n += size
		s = s[size:]
	}
	return out
}

// PackLabel is PackName with every byte masked to 7 bits, used for
// quantised value labels.
func PackLabel(s string) []byte {
	out := PackName(s)
	for i := range out {
		out[i] &= 0x7F
	}
	return out
}

// UnpackName reads a 13 byte name field back into a string.
func UnpackName(b []byte) string {
	if len(b) > NameLength {
		b = b[:NameLength]
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
