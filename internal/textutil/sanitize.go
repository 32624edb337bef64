// Package textutil neutralises file names and typed input before they reach
// the terminal.
package textutil

import "strings"

// Invisible formatting runes are shown as a visible label. A name such as
// "photo‮gpj.exe" would otherwise render as "photoexe.jpg".
var formattingRuneLabels = map[rune]string{
	0x00AD: "SHY",
	0x061C: "ALM",
	0x180E: "MVS",
	0x200B: "ZWSP",
	0x200C: "ZWNJ",
	0x200D: "ZWJ",
	0x200E: "LRM",
	0x200F: "RLM",
	0x2028: "LSEP",
	0x2029: "PSEP",
	0x202A: "LRE",
	0x202B: "RLE",
	0x202C: "PDF",
	0x202D: "LRO",
	0x202E: "RLO",
	0x2060: "WJ",
	0x2066: "LRI",
	0x2067: "RLI",
	0x2068: "FSI",
	0x2069: "PDI",
	0x206A: "ISS",
	0x206B: "ASS",
	0x206C: "IAFS",
	0x206D: "AAFS",
	0x206E: "NADS",
	0x206F: "NODS",
	0xFEFF: "BOM",
}

// SanitizeTerminalText replaces control characters so user-controlled text cannot
// inject terminal escape sequences when rendered. Whitespace controls become
// a space, other C0/DEL bytes become '?', and formatting runes become a
// bracketed label such as ⟪RLO⟫.
func SanitizeTerminalText(text string) string {
	if !needsSanitizing(text) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f:
			b.WriteByte('?')
		default:
			if label, ok := formattingRuneLabels[r]; ok {
				b.WriteString("⟪" + label + "⟫")
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HasFormattingRunes reports whether text contains bidi or zero-width formatting runes.
func HasFormattingRunes(text string) bool {
	for _, r := range text {
		if _, ok := formattingRuneLabels[r]; ok {
			return true
		}
	}
	return false
}

func needsSanitizing(text string) bool {
	for _, r := range text {
		if r < 0x20 || r == 0x7f {
			return true
		}
		if _, ok := formattingRuneLabels[r]; ok {
			return true
		}
	}
	return false
}
