// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package machine

import (
	"strconv"
	"strings"
)

// Atoms printed as is in quoted mode besides plain identifiers.
var solo = map[string]bool{
	"[]": true, "{}": true, "!": true, ";": true, ",": true, "|": true,
}

var infix = map[string]bool{
	"/": true, "-": true, "+": true, "*": true, "=": true, ":": true, ",": true,
}

func isSymbolChar(r rune) bool {
	return strings.ContainsRune(`+-*/\^<>=~:.?@#&$`, r)
}

func needsQuotes(a string) bool {
	if a == "" {
		return true
	}
	if solo[a] {
		return false
	}
	first := rune(a[0])
	if first >= 'a' && first <= 'z' {
		for _, r := range a {
			if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
				return true
			}
		}
		return false
	}
	for _, r := range a {
		if !isSymbolChar(r) {
			return true
		}
	}
	return false
}

func formatAtom(b *strings.Builder, a string, quoted bool) {
	if !quoted || !needsQuotes(a) {
		b.WriteString(a)
		return
	}
	b.WriteByte('\'')
	for _, r := range a {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}

// formatValue renders v; quoted selects writeq/1 style over write/1.
func formatValue(v value, quoted bool) string {
	var b strings.Builder
	writeValue(&b, v, quoted)
	return b.String()
}

func writeValue(b *strings.Builder, v value, quoted bool) {
	switch v.tag {
	case tagRef:
		if v.v == 0 {
			b.WriteByte('_')
			return
		}
		b.WriteString("_G")
		b.WriteString(strconv.Itoa(v.v))
	case tagAtom:
		formatAtom(b, v.s, quoted)
	case tagInt:
		b.WriteString(strconv.FormatInt(v.i, 10))
	case tagFloat:
		b.WriteString(formatFloat(v.f))
	case tagString:
		if quoted {
			b.WriteString(strconv.Quote(v.s))
		} else {
			b.WriteString(v.s)
		}
	case tagCompound:
		switch {
		case v.s == "[|]" && len(v.args) == 2:
			writeList(b, v, quoted)
		case infix[v.s] && len(v.args) == 2:
			writeValue(b, v.args[0], quoted)
			b.WriteString(v.s)
			writeValue(b, v.args[1], quoted)
		default:
			formatAtom(b, v.s, quoted)
			b.WriteByte('(')
			for i, a := range v.args {
				if i > 0 {
					b.WriteByte(',')
				}
				writeValue(b, a, quoted)
			}
			b.WriteByte(')')
		}
	}
}

func writeList(b *strings.Builder, v value, quoted bool) {
	b.WriteByte('[')
	for first := true; ; first = false {
		if !first {
			b.WriteByte(',')
		}
		writeValue(b, v.args[0], quoted)
		tail := v.args[1]
		if tail.tag == tagCompound && tail.s == "[|]" && len(tail.args) == 2 {
			v = tail
			continue
		}
		if !(tail.tag == tagAtom && tail.s == "[]") {
			b.WriteByte('|')
			writeValue(b, tail, quoted)
		}
		break
	}
	b.WriteByte(']')
}
