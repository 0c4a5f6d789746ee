package extract

import "strings"

// Clean rewrites a JavaScript object literal into JSON. Outside string
// literals it replaces undefined with null, drops trailing commas before a
// closing bracket or brace, quotes bare identifier keys and turns
// single-quoted strings into double-quoted ones. String contents are never
// touched.
func Clean(src string) string {
	var out strings.Builder
	out.Grow(len(src) + len(src)/16)

	// last significant byte written, used to decide whether an identifier
	// sits in key position
	var last byte

	for i := 0; i < len(src); {
		ch := src[i]
		switch {
		case ch == '"':
			end := scanString(src, i, '"')
			out.WriteString(src[i:end])
			last = '"'
			i = end

		case ch == '\'':
			end := scanString(src, i, '\'')
			out.WriteString(requote(src[i+1 : max(i+1, end-1)]))
			last = '"'
			i = end

		case ch == ',':
			j := skipSpace(src, i+1)
			if j < len(src) && (src[j] == '}' || src[j] == ']') {
				i++
				continue
			}
			out.WriteByte(ch)
			last = ch
			i++

		case isIdentStart(ch):
			j := i + 1
			for j < len(src) && isIdentPart(src[j]) {
				j++
			}
			word := src[i:j]
			next := skipSpace(src, j)
			switch {
			case (last == '{' || last == ',') && next < len(src) && src[next] == ':':
				out.WriteByte('"')
				out.WriteString(word)
				out.WriteByte('"')
			case word == "undefined":
				out.WriteString("null")
			default:
				out.WriteString(word)
			}
			last = 'a'
			i = j

		default:
			out.WriteByte(ch)
			if !isSpace(ch) {
				last = ch
			}
			i++
		}
	}

	return out.String()
}

// scanString returns the index just past the literal that opens at start.
// An unterminated literal runs to the end of src.
func scanString(src string, start int, quote byte) int {
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		}
	}
	return len(src)
}

func requote(inner string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(inner); i++ {
		ch := inner[i]
		switch {
		case ch == '\\' && i+1 < len(inner) && inner[i+1] == '\'':
			b.WriteByte('\'')
			i++
		case ch == '\\' && i+1 < len(inner):
			b.WriteByte(ch)
			b.WriteByte(inner[i+1])
			i++
		case ch == '"':
			b.WriteString(`\"`)
		default:
			b.WriteByte(ch)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// matchingBrace returns the index of the brace closing the object that opens
// at start, honouring string literals, or -1 when the object never closes.
func matchingBrace(src string, start int) int {
	depth := 0
	for i := start; i < len(src); i++ {
		switch src[i] {
		case '"', '\'':
			i = scanString(src, i, src[i]) - 1
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func skipSpace(src string, i int) int {
	for i < len(src) && isSpace(src[i]) {
		i++
	}
	return i
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ch == '$' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}
