package pyast

import (
	"fmt"
	"strings"
)

// logicalLine is one statement after joining bracket, backslash and
// triple-quoted-string continuations. text has comments stripped and
// physical lines joined with a single space; raw keeps the source verbatim.
type logicalLine struct {
	text   string
	raw    string
	start  int // first physical line, 1-based
	end    int // last physical line
	indent int // indentation column of the first physical line, tabs at 8
}

type openBracket struct {
	ch   byte
	line int
}

var bracketPairs = map[byte]byte{')': '(', ']': '[', '}': '{'}

// scan splits src into logical lines. Blank and comment-only lines vanish.
// Unterminated strings, unbalanced brackets and a trailing continuation are
// reported as *SyntaxError.
func scan(src string) ([]logicalLine, error) {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	physical := strings.Split(src, "\n")

	var (
		out       []logicalLine
		cur       *logicalLine
		textParts []string
		rawParts  []string
		brackets  []openBracket

		inStr     bool
		strQuote  byte
		strTriple bool
		strStart  int

		pendingBackslash bool
	)

	for idx, line := range physical {
		ln := idx + 1

		if cur == nil {
			rest := strings.TrimSpace(line)
			if rest == "" || strings.HasPrefix(rest, "#") {
				continue
			}
			cur = &logicalLine{start: ln, indent: indentWidth(line)}
			textParts = textParts[:0]
			rawParts = rawParts[:0]
		}
		pendingBackslash = false

		var buf strings.Builder
		escapedEOL := false
		j, n := 0, len(line)
		for j < n {
			c := line[j]
			if inStr {
				switch {
				case c == '\\':
					if j+1 < n {
						buf.WriteByte(c)
						buf.WriteByte(line[j+1])
						j += 2
					} else {
						buf.WriteByte(c)
						escapedEOL = true
						j++
					}
				case c == strQuote && strTriple:
					if triple := strings.Repeat(string(strQuote), 3); strings.HasPrefix(line[j:], triple) {
						buf.WriteString(triple)
						j += 3
						inStr = false
					} else {
						buf.WriteByte(c)
						j++
					}
				case c == strQuote:
					buf.WriteByte(c)
					j++
					inStr = false
				default:
					buf.WriteByte(c)
					j++
				}
				continue
			}

			switch c {
			case '#':
				j = n
			case '\'', '"':
				inStr = true
				strQuote = c
				strStart = ln
				if triple := strings.Repeat(string(c), 3); strings.HasPrefix(line[j:], triple) {
					strTriple = true
					buf.WriteString(triple)
					j += 3
				} else {
					strTriple = false
					buf.WriteByte(c)
					j++
				}
			case '(', '[', '{':
				brackets = append(brackets, openBracket{ch: c, line: ln})
				buf.WriteByte(c)
				j++
			case ')', ']', '}':
				if len(brackets) == 0 || brackets[len(brackets)-1].ch != bracketPairs[c] {
					return nil, &SyntaxError{Line: ln, Msg: fmt.Sprintf("unmatched '%c'", c)}
				}
				brackets = brackets[:len(brackets)-1]
				buf.WriteByte(c)
				j++
			case '\\':
				if strings.TrimSpace(line[j+1:]) == "" {
					pendingBackslash = true
					j = n
				} else {
					buf.WriteByte(c)
					j++
				}
			default:
				buf.WriteByte(c)
				j++
			}
		}

		if inStr && !strTriple && !escapedEOL {
			return nil, &SyntaxError{Line: strStart, Msg: "unterminated string literal"}
		}

		rawParts = append(rawParts, line)
		textParts = append(textParts, strings.TrimSpace(buf.String()))

		if inStr || len(brackets) > 0 || pendingBackslash {
			continue
		}

		cur.end = ln
		cur.raw = strings.Join(rawParts, "\n")
		cur.text = strings.TrimSpace(strings.Join(textParts, " "))
		if cur.text != "" {
			out = append(out, *cur)
		}
		cur = nil
	}

	if inStr {
		msg := "unterminated string literal"
		if strTriple {
			msg = "unterminated triple-quoted string literal"
		}
		return nil, &SyntaxError{Line: strStart, Msg: msg}
	}
	if len(brackets) > 0 {
		b := brackets[0]
		return nil, &SyntaxError{Line: b.line, Msg: fmt.Sprintf("'%c' was never closed", b.ch)}
	}
	if cur != nil && pendingBackslash {
		return nil, &SyntaxError{Line: len(physical), Msg: "unexpected EOF while parsing"}
	}

	return out, nil
}

// indentWidth measures leading whitespace with tab stops every 8 columns,
// matching the Python tokenizer's default.
func indentWidth(line string) int {
	col := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			col++
		case '\t':
			col += 8 - col%8
		default:
			return col
		}
	}
	return col
}
