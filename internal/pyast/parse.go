package pyast

import (
	"fmt"
	"strings"
)

// Parse reads the structural shape of one Python source file. The returned
// error, when non-nil, is always a *SyntaxError.
func Parse(src []byte) (*Module, error) {
	lines, err := scan(string(src))
	if err != nil {
		return nil, err
	}

	type openFunc struct {
		fn      *Function
		indent  int
		sawStmt bool
	}

	m := &Module{}
	var stack []*openFunc

	pop := func() {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(stack) > 0 {
			outer := stack[len(stack)-1]
			if top.fn.EndLine > outer.fn.EndLine {
				outer.fn.EndLine = top.fn.EndLine
			}
		}
	}

	for i := range lines {
		ll := &lines[i]

		for len(stack) > 0 && ll.indent <= stack[len(stack)-1].indent {
			pop()
		}

		if len(stack) > 0 {
			top := stack[len(stack)-1]
			if ll.end > top.fn.EndLine {
				top.fn.EndLine = ll.end
			}
			if !top.sawStmt {
				top.sawStmt = true
				if isStringStmt(ll.text) {
					top.fn.Docstring = &Docstring{Line: ll.start, Text: strings.TrimSpace(ll.raw)}
				}
			}
		}

		switch {
		case isDefLine(ll.text):
			fn, err := parseHeader(ll)
			if err != nil {
				return nil, err
			}
			m.Functions = append(m.Functions, fn)
			stack = append(stack, &openFunc{fn: fn, indent: ll.indent})
		case hasKeyword(ll.text, "global"):
			if len(stack) > 0 {
				fn := stack[len(stack)-1].fn
				fn.Globals = append(fn.Globals, GlobalStmt{Line: ll.start, Names: globalNames(ll.text)})
			}
		case hasKeyword(ll.text, "except"):
			if len(stack) > 0 {
				fn := stack[len(stack)-1].fn
				fn.Excepts = append(fn.Excepts, ExceptClause{Line: ll.start, Bare: isBareExcept(ll.text)})
			}
		}
	}

	for len(stack) > 0 {
		pop()
	}
	return m, nil
}

// parseHeader pulls name, parameters, return annotation and, for one-line
// defs, an inline docstring out of a def logical line.
func parseHeader(ll *logicalLine) (*Function, error) {
	t := ll.text
	fn := &Function{Line: ll.start, EndLine: ll.end}

	if hasKeyword(t, "async") {
		fn.Async = true
		t = strings.TrimSpace(t[len("async"):])
	}
	t = strings.TrimSpace(t[len("def"):])

	i := 0
	for i < len(t) && isIdentChar(t[i]) {
		i++
	}
	if i == 0 {
		return nil, &SyntaxError{Line: ll.start, Msg: "invalid function definition"}
	}
	fn.Name = t[:i]
	t = strings.TrimSpace(t[i:])

	if t == "" || t[0] != '(' {
		return nil, &SyntaxError{Line: ll.start, Msg: fmt.Sprintf("expected '(' after 'def %s'", fn.Name)}
	}
	end := matchParen(t, 0)
	if end < 0 {
		return nil, &SyntaxError{Line: ll.start, Msg: "'(' was never closed"}
	}
	fn.Params = parseParams(t[1:end])

	rest := strings.TrimSpace(t[end+1:])
	colon := topLevelIndex(rest, ':')
	if colon < 0 {
		return nil, &SyntaxError{Line: ll.start, Msg: "expected ':' in function definition"}
	}
	fn.ReturnAnnotated = strings.Contains(rest[:colon], "->")

	if body := strings.TrimSpace(rest[colon+1:]); body != "" && isStringStmt(body) {
		fn.Docstring = &Docstring{Line: ll.start, Text: body}
	}
	return fn, nil
}

func parseParams(s string) []Param {
	var params []Param
	kwOnly := false
	for _, field := range splitTop(s, ',') {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if field == "/" {
			for i := range params {
				if params[i].Kind == KindPlain {
					params[i].Kind = KindPosOnly
				}
			}
			continue
		}
		if field == "*" {
			kwOnly = true
			continue
		}
		p := Param{Kind: KindPlain}
		switch {
		case strings.HasPrefix(field, "**"):
			p.Kind = KindKwArgs
			field = field[2:]
		case strings.HasPrefix(field, "*"):
			p.Kind = KindVarArgs
			field = field[1:]
			kwOnly = true
		case kwOnly:
			p.Kind = KindKwOnly
		}
		if eq := defaultIndex(field); eq >= 0 {
			p.HasDefault = true
			field = field[:eq]
		}
		if c := topLevelIndex(field, ':'); c >= 0 {
			p.Annotated = true
			field = field[:c]
		}
		p.Name = strings.TrimSpace(field)
		if p.Name == "" {
			continue
		}
		params = append(params, p)
	}
	return params
}

// isDefLine reports whether the logical line opens a function definition,
// including "async def".
func isDefLine(t string) bool {
	if hasKeyword(t, "def") {
		return true
	}
	if !hasKeyword(t, "async") {
		return false
	}
	return hasKeyword(strings.TrimSpace(t[len("async"):]), "def")
}

func hasKeyword(t, kw string) bool {
	if !strings.HasPrefix(t, kw) {
		return false
	}
	return len(t) == len(kw) || !isIdentChar(t[len(kw)])
}

func isIdentChar(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// isStringStmt reports whether t is nothing but string literals, i.e. a
// docstring statement. Implicit concatenation of adjacent literals counts;
// f-strings do not, matching how CPython assigns docstrings.
func isStringStmt(t string) bool {
	t = strings.TrimSpace(t)
	if t == "" {
		return false
	}
	for t != "" {
		i := 0
		for i < len(t) && i < 2 && isPrefixLetter(t[i]) {
			if t[i] == 'f' || t[i] == 'F' {
				return false
			}
			i++
		}
		if i >= len(t) || (t[i] != '\'' && t[i] != '"') {
			return false
		}
		t = strings.TrimSpace(t[skipString(t, i):])
	}
	return true
}

func isPrefixLetter(c byte) bool {
	switch c {
	case 'r', 'R', 'b', 'B', 'u', 'U', 'f', 'F':
		return true
	}
	return false
}

// skipString returns the index just past the string literal opening at t[i].
func skipString(t string, i int) int {
	q := t[i]
	triple := strings.Repeat(string(q), 3)
	if strings.HasPrefix(t[i:], triple) {
		j := i + 3
		for j < len(t) {
			if t[j] == '\\' {
				j += 2
				continue
			}
			if t[j] == q && strings.HasPrefix(t[j:], triple) {
				return j + 3
			}
			j++
		}
		return len(t)
	}
	j := i + 1
	for j < len(t) {
		if t[j] == '\\' {
			j += 2
			continue
		}
		if t[j] == q {
			return j + 1
		}
		j++
	}
	return len(t)
}

// matchParen returns the index of the ')' closing the '(' at t[i], or -1.
func matchParen(t string, i int) int {
	depth := 0
	for j := i; j < len(t); j++ {
		switch t[j] {
		case '\'', '"':
			j = skipString(t, j) - 1
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 && t[j] == ')' {
				return j
			}
		}
	}
	return -1
}

// topLevelIndex finds ch outside any string or bracket nesting.
func topLevelIndex(t string, ch byte) int {
	depth := 0
	for j := 0; j < len(t); j++ {
		c := t[j]
		switch c {
		case '\'', '"':
			j = skipString(t, j) - 1
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		default:
			if c == ch && depth == 0 {
				return j
			}
		}
	}
	return -1
}

// defaultIndex finds the '=' introducing a parameter default, skipping
// comparison and walrus operators.
func defaultIndex(t string) int {
	depth := 0
	for j := 0; j < len(t); j++ {
		c := t[j]
		switch c {
		case '\'', '"':
			j = skipString(t, j) - 1
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '=':
			if depth != 0 {
				continue
			}
			if j+1 < len(t) && t[j+1] == '=' {
				j++
				continue
			}
			if j > 0 && strings.ContainsRune("=!<>:", rune(t[j-1])) {
				continue
			}
			return j
		}
	}
	return -1
}

// splitTop splits on sep at bracket depth zero, outside strings.
func splitTop(t string, sep byte) []string {
	var parts []string
	depth, last := 0, 0
	for j := 0; j < len(t); j++ {
		switch c := t[j]; c {
		case '\'', '"':
			j = skipString(t, j) - 1
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, t[last:j])
				last = j + 1
			}
		}
	}
	parts = append(parts, t[last:])
	return parts
}

func globalNames(t string) []string {
	rest := strings.TrimSpace(t[len("global"):])
	if i := strings.IndexByte(rest, ';'); i >= 0 {
		rest = rest[:i]
	}
	var names []string
	for _, n := range strings.Split(rest, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func isBareExcept(t string) bool {
	rest := strings.TrimSpace(t[len("except"):])
	return strings.HasPrefix(rest, ":")
}
