// Package pyast parses Python source into the structural facts the audit
// rules consume: function definitions with their parameters, annotations,
// docstrings and line spans, plus global statements and except clauses
// attributed to their directly enclosing function.
//
// It is not a full Python parser. It tokenizes strings, comments, brackets
// and indentation precisely, and reads statement structure from logical
// lines, which is enough to recover the shape of any well-formed module
// without evaluating anything.
package pyast

import "fmt"

// ParamKind classifies how a parameter is declared in a def header.
type ParamKind int

const (
	// KindPlain is a positional-or-keyword parameter.
	KindPlain ParamKind = iota
	// KindPosOnly is a parameter declared before a bare "/".
	KindPosOnly
	// KindKwOnly is a parameter declared after a bare "*".
	KindKwOnly
	// KindVarArgs is a "*args" parameter.
	KindVarArgs
	// KindKwArgs is a "**kwargs" parameter.
	KindKwArgs
)

// Param is one parameter of a function definition.
type Param struct {
	Name       string
	Kind       ParamKind
	Annotated  bool
	HasDefault bool
}

// Docstring is the leading string literal of a function body.
type Docstring struct {
	Line int    // line of the opening quote
	Text string // raw literal text, quotes included
}

// GlobalStmt is a "global" declaration inside a function body.
type GlobalStmt struct {
	Line  int
	Names []string
}

// ExceptClause is an "except" handler inside a function body. Bare means the
// handler names no exception type.
type ExceptClause struct {
	Line int
	Bare bool
}

// Function is one def (or async def) found anywhere in the module: top
// level, method, or nested. Globals and Excepts hold only statements whose
// directly enclosing function is this one.
type Function struct {
	Name            string
	Line            int // line of the def keyword
	EndLine         int // last line of the body; equals Line for one-line defs
	Async           bool
	Params          []Param
	ReturnAnnotated bool
	Docstring       *Docstring
	Globals         []GlobalStmt
	Excepts         []ExceptClause
}

// Span is the body length in lines, measured the way function length is
// audited: EndLine minus Line.
func (f *Function) Span() int { return f.EndLine - f.Line }

// Module is the parsed shape of one source file. Functions appear in source
// order, outer before inner.
type Module struct {
	Functions []*Function
}

// SyntaxError reports where parsing failed. Line is 1-based and always set.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}
