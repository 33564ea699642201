// Package token defines the lexical tokens shared by the scanner, the
// parser and the diagnostics renderer.
package token

import "fmt"

// Kind classifies a token.
type Kind uint8

const (
	Illegal Kind = iota

	// Literals
	Int
	Real
	Identifier
	True
	False
	Null

	// Operators
	Plus
	Minus
	Star
	Slash
	Bang
	BangEqual
	Equal
	EqualEqual
	Less
	LessEqual
	Greater
	GreaterEqual

	// Delimiters
	OpenParen
	CloseParen

	// Structure
	NewLine
	Eof

	// Statement-leading keywords. The expression parser only uses them as
	// recovery anchors.
	Struct
	Fn
	Var
	Const
	For
	If
	While
	Print
	Return
)

var kindNames = [...]string{
	Illegal:      "Illegal",
	Int:          "Int",
	Real:         "Real",
	Identifier:   "Identifier",
	True:         "True",
	False:        "False",
	Null:         "Null",
	Plus:         "Plus",
	Minus:        "Minus",
	Star:         "Star",
	Slash:        "Slash",
	Bang:         "Bang",
	BangEqual:    "BangEqual",
	Equal:        "Equal",
	EqualEqual:   "EqualEqual",
	Less:         "Less",
	LessEqual:    "LessEqual",
	Greater:      "Greater",
	GreaterEqual: "GreaterEqual",
	OpenParen:    "OpenParen",
	CloseParen:   "CloseParen",
	NewLine:      "NewLine",
	Eof:          "Eof",
	Struct:       "Struct",
	Fn:           "Fn",
	Var:          "Var",
	Const:        "Const",
	For:          "For",
	If:           "If",
	While:        "While",
	Print:        "Print",
	Return:       "Return",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

var keywords = map[string]Kind{
	"true":   True,
	"false":  False,
	"null":   Null,
	"struct": Struct,
	"fn":     Fn,
	"var":    Var,
	"const":  Const,
	"for":    For,
	"if":     If,
	"while":  While,
	"print":  Print,
	"return": Return,
}

// Lookup returns the keyword kind for word, or Identifier.
func Lookup(word string) Kind {
	if k, ok := keywords[word]; ok {
		return k
	}
	return Identifier
}

// IsSyncAnchor reports whether a parser in panic mode may stop in front of
// a token of kind k.
func IsSyncAnchor(k Kind) bool {
	switch k {
	case NewLine, Struct, Fn, Var, Const, For, If, While, Print, Return:
		return true
	}
	return false
}

// Token is a classified lexical unit.
type Token struct {
	Kind  Kind
	Value string
	Loc   Loc
}

func (t Token) String() string {
	switch t.Kind {
	case NewLine:
		return `\n`
	case Eof:
		return "<eof>"
	}
	return t.Value
}
