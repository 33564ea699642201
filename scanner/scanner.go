// Package scanner turns rev source text into the token stream consumed by
// the parser. Every stream it returns ends with exactly one token.Eof.
package scanner

import (
	"strings"

	"github.com/rubiojr/rev/diag"
	"github.com/rubiojr/rev/token"
)

// Scanner iterates byte-by-byte over source text. Spans are 0-based
// inclusive byte offsets.
type Scanner struct {
	src    string
	pos    int
	tokens []token.Token
	errs   diag.List
}

// New creates a Scanner for the given source text. Call Next() to advance
// to the first byte.
func New(src string) *Scanner {
	return &Scanner{src: src, pos: -1}
}

// Scan tokenizes src. Lexical errors for the whole input are collected and
// returned together as a diag.List.
func Scan(src string) ([]token.Token, error) {
	return New(src).Scan()
}

// Next advances to the next byte. Returns the byte and true, or (0, false)
// at end of input.
func (s *Scanner) Next() (byte, bool) {
	s.pos++
	if s.pos >= len(s.src) {
		s.pos = len(s.src)
		return 0, false
	}
	return s.src[s.pos], true
}

// Peek returns the next byte without advancing, or (0, false) at end.
func (s *Scanner) Peek() (byte, bool) {
	if s.pos+1 >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos+1], true
}

// Pos returns the offset of the last byte returned by Next. Returns -1
// before the first call to Next.
func (s *Scanner) Pos() int { return s.pos }

// LookingAt checks if src[pos:] starts with the given prefix.
func (s *Scanner) LookingAt(prefix string) bool {
	return s.pos >= 0 && strings.HasPrefix(s.src[s.pos:], prefix)
}

// Scan consumes the rest of the input.
func (s *Scanner) Scan() ([]token.Token, error) {
	for ch, ok := s.Next(); ok; ch, ok = s.Next() {
		start := s.Pos()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
		case ch == '\n':
			s.emit(token.NewLine, start)
		case ch == '/' && s.LookingAt("//"):
			s.skipComment()
		case isDigit(ch):
			s.number(start)
		case isIdentStart(ch):
			s.identifier(start)
		default:
			s.operator(ch, start)
		}
	}
	end := len(s.src)
	s.tokens = append(s.tokens, token.Token{Kind: token.Eof, Loc: token.NewLoc(end, end)})
	if err := s.errs.Err(); err != nil {
		return nil, err
	}
	return s.tokens, nil
}

func (s *Scanner) emit(kind token.Kind, start int) {
	s.tokens = append(s.tokens, token.Token{
		Kind:  kind,
		Value: s.src[start : s.Pos()+1],
		Loc:   token.NewLoc(start, s.Pos()),
	})
}

func (s *Scanner) skipComment() {
	for b, ok := s.Peek(); ok && b != '\n'; b, ok = s.Peek() {
		s.Next()
	}
}

func (s *Scanner) number(start int) {
	s.digits()
	kind := token.Int
	if b, ok := s.Peek(); ok && b == '.' {
		s.Next()
		s.digits()
		kind = token.Real
	}
	s.emit(kind, start)
}

func (s *Scanner) digits() {
	for b, ok := s.Peek(); ok && isDigit(b); b, ok = s.Peek() {
		s.Next()
	}
}

func (s *Scanner) identifier(start int) {
	for b, ok := s.Peek(); ok && (isIdentStart(b) || isDigit(b)); b, ok = s.Peek() {
		s.Next()
	}
	s.emit(token.Lookup(s.src[start:s.pos+1]), start)
}

var single = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'(': token.OpenParen,
	')': token.CloseParen,
	'!': token.Bang,
	'=': token.Equal,
	'<': token.Less,
	'>': token.Greater,
}

// withEqual maps a one byte operator to its "x=" form.
var withEqual = map[byte]token.Kind{
	'!': token.BangEqual,
	'=': token.EqualEqual,
	'<': token.LessEqual,
	'>': token.GreaterEqual,
}

func (s *Scanner) operator(ch byte, start int) {
	if kind, ok := withEqual[ch]; ok {
		if b, ok := s.Peek(); ok && b == '=' {
			s.Next()
			s.emit(kind, start)
			return
		}
	}
	if kind, ok := single[ch]; ok {
		s.emit(kind, start)
		return
	}
	s.errs = append(s.errs, diag.Lexer(token.NewLoc(start, start), "Unexpected character '%c'", ch))
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
