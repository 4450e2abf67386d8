package universe

import (
	"unicode"
	"unicode/utf8"
)

type tokenType int

const (
	tokEOF tokenType = iota
	tokIdent
	tokLT
	tokGT
	tokComma
	tokStar
	tokQuestion
	tokIllegal
)

func (t tokenType) String() string {
	switch t {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	case tokLT:
		return "'<'"
	case tokGT:
		return "'>'"
	case tokComma:
		return "','"
	case tokStar:
		return "'*'"
	case tokQuestion:
		return "'?'"
	default:
		return "illegal character"
	}
}

type token struct {
	Type    tokenType
	Literal string
	Pos     int
}

// lexer splits a type expression into tokens.
// Qualified names (host.String) are a single identifier.
type lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
}

func newLexer(input string) *lexer {
	l := &lexer{input: input}
	l.readChar()
	return l
}

func (l *lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		l.readPosition = len(l.input) + 1
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
}

func (l *lexer) NextToken() token {
	l.skipWhitespace()

	pos := l.position
	var tok token
	switch l.ch {
	case 0:
		return token{Type: tokEOF, Pos: pos}
	case '<':
		tok = token{Type: tokLT, Literal: "<", Pos: pos}
	case '>':
		tok = token{Type: tokGT, Literal: ">", Pos: pos}
	case ',':
		tok = token{Type: tokComma, Literal: ",", Pos: pos}
	case '*':
		tok = token{Type: tokStar, Literal: "*", Pos: pos}
	case '?':
		tok = token{Type: tokQuestion, Literal: "?", Pos: pos}
	default:
		if isLetter(l.ch) {
			return token{Type: tokIdent, Literal: l.readIdentifier(), Pos: pos}
		}
		tok = token{Type: tokIllegal, Literal: string(l.ch), Pos: pos}
	}
	l.readChar()
	return tok
}

func (l *lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '.' || l.ch == ':' {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_' || ch == '$'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
