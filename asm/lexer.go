package asm

import (
	"strconv"

	"github.com/sarchlab/msm/isa"
)

type lexer struct {
	src    string
	pos    int
	line   int
	tokens []Token
}

// Lex splits source text into tokens. It fails on the first character that
// cannot start a token.
func Lex(src string) ([]Token, error) {
	l := &lexer{src: src, line: 1}
	if err := l.run(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

func (l *lexer) run() error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case isSpace(c):
			l.pos++
		case isDigit(c):
			if err := l.lexInt(); err != nil {
				return err
			}
		case isLetter(c):
			l.lexWord()
		default:
			return &LexError{Text: string(c), Line: l.line}
		}
	}
	return nil
}

func (l *lexer) lexInt() error {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}

	text := l.src[start:l.pos]
	v, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return &LexError{Text: text, Line: l.line}
	}

	l.emit(Token{Kind: TokenInt, Int: int32(v)})
	return nil
}

func (l *lexer) lexWord() {
	start := l.pos
	for l.pos < len(l.src) && isLetter(l.src[l.pos]) {
		l.pos++
	}
	word := l.src[start:l.pos]

	if l.pos < len(l.src) && l.src[l.pos] == ':' {
		l.pos++
		l.emit(Token{Kind: TokenLabel, Text: word})
		return
	}

	if op, ok := isa.Lookup(word); ok {
		l.emit(Token{Kind: KeywordKind(op)})
		return
	}

	l.emit(Token{Kind: TokenIdent, Text: word})
}

func (l *lexer) emit(t Token) {
	t.Line = l.line
	l.tokens = append(l.tokens, t)
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
