package asm

import "fmt"

// LexError reports a character or word the tokenizer cannot classify.
type LexError struct {
	Text string
	Line int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unknown symbol %q on line %d", e.Text, e.Line)
}

// ParseError reports a token that cannot start or complete a statement.
type ParseError struct {
	Msg   string
	Token Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s on line %d (got %s)", e.Msg, e.Token.Line, e.Token)
}

// CodeGenError reports a jump to a label that is never declared.
type CodeGenError struct {
	Label string
	Line  int
}

func (e *CodeGenError) Error() string {
	return fmt.Sprintf("undefined label '%s' on line %d", e.Label, e.Line)
}
