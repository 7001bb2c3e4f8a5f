// Package asm turns msm assembly source into an isa.Program.
//
// Assembly goes through three stages, each usable on its own:
//
//	Lex       source text  -> []Token
//	Parse     []Token      -> *IR (nodes + label table)
//	Generate  *IR          -> isa.Program
//
// The dialect has one statement per mnemonic. PUSH, INDUP and ISWAP take an
// integer, ZJMP, NZJMP and JP take a label name, everything else takes
// nothing. A name followed directly by a colon declares a label:
//
//	loop:
//	    PUSH 1
//	    SUB
//	    DUP
//	    NZJMP loop
//	    HALT
package asm

import (
	"fmt"

	"github.com/sarchlab/msm/isa"
)

// TokenKind classifies a token. The first isa.NumOpcodes kinds are the
// instruction keywords, one per opcode, in opcode order.
type TokenKind int

const (
	// TokenInt is an integer literal.
	TokenInt = TokenKind(isa.NumOpcodes) + iota
	// TokenIdent is a bare name used as a jump target.
	TokenIdent
	// TokenLabel declares a label.
	TokenLabel
)

// KeywordKind returns the token kind of an instruction keyword.
func KeywordKind(op isa.Opcode) TokenKind {
	return TokenKind(op)
}

// Opcode returns the opcode of a keyword token kind.
func (k TokenKind) Opcode() (isa.Opcode, bool) {
	if k < 0 || int(k) >= isa.NumOpcodes {
		return 0, false
	}
	return isa.Opcode(k), true
}

func (k TokenKind) String() string {
	switch k {
	case TokenInt:
		return "integer"
	case TokenIdent:
		return "identifier"
	case TokenLabel:
		return "label"
	}

	if op, ok := k.Opcode(); ok {
		return op.String()
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is one lexical unit of the source.
type Token struct {
	Kind TokenKind
	// Int is the value of an integer literal.
	Int int32
	// Text is the name of an identifier or label.
	Text string
	// Line is the 1-based source line the token starts on.
	Line int
}

func (t Token) String() string {
	switch t.Kind {
	case TokenInt:
		return fmt.Sprintf("%d", t.Int)
	case TokenIdent:
		return t.Text
	case TokenLabel:
		return t.Text + ":"
	}
	return t.Kind.String()
}
