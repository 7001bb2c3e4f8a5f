package asm

import (
	"fmt"

	"github.com/sarchlab/msm/isa"
)

type parser struct {
	tokens []Token
	pos    int
	ir     *IR
}

// Parse builds the IR of a token sequence in a single pass.
func Parse(tokens []Token) (*IR, error) {
	p := &parser{
		tokens: tokens,
		ir:     &IR{Labels: make(Labels)},
	}

	for p.pos < len(p.tokens) {
		if err := p.parseStatement(); err != nil {
			return nil, err
		}
		p.pos++
	}

	end := Token{}
	if n := len(tokens); n > 0 {
		end.Line = tokens[n-1].Line
	}
	p.ir.Nodes = append(p.ir.Nodes, Node{Kind: NodeEnd, Op: isa.NOP, Token: end})

	return p.ir, nil
}

func (p *parser) parseStatement() error {
	tok := p.tokens[p.pos]

	if tok.Kind == TokenLabel {
		p.ir.Labels[tok.Text] = Label{Line: tok.Line, Index: len(p.ir.Nodes)}
		p.emit(Node{Kind: NodeLabel, Op: isa.NOP, Token: tok})
		return nil
	}

	op, ok := tok.Kind.Opcode()
	if !ok {
		return &ParseError{Msg: "expected an instruction", Token: tok}
	}

	switch op.Operand() {
	case isa.Literal:
		arg, err := p.consume(TokenInt, fmt.Sprintf("expected integer after %s", op))
		if err != nil {
			return err
		}
		p.emit(Node{Kind: NodeLiteral, Op: op, Value: arg.Int, Token: tok})
	case isa.Target:
		arg, err := p.consume(TokenIdent, fmt.Sprintf("expected label name after %s", op))
		if err != nil {
			return err
		}
		p.emit(Node{Kind: NodeJump, Op: op, Target: arg.Text, Token: tok})
	default:
		p.emit(Node{Kind: NodePlain, Op: op, Token: tok})
	}

	return nil
}

// consume advances over the next token if it has the expected kind.
func (p *parser) consume(kind TokenKind, msg string) (Token, error) {
	if p.pos+1 >= len(p.tokens) {
		eof := p.tokens[p.pos]
		return Token{}, &ParseError{Msg: msg + " before end of input", Token: eof}
	}

	next := p.tokens[p.pos+1]
	if next.Kind != kind {
		return Token{}, &ParseError{Msg: msg, Token: next}
	}

	p.pos++
	return next, nil
}

func (p *parser) emit(n Node) {
	p.ir.Nodes = append(p.ir.Nodes, n)
}
