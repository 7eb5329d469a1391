package kicadsexp

import (
	"fmt"
	"io"
)

// Parser builds trees from the lexer's token stream. Lists are assembled
// on an explicit stack so deeply nested footprints cannot exhaust the
// goroutine stack.
type Parser struct {
	lexer *Lexer
}

// NewParser creates a new parser from an io.Reader
func NewParser(r io.Reader) *Parser {
	return &Parser{lexer: NewLexer(r)}
}

// ParseAll reads every top-level expression until EOF.
func (p *Parser) ParseAll() ([]Sexp, error) {
	var (
		top   []Sexp
		stack []*List
		opens []Pos
	)

	for {
		tok, err := p.lexer.NextToken()
		if err != nil {
			return nil, err
		}

		switch tok.Type {
		case TokenEOF:
			if len(stack) > 0 {
				return nil, fmt.Errorf("%s: unexpected EOF: list opened at %s is unclosed",
					tok.Pos, opens[len(opens)-1])
			}
			return top, nil

		case TokenLeftParen:
			stack = append(stack, &List{})
			opens = append(opens, tok.Pos)

		case TokenRightParen:
			if len(stack) == 0 {
				return nil, fmt.Errorf("%s: unexpected ')'", tok.Pos)
			}
			done := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			opens = opens[:len(opens)-1]
			if len(stack) == 0 {
				top = append(top, done)
			} else {
				parent := stack[len(stack)-1]
				parent.elements = append(parent.elements, done)
			}

		case TokenSymbol, TokenString:
			atom := Symbol(tok.Value)
			if len(stack) == 0 {
				top = append(top, atom)
			} else {
				parent := stack[len(stack)-1]
				parent.elements = append(parent.elements, atom)
			}

		default:
			return nil, fmt.Errorf("%s: unexpected %v", tok.Pos, tok.Type)
		}
	}
}
