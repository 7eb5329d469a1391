package kicadsexp

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// TokenType represents the type of a token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenLeftParen
	TokenRightParen
	TokenSymbol
	TokenString
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenLeftParen:
		return "'('"
	case TokenRightParen:
		return "')'"
	case TokenSymbol:
		return "symbol"
	case TokenString:
		return "string"
	default:
		return "unknown"
	}
}

// Pos is a 1-based line and column in the input.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Token is a lexical token and where it starts.
type Token struct {
	Type  TokenType
	Value string
	Pos   Pos
}

// Lexer tokenizes KiCad S-expression text. KiCad files carry no comments, so
// every non-space rune belongs to a token.
type Lexer struct {
	reader *bufio.Reader
	peeked rune
	hasPk  bool
	pos    Pos
}

// NewLexer creates a new lexer
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(r),
		pos:    Pos{Line: 1, Col: 1},
	}
}

// NextToken reads the next token from the input
func (l *Lexer) NextToken() (Token, error) {
	if err := l.skipSpace(); err != nil {
		if err == io.EOF {
			return Token{Type: TokenEOF, Pos: l.pos}, nil
		}
		return Token{}, err
	}

	start := l.pos
	ch, _ := l.peek()
	switch ch {
	case '(':
		l.read()
		return Token{Type: TokenLeftParen, Value: "(", Pos: start}, nil
	case ')':
		l.read()
		return Token{Type: TokenRightParen, Value: ")", Pos: start}, nil
	case '"':
		s, err := l.readString()
		if err != nil {
			return Token{}, fmt.Errorf("%s: %w", start, err)
		}
		return Token{Type: TokenString, Value: s, Pos: start}, nil
	default:
		return Token{Type: TokenSymbol, Value: l.readSymbol(), Pos: start}, nil
	}
}

func (l *Lexer) skipSpace() error {
	for {
		ch, err := l.peek()
		if err != nil {
			return err
		}
		if !unicode.IsSpace(ch) {
			return nil
		}
		l.read()
	}
}

func (l *Lexer) peek() (rune, error) {
	if l.hasPk {
		return l.peeked, nil
	}
	ch, _, err := l.reader.ReadRune()
	if err != nil {
		return 0, err
	}
	l.peeked, l.hasPk = ch, true
	return ch, nil
}

// read consumes the next rune and advances the position.
func (l *Lexer) read() (rune, error) {
	ch, err := l.peek()
	if err != nil {
		return 0, err
	}
	l.hasPk = false
	if ch == '\n' {
		l.pos.Line++
		l.pos.Col = 1
	} else {
		l.pos.Col++
	}
	return ch, nil
}

// readString reads a quoted string, resolving backslash escapes
func (l *Lexer) readString() (string, error) {
	l.read()

	var b strings.Builder
	for {
		ch, err := l.read()
		if err == io.EOF {
			return "", fmt.Errorf("unexpected EOF in string")
		}
		if err != nil {
			return "", err
		}

		switch ch {
		case '"':
			return b.String(), nil
		case '\\':
			next, err := l.read()
			if err != nil {
				return "", fmt.Errorf("unexpected EOF after backslash")
			}
			switch next {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case 'r':
				b.WriteRune('\r')
			default:
				b.WriteRune(next)
			}
		default:
			b.WriteRune(ch)
		}
	}
}

// readSymbol reads an unquoted atom such as a keyword, number or layer name.
// The caller guarantees the first rune is not a delimiter.
func (l *Lexer) readSymbol() string {
	var b strings.Builder
	for {
		ch, err := l.peek()
		if err != nil || unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '"' {
			return b.String()
		}
		l.read()
		b.WriteRune(ch)
	}
}
