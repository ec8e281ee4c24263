// Package parser is a recursive-descent parser over internal/lexer's
// token stream, producing internal/ast trees. It mirrors the teacher's
// internal/parser layout — a cursor over buffered tokens, precedence-
// climbing expression parsing, accumulated (not first-error-fatal)
// diagnostics — generalized to the TypeScript-flavored subset this spec's
// worked examples use (§1).
package parser

import (
	"fmt"

	"github.com/tsonic-lang/tsonic-core/internal/ast"
	"github.com/tsonic-lang/tsonic-core/internal/diag"
	"github.com/tsonic-lang/tsonic-core/internal/lexer"
)

// Parser consumes tokens from a Lexer and builds an *ast.Program.
type Parser struct {
	l       *lexer.Lexer
	file    string
	cur     lexer.Token
	peek    lexer.Token
	diags   *diag.Collector
}

// New returns a Parser over src, attributing diagnostics to file.
func New(file, src string, diags *diag.Collector) *Parser {
	p := &Parser{l: lexer.New(src), file: file, diags: diags}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) pos(tp lexer.Position) diag.Position {
	return diag.Position{File: p.file, Line: tp.Line, Column: tp.Column, Offset: tp.Offset}
}

func (p *Parser) astPos(tp lexer.Position) ast.Pos {
	return ast.Pos{Line: tp.Line, Column: tp.Column}
}

func (p *Parser) errorf(format string, args ...any) {
	p.diags.Errorf(diag.CodeUnsupportedConstruct, p.pos(p.cur.Pos), format, args...)
}

func (p *Parser) expect(t lexer.TokenType, what string) bool {
	if p.cur.Type != t {
		p.errorf("expected %s, got %q", what, p.cur.Literal)
		return false
	}
	p.next()
	return true
}

func (p *Parser) skipOptional(t lexer.TokenType) {
	if p.cur.Type == t {
		p.next()
	}
}

// ParseProgram parses the entire token stream into a Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{File: p.file}
	for p.cur.Type != lexer.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		} else {
			// Avoid an infinite loop on an unrecognized token.
			p.next()
		}
	}
	return prog
}

// Parse is the convenience entry point lexing+parsing src in one call.
func Parse(file, src string) (*ast.Program, *diag.Collector) {
	diags := diag.NewCollector()
	p := New(file, src, diags)
	prog := p.ParseProgram()
	for _, e := range p.l.Errors() {
		diags.Errorf(diag.CodeUnsupportedConstruct, p.pos(e.Pos), "%s", e.Message)
	}
	return prog, diags
}

func unexpectedToken(p *Parser) {
	p.errorf("unexpected token %q", tokenDesc(p.cur))
}

func tokenDesc(t lexer.Token) string {
	if t.Literal != "" {
		return t.Literal
	}
	return fmt.Sprintf("token(%d)", t.Type)
}
