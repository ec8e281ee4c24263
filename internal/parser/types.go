package parser

import (
	"github.com/tsonic-lang/tsonic-core/internal/lexer"
	"github.com/tsonic-lang/tsonic-core/internal/syntax"
)

// parseType parses a type annotation into a syntax.TypeExpr, handling
// union/intersection at the top and deferring to parsePostfixType for
// array suffixes (§3.3 "captured type syntax").
func (p *Parser) parseType() *syntax.TypeExpr {
	first := p.parseIntersectionType()
	if p.cur.Type != lexer.PIPE {
		return first
	}
	members := []*syntax.TypeExpr{first}
	for p.cur.Type == lexer.PIPE {
		p.next()
		members = append(members, p.parseIntersectionType())
	}
	return &syntax.TypeExpr{Kind: syntax.TypeExprUnion, Members: members}
}

func (p *Parser) parseIntersectionType() *syntax.TypeExpr {
	first := p.parsePostfixType()
	if p.cur.Type != lexer.AMP {
		return first
	}
	members := []*syntax.TypeExpr{first}
	for p.cur.Type == lexer.AMP {
		p.next()
		members = append(members, p.parsePostfixType())
	}
	return &syntax.TypeExpr{Kind: syntax.TypeExprIntersection, Members: members}
}

func (p *Parser) parsePostfixType() *syntax.TypeExpr {
	t := p.parsePrimaryType()
	for p.cur.Type == lexer.LBRACKET && p.peek.Type == lexer.RBRACKET {
		pos := p.cur.Pos
		p.next()
		p.next()
		t = &syntax.TypeExpr{Kind: syntax.TypeExprArray, Element: t, Pos: p.pos(pos)}
	}
	return t
}

func (p *Parser) parsePrimaryType() *syntax.TypeExpr {
	pos := p.pos(p.cur.Pos)
	switch p.cur.Type {
	case lexer.ANY:
		p.next()
		return &syntax.TypeExpr{Kind: syntax.TypeExprAny, Pos: pos}
	case lexer.UNKNOWN:
		p.next()
		return &syntax.TypeExpr{Kind: syntax.TypeExprUnknown, Pos: pos}
	case lexer.NEVER:
		p.next()
		return &syntax.TypeExpr{Kind: syntax.TypeExprNever, Pos: pos}
	case lexer.VOID:
		p.next()
		return &syntax.TypeExpr{Kind: syntax.TypeExprVoid, Pos: pos}
	case lexer.NULL:
		p.next()
		return &syntax.TypeExpr{Kind: syntax.TypeExprName, Name: "null", Pos: pos}
	case lexer.UNDEFINED:
		p.next()
		return &syntax.TypeExpr{Kind: syntax.TypeExprName, Name: "undefined", Pos: pos}
	case lexer.STRING:
		lit := p.cur.Literal
		p.next()
		return &syntax.TypeExpr{Kind: syntax.TypeExprLiteral, LitString: lit, LitIsStr: true, Pos: pos}
	case lexer.NUMBER:
		n := parseNumberLiteral(p.cur.Literal)
		p.next()
		return &syntax.TypeExpr{Kind: syntax.TypeExprLiteral, LitNumber: n, Pos: pos}
	case lexer.TRUE, lexer.FALSE:
		b := p.cur.Type == lexer.TRUE
		p.next()
		return &syntax.TypeExpr{Kind: syntax.TypeExprLiteral, LitBool: b, LitIsBool: true, Pos: pos}
	case lexer.LBRACKET:
		return p.parseTupleType()
	case lexer.LBRACE:
		return p.parseObjectOrDictionaryType()
	case lexer.LPAREN:
		return p.parseFunctionType()
	case lexer.IDENT:
		name := p.cur.Literal
		p.next()
		te := &syntax.TypeExpr{Kind: syntax.TypeExprName, Name: name, Pos: pos}
		if p.cur.Type == lexer.LT {
			te.TypeArgs = p.parseTypeArgList()
		}
		return te
	default:
		unexpectedToken(p)
		name := p.cur.Literal
		p.next()
		return &syntax.TypeExpr{Kind: syntax.TypeExprName, Name: name, Pos: pos}
	}
}

func (p *Parser) parseTypeArgList() []*syntax.TypeExpr {
	p.next() // consume '<'
	var args []*syntax.TypeExpr
	for p.cur.Type != lexer.GT && p.cur.Type != lexer.EOF {
		args = append(args, p.parseType())
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.GT, "'>'")
	return args
}

func (p *Parser) parseTupleType() *syntax.TypeExpr {
	start := p.pos(p.cur.Pos)
	p.next() // consume '['
	var elements []*syntax.TypeExpr
	for p.cur.Type != lexer.RBRACKET && p.cur.Type != lexer.EOF {
		elements = append(elements, p.parseType())
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RBRACKET, "']'")
	return &syntax.TypeExpr{Kind: syntax.TypeExprTuple, Elements: elements, Pos: start}
}

// parseObjectOrDictionaryType distinguishes `{ [key: K]: V }` from an
// inline `{ name: T; method(...): R }` structural type.
func (p *Parser) parseObjectOrDictionaryType() *syntax.TypeExpr {
	start := p.pos(p.cur.Pos)
	p.next() // consume '{'

	if p.cur.Type == lexer.LBRACKET {
		p.next() // consume '['
		p.expect(lexer.IDENT, "index key name")
		p.expect(lexer.COLON, "':'")
		keyType := p.parseType()
		p.expect(lexer.RBRACKET, "']'")
		p.expect(lexer.COLON, "':'")
		valueType := p.parseType()
		p.skipOptional(lexer.SEMI)
		p.expect(lexer.RBRACE, "'}'")
		return &syntax.TypeExpr{Kind: syntax.TypeExprDictionary, Key: keyType, Value: valueType, Pos: start}
	}

	var members []syntax.FieldSyntax
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		members = append(members, p.parseFieldSyntax())
		if p.cur.Type == lexer.SEMI || p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RBRACE, "'}'")
	return &syntax.TypeExpr{Kind: syntax.TypeExprObject, Params: members, Pos: start}
}

func (p *Parser) parseFieldSyntax() syntax.FieldSyntax {
	name := p.cur.Literal
	p.expect(lexer.IDENT, "member name")
	optional := false
	if p.cur.Type == lexer.QUESTION {
		optional = true
		p.next()
	}
	if p.cur.Type == lexer.LPAREN {
		params := p.parseParenTypeList()
		p.expect(lexer.COLON, "':'")
		ret := p.parseType()
		return syntax.FieldSyntax{Name: name, IsMethod: true, Optional: optional,
			Type: &syntax.TypeExpr{Kind: syntax.TypeExprFunction, Params: params, Return: ret}}
	}
	p.expect(lexer.COLON, "':'")
	t := p.parseType()
	return syntax.FieldSyntax{Name: name, Type: t, Optional: optional}
}

func (p *Parser) parseFunctionType() *syntax.TypeExpr {
	start := p.pos(p.cur.Pos)
	params := p.parseParenTypeList()
	p.expect(lexer.ARROW, "'=>'")
	ret := p.parseType()
	return &syntax.TypeExpr{Kind: syntax.TypeExprFunction, Params: params, Return: ret, Pos: start}
}

func (p *Parser) parseParenTypeList() []syntax.FieldSyntax {
	p.expect(lexer.LPAREN, "'('")
	var params []syntax.FieldSyntax
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		name := p.cur.Literal
		p.expect(lexer.IDENT, "parameter name")
		optional := false
		if p.cur.Type == lexer.QUESTION {
			optional = true
			p.next()
		}
		p.expect(lexer.COLON, "':'")
		t := p.parseType()
		params = append(params, syntax.FieldSyntax{Name: name, Type: t, Optional: optional})
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RPAREN, "')'")
	return params
}
