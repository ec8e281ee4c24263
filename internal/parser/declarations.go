package parser

import (
	"github.com/tsonic-lang/tsonic-core/internal/ast"
	"github.com/tsonic-lang/tsonic-core/internal/lexer"
	"github.com/tsonic-lang/tsonic-core/internal/syntax"
)

func (p *Parser) parseVariableDecl() *ast.VariableDecl {
	pos := p.astPos(p.cur.Pos)
	kind := ast.KindLet
	switch p.cur.Type {
	case lexer.CONST:
		kind = ast.KindConst
	case lexer.VAR:
		kind = ast.KindVar
	}
	p.next() // consume let/const/var
	name := p.cur.Literal
	p.expect(lexer.IDENT, "variable name")
	decl := &ast.VariableDecl{Base: ast.Base{P: pos}, Kind: kind, Name: name}
	if p.cur.Type == lexer.COLON {
		p.next()
		decl.Type = p.parseType()
	}
	if p.cur.Type == lexer.ASSIGN {
		p.next()
		decl.Init = p.parseAssignment()
	}
	return decl
}

// parseTypeParamList parses `<T, U extends X>`, discarding constraint
// detail beyond consuming it — ast.FunctionDecl/ClassDecl only track
// type parameter names (§1 front door, not full generic inference).
func (p *Parser) parseTypeParamList() []string {
	p.next() // consume '<'
	var names []string
	for p.cur.Type != lexer.GT && p.cur.Type != lexer.EOF {
		names = append(names, p.cur.Literal)
		p.expect(lexer.IDENT, "type parameter name")
		if p.cur.Type == lexer.EXTENDS {
			p.next()
			p.parseType()
		}
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.GT, "'>'")
	return names
}

func (p *Parser) parseParamList() []ast.Param {
	p.expect(lexer.LPAREN, "'('")
	var params []ast.Param
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		name := p.cur.Literal
		p.expect(lexer.IDENT, "parameter name")
		param := ast.Param{Name: name}
		if p.cur.Type == lexer.QUESTION {
			param.Optional = true
			p.next()
		}
		if p.cur.Type == lexer.COLON {
			p.next()
			param.Type = p.parseType()
		}
		if p.cur.Type == lexer.ASSIGN {
			p.next()
			p.parseAssignment()
			param.Optional = true
		}
		params = append(params, param)
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RPAREN, "')'")
	return params
}

func (p *Parser) parseFunctionDecl(isAsync bool) *ast.FunctionDecl {
	pos := p.astPos(p.cur.Pos)
	p.next() // consume 'function'
	isGenerator := false
	if p.cur.Type == lexer.STAR {
		isGenerator = true
		p.next()
	}
	name := p.cur.Literal
	p.expect(lexer.IDENT, "function name")
	var typeParams []string
	if p.cur.Type == lexer.LT {
		typeParams = p.parseTypeParamList()
	}
	params := p.parseParamList()
	var ret *syntax.TypeExpr
	if p.cur.Type == lexer.COLON {
		p.next()
		ret = p.parseType()
	}
	body := p.parseBlock()
	fn := &ast.FunctionDecl{Base: ast.Base{P: pos}, Name: name, TypeParams: typeParams,
		Params: params, ReturnType: ret, Body: body, IsAsync: isAsync, IsGenerator: isGenerator}
	return fn
}

func (p *Parser) parseClassDecl() ast.Stmt {
	pos := p.astPos(p.cur.Pos)
	p.next() // consume 'class'
	name := p.cur.Literal
	p.expect(lexer.IDENT, "class name")
	decl := &ast.ClassDecl{Base: ast.Base{P: pos}, Name: name}
	if p.cur.Type == lexer.LT {
		decl.TypeParams = p.parseTypeParamList()
	}
	if p.cur.Type == lexer.EXTENDS {
		p.next()
		decl.Extends = p.parseType()
	}
	if p.cur.Type == lexer.IMPLEMENTS {
		p.next()
		decl.Implements = append(decl.Implements, p.parseType())
		for p.cur.Type == lexer.COMMA {
			p.next()
			decl.Implements = append(decl.Implements, p.parseType())
		}
	}
	p.expect(lexer.LBRACE, "'{'")
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		p.parseClassMember(decl)
	}
	p.expect(lexer.RBRACE, "'}'")
	return decl
}

func (p *Parser) parseClassMember(decl *ast.ClassDecl) {
	static := false
	abstract := false
	for {
		if p.cur.Type == lexer.STATIC {
			static = true
			p.next()
			continue
		}
		if p.cur.Type == lexer.ABSTRACT {
			abstract = true
			p.next()
			continue
		}
		break
	}
	name := p.cur.Literal
	p.expect(lexer.IDENT, "member name")

	if p.cur.Type == lexer.LT || p.cur.Type == lexer.LPAREN {
		if p.cur.Type == lexer.LT {
			p.parseTypeParamList()
		}
		params := p.parseParamList()
		var ret *syntax.TypeExpr
		if p.cur.Type == lexer.COLON {
			p.next()
			ret = p.parseType()
		}
		fn := &ast.FunctionDecl{Name: name, Params: params, ReturnType: ret}
		if p.cur.Type == lexer.LBRACE {
			fn.Body = p.parseBlock()
		} else {
			p.skipOptional(lexer.SEMI)
		}
		decl.Methods = append(decl.Methods, ast.ClassMethod{Func: fn, Static: static, Abstract: abstract})
		return
	}

	field := ast.ClassField{Name: name, Static: static}
	if p.cur.Type == lexer.QUESTION {
		p.next()
	}
	if p.cur.Type == lexer.COLON {
		p.next()
		field.Type = p.parseType()
	}
	if p.cur.Type == lexer.ASSIGN {
		p.next()
		field.Init = p.parseAssignment()
	}
	p.skipOptional(lexer.SEMI)
	decl.Fields = append(decl.Fields, field)
}

func (p *Parser) parseInterfaceDecl() *ast.InterfaceDecl {
	pos := p.astPos(p.cur.Pos)
	p.next() // consume 'interface'
	name := p.cur.Literal
	p.expect(lexer.IDENT, "interface name")
	decl := &ast.InterfaceDecl{Base: ast.Base{P: pos}, Name: name}
	if p.cur.Type == lexer.LT {
		decl.TypeParams = p.parseTypeParamList()
	}
	if p.cur.Type == lexer.EXTENDS {
		p.next()
		decl.Extends = append(decl.Extends, p.parseType())
		for p.cur.Type == lexer.COMMA {
			p.next()
			decl.Extends = append(decl.Extends, p.parseType())
		}
	}
	p.expect(lexer.LBRACE, "'{'")
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		decl.Members = append(decl.Members, p.parseFieldSyntax())
		if p.cur.Type == lexer.SEMI || p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RBRACE, "'}'")
	return decl
}

func (p *Parser) parseEnumDecl() *ast.EnumDecl {
	pos := p.astPos(p.cur.Pos)
	p.next() // consume 'enum'
	name := p.cur.Literal
	p.expect(lexer.IDENT, "enum name")
	decl := &ast.EnumDecl{Base: ast.Base{P: pos}, Name: name}
	p.expect(lexer.LBRACE, "'{'")
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		memberName := p.cur.Literal
		p.expect(lexer.IDENT, "enum member name")
		var value ast.Expr
		if p.cur.Type == lexer.ASSIGN {
			p.next()
			value = p.parseAssignment()
		}
		decl.Members = append(decl.Members, ast.EnumMember{Name: memberName, Value: value})
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RBRACE, "'}'")
	return decl
}

func (p *Parser) parseTypeAliasDecl() *ast.TypeAliasDecl {
	pos := p.astPos(p.cur.Pos)
	p.next() // consume 'type'
	name := p.cur.Literal
	p.expect(lexer.IDENT, "type alias name")
	decl := &ast.TypeAliasDecl{Base: ast.Base{P: pos}, Name: name}
	if p.cur.Type == lexer.LT {
		decl.TypeParams = p.parseTypeParamList()
	}
	p.expect(lexer.ASSIGN, "'='")
	decl.Aliased = p.parseType()
	p.skipOptional(lexer.SEMI)
	return decl
}
