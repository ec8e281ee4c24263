package parser

import (
	"github.com/tsonic-lang/tsonic-core/internal/ast"
	"github.com/tsonic-lang/tsonic-core/internal/lexer"
)

func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur.Type {
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.LET, lexer.CONST, lexer.VAR:
		decl := p.parseVariableDecl()
		p.skipOptional(lexer.SEMI)
		return decl
	case lexer.FUNCTION:
		return p.parseFunctionDecl(false)
	case lexer.ASYNC:
		if p.peek.Type == lexer.FUNCTION {
			p.next()
			return p.parseFunctionDecl(true)
		}
		stmt := p.parseExpressionStatement()
		return stmt
	case lexer.CLASS:
		return p.parseClassDecl()
	case lexer.ABSTRACT:
		p.next()
		return p.parseClassDecl()
	case lexer.INTERFACE:
		return p.parseInterfaceDecl()
	case lexer.ENUM:
		return p.parseEnumDecl()
	case lexer.TYPE:
		return p.parseTypeAliasDecl()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.SWITCH:
		return p.parseSwitchStmt()
	case lexer.TRY:
		return p.parseTryStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.THROW:
		return p.parseThrowStmt()
	case lexer.BREAK:
		pos := p.astPos(p.cur.Pos)
		p.next()
		p.skipOptional(lexer.SEMI)
		return &ast.BreakStmt{Base: ast.Base{P: pos}}
	case lexer.CONTINUE:
		pos := p.astPos(p.cur.Pos)
		p.next()
		p.skipOptional(lexer.SEMI)
		return &ast.ContinueStmt{Base: ast.Base{P: pos}}
	case lexer.YIELD:
		pos := p.astPos(p.cur.Pos)
		p.next()
		delegate := false
		if p.cur.Type == lexer.STAR {
			delegate = true
			p.next()
		}
		var expr ast.Expr
		if p.cur.Type != lexer.SEMI {
			expr = p.parseExpression()
		}
		p.skipOptional(lexer.SEMI)
		return &ast.YieldStmt{Base: ast.Base{P: pos}, Expr: expr, Delegate: delegate}
	case lexer.SEMI:
		p.next()
		return nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() ast.Stmt {
	pos := p.astPos(p.cur.Pos)
	expr := p.parseExpression()
	p.skipOptional(lexer.SEMI)
	return &ast.ExpressionStmt{Base: ast.Base{P: pos}, Expr: expr}
}

func (p *Parser) parseBlock() *ast.BlockStmt {
	pos := p.astPos(p.cur.Pos)
	p.expect(lexer.LBRACE, "'{'")
	var stmts []ast.Stmt
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		s := p.parseStatement()
		if s != nil {
			stmts = append(stmts, s)
		}
	}
	p.expect(lexer.RBRACE, "'}'")
	return &ast.BlockStmt{Base: ast.Base{P: pos}, Statements: stmts}
}

func (p *Parser) parseIfStmt() ast.Stmt {
	pos := p.astPos(p.cur.Pos)
	p.next() // consume 'if'
	p.expect(lexer.LPAREN, "'('")
	cond := p.parseExpression()
	p.expect(lexer.RPAREN, "')'")
	then := p.parseStatement()
	var els ast.Stmt
	if p.cur.Type == lexer.ELSE {
		p.next()
		els = p.parseStatement()
	}
	return &ast.IfStmt{Base: ast.Base{P: pos}, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	pos := p.astPos(p.cur.Pos)
	p.next() // consume 'while'
	p.expect(lexer.LPAREN, "'('")
	cond := p.parseExpression()
	p.expect(lexer.RPAREN, "')'")
	body := p.parseStatement()
	return &ast.WhileStmt{Base: ast.Base{P: pos}, Cond: cond, Body: body}
}

// parseForStmt disambiguates `for (let x of it)` from a C-style for loop
// by scanning past the binding name for the `of` keyword.
func (p *Parser) parseForStmt() ast.Stmt {
	pos := p.astPos(p.cur.Pos)
	p.next() // consume 'for'
	p.expect(lexer.LPAREN, "'('")

	isConst := p.cur.Type == lexer.CONST
	if p.cur.Type == lexer.LET || p.cur.Type == lexer.CONST || p.cur.Type == lexer.VAR {
		if p.peek.Type == lexer.IDENT {
			save := *p.l
			savedCur, savedPeek := p.cur, p.peek
			p.next() // consume let/const/var
			name := p.cur.Literal
			p.next() // consume ident
			if p.cur.Type == lexer.OF {
				p.next()
				iterable := p.parseExpression()
				p.expect(lexer.RPAREN, "')'")
				body := p.parseStatement()
				return &ast.ForOfStmt{Base: ast.Base{P: pos}, BindingName: name, IsConst: isConst, Iterable: iterable, Body: body}
			}
			*p.l = save
			p.cur, p.peek = savedCur, savedPeek
		}
	}

	var init ast.Stmt
	if p.cur.Type != lexer.SEMI {
		if p.cur.Type == lexer.LET || p.cur.Type == lexer.CONST || p.cur.Type == lexer.VAR {
			init = p.parseVariableDecl()
		} else {
			init = p.parseExpressionStatement2()
		}
	}
	p.expect(lexer.SEMI, "';'")
	var cond ast.Expr
	if p.cur.Type != lexer.SEMI {
		cond = p.parseExpression()
	}
	p.expect(lexer.SEMI, "';'")
	var update ast.Expr
	if p.cur.Type != lexer.RPAREN {
		update = p.parseExpression()
	}
	p.expect(lexer.RPAREN, "')'")
	body := p.parseStatement()
	return &ast.ForStmt{Base: ast.Base{P: pos}, Init: init, Cond: cond, Update: update, Body: body}
}

// parseExpressionStatement2 parses a bare expression for for-loop init
// clauses, without consuming a trailing semicolon (the caller does).
func (p *Parser) parseExpressionStatement2() ast.Stmt {
	pos := p.astPos(p.cur.Pos)
	expr := p.parseExpression()
	return &ast.ExpressionStmt{Base: ast.Base{P: pos}, Expr: expr}
}

func (p *Parser) parseSwitchStmt() ast.Stmt {
	pos := p.astPos(p.cur.Pos)
	p.next() // consume 'switch'
	p.expect(lexer.LPAREN, "'('")
	disc := p.parseExpression()
	p.expect(lexer.RPAREN, "')'")
	p.expect(lexer.LBRACE, "'{'")
	var cases []ast.SwitchCase
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		var test ast.Expr
		if p.cur.Type == lexer.CASE {
			p.next()
			test = p.parseExpression()
		} else {
			p.expect(lexer.DEFAULT, "'default'")
		}
		p.expect(lexer.COLON, "':'")
		var stmts []ast.Stmt
		for p.cur.Type != lexer.CASE && p.cur.Type != lexer.DEFAULT && p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
			s := p.parseStatement()
			if s != nil {
				stmts = append(stmts, s)
			}
		}
		cases = append(cases, ast.SwitchCase{Test: test, Statements: stmts})
	}
	p.expect(lexer.RBRACE, "'}'")
	return &ast.SwitchStmt{Base: ast.Base{P: pos}, Discriminant: disc, Cases: cases}
}

func (p *Parser) parseTryStmt() ast.Stmt {
	pos := p.astPos(p.cur.Pos)
	p.next() // consume 'try'
	block := p.parseBlock()
	var catch *ast.CatchClause
	if p.cur.Type == lexer.CATCH {
		p.next()
		cc := &ast.CatchClause{}
		if p.cur.Type == lexer.LPAREN {
			p.next()
			cc.ParamName = p.cur.Literal
			p.expect(lexer.IDENT, "catch parameter name")
			if p.cur.Type == lexer.COLON {
				p.next()
				cc.ParamType = p.parseType()
			}
			p.expect(lexer.RPAREN, "')'")
		}
		cc.Body = p.parseBlock()
		catch = cc
	}
	var fin *ast.BlockStmt
	if p.cur.Type == lexer.FINALLY {
		p.next()
		fin = p.parseBlock()
	}
	return &ast.TryStmt{Base: ast.Base{P: pos}, Block: block, Catch: catch, Finally: fin}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	pos := p.astPos(p.cur.Pos)
	p.next() // consume 'return'
	var expr ast.Expr
	if p.cur.Type != lexer.SEMI && p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		expr = p.parseExpression()
	}
	p.skipOptional(lexer.SEMI)
	return &ast.ReturnStmt{Base: ast.Base{P: pos}, Expr: expr}
}

func (p *Parser) parseThrowStmt() ast.Stmt {
	pos := p.astPos(p.cur.Pos)
	p.next() // consume 'throw'
	expr := p.parseExpression()
	p.skipOptional(lexer.SEMI)
	return &ast.ThrowStmt{Base: ast.Base{P: pos}, Expr: expr}
}
