package parser

import (
	"github.com/tsonic-lang/tsonic-core/internal/ast"
	"github.com/tsonic-lang/tsonic-core/internal/lexer"
	"github.com/tsonic-lang/tsonic-core/internal/syntax"
)

// precedence levels, lowest to highest, for the binary/logical operators
// the language subset supports.
const (
	precLowest = iota
	precNullish
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
)

var binaryPrecedence = map[lexer.TokenType]int{
	lexer.OR_OR:             precOr,
	lexer.AND_AND:           precAnd,
	lexer.QUESTION_QUESTION: precNullish,
	lexer.PIPE:              precBitOr,
	lexer.CARET:             precBitXor,
	lexer.AMP:               precBitAnd,
	lexer.EQ:                precEquality,
	lexer.NEQ:               precEquality,
	lexer.EQ_STRICT:         precEquality,
	lexer.NEQ_STRICT:        precEquality,
	lexer.LT:                precRelational,
	lexer.GT:                precRelational,
	lexer.LE:                precRelational,
	lexer.GE:                precRelational,
	lexer.SHL:               precShift,
	lexer.SHR:               precShift,
	lexer.PLUS:              precAdditive,
	lexer.MINUS:             precAdditive,
	lexer.STAR:              precMultiplicative,
	lexer.SLASH:             precMultiplicative,
	lexer.PERCENT:           precMultiplicative,
}

var tokOpName = map[lexer.TokenType]string{
	lexer.OR_OR: "||", lexer.AND_AND: "&&", lexer.QUESTION_QUESTION: "??",
	lexer.PIPE: "|", lexer.CARET: "^", lexer.AMP: "&",
	lexer.EQ: "==", lexer.NEQ: "!=", lexer.EQ_STRICT: "===", lexer.NEQ_STRICT: "!==",
	lexer.LT: "<", lexer.GT: ">", lexer.LE: "<=", lexer.GE: ">=",
	lexer.SHL: "<<", lexer.SHR: ">>",
	lexer.PLUS: "+", lexer.MINUS: "-", lexer.STAR: "*", lexer.SLASH: "/", lexer.PERCENT: "%",
	lexer.BANG: "!", lexer.TILDE: "~",
}

var assignOps = map[lexer.TokenType]string{
	lexer.ASSIGN:       "=",
	lexer.PLUS_ASSIGN:  "+=",
	lexer.MINUS_ASSIGN: "-=",
	lexer.STAR_ASSIGN:  "*=",
	lexer.SLASH_ASSIGN: "/=",
}

func (p *Parser) parseExpression() ast.Expr {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Expr {
	if p.isArrowFunctionAhead() {
		return p.parseArrowFunction()
	}
	left := p.parseConditional()
	if op, ok := assignOps[p.cur.Type]; ok {
		pos := p.astPos(p.cur.Pos)
		p.next()
		value := p.parseAssignment()
		return &ast.AssignmentExpr{Base: ast.Base{P: pos}, Op: op, Target: left, Value: value}
	}
	return left
}

func (p *Parser) parseConditional() ast.Expr {
	cond := p.parseBinary(precLowest + 1)
	if p.cur.Type != lexer.QUESTION {
		return cond
	}
	pos := p.astPos(p.cur.Pos)
	p.next()
	then := p.parseAssignment()
	p.expect(lexer.COLON, "':'")
	els := p.parseAssignment()
	return &ast.ConditionalExpr{Base: ast.Base{P: pos}, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseBinary(minPrec int) ast.Expr {
	left := p.parseUnary()
	for {
		prec, ok := binaryPrecedence[p.cur.Type]
		if !ok || prec < minPrec {
			return left
		}
		op := p.cur.Type
		pos := p.astPos(p.cur.Pos)
		p.next()
		right := p.parseBinary(prec + 1)
		if op == lexer.AND_AND || op == lexer.OR_OR || op == lexer.QUESTION_QUESTION {
			left = &ast.LogicalExpr{Base: ast.Base{P: pos}, Op: tokOpName[op], Left: left, Right: right}
		} else {
			left = &ast.BinaryExpr{Base: ast.Base{P: pos}, Op: tokOpName[op], Left: left, Right: right}
		}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	pos := p.astPos(p.cur.Pos)
	switch p.cur.Type {
	case lexer.BANG, lexer.MINUS, lexer.PLUS, lexer.TILDE:
		op := tokOpName[p.cur.Type]
		p.next()
		return &ast.UnaryExpr{Base: ast.Base{P: pos}, Op: op, Operand: p.parseUnary()}
	case lexer.TYPEOF:
		p.next()
		return &ast.UnaryExpr{Base: ast.Base{P: pos}, Op: "typeof", Operand: p.parseUnary()}
	case lexer.VOID:
		p.next()
		return &ast.UnaryExpr{Base: ast.Base{P: pos}, Op: "void", Operand: p.parseUnary()}
	case lexer.DELETE:
		p.next()
		return &ast.UnaryExpr{Base: ast.Base{P: pos}, Op: "delete", Operand: p.parseUnary()}
	case lexer.AWAIT:
		p.next()
		return &ast.AwaitExpr{Base: ast.Base{P: pos}, Operand: p.parseUnary()}
	case lexer.YIELD:
		p.next()
		delegate := false
		if p.cur.Type == lexer.STAR {
			delegate = true
			p.next()
		}
		return &ast.YieldExpr{Base: ast.Base{P: pos}, Operand: p.parseAssignment(), Delegate: delegate}
	case lexer.PLUS_PLUS, lexer.MINUS_MINUS:
		op := "++"
		if p.cur.Type == lexer.MINUS_MINUS {
			op = "--"
		}
		p.next()
		return &ast.UpdateExpr{Base: ast.Base{P: pos}, Op: op, Operand: p.parseUnary(), Prefix: true}
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		pos := p.astPos(p.cur.Pos)
		switch p.cur.Type {
		case lexer.DOT:
			p.next()
			name := p.cur.Literal
			p.expect(lexer.IDENT, "member name")
			expr = &ast.MemberExpr{Base: ast.Base{P: pos}, Receiver: expr, Name: name}
		case lexer.QUESTION_DOT:
			p.next()
			name := p.cur.Literal
			p.expect(lexer.IDENT, "member name")
			expr = &ast.MemberExpr{Base: ast.Base{P: pos}, Receiver: expr, Name: name, Optional: true}
		case lexer.LBRACKET:
			p.next()
			idx := p.parseExpression()
			p.expect(lexer.RBRACKET, "']'")
			expr = &ast.MemberExpr{Base: ast.Base{P: pos}, Receiver: expr, Computed: idx}
		case lexer.LPAREN:
			args := p.parseArgList()
			expr = &ast.CallExpr{Base: ast.Base{P: pos}, Callee: expr, Args: args}
		case lexer.AS:
			p.next()
			kind := ast.AsCast
			if p.cur.Type == lexer.QUESTION {
				kind = ast.AsSafeCast
				p.next()
			}
			t := p.parseType()
			if t.Kind == syntax.TypeExprUnknown {
				kind = ast.AsUnknown
			}
			expr = &ast.AsExpr{Base: ast.Base{P: pos}, Operand: expr, Type: t, AsKind: kind}
		case lexer.PLUS_PLUS, lexer.MINUS_MINUS:
			op := "++"
			if p.cur.Type == lexer.MINUS_MINUS {
				op = "--"
			}
			p.next()
			expr = &ast.UpdateExpr{Base: ast.Base{P: pos}, Op: op, Operand: expr, Prefix: false}
		default:
			return expr
		}
	}
}

func (p *Parser) parseArgList() []ast.Expr {
	p.expect(lexer.LPAREN, "'('")
	var args []ast.Expr
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		if p.cur.Type == lexer.DOTDOTDOT {
			pos := p.astPos(p.cur.Pos)
			p.next()
			args = append(args, &ast.SpreadExpr{Base: ast.Base{P: pos}, Operand: p.parseAssignment()})
		} else {
			args = append(args, p.parseAssignment())
		}
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RPAREN, "')'")
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	pos := p.astPos(p.cur.Pos)
	switch p.cur.Type {
	case lexer.NUMBER:
		n := parseNumberLiteral(p.cur.Literal)
		p.next()
		return &ast.Literal{Base: ast.Base{P: pos}, Kind: ast.LitNumber, Number: n}
	case lexer.STRING:
		s := p.cur.Literal
		p.next()
		return &ast.Literal{Base: ast.Base{P: pos}, Kind: ast.LitString, Str: s}
	case lexer.TRUE, lexer.FALSE:
		b := p.cur.Type == lexer.TRUE
		p.next()
		return &ast.Literal{Base: ast.Base{P: pos}, Kind: ast.LitBool, Bool: b}
	case lexer.NULL:
		p.next()
		return &ast.Literal{Base: ast.Base{P: pos}, Kind: ast.LitNull}
	case lexer.UNDEFINED:
		p.next()
		return &ast.Literal{Base: ast.Base{P: pos}, Kind: ast.LitUndefined}
	case lexer.THIS:
		p.next()
		return &ast.Ident{Base: ast.Base{P: pos}, Name: "this"}
	case lexer.IDENT:
		name := p.cur.Literal
		p.next()
		return &ast.Ident{Base: ast.Base{P: pos}, Name: name}
	case lexer.NEW:
		p.next()
		callee := p.parsePostfix()
		if ce, ok := callee.(*ast.CallExpr); ok {
			return &ast.NewExpr{Base: ast.Base{P: pos}, Callee: ce.Callee, Args: ce.Args}
		}
		return &ast.NewExpr{Base: ast.Base{P: pos}, Callee: callee}
	case lexer.LPAREN:
		p.next()
		e := p.parseExpression()
		p.expect(lexer.RPAREN, "')'")
		return e
	case lexer.LBRACKET:
		return p.parseArrayLit(pos)
	case lexer.LBRACE:
		return p.parseObjectLit(pos)
	case lexer.TEMPLATE:
		return p.parseTemplateLiteral(pos)
	case lexer.ASYNC:
		return p.parseArrowFunction()
	default:
		unexpectedToken(p)
		p.next()
		return &ast.Literal{Base: ast.Base{P: pos}, Kind: ast.LitUndefined}
	}
}

func (p *Parser) parseArrayLit(pos ast.Pos) ast.Expr {
	p.next() // consume '['
	var elems []ast.Expr
	for p.cur.Type != lexer.RBRACKET && p.cur.Type != lexer.EOF {
		if p.cur.Type == lexer.DOTDOTDOT {
			spos := p.astPos(p.cur.Pos)
			p.next()
			elems = append(elems, &ast.SpreadExpr{Base: ast.Base{P: spos}, Operand: p.parseAssignment()})
		} else {
			elems = append(elems, p.parseAssignment())
		}
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RBRACKET, "']'")
	return &ast.ArrayLit{Base: ast.Base{P: pos}, Elements: elems}
}

func (p *Parser) parseObjectLit(pos ast.Pos) ast.Expr {
	p.next() // consume '{'
	var props []ast.ObjectProperty
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		if p.cur.Type == lexer.DOTDOTDOT {
			p.next()
			props = append(props, ast.ObjectProperty{Value: p.parseAssignment(), IsSpread: true})
		} else {
			key := p.cur.Literal
			p.next()
			if p.cur.Type == lexer.COLON {
				p.next()
				props = append(props, ast.ObjectProperty{Key: key, Value: p.parseAssignment()})
			} else {
				props = append(props, ast.ObjectProperty{Key: key, Value: &ast.Ident{Name: key}})
			}
		}
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RBRACE, "'}'")
	return &ast.ObjectLit{Base: ast.Base{P: pos}, Properties: props}
}

// parseTemplateLiteral splits the lexer's raw template text on `${...}`
// boundaries and re-parses each interpolation with its own sub-parser,
// per readRawTemplate's deferred-decomposition design (internal/lexer).
func (p *Parser) parseTemplateLiteral(pos ast.Pos) ast.Expr {
	raw := p.cur.Literal
	p.next()
	quasis, exprSources := splitTemplate(raw)
	exprs := make([]ast.Expr, len(exprSources))
	for i, src := range exprSources {
		sub := New(p.file, src, p.diags)
		exprs[i] = sub.parseExpression()
	}
	return &ast.TemplateLiteral{Base: ast.Base{P: pos}, Quasis: quasis, Expressions: exprs}
}

func splitTemplate(raw string) ([]string, []string) {
	var quasis []string
	var exprs []string
	var sb []byte
	i := 0
	for i < len(raw) {
		if raw[i] == '$' && i+1 < len(raw) && raw[i+1] == '{' {
			quasis = append(quasis, string(sb))
			sb = nil
			depth := 1
			j := i + 2
			start := j
			for j < len(raw) && depth > 0 {
				if raw[j] == '{' {
					depth++
				} else if raw[j] == '}' {
					depth--
					if depth == 0 {
						break
					}
				}
				j++
			}
			exprs = append(exprs, raw[start:j])
			i = j + 1
			continue
		}
		sb = append(sb, raw[i])
		i++
	}
	quasis = append(quasis, string(sb))
	return quasis, exprs
}

// isArrowFunctionAhead speculatively scans for `(...) =>` or `ident =>`
// on a disposable copy of the lexer rather than backtracking the live
// cursor state.
func (p *Parser) isArrowFunctionAhead() bool {
	if p.cur.Type == lexer.IDENT && p.peek.Type == lexer.ARROW {
		return true
	}
	if p.cur.Type != lexer.LPAREN {
		return false
	}
	depth := 0
	scan := *p.l
	tok := p.cur
	// p.peek has already been consumed from p.l, so it is replayed first.
	pending := []lexer.Token{p.peek}
	for {
		switch tok.Type {
		case lexer.LPAREN:
			depth++
		case lexer.RPAREN:
			depth--
			if depth == 0 {
				next := scan.NextToken()
				return next.Type == lexer.ARROW
			}
		case lexer.EOF:
			return false
		}
		if len(pending) > 0 {
			tok, pending = pending[0], pending[1:]
		} else {
			tok = scan.NextToken()
		}
	}
}

func (p *Parser) parseArrowFunction() ast.Expr {
	pos := p.astPos(p.cur.Pos)
	isAsync := false
	if p.cur.Type == lexer.ASYNC {
		isAsync = true
		p.next()
	}
	var params []ast.Param
	if p.cur.Type == lexer.IDENT {
		params = []ast.Param{{Name: p.cur.Literal}}
		p.next()
	} else {
		params = p.parseParamList()
	}
	var retType *syntax.TypeExpr
	if p.cur.Type == lexer.COLON {
		p.next()
		retType = p.parseType()
	}
	p.expect(lexer.ARROW, "'=>'")
	fn := &ast.ArrowFunction{Base: ast.Base{P: pos}, Params: params, ReturnType: retType, IsAsync: isAsync}
	if p.cur.Type == lexer.LBRACE {
		fn.BlockBody = p.parseBlock()
	} else {
		fn.ExprBody = p.parseAssignment()
	}
	return fn
}
