package emitter

import (
	"strconv"

	"github.com/tsonic-lang/tsonic-core/internal/config"
	"github.com/tsonic-lang/tsonic-core/internal/diag"
	"github.com/tsonic-lang/tsonic-core/internal/handle"
	"github.com/tsonic-lang/tsonic-core/internal/ir"
	"github.com/tsonic-lang/tsonic-core/internal/validate"
)

// Emitter is the C7 emitter's per-module state (§4.6): the naming
// convention it renders identifiers under, the set of "narrowed bindings"
// a preceding null-check has already proven non-null within the current
// statement's scope, and the using directives accumulated along the way
// from every MemberBinding it touches.
//
// The emitter never returns an error for a condition the soundness gate
// (C6) should already have refused; those cases panic with an ICE
// (§7 category 3) instead.
type Emitter struct {
	Naming   config.NamingConvention
	narrowed map[handle.DeclId]bool
	usings   map[string]bool
}

// New returns an Emitter rendering member names per naming.
func New(naming config.NamingConvention) *Emitter {
	return &Emitter{Naming: naming, narrowed: make(map[handle.DeclId]bool), usings: make(map[string]bool)}
}

// EmitModule translates m into a backend File (§4.6). Callers must have
// already run the numeric proof pass and the soundness gate and confirmed
// diags.HasErrors() is false; EmitModule does not re-check either.
func (e *Emitter) EmitModule(m *ir.Module) *File {
	ns := &NamespaceDecl{Name: m.Namespace}

	var globals []MemberDecl
	for _, s := range m.Body {
		switch v := s.(type) {
		case *ir.FunctionDeclStmt:
			globals = append(globals, e.emitMethod(v))
		case *ir.VariableDeclStmt:
			globals = append(globals, e.emitGlobalField(v))
		case *ir.ClassDeclStmt:
			ns.Types = append(ns.Types, e.emitClass(v))
		case *ir.InterfaceDeclStmt:
			ns.Types = append(ns.Types, e.emitInterface(v))
		case *ir.EnumDeclStmt:
			ns.Types = append(ns.Types, e.emitEnum(v))
		}
	}
	// Top-level functions/variables have no natural CLR container; they
	// are hoisted into a single static class per module, named Globals and
	// placed in the module's own namespace (§9 open question: "free functions").
	if len(globals) > 0 {
		ns.Types = append([]TypeDecl{&ClassDecl{Name: "Globals", IsStatic: true, Members: globals}}, ns.Types...)
	}

	usings := make([]string, 0, len(e.usings))
	for u := range e.usings {
		usings = append(usings, u)
	}
	return &File{Usings: sortedStrings(usings), Namespace: ns}
}

func sortedStrings(ss []string) []string {
	for i := 1; i < len(ss); i++ {
		for j := i; j > 0 && ss[j-1] > ss[j]; j-- {
			ss[j-1], ss[j] = ss[j], ss[j-1]
		}
	}
	return ss
}

func (e *Emitter) name(s string) string {
	if e.Naming == config.NamingCLRStyle {
		return validate.TargetName(s)
	}
	return s
}

func (e *Emitter) emitGlobalField(v *ir.VariableDeclStmt) *FieldDecl {
	return &FieldDecl{Name: e.name(v.Name), Type: e.renderType(v.Type), IsStatic: true}
}

func (e *Emitter) emitClass(v *ir.ClassDeclStmt) *ClassDecl {
	c := &ClassDecl{Name: e.name(v.Name), TypeParams: v.TypeParams, IsAbstract: v.IsAbstract}
	if v.Extends != nil {
		c.BaseTypes = append(c.BaseTypes, e.renderType(v.Extends))
	}
	for _, impl := range v.Implements {
		c.BaseTypes = append(c.BaseTypes, e.renderType(impl))
	}
	for _, m := range v.Members {
		if m.Method != nil {
			method := e.emitMethod(m.Method)
			method.IsStatic = m.IsStatic
			method.IsAbstract = m.IsAbstract
			c.Members = append(c.Members, method)
			continue
		}
		c.Members = append(c.Members, &FieldDecl{Name: e.name(m.Name), Type: e.renderType(m.Field), IsStatic: m.IsStatic})
	}
	return c
}

func (e *Emitter) emitInterface(v *ir.InterfaceDeclStmt) *InterfaceDecl {
	iface := &InterfaceDecl{Name: e.name(v.Name), TypeParams: v.TypeParams}
	for _, ext := range v.Extends {
		iface.BaseTypes = append(iface.BaseTypes, e.renderType(ext))
	}
	for _, m := range v.Members {
		if m.IsMethod {
			iface.Members = append(iface.Members, &MethodDecl{
				Name: e.name(m.Name), Parameters: e.renderParams(m.Parameters, nil), ReturnType: e.renderType(m.ReturnType),
			})
			continue
		}
		iface.Members = append(iface.Members, &FieldDecl{Name: e.name(m.Name), Type: e.renderType(m.PropType)})
	}
	return iface
}

func (e *Emitter) emitEnum(v *ir.EnumDeclStmt) *EnumDecl {
	en := &EnumDecl{Name: e.name(v.Name)}
	for _, m := range v.Members {
		var val Expr
		if m.Value != nil {
			val = e.emitExpr(m.Value)
		}
		en.Members = append(en.Members, EnumMemberDecl{Name: e.name(m.Name), Value: val})
	}
	return en
}

func (e *Emitter) emitMethod(v *ir.FunctionDeclStmt) *MethodDecl {
	m := &MethodDecl{
		Name: e.name(v.Name), TypeParams: v.TypeParams, Parameters: e.renderParams(v.Parameters, v.ParamModes),
		ReturnType: e.renderType(v.ReturnType), IsAsync: v.IsAsync, IsGenerator: v.IsGenerator,
	}
	if v.Body != nil {
		m.Body = e.emitBlock(v.Body)
	}
	return m
}

func (e *Emitter) renderParams(params []ir.Param, modes []ir.ParamMode) []ParamDecl {
	out := make([]ParamDecl, len(params))
	for i, p := range params {
		mod := ""
		if i < len(modes) {
			if s := modes[i].String(); s != "value" {
				mod = s
			}
		}
		out[i] = ParamDecl{Name: e.name(p.Name), Type: e.renderType(p.Type), Modifier: mod}
	}
	return out
}

// --- statements ---

func (e *Emitter) emitBlock(b *ir.BlockStmt) *Block {
	var out []Stmt
	for _, s := range b.Statements {
		e.emitStmtInto(s, &out)
	}
	return &Block{Statements: out}
}

// emitStmtSingle renders s for a single-statement context (an `if`/`while`/
// `for` body with no braces in the source); return-in-void lowering can
// still expand to two statements, so the result is wrapped in a Block
// when that happens (§4.6 "Return-in-void lowering").
func (e *Emitter) emitStmtSingle(s ir.Stmt) Stmt {
	var out []Stmt
	e.emitStmtInto(s, &out)
	if len(out) == 1 {
		return out[0]
	}
	return &Block{Statements: out}
}

// emitStmtInto lowers one ir.Stmt into backend statements, appended to
// *out. Most statements produce exactly one; return-in-void lowering
// (§4.6) and a statement-position `void e` produce two.
func (e *Emitter) emitStmtInto(s ir.Stmt, out *[]Stmt) {
	switch v := s.(type) {
	case *ir.BlockStmt:
		*out = append(*out, e.emitBlock(v))
	case *ir.IfStmt:
		*out = append(*out, e.emitIf(v))
	case *ir.WhileStmt:
		*out = append(*out, &While{Cond: e.emitBooleanContext(v.Cond), Body: e.emitStmtSingle(v.Body)})
	case *ir.ForStmt:
		var init Stmt
		if v.Init != nil {
			init = e.emitStmtSingle(v.Init)
		}
		var cond Expr
		if v.Cond != nil {
			cond = e.emitBooleanContext(v.Cond)
		}
		var update Expr
		if v.Update != nil {
			update = e.emitExpr(v.Update)
		}
		*out = append(*out, &For{Init: init, Cond: cond, Update: update, Body: e.emitStmtSingle(v.Body)})
	case *ir.ForOfStmt:
		*out = append(*out, &Foreach{Name: e.name(v.BindingName), Iterable: e.emitExpr(v.Iterable), Body: e.emitStmtSingle(v.Body)})
	case *ir.SwitchStmt:
		*out = append(*out, e.emitSwitch(v))
	case *ir.TryStmt:
		*out = append(*out, e.emitTry(v))
	case *ir.ReturnStmt:
		e.emitReturnInto(v, out)
	case *ir.ThrowStmt:
		*out = append(*out, &Throw{Expr: e.emitExpr(v.Expr)})
	case *ir.BreakStmt:
		*out = append(*out, &Break{})
	case *ir.ContinueStmt:
		*out = append(*out, &Continue{})
	case *ir.YieldStmt:
		*out = append(*out, e.emitYieldStmt(v)...)
	case *ir.GeneratorReturnStmt:
		if v.Expr != nil {
			*out = append(*out, &ExprStmt{Expr: e.emitExpr(v.Expr)}, &YieldBreak{})
		} else {
			*out = append(*out, &YieldBreak{})
		}
	case *ir.VariableDeclStmt:
		var init Expr
		if v.Init != nil {
			init = e.coerceToExpectedType(v.Init, v.Type)
		}
		*out = append(*out, &LocalDecl{Name: e.name(v.Name), Type: e.renderType(v.Type), Init: init})
	case *ir.FunctionDeclStmt:
		// A nested/local function declaration lowers to a C# local
		// function statement, reusing the method renderer's shape.
		*out = append(*out, &LocalFunctionStmt{Func: e.emitMethod(v)})
	case *ir.ClassDeclStmt, *ir.InterfaceDeclStmt, *ir.EnumDeclStmt, *ir.TypeAliasStmt:
		// Nested type declarations inside a function body have no direct
		// C# statement form in this emitter's scope; top-level declarations
		// are handled by EmitModule instead.
	case *ir.ExpressionStmt:
		e.emitExpressionStmtInto(v, out)
	}
}

func (e *Emitter) emitIf(v *ir.IfStmt) *If {
	cond := e.emitBooleanContext(v.Cond)
	restore := e.pushNarrowingFromCond(v.Cond)
	then := e.emitStmtSingle(v.Then)
	restore()
	var els Stmt
	if v.Else != nil {
		els = e.emitStmtSingle(v.Else)
	}
	return &If{Cond: cond, Then: then, Else: els}
}

// pushNarrowingFromCond recognizes `x != null`/`x != undefined` (and the
// `!==` form) and marks x's declaration narrowed for the duration of the
// "then" branch, matching the nullable-unwrap skip rule (§4.6): a binding
// already proven non-null by an enclosing check does not need `.Value`
// re-attached. Returns a func that undoes the marking.
func (e *Emitter) pushNarrowingFromCond(cond ir.Expr) func() {
	bin, ok := cond.(*ir.BinaryExpr)
	if !ok || (bin.Op != "!=" && bin.Op != "!==") {
		return func() {}
	}
	ident, litSide := identOperand(bin.Left, bin.Right)
	if ident == nil || !isNullLiteral(litSide) {
		return func() {}
	}
	if e.narrowed[ident.Decl] {
		return func() {}
	}
	e.narrowed[ident.Decl] = true
	return func() { delete(e.narrowed, ident.Decl) }
}

func identOperand(a, b ir.Expr) (*ir.IdentifierExpr, ir.Expr) {
	if id, ok := a.(*ir.IdentifierExpr); ok {
		return id, b
	}
	if id, ok := b.(*ir.IdentifierExpr); ok {
		return id, a
	}
	return nil, nil
}

func isNullLiteral(e ir.Expr) bool {
	lit, ok := e.(*ir.LiteralExpr)
	if !ok {
		return false
	}
	p, ok := lit.InferredType().(ir.Primitive)
	return ok && (p.Name == ir.Null || p.Name == ir.Undefined)
}

func (e *Emitter) emitSwitch(v *ir.SwitchStmt) *Switch {
	sw := &Switch{Discriminant: e.emitExpr(v.Discriminant)}
	for _, c := range v.Cases {
		var test Expr
		if c.Test != nil {
			test = e.emitExpr(c.Test)
		}
		var stmts []Stmt
		for _, inner := range c.Statements {
			e.emitStmtInto(inner, &stmts)
		}
		sw.Cases = append(sw.Cases, SwitchCase{Test: test, Statements: stmts})
	}
	return sw
}

func (e *Emitter) emitTry(v *ir.TryStmt) *Try {
	t := &Try{Block: e.emitBlock(v.Block)}
	if v.Catch != nil {
		t.CatchType = e.renderType(v.Catch.ParamType)
		t.CatchName = e.name(v.Catch.ParamName)
		t.Catch = e.emitBlock(v.Catch.Body)
	}
	if v.Finally != nil {
		t.Finally = e.emitBlock(v.Finally)
	}
	return t
}

// emitReturnInto implements §4.6 "Return-in-void lowering": a `return`
// whose expression itself has void type (returning the result of another
// void-returning call) cannot be a single C# `return expr;`, since C#
// forbids returning a value of type void. It lowers to the expression
// evaluated for effect, followed by a bare `return;`.
func (e *Emitter) emitReturnInto(v *ir.ReturnStmt, out *[]Stmt) {
	if v.Expr == nil {
		*out = append(*out, &Return{})
		return
	}
	if isVoidType(v.Expr.InferredType()) {
		*out = append(*out, &ExprStmt{Expr: e.emitExpr(v.Expr)}, &Return{})
		return
	}
	*out = append(*out, &Return{Expr: e.emitExpr(v.Expr)})
}

func isVoidType(t ir.Type) bool {
	_, ok := t.(ir.Void)
	return ok
}

// emitYieldStmt implements the generator `yield`/`yield*` lowering (§4.6
// "generators"): a plain yield becomes `yield return`; a delegated
// `yield* iterable` becomes a `foreach` re-yielding each element, since C#
// iterators have no native yield-delegation operator.
func (e *Emitter) emitYieldStmt(v *ir.YieldStmt) []Stmt {
	if !v.Delegate {
		return []Stmt{&YieldReturn{Expr: e.emitExpr(v.Expr)}}
	}
	const tmp = "__item"
	return []Stmt{&Foreach{Name: tmp, Iterable: e.emitExpr(v.Expr), Body: &YieldReturn{Expr: &Ident{Name: tmp}}}}
}

// emitExpressionStmtInto implements §4.6 "Void-expression lowering" in
// statement position: `void e` becomes a discard assignment unless e is
// already a valid statement-expression (a call, assignment, update, or
// await), in which case it is emitted bare.
func (e *Emitter) emitExpressionStmtInto(v *ir.ExpressionStmt, out *[]Stmt) {
	unary, isVoidOp := v.Expr.(*ir.UnaryExpr)
	if !isVoidOp || unary.Op != "void" {
		*out = append(*out, &ExprStmt{Expr: e.emitExpr(v.Expr)})
		return
	}
	if isStatementExpr(unary.Operand) {
		*out = append(*out, &ExprStmt{Expr: e.emitExpr(unary.Operand)})
		return
	}
	*out = append(*out, &ExprStmt{Expr: &Assignment{Op: "=", Target: &Discard{}, Value: e.emitExpr(unary.Operand)}})
}

func isStatementExpr(e ir.Expr) bool {
	switch e.(type) {
	case *ir.CallExpr, *ir.NewExpr, *ir.AssignmentExpr, *ir.UpdateExpr, *ir.AwaitExpr:
		return true
	default:
		return false
	}
}

// --- expressions ---

func (e *Emitter) emitExpr(expr ir.Expr) Expr {
	switch v := expr.(type) {
	case *ir.LiteralExpr:
		return e.emitLiteral(v)
	case *ir.IdentifierExpr:
		return &Ident{Name: e.name(v.Name)}
	case *ir.ArrayExpr:
		elems := make([]Expr, len(v.Elements))
		for i, el := range v.Elements {
			elems[i] = e.emitExpr(el)
		}
		return &ArrayCreation{Elements: elems}
	case *ir.ObjectExpr:
		props := make([]AnonProperty, 0, len(v.Properties))
		for _, p := range v.Properties {
			if p.IsSpread {
				continue
			}
			props = append(props, AnonProperty{Name: e.name(p.Key), Value: e.emitExpr(p.Value)})
		}
		return &AnonymousObject{Properties: props}
	case *ir.MemberAccessExpr:
		return e.emitMemberAccess(v)
	case *ir.CallExpr:
		return e.emitCall(v)
	case *ir.NewExpr:
		return e.emitNew(v)
	case *ir.ThisExpr:
		return &This{}
	case *ir.UpdateExpr:
		return &Unary{Op: v.Op, Operand: e.emitExpr(v.Operand), Postfix: !v.Prefix}
	case *ir.UnaryExpr:
		return e.emitUnary(v)
	case *ir.BinaryExpr:
		return &Binary{Op: v.Op, Left: e.emitExpr(v.Left), Right: e.emitExpr(v.Right)}
	case *ir.LogicalExpr:
		return e.emitLogical(v)
	case *ir.ConditionalExpr:
		return &Conditional{Cond: e.emitBooleanContext(v.Cond), Then: e.emitExpr(v.Then), Else: e.emitExpr(v.Else)}
	case *ir.AssignmentExpr:
		return &Assignment{Op: v.Op, Target: e.emitExpr(v.Target), Value: e.emitExpr(v.Value)}
	case *ir.TemplateLiteralExpr:
		exprs := make([]Expr, len(v.Expressions))
		for i, ex := range v.Expressions {
			exprs[i] = e.emitExpr(ex)
		}
		return &InterpolatedString{Quasis: v.Quasis, Expressions: exprs}
	case *ir.SpreadExpr:
		return e.emitExpr(v.Operand)
	case *ir.AwaitExpr:
		return &Await{Expr: e.emitExpr(v.Operand)}
	case *ir.YieldExpr:
		// Expression-position yield with no return channel in this core's
		// generator IR (§9 open question: bidirectional exchange is not
		// modeled).
		return &YieldExprValue{Operand: e.emitExpr(v.Operand)}
	case *ir.NumericNarrowingExpr:
		return e.emitNumericNarrowing(v)
	case *ir.TypeAssertionExpr:
		return &Cast{Type: e.renderType(v.Type), Expr: e.emitExpr(v.Operand)}
	case *ir.TryCastExpr:
		return &AsCast{Type: e.renderType(v.Type), Expr: e.emitExpr(v.Operand)}
	case *ir.AsInterfaceExpr:
		// Erasable assertion (§4.6): no cast emitted, inner unchanged.
		return e.emitExpr(v.Operand)
	case *ir.StackAllocExpr:
		return &StackAlloc{ElementType: e.renderType(v.ElementType), Size: e.emitExpr(v.Size)}
	case *ir.DefaultOfExpr:
		return &DefaultExpr{Type: e.renderType(v.InferredType())}
	case *ir.ArrowFunctionExpr:
		return e.emitLambda(v)
	default:
		diag.Panic("emitter.emitExpr", expr.Pos(), "unhandled expression kind reached the emitter")
		return nil
	}
}

func (e *Emitter) emitLiteral(v *ir.LiteralExpr) Expr {
	switch {
	case v.Value.IsStr:
		return &Literal{Text: strconv.Quote(v.Value.String)}
	case v.Value.IsBool:
		if v.Value.Bool {
			return &Literal{Text: "true"}
		}
		return &Literal{Text: "false"}
	case v.Value.IsNum:
		return &Literal{Text: formatNumber(v.Value.Number)}
	default:
		return &Literal{Text: "null"}
	}
}

func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

func (e *Emitter) emitUnary(v *ir.UnaryExpr) Expr {
	switch v.Op {
	case "!":
		return &Unary{Op: "!", Operand: e.emitBooleanContext(v.Operand)}
	case "void":
		// Expression-position void (§4.6 "Void-expression lowering"): an
		// immediately-invoked zero-arg local function evaluating the
		// operand for effect and returning default(ReturnType).
		ret := e.renderType(v.InferredType())
		body := &Block{Statements: []Stmt{
			&ExprStmt{Expr: e.emitExpr(v.Operand)},
			&Return{Expr: &DefaultExpr{Type: ret}},
		}}
		return &InvokeImmediately{ReturnType: ret, Body: body}
	case "typeof":
		return &Invocation{Callee: &MemberAccess{Receiver: &Invocation{Callee: &MemberAccess{Receiver: e.emitExpr(v.Operand), Name: "GetType"}}, Name: "ToString"}}
	case "delete":
		return e.emitExpr(v.Operand)
	default:
		return &Unary{Op: v.Op, Operand: e.emitExpr(v.Operand)}
	}
}

// emitLogical implements boolean-context coercion under `&&`/`||`
// (§4.6 "Boolean coercion") including the precedence-preserving
// parenthesization of a nested `||` inside `&&`.
func (e *Emitter) emitLogical(v *ir.LogicalExpr) Expr {
	if v.Op == "??" {
		return &Binary{Op: "??", Left: e.emitExpr(v.Left), Right: e.emitExpr(v.Right)}
	}
	left := e.emitBooleanContext(v.Left)
	right := e.emitBooleanContext(v.Right)
	if v.Op == "&&" {
		parenthesizeIfOr(left)
		parenthesizeIfOr(right)
	}
	return &Binary{Op: v.Op, Left: left, Right: right}
}

func parenthesizeIfOr(e Expr) {
	if b, ok := e.(*Binary); ok && b.Op == "||" {
		b.Parenthesize = true
	}
}

// emitBooleanContext coerces e into a C# bool-typed expression (§4.6
// "Boolean coercion"): an already-boolean expression passes through; a
// floating-point expression compares `!= 0` and excludes NaN (JS/TS
// truthiness treats NaN as falsy, but `NaN != 0` is true in C#); any
// other numeric expression compares `!= 0`; a string compares its
// `.Length != 0`; a nullable compares `!= null`; an `any`/`unknown`/
// untyped-union operand falls back to a single-evaluation pattern-match
// switch covering every shape this core can coerce.
func (e *Emitter) emitBooleanContext(expr ir.Expr) Expr {
	if bin, ok := expr.(*ir.LogicalExpr); ok {
		return e.emitLogical(bin)
	}
	t := expr.InferredType()
	if p, ok := t.(ir.Primitive); ok && p.Name == ir.Boolean {
		return e.emitExpr(expr)
	}
	if isNumericClrType(t) {
		cmp := &Binary{Op: "!=", Left: e.emitExpr(expr), Right: &Literal{Text: "0"}}
		if !isFloatingClrType(t) {
			return cmp
		}
		notNaN := &Unary{Op: "!", Operand: &Invocation{
			Callee: &MemberAccess{Receiver: &Ident{Name: floatKeyword(t)}, Name: "IsNaN"},
			Args:   []Arg{{Expr: e.emitExpr(expr)}},
		}}
		return &Binary{Op: "&&", Left: cmp, Right: notNaN}
	}
	if isStringClrType(t) {
		return &Binary{Op: "!=", Left: &MemberAccess{Receiver: e.emitExpr(expr), Name: "Length"}, Right: &Literal{Text: "0"}}
	}
	if _, nullable := isNullableUnion(t); nullable {
		return &Binary{Op: "!=", Left: e.emitExpr(expr), Right: &Literal{Text: "null"}}
	}
	if isDynamicBooleanType(t) {
		return &TruthySwitch{Operand: e.emitExpr(expr)}
	}
	return e.emitExpr(expr)
}

func (e *Emitter) emitMemberAccess(v *ir.MemberAccessExpr) Expr {
	receiver := e.emitExpr(v.Receiver)
	if v.Computed != nil {
		return &IndexAccess{Receiver: receiver, Index: e.emitExpr(v.Computed), Optional: v.Optional}
	}
	name := v.Name
	if v.Binding != nil {
		e.addUsing(v.Binding)
		name = v.Binding.Member
	} else {
		name = e.name(name)
	}
	return &MemberAccess{Receiver: receiver, Name: name, Optional: v.Optional}
}

func (e *Emitter) emitCall(v *ir.CallExpr) Expr {
	var callee Expr
	if v.Binding != nil {
		e.addUsing(v.Binding)
		callee = e.bindingCallee(v.Binding)
	} else {
		callee = e.emitExpr(v.Callee)
	}
	inv := &Invocation{Callee: callee}
	for _, ta := range v.TypeArgs {
		inv.TypeArgs = append(inv.TypeArgs, e.renderType(ta))
	}
	for i, a := range v.Args {
		var expected ir.Type
		if i < len(v.ParameterTypes) {
			expected = v.ParameterTypes[i]
		}
		mod := ""
		if i < len(v.ArgumentPassing) {
			if s := v.ArgumentPassing[i].String(); s != "value" {
				mod = s
			}
		}
		var arg Expr
		if expected != nil {
			arg = e.coerceToExpectedType(a, expected)
		} else {
			arg = e.emitExpr(a)
		}
		inv.Args = append(inv.Args, Arg{Expr: arg, Modifier: mod})
	}
	return inv
}

// bindingCallee renders a bound call's callee as its declaring type's
// static member path (§4.6, example "Hierarchical binding to CLR"): the
// source receiver expression is dropped since the binding already names
// the static target; for an extension method, call resolution has
// already folded the original receiver into the first argument, so the
// callee here is always just `Type.Member`.
func (e *Emitter) bindingCallee(b *ir.MemberBinding) Expr {
	return &MemberAccess{Receiver: &Ident{Name: b.Type}, Name: b.Member}
}

func (e *Emitter) emitNew(v *ir.NewExpr) Expr {
	oc := &ObjectCreation{Type: e.renderType(v.InferredType())}
	for i, a := range v.Args {
		var expected ir.Type
		if i < len(v.ParameterTypes) {
			expected = v.ParameterTypes[i]
		}
		mod := ""
		if i < len(v.ArgumentPassing) {
			if s := v.ArgumentPassing[i].String(); s != "value" {
				mod = s
			}
		}
		var arg Expr
		if expected != nil {
			arg = e.coerceToExpectedType(a, expected)
		} else {
			arg = e.emitExpr(a)
		}
		oc.Args = append(oc.Args, Arg{Expr: arg, Modifier: mod})
	}
	return oc
}

func (e *Emitter) emitLambda(v *ir.ArrowFunctionExpr) Expr {
	params := make([]string, len(v.Parameters))
	for i, p := range v.Parameters {
		params[i] = e.name(p.Name)
	}
	l := &Lambda{Params: params, IsAsync: v.IsAsync}
	if v.ExprBody != nil {
		l.ExprBody = e.emitExpr(v.ExprBody)
	} else if v.BlockBody != nil {
		l.BlockBody = e.emitBlock(v.BlockBody)
	}
	return l
}

// emitNumericNarrowing implements §4.6 "Narrowing lowering": emit the
// inner expression directly when the numeric proof pass credited the
// inner expression itself (a literal) as the proof source; otherwise an
// explicit cast is required. A narrowing reaching the emitter with no
// proof attached is an internal compiler error — the proof pass should
// already have refused it.
func (e *Emitter) emitNumericNarrowing(v *ir.NumericNarrowingExpr) Expr {
	proof := v.NumericProof()
	if proof == nil {
		diag.Panic("emitter.emitNumericNarrowing", v.Pos(), "numeric narrowing reached the emitter with no proof attached")
	}
	inner := e.emitExpr(v.Operand)
	if _, isLit := v.Operand.(*ir.LiteralExpr); isLit && proof.Source == ir.ProofFromLiteral {
		return inner
	}
	return &Cast{Type: e.renderType(v.Type), Expr: inner}
}

// coerceToExpectedType implements §4.6 "Nullable value-type unwrapping"
// and "Nullish type-parameter casts": src is lowered against an expected
// type that its own inferred type may disagree with only by a trailing
// `| null | undefined`.
func (e *Emitter) coerceToExpectedType(src ir.Expr, expected ir.Type) Expr {
	lowered := e.emitExpr(src)
	if expected == nil {
		return lowered
	}
	inner, isNullable := isNullableUnion(src.InferredType())
	if !isNullable {
		return lowered
	}
	if tp, ok := expected.(ir.TypeParameter); ok {
		if innerTP, innerIsTP := inner.(ir.TypeParameter); innerIsTP && innerTP.Name == tp.Name {
			return &Cast{Type: tp.Name, Expr: lowered}
		}
		return lowered
	}
	if !isClrValueType(expected) {
		return lowered
	}
	if e.skipUnwrap(src) {
		return lowered
	}
	unwrapped := Expr(&NullableValueAccess{Expr: lowered})
	if expected.String() != inner.String() {
		return &Cast{Type: e.renderType(expected), Expr: unwrapped}
	}
	return unwrapped
}

// skipUnwrap reports the two cases §4.6 exempts from `.Value` unwrapping:
// a binding already in the narrowed set, or a `??`-composite that already
// produces a non-null result.
func (e *Emitter) skipUnwrap(src ir.Expr) bool {
	switch v := src.(type) {
	case *ir.IdentifierExpr:
		return e.narrowed[v.Decl]
	case *ir.LogicalExpr:
		return v.Op == "??"
	default:
		return false
	}
}

func (e *Emitter) addUsing(b *ir.MemberBinding) {
	if b.Assembly != "" {
		e.usings[b.Assembly] = true
	}
}

