package ast

import "github.com/tsonic-lang/tsonic-core/internal/syntax"

// Ident is a bare identifier reference, including `this`.
type Ident struct {
	Base
	Name string
}

func (*Ident) exprNode() {}

// LiteralKind tags a Literal's scalar payload.
type LiteralKind int

const (
	LitNumber LiteralKind = iota
	LitString
	LitBool
	LitNull
	LitUndefined
)

// Literal is a number/string/bool/null/undefined literal.
type Literal struct {
	Base
	Kind   LiteralKind
	Number float64
	Str    string
	Bool   bool
}

func (*Literal) exprNode() {}

// ArrayLit is `[el, ...]`.
type ArrayLit struct {
	Base
	Elements []Expr
}

func (*ArrayLit) exprNode() {}

// ObjectProperty is one entry of an ObjectLit.
type ObjectProperty struct {
	Key      string
	Value    Expr
	IsSpread bool
}

// ObjectLit is `{ key: value, ... }`.
type ObjectLit struct {
	Base
	Properties []ObjectProperty
}

func (*ObjectLit) exprNode() {}

// MemberExpr is `obj.prop` or `obj[computed]`, optionally `obj?.prop`.
type MemberExpr struct {
	Base
	Receiver Expr
	Name     string
	Computed Expr
	Optional bool
}

func (*MemberExpr) exprNode() {}

// CallExpr is a call expression, optionally with explicit type arguments.
type CallExpr struct {
	Base
	Callee   Expr
	Args     []Expr
	TypeArgs []*syntax.TypeExpr
	Optional bool
}

func (*CallExpr) exprNode() {}

// NewExpr is `new Callee(args)`.
type NewExpr struct {
	Base
	Callee Expr
	Args   []Expr
}

func (*NewExpr) exprNode() {}

// UnaryExpr covers prefix `!`, `-`, `+`, `~`, `typeof`, `void`, `delete`.
type UnaryExpr struct {
	Base
	Op      string
	Operand Expr
}

func (*UnaryExpr) exprNode() {}

// UpdateExpr is `x++`/`++x`/`x--`/`--x`.
type UpdateExpr struct {
	Base
	Op      string
	Operand Expr
	Prefix  bool
}

func (*UpdateExpr) exprNode() {}

// BinaryExpr is an arithmetic/relational/bitwise binary operator.
type BinaryExpr struct {
	Base
	Op    string
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// LogicalExpr is `&&`, `||`, or `??`.
type LogicalExpr struct {
	Base
	Op    string
	Left  Expr
	Right Expr
}

func (*LogicalExpr) exprNode() {}

// ConditionalExpr is `cond ? then : else`.
type ConditionalExpr struct {
	Base
	Cond Expr
	Then Expr
	Else Expr
}

func (*ConditionalExpr) exprNode() {}

// AssignmentExpr is `target op= value`.
type AssignmentExpr struct {
	Base
	Op     string
	Target Expr
	Value  Expr
}

func (*AssignmentExpr) exprNode() {}

// TemplateLiteral is a template string: len(Quasis) == len(Expressions)+1.
type TemplateLiteral struct {
	Base
	Quasis      []string
	Expressions []Expr
}

func (*TemplateLiteral) exprNode() {}

// SpreadExpr is `...expr`.
type SpreadExpr struct {
	Base
	Operand Expr
}

func (*SpreadExpr) exprNode() {}

// AwaitExpr is `await expr`.
type AwaitExpr struct {
	Base
	Operand Expr
}

func (*AwaitExpr) exprNode() {}

// YieldExpr is an expression-position `yield`/`yield*`.
type YieldExpr struct {
	Base
	Operand  Expr
	Delegate bool
}

func (*YieldExpr) exprNode() {}

// AsExprKind distinguishes the flavor of an `as`-cast.
type AsExprKind int

const (
	AsCast AsExprKind = iota
	AsSafeCast   // `expr as? T`
	AsUnknown    // `expr as unknown`
)

// AsExpr is `expr as T` in any of its flavors; whether T denotes a CLR
// numeric kind is resolved later by the type system, not the parser
// (§4.4 — numeric narrowing is a semantic classification, not syntax).
type AsExpr struct {
	Base
	Operand Expr
	Type    *syntax.TypeExpr
	AsKind  AsExprKind
}

func (*AsExpr) exprNode() {}

// ArrowFunction is `(params) => body`, where Body is either an Expr (for
// the concise form) or a *BlockStmt (for the block form).
type ArrowFunction struct {
	Base
	Params     []Param
	ReturnType *syntax.TypeExpr
	ExprBody   Expr
	BlockBody  *BlockStmt
	IsAsync    bool
}

func (*ArrowFunction) exprNode() {}
