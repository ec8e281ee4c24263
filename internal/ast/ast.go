// Package ast defines the source-level syntax tree the hand-written
// parser (internal/parser) produces. It stands in for a real TypeScript
// host's AST — just enough surface to exercise lowering (internal/lowering)
// end to end: declarations, control flow, and expressions over the
// language subset spec.md's worked examples use (§1 "stand-in front door").
package ast

import "github.com/tsonic-lang/tsonic-core/internal/syntax"

// Pos is a source position, matching the lexer's line/column bookkeeping.
type Pos struct {
	Line   int
	Column int
}

// Node is implemented by every AST node, source or type-annotation.
type Node interface {
	Pos() Pos
}

// Program is the top-level parse result for one source file.
type Program struct {
	File       string
	Statements []Stmt
}

// Stmt is the source statement sum.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is the source expression sum.
type Expr interface {
	Node
	exprNode()
}

type Base struct{ P Pos }

func (b Base) Pos() Pos { return b.P }

// VarKind distinguishes `let`/`const`/`var`.
type VarKind int

const (
	KindLet VarKind = iota
	KindConst
	KindVar
)

// VariableDecl is `let/const/var name: T = init;`.
type VariableDecl struct {
	Base
	Kind VarKind
	Name string
	Type *syntax.TypeExpr // nil when the annotation is omitted
	Init Expr             // nil when uninitialized
}

func (*VariableDecl) stmtNode() {}

// Param is one formal parameter of a function/method/arrow function.
type Param struct {
	Name     string
	Type     *syntax.TypeExpr
	Optional bool
}

// FunctionDecl is a named function (or method body, reused by ClassDecl).
type FunctionDecl struct {
	Base
	Name        string
	TypeParams  []string
	Params      []Param
	ReturnType  *syntax.TypeExpr
	Body        *BlockStmt
	IsAsync     bool
	IsGenerator bool
}

func (*FunctionDecl) stmtNode() {}

// ClassField is a field member of a ClassDecl.
type ClassField struct {
	Name     string
	Type     *syntax.TypeExpr
	Static   bool
	Init     Expr
}

// ClassMethod is a method member of a ClassDecl.
type ClassMethod struct {
	Func       *FunctionDecl
	Static     bool
	Abstract   bool
}

// ClassDecl is a class declaration.
type ClassDecl struct {
	Base
	Name       string
	TypeParams []string
	Extends    *syntax.TypeExpr
	Implements []*syntax.TypeExpr
	Fields     []ClassField
	Methods    []ClassMethod
	Abstract   bool
}

func (*ClassDecl) stmtNode() {}

// InterfaceDecl is an interface declaration; its body is parsed directly
// as a structural type so it shares representation with an inline object
// type annotation.
type InterfaceDecl struct {
	Base
	Name       string
	TypeParams []string
	Extends    []*syntax.TypeExpr
	Members    []syntax.FieldSyntax
}

func (*InterfaceDecl) stmtNode() {}

// EnumMember is one member of an EnumDecl.
type EnumMember struct {
	Name  string
	Value Expr // nil when auto-numbered
}

// EnumDecl is an enum declaration.
type EnumDecl struct {
	Base
	Name    string
	Members []EnumMember
}

func (*EnumDecl) stmtNode() {}

// TypeAliasDecl is `type Name<T> = Aliased;`.
type TypeAliasDecl struct {
	Base
	Name       string
	TypeParams []string
	Aliased    *syntax.TypeExpr
}

func (*TypeAliasDecl) stmtNode() {}

// BlockStmt is `{ statements }`.
type BlockStmt struct {
	Base
	Statements []Stmt
}

func (*BlockStmt) stmtNode() {}

// IfStmt is `if (Cond) Then else Else`.
type IfStmt struct {
	Base
	Cond Expr
	Then Stmt
	Else Stmt
}

func (*IfStmt) stmtNode() {}

// WhileStmt is `while (Cond) Body`.
type WhileStmt struct {
	Base
	Cond Expr
	Body Stmt
}

func (*WhileStmt) stmtNode() {}

// ForStmt is a C-style for loop.
type ForStmt struct {
	Base
	Init   Stmt
	Cond   Expr
	Update Expr
	Body   Stmt
}

func (*ForStmt) stmtNode() {}

// ForOfStmt is `for (const x of iterable) Body`.
type ForOfStmt struct {
	Base
	BindingName string
	IsConst     bool
	Iterable    Expr
	Body        Stmt
}

func (*ForOfStmt) stmtNode() {}

// SwitchCase is one `case`/`default` arm.
type SwitchCase struct {
	Test       Expr
	Statements []Stmt
}

// SwitchStmt is a `switch` statement.
type SwitchStmt struct {
	Base
	Discriminant Expr
	Cases        []SwitchCase
}

func (*SwitchStmt) stmtNode() {}

// CatchClause is the `catch` arm of a TryStmt.
type CatchClause struct {
	ParamName string
	ParamType *syntax.TypeExpr
	Body      *BlockStmt
}

// TryStmt is `try { } catch (e) { } finally { }`.
type TryStmt struct {
	Base
	Block   *BlockStmt
	Catch   *CatchClause
	Finally *BlockStmt
}

func (*TryStmt) stmtNode() {}

// ReturnStmt is `return expr;`.
type ReturnStmt struct {
	Base
	Expr Expr
}

func (*ReturnStmt) stmtNode() {}

// ThrowStmt is `throw expr;`.
type ThrowStmt struct {
	Base
	Expr Expr
}

func (*ThrowStmt) stmtNode() {}

// BreakStmt is `break;`.
type BreakStmt struct {
	Base
	Label string
}

func (*BreakStmt) stmtNode() {}

// ContinueStmt is `continue;`.
type ContinueStmt struct {
	Base
	Label string
}

func (*ContinueStmt) stmtNode() {}

// YieldStmt is a statement-position `yield expr;` / `yield* expr;`.
type YieldStmt struct {
	Base
	Expr     Expr
	Delegate bool
}

func (*YieldStmt) stmtNode() {}

// ExpressionStmt is an expression evaluated for its side effects.
type ExpressionStmt struct {
	Base
	Expr Expr
}

func (*ExpressionStmt) stmtNode() {}
