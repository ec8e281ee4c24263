package ir

import (
	"github.com/tsonic-lang/tsonic-core/internal/diag"
	"github.com/tsonic-lang/tsonic-core/internal/handle"
)

// StmtKind tags the IR statement sum (§3.2).
type StmtKind int

const (
	StmtBlock StmtKind = iota
	StmtIf
	StmtWhile
	StmtFor
	StmtForOf
	StmtSwitch
	StmtTry
	StmtReturn
	StmtThrow
	StmtBreak
	StmtContinue
	StmtVariableDecl
	StmtFunctionDecl
	StmtClassDecl
	StmtInterfaceDecl
	StmtEnumDecl
	StmtTypeAlias
	StmtYield
	StmtGeneratorReturn
	StmtExpression
)

// Stmt is the IR statement sum. As with Expr, concrete statement nodes
// are constructed and passed around as pointers (`&BlockStmt{...}`) so
// that passes walking the tree (numeric proof, validation) can rely on a
// single, stable node per statement.
type Stmt interface {
	Kind() StmtKind
	Pos() diag.Position
	stmtNode()
}

// StmtBase supplies position storage to every concrete Stmt.
type StmtBase struct {
	NodePos diag.Position
}

func (b StmtBase) Pos() diag.Position { return b.NodePos }
func (StmtBase) stmtNode()            {}

// BlockStmt is an ordered sequence of statements.
type BlockStmt struct {
	StmtBase
	Statements []Stmt
}

func (BlockStmt) Kind() StmtKind { return StmtBlock }

// IfStmt is `if (Cond) Then else Else`. Else is nil when absent.
type IfStmt struct {
	StmtBase
	Cond Expr
	Then Stmt
	Else Stmt
}

func (IfStmt) Kind() StmtKind { return StmtIf }

// WhileStmt is `while (Cond) Body`.
type WhileStmt struct {
	StmtBase
	Cond Expr
	Body Stmt
}

func (WhileStmt) Kind() StmtKind { return StmtWhile }

// ForStmt is a C-style for loop; any of Init/Cond/Update may be nil.
type ForStmt struct {
	StmtBase
	Init   Stmt
	Cond   Expr
	Update Expr
	Body   Stmt
}

func (ForStmt) Kind() StmtKind { return StmtFor }

// ForOfStmt is `for (const x of iterable) Body`.
type ForOfStmt struct {
	StmtBase
	BindingName string
	Decl        handle.DeclId
	Iterable    Expr
	Body        Stmt
}

func (ForOfStmt) Kind() StmtKind { return StmtForOf }

// SwitchCase is one `case`/`default` arm of a SwitchStmt.
type SwitchCase struct {
	Test       Expr // nil for `default`
	Statements []Stmt
}

// SwitchStmt is a `switch` statement.
type SwitchStmt struct {
	StmtBase
	Discriminant Expr
	Cases        []SwitchCase
}

func (SwitchStmt) Kind() StmtKind { return StmtSwitch }

// CatchClause is the `catch` arm of a TryStmt.
type CatchClause struct {
	ParamName string
	ParamType Type
	Body      *BlockStmt
}

// TryStmt is `try { } catch (e) { } finally { }`.
type TryStmt struct {
	StmtBase
	Block   *BlockStmt
	Catch   *CatchClause // nil if absent
	Finally *BlockStmt   // nil if absent
}

func (TryStmt) Kind() StmtKind { return StmtTry }

// ReturnStmt is `return expr;` (Expr nil for a bare `return;`).
type ReturnStmt struct {
	StmtBase
	Expr Expr
}

func (ReturnStmt) Kind() StmtKind { return StmtReturn }

// ThrowStmt is `throw expr;`.
type ThrowStmt struct {
	StmtBase
	Expr Expr
}

func (ThrowStmt) Kind() StmtKind { return StmtThrow }

// BreakStmt is `break;` (optionally labeled).
type BreakStmt struct {
	StmtBase
	Label string
}

func (BreakStmt) Kind() StmtKind { return StmtBreak }

// ContinueStmt is `continue;` (optionally labeled).
type ContinueStmt struct {
	StmtBase
	Label string
}

func (ContinueStmt) Kind() StmtKind { return StmtContinue }

// VariableDeclStmt is `let`/`const x: T = init;`.
type VariableDeclStmt struct {
	StmtBase
	Decl    handle.DeclId
	Name    string
	IsConst bool
	Type    Type
	Init    Expr // nil when uninitialized
}

func (VariableDeclStmt) Kind() StmtKind { return StmtVariableDecl }

// FunctionDeclStmt is a named function/method declaration.
type FunctionDeclStmt struct {
	StmtBase
	Decl        handle.DeclId
	Name        string
	TypeParams  []string
	Parameters  []Param
	ParamModes  []ParamMode
	ReturnType  Type
	Body        *BlockStmt // nil for an ambient/declare signature
	IsAsync     bool
	IsGenerator bool
}

func (FunctionDeclStmt) Kind() StmtKind { return StmtFunctionDecl }

// ClassMember is one member of a ClassDeclStmt.
type ClassMember struct {
	Name       string
	Field      Type              // set for a field member
	Method     *FunctionDeclStmt // set for a method member
	IsStatic   bool
	IsAbstract bool
}

// ClassDeclStmt is a class declaration.
type ClassDeclStmt struct {
	StmtBase
	Decl       handle.DeclId
	Name       string
	TypeParams []string
	Extends    Type   // nil if none
	Implements []Type // interfaces
	Members    []ClassMember
	IsAbstract bool
}

func (ClassDeclStmt) Kind() StmtKind { return StmtClassDecl }

// InterfaceDeclStmt is an interface declaration.
type InterfaceDeclStmt struct {
	StmtBase
	Decl       handle.DeclId
	Name       string
	TypeParams []string
	Extends    []Type
	Members    []StructuralMember
}

func (InterfaceDeclStmt) Kind() StmtKind { return StmtInterfaceDecl }

// EnumMember is one member of an EnumDeclStmt.
type EnumMember struct {
	Name  string
	Value Expr // nil when auto-numbered
}

// EnumDeclStmt is an enum declaration.
type EnumDeclStmt struct {
	StmtBase
	Decl    handle.DeclId
	Name    string
	Members []EnumMember
}

func (EnumDeclStmt) Kind() StmtKind { return StmtEnumDecl }

// TypeAliasStmt is `type Name<T> = Aliased;`.
type TypeAliasStmt struct {
	StmtBase
	Decl       handle.DeclId
	Name       string
	TypeParams []string
	Aliased    Type
}

func (TypeAliasStmt) Kind() StmtKind { return StmtTypeAlias }

// YieldStmt is a statement-position `yield expr;` in a generator body.
type YieldStmt struct {
	StmtBase
	Expr     Expr
	Delegate bool
}

func (YieldStmt) Kind() StmtKind { return StmtYield }

// GeneratorReturnStmt is `return expr;` inside a generator, which lowers
// differently from a plain ReturnStmt (§4.6, "generators").
type GeneratorReturnStmt struct {
	StmtBase
	Expr Expr
}

func (GeneratorReturnStmt) Kind() StmtKind { return StmtGeneratorReturn }

// ExpressionStmt is an expression evaluated for its side effects.
type ExpressionStmt struct {
	StmtBase
	Expr Expr
}

func (ExpressionStmt) Kind() StmtKind { return StmtExpression }
