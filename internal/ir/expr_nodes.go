package ir

import "github.com/tsonic-lang/tsonic-core/internal/handle"

// LiteralExpr is a literal value expression (number, string, bool, null,
// undefined).
type LiteralExpr struct {
	ExprBase
	Value LiteralValue
}

func (LiteralExpr) Kind() ExprKind { return ExprLiteral }

// IdentifierExpr resolves to a DeclId once the frontend binds it.
type IdentifierExpr struct {
	ExprBase
	Name string
	Decl handle.DeclId
}

func (IdentifierExpr) Kind() ExprKind { return ExprIdentifier }

// ArrayExpr is an array literal; spread elements are wrapped in
// SpreadExpr within Elements.
type ArrayExpr struct {
	ExprBase
	Elements []Expr
}

func (ArrayExpr) Kind() ExprKind { return ExprArray }

// ObjectProperty is one entry of an ObjectExpr.
type ObjectProperty struct {
	Key      string
	Value    Expr
	IsSpread bool
}

// ObjectExpr is an object literal, optionally containing spreads.
type ObjectExpr struct {
	ExprBase
	Properties []ObjectProperty
}

func (ObjectExpr) Kind() ExprKind { return ExprObject }

// MemberAccessExpr is `obj.prop` or `obj[computed]`, optionally optional-
// chained. Binding is attached independently of InferredType (§4.3.1).
type MemberAccessExpr struct {
	ExprBase
	Receiver   Expr
	Name       string // static name; empty when Computed and non-literal
	Computed   Expr   // non-nil when computed (`obj[expr]`)
	Optional   bool
	AccessKind AccessKind
	Binding    *MemberBinding
}

func (MemberAccessExpr) Kind() ExprKind { return ExprMemberAccess }

// CallExpr is a call expression. ParameterTypes/ArgumentPassing/Narrowing
// are filled in by call lowering per the two-pass protocol (§4.2.4,
// §4.3.2).
type CallExpr struct {
	ExprBase
	Callee          Expr
	Args            []Expr
	TypeArgs        []Type
	Signature       handle.SignatureId
	ParameterTypes  []Type
	ArgumentPassing []ParamMode
	Narrowing       *TypePredicate
	Binding         *MemberBinding
}

func (CallExpr) Kind() ExprKind { return ExprCall }

// NewExpr is a `new Callee(args)` expression.
type NewExpr struct {
	ExprBase
	Callee          Expr
	Args            []Expr
	ParameterTypes  []Type
	ArgumentPassing []ParamMode
}

func (NewExpr) Kind() ExprKind { return ExprNew }

// ThisExpr is the `this` receiver expression.
type ThisExpr struct {
	ExprBase
}

func (ThisExpr) Kind() ExprKind { return ExprThis }

// UpdateExpr is `x++`/`++x`/`x--`/`--x`.
type UpdateExpr struct {
	ExprBase
	Operand Expr
	Op      string // "++" or "--"
	Prefix  bool
}

func (UpdateExpr) Kind() ExprKind { return ExprUpdate }

// UnaryExpr covers `!`, `delete`, `typeof`, `void`, unary `-`/`+`, `~`.
type UnaryExpr struct {
	ExprBase
	Op      string
	Operand Expr
}

func (UnaryExpr) Kind() ExprKind { return ExprUnary }

// BinaryExpr is an arithmetic/relational/bitwise binary operator.
type BinaryExpr struct {
	ExprBase
	Op    string
	Left  Expr
	Right Expr
}

func (BinaryExpr) Kind() ExprKind { return ExprBinary }

// LogicalExpr is `&&`, `||`, or `??`.
type LogicalExpr struct {
	ExprBase
	Op    string
	Left  Expr
	Right Expr
}

func (LogicalExpr) Kind() ExprKind { return ExprLogical }

// ConditionalExpr is `cond ? then : else`.
type ConditionalExpr struct {
	ExprBase
	Cond Expr
	Then Expr
	Else Expr
}

func (ConditionalExpr) Kind() ExprKind { return ExprConditional }

// AssignmentExpr is `target op= value` (including plain `=`).
type AssignmentExpr struct {
	ExprBase
	Op     string
	Target Expr
	Value  Expr
}

func (AssignmentExpr) Kind() ExprKind { return ExprAssignment }

// TemplateLiteralExpr is a template string: len(Quasis) == len(Expressions)+1.
type TemplateLiteralExpr struct {
	ExprBase
	Quasis      []string
	Expressions []Expr
}

func (TemplateLiteralExpr) Kind() ExprKind { return ExprTemplateLiteral }

// SpreadExpr is `...expr` in an array/object literal or call argument
// list.
type SpreadExpr struct {
	ExprBase
	Operand Expr
}

func (SpreadExpr) Kind() ExprKind { return ExprSpread }

// AwaitExpr is `await expr`.
type AwaitExpr struct {
	ExprBase
	Operand Expr
}

func (AwaitExpr) Kind() ExprKind { return ExprAwait }

// YieldExpr is `yield expr` or `yield* expr` (Delegate).
type YieldExpr struct {
	ExprBase
	Operand  Expr
	Delegate bool
}

func (YieldExpr) Kind() ExprKind { return ExprYield }

// NumericNarrowingExpr is `expr as T` where T is a CLR numeric kind. Its
// NumericProof (via ExprBase) is attached by the numeric proof pass
// (§4.4); it is nil until that pass runs and must be non-nil by the time
// the emitter sees the node.
type NumericNarrowingExpr struct {
	ExprBase // Type is mandatory: the narrowing target
	Operand  Expr
}

func (NumericNarrowingExpr) Kind() ExprKind { return ExprNumericNarrowing }

// TypeAssertionExpr is a non-numeric `expr as T`.
type TypeAssertionExpr struct {
	ExprBase // Type is mandatory: the assertion target
	Operand  Expr
}

func (TypeAssertionExpr) Kind() ExprKind { return ExprTypeAssertion }

// TryCastExpr is a safe cast (`expr as? T`) that yields null on failure
// instead of throwing.
type TryCastExpr struct {
	ExprBase // Type is mandatory: the cast target
	Operand  Expr
}

func (TryCastExpr) Kind() ExprKind { return ExprTryCast }

// AsInterfaceExpr is `expr as ExtensionMethods<...>`-style erasable
// interface surfacing (§4.6, "erasable assertions").
type AsInterfaceExpr struct {
	ExprBase // Type is mandatory: the interface target
	Operand  Expr
}

func (AsInterfaceExpr) Kind() ExprKind { return ExprAsInterface }

// StackAllocExpr is a `stackalloc`-style fixed-size buffer allocation.
type StackAllocExpr struct {
	ExprBase
	ElementType Type
	Size        Expr
}

func (StackAllocExpr) Kind() ExprKind { return ExprStackAlloc }

// DefaultOfExpr is `default(T)` where T is InferredType.
type DefaultOfExpr struct {
	ExprBase
}

func (DefaultOfExpr) Kind() ExprKind { return ExprDefaultOf }

// ArrowFunctionExpr is `(params) => body`; Body is either an expression or
// a block, matching the source's concise/block forms. InferredType (via
// ExprBase) holds the synthesized *Function type.
type ArrowFunctionExpr struct {
	ExprBase
	Parameters []Param
	ReturnType Type
	ExprBody   Expr
	BlockBody  *BlockStmt
	IsAsync    bool
}

func (ArrowFunctionExpr) Kind() ExprKind { return ExprArrowFunction }
