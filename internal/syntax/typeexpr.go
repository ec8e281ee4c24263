// Package syntax defines the source-language AST: the syntax tree the
// (external, in production) TypeScript parser hands the core, lowered by
// internal/lowering into IR. It mirrors internal/ir's tagged-interface
// style but every type reference here is unresolved surface syntax —
// resolving it into a bound internal/ir.Type is internal/typesystem's
// job (type_from_syntax, §4.2.1).
package syntax

import "github.com/tsonic-lang/tsonic-core/internal/diag"

// TypeExprKind tags the captured type-syntax sum.
type TypeExprKind int

const (
	TypeExprName TypeExprKind = iota
	TypeExprArray
	TypeExprTuple
	TypeExprUnion
	TypeExprIntersection
	TypeExprFunction
	TypeExprObject
	TypeExprDictionary
	TypeExprLiteral
	TypeExprAny
	TypeExprUnknown
	TypeExprVoid
	TypeExprNever
)

// TypeExpr is a captured type annotation, exactly what a TypeSyntaxId
// points at (§3.3).
type TypeExpr struct {
	Kind       TypeExprKind
	Pos        diag.Position
	Name       string     // TypeExprName
	TypeArgs   []*TypeExpr
	Element    *TypeExpr // TypeExprArray
	Elements   []*TypeExpr // TypeExprTuple
	Members    []*TypeExpr // TypeExprUnion / TypeExprIntersection
	Params     []FieldSyntax // TypeExprFunction (params) / TypeExprObject (members)
	Return     *TypeExpr // TypeExprFunction
	Key, Value *TypeExpr // TypeExprDictionary
	LitString  string
	LitNumber  float64
	LitBool    bool
	LitIsStr   bool
	LitIsBool  bool
}

// FieldSyntax is one parameter or structural-member entry inside a
// TypeExprFunction/TypeExprObject.
type FieldSyntax struct {
	Name     string
	Type     *TypeExpr
	Optional bool
	IsMethod bool
}
