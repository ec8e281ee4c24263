// Package validate implements the two C6 validation passes that run after
// type resolution and numeric proof: the soundness gate (§4.5) and the
// naming-collision policy (§4.7). Both only ever add diagnostics; neither
// mutates the IR.
package validate

import (
	"strings"

	"github.com/tsonic-lang/tsonic-core/internal/diag"
	"github.com/tsonic-lang/tsonic-core/internal/ir"
)

// Gate is the soundness gate's per-compile state (§4.5). Resolved
// classifies a reference's local name as known (builtin, local
// declaration, imported, or a type parameter in scope) or not; an
// unresolved reference without an external binding is a hard error.
type Gate struct {
	diags   *diag.Collector
	Resolved func(name string) bool
}

// NewGate returns a Gate reporting into diags. resolved decides whether a
// bare (unbound) reference name counts as known.
func NewGate(diags *diag.Collector, resolved func(name string) bool) *Gate {
	return &Gate{diags: diags, Resolved: resolved}
}

// paramModifierNames are source-level type names that must never appear
// as a parameter's declared type — they indicate the frontend failed to
// lower a `ref`/`out`/`in` wrapper into IrParameter.passing and instead
// left it as a literal reference type (§4.5).
var paramModifierNames = map[string]bool{"ref": true, "out": true, "in": true}

// CheckModule runs the soundness gate over every statement in m (§4.5).
// Call after numeric proof and before the emitter; if diags.HasErrors()
// after this returns true for any module, the emitter must not run
// (§4.5, §8.1 "soundness gate").
func (g *Gate) CheckModule(m *ir.Module) {
	for _, s := range m.Body {
		g.checkStmt(s)
	}
}

func (g *Gate) checkStmt(s ir.Stmt) {
	if s == nil {
		return
	}
	switch v := s.(type) {
	case *ir.BlockStmt:
		if v == nil {
			return
		}
		for _, inner := range v.Statements {
			g.checkStmt(inner)
		}
	case *ir.IfStmt:
		g.checkExpr(v.Cond)
		g.checkStmt(v.Then)
		g.checkStmt(v.Else)
	case *ir.WhileStmt:
		g.checkExpr(v.Cond)
		g.checkStmt(v.Body)
	case *ir.ForStmt:
		g.checkStmt(v.Init)
		g.checkExpr(v.Cond)
		g.checkExpr(v.Update)
		g.checkStmt(v.Body)
	case *ir.ForOfStmt:
		g.checkExpr(v.Iterable)
		g.checkStmt(v.Body)
	case *ir.SwitchStmt:
		g.checkExpr(v.Discriminant)
		for _, c := range v.Cases {
			g.checkExpr(c.Test)
			for _, inner := range c.Statements {
				g.checkStmt(inner)
			}
		}
	case *ir.TryStmt:
		g.checkStmt(v.Block)
		if v.Catch != nil {
			g.checkType(v.Catch.ParamType, v.Catch.Body.Pos())
			g.checkStmt(v.Catch.Body)
		}
		g.checkStmt(v.Finally)
	case *ir.ReturnStmt:
		g.checkExpr(v.Expr)
	case *ir.ThrowStmt:
		g.checkExpr(v.Expr)
	case *ir.VariableDeclStmt:
		g.checkType(v.Type, v.Pos())
		g.checkExpr(v.Init)
	case *ir.FunctionDeclStmt:
		g.checkFunctionSignature(v.Parameters, v.ParamModes, v.ReturnType, v.Pos())
		g.checkStmt(v.Body)
	case *ir.ClassDeclStmt:
		g.checkType(v.Extends, v.Pos())
		for _, impl := range v.Implements {
			g.checkType(impl, v.Pos())
		}
		for _, m := range v.Members {
			if m.Field != nil {
				g.checkType(m.Field, v.Pos())
			}
			if m.Method != nil {
				g.checkStmt(m.Method)
			}
		}
	case *ir.InterfaceDeclStmt:
		for _, ext := range v.Extends {
			g.checkType(ext, v.Pos())
		}
		for _, mem := range v.Members {
			g.checkStructuralMember(mem, v.Pos())
		}
	case *ir.EnumDeclStmt:
		for _, mem := range v.Members {
			g.checkExpr(mem.Value)
		}
	case *ir.TypeAliasStmt:
		g.checkType(v.Aliased, v.Pos())
	case *ir.YieldStmt:
		g.checkExpr(v.Expr)
	case *ir.GeneratorReturnStmt:
		g.checkExpr(v.Expr)
	case *ir.ExpressionStmt:
		g.checkExpr(v.Expr)
	}
}

func (g *Gate) checkFunctionSignature(params []ir.Param, modes []ir.ParamMode, ret ir.Type, pos diag.Position) {
	for i, p := range params {
		if ref, ok := p.Type.(*ir.Reference); ok && paramModifierNames[strings.ToLower(ref.Name)] {
			hasExplicitMode := i < len(modes) && modes[i] != ir.ModeValue
			if !hasExplicitMode {
				g.diags.Errorf(diag.CodeUnsupportedConstruct, pos,
					"parameter %q is typed as %q; parameter-passing mode must be expressed via the parameter's mode, not a reference type named %q",
					p.Name, ref.Name, ref.Name)
			}
		}
		g.checkType(p.Type, pos)
	}
	g.checkType(ret, pos)
}

func (g *Gate) checkStructuralMember(m ir.StructuralMember, pos diag.Position) {
	if m.IsMethod {
		g.checkFunctionSignature(m.Parameters, nil, m.ReturnType, pos)
		return
	}
	g.checkType(m.PropType, pos)
}

func (g *Gate) checkExpr(e ir.Expr) {
	if e == nil {
		return
	}
	g.checkType(e.InferredType(), e.Pos())
	switch v := e.(type) {
	case *ir.ArrayExpr:
		for _, el := range v.Elements {
			g.checkExpr(el)
		}
	case *ir.ObjectExpr:
		for _, prop := range v.Properties {
			g.checkExpr(prop.Value)
		}
	case *ir.MemberAccessExpr:
		g.checkExpr(v.Receiver)
		g.checkExpr(v.Computed)
	case *ir.CallExpr:
		g.checkExpr(v.Callee)
		for _, a := range v.Args {
			g.checkExpr(a)
		}
		for _, t := range v.TypeArgs {
			g.checkType(t, v.Pos())
		}
		for _, t := range v.ParameterTypes {
			g.checkType(t, v.Pos())
		}
		if v.Narrowing != nil {
			g.checkType(v.Narrowing.TargetType, v.Pos())
		}
	case *ir.NewExpr:
		g.checkExpr(v.Callee)
		for _, a := range v.Args {
			g.checkExpr(a)
		}
		for _, t := range v.ParameterTypes {
			g.checkType(t, v.Pos())
		}
	case *ir.UpdateExpr:
		g.checkExpr(v.Operand)
	case *ir.UnaryExpr:
		g.checkExpr(v.Operand)
	case *ir.BinaryExpr:
		g.checkExpr(v.Left)
		g.checkExpr(v.Right)
	case *ir.LogicalExpr:
		g.checkExpr(v.Left)
		g.checkExpr(v.Right)
	case *ir.ConditionalExpr:
		g.checkExpr(v.Cond)
		g.checkExpr(v.Then)
		g.checkExpr(v.Else)
	case *ir.AssignmentExpr:
		g.checkExpr(v.Target)
		g.checkExpr(v.Value)
	case *ir.TemplateLiteralExpr:
		for _, ex := range v.Expressions {
			g.checkExpr(ex)
		}
	case *ir.SpreadExpr:
		g.checkExpr(v.Operand)
	case *ir.AwaitExpr:
		g.checkExpr(v.Operand)
	case *ir.YieldExpr:
		g.checkExpr(v.Operand)
	case *ir.NumericNarrowingExpr:
		g.checkExpr(v.Operand)
	case *ir.TypeAssertionExpr:
		g.checkExpr(v.Operand)
	case *ir.TryCastExpr:
		g.checkExpr(v.Operand)
	case *ir.AsInterfaceExpr:
		g.checkExpr(v.Operand)
	case *ir.StackAllocExpr:
		g.checkType(v.ElementType, v.Pos())
		g.checkExpr(v.Size)
	case *ir.ArrowFunctionExpr:
		for _, p := range v.Parameters {
			g.checkType(p.Type, v.Pos())
		}
		g.checkType(v.ReturnType, v.Pos())
		g.checkExpr(v.ExprBody)
		if v.BlockBody != nil {
			g.checkStmt(v.BlockBody)
		}
	}
}

// checkType recursively validates t against the any-forbidden and
// unresolved-reference rules (§4.5).
func (g *Gate) checkType(t ir.Type, pos diag.Position) {
	if t == nil {
		return
	}
	switch v := t.(type) {
	case ir.Any:
		g.diags.Errorf(diag.CodeAnyAtEmit, pos, "the %q type must not reach the emitter", "any")
	case *ir.Reference:
		if !v.Bound() && v.Structural == nil && !g.Resolved(v.Name) {
			g.diags.Errorf(diag.CodeUnresolvedReference, pos, "unresolved reference to type %q", v.Name)
		}
		for _, a := range v.TypeArgs {
			g.checkType(a, pos)
		}
	case *ir.Array:
		g.checkType(v.Element, pos)
	case *ir.Tuple:
		for _, e := range v.Elements {
			g.checkType(e, pos)
		}
	case *ir.Union:
		for _, m := range v.Members {
			g.checkType(m, pos)
		}
	case *ir.Intersection:
		for _, m := range v.Members {
			g.checkType(m, pos)
		}
	case *ir.Dictionary:
		g.checkType(v.Key, pos)
		g.checkType(v.Value, pos)
	case *ir.Function:
		for _, p := range v.Parameters {
			g.checkType(p.Type, pos)
		}
		g.checkType(v.ReturnType, pos)
	case *ir.Object:
		for _, m := range v.Members {
			g.checkStructuralMember(m, pos)
		}
	}
}
