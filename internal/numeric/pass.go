package numeric

import (
	"math"

	"github.com/tsonic-lang/tsonic-core/internal/diag"
	"github.com/tsonic-lang/tsonic-core/internal/handle"
	"github.com/tsonic-lang/tsonic-core/internal/ir"
)

var arithmeticOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"&": true, "|": true, "^": true, "<<": true, ">>": true,
}

// Pass is the numeric proof pass's per-compile state: which declarations
// have a proven kind (so identifiers referencing them inherit it) plus
// the diagnostic collector every rule reports into (§4.4).
type Pass struct {
	diags      *diag.Collector
	declProofs map[handle.DeclId]ir.NumericProof
}

// NewPass returns a Pass that reports into diags.
func NewPass(diags *diag.Collector) *Pass {
	return &Pass{diags: diags, declProofs: make(map[handle.DeclId]ir.NumericProof)}
}

// ProveModule walks every statement of m's body, attaching proofs
// bottom-up (§4.4). Call once per module after frontend lowering and
// before the soundness gate.
func (p *Pass) ProveModule(m *ir.Module) {
	for _, stmt := range m.Body {
		p.ProveStmt(stmt)
	}
}

// ProveStmt recursively proves every expression reachable from stmt,
// recording a VariableDeclStmt's initializer proof against its DeclId so
// later identifier references inherit it (§4.4 "Proven kinds propagate").
func (p *Pass) ProveStmt(s ir.Stmt) {
	switch v := s.(type) {
	case *ir.BlockStmt:
		for _, inner := range v.Statements {
			p.ProveStmt(inner)
		}
	case *ir.IfStmt:
		p.ProveExpr(v.Cond)
		p.ProveStmt(v.Then)
		if v.Else != nil {
			p.ProveStmt(v.Else)
		}
	case *ir.WhileStmt:
		p.ProveExpr(v.Cond)
		p.ProveStmt(v.Body)
	case *ir.ForStmt:
		if v.Init != nil {
			p.ProveStmt(v.Init)
		}
		if v.Cond != nil {
			p.ProveExpr(v.Cond)
		}
		if v.Update != nil {
			p.ProveExpr(v.Update)
		}
		p.ProveStmt(v.Body)
	case *ir.ForOfStmt:
		p.ProveExpr(v.Iterable)
		p.ProveStmt(v.Body)
	case *ir.SwitchStmt:
		p.ProveExpr(v.Discriminant)
		for _, c := range v.Cases {
			if c.Test != nil {
				p.ProveExpr(c.Test)
			}
			for _, inner := range c.Statements {
				p.ProveStmt(inner)
			}
		}
	case *ir.TryStmt:
		p.ProveStmt(v.Block)
		if v.Catch != nil {
			p.ProveStmt(v.Catch.Body)
		}
		if v.Finally != nil {
			p.ProveStmt(v.Finally)
		}
	case *ir.ReturnStmt:
		if v.Expr != nil {
			p.ProveExpr(v.Expr)
		}
	case *ir.ThrowStmt:
		p.ProveExpr(v.Expr)
	case *ir.VariableDeclStmt:
		if v.Init != nil {
			proof := p.ProveExpr(v.Init)
			if proof != nil && v.Decl != 0 {
				p.declProofs[v.Decl] = *proof
			}
		}
	case *ir.FunctionDeclStmt:
		if v.Body != nil {
			p.ProveStmt(v.Body)
		}
	case *ir.ClassDeclStmt:
		for _, m := range v.Members {
			if m.Method != nil {
				p.ProveStmt(m.Method)
			}
		}
	case *ir.YieldStmt:
		if v.Expr != nil {
			p.ProveExpr(v.Expr)
		}
	case *ir.GeneratorReturnStmt:
		if v.Expr != nil {
			p.ProveExpr(v.Expr)
		}
	case *ir.ExpressionStmt:
		p.ProveExpr(v.Expr)
	}
}

// ProveExpr proves e bottom-up and returns the proof attached to e, if
// any. Non-numeric expressions simply return nil without error; lack of
// proof is only a problem where a downstream rule (narrowing, indexed
// access) specifically requires one.
func (p *Pass) ProveExpr(e ir.Expr) *ir.NumericProof {
	if e == nil {
		return nil
	}
	var proof *ir.NumericProof
	switch v := e.(type) {
	case *ir.LiteralExpr:
		proof = p.proveLiteral(v)
	case *ir.IdentifierExpr:
		if pr, ok := p.declProofs[v.Decl]; ok {
			cp := pr
			cp.Source = ir.ProofFromInherited
			proof = &cp
		}
	case *ir.BinaryExpr:
		left := p.ProveExpr(v.Left)
		right := p.ProveExpr(v.Right)
		if arithmeticOps[v.Op] && left != nil && right != nil {
			proof = &ir.NumericProof{Kind: joinKinds(left.Kind, right.Kind), Source: ir.ProofFromBinaryJoin}
		}
	case *ir.LogicalExpr:
		p.ProveExpr(v.Left)
		p.ProveExpr(v.Right)
	case *ir.ConditionalExpr:
		p.ProveExpr(v.Cond)
		thenProof := p.ProveExpr(v.Then)
		elseProof := p.ProveExpr(v.Else)
		if thenProof != nil && elseProof != nil && thenProof.Kind == elseProof.Kind {
			proof = &ir.NumericProof{Kind: thenProof.Kind, Source: ir.ProofFromBinaryJoin}
		}
	case *ir.UnaryExpr:
		inner := p.ProveExpr(v.Operand)
		if inner != nil && (v.Op == "-" || v.Op == "+" || v.Op == "~") {
			cp := *inner
			proof = &cp
		}
	case *ir.UpdateExpr:
		if inner := p.ProveExpr(v.Operand); inner != nil {
			cp := *inner
			proof = &cp
		}
	case *ir.AssignmentExpr:
		p.ProveExpr(v.Target)
		proof = p.ProveExpr(v.Value)
	case *ir.ArrayExpr:
		for _, el := range v.Elements {
			p.ProveExpr(el)
		}
	case *ir.ObjectExpr:
		for _, prop := range v.Properties {
			p.ProveExpr(prop.Value)
		}
	case *ir.MemberAccessExpr:
		p.ProveExpr(v.Receiver)
		p.proveComputedAccess(v)
	case *ir.CallExpr:
		p.ProveExpr(v.Callee)
		for _, a := range v.Args {
			p.ProveExpr(a)
		}
	case *ir.NewExpr:
		p.ProveExpr(v.Callee)
		for _, a := range v.Args {
			p.ProveExpr(a)
		}
	case *ir.TemplateLiteralExpr:
		for _, ex := range v.Expressions {
			p.ProveExpr(ex)
		}
	case *ir.SpreadExpr:
		proof = p.ProveExpr(v.Operand)
	case *ir.AwaitExpr:
		proof = p.ProveExpr(v.Operand)
	case *ir.YieldExpr:
		p.ProveExpr(v.Operand)
	case *ir.NumericNarrowingExpr:
		proof = p.proveNarrowing(v)
	case *ir.TypeAssertionExpr, *ir.TryCastExpr, *ir.AsInterfaceExpr:
		// Non-numeric casts; no numeric proof to attach.
	case *ir.StackAllocExpr:
		p.ProveExpr(v.Size)
	case *ir.ArrowFunctionExpr:
		if v.ExprBody != nil {
			p.ProveExpr(v.ExprBody)
		}
		if v.BlockBody != nil {
			p.ProveStmt(v.BlockBody)
		}
	}
	if proof != nil {
		e.SetNumericProof(proof)
	}
	return proof
}

// proveLiteral implements §4.4 "Literals": the default kind is inferred
// from the literal's value, independent of any enclosing narrowing
// target (the narrowing rule separately range-checks against the
// target).
func (p *Pass) proveLiteral(lit *ir.LiteralExpr) *ir.NumericProof {
	if !lit.Value.IsNum {
		return nil
	}
	n := lit.Value.Number
	if math.Trunc(n) != n || math.IsInf(n, 0) || math.IsNaN(n) {
		return &ir.NumericProof{Kind: ir.KDouble, Source: ir.ProofFromLiteral}
	}
	v := int64(n)
	if fitsInt32Range(v) {
		return &ir.NumericProof{Kind: ir.KInt32, Source: ir.ProofFromLiteral}
	}
	return &ir.NumericProof{Kind: ir.KInt64, Source: ir.ProofFromLiteral}
}

// proveNarrowing implements §4.4 "Narrowings". Failure emits a diagnostic
// and leaves the node without proof; it does not panic — the soundness
// gate and emitter are what refuse to proceed on a proof-less narrowing.
func (p *Pass) proveNarrowing(n *ir.NumericNarrowingExpr) *ir.NumericProof {
	target, isNumeric := numericKindOfType(n.Type)
	if !isNumeric {
		return nil
	}

	inner := p.ProveExpr(n.Operand)
	if inner == nil {
		p.diags.Errorf(diag.CodeNumericUnprovable, n.Pos(), "cannot prove a numeric kind for this expression to narrow to %s", target)
		return nil
	}

	if lit, isLit := n.Operand.(*ir.LiteralExpr); isLit && inner.Source == ir.ProofFromLiteral {
		return p.proveLiteralNarrowing(lit, target, n.Pos())
	}

	if !canNarrowProvenKind(inner.Kind, target) {
		p.diags.Errorf(diag.CodeNumericUnprovable, n.Pos(),
			"%s is broader than the narrowing target %s; the narrowing is unprovable", inner.Kind, target)
		return nil
	}
	return &ir.NumericProof{Kind: target, Source: ir.ProofFromNarrowing}
}

func (p *Pass) proveLiteralNarrowing(lit *ir.LiteralExpr, target ir.NumericKind, pos diag.Position) *ir.NumericProof {
	n := lit.Value.Number
	targetRank, hasRank := ranks[target]
	isFractional := math.Trunc(n) != n

	if isFractional {
		if hasRank && targetRank.fam != famFloat {
			p.diags.Errorf(diag.CodeNumericUnprovable, pos, "a floating-point literal cannot be narrowed to integral type %s", target)
			return nil
		}
		return &ir.NumericProof{Kind: target, Source: ir.ProofFromNarrowing}
	}

	v := int64(n)
	if target == ir.KInt64 || target == ir.KUInt64 {
		if !isSafeInteger(v) {
			p.diags.Errorf(diag.CodeUnsafeInteger, pos,
				"literal %v exceeds the safe-integer range and cannot be narrowed to %s without possible precision loss", n, target)
			return nil
		}
	}
	if !inRange(target, v) {
		p.diags.Errorf(diag.CodeNumericOverflow, pos, "literal %v is out of range for %s", n, target)
		return nil
	}
	return &ir.NumericProof{Kind: target, Source: ir.ProofFromNarrowing}
}

// proveComputedAccess implements §4.4 "Indexed access": a clrIndexer
// access requires its index expression to carry Int32 proof; missing
// proof is a hard diagnostic, matching the emitter-must-refuse rule.
func (p *Pass) proveComputedAccess(m *ir.MemberAccessExpr) {
	if m.Computed == nil {
		return
	}
	idxProof := p.ProveExpr(m.Computed)
	if m.AccessKind != ir.AccessCLRIndexer {
		return
	}
	if idxProof == nil || idxProof.Kind != ir.KInt32 {
		p.diags.Errorf(diag.CodeIndexNotInt32, m.Computed.Pos(),
			"indexed access into a CLR indexer requires an Int32-proven index")
	}
}
