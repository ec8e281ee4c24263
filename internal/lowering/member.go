package lowering

import (
	"strings"

	"github.com/tsonic-lang/tsonic-core/internal/ast"
	"github.com/tsonic-lang/tsonic-core/internal/binding"
	"github.com/tsonic-lang/tsonic-core/internal/diag"
	"github.com/tsonic-lang/tsonic-core/internal/ir"
)

// lowerMemberAccess implements member-access lowering (§4.3.1): the
// receiver's IR type is computed first, then the property's inferred
// type and its separate external binding are resolved independently.
func (l *Lowerer) lowerMemberAccess(m *ast.MemberExpr) *ir.MemberAccessExpr {
	receiver := l.lowerExpr(m.Receiver)
	pos := l.pos(m.P, l.file)

	node := &ir.MemberAccessExpr{
		ExprBase: ir.ExprBase{NodePos: pos},
		Receiver: receiver,
		Name:     m.Name,
		Optional: m.Optional,
	}

	if m.Computed != nil {
		node.Computed = l.lowerExpr(m.Computed)
		node.AccessKind = l.classifyAccess(receiver.InferredType(), node.Computed)
		node.Type = l.computedValueType(receiver.InferredType())
		return node
	}

	node.Type = l.System.TypeOfMember(receiver.InferredType(), m.Name, pos, l.Diags)
	if _, isUnknown := node.Type.(ir.Unknown); isUnknown {
		// Falls through to the member-id path for inherited members not
		// present in the unified catalog (§4.3.1): since this stand-in
		// frontend has no separate member-id index beyond the catalog
		// itself, the already-reported diagnostic stands.
	}
	node.Binding = l.resolveMemberBinding(m, receiver.InferredType())
	return node
}

// classifyAccess implements the computed-access classification rule
// (§4.3.1): array → clrIndexer, a dictionary IR type → dictionary,
// string → stringChar, a reference with a unique integer-keyed indexer →
// clrIndexer, a reference with a non-integer-keyed indexer → dictionary,
// otherwise unknown (which numeric proof must then fail, §4.4).
func (l *Lowerer) classifyAccess(receiver ir.Type, index ir.Expr) ir.AccessKind {
	switch v := receiver.(type) {
	case *ir.Array:
		return ir.AccessCLRIndexer
	case *ir.Dictionary:
		return ir.AccessDictionary
	case ir.Primitive:
		if v.Name == ir.StringP {
			return ir.AccessStringChar
		}
	case *ir.Reference:
		if info, ok := l.System.GetIndexerInfo(v); ok {
			if isIntegerExternalType(info.KeyExternalType) {
				return ir.AccessCLRIndexer
			}
			return ir.AccessDictionary
		}
	}
	return ir.AccessUnknown
}

func isIntegerExternalType(name string) bool {
	switch name {
	case "System.Int32", "int", "Int32", "":
		return name != ""
	default:
		return false
	}
}

func (l *Lowerer) computedValueType(receiver ir.Type) ir.Type {
	switch v := receiver.(type) {
	case *ir.Array:
		return v.Element
	case *ir.Dictionary:
		return v.Value
	case ir.Primitive:
		if v.Name == ir.StringP {
			return ir.Primitive{Name: ir.Char}
		}
	case *ir.Reference:
		if info, ok := l.System.GetIndexerInfo(v); ok {
			return info.ValueType
		}
	}
	return ir.Unknown{}
}

// resolveMemberBinding implements the C2 member-access resolution
// protocol (§4.1): the receiver's nominal type name (stripping
// `$instance`/view-intersection suffixes per §9's open question) drives
// a lookup through the binding registry, with the overload-collapse
// rule applied before a single binding is attached. recvType is the
// already-lowered receiver's InferredType(); it must not be recomputed
// by re-lowering m.Receiver here, since the caller's single lowering of
// the receiver may already have reported diagnostics or produced
// side-effecting IR (e.g. a call) that a second lowering would repeat.
func (l *Lowerer) resolveMemberBinding(m *ast.MemberExpr, recvType ir.Type) *ir.MemberBinding {
	if l.Bindings == nil {
		return nil
	}

	// Step 1/2/3: receiver names a namespace or a directly-imported type.
	if recvIdent, ok := m.Receiver.(*ast.Ident); ok {
		if ns, ok := l.Bindings.GetNamespace(recvIdent.Name); ok {
			for _, t := range ns.Types {
				if t == m.Name {
					return nil // a type reference, not a member (§4.1 step 1)
				}
			}
		}
		if _, ok := l.Bindings.GetType(recvIdent.Name); ok {
			return l.collapseOverloads(recvIdent.Name, m.Name, m.P)
		}
	}
	if recvMember, ok := m.Receiver.(*ast.MemberExpr); ok {
		if nsIdent, ok := recvMember.Receiver.(*ast.Ident); ok {
			if _, ok := l.Bindings.GetNamespace(nsIdent.Name); ok {
				return l.collapseOverloads(recvMember.Name, m.Name, m.P)
			}
		}
	}

	// Step 4: instance-style access — strip synthetic suffixes and use
	// the receiver's nominal type name.
	typeName := nominalTypeName(recvType)
	if typeName == "" {
		return nil
	}
	return l.collapseOverloads(typeName, m.Name, m.P)
}

func (l *Lowerer) collapseOverloads(typeAlias, memberAlias string, pos ast.Pos) *ir.MemberBinding {
	overloads := l.Bindings.GetMemberOverloads(typeAlias, memberAlias)
	if len(overloads) == 0 {
		return nil
	}
	if !binding.AgreeOnExternalTarget(overloads) {
		l.Diags.Errorf(diag.CodeAmbiguousBinding, l.pos(pos, l.file),
			"member %q on %q resolves to more than one external target across overloads", memberAlias, typeAlias)
		return nil
	}
	return binding.ToIRBinding(overloads[0])
}

// nominalTypeName extracts the receiver's nominal type name for instance-
// style binding lookup, stripping the tsbindgen `$instance` suffix and
// walking an `X$instance & __X$views`-shaped intersection down to its
// first member (§4.1 step 4, §9 open question on synthetic shapes).
func nominalTypeName(t ir.Type) string {
	switch v := t.(type) {
	case *ir.Reference:
		name := v.Name
		if idx := strings.Index(name, "$instance"); idx >= 0 {
			name = name[:idx]
		}
		return name
	case *ir.Intersection:
		if len(v.Members) > 0 {
			return nominalTypeName(v.Members[0])
		}
	}
	return ""
}
