package lowering

import (
	"github.com/tsonic-lang/tsonic-core/internal/ast"
	"github.com/tsonic-lang/tsonic-core/internal/handle"
	"github.com/tsonic-lang/tsonic-core/internal/ir"
	"github.com/tsonic-lang/tsonic-core/internal/syntax"
	"github.com/tsonic-lang/tsonic-core/internal/typesystem"
)

// declareName mints the DeclId and registers the qualified name for one
// top-level declaration, with no resolution of its signature yet — pass
// one of the two-subpass hoist (§5 "Ordering").
func (l *Lowerer) declareName(s ast.Stmt, file string) {
	switch v := s.(type) {
	case *ast.FunctionDecl:
		id := l.Handles.NewDecl(handle.DeclFunction, v.Name, l.qualify(v.Name), l.pos(v.P, file), 0)
		l.declIDs[s] = id
	case *ast.ClassDecl:
		id := l.Handles.NewDecl(handle.DeclClass, v.Name, l.qualify(v.Name), l.pos(v.P, file), 0)
		l.declIDs[s] = id
		l.System.RegisterType(l.qualify(v.Name), id)
		l.System.Nominal.Declare(id, v.TypeParams)
	case *ast.InterfaceDecl:
		id := l.Handles.NewDecl(handle.DeclInterface, v.Name, l.qualify(v.Name), l.pos(v.P, file), 0)
		l.declIDs[s] = id
		l.System.RegisterType(l.qualify(v.Name), id)
		l.System.Nominal.Declare(id, v.TypeParams)
	case *ast.EnumDecl:
		id := l.Handles.NewDecl(handle.DeclEnum, v.Name, l.qualify(v.Name), l.pos(v.P, file), 0)
		l.declIDs[s] = id
		l.System.RegisterType(l.qualify(v.Name), id)
	case *ast.TypeAliasDecl:
		id := l.Handles.NewDecl(handle.DeclTypeAlias, v.Name, l.qualify(v.Name), l.pos(v.P, file), 0)
		l.declIDs[s] = id
		l.System.RegisterType(l.qualify(v.Name), id)
	}
}

// wireDecl resolves one top-level declaration's signature/extends/members
// now that every sibling name exists (§5 "Ordering", pass two of hoist).
// It also defines the declaration's module-scope symbol so call/identifier
// lowering in pass three sees it regardless of source order.
func (l *Lowerer) wireDecl(s ast.Stmt, file string) {
	switch v := s.(type) {
	case *ast.FunctionDecl:
		l.wireFunctionSignature(l.declIDs[s], v, l.moduleDecl)
	case *ast.ClassDecl:
		l.wireClass(l.declIDs[s], v)
	case *ast.InterfaceDecl:
		l.wireInterface(l.declIDs[s], v)
	}
}

func (l *Lowerer) wireFunctionSignature(id handle.DeclId, f *ast.FunctionDecl, owner handle.DeclId) *funcInfo {
	l.pushTypeParams(f.TypeParams)
	defer l.popTypeParams()

	params := make([]ir.Param, len(f.Params))
	modes := make([]ir.ParamMode, len(f.Params))
	for i, p := range f.Params {
		params[i] = ir.Param{Name: p.Name, Type: l.resolveType(p.Type)}
		modes[i] = ir.ModeValue
	}
	var ret ir.Type = ir.Void{}
	if f.ReturnType != nil {
		ret = l.resolveType(f.ReturnType)
	}

	sigID := l.Handles.AddSignature(id, f.TypeParams, l.pos(f.P, l.file))
	l.System.Catalog.AddMethodSignature(owner, f.Name, typesystem.SignatureInfo{
		ID: sigID, TypeParams: f.TypeParams, Parameters: params, ParamModes: modes, ReturnType: ret,
	})

	fi := &funcInfo{typeParams: f.TypeParams, params: params, modes: modes, ret: ret, sigID: sigID}
	l.funcInfos[f] = fi
	if owner == l.moduleDecl {
		l.scope.define(f.Name, &symbol{declID: id, typ: &ir.Function{Parameters: params, ReturnType: ret}, fn: fi})
	}
	return fi
}

func (l *Lowerer) wireClass(id handle.DeclId, c *ast.ClassDecl) {
	l.pushTypeParams(c.TypeParams)
	defer l.popTypeParams()

	if c.Extends != nil {
		if baseID, ok := l.typeDeclOf(c.Extends); ok {
			l.System.Nominal.AddEdge(id, baseID, typeArgNames(c.Extends))
		}
	}
	for _, impl := range c.Implements {
		if baseID, ok := l.typeDeclOf(impl); ok {
			l.System.Nominal.AddEdge(id, baseID, typeArgNames(impl))
		}
	}
	for _, f := range c.Fields {
		l.System.Catalog.AddProperty(id, f.Name, l.resolveType(f.Type))
	}
	for _, m := range c.Methods {
		l.wireFunctionSignature(id, m.Func, id)
	}

	// Defines the class's own name as a module-scope symbol so `new
	// ClassName()` and bare type references resolve regardless of
	// declaration order.
	l.scope.define(c.Name, &symbol{declID: id, typ: &ir.Reference{Name: l.qualify(c.Name)}})
}

func (l *Lowerer) wireInterface(id handle.DeclId, iface *ast.InterfaceDecl) {
	l.pushTypeParams(iface.TypeParams)
	defer l.popTypeParams()

	for _, ext := range iface.Extends {
		if baseID, ok := l.typeDeclOf(ext); ok {
			l.System.Nominal.AddEdge(id, baseID, typeArgNames(ext))
		}
	}
	for _, m := range iface.Members {
		if m.IsMethod {
			l.System.Catalog.AddMethodSignature(id, m.Name, typesystem.SignatureInfo{
				Parameters: l.fieldParams(m.Type.Params), ReturnType: l.resolveType(m.Type.Return),
			})
		} else {
			l.System.Catalog.AddProperty(id, m.Name, l.resolveType(m.Type))
		}
	}
}

// fieldParams converts a captured function-signature's parameter fields
// into IR params, resolving each one's annotation.
func (l *Lowerer) fieldParams(fields []syntax.FieldSyntax) []ir.Param {
	params := make([]ir.Param, len(fields))
	for i, f := range fields {
		params[i] = ir.Param{Name: f.Name, Type: l.resolveType(f.Type)}
	}
	return params
}

// typeDeclOf resolves a captured extends/implements type-syntax name to
// the DeclId it names, via the type system's qualified-name index,
// trying both the bare name (an external/builtin type) and the current
// namespace-qualified form (a sibling local declaration) (§4.2.2 step 2).
func (l *Lowerer) typeDeclOf(te *syntax.TypeExpr) (handle.DeclId, bool) {
	if te == nil || te.Kind != syntax.TypeExprName {
		return 0, false
	}
	if id, ok := l.System.DeclIDFor(l.qualify(te.Name)); ok {
		return id, true
	}
	return l.System.DeclIDFor(te.Name)
}

// typeArgNames extracts a type-syntax reference's own type-argument names
// (bare names only; the nominal_env's edge substitution is itself
// name-keyed, §4.2 "nominal_env").
func typeArgNames(te *syntax.TypeExpr) []string {
	if te == nil {
		return nil
	}
	names := make([]string, len(te.TypeArgs))
	for i, a := range te.TypeArgs {
		if a != nil && a.Kind == syntax.TypeExprName {
			names[i] = a.Name
		}
	}
	return names
}
