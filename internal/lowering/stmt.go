package lowering

import (
	"github.com/tsonic-lang/tsonic-core/internal/ast"
	"github.com/tsonic-lang/tsonic-core/internal/diag"
	"github.com/tsonic-lang/tsonic-core/internal/handle"
	"github.com/tsonic-lang/tsonic-core/internal/ir"
)

// lowerStmt dispatches one source statement to its IR form. Top-level
// declarations have already been hoisted (declareName/wireDecl) by the
// time this runs, so here they only need their bodies lowered (§4.3,
// pass three of LowerModule).
func (l *Lowerer) lowerStmt(s ast.Stmt) ir.Stmt {
	pos := l.pos(s.Pos(), l.file)
	switch v := s.(type) {
	case *ast.BlockStmt:
		return l.lowerBlock(v)
	case *ast.IfStmt:
		var elseStmt ir.Stmt
		if v.Else != nil {
			elseStmt = l.lowerStmt(v.Else)
		}
		return &ir.IfStmt{StmtBase: ir.StmtBase{NodePos: pos}, Cond: l.lowerExpr(v.Cond), Then: l.lowerStmt(v.Then), Else: elseStmt}
	case *ast.WhileStmt:
		return &ir.WhileStmt{StmtBase: ir.StmtBase{NodePos: pos}, Cond: l.lowerExpr(v.Cond), Body: l.lowerStmt(v.Body)}
	case *ast.ForStmt:
		l.scope = newScope(l.scope)
		defer func() { l.scope = l.scope.parent }()
		var init ir.Stmt
		if v.Init != nil {
			init = l.lowerStmt(v.Init)
		}
		var cond, update ir.Expr
		if v.Cond != nil {
			cond = l.lowerExpr(v.Cond)
		}
		if v.Update != nil {
			update = l.lowerExpr(v.Update)
		}
		return &ir.ForStmt{StmtBase: ir.StmtBase{NodePos: pos}, Init: init, Cond: cond, Update: update, Body: l.lowerStmt(v.Body)}
	case *ast.ForOfStmt:
		return l.lowerForOf(v, pos)
	case *ast.SwitchStmt:
		return l.lowerSwitch(v, pos)
	case *ast.TryStmt:
		return l.lowerTry(v, pos)
	case *ast.ReturnStmt:
		var expr ir.Expr
		if v.Expr != nil {
			expr = l.lowerExpr(v.Expr)
		}
		if l.inGenerator {
			return &ir.GeneratorReturnStmt{StmtBase: ir.StmtBase{NodePos: pos}, Expr: expr}
		}
		return &ir.ReturnStmt{StmtBase: ir.StmtBase{NodePos: pos}, Expr: expr}
	case *ast.ThrowStmt:
		return &ir.ThrowStmt{StmtBase: ir.StmtBase{NodePos: pos}, Expr: l.lowerExpr(v.Expr)}
	case *ast.BreakStmt:
		return &ir.BreakStmt{StmtBase: ir.StmtBase{NodePos: pos}, Label: v.Label}
	case *ast.ContinueStmt:
		return &ir.ContinueStmt{StmtBase: ir.StmtBase{NodePos: pos}, Label: v.Label}
	case *ast.YieldStmt:
		var expr ir.Expr
		if v.Expr != nil {
			expr = l.lowerExpr(v.Expr)
		}
		return &ir.YieldStmt{StmtBase: ir.StmtBase{NodePos: pos}, Expr: expr, Delegate: v.Delegate}
	case *ast.VariableDecl:
		return l.lowerVariableDecl(v, pos)
	case *ast.FunctionDecl:
		return l.lowerFunctionDecl(v, l.moduleDecl)
	case *ast.ClassDecl:
		return l.lowerClassDecl(v, pos)
	case *ast.InterfaceDecl:
		return l.lowerInterfaceDecl(v, pos)
	case *ast.EnumDecl:
		return l.lowerEnumDecl(v, pos)
	case *ast.TypeAliasDecl:
		id := l.declIDs[s]
		return &ir.TypeAliasStmt{StmtBase: ir.StmtBase{NodePos: pos}, Decl: id, Name: v.Name, TypeParams: v.TypeParams, Aliased: l.resolveType(v.Aliased)}
	case *ast.ExpressionStmt:
		return &ir.ExpressionStmt{StmtBase: ir.StmtBase{NodePos: pos}, Expr: l.lowerExpr(v.Expr)}
	default:
		return nil
	}
}

func (l *Lowerer) lowerBlock(b *ast.BlockStmt) *ir.BlockStmt {
	l.scope = newScope(l.scope)
	defer func() { l.scope = l.scope.parent }()

	stmts := make([]ir.Stmt, 0, len(b.Statements))
	for _, s := range b.Statements {
		if lowered := l.lowerStmt(s); lowered != nil {
			stmts = append(stmts, lowered)
		}
	}
	return &ir.BlockStmt{StmtBase: ir.StmtBase{NodePos: l.pos(b.P, l.file)}, Statements: stmts}
}

func (l *Lowerer) lowerForOf(v *ast.ForOfStmt, pos diag.Position) ir.Stmt {
	iterable := l.lowerExpr(v.Iterable)
	l.scope = newScope(l.scope)
	defer func() { l.scope = l.scope.parent }()

	elemType := iterableElementType(iterable.InferredType())
	declID := l.Handles.NewDecl(handle.DeclVariable, v.BindingName, v.BindingName, pos, 0)
	l.scope.define(v.BindingName, &symbol{declID: declID, typ: elemType})

	return &ir.ForOfStmt{
		StmtBase: ir.StmtBase{NodePos: pos}, BindingName: v.BindingName, Decl: declID,
		Iterable: iterable, Body: l.lowerStmt(v.Body),
	}
}

func iterableElementType(t ir.Type) ir.Type {
	switch v := t.(type) {
	case *ir.Array:
		return v.Element
	case *ir.Reference:
		if len(v.TypeArgs) == 1 {
			return v.TypeArgs[0]
		}
	}
	return ir.Unknown{}
}

func (l *Lowerer) lowerSwitch(v *ast.SwitchStmt, pos diag.Position) ir.Stmt {
	disc := l.lowerExpr(v.Discriminant)
	cases := make([]ir.SwitchCase, len(v.Cases))
	for i, c := range v.Cases {
		l.scope = newScope(l.scope)
		var test ir.Expr
		if c.Test != nil {
			test = l.lowerExpr(c.Test)
		}
		stmts := make([]ir.Stmt, 0, len(c.Statements))
		for _, s := range c.Statements {
			if lowered := l.lowerStmt(s); lowered != nil {
				stmts = append(stmts, lowered)
			}
		}
		cases[i] = ir.SwitchCase{Test: test, Statements: stmts}
		l.scope = l.scope.parent
	}
	return &ir.SwitchStmt{StmtBase: ir.StmtBase{NodePos: pos}, Discriminant: disc, Cases: cases}
}

func (l *Lowerer) lowerTry(v *ast.TryStmt, pos diag.Position) ir.Stmt {
	node := &ir.TryStmt{StmtBase: ir.StmtBase{NodePos: pos}, Block: l.lowerBlock(v.Block)}
	if v.Catch != nil {
		l.scope = newScope(l.scope)
		var paramType ir.Type = ir.Unknown{}
		if v.Catch.ParamType != nil {
			paramType = l.resolveType(v.Catch.ParamType)
		}
		declID := l.Handles.NewDecl(handle.DeclVariable, v.Catch.ParamName, v.Catch.ParamName, pos, 0)
		l.scope.define(v.Catch.ParamName, &symbol{declID: declID, typ: paramType})
		node.Catch = &ir.CatchClause{ParamName: v.Catch.ParamName, ParamType: paramType, Body: l.lowerBlock(v.Catch.Body)}
		l.scope = l.scope.parent
	}
	if v.Finally != nil {
		node.Finally = l.lowerBlock(v.Finally)
	}
	return node
}

func (l *Lowerer) lowerVariableDecl(v *ast.VariableDecl, pos diag.Position) ir.Stmt {
	var init ir.Expr
	if v.Init != nil {
		init = l.lowerExpr(v.Init)
	}

	var declaredType ir.Type
	if v.Type != nil {
		declaredType = l.resolveType(v.Type)
	} else if init != nil {
		declaredType = init.InferredType()
	} else {
		declaredType = ir.Unknown{}
	}

	declID := l.Handles.NewDecl(handle.DeclVariable, v.Name, v.Name, pos, 0)
	l.scope.define(v.Name, &symbol{declID: declID, typ: declaredType})

	return &ir.VariableDeclStmt{
		StmtBase: ir.StmtBase{NodePos: pos}, Decl: declID, Name: v.Name,
		IsConst: v.Kind == ast.KindConst, Type: declaredType, Init: init,
	}
}

func (l *Lowerer) lowerFunctionDecl(v *ast.FunctionDecl, owner handle.DeclId) ir.Stmt {
	pos := l.pos(v.P, l.file)
	id := l.declIDs[v]
	fi, ok := l.funcInfos[v]
	if !ok {
		fi = l.wireFunctionSignature(id, v, owner)
	}

	wasGenerator := l.inGenerator
	l.inGenerator = v.IsGenerator
	l.scope = newScope(l.scope)
	l.pushTypeParams(v.TypeParams)
	for i, p := range v.Params {
		l.scope.define(p.Name, &symbol{typ: fi.params[i].Type})
	}

	var body *ir.BlockStmt
	if v.Body != nil {
		body = l.lowerBlock(v.Body)
	}

	l.popTypeParams()
	l.scope = l.scope.parent
	l.inGenerator = wasGenerator

	return &ir.FunctionDeclStmt{
		StmtBase: ir.StmtBase{NodePos: pos}, Decl: id, Name: v.Name, TypeParams: fi.typeParams,
		Parameters: fi.params, ParamModes: fi.modes, ReturnType: fi.ret, Body: body,
		IsAsync: v.IsAsync, IsGenerator: v.IsGenerator,
	}
}

func (l *Lowerer) lowerClassDecl(v *ast.ClassDecl, pos diag.Position) ir.Stmt {
	id := l.declIDs[v]
	wasClass := l.classDecl
	l.classDecl = id
	l.pushTypeParams(v.TypeParams)

	var extends ir.Type
	if v.Extends != nil {
		extends = l.resolveType(v.Extends)
	}
	implements := make([]ir.Type, len(v.Implements))
	for i, impl := range v.Implements {
		implements[i] = l.resolveType(impl)
	}

	members := make([]ir.ClassMember, 0, len(v.Fields)+len(v.Methods))
	for _, f := range v.Fields {
		members = append(members, ir.ClassMember{Name: f.Name, Field: l.resolveType(f.Type), IsStatic: f.Static})
	}
	for _, m := range v.Methods {
		method := l.lowerFunctionDecl(m.Func, id).(*ir.FunctionDeclStmt)
		members = append(members, ir.ClassMember{Name: m.Func.Name, Method: method, IsStatic: m.Static, IsAbstract: m.Abstract})
	}

	l.popTypeParams()
	l.classDecl = wasClass

	return &ir.ClassDeclStmt{
		StmtBase: ir.StmtBase{NodePos: pos}, Decl: id, Name: v.Name, TypeParams: v.TypeParams,
		Extends: extends, Implements: implements, Members: members, IsAbstract: v.Abstract,
	}
}

func (l *Lowerer) lowerInterfaceDecl(v *ast.InterfaceDecl, pos diag.Position) ir.Stmt {
	id := l.declIDs[v]
	l.pushTypeParams(v.TypeParams)
	defer l.popTypeParams()

	extends := make([]ir.Type, len(v.Extends))
	for i, ext := range v.Extends {
		extends[i] = l.resolveType(ext)
	}
	members := make([]ir.StructuralMember, len(v.Members))
	for i, m := range v.Members {
		if m.IsMethod {
			members[i] = ir.StructuralMember{
				Name: m.Name, IsMethod: true, Parameters: l.fieldParams(m.Type.Params),
				ReturnType: l.resolveType(m.Type.Return), Optional: m.Optional,
			}
		} else {
			members[i] = ir.StructuralMember{Name: m.Name, PropType: l.resolveType(m.Type), Optional: m.Optional}
		}
	}

	return &ir.InterfaceDeclStmt{
		StmtBase: ir.StmtBase{NodePos: pos}, Decl: id, Name: v.Name, TypeParams: v.TypeParams,
		Extends: extends, Members: members,
	}
}

func (l *Lowerer) lowerEnumDecl(v *ast.EnumDecl, pos diag.Position) ir.Stmt {
	id := l.declIDs[v]
	members := make([]ir.EnumMember, len(v.Members))
	for i, m := range v.Members {
		var val ir.Expr
		if m.Value != nil {
			val = l.lowerExpr(m.Value)
		}
		members[i] = ir.EnumMember{Name: m.Name, Value: val}
	}
	return &ir.EnumDeclStmt{StmtBase: ir.StmtBase{NodePos: pos}, Decl: id, Name: v.Name, Members: members}
}
