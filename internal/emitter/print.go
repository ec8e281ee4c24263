package emitter

import (
	"fmt"
	"strings"
)

// Options controls the printer's surface formatting, mirroring the
// teacher's own printer.Options{Format, Style} shape: a caller picks an
// indent style once and every node renders consistently under it.
type Options struct {
	IndentWidth int    // spaces per nesting level; 0 defaults to 4
	Newline     string // line terminator; "" defaults to "\n"
}

// Printer renders a backend File to C# source text. It holds no emission
// logic of its own (§4.6 "final textual printing... is external") — it
// only walks the AST Emitter already built.
type Printer struct {
	opts Options
}

// NewPrinter returns a Printer configured with opts. The package-level
// Print function is the common case; NewPrinter is for a caller wanting
// non-default Options.
func NewPrinter(opts Options) *Printer {
	if opts.IndentWidth == 0 {
		opts.IndentWidth = 4
	}
	if opts.Newline == "" {
		opts.Newline = "\n"
	}
	return &Printer{opts: opts}
}

// Print renders f with default Options.
func Print(f *File) string {
	return NewPrinter(Options{}).Print(f)
}

// Print renders f under p's Options.
func (p *Printer) Print(f *File) string {
	var b strings.Builder
	for _, u := range f.Usings {
		b.WriteString("using ")
		b.WriteString(u)
		b.WriteString(";")
		b.WriteString(p.opts.Newline)
	}
	if len(f.Usings) > 0 {
		b.WriteString(p.opts.Newline)
	}
	if f.Namespace != nil {
		p.printNamespace(&b, f.Namespace)
	}
	return b.String()
}

func (p *Printer) indent(n int) string {
	return strings.Repeat(" ", n*p.opts.IndentWidth)
}

func (p *Printer) printNamespace(b *strings.Builder, ns *NamespaceDecl) {
	fmt.Fprintf(b, "namespace %s%s{%s", ns.Name, p.opts.Newline, p.opts.Newline)
	for _, t := range ns.Types {
		p.printTypeDecl(b, t, 1)
		b.WriteString(p.opts.Newline)
	}
	b.WriteString("}")
	b.WriteString(p.opts.Newline)
}

func (p *Printer) printTypeDecl(b *strings.Builder, t TypeDecl, depth int) {
	switch v := t.(type) {
	case *ClassDecl:
		p.printClass(b, v, depth)
	case *InterfaceDecl:
		p.printInterface(b, v, depth)
	case *EnumDecl:
		p.printEnum(b, v, depth)
	}
}

func typeParamSuffix(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return "<" + strings.Join(params, ", ") + ">"
}

func (p *Printer) printClass(b *strings.Builder, c *ClassDecl, depth int) {
	ind := p.indent(depth)
	mods := ""
	if c.IsStatic {
		mods += "static "
	}
	if c.IsAbstract {
		mods += "abstract "
	}
	fmt.Fprintf(b, "%spublic %sclass %s%s", ind, mods, c.Name, typeParamSuffix(c.TypeParams))
	if len(c.BaseTypes) > 0 {
		fmt.Fprintf(b, " : %s", strings.Join(c.BaseTypes, ", "))
	}
	b.WriteString(p.opts.Newline)
	fmt.Fprintf(b, "%s{%s", ind, p.opts.Newline)
	for _, m := range c.Members {
		p.printMember(b, m, depth+1)
	}
	fmt.Fprintf(b, "%s}%s", ind, p.opts.Newline)
}

func (p *Printer) printInterface(b *strings.Builder, iface *InterfaceDecl, depth int) {
	ind := p.indent(depth)
	fmt.Fprintf(b, "%spublic interface %s%s", ind, iface.Name, typeParamSuffix(iface.TypeParams))
	if len(iface.BaseTypes) > 0 {
		fmt.Fprintf(b, " : %s", strings.Join(iface.BaseTypes, ", "))
	}
	b.WriteString(p.opts.Newline)
	fmt.Fprintf(b, "%s{%s", ind, p.opts.Newline)
	for _, m := range iface.Members {
		p.printMember(b, m, depth+1)
	}
	fmt.Fprintf(b, "%s}%s", ind, p.opts.Newline)
}

func (p *Printer) printEnum(b *strings.Builder, e *EnumDecl, depth int) {
	ind := p.indent(depth)
	fmt.Fprintf(b, "%spublic enum %s%s", ind, e.Name, p.opts.Newline)
	fmt.Fprintf(b, "%s{%s", ind, p.opts.Newline)
	inner := p.indent(depth + 1)
	for i, m := range e.Members {
		b.WriteString(inner)
		b.WriteString(m.Name)
		if m.Value != nil {
			b.WriteString(" = ")
			b.WriteString(p.printExpr(m.Value))
		}
		if i < len(e.Members)-1 {
			b.WriteString(",")
		}
		b.WriteString(p.opts.Newline)
	}
	fmt.Fprintf(b, "%s}%s", ind, p.opts.Newline)
}

func (p *Printer) printMember(b *strings.Builder, m MemberDecl, depth int) {
	ind := p.indent(depth)
	switch v := m.(type) {
	case *FieldDecl:
		mods := "public "
		if v.IsStatic {
			mods += "static "
		}
		fmt.Fprintf(b, "%s%s%s %s;%s", ind, mods, v.Type, v.Name, p.opts.Newline)
	case *MethodDecl:
		p.printMethod(b, v, depth)
	}
}

func (p *Printer) printMethod(b *strings.Builder, m *MethodDecl, depth int) {
	ind := p.indent(depth)
	mods := "public "
	if m.IsStatic {
		mods += "static "
	}
	if m.IsAbstract {
		mods += "abstract "
	}
	if m.IsAsync {
		mods += "async "
	}
	ret := m.ReturnType
	if m.IsGenerator {
		ret = "IEnumerable<" + ret + ">"
	}
	fmt.Fprintf(b, "%s%s%s %s%s(%s)", ind, mods, ret, m.Name, typeParamSuffix(m.TypeParams), p.printParams(m.Parameters))
	if m.Body == nil {
		b.WriteString(";")
		b.WriteString(p.opts.Newline)
		return
	}
	b.WriteString(p.opts.Newline)
	p.printBlock(b, m.Body, depth)
}

func (p *Printer) printParams(params []ParamDecl) string {
	parts := make([]string, len(params))
	for i, pd := range params {
		if pd.Modifier != "" {
			parts[i] = pd.Modifier + " " + pd.Type + " " + pd.Name
		} else {
			parts[i] = pd.Type + " " + pd.Name
		}
	}
	return strings.Join(parts, ", ")
}

func (p *Printer) printBlock(b *strings.Builder, blk *Block, depth int) {
	ind := p.indent(depth)
	fmt.Fprintf(b, "%s{%s", ind, p.opts.Newline)
	for _, s := range blk.Statements {
		p.printStmt(b, s, depth+1)
	}
	fmt.Fprintf(b, "%s}%s", ind, p.opts.Newline)
}

func (p *Printer) printStmt(b *strings.Builder, s Stmt, depth int) {
	ind := p.indent(depth)
	switch v := s.(type) {
	case *Block:
		p.printBlock(b, v, depth)
	case *LocalDecl:
		typ := v.Type
		if typ == "" {
			typ = "var"
		}
		if v.Init != nil {
			fmt.Fprintf(b, "%s%s %s = %s;%s", ind, typ, v.Name, p.printExpr(v.Init), p.opts.Newline)
		} else {
			fmt.Fprintf(b, "%s%s %s;%s", ind, typ, v.Name, p.opts.Newline)
		}
	case *ExprStmt:
		fmt.Fprintf(b, "%s%s;%s", ind, p.printExpr(v.Expr), p.opts.Newline)
	case *If:
		fmt.Fprintf(b, "%sif (%s)%s", ind, p.printExpr(v.Cond), p.opts.Newline)
		p.printBodyAsBlock(b, v.Then, depth)
		if v.Else != nil {
			fmt.Fprintf(b, "%selse%s", ind, p.opts.Newline)
			p.printBodyAsBlock(b, v.Else, depth)
		}
	case *While:
		fmt.Fprintf(b, "%swhile (%s)%s", ind, p.printExpr(v.Cond), p.opts.Newline)
		p.printBodyAsBlock(b, v.Body, depth)
	case *For:
		fmt.Fprintf(b, "%sfor (%s; %s; %s)%s", ind, p.printForInit(v.Init), p.printExprOrEmpty(v.Cond), p.printExprOrEmpty(v.Update), p.opts.Newline)
		p.printBodyAsBlock(b, v.Body, depth)
	case *Foreach:
		fmt.Fprintf(b, "%sforeach (var %s in %s)%s", ind, v.Name, p.printExpr(v.Iterable), p.opts.Newline)
		p.printBodyAsBlock(b, v.Body, depth)
	case *Switch:
		p.printSwitch(b, v, depth)
	case *Try:
		p.printTry(b, v, depth)
	case *Return:
		if v.Expr != nil {
			fmt.Fprintf(b, "%sreturn %s;%s", ind, p.printExpr(v.Expr), p.opts.Newline)
		} else {
			fmt.Fprintf(b, "%sreturn;%s", ind, p.opts.Newline)
		}
	case *Throw:
		fmt.Fprintf(b, "%sthrow %s;%s", ind, p.printExpr(v.Expr), p.opts.Newline)
	case *Break:
		fmt.Fprintf(b, "%sbreak;%s", ind, p.opts.Newline)
	case *Continue:
		fmt.Fprintf(b, "%scontinue;%s", ind, p.opts.Newline)
	case *YieldReturn:
		fmt.Fprintf(b, "%syield return %s;%s", ind, p.printExpr(v.Expr), p.opts.Newline)
	case *YieldBreak:
		fmt.Fprintf(b, "%syield break;%s", ind, p.opts.Newline)
	case *LocalFunctionStmt:
		p.printMethod(b, v.Func, depth)
	}
}

func (p *Printer) printForInit(s Stmt) string {
	if s == nil {
		return ""
	}
	var b strings.Builder
	switch v := s.(type) {
	case *LocalDecl:
		typ := v.Type
		if typ == "" {
			typ = "var"
		}
		if v.Init != nil {
			fmt.Fprintf(&b, "%s %s = %s", typ, v.Name, p.printExpr(v.Init))
		} else {
			fmt.Fprintf(&b, "%s %s", typ, v.Name)
		}
	case *ExprStmt:
		b.WriteString(p.printExpr(v.Expr))
	}
	return b.String()
}

func (p *Printer) printExprOrEmpty(e Expr) string {
	if e == nil {
		return ""
	}
	return p.printExpr(e)
}

// printBodyAsBlock always wraps a single-statement body in braces; the
// emitter already produced a *Block for any multi-statement body (e.g.
// return-in-void lowering's two statements), so this keeps single-
// statement bodies visually consistent without re-deriving that logic.
func (p *Printer) printBodyAsBlock(b *strings.Builder, s Stmt, depth int) {
	if blk, ok := s.(*Block); ok {
		p.printBlock(b, blk, depth)
		return
	}
	wrapped := &Block{Statements: []Stmt{s}}
	p.printBlock(b, wrapped, depth)
}

func (p *Printer) printSwitch(b *strings.Builder, sw *Switch, depth int) {
	ind := p.indent(depth)
	fmt.Fprintf(b, "%sswitch (%s)%s", ind, p.printExpr(sw.Discriminant), p.opts.Newline)
	fmt.Fprintf(b, "%s{%s", ind, p.opts.Newline)
	caseInd := p.indent(depth + 1)
	for _, c := range sw.Cases {
		if c.Test != nil {
			fmt.Fprintf(b, "%scase %s:%s", caseInd, p.printExpr(c.Test), p.opts.Newline)
		} else {
			fmt.Fprintf(b, "%sdefault:%s", caseInd, p.opts.Newline)
		}
		for _, s := range c.Statements {
			p.printStmt(b, s, depth+2)
		}
	}
	fmt.Fprintf(b, "%s}%s", ind, p.opts.Newline)
}

func (p *Printer) printTry(b *strings.Builder, t *Try, depth int) {
	ind := p.indent(depth)
	fmt.Fprintf(b, "%stry%s", ind, p.opts.Newline)
	p.printBlock(b, t.Block, depth)
	if t.Catch != nil {
		if t.CatchType != "" {
			fmt.Fprintf(b, "%scatch (%s %s)%s", ind, t.CatchType, t.CatchName, p.opts.Newline)
		} else {
			fmt.Fprintf(b, "%scatch%s", ind, p.opts.Newline)
		}
		p.printBlock(b, t.Catch, depth)
	}
	if t.Finally != nil {
		fmt.Fprintf(b, "%sfinally%s", ind, p.opts.Newline)
		p.printBlock(b, t.Finally, depth)
	}
}

// printExpr renders e with enough parenthesization to be unambiguous.
// It is intentionally not precedence-climbing beyond what Binary's own
// Parenthesize flag (set by the emitter, §4.6) already records, plus
// printParenthesized, which wraps a Binary/Conditional/Assignment/cast
// operand of a cast, as-cast, prefix unary, await, .Value or truthiness
// switch; this trades a few redundant parens for never needing a full C#
// precedence table here. Operands of a Binary are printed bare.
func (p *Printer) printExpr(e Expr) string {
	switch v := e.(type) {
	case nil:
		return ""
	case *Raw:
		return v.Text
	case *Ident:
		return v.Name
	case *Literal:
		return v.Text
	case *MemberAccess:
		op := "."
		if v.Optional {
			op = "?."
		}
		return p.printExpr(v.Receiver) + op + v.Name
	case *IndexAccess:
		op := "["
		if v.Optional {
			op = "?["
		}
		return p.printExpr(v.Receiver) + op + p.printExpr(v.Index) + "]"
	case *Invocation:
		return p.printExpr(v.Callee) + typeParamSuffix(v.TypeArgs) + "(" + p.printArgs(v.Args) + ")"
	case *ObjectCreation:
		return "new " + v.Type + "(" + p.printArgs(v.Args) + ")"
	case *ArrayCreation:
		parts := make([]string, len(v.Elements))
		for i, el := range v.Elements {
			parts[i] = p.printExpr(el)
		}
		return "new[] { " + strings.Join(parts, ", ") + " }"
	case *AnonymousObject:
		parts := make([]string, len(v.Properties))
		for i, prop := range v.Properties {
			parts[i] = prop.Name + " = " + p.printExpr(prop.Value)
		}
		return "new { " + strings.Join(parts, ", ") + " }"
	case *Cast:
		return "(" + v.Type + ")" + p.printParenthesized(v.Expr)
	case *AsCast:
		return p.printParenthesized(v.Expr) + " as " + v.Type
	case *Unary:
		if v.Postfix {
			return p.printExpr(v.Operand) + v.Op
		}
		return v.Op + p.printParenthesized(v.Operand)
	case *Binary:
		s := p.printExpr(v.Left) + " " + v.Op + " " + p.printExpr(v.Right)
		if v.Parenthesize {
			return "(" + s + ")"
		}
		return s
	case *Conditional:
		return p.printExpr(v.Cond) + " ? " + p.printExpr(v.Then) + " : " + p.printExpr(v.Else)
	case *Assignment:
		return p.printExpr(v.Target) + " " + v.Op + " " + p.printExpr(v.Value)
	case *InterpolatedString:
		var s strings.Builder
		s.WriteString(`$"`)
		for i, q := range v.Quasis {
			s.WriteString(q)
			if i < len(v.Expressions) {
				s.WriteString("{")
				s.WriteString(p.printExpr(v.Expressions[i]))
				s.WriteString("}")
			}
		}
		s.WriteString(`"`)
		return s.String()
	case *Lambda:
		async := ""
		if v.IsAsync {
			async = "async "
		}
		params := "(" + strings.Join(v.Params, ", ") + ")"
		if v.ExprBody != nil {
			return async + params + " => " + p.printExpr(v.ExprBody)
		}
		var body strings.Builder
		p.printBlock(&body, v.BlockBody, 0)
		return async + params + " => " + strings.TrimRight(body.String(), p.opts.Newline)
	case *This:
		return "this"
	case *Discard:
		return "_"
	case *DefaultExpr:
		if v.Type == "" || v.Type == "void" {
			return "default"
		}
		return "default(" + v.Type + ")"
	case *Await:
		return "await " + p.printParenthesized(v.Expr)
	case *NullableValueAccess:
		return p.printParenthesized(v.Expr) + ".Value"
	case *InvokeImmediately:
		var body strings.Builder
		p.printBlock(&body, v.Body, 0)
		return "(new Func<" + v.ReturnType + ">(() => " + strings.TrimRight(body.String(), p.opts.Newline) + "))()"
	case *YieldExprValue:
		return "/* yield */ " + p.printExpr(v.Operand)
	case *StackAlloc:
		return "stackalloc " + v.ElementType + "[" + p.printExpr(v.Size) + "]"
	case *TruthySwitch:
		return "(" + p.printParenthesized(v.Operand) + " switch { " +
			"null => false, " +
			"bool __b => __b, " +
			"string __s => __s.Length != 0, " +
			"double __d => __d != 0 && !double.IsNaN(__d), " +
			"_ => true })"
	default:
		return ""
	}
}

// printParenthesized wraps e in parens when it is a node kind whose own
// precedence could otherwise bind looser than its parent expects (a
// binary/conditional/assignment/cast operand).
func (p *Printer) printParenthesized(e Expr) string {
	switch e.(type) {
	case *Binary, *Conditional, *Assignment, *Cast, *AsCast:
		return "(" + p.printExpr(e) + ")"
	default:
		return p.printExpr(e)
	}
}

func (p *Printer) printArgs(args []Arg) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a.Modifier != "" {
			parts[i] = a.Modifier + " " + p.printExpr(a.Expr)
		} else {
			parts[i] = p.printExpr(a.Expr)
		}
	}
	return strings.Join(parts, ", ")
}
