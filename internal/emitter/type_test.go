package emitter

import (
	"testing"

	"github.com/tsonic-lang/tsonic-core/internal/config"
	"github.com/tsonic-lang/tsonic-core/internal/ir"
)

func newEmitter() *Emitter { return New(config.NamingJSStyle) }

func TestRenderTypePrimitives(t *testing.T) {
	e := newEmitter()
	cases := []struct {
		t    ir.Type
		want string
	}{
		{ir.Primitive{Name: ir.Int}, "int"},
		{ir.Primitive{Name: ir.StringP}, "string"},
		{ir.Primitive{Name: ir.Boolean}, "bool"},
		{ir.Primitive{Name: ir.Double}, "double"},
		{ir.Void{}, "void"},
		{&ir.Array{Element: ir.Primitive{Name: ir.Int}}, "int[]"},
		{&ir.Dictionary{Key: ir.Primitive{Name: ir.StringP}, Value: ir.Primitive{Name: ir.Int}}, "Dictionary<string, int>"},
	}
	for _, c := range cases {
		if got := e.renderType(c.t); got != c.want {
			t.Errorf("renderType(%v) = %q, want %q", c.t, got, c.want)
		}
	}
}

func TestRenderTypeNullableUnion(t *testing.T) {
	e := newEmitter()
	u := &ir.Union{Members: []ir.Type{
		ir.Primitive{Name: ir.Int},
		ir.Primitive{Name: ir.Null},
		ir.Primitive{Name: ir.Undefined},
	}}
	if got, want := e.renderType(u), "int?"; got != want {
		t.Errorf("renderType(nullable int) = %q, want %q", got, want)
	}
}

func TestRenderTypeFunction(t *testing.T) {
	e := newEmitter()
	fn := &ir.Function{
		Parameters: []ir.Param{{Name: "x", Type: ir.Primitive{Name: ir.Int}}},
		ReturnType: ir.Void{},
	}
	if got, want := e.renderType(fn), "Action<int>"; got != want {
		t.Errorf("renderType(void func) = %q, want %q", got, want)
	}
	fn.ReturnType = ir.Primitive{Name: ir.StringP}
	if got, want := e.renderType(fn), "Func<int, string>"; got != want {
		t.Errorf("renderType(func) = %q, want %q", got, want)
	}
}

func TestIsNullableUnion(t *testing.T) {
	u := &ir.Union{Members: []ir.Type{ir.Primitive{Name: ir.Int}, ir.Primitive{Name: ir.Null}}}
	inner, ok := isNullableUnion(u)
	if !ok || inner.String() != "int" {
		t.Fatalf("isNullableUnion = %v, %v", inner, ok)
	}
	multi := &ir.Union{Members: []ir.Type{ir.Primitive{Name: ir.Int}, ir.Primitive{Name: ir.StringP}, ir.Primitive{Name: ir.Null}}}
	if _, ok := isNullableUnion(multi); ok {
		t.Fatalf("isNullableUnion should reject a union with two real members")
	}
}

func TestIsClrValueType(t *testing.T) {
	if !isClrValueType(ir.Primitive{Name: ir.Int}) {
		t.Error("int should be a CLR value type")
	}
	if isClrValueType(ir.Primitive{Name: ir.StringP}) {
		t.Error("string should not be a CLR value type")
	}
	if !isClrValueType(&ir.Reference{Name: "Int32", ResolvedExternal: "System.Int32"}) {
		t.Error("bound System.Int32 reference should be a CLR value type")
	}
}
