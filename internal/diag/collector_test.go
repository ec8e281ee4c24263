package diag

import "testing"

func TestCollectorHasErrors(t *testing.T) {
	tests := []struct {
		name string
		add  func(c *Collector)
		want bool
	}{
		{"empty", func(c *Collector) {}, false},
		{"warning only", func(c *Collector) {
			c.Warnf(CodeNamingCollision, Position{Line: 1}, "shadowed")
		}, false},
		{"one error", func(c *Collector) {
			c.Errorf(CodeAnyAtEmit, Position{Line: 2}, "any reached the emitter")
		}, true},
		{"warning then error", func(c *Collector) {
			c.Warnf(CodeNamingCollision, Position{Line: 1}, "shadowed")
			c.Errorf(CodeAnyAtEmit, Position{Line: 2}, "any reached the emitter")
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollector()
			tt.add(c)
			if got := c.HasErrors(); got != tt.want {
				t.Errorf("HasErrors() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCollectorMerge(t *testing.T) {
	a := NewCollector()
	a.Warnf(CodeNamingCollision, Position{Line: 1}, "a")
	b := NewCollector()
	b.Errorf(CodeAnyAtEmit, Position{Line: 2}, "b")

	a.Merge(b)
	if len(a.All()) != 2 {
		t.Fatalf("want 2 diagnostics after merge, got %d", len(a.All()))
	}
	if !a.HasErrors() {
		t.Fatalf("merged collector should have errors")
	}
}

func TestICEPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if _, ok := r.(ICE); !ok {
			t.Fatalf("expected ICE panic, got %T", r)
		}
	}()
	Panic("test", Position{Line: 1}, "unreachable: %d", 42)
}
