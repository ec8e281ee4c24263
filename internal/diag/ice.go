package diag

import "fmt"

// ICE is an internal compiler error: a state the core considers
// unreachable (a proof-less narrowing reaching the emitter, a hole in
// argument conversion, `void await` outside an async context). ICEs are
// never recovered from; Panic is the only constructor and always panics
// (§7, category 3).
type ICE struct {
	Where   string
	Message string
	Pos     Position
}

func (e ICE) Error() string {
	return fmt.Sprintf("internal compiler error in %s at %s: %s", e.Where, e.Pos, e.Message)
}

// Panic raises an ICE. Callers should only reach this from a branch the
// preceding passes were supposed to have made impossible.
func Panic(where string, pos Position, format string, args ...any) {
	panic(ICE{Where: where, Pos: pos, Message: sprintf(format, args...)})
}
