// Package nominal implements the nominal environment (§4.2 "nominal_env"):
// the inheritance/extends graph of declared types, carrying the
// type-parameter substitution along each edge.
//
// Cycle protection follows §9's design note: every recursive traversal
// carries an ordered visited-set and returns none on re-entry rather than
// looping forever on a class hierarchy or recursive type alias.
package nominal

import "github.com/tsonic-lang/tsonic-core/internal/handle"

// Edge is one step in the inheritance graph: Derived extends/implements
// Base, instantiating Base's type parameters with Args.
type Edge struct {
	Base handle.DeclId
	Args []string // Base's type-parameter names, substituted per instantiation site
}

// Env is the nominal environment: a build-then-freeze graph keyed by
// DeclId (§5 "Mutability boundaries").
type Env struct {
	edges map[handle.DeclId][]Edge
	// typeParams[id] names the formal type parameters declared by id, in
	// declaration order — needed to build get_instantiation substitutions.
	typeParams map[handle.DeclId][]string
}

// New returns an empty Env.
func New() *Env {
	return &Env{edges: make(map[handle.DeclId][]Edge), typeParams: make(map[handle.DeclId][]string)}
}

// Declare registers a type's own formal type parameters. Call this once
// per type before adding edges.
func (e *Env) Declare(id handle.DeclId, typeParams []string) {
	e.typeParams[id] = typeParams
}

// AddEdge records that derived extends/implements base, applying base's
// type parameters as named by args (positional, matching base's own
// Declare order).
func (e *Env) AddEdge(derived handle.DeclId, base handle.DeclId, args []string) {
	e.edges[derived] = append(e.edges[derived], Edge{Base: base, Args: args})
}

// GetInheritanceChain returns the ordered chain from self to root,
// self included, depth-first over the first (class) edge at each level.
// Re-entry onto an id already in the chain halts traversal instead of
// looping (§9 cyclic graphs).
func (e *Env) GetInheritanceChain(id handle.DeclId) []handle.DeclId {
	visited := map[handle.DeclId]bool{}
	var chain []handle.DeclId
	cur := id
	for cur != 0 && !visited[cur] {
		visited[cur] = true
		chain = append(chain, cur)
		edges := e.edges[cur]
		if len(edges) == 0 {
			break
		}
		cur = edges[0].Base
	}
	return chain
}

// AllBases returns every direct base (classes and implemented interfaces)
// of id, in declaration order.
func (e *Env) AllBases(id handle.DeclId) []Edge {
	return e.edges[id]
}

// TypeParams returns the formal type-parameter names id declared via
// Declare, in declaration order.
func (e *Env) TypeParams(id handle.DeclId) []string {
	return e.typeParams[id]
}

// Substitution maps a formal type-parameter name to a concrete name. It is
// deliberately string-keyed here (type identity, not *ir.Type identity) so
// callers can compose it with the type system's substitute() over
// ir.TypeParameter nodes.
type Substitution map[string]string

// GetInstantiation computes the substitution from a subject's own type
// arguments to baseID's formal type parameters, walking the inheritance
// chain from subject to base. Returns (nil, false) if base is not an
// ancestor of subject, or if a cycle prevents reaching it (§4.2
// "nominal_env").
func (e *Env) GetInstantiation(subjectID handle.DeclId, subjectArgs []string, baseID handle.DeclId) (Substitution, bool) {
	if subjectID == baseID {
		return identitySubst(e.typeParams[subjectID]), true
	}

	visited := map[handle.DeclId]bool{subjectID: true}
	cur := subjectID
	curArgs := subjectArgs
	for {
		edges := e.edges[cur]
		if len(edges) == 0 {
			return nil, false
		}
		next := edges[0]
		if visited[next.Base] {
			return nil, false // cycle
		}
		subst := bind(e.typeParams[cur], curArgs)
		nextArgs := make([]string, len(next.Args))
		for i, a := range next.Args {
			if mapped, ok := subst[a]; ok {
				nextArgs[i] = mapped
			} else {
				nextArgs[i] = a
			}
		}
		if next.Base == baseID {
			return bind(e.typeParams[baseID], nextArgs), true
		}
		visited[next.Base] = true
		cur = next.Base
		curArgs = nextArgs
	}
}

func identitySubst(params []string) Substitution {
	s := make(Substitution, len(params))
	for _, p := range params {
		s[p] = p
	}
	return s
}

func bind(params []string, args []string) Substitution {
	s := make(Substitution, len(params))
	for i, p := range params {
		if i < len(args) {
			s[p] = args[i]
		} else {
			s[p] = p
		}
	}
	return s
}
