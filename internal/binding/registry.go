package binding

import "github.com/tsonic-lang/tsonic-core/internal/ir"

// Namespace is a local alias bound to an external namespace plus the
// ordered list of types it declares (§3.4).
type Namespace struct {
	LocalName string
	External  string
	Types     []string
}

// Type is a local alias bound to an external fully-qualified type (§3.4).
type Type struct {
	LocalAlias string
	External   string
	Kind       TypeKind
	Members    []string
}

// Member is one resolved external member binding, preserved alongside its
// sibling overloads rather than merged (§3.4 invariants).
type Member struct {
	LocalAlias        string
	ExternalMember    string
	Assembly          string
	ExternalType      string
	Modifiers         map[int]ir.ParamMode
	IsExtensionMethod bool
}

// extensionBucketPrefixes are the local-alias prefixes the call-resolution
// protocol recognizes as synthetic extension-method buckets (§4.1).
var extensionBucketPrefixes = []string{"__Ext_", "__TsonicExtMethods_"}

// IsExtensionBucket reports whether a declaring type's local alias names
// a synthetic extension-method bucket.
func IsExtensionBucket(typeAlias string) bool {
	for _, p := range extensionBucketPrefixes {
		if len(typeAlias) >= len(p) && typeAlias[:len(p)] == p {
			return true
		}
	}
	return false
}

// Registry is the Binding Registry (C2): built once from sidecar
// manifests, read-only for the rest of compilation (§3.4 "Lifetime").
type Registry struct {
	namespaces map[string]Namespace
	types      map[string]Type
	// members[typeAlias][memberAlias] preserves declaration order.
	members map[string]map[string][]Member
	// extByBucket[bucketName][memberAlias] holds extension methods bucketed
	// by their synthetic declaring-type tag.
	extByBucket map[string]map[string][]Member
	// extByReceiver[namespaceKey+"\x00"+receiverTypeName][memberAlias]
	// holds extension methods keyed by declared receiver type.
	extByReceiver map[string]map[string][]Member
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		namespaces:    make(map[string]Namespace),
		types:         make(map[string]Type),
		members:       make(map[string]map[string][]Member),
		extByBucket:   make(map[string]map[string][]Member),
		extByReceiver: make(map[string]map[string][]Member),
	}
}

// Load ingests a validated Manifest, preserving declaration order for
// types/members (§6.2 "Determinism requirement").
func Load(m Manifest) *Registry {
	r := New()
	for _, ns := range m.Namespaces {
		r.namespaces[ns.Name] = Namespace{LocalName: ns.Name, External: ns.Alias, Types: ns.Types}
	}
	for _, t := range m.Types {
		r.types[t.Name] = Type{LocalAlias: t.Name, External: t.Alias, Kind: t.Kind, Members: t.Members}
	}
	for _, me := range m.Members {
		member := Member{
			LocalAlias:        me.Name,
			ExternalMember:    me.Binding.Member,
			Assembly:          me.Binding.Assembly,
			ExternalType:      me.Binding.Type,
			IsExtensionMethod: me.IsExtensionMethod,
			Modifiers:         modifiersOf(me.ParameterModifiers),
		}
		r.registerMember(me, member)
	}
	return r
}

func modifiersOf(mods []ParamModifier) map[int]ir.ParamMode {
	if len(mods) == 0 {
		return nil
	}
	out := make(map[int]ir.ParamMode, len(mods))
	for _, mod := range mods {
		switch mod.Modifier {
		case "ref":
			out[mod.Index] = ir.ModeRef
		case "out":
			out[mod.Index] = ir.ModeOut
		case "in":
			out[mod.Index] = ir.ModeIn
		default:
			out[mod.Index] = ir.ModeValue
		}
	}
	return out
}

func (r *Registry) registerMember(me MemberEntry, member Member) {
	typeAlias := me.Binding.Type
	if r.members[typeAlias] == nil {
		r.members[typeAlias] = make(map[string][]Member)
	}
	r.members[typeAlias][me.Name] = append(r.members[typeAlias][me.Name], member)

	if !me.IsExtensionMethod {
		return
	}
	// Extension methods additionally live in two buckets: by a synthetic
	// bucket tag (typeAlias itself, when it already carries the
	// extension-bucket prefix) and by declared receiver type name, which
	// for a manifest-declared extension is the bound external type.
	if IsExtensionBucket(typeAlias) {
		if r.extByBucket[typeAlias] == nil {
			r.extByBucket[typeAlias] = make(map[string][]Member)
		}
		r.extByBucket[typeAlias][me.Name] = append(r.extByBucket[typeAlias][me.Name], member)
	}
	key := me.Binding.Assembly + "\x00" + me.Binding.Type
	if r.extByReceiver[key] == nil {
		r.extByReceiver[key] = make(map[string][]Member)
	}
	r.extByReceiver[key][me.Name] = append(r.extByReceiver[key][me.Name], member)
}

// GetNamespace implements get_namespace(local_name) (§4.1).
func (r *Registry) GetNamespace(localName string) (Namespace, bool) {
	ns, ok := r.namespaces[localName]
	return ns, ok
}

// GetType implements get_type(local_alias) (§4.1).
func (r *Registry) GetType(localAlias string) (Type, bool) {
	t, ok := r.types[localAlias]
	return t, ok
}

// GetMemberOverloads implements get_member_overloads(type_alias,
// member_alias) (§4.1). The returned slice may be empty but is never nil
// when at least one overload is registered; order matches declaration
// order.
func (r *Registry) GetMemberOverloads(typeAlias, memberAlias string) []Member {
	byMember, ok := r.members[typeAlias]
	if !ok {
		return nil
	}
	return byMember[memberAlias]
}

// argCountMatches accepts every argCount, negative (the "any" wildcard used
// by resolve_extension_method / resolve_extension_method_by_key, §4.1) or
// not. Manifest entries do not carry an explicit arity, so any registered
// overload is considered a candidate; disambiguation by arity happens in
// the type system's call resolution, which has the full signature.
func argCountMatches(argCount int) bool { return true }

// ResolveExtensionMethod implements resolve_extension_method(bucket_name,
// member_alias, argument_count|any) (§4.1). It returns a single binding;
// ambiguity among same-bucket overloads is the type system's job to
// disambiguate by signature, but a bucket lookup finding zero candidates
// is reported here as a miss.
func (r *Registry) ResolveExtensionMethod(bucketName, memberAlias string, argCount int) (Member, bool) {
	byMember, ok := r.extByBucket[bucketName]
	if !ok {
		return Member{}, false
	}
	candidates := byMember[memberAlias]
	if len(candidates) == 0 || !argCountMatches(argCount) {
		return Member{}, false
	}
	return shiftReceiverMode(candidates[0]), true
}

// ResolveExtensionMethodByKey implements
// resolve_extension_method_by_key(namespace_key, receiver_type_name,
// member_alias, argument_count|any) (§4.1).
func (r *Registry) ResolveExtensionMethodByKey(namespaceKey, receiverTypeName, memberAlias string, argCount int) (Member, bool) {
	key := namespaceKey + "\x00" + receiverTypeName
	byMember, ok := r.extByReceiver[key]
	if !ok {
		return Member{}, false
	}
	candidates := byMember[memberAlias]
	if len(candidates) == 0 || !argCountMatches(argCount) {
		return Member{}, false
	}
	return shiftReceiverMode(candidates[0]), true
}

// shiftReceiverMode removes the receiver slot from an extension method's
// parameter-modifier indices for instance-style call emission (§4.1,
// "Extension-method resolution").
func shiftReceiverMode(m Member) Member {
	if len(m.Modifiers) == 0 {
		return m
	}
	shifted := make(map[int]ir.ParamMode, len(m.Modifiers))
	for idx, mode := range m.Modifiers {
		if idx == 0 {
			continue // the receiver slot itself has no instance-call index
		}
		shifted[idx-1] = mode
	}
	m.Modifiers = shifted
	return m
}

// AgreeOnExternalTarget reports whether every overload in candidates
// shares the same external (assembly, type, member) triple — the overload
// collapse rule a member-access lookup must satisfy before attaching a
// single MemberBinding (§4.1, §8.1 "binding-resolution collapse").
func AgreeOnExternalTarget(candidates []Member) bool {
	if len(candidates) == 0 {
		return false
	}
	first := candidates[0]
	for _, c := range candidates[1:] {
		if c.Assembly != first.Assembly || c.ExternalType != first.ExternalType || c.ExternalMember != first.ExternalMember {
			return false
		}
	}
	return true
}

// CollapseModifiers returns the shared parameter-modifier map if every
// overload agrees, or nil if they disagree — modifiers are then left to
// call-time selection instead (§4.1).
func CollapseModifiers(candidates []Member) map[int]ir.ParamMode {
	if len(candidates) == 0 {
		return nil
	}
	first := candidates[0].Modifiers
	for _, c := range candidates[1:] {
		if !modifiersEqual(first, c.Modifiers) {
			return nil
		}
	}
	return first
}

func modifiersEqual(a, b map[int]ir.ParamMode) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

// ToIRBinding converts a single resolved Member into the lean
// ir.MemberBinding attached to an IR node.
func ToIRBinding(m Member) *ir.MemberBinding {
	return &ir.MemberBinding{
		Assembly:          m.Assembly,
		Type:              m.ExternalType,
		Member:            m.ExternalMember,
		IsExtensionMethod: m.IsExtensionMethod,
	}
}
