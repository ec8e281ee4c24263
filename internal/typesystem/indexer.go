package typesystem

import "github.com/tsonic-lang/tsonic-core/internal/ir"

// IndexerResult is get_indexer_info's return value: the receiver's single
// unambiguous CLR indexer, substituted into the receiver's own type
// arguments.
type IndexerResult struct {
	KeyExternalType string
	ValueType       ir.Type
}

// GetIndexerInfo implements get_indexer_info(receiver) (§4.2.3): the first
// type up the inheritance chain that declares a unique indexer wins. A
// type with two or more indexers at the same level has no unambiguous
// indexer, so that level is skipped-as-absent rather than guessed.
func (s *System) GetIndexerInfo(receiver ir.Type) (IndexerResult, bool) {
	declID, typeArgs, ok := s.normalizeReceiver(receiver)
	if !ok {
		return IndexerResult{}, false
	}
	for _, id := range s.Nominal.GetInheritanceChain(declID) {
		rec, ok := s.Catalog.Lookup(id)
		if !ok || rec.Indexer == nil || rec.MultipleIndexers {
			continue
		}
		subst := s.instantiationSubst(declID, typeArgs, id)
		return IndexerResult{
			KeyExternalType: rec.Indexer.KeyExternalType,
			ValueType:       Substitute(rec.Indexer.ValueType, subst),
		}, true
	}
	return IndexerResult{}, false
}
