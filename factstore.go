package microlog

import (
	"fmt"
	"strings"
)

// Fact is a ground tuple over a symbol: no Variables, no Wildcards.
type Fact struct {
	Sym  Symbol
	Args []Value
}

func (f Fact) String() string {
	if len(f.Args) == 0 {
		return fmt.Sprintf("%s()", f.Sym)
	}
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = fmt.Sprintf("%v", a)
	}
	return fmt.Sprintf("%s(%s)", f.Sym, strings.Join(parts, ", "))
}

// key is the fact's identity tag: stable across equal facts, distinct
// across structurally different ones. It is deliberately string-based,
// the same way datalog.go's Literal.lID() tags clauses, so Fact can live
// in a map without requiring Value itself to be a valid map key shape
// (e.g. a []Value argument list never is).
func (f Fact) key() string {
	var b strings.Builder
	b.WriteString(symbolKey(f.Sym))
	for _, a := range f.Args {
		b.WriteByte('\x1f')
		fmt.Fprintf(&b, "%#v", a)
	}
	return b.String()
}

// factSet is a set of facts for one symbol, indexed by key for O(1)
// membership and dedup.
type factSet map[string]Fact

// FactStore holds a model: a per-symbol indexed table of facts. The
// per-symbol top-level map is the only index; it accelerates §4.6's
// positive match by avoiding a full scan across unrelated relations.
// There is no argument-position index on top of it.
type FactStore struct {
	bySymbol map[string]factSet
}

// NewFactStore returns an empty store.
func NewFactStore() *FactStore {
	return &FactStore{bySymbol: make(map[string]factSet)}
}

// Add inserts a fact, returning true if it was not already present.
func (s *FactStore) Add(f Fact) bool {
	k := symbolKey(f.Sym)
	set, ok := s.bySymbol[k]
	if !ok {
		set = make(factSet)
		s.bySymbol[k] = set
	}
	fk := f.key()
	if _, present := set[fk]; present {
		return false
	}
	set[fk] = f
	return true
}

// Has reports whether an identical fact is already in the store.
func (s *FactStore) Has(f Fact) bool {
	set, ok := s.bySymbol[symbolKey(f.Sym)]
	if !ok {
		return false
	}
	_, present := set[f.key()]
	return present
}

// ForSymbol returns every fact recorded for sym, in no particular order.
func (s *FactStore) ForSymbol(sym Symbol) []Fact {
	set, ok := s.bySymbol[symbolKey(sym)]
	if !ok {
		return nil
	}
	out := make([]Fact, 0, len(set))
	for _, f := range set {
		out = append(out, f)
	}
	return out
}

// All returns every fact in the store, in no particular order.
func (s *FactStore) All() []Fact {
	var out []Fact
	for _, set := range s.bySymbol {
		for _, f := range set {
			out = append(out, f)
		}
	}
	return out
}

// Len reports the total number of facts across all symbols.
func (s *FactStore) Len() int {
	n := 0
	for _, set := range s.bySymbol {
		n += len(set)
	}
	return n
}

// Clone returns a deep-enough copy for fixpoint iteration: a new store
// with the same facts, safe to mutate independently.
func (s *FactStore) Clone() *FactStore {
	out := NewFactStore()
	for k, set := range s.bySymbol {
		cp := make(factSet, len(set))
		for fk, f := range set {
			cp[fk] = f
		}
		out.bySymbol[k] = cp
	}
	return out
}
