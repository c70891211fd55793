package microlog

import (
	"fmt"
	"sort"
)

// signedEdge is one entry of the relation dependency graph built in
// §4.5 step 3: H depends on B, positively (sign 0) or negatively
// (sign -1). A self-edge (H, 0, H) is added for every unstratified rule.
type signedEdge struct {
	from Relation
	sign int
	to   Relation
}

// buildDependencyGraph walks every unstratified rule's body, recording an
// edge for each Pos/Neg literal whose symbol is itself the head of some
// unstratified rule. A body literal referencing a relation that is never
// such a head -- a pure fact relation, or one fed exclusively by START/
// NEXT rules -- is not recorded at all: that relation is already fully
// settled before the stratified fixpoint begins, so testing or negating
// it can never force an ordering constraint. Without this filter the
// peeling loop below would reject as unstratifiable ordinary programs
// whose rules negate a NEXT-fed relation (that relation is never an edge
// source, so it is never emitted and the negative edge into it never
// dropped) (ConnectFour's new_marker negating
// the NEXT-only marker relation is exactly this shape).
func buildDependencyGraph(unstratified []Rule) ([]signedEdge, map[Relation]bool) {
	heads := make(map[Relation]bool, len(unstratified))
	for _, r := range unstratified {
		heads[r.Head.Lit.Formula.Sym.(Relation)] = true
	}
	var edges []signedEdge
	for _, r := range unstratified {
		head := r.Head.Lit.Formula.Sym.(Relation)
		edges = append(edges, signedEdge{from: head, sign: 0, to: head})
		if r.hasEmptyBody() {
			continue
		}
		for _, lit := range r.Body.Literals {
			var sign int
			switch lit.Kind {
			case Pos:
				sign = 0
			case Neg:
				sign = -1
			default:
				continue // Oracle*/Call* literals never reach a Relation head
			}
			rel, ok := lit.Formula.Sym.(Relation)
			if !ok || !heads[rel] {
				continue
			}
			edges = append(edges, signedEdge{from: head, sign: sign, to: rel})
		}
	}
	return edges, heads
}

// closeReachability computes, for every node in nodes, the worst-case
// (most negative) sign reachable to every other node over the given
// edges: -1 if any path carries a negative edge anywhere along it, else
// 0. This mirrors the fixpoint "reachable" relation pymicrolog's
// stratify example computes before peeling, and is needed for
// correctness: without it a relation whose own direct edges are all
// positive can be peeled before a relation it only transitively negates,
// which is unsound.
func closeReachability(edges []signedEdge, nodes []Relation) map[Relation]map[Relation]int {
	adj := make(map[Relation][]signedEdge)
	for _, e := range edges {
		adj[e.from] = append(adj[e.from], e)
	}
	out := make(map[Relation]map[Relation]int, len(nodes))
	for _, r := range nodes {
		reach := map[Relation]int{r: 0}
		for {
			changed := false
			for from, es := range adj {
				cur, ok := reach[from]
				if !ok {
					continue
				}
				for _, e := range es {
					sign := e.sign
					if cur < sign {
						sign = cur
					}
					if existing, ok := reach[e.to]; !ok || sign < existing {
						reach[e.to] = sign
						changed = true
					}
				}
			}
			if !changed {
				break
			}
		}
		out[r] = reach
	}
	return out
}

// stratify implements the Ceri/Gottlob/Tanca peeling algorithm of §4.5
// step 4: repeatedly take every relation that (transitively) reaches no
// relation through a negative edge, emit it as the next stratum, drop
// every edge touching an emitted relation, and repeat. It fails with
// ErrUnstratifiable the first round no relation can be emitted.
func stratify(edges []signedEdge) ([][]Relation, error) {
	var strata [][]Relation
	remaining := edges
	for len(remaining) > 0 {
		nodes := edgeSources(remaining)
		closure := closeReachability(remaining, nodes)
		var batch []Relation
		for _, n := range nodes {
			negative := false
			for _, sign := range closure[n] {
				if sign < 0 {
					negative = true
					break
				}
			}
			if !negative {
				batch = append(batch, n)
			}
		}
		if len(batch) == 0 {
			return nil, fmt.Errorf("%w: negation cycle among %v", ErrUnstratifiable, nodes)
		}
		sort.Slice(batch, func(i, j int) bool { return batch[i].Name < batch[j].Name })
		strata = append(strata, batch)

		inBatch := make(map[Relation]bool, len(batch))
		for _, n := range batch {
			inBatch[n] = true
		}
		var next []signedEdge
		for _, e := range remaining {
			if inBatch[e.from] || inBatch[e.to] {
				continue
			}
			next = append(next, e)
		}
		remaining = next
	}
	return strata, nil
}

func edgeSources(edges []signedEdge) []Relation {
	seen := make(map[Relation]bool)
	var out []Relation
	for _, e := range edges {
		if !seen[e.from] {
			seen[e.from] = true
			out = append(out, e.from)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
