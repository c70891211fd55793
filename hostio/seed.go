// Package hostio loads initial fact seeds for a microlog.Program from
// YAML, for hosts that would rather bootstrap tick-0 facts from a config
// file than write out Go literals. It is deliberately kept outside the
// core microlog package: bindings to an external format are a host
// concern, not part of the evaluator itself.
package hostio

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/maweki/microlog"
)

// RelationSeed names a relation and the ground tuples it should hold at
// tick 0.
type RelationSeed struct {
	Relation string  `yaml:"relation"`
	Tuples   [][]any `yaml:"tuples"`
}

// Document is the top-level shape of a fact-seed YAML file:
//
//	seeds:
//	  - relation: edge
//	    tuples:
//	      - ["a", "b"]
//	      - ["b", "c"]
type Document struct {
	Seeds []RelationSeed `yaml:"seeds"`
}

// Parse decodes a fact-seed document from r.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("hostio: decode fact seed: %w", err)
	}
	return &doc, nil
}

// ParseFile decodes a fact-seed document from a file path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("hostio: open fact seed: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Rules turns the document into START rules (microlog.Formula.AtStart),
// resolving each seed's relation name against relations the host
// already declared with microlog.MakeRelation. A seed naming a relation
// absent from relations is an error -- hostio has no way to invent a
// Relation the rest of the program could ever reference, since Relation
// identity is by name and the host owns every name in play.
func (d *Document) Rules(relations map[string]microlog.Relation) ([]microlog.Rule, error) {
	var rules []microlog.Rule
	for _, seed := range d.Seeds {
		rel, ok := relations[seed.Relation]
		if !ok {
			return nil, fmt.Errorf("hostio: fact seed names undeclared relation %q", seed.Relation)
		}
		for _, tuple := range seed.Tuples {
			args := make([]microlog.Arg, len(tuple))
			for i, v := range tuple {
				args[i] = v
			}
			rules = append(rules, microlog.NewRule(rel.Of(args...).AtStart()))
		}
	}
	return rules, nil
}
