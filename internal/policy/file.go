package policy

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is an optional YAML document with per-branch policy overrides:
//
//	branches:
//	  main:
//	    approving_review_count: 2
//	  develop:
//	    require_linear_history: false
//
// Unknown fields are rejected so a typo never silently applies the base
// policy unchanged.
type File struct {
	Branches map[string]Overrides `yaml:"branches"`
}

func LoadFile(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse policy file %s: %w", path, err)
	}
	return &f, nil
}

// Apply returns base with any overrides declared for branch applied.
func (f *File) Apply(branch string, base Policy) Policy {
	if f == nil {
		return base
	}
	o, ok := f.Branches[branch]
	if !ok {
		return base
	}
	return Derive(base, o)
}
