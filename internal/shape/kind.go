package shape

import (
	"fmt"
	"strings"
)

// Kind identifies one of the fixed point-cloud motifs.
type Kind int

const (
	Sphere Kind = iota
	Cube
	Pyramid
	Flower
	DNA
	Spiral
	Shell
	Mobius
	Tree

	kindCount
)

var kindNames = [kindCount]string{
	Sphere:  "sphere",
	Cube:    "cube",
	Pyramid: "pyramid",
	Flower:  "flower",
	DNA:     "dna",
	Spiral:  "spiral",
	Shell:   "shell",
	Mobius:  "mobius",
	Tree:    "tree",
}

// All returns every kind in cycle order.
func All() []Kind {
	kinds := make([]Kind, kindCount)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("shape(%d)", int(k))
	}
	return kindNames[k]
}

// Next returns the following kind in cycle order, wrapping after Tree.
func (k Kind) Next() Kind {
	if !k.Valid() {
		return Sphere
	}
	return (k + 1) % kindCount
}

// Prev returns the preceding kind in cycle order, wrapping before Sphere.
func (k Kind) Prev() Kind {
	if !k.Valid() {
		return Sphere
	}
	return (k + kindCount - 1) % kindCount
}

// ParseKind accepts the lower-case kind names, case-insensitively.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return Sphere, fmt.Errorf("unknown shape %q", s)
}
