// Package mro computes C3 linearizations of declared type hierarchies.
//
// The algorithm is generic over the node type so callers can linearize
// anything with an ordered parent list. The linearization of a node is the
// node itself followed by the C3 merge of its parents' linearizations and
// the parent list, which preserves local precedence order and
// monotonicity.
package mro

import (
	"errors"
	"fmt"
)

// ErrInconsistent is reported when no ordering satisfies every parent
// list, for example when two parents disagree about their relative
// precedence.
var ErrInconsistent = errors.New("inconsistent hierarchy")

// ErrCyclic is reported when a node is reachable from itself through its
// parent lists.
var ErrCyclic = errors.New("cyclic hierarchy")

// Linearize returns the C3 linearization of t. The parents function
// supplies the ordered direct parents of a node; leaves return an empty
// list. The result starts with t and ends with the hierarchy's root when
// the hierarchy is consistent.
func Linearize[T comparable](t T, parents func(T) []T) ([]T, error) {
	return linearize(t, parents, make(map[T]bool))
}

func linearize[T comparable](t T, parents func(T) []T, visiting map[T]bool) ([]T, error) {
	if visiting[t] {
		return nil, fmt.Errorf("%w: %v inherits from itself", ErrCyclic, t)
	}
	visiting[t] = true
	defer delete(visiting, t)

	direct := parents(t)
	seqs := make([][]T, 0, len(direct)+1)
	for _, p := range direct {
		lin, err := linearize(p, parents, visiting)
		if err != nil {
			return nil, err
		}
		seqs = append(seqs, lin)
	}
	if len(direct) > 0 {
		seqs = append(seqs, append([]T(nil), direct...))
	}

	merged, err := merge(seqs)
	if err != nil {
		return nil, fmt.Errorf("linearizing %v: %w", t, err)
	}
	return append([]T{t}, merged...), nil
}

// merge implements the C3 merge: repeatedly take the head of the first
// sequence that does not appear in the tail of any other sequence.
func merge[T comparable](seqs [][]T) ([]T, error) {
	var out []T
	for {
		seqs = dropEmpty(seqs)
		if len(seqs) == 0 {
			return out, nil
		}

		next, ok := nextHead(seqs)
		if !ok {
			return nil, fmt.Errorf("%w: no valid head among %v", ErrInconsistent, heads(seqs))
		}
		out = append(out, next)
		for i, seq := range seqs {
			if len(seq) > 0 && seq[0] == next {
				seqs[i] = seq[1:]
			}
		}
	}
}

func nextHead[T comparable](seqs [][]T) (T, bool) {
	for _, seq := range seqs {
		head := seq[0]
		if !inAnyTail(seqs, head) {
			return head, true
		}
	}
	var zero T
	return zero, false
}

func inAnyTail[T comparable](seqs [][]T, v T) bool {
	for _, seq := range seqs {
		for _, u := range seq[1:] {
			if u == v {
				return true
			}
		}
	}
	return false
}

func dropEmpty[T comparable](seqs [][]T) [][]T {
	kept := seqs[:0]
	for _, seq := range seqs {
		if len(seq) > 0 {
			kept = append(kept, seq)
		}
	}
	return kept
}

func heads[T comparable](seqs [][]T) []T {
	out := make([]T, 0, len(seqs))
	for _, seq := range seqs {
		out = append(out, seq[0])
	}
	return out
}
