// Package party defines the identifiers used to name participants of a
// threshold protocol run.
package party

import (
	"sort"

	"github.com/cronokirby/saferith"
	"github.com/luxfi/threshold-bls/pkg/math/curve"
)

// ID names a single participant. Parties are conventionally labelled with
// their 1-indexed position in the protocol (see the ID field of
// keygen.LocalKey), formatted as a decimal string, but any unique, comparable
// string works as an identifier for the purposes of this package.
type ID string

// Scalar interprets the ID as the evaluation point used for Feldman VSS and
// Lagrange interpolation. The convention throughout this module is that
// party indices are 1-based: the first party configured evaluates its
// polynomial share at x=1, never at x=0 (x=0 is reserved for the secret
// itself).
func (id ID) Scalar(group curve.Curve) curve.Scalar {
	idx := PartyIDToIndex(id)
	nat := new(saferith.Nat).SetUint64(uint64(idx))
	return group.NewScalar().SetNat(nat)
}

// IDSlice is a sortable collection of party IDs, used wherever a protocol
// needs a canonical, deterministic ordering of participants (Lagrange
// interpolation, aggregated signature verification, and message ordering
// during DKG all depend on this being consistent across every party).
type IDSlice []ID

func (p IDSlice) Len() int      { return len(p) }
func (p IDSlice) Swap(i, j int) { p[i], p[j] = p[j], p[i] }

// Less compares by numeric party index, not lexicographic string order, so
// that "2" sorts before "10". Every consumer that needs a deterministic,
// ascending order (aggregation, Lagrange interpolation, broadcast hashing)
// relies on this rather than raw string comparison.
func (p IDSlice) Less(i, j int) bool {
	return PartyIDToIndex(p[i]) < PartyIDToIndex(p[j])
}

// Sort orders the slice in place and returns it for chaining.
func (p IDSlice) Sort() IDSlice {
	sort.Sort(p)
	return p
}

// Contains reports whether id appears in the (sorted or unsorted) slice.
func (p IDSlice) Contains(id ID) bool {
	for _, other := range p {
		if other == id {
			return true
		}
	}
	return false
}

// Copy returns a new slice with the same elements.
func (p IDSlice) Copy() IDSlice {
	out := make(IDSlice, len(p))
	copy(out, p)
	return out
}
