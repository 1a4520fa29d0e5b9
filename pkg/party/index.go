package party

import (
	"fmt"
	"strconv"
)

// PartyIDToIndex parses the 1-based numeric index encoded in id. IDs are
// minted by the mediator (see internal/mediator) or by test harnesses as the
// decimal representation of a party's position, matching the "Parties are
// 1-indexed in the range [1, n]" convention used throughout keygen, signing
// and aggregation.
func PartyIDToIndex(id ID) int {
	idx, err := strconv.Atoi(string(id))
	if err != nil {
		panic(fmt.Sprintf("party: ID %q is not a valid 1-based party index: %v", id, err))
	}
	if idx <= 0 {
		panic(fmt.Sprintf("party: ID %q must encode a positive index", id))
	}
	return idx
}

// IndexToPartyID is the inverse of PartyIDToIndex.
func IndexToPartyID(idx int) ID {
	if idx <= 0 {
		panic("party: index must be positive")
	}
	return ID(strconv.Itoa(idx))
}

// NewIDSlice builds the canonical, sorted set of party IDs {1, ..., n}.
func NewIDSlice(n int) IDSlice {
	ids := make(IDSlice, n)
	for i := 0; i < n; i++ {
		ids[i] = IndexToPartyID(i + 1)
	}
	return ids
}
