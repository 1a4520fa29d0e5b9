package tbls

import "errors"

var (
	// ErrMisMatchedVectors is returned when two per-party inputs that must
	// cover the same parties do not: a share with no matching commitments
	// in ConstructSharedKeys, or a partial signature with no matching
	// verification-key share in Combine.
	ErrMisMatchedVectors = errors.New("tbls: mismatched per-party input vectors")
	// ErrBadCommitment is returned when a revealed decommitment does not
	// match the commitment published earlier by the same party.
	ErrBadCommitment = errors.New("tbls: commitment does not match decommitment")
	// ErrDLogProof is returned when a party's proof of knowledge of its
	// share's discrete log fails to verify.
	ErrDLogProof = errors.New("tbls: invalid discrete log proof")
	// ErrBadShare is returned when a VSS share fails its Feldman check
	// against the sender's published polynomial commitments.
	ErrBadShare = errors.New("tbls: VSS share fails Feldman verification")
	// ErrBadPartialSig is returned when a partial signature's ECDDH proof
	// fails to verify against the signer's verification-key share.
	ErrBadPartialSig = errors.New("tbls: invalid partial signature proof")
	// ErrNotEnoughShares is returned when combine is given fewer partial
	// signatures than the signing threshold requires.
	ErrNotEnoughShares = errors.New("tbls: not enough partial signatures to combine")
)
