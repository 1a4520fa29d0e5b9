package keygen

import "errors"

var (
	// ErrTooFewParties is returned when n < 2 at construction.
	ErrTooFewParties = errors.New("keygen: too few parties")
	// ErrInvalidThreshold is returned when t is outside [1, n-1].
	ErrInvalidThreshold = errors.New("keygen: invalid threshold")
	// ErrBadCommitment is returned when a revealed decommitment does not
	// match its round-1 commitment.
	ErrBadCommitment = errors.New("keygen: commitment mismatch")
	// ErrInvalidShare is returned when a received VSS share or its
	// commitments fail to decode, carry the wrong number of commitments,
	// or when a sender's secret commitment does not match its round-2
	// published key share. A share that fails the Feldman check at round 3
	// Finalize is reported as tbls.ErrBadShare instead.
	ErrInvalidShare = errors.New("keygen: invalid VSS share")
	// ErrDLogProof is returned when a party's round-4 discrete log proof
	// fails to decode. A proof that decodes but fails to verify at round 4
	// Finalize is reported as tbls.ErrDLogProof instead.
	ErrDLogProof = errors.New("keygen: invalid discrete log proof")
)
