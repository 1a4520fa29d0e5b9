package sign

import "errors"

var (
	// ErrTooManyParties is returned when the signer set is larger than the
	// party set the key was generated for.
	ErrTooManyParties = errors.New("sign: more signers than the key's party count")
	// ErrOutOfRangeIndex is returned when a signer's claimed keygen-time
	// index does not correspond to any entry in the key's vk_vec.
	ErrOutOfRangeIndex = errors.New("sign: signer claimed an out-of-range keygen index")
	// ErrBadPartialSig is returned when a received partial signature or
	// its ECDDH proof fails to decode. A proof that decodes but fails to
	// verify is reported by tbls.Combine as tbls.ErrBadPartialSig.
	ErrBadPartialSig = errors.New("sign: invalid partial signature")
)
