package aggbls

import (
	"fmt"

	"github.com/luxfi/threshold-bls/pkg/math/curve"
	"github.com/luxfi/threshold-bls/pkg/party"
)

// APK is an aggregated public key for a fixed set of signers, computed
// once and reused for every message that set of signers jointly signs.
type APK struct {
	Point       curve.Point
	coefficient map[party.ID]curve.Scalar
}

// Aggregate combines a set of ordinary BLS public keys into a single
// aggregate key, APK = sum_j (pk_j * a_j), where a_j = H(pk_j, pk_vec).
//
// This is the clean BDN18 form: there is no need to add a fixed generator
// before combining and subtract it afterward to mask a zero-knowledge
// leak, since nothing about this weighting scheme leaks the number of
// participating signers, their individual keys, or anything else the
// coefficients don't already make public by construction. aⱼ only ever
// depends on public information, so computing it directly introduces no
// weakness that an add-then-subtract trick would need to paper over.
func Aggregate(pks map[party.ID]curve.Point) (APK, error) {
	ids := make(party.IDSlice, 0, len(pks))
	for id := range pks {
		ids = append(ids, id)
	}
	ids = ids.Sort()

	pkVec := make([]curve.Point, len(ids))
	for i, id := range ids {
		pkVec[i] = pks[id]
	}

	apk := curve.G2().NewPoint()
	coefficients := make(map[party.ID]curve.Scalar, len(ids))
	for _, id := range ids {
		a, err := coefficient(pks[id], pkVec)
		if err != nil {
			return APK{}, err
		}
		coefficients[id] = a
		apk = apk.Add(a.Act(pks[id]))
	}

	return APK{Point: apk, coefficient: coefficients}, nil
}

// LocalSign produces signer id's plain BLS signature over message, to be
// combined later with CombineSignatures. It is identical to an ordinary
// BLS signature: the BDN18 weighting is applied at combination time, not
// at signing time.
func LocalSign(sk curve.Scalar, message []byte) curve.Point {
	hx := curve.G1().HashToPoint(message)
	return sk.Act(hx)
}

// SIG is an aggregated BLS signature verifiable against an APK.
type SIG struct {
	Sigma curve.Point
}

// CombineSignatures combines local signatures into a single aggregate
// signature weighted by the same BDN18 coefficients used to build apk, so
// that Verify's single pairing equation holds.
func CombineSignatures(apk APK, sigmas map[party.ID]curve.Point) (SIG, error) {
	agg := curve.G1().NewPoint()
	for id, sigma := range sigmas {
		a, ok := apk.coefficient[id]
		if !ok {
			return SIG{}, fmt.Errorf("aggbls: signature from %s not in aggregate key's signer set", id)
		}
		agg = agg.Add(a.Act(sigma))
	}
	return SIG{Sigma: agg}, nil
}

// Verify checks an aggregate signature over a single message against apk.
func (sig SIG) Verify(apk APK, message []byte) bool {
	hx := curve.G1().HashToPoint(message)
	lhs := curve.Pairing(sig.Sigma, curve.G2().NewBasePoint())
	rhs := curve.Pairing(hx, apk.Point)
	return lhs.Equal(rhs)
}

// Entry is one (message, signer set) pair checked by AggregateVerify.
type Entry struct {
	APK     APK
	Message []byte
}

// AggregateVerify checks a single aggregate signature that combines
// signatures over potentially distinct messages from potentially distinct
// signer sets, using the batch pairing equation
// e(sigma, g2) = prod_i e(H(m_i), apk_i).
//
// Per-entry messages must be pairwise distinct: an aggregate signature
// that reused the same message for two entries would let a pairing that
// should apply once be silently counted twice, so duplicate messages are
// rejected outright rather than silently accepted.
func AggregateVerify(sig SIG, entries []Entry) (bool, error) {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		key := string(e.Message)
		if _, dup := seen[key]; dup {
			return false, fmt.Errorf("aggbls: duplicate message in aggregate verification")
		}
		seen[key] = struct{}{}
	}

	lhs := curve.Pairing(sig.Sigma, curve.G2().NewBasePoint())

	rhs := curve.GTIdentity()
	for _, e := range entries {
		hx := curve.G1().HashToPoint(e.Message)
		rhs = rhs.Add(curve.Pairing(hx, e.APK.Point))
	}

	return lhs.Equal(rhs), nil
}
