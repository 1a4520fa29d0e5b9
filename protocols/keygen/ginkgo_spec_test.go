package keygen_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/luxfi/threshold-bls/internal/round"
	"github.com/luxfi/threshold-bls/pkg/math/curve"
	"github.com/luxfi/threshold-bls/pkg/party"
	"github.com/luxfi/threshold-bls/pkg/pool"
	"github.com/luxfi/threshold-bls/pkg/tbls"
	"github.com/luxfi/threshold-bls/protocols/keygen"
	"github.com/luxfi/threshold-bls/protocols/sign"
)

// driveToCompletion is the Gomega-flavored counterpart of runMachines: specs
// have no *testing.T to hand a testify-based helper, so failures here are
// reported through Expect instead of require.
func driveToCompletion(machines map[party.ID]*round.Machine) map[party.ID]interface{} {
	for rounds := 0; rounds < 20; rounds++ {
		out := make(chan *round.Message, 256)
		progressed := false
		for _, m := range machines {
			if m.WantsToProceed() {
				Expect(m.Proceed(out, true)).To(Succeed())
				progressed = true
			}
		}
		close(out)

		var pending []*round.Message
		for msg := range out {
			pending = append(pending, msg)
		}
		for _, msg := range pending {
			for id, m := range machines {
				if msg.IsFor(id) {
					Expect(m.HandleIncoming(*msg)).To(Succeed())
				}
			}
		}
		if !progressed && len(pending) == 0 {
			break
		}
	}

	results := make(map[party.ID]interface{}, len(machines))
	for id, m := range machines {
		Expect(m.IsFinished()).To(BeTrue(), "party %s did not finish", id)
		out, err := m.PickOutput()
		Expect(err).NotTo(HaveOccurred())
		results[id] = out
	}
	return results
}

func runDKGSpec(n, threshold int) (party.IDSlice, map[party.ID]*keygen.LocalKey) {
	ids := party.NewIDSlice(n)
	pl := pool.NewPool(0)

	machines := make(map[party.ID]*round.Machine, n)
	for _, id := range ids {
		info := round.Info{SelfID: id, PartyIDs: ids, Threshold: threshold, Group: curve.G2()}
		start := keygen.Start(info, pl)
		first, err := start([]byte("ginkgo-dkg-session"))
		Expect(err).NotTo(HaveOccurred())
		machines[id] = round.NewMachine(id, ids.Copy(), 4, first)
	}

	results := driveToCompletion(machines)
	keys := make(map[party.ID]*keygen.LocalKey, n)
	for id, r := range results {
		lk, ok := r.(*keygen.LocalKey)
		Expect(ok).To(BeTrue())
		Expect(lk.Validate()).To(Succeed())
		keys[id] = lk
	}
	return ids, keys
}

func runSigningSpec(signers party.IDSlice, threshold int, keys map[party.ID]*keygen.LocalKey, message []byte) map[party.ID]tbls.Signature {
	pl := pool.NewPool(0)
	machines := make(map[party.ID]*round.Machine, len(signers))
	for _, id := range signers {
		lk := keys[id]
		info := round.Info{SelfID: id, PartyIDs: signers, Threshold: threshold, Group: curve.G2()}
		key := sign.Key{ID: lk.ID, VK: lk.VK, SKShare: lk.SKShare, VKVec: lk.VKVec}
		start := sign.Start(info, pl, key, message)
		first, err := start([]byte("ginkgo-sign-session"))
		Expect(err).NotTo(HaveOccurred())
		machines[id] = round.NewMachine(id, signers.Copy(), 2, first)
	}

	results := driveToCompletion(machines)
	sigs := make(map[party.ID]tbls.Signature, len(signers))
	for id, r := range results {
		sig, ok := r.(tbls.Signature)
		Expect(ok).To(BeTrue())
		sigs[id] = sig
	}
	return sigs
}

var _ = Describe("threshold BLS key generation and signing", func() {
	Describe("the five-round DKG", func() {
		It("produces a LocalKey every party agrees on", func() {
			ids, keys := runDKGSpec(5, 2)
			first := keys[ids[0]].VK
			for _, id := range ids {
				Expect(keys[id].VK.Equal(first)).To(BeTrue())
			}
		})

		It("rejects a round-1 commitment message tampered with before delivery", func() {
			ids := party.NewIDSlice(3)
			pl := pool.NewPool(0)

			machines := make(map[party.ID]*round.Machine, 3)
			for _, id := range ids {
				info := round.Info{SelfID: id, PartyIDs: ids, Threshold: 1, Group: curve.G2()}
				start := keygen.Start(info, pl)
				first, err := start([]byte("ginkgo-tamper-session"))
				Expect(err).NotTo(HaveOccurred())
				machines[id] = round.NewMachine(id, ids.Copy(), 4, first)
			}

			out := make(chan *round.Message, 16)
			for _, m := range machines {
				Expect(m.Proceed(out, true)).To(Succeed())
			}
			close(out)

			var delivered error
			for msg := range out {
				tampered := *msg
				tampered.Payload = append([]byte(nil), msg.Payload...)
				if len(tampered.Payload) > 0 {
					tampered.Payload[0] ^= 0xFF
				}
				for id, m := range machines {
					if tampered.IsFor(id) {
						if err := m.HandleIncoming(tampered); err != nil {
							delivered = err
						}
					}
				}
			}
			Expect(delivered).To(HaveOccurred())
		})
	})

	Describe("the two-round signing protocol", func() {
		It("reports exactly two rounds", func() {
			_, keys := runDKGSpec(4, 1)
			ids := party.NewIDSlice(4)
			lk := keys[ids[0]]
			info := round.Info{SelfID: ids[0], PartyIDs: ids, Threshold: 1, Group: curve.G2()}
			key := sign.Key{ID: lk.ID, VK: lk.VK, SKShare: lk.SKShare, VKVec: lk.VKVec}
			start := sign.Start(info, pool.NewPool(0), key, []byte("m"))
			first, err := start([]byte("s"))
			Expect(err).NotTo(HaveOccurred())
			m := round.NewMachine(ids[0], ids.Copy(), 2, first)
			Expect(m.TotalRounds()).To(Equal(round.Number(2)))
		})

		It("produces a bit-identical signature from two different t+1 subsets", func() {
			ids, keys := runDKGSpec(5, 2)
			message := []byte("ginkgo attack at dawn")

			subsetA := party.IDSlice{ids[0], ids[1], ids[2]}
			subsetB := party.IDSlice{ids[2], ids[3], ids[4]}

			sigsA := runSigningSpec(subsetA, 2, keys, message)
			sigsB := runSigningSpec(subsetB, 2, keys, message)

			vk := keys[ids[0]].VK

			var bytesA, bytesB []byte
			for _, sig := range sigsA {
				Expect(sig.Verify(vk, message)).To(BeTrue())
				b, err := sig.Sigma.MarshalBinary()
				Expect(err).NotTo(HaveOccurred())
				bytesA = b
				break
			}
			for _, sig := range sigsB {
				Expect(sig.Verify(vk, message)).To(BeTrue())
				b, err := sig.Sigma.MarshalBinary()
				Expect(err).NotTo(HaveOccurred())
				bytesB = b
				break
			}
			Expect(bytesA).To(Equal(bytesB))
		})
	})
})
