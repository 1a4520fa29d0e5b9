package round

import (
	"fmt"

	"github.com/luxfi/threshold-bls/pkg/math/curve"
	"github.com/luxfi/threshold-bls/pkg/party"
	"github.com/luxfi/threshold-bls/pkg/pool"
)

// Info describes the fixed parameters of a protocol run: who is
// participating, in what role, over which curve, with what threshold. It is
// supplied once when a protocol is started and never changes over the
// lifetime of the session.
type Info struct {
	// SelfID is this party's own identifier.
	SelfID party.ID
	// PartyIDs lists every participant, including SelfID, in sorted
	// order.
	PartyIDs party.IDSlice
	// Threshold is t: reconstructing the secret or producing a signature
	// takes t+1 shares, so t+1 parties must cooperate.
	Threshold int
	// Group is the curve shares and commitments are computed over
	// (curve.G2 for DKG key material in this module).
	Group curve.Curve
}

// Helper bundles the per-session plumbing that every round needs: access to
// the session parameters, a worker pool for parallel verification, and the
// BroadcastMessage/SendMessage/ResultRound helpers rounds use to produce
// their output. Concrete round structs embed *Helper so they inherit these
// methods directly.
type Helper struct {
	info      Info
	sessionID []byte
	pool      *pool.Pool
}

// NewSession builds a Helper for a fresh protocol run. sessionID is stored
// as given and returned by SessionID; it is not hashed into the
// commitments or proof challenges of the keygen and signing rounds.
func NewSession(info Info, sessionID []byte, pl *pool.Pool) (*Helper, error) {
	if len(info.PartyIDs) < 2 {
		return nil, fmt.Errorf("round: need at least 2 parties, got %d", len(info.PartyIDs))
	}
	if info.Threshold < 1 || info.Threshold >= len(info.PartyIDs) {
		return nil, fmt.Errorf("round: threshold %d out of range for %d parties", info.Threshold, len(info.PartyIDs))
	}
	if !info.PartyIDs.Contains(info.SelfID) {
		return nil, fmt.Errorf("round: self ID %q not present in party list", info.SelfID)
	}
	if info.Group == nil {
		return nil, fmt.Errorf("round: missing group")
	}
	if pl == nil {
		pl = pool.NewPool(0)
	}
	ids := info.PartyIDs.Copy().Sort()
	return &Helper{
		info:      Info{SelfID: info.SelfID, PartyIDs: ids, Threshold: info.Threshold, Group: info.Group},
		sessionID: sessionID,
		pool:      pl,
	}, nil
}

// Group returns the curve this session computes over.
func (h *Helper) Group() curve.Curve { return h.info.Group }

// Threshold returns t.
func (h *Helper) Threshold() int { return h.info.Threshold }

// N returns the total number of parties.
func (h *Helper) N() int { return len(h.info.PartyIDs) }

// SelfID returns this party's own identifier.
func (h *Helper) SelfID() party.ID { return h.info.SelfID }

// PartyIDs returns every participant, in sorted order, including SelfID.
func (h *Helper) PartyIDs() party.IDSlice { return h.info.PartyIDs }

// OtherPartyIDs returns every participant except SelfID, in sorted order.
func (h *Helper) OtherPartyIDs() party.IDSlice {
	out := make(party.IDSlice, 0, len(h.info.PartyIDs)-1)
	for _, id := range h.info.PartyIDs {
		if id != h.info.SelfID {
			out = append(out, id)
		}
	}
	return out
}

// SessionID returns the unique identifier of this protocol run.
func (h *Helper) SessionID() []byte { return h.sessionID }

// Pool returns the worker pool available for parallel cryptographic work.
func (h *Helper) Pool() *pool.Pool { return h.pool }

// BroadcastMessage sends content to every other party.
func (h *Helper) BroadcastMessage(out chan<- *Message, content BroadcastContent) error {
	msg := &Message{
		From:        h.SelfID(),
		Broadcast:   true,
		RoundNumber: content.RoundNumber(),
		Content:     content,
	}
	if err := msg.Marshal(); err != nil {
		return err
	}
	out <- msg
	return nil
}

// SendMessage sends content to a single recipient.
func (h *Helper) SendMessage(out chan<- *Message, content Content, to party.ID) error {
	msg := &Message{
		From:        h.SelfID(),
		To:          to,
		RoundNumber: content.RoundNumber(),
		Content:     content,
	}
	if err := msg.Marshal(); err != nil {
		return err
	}
	out <- msg
	return nil
}

// ResultRound wraps a protocol's final output (a LocalKey, a Signature, ...)
// in a terminal Session, so that the driving Machine can distinguish "the
// protocol produced a result" from "there is another round to run".
func (h *Helper) ResultRound(result interface{}) Session {
	return &Result{Value: result}
}

// AbortRound wraps a protocol failure in a terminal Session carrying the
// culprits responsible, mirroring the "optimistic DKG" model in which any
// misbehavior aborts the whole run rather than attempting to route around
// it.
func (h *Helper) AbortRound(err error, culprits ...party.ID) Session {
	return &Abort{Err: err, Culprits: culprits}
}
