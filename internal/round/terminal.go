package round

import (
	"fmt"

	"github.com/luxfi/threshold-bls/pkg/party"
)

// terminalNumber is the sentinel round number reported by Result and Abort.
const terminalNumber Number = 0

// Result is the terminal Session produced once a protocol finishes
// successfully. Value holds the protocol's output (a *keygen.LocalKey, a
// tbls.Signature, ...); callers retrieve it through Machine.PickOutput
// rather than by type-asserting a Session directly.
type Result struct {
	Value interface{}
}

func (*Result) Number() Number                       { return terminalNumber }
func (*Result) IsExpensive() bool                    { return false }
func (*Result) Done() bool                           { return true }
func (*Result) BroadcastContent() BroadcastContent   { return nil }
func (*Result) MessageContent() Content              { return nil }
func (*Result) VerifyMessage(Message) error          { return nil }
func (*Result) StoreBroadcastMessage(Message) error  { return nil }
func (*Result) StoreMessage(Message) error           { return nil }
func (r *Result) Finalize(chan<- *Message) (Session, error) {
	return nil, fmt.Errorf("round: protocol already finished")
}

// Abort is the terminal Session produced when a round detects a protocol
// violation: a bad commitment, an invalid proof, a malformed share. DKG and
// signing here are optimistic: there is no attempt to recover or route
// around the culprits, only to name them so the caller can rerun the
// session without them.
type Abort struct {
	Err      error
	Culprits []party.ID
}

func (*Abort) Number() Number                           { return terminalNumber }
func (*Abort) IsExpensive() bool                        { return false }
func (*Abort) Done() bool                               { return true }
func (*Abort) BroadcastContent() BroadcastContent       { return nil }
func (*Abort) MessageContent() Content                  { return nil }
func (*Abort) VerifyMessage(Message) error              { return nil }
func (*Abort) StoreBroadcastMessage(Message) error      { return nil }
func (*Abort) StoreMessage(Message) error               { return nil }
func (a *Abort) Finalize(chan<- *Message) (Session, error) {
	return nil, fmt.Errorf("round: protocol aborted: %w (culprits: %v)", a.Err, a.Culprits)
}

// Error implements the error interface so an Abort can be returned directly
// wherever an error is expected.
func (a *Abort) Error() string {
	return fmt.Sprintf("round aborted: %v (culprits: %v)", a.Err, a.Culprits)
}
