package round

import "errors"

// ErrInvalidContent is returned when a message's Content does not have the
// type a round's StoreBroadcastMessage/StoreMessage/VerifyMessage expected.
var ErrInvalidContent = errors.New("round: message content has unexpected type")

// Round is one step of a protocol. Concrete rounds are small, short-lived
// structs (see protocols/keygen and protocols/sign) that embed *Helper and
// accumulate incoming messages into their own fields until Done reports
// true, at which point the driving Machine calls Finalize to produce
// outgoing messages and the next Session.
type Round interface {
	// Number identifies this round.
	Number() Number

	// IsExpensive reports whether Finalize performs non-trivial
	// cryptographic work (proof generation/verification, multiple scalar
	// multiplications). The Machine uses this purely as a scheduling
	// hint: an expensive round only finalizes when the caller explicitly
	// allows blocking (see Machine.Proceed), even once every expected
	// message has arrived.
	IsExpensive() bool

	// Done reports whether this round has received every message it
	// requires (all expected broadcasts, or the point-to-point shares
	// addressed to this party) and is ready to Finalize. A round that
	// expects nothing (the very first round of a protocol) returns true
	// unconditionally.
	Done() bool

	// BroadcastContent returns an empty instance of the broadcast content
	// type this round expects, for unmarshalling incoming broadcast
	// messages, or nil if this round expects no broadcast messages.
	BroadcastContent() BroadcastContent

	// MessageContent is the point-to-point analog of BroadcastContent.
	MessageContent() Content

	// VerifyMessage checks a single incoming message (already decoded
	// into msg.Content) for validity -- signatures, proof checks, shape
	// checks -- without yet committing it to the round's state. It must
	// be safe to call before, or instead of, StoreMessage.
	VerifyMessage(msg Message) error

	// StoreBroadcastMessage records an already-verified broadcast
	// message.
	StoreBroadcastMessage(msg Message) error

	// StoreMessage records an already-verified point-to-point message.
	StoreMessage(msg Message) error

	// Finalize is called once Done reports true. It emits this round's
	// outgoing messages onto out and returns the Session for the next
	// round, or a terminal Result/Abort session if the protocol is
	// complete.
	Finalize(out chan<- *Message) (Session, error)
}

// Session is the externally visible handle to a Round in progress, or to a
// terminal Result/Abort. It is intentionally identical to Round: once a
// round has been superseded there is no remaining operation on it other
// than what Round already exposes (a terminal session simply answers Done
// with true and Finalize with an error).
type Session interface {
	Round
}
