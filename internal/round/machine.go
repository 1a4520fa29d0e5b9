package round

import (
	"errors"
	"fmt"
	"sync"

	"github.com/luxfi/threshold-bls/pkg/party"
)

// ErrDoublePickResult is returned by a second call to Machine.PickOutput:
// the output has already been moved out by the first call.
var ErrDoublePickResult = errors.New("round: output already picked")

// Machine drives a chain of Round implementations using a pull model: the
// caller decides when work happens by calling WantsToProceed, Proceed and
// HandleIncoming, rather than the Machine pushing work onto a goroutine or
// blocking on a channel. This makes it possible to embed a protocol session
// inside an event loop (a CLI, a test harness, a network handler) without
// dedicating a goroutine to it.
//
// Every Machine method that touches round state takes an internal mutex,
// so concurrent calls are serialized rather than racing; the rounds
// themselves are written in a single-threaded state-machine style and are
// meant to be driven by one goroutine at a time.
type Machine struct {
	mtx sync.Mutex

	self        party.ID
	others      party.IDSlice
	totalRounds Number

	current Session
	err     error

	// queued holds messages addressed to a round that is not yet active;
	// FIFO per round, they are replayed in HandleIncoming order once the
	// Machine reaches that round.
	queued []Message

	picked bool
}

// NewMachine builds a Machine around an already-constructed first round.
// totalRounds is stored as given and reported by TotalRounds; the Machine
// does not check it against the rounds it drives. The DKG machine is
// constructed with 4 (Round0->Round1->Round2->Round3->Round4, the 5 round
// states but 4 transitions between them) and the signing machine with 2
// (its two rounds, Round0 and Round1).
func NewMachine(self party.ID, others party.IDSlice, totalRounds Number, start Session) *Machine {
	return &Machine{
		self:        self,
		others:      others,
		totalRounds: totalRounds,
		current:     start,
	}
}

// CurrentRound reports the round number currently being driven.
func (m *Machine) CurrentRound() Number {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.current.Number()
}

// TotalRounds reports the totalRounds value the Machine was constructed
// with.
func (m *Machine) TotalRounds() Number {
	return m.totalRounds
}

// IsFinished reports whether the protocol has reached a terminal Result or
// Abort session.
func (m *Machine) IsFinished() bool {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.isTerminal()
}

func (m *Machine) isTerminal() bool {
	switch m.current.(type) {
	case *Result, *Abort:
		return true
	default:
		return false
	}
}

// WantsToProceed reports whether the current round has everything it needs
// to Finalize. Callers poll this after every HandleIncoming to know whether
// it is worth calling Proceed.
func (m *Machine) WantsToProceed() bool {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if m.isTerminal() {
		return false
	}
	return m.current.Done()
}

// Proceed attempts to finalize the current round and advance to the next
// one, emitting any outgoing messages onto out. If the round is not Done,
// Proceed is a no-op. If the round IsExpensive, Proceed only finalizes it
// when mayBlock is true -- callers running on a latency-sensitive path (a
// network read loop) should pass false and rely on a worker to call Proceed
// again with mayBlock=true once it is free to do the expensive work.
func (m *Machine) Proceed(out chan<- *Message, mayBlock bool) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.isTerminal() {
		return nil
	}
	if !m.current.Done() {
		return nil
	}
	if m.current.IsExpensive() && !mayBlock {
		return nil
	}

	next, err := m.current.Finalize(out)
	if err != nil {
		m.err = err
		m.current = &Abort{Err: err}
		return err
	}
	m.current = next

	return m.replayQueued(out)
}

// replayQueued re-delivers any message that arrived for a round before the
// Machine reached it. Must be called with mtx held.
func (m *Machine) replayQueued(out chan<- *Message) error {
	if len(m.queued) == 0 || m.isTerminal() {
		return nil
	}
	remaining := m.queued[:0]
	for _, msg := range m.queued {
		if msg.RoundNumber == m.current.Number() {
			if err := m.handleForCurrentRound(msg); err != nil {
				return err
			}
		} else {
			remaining = append(remaining, msg)
		}
	}
	m.queued = remaining
	return nil
}

// HandleIncoming routes a single incoming wire message to the round it
// belongs to. A message for a round behind the current one is a protocol
// violation (every party is expected to move through rounds in lockstep)
// and is reported as an error rather than silently dropped; a message for a
// round ahead of the current one is queued until the Machine catches up.
func (m *Machine) HandleIncoming(msg Message) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.isTerminal() {
		return nil
	}
	if !msg.IsFor(m.self) {
		return fmt.Errorf("round: received message not addressed to this party")
	}

	current := m.current.Number()
	switch {
	case msg.RoundNumber < current:
		return fmt.Errorf("round: received message for round %d, already at round %d", msg.RoundNumber, current)
	case msg.RoundNumber > current:
		m.queued = append(m.queued, msg)
		return nil
	default:
		return m.handleForCurrentRound(msg)
	}
}

// handleForCurrentRound decodes and verifies msg against the active round,
// then stores it. Must be called with mtx held.
func (m *Machine) handleForCurrentRound(msg Message) error {
	if msg.Broadcast {
		tmpl := m.current.BroadcastContent()
		if tmpl == nil {
			return fmt.Errorf("round: round %d does not expect broadcast messages", msg.RoundNumber)
		}
		content, err := UnmarshalContent(msg.Payload, tmpl)
		if err != nil {
			return err
		}
		msg.Content = content
		if err := m.current.VerifyMessage(msg); err != nil {
			return fmt.Errorf("round: verifying broadcast message from %s: %w", msg.From, err)
		}
		return m.current.StoreBroadcastMessage(msg)
	}

	tmpl := m.current.MessageContent()
	if tmpl == nil {
		return fmt.Errorf("round: round %d does not expect point-to-point messages", msg.RoundNumber)
	}
	content, err := UnmarshalContent(msg.Payload, tmpl)
	if err != nil {
		return err
	}
	msg.Content = content
	if err := m.current.VerifyMessage(msg); err != nil {
		return fmt.Errorf("round: verifying message from %s: %w", msg.From, err)
	}
	return m.current.StoreMessage(msg)
}

// PickOutput retrieves the protocol's result once IsFinished reports true.
// It is destructive: a second call returns ErrDoublePickResult, matching
// the once-only semantics of the underlying state machine this driver is
// modeled on.
func (m *Machine) PickOutput() (interface{}, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.picked {
		return nil, ErrDoublePickResult
	}
	switch s := m.current.(type) {
	case *Result:
		m.picked = true
		return s.Value, nil
	case *Abort:
		m.picked = true
		return nil, s
	default:
		return nil, nil
	}
}

// Err returns the error that aborted the protocol, if any.
func (m *Machine) Err() error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.err
}
