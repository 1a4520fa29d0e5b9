// Package protocol names the entry point every protocol in this module
// (key generation, signing) exposes to start a run.
package protocol

import "github.com/luxfi/threshold-bls/internal/round"

// StartFunc creates the first round of a protocol, initialized with a
// session identifier unique to this run. A non-nil error indicates a
// construction failure (bad parameters), not a protocol-level abort.
type StartFunc func(sessionID []byte) (round.Session, error)
