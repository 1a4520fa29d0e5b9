// Package mediator implements a minimal relay server and client standing in
// for a coordination channel between otherwise unconnected parties: each
// protocol run joins a "room" identified by an operator-chosen room ID, is
// handed a 1-based party index in join order, and exchanges round.Message
// traffic by posting to and long-polling an append-only log kept per room.
//
// This mirrors the join/room/message-log model of a gRPC bidirectional
// relay, adapted to a simple HTTP long-poll transport since nothing in the
// wider dependency surface available here brings in a streaming RPC
// framework; see DESIGN.md for that call.
package mediator

import (
	"sync"
)

// Room holds the messages exchanged by one protocol run. Parties read from
// the log starting at whatever offset they last saw, so a Room does not
// need to know how many parties are subscribed or track per-party cursors
// itself.
type Room struct {
	mu       sync.Mutex
	cond     *sync.Cond
	messages [][]byte
	joined   int
	closed   bool
}

func newRoom() *Room {
	r := &Room{}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// Join assigns the next 1-based party index to a newly connecting client.
func (r *Room) Join() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.joined++
	return r.joined
}

// Append adds a message to the room's log and wakes any long-polling
// readers waiting on new messages.
func (r *Room) Append(payload []byte) {
	r.mu.Lock()
	r.messages = append(r.messages, payload)
	r.cond.Broadcast()
	r.mu.Unlock()
}

// Since returns every message appended at or after index from, blocking
// until at least one is available, the room is closed, or done fires. A
// single watcher goroutine translates done into a cond.Broadcast so the
// wait loop below never needs to spawn one per iteration.
func (r *Room) Since(from int, done <-chan struct{}) [][]byte {
	stopWatch := make(chan struct{})
	defer close(stopWatch)
	go func() {
		select {
		case <-done:
			r.mu.Lock()
			r.cond.Broadcast()
			r.mu.Unlock()
		case <-stopWatch:
		}
	}()

	r.mu.Lock()
	defer r.mu.Unlock()
	for from >= len(r.messages) && !r.closed {
		select {
		case <-done:
			return nil
		default:
		}
		r.cond.Wait()
	}
	if from >= len(r.messages) {
		return nil
	}
	out := make([][]byte, len(r.messages)-from)
	copy(out, r.messages[from:])
	return out
}

// Close releases every Since call currently blocked on this room.
func (r *Room) Close() {
	r.mu.Lock()
	r.closed = true
	r.cond.Broadcast()
	r.mu.Unlock()
}
