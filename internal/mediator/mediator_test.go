package mediator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/threshold-bls/internal/round"
	"github.com/luxfi/threshold-bls/pkg/party"
)

// TestRoomJoinAssignsSequentialIndices checks that each Join call within a
// room hands out the next 1-based party index, and that a different room ID
// starts its own independent sequence.
func TestRoomJoinAssignsSequentialIndices(t *testing.T) {
	srv := NewServer(nil)
	room := srv.room("room-a")
	require.Equal(t, 1, room.Join())
	require.Equal(t, 2, room.Join())
	require.Equal(t, 3, room.Join())

	other := srv.room("room-b")
	require.Equal(t, 1, other.Join())
}

// TestRoomSinceBlocksUntilAppend checks that Since does not return until a
// message lands at or after the requested offset, and then returns exactly
// the messages appended since that point.
func TestRoomSinceBlocksUntilAppend(t *testing.T) {
	room := newRoom()
	room.Append([]byte("first"))

	done := make(chan struct{})
	results := make(chan [][]byte, 1)
	go func() {
		results <- room.Since(1, done)
	}()

	select {
	case <-results:
		t.Fatal("Since returned before any message was appended at or after offset 1")
	case <-time.After(50 * time.Millisecond):
	}

	room.Append([]byte("second"))
	select {
	case msgs := <-results:
		require.Equal(t, [][]byte{[]byte("second")}, msgs)
	case <-time.After(time.Second):
		t.Fatal("Since did not wake up after Append")
	}
}

// TestRoomCloseReleasesWaiters checks that closing a room unblocks every
// pending Since call with a nil result instead of hanging forever.
func TestRoomCloseReleasesWaiters(t *testing.T) {
	room := newRoom()
	done := make(chan struct{})
	results := make(chan [][]byte, 1)
	go func() {
		results <- room.Since(0, done)
	}()

	select {
	case <-results:
		t.Fatal("Since returned before the room was closed")
	case <-time.After(50 * time.Millisecond):
	}

	room.Close()
	select {
	case msgs := <-results:
		require.Nil(t, msgs)
	case <-time.After(time.Second):
		t.Fatal("Since did not wake up after Close")
	}
}

// TestServerClientJoinSendPoll runs the full HTTP surface: two clients join
// the same room, one sends an encoded round.Message, and the other polls it
// back out, checking the envelope round-trips intact.
func TestServerClientJoinSendPoll(t *testing.T) {
	srv := NewServer(nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	// The final poll finds nothing new and only returns once the server's
	// long-poll window closes, so the deadline must outlast longPollTimeout.
	ctx, cancel := context.WithTimeout(context.Background(), longPollTimeout+5*time.Second)
	defer cancel()

	sender := NewClient(ts.URL, "lifecycle-room")
	receiver := NewClient(ts.URL, "lifecycle-room")

	senderIdx, err := sender.Join(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, senderIdx)

	receiverIdx, err := receiver.Join(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, receiverIdx)

	msg := round.Message{
		From:        party.ID("1"),
		To:          party.ID("2"),
		Broadcast:   false,
		RoundNumber: round.Number(1),
		Payload:     []byte("hello from party 1"),
	}
	payload, err := EncodeMessage(&msg)
	require.NoError(t, err)
	require.NoError(t, sender.Send(ctx, payload))

	msgs, next, err := receiver.Poll(ctx, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, 1, next)

	decoded, err := DecodeMessage(msgs[0])
	require.NoError(t, err)
	require.Equal(t, msg.From, decoded.From)
	require.Equal(t, msg.To, decoded.To)
	require.Equal(t, msg.Broadcast, decoded.Broadcast)
	require.Equal(t, msg.RoundNumber, decoded.RoundNumber)
	require.Equal(t, msg.Payload, decoded.Payload)

	emptyMsgs, sameNext, err := receiver.Poll(ctx, next)
	require.NoError(t, err)
	require.Empty(t, emptyMsgs)
	require.Equal(t, next, sameNext)
}

// TestServerMessagesRejectsBadMethod checks the relay's handler rejects
// methods other than GET/POST rather than silently routing them somewhere.
func TestServerMessagesRejectsBadMethod(t *testing.T) {
	srv := NewServer(nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/rooms/x/messages", nil)
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 405, resp.StatusCode)
}
