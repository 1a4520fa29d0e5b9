package round

// Content is the payload carried by a protocol message: either the
// broadcast content for a round, or the point-to-point content addressed to
// a single recipient. Every concrete content type declares which round it
// belongs to so the driver can reject stale or premature messages.
type Content interface {
	RoundNumber() Number
}

// BroadcastContent is Content that every party sends identically to every
// other party. This module's rounds are optimistic: a sender that
// equivocates (sends different broadcast content to different recipients)
// is not detected, since there is no echo/reliable-broadcast sub-protocol
// layered underneath -- only the content each recipient itself received is
// ever checked.
type BroadcastContent interface {
	Content
	// Broadcast is a marker method with no behavior: its only purpose is
	// to prevent a plain Content from satisfying BroadcastContent by
	// accident.
	Broadcast()
}

// NormalBroadcastContent is embedded by broadcast content structs to pick
// up a default Broadcast() marker implementation.
type NormalBroadcastContent struct{}

// Broadcast implements BroadcastContent.
func (NormalBroadcastContent) Broadcast() {}
