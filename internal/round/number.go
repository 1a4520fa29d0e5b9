package round

// Number identifies a round within a protocol run. Round numbers start at 0
// (the first round of keygen and of signing). The terminal Result and Abort
// sessions also report 0; Machine recognizes them by type, not by number.
type Number uint16
