package stack

// state names the steps of the per-anchor matching procedure.
type state int

const (
	// stateTryAnchor matches the current expression against the anchor at
	// the current offset.
	stateTryAnchor state = iota
	// stateExtendGroup compares the next same-kind entry with the anchor.
	stateExtendGroup
	// stateRetryWithOffset restarts the current expression from the
	// anchor's ignore-field offset after a false-positive volume match.
	stateRetryWithOffset
	// stateAbandonExpression moves on to the next expression with offset 0.
	stateAbandonExpression
	// stateAcceptGroup ends the attempt; the group is kept when it has at
	// least two members.
	stateAcceptGroup
	stateDone
)

func (s state) String() string {
	switch s {
	case stateTryAnchor:
		return "try_anchor"
	case stateExtendGroup:
		return "extend_group"
	case stateRetryWithOffset:
		return "retry_with_offset"
	case stateAbandonExpression:
		return "abandon_expression"
	case stateAcceptGroup:
		return "accept_group"
	case stateDone:
		return "done"
	default:
		return "unknown"
	}
}
