package stack

import (
	"mediastack/internal/logging"
	"mediastack/internal/pattern"
)

// attempt is the scan state for one anchor.
type attempt struct {
	resolver   *Resolver
	candidates []candidate
	anchor     int

	exprIndex   int
	offset      int
	anchorMatch pattern.Match
	next        int
	members     []int
}

// run drives the state machine and returns the accepted stack, if any, with
// the scan positions of its members.
func (a *attempt) run() (Stack, []int, bool) {
	st := stateTryAnchor
	for st != stateDone {
		st = a.step(st)
	}
	if len(a.members) < 2 {
		return Stack{}, nil, false
	}

	first := a.candidates[a.anchor]
	s := Stack{
		Name:          a.anchorMatch.Title + a.anchorMatch.Ignore,
		Expression:    a.expression(),
		IsFolderStack: first.IsFolder,
		Files:         make([]string, len(a.members)),
	}
	for i, pos := range a.members {
		s.Files[i] = a.candidates[pos].ID
	}
	return s, a.members, true
}

func (a *attempt) step(st state) state {
	switch st {
	case stateTryAnchor:
		return a.tryAnchor()
	case stateExtendGroup:
		return a.extendGroup()
	case stateRetryWithOffset:
		return a.retryWithOffset()
	case stateAbandonExpression:
		return a.abandonExpression()
	default:
		return stateDone
	}
}

func (a *attempt) expression() string {
	return a.resolver.expressions[a.exprIndex]
}

func (a *attempt) tryAnchor() state {
	if a.exprIndex >= len(a.resolver.expressions) {
		return stateDone
	}
	m, ok := a.resolver.match(a.candidates[a.anchor], a.expression(), a.offset)
	if !ok {
		return stateAbandonExpression
	}
	a.anchorMatch = m
	a.next = a.anchor + 1
	a.members = nil
	return stateExtendGroup
}

func (a *attempt) extendGroup() state {
	anchor := a.candidates[a.anchor]
	for a.next < len(a.candidates) && a.candidates[a.next].IsFolder != anchor.IsFolder {
		a.next++
	}
	// Running off the end settles the anchor: later expressions are not tried.
	if a.next >= len(a.candidates) {
		return stateAcceptGroup
	}

	v := verdictNoMatch
	if m, ok := a.resolver.match(a.candidates[a.next], a.expression(), a.offset); ok {
		v = compare(a.anchorMatch.Fields, m.Fields)
	}

	next := transitions[v]
	if next == stateExtendGroup {
		if len(a.members) == 0 {
			a.members = append(a.members, a.anchor)
		}
		a.members = append(a.members, a.next)
		a.next++
	}
	return next
}

func (a *attempt) retryWithOffset() state {
	if len(a.members) >= 2 {
		return stateAcceptGroup
	}
	offset := a.anchorMatch.IgnoreIndex
	// An ignore field that does not move the offset forward would repeat
	// the same comparison forever.
	if offset <= a.offset {
		return stateAbandonExpression
	}
	a.resolver.logger.Debug("volume match was a false positive; retrying from ignore offset",
		logging.String(logging.FieldEventType, "stack_retry_offset"),
		logging.String(logging.FieldAnchor, a.candidates[a.anchor].ID),
		logging.String("candidate", a.candidates[a.next].ID),
		logging.String(logging.FieldExpression, a.expression()),
		logging.Int("offset", offset))
	a.offset = offset
	return stateTryAnchor
}

func (a *attempt) abandonExpression() state {
	if len(a.members) >= 2 {
		return stateAcceptGroup
	}
	a.members = nil
	a.offset = 0
	a.exprIndex++
	return stateTryAnchor
}
