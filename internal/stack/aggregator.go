package stack

// aggregator collects accepted stacks in discovery order and tracks which
// scan positions they consumed.
type aggregator struct {
	entries  []Entry
	consumed []bool
	stacks   []Stack
}

func newAggregator(entries []Entry) *aggregator {
	return &aggregator{entries: entries, consumed: make([]bool, len(entries))}
}

func (a *aggregator) isConsumed(pos int) bool {
	return a.consumed[pos]
}

// accept records a stack whose members sit at the given scan positions.
func (a *aggregator) accept(s Stack, positions []int) {
	for _, pos := range positions {
		a.consumed[pos] = true
	}
	a.stacks = append(a.stacks, s)
}

func (a *aggregator) result() Result {
	res := Result{
		Stacks:    a.stacks,
		Unstacked: make([]string, 0, len(a.entries)),
	}
	if res.Stacks == nil {
		res.Stacks = []Stack{}
	}
	for pos, entry := range a.entries {
		if !a.consumed[pos] {
			res.Unstacked = append(res.Unstacked, entry.ID)
		}
	}
	return res
}
