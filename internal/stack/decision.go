package stack

import (
	"strings"

	"mediastack/internal/pattern"
)

// verdict is the outcome of comparing a candidate's fields with the anchor's.
type verdict int

const (
	verdictNoMatch verdict = iota
	verdictTitleMismatch
	verdictMember
	verdictSequel
	verdictFalsePositive
	verdictContentMismatch
)

func (v verdict) String() string {
	switch v {
	case verdictNoMatch:
		return "no_match"
	case verdictTitleMismatch:
		return "title_mismatch"
	case verdictMember:
		return "member"
	case verdictSequel:
		return "sequel"
	case verdictFalsePositive:
		return "false_positive"
	case verdictContentMismatch:
		return "content_mismatch"
	default:
		return "unknown"
	}
}

// transitions maps each verdict to the state the scan moves to next.
var transitions = [...]state{
	verdictNoMatch:         stateAbandonExpression,
	verdictTitleMismatch:   stateAbandonExpression,
	verdictMember:          stateExtendGroup,
	verdictSequel:          stateAbandonExpression,
	verdictFalsePositive:   stateRetryWithOffset,
	verdictContentMismatch: stateAbandonExpression,
}

// compare applies the field decision table. All comparisons ignore case.
//
//	title   volume  ignore  extension  verdict
//	differ  -       -       -          title mismatch
//	equal   differ  equal   equal      member
//	equal   differ  (either differs)   sequel
//	equal   equal   differ  -          false positive
//	equal   equal   equal   -          content mismatch
func compare(anchor, candidate pattern.Fields) verdict {
	if !strings.EqualFold(anchor.Title, candidate.Title) {
		return verdictTitleMismatch
	}
	if !strings.EqualFold(anchor.Volume, candidate.Volume) {
		if strings.EqualFold(anchor.Ignore, candidate.Ignore) &&
			strings.EqualFold(anchor.Extension, candidate.Extension) {
			return verdictMember
		}
		return verdictSequel
	}
	if !strings.EqualFold(anchor.Ignore, candidate.Ignore) {
		return verdictFalsePositive
	}
	return verdictContentMismatch
}
