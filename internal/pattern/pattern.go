package pattern

// Fields holds the four values captured by a stacking expression.
type Fields struct {
	Title     string
	Volume    string
	Ignore    string
	Extension string
}

// Match is a successful evaluation: the captured fields plus the rune index
// where each field starts in the evaluated text.
type Match struct {
	Fields
	TitleIndex     int
	VolumeIndex    int
	IgnoreIndex    int
	ExtensionIndex int
}

// Matcher evaluates one expression against text, starting the search at the
// given rune offset.
type Matcher interface {
	Match(expression, text string, offset int) (Match, bool)
}

// MatcherFunc adapts a function to the Matcher interface.
type MatcherFunc func(expression, text string, offset int) (Match, bool)

// Match calls f.
func (f MatcherFunc) Match(expression, text string, offset int) (Match, bool) {
	return f(expression, text, offset)
}
