package pattern

import (
	"log/slog"
	"sync"

	"github.com/dlclark/regexp2"

	"mediastack/internal/logging"
)

// Engine is the regexp2-backed Matcher. It is safe for concurrent use.
type Engine struct {
	logger *slog.Logger

	mu       sync.RWMutex
	compiled map[string]*regexp2.Regexp
	failed   map[string]error
}

// NewEngine returns an Engine with an empty expression cache.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{
		logger:   logging.NewComponentLogger(logger, "pattern"),
		compiled: make(map[string]*regexp2.Regexp),
		failed:   make(map[string]error),
	}
}

// Compile returns the cached case-insensitive regexp for expression,
// compiling it on first use. Compile errors are cached as well.
func (e *Engine) Compile(expression string) (*regexp2.Regexp, error) {
	e.mu.RLock()
	re, ok := e.compiled[expression]
	err := e.failed[expression]
	e.mu.RUnlock()
	if ok {
		return re, nil
	}
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if re, ok := e.compiled[expression]; ok {
		return re, nil
	}
	if err, ok := e.failed[expression]; ok {
		return nil, err
	}
	re, err = regexp2.Compile(expression, regexp2.IgnoreCase)
	if err != nil {
		e.failed[expression] = err
		e.logger.Debug("naming expression does not compile; it will never match",
			logging.String(logging.FieldEventType, "expression_invalid"),
			logging.String(logging.FieldExpression, expression),
			logging.Error(err))
		return nil, err
	}
	e.compiled[expression] = re
	return re, nil
}

// Match evaluates expression against text from the rune offset and returns
// groups 1-4 as title, volume, ignore and extension. Groups the expression
// does not define, or that did not participate, read as empty at index 0.
func (e *Engine) Match(expression, text string, offset int) (Match, bool) {
	runes := []rune(text)
	if offset < 0 || offset > len(runes) {
		return Match{}, false
	}
	re, err := e.Compile(expression)
	if err != nil {
		return Match{}, false
	}
	m, err := re.FindRunesMatchStartingAt(runes, offset)
	if err != nil || m == nil {
		return Match{}, false
	}

	var out Match
	out.Title, out.TitleIndex = group(m, 1)
	out.Volume, out.VolumeIndex = group(m, 2)
	out.Ignore, out.IgnoreIndex = group(m, 3)
	out.Extension, out.ExtensionIndex = group(m, 4)
	return out, true
}

// NamedGroups evaluates expression against text and returns the values of
// the named groups that participated in the match.
func (e *Engine) NamedGroups(expression, text string, names ...string) (map[string]string, bool) {
	re, err := e.Compile(expression)
	if err != nil {
		return nil, false
	}
	m, err := re.FindStringMatch(text)
	if err != nil || m == nil {
		return nil, false
	}
	values := make(map[string]string, len(names))
	for _, name := range names {
		g := m.GroupByName(name)
		if g == nil || len(g.Captures) == 0 {
			continue
		}
		values[name] = g.String()
	}
	return values, true
}

func group(m *regexp2.Match, n int) (string, int) {
	g := m.GroupByNumber(n)
	if g == nil || len(g.Captures) == 0 {
		return "", 0
	}
	return g.String(), g.Index
}
