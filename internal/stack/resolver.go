package stack

import (
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"mediastack/internal/classify"
	"mediastack/internal/config"
	"mediastack/internal/logging"
	"mediastack/internal/pattern"
)

// DefaultFolderPlaceholderExtension is appended to folder ids before matching
// when Options leaves it empty.
const DefaultFolderPlaceholderExtension = ".mkv"

// Options configures a Resolver.
type Options struct {
	// Expressions are tried in order for every anchor; the first one that
	// forms a stack wins.
	Expressions []string
	// Matcher evaluates expressions. Defaults to a pattern.Engine.
	Matcher pattern.Matcher
	// Classifier selects which files participate. Defaults to the stock
	// extension lists.
	Classifier                 classify.Classifier
	FolderPlaceholderExtension string
	Logger                     *slog.Logger
}

// Resolver groups entries into stacks.
type Resolver struct {
	expressions []string
	matcher     pattern.Matcher
	classifier  classify.Classifier
	placeholder string
	logger      *slog.Logger
}

// NewResolver builds a Resolver from opts.
func NewResolver(opts Options) *Resolver {
	logger := logging.NewComponentLogger(opts.Logger, "stack")
	r := &Resolver{
		expressions: slices.Clone(opts.Expressions),
		matcher:     opts.Matcher,
		classifier:  opts.Classifier,
		placeholder: opts.FolderPlaceholderExtension,
		logger:      logger,
	}
	if r.matcher == nil {
		r.matcher = pattern.NewEngine(opts.Logger)
	}
	if r.classifier == nil {
		r.classifier = classify.FromConfig(nil)
	}
	if r.placeholder == "" {
		r.placeholder = DefaultFolderPlaceholderExtension
	}
	return r
}

// NewResolverFromConfig builds a Resolver from the [naming] section.
func NewResolverFromConfig(cfg *config.Config, matcher pattern.Matcher, logger *slog.Logger) *Resolver {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	return NewResolver(Options{
		Expressions:                cfg.Naming.VideoFileStackingExpressions,
		Matcher:                    matcher,
		Classifier:                 classify.FromConfig(cfg),
		FolderPlaceholderExtension: cfg.Naming.FolderPlaceholderExtension,
		Logger:                     logger,
	})
}

// ResolveFiles resolves file paths.
func (r *Resolver) ResolveFiles(paths []string) Result {
	return r.Resolve(toEntries(paths, false))
}

// ResolveDirectories resolves folder paths.
func (r *Resolver) ResolveDirectories(paths []string) Result {
	return r.Resolve(toEntries(paths, true))
}

// Resolve filters, sorts and groups entries. Folders and files may be mixed;
// they never share a stack.
func (r *Resolver) Resolve(entries []Entry) Result {
	candidates := r.candidates(entries)

	sorted := make([]Entry, len(candidates))
	for i, c := range candidates {
		sorted[i] = c.Entry
	}
	agg := newAggregator(sorted)

	for i := range candidates {
		if agg.isConsumed(i) {
			continue
		}
		a := attempt{resolver: r, candidates: candidates, anchor: i}
		if s, positions, ok := a.run(); ok {
			r.logger.Debug("stack accepted",
				logging.String(logging.FieldEventType, "stack_accepted"),
				logging.String("name", s.Name),
				logging.String(logging.FieldExpression, s.Expression),
				logging.Bool("folder", s.IsFolderStack),
				logging.Int("files", len(s.Files)))
			agg.accept(s, positions)
		}
	}
	return agg.result()
}

// candidate is a filtered entry with its precomputed match input.
type candidate struct {
	Entry
	text   string
	length int
}

func (r *Resolver) candidates(entries []Entry) []candidate {
	out := make([]candidate, 0, len(entries))
	for _, e := range entries {
		if !e.IsFolder && !r.classifier.IsVideoFile(e.ID) && !r.classifier.IsStubFile(e.ID) {
			continue
		}
		text := matchInput(e, r.placeholder)
		out = append(out, candidate{Entry: e, text: text, length: utf8.RuneCountInString(text)})
	}
	slices.SortStableFunc(out, func(a, b candidate) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// match evaluates expression against c from offset. Offsets outside the
// filename never reach the matcher.
func (r *Resolver) match(c candidate, expression string, offset int) (pattern.Match, bool) {
	if offset < 0 || offset >= c.length {
		return pattern.Match{}, false
	}
	return r.matcher.Match(expression, c.text, offset)
}

// matchInput is the filename portion of the id. Folders get the placeholder
// extension so expressions that expect one still match.
func matchInput(e Entry, placeholder string) string {
	id := e.ID
	if e.IsFolder {
		id += placeholder
	}
	return fileName(id)
}

func fileName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

func toEntries(paths []string, folder bool) []Entry {
	entries := make([]Entry, len(paths))
	for i, p := range paths {
		entries[i] = Entry{ID: p, IsFolder: folder}
	}
	return entries
}
