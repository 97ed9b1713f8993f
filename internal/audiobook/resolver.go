package audiobook

import (
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"mediastack/internal/config"
	"mediastack/internal/logging"
	"mediastack/internal/pattern"
	"mediastack/internal/services"
)

const (
	groupChapter = "chapter"
	groupPart    = "part"
)

// FileInfo describes one audiobook file.
type FileInfo struct {
	Path          string `json:"path"`
	Container     string `json:"container"`
	PartNumber    *int   `json:"part_number,omitempty"`
	ChapterNumber *int   `json:"chapter_number,omitempty"`
	IsDirectory   bool   `json:"is_directory"`
}

// Resolver parses audiobook paths.
type Resolver struct {
	extensions  []string
	expressions []string
	engine      *pattern.Engine
	logger      *slog.Logger
}

// NewResolver builds a Resolver from the [naming] section. A nil cfg uses
// the defaults; a nil engine gets a private one.
func NewResolver(cfg *config.Config, engine *pattern.Engine, logger *slog.Logger) *Resolver {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	if engine == nil {
		engine = pattern.NewEngine(logger)
	}
	extensions := make([]string, 0, len(cfg.Naming.AudioFileExtensions))
	for _, ext := range cfg.Naming.AudioFileExtensions {
		extensions = append(extensions, strings.ToLower(ext))
	}
	return &Resolver{
		extensions:  extensions,
		expressions: slices.Clone(cfg.Naming.AudioBookPartsExpressions),
		engine:      engine,
		logger:      logging.NewComponentLogger(logger, "audiobook"),
	}
}

// ParseFile resolves path as a file.
func (r *Resolver) ParseFile(path string) (*FileInfo, error) {
	return r.Resolve(path, false)
}

// ParseDirectory resolves path as a directory. Directories carry no
// audiobook information, so the result is always nil for a valid path.
func (r *Resolver) ParseDirectory(path string) (*FileInfo, error) {
	return r.Resolve(path, true)
}

// Resolve returns nil without error when path is a directory or does not
// carry a known audio extension.
func (r *Resolver) Resolve(path string, isDirectory bool) (*FileInfo, error) {
	if strings.TrimSpace(path) == "" {
		return nil, services.Wrap(services.ErrInvalidArgument, "audiobook", "resolve", "path is empty", nil)
	}
	if isDirectory {
		return nil, nil
	}

	ext := filepath.Ext(baseName(path))
	if ext == "" || !slices.Contains(r.extensions, strings.ToLower(ext)) {
		return nil, nil
	}

	info := &FileInfo{
		Path:      path,
		Container: strings.TrimPrefix(ext, "."),
	}
	info.PartNumber, info.ChapterNumber = r.parse(path)
	return info, nil
}

func (r *Resolver) parse(path string) (part, chapter *int) {
	name := baseName(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	for _, expression := range r.expressions {
		if part != nil && chapter != nil {
			break
		}
		values, ok := r.engine.NamedGroups(expression, name, groupChapter, groupPart)
		if !ok {
			continue
		}
		if chapter == nil {
			chapter = parseNumber(values[groupChapter])
		}
		if part == nil {
			part = parseNumber(values[groupPart])
		}
	}
	r.logger.Debug("audiobook parsed",
		logging.String("path", path),
		logging.Bool("has_part", part != nil),
		logging.Bool("has_chapter", chapter != nil))
	return part, chapter
}

func parseNumber(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}

// baseName accepts both separators so paths from other platforms parse the
// same way.
func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
