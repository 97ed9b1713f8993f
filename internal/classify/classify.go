// Package classify decides which file paths take part in stack resolution.
// Folders always participate; files only when their extension marks them as
// a playable video or a stub (a placeholder for offline media, e.g. ".disc").
package classify

import (
	"strings"

	"mediastack/internal/config"
)

// Classifier reports whether a file path is a playable video or a stub.
type Classifier interface {
	IsVideoFile(path string) bool
	IsStubFile(path string) bool
}

// Extensions classifies paths by a case-insensitive extension allow-list.
type Extensions struct {
	video map[string]struct{}
	stub  map[string]struct{}
}

// NewExtensions builds a classifier from video and stub extension lists.
// Extensions may be given with or without the leading dot.
func NewExtensions(video, stub []string) *Extensions {
	return &Extensions{video: extensionSet(video), stub: extensionSet(stub)}
}

// FromConfig builds the classifier configured under [naming].
func FromConfig(cfg *config.Config) *Extensions {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	return NewExtensions(cfg.Naming.VideoFileExtensions, cfg.Naming.StubFileExtensions)
}

func (e *Extensions) IsVideoFile(path string) bool {
	return contains(e.video, Extension(path))
}

func (e *Extensions) IsStubFile(path string) bool {
	return contains(e.stub, Extension(path))
}

// Extension returns the lowercased extension of the last path element,
// including the dot, or "" when there is none. Both '/' and '\' separate
// path elements.
func Extension(path string) string {
	name := path
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 || dot == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[dot:])
}

func extensionSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.ToLower(strings.TrimSpace(value))
		if value == "" {
			continue
		}
		if !strings.HasPrefix(value, ".") {
			value = "." + value
		}
		set[value] = struct{}{}
	}
	return set
}

func contains(set map[string]struct{}, ext string) bool {
	if ext == "" {
		return false
	}
	_, ok := set[ext]
	return ok
}
