package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"mediastack/internal/logging"
	"mediastack/internal/services"
	"mediastack/internal/stack"
)

const maxConcurrentListings = 4

// Lister reads directories from an afero filesystem.
type Lister struct {
	fs            afero.Fs
	logger        *slog.Logger
	includeHidden bool
}

// Option customizes a Lister.
type Option func(*Lister)

// WithHidden includes dot-prefixed entries, which are skipped by default.
func WithHidden() Option {
	return func(l *Lister) { l.includeHidden = true }
}

// NewLister returns a Lister over fsys. A nil fsys uses the OS filesystem.
func NewLister(fsys afero.Fs, logger *slog.Logger, opts ...Option) *Lister {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	l := &Lister{
		fs:     fsys,
		logger: logging.NewComponentLogger(logger, "library"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// List returns the immediate children of dir as entries. Symlinks are
// followed to decide whether an entry is a folder; dangling links are
// skipped.
func (l *Lister) List(ctx context.Context, dir string) ([]stack.Entry, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, services.Wrap(services.ErrInvalidArgument, "library", "list", "directory is empty", nil)
	}
	info, err := l.fs.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "library", "list", dir, err)
		}
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrInvalidArgument, "library", "list", dir+" is not a directory", nil)
	}

	children, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	entries := make([]stack.Entry, 0, len(children))
	for _, child := range children {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := child.Name()
		if !l.includeHidden && strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)
		isDir := child.IsDir()
		if child.Mode()&fs.ModeSymlink != 0 {
			target, err := l.fs.Stat(path)
			if err != nil {
				l.logger.Debug("skipping unreadable link",
					logging.String("path", path),
					logging.Error(err))
				continue
			}
			isDir = target.IsDir()
		}
		entries = append(entries, stack.Entry{ID: path, IsFolder: isDir})
	}

	l.logger.Debug("directory listed",
		logging.String("dir", dir),
		logging.Int("entries", len(entries)))
	return entries, nil
}

// ListAll lists every directory concurrently and returns the results in the
// order of dirs. The first failure cancels the remaining listings.
func (l *Lister) ListAll(ctx context.Context, dirs []string) ([][]stack.Entry, error) {
	results := make([][]stack.Entry, len(dirs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentListings)
	for i, dir := range dirs {
		g.Go(func() error {
			entries, err := l.List(gctx, dir)
			if err != nil {
				return err
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
