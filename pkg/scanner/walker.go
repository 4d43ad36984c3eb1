package scanner

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/fulmenhq/techscan/pkg/logger"
)

// DiscoveredFile is a regular file found under the scan root.
type DiscoveredFile struct {
	Path      string
	Extension string
}

// NewDiscoveredFile derives the extension from the base name of path.
func NewDiscoveredFile(path string) DiscoveredFile {
	return DiscoveredFile{Path: path, Extension: ExtensionOf(filepath.Base(path))}
}

// ExtensionOf returns the lowercase suffix after the last dot of a file name.
// Dotfiles such as ".gitignore" and names ending in a dot have no extension.
func ExtensionOf(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// Options tunes a Walker. The zero value honours VCS ignore files and walks
// sequentially.
type Options struct {
	// Excludes are gitignore-style patterns relative to the root.
	Excludes []string
	// NoIgnore skips .gitignore and .git/info/exclude.
	NoIgnore bool
	// Workers above 1 walks top-level subdirectories concurrently.
	Workers int
}

// Walker enumerates the regular files below a root directory.
type Walker struct {
	root      string
	opts      Options
	overrides overrides
	ignore    *ignoreReader
}

// New checks that the root is a readable directory and compiles the exclude
// patterns. The filesystem below the root is not read until Files is ranged
// over.
func New(root string, opts Options) (*Walker, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &DirectoryNotFoundError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &DirectoryNotFoundError{Path: root}
	}
	if err := checkReadable(root); err != nil {
		return nil, &DirectoryNotFoundError{Path: root, Err: err}
	}

	ignore := newIgnoreReader(root)
	ov, err := buildOverrides(opts.Excludes, ignore.base)
	if err != nil {
		return nil, err
	}

	return &Walker{
		root:      root,
		opts:      opts,
		overrides: ov,
		ignore:    ignore,
	}, nil
}

func checkReadable(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Root returns the directory the walker was created for.
func (w *Walker) Root() string { return w.root }

// Files returns a lazy sequence of discovered files. Each range re-reads the
// filesystem. Cancelling ctx ends the sequence early.
func (w *Walker) Files(ctx context.Context) iter.Seq[DiscoveredFile] {
	return func(yield func(DiscoveredFile) bool) {
		rules := w.rootRules()
		if w.opts.Workers > 1 {
			w.walkParallel(ctx, rules, yield)
			return
		}
		w.walkDir(ctx, nil, rules, yield)
	}
}

func (w *Walker) rootRules() *ruleSet {
	if w.opts.NoIgnore {
		return newRuleSet(w.ignore.base, nil, w.overrides)
	}
	vcs, err := w.ignore.rootPatterns()
	if err != nil {
		logger.Warn("failed to read root ignore rules", logger.String("path", w.root), logger.Err(err))
	}
	return newRuleSet(w.ignore.base, vcs, w.overrides)
}

// walkDir visits the entries of the directory at rel in name order. It returns
// false once the consumer stopped or ctx was cancelled.
func (w *Walker) walkDir(ctx context.Context, rel []string, rules *ruleSet, emit func(DiscoveredFile) bool) bool {
	if ctx.Err() != nil {
		return false
	}

	dir := w.path(rel)
	entries, err := os.ReadDir(dir)
	if err != nil {
		// entries read before the failure are still visited
		logger.Warn("failed to read directory", logger.String("path", dir), logger.Err(err))
	}

	for _, entry := range entries {
		parts := make([]string, len(rel)+1)
		copy(parts, rel)
		parts[len(rel)] = entry.Name()
		if !w.visit(ctx, parts, entry, rules, emit) {
			return false
		}
	}
	return true
}

func (w *Walker) visit(ctx context.Context, parts []string, entry fs.DirEntry, rules *ruleSet, emit func(DiscoveredFile) bool) bool {
	mode := entry.Type()

	switch {
	case mode.IsDir():
		if rules.Excluded(parts, true) {
			logger.Trace("pruned directory", logger.String("path", w.path(parts)))
			return true
		}
		sub := rules
		if !w.opts.NoIgnore {
			extra, err := w.ignore.dirPatterns(parts)
			if err != nil {
				logger.Warn("failed to read ignore file", logger.String("path", w.path(parts)), logger.Err(err))
			}
			sub = rules.child(extra)
		}
		return w.walkDir(ctx, parts, sub, emit)

	case mode.IsRegular():
		if rules.Excluded(parts, false) {
			return true
		}
		return emit(NewDiscoveredFile(w.path(parts)))

	case mode&fs.ModeSymlink != 0:
		if rules.Excluded(parts, false) {
			return true
		}
		path := w.path(parts)
		target, err := os.Stat(path)
		if err != nil {
			logger.Warn("skipping unresolvable symlink", logger.String("path", path), logger.Err(err))
			return true
		}
		if !target.Mode().IsRegular() {
			logger.Trace("skipping symlink to non-regular file", logger.String("path", path))
			return true
		}
		return emit(NewDiscoveredFile(path))

	default:
		// sockets, devices, pipes
		return true
	}
}

// walkParallel fans the root's subdirectories out over an errgroup. Every
// top-level entry owns a slot; slots are flushed in directory order once all
// workers are done so the sequence matches the sequential walk.
func (w *Walker) walkParallel(ctx context.Context, rules *ruleSet, yield func(DiscoveredFile) bool) {
	entries, err := os.ReadDir(w.root)
	if err != nil {
		logger.Warn("failed to read directory", logger.String("path", w.root), logger.Err(err))
	}

	slots := make([][]DiscoveredFile, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.opts.Workers)

	for i, entry := range entries {
		collect := func(f DiscoveredFile) bool {
			slots[i] = append(slots[i], f)
			return true
		}
		parts := []string{entry.Name()}
		if !entry.IsDir() {
			w.visit(gctx, parts, entry, rules, collect)
			continue
		}
		g.Go(func() error {
			w.visit(gctx, parts, entry, rules, collect)
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		return
	}
	for _, slot := range slots {
		for _, f := range slot {
			if !yield(f) {
				return
			}
		}
	}
}

// path joins parts onto the root as the caller spelled it, so "./proj/"
// yields "./proj/a.go" rather than "proj/a.go".
func (w *Walker) path(parts []string) string {
	if len(parts) == 0 {
		return w.root
	}
	prefix := w.root
	if !os.IsPathSeparator(prefix[len(prefix)-1]) {
		prefix += string(filepath.Separator)
	}
	return prefix + filepath.Join(parts...)
}
