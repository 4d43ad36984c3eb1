package scanner

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

const (
	gitignoreFile   = ".gitignore"
	infoExcludeFile = ".git/info/exclude"
)

// GlobalExcludes are pruned from every scan regardless of ignore files.
var GlobalExcludes = []string{".git", ".DS_Store"}

// overrides is the compiled form of the global and user exclude layers.
// Patterns are in increasing priority, user patterns last.
type overrides []gitignore.Pattern

// buildOverrides validates user patterns and compiles both override layers
// into one pattern list. User patterns are anchored at base, the scan root's
// position inside the work tree. Nothing touches the filesystem here.
func buildOverrides(user []string, base []string) (overrides, error) {
	out := make(overrides, 0, len(GlobalExcludes)+len(user))
	for _, p := range GlobalExcludes {
		out = append(out, gitignore.ParsePattern(p, nil))
	}
	for _, raw := range user {
		p, err := normalizeExclude(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, gitignore.ParsePattern(p, base))
	}
	return out, nil
}

// normalizeExclude checks a user exclude pattern and strips decoration the
// gitignore parser would misread.
func normalizeExclude(raw string) (string, error) {
	p := strings.TrimSpace(raw)
	if p == "" {
		return "", &ValidationError{Pattern: raw, Reason: "pattern is empty"}
	}
	if strings.HasPrefix(p, "!") {
		return "", &ValidationError{Pattern: raw, Reason: "negation is not supported in exclude patterns"}
	}
	if strings.HasPrefix(p, "#") {
		return "", &ValidationError{Pattern: raw, Reason: "pattern would be read as a comment"}
	}
	// "./src" and "src" name the same root-relative path
	p = strings.TrimPrefix(p, "./")
	core := strings.Trim(p, "/")
	if core == "" || core == "." || (core == "**" && strings.HasSuffix(p, "/")) {
		return "", &ValidationError{Pattern: raw, Reason: "pattern excludes the scan root"}
	}
	if !doublestar.ValidatePattern(strings.TrimSuffix(p, "/")) {
		return "", &ValidationError{Pattern: raw, Reason: "malformed glob"}
	}
	return p, nil
}

// ruleSet is the effective rule stack for one directory: the VCS patterns
// collected from the work-tree top down to that directory, topped by the
// overrides. Patterns are scoped to work-tree paths; base is the scan root's
// position below the top.
type ruleSet struct {
	base      []string
	vcs       []gitignore.Pattern
	overrides overrides
	matcher   gitignore.Matcher
}

func newRuleSet(base []string, vcs []gitignore.Pattern, ov overrides) *ruleSet {
	all := make([]gitignore.Pattern, 0, len(vcs)+len(ov))
	all = append(all, vcs...)
	all = append(all, ov...)
	return &ruleSet{base: base, vcs: vcs, overrides: ov, matcher: gitignore.NewMatcher(all)}
}

// child returns the rule set for a subdirectory whose own ignore file
// contributed extra. The parent is left untouched so siblings can share it.
func (r *ruleSet) child(extra []gitignore.Pattern) *ruleSet {
	if len(extra) == 0 {
		return r
	}
	vcs := make([]gitignore.Pattern, 0, len(r.vcs)+len(extra))
	vcs = append(vcs, r.vcs...)
	vcs = append(vcs, extra...)
	return newRuleSet(r.base, vcs, r.overrides)
}

// Excluded reports whether the root-relative path parts should be skipped.
func (r *ruleSet) Excluded(parts []string, isDir bool) bool {
	return r.matcher.Match(joinParts(r.base, parts), isDir)
}

func joinParts(base, parts []string) []string {
	if len(base) == 0 {
		return parts
	}
	out := make([]string, 0, len(base)+len(parts))
	out = append(out, base...)
	return append(out, parts...)
}

// ignoreReader loads VCS ignore files of the work tree enclosing the scan
// root. Without an enclosing work tree only files at or below the root count.
type ignoreReader struct {
	fs   billy.Filesystem
	base []string
}

func newIgnoreReader(root string) *ignoreReader {
	top, base := findWorkTree(root)
	return &ignoreReader{fs: osfs.New(top), base: base}
}

// findWorkTree walks up from root to the nearest directory holding a .git
// entry. It returns that directory and root's path components below it, or
// root itself and no components when there is none.
func findWorkTree(root string) (string, []string) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return root, nil
	}
	for dir := abs; ; {
		if _, err := os.Lstat(filepath.Join(dir, ".git")); err == nil {
			rel, err := filepath.Rel(dir, abs)
			if err != nil || rel == "." {
				return abs, nil
			}
			return dir, strings.Split(filepath.ToSlash(rel), "/")
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return root, nil
		}
		dir = parent
	}
}

// rootPatterns returns .git/info/exclude, then the .gitignore of every
// directory from the work-tree top down to and including the scan root.
func (r *ignoreReader) rootPatterns() ([]gitignore.Pattern, error) {
	ps, err := r.read(nil, infoExcludeFile, nil)
	if err != nil {
		return nil, err
	}
	for i := 0; i <= len(r.base); i++ {
		dir := r.base[:i]
		more, err := r.read(dir, gitignoreFile, dir)
		if err != nil {
			return ps, err
		}
		ps = append(ps, more...)
	}
	return ps, nil
}

// dirPatterns returns the patterns of the .gitignore inside the root-relative
// dir, scoped to it.
func (r *ignoreReader) dirPatterns(dir []string) ([]gitignore.Pattern, error) {
	full := joinParts(r.base, dir)
	return r.read(full, gitignoreFile, full)
}

func (r *ignoreReader) read(dir []string, name string, domain []string) ([]gitignore.Pattern, error) {
	elems := append(append([]string(nil), dir...), name)
	f, err := r.fs.Open(r.fs.Join(elems...))
	if err != nil {
		// ENOTDIR covers a .git file (worktrees, submodules) in place of a directory
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var ps []gitignore.Pattern
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		ps = append(ps, gitignore.ParsePattern(line, domain))
	}
	return ps, sc.Err()
}
