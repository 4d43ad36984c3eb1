package scanner

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files (with parent directories) below root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

// collect ranges over the walker and returns root-relative slash paths.
func collect(t *testing.T, w *Walker) []string {
	t.Helper()
	var out []string
	for f := range w.Files(context.Background()) {
		rel, err := filepath.Rel(w.Root(), f.Path)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func sorted(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}

func sampleTree(t *testing.T) string {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.rs":           "fn main() {}",
		"lib.rs":            "",
		"app.js":            "",
		"script.rb":         "",
		"tool.py":           "",
		"src/deep/mod.rs":   "",
		"src/deep/util.go":  "",
		"README":            "",
		"archive.tar.gz":    "",
		"web/index.html":    "",
		"web/styles/app.JS": "",
	})
	return root
}

func TestExtensionOf(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"main.rs", "rs"},
		{"App.TSX", "tsx"},
		{"archive.tar.gz", "gz"},
		{".gitignore", ""},
		{"Makefile", ""},
		{"file.", ""},
		{".env.local", "local"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtensionOf(tt.name), "ExtensionOf(%q)", tt.name)
	}
}

func TestNewDiscoveredFile(t *testing.T) {
	f := NewDiscoveredFile(filepath.Join("some.dir", "Component.Vue"))
	assert.Equal(t, "vue", f.Extension)

	f = NewDiscoveredFile(filepath.Join("pkg.d", "LICENSE"))
	assert.Empty(t, f.Extension)
}

func TestNew_DirectoryNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := New(missing, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDirectoryNotFound))
	assert.Contains(t, err.Error(), missing)

	var dnf *DirectoryNotFoundError
	require.True(t, errors.As(err, &dnf))
	assert.Equal(t, missing, dnf.Path)
}

func TestNew_RootIsFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "plain.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := New(file, Options{})
	assert.ErrorIs(t, err, ErrDirectoryNotFound)
}

func TestNew_UnreadableRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root bypasses directory permissions")
	}

	root := filepath.Join(t.TempDir(), "locked")
	writeTree(t, root, map[string]string{"main.go": ""})
	require.NoError(t, os.Chmod(root, 0o000))
	t.Cleanup(func() { _ = os.Chmod(root, 0o755) })

	_, err := New(root, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDirectoryNotFound)

	var dnf *DirectoryNotFoundError
	require.True(t, errors.As(err, &dnf))
	assert.ErrorIs(t, dnf.Err, fs.ErrPermission)
}

func TestNew_EmptyRootIsReadable(t *testing.T) {
	w, err := New(t.TempDir(), Options{})
	require.NoError(t, err)
	assert.Empty(t, collect(t, w))
}

func TestNew_InvalidExclude(t *testing.T) {
	root := t.TempDir()

	for _, pattern := range []string{"", "   ", "!keep.rs", "[abc", "#comment", "./", "/", "**/"} {
		t.Run(pattern, func(t *testing.T) {
			_, err := New(root, Options{Excludes: []string{"*.rs", pattern}})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, pattern, verr.Pattern)
			assert.Contains(t, err.Error(), "failed to add exclude pattern")
		})
	}
}

func TestFiles_NoExcludes(t *testing.T) {
	root := sampleTree(t)
	w, err := New(root, Options{})
	require.NoError(t, err)

	got := collect(t, w)
	assert.Equal(t, []string{
		"README",
		"app.js",
		"archive.tar.gz",
		"lib.rs",
		"main.rs",
		"script.rb",
		"src/deep/mod.rs",
		"src/deep/util.go",
		"tool.py",
		"web/index.html",
		"web/styles/app.JS",
	}, got)
}

func TestFiles_ExcludeSingleExtension(t *testing.T) {
	root := sampleTree(t)
	w, err := New(root, Options{Excludes: []string{"*.rs"}})
	require.NoError(t, err)

	got := collect(t, w)
	for _, p := range got {
		assert.NotEqual(t, "rs", ExtensionOf(filepath.Base(p)), "rust file %s not excluded", p)
	}
	assert.Contains(t, got, "app.js")
	assert.Contains(t, got, "src/deep/util.go")
	assert.Len(t, got, 8)
}

func TestFiles_ExcludeMultipleExtensions(t *testing.T) {
	root := sampleTree(t)
	w, err := New(root, Options{Excludes: []string{"*.rs", "*.js", "*.rb"}})
	require.NoError(t, err)

	got := collect(t, w)
	// gitignore matching is case-sensitive, so app.JS survives
	assert.Equal(t, []string{
		"README",
		"archive.tar.gz",
		"src/deep/util.go",
		"tool.py",
		"web/index.html",
		"web/styles/app.JS",
	}, got)
}

func TestFiles_AnchoredAndDirectoryExcludes(t *testing.T) {
	root := sampleTree(t)
	w, err := New(root, Options{Excludes: []string{"./web/", "src/deep/mod.rs"}})
	require.NoError(t, err)

	got := collect(t, w)
	assert.NotContains(t, got, "web/index.html")
	assert.NotContains(t, got, "web/styles/app.JS")
	assert.NotContains(t, got, "src/deep/mod.rs")
	assert.Contains(t, got, "src/deep/util.go")
	assert.Contains(t, got, "main.rs")
}

func TestFiles_GlobalExcludes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".git/HEAD":          "ref: refs/heads/main",
		".git/objects/ab/cd": "",
		".DS_Store":          "",
		"nested/.DS_Store":   "",
		".hidden/tool.sh":    "",
		".env":               "",
		"main.go":            "",
	})

	w, err := New(root, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{".env", ".hidden/tool.sh", "main.go"}, sorted(collect(t, w)))
}

func TestFiles_Gitignore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore":         "target/\n*.log\n!keep.log\n# comment\n\n",
		"target/debug/a.rs":  "",
		"main.rs":            "",
		"build.log":          "",
		"keep.log":           "",
		"sub/.gitignore":     "*.tmp\n",
		"sub/cache.tmp":      "",
		"sub/code.go":        "",
		"sub/deeper/x.tmp":   "",
		"other/scratch.tmp":  "",
		"other/trace.log":    "",
		".git/info/exclude":  "secret.txt\n",
		"secret.txt":         "",
		"sub/secret.txt":     "",
	})

	w, err := New(root, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		".gitignore",
		"keep.log",
		"main.rs",
		"other/scratch.tmp",
		"sub/.gitignore",
		"sub/code.go",
	}, sorted(collect(t, w)))
}

func TestFiles_ParentGitignoreInsideWorkTree(t *testing.T) {
	repo := t.TempDir()
	writeTree(t, repo, map[string]string{
		".git/HEAD":           "ref: refs/heads/main",
		".git/info/exclude":   "*.swp\n",
		".gitignore":          "*.log\n/sub/tmp/\n",
		"sub/app.go":          "",
		"sub/debug.log":       "",
		"sub/edit.swp":        "",
		"sub/tmp/scratch.go":  "",
		"sub/pkg/tmp/keep.go": "",
		"sub/pkg/trace.log":   "",
	})

	w, err := New(filepath.Join(repo, "sub"), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.go", "pkg/tmp/keep.go"}, sorted(collect(t, w)))

	w, err = New(filepath.Join(repo, "sub"), Options{NoIgnore: true})
	require.NoError(t, err)
	assert.Len(t, collect(t, w), 6)
}

func TestFiles_AnchoredExcludeBelowWorkTreeTop(t *testing.T) {
	repo := t.TempDir()
	writeTree(t, repo, map[string]string{
		".git/HEAD":        "",
		"sub/gen/a.go":     "",
		"sub/pkg/gen/b.go": "",
		"sub/main.go":      "",
	})

	w, err := New(filepath.Join(repo, "sub"), Options{Excludes: []string{"/gen"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go", "pkg/gen/b.go"}, sorted(collect(t, w)))
}

func TestFiles_ParentGitignoreOutsideWorkTree(t *testing.T) {
	outer := t.TempDir()
	writeTree(t, outer, map[string]string{
		".gitignore":    "*.log\n",
		"sub/app.go":    "",
		"sub/debug.log": "",
	})

	w, err := New(filepath.Join(outer, "sub"), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.go", "debug.log"}, sorted(collect(t, w)))
}

func TestFiles_KeepsRootSpelling(t *testing.T) {
	parent := t.TempDir()
	writeTree(t, parent, map[string]string{
		"proj/a.go":     "",
		"proj/pkg/b.go": "",
	})
	t.Chdir(parent)

	sep := string(filepath.Separator)
	for _, root := range []string{"./proj/", "./proj", "proj" + sep} {
		w, err := New(root, Options{})
		require.NoError(t, err)

		var got []string
		for f := range w.Files(context.Background()) {
			got = append(got, f.Path)
		}
		base := strings.TrimSuffix(root, sep)
		assert.Equal(t, []string{
			base + sep + "a.go",
			base + sep + filepath.Join("pkg", "b.go"),
		}, got, "root %q", root)
	}
}

func TestFiles_NoIgnore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore": "*.log\n",
		"build.log":  "",
		"main.go":    "",
		".git/HEAD":  "",
	})

	w, err := New(root, Options{NoIgnore: true})
	require.NoError(t, err)

	// global excludes still apply
	assert.Equal(t, []string{".gitignore", "build.log", "main.go"}, sorted(collect(t, w)))
}

func TestFiles_UserExcludeBeatsGitignoreNegation(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore": "*.rs\n!keep.rs\n",
		"keep.rs":    "",
		"drop.rs":    "",
		"main.go":    "",
	})

	w, err := New(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{".gitignore", "keep.rs", "main.go"}, sorted(collect(t, w)))

	w, err = New(root, Options{Excludes: []string{"*.rs"}})
	require.NoError(t, err)
	assert.Equal(t, []string{".gitignore", "main.go"}, sorted(collect(t, w)))
}

func TestFiles_GitFileInsteadOfDirectory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".git":       "gitdir: /elsewhere/.git/worktrees/x",
		".gitignore": "*.log\n",
		"a.log":      "",
		"main.go":    "",
	})

	w, err := New(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{".gitignore", "main.go"}, sorted(collect(t, w)))
}

func TestFiles_Symlinks(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"real/code.go": "",
		"target.py":    "",
	})

	links := map[string]string{
		"link.py":     filepath.Join(root, "target.py"),
		"linkdir":     filepath.Join(root, "real"),
		"dangling.rs": filepath.Join(root, "missing.rs"),
	}
	for name, target := range links {
		if err := os.Symlink(target, filepath.Join(root, name)); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}
	}

	w, err := New(root, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"link.py", "real/code.go", "target.py"}, sorted(collect(t, w)))
}

func TestFiles_ParallelMatchesSequential(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{".gitignore": "*.tmp\n", "top.go": ""}
	for _, dir := range []string{"a", "b", "c", "d", "e", "f"} {
		files[dir+"/one.rs"] = ""
		files[dir+"/two.ts"] = ""
		files[dir+"/skip.tmp"] = ""
		files[dir+"/nested/three.py"] = ""
	}
	writeTree(t, root, files)

	seq, err := New(root, Options{Excludes: []string{"*.py"}})
	require.NoError(t, err)
	par, err := New(root, Options{Excludes: []string{"*.py"}, Workers: 4})
	require.NoError(t, err)

	want := collect(t, seq)
	assert.Len(t, want, 14)
	for i := 0; i < 3; i++ {
		assert.Equal(t, want, collect(t, par))
	}
}

func TestFiles_StopsWhenConsumerBreaks(t *testing.T) {
	root := sampleTree(t)
	w, err := New(root, Options{})
	require.NoError(t, err)

	n := 0
	for range w.Files(context.Background()) {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestFiles_Cancelled(t *testing.T) {
	root := sampleTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		w, err := New(root, Options{Workers: workers})
		require.NoError(t, err)

		n := 0
		for range w.Files(ctx) {
			n++
		}
		assert.Zero(t, n, "workers=%d", workers)
	}
}

func TestFiles_Restartable(t *testing.T) {
	root := sampleTree(t)
	w, err := New(root, Options{})
	require.NoError(t, err)

	first := collect(t, w)
	writeTree(t, root, map[string]string{"late.kt": ""})
	second := collect(t, w)

	assert.Len(t, second, len(first)+1)
	assert.Contains(t, second, "late.kt")
}
