package pkgconfig

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/pkgflags/pkg/flag"
	"github.com/arc-language/pkgflags/pkg/version"
)

type recorder struct {
	debug  []string
	errors []string
}

func (r *recorder) Debugf(format string, args ...any) {
	r.debug = append(r.debug, fmt.Sprintf(format, args...))
}

func (r *recorder) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recorder) has(substr string) bool {
	for _, msg := range r.errors {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

// writePC writes a descriptor with the mandatory fields followed by body.
func writePC(t *testing.T, dir, key, ver, body string) string {
	t.Helper()
	content := fmt.Sprintf("Name: %s\nDescription: %s package\nVersion: %s\n%s\n", key, key, ver, body)
	path := filepath.Join(dir, key+".pc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestResolver(t *testing.T, env MapEnv, opts Options, dirs ...string) (*Resolver, *recorder) {
	t.Helper()
	rec := &recorder{}
	if env == nil {
		env = MapEnv{}
	}
	if _, ok := env["PKG_CONFIG_LIBDIR"]; !ok && len(dirs) > 0 {
		env["PKG_CONFIG_LIBDIR"] = strings.Join(dirs, string(os.PathListSeparator))
	}
	opts.Env = env
	opts.Reporter = rec

	r, err := New(opts)
	require.NoError(t, err)
	return r, rec
}

func keys(pkgs []*Package) []string {
	out := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, p.Key)
	}
	return out
}

func TestGetDiamond(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "a", "1.0", "Requires: b c")
	writePC(t, dir, "b", "1.0", "Requires: d")
	writePC(t, dir, "c", "1.0", "Requires: d")
	writePC(t, dir, "d", "1.0", "")

	r, _ := newTestResolver(t, nil, Options{}, dir)

	a, err := r.Get("a")
	require.NoError(t, err)
	assert.Equal(t, StateVerified, a.State)
	assert.Equal(t, []string{"b", "c"}, a.Links)
	assert.Equal(t, []string{"b", "c"}, a.PrivateLinks)

	closure := r.Registry().Closure([]*Package{a}, false)
	assert.Equal(t, []string{"a", "b", "c", "d"}, keys(closure))
}

func TestGetCycle(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "a", "1.0", "Requires: b")
	writePC(t, dir, "b", "1.0", "Requires: a")

	r, _ := newTestResolver(t, nil, Options{}, dir)

	a, err := r.Get("a")
	require.NoError(t, err)

	b, ok := r.Registry().Lookup("b")
	require.True(t, ok)
	assert.Equal(t, StateVerified, b.State)
	assert.Equal(t, []string{"a"}, b.Links)

	assert.Equal(t, []string{"a", "b"}, keys(r.Registry().Closure([]*Package{a}, true)))
}

func TestGetPrivateLinksIncludePublic(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "a", "1.0", "Requires: b\nRequires.private: c")
	writePC(t, dir, "b", "1.0", "")
	writePC(t, dir, "c", "1.0", "")

	r, _ := newTestResolver(t, nil, Options{}, dir)

	a, err := r.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, a.Links)
	assert.Equal(t, []string{"c", "b"}, a.PrivateLinks)
}

func TestGetVersionConstraint(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "p", "1.0", "Requires: q >= 2.0")
	writePC(t, dir, "q", "1.5", "URL: https://example.org/q")

	r, rec := newTestResolver(t, nil, Options{}, dir)

	_, err := r.Get("p")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVersionMismatch)
	assert.False(t, IsFatal(err))

	var ce *ConstraintError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "p", ce.Package)
	assert.Equal(t, "q", ce.Required)
	assert.Equal(t, version.OpGreaterEqual, ce.Entry.Comparator)
	assert.Equal(t, "2.0", ce.Entry.Version)
	assert.Equal(t, "1.5", ce.Actual)

	assert.True(t, rec.has("Package 'p' requires 'q >= 2.0' but version of q is 1.5"))
	assert.True(t, rec.has("You may find new versions of q at https://example.org/q"))

	_, ok := r.Registry().Lookup("p")
	assert.False(t, ok, "failed package is dropped")
}

func TestGetConflict(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "a", "1.0", "Requires: b\nConflicts: b < 2.0")
	writePC(t, dir, "b", "1.0", "")

	r, rec := newTestResolver(t, nil, Options{}, dir)

	_, err := r.Get("a")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.True(t, rec.has("Version 1.0 of b creates a conflict.\n(b < 2.0 conflicts with a 1.0)"))
}

func TestGetConflictIgnoresPrivate(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "a", "1.0", "Requires.private: b\nConflicts: b")
	writePC(t, dir, "b", "1.0", "")

	r, _ := newTestResolver(t, nil, Options{}, dir)

	_, err := r.Get("a")
	assert.NoError(t, err)
}

func TestGetMissingRequirementsAreAllReported(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "a", "1.0", "Requires: x, y")

	r, rec := newTestResolver(t, nil, Options{ShortErrors: true}, dir)

	_, err := r.Get("a")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsFatal(err))

	assert.True(t, rec.has("Package 'x', required by 'a', not found"))
	assert.True(t, rec.has("Package 'y', required by 'a', not found"))
	assert.False(t, rec.has("search path"), "short errors drop the hint")

	_, ok := r.Registry().Lookup("a")
	assert.False(t, ok)
}

func TestGetNotFoundHint(t *testing.T) {
	r, rec := newTestResolver(t, nil, Options{}, t.TempDir())

	_, err := r.Get("nope")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.True(t, rec.has("Package nope was not found in the pkg-config search path.\n"+
		"Perhaps you should add the directory containing `nope.pc'\n"+
		"to the PKG_CONFIG_PATH environment variable"))
}

func TestGetParseFailures(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.pc"),
		[]byte("Name: bad\nName: again\nDescription: d\nVersion: 1\n"), 0o644))
	writePC(t, dir, "top", "1.0", "Requires: bad, missing")

	t.Run("strict is fatal", func(t *testing.T) {
		r, _ := newTestResolver(t, nil, Options{}, dir)
		_, err := r.Get("top")
		require.Error(t, err)
		assert.True(t, IsFatal(err))
		assert.ErrorIs(t, err, ErrDuplicateField)
	})

	t.Run("lenient keeps the first value", func(t *testing.T) {
		r, _ := newTestResolver(t, nil, Options{Lenient: true}, dir)
		p, err := r.Get("bad")
		require.NoError(t, err)
		assert.Equal(t, "bad", p.Name)
	})
}

func TestGetMissingField(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nover.pc"),
		[]byte("Name: nover\nDescription: d\n"), 0o644))

	r, rec := newTestResolver(t, nil, Options{}, dir)

	_, err := r.Get("nover")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.True(t, rec.has("Package 'nover' has no Version: field"))
}

func TestGetUninstalledPreference(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "foo", "1.0", "")
	writePC(t, dir, "foo-uninstalled", "1.1", "")

	t.Run("preferred", func(t *testing.T) {
		r, _ := newTestResolver(t, nil, Options{}, dir)
		p, err := r.Get("foo")
		require.NoError(t, err)
		assert.Equal(t, "foo-uninstalled", p.Key)
		assert.True(t, p.Uninstalled)
	})

	t.Run("disabled", func(t *testing.T) {
		env := MapEnv{"PKG_CONFIG_DISABLE_UNINSTALLED": ""}
		r, _ := newTestResolver(t, env, Options{}, dir)
		p, err := r.Get("foo")
		require.NoError(t, err)
		assert.Equal(t, "foo", p.Key)
		assert.False(t, p.Uninstalled)
	})
}

func TestGetByPath(t *testing.T) {
	dir := t.TempDir()
	path := writePC(t, dir, "direct", "3.0", "")

	r, _ := newTestResolver(t, nil, Options{}, t.TempDir())

	p, err := r.Get(path)
	require.NoError(t, err)
	assert.Equal(t, "direct", p.Key)
	assert.Equal(t, 0, p.PathPosition)

	again, err := r.Get(path)
	require.NoError(t, err)
	assert.Same(t, p, again)
}

func TestStripSystemDirs(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "sys", "1.0", "Cflags: -I/usr/include -DSYS\nLibs: -L/usr/lib -lsys")

	t.Run("removed", func(t *testing.T) {
		r, _ := newTestResolver(t, nil, Options{}, dir)
		p, err := r.Get("sys")
		require.NoError(t, err)
		assert.Equal(t, []flag.Flag{{Category: flag.CompileOther, Arg: "-DSYS"}}, p.Cflags)
		assert.Equal(t, []flag.Flag{{Category: flag.LinkLib, Arg: "-lsys"}}, p.Libs)
	})

	t.Run("allowed", func(t *testing.T) {
		env := MapEnv{
			"PKG_CONFIG_ALLOW_SYSTEM_CFLAGS": "",
			"PKG_CONFIG_ALLOW_SYSTEM_LIBS":   "1",
		}
		r, _ := newTestResolver(t, env, Options{}, dir)
		p, err := r.Get("sys")
		require.NoError(t, err)
		assert.Len(t, p.Cflags, 2)
		assert.Len(t, p.Libs, 2)
	})
}

func TestDefineVariableTwice(t *testing.T) {
	r, rec := newTestResolver(t, nil, Options{}, t.TempDir())

	require.NoError(t, r.DefineVariable("prefix", "/a"))
	err := r.DefineVariable("prefix", "/b")
	assert.ErrorIs(t, err, ErrDuplicateGlobal)
	assert.True(t, rec.has("Variable 'prefix' defined twice globally"))
}

func TestConfigPackage(t *testing.T) {
	pcdir := t.TempDir()
	writePC(t, pcdir, "foo", "1.0", "prefix=/usr\nincludedir=${prefix}/include\nCflags: -I${includedir}")

	t.Run("on disk", func(t *testing.T) {
		cfgdir := t.TempDir()
		writePC(t, cfgdir, ConfigPackageName, CompatVersion,
			"pc_path="+pcdir+"\nfoo_prefix=/cfg")

		r, _ := newTestResolver(t, MapEnv{}, Options{PackageDir: cfgdir})
		assert.False(t, r.Config().Virtual)

		p, err := r.Get("foo")
		require.NoError(t, err)
		assert.Equal(t, []flag.Flag{{Category: flag.IncludePath, Arg: "-I/cfg/include"}}, p.Cflags)

		v, ok := r.Variable(p, "prefix")
		require.True(t, ok)
		assert.Equal(t, "/cfg", v)

		cfg, err := r.Get(ConfigPackageName)
		require.NoError(t, err)
		assert.Same(t, r.Config(), cfg)
	})

	t.Run("version mismatch falls back to virtual", func(t *testing.T) {
		cfgdir := t.TempDir()
		writePC(t, cfgdir, ConfigPackageName, "0.28", "pc_path="+pcdir)

		r, rec := newTestResolver(t, MapEnv{}, Options{PackageDir: cfgdir, DefaultPath: pcdir})
		assert.True(t, r.Config().Virtual)
		assert.Equal(t, CompatVersion, r.Config().Version)
		assert.True(t, rec.has("Package version ('0.28') does not match with pkg-config version ('0.29.2')"))

		_, err := r.Get("foo")
		assert.NoError(t, err, "built-in path still searched")
	})

	t.Run("missing pc_path", func(t *testing.T) {
		cfgdir := t.TempDir()
		writePC(t, cfgdir, ConfigPackageName, CompatVersion, "")

		r, rec := newTestResolver(t, MapEnv{}, Options{PackageDir: cfgdir, DefaultPath: pcdir})
		assert.True(t, rec.has("Package does not containt 'pc_path' variable."))
		assert.Equal(t, []string{pcdir}, r.Settings().Path.Dirs())
	})
}

func TestVariableOverridePrecedence(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "foo", "1.0", "prefix=/usr\nlibdir=${prefix}/lib\nquoted=\"a b\" 'c'")

	env := MapEnv{"PKG_CONFIG_FOO_PREFIX": "/env"}
	r, _ := newTestResolver(t, env, Options{}, dir)
	require.NoError(t, r.DefineVariable("libdir", "/global/lib"))

	p, err := r.Get("foo")
	require.NoError(t, err)
	assert.Equal(t, "/env/lib", p.Vars["libdir"], "environment beats the local prefix")

	v, ok := r.Variable(p, "libdir")
	require.True(t, ok)
	assert.Equal(t, "/global/lib", v, "globals beat everything")

	v, ok = r.Variable(p, "prefix")
	require.True(t, ok)
	assert.Equal(t, "/env", v)
	assert.Equal(t, "/usr", p.Vars["prefix"])

	v, ok = r.Variable(p, "quoted")
	require.True(t, ok)
	assert.Equal(t, "a b c", v)

	v, ok = r.Variable(p, "pcfiledir")
	require.True(t, ok)
	assert.Equal(t, dir, v)

	_, ok = r.Variable(p, "nope")
	assert.False(t, ok)
}

func TestEnvAndConfigVarNames(t *testing.T) {
	assert.Equal(t, "PKG_CONFIG_GTK_3_0_PREFIX", EnvVarName("gtk+-3.0", "prefix"))
	assert.Equal(t, "gtk__3_0_prefix", ConfigVarName("gtk+-3.0", "prefix"))
	assert.Equal(t, "c_include_path", ConfigVarName("", "C_INCLUDE_PATH"))
}

func TestSysrootGlobals(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "foo", "1.0", "root=${pc_sysrootdir}\ntop=${pc_top_builddir}")

	t.Run("defaults", func(t *testing.T) {
		r, _ := newTestResolver(t, nil, Options{}, dir)
		p, err := r.Get("foo")
		require.NoError(t, err)
		assert.Equal(t, "/", p.Vars["root"])
		assert.Equal(t, "$(top_builddir)", p.Vars["top"])
	})

	t.Run("from environment", func(t *testing.T) {
		env := MapEnv{"PKG_CONFIG_SYSROOT_DIR": "/sr", "PKG_CONFIG_TOP_BUILD_DIR": "/build"}
		r, _ := newTestResolver(t, env, Options{}, dir)
		p, err := r.Get("foo")
		require.NoError(t, err)
		assert.Equal(t, "/sr", p.Vars["root"])
		assert.Equal(t, "/build", p.Vars["top"])
	})
}

func TestDeriveSettingsPathOrder(t *testing.T) {
	env := MapEnv{
		"PKG_CONFIG_PATH":   "/first" + string(os.PathListSeparator) + "/second",
		"PKG_CONFIG_LIBDIR": "/libdir",
		"CPATH":             "/cpath",
	}
	r, _ := newTestResolver(t, env, Options{})

	s := r.Settings()
	assert.Equal(t, []string{"/first", "/second", "/libdir"}, s.Path.Dirs())
	assert.Equal(t, []string{"/usr/include", "/cpath"}, s.System.Include)
	assert.Equal(t, []string{"/usr/lib", "/lib"}, s.System.Library)
	assert.False(t, s.Debug)
}

func TestResolveLogAndOverrides(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "foo", "1.0", "URL: https://example.org/foo")

	t.Run("log lines", func(t *testing.T) {
		r, rec := newTestResolver(t, nil, Options{ShortErrors: true}, dir)
		var log bytes.Buffer
		r.SetLog(&log)

		set, err := r.Resolve("foo >= 2, missing, foo")
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
		assert.ErrorIs(t, err, ErrVersionMismatch)
		assert.Equal(t, "foo >= 2\nmissing NOT-FOUND\nfoo (any) (null)\n", log.String())
		assert.Equal(t, []string{"foo"}, keys(set.Roots))

		assert.True(t, rec.has("Requested 'foo >= 2' but version of foo is 1.0"))
		assert.True(t, rec.has("You may find new versions of foo at https://example.org/foo"))
		assert.True(t, rec.has("No package 'missing' found"))
	})

	t.Run("at least", func(t *testing.T) {
		r, _ := newTestResolver(t, nil, Options{AtLeastVersion: "2"}, dir)
		_, err := r.Resolve("foo = 1.0")

		var ce *ConstraintError
		require.True(t, errors.As(err, &ce))
		assert.Empty(t, ce.Package)
		assert.Equal(t, version.OpGreaterEqual, ce.Entry.Comparator)
		assert.Equal(t, "2", ce.Entry.Version)
	})

	t.Run("exact wins", func(t *testing.T) {
		r, _ := newTestResolver(t, nil, Options{ExactVersion: "1.0", MaxVersion: "0.1"}, dir)
		_, err := r.Resolve("foo")
		assert.NoError(t, err)
	})

	t.Run("empty list", func(t *testing.T) {
		r, _ := newTestResolver(t, nil, Options{}, dir)
		_, err := r.Resolve("")
		assert.ErrorIs(t, err, ErrNoPackages)
	})

	t.Run("malformed list", func(t *testing.T) {
		r, _ := newTestResolver(t, nil, Options{}, dir)
		_, err := r.Resolve("foo >=")
		assert.True(t, IsFatal(err))
		assert.ErrorIs(t, err, ErrSyntax)
	})
}
