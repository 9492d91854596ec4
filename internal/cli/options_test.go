package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arc-language/pkgflags/internal/config"
	"github.com/arc-language/pkgflags/pkg/diag"
	"github.com/arc-language/pkgflags/pkg/flag"
)

func newModes() (*modes, *[]string) {
	var warnings []string
	m := &modes{warn: func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}}
	return m, &warnings
}

func TestModesApply(t *testing.T) {
	t.Run("flag options combine", func(t *testing.T) {
		m, warnings := newModes()
		m.apply("cflags-only-I", "true")
		m.apply("libs-only-l", "true")
		assert.Equal(t, flag.IncludePath|flag.LinkLib, m.flags)
		assert.Empty(t, *warnings)
	})

	t.Run("first output mode wins", func(t *testing.T) {
		m, warnings := newModes()
		m.apply("modversion", "true")
		m.apply("libs", "true")
		m.apply("variable", "prefix")
		assert.True(t, m.modversion)
		assert.Zero(t, m.flags)
		assert.Empty(t, m.variable)
		assert.Equal(t, []string{
			`Ignoring incompatible output option "--libs"`,
			`Ignoring incompatible output option "--variable"`,
		}, *warnings)
	})

	t.Run("requires options combine", func(t *testing.T) {
		m, warnings := newModes()
		m.apply("print-requires-private", "true")
		m.apply("print-requires", "true")
		assert.True(t, m.requires)
		assert.True(t, m.requiresPrivate)
		assert.Empty(t, *warnings)
	})

	t.Run("exists takes one version option", func(t *testing.T) {
		m, warnings := newModes()
		m.apply("exists", "true")
		m.apply("atleast-version", "1.0")
		m.apply("max-version", "2.0")
		assert.True(t, m.exists)
		assert.Equal(t, "1.0", m.atLeast)
		assert.Empty(t, m.max)
		assert.Len(t, *warnings, 1)
	})

	t.Run("version options imply exists", func(t *testing.T) {
		m, _ := newModes()
		m.apply("exact-version", "3")
		assert.True(t, m.exists)
		assert.True(t, m.set)
	})
}

func TestSplitDefine(t *testing.T) {
	tests := []struct {
		arg         string
		name, value string
	}{
		{"prefix=/usr", "prefix", "/usr"},
		{"  prefix = /usr", "prefix", "/usr"},
		{"prefix==/usr", "prefix", "/usr"},
		{"prefix", "prefix", ""},
		{"prefix=", "prefix", ""},
		{"a=b=c", "a", "b=c"},
	}
	for _, tt := range tests {
		name, value := splitDefine(tt.arg)
		assert.Equal(t, tt.name, name, tt.arg)
		assert.Equal(t, tt.value, value, tt.arg)
	}
}

func TestApplyErrorMode(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(a *app)
		errors bool
	}{
		{"default exists is quiet", func(a *app) {}, false},
		{"exists with print-errors", func(a *app) {
			a.modes.apply("exists", "true")
			a.printErrors = true
		}, true},
		{"list is quiet", func(a *app) { a.modes.apply("list-all", "true") }, false},
		{"flags print errors", func(a *app) { a.modes.apply("libs", "true") }, true},
		{"silenced", func(a *app) {
			a.modes.apply("libs", "true")
			a.silenceErrors = true
		}, false},
		{"debug overrides silence", func(a *app) {
			a.modes.apply("libs", "true")
			a.silenceErrors, a.debug = true, true
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			a := &app{stdout: &buf, sink: diag.New(diag.Options{Output: &buf})}
			tt.setup(a)
			a.applyErrorMode()
			assert.Equal(t, tt.errors, a.sink.ErrorsEnabled())
		})
	}
}

func TestResolverOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.PrefixVariable = "root"

	t.Run("shared libs", func(t *testing.T) {
		a := &app{}
		a.modes.apply("libs", "true")
		opts := a.resolverOptions(cfg)
		assert.False(t, opts.IgnoreRequires)
		assert.True(t, opts.IgnoreRequiresPrivate)
		assert.True(t, opts.IgnorePrivateLibs)
		assert.Equal(t, "root", opts.PrefixVariable)
	})

	t.Run("static libs", func(t *testing.T) {
		a := &app{static: true}
		a.modes.apply("libs", "true")
		opts := a.resolverOptions(cfg)
		assert.False(t, opts.IgnoreRequiresPrivate)
		assert.False(t, opts.IgnorePrivateLibs)
	})

	t.Run("cflags", func(t *testing.T) {
		a := &app{}
		a.modes.apply("cflags", "true")
		assert.False(t, a.resolverOptions(cfg).IgnoreRequiresPrivate)
	})

	t.Run("modversion", func(t *testing.T) {
		a := &app{prefixVariable: "base"}
		a.modes.apply("modversion", "true")
		opts := a.resolverOptions(cfg)
		assert.True(t, opts.IgnoreRequires)
		assert.True(t, opts.IgnoreRequiresPrivate)
		assert.Equal(t, "base", opts.PrefixVariable)
	})

	t.Run("list", func(t *testing.T) {
		a := &app{}
		a.modes.apply("list-all", "true")
		assert.True(t, a.resolverOptions(cfg).Lenient)
	})

	t.Run("define prefix toggles", func(t *testing.T) {
		a := &app{prefix: prefixToggle{value: !cfg.DefinePrefix, changed: true}}
		assert.Equal(t, !cfg.DefinePrefix, a.resolverOptions(cfg).DefinePrefix)
		assert.Equal(t, cfg.DefinePrefix, (&app{}).resolverOptions(cfg).DefinePrefix)
	})

	t.Run("version override", func(t *testing.T) {
		a := &app{}
		a.modes.apply("atleast-version", "2.4")
		opts := a.resolverOptions(cfg)
		assert.Equal(t, "2.4", opts.AtLeastVersion)
		assert.False(t, opts.IgnoreRequires)
	})
}
