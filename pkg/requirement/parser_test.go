package requirement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/pkgflags/pkg/version"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single", "glib-2.0", []string{"glib-2.0"}},
		{"commas and spaces", "a, b c >= 1", []string{"a", ", b", " c >= 1"}},
		{"operator without spaces", "foo>=1.0 bar", []string{"foo>=1.0", " bar"}},
		{"operator run", "gtk+-3.0 >= 3.22, pango", []string{"gtk+-3.0 >= 3.22", ", pango"}},
		{"leading separators", " ,x", []string{" ,x"}},
		{"empty", "", nil},
		{"trailing comma", "a,", []string{"a", ","}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Split(tt.in))
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	entries, err := Parse("glib-2.0 >= 2.50, gobject-2.0 zlib != 1.2.3 , m<2", Options{
		Strict: true,
		Origin: "foo.pc",
		Owner:  "foo",
	})
	require.NoError(t, err)

	want := []Entry{
		{Name: "glib-2.0", Comparator: version.OpGreaterEqual, Version: "2.50", Owner: "foo"},
		{Name: "gobject-2.0", Comparator: version.OpAny, Owner: "foo"},
		{Name: "zlib", Comparator: version.OpNotEqual, Version: "1.2.3", Owner: "foo"},
		{Name: "m<2", Comparator: version.OpAny, Owner: "foo"},
	}
	assert.Equal(t, want, entries)
}

func TestParseSpacingAroundOperator(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"bar>= 1.0", "bar >=1.0", "bar   >=   1.0"} {
		entries, err := Parse(in, Options{Strict: true})
		require.NoError(t, err, in)
		if in == "bar>= 1.0" {
			// No blank before the operator: it is part of the name.
			require.Len(t, entries, 2)
			assert.Equal(t, "bar>=", entries[0].Name)
			continue
		}
		require.Len(t, entries, 1, in)
		assert.Equal(t, Entry{Name: "bar", Comparator: version.OpGreaterEqual, Version: "1.0"}, entries[0], in)
	}
}

func TestParseStrictErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"unknown operator":   "foo => 1.0",
		"missing version":    "foo >=",
		"empty package name": "foo,",
	}
	for name, in := range tests {
		name, in := name, in
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(in, Options{Strict: true, Origin: "x.pc"})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestParseLenient(t *testing.T) {
	t.Parallel()

	entries, err := Parse("foo >= , bar baz => 2,", Options{Strict: false})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "foo", entries[0].Name)
	assert.Equal(t, version.OpGreaterEqual, entries[0].Comparator)
	assert.Equal(t, "0", entries[0].Version)

	assert.Equal(t, Entry{Name: "bar", Comparator: version.OpAny}, entries[1])

	assert.Equal(t, "baz", entries[2].Name)
	assert.Equal(t, version.OpUnknown, entries[2].Comparator)
}

type recorder struct{ errors []string }

func (r *recorder) Debugf(string, ...any) {}
func (r *recorder) Errorf(format string, args ...any) {
	r.errors = append(r.errors, format)
}

func TestParseReportsProblems(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	_, err := Parse("foo <", Options{Strict: true, Origin: "foo.pc", Reporter: rec})
	require.Error(t, err)
	require.Len(t, rec.errors, 1)
	assert.Contains(t, rec.errors[0], "Comparison operator but no version")
}

func TestEntryString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "zlib", Entry{Name: "zlib", Comparator: version.OpAny}.String())
	assert.Equal(t, "zlib >= 1.2", Entry{Name: "zlib", Comparator: version.OpGreaterEqual, Version: "1.2"}.String())
	assert.True(t, Entry{Name: "zlib", Comparator: version.OpGreaterEqual, Version: "1.2"}.Matches("1.2.11"))
}
