package diag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSinkErrorsToggle(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := New(Options{Output: &buf})

	s.Errorf("hidden %d", 1)
	assert.Empty(t, buf.String())

	s.SetErrors(true)
	s.Errorf("Package '%s' has no Name: field", "foo")
	assert.Equal(t, "Package 'foo' has no Name: field\n", buf.String())
}

func TestSinkDebugImpliesErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := New(Options{Output: &buf})

	s.Debugf("not shown")
	assert.Empty(t, buf.String())

	s.EnableDebug()
	assert.True(t, s.ErrorsEnabled())

	s.Debugf("Looking for package '%s'", "zlib")
	assert.Contains(t, buf.String(), "Looking for package 'zlib'")
	assert.Contains(t, buf.String(), "pkgflags")
}

func TestSinkPrintfAlwaysWrites(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := New(Options{Output: &buf})
	s.Printf("Must specify package names on the command line")
	assert.Equal(t, "Must specify package names on the command line\n", buf.String())
}

func TestSinkSetOutput(t *testing.T) {
	t.Parallel()

	var first, second bytes.Buffer
	s := New(Options{Output: &first, Errors: true})
	s.SetOutput(&second)
	s.Errorf("moved")

	assert.Empty(t, first.String())
	assert.Equal(t, "moved\n", second.String())
}
