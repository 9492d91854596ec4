// pkgflags.go
package pkgflags

import (
	"github.com/arc-language/pkgflags/pkg/flag"
	"github.com/arc-language/pkgflags/pkg/pkgconfig"
	"github.com/arc-language/pkgflags/pkg/version"
)

// Re-export resolver types for convenience
type (
	Options  = pkgconfig.Options
	Package  = pkgconfig.Package
	Set      = pkgconfig.Set
	Env      = pkgconfig.Env
	MapEnv   = pkgconfig.MapEnv
	Category = flag.Category
	Ordering = version.Ordering
)

// Flag categories accepted by RenderFlags.
const (
	IncludePath  = flag.IncludePath
	CompileOther = flag.CompileOther
	LinkPath     = flag.LinkPath
	LinkLib      = flag.LinkLib
	LinkOther    = flag.LinkOther

	CompileAny = flag.CompileAny
	LinkAny    = flag.LinkAny
	AllFlags   = flag.All
)

// Version orderings returned by CompareVersions.
const (
	Less    = version.Less
	Equal   = version.Equal
	Greater = version.Greater
)

// Client resolves module lists against one search path. A Client keeps
// every package it loaded, so repeated queries reuse earlier work.
type Client struct {
	resolver *pkgconfig.Resolver
}

// NewClient creates a client. A zero Options reads the process
// environment and the host's default search path.
func NewClient(opts Options) (*Client, error) {
	r, err := pkgconfig.New(opts)
	if err != nil {
		return nil, err
	}
	return &Client{resolver: r}, nil
}

// Resolver exposes the underlying resolver.
func (c *Client) Resolver() *pkgconfig.Resolver {
	return c.resolver
}

// DefineVariable sets a global variable override. Defining the same name
// twice fails with ErrDuplicateGlobal.
func (c *Client) DefineVariable(name, value string) error {
	return c.resolver.DefineVariable(name, value)
}

// Resolve loads and verifies the packages named by a requirement list
// such as "glib-2.0 >= 2.40, zlib".
func (c *Client) Resolve(list string) (*Set, error) {
	return c.resolver.Resolve(list)
}

// RenderFlags renders the flags of set matching mask.
func (c *Client) RenderFlags(set *Set, mask Category, pathOrdered, includePrivate bool) string {
	if set == nil {
		return ""
	}
	return set.RenderFlags(mask, pathOrdered, includePrivate)
}

// GetVariable looks up name for p with global and environment overrides
// applied.
func (c *Client) GetVariable(p *Package, name string) (string, bool) {
	return c.resolver.Variable(p, name)
}

// CompareVersions orders two version strings the way pkg-config does.
func CompareVersions(a, b string) Ordering {
	return version.Compare(a, b)
}
