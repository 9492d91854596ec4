// pkg/pkgconfig/doc.go
package pkgconfig

/*
Package pkgconfig resolves packages into compiler and linker flags.

It handles:
  - Loading descriptors by name or path into a registry
  - Linking Requires and Requires.private into a requirement graph that
    may contain diamonds and cycles
  - Checking version constraints and Conflicts
  - Walking the graph into a closure and rendering its flags
  - Variable overrides from globals, the environment and the root
    configuration package

Basic Usage:

    import "github.com/arc-language/pkgflags/pkg/pkgconfig"

    r, err := pkgconfig.New(pkgconfig.Options{})
    if err != nil {
        return err
    }

    set, err := r.Resolve("gtk+-3.0 >= 3.20 libpng")
    if err != nil {
        return err
    }
    fmt.Println(set.Flags(flag.CompileAny | flag.LinkAny))

Ordering:

The closure lists every package before its own requirements. Include and
library search paths are then sorted by the search directory the package
came from, so the directory found first wins; other flags keep dependency
order. Only adjacent duplicates are collapsed.

Failures:

A missing requirement is reported and the remaining requirements are still
looked up, so every missing name shows up in one run. Malformed descriptors
under strict parsing are fatal (IsFatal) and stop resolution at once.
*/
