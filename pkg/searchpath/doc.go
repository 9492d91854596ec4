// pkg/searchpath/doc.go
package searchpath

/*
Package searchpath finds .pc descriptor files.

It handles:
  - Keeping the ordered list of directories that are searched
  - Locating "<name>.pc" and reporting the position of the directory it
    was found in, so flags can later be ordered by search path
  - Scanning every directory for descriptors, as --list-all does
  - Working out a sensible built-in search path for the host

Basic Usage:

    import "github.com/arc-language/pkgflags/pkg/searchpath"

    // Directories from PKG_CONFIG_PATH come first
    path := searchpath.New()
    path.Add(os.Getenv("PKG_CONFIG_PATH"))
    path.Add(searchpath.DefaultPath())

    file, position, ok := path.Locate("glib-2.0")
    if ok {
        fmt.Printf("found %s in directory #%d\n", file, position)
    }

Host Layouts:

Distributions keep their descriptors in different places. Debian and
Ubuntu use multiarch directories such as usr/lib/x86_64-linux-gnu/pkgconfig,
Fedora and openSUSE use usr/lib64/pkgconfig, Homebrew keeps them under its
own prefix and Nix under the user profile. Detect reads /etc/os-release and
the environment to pick the matching layout.
*/
