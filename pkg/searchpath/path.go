// pkg/searchpath/path.go
package searchpath

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extension is the suffix of descriptor files.
const Extension = ".pc"

// Path is an ordered list of directories holding descriptors.
type Path struct {
	dirs []string
}

// New creates a path searching dirs in order.
func New(dirs ...string) *Path {
	p := &Path{}
	for _, d := range dirs {
		p.AddDir(d)
	}
	return p
}

// Add appends every directory of an OS path list such as
// "/a/pkgconfig:/b/pkgconfig". Empty entries are skipped.
func (p *Path) Add(list string) {
	for _, d := range filepath.SplitList(list) {
		p.AddDir(d)
	}
}

// AddDir appends a single directory.
func (p *Path) AddDir(dir string) {
	if dir == "" {
		return
	}
	p.dirs = append(p.dirs, dir)
}

// Dirs returns the directories in search order.
func (p *Path) Dirs() []string {
	return append([]string(nil), p.dirs...)
}

// Len returns the number of directories.
func (p *Path) Len() int {
	return len(p.dirs)
}

// String joins the directories with the OS list separator.
func (p *Path) String() string {
	return strings.Join(p.dirs, string(os.PathListSeparator))
}

// Locate looks for "<name>.pc" in each directory. position is the 1-based
// index of the directory the file was found in.
func (p *Path) Locate(name string) (path string, position int, ok bool) {
	for i, dir := range p.dirs {
		candidate := filepath.Join(dir, name+Extension)
		if isRegular(candidate) {
			return candidate, i + 1, true
		}
	}
	return "", 0, false
}

// Scan lists every descriptor file of every directory, in search order and
// sorted by name within a directory. Directories that cannot be read are
// skipped; their errors are returned alongside the files found.
func (p *Path) Scan() (files []string, errs []error) {
	for _, dir := range p.dirs {
		found, err := ScanDir(dir)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		files = append(files, found...)
	}
	return files, errs
}

// ScanDir lists the descriptor files of a single directory.
func ScanDir(dir string) ([]string, error) {
	dir = strings.TrimRight(dir, string(filepath.Separator))
	if dir == "" {
		dir = string(filepath.Separator)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading search directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if len(name) <= len(Extension) || !strings.HasSuffix(name, Extension) {
			continue
		}
		path := filepath.Join(dir, name)
		if !isRegular(path) {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}

// IsDescriptorFile reports whether name is a path to an existing .pc file
// rather than a package name.
func IsDescriptorFile(name string) bool {
	return len(name) > len(Extension) && strings.HasSuffix(name, Extension) && isRegular(name)
}

// KeyOf derives a package key from a descriptor path.
func KeyOf(path string) string {
	return strings.TrimSuffix(filepath.Base(path), Extension)
}

func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
