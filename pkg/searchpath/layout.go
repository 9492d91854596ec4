// pkg/searchpath/layout.go
package searchpath

import (
	"bufio"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Platform describes the host the search path is built for.
type Platform struct {
	OS     string // linux, darwin, windows
	Arch   string // amd64, arm64, ...
	Distro string // debian, fedora, arch, alpine, opensuse, nixos, brew or ""
}

// Layout lists the descriptor directories of a platform, most specific
// first.
type Layout struct {
	Name      string
	PkgConfig []string
}

// Detect inspects the running system.
func Detect() Platform {
	p := Platform{OS: runtime.GOOS, Arch: runtime.GOARCH}

	switch p.OS {
	case "darwin":
		if commandExists("brew") || os.Getenv("HOMEBREW_PREFIX") != "" {
			p.Distro = "brew"
		}
	case "linux":
		if f, err := os.Open("/etc/os-release"); err == nil {
			p.Distro = distroFrom(f)
			f.Close()
		}
	}
	return p
}

// distroFrom maps the ID and ID_LIKE fields of an os-release file to a
// layout family.
func distroFrom(r io.Reader) string {
	var ids []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok || (key != "ID" && key != "ID_LIKE") {
			continue
		}
		value = strings.Trim(value, `"'`)
		if key == "ID" {
			ids = append(strings.Fields(value), ids...)
		} else {
			ids = append(ids, strings.Fields(value)...)
		}
	}

	for _, id := range ids {
		switch id {
		case "debian", "ubuntu":
			return "debian"
		case "fedora", "rhel", "centos":
			return "fedora"
		case "opensuse", "suse", "opensuse-leap", "opensuse-tumbleweed", "sles":
			return "opensuse"
		case "arch", "archlinux", "manjaro":
			return "arch"
		case "alpine":
			return "alpine"
		case "nixos":
			return "nixos"
		}
	}
	return ""
}

// Layout returns the descriptor directories for p.
func (p Platform) Layout() Layout {
	switch p.Distro {
	case "debian":
		return debianLayout(p.Arch)
	case "fedora", "opensuse":
		return lib64Layout(p.Distro)
	case "brew":
		return brewLayout(p.Arch)
	case "nixos":
		return nixLayout()
	case "arch", "alpine":
		l := defaultLayout()
		l.Name = p.Distro
		return l
	}
	return defaultLayout()
}

// DefaultPath is the built-in search path of the running system.
func DefaultPath() string {
	l := Detect().Layout()
	return strings.Join(l.PkgConfig, string(os.PathListSeparator))
}

// Debian and Ubuntu keep architecture specific descriptors in multiarch
// directories.
func debianLayout(arch string) Layout {
	triplet := multiarchTriplet(arch)
	return Layout{
		Name: "debian",
		PkgConfig: []string{
			filepath.Join("/usr", "local", "lib", triplet, "pkgconfig"),
			filepath.Join("/usr", "local", "lib", "pkgconfig"),
			filepath.Join("/usr", "local", "share", "pkgconfig"),
			filepath.Join("/usr", "lib", triplet, "pkgconfig"),
			filepath.Join("/usr", "lib", "pkgconfig"),
			filepath.Join("/usr", "share", "pkgconfig"),
		},
	}
}

// Fedora and openSUSE use lib64 for 64-bit libraries.
func lib64Layout(name string) Layout {
	return Layout{
		Name: name,
		PkgConfig: []string{
			filepath.Join("/usr", "local", "lib64", "pkgconfig"),
			filepath.Join("/usr", "local", "share", "pkgconfig"),
			filepath.Join("/usr", "lib64", "pkgconfig"),
			filepath.Join("/usr", "lib", "pkgconfig"),
			filepath.Join("/usr", "share", "pkgconfig"),
		},
	}
}

// Homebrew installs under its own prefix.
func brewLayout(arch string) Layout {
	prefix := os.Getenv("HOMEBREW_PREFIX")
	if prefix == "" {
		prefix = "/usr/local"
		if arch == "arm64" {
			prefix = "/opt/homebrew"
		}
	}
	return Layout{
		Name: "brew",
		PkgConfig: []string{
			filepath.Join(prefix, "lib", "pkgconfig"),
			filepath.Join(prefix, "share", "pkgconfig"),
			filepath.Join("/usr", "lib", "pkgconfig"),
		},
	}
}

// Nix exposes descriptors through the user and system profiles.
func nixLayout() Layout {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(home, ".nix-profile", "lib", "pkgconfig"),
			filepath.Join(home, ".nix-profile", "share", "pkgconfig"))
	}
	dirs = append(dirs,
		filepath.Join("/run", "current-system", "sw", "lib", "pkgconfig"),
		filepath.Join("/run", "current-system", "sw", "share", "pkgconfig"))
	return Layout{Name: "nix", PkgConfig: dirs}
}

// FHS-like layout for everything else.
func defaultLayout() Layout {
	return Layout{
		Name: "default",
		PkgConfig: []string{
			filepath.Join("/usr", "local", "lib", "pkgconfig"),
			filepath.Join("/usr", "local", "share", "pkgconfig"),
			filepath.Join("/usr", "lib", "pkgconfig"),
			filepath.Join("/usr", "share", "pkgconfig"),
		},
	}
}

func multiarchTriplet(arch string) string {
	switch arch {
	case "amd64":
		return "x86_64-linux-gnu"
	case "arm64":
		return "aarch64-linux-gnu"
	case "386":
		return "i386-linux-gnu"
	case "arm":
		return "arm-linux-gnueabihf"
	case "ppc64le":
		return "powerpc64le-linux-gnu"
	case "riscv64":
		return "riscv64-linux-gnu"
	case "s390x":
		return "s390x-linux-gnu"
	}
	return arch + "-linux-gnu"
}

// commandExists checks if a command is available in PATH
func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}
