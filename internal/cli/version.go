// internal/cli/version.go
package cli

import "github.com/arc-language/pkgflags/pkg/pkgconfig"

// Version is the pkg-config release pkgflags is compatible with. Build
// scripts compare against it through --atleast-pkgconfig-version.
const Version = pkgconfig.CompatVersion
