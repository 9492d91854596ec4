// cmd/pkgflags/main.go
package main

import (
	"os"

	"github.com/arc-language/pkgflags/internal/cli"
)

func main() {
	os.Exit(cli.Main())
}
