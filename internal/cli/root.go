// internal/cli/root.go
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arc-language/pkgflags/internal/config"
	"github.com/arc-language/pkgflags/pkg/diag"
)

// app holds the state of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer
	sink   *diag.Sink

	modes   modes
	defines defines
	prefix  prefixToggle

	cfgFile        string
	prefixVariable string
	static         bool
	shortErrors    bool
	debug          bool
	printErrors    bool
	silenceErrors  bool
	errorsToStdout bool
	atLeastSelf    string

	exit int
}

// NewRootCmd builds the pkgflags command writing to stdout and stderr.
// The exit status of a run is available through the returned function
// once the command has executed.
func NewRootCmd(stdout, stderr io.Writer) (*cobra.Command, func() int) {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		sink:   diag.New(diag.Options{Output: stderr}),
	}
	a.modes.warn = a.sink.Printf

	cmd := &cobra.Command{
		Use:   "pkgflags [options] [module-list...]",
		Short: "Query compiler and linker flags of installed libraries",
		Long: `pkgflags - compiler and linker flags for installed libraries

Reads pkg-config .pc descriptors from the search path, resolves their
requirements and prints the flags, versions or variables asked for.
Without an output option, pkgflags checks that the modules exist.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.exit = a.run(args)
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	fs := cmd.Flags()
	fs.SortFlags = false

	addOutputFlag(fs, &a.modes, "version", "", "output version of pkg-config")
	addOutputFlag(fs, &a.modes, "modversion", "", "output version for package")
	fs.StringVar(&a.atLeastSelf, "atleast-pkgconfig-version", "", "require given version of pkg-config")
	addOutputFlag(fs, &a.modes, "libs", "", "output all linker flags")
	fs.BoolVar(&a.static, "static", false, "output linker flags for static linking")
	fs.BoolVar(&a.shortErrors, "short-errors", false, "print short errors")
	addOutputFlag(fs, &a.modes, "libs-only-l", "", "output -l flags")
	addOutputFlag(fs, &a.modes, "libs-only-other", "", "output other libs (e.g. -pthread)")
	addOutputFlag(fs, &a.modes, "libs-only-L", "", "output -L flags")
	addOutputFlag(fs, &a.modes, "cflags", "", "output all pre-processor and compiler flags")
	addOutputFlag(fs, &a.modes, "cflags-only-I", "", "output -I flags")
	addOutputFlag(fs, &a.modes, "cflags-only-other", "", "output cflags not covered by the cflags-only-I option")
	addOutputFlag(fs, &a.modes, "variable", "NAME", "get the value of variable named `NAME`")
	fs.Var(&a.defines, "define-variable", "set variable NAME to VALUE")
	addOutputFlag(fs, &a.modes, "exists", "", "return 0 if the module(s) exist")
	addOutputFlag(fs, &a.modes, "print-variables", "", "output list of variables defined by the module")
	addOutputFlag(fs, &a.modes, "uninstalled", "", "return 0 if the uninstalled version of one or more module(s) or their dependencies will be used")
	addOutputFlag(fs, &a.modes, "atleast-version", "VERSION", "return 0 if the module is at least version `VERSION`")
	addOutputFlag(fs, &a.modes, "exact-version", "VERSION", "return 0 if the module is at exactly version `VERSION`")
	addOutputFlag(fs, &a.modes, "max-version", "VERSION", "return 0 if the module is at no newer than version `VERSION`")
	addOutputFlag(fs, &a.modes, "list-all", "", "list all known packages")
	fs.BoolVar(&a.debug, "debug", false, "show verbose debug information")
	fs.BoolVar(&a.printErrors, "print-errors", false, "show verbose information about missing or conflicting packages (default)")
	fs.BoolVar(&a.silenceErrors, "silence-errors", false, "show no information about missing or conflicting packages")
	addOutputFlag(fs, &a.modes, "print-provides", "", "print which packages the package provides")
	addOutputFlag(fs, &a.modes, "print-requires", "", "print which packages the package requires")
	addOutputFlag(fs, &a.modes, "print-requires-private", "", "print which packages the package requires for static linking")
	addOutputFlag(fs, &a.modes, "validate", "", "validate a specific .pc file")
	addPrefixFlags(fs, &a.prefix)
	fs.StringVar(&a.prefixVariable, "prefix-variable", "", "set the name of the variable that pkg-config automatically sets")
	fs.BoolVar(&a.errorsToStdout, "errors-to-stdout", false, "print errors from --print-errors to stdout not stderr")
	fs.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.config/pkgflags/config.yaml)")

	return cmd, func() int { return a.exit }
}

// Main runs pkgflags with the process arguments and returns its exit
// status.
func Main() int {
	cmd, status := NewRootCmd(os.Stdout, os.Stderr)
	cmd.SetArgs(os.Args[1:])
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return 1
	}
	return status()
}
