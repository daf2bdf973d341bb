package utils

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/pflag"
)

type options struct {
	widenDelay   uint
	function     string
	outputFormat string
	gopath       string
	modulePath   string
	outputDir    string
	noColorize   bool
	verbose      bool
	includeTests bool
	visualize    bool
}

func CanColorize(col func(...interface{}) string) func(...interface{}) string {
	if opts.noColorize {
		return func(is ...interface{}) string {
			return fmt.Sprintf(strings.Repeat("%s", len(is)), is...)
		}
	}
	return col
}

var opts = &options{function: "main", outputFormat: "svg"}

type optInterface struct{}

func Opts() optInterface {
	return optInterface{}
}

func (optInterface) NoColorize() bool {
	return opts.noColorize
}
func (optInterface) Function() string {
	return opts.function
}
func (optInterface) OutputFormat() string {
	return opts.outputFormat
}
func (optInterface) OutputDir() string {
	return opts.outputDir
}
func (optInterface) GoPath() string {
	return opts.gopath
}
func (optInterface) ModulePath() string {
	return opts.modulePath
}
func (optInterface) WidenDelay() int {
	return int(opts.widenDelay)
}
func (optInterface) Verbose() bool {
	return opts.verbose
}
func (optInterface) IncludeTests() bool {
	return opts.includeTests
}
func (optInterface) Visualize() bool {
	return opts.visualize
}

// SetNoColorize toggles pretty printer colorization.
func (optInterface) SetNoColorize(b bool) {
	opts.noColorize = b
}

// SetWidenDelay sets the number of loop head visits before widening.
func (optInterface) SetWidenDelay(n uint) {
	opts.widenDelay = n
}

func (optInterface) AnalyzeAllFuncs() bool {
	return opts.function == "."
}

func (optInterface) OnVerbose(do func()) {
	if Opts().Verbose() {
		do()
	}
}

// RegisterFlags binds the options to a command line flag set.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&(opts.function), "fun", "main", "target a specific function.\n"+
		"- Function names need not be fully qualified w.r.t. package name. If a simple name is provided, "+
		"the framework will search for a function matching that name in the main package. If one is not found, "+
		"it will proceed to do a search across all packages. Will return the first function matching that name.\n"+
		"- Use '.' to analyze all functions in the main package.\n")
	fs.StringVar(&(opts.outputFormat), "format", "svg", "output file format [svg | png | jpg | ...]")
	fs.StringVar(&(opts.outputDir), "out", "", "directory for rendered control-flow graphs (defaults to the temporary directory)")
	fs.StringVar(&(opts.gopath), "gopath", "", "specify GOPATH to be used for packages.Load")
	fs.StringVar(&(opts.modulePath), "modulepath", "", `specify a path to a directory containing a Go module.
- If provided this will make our code loading tools (that piggyback on Go's tools) run
in "module-aware" mode (GO111MODULE=on).`)
	fs.UintVar(&(opts.widenDelay), "widen-delay", 0, "number of loop head visits joined before widening")
	fs.BoolVar(&(opts.noColorize), "no-colorize", false, "Disable pretty printer colorization")
	fs.BoolVar(&(opts.verbose), "verbose", false, "enable verbose output")
	fs.BoolVar(&(opts.includeTests), "include-tests", false, "include main package test files in the analysis.")
	fs.BoolVar(&(opts.visualize), "visualize", false, "render the control-flow graph annotated with the computed stores")
}

func init() {
	// Set up logging
	log.SetFlags(log.Ltime | log.Lshortfile)
}
