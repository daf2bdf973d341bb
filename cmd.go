package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cs-au-dk/absdom/analysis/assume"
	"github.com/cs-au-dk/absdom/pkgutil"
	"github.com/cs-au-dk/absdom/utils"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

var opts = utils.Opts()

func newRootCmd(w io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "absdom [flags] <package>",
		Short: "Infer type and range assumptions of Go functions",
		Long: `absdom runs an abstract interpretation over the SSA form of the target
functions, and reports what may be assumed about the type and range of
every boolean, integer and floating point value.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			err := run(w, utils.MakePath(args))
			if err != nil {
				log.Println(err)
			}
			return err
		},
	}
	utils.RegisterFlags(cmd.Flags())

	return cmd
}

// targetFunctions resolves the functions selected by the CLI options.
func targetFunctions(prog *ssa.Program, main *ssa.Package) ([]*ssa.Function, error) {
	var funs []*ssa.Function
	switch {
	case opts.AnalyzeAllFuncs():
		if main == nil {
			return nil, errors.New("no package to analyze")
		}
		funs = pkgutil.PackageFunctions(main)
	default:
		fun, ok := pkgutil.FindFunction(prog, main, opts.Function())
		if !ok {
			return nil, fmt.Errorf("function %q not found", opts.Function())
		}
		funs = append(funs, fun)
	}

	if opts.IncludeTests() {
		funs = append(funs, pkgutil.TestFunctions(prog)...)
	}
	return funs, nil
}

func run(w io.Writer, path string) error {
	defer utils.TimeTrack(time.Now(), "Analysis")

	pkgs, err := pkgutil.LoadPackages(pkgutil.LoadConfig{
		GoPath:       opts.GoPath(),
		ModulePath:   opts.ModulePath(),
		IncludeTests: opts.IncludeTests(),
	}, path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	} else if len(pkgs) == 0 {
		return fmt.Errorf("no packages found at %s", path)
	}

	prog, spkgs := ssautil.AllPackages(pkgs, 0)
	prog.Build()

	mainPkg := pkgutil.GetMain(ssautil.MainPackages(prog.AllPackages()))
	if mainPkg == nil {
		mainPkg = spkgs[0]
	}

	funs, err := targetFunctions(prog, mainPkg)
	if err != nil {
		return err
	}

	outDir := opts.OutputDir()
	if outDir == "" {
		outDir = os.TempDir()
	}

	header := utils.CanColorize(color.New(color.Bold).SprintFunc())
	config := assume.DefaultConfig()
	for _, fun := range funs {
		opts.OnVerbose(func() { utils.PrintSSAFun(fun) })

		res, err := config.Analyze(fun)
		if err != nil {
			return err
		}

		fmt.Fprintln(w, header(fun.String()))
		res.WriteTable(w)
		fmt.Fprintln(w, "inputs:", res.Inputs())
		fmt.Fprintln(w, "exit:", res.Exit)
		if blocks := res.Infeasible(); len(blocks) > 0 {
			names := make([]string, len(blocks))
			for i, b := range blocks {
				names[i] = utils.SSABlockString(b)
			}
			fmt.Fprintln(w, "infeasible:", strings.Join(names, ", "))
		}
		fmt.Fprintln(w)

		if opts.Visualize() {
			img, err := res.Visualize(filepath.Join(outDir, fun.Name()), opts.OutputFormat())
			if err != nil {
				return fmt.Errorf("rendering %s: %w", fun, err)
			}
			log.Println("Stored control-flow graph at", img)
		}
	}
	return nil
}
