package pkgutil

import (
	"sort"
	"strings"

	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// GetMain determines what is the main package as follows:
// 1. Take the package with the most members
// 2. Skip the package suffixed with .test
func GetMain(mains []*ssa.Package) (main *ssa.Package) {
	for _, mp := range mains {
		if strings.HasSuffix(mp.String(), ".test") {
			continue
		}
		if main == nil || len(main.Members) < len(mp.Members) {
			main = mp
		}
	}
	return
}

// AllPackages aggregates all non-synthetic test packages that
// contain at least one member in a slice.
func AllPackages(prog *ssa.Program) []*ssa.Package {
	mp := make(map[string]*ssa.Package)

	for _, pkg := range prog.AllPackages() {
		if strings.HasSuffix(pkg.String(), ".test") {
			continue
		}

		opkg, ok := mp[pkg.String()]
		if !ok || len(pkg.Members) > len(opkg.Members) {
			mp[pkg.String()] = pkg
		}
	}

	res := make([]*ssa.Package, 0, len(mp))
	for _, pkg := range mp {
		res = append(res, pkg)
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].Pkg.Path() < res[j].Pkg.Path()
	})
	return res
}

// PackageFunctions lists the non-synthetic functions with bodies declared
// in a package, including methods and anonymous functions, ordered by name.
func PackageFunctions(pkg *ssa.Package) (res []*ssa.Function) {
	for fun := range ssautil.AllFunctions(pkg.Prog) {
		if fun.Pkg == pkg && fun.Synthetic == "" && fun.Blocks != nil {
			res = append(res, fun)
		}
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].String() < res[j].String()
	})
	return
}

// FindFunction searches for a function by name. Simple names are first
// resolved in the main package, and then across all packages. Names may
// also be qualified by package or receiver.
func FindFunction(prog *ssa.Program, main *ssa.Package, name string) (*ssa.Function, bool) {
	if main != nil {
		if fun := main.Func(name); fun != nil {
			return fun, true
		}
	}

	for _, pkg := range AllPackages(prog) {
		for _, fun := range PackageFunctions(pkg) {
			if fun.Name() == name || strings.HasSuffix(fun.String(), name) {
				return fun, true
			}
		}
	}
	return nil, false
}
