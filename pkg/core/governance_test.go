//go:build governance

package core_test

import (
	"go/types"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const modulePath = "github.com/leapstack-labs/shopdash"

func loadModule(t *testing.T, mode packages.LoadMode) []*packages.Package {
	t.Helper()
	pkgs, err := packages.Load(&packages.Config{Mode: mode}, modulePath+"/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}
	return pkgs
}

// =============================================================================
// COHESION TEST - Core types must be shared by multiple packages
// =============================================================================

// TestGovernance_CoreCohesion verifies that declarations in pkg/core are
// shared across packages. A type only one package touches belongs in that
// package.
func TestGovernance_CoreCohesion(t *testing.T) {
	pkgs := loadModule(t, packages.NeedName|packages.NeedImports|packages.NeedTypes|
		packages.NeedTypesInfo|packages.NeedDeps)

	coreDefs := make(map[types.Object]string)
	var corePkg *packages.Package
	for _, p := range pkgs {
		if p.PkgPath != modulePath+"/pkg/core" {
			continue
		}
		corePkg = p
		scope := p.Types.Scope()
		for _, name := range scope.Names() {
			if obj := scope.Lookup(name); obj.Exported() {
				coreDefs[obj] = name
			}
		}
		break
	}
	if corePkg == nil {
		t.Fatal("Could not find pkg/core")
	}

	// declaration name -> set of packages using it
	usage := make(map[string]map[string]bool, len(coreDefs))
	for _, name := range coreDefs {
		usage[name] = make(map[string]bool)
	}

	base := modulePath + "/"
	for _, p := range pkgs {
		if p.PkgPath == corePkg.PkgPath || strings.HasSuffix(p.PkgPath, "_test") || p.TypesInfo == nil {
			continue
		}
		for _, obj := range p.TypesInfo.Uses {
			if name, ok := coreDefs[obj]; ok {
				usage[name][strings.TrimPrefix(p.PkgPath, base)] = true
			}
		}
	}

	for name, importers := range usage {
		if cohesionAllowlist[name] {
			continue
		}
		switch len(importers) {
		case 0:
			t.Logf("WARNING: Unused core declaration: %s (consider deleting)", name)
		case 1:
			for user := range importers {
				t.Errorf("COHESION VIOLATION: 'core.%s' is used ONLY by '%s'.\n"+
					"   Fix: Move it from pkg/core to %s.", name, user, user)
			}
		}
	}
}

// cohesionAllowlist names declarations allowed a single consumer.
var cohesionAllowlist = map[string]bool{
	"Repository":   true, // implemented once, consumed through the interface
	"ErrForbidden": true,
}

// =============================================================================
// PURITY TEST - No type alias re-exports of core types
// =============================================================================

// TestGovernance_NoTypeAliasReexports ensures no package re-exports a core
// entity under its own name. Consumers use core.Store, core.Product and so
// on directly.
func TestGovernance_NoTypeAliasReexports(t *testing.T) {
	pkgs := loadModule(t, packages.NeedName|packages.NeedImports|packages.NeedTypes)

	corePath := modulePath + "/pkg/core"
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 || pkg.PkgPath == corePath {
			continue
		}

		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			typeName, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || !typeName.Exported() || !typeName.IsAlias() {
				continue
			}
			named, ok := types.Unalias(typeName.Type()).(*types.Named)
			if !ok || named.Obj().Pkg() == nil || named.Obj().Pkg().Path() != corePath {
				continue
			}
			t.Errorf("PURITY VIOLATION: Package '%s' re-exports core.%s as '%s'.\n"+
				"   Fix: Remove the alias and use core.%s directly.",
				strings.TrimPrefix(pkg.PkgPath, modulePath+"/"), named.Obj().Name(), name, named.Obj().Name())
		}
	}
}
