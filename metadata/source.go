package metadata

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Package is the parsed source of a package.
type Package struct {
	Path  string
	Files []*ast.File
	Fset  *token.FileSet

	// Names maps import paths to the declared names of the imported
	// packages. Imports missing from it have their name guessed from the
	// path.
	Names map[string]string
}

// SourceLoader parses the non-test Go files of a package, comments included.
type SourceLoader interface {
	Load(pkgPath string) (*Package, error)
}

// PackagesLoader locates packages the way the go command does, relative to
// the module found in Dir (the working directory when empty).
type PackagesLoader struct {
	Dir string
}

// NewPackagesLoader creates a loader resolving packages from dir.
func NewPackagesLoader(dir string) *PackagesLoader {
	return &PackagesLoader{Dir: dir}
}

// Load parses the package at pkgPath and looks up the names of its imports,
// so that "k8s.io/api/core/v1" is known as v1.
func (l *PackagesLoader) Load(pkgPath string) (*Package, error) {
	fset := token.NewFileSet()

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
			packages.NeedSyntax | packages.NeedImports,
		Dir:  l.Dir,
		Fset: fset,
	}

	pkgs, err := packages.Load(cfg, pkgPath)
	if err != nil {
		return nil, fmt.Errorf("load package %s: %w", pkgPath, err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("package %s not found", pkgPath)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("load package %s: %w", pkgPath, pkg.Errors[0])
	}

	names, err := l.importNames(pkg)
	if err != nil {
		return nil, err
	}

	return &Package{Path: pkg.PkgPath, Files: pkg.Syntax, Fset: fset, Names: names}, nil
}

// importNames resolves the package names of the imports of pkg. Without
// NeedDeps the imports only carry their ID, so they are listed again with
// names alone rather than loading the syntax of every dependency.
func (l *PackagesLoader) importNames(pkg *packages.Package) (map[string]string, error) {
	names := make(map[string]string, len(pkg.Imports))
	if len(pkg.Imports) == 0 {
		return names, nil
	}

	paths := make([]string, 0, len(pkg.Imports))
	for importPath := range pkg.Imports {
		paths = append(paths, importPath)
	}

	imports, err := packages.Load(&packages.Config{Mode: packages.NeedName, Dir: l.Dir}, paths...)
	if err != nil {
		return nil, fmt.Errorf("load imports of %s: %w", pkg.PkgPath, err)
	}

	for _, imp := range imports {
		if imp.Name != "" {
			names[imp.PkgPath] = imp.Name
		}
	}

	return names, nil
}

// DirLoader maps package paths to source directories and parses them
// directly, without consulting the go command.
type DirLoader map[string]string

// Load parses the Go files of the directory mapped to pkgPath. Import names
// are left to be guessed from their paths.
func (l DirLoader) Load(pkgPath string) (*Package, error) {
	dir, ok := l[pkgPath]
	if !ok {
		return nil, fmt.Errorf("no source directory for package %s", pkgPath)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()

	var files []*ast.File

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}

		file, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ParseComments)
		if err != nil {
			return nil, err
		}

		files = append(files, file)
	}

	if len(files) == 0 {
		return nil, errors.New("no Go files in " + dir)
	}

	return &Package{Path: pkgPath, Files: files, Fset: fset}, nil
}
