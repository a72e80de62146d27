package metadata

import (
	"go/ast"
	"io"
	"log/slog"
	"path"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/vitalvas/apidoc/typeinfo"
)

var versionSuffix = regexp.MustCompile(`^v[0-9]+$`)

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger receiving debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithLoader replaces the default PackagesLoader.
func WithLoader(loader SourceLoader) Option {
	return func(e *Extractor) {
		e.loader = loader
	}
}

// Extractor reads annotations from the source of types. Results are cached
// per qualified type name and parsed packages per import path. An Extractor
// is not safe for concurrent use.
type Extractor struct {
	loader   SourceLoader
	logger   *slog.Logger
	classes  map[string]*ClassMetadata
	packages map[string]*Package
}

// NewExtractor creates an extractor reading sources through go/packages
// unless WithLoader is given.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		loader:   NewPackagesLoader(""),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		classes:  make(map[string]*ClassMetadata),
		packages: make(map[string]*Package),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// ClassMetadata returns the annotations of rt. Pointer types are dereferenced;
// unnamed and predeclared types have empty metadata.
func (e *Extractor) ClassMetadata(rt reflect.Type) (*ClassMetadata, error) {
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	name := typeinfo.QualifiedName(rt)
	if meta, ok := e.classes[name]; ok {
		return meta, nil
	}

	meta := newClassMetadata(name)

	if rt.Name() == "" || rt.PkgPath() == "" {
		e.classes[name] = meta
		return meta, nil
	}

	pkgPath := rt.PkgPath()

	pkg, err := e.load(pkgPath)
	if err != nil {
		return nil, &SourceError{Type: name, Package: pkgPath, Err: err}
	}

	files := pkg.Files

	typeName := typeinfo.BaseName(rt.Name())

	spec, file := lookupType(files, typeName)
	if spec == nil {
		return nil, &SourceError{Type: name, Package: pkgPath, Err: errDeclarationNotFound}
	}

	if st, ok := spec.Type.(*ast.StructType); ok {
		collectFields(meta, st, newResolver(pkgPath, pkg.Names, file))
	}

	for _, f := range files {
		r := newResolver(pkgPath, pkg.Names, f)

		for _, decl := range f.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || !fn.Name.IsExported() {
				continue
			}

			switch {
			case fn.Recv != nil && receiverName(fn) == typeName:
				collectMethod(meta, fn, r, false)
			case fn.Recv == nil && fn.Name.Name == "New"+typeName:
				collectMethod(meta, fn, r, true)
			}
		}
	}

	e.classes[name] = meta

	e.logger.Debug("metadata loaded",
		"type", name,
		"methods", len(meta.Methods),
		"properties", len(meta.Properties),
	)

	return meta, nil
}

func (e *Extractor) load(pkgPath string) (*Package, error) {
	if pkg, ok := e.packages[pkgPath]; ok {
		return pkg, nil
	}

	pkg, err := e.loader.Load(pkgPath)
	if err != nil {
		return nil, err
	}

	e.packages[pkgPath] = pkg

	return pkg, nil
}

func collectFields(meta *ClassMetadata, st *ast.StructType, r resolver) {
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			continue
		}

		a, ok := firstAnnotation(parseAnnotations(commentText(field.Doc)+"\n"+commentText(field.Comment)), "var")
		if !ok {
			continue
		}

		for _, ident := range field.Names {
			meta.Properties[ident.Name] = r.metadata(a.meta)
		}
	}
}

func collectMethod(meta *ClassMetadata, fn *ast.FuncDecl, r resolver, constructor bool) {
	m := meta.method(fn.Name.Name)

	for _, a := range parseAnnotations(commentText(fn.Doc)) {
		resolved := r.metadata(a.meta)

		switch a.tag {
		case "return":
			if m.Return == nil {
				m.Return = &resolved
			}
		case "param", "var":
			if a.name == "" {
				continue
			}

			m.Parameters[a.name] = resolved

			if constructor {
				meta.Properties[a.name] = resolved
			}
		}
	}
}

func lookupType(files []*ast.File, name string) (*ast.TypeSpec, *ast.File) {
	for _, file := range files {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}

			for _, s := range gen.Specs {
				if spec, ok := s.(*ast.TypeSpec); ok && spec.Name.Name == name {
					return spec, file
				}
			}
		}
	}

	return nil, nil
}

func receiverName(fn *ast.FuncDecl) string {
	if len(fn.Recv.List) == 0 {
		return ""
	}

	expr := fn.Recv.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}

	switch x := expr.(type) {
	case *ast.IndexExpr:
		expr = x.X
	case *ast.IndexListExpr:
		expr = x.X
	}

	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name
	}

	return ""
}

func commentText(group *ast.CommentGroup) string {
	if group == nil {
		return ""
	}

	return group.Text()
}

// newResolver resolves the names of file, a source file of pkgPath. Imports
// without an alias are known by their package name from names, guessed from
// the path when the loader did not report it.
func newResolver(pkgPath string, names map[string]string, file *ast.File) resolver {
	imports := make(map[string]string, len(file.Imports))

	for _, imp := range file.Imports {
		importPath, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}

		alias, ok := names[importPath]
		if !ok {
			alias = importName(importPath)
		}
		if imp.Name != nil {
			if imp.Name.Name == "_" || imp.Name.Name == "." {
				continue
			}

			alias = imp.Name.Name
		}

		imports[alias] = importPath
	}

	return resolver{pkgPath: pkgPath, imports: imports}
}

// importName guesses the package name of an import path without an explicit
// alias: "gopkg.in/yaml.v3" is yaml, "github.com/wk8/go-ordered-map/v2" is
// orderedmap.
func importName(importPath string) string {
	name := path.Base(importPath)

	if versionSuffix.MatchString(name) {
		if dir := path.Dir(importPath); dir != "." {
			name = path.Base(dir)
		}
	}

	if idx := strings.Index(name, ".v"); idx > 0 {
		name = name[:idx]
	}

	name = strings.TrimPrefix(name, "go-")

	return strings.ReplaceAll(name, "-", "")
}
