package metadata

import (
	"regexp"
	"strings"

	"github.com/vitalvas/apidoc/typeinfo"
)

var (
	spaceRun   = regexp.MustCompile(`[ \t]+`)
	tagPattern = regexp.MustCompile(`@(return|param|var)[ \t]+`)

	// Shapes are tried in order; the first match wins.
	mapShape   = regexp.MustCompile(`^(?:array<([^\s<>,]+),[ \t]*([^\s<>]+)>|map\[([^\s\[\]]+)\]([^\s<>]+))`)
	arrayShape = regexp.MustCompile(`^array<([^\s<>,]+)>`)
	listShape  = regexp.MustCompile(`^(\[\])?([^\s\[\]<>]+)(\[\])?`)

	varName = regexp.MustCompile(`^[ \t]+\$?([A-Za-z_][A-Za-z0-9_]*)`)
)

type annotation struct {
	tag  string
	name string
	meta ArrayMetadata
}

// parseAnnotations returns the @return, @param and @var annotations of a doc
// comment in order. Type names are returned as written.
func parseAnnotations(doc string) []annotation {
	doc = spaceRun.ReplaceAllString(doc, " ")

	var out []annotation

	for _, loc := range tagPattern.FindAllStringSubmatchIndex(doc, -1) {
		rest := doc[loc[1]:]

		meta, n, ok := parseTypeExpr(rest)
		if !ok {
			continue
		}

		a := annotation{tag: doc[loc[2]:loc[3]], meta: meta}
		if m := varName.FindStringSubmatch(rest[n:]); m != nil {
			a.name = m[1]
		}

		out = append(out, a)
	}

	return out
}

func parseTypeExpr(s string) (ArrayMetadata, int, bool) {
	if m := mapShape.FindStringSubmatch(s); m != nil {
		if m[1] != "" {
			return ArrayMetadata{Key: m[1], Type: m[2], List: true}, len(m[0]), true
		}

		return ArrayMetadata{Key: m[3], Type: m[4], List: true}, len(m[0]), true
	}

	if m := arrayShape.FindStringSubmatch(s); m != nil {
		return ArrayMetadata{Type: m[1], List: true}, len(m[0]), true
	}

	if m := listShape.FindStringSubmatch(s); m != nil {
		return ArrayMetadata{Type: m[2], List: m[1] != "" || m[3] != ""}, len(m[0]), true
	}

	return ArrayMetadata{}, 0, false
}

// firstAnnotation returns the first annotation with the given tag.
func firstAnnotation(annotations []annotation, tag string) (annotation, bool) {
	for _, a := range annotations {
		if a.tag == tag {
			return a, true
		}
	}

	return annotation{}, false
}

// resolver qualifies the type names of annotations found in one file.
type resolver struct {
	pkgPath string
	imports map[string]string
}

func (r resolver) resolve(name string) string {
	switch {
	case name == "":
		return name
	case strings.Contains(name, "|"):
		parts := strings.Split(name, "|")
		for i, part := range parts {
			parts[i] = r.resolve(strings.TrimSpace(part))
		}

		return strings.Join(parts, "|")
	case strings.HasPrefix(name, "?"), strings.HasPrefix(name, "*"):
		return name[:1] + r.resolve(name[1:])
	case strings.HasPrefix(name, "[]"):
		return "[]" + r.resolve(name[2:])
	case name == "null", typeinfo.IsBuiltin(name), strings.Contains(name, "/"):
		return name
	}

	if alias, rest, ok := strings.Cut(name, "."); ok {
		if path, ok := r.imports[alias]; ok {
			return path + "." + rest
		}

		return name
	}

	return r.pkgPath + "." + name
}

func (r resolver) metadata(meta ArrayMetadata) ArrayMetadata {
	meta.Type = r.resolve(meta.Type)
	if meta.Key != "" {
		meta.Key = r.resolve(meta.Key)
	}

	return meta
}
