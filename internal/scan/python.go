package scan

import (
	"regexp"
	"strings"

	"github.com/g5becks/doksit/internal/entity"
	"github.com/g5becks/doksit/internal/index"
)

var (
	classRegex = regexp.MustCompile(`^class (\w+)`)
	defRegex   = regexp.MustCompile(`^( *)(?:async )?def (\w+)\s*\(`)
	yieldRegex = regexp.MustCompile(`(^|\W)yield($|\W)`)
)

const methodIndent = 4

// ScanSource scans one file's text for its module docstring, classes with
// their members, and top-level functions, in declaration order. Private
// and dunder names are skipped, except `__init__`. Class membership
// during the single top-to-bottom pass is tracked with the order
// preserving index: a method belongs to the most recently seen class.
func ScanSource(relPath, source string) (*Module, error) {
	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
	qualified := QualifiedName(relPath)

	moduleDoc, _ := extractDocstring(lines, 0)
	mod := &Module{
		RelPath: relPath,
		Entity: Entity{
			Meta: &entity.Metadata{
				Kind:          entity.KindModule,
				Name:          lastSegment(qualified),
				QualifiedName: qualified,
				SourceFile:    relPath,
			},
			Docstring: moduleDoc,
		},
	}

	classIdx := index.New()
	classAt := make(map[string]int)

	i := 0
	for i < len(lines) {
		line := lines[i]

		if m := classRegex.FindStringSubmatch(line); m != nil {
			name := m[1]
			headerEnd := findHeaderEnd(lines, i)
			bodyEnd := blockEnd(lines, headerEnd+1, 0)
			doc, _ := extractDocstring(lines, headerEnd+1)

			classIdx.Insert(name)
			classAt[name] = len(mod.Classes)
			mod.Classes = append(mod.Classes, Class{
				Entity: Entity{
					Meta: &entity.Metadata{
						Kind:          entity.KindClass,
						Name:          name,
						QualifiedName: qualified + "." + name,
						SourceFile:    relPath,
						LineStart:     i + 1,
						LineEnd:       bodyEnd + 1,
					},
					Docstring: doc,
				},
			})

			i = headerEnd + 1
			continue
		}

		m := defRegex.FindStringSubmatch(line)
		if m == nil {
			i++
			continue
		}

		indent := len(m[1])
		name := m[2]

		if indent != 0 && indent != methodIndent {
			i++
			continue
		}

		decorNames, defStart := decorators(lines, i, indent)
		sigEnd := findHeaderEnd(lines, i)
		bodyEnd := blockEnd(lines, sigEnd+1, indent)
		if bodyEnd < sigEnd {
			bodyEnd = sigEnd
		}

		params, returnType := parseSignature(joinHeader(lines, i, sigEnd))
		doc, docEnd := extractDocstring(lines, sigEnd+1)

		meta := &entity.Metadata{
			Name:        name,
			SourceFile:  relPath,
			LineStart:   defStart + 1,
			LineEnd:     bodyEnd + 1,
			Parameters:  params,
			ReturnType:  returnType,
			IsGenerator: hasYield(lines, docEnd+1, bodyEnd),
		}

		if indent == 0 {
			if !strings.HasPrefix(name, "_") {
				meta.Kind = entity.KindFunction
				meta.QualifiedName = qualified + "." + name
				mod.Functions = append(mod.Functions, Entity{Meta: meta, Docstring: doc})
			}

			i = bodyEnd + 1
			continue
		}

		owner, ok := classIdx.Last()
		if !ok {
			i = bodyEnd + 1
			continue
		}

		kind, keep := methodKind(name, decorNames, lines[i])
		if !keep {
			i = bodyEnd + 1
			continue
		}

		meta.Kind = kind
		meta.QualifiedName = qualified + "." + owner + "." + name
		classIdx.Append(owner, name)

		class := &mod.Classes[classAt[owner]]
		class.Members = append(class.Members, Entity{Meta: meta, Docstring: doc})

		i = bodyEnd + 1
	}

	return mod, nil
}

// methodKind classifies a class-level def and decides whether it is
// documented at all, mirroring the member rules of the source format:
// self/cls methods, properties, decorated staticmethods; private names
// skipped except the constructor; setter/deleter halves skipped.
func methodKind(name string, decorNames []string, defLine string) (entity.Kind, bool) {
	for _, d := range decorNames {
		if strings.HasSuffix(d, ".setter") || strings.HasSuffix(d, ".deleter") {
			return "", false
		}
	}

	if name == "__init__" {
		return entity.KindConstructor, true
	}

	if strings.HasPrefix(name, "_") {
		return "", false
	}

	for _, d := range decorNames {
		switch d {
		case "property":
			return entity.KindProperty, true
		case "staticmethod":
			return entity.KindStaticMethod, true
		}
	}

	if firstParamIsReceiver(defLine) {
		return entity.KindMethod, true
	}

	return "", false
}

func firstParamIsReceiver(defLine string) bool {
	open := strings.Index(defLine, "(")
	if open == -1 {
		return false
	}

	rest := strings.TrimLeft(defLine[open+1:], " ")
	return strings.HasPrefix(rest, "self") || strings.HasPrefix(rest, "cls")
}

// decorators collects the contiguous decorator lines directly above a
// def, returning their names and the first decorator's line index.
func decorators(lines []string, i, indent int) ([]string, int) {
	var names []string
	start := i

	for j := i - 1; j >= 0; j-- {
		trimmed := strings.TrimSpace(lines[j])
		if !strings.HasPrefix(trimmed, "@") || indentOf(lines[j]) != indent {
			break
		}

		name := strings.TrimPrefix(trimmed, "@")
		if cut := strings.Index(name, "("); cut != -1 {
			name = name[:cut]
		}

		names = append(names, name)
		start = j
	}

	return names, start
}

// findHeaderEnd returns the index of the line that closes a def or class
// header: brackets balanced and the line ends with a colon.
func findHeaderEnd(lines []string, i int) int {
	depth := 0

	for j := i; j < len(lines); j++ {
		for _, r := range lines[j] {
			switch r {
			case '(', '[', '{':
				depth++
			case ')', ']', '}':
				depth--
			}
		}

		if depth <= 0 && strings.HasSuffix(strings.TrimSpace(lines[j]), ":") {
			return j
		}
	}

	return i
}

// blockEnd returns the index of the last non-blank line belonging to the
// block that starts after a header, i.e. before the first non-blank line
// indented at or below the parent.
func blockEnd(lines []string, start, parentIndent int) int {
	last := start - 1

	for j := start; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == "" {
			continue
		}

		if indentOf(lines[j]) <= parentIndent {
			break
		}

		last = j
	}

	return last
}

func joinHeader(lines []string, start, end int) string {
	if start == end {
		return lines[start]
	}

	parts := make([]string, 0, end-start+1)
	for j := start; j <= end; j++ {
		parts = append(parts, strings.TrimSpace(lines[j]))
	}

	return strings.Join(parts, " ")
}

// parseSignature extracts parameters and the return annotation from a
// (joined) def header. self and cls receivers are dropped; star
// parameters keep their stars and default to type Any.
func parseSignature(header string) ([]entity.Parameter, string) {
	open := strings.Index(header, "(")
	if open == -1 {
		return nil, ""
	}

	depth := 0
	closing := -1

	for k := open; k < len(header); k++ {
		switch header[k] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				closing = k
			}
		}

		if closing != -1 {
			break
		}
	}

	if closing == -1 {
		return nil, ""
	}

	var params []entity.Parameter

	for _, raw := range splitTopLevel(header[open+1:closing], ',') {
		if param, ok := parseParameter(raw); ok {
			params = append(params, param)
		}
	}

	returnType := ""
	after := header[closing+1:]
	if arrow := strings.Index(after, "->"); arrow != -1 {
		returnType = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(after[arrow+2:]), ":"))
	}

	return params, returnType
}

func parseParameter(raw string) (entity.Parameter, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "/" || raw == "*" {
		return entity.Parameter{}, false
	}

	stars := ""
	for strings.HasPrefix(raw, "*") {
		stars += "*"
		raw = raw[1:]
	}

	name := raw
	declared := ""
	def := ""
	hasDefault := false

	if colon := indexTopLevel(raw, ':'); colon != -1 {
		name = strings.TrimSpace(raw[:colon])
		rest := raw[colon+1:]

		if eq := indexTopLevel(rest, '='); eq != -1 {
			declared = strings.TrimSpace(rest[:eq])
			def = strings.TrimSpace(rest[eq+1:])
			hasDefault = true
		} else {
			declared = strings.TrimSpace(rest)
		}
	} else if eq := indexTopLevel(raw, '='); eq != -1 {
		name = strings.TrimSpace(raw[:eq])
		def = strings.TrimSpace(raw[eq+1:])
		hasDefault = true
	}

	if stars == "" && (name == "self" || name == "cls") {
		return entity.Parameter{}, false
	}

	if stars != "" && declared == "" {
		declared = "Any"
	}

	return entity.Parameter{
		Name:         stars + name,
		DeclaredType: declared,
		DefaultValue: def,
		HasDefault:   hasDefault,
	}, true
}

// splitTopLevel splits on sep outside brackets and quotes.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	var quote byte
	start := 0

	for k := 0; k < len(s); k++ {
		c := s[k]

		if quote != 0 {
			if c == quote {
				quote = 0
			}

			continue
		}

		switch c {
		case '\'', '"':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:k])
				start = k + 1
			}
		}
	}

	parts = append(parts, s[start:])
	return parts
}

func indexTopLevel(s string, sep byte) int {
	depth := 0
	var quote byte

	for k := 0; k < len(s); k++ {
		c := s[k]

		if quote != 0 {
			if c == quote {
				quote = 0
			}

			continue
		}

		switch c {
		case '\'', '"':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case sep:
			if depth == 0 {
				return k
			}
		}
	}

	return -1
}

// extractDocstring reads a triple-quoted docstring starting at the first
// statement at or after line i, skipping blanks and comments. It returns
// the raw content and the index of the docstring's last line, or i-1 when
// there is none.
func extractDocstring(lines []string, i int) (string, int) {
	j := i
	for j < len(lines) {
		trimmed := strings.TrimSpace(lines[j])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			j++
			continue
		}

		break
	}

	if j >= len(lines) {
		return "", i - 1
	}

	trimmed := strings.TrimSpace(lines[j])
	trimmed = strings.TrimLeft(trimmed, "rRbBuUfF")

	quote := ""
	switch {
	case strings.HasPrefix(trimmed, `"""`):
		quote = `"""`
	case strings.HasPrefix(trimmed, "'''"):
		quote = "'''"
	default:
		return "", i - 1
	}

	rest := strings.TrimPrefix(trimmed, quote)
	if idx := strings.Index(rest, quote); idx != -1 {
		return rest[:idx], j
	}

	content := []string{rest}
	for k := j + 1; k < len(lines); k++ {
		if idx := strings.Index(lines[k], quote); idx != -1 {
			content = append(content, strings.TrimRight(lines[k][:idx], " "))
			return strings.Join(content, "\n"), k
		}

		content = append(content, lines[k])
	}

	return strings.Join(content, "\n"), len(lines) - 1
}

func hasYield(lines []string, start, end int) bool {
	for j := start; j <= end && j < len(lines); j++ {
		trimmed := strings.TrimSpace(lines[j])
		if strings.HasPrefix(trimmed, "#") {
			continue
		}

		if yieldRegex.MatchString(trimmed) {
			return true
		}
	}

	return false
}

func lastSegment(qualified string) string {
	if idx := strings.LastIndex(qualified, "."); idx != -1 {
		return qualified[idx+1:]
	}

	return qualified
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}
