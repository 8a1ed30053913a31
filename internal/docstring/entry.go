package docstring

import (
	"regexp"
	"strconv"
	"strings"
)

// indentStep is the indentation width of one nesting level inside a
// section body.
const indentStep = 4

var (
	paramLineRegex  = regexp.MustCompile(`^(\*{0,2}\w+)(?: \(([^)]*)\))?:(?: (.*))?$`)
	raiseLineRegex  = regexp.MustCompile(`^([\w.]+):(?: (.*))?$`)
	numberedRegex   = regexp.MustCompile(`^(\d+)\. (.*)$`)
	optionalKeyword = "optional"
	defaultPrefix   = "default "
)

// baseIndent returns the indentation of the first non-blank line; entries
// within a section start at this column.
func baseIndent(body []string) int {
	for _, line := range body {
		if strings.TrimSpace(line) != "" {
			return indentOf(line)
		}
	}

	return 0
}

// parseParamEntries groups an Arguments or Attributes body into one entry
// per name. Both dialects are accepted: `name: description` on one line,
// and `name:` followed by deeper-indented description lines. An optional
// `(type, optional, default x)` annotation before the colon is decomposed.
func parseParamEntries(body []string) ([]ParamEntry, []Warning) {
	base := baseIndent(body)

	var entries []ParamEntry
	var warnings []Warning

	for _, line := range body {
		if strings.TrimSpace(line) == "" {
			continue
		}

		text := strings.TrimLeft(line, " ")

		if indentOf(line) == base {
			m := paramLineRegex.FindStringSubmatch(text)
			if m == nil {
				if len(entries) == 0 {
					warnings = append(warnings, warnf("UNPARSED_ENTRY",
						"cannot parse entry line %q", text))
					continue
				}

				entries[len(entries)-1].Description =
					append(entries[len(entries)-1].Description, text)
				continue
			}

			entry := ParamEntry{Name: m[1]}
			entry.Type, entry.Optional, entry.Default, entry.HasDefault = parseAnnotation(m[2])

			if m[3] != "" {
				entry.Description = append(entry.Description, m[3])
			}

			entries = append(entries, entry)
			continue
		}

		if len(entries) == 0 {
			warnings = append(warnings, warnf("UNPARSED_ENTRY",
				"description line %q belongs to no entry", text))
			continue
		}

		entries[len(entries)-1].Description =
			append(entries[len(entries)-1].Description, text)
	}

	return entries, warnings
}

// parseAnnotation decomposes an authored `type, optional, default x`
// annotation. A malformed annotation is kept whole as the type so nothing
// authored is lost.
func parseAnnotation(annotation string) (string, bool, string, bool) {
	if annotation == "" {
		return "", false, "", false
	}

	parts := strings.Split(annotation, ", ")
	typ := parts[0]
	optional := false
	def := ""
	hasDefault := false

	for _, part := range parts[1:] {
		switch {
		case part == optionalKeyword:
			optional = true
		case strings.HasPrefix(part, defaultPrefix):
			def = strings.TrimPrefix(part, defaultPrefix)
			hasDefault = true
		default:
			// Unknown qualifier: fold it back into the type text.
			typ += ", " + part
		}
	}

	return typ, optional, def, hasDefault
}

// parseRaiseEntries groups a Raises body into one entry per exception
// name. Consecutive repeats of the same name merge their reasons. A
// reason is either inline after the name, a deeper-indented block, or a
// literally numbered `<n>. reason` list item with aligned continuations.
func parseRaiseEntries(body []string) ([]RaiseEntry, []Warning) {
	base := baseIndent(body)

	var entries []RaiseEntry
	var warnings []Warning
	var current *RaiseEntry
	var reason *Reason

	for _, line := range body {
		if strings.TrimSpace(line) == "" {
			continue
		}

		indent := indentOf(line)
		text := strings.TrimLeft(line, " ")

		if indent == base {
			if m := raiseLineRegex.FindStringSubmatch(text); m != nil {
				if current == nil || current.Name != m[1] {
					entries = append(entries, RaiseEntry{Name: m[1]})
					current = &entries[len(entries)-1]
				}

				reason = nil
				if m[2] != "" {
					current.Reasons = append(current.Reasons, Reason{Lines: []string{m[2]}})
					reason = &current.Reasons[len(current.Reasons)-1]
				}

				continue
			}
		}

		if current == nil {
			warnings = append(warnings, warnf("UNPARSED_ENTRY",
				"raises line %q belongs to no exception", text))
			continue
		}

		if m := numberedRegex.FindStringSubmatch(text); m != nil && indent == base+indentStep {
			number, _ := strconv.Atoi(m[1])
			current.Reasons = append(current.Reasons, Reason{Number: number, Lines: []string{m[2]}})
			reason = &current.Reasons[len(current.Reasons)-1]
			continue
		}

		if reason == nil {
			current.Reasons = append(current.Reasons, Reason{Lines: []string{text}})
			reason = &current.Reasons[len(current.Reasons)-1]
			continue
		}

		reason.Lines = append(reason.Lines, text)
	}

	for _, entry := range entries {
		warnings = append(warnings, checkNumbering(entry)...)
	}

	return entries, warnings
}

// checkNumbering flags authored reason numbers that do not start at 1 or
// do not increase sequentially. The numbers render as authored either way.
func checkNumbering(entry RaiseEntry) []Warning {
	expected := 1
	var warnings []Warning

	for _, reason := range entry.Reasons {
		if reason.Number == 0 {
			continue
		}

		if reason.Number != expected {
			warnings = append(warnings, warnf("RAISES_NUMBERING",
				"exception %q lists reason %d where %d was expected",
				entry.Name, reason.Number, expected))
		}

		expected = reason.Number + 1
	}

	return warnings
}

// parseTodoEntries turns `- item` / `* item` lines into checklist items,
// with deeper-indented lines continuing the previous item.
func parseTodoEntries(body []string) []TodoEntry {
	base := baseIndent(body)

	var entries []TodoEntry

	for _, line := range body {
		if strings.TrimSpace(line) == "" {
			continue
		}

		text := strings.TrimLeft(line, " ")
		isItem := strings.HasPrefix(text, "- ") || strings.HasPrefix(text, "* ")

		if indentOf(line) == base && isItem {
			entries = append(entries, TodoEntry{Lines: []string{text[2:]}})
			continue
		}

		if len(entries) == 0 {
			entries = append(entries, TodoEntry{Lines: []string{text}})
			continue
		}

		entries[len(entries)-1].Lines = append(entries[len(entries)-1].Lines, text)
	}

	return entries
}

// parseResultEntry reads the single Returns/Yields entry. Three authored
// forms collapse to one shape: a bare description, `type: description`,
// and `type:` followed by a deeper-indented description.
func parseResultEntry(body []string) *ResultEntry {
	var lines []string
	for _, line := range body {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) == 0 {
		return nil
	}

	first := strings.TrimLeft(lines[0], " ")
	rest := lines[1:]
	entry := &ResultEntry{}

	switch colon := strings.Index(first, ": "); {
	case strings.HasSuffix(first, ":"):
		entry.Type = strings.TrimSuffix(first, ":")

	case colon != -1:
		entry.Type = first[:colon]
		entry.Description = append(entry.Description, first[colon+2:])

	default:
		entry.Description = append(entry.Description, first)
	}

	for _, line := range rest {
		entry.Description = append(entry.Description, strings.TrimLeft(line, " "))
	}

	return entry
}

// dedentCode strips one indentation level from example code, keeping any
// deeper nesting intact.
func dedentCode(body []string) []string {
	code := make([]string, len(body))

	for i, line := range body {
		if indentOf(line) >= indentStep {
			code[i] = line[indentStep:]
		} else {
			code[i] = strings.TrimLeft(line, " ")
		}
	}

	return code
}
