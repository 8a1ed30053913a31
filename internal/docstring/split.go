package docstring

import (
	"regexp"
	"strings"
)

var exampleLanguageRegex = regexp.MustCompile(`^Example: \((\w+)\)$`)

// split partitions normalized lines into the brief summary, the long
// description, and the labeled sections in order of first appearance.
// Duplicate headers are demoted to plain text with a warning; so is any
// unindented text that is not a recognized header. A blank line inside a
// non-Example section closes it.
func split(lines []string) (*Model, []Warning) {
	model := &Model{}
	var warnings []Warning
	seen := make(map[Header]bool)

	i := 0
	for i < len(lines) && lines[i] == "" {
		i++
	}

	for i < len(lines) && lines[i] != "" {
		if _, _, ok := matchHeader(lines[i]); ok {
			break
		}

		model.Brief = append(model.Brief, lines[i])
		i++
	}

	var description []string
	for i < len(lines) {
		if _, _, ok := matchHeader(lines[i]); ok {
			break
		}

		description = append(description, lines[i])
		i++
	}

	model.Description = trimBlankEdges(description)

	for i < len(lines) {
		if lines[i] == "" {
			i++
			continue
		}

		header, language, ok := matchHeader(lines[i])
		if ok && seen[header] {
			warnings = append(warnings, warnf("DUPLICATE_SECTION",
				"section %q appears more than once; the repeat is kept as plain text", string(header)))

			// The duplicate header line itself joins the paragraph.
			paragraph := []string{lines[i]}
			rest, next := collectParagraph(lines, i+1)
			model.Sections = append(model.Sections, Section{Header: HeaderText, Body: append(paragraph, rest...)})
			i = next

			continue
		}

		if !ok {
			paragraph, next := collectParagraph(lines, i)
			model.Sections = append(model.Sections, Section{Header: HeaderText, Body: paragraph})
			i = next

			continue
		}

		seen[header] = true
		i++

		var body []string
		if header == HeaderExample {
			body, i = collectExampleBody(lines, i)
		} else {
			for i < len(lines) && lines[i] != "" && indentOf(lines[i]) > 0 {
				body = append(body, lines[i])
				i++
			}
		}

		section, sectionWarnings := parseSection(header, language, body)
		warnings = append(warnings, sectionWarnings...)
		model.Sections = append(model.Sections, section)
	}

	return model, warnings
}

// matchHeader recognizes a section header line. Headers sit at column
// zero, spell a vocabulary token exactly, and end with a colon; Example
// may carry a parenthesized language tag.
func matchHeader(line string) (Header, string, bool) {
	if line == "" || line[0] == ' ' || line[0] == '\t' {
		return HeaderText, "", false
	}

	if line == "Example:" {
		return HeaderExample, "", true
	}

	if m := exampleLanguageRegex.FindStringSubmatch(line); m != nil {
		return HeaderExample, m[1], true
	}

	token, found := strings.CutSuffix(line, ":")
	if !found {
		return HeaderText, "", false
	}

	header, ok := headerSynonyms()[token]
	if !ok {
		return HeaderText, "", false
	}

	return header, "", true
}

// collectParagraph gathers plain text lines up to the next blank line or
// recognized header.
func collectParagraph(lines []string, i int) ([]string, int) {
	var body []string

	for i < len(lines) && lines[i] != "" {
		if _, _, ok := matchHeader(lines[i]); ok {
			break
		}

		body = append(body, lines[i])
		i++
	}

	return body, i
}

// collectExampleBody gathers example lines. A blank line stays inside the
// example as long as the next line is still indented; otherwise it ends
// the section.
func collectExampleBody(lines []string, i int) ([]string, int) {
	var body []string

	for i < len(lines) {
		line := lines[i]

		if line == "" {
			if i+1 < len(lines) && indentOf(lines[i+1]) > 0 {
				body = append(body, "")
				i++
				continue
			}

			break
		}

		if indentOf(line) == 0 {
			break
		}

		body = append(body, line)
		i++
	}

	return body, i
}

// parseSection hands a section's raw body to the entry parser for its
// variant. The switch is exhaustive over the vocabulary.
func parseSection(header Header, language string, body []string) (Section, []Warning) {
	switch header {
	case HeaderNote, HeaderWarning:
		return Section{Header: header, Body: body}, nil

	case HeaderArguments, HeaderAttributes:
		params, warnings := parseParamEntries(body)
		return Section{Header: header, Params: params}, warnings

	case HeaderRaises:
		raises, warnings := parseRaiseEntries(body)
		return Section{Header: header, Raises: raises}, warnings

	case HeaderTodo:
		return Section{Header: header, Todos: parseTodoEntries(body)}, nil

	case HeaderReturns, HeaderYields:
		return Section{Header: header, Result: parseResultEntry(body)}, nil

	case HeaderExample:
		if language == "" {
			language = DefaultExampleLanguage
		}

		return Section{Header: header, Language: language, Code: dedentCode(body)}, nil

	default:
		return Section{Header: HeaderText, Body: body}, nil
	}
}

func trimBlankEdges(lines []string) []string {
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
