package docstring

import "strings"

// Normalize strips a docstring's common leading indentation and splits it
// into lines. The first line is ignored when computing the common width,
// since it conventionally starts right after the opening quotes. A single
// leading and trailing blank line is trimmed. An empty or whitespace-only
// docstring yields nil, which downstream treats as "no documentation".
func Normalize(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(raw, "\n")

	width := commonIndent(lines[1:])
	for i, line := range lines {
		if i == 0 {
			lines[i] = strings.TrimRight(line, " \t")
			continue
		}

		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}

		lines[i] = strings.TrimRight(stripIndent(line, width), " \t")
	}

	if lines[0] == "" {
		lines = lines[1:]
	}

	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// commonIndent returns the minimum leading-space width across non-blank
// lines. Tabs count as a single column; docstrings in the wild are
// space-indented.
func commonIndent(lines []string) int {
	width := -1

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if width == -1 || indent < width {
			width = indent
		}
	}

	if width == -1 {
		return 0
	}

	return width
}

func stripIndent(line string, width int) string {
	for i := 0; i < width && line != ""; i++ {
		if line[0] != ' ' && line[0] != '\t' {
			break
		}

		line = line[1:]
	}

	return line
}

// indentOf returns the number of leading space columns of a line.
func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}
