// Package render serializes a parsed docstring model into its Markdown
// block. Rendering is a pure function of the model and the entity's
// metadata: the same inputs always produce byte-identical output, and
// sections come out in the order they were authored.
package render

import (
	"fmt"
	"strings"

	"github.com/g5becks/doksit/internal/docstring"
	"github.com/g5becks/doksit/internal/entity"
)

// Entity renders one entity's full Markdown block: heading, source link,
// then the docstring body. An entity with no docstring still gets its
// heading and link. Blocks inside the result are separated by single
// blank lines; the result carries no trailing newline.
func Entity(model *docstring.Model, meta *entity.Metadata, linker Linker) string {
	var blocks []string

	heading, model := headingFor(meta, model)
	blocks = append(blocks, heading)

	if link := linker.Line(meta); link != "" {
		blocks = append(blocks, link)
	}

	if model != nil {
		blocks = append(blocks, Body(model)...)
	}

	return strings.Join(blocks, "\n\n")
}

// Body renders just the docstring body blocks, without heading or link.
func Body(model *docstring.Model) []string {
	var blocks []string

	if len(model.Brief) > 0 {
		blocks = append(blocks, strings.Join(model.Brief, "\n"))
	}

	if len(model.Description) > 0 {
		blocks = append(blocks, strings.Join(model.Description, "\n"))
	}

	for i := range model.Sections {
		if block := renderSection(&model.Sections[i]); block != "" {
			blocks = append(blocks, block)
		}
	}

	return blocks
}

// headingFor picks the heading line by entity kind. A module docstring
// whose first line is a `# ` heading replaces the default module heading;
// the line is consumed so it does not render twice.
func headingFor(meta *entity.Metadata, model *docstring.Model) (string, *docstring.Model) {
	switch meta.Kind {
	case entity.KindModule:
		if model != nil && len(model.Brief) > 0 && strings.HasPrefix(model.Brief[0], "# ") {
			heading := "#" + model.Brief[0]
			trimmed := *model
			trimmed.Brief = model.Brief[1:]

			return heading, &trimmed
		}

		return "## " + meta.QualifiedName, model

	case entity.KindClass:
		return "### class " + meta.Name, model

	case entity.KindConstructor:
		return "#### constructor", model

	case entity.KindProperty:
		return "#### property " + meta.Name, model

	case entity.KindFunction:
		return "### function " + meta.Name, model

	default:
		return "#### method " + meta.Name, model
	}
}

func renderSection(section *docstring.Section) string {
	switch section.Header {
	case docstring.HeaderText:
		return strings.Join(section.Body, "\n")

	case docstring.HeaderNote, docstring.HeaderWarning:
		lines := append([]string{"**" + string(section.Header) + ":**"}, section.Body...)
		return strings.Join(lines, "\n")

	case docstring.HeaderArguments, docstring.HeaderAttributes:
		return renderParams(section)

	case docstring.HeaderTodo:
		return renderTodos(section)

	case docstring.HeaderRaises:
		return renderRaises(section)

	case docstring.HeaderReturns, docstring.HeaderYields:
		return renderResult(section)

	case docstring.HeaderExample:
		return renderExample(section)

	default:
		return strings.Join(section.Body, "\n")
	}
}

func sectionLabel(header docstring.Header) string {
	return "**" + string(header) + ":**"
}

func renderParams(section *docstring.Section) string {
	lines := []string{sectionLabel(section.Header), ""}

	for i := range section.Params {
		param := &section.Params[i]

		bullet := "- " + param.Name
		if annotation := paramAnnotation(param); annotation != "" {
			bullet += " (" + annotation + ")"
		}

		lines = append(lines, bullet+":")
		lines = append(lines, describe(param.Description)...)
	}

	return strings.Join(lines, "\n")
}

// paramAnnotation rebuilds the parenthesized annotation from its parts:
// `type`, `type, optional`, `type, optional, default x`.
func paramAnnotation(param *docstring.ParamEntry) string {
	if param.Type == "" && !param.Optional && !param.HasDefault {
		return ""
	}

	annotation := param.Type
	if param.Optional {
		annotation += ", optional"
	}

	if param.HasDefault {
		annotation += ", default " + param.Default
	}

	return annotation
}

// describe renders description lines as a nested bullet: the first line
// gets the dash, continuations align under its text.
func describe(lines []string) []string {
	var out []string

	for i, line := range lines {
		if i == 0 {
			out = append(out, "    - "+line)
		} else {
			out = append(out, "      "+line)
		}
	}

	return out
}

func renderTodos(section *docstring.Section) string {
	lines := []string{sectionLabel(section.Header), ""}

	for _, todo := range section.Todos {
		for i, text := range todo.Lines {
			if i == 0 {
				lines = append(lines, "- [ ] "+text)
			} else {
				lines = append(lines, "      "+text)
			}
		}
	}

	return strings.Join(lines, "\n")
}

// renderRaises numbers an exception's reasons only when it has more than
// one. Authored list numbers are kept literally; reasons written without
// numbers get sequential ones. The numbering is applied here at render
// time, never stored, so re-rendering the model is idempotent.
func renderRaises(section *docstring.Section) string {
	lines := []string{sectionLabel(section.Header), ""}

	for i := range section.Raises {
		raise := &section.Raises[i]
		lines = append(lines, "- "+raise.Name+":")

		if len(raise.Reasons) == 1 {
			lines = append(lines, describe(raise.Reasons[0].Lines)...)
			continue
		}

		next := 1
		for _, reason := range raise.Reasons {
			number := reason.Number
			if number == 0 {
				number = next
			}

			next = number + 1

			label := fmt.Sprintf("%d. ", number)
			for j, text := range reason.Lines {
				if j == 0 {
					lines = append(lines, "    "+label+text)
				} else {
					lines = append(lines, "    "+strings.Repeat(" ", len(label))+text)
				}
			}
		}
	}

	return strings.Join(lines, "\n")
}

func renderResult(section *docstring.Section) string {
	lines := []string{sectionLabel(section.Header)}

	if section.Result != nil {
		lines = append(lines, "", "- "+section.Result.Type+":")
		lines = append(lines, describe(section.Result.Description)...)
	}

	return strings.Join(lines, "\n")
}

func renderExample(section *docstring.Section) string {
	lines := []string{"Example:", "", "```" + section.Language}
	lines = append(lines, section.Code...)
	lines = append(lines, "```")

	return strings.Join(lines, "\n")
}
