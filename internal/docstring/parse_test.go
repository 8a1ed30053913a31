package docstring_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/g5becks/doksit/internal/docstring"
	"github.com/g5becks/doksit/internal/entity"
)

func fnMeta(params ...entity.Parameter) *entity.Metadata {
	return &entity.Metadata{
		Kind:          entity.KindFunction,
		Name:          "target",
		QualifiedName: "pkg.module.target",
		Parameters:    params,
	}
}

func hasWarning(warnings []docstring.Warning, code string) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}

	return false
}

func TestParse_NilMetadata(t *testing.T) {
	if _, _, err := docstring.Parse("Brief.", nil); err == nil {
		t.Fatal("Parse() with nil metadata should fail")
	}
}

func TestParse_UnnamedMetadata(t *testing.T) {
	if _, _, err := docstring.Parse("Brief.", &entity.Metadata{}); err == nil {
		t.Fatal("Parse() with unnamed metadata should fail")
	}
}

func TestParse_BriefAndDescription(t *testing.T) {
	raw := "Brief summary.\n" +
		"\n" +
		"    First description line.\n" +
		"    Second description line.\n"

	model, warnings, err := docstring.Parse(raw, fnMeta())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(warnings) != 0 {
		t.Errorf("Parse() warnings = %v, want none", warnings)
	}

	if got, want := model.Brief, []string{"Brief summary."}; !reflect.DeepEqual(got, want) {
		t.Errorf("Brief = %#v, want %#v", got, want)
	}

	wantDesc := []string{"First description line.", "Second description line."}
	if !reflect.DeepEqual(model.Description, wantDesc) {
		t.Errorf("Description = %#v, want %#v", model.Description, wantDesc)
	}
}

func TestParse_MultilineBrief(t *testing.T) {
	raw := "Brief that keeps\n    going on line two.\n\n    Description."

	model, _, err := docstring.Parse(raw, fnMeta())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []string{"Brief that keeps", "going on line two."}
	if !reflect.DeepEqual(model.Brief, want) {
		t.Errorf("Brief = %#v, want %#v", model.Brief, want)
	}
}

func TestParse_SectionOrderPreserved(t *testing.T) {
	raw := "Brief.\n" +
		"\n" +
		"    Warning:\n" +
		"        Careful.\n" +
		"\n" +
		"    Note:\n" +
		"        Remember.\n" +
		"\n" +
		"    Todo:\n" +
		"        - one item\n"

	model, _, err := docstring.Parse(raw, fnMeta())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var order []docstring.Header
	for _, section := range model.Sections {
		order = append(order, section.Header)
	}

	want := []docstring.Header{docstring.HeaderWarning, docstring.HeaderNote, docstring.HeaderTodo}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("section order = %v, want %v", order, want)
	}
}

func TestParse_DuplicateSectionDemoted(t *testing.T) {
	raw := "Brief.\n" +
		"\n" +
		"    Note:\n" +
		"        First note.\n" +
		"\n" +
		"    Note:\n" +
		"        Second note.\n"

	model, warnings, err := docstring.Parse(raw, fnMeta())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !hasWarning(warnings, "DUPLICATE_SECTION") {
		t.Errorf("warnings = %v, want DUPLICATE_SECTION", warnings)
	}

	if len(model.Sections) != 2 {
		t.Fatalf("len(Sections) = %d, want 2", len(model.Sections))
	}

	if model.Sections[1].Header != docstring.HeaderText {
		t.Errorf("second section header = %q, want plain text", model.Sections[1].Header)
	}
}

func TestParse_HeaderVocabulary(t *testing.T) {
	tests := []struct {
		name string
		line string
		want docstring.Header
	}{
		{"args synonym", "Args:", docstring.HeaderArguments},
		{"arguments", "Arguments:", docstring.HeaderArguments},
		{"lowercase is text", "note:", docstring.HeaderText},
		{"unknown token is text", "Parameters:", docstring.HeaderText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := "Brief.\n\n    " + tt.line + "\n        body line\n"

			model, _, err := docstring.Parse(raw, fnMeta())
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			if tt.want == docstring.HeaderText {
				for _, section := range model.Sections {
					if section.Header != docstring.HeaderText {
						t.Errorf("got section %q, want only plain text", section.Header)
					}
				}

				return
			}

			if len(model.Sections) != 1 || model.Sections[0].Header != tt.want {
				t.Errorf("sections = %+v, want one %q section", model.Sections, tt.want)
			}
		})
	}
}

func TestParse_IndentedHeaderIsText(t *testing.T) {
	raw := "Brief.\n" +
		"\n" +
		"    Stuff:\n" +
		"        Note:\n" +
		"            deep line\n"

	model, _, err := docstring.Parse(raw, fnMeta())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if findSection(model, docstring.HeaderNote) != nil {
		t.Errorf("indented Note: parsed as a section: %+v", model.Sections)
	}
}

func TestParse_Arguments(t *testing.T) {
	raw := "Brief.\n" +
		"\n" +
		"    Arguments:\n" +
		"        plain (str):\n" +
		"            Block description.\n" +
		"            Continues here.\n" +
		"        inline (int): One line description.\n" +
		"        full (str, optional, default x):\n" +
		"            Annotated to the hilt.\n"

	model, warnings, err := docstring.Parse(raw, fnMeta(
		entity.Parameter{Name: "plain", DeclaredType: "str"},
		entity.Parameter{Name: "inline", DeclaredType: "int"},
		entity.Parameter{Name: "full", DeclaredType: "str", DefaultValue: "x", HasDefault: true},
	))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	if len(model.Sections) != 1 {
		t.Fatalf("len(Sections) = %d, want 1", len(model.Sections))
	}

	params := model.Sections[0].Params
	if len(params) != 3 {
		t.Fatalf("len(Params) = %d, want 3", len(params))
	}

	if got := params[0].Description; !reflect.DeepEqual(got, []string{"Block description.", "Continues here."}) {
		t.Errorf("block description = %#v", got)
	}

	if got := params[1].Description; !reflect.DeepEqual(got, []string{"One line description."}) {
		t.Errorf("inline description = %#v", got)
	}

	full := params[2]
	if full.Type != "str" || !full.Optional || full.Default != "x" || !full.HasDefault {
		t.Errorf("annotation decomposed to %+v", full)
	}
}

func TestParse_ArgumentsMergeFillsTypes(t *testing.T) {
	raw := "Brief.\n" +
		"\n" +
		"    Arguments:\n" +
		"        x:\n" +
		"            No annotation authored.\n"

	model, warnings, err := docstring.Parse(raw, fnMeta(
		entity.Parameter{Name: "x", DeclaredType: "str"},
	))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	if got := model.Sections[0].Params[0].Type; got != "str" {
		t.Errorf("Type = %q, want %q from signature", got, "str")
	}
}

func TestParse_ArgumentsMergeDefaults(t *testing.T) {
	tests := []struct {
		name         string
		param        entity.Parameter
		wantType     string
		wantOptional bool
		wantDefault  string
		wantHasDef   bool
	}{
		{
			name:     "no annotation no default",
			param:    entity.Parameter{Name: "x"},
			wantType: "None",
		},
		{
			name:         "default None stays optional only",
			param:        entity.Parameter{Name: "x", DeclaredType: "str", DefaultValue: "None", HasDefault: true},
			wantType:     "str",
			wantOptional: true,
		},
		{
			name:         "literal default carried",
			param:        entity.Parameter{Name: "x", DeclaredType: "int", DefaultValue: "10", HasDefault: true},
			wantType:     "int",
			wantOptional: true,
			wantDefault:  "10",
			wantHasDef:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := "Brief.\n\n    Arguments:\n        x:\n            Something.\n"

			model, _, err := docstring.Parse(raw, fnMeta(tt.param))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			got := model.Sections[0].Params[0]
			if got.Type != tt.wantType || got.Optional != tt.wantOptional ||
				got.Default != tt.wantDefault || got.HasDefault != tt.wantHasDef {
				t.Errorf("merged entry = %+v", got)
			}
		})
	}
}

func TestParse_UnknownParameterSuggestion(t *testing.T) {
	raw := "Brief.\n\n    Arguments:\n        wrte (str): Misspelled.\n"

	_, warnings, err := docstring.Parse(raw, fnMeta(
		entity.Parameter{Name: "write", DeclaredType: "bool"},
	))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !hasWarning(warnings, "PARAM_UNKNOWN") {
		t.Fatalf("warnings = %v, want PARAM_UNKNOWN", warnings)
	}

	found := false
	for _, w := range warnings {
		if w.Code == "PARAM_UNKNOWN" && strings.Contains(w.Message, `"write"`) {
			found = true
		}
	}

	if !found {
		t.Errorf("warnings = %v, want a suggestion naming %q", warnings, "write")
	}
}

func TestParse_UndocumentedParameterSynthesized(t *testing.T) {
	raw := "Brief.\n\n    Arguments:\n        x (str): Documented.\n"

	model, warnings, err := docstring.Parse(raw, fnMeta(
		entity.Parameter{Name: "x", DeclaredType: "str"},
		entity.Parameter{Name: "y", DeclaredType: "int", DefaultValue: "1", HasDefault: true},
	))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !hasWarning(warnings, "PARAM_UNDOCUMENTED") {
		t.Errorf("warnings = %v, want PARAM_UNDOCUMENTED", warnings)
	}

	params := model.Sections[0].Params
	if len(params) != 2 {
		t.Fatalf("len(Params) = %d, want 2", len(params))
	}

	y := params[1]
	if y.Name != "y" || y.Type != "int" || !y.Optional || y.Default != "1" {
		t.Errorf("synthesized entry = %+v", y)
	}
}

func TestParse_ArgumentsSynthesizedWithoutSection(t *testing.T) {
	raw := "Brief only."

	model, warnings, err := docstring.Parse(raw, fnMeta(
		entity.Parameter{Name: "x", DeclaredType: "str"},
	))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !hasWarning(warnings, "PARAM_UNDOCUMENTED") {
		t.Errorf("warnings = %v, want PARAM_UNDOCUMENTED", warnings)
	}

	section := findSection(model, docstring.HeaderArguments)
	if section == nil || len(section.Params) != 1 {
		t.Fatalf("Arguments section not synthesized: %+v", model.Sections)
	}
}

func TestParse_EmptyDocstringStaysEmpty(t *testing.T) {
	model, warnings, err := docstring.Parse("", fnMeta(
		entity.Parameter{Name: "x", DeclaredType: "str"},
	))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !model.Empty() {
		t.Errorf("model = %+v, want empty", model)
	}

	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none for an empty docstring", warnings)
	}
}

func TestParse_Raises(t *testing.T) {
	raw := "Brief.\n" +
		"\n" +
		"    Raises:\n" +
		"        ValueError: Single reason.\n" +
		"        TypeError:\n" +
		"            1. First reason.\n" +
		"            2. Second reason\n" +
		"               that continues.\n"

	model, warnings, err := docstring.Parse(raw, fnMeta())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	raises := model.Sections[0].Raises
	if len(raises) != 2 {
		t.Fatalf("len(Raises) = %d, want 2", len(raises))
	}

	if raises[0].Name != "ValueError" || len(raises[0].Reasons) != 1 {
		t.Errorf("first entry = %+v", raises[0])
	}

	second := raises[1]
	if len(second.Reasons) != 2 {
		t.Fatalf("TypeError reasons = %+v, want 2", second.Reasons)
	}

	if second.Reasons[0].Number != 1 || second.Reasons[1].Number != 2 {
		t.Errorf("authored numbers = %d, %d", second.Reasons[0].Number, second.Reasons[1].Number)
	}

	wantLines := []string{"Second reason", "that continues."}
	if !reflect.DeepEqual(second.Reasons[1].Lines, wantLines) {
		t.Errorf("continuation = %#v, want %#v", second.Reasons[1].Lines, wantLines)
	}
}

func TestParse_RaisesConsecutiveMerge(t *testing.T) {
	raw := "Brief.\n" +
		"\n" +
		"    Raises:\n" +
		"        KeyError: Missing name.\n" +
		"        KeyError: Missing value.\n"

	model, _, err := docstring.Parse(raw, fnMeta())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	raises := model.Sections[0].Raises
	if len(raises) != 1 || len(raises[0].Reasons) != 2 {
		t.Errorf("entries = %+v, want one KeyError with two reasons", raises)
	}
}

func TestParse_RaisesNumberingWarning(t *testing.T) {
	raw := "Brief.\n" +
		"\n" +
		"    Raises:\n" +
		"        ValueError:\n" +
		"            1. First.\n" +
		"            3. Skipped two.\n"

	_, warnings, err := docstring.Parse(raw, fnMeta())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !hasWarning(warnings, "RAISES_NUMBERING") {
		t.Errorf("warnings = %v, want RAISES_NUMBERING", warnings)
	}
}

func TestParse_Todo(t *testing.T) {
	raw := "Brief.\n" +
		"\n" +
		"    Todo:\n" +
		"        - first item\n" +
		"        - second item\n" +
		"          that wraps\n" +
		"        * starred item\n"

	model, _, err := docstring.Parse(raw, fnMeta())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	todos := model.Sections[0].Todos
	if len(todos) != 3 {
		t.Fatalf("len(Todos) = %d, want 3", len(todos))
	}

	want := []string{"second item", "that wraps"}
	if !reflect.DeepEqual(todos[1].Lines, want) {
		t.Errorf("wrapped item = %#v, want %#v", todos[1].Lines, want)
	}
}

func TestParse_Returns(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		meta     *entity.Metadata
		wantType string
		wantDesc []string
	}{
		{
			name:     "type colon description",
			body:     "        bool: True on success.\n",
			meta:     fnMeta(),
			wantType: "bool",
			wantDesc: []string{"True on success."},
		},
		{
			name:     "type with block description",
			body:     "        dict:\n            Mapping of results.\n",
			meta:     fnMeta(),
			wantType: "dict",
			wantDesc: []string{"Mapping of results."},
		},
		{
			name:     "bare description takes signature type",
			body:     "        The parsed value.\n",
			meta:     &entity.Metadata{Kind: entity.KindFunction, Name: "f", ReturnType: "int"},
			wantType: "int",
			wantDesc: []string{"The parsed value."},
		},
		{
			name:     "no type anywhere falls back to None",
			body:     "        Whatever came in.\n",
			meta:     fnMeta(),
			wantType: "None",
			wantDesc: []string{"Whatever came in."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := "Brief.\n\n    Returns:\n" + tt.body

			model, _, err := docstring.Parse(raw, tt.meta)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			result := model.Sections[0].Result
			if result == nil {
				t.Fatal("Result = nil")
			}

			if result.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", result.Type, tt.wantType)
			}

			if !reflect.DeepEqual(result.Description, tt.wantDesc) {
				t.Errorf("Description = %#v, want %#v", result.Description, tt.wantDesc)
			}
		})
	}
}

func TestParse_ResultMismatchWarning(t *testing.T) {
	raw := "Brief.\n\n    Yields:\n        int: Values.\n"

	_, warnings, err := docstring.Parse(raw, fnMeta())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !hasWarning(warnings, "RESULT_MISMATCH") {
		t.Errorf("warnings = %v, want RESULT_MISMATCH", warnings)
	}
}

func TestParse_YieldsOnGenerator(t *testing.T) {
	raw := "Brief.\n\n    Yields:\n        int: Values.\n"
	meta := &entity.Metadata{Kind: entity.KindFunction, Name: "gen", IsGenerator: true}

	_, warnings, err := docstring.Parse(raw, meta)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if hasWarning(warnings, "RESULT_MISMATCH") {
		t.Errorf("warnings = %v, Yields on a generator should not warn", warnings)
	}
}

func TestParse_BlankLineEndsSection(t *testing.T) {
	raw := "Brief.\n" +
		"\n" +
		"    Warning:\n" +
		"        Kept in the section.\n" +
		"\n" +
		"        Past the blank line.\n"

	model, _, err := docstring.Parse(raw, fnMeta())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	warning := findSection(model, docstring.HeaderWarning)
	if warning == nil {
		t.Fatal("Warning section missing")
	}

	if !reflect.DeepEqual(warning.Body, []string{"    Kept in the section."}) {
		t.Errorf("Warning body = %#v, blank line must close the section", warning.Body)
	}

	if len(model.Sections) != 2 || model.Sections[1].Header != docstring.HeaderText {
		t.Errorf("sections = %+v, trailing text must survive as a paragraph", model.Sections)
	}
}

func TestParse_Example(t *testing.T) {
	raw := "Brief.\n" +
		"\n" +
		"    Example:\n" +
		"        x = 1\n" +
		"\n" +
		"        print(x)\n"

	model, _, err := docstring.Parse(raw, fnMeta())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	section := model.Sections[0]
	if section.Language != docstring.DefaultExampleLanguage {
		t.Errorf("Language = %q, want default", section.Language)
	}

	want := []string{"x = 1", "", "print(x)"}
	if !reflect.DeepEqual(section.Code, want) {
		t.Errorf("Code = %#v, want %#v", section.Code, want)
	}
}

func TestParse_ExampleLanguageTag(t *testing.T) {
	raw := "Brief.\n\n    Example: (markdown)\n        # Heading\n"

	model, _, err := docstring.Parse(raw, fnMeta())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	section := model.Sections[0]
	if section.Language != "markdown" {
		t.Errorf("Language = %q, want %q", section.Language, "markdown")
	}

	if !reflect.DeepEqual(section.Code, []string{"# Heading"}) {
		t.Errorf("Code = %#v", section.Code)
	}
}

func TestParse_TextBetweenSections(t *testing.T) {
	raw := "Brief.\n" +
		"\n" +
		"    Note:\n" +
		"        A note.\n" +
		"\n" +
		"    Loose paragraph between sections.\n" +
		"\n" +
		"    Todo:\n" +
		"        - item\n"

	model, _, err := docstring.Parse(raw, fnMeta())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(model.Sections) != 3 {
		t.Fatalf("len(Sections) = %d, want 3", len(model.Sections))
	}

	if model.Sections[1].Header != docstring.HeaderText {
		t.Errorf("middle section = %+v, want plain text", model.Sections[1])
	}
}

func findSection(model *docstring.Model, header docstring.Header) *docstring.Section {
	for i := range model.Sections {
		if model.Sections[i].Header == header {
			return &model.Sections[i]
		}
	}

	return nil
}
