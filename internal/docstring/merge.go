package docstring

import (
	"github.com/sahilm/fuzzy"

	"github.com/g5becks/doksit/internal/entity"
)

// noneType is rendered when neither the author nor the signature supplies
// a type.
const noneType = "None"

// mergeSignature cross-references the parsed model against the entity's
// real signature. Docstring annotations always win; the signature only
// fills gaps. Structural omissions surface as warnings, never as errors.
func mergeSignature(model *Model, meta *entity.Metadata) []Warning {
	var warnings []Warning

	warnings = append(warnings, mergeParameters(model, meta)...)
	warnings = append(warnings, mergeResult(model, meta)...)

	return warnings
}

func mergeParameters(model *Model, meta *entity.Metadata) []Warning {
	if len(meta.Parameters) == 0 || model.Empty() {
		return nil
	}

	section := model.section(HeaderArguments)
	if section == nil {
		model.Sections = append(model.Sections, Section{Header: HeaderArguments})
		section = &model.Sections[len(model.Sections)-1]
	}

	var warnings []Warning

	for i := range section.Params {
		param := &section.Params[i]

		if meta.Param(param.Name) == nil {
			warning := warnf("PARAM_UNKNOWN",
				"documented parameter %q is not in the signature", param.Name)
			if suggestion := closestName(param.Name, meta.Parameters); suggestion != "" {
				warning = warnf("PARAM_UNKNOWN",
					"documented parameter %q is not in the signature (did you mean %q?)",
					param.Name, suggestion)
			}

			warnings = append(warnings, warning)
			continue
		}

		if param.Type == "" {
			synthesize(param, meta.Param(param.Name))
		}
	}

	for _, sig := range meta.Parameters {
		if section.param(sig.Name) != nil {
			continue
		}

		entry := ParamEntry{Name: sig.Name}
		synthesize(&entry, &sig)
		section.Params = append(section.Params, entry)

		warnings = append(warnings, warnf("PARAM_UNDOCUMENTED",
			"parameter %q has no docstring entry", sig.Name))
	}

	return warnings
}

// synthesize fills an entry's type, optional flag and default from the
// signature. A default of literal None marks the parameter optional
// without repeating the value.
func synthesize(param *ParamEntry, sig *entity.Parameter) {
	param.Type = sig.DeclaredType
	if param.Type == "" {
		param.Type = noneType
	}

	if sig.HasDefault {
		param.Optional = true
		if sig.DefaultValue != noneType {
			param.Default = sig.DefaultValue
			param.HasDefault = true
		}
	}
}

func mergeResult(model *Model, meta *entity.Metadata) []Warning {
	var warnings []Warning

	expected, unexpected := HeaderReturns, HeaderYields
	if meta.IsGenerator {
		expected, unexpected = HeaderYields, HeaderReturns
	}

	if model.section(unexpected) != nil {
		warnings = append(warnings, warnf("RESULT_MISMATCH",
			"%s documents %s but the signature suggests %s; rendered as authored",
			meta.QualifiedName, unexpected, expected))
	}

	for _, header := range []Header{HeaderReturns, HeaderYields} {
		section := model.section(header)
		if section == nil || section.Result == nil || section.Result.Type != "" {
			continue
		}

		section.Result.Type = meta.ReturnType
		if section.Result.Type == "" {
			section.Result.Type = noneType
		}
	}

	return warnings
}

// closestName suggests the signature parameter closest to an unknown
// documented name.
func closestName(name string, params []entity.Parameter) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}

	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return ""
	}

	return matches[0].Str
}

func (m *Model) section(header Header) *Section {
	for i := range m.Sections {
		if m.Sections[i].Header == header {
			return &m.Sections[i]
		}
	}

	return nil
}

func (s *Section) param(name string) *ParamEntry {
	for i := range s.Params {
		if s.Params[i].Name == name {
			return &s.Params[i]
		}
	}

	return nil
}
