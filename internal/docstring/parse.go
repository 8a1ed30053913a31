package docstring

import "github.com/g5becks/doksit/internal/entity"

// Parse builds the structured model for one entity's docstring and merges
// in its signature metadata. Parsing never fails for docstring content;
// the only hard error is structurally invalid metadata. The returned
// warnings are recoverable findings the caller may print.
func Parse(raw string, meta *entity.Metadata) (*Model, []Warning, error) {
	if err := meta.Validate(); err != nil {
		return nil, nil, err
	}

	model, warnings := split(Normalize(raw))
	warnings = append(warnings, mergeSignature(model, meta)...)

	return model, warnings, nil
}
