// Package docstring parses documentation comments written in the
// Google/Doksit style into a structured model: a brief summary, a long
// description, and an ordered list of labeled sections. Signature metadata
// is merged in so that parameter types and defaults never have to be
// repeated by hand.
package docstring

import "fmt"

// Header labels a recognized docstring section. The vocabulary is fixed
// and case-sensitive; anything else on a `Word:` line is plain text.
type Header string

const (
	HeaderNote       Header = "Note"
	HeaderWarning    Header = "Warning"
	HeaderAttributes Header = "Attributes"
	HeaderTodo       Header = "Todo"
	HeaderExample    Header = "Example"
	HeaderArguments  Header = "Arguments"
	HeaderReturns    Header = "Returns"
	HeaderYields     Header = "Yields"
	HeaderRaises     Header = "Raises"

	// HeaderText marks a plain paragraph block occurring between or after
	// labeled sections. It is a model detail, not part of the vocabulary.
	HeaderText Header = ""
)

// headerSynonyms maps accepted header tokens to their canonical form.
func headerSynonyms() map[string]Header {
	return map[string]Header{
		"Note":       HeaderNote,
		"Warning":    HeaderWarning,
		"Attributes": HeaderAttributes,
		"Todo":       HeaderTodo,
		"Example":    HeaderExample,
		"Arguments":  HeaderArguments,
		"Args":       HeaderArguments,
		"Returns":    HeaderReturns,
		"Yields":     HeaderYields,
		"Raises":     HeaderRaises,
	}
}

// DefaultExampleLanguage is used when an Example header carries no
// explicit language tag.
const DefaultExampleLanguage = "python"

// Model is the parsed form of one entity's docstring. Sections keep their
// order of first appearance in the input; each recognized header appears
// at most once.
type Model struct {
	Brief       []string
	Description []string
	Sections    []Section
}

// Empty reports whether the docstring carried no content at all.
func (m *Model) Empty() bool {
	return len(m.Brief) == 0 && len(m.Description) == 0 && len(m.Sections) == 0
}

// Section is one labeled sub-block of a docstring. Which fields are
// populated depends on the header.
type Section struct {
	Header Header

	// Body holds verbatim lines for Note, Warning and plain text blocks.
	Body []string

	// Params is set for Arguments and Attributes.
	Params []ParamEntry

	// Raises is set for Raises.
	Raises []RaiseEntry

	// Todos is set for Todo.
	Todos []TodoEntry

	// Result is set for Returns and Yields; at most one per section.
	Result *ResultEntry

	// Language and Code are set for Example.
	Language string
	Code     []string
}

// ParamEntry is one documented parameter or attribute. Type, Optional and
// Default come either from the author's `name (type, optional, default x)`
// annotation or, for parameters, from the signature metadata.
type ParamEntry struct {
	Name        string
	Type        string
	Optional    bool
	Default     string
	HasDefault  bool
	Description []string
}

// RaiseEntry is one documented exception together with every reason listed
// for it. Consecutive occurrences of the same exception name collapse into
// one entry with multiple reasons.
type RaiseEntry struct {
	Name    string
	Reasons []Reason
}

// Reason is one way an exception can occur. Number is the literal authored
// list number, or zero when the reason was written unnumbered.
type Reason struct {
	Number int
	Lines  []string
}

// TodoEntry is one checklist item.
type TodoEntry struct {
	Lines []string
}

// ResultEntry documents a return or yield value.
type ResultEntry struct {
	Type        string
	Description []string
}

// Warning is a recoverable problem found while parsing or merging one
// docstring. Warnings never abort processing; the caller aggregates and
// prints them.
type Warning struct {
	Code    string
	Message string
}

func warnf(code, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}
