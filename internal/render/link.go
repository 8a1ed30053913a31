package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/g5becks/doksit/internal/entity"
)

// Linker builds source link lines from a repository base URL, typically
// `https://github.com/<owner>/<repo>/blob/<branch>/`. A zero Linker emits
// no links at all, which is the behavior when no repository is detected.
type Linker struct {
	Base string
}

// NewLinker normalizes the base URL to end with a single slash.
func NewLinker(base string) Linker {
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}

	return Linker{Base: base}
}

// Line returns the `[source](...)` line for an entity. Modules link to
// the file without a fragment. Other entities carry a `#L<start>-L<end>`
// fragment, or a bare `#` when the body range is unknown.
func (l Linker) Line(meta *entity.Metadata) string {
	if l.Base == "" {
		return ""
	}

	url := l.Base + filepath.ToSlash(meta.SourceFile)

	if meta.Kind != entity.KindModule {
		if meta.LineStart > 0 && meta.LineEnd > 0 {
			url += fmt.Sprintf("#L%d-L%d", meta.LineStart, meta.LineEnd)
		} else {
			url += "#"
		}
	}

	return "[source](" + url + ")"
}
