package docstring_test

import (
	"reflect"
	"testing"

	"github.com/g5becks/doksit/internal/docstring"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "empty string",
			raw:  "",
			want: nil,
		},
		{
			name: "whitespace only",
			raw:  "   \n\t\n  ",
			want: nil,
		},
		{
			name: "single line",
			raw:  "One sentence.",
			want: []string{"One sentence."},
		},
		{
			name: "first line after quotes keeps its column",
			raw:  "Brief.\n\n    Longer description.\n    Second line.",
			want: []string{"Brief.", "", "Longer description.", "Second line."},
		},
		{
			name: "leading blank line trimmed",
			raw:  "\n    Brief on its own line.\n",
			want: []string{"Brief on its own line."},
		},
		{
			name: "nested indentation preserved",
			raw:  "Brief.\n\n    Arguments:\n        x (int):\n            Value.",
			want: []string{"Brief.", "", "Arguments:", "    x (int):", "        Value."},
		},
		{
			name: "crlf input",
			raw:  "Brief.\r\n\r\n    Body.",
			want: []string{"Brief.", "", "Body."},
		},
		{
			name: "trailing spaces stripped",
			raw:  "Brief.   \n\n    Body.  ",
			want: []string{"Brief.", "", "Body."},
		},
		{
			name: "blank interior lines become empty",
			raw:  "Brief.\n   \n    Body.",
			want: []string{"Brief.", "", "Body."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := docstring.Normalize(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
